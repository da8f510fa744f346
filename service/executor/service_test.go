package executor

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/toolgate/extension"
	"github.com/viant/toolgate/model/types"
	"github.com/viant/toolgate/policy"
	"github.com/viant/toolgate/service/approval"
	amemory "github.com/viant/toolgate/service/approval/memory"
)

type echoInput struct {
	Message string `json:"message"`
	Times   int    `json:"times"`
}

type echoOutput struct {
	Echo string `json:"echo"`
}

type echoService struct{}

func (s *echoService) Name() string { return "echo" }

func (s *echoService) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "say",
			Description: "Repeats the supplied message.",
			Input:       reflect.TypeOf(&echoInput{}),
			Output:      reflect.TypeOf(&echoOutput{}),
		},
	}
}

func (s *echoService) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "say":
		return s.say, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *echoService) say(_ context.Context, in, out interface{}) error {
	input, ok := in.(*echoInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*echoOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	times := input.Times
	if times <= 0 {
		times = 1
	}
	output.Echo = strings.TrimSpace(strings.Repeat(input.Message+" ", times))
	return nil
}

func newTestExecutor(opts ...Option) Service {
	tools := extension.NewTools()
	tools.Register(&echoService{})
	return New(tools, opts...)
}

func TestService_Execute(t *testing.T) {
	ctx := context.Background()

	var heard string
	svc := newTestExecutor(WithListener(func(tool string, input, output interface{}) {
		heard = tool
	}))

	out, err := svc.Execute(ctx, "echo.say", json.RawMessage(`{"message":"hello","times":2}`))
	require.NoError(t, err)
	assert.Equal(t, &echoOutput{Echo: "hello hello"}, out)
	assert.Equal(t, "echo.say", heard)
}

func TestService_ExecuteErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestExecutor()

	_, err := svc.Execute(ctx, "missing.say", nil)
	assert.Error(t, err)

	_, err = svc.Execute(ctx, "echo.shout", nil)
	assert.Error(t, err)
}

func TestService_Invoke(t *testing.T) {
	svc := newTestExecutor()
	result, err := svc.Invoke(context.Background(), "echo.say", json.RawMessage(`{"message":"hi"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"echo":"hi"}`, result)
}

func TestService_PolicyGate(t *testing.T) {
	type testCase struct {
		name        string
		policy      *policy.Policy
		expectError bool
	}

	asked := 0
	tests := []testCase{{
		name:        "no policy executes",
		policy:      nil,
		expectError: false,
	}, {
		name:        "deny mode blocks",
		policy:      &policy.Policy{Mode: policy.ModeDeny},
		expectError: true,
	}, {
		name:        "block list wins",
		policy:      &policy.Policy{Mode: policy.ModeAuto, BlockList: []string{"echo.say"}},
		expectError: true,
	}, {
		name: "ask approved",
		policy: &policy.Policy{Mode: policy.ModeAsk, Ask: func(_ context.Context, tool string, args map[string]interface{}, _ *policy.Policy) bool {
			asked++
			return true
		}},
		expectError: false,
	}, {
		name: "ask rejected",
		policy: &policy.Policy{Mode: policy.ModeAsk, Ask: func(_ context.Context, tool string, args map[string]interface{}, _ *policy.Policy) bool {
			return false
		}},
		expectError: true,
	}, {
		name:        "ask without handler or approval service fails closed",
		policy:      &policy.Policy{Mode: policy.ModeAsk},
		expectError: true,
	}}

	svc := newTestExecutor()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := policy.WithPolicy(context.Background(), tc.policy)
			_, err := svc.Execute(ctx, "echo.say", json.RawMessage(`{"message":"gate"}`))
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
	assert.Equal(t, 1, asked)
}

func TestService_AskModeFilesApprovalRequest(t *testing.T) {
	approvals := amemory.New()
	svc := newTestExecutor(WithApprovalService(approvals), WithAskTimeout(2*time.Second))

	ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeAsk})
	ctx = types.EnsureInvocationContext(ctx,
		types.InvocationConversationID, "conv-1",
		types.InvocationCallID, "call-1")

	var filed *approval.Request
	stop := approval.AutoDecider(ctx, approvals, func(r *approval.Request) (bool, string) {
		filed = r
		return true, ""
	}, 10*time.Millisecond)
	defer stop()

	out, err := svc.Execute(ctx, "echo.say", json.RawMessage(`{"message":"gate"}`))
	require.NoError(t, err)
	assert.Equal(t, &echoOutput{Echo: "gate"}, out)

	require.NotNil(t, filed)
	assert.Equal(t, "echo.say", filed.Tool)
	assert.Equal(t, "conv-1", filed.ConversationID)
	assert.Equal(t, "call-1", filed.CallID)
	assert.JSONEq(t, `{"message":"gate"}`, string(filed.Args))
}

func TestService_AskModeRejection(t *testing.T) {
	approvals := amemory.New()
	svc := newTestExecutor(WithApprovalService(approvals), WithAskTimeout(2*time.Second))

	ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeAsk})
	stop := approval.AutoReject(ctx, approvals, "not on my watch", 10*time.Millisecond)
	defer stop()

	_, err := svc.Execute(ctx, "echo.say", json.RawMessage(`{"message":"gate"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not on my watch")
}

func TestService_AskHandlerTakesPrecedence(t *testing.T) {
	approvals := amemory.New()
	svc := newTestExecutor(WithApprovalService(approvals), WithAskTimeout(time.Second))

	asked := false
	gate := &policy.Policy{Mode: policy.ModeAsk, Ask: func(_ context.Context, tool string, args map[string]interface{}, _ *policy.Policy) bool {
		asked = true
		return true
	}}
	ctx := policy.WithPolicy(context.Background(), gate)

	_, err := svc.Execute(ctx, "echo.say", json.RawMessage(`{"message":"gate"}`))
	require.NoError(t, err)
	assert.True(t, asked)

	pending, err := approvals.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
