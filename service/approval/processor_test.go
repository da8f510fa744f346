package approval_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/toolgate/conversation"
	"github.com/viant/toolgate/policy"
	"github.com/viant/toolgate/progress"
	approval "github.com/viant/toolgate/service/approval"
	memApproval "github.com/viant/toolgate/service/approval/memory"
)

// recordingInvoker counts invocations per call so tests can assert the
// exactly-once guarantee.
type recordingInvoker struct {
	invocations []string
	failWith    error
}

func (i *recordingInvoker) Invoke(_ context.Context, tool string, args json.RawMessage) (string, error) {
	i.invocations = append(i.invocations, tool+":"+string(args))
	if i.failWith != nil {
		return "", i.failWith
	}
	return `{"ok":true}`, nil
}

func gatedPolicy() *policy.Policy {
	return &policy.Policy{Mode: policy.ModeAsk, AllowList: []string{"system/exec.execute"}}
}

func TestProcessor_Process(t *testing.T) {
	type testCase struct {
		name              string
		call              *conversation.ToolCall
		failWith          error
		expectResult      string
		expectInvocations int
	}

	args := json.RawMessage(`{"commands":["rm -rf /tmp/scratch"]}`)

	tests := []testCase{{
		name:              "approved gated call executes exactly once",
		call:              &conversation.ToolCall{ID: "c1", Tool: "system/exec.execute", Arguments: args, Decision: conversation.DecisionApproved},
		expectResult:      `{"ok":true}`,
		expectInvocations: 1,
	}, {
		name:              "denied gated call short-circuits to the sentinel",
		call:              &conversation.ToolCall{ID: "c2", Tool: "system/exec.execute", Arguments: args, Decision: conversation.DecisionDenied},
		expectResult:      conversation.DeniedResult,
		expectInvocations: 0,
	}, {
		name:              "undecided gated call stays pending",
		call:              &conversation.ToolCall{ID: "c3", Tool: "system/exec.execute", Arguments: args},
		expectResult:      "",
		expectInvocations: 0,
	}, {
		name:              "streaming call is left untouched",
		call:              &conversation.ToolCall{ID: "c4", Tool: "system/exec.execute", Partial: true},
		expectResult:      "",
		expectInvocations: 0,
	}, {
		name:              "ungated call executes directly",
		call:              &conversation.ToolCall{ID: "c5", Tool: "weather.current", Arguments: json.RawMessage(`{"location":"Berlin"}`)},
		expectResult:      `{"ok":true}`,
		expectInvocations: 1,
	}, {
		name:              "tool failure embeds an error result",
		call:              &conversation.ToolCall{ID: "c6", Tool: "weather.current", Arguments: json.RawMessage(`{}`)},
		failWith:          fmt.Errorf("boom"),
		expectResult:      "Error: boom",
		expectInvocations: 1,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			invoker := &recordingInvoker{failWith: tc.failWith}
			processor := approval.NewProcessor(invoker, approval.WithGate(gatedPolicy()))

			messages := []*conversation.Message{
				{ID: "m1", Role: conversation.RoleUser, Content: "do it"},
				{ID: "m2", Role: conversation.RoleAssistant, ToolCalls: []*conversation.ToolCall{tc.call}},
			}

			_, err := processor.Process(ctx, "conv-1", messages)
			require.NoError(t, err)
			assert.Equal(t, tc.expectResult, tc.call.Result)
			assert.Len(t, invoker.invocations, tc.expectInvocations)
		})
	}
}

// TestProcessor_OriginalArgumentsSurviveRoundTrip covers the pending map
// contract: the input recorded on first sight wins over whatever the UI
// echoes back with the decision.
func TestProcessor_OriginalArgumentsSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	invoker := &recordingInvoker{}
	svc := memApproval.New()
	processor := approval.NewProcessor(invoker, approval.WithGate(gatedPolicy()), approval.WithService(svc))

	call := &conversation.ToolCall{
		ID:        "c1",
		Tool:      "system/exec.execute",
		Arguments: json.RawMessage(`{"commands":["ls /original"]}`),
	}
	messages := []*conversation.Message{
		{ID: "m1", Role: conversation.RoleAssistant, ToolCalls: []*conversation.ToolCall{call}},
	}

	// First pass parks the call and files an approval request.
	_, err := processor.Process(ctx, "conv-1", messages)
	require.NoError(t, err)
	assert.Empty(t, invoker.invocations)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "system/exec.execute", pending[0].Tool)
	assert.Equal(t, []*conversation.ToolCall{call}, processor.AwaitingApproval(messages))

	// The UI round trip mangles the arguments but approves the call.
	call.Arguments = json.RawMessage(`{"commands":["ls /tampered"]}`)
	call.Decision = conversation.DecisionApproved

	_, err = processor.Process(ctx, "conv-1", messages)
	require.NoError(t, err)
	require.Len(t, invoker.invocations, 1)
	assert.Equal(t, `system/exec.execute:{"commands":["ls /original"]}`, invoker.invocations[0])
	assert.Equal(t, `{"ok":true}`, call.Result)

	// Resolution clears the pending entry and the service bookkeeping.
	assert.Empty(t, processor.Pending().List(ctx))
	pending, _ = svc.ListPending(ctx)
	assert.Empty(t, pending)

	// Re-processing a resolved call never re-executes it.
	_, err = processor.Process(ctx, "conv-1", messages)
	require.NoError(t, err)
	assert.Len(t, invoker.invocations, 1)
}

// TestProcessor_ProgressAccounting covers the tracker deltas along both
// decision paths: a call parked first and decided later leaves the pending
// set, while one arriving already decided is counted on the spot. Pending
// must end at zero either way.
func TestProcessor_ProgressAccounting(t *testing.T) {
	type testCase struct {
		name           string
		decision       string
		parked         bool
		expectExecuted int
		expectDenied   int
	}

	tests := []testCase{{
		name:           "approved on first sight",
		decision:       conversation.DecisionApproved,
		expectExecuted: 1,
	}, {
		name:         "denied on first sight",
		decision:     conversation.DecisionDenied,
		expectDenied: 1,
	}, {
		name:           "parked then approved",
		decision:       conversation.DecisionApproved,
		parked:         true,
		expectExecuted: 1,
	}, {
		name:         "parked then denied",
		decision:     conversation.DecisionDenied,
		parked:       true,
		expectDenied: 1,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := progress.WithNewTracker(context.Background(), "conv-1", nil)
			invoker := &recordingInvoker{}
			processor := approval.NewProcessor(invoker, approval.WithGate(gatedPolicy()))

			call := &conversation.ToolCall{ID: "c1", Tool: "system/exec.execute", Arguments: json.RawMessage(`{}`)}
			messages := []*conversation.Message{
				{ID: "m1", Role: conversation.RoleAssistant, ToolCalls: []*conversation.ToolCall{call}},
			}

			if tc.parked {
				_, err := processor.Process(ctx, "conv-1", messages)
				require.NoError(t, err)
				snapshot, ok := progress.GetSnapshot(ctx)
				require.True(t, ok)
				assert.Equal(t, 1, snapshot.Pending)
			}

			call.Decision = tc.decision
			_, err := processor.Process(ctx, "conv-1", messages)
			require.NoError(t, err)

			snapshot, ok := progress.GetSnapshot(ctx)
			require.True(t, ok)
			assert.Equal(t, 1, snapshot.Calls, "calls")
			assert.Equal(t, 1, snapshot.Gated, "gated")
			assert.Equal(t, tc.expectExecuted, snapshot.Executed, "executed")
			assert.Equal(t, tc.expectDenied, snapshot.Denied, "denied")
			assert.Equal(t, 0, snapshot.Pending, "pending")
		})
	}
}

func TestProcessor_NoAssistantMessage(t *testing.T) {
	processor := approval.NewProcessor(&recordingInvoker{}, approval.WithGate(gatedPolicy()))
	messages := []*conversation.Message{{ID: "m1", Role: conversation.RoleUser, Content: "hi"}}
	out, err := processor.Process(context.Background(), "conv-1", messages)
	require.NoError(t, err)
	assert.Equal(t, messages, out)
	assert.Nil(t, processor.AwaitingApproval(messages))
}
