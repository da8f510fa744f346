// Package executor implements typed tool invocation. The service resolves a
// fully qualified tool name through the extension registry, converts the raw
// JSON arguments into the method input type and, after the user-supplied
// method runs, calls an optional listener that can observe the data that flew
// through the call.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/viant/structology/conv"
	"github.com/viant/toolbox"
	"github.com/viant/toolgate/extension"
	"github.com/viant/toolgate/internal/clock"
	"github.com/viant/toolgate/internal/idgen"
	"github.com/viant/toolgate/model/types"
	"github.com/viant/toolgate/policy"
	"github.com/viant/toolgate/service/approval"
	"github.com/viant/toolgate/tracing"
)

// Listener is invoked once a tool method completes (regardless of whether it
// returned an error or not). Implementations can log, collect metrics or
// perform any other side-effects they require.
type Listener func(tool string, input, output interface{})

// Option is used to customise the executor instance.
type Option func(*service)

// WithListener overrides the listener invoked after every executed call.
// Passing nil disables the callback entirely.
func WithListener(l Listener) Option {
	return func(s *service) {
		s.listener = l
	}
}

// WithApprovalService attaches an approval service. With it in place an ask
// mode policy without an Ask handler files an approval request and blocks
// until someone decides it instead of failing closed.
func WithApprovalService(svc approval.Service) Option {
	return func(s *service) {
		s.approval = svc
	}
}

// WithAskTimeout bounds how long an ask mode call waits for an approval
// decision. Zero keeps the one minute default.
func WithAskTimeout(timeout time.Duration) Option {
	return func(s *service) {
		s.askTimeout = timeout
	}
}

// Service represents a tool executor.
type Service interface {
	// Execute runs the tool and returns its typed output.
	Execute(ctx context.Context, tool string, args json.RawMessage) (interface{}, error)

	// Invoke runs the tool and returns the JSON-encoded output, suitable for
	// embedding as a tool result in a conversation.
	Invoke(ctx context.Context, tool string, args json.RawMessage) (string, error)
}

// service is the concrete implementation of Service.
type service struct {
	tools      *extension.Tools
	converter  *conv.Converter
	listener   Listener
	approval   approval.Service
	askTimeout time.Duration
}

// Execute executes a tool call.
func (s *service) Execute(ctx context.Context, tool string, args json.RawMessage) (out interface{}, err error) {
	ctx, span := tracing.StartSpan(ctx, "executor.Execute", "INTERNAL")
	span.WithAttributes(map[string]string{"tool": tool})
	defer func() { tracing.EndSpan(span, err) }()

	method, signature, err := s.tools.LookupMethod(tool)
	if err != nil {
		return nil, err
	}

	if err = s.checkPolicy(ctx, tool, args); err != nil {
		return nil, err
	}

	input, err := s.typedValue(signature.Input, args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for %v: %w", tool, err)
	}
	output := newInstancePtr(signature.Output)

	if err = method(ctx, input, output); err != nil {
		return nil, err
	}

	if s.listener != nil {
		s.listener(tool, input, output)
	}
	return output, nil
}

// Invoke executes the tool and serialises its output to JSON.
func (s *service) Invoke(ctx context.Context, tool string, args json.RawMessage) (string, error) {
	output, err := s.Execute(ctx, tool, args)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %v output: %w", tool, err)
	}
	return string(data), nil
}

// checkPolicy enforces the context policy for programmatic callers. The
// conversation processor applies its own gate before calling Execute, so the
// context usually carries no policy on that path.
func (s *service) checkPolicy(ctx context.Context, tool string, args json.RawMessage) error {
	p := policy.FromContext(ctx)
	if p == nil {
		return nil
	}
	if !p.IsAllowed(tool) {
		return fmt.Errorf("tool %v blocked by policy", tool)
	}
	switch p.Mode {
	case policy.ModeDeny:
		return fmt.Errorf("tool %v blocked by policy", tool)
	case policy.ModeAsk:
		if p.Ask != nil {
			if !p.Ask(ctx, tool, s.argsMap(args), p) {
				return fmt.Errorf("tool %v rejected by user", tool)
			}
			return nil
		}
		if s.approval != nil {
			return s.awaitApproval(ctx, tool, args)
		}
		return fmt.Errorf("tool %v requires approval but no ask handler or approval service is configured", tool)
	}
	return nil
}

// awaitApproval files an approval request for the call and blocks until it is
// decided or the ask timeout elapses.
func (s *service) awaitApproval(ctx context.Context, tool string, args json.RawMessage) error {
	request := &approval.Request{
		ID:        idgen.New(),
		Tool:      tool,
		Args:      args,
		CreatedAt: clock.Now(),
	}
	if conversationID, ok := types.InvocationValue(ctx, types.InvocationConversationID); ok {
		request.ConversationID = conversationID
	}
	if callID, ok := types.InvocationValue(ctx, types.InvocationCallID); ok {
		request.CallID = callID
	}
	if err := s.approval.RequestApproval(ctx, request); err != nil {
		return fmt.Errorf("failed to request approval for %v: %w", tool, err)
	}
	decision, err := approval.WaitForDecision(ctx, s.approval, request.ID, s.askTimeout)
	if err != nil {
		return err
	}
	if !decision.Approved {
		reason := decision.Reason
		if reason == "" {
			reason = "rejected"
		}
		return fmt.Errorf("tool %v rejected: %v", tool, reason)
	}
	return nil
}

// argsMap decodes raw arguments into a map for the ask handler; best effort.
func (s *service) argsMap(args json.RawMessage) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	aMap := map[string]interface{}{}
	if err := json.Unmarshal(args, &aMap); err != nil {
		return nil
	}
	return toolbox.DeleteEmptyKeys(aMap)
}

// typedValue converts raw JSON arguments to the supplied type.
func (s *service) typedValue(aType reflect.Type, args json.RawMessage) (interface{}, error) {
	instance := newInstancePtr(aType)
	if len(args) == 0 {
		return instance, nil
	}
	var value interface{}
	if err := json.Unmarshal(args, &value); err != nil {
		return nil, err
	}
	if err := s.converter.Convert(value, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func newInstancePtr(t reflect.Type) interface{} {
	if t == nil {
		return &struct{}{}
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}

// New creates a new executor service instance.
func New(tools *extension.Tools, opts ...Option) Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true

	s := &service{
		tools:     tools,
		converter: conv.NewConverter(options),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}
