package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viant/toolgate/conversation"
	"github.com/viant/toolgate/model/types"
	"github.com/viant/toolgate/policy"
	"github.com/viant/toolgate/progress"
)

// Invoker executes a tool call and returns the JSON-encoded result. It is a
// narrow view of the executor service so that this package does not depend on
// the executor implementation.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args json.RawMessage) (string, error)
}

// Processor applies the human-in-the-loop approval flow to a conversation.
// It performs a single linear pass over the latest assistant message:
// ungated calls are executed directly, gated calls are parked until a
// decision arrives, decided calls are executed or short-circuited to the
// denial sentinel.
type Processor struct {
	service Service
	pending *Pending
	gate    *policy.Policy
	invoker Invoker
	ttl     time.Duration
}

// ProcessorOption customises a Processor.
type ProcessorOption func(*Processor)

// WithGate sets the approval policy deciding which tools are gated.
func WithGate(gate *policy.Policy) ProcessorOption {
	return func(p *Processor) { p.gate = gate }
}

// WithService attaches the approval bookkeeping service; pending requests are
// filed there so that approval UIs can list and decide them.
func WithService(service Service) ProcessorOption {
	return func(p *Processor) { p.service = service }
}

// WithRequestTTL sets how long a filed approval request stays pending before
// it expires. Zero means requests never expire.
func WithRequestTTL(ttl time.Duration) ProcessorOption {
	return func(p *Processor) { p.ttl = ttl }
}

// NewProcessor creates a conversation processor executing tool calls through
// the supplied invoker.
func NewProcessor(invoker Invoker, options ...ProcessorOption) *Processor {
	ret := &Processor{
		invoker: invoker,
		pending: NewPending(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Pending exposes the pending call tracker.
func (p *Processor) Pending() *Pending { return p.pending }

// Process walks the latest assistant message and advances every tool call
// along the approval flow. The input slice is updated in place and returned.
// Calls that are still streaming are left untouched; use
// conversation.CleanIncomplete before resubmitting the history to a model.
func (p *Processor) Process(ctx context.Context, conversationID string, messages []*conversation.Message) ([]*conversation.Message, error) {
	target := conversation.LastAssistant(messages)
	if target == nil {
		return messages, nil
	}
	ctx = types.EnsureInvocationContext(ctx, types.InvocationConversationID, conversationID)
	for _, call := range target.ToolCalls {
		if call.Resolved() {
			p.pending.Resolve(ctx, call.ID)
			continue
		}
		if !p.gate.RequiresApproval(call.Tool) {
			if call.Partial {
				continue
			}
			progress.UpdateCtx(ctx, progress.Delta{Calls: 1})
			p.execute(ctx, call, call.Arguments)
			continue
		}
		switch call.State() {
		case conversation.StateStreaming:
			continue
		case conversation.StateAwaitingApproval:
			entry, first := p.pending.Record(ctx, call)
			if first {
				progress.UpdateCtx(ctx, progress.Delta{Calls: 1, Gated: 1, Pending: 1})
			}
			p.file(ctx, conversationID, entry)
		case conversation.StateApproved:
			args := call.Arguments
			delta := progress.Delta{}
			// A call decided before it was ever parked still has to be
			// counted; a parked one leaves the pending set instead.
			if entry := p.pending.Lookup(ctx, call.ID); entry != nil {
				args = entry.Args
				delta.Pending = -1
			} else {
				delta.Calls = 1
				delta.Gated = 1
			}
			p.execute(ctx, call, args)
			p.decide(ctx, call.ID, true, "")
			p.pending.Resolve(ctx, call.ID)
			progress.UpdateCtx(ctx, delta)
		case conversation.StateDenied:
			delta := progress.Delta{Denied: 1}
			if p.pending.Lookup(ctx, call.ID) != nil {
				delta.Pending = -1
			} else {
				delta.Calls = 1
				delta.Gated = 1
			}
			call.Result = conversation.DeniedResult
			p.decide(ctx, call.ID, false, "user denied")
			p.pending.Resolve(ctx, call.ID)
			progress.UpdateCtx(ctx, delta)
		}
	}
	return messages, nil
}

// AwaitingApproval returns the gated calls of the latest assistant message
// that still wait for a decision.
func (p *Processor) AwaitingApproval(messages []*conversation.Message) []*conversation.ToolCall {
	target := conversation.LastAssistant(messages)
	if target == nil {
		return nil
	}
	var waiting []*conversation.ToolCall
	for _, call := range target.ToolCalls {
		if call.Resolved() || !p.gate.RequiresApproval(call.Tool) {
			continue
		}
		if call.State() == conversation.StateAwaitingApproval {
			waiting = append(waiting, call)
		}
	}
	return waiting
}

// execute invokes the tool exactly once and embeds failures as "Error: ..."
// results rather than aborting the pass.
func (p *Processor) execute(ctx context.Context, call *conversation.ToolCall, args json.RawMessage) {
	ctx = types.EnsureInvocationContext(ctx, types.InvocationCallID, call.ID)
	result, err := p.invoker.Invoke(ctx, call.Tool, args)
	if err != nil {
		call.Result = fmt.Sprintf("Error: %v", err)
		progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
		return
	}
	call.Result = result
	progress.UpdateCtx(ctx, progress.Delta{Executed: 1})
}

func (p *Processor) file(ctx context.Context, conversationID string, entry *PendingCall) {
	if p.service == nil {
		return
	}
	request := &Request{
		ID:             entry.CallID,
		ConversationID: conversationID,
		CallID:         entry.CallID,
		Tool:           entry.Tool,
		Args:           entry.Args,
		CreatedAt:      entry.SeenAt,
	}
	if p.ttl > 0 {
		deadline := entry.SeenAt.Add(p.ttl)
		request.ExpiresAt = &deadline
	}
	// RequestApproval is idempotent - re-filing an already pending call
	// overwrites the previous copy under the same ID.
	_ = p.service.RequestApproval(ctx, request)
}

func (p *Processor) decide(ctx context.Context, id string, approved bool, reason string) {
	if p.service == nil {
		return
	}
	// The request may have been decided through the service already - the
	// "already decided" error is expected then.
	_, _ = p.service.Decide(ctx, id, approved, reason)
}
