package approval

import (
	"context"
	"encoding/json"
	"time"

	"github.com/viant/toolgate/conversation"
	"github.com/viant/toolgate/internal/clock"
	"github.com/viant/toolgate/service/store"
)

// PendingCall keeps the originally observed input of a gated tool call so
// that the exact request can be recovered after the round trip through an
// approval UI, regardless of what the UI echoes back.
type PendingCall struct {
	CallID string          `json:"callId"`
	Tool   string          `json:"tool"`
	Args   json.RawMessage `json:"args,omitempty"`
	SeenAt time.Time       `json:"seenAt"`
}

// Pending tracks gated calls between first sight and resolution. Entries are
// inserted on first sight and deleted on resolution; there is no eviction.
type Pending struct {
	calls store.Service[string, PendingCall]
}

// NewPending creates an in-memory pending call tracker.
func NewPending() *Pending {
	return &Pending{
		calls: store.NewMemoryStore[string, PendingCall](func(c *PendingCall) string { return c.CallID }),
	}
}

// Record stores the call input on first sight and reports whether the entry
// was created. Later sightings of the same call ID keep the original entry
// untouched.
func (p *Pending) Record(ctx context.Context, call *conversation.ToolCall) (*PendingCall, bool) {
	if existing, _ := p.calls.Load(ctx, call.ID); existing != nil {
		return existing, false
	}
	entry := &PendingCall{
		CallID: call.ID,
		Tool:   call.Tool,
		Args:   append(json.RawMessage(nil), call.Arguments...),
		SeenAt: clock.Now(),
	}
	_ = p.calls.Save(ctx, entry)
	return entry, true
}

// Lookup returns the recorded entry for the call ID or nil.
func (p *Pending) Lookup(ctx context.Context, callID string) *PendingCall {
	entry, _ := p.calls.Load(ctx, callID)
	return entry
}

// Resolve removes the entry once the call carries a result.
func (p *Pending) Resolve(ctx context.Context, callID string) {
	_ = p.calls.Delete(ctx, callID)
}

// List returns all unresolved entries.
func (p *Pending) List(ctx context.Context) []*PendingCall {
	entries, _ := p.calls.List(ctx)
	return entries
}
