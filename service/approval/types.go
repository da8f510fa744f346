package approval

import (
	"encoding/json"
	"time"
)

// Event envelope published on the service queue.
type Event struct {
	Topic   string            // see topic constants below
	Data    interface{}       // *Request | *Decision
	Headers map[string]string `json:"headers,omitempty"` // optional – tenant, correlation-id etc.
}

// Standard event topics.
const (
	TopicRequestCreated  = "request.created"
	TopicRequestExpired  = "request.expired"
	TopicDecisionCreated = "decision.created"
)

// Request represents a request for user approval of a specific tool call
// before it can be carried out.
type Request struct {
	ID             string                 `json:"id"`                       // Globally unique, primary key
	ConversationID string                 `json:"conversationId,omitempty"` // Owning conversation
	CallID         string                 `json:"callId"`                   // Tool call identifier from the model
	Tool           string                 `json:"tool"`                     // "service.method"
	Args           json.RawMessage        `json:"args,omitempty"`           // JSON-encoded tool input, may be null
	CreatedAt      time.Time              `json:"createdAt"`                // RFC-3339 timestamp
	ExpiresAt      *time.Time             `json:"expiresAt,omitempty"`      // Optional deadline
	Meta           map[string]interface{} `json:"meta,omitempty"`           // Free-form map: tenant, user, environment, etc.
}

// Expired reports whether the request deadline has passed at the given time.
func (r *Request) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// Decision represents approval decision
type Decision struct {
	ID        string    `json:"id"` // same as request.ID
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}
