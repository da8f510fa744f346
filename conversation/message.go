package conversation

import (
	"encoding/json"
	"time"
)

// Role identifies the author of a message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single chat message. Assistant messages may carry tool
// calls; tool results are recorded in place on the originating call so that a
// single message captures the full request/response round trip.
type Message struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content,omitempty"`
	ToolCalls []*ToolCall `json:"toolCalls,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToolCall represents a structured request from a language model to invoke a
// registered tool method.
type ToolCall struct {
	ID   string `json:"id"`
	Tool string `json:"tool"` // fully-qualified service.method

	// Arguments holds the JSON-encoded tool input. While the model is still
	// streaming the call Partial is true and Arguments may be truncated.
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Partial   bool            `json:"partial,omitempty"`

	// Decision records the human answer for gated calls, DecisionApproved or
	// DecisionDenied. Empty means no decision has been made yet.
	Decision string `json:"decision,omitempty"`

	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Human decision values carried back through the approval UI round trip.
const (
	DecisionApproved = "yes"
	DecisionDenied   = "no"
)

// DeniedResult is the sentinel embedded as a tool result when the user
// rejects a gated call. It is a plain string so that it survives transports
// that only carry tool results verbatim.
const DeniedResult = "Error: user denied tool execution"

// Resolved reports whether the call already carries a result or an error.
func (c *ToolCall) Resolved() bool {
	return c != nil && (c.Result != "" || c.Error != "")
}

// LastAssistant returns the most recent assistant message or nil.
func LastAssistant(messages []*Message) *Message {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant {
			return messages[i]
		}
	}
	return nil
}
