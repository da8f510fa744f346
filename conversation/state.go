package conversation

// CallState classifies a gated tool call along the linear approval flow.
type CallState string

const (
	// StateStreaming - the model has not finished emitting the call yet.
	StateStreaming CallState = "streaming"
	// StateAwaitingApproval - the call is complete and waits for a decision.
	StateAwaitingApproval CallState = "awaitingApproval"
	// StateApproved - the user approved the call.
	StateApproved CallState = "approved"
	// StateDenied - the user rejected the call.
	StateDenied CallState = "denied"
)

// State derives the approval flow state of the call. The flow is linear:
// streaming -> awaitingApproval -> approved|denied.
func (c *ToolCall) State() CallState {
	switch {
	case c.Partial:
		return StateStreaming
	case c.Decision == DecisionApproved:
		return StateApproved
	case c.Decision == DecisionDenied:
		return StateDenied
	default:
		return StateAwaitingApproval
	}
}

// CleanIncomplete returns a copy of messages with unresolved tool calls
// removed. Providers reject histories that contain calls without matching
// results, so the incomplete ones have to be dropped before resubmission.
// Assistant messages left with no content and no calls are dropped entirely.
func CleanIncomplete(messages []*Message) []*Message {
	cleaned := make([]*Message, 0, len(messages))
	for _, message := range messages {
		if len(message.ToolCalls) == 0 {
			cleaned = append(cleaned, message)
			continue
		}
		resolved := make([]*ToolCall, 0, len(message.ToolCalls))
		for _, call := range message.ToolCalls {
			if call.Resolved() {
				resolved = append(resolved, call)
			}
		}
		if len(resolved) == len(message.ToolCalls) {
			cleaned = append(cleaned, message)
			continue
		}
		if len(resolved) == 0 && message.Content == "" {
			continue
		}
		clone := *message
		clone.ToolCalls = resolved
		cleaned = append(cleaned, &clone)
	}
	return cleaned
}
