package types

import "context"

type invocationContextKey string

// InvocationContextKey carries per-invocation metadata (conversation id,
// call id, user) through the executor down to tool implementations.
var InvocationContextKey = invocationContextKey("invocation-context")

// Well-known invocation metadata keys.
const (
	InvocationConversationID = "conversationID"
	InvocationCallID         = "callID"
)

// EnsureInvocationContext stores key/value metadata pairs under
// InvocationContextKey, creating the carrier map when absent.
func EnsureInvocationContext(ctx context.Context, pairs ...string) context.Context {
	v := ctx.Value(InvocationContextKey)
	if v == nil {
		ctx = context.WithValue(ctx, InvocationContextKey, map[string]any{})
	}
	values := ctx.Value(InvocationContextKey).(map[string]any)
	for i := 0; i+1 < len(pairs); i += 2 {
		values[pairs[i]] = pairs[i+1]
	}
	return ctx
}

// InvocationValue reads a string value stored by EnsureInvocationContext.
func InvocationValue(ctx context.Context, key string) (string, bool) {
	values, ok := ctx.Value(InvocationContextKey).(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := values[key].(string)
	return value, ok
}
