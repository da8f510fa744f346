// Package approval implements the human-in-the-loop tool approval layer.
// It allows selected tool calls to be paused until an explicit approval or
// reject decision is recorded.
package approval
