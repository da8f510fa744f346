// Package conversation defines the chat message and tool-call model shared by
// the approval processor and the example agents. It is transport-agnostic so
// that provider SDK message shapes can be mapped onto it.
package conversation
