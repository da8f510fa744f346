// Package toolgate provides a human-in-the-loop approval layer for chat-agent
// tool calls, together with a small set of built-in tools.
//
// The package is organised around pluggable service layers:
//
//   - extension – registry of tool services and their IO types
//   - executor  – policy-gated tool execution with type conversion
//   - approval  – conversation processing with human-in-the-loop approval
//   - action    – built-in tools (weather, lint, system/exec)
//
// End-users typically interact via the high-level Service façade exposed by
// the root package:
//
//	srv, _ := toolgate.New(ctx)
//	messages, _ = srv.Processor().Process(ctx, conversationID, messages)
//
// Gated tool calls are parked until a decision ("yes" or "no") is written
// back into the conversation; approved calls run exactly once with the
// originally recorded arguments, denied calls short-circuit to a denial
// message. For more details see the individual sub-packages.
package toolgate
