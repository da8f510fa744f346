// Package extension implements the tool service registry used by the
// executor to resolve fully qualified tool names into executable methods.
package extension
