package types

import (
	"context"
	"reflect"
	"strings"
)

type Signatures []Signature

func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		sig := &s[i]
		if sig.Name == name {
			return sig
		}
	}
	return nil
}

// Signature	method signature
type Signature struct {
	Name        string
	Description string
	// Internal methods are not exposed to the language model as tools.
	Internal bool
	Input    reflect.Type
	Output   reflect.Type
}

// Executable is a function that can be executed
type Executable func(context context.Context, input, output interface{}) error

// QualifiedName builds the fully qualified "service.method" tool name.
func QualifiedName(service, method string) string {
	return service + "." + method
}

// SplitQualifiedName splits a "service.method" tool name. The method part is
// empty when no separator is present.
func SplitQualifiedName(name string) (service, method string) {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[:idx], name[idx+1:]
	}
	return name, ""
}
