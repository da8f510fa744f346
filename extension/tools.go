package extension

import (
	"sync"

	"github.com/viant/toolgate/model/types"
	"github.com/viant/x"
)

// Tools provides the tool service registry. Tool calls address methods by
// their fully qualified "service.method" name; the registry resolves the
// service part.
type Tools struct {
	types    *Types
	services map[string]types.Service
	mux      sync.RWMutex
}

func (s *Tools) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Tools) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// LookupMethod resolves a fully qualified tool name into an executable and
// its signature.
func (s *Tools) LookupMethod(qualified string) (types.Executable, *types.Signature, error) {
	serviceName, methodName := types.SplitQualifiedName(qualified)
	service := s.Lookup(serviceName)
	if service == nil {
		return nil, nil, types.NewServiceNotFoundError(serviceName)
	}
	method, err := service.Method(methodName)
	if err != nil {
		return nil, nil, err
	}
	signature := service.Methods().Lookup(methodName)
	if signature == nil {
		return nil, nil, types.NewMethodNotFoundError(qualified)
	}
	return method, signature, nil
}

// Register registers a service
func (s *Tools) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if typer, ok := service.(DataTypeIniter); ok {
		typer.InitTypes(s.types)
	}
	s.services[service.Name()] = service
}

// Services returns all registered services.
func (s *Tools) Services() []types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	out := make([]types.Service, 0, len(s.services))
	for _, service := range s.services {
		out = append(out, service)
	}
	return out
}

// DataTypeIniter lets a service contribute extension data types on
// registration.
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// NewTools creates a new tool registry
func NewTools(goTypes ...*x.Type) *Tools {
	ret := &Tools{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
