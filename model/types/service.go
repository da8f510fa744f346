package types

// Service is a tool service interface. A service groups one or more related
// methods (for example weather.current, weather.locate) that a language model
// can invoke as tools.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
