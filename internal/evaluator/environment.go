package evaluator

// Environment binds parameter names to values for one activation. A call
// never sees its caller's bindings, so there is no outer chain, and an
// Environment is never shared between goroutines.
type Environment struct {
	store map[string]int64
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]int64, 1)}
}

func (e *Environment) Get(name string) (int64, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name string, val int64) int64 {
	e.store[name] = val
	return val
}
