package ids

type BuiltInStrategy = string

const (
	CounterStrategy BuiltInStrategy = "counter"
	UUIDStrategy    BuiltInStrategy = "uuid"
)

// RegisterBuiltins registers all built-in strategies with the default registry
// or only the specific ones if names are provided
func RegisterBuiltins(names ...BuiltInStrategy) {
	registerBuiltins(defaultRegistry, names...)
}

func registerBuiltins(r *Registry, names ...BuiltInStrategy) {
	if len(names) == 0 {
		names = append(names, CounterStrategy, UUIDStrategy)
	}

	for _, name := range names {
		switch name {
		case CounterStrategy:
			r.Register(CounterStrategy, func() Generator { return NewCounterGenerator(0) })
		case UUIDStrategy:
			r.Register(UUIDStrategy, func() Generator { return UUIDGenerator{} })
		}
	}
}
