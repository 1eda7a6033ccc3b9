package ids

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// Factory builds a fresh Generator. Each tree gets its own generator so
// counters are not shared between trees.
type Factory func() Generator

// Registry maps strategy names (i.e. config id_strategy) to generator factories
type Registry struct {
	factories *xsync.Map[string, Factory]
}

func NewRegistry() *Registry {
	return &Registry{factories: xsync.NewMap[string, Factory]()}
}

// Register ties a factory to a strategy name. The first registration for a
// name wins; later ones are ignored and reported with false.
func (r *Registry) Register(name string, factory Factory) bool {
	_, loaded := r.factories.LoadOrStore(name, factory)
	return !loaded
}

// Get builds a new Generator for the named strategy.
func (r *Registry) Get(name string) (Generator, error) {
	factory, ok := r.factories.Load(name)
	if !ok {
		return nil, fmt.Errorf("no id generator registered for %q", name)
	}
	return factory(), nil
}

// Names returns the registered strategy names in no particular order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.factories.Size())
	r.factories.Range(func(name string, _ Factory) bool {
		names = append(names, name)
		return true
	})
	return names
}

var defaultRegistry = NewRegistry()

// Register adds a factory to the default registry. See [Registry.Register]
func Register(name string, factory Factory) bool {
	return defaultRegistry.Register(name, factory)
}

// Get builds a generator from the default registry. All expected strategies
// should be registered with [Register] or [RegisterBuiltins] first.
func Get(name string) (Generator, error) {
	return defaultRegistry.Get(name)
}
