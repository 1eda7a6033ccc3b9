// Package ids allocates identifiers for new tree nodes.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces candidate ids for new nodes. Callers are responsible for
// checking candidates against ids already in use.
type Generator interface {
	Next() string
}

// Observer is optionally implemented by generators that want to learn about
// ids allocated elsewhere, i.e. ids loaded from a seed tree.
type Observer interface {
	Observe(id string)
}

// CounterGenerator hands out decimal ids from a monotonic counter.
// Safe for concurrent use.
type CounterGenerator struct {
	last atomic.Uint64 // last id handed out or observed
}

// NewCounterGenerator returns a generator whose first id is start+1
func NewCounterGenerator(start uint64) *CounterGenerator {
	g := &CounterGenerator{}
	g.last.Store(start)
	return g
}

func (g *CounterGenerator) Next() string {
	return strconv.FormatUint(g.last.Add(1), 10)
}

// Observe advances the counter past id when id is a decimal number so later
// ids never collide with it. Non-numeric ids are ignored.
func (g *CounterGenerator) Observe(id string) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return
	}
	for {
		cur := g.last.Load()
		if n <= cur || g.last.CompareAndSwap(cur, n) {
			return
		}
	}
}

// UUIDGenerator hands out random (v4) UUID strings
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return uuid.NewString()
}
