package tree

import (
	"fmt"

	"github.com/brettbedarf/explorer"
)

var _ explorer.NodeInfo = (*NodeContext)(nil)

// NodeContext wraps a [Node] while the owning Store is read-locked.
// Child contexts returned by Children share the same lock and must not be
// closed separately. Calling Close() on the context obtained from the Store
// unwinds all cleanup callbacks in reverse order.
//
// Do NOT call mutating Store methods while a context is open; the write lock
// would wait on the read lock held by the context.
//
// NOTE: NodeContext itself is **not** thread-safe meaning references
// to it should not be shared between goroutines
type NodeContext struct {
	node     *Node
	closeFns []func()
}

// NodeCtx returns a read-locked NodeContext for id.
//
// Caller is responsible for closing the context when done `defer ctx.Close()`.
func (s *Store) NodeCtx(id string) (*NodeContext, error) {
	s.mu.RLock()
	node := s.root.find(id)
	if node == nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ctx := &NodeContext{node: node}
	ctx.AddClose(s.mu.RUnlock)
	return ctx, nil
}

// RootCtx returns a read-locked NodeContext for the root
func (s *Store) RootCtx() *NodeContext {
	s.mu.RLock()
	ctx := &NodeContext{node: s.root}
	ctx.AddClose(s.mu.RUnlock)
	return ctx
}

func (ctx *NodeContext) ID() string {
	return ctx.node.id
}

func (ctx *NodeContext) Name() string {
	return ctx.node.name
}

func (ctx *NodeContext) IsFolder() bool {
	return ctx.node.isFolder
}

// IsRoot reports whether the node has no parent
func (ctx *NodeContext) IsRoot() bool {
	return ctx.node.parent == nil
}

// Path returns the slash separated labels from the root; "" for the root
func (ctx *NodeContext) Path() string {
	return ctx.node.path()
}

func (ctx *NodeContext) ChildCount() int {
	return len(ctx.node.children)
}

// Children returns contexts for the immediate children in display order.
// They share this context's lock.
func (ctx *NodeContext) Children() []*NodeContext {
	children := make([]*NodeContext, 0, len(ctx.node.children))
	for _, ch := range ctx.node.children {
		children = append(children, &NodeContext{node: ch})
	}
	return children
}

// ChildByName returns the first child labelled name, or nil
func (ctx *NodeContext) ChildByName(name string) *NodeContext {
	for _, ch := range ctx.node.children {
		if ch.name == name {
			return &NodeContext{node: ch}
		}
	}
	return nil
}

// AddClose pushes a cleanup callback (e.g., unlock) onto the end of the stack.
func (ctx *NodeContext) AddClose(fn func()) {
	ctx.closeFns = append(ctx.closeFns, fn)
}

// Close unwinds all cleanup callbacks in reverse order.
// Safe to call even if ctx is nil or no locks were acquired; it is
// a no-op in those cases, so you can `defer ctx.Close()` unconditionally.
//
// Example:
//
//	ctx, err := store.NodeCtx(id)
//	if err != nil { ... }
//	defer ctx.Close()
func (ctx *NodeContext) Close() {
	if ctx == nil {
		return
	}
	for i := len(ctx.closeFns) - 1; i >= 0; i-- {
		ctx.closeFns[i]()
	}
	ctx.closeFns = nil
}
