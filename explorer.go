// Package explorer contains core domain types and interfaces for the explorer tree
package explorer

// NodeDef is the serializable form of a tree node. It is used for seed
// definitions as well as read-only snapshots of a live tree.
//
// Items is always non-nil in snapshots so files encode as `"items": []`
type NodeDef struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	IsFolder bool      `json:"isFolder" yaml:"isFolder"`
	Items    []NodeDef `json:"items" yaml:"items"`
}

// Count returns the number of nodes in the definition including itself
func (d NodeDef) Count() int {
	cnt := 1
	for _, item := range d.Items {
		cnt += item.Count()
	}
	return cnt
}

// Walk visits d and its descendants in pre-order until fn returns false.
// Returns false if the walk was stopped early.
func (d NodeDef) Walk(fn func(def NodeDef) bool) bool {
	if !fn(d) {
		return false
	}
	for _, item := range d.Items {
		if !item.Walk(fn) {
			return false
		}
	}
	return true
}

// NodeInfo provides read-only access to node information for presentation layers
type NodeInfo interface {
	// ID returns the node's unique identifier
	ID() string

	// Name returns the node's display label
	Name() string

	// IsFolder reports whether the node may have children
	IsFolder() bool

	// ChildCount returns the number of immediate children
	ChildCount() int
}
