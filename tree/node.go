package tree

import "slices"

// Node is a folder or file in the tree. A Node is owned exclusively by its
// parent's children slice; parent is a back-reference used only to detach.
//
// Nodes carry no lock of their own. All access goes through the owning
// [Store], which guards the whole tree.
type Node struct {
	id       string
	name     string
	isFolder bool
	parent   *Node
	children []*Node
}

func newNode(id, name string, isFolder bool) *Node {
	return &Node{
		id:       id,
		name:     name,
		isFolder: isFolder,
		children: make([]*Node, 0),
	}
}

// find returns the first node with id in pre-order (node first, then each
// child left to right) or nil if there is none
func (n *Node) find(id string) *Node {
	if n.id == id {
		return n
	}
	for _, child := range n.children {
		if found := child.find(id); found != nil {
			return found
		}
	}
	return nil
}

// prependChild links child as the first child
func (n *Node) prependChild(child *Node) {
	n.children = slices.Insert(n.children, 0, child)
	child.parent = n
}

// appendChild links child as the last child
func (n *Node) appendChild(child *Node) {
	n.children = append(n.children, child)
	child.parent = n
}

// removeChild unlinks child and clears its parent. Returns false when child
// is not one of n's children.
func (n *Node) removeChild(child *Node) bool {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// count returns the number of nodes in the subtree rooted at n
func (n *Node) count() int {
	cnt := 1
	for _, child := range n.children {
		cnt += child.count()
	}
	return cnt
}

// walk visits n and its descendants in pre-order
func (n *Node) walk(fn func(node *Node)) {
	fn(n)
	for _, child := range n.children {
		child.walk(fn)
	}
}

// path returns the slash separated labels from the root down to n.
// The root's path is "".
func (n *Node) path() string {
	if n.parent == nil {
		return ""
	}
	pPath := n.parent.path()
	if pPath == "" {
		return n.name
	}
	return pPath + "/" + n.name
}
