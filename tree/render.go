package tree

import (
	"bufio"
	"io"
	"strings"
)

const (
	folderMarker = "[+] "
	fileMarker   = "-   "
	indentUnit   = "    "
)

// Render writes an indented listing of the tree to w, one node per line in
// display order:
//
//	[+] root
//	    [+] docs
//	    -   readme.md
func (s *Store) Render(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bw := bufio.NewWriter(w)
	renderNode(bw, s.root, 0)
	return bw.Flush()
}

func renderNode(w *bufio.Writer, n *Node, depth int) {
	w.WriteString(strings.Repeat(indentUnit, depth))
	if n.isFolder {
		w.WriteString(folderMarker)
	} else {
		w.WriteString(fileMarker)
	}
	w.WriteString(n.name)
	w.WriteByte('\n')
	for _, child := range n.children {
		renderNode(w, child, depth+1)
	}
}
