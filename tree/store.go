// Package tree holds the explorer's in-memory folder/file hierarchy and the
// insert, delete and edit operations that locate a node by id and mutate the
// tree in place.
package tree

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brettbedarf/explorer"
	"github.com/brettbedarf/explorer/config"
	"github.com/brettbedarf/explorer/ids"
	"github.com/brettbedarf/explorer/internal/util"
)

// Store owns a tree with a single fixed root. A single RWMutex guards the
// whole tree: mutations hold the write lock for their full duration so no
// partially applied change is ever observable.
type Store struct {
	cfg    *config.Config
	gen    ids.Generator
	mu     sync.RWMutex
	root   *Node
	size   int                 // number of nodes currently in the tree. Protected by mu
	issued map[string]struct{} // every id ever placed in the tree; never shrinks. Protected by mu
}

// NewStore creates a tree holding only a root folder using cfg.RootID and
// cfg.RootName. New node ids come from gen.
//
// A nil cfg uses [config.NewDefaultConfig]; a nil gen uses a counter.
func NewStore(cfg *config.Config, gen ids.Generator) *Store {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	s := newStore(cfg, gen)
	s.setRoot(newNode(cfg.RootID, cfg.RootName, true))
	return s
}

func newStore(cfg *config.Config, gen ids.Generator) *Store {
	if gen == nil {
		gen = ids.NewCounterGenerator(0)
	}
	return &Store{
		cfg:    cfg,
		gen:    gen,
		issued: make(map[string]struct{}),
	}
}

// setRoot installs root as the tree and records its ids. Only used while
// constructing a store.
func (s *Store) setRoot(root *Node) {
	s.root = root
	root.walk(func(n *Node) {
		s.observeLocked(n.id)
	})
	s.size = root.count()
}

// Root returns the root's id, fixed at construction
func (s *Store) Root() string {
	return s.root.id
}

// Len returns the number of nodes in the tree including the root
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Insert creates a node labelled label inside the folder targetID.
// New folders go first in the target's children so they surface above
// existing entries; new files go last.
//
// Returns the same Store, mutated in place.
func (s *Store) Insert(targetID, label string, isFolder bool) (*Store, error) {
	if _, err := s.InsertNode(targetID, label, isFolder); err != nil {
		return nil, err
	}
	return s, nil
}

// InsertNode behaves like [Store.Insert] but returns the new node's id
func (s *Store) InsertNode(targetID, label string, isFolder bool) (string, error) {
	logger := util.GetLogger("Store.Insert")

	if err := s.validateLabel(label); err != nil {
		logger.Debug().Err(err).Str("target", targetID).Msg("Rejected label")
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.root.find(targetID)
	if target == nil {
		err := fmt.Errorf("%w: %s", ErrNotFound, targetID)
		logger.Debug().Err(err).Msg("Insert target missing")
		return "", err
	}
	if !target.isFolder {
		err := fmt.Errorf("%w: %s (%s)", ErrInvalidTarget, targetID, target.name)
		logger.Debug().Err(err).Msg("Insert target is a file")
		return "", err
	}

	id, err := s.nextIDLocked()
	if err != nil {
		logger.Error().Err(err).Str("target", targetID).Msg("Failed to allocate id")
		return "", err
	}

	node := newNode(id, label, isFolder)
	if isFolder {
		target.prependChild(node)
	} else {
		target.appendChild(node)
	}
	s.size++

	logger.Debug().
		Str("id", id).
		Str("path", node.path()).
		Bool("folder", isFolder).
		Msg("Inserted node")
	return id, nil
}

// Delete detaches targetID and its whole subtree from the tree.
// The detached nodes are discarded and their ids are never handed out again.
func (s *Store) Delete(targetID string) (*Store, error) {
	logger := util.GetLogger("Store.Delete")

	s.mu.Lock()
	defer s.mu.Unlock()

	if targetID == s.root.id {
		err := fmt.Errorf("%w: %s", ErrRootDeletionForbidden, targetID)
		logger.Debug().Err(err).Msg("Refused root deletion")
		return nil, err
	}

	node := s.root.find(targetID)
	if node == nil {
		err := fmt.Errorf("%w: %s", ErrNotFound, targetID)
		logger.Debug().Err(err).Msg("Delete target missing")
		return nil, err
	}

	path := node.path()
	removed := node.count()
	node.parent.removeChild(node)
	s.size -= removed

	logger.Debug().Str("id", targetID).Str("path", path).Int("removed", removed).Msg("Deleted subtree")
	return s, nil
}

// Edit replaces the label of targetID. Folder-ness and children are untouched.
func (s *Store) Edit(targetID, newLabel string) (*Store, error) {
	logger := util.GetLogger("Store.Edit")

	if err := s.validateLabel(newLabel); err != nil {
		logger.Debug().Err(err).Str("id", targetID).Msg("Rejected label")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.root.find(targetID)
	if node == nil {
		err := fmt.Errorf("%w: %s", ErrNotFound, targetID)
		logger.Debug().Err(err).Msg("Edit target missing")
		return nil, err
	}

	old := node.name
	node.name = newLabel
	logger.Debug().Str("id", targetID).Str("from", old).Str("to", newLabel).Msg("Renamed node")
	return s, nil
}

// Snapshot returns a deep copy of the whole tree
func (s *Store) Snapshot() explorer.NodeDef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return toDef(s.root)
}

// Find returns a deep copy of the subtree rooted at id
func (s *Store) Find(id string) (explorer.NodeDef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.root.find(id)
	if node == nil {
		return explorer.NodeDef{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return toDef(node), nil
}

// Path returns the slash separated labels from the root to id; "" for the root
func (s *Store) Path(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.root.find(id)
	if node == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return node.path(), nil
}

// validateLabel checks label is non-empty, within the configured length and
// usable as a single path component
func (s *Store) validateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLabel)
	}
	if s.cfg.MaxLabelLen > 0 && len(label) > s.cfg.MaxLabelLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidLabel, s.cfg.MaxLabelLen)
	}
	if strings.ContainsAny(label, "/\x00") {
		return fmt.Errorf("%w: %q contains '/' or NUL", ErrInvalidLabel, label)
	}
	return nil
}

// nextIDLocked draws ids from the generator until one has never been used in
// this tree. Caller must hold s.mu.Lock().
func (s *Store) nextIDLocked() (string, error) {
	attempts := max(s.cfg.MaxIDAttempts, 1)
	for range attempts {
		id := s.gen.Next()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; used {
			continue
		}
		s.observeLocked(id)
		return id, nil
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDExhausted, attempts)
}

// observeLocked records id as used and lets the generator skip past it.
// Caller must hold s.mu.Lock() or be constructing the store.
func (s *Store) observeLocked(id string) {
	s.issued[id] = struct{}{}
	if o, ok := s.gen.(ids.Observer); ok {
		o.Observe(id)
	}
}

func toDef(n *Node) explorer.NodeDef {
	def := explorer.NodeDef{
		ID:       n.id,
		Name:     n.name,
		IsFolder: n.isFolder,
		Items:    make([]explorer.NodeDef, 0, len(n.children)),
	}
	for _, child := range n.children {
		def.Items = append(def.Items, toDef(child))
	}
	return def
}
