package tree

import (
	"fmt"

	"github.com/brettbedarf/explorer"
	"github.com/brettbedarf/explorer/config"
	"github.com/brettbedarf/explorer/ids"
	"github.com/brettbedarf/explorer/internal/util"
)

// NewStoreFromDef builds a Store from a seed definition. The definition's
// root becomes the store's root regardless of cfg.RootID.
//
// The seed must be a strict tree: non-empty unique ids, valid labels, a root
// folder and no items under files. Generators implementing [ids.Observer]
// are told about every seeded id.
func NewStoreFromDef(cfg *config.Config, gen ids.Generator, def explorer.NodeDef) (*Store, error) {
	logger := util.GetLogger("NewStoreFromDef")

	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	s := newStore(cfg, gen)

	if !def.IsFolder {
		err := fmt.Errorf("%w: root %s must be a folder", ErrInvalidTarget, def.ID)
		logger.Error().Err(err).Msg("Invalid seed tree")
		return nil, err
	}

	seen := make(map[string]struct{}, def.Count())
	root, err := s.buildNode(def, seen)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid seed tree")
		return nil, err
	}
	s.setRoot(root)

	logger.Debug().Str("root", root.id).Int("nodes", s.size).Msg("Loaded seed tree")
	return s, nil
}

func (s *Store) buildNode(def explorer.NodeDef, seen map[string]struct{}) (*Node, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("%w: empty id for %q", ErrInvalidID, def.Name)
	}
	if _, dup := seen[def.ID]; dup {
		return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateID, def.ID, def.Name)
	}
	seen[def.ID] = struct{}{}

	if err := s.validateLabel(def.Name); err != nil {
		return nil, fmt.Errorf("node %s: %w", def.ID, err)
	}
	if !def.IsFolder && len(def.Items) > 0 {
		return nil, fmt.Errorf("%w: file %s (%s) has %d items", ErrInvalidTarget, def.ID, def.Name, len(def.Items))
	}

	node := newNode(def.ID, def.Name, def.IsFolder)
	for _, item := range def.Items {
		child, err := s.buildNode(item, seen)
		if err != nil {
			return nil, err
		}
		node.appendChild(child)
	}
	return node, nil
}
