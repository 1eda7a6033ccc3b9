package tree

import (
	"testing"

	"github.com/brettbedarf/explorer"
	"github.com/brettbedarf/explorer/config"
	"github.com/brettbedarf/explorer/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreFromDef(t *testing.T) {
	t.Parallel()

	s := newSampleStore(t)

	assert.Equal(t, "1", s.Root())
	assert.Equal(t, 7, s.Len())
	assert.Equal(t, []string{"public", "src", "package.json"}, childNames(t, s, "1"),
		"seed order must be preserved")
}

func TestNewStoreFromDef_CustomRootID(t *testing.T) {
	t.Parallel()

	def := explorer.NodeDef{ID: "home", Name: "home", IsFolder: true}
	s, err := NewStoreFromDef(nil, nil, def)

	require.NoError(t, err)
	assert.Equal(t, "home", s.Root(), "seed root wins over cfg.RootID")
	_, err = s.Delete("home")
	assert.ErrorIs(t, err, ErrRootDeletionForbidden)
}

func TestNewStoreFromDef_CounterSkipsSeededIDs(t *testing.T) {
	t.Parallel()

	def := explorer.NodeDef{
		ID: "1", Name: "root", IsFolder: true,
		Items: []explorer.NodeDef{{ID: "11", Name: "package.json"}},
	}
	s, err := NewStoreFromDef(config.NewDefaultConfig(), ids.NewCounterGenerator(0), def)
	require.NoError(t, err)

	id, err := s.InsertNode("1", "new", false)
	require.NoError(t, err)
	assert.Equal(t, "12", id)
}

func TestNewStoreFromDef_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     explorer.NodeDef
		wantErr error
	}{
		{
			name:    "root is a file",
			def:     explorer.NodeDef{ID: "1", Name: "root"},
			wantErr: ErrInvalidTarget,
		},
		{
			name: "duplicate ids",
			def: explorer.NodeDef{ID: "1", Name: "root", IsFolder: true, Items: []explorer.NodeDef{
				{ID: "3", Name: "static", IsFolder: true},
				{ID: "7", Name: "src", IsFolder: true, Items: []explorer.NodeDef{
					{ID: "3", Name: "Comments", IsFolder: true},
				}},
			}},
			wantErr: ErrDuplicateID,
		},
		{
			name: "file with items",
			def: explorer.NodeDef{ID: "1", Name: "root", IsFolder: true, Items: []explorer.NodeDef{
				{ID: "2", Name: "a.txt", Items: []explorer.NodeDef{{ID: "3", Name: "b.txt"}}},
			}},
			wantErr: ErrInvalidTarget,
		},
		{
			name: "empty id",
			def: explorer.NodeDef{ID: "1", Name: "root", IsFolder: true, Items: []explorer.NodeDef{
				{Name: "a.txt"},
			}},
			wantErr: ErrInvalidID,
		},
		{
			name: "empty name",
			def: explorer.NodeDef{ID: "1", Name: "root", IsFolder: true, Items: []explorer.NodeDef{
				{ID: "2"},
			}},
			wantErr: ErrInvalidLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewStoreFromDef(nil, nil, tt.def)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}
