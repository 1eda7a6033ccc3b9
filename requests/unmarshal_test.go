package requests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/explorer"
)

const sampleJSON = `{
	"id": "1",
	"name": "root",
	"isFolder": true,
	"items": [
		{"id": 2, "name": "public", "isFolder": true, "items": [
			{"id": "4", "name": "index.html", "isFolder": false, "items": []}
		]},
		{"id": "11", "name": "package.json", "isFolder": false}
	]
}`

const sampleYAML = `
id: 1
name: root
isFolder: true
items:
  - id: "2"
    name: public
    items:
      - id: 4
        name: index.html
  - id: 11
    name: package.json
`

func expectedSample() explorer.NodeDef {
	return explorer.NodeDef{
		ID: "1", Name: "root", IsFolder: true,
		Items: []explorer.NodeDef{
			{ID: "2", Name: "public", IsFolder: true, Items: []explorer.NodeDef{
				{ID: "4", Name: "index.html", IsFolder: false, Items: []explorer.NodeDef{}},
			}},
			{ID: "11", Name: "package.json", IsFolder: false, Items: []explorer.NodeDef{}},
		},
	}
}

func TestUnmarshalTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", sampleJSON, JSONFormat},
		{"yaml", sampleYAML, YAMLFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, err := UnmarshalTree([]byte(tt.data), tt.format)

			require.NoError(t, err)
			assert.Equal(t, expectedSample(), def)
		})
	}
}

func TestUnmarshalTree_Defaults(t *testing.T) {
	t.Parallel()

	data := `{"name": "root", "items": [{"name": "empty-dir", "isFolder": true}, {"name": "a.txt"}]}`
	def, err := UnmarshalTree([]byte(data), JSONFormat)
	require.NoError(t, err)

	assert.True(t, def.IsFolder, "nodes with items default to folders")
	_, err = uuid.Parse(def.ID)
	assert.NoError(t, err, "missing ids default to a uuid")

	require.Len(t, def.Items, 2)
	assert.True(t, def.Items[0].IsFolder, "explicit isFolder wins")
	assert.False(t, def.Items[1].IsFolder, "nodes without items default to files")
	assert.NotEqual(t, def.Items[0].ID, def.Items[1].ID)
}

func TestUnmarshalTree_BadIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json float", `{"id": 1.5, "name": "root"}`, JSONFormat},
		{"json bool", `{"id": true, "name": "root"}`, JSONFormat},
		{"yaml float", "id: 1.5\nname: root\n", YAMLFormat},
		{"yaml list", "id: [1]\nname: root\n", YAMLFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnmarshalTree([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "id must be")
		})
	}
}

func TestUnmarshalTree_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalTree([]byte(sampleJSON), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tree format")
}

func TestLoadTreeFile(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"tree.json", "tree.yaml", "tree.YML"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			data := sampleYAML
			if filepath.Ext(name) == ".json" {
				data = sampleJSON
			}
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

			def, err := LoadTreeFile(path)

			require.NoError(t, err)
			assert.Equal(t, expectedSample(), def)
		})
	}
}

func TestLoadTreeFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTreeFile(filepath.Join(t.TempDir(), "tree.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown tree file extension")
	})
	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTreeFile(filepath.Join(t.TempDir(), "tree.json"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}
