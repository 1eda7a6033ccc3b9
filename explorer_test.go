package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDef() NodeDef {
	return NodeDef{
		ID: "1", Name: "root", IsFolder: true,
		Items: []NodeDef{
			{ID: "2", Name: "public", IsFolder: true, Items: []NodeDef{
				{ID: "3", Name: "index.html", Items: []NodeDef{}},
			}},
			{ID: "4", Name: "package.json", Items: []NodeDef{}},
		},
	}
}

func TestNodeDef_Count(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, sampleDef().Count())
	assert.Equal(t, 1, NodeDef{ID: "x"}.Count())
}

func TestNodeDef_Walk_PreOrder(t *testing.T) {
	t.Parallel()

	var visited []string
	completed := sampleDef().Walk(func(def NodeDef) bool {
		visited = append(visited, def.ID)
		return true
	})

	assert.True(t, completed)
	assert.Equal(t, []string{"1", "2", "3", "4"}, visited)
}

func TestNodeDef_Walk_StopsEarly(t *testing.T) {
	t.Parallel()

	var visited []string
	completed := sampleDef().Walk(func(def NodeDef) bool {
		visited = append(visited, def.ID)
		return def.ID != "2"
	})

	assert.False(t, completed)
	assert.Equal(t, []string{"1", "2"}, visited, "must not visit nodes after the stop")
}
