package requests

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeDTO is the JSON/YAML representation of [explorer.NodeDef] as written by
// hand in seed files. Optional fields are pointers so defaults can be applied.
type NodeDTO struct {
	ID       *FlexID   `json:"id,omitempty" yaml:"id,omitempty"`             // Generated when missing
	Name     string    `json:"name" yaml:"name"`                             // Display label
	IsFolder *bool     `json:"isFolder,omitempty" yaml:"isFolder,omitempty"` // Defaults to true when items are present
	Items    []NodeDTO `json:"items,omitempty" yaml:"items,omitempty"`
}

// FlexID accepts either a string or an integer id so seeds may write
// `"id": "7"` or `"id": 7`
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or integer: %s", b)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("id must be a string or integer: %s", b)
	}
	*f = FlexID(n.String())
	return nil
}

func (f *FlexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", value.Line)
	}
	switch value.ShortTag() {
	case "!!str", "!!int":
		*f = FlexID(value.Value)
		return nil
	default:
		return fmt.Errorf("line %d: id must be a string or integer, got %s", value.Line, value.ShortTag())
	}
}
