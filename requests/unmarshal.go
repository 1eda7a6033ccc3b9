// Package requests decodes hand written seed trees into [explorer.NodeDef].
package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/explorer"
)

// Format of a seed document
type Format string

const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// FormatFromPath picks the seed format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	default:
		return "", fmt.Errorf("unknown tree file extension: %s", path)
	}
}

// UnmarshalTree decodes a single root node in the given format and applies
// defaults to every node
func UnmarshalTree(data []byte, format Format) (explorer.NodeDef, error) {
	var dto NodeDTO
	switch format {
	case JSONFormat:
		if err := json.Unmarshal(data, &dto); err != nil {
			return explorer.NodeDef{}, fmt.Errorf("failed to unmarshal tree: %w", err)
		}
	case YAMLFormat:
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return explorer.NodeDef{}, fmt.Errorf("failed to unmarshal tree: %w", err)
		}
	default:
		return explorer.NodeDef{}, fmt.Errorf("unknown tree format: %q", format)
	}
	return convertNodeDTO(dto), nil
}

// LoadTreeFile reads and decodes a seed tree, choosing the format by extension
func LoadTreeFile(path string) (explorer.NodeDef, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return explorer.NodeDef{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return explorer.NodeDef{}, err
	}
	return UnmarshalTree(data, format)
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeDTO) explorer.NodeDef {
	def := explorer.NodeDef{
		ID:       string(valueOrDefault(dto.ID, FlexID(uuid.NewString()))),
		Name:     dto.Name,
		IsFolder: valueOrDefault(dto.IsFolder, len(dto.Items) > 0),
		Items:    make([]explorer.NodeDef, 0, len(dto.Items)),
	}
	for _, item := range dto.Items {
		def.Items = append(def.Items, convertNodeDTO(item))
	}
	return def
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
