package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/explorer/internal/util"
	"gopkg.in/yaml.v3"
)

// CLI verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultRootID matches the root id of the explorer's sample data
	DefaultRootID   = "1"
	DefaultRootName = "root"

	// DefaultIDStrategy is the registered id generator used for new nodes
	DefaultIDStrategy = "counter"

	// DefaultMaxLabelLen is the longest accepted label in bytes; mirrors NAME_MAX
	DefaultMaxLabelLen = 255

	// DefaultMaxIDAttempts bounds how many generated ids are tried before giving up
	DefaultMaxIDAttempts = 8

	// DefaultAttrTimeout is the attribute cache timeout in seconds
	DefaultAttrTimeout = 1.0

	// DefaultEntryTimeout is the directory entry cache timeout in seconds
	DefaultEntryTimeout = 1.0

	DefaultFsName = "explorer"
	DefaultName   = "explorer"
)

// Config contains runtime configuration values for the explorer tree.
type Config struct {
	MountOptions
	LogLvl        util.LogLevel // Log level (Default info)
	RootID        string        // Id of the root node of a new empty tree (Default "1")
	RootName      string        // Label of the root node of a new empty tree (Default "root")
	IDStrategy    string        // Registered id generator name, "counter" or "uuid" (Default "counter")
	MaxLabelLen   int           // Longest accepted label in bytes; 0 disables the check (Default 255)
	MaxIDAttempts int           // Generated ids tried per insert before failing (Default 8)
	// NOTE: FUSE view only:

	AttrTimeout  float64 // Attribute cache timeout in seconds (Default 1.0)
	EntryTimeout float64 // Directory entry cache timeout in seconds (Default 1.0)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a CLI style verbosity between 1 (error) and 5 (trace) rather than
// a [util.LogLevel]; out of range values are clamped.
type ConfigOverride struct {
	LogLvl        *int     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	RootID        *string  `yaml:"root_id,omitempty" json:"root_id,omitempty"`
	RootName      *string  `yaml:"root_name,omitempty" json:"root_name,omitempty"`
	IDStrategy    *string  `yaml:"id_strategy,omitempty" json:"id_strategy,omitempty"`
	MaxLabelLen   *int     `yaml:"max_label_len,omitempty" json:"max_label_len,omitempty"`
	MaxIDAttempts *int     `yaml:"max_id_attempts,omitempty" json:"max_id_attempts,omitempty"`
	AttrTimeout   *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty"`
	EntryTimeout  *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty"`
	Debug         *bool    `yaml:"debug,omitempty" json:"debug,omitempty"`
	FsName        *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name          *string  `yaml:"name,omitempty" json:"name,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:        DefaultLogLvl,
		RootID:        DefaultRootID,
		RootName:      DefaultRootName,
		IDStrategy:    DefaultIDStrategy,
		MaxLabelLen:   DefaultMaxLabelLen,
		MaxIDAttempts: DefaultMaxIDAttempts,
		AttrTimeout:   DefaultAttrTimeout,
		EntryTimeout:  DefaultEntryTimeout,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerboseToLogLevel maps a CLI verbosity between 1 (error) and 5 (trace)
// onto a [util.LogLevel], clamping out of range values.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.RootID != nil {
		c.RootID = *override.RootID
	}
	if override.RootName != nil {
		c.RootName = *override.RootName
	}
	if override.IDStrategy != nil {
		c.IDStrategy = *override.IDStrategy
	}
	if override.MaxLabelLen != nil {
		c.MaxLabelLen = *override.MaxLabelLen
	}
	if override.MaxIDAttempts != nil {
		c.MaxIDAttempts = *override.MaxIDAttempts
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
