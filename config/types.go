package config

import (
	"fmt"

	"github.com/grovetools/navcore/channels"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration version written by SetDefaults.
const CurrentVersion = "1"

// Config represents the navcore.yml configuration
type Config struct {
	Version      string                       `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. 1)"`
	PrefsFile    string                       `yaml:"prefs_file,omitempty" toml:"prefs_file,omitempty" jsonschema:"description=Path of the persisted preferences file"`
	SettingsFile string                       `yaml:"settings_file,omitempty" toml:"settings_file,omitempty" jsonschema:"description=JSON or YAML dump of the emulator settings tree; relative paths resolve against this file"`
	WatchPrefs   *bool                        `yaml:"watch_prefs,omitempty" toml:"watch_prefs,omitempty" jsonschema:"description=Reload channel state when the preferences file changes (default: true)"`
	Channels     map[string]channels.Defaults `yaml:"channels,omitempty" toml:"channels,omitempty" jsonschema:"description=Default channel identifiers per category"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`

	// file is the path the configuration was loaded from.
	file string
}

// File returns the path the configuration was loaded from, or "".
func (c *Config) File() string {
	return c.file
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.WatchPrefs == nil {
		trueVal := true
		c.WatchPrefs = &trueVal
	}
	if c.Channels == nil {
		c.Channels = make(map[string]channels.Defaults)
	}
	for _, spec := range channels.DefaultSpecs() {
		key := string(spec.Category)
		d := c.Channels[key]
		if d.Release == "" {
			d.Release = spec.Defaults.Release
		}
		if d.Development == "" {
			d.Development = spec.Defaults.Development
		}
		c.Channels[key] = d
	}
}

// ShouldWatchPrefs reports whether the preferences file should be watched.
func (c *Config) ShouldWatchPrefs() bool {
	return c.WatchPrefs == nil || *c.WatchPrefs
}

// ChannelSpecs returns the built-in category descriptions with the
// configured defaults applied.
func (c *Config) ChannelSpecs() []channels.Spec {
	specs := channels.DefaultSpecs()
	for i, spec := range specs {
		d, ok := c.Channels[string(spec.Category)]
		if !ok {
			continue
		}
		if d.Release != "" {
			specs[i].Defaults.Release = d.Release
		}
		if d.Development != "" {
			specs[i].Defaults.Development = d.Development
		}
	}
	return specs
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded navcore.yml into the provided target struct. The target must be a
// pointer. A missing key leaves the target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// toDocument converts the configuration to the generic form the schema
// validator works on.
func (c *Config) toDocument() (interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}
