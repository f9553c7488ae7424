package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/navcore/errors"
	"github.com/grovetools/navcore/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are the file names FindConfigFile looks for, in order.
var configNames = []string{
	"navcore.yml",
	"navcore.yaml",
	"navcore.toml",
	".navcore.yml",
	".navcore.yaml",
}

// Load reads and parses a navcore configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, isTOML(path))
	if err != nil {
		if ne, ok := err.(*errors.NavError); ok {
			return nil, ne.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.file = path
	cfg.resolvePaths()
	return cfg, nil
}

// LoadDefault finds and loads the configuration starting from the current
// directory. When no file exists anywhere, the built-in defaults are
// returned.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads the configuration found from startDir, falling back to
// defaults when none exists.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger is LoadFrom with logging of the resolved file.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	path, err := FindConfigFile(startDir)
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			logger.Debug("No configuration file found, using defaults")
			cfg := &Config{}
			cfg.SetDefaults()
			cfg.resolvePaths()
			return cfg, nil
		}
		return nil, err
	}

	logger.WithField("path", path).Debug("Loading configuration")
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Resolved configuration:\n%s", string(data))
		}
	}
	return cfg, nil
}

// LoadFromBytes parses configuration from byte array. The raw document is
// checked against the schema before it is decoded, so unknown nested keys
// are reported rather than dropped.
func LoadFromBytes(data []byte, asTOML bool) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	var cfg Config
	var doc interface{}
	if asTOML {
		var raw map[string]interface{}
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
		doc = raw
		if err := unmarshalTOML(expanded, raw, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	} else {
		if err := yaml.Unmarshal(expanded, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
		}
	}

	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	if err := cfg.validateChannels(); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// unmarshalTOML decodes the known fields and collects every other top-level
// table into Extensions.
func unmarshalTOML(data []byte, raw map[string]interface{}, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	for key, value := range raw {
		switch key {
		case "version", "prefs_file", "settings_file", "watch_prefs", "channels":
			continue
		}
		if cfg.Extensions == nil {
			cfg.Extensions = make(map[string]interface{})
		}
		cfg.Extensions[key] = value
	}
	return nil
}

// resolvePaths expands "~" and makes relative paths relative to the
// configuration file.
func (c *Config) resolvePaths() {
	if c.PrefsFile == "" {
		c.PrefsFile = paths.PrefsFile()
	}
	c.PrefsFile = c.resolve(c.PrefsFile)
	if c.SettingsFile != "" {
		c.SettingsFile = c.resolve(c.SettingsFile)
	}
}

func (c *Config) resolve(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) || c.file == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.file), p)
}

// FindConfigFile searches for navcore configuration files with the following precedence:
// 1. startDir up to filesystem root
// 2. The navcore config directory (NAVCORE_HOME or XDG)
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if configDir := paths.ConfigDir(); configDir != "" {
		for _, name := range configNames[:3] {
			path := filepath.Join(configDir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
