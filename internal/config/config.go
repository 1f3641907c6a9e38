// Package config handles the optional per-project venvctl configuration
// file.
//
// Two formats are supported, checked in order at the project root:
//   - venvctl.yaml  (parsed with gopkg.in/yaml.v3)
//   - venvctl.jsonc (JSON with Comments; github.com/tidwall/jsonc strips
//     comments before parsing with the standard encoding/json)
//
// The file is entirely optional — every field has a default and every
// field can be overridden by a command-line flag. Precedence is
// flag > config file > default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or a field is unset.
const (
	// DefaultEnvDir is the environment directory relative to the project
	// root.
	DefaultEnvDir = "venv"

	// DefaultManifest is the requirements manifest relative to the
	// project root.
	DefaultManifest = "requirements.txt"
)

// Config holds the per-project settings. All paths are interpreted
// relative to the project root unless absolute.
type Config struct {
	// Python names the interpreter used to create the environment.
	// Empty means probe PATH for python3, then python.
	Python string `yaml:"python" json:"python,omitempty"`

	// EnvDir is the environment directory. Defaults to "venv".
	EnvDir string `yaml:"envDir" json:"envDir,omitempty"`

	// Manifest is the requirements file. Defaults to "requirements.txt".
	Manifest string `yaml:"manifest" json:"manifest,omitempty"`
}

// candidates lists the config file names probed at the project root,
// in precedence order.
var candidates = []string{"venvctl.yaml", "venvctl.jsonc"}

// Load reads the project's config file, if any, and fills in defaults.
//
// A missing config file is not an error — the zero config with defaults
// applied is returned. A present-but-unparsable file IS an error: silently
// ignoring a broken config would make venvctl operate on the wrong
// environment directory.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{}

	for _, name := range candidates {
		path := filepath.Join(projectDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		if err := parse(name, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		break
	}

	cfg.applyDefaults()
	return cfg, nil
}

// parse decodes the config data according to the file's format.
func parse(name string, data []byte, cfg *Config) error {
	if filepath.Ext(name) == ".jsonc" {
		// Strip JSONC comments (// and /* */) and trailing commas before
		// handing the bytes to encoding/json.
		return json.Unmarshal(jsonc.ToJSON(data), cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults fills unset fields with their defaults. Python stays
// empty — interpreter probing happens at use time, not config time.
func (c *Config) applyDefaults() {
	if c.EnvDir == "" {
		c.EnvDir = DefaultEnvDir
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
}

// EnvPath returns the absolute environment directory for the given
// project root.
func (c *Config) EnvPath(projectDir string) string {
	return resolve(projectDir, c.EnvDir)
}

// ManifestPath returns the absolute manifest path for the given project
// root.
func (c *Config) ManifestPath(projectDir string) string {
	return resolve(projectDir, c.Manifest)
}

// resolve joins a possibly-relative config path onto the project root.
func resolve(projectDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(projectDir, path)
}
