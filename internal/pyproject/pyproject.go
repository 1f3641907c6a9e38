// Package pyproject provides a minimal read of pyproject.toml.
//
// Only the [project] table's name and dependencies are decoded — enough
// for the deps command to fall back to installing the project itself when
// no requirements manifest exists, and for status to name what it is
// comparing. Everything else in the file (build backends, tool tables) is
// ignored; pip interprets the full file during installation.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the standard name of the project metadata file.
const FileName = "pyproject.toml"

// Project holds the subset of [project] metadata venvctl reads.
type Project struct {
	// Name is the distribution name from [project].name.
	Name string `toml:"name"`

	// Dependencies lists the PEP 508 specifiers from
	// [project].dependencies, carried verbatim.
	Dependencies []string `toml:"dependencies"`
}

// document mirrors the top-level TOML structure; toml.DecodeFile ignores
// every table not declared here.
type document struct {
	Project Project `toml:"project"`
}

// Find returns the path to the directory's pyproject.toml and whether
// it exists.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Load decodes the [project] table from the given pyproject.toml.
func Load(path string) (*Project, error) {
	var doc document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc.Project, nil
}
