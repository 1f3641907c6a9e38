// Package manifest handles the requirements manifest file: the plain
// UTF-8 text file, one dependency specifier per line, that the deps
// command reads and the freeze command overwrites.
//
// The package deliberately enforces nothing about specifier syntax — the
// installer owns validation (a malformed line fails inside pip, with
// pip's message). Parsing here exists only so that list/status can
// display and compare pins.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/venvctl/internal/model"
)

// Manifest is an in-memory snapshot of a requirements file.
type Manifest struct {
	// Path is the file the snapshot was read from.
	Path string

	// Lines holds every line of the file verbatim, including comments
	// and blank lines, without trailing newlines.
	Lines []string
}

// Load reads a requirements manifest from disk.
//
// Returns a CLIError with ExitManifestNotFound when the file does not
// exist; other read failures are returned wrapped but uncategorized.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitManifestNotFound,
				fmt.Sprintf("manifest not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	// Normalize CRLF so Windows-authored manifests parse identically.
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		// An empty file splits into a single empty line; treat it as no lines.
		lines = nil
	}

	return &Manifest{Path: path, Lines: lines}, nil
}

// Specifiers returns the manifest's dependency lines: every line that is
// not blank and not a comment, with surrounding whitespace trimmed.
// The lines are returned as written — ranges, URLs and editable installs
// included — since only pip interprets them.
func (m *Manifest) Specifiers() []string {
	var specs []string
	for _, line := range m.Lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		specs = append(specs, trimmed)
	}
	return specs
}

// Pins returns the manifest's exact pins ("name==version" lines).
// Specifier lines that are not plain pins are omitted; status treats
// them as unpinned and does not compare them.
func (m *Manifest) Pins() []model.Pin {
	var pins []model.Pin
	for _, spec := range m.Specifiers() {
		if pin, ok := model.ParsePin(spec); ok {
			pins = append(pins, pin)
		}
	}
	return pins
}

// Write replaces the manifest at path with the given content, atomically.
//
// The content is written to a temp file in the manifest's directory and
// renamed over the target, so a failure mid-write (disk full, interrupt)
// never leaves a truncated manifest behind — the freeze command's
// contract is that the manifest is either fully rewritten or untouched.
// A trailing newline is ensured, matching what `pip freeze` emits.
func Write(path, content string) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// Clean up the temp file on any failure path below.
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp manifest: %w", err)
	}
	// CreateTemp uses 0600; manifests are project files, not secrets.
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp manifest: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace manifest %s: %w", path, err)
	}
	return nil
}
