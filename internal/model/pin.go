package model

import (
	"fmt"
	"strings"
)

// Pin represents a single pinned dependency: a package name and the exact
// version installed or declared, as in "requests==2.31.0".
//
// venvctl does not validate specifiers — the installer owns validation —
// so Pin only models the `name==version` form that `pip freeze` emits and
// that pinned manifests contain. Anything else (URLs, extras, markers,
// ranges) is carried through untouched as a raw line and never parsed
// into a Pin.
type Pin struct {
	// Name is the package name exactly as it appeared in the source line.
	Name string `json:"name"`

	// Version is the exact pinned version.
	Version string `json:"version"`
}

// String returns the canonical "name==version" form of the pin.
// This matches the line format written by `pip freeze`.
func (p Pin) String() string {
	return fmt.Sprintf("%s==%s", p.Name, p.Version)
}

// Key returns the normalized package name used for comparing pins across
// manifest and freeze output. Two pins refer to the same package exactly
// when their Keys are equal.
func (p Pin) Key() string {
	return NormalizeName(p.Name)
}

// ParsePin parses a "name==version" specifier line into a Pin.
// Returns false when the line is not an exact double-equals pin
// (comments, blank lines, editable installs, ranges and URLs all
// return false and are left to the installer).
func ParsePin(line string) (Pin, bool) {
	line = strings.TrimSpace(line)
	name, version, found := strings.Cut(line, "==")
	if !found {
		return Pin{}, false
	}

	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" || version == "" {
		return Pin{}, false
	}

	// A name containing spaces or comparison characters means the line was
	// something richer than a plain pin (e.g. "pkg >= 1.0, == 1.2").
	if strings.ContainsAny(name, " <>!~=") || strings.ContainsAny(version, " <>!~=") {
		return Pin{}, false
	}

	return Pin{Name: name, Version: version}, true
}

// NormalizeName normalizes a package name per PEP 503: lowercase, with
// every run of hyphens, underscores and dots collapsed to a single hyphen.
// "Flask_SQLAlchemy", "flask.sqlalchemy" and "flask-sqlalchemy" all
// normalize to the same key.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inRun := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '-' || r == '_' || r == '.' {
			// Collapse the whole run into one hyphen, emitted when the
			// next regular character arrives.
			inRun = true
			continue
		}
		if inRun {
			b.WriteByte('-')
			inRun = false
		}
		b.WriteRune(r)
	}
	// A trailing separator run is dropped entirely.

	return b.String()
}
