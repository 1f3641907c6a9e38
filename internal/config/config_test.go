package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file with the given name and content into
// a fresh temp project directory and returns the directory.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

// TestLoadDefaults verifies that a project without a config file gets
// the documented defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Python)
	assert.Equal(t, DefaultEnvDir, cfg.EnvDir)
	assert.Equal(t, DefaultManifest, cfg.Manifest)
}

// TestLoadYAML verifies loading of venvctl.yaml with partial settings:
// set fields win, unset fields keep their defaults.
func TestLoadYAML(t *testing.T) {
	dir := writeConfig(t, "venvctl.yaml", "python: python3.12\nenvDir: .venv\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python3.12", cfg.Python)
	assert.Equal(t, ".venv", cfg.EnvDir)
	assert.Equal(t, DefaultManifest, cfg.Manifest, "unset manifest keeps its default")
}

// TestLoadJSONC verifies loading of venvctl.jsonc, including comments
// and trailing commas, which plain encoding/json would reject.
func TestLoadJSONC(t *testing.T) {
	content := `{
	// pinned interpreter for this project
	"python": "python3.11",
	"manifest": "requirements/dev.txt",
}`
	dir := writeConfig(t, "venvctl.jsonc", content)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python3.11", cfg.Python)
	assert.Equal(t, "requirements/dev.txt", cfg.Manifest)
	assert.Equal(t, DefaultEnvDir, cfg.EnvDir)
}

// TestLoadYAMLPrecedence verifies that venvctl.yaml wins when both
// formats are present.
func TestLoadYAMLPrecedence(t *testing.T) {
	dir := writeConfig(t, "venvctl.yaml", "envDir: from-yaml\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "venvctl.jsonc"),
		[]byte(`{"envDir": "from-jsonc"}`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.EnvDir)
}

// TestLoadMalformed verifies that a broken config file is a hard error
// rather than being silently ignored.
func TestLoadMalformed(t *testing.T) {
	dir := writeConfig(t, "venvctl.yaml", "envDir: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "venvctl.yaml")
}

// TestPathResolution verifies relative and absolute path handling for
// the environment and manifest locations.
func TestPathResolution(t *testing.T) {
	cfg := &Config{EnvDir: "venv", Manifest: "/etc/reqs.txt"}

	assert.Equal(t, filepath.Join("/proj", "venv"), cfg.EnvPath("/proj"))
	assert.Equal(t, "/etc/reqs.txt", cfg.ManifestPath("/proj"),
		"absolute manifest path must not be re-rooted")
}
