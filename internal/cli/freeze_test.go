package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/venvctl/internal/model"
)

// setProjectDir points the global --dir flag variable at the given
// directory for the duration of the test and restores it afterwards.
func setProjectDir(t *testing.T, dir string) {
	t.Helper()

	prev := projectDir
	projectDir = dir
	t.Cleanup(func() { projectDir = prev })
}

// TestFreezeMissingEnvLeavesManifest verifies that running freeze before
// the environment exists fails with ExitEnvNotFound and leaves the
// manifest byte-for-byte untouched. The existence check must run before
// anything touches the manifest, so no interpreter is needed here.
func TestFreezeMissingEnvLeavesManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "requirements.txt")
	original := "requests==2.31.0\n# keep this comment\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(original), 0o644))

	setProjectDir(t, dir)

	err := runFreeze(context.Background())
	require.Error(t, err, "freeze without an environment must fail")

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitEnvNotFound, cliErr.Code)

	data, readErr := os.ReadFile(manifestPath)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data), "failed freeze must not modify the manifest")
}

// TestFreezeMissingEnvNoManifest verifies the same refusal when no
// manifest exists yet: the failure must not conjure one into being.
func TestFreezeMissingEnvNoManifest(t *testing.T) {
	dir := t.TempDir()
	setProjectDir(t, dir)

	err := runFreeze(context.Background())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitEnvNotFound, cliErr.Code)

	_, statErr := os.Stat(filepath.Join(dir, "requirements.txt"))
	assert.True(t, os.IsNotExist(statErr), "failed freeze must not create a manifest")
}
