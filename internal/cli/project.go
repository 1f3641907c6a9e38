package cli

import (
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/venvctl/internal/config"
	"github.com/mmr-tortoise/venvctl/internal/model"
)

// project bundles the resolved per-invocation context every subcommand
// needs: the project root, its configuration, and the environment and
// manifest locations derived from both.
type project struct {
	// Dir is the absolute project root.
	Dir string

	// Config is the loaded (or defaulted) project configuration.
	Config *config.Config

	// Env is the environment at the configured directory.
	Env model.Environment

	// ManifestPath is the absolute path to the requirements manifest.
	ManifestPath string
}

// loadProject resolves the project root (--dir flag or the current
// directory), loads its configuration, and derives the environment and
// manifest paths. Called at the top of every subcommand.
func loadProject() (*project, error) {
	dir := projectDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
		}
		dir = cwd
	}

	// Resolve to an absolute path so every derived path and every log
	// line is unambiguous regardless of where venvctl was invoked.
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to resolve project directory", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load project config", err)
	}

	p := &project{
		Dir:          dir,
		Config:       cfg,
		Env:          model.NewEnvironment(cfg.EnvPath(dir)),
		ManifestPath: cfg.ManifestPath(dir),
	}

	VerboseLog("Project root: %s", p.Dir)
	VerboseLog("Environment: %s", p.Env.Path)
	VerboseLog("Manifest: %s", p.ManifestPath)

	return p, nil
}
