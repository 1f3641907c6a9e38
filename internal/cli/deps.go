// Package cli — deps.go implements the "venvctl deps" command.
//
// The deps command installs the project's declared dependencies into the
// environment by running the environment's pip against the requirements
// manifest. When no manifest exists but the project carries a
// pyproject.toml, the project itself is installed instead.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvctl/internal/manifest"
	"github.com/mmr-tortoise/venvctl/internal/model"
	"github.com/mmr-tortoise/venvctl/internal/pip"
	"github.com/mmr-tortoise/venvctl/internal/pyproject"
)

// depsFlags holds the flag values for the deps command.
type depsFlags struct {
	upgrade bool // --upgrade: pass --upgrade to pip install
}

// NewDepsCommand creates the "deps" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDepsCommand() *cobra.Command {
	flags := &depsFlags{}

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Install the manifest's dependencies into the environment",
		Long: `Install the requirements manifest into the environment via its pip.

The environment must already exist (run "venvctl env" first) — a missing
environment is an error, never auto-created. If the manifest is absent but
the project has a pyproject.toml, the project itself is installed instead.

Examples:
  venvctl deps
  venvctl deps --upgrade`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.upgrade, "upgrade", false, "Upgrade already-satisfied requirements to the newest allowed version")

	return cmd
}

// runDeps is the main logic function for the deps command.
func runDeps(ctx context.Context, flags *depsFlags) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	installer := pip.NewInstaller(p.Env)

	// Fail fast on a missing environment before touching the manifest,
	// so "run env first" is the error the user sees — not a pip exec
	// failure halfway through.
	if err := installer.Verify(); err != nil {
		return err
	}

	// Prefer the requirements manifest; fall back to installing the
	// project itself when only pyproject.toml declares dependencies.
	// The fallback applies only to a missing manifest — an unreadable one
	// is its own error, not a reason to install something else.
	m, loadErr := manifest.Load(p.ManifestPath)
	if loadErr != nil && !isManifestNotFound(loadErr) {
		return loadErr
	}
	if loadErr == nil {
		specs := m.Specifiers()
		VerboseLog("Installing %d requirement(s) from %s...", len(specs), p.ManifestPath)

		if err := installer.Install(ctx, p.ManifestPath, flags.upgrade); err != nil {
			return err
		}

		printDepsResult(fmt.Sprintf("Installed %d requirement(s) from %s", len(specs), p.ManifestPath),
			"manifest", len(specs))
		return nil
	}

	if pyprojectPath, ok := pyproject.Find(p.Dir); ok {
		proj, projErr := pyproject.Load(pyprojectPath)
		if projErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read pyproject.toml", projErr)
		}

		VerboseLog("No manifest at %s; installing project %q from %s...",
			p.ManifestPath, proj.Name, pyprojectPath)

		if err := installer.InstallProject(ctx, p.Dir, flags.upgrade); err != nil {
			return err
		}

		printDepsResult(fmt.Sprintf("Installed project %q and its %d dependency(ies)",
			proj.Name, len(proj.Dependencies)), "pyproject", len(proj.Dependencies))
		return nil
	}

	// Neither source exists — report the manifest error (its exit code
	// is ExitManifestNotFound, the contract scripts rely on).
	return loadErr
}

// isManifestNotFound reports whether err is the CLIError for a missing
// manifest, as opposed to some other load failure.
func isManifestNotFound(err error) bool {
	var cliErr *model.CLIError
	return errors.As(err, &cliErr) && cliErr.Code == model.ExitManifestNotFound
}

// printDepsResult outputs the deps command result in text or JSON format.
func printDepsResult(message, source string, count int) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"source":       source,
			"requirements": count,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println(message)
}
