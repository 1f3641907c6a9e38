// Package cli — env.go implements the "venvctl env" command.
//
// The env command creates the project's virtual environment by invoking
// `python -m venv`. It is the prerequisite for every other command:
// deps, freeze, list and status all require the environment to exist
// and refuse to run otherwise.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvctl/internal/model"
	"github.com/mmr-tortoise/venvctl/internal/python"
)

// envFlags holds the flag values for the env command.
// These are bound to cobra flags in NewEnvCommand.
type envFlags struct {
	python             string // --python: interpreter override
	systemSitePackages bool   // --system-site-packages: venv flag pass-through
}

// NewEnvCommand creates the "env" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewEnvCommand() *cobra.Command {
	flags := &envFlags{}

	cmd := &cobra.Command{
		Use:     "env",
		Aliases: []string{"venv"},
		Short:   "Create the project's virtual environment",
		Long: `Create the project's virtual environment via the interpreter's venv module.

The environment directory comes from the project config (default: venv).
If the directory already holds a virtual environment, the command refuses
and leaves it untouched.

Examples:
  venvctl env
  venvctl env --python python3.12
  venvctl env --system-site-packages`,

		// No positional arguments — the environment location is configuration.
		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.python, "python", "", "Interpreter to create the environment with (default: python3, then python)")
	cmd.Flags().BoolVar(&flags.systemSitePackages, "system-site-packages", false, "Give the environment access to system packages")

	return cmd
}

// runEnv is the main logic function for the env command.
func runEnv(ctx context.Context, flags *envFlags) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	// The --python flag overrides the config file's interpreter choice.
	interpreter := flags.python
	if interpreter == "" {
		interpreter = p.Config.Python
	}

	pm, err := python.NewManager(interpreter)
	if err != nil {
		return err // NewManager already returns CLIError with ExitPythonNotFound
	}
	VerboseLog("Interpreter: %s", pm.Interpreter())

	if version, versionErr := pm.Version(ctx); versionErr == nil {
		VerboseLog("Interpreter version: %s", version)
	}

	VerboseLog("Creating environment at %s...", p.Env.Path)
	if err := pm.CreateEnv(ctx, p.Env, flags.systemSitePackages); err != nil {
		return err // CreateEnv returns CLIError (ExitEnvExists or ExitInstallerError)
	}

	printEnvResult(p.Env, pm.Interpreter())
	return nil
}

// printEnvResult outputs the env command result in text or JSON format.
func printEnvResult(env model.Environment, interpreter string) {
	if IsJSONOutput() {
		result := map[string]string{
			"path":        env.Path,
			"interpreter": interpreter,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Created environment at %s\n", env.Path)
	fmt.Printf("  Interpreter: %s\n", interpreter)
	fmt.Printf("  Activate:    %s\n", activationHint(env))
}

// activationHint returns the shell command that activates the
// environment. The venv activation scripts differ by platform: POSIX
// shells source bin/activate, while Windows runs Scripts\Activate.ps1
// directly.
func activationHint(env model.Environment) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(env.BinDir(), "Activate.ps1")
	}
	return "source " + filepath.Join(env.BinDir(), "activate")
}
