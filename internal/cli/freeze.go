// Package cli — freeze.go implements the "venvctl freeze" command.
//
// The freeze command exports the environment's installed package set over
// the requirements manifest. The manifest is replaced atomically: on any
// failure — missing environment, pip error, write error — the existing
// manifest is left exactly as it was.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvctl/internal/manifest"
	"github.com/mmr-tortoise/venvctl/internal/model"
	"github.com/mmr-tortoise/venvctl/internal/pip"
)

// NewFreezeCommand creates the "freeze" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFreezeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Write the environment's installed packages to the manifest",
		Long: `Overwrite the requirements manifest with the environment's installed
package set, as reported by the environment's pip.

The environment must already exist. The manifest is rewritten atomically;
if anything fails, the previous manifest is untouched.

Examples:
  venvctl freeze
  venvctl freeze --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFreeze(cmd.Context())
		},
	}

	return cmd
}

// runFreeze is the main logic function for the freeze command.
func runFreeze(ctx context.Context) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	installer := pip.NewInstaller(p.Env)

	// Verify before freezing so a missing environment fails with its own
	// exit code and, crucially, before the manifest could be touched.
	if err := installer.Verify(); err != nil {
		return err
	}

	VerboseLog("Querying installed packages...")
	output, err := installer.Freeze(ctx)
	if err != nil {
		return err
	}

	// The raw freeze output is written verbatim — including lines that are
	// not plain pins (editable installs, URL references). Parsing is only
	// for the summary.
	pins := pip.ParseFreezeOutput(output)

	VerboseLog("Writing %d pin(s) to %s...", len(pins), p.ManifestPath)
	if err := manifest.Write(p.ManifestPath, output); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write manifest", err)
	}

	printFreezeResult(p.ManifestPath, pins)
	return nil
}

// printFreezeResult outputs the freeze command result in text or JSON
// format.
func printFreezeResult(manifestPath string, pins []model.Pin) {
	if IsJSONOutput() {
		result := struct {
			Manifest string      `json:"manifest"`
			Packages []model.Pin `json:"packages"`
		}{
			Manifest: manifestPath,
			// Empty slice instead of nil so JSON output shows [] for an
			// empty environment instead of null.
			Packages: make([]model.Pin, 0, len(pins)),
		}
		result.Packages = append(result.Packages, pins...)

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Wrote %d package(s) to %s\n", len(pins), manifestPath)
}
