// Package cli — list.go implements the "venvctl list" command.
//
// The list command displays the environment's installed packages as an
// aligned text table or a JSON array, depending on the --json flag. The
// listing comes from the environment's own pip; nothing is cached.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/venvctl/internal/model"
	"github.com/mmr-tortoise/venvctl/internal/pip"
)

// NewListCommand creates the "list" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages installed in the environment",
		Long: `List the packages installed in the project's environment.

Examples:
  venvctl list
  venvctl list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}

	return cmd
}

// runList is the main logic function for the list command.
func runList(ctx context.Context) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	installer := pip.NewInstaller(p.Env)
	if err := installer.Verify(); err != nil {
		return err
	}

	pins, err := installer.Installed(ctx)
	if err != nil {
		return err
	}
	VerboseLog("Found %d installed package(s)", len(pins))

	// Sort alphabetically by normalized name for consistent output,
	// regardless of pip's own ordering.
	sort.Slice(pins, func(i, j int) bool {
		return pins[i].Key() < pins[j].Key()
	})

	printListResult(pins)
	return nil
}

// printListResult outputs the installed packages in text or JSON format,
// depending on the global --json flag.
func printListResult(pins []model.Pin) {
	if IsJSONOutput() {
		result := struct {
			Packages []model.Pin `json:"packages"`
		}{
			// Empty slice instead of nil so an empty environment renders
			// as [] instead of null.
			Packages: make([]model.Pin, 0, len(pins)),
		}
		result.Packages = append(result.Packages, pins...)

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Print(FormatPinTable(pins))
}

// FormatPinTable renders pins as an aligned two-column text table.
// Returns a "no packages" message for an empty environment.
//
// This function is exported for testing purposes (tested in list_test.go).
//
// Example:
//
//	NAME      VERSION
//	requests  2.31.0
//	tcod      16.2.2
func FormatPinTable(pins []model.Pin) string {
	if len(pins) == 0 {
		return "No packages installed.\n"
	}

	// Size the name column to the longest name so versions line up.
	nameWidth := len("NAME")
	for _, pin := range pins {
		if len(pin.Name) > nameWidth {
			nameWidth = len(pin.Name)
		}
	}

	out := fmt.Sprintf("%-*s  %s\n", nameWidth, "NAME", "VERSION")
	for _, pin := range pins {
		out += fmt.Sprintf("%-*s  %s\n", nameWidth, pin.Name, pin.Version)
	}
	return out
}
