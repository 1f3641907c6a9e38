// Package cli — status.go implements the "venvctl status" command.
//
// The status command compares the manifest's pinned dependencies against
// the environment's installed set and reports missing, mismatched, and
// extra packages. It exits non-zero when the environment is out of sync,
// making it usable as a CI gate.
//
// Only exact pins participate in the comparison: manifest lines that are
// ranges, URLs, or editable installs are skipped (pip, not venvctl, knows
// whether an installed version satisfies a range).
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

// NewStatusCommand creates the "status" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the manifest against the installed packages",
		Long: `Compare the manifest's pinned dependencies with the environment's
installed package set.

Reports packages that are missing from the environment, installed at a
different version than pinned, or installed without appearing in the
manifest. Exits non-zero when the environment is out of sync.

Examples:
  venvctl status
  venvctl status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}

	return cmd
}

// Mismatch pairs a pinned version with the version actually installed.
type Mismatch struct {
	Name      string `json:"name"`
	Pinned    string `json:"pinned"`
	Installed string `json:"installed"`
}

// SyncReport is the result of comparing manifest pins against the
// installed set.
type SyncReport struct {
	// Missing lists manifest pins with no installed counterpart.
	Missing []model.Pin `json:"missing"`

	// Mismatched lists packages installed at a version other than the
	// pinned one.
	Mismatched []Mismatch `json:"mismatched"`

	// Extra lists installed packages that do not appear in the manifest.
	Extra []model.Pin `json:"extra"`
}

// InSync reports whether the environment matches the manifest.
// Extra packages count as out of sync: freeze would change the manifest.
func (r *SyncReport) InSync() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0 && len(r.Extra) == 0
}

// runStatus is the main logic function for the status command.
func runStatus(ctx context.Context) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	installer := pip.NewInstaller(p.Env)
	if err := installer.Verify(); err != nil {
		return err
	}

	m, err := manifest.Load(p.ManifestPath)
	if err != nil {
		return err
	}

	installed, err := installer.Installed(ctx)
	if err != nil {
		return err
	}

	report := DiffPins(m.Pins(), installed)
	VerboseLog("Compared %d pinned against %d installed package(s)",
		len(m.Pins()), len(installed))

	printStatusResult(report)

	if !report.InSync() {
		return model.NewCLIError(model.ExitOutOfSync,
			fmt.Sprintf("environment is out of sync with %s", p.ManifestPath))
	}
	return nil
}

// DiffPins compares pinned (manifest) packages against installed ones.
// Packages are matched by normalized name, so spelling differences
// between manifest and freeze output do not produce false diffs.
//
// This function is exported for testing purposes (tested in status_test.go).
func DiffPins(pinned, installed []model.Pin) *SyncReport {
	report := &SyncReport{
		Missing:    []model.Pin{},
		Mismatched: []Mismatch{},
		Extra:      []model.Pin{},
	}

	// Index the installed set by normalized name for O(1) lookups.
	installedByKey := make(map[string]model.Pin, len(installed))
	for _, pin := range installed {
		installedByKey[pin.Key()] = pin
	}

	pinnedKeys := make(map[string]bool, len(pinned))
	for _, want := range pinned {
		pinnedKeys[want.Key()] = true

		have, ok := installedByKey[want.Key()]
		if !ok {
			report.Missing = append(report.Missing, want)
			continue
		}
		if have.Version != want.Version {
			report.Mismatched = append(report.Mismatched, Mismatch{
				Name:      want.Name,
				Pinned:    want.Version,
				Installed: have.Version,
			})
		}
	}

	for _, have := range installed {
		if !pinnedKeys[have.Key()] {
			report.Extra = append(report.Extra, have)
		}
	}

	return report
}

// printStatusResult outputs the sync report in text or JSON format.
func printStatusResult(report *SyncReport) {
	if IsJSONOutput() {
		result := struct {
			InSync bool `json:"inSync"`
			*SyncReport
		}{
			InSync:     report.InSync(),
			SyncReport: report,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if report.InSync() {
		fmt.Println("Environment is in sync with the manifest.")
		return
	}

	for _, pin := range report.Missing {
		fmt.Printf("missing     %s\n", pin)
	}
	for _, mm := range report.Mismatched {
		fmt.Printf("mismatched  %s (pinned %s, installed %s)\n", mm.Name, mm.Pinned, mm.Installed)
	}
	for _, pin := range report.Extra {
		fmt.Printf("extra       %s\n", pin)
	}
}
