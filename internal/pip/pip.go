package pip

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/venvctl/internal/model"
)

// Installer invokes the pip executable belonging to a single virtual
// environment. It is stateless beyond the environment binding — each
// method is one external command invocation.
type Installer struct {
	env model.Environment
}

// NewInstaller returns an Installer bound to the given environment.
// The environment is not verified here; Verify (or the first command)
// reports a missing environment.
func NewInstaller(env model.Environment) *Installer {
	return &Installer{env: env}
}

// Verify checks that the environment's pip executable exists.
//
// Commands call this before doing any work so that a missing or
// half-created environment fails with ExitEnvNotFound and a hint, instead
// of a raw exec error from deep inside an operation.
func (i *Installer) Verify() error {
	if _, err := os.Stat(i.env.Pip()); err != nil {
		return model.WrapCLIError(model.ExitEnvNotFound,
			fmt.Sprintf("environment not found at %s (run `venvctl env` first)", i.env.Path), err)
	}
	return nil
}

// Install installs the manifest's dependencies into the environment via
// `pip install -r <manifestPath>`.
//
// The manifest must exist and be readable; its contents are not parsed or
// validated locally — malformed specifier errors come from pip verbatim.
// When upgrade is true, --upgrade is added so already-satisfied
// requirements are moved to the newest allowed version.
func (i *Installer) Install(ctx context.Context, manifestPath string, upgrade bool) error {
	if _, err := os.Stat(manifestPath); err != nil {
		return model.WrapCLIError(model.ExitManifestNotFound,
			fmt.Sprintf("manifest not found: %s", manifestPath), err)
	}

	args := []string{"install"}
	if upgrade {
		args = append(args, "--upgrade")
	}
	args = append(args, "-r", manifestPath)

	_, err := i.run(ctx, args...)
	return err
}

// InstallProject installs a project directory (one carrying a
// pyproject.toml) into the environment via `pip install <dir>`.
// Used by the deps command as the fallback when no requirements manifest
// exists.
func (i *Installer) InstallProject(ctx context.Context, projectDir string, upgrade bool) error {
	args := []string{"install"}
	if upgrade {
		args = append(args, "--upgrade")
	}
	args = append(args, projectDir)

	_, err := i.run(ctx, args...)
	return err
}

// Freeze returns the environment's installed package set in requirements
// format, exactly as `pip freeze` printed it. The raw output is what the
// freeze command writes to the manifest; callers wanting structured pins
// use ParseFreezeOutput on it.
func (i *Installer) Freeze(ctx context.Context) (string, error) {
	return i.run(ctx, "freeze")
}

// Installed returns the environment's installed packages as parsed pins,
// in pip's output order.
func (i *Installer) Installed(ctx context.Context) ([]model.Pin, error) {
	output, err := i.Freeze(ctx)
	if err != nil {
		return nil, err
	}
	return ParseFreezeOutput(output), nil
}

// run executes the environment's pip with the given arguments.
//
// It captures stdout and stderr separately. On success it returns the
// stdout output. On failure it returns a model.CLIError with
// ExitInstallerError whose message carries pip's stderr, so resolution
// and network errors reach the user exactly as pip reported them.
func (i *Installer) run(ctx context.Context, args ...string) (string, error) {
	if err := i.Verify(); err != nil {
		return "", err
	}

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, i.env.Pip(), args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("pip %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitInstallerError, message, err)
	}

	return stdout.String(), nil
}

// ParseFreezeOutput parses `pip freeze` output into pins.
//
// Freeze output is line-oriented: one specifier per line, almost always
// in "name==version" form. Lines that are not plain pins (editable
// installs like "-e git+...", direct URL references like "pkg @ file://",
// or pip's "[notice]" chatter on stderr-merged streams) are skipped —
// they are preserved when the raw output is written to a manifest, just
// not modeled.
//
// Example input:
//
//	requests==2.31.0
//	tcod==16.2.2
//	-e git+https://example.com/repo.git#egg=dev-pkg
func ParseFreezeOutput(output string) []model.Pin {
	var pins []model.Pin

	for _, line := range strings.Split(output, "\n") {
		if pin, ok := model.ParsePin(line); ok {
			pins = append(pins, pin)
		}
	}

	return pins
}
