// Package python wraps the Python interpreter for environment creation.
//
// Design decisions:
//   - We shell out to `python -m venv` rather than assembling the venv
//     directory layout ourselves. Isolation mechanics belong to the
//     interpreter; venvctl only invokes them.
//   - The Manager struct holds the resolved interpreter path so that every
//     operation in a single command run uses the same interpreter.
//   - All errors from interpreter commands are wrapped in model.CLIError
//     with the relevant exit code to enable proper CLI exit handling.
package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/venvctl/internal/model"
)

// defaultInterpreters lists the command names probed on PATH, in order,
// when no interpreter is named explicitly. "python3" comes first because
// on many systems plain "python" is either absent or Python 2.
var defaultInterpreters = []string{"python3", "python"}

// Manager provides interpreter operations by invoking the python CLI.
//
// The zero value is not usable; construct it with NewManager, which
// resolves the interpreter once up front so that a missing Python is
// reported before any work starts.
type Manager struct {
	// interpreter is the resolved absolute path to the python executable.
	interpreter string
}

// NewManager locates a Python interpreter and returns a Manager bound
// to it.
//
// If explicit is non-empty it names the interpreter to use (a bare name
// resolved via PATH, or a path used as-is). If explicit is empty, the
// default candidates (python3, python) are probed in order.
//
// Returns a CLIError with ExitPythonNotFound when no interpreter can
// be resolved.
func NewManager(explicit string) (*Manager, error) {
	if explicit != "" {
		path, err := exec.LookPath(explicit)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitPythonNotFound,
				fmt.Sprintf("python interpreter %q not found", explicit), err)
		}
		return &Manager{interpreter: path}, nil
	}

	for _, candidate := range defaultInterpreters {
		if path, err := exec.LookPath(candidate); err == nil {
			return &Manager{interpreter: path}, nil
		}
	}

	return nil, model.NewCLIError(model.ExitPythonNotFound,
		"no python interpreter found on PATH (tried python3, python)")
}

// Interpreter returns the resolved path to the python executable.
func (m *Manager) Interpreter() string {
	return m.interpreter
}

// Version returns the interpreter's version string, e.g. "Python 3.12.4".
//
// Used only for verbose output; failures here are real interpreter
// failures and are reported like any other.
func (m *Manager) Version(ctx context.Context) (string, error) {
	output, err := m.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// CreateEnv creates a virtual environment at the given path by running
// `python -m venv <path>`.
//
// If the target directory already contains a virtual environment (its
// pyvenv.cfg marker exists), CreateEnv refuses with ExitEnvExists rather
// than letting `python -m venv` silently rebuild scripts inside it. Any
// other pre-existing directory state is left to the venv module itself,
// whose failure is passed through.
//
// systemSitePackages gives the environment access to the system
// installation's packages (the --system-site-packages venv flag).
func (m *Manager) CreateEnv(ctx context.Context, env model.Environment, systemSitePackages bool) error {
	if m.EnvExists(env) {
		return model.NewCLIError(model.ExitEnvExists,
			fmt.Sprintf("environment already exists at %s", env.Path))
	}

	args := []string{"-m", "venv"}
	if systemSitePackages {
		args = append(args, "--system-site-packages")
	}
	args = append(args, env.Path)

	_, err := m.run(ctx, args...)
	return err
}

// EnvExists reports whether a virtual environment exists at the given
// path.
//
// Virtual environments are identified by their pyvenv.cfg file, written
// by `python -m venv` at the environment root. Checking for the marker
// (rather than the bare directory) distinguishes "directory exists but is
// not an environment" from "environment exists" — the former is handed to
// the venv module untouched, the latter makes env refuse and every other
// command proceed.
func (m *Manager) EnvExists(env model.Environment) bool {
	info, err := os.Stat(env.ConfigFile())
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// run executes the managed interpreter with the given arguments.
//
// It captures stdout and stderr separately. On success (exit code 0), it
// returns the stdout output. On failure, it returns a model.CLIError with
// ExitInstallerError, including the stderr output in the error message so
// the interpreter's own diagnostics reach the user verbatim.
//
// exec.CommandContext ties the child to ctx, so interrupting venvctl
// kills the interpreter rather than orphaning it.
func (m *Manager) run(ctx context.Context, args ...string) (string, error) {
	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, m.interpreter, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("python %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitInstallerError, message, err)
	}

	return stdout.String(), nil
}
