// Package model defines the domain types for the venvctl CLI.
//
// All entities in this package represent the data model of the tool:
// an Environment (an isolated interpreter directory), a Pin (a pinned
// package specifier), and the exit code / error types shared by every
// command.
//
// Key design decision: venvctl keeps no state of its own. An Environment
// is identified purely by its directory path and everything else about it
// (installed packages, interpreter version) is queried from the
// environment's own tools at runtime.
package model

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Environment represents an isolated Python installation directory as
// created by `python -m venv`. It is a value object around the directory
// path: it knows the platform-dependent layout of the environment but
// never touches the filesystem itself (existence checks and command
// execution live in the python and pip packages).
type Environment struct {
	// Path is the absolute filesystem path to the environment directory.
	Path string `json:"path"`
}

// NewEnvironment creates an Environment rooted at the given directory.
// The path is cleaned but not resolved or verified; callers that need an
// absolute path should resolve it before constructing the Environment.
func NewEnvironment(path string) Environment {
	return Environment{Path: filepath.Clean(path)}
}

// BinDir returns the directory inside the environment that holds its
// executables. The venv layout differs by platform: POSIX systems use
// "bin" while Windows uses "Scripts".
func (e Environment) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Path, "Scripts")
	}
	return filepath.Join(e.Path, "bin")
}

// Python returns the path to the environment's interpreter executable.
func (e Environment) Python() string {
	return filepath.Join(e.BinDir(), exeName("python"))
}

// Pip returns the path to the environment's installer executable.
// All install/freeze operations run this binary rather than a system-wide
// pip, which is what scopes them to the environment.
func (e Environment) Pip() string {
	return filepath.Join(e.BinDir(), exeName("pip"))
}

// ConfigFile returns the path to the environment's pyvenv.cfg marker.
// Its presence is what distinguishes a venv directory from an arbitrary
// directory that happens to exist at the same path.
func (e Environment) ConfigFile() string {
	return filepath.Join(e.Path, "pyvenv.cfg")
}

// String returns the environment's path. Satisfies fmt.Stringer for
// readable log and error output.
func (e Environment) String() string {
	return e.Path
}

// exeName appends the platform executable suffix to a bare command name.
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command. Failures
// of the underlying interpreter or installer keep the 0/non-zero contract:
// the tool's stderr is surfaced verbatim in the error message and the
// process exits with the stable code for that failure class.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitPythonNotFound indicates no usable Python interpreter could be
	// located on PATH (or the one named via --python does not exist).
	ExitPythonNotFound ExitCode = 2

	// ExitEnvNotFound indicates the environment directory does not exist
	// or is not a virtual environment.
	ExitEnvNotFound ExitCode = 3

	// ExitEnvExists indicates the environment directory already holds a
	// virtual environment and `env` refused to re-create it.
	ExitEnvExists ExitCode = 4

	// ExitManifestNotFound indicates the requirements manifest was not
	// found at the expected location.
	ExitManifestNotFound ExitCode = 5

	// ExitInstallerError indicates an invocation of the environment's
	// installer (or of `python -m venv`) failed.
	ExitInstallerError ExitCode = 6

	// ExitOutOfSync indicates `status` found the environment's installed
	// set diverging from the manifest.
	ExitOutOfSync ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
