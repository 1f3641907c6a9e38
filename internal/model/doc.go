// Package model defines the domain types and value objects for the
// venvctl CLI.
//
// This package contains pure data structures with no external dependencies.
// The two entities (Environment, Pin) are transient representations: an
// Environment is reconstructed from its directory path at runtime, and Pins
// are parsed from installer output or manifest lines on demand — there are
// no persistent state files beyond the environment directory and the
// manifest itself.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
