// Package pip wraps the installer binary inside a virtual environment.
//
// Every operation runs the environment's own pip executable (never a
// system-wide pip), which is what scopes installs and freezes to the
// environment. Failures are passed through verbatim: pip's stderr is
// embedded in the returned error and no retry or recovery is attempted —
// dependency resolution, network handling and specifier validation all
// belong to pip itself.
package pip
