// Package python provides Python interpreter discovery and virtual
// environment creation for the venvctl CLI.
//
// All operations are performed via os/exec calls to the python binary,
// rather than reimplementing any part of the venv mechanism. This
// approach:
//   - Uses the exact interpreter and venv behavior the user sees in
//     their terminal
//   - Requires Python >= 3.3 (when the venv module was introduced)
//
// The Manager struct provides methods for locating an interpreter,
// querying its version, and creating environments, plus the existence
// check every other command performs before touching an environment.
package python
