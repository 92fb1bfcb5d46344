package main

import (
	"install-pipx/cmd"
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// install-pipx is a single-shot bootstrap installer: it creates an isolated Python
// virtual environment, installs pipx into it, and makes the pipx executable reachable
// from the user's shell (via `pipx ensurepath` and/or a symlink into a bin directory
// on PATH). Each invocation is stateless; a failed run leaves whatever it completed
// on disk for the user to inspect or retry with --force.
func main() {
	cmd.Execute()
}
