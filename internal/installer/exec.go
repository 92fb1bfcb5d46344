package installer

import (
	"fmt"
	"os/exec"
	"strings"

	"install-pipx/internal/logging"
)

// Runner executes an external command and blocks until it exits. The
// pipeline talks to subprocesses only through this interface so tests can
// record invocations instead of spawning anything.
type Runner interface {
	Run(name string, args ...string) error
}

// execRunner is the production Runner backed by os/exec. Output is
// captured and surfaced in the error on failure; a non-zero exit status
// is fatal to the run, with no retry.
type execRunner struct{}

// NewRunner returns a Runner that spawns real subprocesses.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(name string, args ...string) error {
	log := logging.Logger("exec")
	log.Debug().Str("command", name).Strs("args", args).Msg("running command")

	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w\n%s", name, strings.Join(args, " "), err, output)
	}
	if len(output) > 0 {
		log.Debug().Str("command", name).Msg(strings.TrimRight(string(output), "\n"))
	}
	return nil
}
