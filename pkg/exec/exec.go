// Package exec runs composed shell commands.
package exec

//go:generate mockery -name Runner

import (
	"os"
	osexec "os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/shell"
)

// Runner executes shell commands built by the shell package.
type Runner interface {
	// Run executes cmd with its output streams inherited from the calling
	// process. It's used for transfer pipelines and deletes, whose progress
	// should go straight to the user's terminal.
	Run(cmd shell.Command) error

	// Output executes cmd and captures its standard output for parsing.
	// It's used for discovery and container resolution.
	Output(cmd shell.Command) ([]byte, error)
}

type shRunner struct{}

// New creates a Runner that executes commands through `sh -c`.
func New() Runner {
	return shRunner{}
}

func (shRunner) Run(cmd shell.Command) error {
	log.WithField("command", cmd.String()).Debug("Running command")

	proc := osexec.Command("sh", "-c", cmd.String())
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr
	return asCommandError(proc.Run())
}

func (shRunner) Output(cmd shell.Command) ([]byte, error) {
	log.WithField("command", cmd.String()).Debug("Running command for output")

	proc := osexec.Command("sh", "-c", cmd.String())
	proc.Stderr = os.Stderr
	out, err := proc.Output()
	if err != nil {
		return nil, asCommandError(err)
	}
	return out, nil
}

func asCommandError(err error) error {
	if exitErr, ok := err.(*osexec.ExitError); ok {
		return errors.CommandFailed{ExitCode: exitErr.ExitCode()}
	}
	return err
}
