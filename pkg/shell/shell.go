// Package shell builds the command strings that volcp hands to `sh -c`.
// Commands are only constructed through this package, so every interpolated
// argument passes through the quoting primitive exactly once. Call sites
// never concatenate raw strings into a pipeline.
package shell

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Command is a shell command whose interpolated arguments have already been
// quoted. The zero value is the empty command.
type Command struct {
	text string
}

// Raw creates a Command from a fixed literal. It must only be used for
// commands from the tool's own vocabulary (e.g. "docker ps"), never for
// anything derived from user input.
func Raw(text string) Command {
	return Command{text: text}
}

// Sprintf builds a Command from a format skeleton, quoting every argument so
// the shell receives it as a single literal token.
func Sprintf(format string, args ...string) Command {
	quoted := make([]interface{}, len(args))
	for i, arg := range args {
		quoted[i] = shellquote.Join(arg)
	}
	return Command{text: fmt.Sprintf(format, quoted...)}
}

func (cmd Command) String() string {
	return cmd.text
}

// Pipe connects cmd's standard output to next's standard input.
func (cmd Command) Pipe(next Command) Command {
	return Command{text: cmd.text + " | " + next.text}
}

// WrapHost makes cmd execute on host over ssh. The whole command is passed
// as one quoted token so the remote shell doesn't re-split it, which means
// wrapping composes: a command already wrapped for one host can be wrapped
// again for another. An empty host means local execution, and cmd is
// returned unchanged.
func WrapHost(cmd Command, host string) Command {
	if host == "" {
		return cmd
	}
	return Sprintf("ssh -x %s %s", host, cmd.text)
}
