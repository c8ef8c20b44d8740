package errors

import (
	"fmt"
	"strings"
)

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// ContainerNotFound represents when no running container matched a service
// name.
type ContainerNotFound struct {
	Service string
}

func (err ContainerNotFound) Error() string {
	return fmt.Sprintf("could not find a running container for %q", err.Service)
}

// VolumesNotFound represents when volumes requested by the user weren't
// discovered at an endpoint. All missing names are reported together.
type VolumesNotFound struct {
	Endpoint string
	Names    []string
}

func (err VolumesNotFound) Error() string {
	return fmt.Sprintf("the following volumes weren't found in %s: %s",
		err.Endpoint, strings.Join(err.Names, ", "))
}

// FriendlyMessage implements the friendly error interface.
func (err VolumesNotFound) FriendlyMessage() string {
	return err.Error()
}

// CommandFailed represents when a spawned shell command exited non-zero.
type CommandFailed struct {
	ExitCode int
}

func (err CommandFailed) Error() string {
	return fmt.Sprintf("exited with code %d", err.ExitCode)
}

// TransferFailed represents when a volume's dump and load pipeline exited
// non-zero. The volume's contents are left however the partial pipeline left
// them.
type TransferFailed struct {
	Volume   string
	ExitCode int
}

func (err TransferFailed) Error() string {
	return fmt.Sprintf("transfer of volume %q failed with exit code %d",
		err.Volume, err.ExitCode)
}

// DeleteFailed represents when the command emptying a volume before a copy
// exited non-zero.
type DeleteFailed struct {
	Volume   string
	ExitCode int
}

func (err DeleteFailed) Error() string {
	return fmt.Sprintf("delete of volume %q failed with exit code %d",
		err.Volume, err.ExitCode)
}
