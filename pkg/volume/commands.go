package volume

import (
	"fmt"
	"strconv"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec"
	"github.com/sidkik/volcp/pkg/shell"
)

// DumpResult pairs the command that streams a resource's payload to standard
// output with the number of leading archive path components the load side
// must strip to land the payload at the same relative root.
type DumpResult struct {
	Command         shell.Command
	StripComponents int
}

// Dump synthesizes the command that streams rsrc's full payload to standard
// output.
func Dump(runner exec.Runner, rsrc Resource) (DumpResult, error) {
	switch rsrc := rsrc.(type) {
	case Directory:
		return DumpResult{
			Command:         shell.WrapHost(shell.Sprintf("tar -c -C %s .", rsrc.Path), rsrc.RelayHost),
			StripComponents: 0,
		}, nil

	case Mount:
		id, err := ResolveContainerID(runner, rsrc.Service, rsrc.ManifestPath, rsrc.RelayHost)
		if err != nil {
			return DumpResult{}, err
		}

		// `docker cp` emits the stream prefixed with the mount path's own
		// basename segment, which the load side has to discard.
		return DumpResult{
			Command:         shell.WrapHost(shell.Sprintf("docker cp %s:%s -", id, rsrc.MountPath), rsrc.RelayHost),
			StripComponents: 1,
		}, nil
	}
	panic(fmt.Sprintf("unknown resource type %T", rsrc))
}

// Load synthesizes the command that consumes an archive stream on standard
// input and materializes it at rsrc. The strip count comes from the paired
// dump, never recomputed.
func Load(runner exec.Runner, rsrc Resource, dump DumpResult) (shell.Command, error) {
	switch rsrc := rsrc.(type) {
	case Directory:
		extract := shell.Sprintf("tar -xf - --strip-components=%s -C %s",
			strconv.Itoa(dump.StripComponents), rsrc.Path)
		return shell.WrapHost(extract, rsrc.RelayHost), nil

	case Mount:
		if dump.StripComponents != 0 {
			// Loading a container-sourced stream into a container mount
			// would need its basename segment stripped, which `docker cp`
			// can't do. The orchestrator rejects container-to-container
			// transfers before getting here, so this is a contract
			// violation rather than a runtime condition.
			return shell.Command{}, errors.New(
				"cannot load a stream with stripped components into a container mount")
		}

		id, err := ResolveContainerID(runner, rsrc.Service, rsrc.ManifestPath, rsrc.RelayHost)
		if err != nil {
			return shell.Command{}, err
		}
		return shell.WrapHost(shell.Sprintf("docker cp - %s:%s", id, rsrc.MountPath), rsrc.RelayHost), nil
	}
	panic(fmt.Sprintf("unknown resource type %T", rsrc))
}

// Delete synthesizes the command that removes all contents of rsrc, leaving
// the directory or mount itself in place.
func Delete(runner exec.Runner, rsrc Resource) (shell.Command, error) {
	switch rsrc := rsrc.(type) {
	case Directory:
		// The trailing glob stays outside the quoted path so the shell
		// expands it.
		return shell.WrapHost(shell.Sprintf("rm -rvf %s/*", rsrc.Path), rsrc.RelayHost), nil

	case Mount:
		id, err := ResolveContainerID(runner, rsrc.Service, rsrc.ManifestPath, rsrc.RelayHost)
		if err != nil {
			return shell.Command{}, err
		}

		remove := shell.Sprintf("rm -rvf %s/*", rsrc.MountPath)
		return shell.WrapHost(
			shell.Sprintf("docker exec %s /bin/sh -c %s", id, remove.String()),
			rsrc.RelayHost), nil
	}
	panic(fmt.Sprintf("unknown resource type %T", rsrc))
}
