package volume

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec"
	"github.com/sidkik/volcp/pkg/shell"
)

// deletePause is how long DeleteVolume waits before running anything
// destructive, so the operator has a window to interrupt.
const deletePause = 500 * time.Millisecond

// Plan describes a whole copy run.
type Plan struct {
	// Source and Destination are endpoint identifiers: an optionally
	// host-qualified manifest path or directory path.
	Source      string
	Destination string

	// Volumes are the names to copy. Empty means every volume discovered
	// at the source.
	Volumes []string

	DeleteBeforeCopy bool
}

// Copier runs per-volume transfer pipelines. Volumes are processed strictly
// sequentially, and the first failure aborts the run, leaving already-copied
// volumes in place.
type Copier struct {
	Runner exec.Runner
	Clock  clockwork.Clock
}

// NewCopier creates a Copier that runs real commands.
func NewCopier() *Copier {
	return &Copier{
		Runner: exec.New(),
		Clock:  clockwork.NewRealClock(),
	}
}

// Run executes the plan.
func (c *Copier) Run(plan Plan) error {
	srcIsManifest := IsManifest(plan.Source)
	dstIsManifest := IsManifest(plan.Destination)
	if srcIsManifest && dstIsManifest {
		return errors.NewFriendlyError(
			"Source and destination can't both be container mounts: " +
				"there is no way to stream between two containers without " +
				"an intermediate host.")
	}

	srcResources, err := Discover(c.Runner, plan.Source)
	if err != nil {
		return err
	}

	volumes := plan.Volumes
	if len(volumes) == 0 {
		for name := range srcResources {
			volumes = append(volumes, name)
		}
		sort.Strings(volumes)
	}

	if missing := missingFrom(srcResources, volumes); len(missing) > 0 {
		return errors.VolumesNotFound{Endpoint: plan.Source, Names: missing}
	}

	if srcIsManifest && !dstIsManifest {
		// The destination is a bare directory tree rather than a set of
		// discovered resources, so the per-volume directories may not
		// exist yet.
		if err := c.makeDestinationDirs(plan.Destination, volumes); err != nil {
			return errors.WithContext(err, "create destination directories")
		}
	}

	dstResources, err := Discover(c.Runner, plan.Destination)
	if err != nil {
		return err
	}

	if missing := missingFrom(dstResources, volumes); len(missing) > 0 {
		return errors.VolumesNotFound{Endpoint: plan.Destination, Names: missing}
	}

	for _, name := range volumes {
		if plan.DeleteBeforeCopy {
			if err := c.DeleteVolume(dstResources[name], name); err != nil {
				return err
			}
		}
		if err := c.CopyVolume(srcResources[name], dstResources[name], name); err != nil {
			return err
		}
	}

	fmt.Println("Copying for all volumes complete!")
	return nil
}

// CopyVolume streams the payload of src into dst as a single dump | load
// pipeline. The payload is never materialized on the orchestrating host.
func (c *Copier) CopyVolume(src, dst Resource, name string) error {
	fmt.Printf("\n=== %s ===\n", name)

	dump, err := Dump(c.Runner, src)
	if err != nil {
		return errors.WithContext(err, "dump")
	}

	load, err := Load(c.Runner, dst, dump)
	if err != nil {
		return errors.WithContext(err, "load")
	}

	if err := c.Runner.Run(dump.Command.Pipe(load)); err != nil {
		if failed, ok := err.(errors.CommandFailed); ok {
			return errors.TransferFailed{Volume: name, ExitCode: failed.ExitCode}
		}
		return errors.WithContext(err, fmt.Sprintf("copy %q", name))
	}
	return nil
}

// DeleteVolume removes all contents of rsrc. It pauses first so the
// operator can interrupt before anything destructive runs; interrupting
// during the pause aborts the whole process with the endpoint untouched.
func (c *Copier) DeleteVolume(rsrc Resource, name string) error {
	fmt.Printf("Deleting destination %s...\n", name)
	c.Clock.Sleep(deletePause)

	cmd, err := Delete(c.Runner, rsrc)
	if err != nil {
		return errors.WithContext(err, "delete")
	}

	if err := c.Runner.Run(cmd); err != nil {
		if failed, ok := err.(errors.CommandFailed); ok {
			return errors.DeleteFailed{Volume: name, ExitCode: failed.ExitCode}
		}
		return errors.WithContext(err, fmt.Sprintf("delete %q", name))
	}
	return nil
}

func (c *Copier) makeDestinationDirs(destination string, volumes []string) error {
	host, dirPath := SplitHost(destination)

	args := make([]string, len(volumes))
	for i, name := range volumes {
		args[i] = path.Join(dirPath, name)
	}

	log.WithField("directories", args).Debug("Pre-creating destination directories")
	mkdir := shell.Sprintf("mkdir -p"+strings.Repeat(" %s", len(args)), args...)
	return c.Runner.Run(shell.WrapHost(mkdir, host))
}

// missingFrom returns the requested names absent from resources, sorted so
// the whole missing set is reported in one deterministic error.
func missingFrom(resources map[string]Resource, names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := resources[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
