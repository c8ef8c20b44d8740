// Package volume discovers transfer endpoints and synthesizes the shell
// pipelines that copy volume payloads between them.
package volume

import "strings"

// Resource is a transfer endpoint: either a filesystem directory or a mount
// path inside a running container, optionally reached through an ssh relay
// host. Resources are immutable once constructed.
type Resource interface {
	// Host returns the relay host commands for this resource should run
	// on, or "" for local execution.
	Host() string

	// resource restricts implementations to this package so handling can
	// be exhaustive.
	resource()
}

// Directory is a plain filesystem directory holding a volume's payload.
type Directory struct {
	Path      string
	RelayHost string
}

// Host implements Resource.
func (d Directory) Host() string { return d.RelayHost }

func (Directory) resource() {}

// Mount is a path inside a running container belonging to Service.
// ManifestPath is retained so the container can be re-resolved later, e.g.
// when deleting the mount's contents.
type Mount struct {
	Service      string
	MountPath    string
	ManifestPath string
	RelayHost    string
}

// Host implements Resource.
func (m Mount) Host() string { return m.RelayHost }

func (Mount) resource() {}

// SplitHost splits an optional "host:" prefix off an endpoint identifier.
// An identifier without a colon is a bare local path and is returned
// unchanged with an empty host.
func SplitHost(param string) (host, rest string) {
	if i := strings.Index(param, ":"); i >= 0 {
		return param[:i], param[i+1:]
	}
	return "", param
}
