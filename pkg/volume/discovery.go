package volume

import (
	"fmt"
	"path"
	"strings"

	"github.com/sidkik/volcp/pkg/compose"
	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec"
	"github.com/sidkik/volcp/pkg/shell"
)

// volumeDirSuffix marks the subdirectories of a directory endpoint that are
// treated as volumes.
const volumeDirSuffix = "-volume"

// IsManifest reports whether the endpoint identifier names a compose
// manifest rather than a directory of volumes.
func IsManifest(param string) bool {
	_, rest := SplitHost(param)
	lower := strings.ToLower(rest)
	return strings.HasSuffix(lower, ".jsonnet") ||
		strings.HasSuffix(lower, ".yml") ||
		strings.HasSuffix(lower, ".yaml")
}

// Discover builds the volume name to Resource mapping for an endpoint. The
// mapping is rebuilt fresh for every invocation -- nothing is cached across
// runs.
func Discover(runner exec.Runner, param string) (map[string]Resource, error) {
	var resources map[string]Resource
	var err error
	if IsManifest(param) {
		resources, err = discoverManifest(runner, param)
	} else {
		resources, err = discoverDirectory(runner, param)
	}
	if err != nil {
		return nil, errors.WithContext(err, fmt.Sprintf("discover volumes in %q", param))
	}
	return resources, nil
}

func discoverManifest(runner exec.Runner, param string) (map[string]Resource, error) {
	host, manifestPath := SplitHost(param)
	manifest, err := compose.Parse(runner, manifestPath, host)
	if err != nil {
		return nil, err
	}

	resources := map[string]Resource{}
	for serviceName, service := range manifest.Services {
		for _, spec := range service.Volumes {
			i := strings.Index(spec, ":")
			if i < 0 {
				continue
			}

			name, mountPath := spec[:i], spec[i+1:]
			if !manifest.Volumes.Contains(name) {
				// A path on the left-hand side is a bind mount, not a
				// managed volume.
				continue
			}

			resources[name] = Mount{
				Service:      serviceName,
				MountPath:    strings.TrimRight(mountPath, "/"),
				ManifestPath: manifestPath,
				RelayHost:    host,
			}
		}
	}
	return resources, nil
}

func discoverDirectory(runner exec.Runner, param string) (map[string]Resource, error) {
	host, dirPath := SplitHost(param)
	list := shell.Sprintf("find %s -mindepth 1 -maxdepth 1 -type d", dirPath)
	out, err := runner.Output(shell.WrapHost(list, host))
	if err != nil {
		return nil, errors.WithContext(err, "list subdirectories")
	}

	resources := map[string]Resource{}
	for _, line := range strings.Split(string(out), "\n") {
		subdir := strings.TrimRight(strings.TrimSpace(line), "/")
		if !strings.HasSuffix(subdir, volumeDirSuffix) {
			continue
		}
		resources[path.Base(subdir)] = Directory{
			Path:      subdir,
			RelayHost: host,
		}
	}
	return resources, nil
}
