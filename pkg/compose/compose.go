// Package compose reads the subset of a compose manifest that volcp needs:
// the declared volume names, and each service's volume mount specs.
package compose

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec"
	"github.com/sidkik/volcp/pkg/shell"
)

// parseManifestErrTemplate is a template for when a manifest fails to
// decode. The yaml library constructs errors in a way that loses context, so
// we can only pass the error message on.
const parseManifestErrTemplate = "Manifest could not be parsed. " +
	"Please review %q.\n" +
	"For reference, here is the error from the parser:\n" +
	"%s"

// Manifest is the parsed form of a compose file. Only the fields relevant to
// volume discovery are decoded; everything else in the file is ignored.
type Manifest struct {
	Volumes  VolumeSet          `json:"volumes,omitempty"`
	Services map[string]Service `json:"services,omitempty"`
}

// Service holds a service's volume mount specs, each in
// "volumeName:mountPath" form.
type Service struct {
	Volumes []string `json:"volumes,omitempty"`
}

// VolumeSet is the set of volume names declared at the top level of a
// manifest. Compose YAML declares volumes as a mapping of name to options,
// while evaluated jsonnet manifests may emit a plain list of names. Both
// decode to the same set.
type VolumeSet map[string]struct{}

// UnmarshalJSON implements json.Unmarshaler.
func (s *VolumeSet) UnmarshalJSON(data []byte) error {
	set := VolumeSet{}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &asMap); err == nil {
		for name := range asMap {
			set[name] = struct{}{}
		}
		*s = set
		return nil
	}

	var asList []string
	if err := json.Unmarshal(data, &asList); err != nil {
		return err
	}
	for _, name := range asList {
		set[name] = struct{}{}
	}
	*s = set
	return nil
}

// Contains reports whether name is a declared volume.
func (s VolumeSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Parse reads and decodes the manifest at path. Jsonnet manifests are
// evaluated through the jsonnet binary. A non-empty host reads and evaluates
// on that host through the ssh relay.
func Parse(runner exec.Runner, path, host string) (Manifest, error) {
	if strings.HasSuffix(strings.ToLower(path), ".jsonnet") {
		return parseJsonnet(runner, path, host)
	}
	return parseYAML(runner, path, host)
}

func parseJsonnet(runner exec.Runner, path, host string) (Manifest, error) {
	eval := shell.Sprintf("jsonnet %s --ext-code useSwarm=false", path)
	out, err := runner.Output(shell.WrapHost(eval, host))
	if err != nil {
		return Manifest{}, errors.WithContext(err, "evaluate jsonnet")
	}

	var manifest Manifest
	if err := json.Unmarshal(out, &manifest); err != nil {
		return Manifest{}, errors.NewFriendlyError(parseManifestErrTemplate, path, err)
	}
	return manifest, nil
}

func parseYAML(runner exec.Runner, path, host string) (Manifest, error) {
	contents, err := readFile(runner, path, host)
	if err != nil {
		return Manifest{}, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(contents, &manifest); err != nil {
		return Manifest{}, errors.NewFriendlyError(parseManifestErrTemplate, path, err)
	}
	return manifest, nil
}

func readFile(runner exec.Runner, path, host string) ([]byte, error) {
	if host != "" {
		contents, err := runner.Output(shell.WrapHost(shell.Sprintf("cat %s", path), host))
		if err != nil {
			return nil, errors.WithContext(err, "read remote manifest")
		}
		return contents, nil
	}

	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: path}
		}
		return nil, errors.WithContext(err, "read manifest")
	}
	return contents, nil
}
