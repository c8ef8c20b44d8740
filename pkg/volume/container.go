package volume

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec"
	"github.com/sidkik/volcp/pkg/shell"
)

// containerIDPattern matches the container-id column of `docker ps`: a
// 12-hex-digit token at the start of the line.
var containerIDPattern = regexp.MustCompile(`^[a-f0-9]{12}$`)

// ResolveContainerID finds the id of the running container serving service.
// It lists the containers on host (or locally when host is empty) and picks
// the first one whose display name contains service as a standalone word.
// The caller is expected to treat a ContainerNotFound error as fatal: the
// tool assumes container state is stable for the duration of a run and never
// waits for a container to appear.
func ResolveContainerID(runner exec.Runner, service, manifestPath, host string) (string, error) {
	log.WithFields(log.Fields{
		"service":  service,
		"manifest": manifestPath,
	}).Debug("Resolving container ID")

	out, err := runner.Output(shell.WrapHost(shell.Raw("docker ps"), host))
	if err != nil {
		return "", errors.WithContext(err, "list containers")
	}

	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || !containerIDPattern.MatchString(fields[0]) {
			continue
		}

		// The container's display name is the last column.
		if matchesService(fields[len(fields)-1], service) {
			return fields[0], nil
		}
	}
	return "", errors.ContainerNotFound{Service: service}
}

// matchesService reports whether service appears in the container's display
// name as a standalone word: not preceded by a letter, and not followed by a
// letter or by "-<lowercase>". The boundary rules follow compose naming, in
// which "web" matches "myapp_web_1" and "web-1" but not "webapp" or
// "web-api". These rules are tied to that naming convention; a runtime with
// a different naming grammar needs this matcher re-derived.
func matchesService(displayName, service string) bool {
	if service == "" {
		return false
	}

	for from := 0; ; {
		i := strings.Index(displayName[from:], service)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(service)
		from = start + 1

		if start > 0 && isLetter(displayName[start-1]) {
			continue
		}
		if end < len(displayName) {
			next := displayName[end]
			if isLetter(next) {
				continue
			}
			if next == '-' && end+1 < len(displayName) && isLowercase(displayName[end+1]) {
				continue
			}
		}
		return true
	}
}

func isLetter(c byte) bool {
	return isLowercase(c) || (c >= 'A' && c <= 'Z')
}

func isLowercase(c byte) bool {
	return c >= 'a' && c <= 'z'
}
