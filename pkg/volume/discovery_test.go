package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/volcp/pkg/exec/mocks"
	"github.com/sidkik/volcp/pkg/shell"
)

func TestDiscoverDirectory(t *testing.T) {
	listCmd := shell.Sprintf("find %s -mindepth 1 -maxdepth 1 -type d", "/var/lib/volumes")

	runner := &mocks.Runner{}
	runner.On("Output", listCmd).Return([]byte(
		"/var/lib/volumes/data-volume\n"+
			"/var/lib/volumes/logs-volume/\n"+
			"/var/lib/volumes/scripts\n"), nil)

	resources, err := Discover(runner, "/var/lib/volumes")
	assert.NoError(t, err)

	assert.Equal(t, map[string]Resource{
		"data-volume": Directory{Path: "/var/lib/volumes/data-volume"},
		"logs-volume": Directory{Path: "/var/lib/volumes/logs-volume"},
	}, resources)
}

func TestDiscoverDirectoryRemote(t *testing.T) {
	listCmd := shell.WrapHost(
		shell.Sprintf("find %s -mindepth 1 -maxdepth 1 -type d", "/var/lib/volumes"),
		"storage-host")

	runner := &mocks.Runner{}
	runner.On("Output", listCmd).Return([]byte("/var/lib/volumes/data-volume\n"), nil)

	resources, err := Discover(runner, "storage-host:/var/lib/volumes")
	assert.NoError(t, err)

	assert.Equal(t, map[string]Resource{
		"data-volume": Directory{
			Path:      "/var/lib/volumes/data-volume",
			RelayHost: "storage-host",
		},
	}, resources)
	runner.AssertExpectations(t)
}

func TestDiscoverManifest(t *testing.T) {
	manifestYAML := `
volumes:
  cache:
services:
  web:
    volumes:
      - cache:/var/cache/
      - ./conf:/etc/myapp
      - noext
`
	catCmd := shell.WrapHost(shell.Sprintf("cat %s", "/app/docker-compose.yml"), "app-host")

	runner := &mocks.Runner{}
	runner.On("Output", catCmd).Return([]byte(manifestYAML), nil)

	resources, err := Discover(runner, "app-host:/app/docker-compose.yml")
	assert.NoError(t, err)

	// The bind mount and the malformed spec are skipped; the mount path's
	// trailing slash is trimmed.
	assert.Equal(t, map[string]Resource{
		"cache": Mount{
			Service:      "web",
			MountPath:    "/var/cache",
			ManifestPath: "/app/docker-compose.yml",
			RelayHost:    "app-host",
		},
	}, resources)
}

func TestDiscoverDirectoryListingFails(t *testing.T) {
	listCmd := shell.Sprintf("find %s -mindepth 1 -maxdepth 1 -type d", "/gone")

	runner := &mocks.Runner{}
	runner.On("Output", listCmd).Return(nil, assert.AnError)

	_, err := Discover(runner, "/gone")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `"/gone"`)
}
