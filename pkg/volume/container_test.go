package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/exec/mocks"
	"github.com/sidkik/volcp/pkg/shell"
)

func TestMatchesService(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		service     string
		exp         bool
	}{
		{name: "Exact", displayName: "web", service: "web", exp: true},
		{name: "ComposeName", displayName: "myapp_web_1", service: "web", exp: true},
		{name: "NumericSuffix", displayName: "web-1", service: "web", exp: true},
		{name: "PrefixOfLongerName", displayName: "webapp", service: "web", exp: false},
		{name: "DashLetterSuffix", displayName: "web-api", service: "web", exp: false},
		{name: "LetterBefore", displayName: "awsweb", service: "web", exp: false},
		{name: "UnderscoreBefore", displayName: "aws_web", service: "web", exp: true},
		{name: "NoOccurrence", displayName: "myapp_db_1", service: "web", exp: false},
		{name: "SecondOccurrenceMatches", displayName: "webapp_web_1", service: "web", exp: true},
		{name: "EmptyService", displayName: "web", service: "", exp: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, matchesService(test.displayName, test.service))
		})
	}
}

func TestResolveContainerID(t *testing.T) {
	psOutput := "CONTAINER ID   IMAGE       COMMAND     CREATED       STATUS       PORTS     NAMES\n" +
		"0123456789ab   myapp/api   \"npm start\"   2 hours ago   Up 2 hours   80/tcp    myapp_web-api_1\n" +
		"fedcba987654   myapp/web   \"npm start\"   2 hours ago   Up 2 hours   80/tcp    myapp_web_1\n"

	runner := &mocks.Runner{}
	runner.On("Output", shell.Raw("docker ps")).Return([]byte(psOutput), nil)

	id, err := ResolveContainerID(runner, "web", "/app/docker-compose.yml", "")
	assert.NoError(t, err)
	assert.Equal(t, "fedcba987654", id)

	_, err = ResolveContainerID(runner, "db", "/app/docker-compose.yml", "")
	assert.Equal(t, errors.ContainerNotFound{Service: "db"}, err)
}

func TestResolveContainerIDRemote(t *testing.T) {
	psOutput := "fedcba987654 myapp/web \"npm start\" 2h Up 80/tcp myapp_web_1\n"

	runner := &mocks.Runner{}
	runner.On("Output", shell.WrapHost(shell.Raw("docker ps"), "app-host")).
		Return([]byte(psOutput), nil)

	id, err := ResolveContainerID(runner, "web", "/app/docker-compose.yml", "app-host")
	assert.NoError(t, err)
	assert.Equal(t, "fedcba987654", id)
	runner.AssertExpectations(t)
}

func TestResolveContainerIDIgnoresNonIDLines(t *testing.T) {
	// Header lines and ids that aren't exactly 12 hex digits aren't
	// candidates even if the name column matches.
	psOutput := "CONTAINER ID IMAGE COMMAND NAMES web\n" +
		"0123456789abc myapp/web x x web\n" +
		"0123456789ab myapp/web x x web\n"

	runner := &mocks.Runner{}
	runner.On("Output", shell.Raw("docker ps")).Return([]byte(psOutput), nil)

	id, err := ResolveContainerID(runner, "web", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "0123456789ab", id)
}
