package cmd

import (
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEndpoint(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		param string
		exp   string
	}{
		{
			name:  "AbsolutePath",
			param: "/var/lib/volumes",
			exp:   "/var/lib/volumes",
		},
		{
			name:  "HomePath",
			param: "~/volumes",
			exp:   filepath.Join(home, "volumes"),
		},
		{
			name: "RemotePathNotExpanded",
			// The ~ has to be resolved by the remote shell, not here.
			param: "foo-machine:~/volumes",
			exp:   "foo-machine:~/volumes",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expanded, err := expandEndpoint(test.param)
			assert.NoError(t, err)
			assert.Equal(t, test.exp, expanded)
		})
	}
}
