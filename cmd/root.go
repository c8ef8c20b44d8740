package cmd

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/volcp/cmd/util"
	"github.com/sidkik/volcp/cmd/version"
	"github.com/sidkik/volcp/pkg/errors"
	"github.com/sidkik/volcp/pkg/volume"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "VOLCP_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	var volumes []string
	var deleteBeforeCopy bool

	rootCmd := &cobra.Command{
		Use:   "volcp SRC DST",
		Short: "Copy docker volume data between running containers and directories, across ssh",
		Long: "Copy docker volume data between running containers and directories, across ssh.\n\n" +
			"SRC and DST are either a compose manifest (a docker-compose.yml or\n" +
			".env.*.jsonnet file for a deployment) or a directory whose `*-volume`\n" +
			"subdirectories hold volume payloads. Either can carry an ssh host\n" +
			"prefix, like foo-machine:/home/foo/project/.env.prod.jsonnet.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
		Run: func(_ *cobra.Command, args []string) {
			if err := run(args[0], args[1], volumes, deleteBeforeCopy); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	rootCmd.Flags().StringSliceVarP(&volumes, "volumes", "v", nil,
		"volumes to copy (default: all volumes at the source)")
	rootCmd.Flags().BoolVar(&deleteBeforeCopy, "delete-before-copy", false,
		"delete files in the destination before copying")
	rootCmd.AddCommand(version.New())

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}

func run(src, dst string, volumes []string, deleteBeforeCopy bool) error {
	if os.Geteuid() == 0 {
		return errors.NewFriendlyError("volcp must not be run as root. " +
			"Files copied as root end up owned by root in the destination, " +
			"which the containers' unprivileged users can't read.")
	}

	src, err := expandEndpoint(src)
	if err != nil {
		return errors.WithContext(err, "parse source")
	}

	dst, err = expandEndpoint(dst)
	if err != nil {
		return errors.WithContext(err, "parse destination")
	}

	return volume.NewCopier().Run(volume.Plan{
		Source:           src,
		Destination:      dst,
		Volumes:          volumes,
		DeleteBeforeCopy: deleteBeforeCopy,
	})
}

// expandEndpoint expands a leading ~ in local endpoint identifiers.
// Host-qualified identifiers are left alone: their paths are resolved on the
// remote host, not here.
func expandEndpoint(param string) (string, error) {
	host, path := volume.SplitHost(param)
	if host != "" {
		return param, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.WithContext(err, "expand homedir")
	}
	return expanded, nil
}
