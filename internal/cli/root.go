// Package cli wires the radonct commands together.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"radonct/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	LogFormat  string // "" (from config) | "console" | "json"
}

// ValidLogFormats defines the allowed values of --log-format.
var ValidLogFormats = []string{"", string(logging.Console), string(logging.JSON)}

// NewRootCommand creates the root command for the radonct CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "radonct",
		Short: "radonct - parallel-beam CT toolkit",
		Long: `Compute sinograms of 2-D images and reconstruct them again with
filtered or unfiltered back-projection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidLogFormat(opts.LogFormat) {
				return fmt.Errorf("invalid log format %q: must be console or json", opts.LogFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "radonct.yaml", "configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (console|json), defaults to the config value")

	cmd.AddCommand(NewPhantomCommand(opts))
	cmd.AddCommand(NewSinogramCommand(opts))
	cmd.AddCommand(NewReconstructCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func isValidLogFormat(format string) bool {
	for _, f := range ValidLogFormats {
		if f == format {
			return true
		}
	}
	return false
}
