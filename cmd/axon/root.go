package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toyz/axonbind/internal/config"
	"github.com/toyz/axonbind/pkg/axon/logging"
)

// Version is set at build time
var Version = "0.1.0"

type rootOptions struct {
	configFile string
	verbose    bool
	quiet      bool
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "axon",
		Short: "Axon - declarative request binding for Go web frameworks",
		Long: `Axon binds HTTP requests to controller methods from declarations.

Commands:
  serve   - Run the demo application on gin, echo or fiber
  routes  - Print the demo application's route table
  check   - Validate the declaration strings in Go packages

Example:
  axon serve --framework fiber --port 3000
  axon routes
  axon check ./...`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (defaults to ./axon.yaml when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only show errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRoutesCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	return cmd
}

// loadConfig reads the configuration with any bound flags applied
func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadWith(o.v, o.configFile)
}

// diagnostics creates the terminal output for cmd, honoring --verbose and
// --quiet over level
func (o *rootOptions) diagnostics(cmd *cobra.Command, level logging.Level) *logging.Diagnostics {
	switch {
	case o.quiet:
		level = logging.LevelError
	case o.verbose:
		level = logging.LevelDebug
	}
	d := logging.NewDiagnostics(level)
	if out := cmd.OutOrStdout(); out != os.Stdout {
		d.WithOutput(out, cmd.ErrOrStderr())
	}
	return d
}
