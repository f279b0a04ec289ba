package main

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-bootstrap/framework/app"
	"github.com/km-arc/go-bootstrap/framework/bootstrap"
	"github.com/km-arc/go-bootstrap/framework/config"
	"github.com/km-arc/go-bootstrap/internal/catalog"
)

type rootOptions struct {
	envFiles []string
	verbose  bool
}

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Discover service modules and comparers and inspect the resulting registry",
		Long: `bootstrap builds a container from the framework and catalogue assemblies:
every service module registers its services once, then every equality
comparer is registered as a singleton. The result can be printed or served.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newInspectCmd(opts), newServeCmd(opts))
	return cmd
}

// boot loads the configuration and bootstraps the catalogue. Logs go to the
// command's stderr.
func (o *rootOptions) boot(cmd *cobra.Command) (*app.Application, error) {
	cfg := config.Load(o.envFiles...)
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	logger := cfg.Logger(cmd.ErrOrStderr())
	base := bootstrap.New(logger)
	application := app.New(cfg,
		app.WithLogger(logger),
		app.WithOrchestrator(base),
		app.WithPasses(catalog.Passes(base.Scanner())...),
	)
	if err := application.Boot(catalog.Assembly); err != nil {
		return nil, err
	}
	return application, nil
}
