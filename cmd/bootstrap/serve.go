package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr  string
		trace string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the catalogue and serve the registry over HTTP",
		Long: `serve exposes the registry until interrupted:

  GET /healthz
  GET /bindings[?match=glob]
  GET /bindings/{key}

Append ?format=yaml for YAML bodies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := setupTracing(ctx, trace, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err = errors.Join(err, shutdown(flushCtx))
			}()

			application, err := opts.boot(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				application.Config().Inspect.Addr = addr
			}
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default INSPECT_ADDR)")
	cmd.Flags().StringVar(&trace, "trace", "", "Export request spans: stdout or otlp")
	return cmd
}
