package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-bootstrap/framework/app"
	"github.com/km-arc/go-bootstrap/framework/providers"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var (
		format  string
		matches []string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Bootstrap the catalogue and print the registry",
		Example: `  bootstrap inspect
  bootstrap inspect -f json --match 'equality.*/**' --match config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := opts.boot(cmd)
			if err != nil {
				return err
			}
			if format == "" {
				format = application.Config().Inspect.Format
			}

			snapshot := application.Snapshot()
			if snapshot.Bindings, err = providers.Match(snapshot.Bindings, matches...); err != nil {
				return fmt.Errorf("--match: %w", err)
			}
			return writeSnapshot(cmd.OutOrStdout(), format, snapshot)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml or json (default INSPECT_FORMAT)")
	cmd.Flags().StringArrayVar(&matches, "match", nil, "Only list bindings whose key matches this glob (repeatable)")
	return cmd
}

func writeSnapshot(w io.Writer, format string, s app.Snapshot) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
