package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drblury/hostweaver/hostinfo"
)

func openapiCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document without starting the server",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q, want json or yaml", format)
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			srv, err := newServer(cfg, logger, hostinfo.NewProvider())
			if err != nil {
				return err
			}
			if _, err := srv.Build(); err != nil {
				return err
			}

			out := srv.Document().JSON()
			if format == "yaml" {
				if out, err = srv.Document().YAML(); err != nil {
					return err
				}
			} else {
				out = append(out, '\n')
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}
