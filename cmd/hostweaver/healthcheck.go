package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/drblury/hostweaver/probe"
)

func healthcheckCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Query the liveness endpoint of a running instance",
		Long: "Exits non-zero unless the liveness endpoint answers 200 with status ok.\n" +
			"Meant for container HEALTHCHECK instructions.",
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if target == "" {
				target = healthzURL(cfg.Server.Addr)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Probe.Timeout)
			defer cancel()

			check := probe.NewHTTPProbe("healthz", http.MethodGet, target, &http.Client{},
				probe.WithHTTPResponseValidator(probe.ExpectJSONStatus("ok")),
			)
			if err := check(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "url", "", "Liveness URL (default: derived from --addr)")

	return cmd
}

func healthzURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = "", addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/healthz"
}
