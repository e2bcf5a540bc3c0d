package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drblury/hostweaver/config"
	"github.com/drblury/hostweaver/handler"
	"github.com/drblury/hostweaver/hostinfo"
	"github.com/drblury/hostweaver/probe"
	"github.com/drblury/hostweaver/server"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hostweaver",
		Short:         "Self-describing host information service",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(root)
	root.AddCommand(serveCmd(), openapiCmd(), healthcheckCmd())

	return root
}

// loadConfig resolves the configuration and the logger every subcommand
// shares.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newServer registers the API routes on a fresh server.
func newServer(cfg *config.Config, logger *slog.Logger, provider *hostinfo.Provider) (*server.Server, error) {
	srv := server.New(*cfg,
		server.WithLogger(logger),
		server.WithErrorClassifier(handler.ClassifyError),
		server.WithReadinessChecks(probe.NewPingProbe("hostinfo", provider.Ping)),
	)

	h := handler.New(provider, handler.WithResponder(srv.Responder()))
	if err := srv.HandleAll(h.Routes()...); err != nil {
		return nil, fmt.Errorf("registering routes: %w", err)
	}
	return srv, nil
}
