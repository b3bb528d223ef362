package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Register LLM providers via init()
	_ "github.com/mario1918/TestCaseGenie/llm/providers"

	"github.com/mario1918/TestCaseGenie/api"
	"github.com/mario1918/TestCaseGenie/config"
	"github.com/mario1918/TestCaseGenie/generator"
	"github.com/mario1918/TestCaseGenie/llm"
)

func serveCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation gateway",
		Long: `Serve exposes POST /generate, GET /health and GET /metrics.

The model API key is read from the environment (GEMINI_API_KEY for the
gemini provider) or from a .env file in the working directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				a.cfg.Server.Port = port
				if err := a.cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
			}

			srv, err := buildGateway(a.cfg, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("TestCaseGenie gateway ready",
				"version", Version,
				"addr", a.cfg.Addr(),
				"provider", a.cfg.Model.Provider,
				"model", a.cfg.Model.Name)

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides config and $PORT)")
	return cmd
}

// buildGateway wires model client, generator and HTTP server from cfg.
func buildGateway(cfg *config.Config, logger *slog.Logger) (*api.Server, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(llm.Endpoint{
		Provider: cfg.Model.Provider,
		Model:    cfg.Model.Name,
		URL:      cfg.Model.Endpoint,
		APIKey:   cfg.APIKey(),
	}, llm.WithTimeout(cfg.Model.Timeout), llm.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}

	temperature := cfg.Model.Temperature
	svc := generator.NewService(client,
		generator.WithNavigationURL(cfg.Generation.NavigationURL),
		generator.WithTemperature(&temperature),
		generator.WithLogger(logger),
	)

	return api.NewServer(svc, api.Options{
		Addr:         cfg.Addr(),
		CORSOrigin:   cfg.Server.CORSOrigin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Logger:       logger,
	}), nil
}

// contextOrBackground guards commands executed without ExecuteContext.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

