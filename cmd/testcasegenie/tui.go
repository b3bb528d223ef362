package main

import (
	"github.com/spf13/cobra"

	"github.com/mario1918/TestCaseGenie/client"
	"github.com/mario1918/TestCaseGenie/tracker"
	"github.com/mario1918/TestCaseGenie/tui"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())
			issues := tracker.NewClient(a.cfg.Tracker.BaseURL, a.cfg.Tracker.ProjectKey, tracker.WithLogger(a.logger))
			gateway := client.NewGateway(a.cfg.Client.GatewayURL, nil)

			m := tui.New(ctx, issues, gateway, tui.Options{
				PageSize:               a.cfg.Tracker.PageSize,
				BoardID:                a.cfg.Tracker.BoardID,
				BrowseURL:              a.cfg.Tracker.BrowseURL,
				ExportDir:              a.cfg.Client.ExportDir,
				RejectEmptyIssuePrompt: a.cfg.Generation.RejectEmptyIssuePrompt,
				Logger:                 a.logger,
			})
			return tui.Run(ctx, m)
		},
	}
}
