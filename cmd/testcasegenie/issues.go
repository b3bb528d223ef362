package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mario1918/TestCaseGenie/client"
	"github.com/mario1918/TestCaseGenie/tracker"
)

func issuesCmd(a *app) *cobra.Command {
	var (
		page     int
		filters  tracker.Filters
		allTypes bool
		showOpts bool
	)

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List tracker issues",
		Long: `Issues lists one page of issues from the tracker.

Without filters only stories are listed. --jql replaces every other filter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())
			tc := tracker.NewClient(a.cfg.Tracker.BaseURL, a.cfg.Tracker.ProjectKey, tracker.WithLogger(a.logger))

			if showOpts {
				return printFilterOptions(ctx, cmd, tc, a.cfg.Tracker.BoardID)
			}

			if filters.IssueType == "" && !allTypes {
				filters.IssueType = tracker.DefaultIssueType
			}

			state := client.NewState(a.cfg.Tracker.PageSize)
			state.ApplyFilters(filters)
			if page > 1 {
				state.Pager.StartAt = (page - 1) * state.Pager.PageSize
			}

			result, err := tc.Issues(ctx, state.Query())
			if err != nil {
				return err
			}
			state.SetIssues(result)

			renderIssues(cmd.OutOrStdout(), state.Issues, state.Pager)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().StringVarP(&filters.IssueType, "type", "t", "", "Issue type (default Story)")
	cmd.Flags().BoolVar(&allTypes, "all-types", false, "Do not filter by issue type")
	cmd.Flags().StringVar(&filters.Component, "component", "", "Component name")
	cmd.Flags().StringVar(&filters.Sprint, "sprint", "", "Sprint name")
	cmd.Flags().StringVar(&filters.JQL, "jql", "", "Raw JQL filter")
	cmd.Flags().BoolVar(&showOpts, "options", false, "List components, boards and sprints instead of issues")
	return cmd
}

func printFilterOptions(ctx context.Context, cmd *cobra.Command, tc *tracker.Client, boardID int) error {
	opts := tc.FilterOptions(ctx, boardID)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, infoColor("Components"))
	for _, name := range opts.ComponentNames() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, infoColor("Boards"))
	for _, b := range opts.Boards {
		fmt.Fprintf(out, "  %d  %s\n", b.ID, b.Name)
	}
	fmt.Fprintln(out, infoColor(fmt.Sprintf("Sprints (board %d)", boardID)))
	for _, s := range opts.Sprints {
		fmt.Fprintf(out, "  %s %s\n", s.Name, mutedColor(s.State))
	}
	return nil
}
