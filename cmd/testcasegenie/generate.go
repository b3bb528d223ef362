package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mario1918/TestCaseGenie/client"
	"github.com/mario1918/TestCaseGenie/testcase"
	"github.com/mario1918/TestCaseGenie/tracker"
)

func generateCmd(a *app) *cobra.Command {
	var (
		storyFile string
		issueKey  string
		exportDir string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "generate [story...]",
		Short: "Generate test cases through the gateway",
		Long: `Generate sends a user story, or the description of a tracker issue, to
the generation gateway and prints the resulting test cases.

The story is taken from the arguments, from --file (use - for stdin), or
from the issue named by --issue.`,
		Example: `  testcasegenie generate "As a user I want to reset my password"
  testcasegenie generate --file story.txt --export ./out
  testcasegenie generate --issue SE2-123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())
			out := cmd.OutOrStdout()

			gateway := client.NewGateway(a.cfg.Client.GatewayURL, nil)
			table := client.NewTable()
			orch := client.NewOrchestrator(gateway, table, consoleNotifier{w: cmd.ErrOrStderr()},
				client.WithRejectEmptyIssuePrompt(a.cfg.Generation.RejectEmptyIssuePrompt),
				client.WithOrchestratorLogger(a.logger),
			)

			var err error
			if issueKey != "" {
				issue, ferr := findIssue(cmd, a, issueKey)
				if ferr != nil {
					return ferr
				}
				_, err = orch.SubmitIssue(ctx, issue)
			} else {
				story, rerr := readStory(cmd.InOrStdin(), storyFile, args)
				if rerr != nil {
					return rerr
				}
				_, err = orch.SubmitStory(ctx, story)
			}
			if err != nil {
				return err
			}

			var rows []client.DisplayRow
			if !table.Empty() {
				if rows, err = table.ExportRows(); err != nil {
					return err
				}
			}

			if asJSON {
				cases := make([]testcase.TestCase, 0, table.Len())
				for _, r := range table.Rows() {
					cases = append(cases, r.Case)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(map[string][]testcase.TestCase{"testCases": cases}); err != nil {
					return fmt.Errorf("encode test cases: %w", err)
				}
			} else {
				renderCases(out, rows)
			}

			switch {
			case exportDir == "":
			case table.Empty():
				fmt.Fprintln(cmd.ErrOrStderr(), mutedColor("Nothing to export: "+client.EmptyTableMessage))
			default:
				path, err := client.ExportXLSX(rows, exportDir, time.Now())
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), successColor("Exported to "+path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&storyFile, "file", "f", "", "Read the story from a file (- for stdin)")
	cmd.Flags().StringVarP(&issueKey, "issue", "i", "", "Generate from the description of a tracker issue")
	cmd.Flags().StringVarP(&exportDir, "export", "x", "", "Write TestCases_<date>.xlsx into this directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print test cases as JSON")
	cmd.MarkFlagsMutuallyExclusive("file", "issue")
	return cmd
}

func readStory(stdin io.Reader, path string, args []string) (string, error) {
	switch path {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read story from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read story: %w", err)
		}
		return string(data), nil
	}
}

// findIssue looks an issue up by key through the paginated issue endpoint.
func findIssue(cmd *cobra.Command, a *app, key string) (tracker.Issue, error) {
	tc := tracker.NewClient(a.cfg.Tracker.BaseURL, a.cfg.Tracker.ProjectKey, tracker.WithLogger(a.logger))
	page, err := tc.Issues(contextOrBackground(cmd.Context()), tracker.Query{
		Filters:    tracker.Filters{JQL: fmt.Sprintf("key = %q", key)},
		MaxResults: 1,
	})
	if err != nil {
		return tracker.Issue{}, err
	}
	for _, is := range page.Issues {
		if strings.EqualFold(is.Key, key) {
			return is, nil
		}
	}
	return tracker.Issue{}, fmt.Errorf("issue %s not found", key)
}
