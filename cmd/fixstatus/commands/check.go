package commands

import (
	"strings"

	"github.com/gmackall/flutter-fix-status/internal/ui/table"
	"github.com/spf13/cobra"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [query]",
		Short: "Report which releases on each channel include a fix",
		Long: "Resolve a PR number, issue number, URL or commit SHA to its landing commits\n" +
			"and report the first release on every channel that contains one of them.",
		Example: "  fixstatus check 150000\n" +
			"  fixstatus check https://github.com/flutter/flutter/pull/150000\n" +
			"  fixstatus check --commit 0123456789abcdef0123456789abcdef01234567",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commit, _ := cmd.Flags().GetString("commit")
			if commit != "" {
				if len(args) > 0 {
					return cmd.Help()
				}
				report, err := c.app.CheckCommit(cmd.Context(), commit)
				if err != nil {
					return err
				}
				return render(cmd, report, func(r *table.Renderer) error {
					return r.CommitReport(report)
				})
			}

			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return cmd.Help()
			}
			report, err := c.app.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, report, func(r *table.Renderer) error {
				return r.Report(report)
			})
		},
	}

	cmd.Flags().String("commit", "", "Check a commit SHA directly, skipping resolution")
	addOutputFlag(cmd)

	return cmd
}
