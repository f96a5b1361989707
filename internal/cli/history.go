package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// historyCommand creates the history command for listing recorded runs.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generate runs",
		Long: `List recent generate runs.

Runs are recorded by 'generate' when a history backend is configured
(WAKACARDS_HISTORY=sqlite or mongo). With history disabled this command
prints nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of runs to show")

	return cmd
}

// runHistory lists the most recent runs from the configured backend.
func (c *CLI) runHistory(ctx context.Context, limit int) error {
	store, err := c.newHistory(ctx)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		printInfo("No recorded runs")
		return nil
	}

	for _, run := range runs {
		printKeyValue(run.GeneratedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s · %s · %d languages, %d projects",
				run.TotalText, run.TopLanguage, run.LanguageCount, run.ProjectCount))
	}
	return nil
}
