package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// fetchCommand creates the fetch command: dump the raw stats payload to a
// JSON file for offline rendering or debugging.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output     string
		colorsPath string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Dump the raw stats payload to a JSON file",
		Long: `Dump the raw stats payload to a JSON file.

The fetch command retrieves the last-7-days stats from the WakaTime API and
writes them to disk. Use 'render' to turn a dumped payload into cards
without further API access. Pass --colors to also dump the language color
catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.RequireAPIKey(); err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), output, colorsPath, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "stats.json", "output file for the stats payload")
	cmd.Flags().StringVar(&colorsPath, "colors", "", "also dump the language color catalog to this file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and force fresh API calls")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runFetch fetches the payloads and writes them to disk.
func (c *CLI) runFetch(ctx context.Context, output, colorsPath string, refresh, noCache bool) error {
	ca, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer ca.Close()

	client := wakatime.NewClient(c.Config.APIKey, ca)

	p := newProgress(c.Logger)
	stats, hit, err := client.StatsWithCacheInfo(ctx, refresh)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	p.done(fmt.Sprintf("Fetched %d languages, %d projects", len(stats.Languages), len(stats.Projects)))

	if err := wakatime.WriteJSON(output, stats); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	if colorsPath != "" {
		colors, err := client.LanguageColors(ctx, refresh)
		if err != nil {
			return fmt.Errorf("fetch colors: %w", err)
		}
		if err := wakatime.WriteJSON(colorsPath, colors); err != nil {
			return fmt.Errorf("write %s: %w", colorsPath, err)
		}
	}

	printSuccess("Saved stats payload")
	printCardStats(len(stats.Languages), len(stats.Projects), hit)
	printFile(output)
	if colorsPath != "" {
		printFile(colorsPath)
	}
	printNextStep("Render cards", fmt.Sprintf("wakacards render %s", output))
	return nil
}
