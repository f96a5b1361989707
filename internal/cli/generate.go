package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wakacards/pkg/history"
	"github.com/matzehuels/wakacards/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output      string        // output directory
	top         int           // override for the per-card row limit
	refresh     bool          // bypass the response cache
	noCache     bool          // disable caching entirely
	stdout      bool          // print documents to stdout instead of writing files
	skipUnknown bool          // drop "Unknown Project" rows instead of relabelling
	timeout     time.Duration // overall run deadline, 0 = none
}

// generateCommand creates the generate command: fetch stats and write both
// cards in one step. This is the command CI workflows run.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch WakaTime stats and write both SVG cards",
		Long: `Fetch WakaTime stats and write both SVG cards.

The generate command fetches your last-7-days stats and the language color
catalog from the WakaTime API, prepares the top entries, and writes
languages.svg and projects.svg into the output directory.

Responses are cached locally; pass --refresh to force fresh API calls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.RequireAPIKey(); err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = c.Config.OutputDir
			}
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().IntVar(&opts.top, "top", 0, "number of rows per card (default from config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and force fresh API calls")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the SVG documents to stdout instead of writing files")
	cmd.Flags().BoolVar(&opts.skipUnknown, "skip-unknown", false, "drop unattributable project rows instead of relabelling them")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "overall deadline for the run (e.g. 45s), 0 for none")

	return cmd
}

// runGenerate executes the full pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	ctx = withLogger(ctx, c.Logger)
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := c.pipelineOptions(opts.refresh)
	if opts.top > 0 {
		popts.Chart.TopN = opts.top
	}
	if opts.skipUnknown {
		popts.Chart.SkipUnknown = true
	}

	spinner := newSpinnerWithContext(ctx, "Generating cards...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()

	if opts.stdout {
		for _, name := range []string{pipeline.ArtifactLanguages, pipeline.ArtifactProjects} {
			if _, err := os.Stdout.Write(result.Artifacts[name]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := pipeline.WriteArtifacts(opts.output, result.Artifacts); err != nil {
		return err
	}

	c.recordRun(ctx, result)

	printSuccess("Generated %d cards (%s)", len(result.Artifacts), result.TotalText)
	printCardStats(len(result.Languages), len(result.Projects), result.CacheInfo.StatsHit)
	for _, name := range []string{pipeline.ArtifactLanguages, pipeline.ArtifactProjects} {
		printFile(filepath.Join(opts.output, name))
	}
	return nil
}

// recordRun records the run in the history store, when one is configured.
// History failures never fail the run.
func (c *CLI) recordRun(ctx context.Context, result *pipeline.Result) {
	logger := loggerFromContext(ctx)

	store, err := c.newHistory(ctx)
	if err != nil {
		logger.Warn("history backend unavailable", "err", err)
		printWarning("History backend unavailable: %v", err)
		return
	}
	defer store.Close()

	var topLanguage string
	if len(result.Languages) > 0 {
		topLanguage = result.Languages[0].Name
	}
	run := history.NewRun(result.TotalText, topLanguage, len(result.Languages), len(result.Projects))
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("record run", "err", err)
	}
}
