package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wakacards/pkg/pipeline"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// renderCommand creates the render command: render cards from a previously
// dumped stats payload, without touching the API.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		colorsPath string
	)

	cmd := &cobra.Command{
		Use:   "render [stats.json]",
		Short: "Render SVG cards from a dumped stats payload",
		Long: `Render SVG cards from a dumped stats payload.

The render command takes a stats payload (produced by 'fetch') and writes
languages.svg and projects.svg without any API access. Without --colors all
language bars use the neutral default color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = c.Config.OutputDir
			}
			return c.runRender(cmd.Context(), args[0], output, colorsPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&colorsPath, "colors", "", "language color catalog dumped by 'fetch --colors'")

	return cmd
}

// runRender loads the payload and runs the prepare and render stages.
func (c *CLI) runRender(ctx context.Context, input, output, colorsPath string) error {
	stats, err := wakatime.ReadStats(input)
	if err != nil {
		return fmt.Errorf("load stats %s: %w", input, err)
	}

	var colors wakatime.ColorMap
	if colorsPath != "" {
		colors, err = readColors(colorsPath)
		if err != nil {
			return fmt.Errorf("load colors %s: %w", colorsPath, err)
		}
	}

	runner := pipeline.NewRunner(nil, c.Logger)
	opts := c.pipelineOptions(false)
	opts.Stats = stats
	opts.Colors = colors

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := pipeline.WriteArtifacts(output, result.Artifacts); err != nil {
		return err
	}

	printSuccess("Rendered %d cards (%s)", len(result.Artifacts), result.TotalText)
	for _, name := range []string{pipeline.ArtifactLanguages, pipeline.ArtifactProjects} {
		printFile(filepath.Join(output, name))
	}
	return nil
}

// readColors loads a name→color map dumped by 'fetch --colors'.
func readColors(path string) (wakatime.ColorMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var colors wakatime.ColorMap
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}
