// Package pipeline provides the core card generation pipeline for wakacards.
//
// This package implements the complete fetch → prepare → render pipeline that
// can be used by the CLI and the serve endpoint. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Retrieve the last-7-days stats and language colors from the
//     WakaTime API (or the cache)
//  2. Prepare: Filter, truncate, and renormalize the raw payloads into
//     renderer-ready rows
//  3. Render: Generate the language and project SVG cards
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    APIKey: key,
//	    Chart:  cfg.Chart,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.ArtifactLanguages]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/errors"
	"github.com/matzehuels/wakacards/pkg/stats"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// Artifact names used as keys in Result.Artifacts and as output filenames.
const (
	ArtifactLanguages = "languages.svg"
	ArtifactProjects  = "projects.svg"
)

// Options contains all configuration for the card generation pipeline.
type Options struct {
	// APIKey is the WakaTime API key. Required unless Stats is provided.
	APIKey string

	// Chart holds the card layout settings. Zero-valued fields are filled
	// with the built-in defaults.
	Chart config.Chart

	// Stats, when non-nil, skips the fetch stage and renders from the given
	// payload. Used by the offline render command.
	Stats *wakatime.StatsResponse

	// Colors overrides the language color catalog. When nil and Stats is
	// nil, colors are fetched alongside the stats; when nil and Stats is
	// set, all bars use the default color.
	Colors wakatime.ColorMap

	// Refresh bypasses the cache for all fetches.
	Refresh bool

	// Logger receives stage progress. Defaults to a discard logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Stats is the raw payload the cards were rendered from.
	Stats *wakatime.StatsResponse

	// TotalText is the expanded human-readable 7-day total.
	TotalText string

	// Languages and Projects are the prepared rows behind the cards.
	Languages []stats.LanguageRow
	Projects  []stats.ProjectRow

	// Artifacts contains the rendered SVGs keyed by artifact name.
	Artifacts map[string][]byte

	// Timings contains per-stage durations.
	Timings Timings

	// CacheInfo tracks which fetches hit the cache.
	CacheInfo CacheInfo
}

// Timings contains pipeline execution timings.
type Timings struct {
	FetchTime   time.Duration
	PrepareTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the fetch stage.
type CacheInfo struct {
	StatsHit  bool // Whether the stats payload came from cache
	ColorsHit bool // Whether the color catalog came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.APIKey == "" && o.Stats == nil {
		return errors.New(errors.ErrCodeMissingAPIKey, "api key is required")
	}

	if o.Chart.CardWidth <= 0 {
		o.Chart.CardWidth = config.DefaultCardWidth
	}
	if o.Chart.RowHeight <= 0 {
		o.Chart.RowHeight = config.DefaultRowHeight
	}
	if o.Chart.BarThickness <= 0 {
		o.Chart.BarThickness = config.DefaultBarThickness
	}
	if o.Chart.WPadding <= 0 {
		o.Chart.WPadding = config.DefaultWPadding
	}
	if o.Chart.HPadding <= 0 {
		o.Chart.HPadding = config.DefaultHPadding
	}
	if o.Chart.HeaderHeight <= 0 {
		o.Chart.HeaderHeight = config.DefaultHeaderHeight
	}
	if o.Chart.HeaderGap <= 0 {
		o.Chart.HeaderGap = config.DefaultHeaderGap
	}
	if o.Chart.LangColWidth <= 0 {
		o.Chart.LangColWidth = config.DefaultLangColWidth
	}
	if o.Chart.TimeColWidth <= 0 {
		o.Chart.TimeColWidth = config.DefaultTimeColWidth
	}
	if o.Chart.PercentColWidth <= 0 {
		o.Chart.PercentColWidth = config.DefaultPctColWidth
	}
	if o.Chart.ProjectColMinWidth <= 0 {
		o.Chart.ProjectColMinWidth = config.DefaultProjectColMinWidth
	}
	if o.Chart.TopN <= 0 {
		o.Chart.TopN = config.DefaultTopN
	}
	if o.Chart.PrivateLabel == "" {
		o.Chart.PrivateLabel = config.DefaultPrivateLabel
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LanguagesTitle returns the language card title for a 7-day total.
func LanguagesTitle(totalText string) string {
	return fmt.Sprintf("Languages · %s", totalText)
}

// ProjectsTitle returns the project card title for a 7-day total.
func ProjectsTitle(totalText string) string {
	return fmt.Sprintf("Projects (+/-) · %s", totalText)
}
