package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wakacards/pkg/cache"
	"github.com/matzehuels/wakacards/pkg/card"
	"github.com/matzehuels/wakacards/pkg/stats"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and serve endpoint can use this to avoid duplicating logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete fetch → prepare → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	payload, colors, cacheInfo, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Stats = payload
	result.CacheInfo = cacheInfo
	result.Timings.FetchTime = time.Since(fetchStart)

	r.Logger.Info("fetched stats",
		"languages", len(payload.Languages),
		"projects", len(payload.Projects),
		"cached", cacheInfo.StatsHit,
		"duration", result.Timings.FetchTime)

	// Stage 2: Prepare
	prepareStart := time.Now()
	result.TotalText = stats.TotalText(payload.HumanReadableTotal)
	result.Languages = stats.PrepareLanguages(payload.Languages, opts.Chart.TopN)
	result.Projects = stats.PrepareProjects(payload.Projects, opts.Chart.TopN,
		opts.Chart.SkipUnknown, opts.Chart.PrivateLabel)
	result.Timings.PrepareTime = time.Since(prepareStart)

	r.Logger.Info("prepared rows",
		"languages", len(result.Languages),
		"projects", len(result.Projects),
		"total", result.TotalText)

	// Stage 3: Render
	renderStart := time.Now()
	result.Artifacts[ArtifactLanguages] = card.RenderLanguages(
		LanguagesTitle(result.TotalText), result.Languages, colors, opts.Chart)
	result.Artifacts[ArtifactProjects] = card.RenderProjects(
		ProjectsTitle(result.TotalText), result.Projects, opts.Chart)
	result.Timings.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered cards",
		"artifacts", len(result.Artifacts),
		"duration", result.Timings.RenderTime)

	return result, nil
}

// Fetch resolves the stats payload and color catalog for a run.
// When opts.Stats is set the API is never contacted.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*wakatime.StatsResponse, wakatime.ColorMap, CacheInfo, error) {
	r.applyLogger(&opts)

	if opts.Stats != nil {
		return opts.Stats, opts.Colors, CacheInfo{}, nil
	}

	client := wakatime.NewClient(opts.APIKey, r.Cache)

	payload, statsHit, err := client.StatsWithCacheInfo(ctx, opts.Refresh)
	if err != nil {
		return nil, nil, CacheInfo{}, err
	}

	colors := opts.Colors
	var colorsHit bool
	if colors == nil {
		colors, colorsHit, err = client.LanguageColorsWithCacheInfo(ctx, opts.Refresh)
		if err != nil {
			return nil, nil, CacheInfo{}, err
		}
	}

	return payload, colors, CacheInfo{StatsHit: statsHit, ColorsHit: colorsHit}, nil
}

// WriteArtifacts writes all rendered artifacts into dir, creating it if
// needed. Filenames are the artifact names.
func WriteArtifacts(dir string, artifacts map[string][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for name, data := range artifacts {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
