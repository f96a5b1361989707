// Package cli implements the wakacards command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wakacards/pkg/buildinfo"
	"github.com/matzehuels/wakacards/pkg/cache"
	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/history"
	"github.com/matzehuels/wakacards/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "wakacards"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger and resolved config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Load(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "wakacards",
		Short:        "Wakacards renders WakaTime stats as SVG cards",
		Long:         `Wakacards fetches your last-7-days WakaTime stats and renders them as compact SVG cards (a language breakdown and a project additions/deletions split) suitable for embedding in a GitHub profile README.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ca, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ca, c.Logger), nil
}

// newCache selects the cache backend from config. --no-cache and the "off"
// backend both disable caching; a broken file cache degrades to no caching
// instead of failing the run.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.CacheBackend {
	case config.CacheOff:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, c.Config.RedisURL)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newHistory selects the history backend from config.
func (c *CLI) newHistory(ctx context.Context) (history.Store, error) {
	switch c.Config.HistoryBackend {
	case config.HistorySQLite:
		path := c.Config.HistoryPath
		if path == "" {
			path = history.DefaultPath()
		}
		return history.NewSQLiteStore(path)
	case config.HistoryMongo:
		return history.NewMongoStore(ctx, c.Config.MongoURI)
	default:
		return history.NewNullStore(), nil
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/wakacards/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// pipelineOptions builds pipeline options from the resolved config.
func (c *CLI) pipelineOptions(refresh bool) pipeline.Options {
	return pipeline.Options{
		APIKey:  c.Config.APIKey,
		Chart:   c.Config.Chart,
		Refresh: refresh,
		Logger:  c.Logger,
	}
}
