// Package config resolves wakacards settings from the environment.
//
// Resolution order, lowest to highest precedence:
//
//  1. Built-in defaults
//  2. Optional TOML config file (~/.config/wakacards/config.toml)
//  3. Environment variables (after loading .env files if present)
//
// Invalid numeric or boolean values are silently ignored in favor of the
// default, so a typo in CI configuration degrades the card layout instead of
// failing the run. The only hard requirement is WAKATIME_API_KEY, and only
// for commands that talk to the API.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/wakacards/pkg/errors"
)

// appName is the application name used for directories and env var prefixes.
const appName = "wakacards"

// Built-in chart defaults. These mirror the compact 360px card layout.
const (
	DefaultOutputDir          = "generated"
	DefaultCardWidth          = 360
	DefaultRowHeight          = 26
	DefaultBarThickness       = 8
	DefaultWPadding           = 16
	DefaultHPadding           = 12
	DefaultHeaderHeight       = 28
	DefaultHeaderGap          = 10
	DefaultLangColWidth       = 70
	DefaultTimeColWidth       = 75
	DefaultPctColWidth        = 32
	DefaultProjectColMinWidth = 120
	DefaultTopN               = 5
	DefaultPrivateLabel       = "Private Project"
)

// DefaultCacheTTL is the default freshness window for cached API payloads.
const DefaultCacheTTL = 15 * time.Minute

// Cache backend selectors.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheOff   = "off"
)

// History backend selectors.
const (
	HistorySQLite = "sqlite"
	HistoryMongo  = "mongo"
	HistoryOff    = "off"
)

// Chart holds the immutable card layout settings consumed by the renderer.
type Chart struct {
	CardWidth    int `toml:"card_width"`
	CardHeight   int `toml:"card_height"` // 0 = dynamic height from row count
	RowHeight    int `toml:"row_height"`
	BarThickness int `toml:"bar_thickness"`
	WPadding     int `toml:"w_padding"`
	HPadding     int `toml:"h_padding"`
	HeaderHeight int `toml:"header_height"`
	HeaderGap    int `toml:"header_gap"`

	LangColWidth       int `toml:"lang_col_width"`
	TimeColWidth       int `toml:"time_col_width"`
	PercentColWidth    int `toml:"percent_col_width"`
	ProjectColMinWidth int `toml:"project_col_min_width"`

	TopN         int    `toml:"top_n"`
	PrivateLabel string `toml:"private_label"`
	SkipUnknown  bool   `toml:"skip_unknown"`
}

// Config holds the resolved application configuration.
type Config struct {
	APIKey    string
	OutputDir string
	Chart     Chart

	CacheBackend string
	CacheTTL     time.Duration
	RedisURL     string

	HistoryBackend string
	HistoryPath    string
	MongoURI       string
}

// fileConfig mirrors the TOML config file layout.
type fileConfig struct {
	OutputDir string `toml:"output_dir"`
	Chart     Chart  `toml:"chart"`
	Cache     struct {
		Backend  string `toml:"backend"`
		TTL      string `toml:"ttl"`
		RedisURL string `toml:"redis_url"`
	} `toml:"cache"`
	History struct {
		Backend  string `toml:"backend"`
		Path     string `toml:"path"`
		MongoURI string `toml:"mongo_uri"`
	} `toml:"history"`
}

// Load resolves the configuration from defaults, the optional config file,
// and environment variables. It never fails on malformed values; use
// [Config.RequireAPIKey] before commands that need API access.
func Load() *Config {
	loadDotenv()

	cfg := &Config{
		OutputDir: DefaultOutputDir,
		Chart: Chart{
			CardWidth:          DefaultCardWidth,
			RowHeight:          DefaultRowHeight,
			BarThickness:       DefaultBarThickness,
			WPadding:           DefaultWPadding,
			HPadding:           DefaultHPadding,
			HeaderHeight:       DefaultHeaderHeight,
			HeaderGap:          DefaultHeaderGap,
			LangColWidth:       DefaultLangColWidth,
			TimeColWidth:       DefaultTimeColWidth,
			PercentColWidth:    DefaultPctColWidth,
			ProjectColMinWidth: DefaultProjectColMinWidth,
			TopN:               DefaultTopN,
			PrivateLabel:       DefaultPrivateLabel,
		},
		CacheBackend:   CacheFile,
		CacheTTL:       DefaultCacheTTL,
		HistoryBackend: HistoryOff,
	}

	applyFile(cfg)
	applyEnv(cfg)
	return cfg
}

// RequireAPIKey returns a structured error when no API key is configured.
// Commands call this before opening any network connection.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return errors.New(errors.ErrCodeMissingAPIKey, "WAKATIME_API_KEY is not set")
	}
	return nil
}

// Path returns the default config file path (~/.config/wakacards/config.toml).
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// loadDotenv loads the first .env file found in the search paths.
func loadDotenv() {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// applyFile overlays settings from the TOML config file, if one exists.
// A malformed file is ignored the same way a malformed env value is.
func applyFile(cfg *Config) {
	path := Path()
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return
	}

	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	overlayChart(&cfg.Chart, fc.Chart)

	if fc.Cache.Backend != "" {
		cfg.CacheBackend = fc.Cache.Backend
	}
	if d, err := time.ParseDuration(fc.Cache.TTL); err == nil && d > 0 {
		cfg.CacheTTL = d
	}
	if fc.Cache.RedisURL != "" {
		cfg.RedisURL = fc.Cache.RedisURL
	}
	if fc.History.Backend != "" {
		cfg.HistoryBackend = fc.History.Backend
	}
	if fc.History.Path != "" {
		cfg.HistoryPath = fc.History.Path
	}
	if fc.History.MongoURI != "" {
		cfg.MongoURI = fc.History.MongoURI
	}
}

// overlayChart copies non-zero file values onto the chart defaults.
func overlayChart(dst *Chart, src Chart) {
	if src.CardWidth > 0 {
		dst.CardWidth = src.CardWidth
	}
	if src.CardHeight > 0 {
		dst.CardHeight = src.CardHeight
	}
	if src.RowHeight > 0 {
		dst.RowHeight = src.RowHeight
	}
	if src.BarThickness > 0 {
		dst.BarThickness = src.BarThickness
	}
	if src.WPadding > 0 {
		dst.WPadding = src.WPadding
	}
	if src.HPadding > 0 {
		dst.HPadding = src.HPadding
	}
	if src.HeaderHeight > 0 {
		dst.HeaderHeight = src.HeaderHeight
	}
	if src.HeaderGap > 0 {
		dst.HeaderGap = src.HeaderGap
	}
	if src.LangColWidth > 0 {
		dst.LangColWidth = src.LangColWidth
	}
	if src.TimeColWidth > 0 {
		dst.TimeColWidth = src.TimeColWidth
	}
	if src.PercentColWidth > 0 {
		dst.PercentColWidth = src.PercentColWidth
	}
	if src.ProjectColMinWidth > 0 {
		dst.ProjectColMinWidth = src.ProjectColMinWidth
	}
	if src.TopN > 0 {
		dst.TopN = src.TopN
	}
	if src.PrivateLabel != "" {
		dst.PrivateLabel = src.PrivateLabel
	}
	if src.SkipUnknown {
		dst.SkipUnknown = true
	}
}

// applyEnv overlays settings from environment variables.
func applyEnv(cfg *Config) {
	cfg.APIKey = envString("WAKATIME_API_KEY", cfg.APIKey)

	cfg.OutputDir = envString("WAKACARDS_OUTPUT_DIR", cfg.OutputDir)
	cfg.Chart.CardWidth = envInt("WAKACARDS_CARD_WIDTH", cfg.Chart.CardWidth)
	cfg.Chart.CardHeight = envInt("WAKACARDS_CARD_HEIGHT", cfg.Chart.CardHeight)

	// WAKACARDS_BAR_HEIGHT predates the row/bar split and is kept as a
	// backward-compatible alias for the row height.
	cfg.Chart.RowHeight = envInt("WAKACARDS_BAR_HEIGHT", cfg.Chart.RowHeight)
	cfg.Chart.RowHeight = envInt("WAKACARDS_ROW_HEIGHT", cfg.Chart.RowHeight)

	cfg.Chart.BarThickness = envInt("WAKACARDS_BAR_THICKNESS", cfg.Chart.BarThickness)
	cfg.Chart.WPadding = envInt("WAKACARDS_W_PADDING", cfg.Chart.WPadding)
	cfg.Chart.HPadding = envInt("WAKACARDS_H_PADDING", cfg.Chart.HPadding)
	cfg.Chart.HeaderHeight = envInt("WAKACARDS_HEADER_HEIGHT", cfg.Chart.HeaderHeight)
	cfg.Chart.HeaderGap = envInt("WAKACARDS_HEADER_GAP", cfg.Chart.HeaderGap)
	cfg.Chart.LangColWidth = envInt("WAKACARDS_LANG_COL_WIDTH", cfg.Chart.LangColWidth)
	cfg.Chart.TimeColWidth = envInt("WAKACARDS_TIME_COL_WIDTH", cfg.Chart.TimeColWidth)
	cfg.Chart.PercentColWidth = envInt("WAKACARDS_PERCENT_COL_WIDTH", cfg.Chart.PercentColWidth)
	cfg.Chart.ProjectColMinWidth = envInt("WAKACARDS_PROJECT_COL_MIN_WIDTH", cfg.Chart.ProjectColMinWidth)
	cfg.Chart.TopN = envInt("WAKACARDS_TOP_N", cfg.Chart.TopN)
	cfg.Chart.PrivateLabel = envString("WAKACARDS_PRIVATE_LABEL", cfg.Chart.PrivateLabel)
	cfg.Chart.SkipUnknown = envBool("WAKACARDS_SKIP_UNKNOWN", cfg.Chart.SkipUnknown)

	cfg.CacheBackend = envString("WAKACARDS_CACHE", cfg.CacheBackend)
	cfg.CacheTTL = envDuration("WAKACARDS_CACHE_TTL", cfg.CacheTTL)
	cfg.RedisURL = envString("WAKACARDS_REDIS_URL", cfg.RedisURL)

	cfg.HistoryBackend = envString("WAKACARDS_HISTORY", cfg.HistoryBackend)
	cfg.HistoryPath = envString("WAKACARDS_HISTORY_PATH", cfg.HistoryPath)
	cfg.MongoURI = envString("WAKACARDS_MONGO_URI", cfg.MongoURI)
}

// envString retrieves a string environment variable or returns the fallback.
func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt retrieves an integer environment variable.
// Unset, malformed, or negative values return the fallback.
func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// envBool retrieves a boolean environment variable.
// Accepts the strconv.ParseBool forms; anything else returns the fallback.
func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// envDuration retrieves a duration environment variable ("30s", "15m").
// Bare integers are interpreted as seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
