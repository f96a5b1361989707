// Package pkg provides the core libraries for wakacards.
//
// # Overview
//
// Wakacards turns a WakaTime account's last-7-days stats into two compact
// SVG cards: a per-language time breakdown and a per-project
// additions/deletions split. The pkg directory is organized into three main
// areas:
//
//  1. Domain logic ([wakatime], [stats], [card]) - fetch, prepare, render
//  2. Infrastructure ([cache], [history], [config], [errors]) - caching,
//     run history, configuration, structured errors
//  3. Orchestration ([pipeline]) - the fetch → prepare → render pipeline
//     shared by the CLI and the HTTP server
//
// # Architecture
//
// The typical data flow:
//
//	WakaTime API (stats + language colors)
//	         ↓
//	    [wakatime] package (authenticated client + response cache)
//	         ↓
//	    [stats] package (filter, truncate, renormalize)
//	         ↓
//	    [card] package (SVG documents)
//	         ↓
//	    languages.svg / projects.svg
//
// # Quick Start
//
// Run the complete pipeline:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wakacards/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    APIKey: key,
//	})
//	svg := result.Artifacts[pipeline.ArtifactLanguages]
//
// # Main Packages
//
// [wakatime] - API client for the two endpoints wakacards consumes
// (last-7-days stats and the language color catalog), with response caching
// and payload dump/load helpers for offline rendering.
//
// [stats] - Pure preparation functions: drop the "Other" bucket, truncate to
// the top N, renormalize percentages over the kept entries, and derive
// additions/deletions ratios per project.
//
// [card] - SVG rendering. Each card is a fixed-width document with an inline
// stylesheet and a foreignObject row list, sized from the row count.
//
// [cache] - Cache interface with file (default), Redis, and no-op backends.
//
// [history] - Optional per-run summaries in SQLite or MongoDB.
//
// [config] - Settings resolution from defaults, an optional TOML file, and
// WAKACARDS_* environment variables.
//
// [pipeline] - The fetch → prepare → render pipeline used by both the CLI
// commands and the serve endpoint.
//
// [wakatime]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/wakatime
// [stats]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/stats
// [card]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/card
// [cache]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/history
// [config]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wakacards/pkg/pipeline
package pkg
