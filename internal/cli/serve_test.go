package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wakacards/pkg/cache"
	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/pipeline"
)

// seededRunner returns a runner whose cache already holds both API payloads,
// so handlers never reach the network.
func seededRunner(t *testing.T) *pipeline.Runner {
	t.Helper()

	ca, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	ctx := context.Background()
	statsPayload := []byte(`{"data": {
		"languages": [{"name": "Go", "text": "2 hrs", "total_seconds": 7200}],
		"projects": [{"name": "wakacards", "text": "2 hrs", "human_additions": 10, "human_deletions": 5}],
		"human_readable_total_including_other_language": "2 hrs"
	}}`)
	colorsPayload := []byte(`{"data": [{"name": "Go", "color": "#00ADD8"}]}`)

	if err := ca.Set(ctx, "wakatime:stats:last_7_days", statsPayload, time.Hour); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	if err := ca.Set(ctx, "wakatime:program_languages", colorsPayload, time.Hour); err != nil {
		t.Fatalf("seed colors: %v", err)
	}

	return pipeline.NewRunner(ca, newLogger(io.Discard, LogInfo))
}

func TestServeHandlerCards(t *testing.T) {
	c := &CLI{
		Logger: newLogger(io.Discard, LogInfo),
		Config: &config.Config{APIKey: "key"},
	}
	runner := seededRunner(t)
	defer runner.Close()

	handler := c.serveHandler(runner)

	for _, path := range []string{"/cards/languages.svg", "/cards/projects.svg"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("%s: Content-Type = %q", path, ct)
		}
		if !strings.Contains(rec.Body.String(), "<svg") {
			t.Errorf("%s: body is not an SVG document", path)
		}
	}
}

func TestServeHandlerUnknownCard(t *testing.T) {
	c := &CLI{
		Logger: newLogger(io.Discard, LogInfo),
		Config: &config.Config{APIKey: "key"},
	}
	runner := seededRunner(t)
	defer runner.Close()

	req := httptest.NewRequest(http.MethodGet, "/cards/nope.svg", nil)
	rec := httptest.NewRecorder()
	c.serveHandler(runner).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServeHandlerHealthz(t *testing.T) {
	c := &CLI{
		Logger: newLogger(io.Discard, LogInfo),
		Config: &config.Config{APIKey: "key"},
	}
	runner := seededRunner(t)
	defer runner.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	c.serveHandler(runner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}
