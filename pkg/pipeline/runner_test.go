package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/errors"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// testStats returns a small stats payload for offline pipeline runs.
func testStats() *wakatime.StatsResponse {
	return &wakatime.StatsResponse{
		Languages: []wakatime.LanguageEntry{
			{Name: "Go", Text: "3 hrs", TotalSeconds: 10800},
			{Name: "Python", Text: "1 hr", TotalSeconds: 3600},
		},
		Projects: []wakatime.ProjectEntry{
			{Name: "wakacards", Text: "4 hrs", HumanAdditions: 120, HumanDeletions: 40},
		},
		HumanReadableTotal: "4 hrs",
	}
}

func TestExecuteOffline(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Stats: testStats()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(result.Artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(result.Artifacts))
	}
	for _, name := range []string{ArtifactLanguages, ArtifactProjects} {
		svg := string(result.Artifacts[name])
		if !strings.Contains(svg, "<svg") {
			t.Errorf("%s is not an SVG document", name)
		}
	}

	if result.TotalText != "4 hours" {
		t.Errorf("TotalText = %q, want expanded units", result.TotalText)
	}
	if len(result.Languages) != 2 || len(result.Projects) != 1 {
		t.Errorf("prepared rows = %d languages, %d projects", len(result.Languages), len(result.Projects))
	}
}

func TestExecuteTitles(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{Stats: testStats()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !strings.Contains(string(result.Artifacts[ArtifactLanguages]), "Languages · 4 hours") {
		t.Error("language card title missing")
	}
	if !strings.Contains(string(result.Artifacts[ArtifactProjects]), "Projects (+/-) · 4 hours") {
		t.Error("project card title missing")
	}
}

func TestExecuteRespectsTopN(t *testing.T) {
	payload := testStats()
	for _, name := range []string{"Rust", "C", "Zig", "Lua"} {
		payload.Languages = append(payload.Languages,
			wakatime.LanguageEntry{Name: name, TotalSeconds: 60})
	}

	runner := NewRunner(nil, nil)
	defer runner.Close()

	opts := Options{Stats: payload, Chart: config.Chart{TopN: 3}}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(result.Languages) != 3 {
		t.Errorf("got %d languages, want 3", len(result.Languages))
	}
}

func TestValidateRequiresAPIKeyOrStats(t *testing.T) {
	var opts Options
	err := opts.ValidateAndSetDefaults()
	if err == nil {
		t.Fatal("expected error without key or payload")
	}
	if !errors.Is(err, errors.ErrCodeMissingAPIKey) {
		t.Errorf("code = %v, want missing API key", errors.GetCode(err))
	}
}

func TestValidateSetsChartDefaults(t *testing.T) {
	opts := Options{Stats: testStats()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.Chart.CardWidth != config.DefaultCardWidth {
		t.Errorf("CardWidth = %d, want default", opts.Chart.CardWidth)
	}
	if opts.Chart.TopN != config.DefaultTopN {
		t.Errorf("TopN = %d, want default", opts.Chart.TopN)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Explicit values survive.
	opts2 := Options{Stats: testStats(), Chart: config.Chart{CardWidth: 480}}
	if err := opts2.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts2.Chart.CardWidth != 480 {
		t.Errorf("CardWidth = %d, want 480", opts2.Chart.CardWidth)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	artifacts := map[string][]byte{
		ArtifactLanguages: []byte("<svg/>"),
		ArtifactProjects:  []byte("<svg/>"),
	}

	if err := WriteArtifacts(dir, artifacts); err != nil {
		t.Fatalf("WriteArtifacts error: %v", err)
	}

	for name := range artifacts {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != "<svg/>" {
			t.Errorf("%s content = %q", name, data)
		}
	}
}
