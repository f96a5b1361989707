package card

import (
	"strings"
	"testing"

	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/stats"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// testChart returns the default chart layout for tests.
func testChart() config.Chart {
	return config.Chart{
		CardWidth:          config.DefaultCardWidth,
		RowHeight:          config.DefaultRowHeight,
		BarThickness:       config.DefaultBarThickness,
		WPadding:           config.DefaultWPadding,
		HPadding:           config.DefaultHPadding,
		HeaderHeight:       config.DefaultHeaderHeight,
		HeaderGap:          config.DefaultHeaderGap,
		LangColWidth:       config.DefaultLangColWidth,
		TimeColWidth:       config.DefaultTimeColWidth,
		PercentColWidth:    config.DefaultPctColWidth,
		ProjectColMinWidth: config.DefaultProjectColMinWidth,
		TopN:               config.DefaultTopN,
		PrivateLabel:       config.DefaultPrivateLabel,
	}
}

func TestRenderLanguages(t *testing.T) {
	rows := []stats.LanguageRow{
		{Name: "Go", TimeText: "3 hrs 12 mins", Percent: 66.6667},
		{Name: "Python", TimeText: "1 hr 36 mins", Percent: 33.3333},
	}
	colors := wakatime.ColorMap{"Go": "#00ADD8"}

	svg := string(RenderLanguages("Languages · 4 hours 48 minutes", rows, colors, testChart()))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("output should end with </svg>")
	}
	if !strings.Contains(svg, "Languages · 4 hours 48 minutes") {
		t.Error("title missing from output")
	}
	if !strings.Contains(svg, "#00ADD8") {
		t.Error("language color missing from output")
	}
	// Python has no catalog entry and gets the neutral default.
	if !strings.Contains(svg, wakatime.DefaultBarColor) {
		t.Error("default bar color missing for uncatalogued language")
	}
	// Duration labels are compacted to first letters.
	if !strings.Contains(svg, "3 h 12 m") {
		t.Error("compacted duration label missing")
	}
}

func TestRenderLanguagesAnimationStagger(t *testing.T) {
	rows := []stats.LanguageRow{
		{Name: "Go", Percent: 50},
		{Name: "Rust", Percent: 30},
		{Name: "Python", Percent: 20},
	}

	svg := string(RenderLanguages("Languages", rows, nil, testChart()))

	for _, delay := range []string{"animation-delay:0ms", "animation-delay:150ms", "animation-delay:300ms"} {
		if !strings.Contains(svg, delay) {
			t.Errorf("missing %s", delay)
		}
	}
}

func TestRenderLanguagesEscapesNames(t *testing.T) {
	rows := []stats.LanguageRow{
		{Name: `C<script>&"x"`, TimeText: "1 hr", Percent: 100},
	}

	svg := string(RenderLanguages(`<b>&title</b>`, rows, nil, testChart()))

	if strings.Contains(svg, "<script>") {
		t.Error("row name not escaped")
	}
	if strings.Contains(svg, "<b>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("escaped name missing from output")
	}
}

func TestRenderProjects(t *testing.T) {
	rows := []stats.ProjectRow{
		{Name: "wakacards", TimeText: "2 hrs", AdditionsPct: 75, DeletionsPct: 25},
	}

	svg := string(RenderProjects("Projects (+/-) · 2 hours", rows, testChart()))

	if !strings.Contains(svg, "bar-additions") || !strings.Contains(svg, "bar-deletions") {
		t.Error("two-segment bar missing")
	}
	if !strings.Contains(svg, "width:75.0000%") || !strings.Contains(svg, "width:25.0000%") {
		t.Error("segment widths missing")
	}
	if !strings.Contains(svg, "+ 75% / - 25%") {
		t.Error("bar title missing")
	}
	if !strings.Contains(svg, additionsBarColor) || !strings.Contains(svg, deletionsBarColor) {
		t.Error("segment colors missing from stylesheet")
	}
}

func TestRenderEmptyRows(t *testing.T) {
	svg := string(RenderLanguages("Languages", nil, nil, testChart()))

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty card should still be a well-formed document")
	}
	if strings.Contains(svg, "<li") {
		t.Error("empty card should have no rows")
	}
}

func TestHeight(t *testing.T) {
	chart := testChart()

	// Dynamic: paddings + header + gap + rows + bottom margin.
	want := chart.WPadding + chart.HPadding + chart.HeaderHeight + chart.HeaderGap +
		5*chart.RowHeight + bottomMargin
	if got := Height(5, chart); got != want {
		t.Errorf("Height(5) = %d, want %d", got, want)
	}

	// Zero rows still carry the fixed overhead.
	wantEmpty := chart.WPadding + chart.HPadding + chart.HeaderHeight + chart.HeaderGap + bottomMargin
	if got := Height(0, chart); got != wantEmpty {
		t.Errorf("Height(0) = %d, want %d", got, wantEmpty)
	}

	// Explicit override wins.
	chart.CardHeight = 200
	if got := Height(5, chart); got != 200 {
		t.Errorf("Height with override = %d, want 200", got)
	}
}

func TestCapClass(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, " flat"},
		{-1, " flat"},
		{50, ""},
		{99.4, ""},
		{99.5, " flat"},
		{100, " flat"},
	}

	for _, tt := range tests {
		if got := capClass(tt.pct); got != tt.want {
			t.Errorf("capClass(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestShortenTimeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3 hrs 12 mins", "3 h 12 m"},
		{"1 hr", "1 h"},
		{"45 mins", "45 m"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := shortenTimeLabel(tt.in); got != tt.want {
			t.Errorf("shortenTimeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
