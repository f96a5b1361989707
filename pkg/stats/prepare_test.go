package stats

import (
	"math"
	"testing"

	"github.com/matzehuels/wakacards/pkg/wakatime"
)

func TestClampPct(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 42.5, 42.5},
		{"zero", 0, 0},
		{"hundred", 100, 100},
		{"negative", -3, 0},
		{"over hundred", 180, 100},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPct(tt.in); got != tt.want {
				t.Errorf("ClampPct(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrepareLanguagesRenormalizes(t *testing.T) {
	entries := []wakatime.LanguageEntry{
		{Name: "Go", Text: "3 hrs", TotalSeconds: 10800},
		{Name: "Python", Text: "1 hr 30 mins", TotalSeconds: 5400},
		{Name: "TypeScript", Text: "45 mins", TotalSeconds: 2700},
	}

	rows := PrepareLanguages(entries, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Percentages are shares of the kept entries, not the upstream total.
	wantGo := 10800.0 / 16200.0 * 100
	if math.Abs(rows[0].Percent-wantGo) > 1e-9 {
		t.Errorf("Go percent = %v, want %v", rows[0].Percent, wantGo)
	}

	sum := rows[0].Percent + rows[1].Percent
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("kept percentages sum to %v, want 100", sum)
	}
}

func TestPrepareLanguagesDropsOther(t *testing.T) {
	entries := []wakatime.LanguageEntry{
		{Name: "Go", TotalSeconds: 100},
		{Name: "other", TotalSeconds: 500},
		{Name: "Rust", TotalSeconds: 100},
	}

	rows := PrepareLanguages(entries, 5)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Name == "other" || row.Name == "Other" {
			t.Errorf("Other bucket should be dropped, got row %q", row.Name)
		}
	}
}

func TestPrepareLanguagesOtherDroppedBeforeTruncation(t *testing.T) {
	// "Other" sits inside the top-N window; dropping it must make room for
	// the entry after it.
	entries := []wakatime.LanguageEntry{
		{Name: "Go", TotalSeconds: 100},
		{Name: "Other", TotalSeconds: 90},
		{Name: "Rust", TotalSeconds: 80},
	}

	rows := PrepareLanguages(entries, 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1].Name != "Rust" {
		t.Errorf("second row = %q, want Rust", rows[1].Name)
	}
}

func TestPrepareLanguagesZeroTotal(t *testing.T) {
	entries := []wakatime.LanguageEntry{
		{Name: "Go", TotalSeconds: 0},
		{Name: "Rust", TotalSeconds: 0},
	}

	rows := PrepareLanguages(entries, 5)
	for _, row := range rows {
		if row.Percent != 0 {
			t.Errorf("row %q percent = %v, want 0 for zero total", row.Name, row.Percent)
		}
	}
}

func TestPrepareLanguagesNonFiniteSeconds(t *testing.T) {
	entries := []wakatime.LanguageEntry{
		{Name: "Go", TotalSeconds: 100},
		{Name: "Broken", TotalSeconds: math.Inf(1)},
	}

	rows := PrepareLanguages(entries, 5)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// The finite entry owns the whole total; the non-finite one clamps to 0.
	if rows[0].Percent != 100 {
		t.Errorf("Go percent = %v, want 100", rows[0].Percent)
	}
	if rows[1].Percent != 0 {
		t.Errorf("Broken percent = %v, want 0", rows[1].Percent)
	}
}

func TestPrepareLanguagesLimit(t *testing.T) {
	entries := []wakatime.LanguageEntry{{Name: "Go", TotalSeconds: 1}}

	if rows := PrepareLanguages(entries, 0); rows != nil {
		t.Errorf("limit 0 should return nil, got %v", rows)
	}
	if rows := PrepareLanguages(nil, 5); len(rows) != 0 {
		t.Errorf("empty input should return no rows, got %v", rows)
	}
}

func TestPrepareProjects(t *testing.T) {
	entries := []wakatime.ProjectEntry{
		{Name: "wakacards", Text: "2 hrs", HumanAdditions: 300, HumanDeletions: 100},
		{Name: "Unknown Project", Text: "1 hr", HumanAdditions: 10},
		{Name: "dotfiles", Text: "30 mins"},
	}

	rows := PrepareProjects(entries, 5, false, "Private Project")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].AdditionsPct != 75 || rows[0].DeletionsPct != 25 {
		t.Errorf("ratio = (%v, %v), want (75, 25)", rows[0].AdditionsPct, rows[0].DeletionsPct)
	}
	if rows[1].Name != "Private Project" {
		t.Errorf("placeholder name = %q, want relabel", rows[1].Name)
	}
	if rows[2].AdditionsPct != 0 || rows[2].DeletionsPct != 0 {
		t.Errorf("zero-activity ratio = (%v, %v), want (0, 0)", rows[2].AdditionsPct, rows[2].DeletionsPct)
	}
}

func TestPrepareProjectsSkipUnknown(t *testing.T) {
	entries := []wakatime.ProjectEntry{
		{Name: "wakacards"},
		{Name: "unknown project"},
		{Name: "  "},
		{Name: "dotfiles"},
	}

	rows := PrepareProjects(entries, 5, true, "Private Project")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Name != "wakacards" || rows[1].Name != "dotfiles" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestPrepareProjectsPreservesOrder(t *testing.T) {
	entries := []wakatime.ProjectEntry{
		{Name: "b"}, {Name: "a"}, {Name: "c"},
	}

	rows := PrepareProjects(entries, 2, false, "")
	if len(rows) != 2 || rows[0].Name != "b" || rows[1].Name != "a" {
		t.Errorf("upstream order not preserved: %v", rows)
	}
}

func TestAdditionsDeletionsRatio(t *testing.T) {
	tests := []struct {
		name          string
		entry         wakatime.ProjectEntry
		wantAdditions float64
		wantDeletions float64
	}{
		{
			name:          "human and ai combined",
			entry:         wakatime.ProjectEntry{HumanAdditions: 50, AIAdditions: 25, HumanDeletions: 25},
			wantAdditions: 75,
			wantDeletions: 25,
		},
		{
			name:          "all zero",
			entry:         wakatime.ProjectEntry{},
			wantAdditions: 0,
			wantDeletions: 0,
		},
		{
			name:          "negative counts floored",
			entry:         wakatime.ProjectEntry{HumanAdditions: -10, HumanDeletions: 40},
			wantAdditions: 0,
			wantDeletions: 100,
		},
		{
			name:          "non-finite counts ignored",
			entry:         wakatime.ProjectEntry{HumanAdditions: math.NaN(), HumanDeletions: 10},
			wantAdditions: 0,
			wantDeletions: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			additions, deletions := AdditionsDeletionsRatio(tt.entry)
			if additions != tt.wantAdditions || deletions != tt.wantDeletions {
				t.Errorf("ratio = (%v, %v), want (%v, %v)",
					additions, deletions, tt.wantAdditions, tt.wantDeletions)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		label string
		want  string
	}{
		{"normal name", "wakacards", "Private Project", "wakacards"},
		{"placeholder", "Unknown Project", "Private Project", "Private Project"},
		{"placeholder lowercase", "unknown project", "Private Project", "Private Project"},
		{"placeholder no label", "Unknown Project", "", "Unknown Project"},
		{"trimmed", "  wakacards  ", "Private Project", "wakacards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.in, tt.label); got != tt.want {
				t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.in, tt.label, got, tt.want)
			}
		})
	}
}

func TestTotalText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12 hrs 34 mins", "12 hours 34 minutes"},
		{"1 hr", "1 hour"},
		{"45 mins", "45 minutes"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TotalText(tt.in); got != tt.want {
			t.Errorf("TotalText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
