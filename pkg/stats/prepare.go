// Package stats prepares raw WakaTime payloads for rendering.
//
// All functions are pure: they filter, truncate, and renormalize the raw
// language and project lists into renderer-ready rows. Upstream payloads are
// treated as untrusted (percentages may be non-finite and counts negative),
// so everything is clamped into sane ranges here rather than in the renderer.
package stats

import (
	"math"
	"strings"

	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// unknownProject is the upstream placeholder for unattributable activity
// (e.g., private repositories). Compared case-insensitively.
const unknownProject = "Unknown Project"

// otherLanguage is the aggregate bucket the stats endpoint appends for
// languages below its reporting threshold. Dropped before truncation.
const otherLanguage = "Other"

// LanguageRow is a prepared language entry.
type LanguageRow struct {
	Name     string
	TimeText string  // display duration, e.g. "3 hrs 12 mins"
	Percent  float64 // renormalized share of the kept entries, in [0,100]
	Seconds  float64
}

// ProjectRow is a prepared project entry.
type ProjectRow struct {
	Name         string
	TimeText     string
	AdditionsPct float64
	DeletionsPct float64
}

// PrepareLanguages filters and renormalizes the language list.
//
// The "Other" bucket is dropped first, then the list is truncated to limit.
// Each kept entry's percent is recomputed as its share of the kept entries'
// seconds (not the upstream total), so the rendered bars always fill the
// card proportionally. When the kept entries have zero total seconds all
// percentages are zero.
func PrepareLanguages(entries []wakatime.LanguageEntry, limit int) []LanguageRow {
	if limit <= 0 {
		return nil
	}

	kept := make([]wakatime.LanguageEntry, 0, limit)
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.Name), otherLanguage) {
			continue
		}
		kept = append(kept, e)
		if len(kept) == limit {
			break
		}
	}

	var total float64
	for _, e := range kept {
		if s := e.TotalSeconds; s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s) {
			total += s
		}
	}

	rows := make([]LanguageRow, 0, len(kept))
	for _, e := range kept {
		var pct float64
		if total > 0 {
			pct = ClampPct(e.TotalSeconds / total * 100.0)
		}
		rows = append(rows, LanguageRow{
			Name:     strings.TrimSpace(e.Name),
			TimeText: e.Text,
			Percent:  pct,
			Seconds:  e.TotalSeconds,
		})
	}
	return rows
}

// PrepareProjects truncates the project list, preserving upstream order.
//
// When skipUnknown is set, entries whose trimmed name is empty or equals the
// "Unknown Project" placeholder (case-insensitive) are dropped; otherwise the
// placeholder is relabelled with privateLabel. Addition/deletion percentages
// are derived per entry via [AdditionsDeletionsRatio].
func PrepareProjects(entries []wakatime.ProjectEntry, limit int, skipUnknown bool, privateLabel string) []ProjectRow {
	if limit <= 0 {
		return nil
	}

	rows := make([]ProjectRow, 0, limit)
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if skipUnknown && (name == "" || strings.EqualFold(name, unknownProject)) {
			continue
		}

		additions, deletions := AdditionsDeletionsRatio(e)
		rows = append(rows, ProjectRow{
			Name:         DisplayName(name, privateLabel),
			TimeText:     e.Text,
			AdditionsPct: additions,
			DeletionsPct: deletions,
		})
		if len(rows) == limit {
			break
		}
	}
	return rows
}

// DisplayName maps the upstream "Unknown Project" placeholder (any case) to
// the configured private-project label. Other names pass through trimmed.
func DisplayName(name, privateLabel string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, unknownProject) && privateLabel != "" {
		return privateLabel
	}
	return name
}

// AdditionsDeletionsRatio returns the additions and deletions percentages
// for a project based on combined human and AI change totals.
//
// Negative counts are floored at zero. When both totals are zero the result
// is (0, 0); otherwise the two values sum to 100 within rounding tolerance.
func AdditionsDeletionsRatio(p wakatime.ProjectEntry) (additionsPct, deletionsPct float64) {
	additions := math.Max(0, finiteOrZero(p.HumanAdditions)+finiteOrZero(p.AIAdditions))
	deletions := math.Max(0, finiteOrZero(p.HumanDeletions)+finiteOrZero(p.AIDeletions))

	total := additions + deletions
	if total <= 0 {
		return 0, 0
	}

	additionsPct = ClampPct(additions / total * 100.0)
	deletionsPct = ClampPct(100.0 - additionsPct)
	return additionsPct, deletionsPct
}

// ClampPct coerces a percentage to a finite value in [0, 100].
// NaN and infinities map to 0.
func ClampPct(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, p))
}

// TotalText expands the abbreviated units of the human-readable 7-day total
// ("12 hrs 34 mins" → "12 hours 34 minutes") for the card titles.
func TotalText(raw string) string {
	text := strings.ReplaceAll(raw, "hr", "hour")
	return strings.ReplaceAll(text, "min", "minute")
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
