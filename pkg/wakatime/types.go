package wakatime

import "strings"

// DefaultBarColor is used for languages absent from the color catalog.
const DefaultBarColor = "#d0d7de"

// StatsResponse is the `data` object of the last-7-days stats endpoint.
// Missing lists decode to empty slices and missing numerics to zero, so
// rendering degrades to fewer rows instead of failing on partial payloads.
type StatsResponse struct {
	Languages []LanguageEntry `json:"languages"`
	Projects  []ProjectEntry  `json:"projects"`

	// HumanReadableTotal is the display text for total tracked time,
	// e.g. "12 hrs 34 mins".
	HumanReadableTotal string `json:"human_readable_total_including_other_language"`
}

// LanguageEntry is one language in the aggregate stats.
type LanguageEntry struct {
	Name         string  `json:"name"`
	Text         string  `json:"text"`    // display duration, e.g. "3 hrs 12 mins"
	Percent      float64 `json:"percent"` // upstream percent of tracked time
	TotalSeconds float64 `json:"total_seconds"`
}

// ProjectEntry is one project in the aggregate stats. The upstream API uses
// the placeholder name "Unknown Project" for unattributable activity.
type ProjectEntry struct {
	Name string `json:"name"`
	Text string `json:"text"`

	HumanAdditions float64 `json:"human_additions"`
	HumanDeletions float64 `json:"human_deletions"`
	AIAdditions    float64 `json:"ai_additions"`
	AIDeletions    float64 `json:"ai_deletions"`
}

// ColorMap maps language names to hex color strings.
type ColorMap map[string]string

// Color returns the color for a language, or [DefaultBarColor] when the
// language is absent from the catalog.
func (m ColorMap) Color(name string) string {
	if c, ok := m[name]; ok && c != "" {
		return c
	}
	return DefaultBarColor
}

// statsEnvelope wraps the stats payload's top-level `data` object.
type statsEnvelope struct {
	Data StatsResponse `json:"data"`
}

// languagesEnvelope wraps the language catalog's top-level `data` list.
type languagesEnvelope struct {
	Data []languageMeta `json:"data"`
}

// languageMeta is one entry of the program_languages endpoint.
type languageMeta struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// toColorMap builds a ColorMap from the raw catalog, skipping blank names
// and substituting the default color for blank colors.
func toColorMap(metas []languageMeta) ColorMap {
	colors := make(ColorMap, len(metas))
	for _, m := range metas {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		color := strings.TrimSpace(m.Color)
		if color == "" {
			color = DefaultBarColor
		}
		colors[name] = color
	}
	return colors
}
