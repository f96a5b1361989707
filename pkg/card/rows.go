package card

import (
	"bytes"
	"fmt"
	"html"
	"regexp"

	"github.com/matzehuels/wakacards/pkg/stats"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// rowAnimationStagger is the per-row slide-in animation delay.
const rowAnimationStagger = 150 // milliseconds

// wordPattern matches a letter-initial word for duration compaction.
var wordPattern = regexp.MustCompile(`([a-zA-Z])\w*`)

// buildLanguageRows builds the <li> fragments for the language card.
// Each row shows a color dot, the language name, a compact duration label,
// a proportional fill bar, and the renormalized percentage.
func buildLanguageRows(rows []stats.LanguageRow, colors wakatime.ColorMap) string {
	var buf bytes.Buffer
	for i, row := range rows {
		name := escape(row.Name)
		timeText := compactTimeText(row.TimeText)
		color := escape(colors.Color(row.Name))

		fmt.Fprintf(&buf, `        <li class="row language" style="animation-delay:%dms;">`+"\n", i*rowAnimationStagger)
		fmt.Fprintf(&buf, `          <span class="dot" style="background:%s;"></span>`+"\n", color)
		fmt.Fprintf(&buf, `          <span class="lang" title="%s">%s</span>`+"\n", name, name)
		fmt.Fprintf(&buf, `          <span class="time" title="%s">%s</span>`+"\n", timeText, timeText)
		buf.WriteString("          <span class=\"bar\">\n")
		buf.WriteString("            <span class=\"bar-background\">\n")
		fmt.Fprintf(&buf, `              <span class="bar-fill%s" style="width:%.4f%%; background:%s;"></span>`+"\n",
			capClass(row.Percent), row.Percent, color)
		buf.WriteString("            </span>\n")
		buf.WriteString("          </span>\n")
		fmt.Fprintf(&buf, `          <span class="percent">%.0f%%</span>`+"\n", row.Percent)
		buf.WriteString("        </li>\n")
	}
	return buf.String()
}

// buildProjectRows builds the <li> fragments for the project card.
// Each row shows the project name, a two-segment additions/deletions bar,
// and a right-aligned compact duration.
func buildProjectRows(rows []stats.ProjectRow) string {
	var buf bytes.Buffer
	for i, row := range rows {
		name := escape(row.Name)
		timeText := compactTimeText(row.TimeText)
		barTitle := escape(fmt.Sprintf("+ %.0f%% / - %.0f%%", row.AdditionsPct, row.DeletionsPct))

		fmt.Fprintf(&buf, `        <li class="row project" style="animation-delay:%dms;">`+"\n", i*rowAnimationStagger)
		fmt.Fprintf(&buf, `          <span class="lang" title="%s">%s</span>`+"\n", name, name)
		fmt.Fprintf(&buf, `          <span class="bar" title="%s">`+"\n", barTitle)
		buf.WriteString("            <span class=\"bar-background\">\n")
		fmt.Fprintf(&buf, `              <span class="bar-additions" style="width:%.4f%%;"></span>`+"\n", row.AdditionsPct)
		fmt.Fprintf(&buf, `              <span class="bar-deletions" style="width:%.4f%%;"></span>`+"\n", row.DeletionsPct)
		buf.WriteString("            </span>\n")
		buf.WriteString("          </span>\n")
		fmt.Fprintf(&buf, `          <span class="time project-time" title="%s">%s</span>`+"\n", timeText, timeText)
		buf.WriteString("        </li>\n")
	}
	return buf.String()
}

// capClass suppresses the rounded end cap for empty and effectively full
// bars. An empty bar's cap renders as a stray dot; a full bar's cap doubles
// the track's own rounding.
func capClass(pct float64) string {
	if pct <= 0 || pct >= fullCapThreshold {
		return " flat"
	}
	return ""
}

// escape escapes text for safe inclusion in SVG/HTML markup and attributes.
func escape(s string) string {
	return html.EscapeString(s)
}

// compactTimeText shortens and escapes a duration label for the narrow
// layout: each word collapses to its first letter ("3 hrs 12 mins" → "3 h 12 m").
func compactTimeText(text string) string {
	return escape(shortenTimeLabel(text))
}

// shortenTimeLabel collapses each letter-initial word to its first character.
func shortenTimeLabel(text string) string {
	return wordPattern.ReplaceAllString(text, "$1")
}
