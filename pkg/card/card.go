// Package card renders prepared stat rows into self-contained SVG documents.
//
// Each card is a fixed-width SVG with an inline stylesheet and a
// foreignObject HTML island holding the row list, so the output renders in
// any place that accepts an <img> pointing at an SVG (GitHub READMEs in
// particular). Rendering is a pure function of the prepared rows and the
// chart layout; all user-supplied strings are escaped before embedding.
package card

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/wakacards/pkg/config"
	"github.com/matzehuels/wakacards/pkg/stats"
	"github.com/matzehuels/wakacards/pkg/wakatime"
)

// Bar segment colors for the project additions/deletions split.
const (
	additionsBarColor = "#23d18b"
	deletionsBarColor = "#f37c7c"
)

// fullCapThreshold is the fill percentage at and above which the rounded
// bar end cap is suppressed; a nearly-full bar with a rounded cap reads as
// overflowing the track.
const fullCapThreshold = 99.5

// bottomMargin is the fixed space below the last row.
const bottomMargin = 10

// RenderLanguages renders the per-language time breakdown card.
func RenderLanguages(title string, rows []stats.LanguageRow, colors wakatime.ColorMap, chart config.Chart) []byte {
	return renderDocument(title, buildLanguageRows(rows, colors), len(rows), chart)
}

// RenderProjects renders the per-project additions/deletions card.
func RenderProjects(title string, rows []stats.ProjectRow, chart config.Chart) []byte {
	return renderDocument(title, buildProjectRows(rows), len(rows), chart)
}

// Height returns the card height for a given row count: the explicit
// override when set, otherwise paddings + header + rows + bottom margin.
func Height(rowCount int, chart config.Chart) int {
	if chart.CardHeight > 0 {
		return chart.CardHeight
	}
	return chart.WPadding + chart.HPadding + chart.HeaderHeight + chart.HeaderGap +
		rowCount*chart.RowHeight + bottomMargin
}

// renderDocument assembles the complete SVG: stylesheet, border rect, and
// the foreignObject island with header and row list.
func renderDocument(title, rowsHTML string, rowCount int, chart config.Chart) []byte {
	width := chart.CardWidth
	height := Height(rowCount, chart)
	innerW := width - chart.WPadding*2
	innerH := height - chart.HPadding*2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	writeStylesheet(&buf, chart, innerW, innerH)

	const rectInset = 6
	fmt.Fprintf(&buf,
		`  <rect id="background" x="%d" y="%d" rx="%d" ry="%d" width="%d" height="%d" fill="none" stroke="#8B8B8B22" stroke-width="1"/>`+"\n",
		rectInset, rectInset, rectInset, rectInset, width-rectInset*2, height-rectInset*2)

	fmt.Fprintf(&buf, `  <foreignObject x="%d" y="%d" width="%d" height="%d">`+"\n",
		chart.WPadding, chart.HPadding, innerW, innerH)
	buf.WriteString(`    <div xmlns="http://www.w3.org/1999/xhtml" class="wrap">` + "\n")
	fmt.Fprintf(&buf, "      <h2>%s</h2>\n", escape(title))
	buf.WriteString(`      <ul class="rows">` + "\n")
	buf.WriteString(rowsHTML)
	buf.WriteString("      </ul>\n")
	buf.WriteString("    </div>\n")
	buf.WriteString("  </foreignObject>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeStylesheet emits the inline CSS, parameterized by the chart layout.
func writeStylesheet(buf *bytes.Buffer, chart config.Chart, innerW, innerH int) {
	buf.WriteString("  <style>\n")
	buf.WriteString(`    svg {
      font-family: -apple-system, BlinkMacSystemFont, Segoe UI, Helvetica, Arial, sans-serif, Apple Color Emoji, Segoe UI Emoji;
      font-size: 14px;
      line-height: 21px;
    }

    #background {
      width: calc(100% - 10px);
      height: calc(100% - 10px);
      fill: #00000000;
      stroke: #8B8B8B22;
      stroke-width: 1px;
    }
` + "\n")
	fmt.Fprintf(buf, `    foreignObject {
      width: %dpx;
      height: %dpx;
    }

    .wrap {
      width: 100%%;
      height: 100%%;
      overflow: hidden;
      text-overflow: ellipsis;
    }

    h2 {
      margin-top: 0;
      margin-bottom: %dpx;
      line-height: %dpx;
      font-size: 16px;
      font-weight: 600;
      color: rgb(72, 148, 224);
      white-space: nowrap;
      overflow: hidden;
      text-overflow: ellipsis;
    }

    .rows {
      list-style: none;
      padding: 0;
      margin: 0;
    }

    .row {
      display: grid;
      gap: 10px;
      align-items: center;
      height: %dpx;

      transform: translateX(-500%%);
      animation-name: slideIn;
      animation-duration: 1s;
      animation-function: ease-in-out;
      animation-fill-mode: forwards;
    }

    .row.language {
      grid-template-columns: 5px %dpx %dpx 1fr %dpx;
    }

    .row.project {
      grid-template-columns: minmax(%dpx, 1.3fr) 1fr 54px;
    }

    @keyframes slideIn {
      to {
        transform: translateX(0);
      }
    }
`+"\n", innerW, innerH, chart.HeaderGap, chart.HeaderHeight, chart.RowHeight,
		chart.LangColWidth, chart.TimeColWidth, chart.PercentColWidth, chart.ProjectColMinWidth)
	fmt.Fprintf(buf, `    .dot {
      width: 10px;
      height: 10px;
      border-radius: 999px;
      display: inline-block;
      box-shadow: 0 0 0 1px #00000012;
    }

    .lang {
      font-size: 12px;
      font-weight: 600;
      color: rgb(135, 135, 135);
      white-space: nowrap;
      overflow: hidden;
      text-overflow: ellipsis;
    }

    .time {
      font-size: 12px;
      color: rgb(150, 150, 150);
      white-space: nowrap;
      overflow: hidden;
      text-overflow: ellipsis;
    }

    .project-time {
      text-align: right;
      font-variant-numeric: tabular-nums;
      letter-spacing: -0.05rem;
    }

    .percent {
      font-size: 12px;
      color: rgb(150, 150, 150);
      text-align: right;
      font-variant-numeric: tabular-nums;
    }

    .bar-background {
      display: flex;
      height: %dpx;
      border-radius: 999px;
      background: #8B8B8B22;
      overflow: hidden;
    }

    .bar-fill {
      display: block;
      height: 100%%;
      border-radius: 999px;
      opacity: 0.9;
      flex: 0 0 auto;
    }

    .bar-fill.flat {
      border-radius: 0;
    }

    .bar-additions,
    .bar-deletions {
      display: block;
      height: 100%%;
      flex: 0 0 auto;
    }

    .bar-additions {
      background: %s;
    }

    .bar-deletions {
      background: %s;
    }
`, chart.BarThickness, additionsBarColor, deletionsBarColor)
	buf.WriteString("  </style>\n")
}
