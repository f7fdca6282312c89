package web

import (
	"fmt"
	"strings"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
)

// Chart geometry in SVG user units.
const (
	chartWidth  = 720
	chartHeight = 240
	chartPad    = 32
)

// plotArea returns the drawable width and height inside the padding.
func plotArea() (float64, float64) {
	return chartWidth - 2*chartPad, chartHeight - 2*chartPad
}

// svgOpen starts a chart with an accessible title and the x axis.
func svgOpen(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" role="img"><title>%s</title>`,
		chartWidth, chartHeight, chartWidth, chartHeight, title)
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#999"/>`,
		chartPad, chartHeight-chartPad, chartWidth-chartPad, chartHeight-chartPad)
}

// svgAxisLabels prints the first and last dates under the axis and the max value on the left.
func svgAxisLabels(b *strings.Builder, first, last string, maxValue int) {
	base := chartHeight - chartPad
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="11">%s</text>`, chartPad, base+16, first)
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="11" text-anchor="end">%s</text>`, chartWidth-chartPad, base+16, last)
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="11" text-anchor="end">%d</text>`, chartPad-4, chartPad+4, maxValue)
}

// outcomeBarsSVG draws one stacked bar per day: wins at the bottom, then draws, then losses.
func outcomeBarsSVG(daily []schema.DailyOutcome) string {
	if len(daily) == 0 {
		return ""
	}
	maxTotal := 0
	for _, d := range daily {
		maxTotal = max(maxTotal, d.Total())
	}
	plotW, plotH := plotArea()
	slot := plotW / float64(len(daily))
	barW := slot * 0.8
	base := float64(chartHeight - chartPad)

	var b strings.Builder
	svgOpen(&b, "Results per day")
	for i, d := range daily {
		x := chartPad + float64(i)*slot + (slot-barW)/2
		y := base
		for _, seg := range []struct {
			n     int
			color string
			label string
		}{
			{d.Wins, "#1a7f37", "wins"},
			{d.Draws, "#d4a72c", "draws"},
			{d.Losses, "#cf222e", "losses"},
		} {
			if seg.n == 0 {
				continue
			}
			h := float64(seg.n) / float64(maxTotal) * plotH
			y -= h
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %d %s</title></rect>`,
				x, y, barW, h, seg.color, d.Date.Format(contract.DateFormat), seg.n, seg.label)
		}
	}
	svgAxisLabels(&b, daily[0].Date.Format(contract.DateFormat), daily[len(daily)-1].Date.Format(contract.DateFormat), maxTotal)
	b.WriteString(`</svg>`)
	return b.String()
}

// cumulativeAreaSVG draws the running match total as a filled area.
func cumulativeAreaSVG(series []schema.DailyCount) string {
	if len(series) == 0 {
		return ""
	}
	plotW, plotH := plotArea()
	total := series[len(series)-1].Cumulative
	base := float64(chartHeight - chartPad)

	xAt := func(i int) float64 {
		if len(series) == 1 {
			return chartPad + plotW/2
		}
		return chartPad + float64(i)*plotW/float64(len(series)-1)
	}
	yAt := func(v int) float64 {
		if total == 0 {
			return base
		}
		return base - float64(v)/float64(total)*plotH
	}

	points := make([]string, 0, len(series))
	for i, d := range series {
		points = append(points, fmt.Sprintf("%.1f,%.1f", xAt(i), yAt(d.Cumulative)))
	}

	var b strings.Builder
	svgOpen(&b, "Cumulative matches")
	fmt.Fprintf(&b, `<path d="M%.1f,%.1f L%s L%.1f,%.1f Z" fill="#54aeff" fill-opacity="0.35" stroke="none"/>`,
		xAt(0), base, strings.Join(points, " L"), xAt(len(series)-1), base)
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#0969da" stroke-width="2"/>`, strings.Join(points, " "))
	svgAxisLabels(&b, series[0].Date.Format(contract.DateFormat), series[len(series)-1].Date.Format(contract.DateFormat), total)
	b.WriteString(`</svg>`)
	return b.String()
}
