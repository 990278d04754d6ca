package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/palette"
)

// FrameToSVG draws a frame as one rect per horizontal run of equal colour.
// Cells are scale wide and 2*scale tall, matching a terminal cell. Cells
// left at the default colour show the background fill.
func FrameToSVG(f engine.Frame, scale float64, background string) string {
	if scale <= 0 {
		scale = 1
	}
	if background == "" {
		background = "#0a0a0a"
	}
	cw, ch := scale, scale*2
	width := float64(f.W) * cw
	height := float64(f.H) * ch

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for row, cells := range f.Rows {
		for _, run := range palette.Runs(cells) {
			if !run.Color.Set {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(run.Start)*cw, float64(row)*ch, float64(run.Len)*cw, ch, run.Color.RGB.Hex()))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values left to right as a polyline, for example the
// coverage of a trace run. Fewer than two points give an empty string.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}
