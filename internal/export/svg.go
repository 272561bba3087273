// Package export renders recorded runs as standalone SVG images.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/colorfield/internal/trace"
)

// Strip draws a run as a band of vertical stripes, one per sample, with the
// gray level traced over it. Empty input yields an empty string.
func Strip(samples []trace.Sample, width, height int) string {
	if len(samples) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<g shape-rendering="crispEdges">
`, width, height, width, height))

	stripe := float64(width) / float64(len(samples))
	for i, s := range samples {
		// Overlap by half a pixel so anti-aliasing leaves no seams.
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="0" width="%.2f" height="%d" fill="%s"/>
`, float64(i)*stripe, stripe+0.5, height, s.Color.Hex()))
	}
	sb.WriteString("</g>\n")

	if len(samples) > 1 {
		sb.WriteString(levelPath(samples, width, height, "#ff3b30"))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// levelPath plots the gray level on a fixed 0-255 scale so strips of
// different runs compare directly.
func levelPath(samples []trace.Sample, width, height int, stroke string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))

	dx := float64(width) / float64(len(samples)-1)
	for i, s := range samples {
		x := float64(i) * dx
		y := float64(height) - s.Color.Level()/255*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
`)
	return sb.String()
}
