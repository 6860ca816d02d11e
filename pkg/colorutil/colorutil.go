// Package colorutil provides the shared palette used to draw floor-plan
// annotations and the control-panel status swatches.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Brand is the accent used by the control panel for active controls.
var Brand = color.NRGBA{R: 0x00, G: 0x92, B: 0x57, A: 0xFF}

// Paint is the fill and outline pair used for one polygon.
type Paint struct {
	Fill   color.NRGBA
	Stroke color.NRGBA
}

// Fixed paints for the drawing overlay.
var (
	// Selected replaces the status paint of the current selection.
	Selected = Paint{Fill: Alpha(255, 255, 0, 0.3), Stroke: MustHex("#ff9900")}

	// Available, Reserved and Sold follow the apartment sale status.
	Available = Paint{Fill: Alpha(0, 255, 47, 0.3), Stroke: MustHex("#0000ff")}
	Reserved  = Paint{Fill: Alpha(255, 165, 0, 0.3), Stroke: MustHex("#ff8c00")}
	Sold      = Paint{Fill: Alpha(128, 128, 128, 0.3), Stroke: MustHex("#555555")}

	// DraftLine strokes the in-progress outline and its rubber band.
	DraftLine = MustHex("#00ff00")
	// DraftVertex fills the marker at each in-progress vertex.
	DraftVertex = MustHex("#0000ff")
)

// Alpha builds a non-premultiplied color from 8-bit channels and a 0..1 opacity.
func Alpha(r, g, b uint8, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(opacity*255 + 0.5)}
}

// ParseHex parses "#rgb" or "#rrggbb" (leading '#' optional) into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustHex is ParseHex for package-level constants; it panics on bad input.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
