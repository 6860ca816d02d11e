package app

import (
	"image/color"

	"floorplan-annotator/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// FloorPlanTheme tints the default theme with the outline palette so the
// panel controls read the same as the plan overlay.
type FloorPlanTheme struct{}

var _ fyne.Theme = (*FloorPlanTheme)(nil)

// overlayColors are taken over from the renderer palette as-is.
var overlayColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNamePrimary:   colorutil.Brand,
	theme.ColorNameHyperlink: colorutil.Brand,
	theme.ColorNameSelection: colorutil.Selected.Fill,
	theme.ColorNameWarning:   colorutil.Reserved.Stroke,
}

func (t *FloorPlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := overlayColors[name]; ok {
		return c
	}
	if name == theme.ColorNameScrollBar {
		// Plans are usually larger than the window; keep the bars visible.
		if variant == theme.VariantDark {
			return colorutil.Alpha(0xB0, 0xB0, 0xB0, 1)
		}
		return colorutil.Alpha(0x70, 0x70, 0x70, 1)
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *FloorPlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *FloorPlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *FloorPlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
