package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme colors
var (
	colorPrimary   = color.NRGBA{R: 16, G: 31, B: 56, A: 255}   // dark blue
	colorAccent    = color.NRGBA{R: 139, G: 195, B: 74, A: 255} // lime
	colorError     = color.NRGBA{R: 229, G: 57, B: 53, A: 255}
	colorWarning   = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	colorLightBg   = color.NRGBA{R: 244, G: 245, B: 246, A: 255}
	colorDarkBg    = color.NRGBA{R: 20, G: 29, B: 43, A: 255}
	colorLightText = color.NRGBA{R: 16, G: 31, B: 56, A: 255}
	colorDarkText  = color.NRGBA{R: 242, G: 242, B: 242, A: 255}
)

// compactSizes shrinks the default paddings so more grid columns fit on screen
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:            3,
	theme.SizeNameInnerPadding:       6,
	theme.SizeNameLineSpacing:        2,
	theme.SizeNameScrollBar:          12,
	theme.SizeNameText:               13,
	theme.SizeNameHeadingText:        16,
	theme.SizeNameSubHeadingText:     13,
	theme.SizeNameCaptionText:        10,
	theme.SizeNameInputRadius:        3,
	theme.SizeNameSelectionRadius:    2,
	theme.SizeNameSeparatorThickness: 1,
}

// CompactTheme is the application theme: reduced paddings and the timetable palette
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePrimary:
		if dark {
			return colorAccent
		}
		return colorPrimary
	case theme.ColorNameSuccess:
		return colorAccent
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameWarning:
		return colorWarning
	case theme.ColorNameBackground:
		if dark {
			return colorDarkBg
		}
		return colorLightBg
	case theme.ColorNameForeground:
		if dark {
			return colorDarkText
		}
		return colorLightText
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
