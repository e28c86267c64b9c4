package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// variantTheme pins the default theme to one variant so the menu can
// toggle dark and light regardless of the OS preference.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(dark bool) *variantTheme {
	v := theme.VariantLight
	if dark {
		v = theme.VariantDark
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: v}
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func (t *variantTheme) isDark() bool {
	return t.variant == theme.VariantDark
}
