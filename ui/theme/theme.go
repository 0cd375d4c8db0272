package theme

// Palette and base style setup for the scanner window.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb"
	ColorSurface   = "#ffffff"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorIdle      = "#64748b"
	ColorScanning  = "#10b981"
	ColorCursor    = "#00ff00" // matches the cursor row drawn on frames
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Text      string
	TextMuted string
}

var darkMode bool

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{AppBg: "#0f172a", Surface: "#1e293b", Text: "#f1f5f9", TextMuted: "#94a3b8"}
	}
	return PaletteSnapshot{AppBg: ColorBg, Surface: ColorSurface, Text: ColorText, TextMuted: ColorTextMuted}
}

// StateColors returns background and foreground for a scan state name.
func StateColors(state string) (bg, fg string) {
	if state == "scanning" {
		return ColorScanning, "white"
	}
	return ColorIdle, "white"
}

// InitStyles applies the base theme for the current mode.
func InitStyles() { applyStyles() }

// SetDark switches mode and reapplies styles.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles()
	return darkMode
}

func applyStyles() {
	_ = ActivateTheme("azure light")
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))
}
