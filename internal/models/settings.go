package models

// Theme names a page color scheme
type Theme string

const (
	ThemeOriginal Theme = "original"
	ThemeSimple   Theme = "simple"
	ThemeFresh    Theme = "fresh"
	ThemeDeep     Theme = "deep"
	ThemeVintage  Theme = "vintage"
	ThemeColorful Theme = "colorful"
)

// Themes lists every theme the page knows how to style
var Themes = []Theme{ThemeOriginal, ThemeSimple, ThemeFresh, ThemeDeep, ThemeVintage, ThemeColorful}

// WidthAuto lets the bookmark container follow the viewport
const WidthAuto = "auto"

// BackgroundSettings controls the page background image
type BackgroundSettings struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	URL     string `json:"url" yaml:"url"`
}

// AppSettings holds the cosmetic settings of the new-tab page
type AppSettings struct {
	Width      string             `json:"width" yaml:"width"` // "auto" or a pixel count
	Theme      Theme              `json:"theme" yaml:"theme"`
	Background BackgroundSettings `json:"background" yaml:"background"`
}

// DefaultSettings returns the settings used when nothing is persisted
func DefaultSettings() AppSettings {
	return AppSettings{
		Width: WidthAuto,
		Theme: ThemeOriginal,
		Background: BackgroundSettings{
			Enabled: false,
			URL:     "",
		},
	}
}

