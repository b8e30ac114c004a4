package viewsettings

import "errors"

// Theme selects the reading color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Zoom bounds, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 200
	DefaultZoom = 100
	ZoomStep    = 10
)

// ErrInvalidKey is returned when a store is asked for an empty book key.
var ErrInvalidKey = errors.New("viewsettings: empty book key")

// ViewSettings is the persisted per-book reading configuration. Add
// additional fields here as new settings are introduced.
type ViewSettings struct {
	Theme           Theme   `json:"theme" toml:"theme"`
	Scrolled        bool    `json:"scrolled" toml:"scrolled"`
	Invert          bool    `json:"invert" toml:"invert"`
	ZoomLevel       int     `json:"zoomLevel" toml:"zoomLevel"`
	DefaultFontSize int     `json:"defaultFontSize" toml:"defaultFontSize"`
	LineHeight      float64 `json:"lineHeight" toml:"lineHeight"`
}

var defaultSettings = ViewSettings{
	Theme:           ThemeLight,
	Scrolled:        false,
	Invert:          false,
	ZoomLevel:       DefaultZoom,
	DefaultFontSize: 16,
	LineHeight:      1.6,
}

// Defaults returns the settings used for books that have never been opened.
func Defaults() ViewSettings {
	return defaultSettings
}

// ClampZoom saturates a zoom level into [MinZoom, MaxZoom].
func ClampZoom(level int) int {
	return max(MinZoom, min(level, MaxZoom))
}

// Normalize replaces zero values with defaults so that partially written
// records do not break behaviour when new fields are added.
func (s *ViewSettings) Normalize() {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = defaultSettings.Theme
	}
	if s.ZoomLevel == 0 {
		s.ZoomLevel = defaultSettings.ZoomLevel
	}
	s.ZoomLevel = ClampZoom(s.ZoomLevel)
	if s.DefaultFontSize <= 0 {
		s.DefaultFontSize = defaultSettings.DefaultFontSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = defaultSettings.LineHeight
	}
}

// Store is the external owner of ViewSettings records. There is no
// transactional guarantee: the last Set for a key wins.
type Store interface {
	Get(bookKey string) (ViewSettings, error)
	Set(bookKey string, s ViewSettings) error
}
