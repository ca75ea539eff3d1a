// Package settings persists per-user accessibility and display preferences.
package settings

import (
	"fmt"
	"slices"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	FeatureDyslexiaFont = "dyslexia-font"
	FeatureHighContrast = "high-contrast"
	FeatureTheme        = "theme"
)

// Languages are the UI languages offered to users.
var Languages = []string{"en", "hi", "pa", "gu", "ml", "ta", "te", "bn", "mr"}

type Settings struct {
	DyslexiaFont bool   `json:"isDyslexiaFont"`
	HighContrast bool   `json:"isHighContrast"`
	Language     string `json:"language"`
	Theme        string `json:"theme"`
}

func Default() Settings {
	return Settings{Language: "en", Theme: ThemeLight}
}

func (s *Settings) ToggleDyslexiaFont() { s.DyslexiaFont = !s.DyslexiaFont }

func (s *Settings) ToggleHighContrast() { s.HighContrast = !s.HighContrast }

func (s *Settings) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
}

// Toggle flips the named boolean-like feature.
func (s *Settings) Toggle(feature string) error {
	switch feature {
	case FeatureDyslexiaFont:
		s.ToggleDyslexiaFont()
	case FeatureHighContrast:
		s.ToggleHighContrast()
	case FeatureTheme:
		s.ToggleTheme()
	default:
		return fmt.Errorf("unknown feature %q", feature)
	}
	return nil
}

func (s Settings) Validate() error {
	if !slices.Contains(Languages, s.Language) {
		return fmt.Errorf("unsupported language %q", s.Language)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("unsupported theme %q", s.Theme)
	}
	return nil
}

// normalize fills fields that older saved blobs may lack.
func (s *Settings) normalize() {
	if s.Language == "" {
		s.Language = "en"
	}
	if s.Theme == "" {
		s.Theme = ThemeLight
	}
}
