package tui

import (
	"os"
	"strings"
	"sync"

	"geomag-cli/internal/config"

	"github.com/charmbracelet/lipgloss"
)

type appearanceProfileID string

const (
	appearanceDefault appearanceProfileID = "default"
	appearanceNeon    appearanceProfileID = "neon"
)

var (
	appearanceMu      sync.RWMutex
	currentAppearance appearanceProfileID = appearanceDefault
)

// applyAppearancePreference picks the profile from GEOMAG_TUI_PROFILE, then
// the config file.
func applyAppearancePreference(cfg *config.Config) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("GEOMAG_TUI_PROFILE")))
	if v == "" {
		v = strings.ToLower(cfg.TUIProfile())
	}
	setAppearanceProfile(appearanceProfileID(v))
}

func setAppearanceProfile(id appearanceProfileID) {
	appearanceMu.Lock()
	defer appearanceMu.Unlock()

	switch id {
	case appearanceNeon:
		currentAppearance = appearanceNeon
		resetPaletteToDefaults()

		// High-contrast neon palette.
		colorSurfaceFg = ac("#111827", "#f8fafc")
		colorInputBg = ac("#eef2ff", "#0d142b")
		colorSelectedBg = ac("#e9d5ff", "#2a1b3d")
		colorSelectedFg = colorSurfaceFg
		colorMuted = ac("#4b5563", "#a3adc2")
		colorChromeMutedFg = ac("#374151", "#cbd5e1")
		colorAccent = ac("#a100ff", "#ff4fd8")
		colorErrorFg = ac("#b91c1c", "#ff5c7a")
		colorErrorBg = ac("#ffe4e6", "#3b0a1a")
	default:
		// Unknown ids fall back to the default profile.
		currentAppearance = appearanceDefault
		resetPaletteToDefaults()
	}
}

func appearanceProfile() appearanceProfileID {
	appearanceMu.RLock()
	defer appearanceMu.RUnlock()
	return currentAppearance
}

func accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}
