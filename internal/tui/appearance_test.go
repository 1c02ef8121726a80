package tui

import (
	"strings"
	"testing"

	"geomag-cli/internal/config"
	"geomag-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestAppearanceProfiles_KeepDefaultStable(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	lipgloss.SetColorProfile(termenv.ANSI256)
	lipgloss.SetHasDarkBackground(true)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
		setAppearanceProfile(appearanceDefault)
	})

	setAppearanceProfile(appearanceDefault)
	a := renderCell(6, "400", styleInput(false, true))

	setAppearanceProfile(appearanceNeon)
	b := renderCell(6, "400", styleInput(false, true))
	if a == b {
		t.Fatalf("expected neon profile to change rendered error cell")
	}

	setAppearanceProfile(appearanceDefault)
	c := renderCell(6, "400", styleInput(false, true))
	if a != c {
		t.Fatalf("expected default profile to be stable across toggles")
	}
}

func TestAppearancePreference_FromConfig(t *testing.T) {
	t.Setenv("GEOMAG_TUI_PROFILE", "")
	t.Cleanup(func() { setAppearanceProfile(appearanceDefault) })

	applyAppearancePreference(&config.Config{TUI: &config.TUIConfig{Profile: "neon"}})
	if appearanceProfile() != appearanceNeon {
		t.Fatalf("expected neon from config, got %q", appearanceProfile())
	}

	t.Setenv("GEOMAG_TUI_PROFILE", "default")
	applyAppearancePreference(&config.Config{TUI: &config.TUIConfig{Profile: "neon"}})
	if appearanceProfile() != appearanceDefault {
		t.Fatalf("expected env to win, got %q", appearanceProfile())
	}

	applyAppearancePreference(nil)
	if appearanceProfile() != appearanceDefault {
		t.Fatalf("expected default for nil config")
	}
}

func TestRenderCell_TruncatesAndPads(t *testing.T) {
	plain := lipgloss.NewStyle()
	if got := renderCell(5, "ab", plain); lipgloss.Width(got) != 5 {
		t.Fatalf("expected padded width 5, got %d (%q)", lipgloss.Width(got), got)
	}
	if got := renderCell(3, "abcdef", plain); lipgloss.Width(got) != 3 {
		t.Fatalf("expected truncated width 3, got %d (%q)", lipgloss.Width(got), got)
	}
}

func TestAppearanceNeon_AccentsFocusMarker(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		setAppearanceProfile(appearanceDefault)
	})

	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	setAppearanceProfile(appearanceDefault)
	plain := m.viewRow(0, m.rows[0])
	if !strings.HasPrefix(plain, glyphFocus()) {
		t.Fatalf("expected bare focus marker for default profile, got %q", plain)
	}

	setAppearanceProfile(appearanceNeon)
	neon := m.viewRow(0, m.rows[0])
	if strings.HasPrefix(neon, glyphFocus()) || !strings.Contains(neon, glyphFocus()) {
		t.Fatalf("expected styled focus marker for neon profile, got %q", neon)
	}
}
