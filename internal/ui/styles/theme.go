// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the converter screen.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Compact drops borders and padding for small terminals.
	Compact bool

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Header    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Footer    lipgloss.Style
	Separator lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	GroupTab         lipgloss.Style
	GroupTabActive   lipgloss.Style
	CategoryItem     lipgloss.Style
	CategorySelected lipgloss.Style

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelLabel   lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// ==========================================================================
	// RESULT AND HISTORY STYLES
	// ==========================================================================

	ResultValue  lipgloss.Style
	ResultUnit   lipgloss.Style
	HistoryTitle lipgloss.Style
	HistoryItem  lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	InfoStyle    lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; auto asks the
// terminal for its background color.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// WithCompact returns t after switching compact mode on or off.
func (t *Theme) WithCompact(compact bool) *Theme {
	t.Compact = compact
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	pad := 1
	if t.Compact {
		pad = 0
	}

	t.App = lipgloss.NewStyle().Padding(0, pad)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 2*pad)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, pad)

	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(!t.Compact).
		BorderForeground(Overlay).
		PaddingRight(pad).
		MarginRight(pad)

	t.GroupTab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.GroupTabActive = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.CategoryItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.CategorySelected = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		PaddingLeft(2)

	// Panels
	border := lipgloss.RoundedBorder()
	if t.Compact {
		border = lipgloss.HiddenBorder()
	}

	t.Panel = lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(Overlay).
		Padding(0, pad)

	t.PanelFocused = t.Panel.
		BorderForeground(FocusRing)

	t.PanelLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ListSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(SelectionBg).
		Bold(true)

	// Result and history
	t.ResultValue = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ResultUnit = lipgloss.NewStyle().
		Foreground(Cyan)

	t.HistoryTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		MarginTop(pad)

	t.HistoryItem = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Status
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Cyan)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// Success renders msg with the success indicator.
func (t *Theme) Success(msg string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + msg)
}

// Error renders msg with the error indicator.
func (t *Theme) Error(msg string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + msg)
}

// Info renders msg with the info indicator.
func (t *Theme) Info(msg string) string {
	return t.InfoStyle.Render(StatusIndicators.Info + " " + msg)
}
