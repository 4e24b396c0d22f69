// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the avocoach TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects the color scheme. The preference is persisted locally and
// toggled at runtime.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	Mode         Mode
	ColorProfile termenv.Profile
	Palette      Palette

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble  lipgloss.Style
	CoachBubble lipgloss.Style
	ErrorBubble lipgloss.Style
	BubbleMeta  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarItemPinned   lipgloss.Style
	SidebarSearch       lipgloss.Style

	// ==========================================================================
	// BOT LIST STYLES
	// ==========================================================================

	BotCard         lipgloss.Style
	BotCardSelected lipgloss.Style
	BotCardTitle    lipgloss.Style
	BotCardDesc     lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormBox         lipgloss.Style
	FormLabel       lipgloss.Style
	FormError       lipgloss.Style
	FormButton      lipgloss.Style
	FormButtonFocus lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND FEEDBACK STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	ToastInfo  lipgloss.Style
	ToastError lipgloss.Style
}

// NewTheme creates a theme for the given mode.
func NewTheme(mode Mode) *Theme {
	t := &Theme{
		Mode:         mode,
		ColorProfile: termenv.ColorProfile(),
	}
	if mode == ModeLight {
		t.Palette = LightPalette
	} else {
		t.Mode = ModeDark
		t.Palette = DarkPalette
	}
	t.initStyles()
	return t
}

// Toggle returns the theme for the opposite mode.
func (t *Theme) Toggle() *Theme {
	if t.Mode == ModeDark {
		return NewTheme(ModeLight)
	}
	return NewTheme(ModeDark)
}

// initStyles initializes all the lip gloss styles from the palette.
func (t *Theme) initStyles() {
	p := t.Palette

	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.CoachBubble = lipgloss.NewStyle().
		Foreground(p.CoachBubbleFg).
		Background(p.CoachBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.CoachBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(p.ErrorBubbleFg).
		Background(p.ErrorBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.ErrorBubbleBorder).
		BorderLeft(true).
		PaddingLeft(2)

	t.BubbleMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Accent).
		Bold(true)

	t.SidebarItemPinned = lipgloss.NewStyle().
		Foreground(p.Warning)

	t.SidebarSearch = lipgloss.NewStyle().
		Foreground(p.TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Overlay)

	// Bot list
	t.BotCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Overlay).
		Padding(0, 2).
		Width(44)

	t.BotCardSelected = t.BotCard.
		BorderForeground(p.Accent).
		Bold(true)

	t.BotCardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	t.BotCardDesc = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 3)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	t.FormError = lipgloss.NewStyle().
		Foreground(p.Danger).
		Bold(true)

	t.FormButton = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Padding(0, 3)

	t.FormButtonFocus = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Accent).
		Bold(true).
		Padding(0, 3)

	// Status bar and feedback
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Background(p.SurfaceDim)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Toasts
	t.ToastInfo = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Accent).
		Padding(0, 1)

	t.ToastError = lipgloss.NewStyle().
		Foreground(p.TextInverse).
		Background(p.Danger).
		Padding(0, 1)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
