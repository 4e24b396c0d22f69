// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Palette holds the concrete colors for one theme mode. The theme preference
// is user-toggled and persisted, so colors are selected explicitly per mode
// rather than adapting to the terminal background.
type Palette struct {
	// Accent colors
	Accent     lipgloss.Color
	AccentDeep lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color
	Overlay       lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	// Message bubbles
	UserBubbleBg      lipgloss.Color
	UserBubbleFg      lipgloss.Color
	UserBubbleBorder  lipgloss.Color
	CoachBubbleBg     lipgloss.Color
	CoachBubbleFg     lipgloss.Color
	CoachBubbleBorder lipgloss.Color
	ErrorBubbleBg     lipgloss.Color
	ErrorBubbleFg     lipgloss.Color
	ErrorBubbleBorder lipgloss.Color
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#34D399"),
	AccentDeep: lipgloss.Color("#064E3B"),
	Success:    lipgloss.Color("#A7F3D0"),
	Warning:    lipgloss.Color("#FBBF24"),
	Danger:     lipgloss.Color("#FB7185"),

	Surface:       lipgloss.Color("#1E1E2E"),
	SurfaceDim:    lipgloss.Color("#181825"),
	SurfaceBright: lipgloss.Color("#313244"),
	Overlay:       lipgloss.Color("#45475A"),

	TextPrimary:   lipgloss.Color("#CDD6F4"),
	TextSecondary: lipgloss.Color("#A6ADC8"),
	TextMuted:     lipgloss.Color("#6C7086"),
	TextInverse:   lipgloss.Color("#1E1E2E"),

	UserBubbleBg:     lipgloss.Color("#1D4ED8"),
	UserBubbleFg:     lipgloss.Color("#E0F2FE"),
	UserBubbleBorder: lipgloss.Color("#3B82F6"),

	CoachBubbleBg:     lipgloss.Color("#14322B"),
	CoachBubbleFg:     lipgloss.Color("#D1FAE5"),
	CoachBubbleBorder: lipgloss.Color("#34D399"),

	ErrorBubbleBg:     lipgloss.Color("#881337"),
	ErrorBubbleFg:     lipgloss.Color("#FECACA"),
	ErrorBubbleBorder: lipgloss.Color("#FB7185"),
}

// LightPalette mirrors the dark palette for bright terminals.
var LightPalette = Palette{
	Accent:     lipgloss.Color("#059669"),
	AccentDeep: lipgloss.Color("#047857"),
	Success:    lipgloss.Color("#065F46"),
	Warning:    lipgloss.Color("#D97706"),
	Danger:     lipgloss.Color("#E11D48"),

	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceDim:    lipgloss.Color("#F5F5F5"),
	SurfaceBright: lipgloss.Color("#FAFAFA"),
	Overlay:       lipgloss.Color("#E5E5E5"),

	TextPrimary:   lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#6B7280"),
	TextMuted:     lipgloss.Color("#9CA3AF"),
	TextInverse:   lipgloss.Color("#FFFFFF"),

	UserBubbleBg:     lipgloss.Color("#DBEAFE"),
	UserBubbleFg:     lipgloss.Color("#1E40AF"),
	UserBubbleBorder: lipgloss.Color("#3B82F6"),

	CoachBubbleBg:     lipgloss.Color("#ECFDF5"),
	CoachBubbleFg:     lipgloss.Color("#065F46"),
	CoachBubbleBorder: lipgloss.Color("#34D399"),

	ErrorBubbleBg:     lipgloss.Color("#FEE2E2"),
	ErrorBubbleFg:     lipgloss.Color("#991B1B"),
	ErrorBubbleBorder: lipgloss.Color("#E11D48"),
}
