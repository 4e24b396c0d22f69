// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/avocoach-tui/internal/model"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

// SelectBotMsg is emitted when the user opens a bot from the dashboard.
type SelectBotMsg struct {
	BotID string
}

// BotList is the dashboard card grid of available coaches.
type BotList struct {
	theme  *styles.Theme
	bots   []model.Bot
	cursor int
	width  int
	height int
}

// NewBotList creates the dashboard over the fixed bot catalogue.
func NewBotList(theme *styles.Theme) BotList {
	return BotList{theme: theme, bots: model.Bots()}
}

// SetTheme swaps the color scheme.
func (l *BotList) SetTheme(theme *styles.Theme) {
	l.theme = theme
}

// SetSize updates the layout dimensions.
func (l *BotList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Selected returns the bot under the cursor.
func (l *BotList) Selected() model.Bot {
	return l.bots[l.cursor]
}

// Update handles key input.
func (l BotList) Update(msg tea.Msg) (BotList, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch key.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}

	case "down", "j":
		if l.cursor < len(l.bots)-1 {
			l.cursor++
		}

	case "enter":
		id := l.bots[l.cursor].ID
		return l, func() tea.Msg { return SelectBotMsg{BotID: id} }
	}
	return l, nil
}

// View renders the card list.
func (l BotList) View() string {
	var cards []string
	for i, bot := range l.bots {
		style := l.theme.BotCard
		if i == l.cursor {
			style = l.theme.BotCardSelected
		}

		title := l.theme.BotCardTitle.Render(bot.Icon + " " + bot.Label)
		desc := l.theme.BotCardDesc.Width(40).Render(bot.Description)
		cards = append(cards, style.Render(title+"\n"+desc))
	}

	list := strings.Join(cards, "\n")
	header := l.theme.Header.Render("AVOCoach") + "\n" +
		l.theme.HeaderSubtitle.Render("Pick a coach to start a conversation") + "\n\n"

	if l.width > 0 {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Top, header+list)
	}
	return header + list
}
