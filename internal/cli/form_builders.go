package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxPlayerNameLen = 40

// casewalkHuhTheme returns a huh theme using the formatter palette.
func casewalkHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// playerNameInput returns a huh.Input for a new player's display name.
func playerNameInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Player name").
		Description("Leave blank for " + domain.DefaultPlayerName).
		Placeholder(domain.DefaultPlayerName).
		Value(value).
		Validate(validatePlayerName)
}

// playerNameForm returns a themed single-field Form for naming a player.
func playerNameForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(playerNameInput(value)),
	).WithTheme(casewalkHuhTheme()).WithShowHelp(false)
}

// validatePlayerName accepts blank names; the store substitutes the default.
func validatePlayerName(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > maxPlayerNameLen {
		return fmt.Errorf("name must be at most %d characters", maxPlayerNameLen)
	}
	return nil
}
