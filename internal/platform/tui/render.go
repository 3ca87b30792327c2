package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stake-arcade/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
}

// HUD styles
var (
	hudTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hudValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	hudTokenStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	hudStateStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderHUD renders the one-line status bar shown above the playfield.
func RenderHUD(title string, snap core.Snapshot, width int) string {
	field := func(label, value string) string {
		return hudLabelStyle.Render(label+" ") + hudValueStyle.Render(value)
	}

	parts := []string{
		hudTitleStyle.Render(title),
		field("Score", fmt.Sprint(snap.Score)),
		field("Best", fmt.Sprint(snap.HighScore)),
		hudLabelStyle.Render("Tokens ") + hudTokenStyle.Render(fmt.Sprintf("%.4f", snap.TokensEarned)),
	}
	if snap.Level > 0 {
		parts = append(parts, field("Level", fmt.Sprint(snap.Level)))
		parts = append(parts, field("Time", fmt.Sprintf("%ds", snap.TimeElapsed)))
	}
	parts = append(parts, hudStateStyle.Render(snap.State.String()))

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

// roundMessage returns the overlay shown outside a running round.
func roundMessage(snap core.Snapshot, title string) (string, string, core.Color, bool) {
	switch snap.State {
	case core.RoundIdle:
		return title, "Press Enter to start", core.ColorBrightYellow, true
	case core.RoundEnded:
		if snap.Victory {
			return "VICTORY!", fmt.Sprintf("Score: %d  |  Enter: next level  |  Esc: back", snap.Score), core.ColorBrightGreen, true
		}
		return "GAME OVER", fmt.Sprintf("Score: %d  |  Enter: restart  |  Esc: back", snap.Score), core.ColorBrightRed, true
	}
	return "", "", core.ColorDefault, false
}
