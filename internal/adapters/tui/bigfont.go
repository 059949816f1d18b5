package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// clockGlyphs draws the session clock in three rows of half blocks.
// Digits are three cells wide, the colon is one.
var clockGlyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▄", "▄", " "},
}

// minClockWidth is the narrowest terminal that gets the large clock.
const minClockWidth = 30

// renderClock renders an "MM:SS" string as a large clock, or as a single
// bold line when the terminal is narrower than minClockWidth. Minutes may
// have more than two digits.
func renderClock(text string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minClockWidth {
		return style.Render(text)
	}

	var rows [3][]string
	for _, ch := range text {
		glyph, ok := clockGlyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], glyph[i])
		}
	}

	lines := make([]string, len(rows))
	for i, cells := range rows {
		lines[i] = style.Render(strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}
