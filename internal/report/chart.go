package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/domain"
)

// ChartOptions controls how a breakdown chart is drawn.
type ChartOptions struct {
	// Width is the maximum bar width in cells.
	Width int
	// Progress scales every bar; 1 draws full length. Values above 1 are
	// allowed so a spring animation can overshoot.
	Progress float64
	// ColorFor returns the bar color of an activity.
	ColorFor func(domain.ActivityKind) string
	// LabelStyle renders the activity label column.
	LabelStyle lipgloss.Style
}

// RenderChart draws one horizontal bar per activity in the summary.
func RenderChart(s Summary, opts ChartOptions) string {
	if len(s.Breakdown) == 0 {
		return opts.LabelStyle.Render("No sessions yet.")
	}
	if opts.Width <= 0 {
		opts.Width = 30
	}
	if opts.ColorFor == nil {
		opts.ColorFor = func(a domain.ActivityKind) string { return a.Color() }
	}

	maxSeconds := s.MaxSeconds()
	var b strings.Builder
	for i, t := range s.Breakdown {
		width := BarWidth(t.TotalSeconds, maxSeconds, opts.Width, opts.Progress)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(opts.ColorFor(t.Activity))).Render(buildBar(width))
		label := opts.LabelStyle.Render(fmt.Sprintf("%-11s", t.Activity))
		fmt.Fprintf(&b, "%s %s %s", label, bar, domain.FormatTime(t.TotalSeconds))
		if i < len(s.Breakdown)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// BarWidth scales value against maxValue into width cells, allowing a quarter
// more while a spring overshoots. Non-zero values always get at least one
// cell once progress is positive.
func BarWidth(value, maxValue, width int, progress float64) int {
	if maxValue <= 0 || value <= 0 || progress <= 0 {
		return 0
	}
	w := int(math.Round(float64(value) / float64(maxValue) * float64(width) * progress))
	if w < 1 {
		w = 1
	}
	if limit := int(float64(width) * 1.25); w > limit {
		w = limit
	}
	return w
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}
