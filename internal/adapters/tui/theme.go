package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	if resolved.Activities == nil {
		resolved.Activities = map[string]string{}
	}
	return resolved
}

// styles are the lipgloss styles shared by every screen.
type styles struct {
	title     lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	help      lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	errorText lipgloss.Style
	selected  lipgloss.Style
	frame     lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		accent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorAccent)),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorMuted)),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorUser)),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorAssistant)),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorAccent)),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.ColorAccent)).
			Padding(0, 1),
	}
}

// activityStyle colors text with the activity's themed color.
func activityStyle(theme config.ThemeConfig, a domain.ActivityKind) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ActivityColor(a)))
}
