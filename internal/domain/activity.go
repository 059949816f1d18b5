package domain

import (
	"fmt"
	"strings"
)

// ActivityKind is one of the fixed relaxation activities a user can pick.
type ActivityKind string

const (
	ActivityReading    ActivityKind = "Reading"
	ActivityGaming     ActivityKind = "Gaming"
	ActivityMeditating ActivityKind = "Meditating"
	ActivityWalking    ActivityKind = "Walking"
	ActivityListening  ActivityKind = "Music"
	ActivityBreathing  ActivityKind = "Breathing"
)

// ActivityInfo is the presentation metadata attached to an activity.
type ActivityInfo struct {
	Kind  ActivityKind
	Color string
	Icon  string
}

// activityCatalog is ordered the way the selection screen lists activities.
var activityCatalog = []ActivityInfo{
	{Kind: ActivityReading, Color: "#6366f1", Icon: "📖"},
	{Kind: ActivityGaming, Color: "#8b5cf6", Icon: "🎮"},
	{Kind: ActivityMeditating, Color: "#ec4899", Icon: "🌸"},
	{Kind: ActivityWalking, Color: "#10b981", Icon: "👣"},
	{Kind: ActivityListening, Color: "#f59e0b", Icon: "🎵"},
	{Kind: ActivityBreathing, Color: "#3b82f6", Icon: "🌬"},
}

// Activities returns the catalog in display order.
func Activities() []ActivityInfo {
	out := make([]ActivityInfo, len(activityCatalog))
	copy(out, activityCatalog)
	return out
}

// Info returns the catalog entry for the activity.
// Unknown kinds get a neutral gray and no icon.
func (a ActivityKind) Info() ActivityInfo {
	for _, info := range activityCatalog {
		if info.Kind == a {
			return info
		}
	}
	return ActivityInfo{Kind: a, Color: "#6B7280"}
}

// Color returns the default display color of the activity.
func (a ActivityKind) Color() string { return a.Info().Color }

// Icon returns the display icon of the activity.
func (a ActivityKind) Icon() string { return a.Info().Icon }

// IsValid reports whether the activity is part of the catalog.
func (a ActivityKind) IsValid() bool {
	for _, info := range activityCatalog {
		if info.Kind == a {
			return true
		}
	}
	return false
}

// ValidateActivity parses an activity name, case-insensitively.
// "listening" is accepted as an alias for Music.
func ValidateActivity(s string) (ActivityKind, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "listening") {
		return ActivityListening, nil
	}
	for _, info := range activityCatalog {
		if strings.EqualFold(name, string(info.Kind)) {
			return info.Kind, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %s", ErrInvalidActivity, s, activityNames())
}

func activityNames() string {
	names := make([]string, len(activityCatalog))
	for i, info := range activityCatalog {
		names[i] = strings.ToLower(string(info.Kind))
	}
	return strings.Join(names, ", ")
}
