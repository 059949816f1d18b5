// Package report aggregates completed sessions for the report screen,
// the MCP surface and exports.
package report

import (
	"fmt"

	"github.com/xvierd/mindit-cli/internal/domain"
)

// ActivityTotal is the summed duration of one activity.
type ActivityTotal struct {
	Activity     domain.ActivityKind `json:"activity" yaml:"activity"`
	TotalSeconds int                 `json:"total_seconds" yaml:"total_seconds"`
	Sessions     int                 `json:"sessions" yaml:"sessions"`
}

// Summary is the aggregated view of a history.
type Summary struct {
	TotalSeconds int             `json:"total_seconds" yaml:"total_seconds"`
	TotalTime    string          `json:"total_time" yaml:"total_time"`
	SessionCount int             `json:"session_count" yaml:"session_count"`
	Breakdown    []ActivityTotal `json:"breakdown" yaml:"breakdown"`
}

// TotalSeconds sums the durations of all records.
func TotalSeconds(history []domain.SessionRecord) int {
	total := 0
	for _, r := range history {
		total += r.DurationSeconds
	}
	return total
}

// TotalTime formats the summed duration as "{h}h {m}m", rounding down.
func TotalTime(history []domain.SessionRecord) string {
	return FormatHoursMinutes(TotalSeconds(history))
}

// FormatHoursMinutes formats seconds as "{h}h {m}m", rounding down.
func FormatHoursMinutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// ActivityBreakdown sums durations per activity. Entries appear in the order
// each activity is first seen while walking history; absent kinds are omitted.
func ActivityBreakdown(history []domain.SessionRecord) []ActivityTotal {
	index := make(map[domain.ActivityKind]int)
	var out []ActivityTotal
	for _, r := range history {
		i, ok := index[r.Activity]
		if !ok {
			i = len(out)
			index[r.Activity] = i
			out = append(out, ActivityTotal{Activity: r.Activity})
		}
		out[i].TotalSeconds += r.DurationSeconds
		out[i].Sessions++
	}
	return out
}

// Summarize aggregates history into a Summary.
func Summarize(history []domain.SessionRecord) Summary {
	total := TotalSeconds(history)
	breakdown := ActivityBreakdown(history)
	if breakdown == nil {
		breakdown = []ActivityTotal{}
	}
	return Summary{
		TotalSeconds: total,
		TotalTime:    FormatHoursMinutes(total),
		SessionCount: len(history),
		Breakdown:    breakdown,
	}
}

// MaxSeconds returns the largest per-activity total, used to scale charts.
func (s Summary) MaxSeconds() int {
	longest := 0
	for _, b := range s.Breakdown {
		if b.TotalSeconds > longest {
			longest = b.TotalSeconds
		}
	}
	return longest
}
