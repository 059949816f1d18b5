package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xvierd/mindit-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
)

// Formats lists the supported export formats.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown}

// Snapshot is the document written by Export.
type Snapshot struct {
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
	Summary     Summary                `json:"summary" yaml:"summary"`
	Sessions    []domain.SessionRecord `json:"sessions" yaml:"sessions"`
}

// NewSnapshot builds an export document for history.
func NewSnapshot(history []domain.SessionRecord, now time.Time) Snapshot {
	sessions := history
	if sessions == nil {
		sessions = []domain.SessionRecord{}
	}
	return Snapshot{
		GeneratedAt: now,
		Summary:     Summarize(history),
		Sessions:    sessions,
	}
}

// Export writes snap to w in the given format.
func Export(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return exportCSV(w, snap)
	case FormatMarkdown:
		return exportMarkdown(w, snap)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func exportCSV(w io.Writer, snap Snapshot) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "timestamp", "activity", "duration_seconds"})
	for _, s := range snap.Sessions {
		_ = cw.Write([]string{
			s.ID,
			s.Timestamp.Format(time.RFC3339),
			string(s.Activity),
			strconv.Itoa(s.DurationSeconds),
		})
	}
	cw.Flush()
	return cw.Error()
}

func exportMarkdown(w io.Writer, snap Snapshot) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("# Mind It Report\n\n")
	p("Generated: %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04"))
	p("- Total: %s\n", snap.Summary.TotalTime)
	p("- Sessions: %d\n\n", snap.Summary.SessionCount)

	if len(snap.Summary.Breakdown) > 0 {
		p("## By activity\n\n")
		for _, b := range snap.Summary.Breakdown {
			p("- %s: %s (%d)\n", b.Activity, domain.FormatTime(b.TotalSeconds), b.Sessions)
		}
		p("\n")
	}

	if len(snap.Sessions) > 0 {
		p("## Sessions\n\n")
		for _, s := range snap.Sessions {
			p("- %s %s %s\n", s.Timestamp.Format("2006-01-02 15:04"), s.Activity, domain.FormatTime(s.DurationSeconds))
		}
	}
	return err
}
