package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studyhub/internal/modules/session/domain"
	sessionout "studyhub/internal/modules/session/port/out"
	"studyhub/internal/platform/markdown"
	"studyhub/internal/platform/slug"
	"studyhub/internal/platform/timefmt"
)

const (
	maxSlug = 48

	IndexFileName      = "index.md"
	ManagedTotalsStart = "<!-- studyhub:totals:start -->"
	ManagedTotalsEnd   = "<!-- studyhub:totals:end -->"
)

// MarkdownExporter writes one note per completed session under
// <dir>/sessions/YYYY/MM/DD and keeps a totals block in <dir>/index.md.
type MarkdownExporter struct{}

func NewMarkdownExporter() sessionout.NoteExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) Export(_ context.Context, dir string, notes []domain.SessionNote, totals []domain.CourseTotal) (sessionout.ExportResult, error) {
	result := sessionout.ExportResult{Notes: make([]string, 0, len(notes))}
	for _, note := range notes {
		path, err := writeSessionNote(dir, note)
		if err != nil {
			return result, err
		}
		result.Notes = append(result.Notes, path)
	}
	indexPath, err := writeIndex(dir, totals)
	if err != nil {
		return result, err
	}
	result.IndexPath = indexPath
	return result, nil
}

type sessionFrontmatter struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	CourseID        string `yaml:"course_id"`
	Course          string `yaml:"course"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

func writeSessionNote(dir string, note domain.SessionNote) (string, error) {
	session := note.Session
	date := session.StartTime
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.MakeN(note.CourseLabel, maxSlug))
	path := filepath.Join(dir, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"), name)

	meta := sessionFrontmatter{
		SchemaVersion:   domain.SchemaVersion,
		ID:              session.ID,
		CourseID:        session.CourseID,
		Course:          note.CourseLabel,
		StartedAt:       session.StartTime.Format(time.RFC3339),
		DurationMinutes: session.DurationMinutes,
	}
	if session.EndTime != nil {
		meta.EndedAt = session.EndTime.Format(time.RFC3339)
	}
	body := fmt.Sprintf("# Study session %s\n\n- Course: [[%s]]\n- Duration: %s\n", session.ID, note.CourseLabel, timefmt.Minutes(session.DurationMinutes))
	if err := markdown.WriteNote(path, meta, body); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

// writeIndex rewrites only the managed block so text around it survives.
func writeIndex(dir string, totals []domain.CourseTotal) (string, error) {
	path := filepath.Join(dir, IndexFileName)
	meta := map[string]any{"schema_version": domain.SchemaVersion, "type": "study-index"}
	body := "# Study time\n"
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsedMeta, parsedBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr != nil {
			return "", fmt.Errorf("parse %s: %w", IndexFileName, splitErr)
		}
		if len(parsedMeta) > 0 {
			meta = parsedMeta
		}
		body = parsedBody
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read %s: %w", IndexFileName, err)
	}

	lines := make([]string, 0, len(totals))
	for _, total := range totals {
		lines = append(lines, fmt.Sprintf("- [[%s]]: %s across %d sessions", total.Label, timefmt.Minutes(total.Minutes), total.Sessions))
	}
	if len(lines) == 0 {
		lines = append(lines, "- No study sessions yet.")
	}
	body = markdown.ReplaceManagedBlock(body, ManagedTotalsStart, ManagedTotalsEnd, strings.Join(lines, "\n"))
	if err := markdown.WriteNote(path, meta, body); err != nil {
		return "", fmt.Errorf("write %s: %w", IndexFileName, err)
	}
	return path, nil
}
