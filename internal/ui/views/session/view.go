package session

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studyhub/internal/modules/session/dto"
	"studyhub/internal/platform/timefmt"
	"studyhub/internal/ui/theme"
)

type SessionPort interface {
	Active(ctx context.Context) (sessiondto.SessionOutput, bool)
	Recent(ctx context.Context, limit int) []sessiondto.SessionOutput
}

type LoadedMsg struct {
	Active    sessiondto.SessionOutput
	HasActive bool
	Recent    []sessiondto.SessionOutput
}

type Model struct {
	port      SessionPort
	active    sessiondto.SessionOutput
	hasActive bool
	recent    []sessiondto.SessionOutput
	now       func() time.Time
	width     int
	height    int
}

func New(port SessionPort) Model {
	return Model{port: port, now: time.Now}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		active, ok := m.port.Active(ctx)
		return LoadedMsg{Active: active, HasActive: ok, Recent: m.port.Recent(ctx, 0)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.active = msg.Active
		m.hasActive = msg.HasActive
		m.recent = msg.Recent
	}
	return m, nil
}

// Active reports the session the header should show.
func (m Model) Active() (sessiondto.SessionOutput, bool) {
	return m.active, m.hasActive
}

func (m Model) View() string {
	var sb strings.Builder
	if m.hasActive {
		elapsed := m.now().Sub(m.active.StartTime)
		sb.WriteString(theme.Hot.Render("● "+m.active.CourseLabel) + "\n")
		sb.WriteString(theme.Muted.Render("started ") + m.active.StartTime.Local().Format("15:04") + "\n\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(timefmt.Elapsed(elapsed)) + "\n\n")
		sb.WriteString(theme.Muted.Render("e: end session"))
	} else {
		sb.WriteString(theme.Muted.Render("No active session.\nPick a course on the Courses tab and press s."))
	}
	current := theme.Pane.Width(max(m.width/2-4, 20)).Render(sb.String())

	var rb strings.Builder
	rb.WriteString(theme.Title.Render("Recent sessions") + "\n\n")
	if len(m.recent) == 0 {
		rb.WriteString(theme.Muted.Render("nothing logged yet"))
	}
	for _, s := range m.recent {
		when := s.StartTime.Local().Format("Jan 02 15:04")
		rb.WriteString(theme.Muted.Render(when) + "  " + s.CourseLabel + "  " + theme.Good.Render(s.DurationLabel) + "\n")
	}
	recent := theme.Pane.Width(max(m.width-m.width/2-4, 20)).Render(rb.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, current, recent)
}
