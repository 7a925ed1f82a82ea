package timer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pomodorodto "studyhub/internal/modules/pomodoro/dto"
	"studyhub/internal/ui/theme"
)

type TimerPort interface {
	Status(ctx context.Context) pomodorodto.StatusOutput
}

type LoadedMsg struct {
	Status pomodorodto.StatusOutput
}

type Model struct {
	port   TimerPort
	status pomodorodto.StatusOutput
	bar    progress.Model
	width  int
	height int
}

func New(port TimerPort) Model {
	bar := progress.New(progress.WithGradient(string(theme.Peach), string(theme.Lavender)), progress.WithoutPercentage())
	return Model{port: port, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Status: m.port.Status(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-12, 60), 10)
	case LoadedMsg:
		m.status = msg.Status
	}
	return m, nil
}

// Status is the last loaded timer state.
func (m Model) Status() pomodorodto.StatusOutput {
	return m.status
}

func (m Model) View() string {
	s := m.status
	if s.Phase == "" {
		return theme.Muted.Render("loading timer…")
	}
	total := s.WorkMinutes * 60
	label := "Focus"
	if s.Phase == "break" {
		total = s.BreakMinutes * 60
		label = "Break"
	}
	done := 0.0
	if total > 0 {
		done = 1 - float64(s.SecondsRemaining)/float64(total)
	}
	state := theme.Muted.Render("paused")
	if s.Running {
		state = theme.Good.Render("running")
	}

	var sb strings.Builder
	sb.WriteString(theme.PhaseStyle(s.Phase).Render(label) + "  " + state + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(s.Countdown) + "\n\n")
	sb.WriteString(m.bar.ViewAs(max(0, min(done, 1))) + "\n\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("work %d min  break %d min", s.WorkMinutes, s.BreakMinutes)) + "\n\n")
	sb.WriteString(theme.Muted.Render("space: start/pause  r: reset  n: skip  w/b: switch phase"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}
