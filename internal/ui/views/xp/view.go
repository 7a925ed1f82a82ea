package xp

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	xpdto "studyhub/internal/modules/xp/dto"
	"studyhub/internal/ui/theme"
)

const pointsPerLevel = 100

type XPPort interface {
	Snapshot(ctx context.Context) (xpdto.SnapshotOutput, error)
}

type LoadedMsg struct {
	Snapshot xpdto.SnapshotOutput
	Err      error
}

type Model struct {
	port     XPPort
	snapshot xpdto.SnapshotOutput
	err      error
	bar      progress.Model
	width    int
	height   int
}

func New(port XPPort) Model {
	return Model{port: port, bar: progress.New(progress.WithSolidFill(string(theme.Green)))}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.port.Snapshot(context.Background())
		return LoadedMsg{Snapshot: snap, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-16, 50), 10)
	case LoadedMsg:
		m.snapshot = msg.Snapshot
		m.err = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Alert.Render("xp: " + m.err.Error())
	}
	s := m.snapshot
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Level %d", s.Level)) + "  " + theme.Muted.Render(fmt.Sprintf("%d XP total", s.TotalXP)) + "\n\n")
	sb.WriteString(m.bar.ViewAs(float64(s.LevelXP)/pointsPerLevel) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d / %d to next level   %d sessions", s.LevelXP, pointsPerLevel, s.SessionCount)) + "\n\n")
	sb.WriteString(theme.Title.Render("Badges") + "\n")
	for _, b := range s.Badges {
		mark := theme.Muted.Render("○ " + b.Name)
		if b.Earned {
			mark = theme.Good.Render("● " + b.Name)
		}
		sb.WriteString(mark + "  " + theme.Muted.Render(b.Description) + "\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
