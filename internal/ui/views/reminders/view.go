package reminders

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reminderdto "studyhub/internal/modules/reminder/dto"
	"studyhub/internal/ui/theme"
)

type ReminderPort interface {
	List(ctx context.Context) []reminderdto.ReminderOutput
}

type LoadedMsg struct {
	Reminders []reminderdto.ReminderOutput
}

type Model struct {
	port      ReminderPort
	table     table.Model
	reminders []reminderdto.ReminderOutput
	width     int
	height    int
}

func New(port ReminderPort) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).BorderForeground(theme.Surface1).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(theme.Base).Background(theme.Lavender)
	t.SetStyles(styles)
	return Model{port: port, table: t}
}

func columns(width int) []table.Column {
	title := max(width-16-16-10, 12)
	return []table.Column{
		{Title: "Title", Width: title},
		{Title: "Due", Width: 16},
		{Title: "Fired", Width: 16},
		{Title: "", Width: 8},
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Reminders: m.port.List(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width - 4))
		m.table.SetHeight(max(m.height-4, 3))
		return m, nil
	case LoadedMsg:
		m.reminders = msg.Reminders
		rows := make([]table.Row, len(msg.Reminders))
		for i, r := range msg.Reminders {
			fired, flag := "", ""
			if r.FiredAt != nil {
				fired = r.FiredAt.Local().Format("2006-01-02 15:04")
				flag = "done"
			} else if r.Overdue {
				flag = "due"
			}
			rows[i] = table.Row{r.Title, r.DueAt.Local().Format("2006-01-02 15:04"), fired, flag}
		}
		m.table.SetRows(rows)
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted reminder, if any.
func (m Model) Selected() (reminderdto.ReminderOutput, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.reminders) {
		return reminderdto.ReminderOutput{}, false
	}
	return m.reminders[i], true
}

func (m Model) View() string {
	if len(m.reminders) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No reminders. Add one with :remind:add +25m stretch"))
	}
	footer := theme.Muted.Render("d: delete selected")
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), "", footer)
}
