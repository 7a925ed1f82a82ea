package courses

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coursedto "studyhub/internal/modules/course/dto"
	"studyhub/internal/ui/theme"
)

type CoursePort interface {
	List(ctx context.Context) ([]coursedto.CourseOutput, error)
}

type LoadedMsg struct {
	Courses []coursedto.CourseOutput
	Err     error
}

type courseItem struct {
	course coursedto.CourseOutput
}

func (i courseItem) Title() string       { return i.course.Label }
func (i courseItem) Description() string { return "studied " + i.course.TotalLabel }
func (i courseItem) FilterValue() string { return i.course.Label }

type Model struct {
	port    CoursePort
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port CoursePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Courses"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the course list with fresh totals.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.List(context.Background())
		return LoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width*6/10, m.height)

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Courses))
		for i, c := range msg.Courses {
			items[i] = courseItem{course: c}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading courses…")
	}
	listW := m.width * 6 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	side := theme.Pane.Width(max(m.width-listW-6, 10)).Render(m.renderSide())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, side)
}

// Selected returns the highlighted course, if any.
func (m Model) Selected() (coursedto.CourseOutput, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course, true
	}
	return coursedto.CourseOutput{}, false
}

// Select moves the cursor to the course with id.
func (m *Model) Select(id string) {
	for i, item := range m.list.Items() {
		if c, ok := item.(courseItem); ok && c.course.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderSide() string {
	if m.err != nil {
		return theme.Alert.Render("courses: " + m.err.Error())
	}
	var sb strings.Builder
	c, ok := m.Selected()
	if !ok {
		sb.WriteString(theme.Muted.Render("No courses yet.\n\nAdd one with\n:course:add <code> <topic>"))
		return sb.String()
	}
	sb.WriteString(theme.Title.Render(c.Label) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + c.ID + "\n")
	sb.WriteString(theme.Muted.Render("added:   ") + c.CreatedAt.Local().Format("2006-01-02") + "\n")
	sb.WriteString(theme.Muted.Render("studied: ") + c.TotalLabel + "\n")
	sb.WriteString(fmt.Sprintf("\n%s", theme.Muted.Render("s: start session  d: delete  x: shuffle")))
	return sb.String()
}
