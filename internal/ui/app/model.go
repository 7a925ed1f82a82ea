package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coursedto "studyhub/internal/modules/course/dto"
	notifydto "studyhub/internal/modules/notify/dto"
	pomodorodto "studyhub/internal/modules/pomodoro/dto"
	reminderinadapter "studyhub/internal/modules/reminder/adapter/in"
	reminderdto "studyhub/internal/modules/reminder/dto"
	sessiondto "studyhub/internal/modules/session/dto"
	xpdto "studyhub/internal/modules/xp/dto"
	"studyhub/internal/ui/components"
	"studyhub/internal/ui/theme"
	coursesview "studyhub/internal/ui/views/courses"
	remindersview "studyhub/internal/ui/views/reminders"
	sessionview "studyhub/internal/ui/views/session"
	timerview "studyhub/internal/ui/views/timer"
	xpview "studyhub/internal/ui/views/xp"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type CoursePort interface {
	Add(ctx context.Context, code, topic string) (coursedto.CourseOutput, bool, error)
	List(ctx context.Context) ([]coursedto.CourseOutput, error)
	Delete(ctx context.Context, id string) (coursedto.DeleteOutput, error)
	Shuffle(ctx context.Context) (coursedto.CourseOutput, bool)
}

type SessionPort interface {
	Start(ctx context.Context, courseID string) (sessiondto.StartOutput, error)
	End(ctx context.Context) (sessiondto.EndOutput, error)
	Active(ctx context.Context) (sessiondto.SessionOutput, bool)
	Recent(ctx context.Context, limit int) []sessiondto.SessionOutput
	Export(ctx context.Context, dir string) (sessiondto.ExportOutput, error)
}

type TimerPort interface {
	Status(ctx context.Context) pomodorodto.StatusOutput
	Start(ctx context.Context) (pomodorodto.StatusOutput, error)
	Pause(ctx context.Context) (pomodorodto.StatusOutput, error)
	Reset(ctx context.Context) (pomodorodto.StatusOutput, error)
	Skip(ctx context.Context) (pomodorodto.StatusOutput, error)
	Switch(ctx context.Context, phase string) (pomodorodto.StatusOutput, bool, error)
	Configure(ctx context.Context, work, brk *int) (pomodorodto.StatusOutput, error)
}

type ReminderPort interface {
	Add(ctx context.Context, title string, due time.Time) (reminderdto.ReminderOutput, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) []reminderdto.ReminderOutput
}

type XPPort interface {
	Award(ctx context.Context, amount int) (xpdto.AwardOutput, error)
	Snapshot(ctx context.Context) (xpdto.SnapshotOutput, error)
}

type NotifyPort interface {
	Test(ctx context.Context) notifydto.TestOutput
}

// Ports bundles what the root model drives. Notifications may be nil.
type Ports struct {
	Courses       CoursePort
	Sessions      SessionPort
	Timer         TimerPort
	Reminders     ReminderPort
	XP            XPPort
	Notify        NotifyPort
	Notifications <-chan notifydto.Message
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCourses tabID = iota
	tabSession
	tabTimer
	tabReminders
	tabXP
	tabCount
)

var tabLabels = [tabCount]string{
	"Courses", "Session", "Timer", "Reminders", "XP",
}

const refreshPeriod = time.Second

// ─── messages ────────────────────────────────────────────────────────────────

type refreshMsg struct{}

// QuoteMsg replaces the header quote. The host sends it on a schedule.
type QuoteMsg struct{ Quote string }

type notificationMsg notifydto.Message

// actionMsg reports a finished user action. Every view reloads afterwards.
type actionMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	End     key.Binding
	Delete  key.Binding
	Shuffle key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Skip    key.Binding
	Phase   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Shuffle: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "shuffle course")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip phase")),
		Phase:   key.NewBinding(key.WithKeys("w", "b"), key.WithHelp("w/b", "work/break")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.End, k.Delete, k.Shuffle},
		{k.Toggle, k.Reset, k.Skip, k.Phase},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs user actions
// against the ports and shows notifications in the status bar.
type Model struct {
	ports Ports

	courseView   coursesview.Model
	sessionView  sessionview.Model
	timerView    timerview.Model
	reminderView remindersview.Model
	xpView       xpview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	quote     string
	status    string
	now       func() time.Time
	width     int
	height    int
}

func NewModel(ports Ports) Model {
	return Model{
		ports:        ports,
		courseView:   coursesview.New(ports.Courses),
		sessionView:  sessionview.New(ports.Sessions),
		timerView:    timerview.New(ports.Timer),
		reminderView: remindersview.New(ports.Reminders),
		xpView:       xpview.New(ports.XP),
		activeTab:    tabCourses,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		quote:        components.Quote(nil),
		status:       "ready",
		now:          time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.courseView.Init(),
		m.sessionView.Init(),
		m.timerView.Init(),
		m.reminderView.Init(),
		m.xpView.Init(),
		refreshCmd(),
		m.waitNotificationCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case refreshMsg:
		return m, tea.Batch(refreshCmd(), m.sessionView.Reload(), m.timerView.Reload(), m.reminderView.Reload())

	case QuoteMsg:
		m.quote = msg.Quote
		return m, nil

	case notificationMsg:
		m.status = theme.Hot.Render(msg.Title) + " " + msg.Body
		return m, tea.Batch(m.waitNotificationCmd(), m.reloadAll())

	case actionMsg:
		if msg.err != nil {
			m.status = theme.Alert.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}
		return m, m.reloadAll()

	case coursesview.LoadedMsg:
		var cmd tea.Cmd
		m.courseView, cmd = m.courseView.Update(msg)
		return m, cmd
	case sessionview.LoadedMsg:
		m.sessionView, _ = m.sessionView.Update(msg)
		return m, nil
	case timerview.LoadedMsg:
		m.timerView, _ = m.timerView.Update(msg)
		return m, nil
	case remindersview.LoadedMsg:
		m.reminderView, _ = m.reminderView.Update(msg)
		return m, nil
	case xpview.LoadedMsg:
		m.xpView, _ = m.xpView.Update(msg)
		return m, nil

	case components.PaletteSubmitMsg:
		return m, m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabCourses && m.courseView.Filtering() {
			break
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabCourses:
		m.courseView, cmd = m.courseView.Update(msg)
	case tabReminders:
		m.reminderView, cmd = m.reminderView.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return nil, true
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return nil, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case ":":
		return m.palette.Open(), true
	}

	switch m.activeTab {
	case tabCourses:
		switch msg.String() {
		case "s":
			return m.startSelectedCmd(), true
		case "d":
			if c, ok := m.courseView.Selected(); ok {
				return m.deleteCourseCmd(c.ID), true
			}
			return nil, true
		case "x":
			return m.shuffleCmd(), true
		}
	case tabSession:
		if msg.String() == "e" {
			return m.endSessionCmd(), true
		}
	case tabTimer:
		switch msg.String() {
		case " ":
			return m.toggleTimerCmd(), true
		case "r":
			return m.timerCmd("timer reset", m.ports.Timer.Reset), true
		case "n":
			return m.timerCmd("phase skipped", m.ports.Timer.Skip), true
		case "w":
			return m.switchPhaseCmd("work"), true
		case "b":
			return m.switchPhaseCmd("break"), true
		}
	case tabReminders:
		if msg.String() == "d" {
			if r, ok := m.reminderView.Selected(); ok {
				return m.deleteReminderCmd(r.ID), true
			}
			return nil, true
		}
	}
	return nil, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabCourses:
		return m.courseView.View()
	case tabSession:
		return m.sessionView.View()
	case tabTimer:
		return m.timerView.View()
	case tabReminders:
		return m.reminderView.View()
	case tabXP:
		return m.xpView.View()
	}
	return ""
}

func (m Model) renderHeader() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "studyhub  " + strings.Join(parts, theme.Muted.Render(" │ "))
	tabs := lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
	quote := lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(theme.Quote.Render(m.quote))
	return tabs + "\n" + quote + "\n"
}

func (m Model) renderStatusBar() string {
	var left []string
	if s, ok := m.sessionView.Active(); ok {
		left = append(left, theme.Hot.Render("● "+s.CourseLabel))
	}
	if t := m.timerView.Status(); t.Running {
		left = append(left, theme.PhaseStyle(t.Phase).Render(t.Phase+" "+t.Countdown))
	}
	left = append(left, m.status)
	l := strings.Join(left, "  ")
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := max(m.width-lipgloss.Width(l)-lipgloss.Width(right), 1)
	bar := l + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m *Model) executePalette(input string) tea.Cmd {
	inv, err := components.ParseCommand(input)
	if errors.Is(err, components.ErrEmptyCommand) {
		return nil
	}
	if err != nil {
		m.status = err.Error()
		return nil
	}

	switch inv.Command.Name {
	case "course:add":
		return m.addCourseCmd(inv.Arg(0), inv.Rest(1))
	case "course:delete":
		if c, ok := m.courseView.Selected(); ok {
			return m.deleteCourseCmd(c.ID)
		}
		m.status = "no course selected"
	case "course:shuffle":
		return m.shuffleCmd()

	case "session:start":
		return m.startSelectedCmd()
	case "session:end":
		return m.endSessionCmd()
	case "session:export":
		return m.exportCmd(inv.Rest(0))

	case "timer:start":
		return m.timerCmd("timer started", m.ports.Timer.Start)
	case "timer:pause":
		return m.timerCmd("timer paused", m.ports.Timer.Pause)
	case "timer:reset":
		return m.timerCmd("timer reset", m.ports.Timer.Reset)
	case "timer:skip":
		return m.timerCmd("phase skipped", m.ports.Timer.Skip)
	case "timer:switch":
		return m.switchPhaseCmd(inv.Arg(0))
	case "timer:set":
		work, err1 := strconv.Atoi(inv.Arg(0))
		brk, err2 := strconv.Atoi(inv.Arg(1))
		if err1 != nil || err2 != nil {
			m.status = "timer:set takes whole minutes"
			return nil
		}
		return m.configureCmd(work, brk)

	case "remind:add":
		due, err := reminderinadapter.ParseDue(inv.Arg(0), m.now(), time.Local)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		return m.addReminderCmd(inv.Rest(1), due)
	case "remind:delete":
		if r, ok := m.reminderView.Selected(); ok {
			return m.deleteReminderCmd(r.ID)
		}
		m.status = "no reminder selected"

	case "xp:award":
		amount, err := strconv.Atoi(inv.Arg(0))
		if err != nil {
			m.status = "xp:award takes a whole number"
			return nil
		}
		return m.awardCmd(amount)

	case "notify:test":
		return m.notifyTestCmd()
	}
	return nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-5, 1)}
	m.courseView, _ = m.courseView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.reminderView, _ = m.reminderView.Update(sz)
	m.xpView, _ = m.xpView.Update(sz)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(
		m.courseView.Reload(),
		m.sessionView.Reload(),
		m.timerView.Reload(),
		m.reminderView.Reload(),
		m.xpView.Reload(),
	)
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshPeriod, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m Model) waitNotificationCmd() tea.Cmd {
	ch := m.ports.Notifications
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(msg)
	}
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) addCourseCmd(code, topic string) tea.Cmd {
	return func() tea.Msg {
		c, ok, err := m.ports.Courses.Add(context.Background(), code, topic)
		if !ok {
			return actionMsg{status: "course needs a code and a topic", err: err}
		}
		return actionMsg{status: "added " + c.Label, err: err}
	}
}

func (m Model) deleteCourseCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Courses.Delete(context.Background(), id)
		if !out.Deleted {
			return actionMsg{status: "course not found", err: err}
		}
		return actionMsg{status: "course deleted", err: err}
	}
}

func (m *Model) shuffleCmd() tea.Cmd {
	c, ok := m.ports.Courses.Shuffle(context.Background())
	if !ok {
		m.status = "no courses to shuffle"
		return nil
	}
	m.courseView.Select(c.ID)
	m.status = "study next: " + c.Label
	return nil
}

func (m Model) startSelectedCmd() tea.Cmd {
	c, ok := m.courseView.Selected()
	if !ok {
		return func() tea.Msg { return actionMsg{status: "no course selected"} }
	}
	return func() tea.Msg {
		out, err := m.ports.Sessions.Start(context.Background(), c.ID)
		if !out.Started {
			return actionMsg{status: "could not start a session", err: err}
		}
		status := "session started: " + out.Session.CourseLabel
		if out.Ended != nil {
			status += fmt.Sprintf(" (ended %s after %s)", out.Ended.CourseLabel, out.Ended.DurationLabel)
		}
		return actionMsg{status: status, err: err}
	}
}

func (m Model) endSessionCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Sessions.End(context.Background())
		if !out.Ended {
			return actionMsg{status: "no active session", err: err}
		}
		return actionMsg{
			status: fmt.Sprintf("session ended: %s, %s (+%d XP)", out.Session.CourseLabel, out.Session.DurationLabel, out.XPAwarded),
			err:    err,
		}
	}
}

func (m Model) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Sessions.Export(context.Background(), dir)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("exported %d notes to %s", out.Notes, out.IndexPath)}
	}
}

func (m Model) toggleTimerCmd() tea.Cmd {
	if m.timerView.Status().Running {
		return m.timerCmd("timer paused", m.ports.Timer.Pause)
	}
	return m.timerCmd("timer started", m.ports.Timer.Start)
}

func (m Model) timerCmd(status string, fn func(context.Context) (pomodorodto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		_, err := fn(context.Background())
		return actionMsg{status: status, err: err}
	}
}

func (m Model) switchPhaseCmd(phase string) tea.Cmd {
	return func() tea.Msg {
		out, ok, err := m.ports.Timer.Switch(context.Background(), phase)
		if !ok {
			return actionMsg{status: "unknown phase " + phase, err: err}
		}
		return actionMsg{status: "switched to " + out.Phase, err: err}
	}
}

func (m Model) configureCmd(work, brk int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.Timer.Configure(context.Background(), &work, &brk)
		return actionMsg{status: fmt.Sprintf("timer set to %d/%d min", out.WorkMinutes, out.BreakMinutes), err: err}
	}
}

func (m Model) addReminderCmd(title string, due time.Time) tea.Cmd {
	return func() tea.Msg {
		r, ok, err := m.ports.Reminders.Add(context.Background(), title, due)
		if !ok {
			return actionMsg{status: "reminder needs a title", err: err}
		}
		return actionMsg{status: "reminder set for " + r.DueAt.Local().Format("Jan 02 15:04"), err: err}
	}
}

func (m Model) deleteReminderCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.ports.Reminders.Delete(context.Background(), id)
		if !ok {
			return actionMsg{status: "reminder not found", err: err}
		}
		return actionMsg{status: "reminder deleted", err: err}
	}
}

func (m Model) awardCmd(amount int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.ports.XP.Award(context.Background(), amount)
		if !out.Awarded {
			return actionMsg{status: "amount must be positive", err: err}
		}
		status := fmt.Sprintf("+%d XP, %d total", amount, out.TotalXP)
		if out.LeveledUp {
			status = fmt.Sprintf("level up! now level %d", out.Level)
		}
		return actionMsg{status: status, err: err}
	}
}

func (m Model) notifyTestCmd() tea.Cmd {
	return func() tea.Msg {
		out := m.ports.Notify.Test(context.Background())
		if !out.Granted {
			return actionMsg{status: "notifications unavailable (" + out.Notifier + ")"}
		}
		return actionMsg{status: "test notification sent"}
	}
}
