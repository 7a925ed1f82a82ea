package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyhub/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted on esc.
type PaletteCancelMsg struct{}

const (
	maxShownMatches = 6
	historyLimit    = 20
)

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Lavender).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	verbStyle = lipgloss.NewStyle().Foreground(theme.Sapphire)
	argsStyle = lipgloss.NewStyle().Foreground(theme.Peach)
)

// Palette is the ":" overlay. tab completes the verb and up/down walk the
// lines submitted earlier in this run.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	history []string
	cursor  int
	draft   string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "course:add CS101 Algorithms"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

// Open shows an empty palette and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.draft = ""
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.remember(line)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case "tab":
			p.set(Complete(p.input.Value()))
			return p, nil
		case "up":
			p.recall(-1)
			return p, nil
		case "down":
			p.recall(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(p.input.View() + "\n\n")

	value := p.input.Value()
	matches := Matching(value)
	switch {
	case len(matches) == 0:
		verb, _, _ := strings.Cut(strings.TrimSpace(value), " ")
		sb.WriteString(theme.Alert.Render("unknown command: "+verb) + "\n")
	case len(matches) == 1 && strings.Contains(strings.TrimSpace(value), " "):
		c := matches[0]
		sb.WriteString(renderCommand(c) + "\n")
		sb.WriteString(theme.Muted.Render("  "+c.Summary) + "\n")
	default:
		for i, c := range matches {
			if i == maxShownMatches {
				sb.WriteString(theme.Muted.Render(fmt.Sprintf("  +%d more, tab to narrow", len(matches)-i)) + "\n")
				break
			}
			sb.WriteString(renderCommand(c) + theme.Muted.Render("  "+c.Summary) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}

func renderCommand(c Command) string {
	out := "  " + verbStyle.Render(c.Name)
	if c.Args != "" {
		out += " " + argsStyle.Render(c.Args)
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) set(value string) {
	p.input.SetValue(value)
	p.input.CursorEnd()
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

// recall moves through history. Walking past the newest entry restores
// whatever was typed before the walk began.
func (p *Palette) recall(step int) {
	if len(p.history) == 0 {
		return
	}
	if p.cursor == len(p.history) {
		p.draft = p.input.Value()
	}
	next := min(max(p.cursor+step, 0), len(p.history))
	if next == p.cursor {
		return
	}
	p.cursor = next
	if next == len(p.history) {
		p.set(p.draft)
		return
	}
	p.set(p.history[next])
}
