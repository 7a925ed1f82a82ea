package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"studyhub/internal/modules/notify/domain"
	notifyout "studyhub/internal/modules/notify/port/out"
)

var (
	bannerTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true)
	bannerBody  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
)

// TerminalNotifier prints a highlighted line and rings the bell. Permission
// is granted only when the writer is an interactive terminal, unless forced.
type TerminalNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	force bool
}

func NewTerminalNotifier(w io.Writer, force bool) notifyout.Notifier {
	return &TerminalNotifier{w: w, force: force}
}

func (n *TerminalNotifier) RequestPermission(context.Context) (bool, error) {
	if n.force {
		return true, nil
	}
	f, ok := n.w.(*os.File)
	if !ok {
		return false, nil
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
}

func (n *TerminalNotifier) Notify(_ context.Context, msg domain.Notification) error {
	line := bannerTitle.Render("● " + msg.Title)
	if msg.Body != "" {
		line += "  " + bannerBody.Render(msg.Body)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.w, "\a%s\n", line); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	return nil
}
