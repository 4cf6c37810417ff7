package notifysvc

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/trezcool/sge/core"
)

type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

var _ core.Notifier = (*consoleNotifier)(nil)

// NewConsoleNotifier prints notifications to out, or stdout when out is nil.
func NewConsoleNotifier(out io.Writer) core.Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Notify(msg core.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	icon := "i"
	switch msg.Level {
	case core.LevelSuccess:
		icon = "✔"
	case core.LevelError:
		icon = "✘"
	}
	if msg.Title != "" {
		_, _ = fmt.Fprintf(n.out, "%s %s: %s\n", icon, msg.Title, msg.Message)
		return
	}
	_, _ = fmt.Fprintf(n.out, "%s %s\n", icon, msg.Message)
}
