package notifysvc

import (
	"sync"

	"github.com/trezcool/sge/core"
)

// Recorder keeps every notification it receives, for tests.
type Recorder struct {
	mu   sync.Mutex
	sent []core.Notification
}

var _ core.Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n core.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *Recorder) Sent() []core.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Notification(nil), r.sent...)
}

// Last returns the latest notification, or the zero value when none was sent.
func (r *Recorder) Last() core.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return core.Notification{}
	}
	return r.sent[len(r.sent)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
