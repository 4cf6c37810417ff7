package logsvc

import (
	"fmt"
	"sync"

	"github.com/trezcool/sge/core"
)

// Entry is a message kept by a MockLogger.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// MockLogger keeps log entries in memory instead of reporting them.
type MockLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var _ core.Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *MockLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

func (l *MockLogger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *MockLogger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *MockLogger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *MockLogger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }

// Fatal panics so tests can recover from it.
func (l *MockLogger) Fatal(msg string, args ...interface{}) {
	l.log("fatal", msg, args)
	panic(fmt.Sprintf("fatal: %s", msg))
}
