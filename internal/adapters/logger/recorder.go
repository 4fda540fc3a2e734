package logger

import (
	"sync"

	"github.com/baditaflorin/go_issue_similarity/internal/ports"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []interface{}
}

// Recorder keeps every message in memory. It backs the comparison
// observer in tests and in the CLI's -explain mode.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ ports.Logger = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, msg string, kv []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: kv})
}

// Debug records a debug message.
func (r *Recorder) Debug(msg string, keysAndValues ...interface{}) {
	r.record("debug", msg, keysAndValues)
}

// Info records an info message.
func (r *Recorder) Info(msg string, keysAndValues ...interface{}) {
	r.record("info", msg, keysAndValues)
}

// Warn records a warning message.
func (r *Recorder) Warn(msg string, keysAndValues ...interface{}) {
	r.record("warn", msg, keysAndValues)
}

// Error records an error message.
func (r *Recorder) Error(msg string, keysAndValues ...interface{}) {
	r.record("error", msg, keysAndValues)
}

// Close is a no-op.
func (r *Recorder) Close() error { return nil }

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Value returns the value recorded for key in e, if any.
func (e Entry) Value(key string) (interface{}, bool) {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if k, ok := e.KeysAndValues[i].(string); ok && k == key {
			return e.KeysAndValues[i+1], true
		}
	}
	return nil, false
}
