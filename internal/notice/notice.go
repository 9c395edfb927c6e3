// Package notice delivers short user-facing messages such as
// "Content added successfully!" to whichever surface is active.
package notice

import (
	"fmt"
	"io"
	"sync"
)

// Level distinguishes confirmations from failures.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a single message.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notices.
type Notifier interface {
	Notify(n Notice)
}

// Info is shorthand for an info-level notice.
func Info(msg string) Notice { return Notice{Level: LevelInfo, Message: msg} }

// Error is shorthand for an error-level notice.
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Queue buffers notices until a page render drains them.
type Queue struct {
	mu      sync.Mutex
	pending []Notice
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Notify appends n.
func (q *Queue) Notify(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
}

// Drain returns and forgets everything queued so far.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Writer prints notices one per line, errors prefixed.
type Writer struct {
	mu  sync.Mutex
	Out io.Writer
}

// Notify implements Notifier.
func (w *Writer) Notify(n Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if n.Level == LevelError {
		fmt.Fprintf(w.Out, "error: %s\n", n.Message)
		return
	}
	fmt.Fprintln(w.Out, n.Message)
}
