package internal

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes diagnostic lines to a destination chosen by the caller.
// A nil Logger discards everything, so quiet code paths can skip the check.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

func (l *Logger) Printf(format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}
