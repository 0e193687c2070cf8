package logging

import (
	"fmt"
	"io"
	"sync"
)

// Logger is the line-oriented sink handed to components that report status.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// LineLogger writes plain message lines to a single writer. Safe for use
// from multiple goroutines.
type LineLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func New(w io.Writer) *LineLogger {
	return &LineLogger{w: w}
}

func (l *LineLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}

func (l *LineLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "error: "+format+"\n", args...)
}

// Ranked returns inner on the designated reporting rank and a silent logger
// everywhere else, so status lines never duplicate across ranks.
func Ranked(inner Logger, rank int) Logger {
	if rank == 0 {
		return inner
	}
	return nop{}
}

type nop struct{}

func (nop) Infof(format string, args ...any)  {}
func (nop) Errorf(format string, args ...any) {}
