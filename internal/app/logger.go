package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per entry. Writes from the engine, the pollers
// and the web server are serialised.
type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
