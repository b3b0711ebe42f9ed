package logger

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// TimestampLayout is the layout of the bracketed timestamp on access lines
const TimestampLayout = "2006-01-02 15:04:05"

// PrefixWriter wraps an io.Writer and prefixes each complete line
type PrefixWriter struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a new PrefixWriter
func NewPrefixWriter(prefix string, writer io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

// Write implements io.Writer. Partial lines are held until their newline
// arrives.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.buffer = append(pw.buffer, p...)

	for {
		i := bytes.IndexByte(pw.buffer, '\n')
		if i < 0 {
			break
		}
		line := pw.buffer[:i]
		if _, err := fmt.Fprintf(pw.writer, "%s%s\n", pw.prefix, line); err != nil {
			return len(p), err
		}
		pw.buffer = pw.buffer[i+1:]
	}

	return len(p), nil
}

// AccessLogger writes one line per handled request:
// [YYYY-MM-DD HH:MM:SS] METHOD URI STATUS
type AccessLogger struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewAccessLogger creates an access logger writing to out
func NewAccessLogger(out io.Writer) *AccessLogger {
	return &AccessLogger{
		out: out,
		now: time.Now,
	}
}

// Log writes the access line for a finished request
func (l *AccessLogger) Log(method, uri string, status int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "[%s] %s %s %s\n",
		l.now().Format(TimestampLayout), method, uri, statusColor(status).Sprint(status))
}

func statusColor(status int) *color.Color {
	switch {
	case status >= 500:
		return color.New(color.FgRed)
	case status >= 400:
		return color.New(color.FgYellow)
	case status >= 300:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgGreen)
	}
}
