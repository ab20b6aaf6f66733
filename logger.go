package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refaktor/swiftgen/textutils"
)

type LogLevel int

const (
	INFO  LogLevel = 0
	WARN  LogLevel = 1
	ERROR LogLevel = 2
	FATAL LogLevel = 99
)

func (l LogLevel) String() string {
	switch l {
	case INFO:
		return "INFO"
	case WARN:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// Logger writes levelled, line-oriented messages. Multi-line messages
// start on a new line and are indented.
type Logger struct {
	Writer   io.Writer
	Prefix   string
	MinLevel LogLevel
}

// Log formats and writes a message. FATAL exits the process with
// status 1 after writing.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if l.Writer == nil || level < l.MinLevel {
		return
	}
	var b bytes.Buffer
	if l.Prefix != "" {
		b.WriteString(l.Prefix)
		b.WriteString(" ")
	}
	b.WriteString(level.String())
	b.WriteString(":")
	s := fmt.Sprintf(format, args...)
	if strings.Contains(strings.TrimSuffix(s, "\n"), "\n") {
		b.WriteString("\n")
		s = textutils.IndentString(s, "  ", 1)
	} else {
		b.WriteString(" ")
	}
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	// Nowhere left to report a failed write to.
	_, _ = io.Copy(l.Writer, &b)
	if level == FATAL {
		os.Exit(1)
	}
}
