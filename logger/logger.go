// Package logger provides a tagged, colour-coded leveled logger.
package logger

import (
	"errors"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-maze/config"
)

var ErrNilWriter = errors.New("logger writer is nil")

// Logger prefixes every line with a coloured component tag and a level.
type Logger struct {
	tag   string
	color string
	out   *log.Logger
}

// New creates a Logger that writes lines tagged with tag, in color, to w.
func New(tag, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		tag:   tag,
		color: color,
		out:   log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs a routine event.
func (l *Logger) Info(msg string) {
	l.print(config.LogInfoColor, "INFO", msg)
}

// Warning logs an anomaly that does not stop the current operation.
func (l *Logger) Warning(msg string) {
	l.print(config.LogWarningColor, "WARNING", msg)
}

// Error logs a failed operation.
func (l *Logger) Error(msg string) {
	l.print(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) print(levelColor, level, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s", l.color, l.tag, config.ColorReset, levelColor, level, config.LogColorReset, msg)
}
