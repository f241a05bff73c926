// Package logging owns the process-wide logrus logger used by every engine component.
// By default the logger writes info level text to stderr; Init replaces it from configuration.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.Logger]

func init() {
	loggerPtr.Store(newLogger(logrus.InfoLevel, os.Stderr))
}

func newLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// Init configures the shared logger.
//
// Parameters:
//   - level: a logrus level name ("debug", "info", "warn", "error"); unknown names fall back to info
//   - logFile: optional path to append log output to; parent directories are created
//   - console: whether to also write to stderr
//
// Returns:
//   - error: an error if the log file could not be opened
func Init(level, logFile string, console bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	loggerPtr.Store(newLogger(lvl, out))
	return nil
}

// SetLogger replaces the shared logger. Passing nil restores the default stderr logger.
//
// Parameters:
//   - l: the logger to use
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newLogger(logrus.InfoLevel, os.Stderr)
	}
	loggerPtr.Store(l)
}

// Get returns the shared logger.
func Get() *logrus.Logger {
	return loggerPtr.Load()
}

// Component returns an entry tagged with the component name, the way every engine package logs.
//
// Parameters:
//   - name: the component name, e.g. "surface" or "frame"
//
// Returns:
//   - *logrus.Entry: an entry carrying the component field
func Component(name string) *logrus.Entry {
	return Get().WithField("component", name)
}
