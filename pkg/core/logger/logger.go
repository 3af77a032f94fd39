package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields aliases logrus.Fields so callers do not import logrus directly.
type Fields map[string]interface{}

// Options controls logger construction. The zero value produces an
// info-level JSON logger on stdout.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // "json" (default) or "text"
	File   string // when set, log to this file with rotation instead of stdout
	MaxAge int    // days to retain rotated files
}

// Log wraps logrus.Logger.
type Log struct {
	*logrus.Logger
}

// Entry wraps logrus.Entry.
type Entry struct {
	*logrus.Entry
}

var globalLogger = New(Options{})

// New builds a logger from the given options. LOG_LEVEL overrides the
// configured level when set.
func New(opts Options) *Log {
	l := logrus.New()

	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = opts.Level
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(levelStr))); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	if strings.EqualFold(opts.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	if opts.File != "" {
		maxAge := opts.MaxAge
		if maxAge <= 0 {
			maxAge = 7
		}
		l.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // MB
			MaxAge:     maxAge,
			MaxBackups: 5,
			Compress:   true,
		})
	}

	return &Log{Logger: l}
}

// Init replaces the process-wide logger. Call once at startup, before any
// component grabs an entry.
func Init(opts Options) *Log {
	globalLogger = New(opts)
	return globalLogger
}

// GetLogger returns the process-wide logger.
func GetLogger() *Log {
	return globalLogger
}

// WithComponent tags every entry from the process-wide logger with the
// emitting component.
func WithComponent(component string) *Entry {
	return globalLogger.WithComponent(component)
}

// WithComponent tags every entry with the emitting component.
func (l *Log) WithComponent(component string) *Entry {
	return &Entry{Entry: l.Logger.WithField("component", component)}
}

// WithFields attaches structured fields.
func (l *Log) WithFields(fields Fields) *Entry {
	return &Entry{Entry: l.Logger.WithFields(logrus.Fields(fields))}
}

// WithError attaches an error field.
func (l *Log) WithError(err error) *Entry {
	return &Entry{Entry: l.Logger.WithError(err)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{Entry: e.Entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{Entry: e.Entry.WithError(err)}
}

func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{Entry: e.Entry.WithField(key, value)}
}
