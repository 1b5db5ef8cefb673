package logging

import (
	"context"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// NewLogrus adapts a logrus entry to the Logger interface. Passing nil binds to
// the logrus standard logger.
func NewLogrus(entry *logrus.Entry) Logger {
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	return &logrusLogger{entry: entry}
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.fields(ctx, args).Debug(msg)
}

func (l *logrusLogger) Info(ctx context.Context, msg string, args ...any) {
	l.fields(ctx, args).Info(msg)
}

func (l *logrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.fields(ctx, args).Warn(msg)
}

func (l *logrusLogger) Error(ctx context.Context, msg string, args ...any) {
	l.fields(ctx, args).Error(msg)
}

func (l *logrusLogger) With(args ...any) Logger {
	return &logrusLogger{entry: l.entry.WithFields(toFields(args))}
}

func (l *logrusLogger) fields(ctx context.Context, args []any) *logrus.Entry {
	entry := l.entry
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	if len(args) == 0 {
		return entry
	}
	return entry.WithFields(toFields(args))
}

// toFields converts slog-style arguments (alternating keys and values, or
// slog.Attr values) into logrus fields.
func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			fields[v.Key] = v.Value.Any()
		case string:
			if i+1 < len(args) {
				fields[v] = args[i+1]
				i++
			} else {
				fields["!BADKEY"] = v
			}
		default:
			fields["!BADKEY"] = v
		}
	}
	return fields
}
