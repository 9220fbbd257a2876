package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/binser"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ binser.Logger = LogrusLogger{}

// New wraps a *logrus.Logger.
func New(l *logrus.Logger) LogrusLogger { return LogrusLogger{E: logrus.NewEntry(l)} }

func (l LogrusLogger) Debug(msg string, f binser.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f binser.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f binser.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f binser.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}

func (l LogrusLogger) With(f binser.Fields) binser.Logger {
	return LogrusLogger{E: l.E.WithFields(logrus.Fields(f))}
}
