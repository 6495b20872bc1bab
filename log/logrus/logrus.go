package logrus

import (
	"github.com/oasaleh/FusionCache"
	"github.com/sirupsen/logrus"
)

// Logger adapts a logrus.Entry to the accessor's Logger interface.
type Logger struct{ E *logrus.Entry }

var _ fusioncache.Logger = Logger{}

func (l Logger) Debug(msg string, f fusioncache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l Logger) Info(msg string, f fusioncache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l Logger) Warn(msg string, f fusioncache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l Logger) Error(msg string, f fusioncache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
