package wodlog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logrus adapts *logrus.Entry to Logger, the way
// joeycumines-go-utilpkg's sql/log.Logrus adapts its own internal
// logrus wrapper.
type Logrus struct {
	entry *logrus.Entry
}

var _ Logger = Logrus{}

// NewLogrus builds a Logger backed by a freshly configured
// logrus.Logger writing to out, tagging every entry with a
// "prog=<program>-<version>" field in place of the prefix
// busoc-assist's main.go sets on the stdlib logger via log.SetPrefix.
func NewLogrus(out io.Writer, program, version string, verbose bool) Logger {
	l := logrus.New()
	l.SetOutput(out)
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return Logrus{entry: l.WithField("prog", program+"-"+version)}
}

func (x Logrus) WithField(key string, value any) Logger {
	return Logrus{entry: x.entry.WithField(key, value)}
}

func (x Logrus) WithFields(fields map[string]any) Logger {
	return Logrus{entry: x.entry.WithFields(logrus.Fields(fields))}
}

func (x Logrus) WithError(err error) Logger {
	return Logrus{entry: x.entry.WithError(err)}
}

func (x Logrus) Debug(args ...any) { x.entry.Debug(args...) }
func (x Logrus) Info(args ...any)  { x.entry.Info(args...) }
func (x Logrus) Warn(args ...any)  { x.entry.Warn(args...) }
func (x Logrus) Error(args ...any) { x.entry.Error(args...) }
