// Package wodlog defines the narrow logging interface the CLI driver
// passes down to subcommands, adapted from the Logger interface in
// joeycumines-go-utilpkg's sql/log package (a stated subset of
// logrus.FieldLogger).
package wodlog

type (
	// Logger is the logging interface used throughout the CLI driver.
	Logger interface {
		WithField(key string, value any) Logger
		WithFields(fields map[string]any) Logger
		WithError(err error) Logger
		Debug(args ...any)
		Info(args ...any)
		Warn(args ...any)
		Error(args ...any)
	}

	// Discard implements a Logger that does nothing, for callers that
	// have no CLI context.
	Discard struct{}
)

var _ Logger = Discard{}

func (Discard) WithField(string, any) Logger     { return Discard{} }
func (Discard) WithFields(map[string]any) Logger { return Discard{} }
func (Discard) WithError(error) Logger           { return Discard{} }
func (Discard) Debug(...any)                     {}
func (Discard) Info(...any)                      {}
func (Discard) Warn(...any)                      {}
func (Discard) Error(...any)                     {}
