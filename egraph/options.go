package egraph

import "go.uber.org/zap"

// Logger is the narrow logging surface the e-graph needs: enough for
// rebuild to report merge counts and contradictions without coupling the
// package to a specific logging library's full API.
type Logger interface {
	Debugw(msg string, kv ...any)
	Warnw(msg string, kv ...any)
}

// zapLogger adapts *zap.SugaredLogger to Logger.
type zapLogger struct{ s *zap.SugaredLogger }

func (z zapLogger) Debugw(msg string, kv ...any) { z.s.Debugw(msg, kv...) }
func (z zapLogger) Warnw(msg string, kv ...any)  { z.s.Warnw(msg, kv...) }

// noopLogger discards everything; it is the default so constructing an
// EGraph never requires configuring a logger.
type noopLogger struct{}

func (noopLogger) Debugw(string, ...any) {}
func (noopLogger) Warnw(string, ...any)  {}

type config struct {
	logger Logger
}

func defaultConfig() config {
	return config{logger: noopLogger{}}
}

// Option customizes an EGraph or Mutable at construction time.
type Option func(*config)

// WithLogger attaches a structured logger, typically backed by zap, that
// rebuild uses to report merge counts and analysis contradictions.
// Panics on nil, matching the package's option-constructors-validate
// convention.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("egraph: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = zapLogger{s: l.Sugar()}
	}
}
