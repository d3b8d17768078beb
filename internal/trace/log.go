package trace

import "github.com/charmbracelet/log"

// LogSink writes steps to a charmbracelet logger at debug level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging through l. A nil l uses log.Default().
func NewLogSink(l *log.Logger) *LogSink {
	if l == nil {
		l = log.Default()
	}
	return &LogSink{logger: l}
}

// Record implements Sink.
func (s *LogSink) Record(step Step) {
	keyvals := []any{"node", step.Node, "op", step.Op, "value", step.Value}
	if step.Wrt != "" {
		keyvals = append(keyvals, "wrt", step.Wrt)
	}
	s.logger.Debug(step.String(), append([]any{"kind", string(step.Kind)}, keyvals...)...)
}
