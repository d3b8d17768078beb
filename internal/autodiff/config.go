package autodiff

import "github.com/born-ml/gradgraph/internal/trace"

// Config controls graph construction.
type Config struct {
	Sink     trace.Sink // Receives construction and propagation steps.
	Capacity int        // Initial node capacity of the arena.
}

// DefaultConfig returns a configuration with tracing disabled.
func DefaultConfig() Config {
	return Config{
		Sink:     trace.Discard,
		Capacity: 64, // Typical hand-built graph.
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithSink sends trace steps to s.
func WithSink(s trace.Sink) Option {
	return func(c *Config) { c.Sink = s }
}

// WithCapacity pre-allocates room for n nodes.
func WithCapacity(n int) Option {
	return func(c *Config) { c.Capacity = n }
}
