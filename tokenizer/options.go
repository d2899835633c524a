package tokenizer

import "go.uber.org/zap"

const defaultMaxCaptureDepth = 8

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithLogger attaches a logger; spans pushed and popped are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tokenizer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithCoalescing controls whether adjacent tokens with equal scopes are merged. On by default.
func WithCoalescing(on bool) Option {
	return func(t *Tokenizer) {
		t.coalesce = on
	}
}

// WithMaxCaptureDepth bounds how deeply captures with patterns re-tokenize
// captured text. Deeper captures only get their scopes.
func WithMaxCaptureDepth(depth int) Option {
	return func(t *Tokenizer) {
		if depth >= 0 {
			t.maxCaptureDepth = depth
		}
	}
}
