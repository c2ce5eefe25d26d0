package manifest

import (
	"github.com/ardnew/manifest/grammar"
	"github.com/ardnew/manifest/log"
)

// Option configures parsing.
type Option func(*options)

// options holds parse configuration.
// Only the fields that change the parse result contribute to cache keys.
type options struct {
	logger  log.Logger
	strict  bool
	noCache bool
}

// WithStrictSections rejects generic section headers that do not name a
// known Cargo manifest table. See [grammar.IsKnownSection].
func WithStrictSections(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithCache enables or disables the process-wide parse cache used by
// [ParseReader]. The cache is enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) {
		o.noCache = !enable
	}
}

// WithLogger sets the structured logger for trace-level debugging of input
// and cache handling.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) grammar() []grammar.Option {
	return []grammar.Option{grammar.WithStrictSections(o.strict)}
}
