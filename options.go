package canopy

import (
	"github.com/phanxgames/canopy/script"
	"github.com/phanxgames/canopy/values"
)

// Option configures a Context during creation.
//
// Example:
//
//	tbl := script.NewTable()
//	ui := canopy.NewContext(renderer,
//	    canopy.WithConfig(cfg),
//	    canopy.WithScriptHost(tbl),
//	)
type Option func(*contextOptions)

type contextOptions struct {
	cfg    Config
	host   script.Host
	sink   EventSink
	values *values.Store
}

func defaultOptions() contextOptions {
	return contextOptions{cfg: DefaultConfig()}
}

// WithConfig replaces DefaultConfig. NewContext panics if cfg is invalid;
// use LoadConfig or Config.Validate to check it first.
func WithConfig(cfg Config) Option {
	return func(o *contextOptions) {
		o.cfg = cfg
	}
}

// WithScriptHost sets the host that resolves callback handles. Without it
// callbacks are ignored.
func WithScriptHost(h script.Host) Option {
	return func(o *contextOptions) {
		o.host = h
	}
}

// WithEventSink forwards every fired interaction to s.
func WithEventSink(s EventSink) Option {
	return func(o *contextOptions) {
		o.sink = s
	}
}

// WithValues shares a named-value store between contexts.
func WithValues(s *values.Store) Option {
	return func(o *contextOptions) {
		o.values = s
	}
}
