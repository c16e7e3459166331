package ignore

import "github.com/bethropolis/consolidate/internal/diag"

// Option configures Compile
type Option func(*RuleSet)

func WithLogger(logger diag.Logger) Option {
	return func(r *RuleSet) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSink sets where invalid pattern lines are reported.
func WithSink(sink diag.Sink) Option {
	return func(r *RuleSet) {
		if sink != nil {
			r.sink = sink
		}
	}
}
