// Package walker handles directory traversal and file selection
package walker

import (
	"github.com/bethropolis/consolidate/internal/diag"
)

// SelectOptions configures the behavior of the Select function
type SelectOptions struct {
	Logger      diag.Logger
	Sink        diag.Sink
	Recursive   bool
	Matcher     Matcher
	Extensions  ExtensionFilter
	Detector    BinaryDetector
	MaxFileSize int64
}

// defaultOptions returns the default select options
func defaultOptions() SelectOptions {
	return SelectOptions{
		Logger:      diag.NoopLogger{},
		Sink:        diag.NopSink{},
		Recursive:   true,
		Matcher:     nil, // No ignore rules
		Extensions:  nil, // No extension filtering by default
		Detector:    nil, // Every file is text
		MaxFileSize: 0,   // No limit
	}
}

// Option is a functional option for configuring SelectOptions
type Option func(*SelectOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger diag.Logger) Option {
	return func(opts *SelectOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithSink sets where skipped files and recoverable errors are reported
func WithSink(sink diag.Sink) Option {
	return func(opts *SelectOptions) {
		if sink != nil {
			opts.Sink = sink
		}
	}
}

// WithRecursive enables or disables descending into subdirectories
func WithRecursive(recursive bool) Option {
	return func(opts *SelectOptions) {
		opts.Recursive = recursive
	}
}

// WithMatcher sets the ignore rules
func WithMatcher(m Matcher) Option {
	return func(opts *SelectOptions) {
		opts.Matcher = m
	}
}

// WithExtensions sets the file extensions to include
func WithExtensions(extensions ...string) Option {
	return func(opts *SelectOptions) {
		opts.Extensions = NewExtensionFilter(extensions...)
	}
}

// WithDetector sets the binary content detector
func WithDetector(d BinaryDetector) Option {
	return func(opts *SelectOptions) {
		opts.Detector = d
	}
}

// WithMaxFileSize sets the maximum file size to select in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *SelectOptions) {
		opts.MaxFileSize = maxBytes
	}
}
