// Package printer writes selected files into a single consolidated document
package printer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/consolidate/internal/diag"
	"github.com/bethropolis/consolidate/internal/walker"
)

const (
	headerFormat = "\n\n# ----- Start of %s -----\n\n"
	footerFormat = "\n\n# ----- End of %s -----\n"
)

// ProgressFunc is called after each candidate has been handled
type ProgressFunc func(done, total int, relativePath string)

// Printer appends file entries to the output document. It owns the sink for
// the duration of a run.
type Printer struct {
	output   io.Writer
	logger   diag.Logger
	sink     diag.Sink
	progress ProgressFunc
	count    int
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{
		output: w,
		logger: diag.NoopLogger{},
		sink:   diag.NopSink{},
	}
}

// WithLogger sets the logger
func (p *Printer) WithLogger(logger diag.Logger) *Printer {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithSink sets where skipped files are reported
func (p *Printer) WithSink(sink diag.Sink) *Printer {
	if sink != nil {
		p.sink = sink
	}
	return p
}

// WithProgress sets a progress callback
func (p *Printer) WithProgress(fn ProgressFunc) *Printer {
	p.progress = fn
	return p
}

// Write appends every readable candidate, in order, and returns how many
// entries were written. Unreadable or non UTF-8 files are reported and
// skipped. Only a failure of the output itself, or cancellation, stops the
// run; what was written so far is flushed either way.
func (p *Printer) Write(ctx context.Context, candidates []walker.Candidate) (written int, err error) {
	w := bufio.NewWriter(p.output)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("printer: flush output: %w", flushErr)
		}
	}()

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		ok, err := p.writeEntry(w, c)
		if err != nil {
			return written, err
		}
		if ok {
			written++
			p.count++
		}
		if p.progress != nil {
			p.progress(i+1, len(candidates), c.RelativePath)
		}
	}
	return written, nil
}

// writeEntry writes one file. The content is read and validated before the
// header goes out so that a skipped file leaves nothing behind.
func (p *Printer) writeEntry(w *bufio.Writer, c walker.Candidate) (bool, error) {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		p.sink.Record(diag.Event{Kind: diag.ReadError, Path: c.RelativePath, Err: err})
		return false, nil
	}
	if !utf8.Valid(content) {
		p.sink.Record(diag.Event{Kind: diag.DecodeError, Path: c.RelativePath})
		return false, nil
	}

	if _, err := fmt.Fprintf(w, headerFormat, c.RelativePath); err != nil {
		return false, fmt.Errorf("printer: write header for %s: %w", c.RelativePath, err)
	}
	if _, err := w.Write(content); err != nil {
		return false, fmt.Errorf("printer: write content of %s: %w", c.RelativePath, err)
	}
	if _, err := fmt.Fprintf(w, footerFormat, c.RelativePath); err != nil {
		return false, fmt.Errorf("printer: write footer for %s: %w", c.RelativePath, err)
	}

	p.logger.Debug("Appended file: %s (%d bytes)", c.RelativePath, len(content))
	return true, nil
}

// GetCount returns the number of files written over the printer's lifetime
func (p *Printer) GetCount() int {
	return p.count
}
