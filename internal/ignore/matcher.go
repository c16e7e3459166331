package ignore

import (
	"fmt"
	"strings"

	"github.com/bethropolis/consolidate/internal/diag"
	gitignore "github.com/denormal/go-gitignore"
)

// ExtraOrigin names the group built from literal extra exclusions. Extras are
// exact file basenames: they never match a directory.
const ExtraOrigin = "<extra>"

// Compile builds a RuleSet from the ignore sources, in the order given,
// followed by extra literal basenames that must always be excluded. When no
// effective pattern remains, Compile returns Unrestricted.
func Compile(sources []Source, extra []string, opts ...Option) *RuleSet {
	rs := &RuleSet{
		logger: diag.NoopLogger{},
		sink:   diag.NopSink{},
	}
	for _, opt := range opts {
		opt(rs)
	}

	for _, src := range sources {
		// the parser rejects carriage returns
		src.Text = strings.ReplaceAll(src.Text, "\r\n", "\n")
		n := countPatterns(src.Text)
		if n == 0 {
			rs.logger.Debug("ignore.Compile: %s has no patterns, skipping", src.Path)
			continue
		}
		rs.groups = append(rs.groups, rs.compileGroup(src.Path, src.Text))
		rs.patterns += n
		rs.logger.Debug("ignore.Compile: loaded %d patterns from %s", n, src.Path)
	}

	var literals []string
	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			literals = append(literals, literal(name))
		}
	}
	if len(literals) > 0 {
		extras := rs.compileGroup(ExtraOrigin, strings.Join(literals, "\n"))
		extras.filesOnly = true
		rs.groups = append(rs.groups, extras)
		rs.patterns += len(literals)
		rs.logger.Debug("ignore.Compile: added extra exclusions: %v", extra)
	}

	if rs.patterns == 0 {
		rs.logger.Debug("ignore.Compile: no patterns found, running unrestricted")
		return Unrestricted
	}

	// the sink is only needed while parsing
	rs.sink = nil
	return rs
}

// compileGroup parses one source. Lines the parser rejects are reported and
// skipped; the rest of the source still applies.
func (r *RuleSet) compileGroup(origin, text string) group {
	sink := r.sink
	onError := func(e gitignore.Error) bool {
		sink.Record(diag.Event{
			Kind: diag.InvalidPattern,
			Path: fmt.Sprintf("%s:%d", origin, e.Position().Line),
			Err:  e.Underlying(),
		})
		return true
	}
	return group{
		origin: origin,
		rules:  gitignore.New(strings.NewReader(text), "", onError),
	}
}

// countPatterns counts lines that are neither blank nor comments.
func countPatterns(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n++
	}
	return n
}

// literal escapes a file name so it only matches itself.
func literal(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch r {
		case '\\', '*', '?', '[', ' ', '\t':
			b.WriteRune('\\')
		case '!', '#':
			if i == 0 {
				b.WriteRune('\\')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
