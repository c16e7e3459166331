package ignore

import (
	"github.com/bethropolis/consolidate/internal/diag"
	gitignore "github.com/denormal/go-gitignore"
)

// DefaultFileName is the ignore file discovered under the scan root.
const DefaultFileName = ".gitignore"

// Source is the raw text of one discovered ignore file.
type Source struct {
	Path string
	Text string
}

// RuleSet is a compiled, read-only set of ignore rules. Groups are evaluated
// as one ordered pattern list: the last matching pattern wins.
type RuleSet struct {
	groups       []group
	unrestricted bool
	patterns     int

	logger diag.Logger
	sink   diag.Sink
}

// group holds the patterns contributed by a single source.
type group struct {
	origin string
	rules  gitignore.GitIgnore

	// filesOnly groups never match directories
	filesOnly bool
}

// Unrestricted is returned by Compile when no pattern was configured at all.
// It never excludes anything and is distinct from a compiled set whose
// patterns simply match nothing.
var Unrestricted = &RuleSet{unrestricted: true}

// Unrestricted reports whether r is the no-filtering sentinel.
func (r *RuleSet) Unrestricted() bool {
	return r == nil || r.unrestricted
}

// Len returns the number of effective patterns compiled into r.
func (r *RuleSet) Len() int {
	if r == nil {
		return 0
	}
	return r.patterns
}
