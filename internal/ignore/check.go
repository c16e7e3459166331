package ignore

import (
	"path"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Match reports whether relativePath, relative to the scan root, is excluded.
//
// Ancestor directories are evaluated first: once a parent directory is
// excluded, nothing beneath it can be re-included by a negated pattern, the
// same limitation git has. Otherwise the last pattern matching the path
// itself decides.
func (r *RuleSet) Match(relativePath string, isDir bool) bool {
	if r.Unrestricted() {
		return false
	}

	unixPath := strings.TrimPrefix(path.Clean(filepath.ToSlash(relativePath)), "/")
	if unixPath == "" || unixPath == "." {
		return false // Never ignore the root itself
	}

	parts := strings.Split(unixPath, "/")
	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		if m := r.last(ancestor, true); m != nil && m.Ignore() {
			r.logger.Debug("ignore.Match: %q excluded by parent %q (pattern %q)", unixPath, ancestor, m.String())
			return true
		}
	}

	m := r.last(unixPath, isDir)
	if m == nil {
		return false
	}
	if m.Include() {
		r.logger.Debug("ignore.Match: %q re-included by %q", unixPath, m.String())
		return false
	}
	r.logger.Debug("ignore.Match: %q excluded by %q", unixPath, m.String())
	return true
}

// last returns the last pattern, across all groups in order, that matches p.
func (r *RuleSet) last(p string, isDir bool) gitignore.Match {
	for i := len(r.groups) - 1; i >= 0; i-- {
		if isDir && r.groups[i].filesOnly {
			continue
		}
		if m := r.groups[i].rules.Relative(p, isDir); m != nil {
			return m
		}
	}
	return nil
}
