// Package walker handles directory traversal and file selection
package walker

import (
	"strings"
)

// Candidate is a file that survived every selection filter.
type Candidate struct {
	// Path is the absolute path of the file
	Path string `json:"path"`
	// RelativePath is relative to the scan root, always slash separated
	RelativePath string `json:"relative_path"`
}

// Matcher answers whether a root-relative path is excluded by ignore rules
type Matcher interface {
	Match(relativePath string, isDir bool) bool
}

// BinaryDetector answers whether a file holds binary content
type BinaryDetector interface {
	IsBinary(path string) bool
}

// ExtensionFilter is a set of lowercased suffixes such as ".py". An empty
// filter lets every file through.
type ExtensionFilter []string

// NewExtensionFilter normalises user supplied extensions: lowercased, a
// leading dot added when missing, blanks and duplicates dropped.
func NewExtensionFilter(exts ...string) ExtensionFilter {
	seen := make(map[string]struct{}, len(exts))
	var f ExtensionFilter
	for _, ext := range exts {
		clean := strings.ToLower(strings.TrimSpace(ext))
		if clean == "" || clean == "." {
			continue
		}
		if !strings.HasPrefix(clean, ".") {
			clean = "." + clean
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		f = append(f, clean)
	}
	return f
}

// Allows reports whether the file name passes the filter.
func (f ExtensionFilter) Allows(name string) bool {
	if len(f) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range f {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
