// Package walker handles directory traversal and file selection
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/consolidate/internal/diag"
)

// Select traverses rootDir and returns, in discovery order, every regular
// file that passes the ignore rules, the extension filter, the size limit and
// the binary check.
//
// Without recursion only the direct children of rootDir are considered. With
// recursion the tree is walked in lexical order and hidden directories are
// never entered. A missing or non-directory root yields a *diag.SetupError;
// every other problem is reported to the sink and traversal continues.
func Select(ctx context.Context, rootDir string, opts ...Option) ([]Candidate, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := ValidateRoot(rootDir)
	if err != nil {
		return nil, err
	}

	s := &selector{root: absRootDir, opts: options}
	options.Logger.Debug("walker.Select started. Root: %s, Recursive: %v", absRootDir, options.Recursive)

	if options.Recursive {
		err = s.walk(ctx)
	} else {
		err = s.list(ctx)
	}

	options.Logger.Debug("walker.Select: %d candidates in %s", len(s.candidates), time.Since(startTime))
	return s.candidates, err
}

// ValidateRoot resolves rootDir to an absolute path and checks that it is an
// existing directory.
func ValidateRoot(rootDir string) (string, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", &diag.SetupError{Root: rootDir, Err: err}
	}
	info, err := os.Stat(absRootDir)
	if err != nil {
		return "", &diag.SetupError{Root: absRootDir, Err: err}
	}
	if !info.IsDir() {
		return "", &diag.SetupError{Root: absRootDir, Err: diag.ErrNotDirectory}
	}
	return absRootDir, nil
}

// selector carries the state of a single Select call.
type selector struct {
	root       string
	opts       SelectOptions
	candidates []Candidate
}

// list considers only the direct children of the root.
func (s *selector) list(ctx context.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return &diag.SetupError{Root: s.root, Err: err}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			s.opts.Logger.Debug("Walker: Not descending into %q (non-recursive)", entry.Name())
			continue
		}
		s.consider(filepath.Join(s.root, entry.Name()), entry.Name(), entry)
	}
	return nil
}

// walk considers the whole tree below the root.
func (s *selector) walk(ctx context.Context) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		isDir := d != nil && d.IsDir()
		if err != nil {
			if path == s.root {
				return &diag.SetupError{Root: s.root, Err: err}
			}
			s.record(diag.WalkError, s.rel(path), isDir, err)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if path == s.root {
			return nil
		}
		relativePath := s.rel(path)

		if isDir {
			if strings.HasPrefix(d.Name(), ".") {
				s.record(diag.HiddenDir, relativePath, true, nil)
				return filepath.SkipDir
			}
			if s.opts.Matcher != nil && s.opts.Matcher.Match(relativePath, true) {
				s.record(diag.Ignored, relativePath, true, nil)
				return filepath.SkipDir
			}
			s.opts.Logger.Debug("Walker: Descending into directory %q", relativePath)
			return nil
		}

		s.consider(path, relativePath, d)
		return nil
	})
}

// rel returns path relative to the root with forward slashes.
func (s *selector) rel(path string) string {
	relativePath, err := filepath.Rel(s.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relativePath)
}

func (s *selector) record(kind diag.Kind, path string, isDir bool, err error) {
	s.opts.Sink.Record(diag.Event{Kind: kind, Path: path, IsDir: isDir, Err: err})
}
