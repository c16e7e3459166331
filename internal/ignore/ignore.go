// Package ignore provides gitignore-style pattern matching for exclusion
//
// Ignore files are discovered anywhere under the scan root and read in
// lexical walk order. Their lines are concatenated in that order, followed by
// literal names the tool must never consolidate (its own output and log
// files), and compiled once into a read-only RuleSet.
package ignore

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bethropolis/consolidate/internal/diag"
)

// Discover walks rootDir and reads every file called fileName. Unreadable
// ignore files are reported to sink and skipped. The returned order is the
// lexical walk order, stable for a given filesystem snapshot.
func Discover(rootDir, fileName string, sink diag.Sink, logger diag.Logger) []Source {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if sink == nil {
		sink = diag.NopSink{}
	}
	if logger == nil {
		logger = diag.NoopLogger{}
	}

	var sources []Source
	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// an unreadable directory may hide ignore files, but it does not stop discovery
			logger.Debug("ignore.Discover: cannot access %q: %v", path, err)
			return nil
		}
		if d.IsDir() || d.Name() != fileName {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			sink.Record(diag.Event{Kind: diag.PatternSourceError, Path: path, Err: readErr})
			return nil
		}
		logger.Debug("ignore.Discover: loaded %s", path)
		sources = append(sources, Source{Path: path, Text: string(content)})
		return nil
	})
	return sources
}
