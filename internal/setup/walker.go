// Package setup provides initialization and configuration functions
package setup

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/consolidate/internal/classify"
	"github.com/bethropolis/consolidate/internal/diag"
	"github.com/bethropolis/consolidate/internal/ignore"
	"github.com/bethropolis/consolidate/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure file selection
type WalkerConfig struct {
	RootDir            string
	Recursive          bool
	MaxFileSizeMB      int64
	Extensions         []string
	IgnoreFile         string
	IncludeIgnoreFiles bool
	CustomIgnore       []string
	ExtraExcludes      []string
	Logger             diag.Logger
	Sink               diag.Sink
}

// ConfigureWalker discovers ignore files under RootDir, compiles the rule set
// and returns the options for walker.Select.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*ignore.RuleSet, []walker.Option) {
	if cfg.Logger == nil {
		cfg.Logger = diag.NoopLogger{}
	}
	if cfg.Sink == nil {
		cfg.Sink = diag.NopSink{}
	}

	// --- Gather ignore sources ---
	sources := ignore.Discover(cfg.RootDir, cfg.IgnoreFile, cfg.Sink, cfg.Logger)
	for _, src := range sources {
		cfg.Logger.Debug("Loaded ignore file: %s", src.Path)
	}

	var customPatterns []string
	for _, pattern := range cfg.CustomIgnore {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			customPatterns = append(customPatterns, pattern)
		}
	}
	if len(customPatterns) > 0 {
		infoLog("Using custom ignore patterns: %v", customPatterns)
		sources = append(sources, ignore.Source{Path: "--ignore", Text: strings.Join(customPatterns, "\n")})
	}

	extras := ExtraExcludes(cfg.ExtraExcludes, cfg.IgnoreFile, cfg.IncludeIgnoreFiles)

	// --- Compile ---
	rules := ignore.Compile(sources, extras,
		ignore.WithLogger(cfg.Logger),
		ignore.WithSink(cfg.Sink),
	)
	if rules.Unrestricted() {
		infoLog("No ignore patterns found. All files will be considered for consolidation.")
	} else {
		infoLog("Loaded %d ignore patterns from %d sources. Matching files will be ignored.", rules.Len(), len(sources))
	}

	// --- Extensions ---
	extFilter := walker.NewExtensionFilter(cfg.Extensions...)
	if len(extFilter) > 0 {
		infoLog("Filtering enabled. Only including extensions: %s", strings.Join(extFilter, ", "))
	} else {
		infoLog("No extension filtering (including all file types).")
	}

	walkOptions := []walker.Option{
		walker.WithLogger(cfg.Logger),
		walker.WithSink(cfg.Sink),
		walker.WithRecursive(cfg.Recursive),
		walker.WithMatcher(rules),
		walker.WithExtensions(extFilter...),
		walker.WithDetector(classify.New(cfg.Sink, cfg.Logger)),
	}

	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Ignoring files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	return rules, walkOptions
}

// ExtraExcludes returns the basenames that must never be consolidated: the
// given generated files and, unless included on purpose, the ignore files.
func ExtraExcludes(generated []string, ignoreFile string, includeIgnoreFiles bool) []string {
	var extras []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		name = filepath.Base(name)
		if name == "." || name == string(filepath.Separator) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		extras = append(extras, name)
	}

	for _, name := range generated {
		add(name)
	}
	if !includeIgnoreFiles {
		if ignoreFile == "" {
			ignoreFile = ignore.DefaultFileName
		}
		add(ignoreFile)
	}
	return extras
}
