package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	DefaultInputDir   = "."
	DefaultOutputFile = "summarised.txt"
	DefaultLogFile    = "consolidate.log"
	DefaultIgnoreFile = ".gitignore"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir    string
	OutputFile string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	LogFile     string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Processing settings
	NoSubdirs     bool
	MaxFileSizeMB int64
	ShowProgress  bool
	Timeout       time.Duration

	// Filtering settings
	IgnoreFile         string
	IncludeIgnoreFiles bool
	CustomIgnore       []string
	Extensions         []string

	// ProgramName is excluded from the output alongside the log and output files
	ProgramName string
}

// New creates a Config with default values
func New() *Config {
	return &Config{
		RootDir:     DefaultInputDir,
		OutputFile:  DefaultOutputFile,
		LogFile:     DefaultLogFile,
		IgnoreFile:  DefaultIgnoreFile,
		ProgramName: programName(),
	}
}

// Bind registers the command-line flags on fs
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.BoolVar(&c.NoSubdirs, "no-include-subdirs", false, "Do not include files from subdirectories")
	fs.StringSliceVarP(&c.Extensions, "extensions", "e", nil, "Only include files with these extensions (e.g. --extensions .py,.js)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to the debug log file (empty to disable)")
	fs.StringVar(&c.IgnoreFile, "ignore-file", c.IgnoreFile, "Name of the ignore files to discover under the input directory")
	fs.StringSliceVar(&c.CustomIgnore, "ignore", nil, "Additional ignore patterns (gitignore syntax)")
	fs.BoolVar(&c.IncludeIgnoreFiles, "include-ignore-files", false, "Consolidate the discovered ignore files themselves")
	fs.Int64Var(&c.MaxFileSizeMB, "max-size", 0, "Max file size to consolidate in MB (0 = no limit)")
	fs.DurationVar(&c.Timeout, "timeout", 0, "Maximum execution time (e.g., '30s', '5m')")
	fs.BoolVar(&c.ShowProgress, "progress", false, "Show progress information")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", false, "Show a list of skipped files/directories and reasons at the end")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", "", "Set the console logging level (DEBUG, INFO, WARN, ERROR)")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
}

// ApplyArgs sets the positional input directory and output file
func (c *Config) ApplyArgs(args []string) {
	if len(args) > 0 && args[0] != "" {
		c.RootDir = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		c.OutputFile = args[1]
	}
}

// Finalize derives settings that depend on the environment
func (c *Config) Finalize() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.IgnoreFile == "" {
		c.IgnoreFile = DefaultIgnoreFile
	}
}

// Recursive reports whether subdirectories are included
func (c *Config) Recursive() bool {
	return !c.NoSubdirs
}

func programName() string {
	if len(os.Args) == 0 {
		return ""
	}
	return filepath.Base(os.Args[0])
}
