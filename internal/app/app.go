package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bethropolis/consolidate/internal/config"
	"github.com/bethropolis/consolidate/internal/diag"
	"github.com/bethropolis/consolidate/internal/logger"
	"github.com/bethropolis/consolidate/internal/printer"
	"github.com/bethropolis/consolidate/internal/setup"
	"github.com/bethropolis/consolidate/internal/summary"
	"github.com/bethropolis/consolidate/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	stderr io.Writer
}

// New creates a new App instance logging to stderr
func New(cfg *config.Config, stderr io.Writer) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		stderr: stderr,
	}
}

// Logger returns the console logger
func (a *App) Logger() *logger.Logger {
	return a.log
}

// Run executes a consolidation. Files that cannot be processed are reported
// and skipped; only setup failures, output failures and cancellation are
// returned as errors.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	// --- Debug log file ---
	if a.cfg.LogFile != "" {
		fileLog, err := logger.OpenFileLog(a.cfg.LogFile)
		if err != nil {
			a.log.Error("%v", err)
			return err
		}
		defer fileLog.Close()
		a.log.WithFile(fileLog.Logger)
	}

	// Helper for info messages, suppressed by quiet flag
	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	if a.log.VerboseMode {
		a.log.Debug("Verbose mode enabled")
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Directory: %s", a.cfg.RootDir)
		a.log.Debug("Output file: %s", a.cfg.OutputFile)
		a.log.Debug("Recursive: %v", a.cfg.Recursive())
		a.log.Debug("Max file size: %d MB", a.cfg.MaxFileSizeMB)
		a.log.Debug("Ignore file name: %s (self-excluded: %v)", a.cfg.IgnoreFile, !a.cfg.IncludeIgnoreFiles)
		if len(a.cfg.CustomIgnore) > 0 {
			a.log.Debug("Custom ignore patterns: %v", a.cfg.CustomIgnore)
		}
		if len(a.cfg.Extensions) > 0 {
			a.log.Debug("Extensions filter: %v", a.cfg.Extensions)
		}
	}

	// --- Directory validation ---
	absRootDir, err := walker.ValidateRoot(a.cfg.RootDir)
	if err != nil {
		a.log.Error("Invalid input directory: %v", err)
		return err
	}

	tracker := diag.NewTracker(64)
	sink := diag.Multi{tracker, diag.LogSink{Logger: a.log}}

	// --- Ignore rules and walk options ---
	_, walkOptions := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:            absRootDir,
		Recursive:          a.cfg.Recursive(),
		MaxFileSizeMB:      a.cfg.MaxFileSizeMB,
		Extensions:         a.cfg.Extensions,
		IgnoreFile:         a.cfg.IgnoreFile,
		IncludeIgnoreFiles: a.cfg.IncludeIgnoreFiles,
		CustomIgnore:       a.cfg.CustomIgnore,
		ExtraExcludes:      []string{a.cfg.ProgramName, a.cfg.LogFile, a.cfg.OutputFile},
		Logger:             a.log,
		Sink:               sink,
	}, infoLog)

	// --- Selection ---
	infoLog("Scanning directory: %s", absRootDir)
	candidates, err := walker.Select(ctx, absRootDir, walkOptions...)
	if err != nil {
		return a.fail("Directory scan", err)
	}
	infoLog("Selected %d files for consolidation.", len(candidates))

	// --- Output ---
	output, err := os.Create(a.cfg.OutputFile)
	if err != nil {
		err = fmt.Errorf("failed to create output file %s: %w", a.cfg.OutputFile, err)
		a.log.Error("%v", err)
		return err
	}

	p := printer.New(output).WithLogger(a.log).WithSink(sink)
	showProgress := a.cfg.ShowProgress && !a.cfg.Quiet
	terminal := a.stderrIsTerminal()
	if showProgress {
		a.log.Debug("Progress display enabled")
		p.WithProgress(a.progressLine(terminal))
	}

	written, writeErr := p.Write(ctx, candidates)
	if showProgress && terminal && len(candidates) > 0 {
		fmt.Fprintln(a.stderr)
	}
	if closeErr := output.Close(); closeErr != nil && writeErr == nil {
		writeErr = fmt.Errorf("failed to close output file %s: %w", a.cfg.OutputFile, closeErr)
	}
	if writeErr != nil {
		return a.fail("Writing output", writeErr)
	}

	// --- Results ---
	events := tracker.Items()
	failures := 0
	for _, e := range events {
		if e.Kind.IsFailure() {
			failures++
		}
	}

	summary.DisplayResults(a.log, summary.Results{
		Selected: len(candidates),
		Written:  written,
		Failures: failures,
		Output:   a.cfg.OutputFile,
		Duration: time.Since(startTime),
	}, a.cfg.Quiet)

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, events, a.stderr, a.cfg.Quiet)
	}
	return nil
}

// fail logs a fatal error in the wording matching its cause and returns it.
func (a *App) fail(stage string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.log.Error("%s aborted: timeout of %v reached.", stage, a.cfg.Timeout)
	case errors.Is(err, context.Canceled):
		a.log.Error("%s aborted: interrupted.", stage)
	default:
		a.log.Error("%s failed: %v", stage, err)
	}
	return err
}

func (a *App) stderrIsTerminal() bool {
	f, ok := a.stderr.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progressLine returns a progress callback writing a status line to stderr,
// redrawn in place on a terminal.
func (a *App) progressLine(terminal bool) printer.ProgressFunc {
	return func(done, total int, relativePath string) {
		statusLine := fmt.Sprintf("Processing: %-40s | Files: %d/%d", truncatePath(relativePath, 40), done, total)
		if terminal {
			fmt.Fprint(a.stderr, "\r"+statusLine)
		} else {
			fmt.Fprintln(a.stderr, statusLine)
		}
	}
}

// truncatePath keeps the last runes of path so it fits in width columns,
// marking the cut with a leading "...".
func truncatePath(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	return "..." + string(runes[len(runes)-(width-3):])
}
