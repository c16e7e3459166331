// Package summary handles display of run results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/consolidate/internal/diag"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Results describes a finished consolidation run
type Results struct {
	Selected int
	Written  int
	Failures int
	Output   string
	Duration time.Duration
}

// DisplayResults shows the end results of a run
func DisplayResults(logger Logger, res Results, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Selected %d files, wrote %d to %s.", res.Selected, res.Written, res.Output)
	if res.Failures > 0 {
		logger.Info("%d items could not be processed (see warnings above).", res.Failures)
	}
	logger.Info("Consolidation complete in %v.", res.Duration.Round(time.Millisecond))
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	events []diag.Event,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(events))
	if len(events) > 0 {
		sorted := make([]diag.Event, len(events))
		copy(sorted, events)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Path < sorted[j].Path
		})
		for _, item := range sorted {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			reason := string(item.Kind)
			if item.Kind.IsFailure() {
				reason = color.RedString(reason)
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
