package commands

import (
	"fmt"
	"os"
	"sort"

	"testx/internal/config"
	"testx/internal/discovery"
	"testx/internal/domain"
	"testx/internal/pipeline"
	"testx/internal/storage"
	"testx/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	pool      *pipeline.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *pipeline.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
) *GenerateCommand {
	return &GenerateCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		pool:      pool,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover source files
	sourcePath := gc.config.GetSourcePath()
	files, err := gc.scanner.Scan(sourcePath)
	if err != nil {
		return err
	}

	// Filter files
	files = gc.filter.FilterByName(files, gc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No source files to process")
		return nil
	}

	// The progress bar shares stdout with the printed sources, so it is
	// only shown when rewriting in place.
	if gc.config.Flags.Write {
		progressBar := ui.NewProgressBar(len(files))
		gc.pool.SetProgress(progressBar)
	}

	// Expand directives
	results, duration, err := gc.pool.ProcessWithOptions(files, gc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Save report
	if err := gc.storage.Save(results, duration, gc.config.Processors); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	if !gc.config.Flags.Write {
		return printResults(results)
	}

	// Print stats
	if err := gc.formatter.PrintSummary(); err != nil {
		return err
	}
	return failedError(results)
}

// printResults writes each rewritten file to stdout and every diagnostic to
// stderr, in path order. A file with diagnostics still prints the expansions
// of its remaining declarations.
func printResults(results []domain.FileResult) error {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	for _, result := range results {
		for i := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, result.Diagnostics[i].Error())
		}
		if result.Err != nil {
			fmt.Fprintln(os.Stderr, result.Err)
		}
		if result.Changed {
			os.Stdout.Write(result.Output)
		}
	}
	return failedError(results)
}

// failedError folds failed results into the command's exit status.
func failedError(results []domain.FileResult) error {
	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to expand", failed)
	}
	return nil
}
