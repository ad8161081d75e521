package commands

import (
	"fmt"
	"os"
	"sort"

	"testx/internal/config"
	"testx/internal/discovery"
	"testx/internal/pipeline"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	pool    *pipeline.WorkerPool
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *pipeline.WorkerPool,
) *CheckCommand {
	return &CheckCommand{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		pool:    pool,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	sourcePath := cc.config.GetSourcePath()
	files, err := cc.scanner.Scan(sourcePath)
	if err != nil {
		return err
	}

	// Filter files
	files = cc.filter.FilterByName(files, cc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No source files to check")
		return nil
	}

	// The check never writes, it only compares the expansion against what
	// is on disk.
	results, _, err := cc.pool.Process(files)
	if err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	stale := 0
	failed := 0
	for _, result := range results {
		for i := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, result.Diagnostics[i].Error())
		}
		if result.Err != nil {
			fmt.Fprintln(os.Stderr, result.Err)
		}
		// A file can be both: diagnostics on some declarations, unexpanded
		// directives on the rest.
		if result.Failed() {
			failed++
		}
		if result.Changed {
			stale++
			fmt.Println(result.Path)
		}
	}

	if stale > 0 || failed > 0 {
		return fmt.Errorf("%d file(s) with unexpanded directives, %d file(s) with errors", stale, failed)
	}

	color.Green("✓ No unexpanded case directives found")
	return nil
}
