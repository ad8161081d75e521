package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"testx/internal/config"
	"testx/internal/discovery"
	"testx/internal/domain"
	"testx/internal/pipeline"
	"testx/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	processor *pipeline.Processor
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	processor *pipeline.Processor,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		processor: processor,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	sourcePath := lc.config.GetSourcePath()
	files, err := lc.scanner.Scan(sourcePath)
	if err != nil {
		return err
	}

	// Filter files
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	// Inspection is cheap, so files are walked in order without the pool.
	var results []domain.FileResult
	for _, file := range files {
		result := lc.processor.Inspect(file)
		if len(result.Cases) == 0 && !result.Failed() {
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		color.Yellow("No test case directives found")
		return nil
	}

	return lc.formatter.PrintCaseList(results, lc.config.Flags.Cases)
}
