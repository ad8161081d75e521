package commands

import (
	"testx/internal/cli"
	"testx/internal/config"
	"testx/internal/discovery"
	"testx/internal/pipeline"
	"testx/internal/storage"
	"testx/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Generate *GenerateCommand
	List     *ListCommand
	Check    *CheckCommand
	Errors   *ErrorsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg)
	filter := discovery.NewFilter()
	processor := pipeline.NewProcessor(cfg)
	pool := pipeline.NewWorkerPool(cfg, processor)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Generate: NewGenerateCommand(cfg, scanner, filter, pool, jsonStorage, formatter),
		List:     NewListCommand(cfg, scanner, filter, processor, formatter),
		Check:    NewCheckCommand(cfg, scanner, filter, pool),
		Errors:   NewErrorsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Resolves the config file, environment variables and parsed flags into
	// the shared config every command reads from.
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	// Generate command
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate test entry points from case directives",
		Long:    "Expand every annotated function into an inner implementation and a generated test runner entry point. Without --write the rewritten files are printed to standard output.",
		RunE:    c.Generate.Execute,
		PreRunE: loadConfig,
	}
	generateCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of parallel workers to use")
	generateCmd.Flags().StringVarP(&flags.SourcePath, "path", "t", "", "Path to the folder where source scanning should start")
	generateCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter source files by name pattern (supports wildcards, e.g., '*_test.go' or '*parser*')")
	generateCmd.Flags().BoolVarP(&flags.Write, "write", "w", false, "Write expanded files in place instead of printing to stdout")
	generateCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first file that fails to expand")
	rootCmd.AddCommand(generateCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered test case directives",
		Long:    "Scan and list all annotated test cases without rewriting any files",
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter source files by name pattern (supports wildcards, e.g., '*_test.go' or '*parser*')")
	listCmd.Flags().StringVarP(&flags.SourcePath, "path", "t", "", "Path to the folder where source scanning should start")
	listCmd.Flags().BoolVarP(&flags.Cases, "cases", "c", false, "List individual test cases instead of source files")
	rootCmd.AddCommand(listCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Verify all case directives have been expanded",
		Long:    "Run the expansion in memory and report files that still contain unexpanded directives, without writing anything",
		RunE:    c.Check.Execute,
		PreRunE: loadConfig,
	}
	checkCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of parallel workers to use")
	checkCmd.Flags().StringVarP(&flags.SourcePath, "path", "t", "", "Path to the folder where source scanning should start")
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter source files by name pattern (supports wildcards, e.g., '*_test.go' or '*parser*')")
	rootCmd.AddCommand(checkCmd)

	// Errors command
	errorsCmd := &cobra.Command{
		Use:     "errors",
		Short:   "View expansion diagnostics interactively",
		Long:    "Display diagnostics from the last generate run in an interactive viewer",
		RunE:    c.Errors.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(errorsCmd)
}
