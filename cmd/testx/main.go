package main

import (
	"flag"
	"fmt"
	"os"

	"testx/internal/cli"
	"testx/internal/cli/commands"
	"testx/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var version = "dev"

func main() {
	// Load a project .env if present so TESTX_* variables can live there
	_ = godotenv.Load()

	// Expose klog's -v verbosity flags on every command
	klog.InitFlags(nil)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "testx",
		Short: "Test entry point generator for setup-driven Go tests",
		Long: `testx expands case directives in Go source files. A function annotated
with a //testx:case comment is split into an inner function that keeps the
original body and a generated test entry point that calls a setup function
and passes its result in. The directive's configuration selects the default
setup function, a custom one, or no setup at all.`,
		Version: version,
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
