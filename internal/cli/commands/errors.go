package commands

import (
	"github.com/spf13/cobra"
	"testx/internal/config"
	"testx/internal/storage"
	"testx/internal/ui"
)

// ErrorsCommand handles the errors command
type ErrorsCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewErrorsCommand creates a new ErrorsCommand
func NewErrorsCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *ErrorsCommand {
	return &ErrorsCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (ec *ErrorsCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := ec.storage.Load()
	if err != nil {
		return err
	}

	return ec.viewer.View(report)
}
