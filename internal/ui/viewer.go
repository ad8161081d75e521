package ui

import "testx/internal/domain"

// Viewer displays generate diagnostics in an interactive TUI
type Viewer interface {
	View(report *domain.Report) error
}
