package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"testx/internal/config"
	"testx/internal/domain"
	"testx/internal/storage"
)

// ErrorViewer displays generate diagnostics in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the report's diagnostics in an interactive TUI
func (ev *ErrorViewer) View(report *domain.Report) error {
	if len(report.Details) == 0 {
		color.Green("✓ No diagnostics found!")
		return nil
	}

	// Track resolved diagnostics (by index) - loaded from the report
	resolved := make(map[int]bool)
	for i, d := range report.Details {
		if d.Resolved {
			resolved[i] = true
		}
	}

	// Persist the resolved flags back into the report file
	saveResolvedStatus := func() error {
		for i := range report.Details {
			report.Details[i].Resolved = resolved[i]
		}
		return ev.storage.SaveReport(report)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for diagnostics (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	// Function to get formatted text for a list item
	getListItemText := func(index int) string {
		d := report.Details[index]
		name := listItemName(d, index)

		// Check if resolved
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	// Function to update list item display with resolved status
	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, getListItemText(index), "")
	}

	// Add diagnostics to the list with numbers and colors
	for i := range report.Details {
		list.AddItem(getListItemText(i), "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows path and position info)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for diagnostic details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count unresolved diagnostics
	countUnresolved := func() int {
		count := 0
		for i := range report.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		unresolved := countUnresolved()
		headerText := fmt.Sprintf(" Generate Diagnostics (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(report.Details), unresolved)
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(report.Details) {
			d := report.Details[index]

			// Update stats header
			statsView.SetText(ev.formatDiagnosticStats(d, index+1))

			// Update diagnostic details
			detailsView.SetText(ev.formatDiagnosticDetails(d))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(report.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					// Persisting is best effort; the TUI has no error surface.
					_ = saveResolvedStatus()
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// listItemName renders the short label shown in the diagnostics list.
func listItemName(d domain.Diagnostic, index int) string {
	if d.File == "" {
		return fmt.Sprintf("Diagnostic %d", index+1)
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d", filepath.Base(d.File), d.Line)
	}
	return filepath.Base(d.File)
}

// formatDiagnosticDetails formats a diagnostic for display using tview color
// tags ([red], [cyan], etc.)
func (ev *ErrorViewer) formatDiagnosticDetails(d domain.Diagnostic) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	// Position
	fmt.Fprintf(w, "[red]✗ %s[white]\n\n", (&d).Error())

	// File path
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", d.File)
	if d.Line > 0 {
		fmt.Fprintf(w, "[yellow]Location: line %d, column %d[white]\n", d.Line, d.Column)
	}
	fmt.Fprintf(w, "\n")

	// Message
	if d.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", d.Message)
	}

	if d.Resolved {
		fmt.Fprintf(w, "[gray]Marked as resolved.[white]\n")
	}

	w.Flush()
	return builder.String()
}

// formatDiagnosticStats formats the stats header for a diagnostic
func (ev *ErrorViewer) formatDiagnosticStats(d domain.Diagnostic, number int) string {
	var builder strings.Builder

	path := d.File
	if path == "" {
		path = fmt.Sprintf("Diagnostic %d", number)
	}

	statsLine := fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]::[yellow]%d:%d[white]", path, d.Line, d.Column)
	builder.WriteString(statsLine)
	builder.WriteString("\n")

	return builder.String()
}
