package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"testx/internal/config"
	"testx/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintSummary reads and displays the statistics of the last generate run
// from the JSON report file
func (f *Formatter) PrintSummary() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	reportPath := f.config.GetReportPath()

	// Read JSON file
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	// Parse JSON
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("failed to parse report: %w", err)
	}

	meta := report.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                  Test Generation Statistics                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	// Total Source Files
	fmt.Printf("│ %-31s │ ", "Total Source Files")
	color.White("%-27d │\n", meta.TotalFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Changed Files
	fmt.Printf("│ %-31s │ ", "Changed Files")
	color.Green("%-27d │\n", meta.ChangedFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Files
	fmt.Printf("│ %-31s │ ", "Failed Files")
	color.Red("%-27d │\n", meta.FailedFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Test Cases
	fmt.Printf("│ %-31s │ ", "Test Cases")
	color.White("%-27d │\n", meta.TestCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Diagnostics
	fmt.Printf("│ %-31s │ ", "Diagnostics")
	color.Red("%-27d │\n", meta.Diagnostics)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Duration
	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Workers
	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timestamp
	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedFiles == 0 {
		color.Green("✓ All files generated cleanly!")
	} else {
		color.Red("✗ %d file(s) failed with %d diagnostic(s)", meta.FailedFiles, meta.Diagnostics)
		fmt.Println()
		f.printDiagnosticsTree(report.Details)
	}

	return nil
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name        string
	Children    map[string]*TreeNode
	Diagnostics []domain.Diagnostic
	IsFile      bool
}

// printDiagnosticsTree prints a tree structure of files with diagnostics
func (f *Formatter) printDiagnosticsTree(diagnostics []domain.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}

	// Group diagnostics by file path
	fileMap := make(map[string][]domain.Diagnostic)
	for _, d := range diagnostics {
		fileMap[d.File] = append(fileMap[d.File], d)
	}

	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
		IsFile:   false,
	}

	// Process each file
	for filePath, fileDiags := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(filePath), "./"), "/")
		current := root

		// Navigate/create tree nodes for each path part
		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			// If this is the file (last part), add diagnostics
			if i == len(parts)-1 {
				current.Diagnostics = fileDiags
			}
		}
	}

	// Print tree recursively
	f.printTreeNode(root, "", true, true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isLast bool, isRoot bool) {
	// Sort children for consistent output
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Print children
	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		// Determine connector
		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "   |_"
		} else {
			connector = prefix + "  |_"
		}

		// Print child node
		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		// Print diagnostics if this is a file
		if child.IsFile && len(child.Diagnostics) > 0 {
			for j, d := range child.Diagnostics {
				isLastDiag := j == len(child.Diagnostics)-1
				var diagPrefix string
				if isLastChild {
					if isLastDiag {
						diagPrefix = strings.ReplaceAll(prefix, "|", " ") + "        |_"
					} else {
						diagPrefix = prefix + "  |        |_"
					}
				} else {
					if isLastDiag {
						diagPrefix = prefix + "  |        |_"
					} else {
						diagPrefix = prefix + "  |  |     |_"
					}
				}
				color.Red("%s%d:%d %s", diagPrefix, d.Line, d.Column, d.Message)
			}
		}

		// Recursively print children
		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else if isLastChild {
			newPrefix = strings.ReplaceAll(prefix, "|", " ") + "  "
		} else {
			newPrefix = prefix + "  |"
		}
		f.printTreeNode(child, newPrefix, isLastChild, false)
	}
}

// PrintCaseList prints the files containing test case directives, optionally
// with the cases themselves. Files that could not be scanned cleanly are
// marked with [F] in red.
func (f *Formatter) PrintCaseList(results []domain.FileResult, showCases bool) error {
	total := 0
	for _, r := range results {
		total += len(r.Cases)
	}

	if showCases {
		// Display tree view with test cases
		color.Green("Found %d file(s) with %d test case(s):\n", len(results), total)

		for i, r := range results {
			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, r.Path)
			if err != nil {
				relPath = r.Path
			}

			failMarker := ""
			if r.Failed() {
				failMarker = " " + color.RedString("[F]")
			}

			// Print source file as root node
			isLastFile := i == len(results)-1
			if isLastFile {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}

			// Print test cases as children
			if len(r.Cases) == 0 {
				var prefix string
				if isLastFile {
					prefix = "    └── "
				} else {
					prefix = "│   └── "
				}
				fmt.Printf("%s%s\n", prefix, color.RedString("(no test cases found)"))
			} else {
				for j, tc := range r.Cases {
					isLastCase := j == len(r.Cases)-1

					var prefix string
					if isLastFile {
						if isLastCase {
							prefix = "    └── "
						} else {
							prefix = "    ├── "
						}
					} else {
						if isLastCase {
							prefix = "│   └── "
						} else {
							prefix = "│   ├── "
						}
					}

					label := fmt.Sprintf("%s  [%s]", tc.Name, tc.Setup)
					fmt.Printf("%s%s\n", prefix, color.YellowString(label))
				}
			}

			// Add spacing between files (except for the last one)
			if i < len(results)-1 {
				fmt.Println()
			}
		}
	} else {
		// Display simple list of files
		color.Green("Found %d file(s) with test case directives:\n", len(results))

		for i, r := range results {
			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, r.Path)
			if err != nil {
				relPath = r.Path
			}

			failMarker := ""
			if r.Failed() {
				failMarker = " " + color.RedString("[F]")
			}

			if i == len(results)-1 {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}
		}
	}

	return nil
}
