package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters source files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters source files by name pattern using wildcard matching
// Supports patterns like "*_test.go" or "*parser*"
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string

	for _, file := range files {
		// Get just the filename from the full path
		fileName := filepath.Base(file)

		// Try to match using filepath.Match (supports * and ? wildcards)
		matched, err := filepath.Match(pattern, fileName)
		if err == nil && matched {
			filtered = append(filtered, file)
			continue
		}

		// If pattern contains wildcards but filepath.Match didn't match,
		// fall back to a substring match for patterns like "*parser*"
		if strings.Contains(pattern, "*") {
			parts := strings.Split(pattern, "*")
			allPartsMatch := true
			hasNonEmptyPart := false
			for _, part := range parts {
				if part == "" {
					continue
				}
				hasNonEmptyPart = true
				if !strings.Contains(fileName, part) {
					allPartsMatch = false
					break
				}
			}
			if allPartsMatch && hasNonEmptyPart {
				filtered = append(filtered, file)
			}
			continue
		}

		// If no wildcards, do a simple contains check
		if !strings.Contains(pattern, "?") && strings.Contains(fileName, pattern) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}
