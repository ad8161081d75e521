package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"testx/internal/config"
)

// Scanner scans for Go source files in a directory tree
type Scanner struct {
	config *config.Config
}

// NewScanner creates a new Scanner. The ignore list is read from the config
// at scan time, after flags and the project file have been resolved.
func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{config: cfg}
}

// Scan finds all Go source files under the given root directory. Directories
// and files the Go toolchain ignores (hidden or underscore-prefixed) are
// skipped.
func (s *Scanner) Scan(root string) ([]string, error) {
	var sources []string

	skipDirs := make(map[string]bool)
	for _, dir := range s.config.PathsToIgnore {
		skipDirs[dir] = true
	}

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}

			if strings.HasPrefix(name, "_") && path != root {
				return filepath.SkipDir
			}

			if skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(name, ".go") {
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}

		sources = append(sources, path)
		return nil
	})

	return sources, err
}
