package pipeline

import (
	"errors"
	"fmt"
	"go/scanner"
	"os"
	"time"

	"k8s.io/klog/v2"

	"testx/internal/config"
	"testx/internal/directive"
	"testx/internal/domain"
	"testx/internal/rewrite"
)

// Processor expands directives in a single source file.
type Processor struct {
	config *config.Config
}

// NewProcessor creates a new Processor
func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{config: cfg}
}

// Process rewrites one file. When the write flag is set the result replaces
// the file in place, preserving its permissions; otherwise the rewritten
// source is kept on the result for the caller to print.
func (p *Processor) Process(path string) (res domain.FileResult) {
	start := time.Now()
	res = domain.FileResult{Path: path}
	defer func() {
		res.Duration = time.Since(start)
	}()

	code, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}
	if !directive.Present(code) {
		klog.V(2).Infof("%s: no directives, skipped", path)
		return res
	}

	src, err := rewrite.ParseBytes(path, code)
	if err != nil {
		if diags := parseDiagnostics(err); len(diags) > 0 {
			res.Diagnostics = diags
		} else {
			res.Err = err
		}
		return res
	}

	out, err := rewrite.File(src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Cases = out.Cases
	res.Diagnostics = out.Diagnostics
	res.Changed = out.Changed
	// Declarations that produced diagnostics stay as they are on disk, so a
	// partial expansion is still written out or printed.
	if !out.Changed {
		return res
	}

	klog.V(1).Infof("%s: expanded %d case(s)", path, len(out.Cases))
	if p.config.Flags.Write {
		if err := overwrite(path, out.Code); err != nil {
			res.Err = err
		}
		return res
	}
	res.Output = out.Code
	return res
}

// Inspect scans one file for test cases without rewriting anything.
func (p *Processor) Inspect(path string) (res domain.FileResult) {
	start := time.Now()
	res = domain.FileResult{Path: path}
	defer func() {
		res.Duration = time.Since(start)
	}()

	code, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}
	if !directive.Present(code) {
		return res
	}

	src, err := rewrite.ParseBytes(path, code)
	if err != nil {
		if diags := parseDiagnostics(err); len(diags) > 0 {
			res.Diagnostics = diags
		} else {
			res.Err = err
		}
		return res
	}

	out := rewrite.Inspect(src)
	res.Cases = out.Cases
	res.Diagnostics = out.Diagnostics
	return res
}

// overwrite replaces a file's content, keeping its permission bits.
func overwrite(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// parseDiagnostics converts Go parser errors into positioned diagnostics.
func parseDiagnostics(err error) []domain.Diagnostic {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return nil
	}
	diags := make([]domain.Diagnostic, 0, len(list))
	for _, e := range list {
		diags = append(diags, domain.Diagnostic{
			File:    e.Pos.Filename,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Message: e.Msg,
		})
	}
	return diags
}
