package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"testx/internal/domain"
)

// Save writes the outcome of a generate run to the configured JSON report
// file. File-level errors are folded into the diagnostic list so the errors
// viewer sees them alongside directive problems.
func (s *JSONStorage) Save(results []domain.FileResult, duration time.Duration, workers int) error {
	changed := 0
	failed := 0
	cases := 0
	var details []domain.Diagnostic
	for _, r := range results {
		if r.Changed {
			changed++
		}
		if r.Failed() {
			failed++
		}
		cases += len(r.Cases)
		details = append(details, r.Diagnostics...)
		if r.Err != nil {
			details = append(details, domain.Diagnostic{
				File:    r.Path,
				Message: r.Err.Error(),
			})
		}
	}

	report := domain.Report{
		Meta: domain.ReportMeta{
			TotalFiles:      len(results),
			ChangedFiles:    changed,
			FailedFiles:     failed,
			TestCases:       cases,
			Diagnostics:     len(details),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: details,
	}

	return s.SaveReport(&report)
}

// Load reads the last report from the configured JSON report file.
func (s *JSONStorage) Load() (*domain.Report, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file (e.g. after
// marking diagnostics resolved in the viewer).
func (s *JSONStorage) SaveReport(report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
