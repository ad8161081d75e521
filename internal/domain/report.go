package domain

import "time"

// FileResult represents the outcome of rewriting a single source file.
type FileResult struct {
	Path        string        // Path to the file that was processed
	Changed     bool          // Whether the transform produced new content
	Cases       []TestCase    // Test cases rewritten in this file
	Diagnostics []Diagnostic  // Per-declaration transform errors
	Output      []byte        // Transformed source (kept when not writing in place)
	Err         error         // File-level error (unreadable, unparseable)
	Duration    time.Duration // Time taken to process
}

// Failed reports whether any part of the file could not be transformed.
func (r FileResult) Failed() bool {
	return r.Err != nil || len(r.Diagnostics) > 0
}

// ReportMeta contains metadata about a generate run.
type ReportMeta struct {
	TotalFiles      int     `json:"total_files"`
	ChangedFiles    int     `json:"changed_files"`
	FailedFiles     int     `json:"failed_files"`
	TestCases       int     `json:"test_cases"`
	Diagnostics     int     `json:"diagnostics"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// Report is the complete persisted output of a generate run.
type Report struct {
	Meta    ReportMeta   `json:"meta"`
	Details []Diagnostic `json:"details"`
}
