package domain

import "fmt"

// Diagnostic is a transform-time error tied to a source position. It stops
// the expansion of the declaration it points at; the rest of the file and
// all other files are unaffected.
type Diagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the diagnostic is marked as resolved
}

// Error formats the diagnostic the way the Go toolchain reports positions.
func (d *Diagnostic) Error() string {
	if d.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.File, d.Message)
}
