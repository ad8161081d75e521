package domain

// TestCase represents a single annotated test declaration found in a source
// file, before rewriting.
type TestCase struct {
	Name   string // original function name
	File   string // path to the file containing the declaration
	Line   int    // line of the declaration
	HasArg bool   // whether the declaration takes a parameter
	Setup  Setup  // resolved preparation outcome
}
