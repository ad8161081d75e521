package rewrite

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
)

// Source is a parsed Go file together with the raw bytes it was parsed from.
// Rewrites are expressed as byte-range edits against Code so that untouched
// declarations keep their original formatting.
type Source struct {
	Path string
	Code []byte
	Fset *token.FileSet
	File *ast.File
}

// ParseFile reads and parses a Go file from disk.
func ParseFile(path string) (*Source, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseBytes(path, code)
}

// ParseBytes parses Go source held in memory. path is used for positions
// only. Comments are kept because directives live in them.
func ParseBytes(path string, code []byte) (*Source, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, code, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return &Source{Path: path, Code: code, Fset: fset, File: file}, nil
}

// Offset converts a token position into a byte offset within Code.
func (s *Source) Offset(pos token.Pos) int {
	return s.Fset.Position(pos).Offset
}

// Slice returns the raw source text between two positions.
func (s *Source) Slice(from, to token.Pos) []byte {
	return s.Code[s.Offset(from):s.Offset(to)]
}

// Position resolves a token position to file, line and column.
func (s *Source) Position(pos token.Pos) token.Position {
	return s.Fset.Position(pos)
}
