// Package rewrite expands testx case directives inside Go source files. Each
// marked function is split into a private inner function carrying the
// original body and a generated test entry point that performs setup and
// invokes it. Everything the rewrite does not touch keeps its original bytes.
package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"testx/internal/directive"
	"testx/internal/domain"
)

// InnerSuffix is appended to a marked function's name to form the inner
// function holding the original body.
const InnerSuffix = "_inner"

// Outcome is the result of processing one file. Diagnostics are collected
// per declaration; a declaration that produced one keeps its original bytes
// while the remaining marked declarations still expand.
type Outcome struct {
	Cases       []domain.TestCase
	Diagnostics []domain.Diagnostic
	Code        []byte
	Changed     bool
}

// Failed reports whether any marked declaration could not be rewritten.
func (o *Outcome) Failed() bool {
	return len(o.Diagnostics) > 0
}

// target is one function declaration scheduled for expansion.
type target struct {
	fn *ast.FuncDecl
	tc domain.TestCase
}

// Inspect scans a file for case markers without rewriting it.
func Inspect(src *Source) *Outcome {
	targets, diags := collect(src)
	return newOutcome(src, targets, diags)
}

// File rewrites every marked declaration in a file. The returned code is
// formatted and has its import block fixed up so the generated entry points
// can reference the testing package. A diagnostic stops the rewrite of its
// own declaration only; files without expandable markers are returned
// unchanged.
func File(src *Source) (*Outcome, error) {
	targets, diags := collect(src)
	out := newOutcome(src, targets, diags)
	if len(targets) == 0 {
		return out, nil
	}

	buf := NewEditBuffer(src.Code)
	for _, t := range targets {
		expand(src, buf, t)
	}
	edited, err := buf.Apply()
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", src.Path, err)
	}
	code, err := imports.Process(src.Path, edited, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", src.Path, err)
	}
	out.Code = code
	out.Changed = !bytes.Equal(code, src.Code)
	return out, nil
}

func newOutcome(src *Source, targets []target, diags []domain.Diagnostic) *Outcome {
	out := &Outcome{Diagnostics: diags, Code: src.Code}
	for _, t := range targets {
		out.Cases = append(out.Cases, t.tc)
	}
	return out
}

// collect walks the file's declarations and gathers every rewrite target
// together with the diagnostics for markers that cannot be honored.
func collect(src *Source) ([]target, []domain.Diagnostic) {
	var targets []target
	var diags []domain.Diagnostic
	seen := make(map[*ast.Comment]bool)

	addDiag := func(pos token.Pos, format string, a ...interface{}) {
		p := src.Position(pos)
		diags = append(diags, domain.Diagnostic{
			File:    p.Filename,
			Line:    p.Line,
			Column:  p.Column,
			Message: fmt.Sprintf(format, a...),
		})
	}

	for _, decl := range src.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			if gd, ok := decl.(*ast.GenDecl); ok && gd.Doc != nil {
				for _, c := range gd.Doc.List {
					if strings.HasPrefix(c.Text, directive.Prefix) {
						seen[c] = true
						addDiag(c.Pos(), "testx directive on non-function declaration")
					}
				}
			}
			continue
		}

		line, found, stray := directive.Scan(fd.Doc)
		if fd.Doc != nil {
			for _, c := range fd.Doc.List {
				seen[c] = true
			}
		}
		for _, c := range stray {
			if directive.IsMarker(c.Text) {
				addDiag(c.Pos(), "duplicate testx:case directive")
			} else {
				addDiag(c.Pos(), "unsupported directive %q for testx", directive.Name(c.Text))
			}
		}
		if !found {
			continue
		}
		if len(stray) > 0 {
			// The marker on a declaration with a broken directive is not honored.
			continue
		}

		markerPos := line.Comment.Pos()
		switch {
		case fd.Recv != nil:
			addDiag(markerPos, "cannot rewrite method %s: test cases must be package-level functions", fd.Name.Name)
			continue
		case fd.Type.TypeParams != nil && len(fd.Type.TypeParams.List) > 0:
			addDiag(markerPos, "cannot rewrite %s: test cases cannot be generic", fd.Name.Name)
			continue
		case fd.Body == nil:
			addDiag(markerPos, "cannot rewrite %s: missing function body", fd.Name.Name)
			continue
		}

		setup, err := directive.Parse(line.Args, src.Position(markerPos))
		if err != nil {
			var d *domain.Diagnostic
			if errors.As(err, &d) {
				diags = append(diags, *d)
			} else {
				addDiag(markerPos, "%v", err)
			}
			continue
		}

		targets = append(targets, target{fn: fd, tc: domain.TestCase{
			Name:   fd.Name.Name,
			File:   src.Path,
			Line:   src.Position(fd.Pos()).Line,
			HasArg: fd.Type.Params.NumFields() > 0,
			Setup:  setup,
		}})
	}

	// Directives floating outside any handled doc comment cannot be honored.
	for _, group := range src.File.Comments {
		for _, c := range group.List {
			if seen[c] || !strings.HasPrefix(c.Text, directive.Prefix) {
				continue
			}
			addDiag(c.Pos(), "testx directive is not attached to a function declaration")
		}
	}

	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return targets, diags
}

// expand queues the edits for one marked declaration: the doc comment is
// removed, the function is renamed to its inner form, and the generated
// entry point is appended after it. Auxiliary comment lines move onto the
// entry point so compiler directives keep applying to a test function.
func expand(src *Source, buf *EditBuffer, t target) {
	fd := t.fn
	inner := innerName(t.tc.Name)

	buf.Delete(src.Offset(fd.Doc.Pos()), src.Offset(fd.Pos()))
	buf.Replace(src.Offset(fd.Name.Pos()), src.Offset(fd.Name.End()), inner)

	var b strings.Builder
	b.WriteString("\n\n")
	for _, c := range fd.Doc.List {
		if strings.HasPrefix(c.Text, directive.Prefix) {
			continue
		}
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "func %s(t *testing.T) {\n", outerName(t.tc.Name))
	if t.tc.HasArg && !t.tc.Setup.Disabled() {
		fmt.Fprintf(&b, "\tsr := %s()\n", t.tc.Setup.Ref())
		fmt.Fprintf(&b, "\t%s(sr)\n", inner)
	} else {
		fmt.Fprintf(&b, "\t%s()\n", inner)
	}
	b.WriteString("}")
	buf.Insert(src.Offset(fd.End()), b.String())
}

// innerName privatizes a function name and appends the inner suffix.
func innerName(name string) string {
	return unexport(name) + InnerSuffix
}

// outerName derives the test entry point name. Exported functions become
// TestName, unexported ones Test_name, following the convention test
// generators use to keep the original name readable.
func outerName(name string) string {
	if ast.IsExported(name) {
		return "Test" + name
	}
	return "Test_" + name
}

func unexport(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return name
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return name
	}
	return string(lower) + name[size:]
}
