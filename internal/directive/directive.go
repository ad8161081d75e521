// Package directive parses testx comment directives attached to function
// declarations and resolves their configuration to a setup outcome.
package directive

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"testx/internal/domain"
)

const (
	// Prefix is the namespace shared by all testx directives.
	Prefix = "//testx:"
	// Marker introduces a test-case declaration. It may be followed by a
	// parenthesized configuration list: //testx:case(setup = prepare).
	Marker = "//testx:case"
)

// Line is a testx case marker found in a doc comment group.
type Line struct {
	Comment *ast.Comment // the comment carrying the marker
	Args    string       // raw text after the marker, "" when bare
}

// Present reports whether code contains any testx directive. Used as a cheap
// prefilter before parsing a file.
func Present(code []byte) bool {
	return bytes.Contains(code, []byte(Prefix))
}

// Scan inspects a doc comment group for testx directives. It returns the
// first case marker, if any, plus every stray comment in the testx namespace
// that cannot be honored (unknown directive names, duplicate markers). Block
// comments never carry directives.
func Scan(doc *ast.CommentGroup) (line Line, ok bool, stray []*ast.Comment) {
	if doc == nil {
		return Line{}, false, nil
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		rest, isMarker := markerArgs(c.Text)
		if isMarker && !ok {
			line = Line{Comment: c, Args: rest}
			ok = true
			continue
		}
		stray = append(stray, c)
	}
	return line, ok, stray
}

// markerArgs splits a comment into the case marker and its trailing
// configuration text. //testx:casex is a different (unknown) directive, not a
// marker with junk.
func markerArgs(text string) (string, bool) {
	if !strings.HasPrefix(text, Marker) {
		return "", false
	}
	rest := text[len(Marker):]
	if rest != "" && rest[0] != '(' && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return rest, true
}

// IsMarker reports whether a comment line is a case marker, bare or with a
// configuration.
func IsMarker(text string) bool {
	_, ok := markerArgs(text)
	return ok
}

// Name extracts the directive name from a testx comment line, e.g. "case"
// from //testx:case(no_setup).
func Name(text string) string {
	rest := strings.TrimPrefix(text, Prefix)
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(', ' ', '\t':
			return rest[:i]
		}
	}
	return rest
}

// Parse resolves a marker's configuration list to a setup outcome. args is
// the raw text following the marker and pos the source position of the
// comment, used to localize errors. Every entry in the list is validated; the
// first entry decides the outcome.
func Parse(args string, pos token.Position) (domain.Setup, error) {
	p := &parser{
		s:    args,
		file: pos.Filename,
		line: pos.Line,
		col:  pos.Column + len(Marker),
	}
	return p.parse()
}

// parser walks the configuration text of a single marker, tracking byte
// offsets so errors point at the offending token.
type parser struct {
	s    string
	i    int
	file string
	line int
	col  int // source column of s[0]
}

func (p *parser) errorf(at int, format string, a ...interface{}) error {
	return &domain.Diagnostic{
		File:    p.file,
		Line:    p.line,
		Column:  p.col + at,
		Message: fmt.Sprintf(format, a...),
	}
}

func (p *parser) skipSpaces() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t') {
		p.i++
	}
}

func (p *parser) eof() bool {
	return p.i >= len(p.s)
}

func (p *parser) parse() (domain.Setup, error) {
	p.skipSpaces()
	if p.eof() {
		return domain.UseDefault(), nil
	}
	if p.s[p.i] != '(' {
		return domain.Setup{}, p.errorf(p.i, "malformed testx directive: expected parenthesized configuration")
	}
	p.i++

	outcome := domain.UseDefault()
	decided := false

	p.skipSpaces()
	if !p.eof() && p.s[p.i] == ')' {
		p.i++
		return p.finish(outcome)
	}
	for {
		entry, err := p.parseEntry()
		if err != nil {
			return domain.Setup{}, err
		}
		if !decided {
			outcome = entry
			decided = true
		}
		p.skipSpaces()
		if p.eof() {
			return domain.Setup{}, p.errorf(p.i, "malformed testx directive: missing ')'")
		}
		switch p.s[p.i] {
		case ')':
			p.i++
			return p.finish(outcome)
		case ',':
			p.i++
			p.skipSpaces()
			if p.eof() || p.s[p.i] == ')' {
				return domain.Setup{}, p.errorf(p.i, "expected attribute after ','")
			}
		default:
			return domain.Setup{}, p.errorf(p.i, "expected ',' or ')'")
		}
	}
}

// finish rejects trailing text after the closing parenthesis.
func (p *parser) finish(outcome domain.Setup) (domain.Setup, error) {
	p.skipSpaces()
	if !p.eof() {
		return domain.Setup{}, p.errorf(p.i, "unexpected text after configuration")
	}
	return outcome, nil
}

// parseEntry reads one key or key = value attribute.
func (p *parser) parseEntry() (domain.Setup, error) {
	p.skipSpaces()
	keyAt := p.i
	key := p.scanToken()
	if key == "" {
		return domain.Setup{}, p.errorf(keyAt, "expected attribute name")
	}

	switch key {
	case "setup":
		p.skipSpaces()
		if p.eof() || p.s[p.i] != '=' {
			return domain.Setup{}, p.errorf(p.i, `attribute "setup" requires a value`)
		}
		p.i++
		return p.parseSetupValue()
	case "no_setup":
		p.skipSpaces()
		if !p.eof() && p.s[p.i] == '=' {
			return domain.Setup{}, p.errorf(p.i, `attribute "no_setup" does not take a value`)
		}
		return domain.NoSetup(), nil
	default:
		return domain.Setup{}, p.errorf(keyAt, "unsupported attribute %q for testx", key)
	}
}

// parseSetupValue reads the value after "setup =": either a quoted string
// whose contents are a function path, or a bare path. Both forms resolve to
// the same reference.
func (p *parser) parseSetupValue() (domain.Setup, error) {
	p.skipSpaces()
	valueAt := p.i
	if p.eof() || p.s[p.i] == ',' || p.s[p.i] == ')' {
		return domain.Setup{}, p.errorf(valueAt, `expected function reference after "setup ="`)
	}

	var raw string
	if p.s[p.i] == '"' {
		lit, err := p.scanString()
		if err != nil {
			return domain.Setup{}, err
		}
		raw = lit
	} else {
		raw = p.scanToken()
	}

	path, ok := normalizePath(raw)
	if !ok {
		return domain.Setup{}, p.errorf(valueAt, "invalid setup reference %q", raw)
	}
	return domain.UsePath(path), nil
}

// scanToken consumes a run of non-delimiter characters.
func (p *parser) scanToken() string {
	start := p.i
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', ',', ')', '(', '=':
			return p.s[start:p.i]
		}
		p.i++
	}
	return p.s[start:p.i]
}

// scanString consumes a double-quoted Go string literal and returns its
// unquoted contents.
func (p *parser) scanString() (string, error) {
	start := p.i
	p.i++ // opening quote
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case '\\':
			p.i += 2
			continue
		case '"':
			p.i++
			lit, err := strconv.Unquote(p.s[start:p.i])
			if err != nil {
				return "", p.errorf(start, "invalid string literal %s", p.s[start:p.i])
			}
			return lit, nil
		}
		p.i++
	}
	return "", p.errorf(start, "unterminated string literal")
}

// normalizePath validates a dotted function reference and strips a leading
// self qualifier, so setup = self.prepare and setup = prepare resolve
// identically.
func normalizePath(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	segs := strings.Split(raw, ".")
	if len(segs) > 1 && segs[0] == "self" {
		segs = segs[1:]
	}
	for _, seg := range segs {
		if !token.IsIdentifier(seg) {
			return "", false
		}
	}
	return strings.Join(segs, "."), true
}
