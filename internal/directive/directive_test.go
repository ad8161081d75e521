package directive

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"
	"testing"

	"testx/internal/domain"
)

func parseAt(t *testing.T, args string) (domain.Setup, error) {
	t.Helper()
	pos := token.Position{Filename: "sample_test.go", Line: 10, Column: 1}
	return Parse(args, pos)
}

func TestParse_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		expected domain.Setup
	}{
		{
			name:     "bare marker uses default",
			args:     "",
			expected: domain.UseDefault(),
		},
		{
			name:     "empty configuration uses default",
			args:     "()",
			expected: domain.UseDefault(),
		},
		{
			name:     "bare path",
			args:     "(setup = setup_666)",
			expected: domain.UsePath("setup_666"),
		},
		{
			name:     "quoted path",
			args:     `(setup = "setup_666")`,
			expected: domain.UsePath("setup_666"),
		},
		{
			name:     "qualified path",
			args:     "(setup = fixtures.Prepare)",
			expected: domain.UsePath("fixtures.Prepare"),
		},
		{
			name:     "self qualifier is stripped",
			args:     "(setup = self.setup_666)",
			expected: domain.UsePath("setup_666"),
		},
		{
			name:     "self qualifier inside string is stripped",
			args:     `(setup = "self.setup_666")`,
			expected: domain.UsePath("setup_666"),
		},
		{
			name:     "no_setup",
			args:     "(no_setup)",
			expected: domain.NoSetup(),
		},
		{
			name:     "whitespace is insignificant",
			args:     "(  setup=prepare  )",
			expected: domain.UsePath("prepare"),
		},
		{
			name:     "first entry wins over later setup",
			args:     "(no_setup, setup = prepare)",
			expected: domain.NoSetup(),
		},
		{
			name:     "first entry wins over later no_setup",
			args:     "(setup = prepare, no_setup)",
			expected: domain.UsePath("prepare"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAt(t, tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestParse_StringAndBareFormsResolveIdentically(t *testing.T) {
	bare, err := parseAt(t, "(setup = setup_666)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quoted, err := parseAt(t, `(setup = "setup_666")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bare != quoted {
		t.Errorf("expected identical outcomes, got %+v and %+v", bare, quoted)
	}
	if bare.Ref() != "setup_666" {
		t.Errorf("expected reference setup_666, got %s", bare.Ref())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string // substring of the error message
	}{
		{
			name: "unsupported key",
			args: "(bogus)",
			want: `unsupported attribute "bogus" for testx`,
		},
		{
			name: "unsupported key with value",
			args: "(bogus = x)",
			want: `unsupported attribute "bogus" for testx`,
		},
		{
			name: "unsupported key after valid entry",
			args: "(setup = prepare, bogus)",
			want: `unsupported attribute "bogus" for testx`,
		},
		{
			name: "setup without value",
			args: "(setup)",
			want: `attribute "setup" requires a value`,
		},
		{
			name: "setup with empty value",
			args: "(setup = )",
			want: `expected function reference after "setup ="`,
		},
		{
			name: "no_setup with value",
			args: "(no_setup = x)",
			want: `attribute "no_setup" does not take a value`,
		},
		{
			name: "invalid path",
			args: "(setup = foo-bar)",
			want: `invalid setup reference "foo-bar"`,
		},
		{
			name: "invalid path in string",
			args: `(setup = "foo bar")`,
			want: `invalid setup reference "foo bar"`,
		},
		{
			name: "unterminated string",
			args: `(setup = "prepare)`,
			want: "unterminated string literal",
		},
		{
			name: "trailing comma",
			args: "(setup = prepare,)",
			want: "expected attribute after ','",
		},
		{
			name: "missing closing paren",
			args: "(setup = prepare",
			want: "missing ')'",
		},
		{
			name: "text instead of configuration",
			args: " no_setup",
			want: "expected parenthesized configuration",
		},
		{
			name: "trailing text after configuration",
			args: "(no_setup) junk",
			want: "unexpected text after configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAt(t, tt.args)
			if err == nil {
				t.Fatalf("expected error containing %q, got none", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParse_ErrorCarriesPosition(t *testing.T) {
	pos := token.Position{Filename: "demo_test.go", Line: 42, Column: 1}
	_, err := Parse("(bogus)", pos)
	if err == nil {
		t.Fatal("expected error for unsupported attribute")
	}

	var diag *domain.Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("expected *domain.Diagnostic, got %T", err)
	}
	if diag.File != "demo_test.go" {
		t.Errorf("expected file demo_test.go, got %s", diag.File)
	}
	if diag.Line != 42 {
		t.Errorf("expected line 42, got %d", diag.Line)
	}
	// Column 1 is the comment start; the key follows the marker and the
	// opening parenthesis.
	wantCol := 1 + len(Marker) + 1
	if diag.Column != wantCol {
		t.Errorf("expected column %d, got %d", wantCol, diag.Column)
	}
}

func TestScan(t *testing.T) {
	group := func(lines ...string) *ast.CommentGroup {
		g := &ast.CommentGroup{}
		for _, l := range lines {
			g.List = append(g.List, &ast.Comment{Text: l})
		}
		return g
	}

	t.Run("nil group", func(t *testing.T) {
		_, ok, stray := Scan(nil)
		if ok || stray != nil {
			t.Errorf("expected nothing from nil group, got ok=%v stray=%v", ok, stray)
		}
	})

	t.Run("marker among auxiliary lines", func(t *testing.T) {
		line, ok, stray := Scan(group("// sample exercises the parser.", "//testx:case(no_setup)", "//go:noinline"))
		if !ok {
			t.Fatal("expected marker to be found")
		}
		if line.Args != "(no_setup)" {
			t.Errorf("expected args (no_setup), got %q", line.Args)
		}
		if len(stray) != 0 {
			t.Errorf("expected no stray directives, got %d", len(stray))
		}
	})

	t.Run("bare marker", func(t *testing.T) {
		line, ok, _ := Scan(group("//testx:case"))
		if !ok {
			t.Fatal("expected marker to be found")
		}
		if line.Args != "" {
			t.Errorf("expected empty args, got %q", line.Args)
		}
	})

	t.Run("unknown directive name", func(t *testing.T) {
		_, ok, stray := Scan(group("//testx:csae"))
		if ok {
			t.Error("expected no marker")
		}
		if len(stray) != 1 {
			t.Fatalf("expected 1 stray directive, got %d", len(stray))
		}
	})

	t.Run("longer directive name is not the marker", func(t *testing.T) {
		_, ok, stray := Scan(group("//testx:cases"))
		if ok {
			t.Error("expected no marker")
		}
		if len(stray) != 1 {
			t.Fatalf("expected 1 stray directive, got %d", len(stray))
		}
	})

	t.Run("duplicate marker is stray", func(t *testing.T) {
		line, ok, stray := Scan(group("//testx:case(no_setup)", "//testx:case"))
		if !ok {
			t.Fatal("expected first marker to be found")
		}
		if line.Args != "(no_setup)" {
			t.Errorf("expected first marker to win, got args %q", line.Args)
		}
		if len(stray) != 1 {
			t.Fatalf("expected duplicate marker to be stray, got %d", len(stray))
		}
	})

	t.Run("unrelated comments", func(t *testing.T) {
		_, ok, stray := Scan(group("// plain doc", "//go:noinline"))
		if ok || len(stray) != 0 {
			t.Errorf("expected nothing, got ok=%v stray=%d", ok, len(stray))
		}
	})
}

func TestPresent(t *testing.T) {
	if !Present([]byte("package x\n\n//testx:case\nfunc f() {}\n")) {
		t.Error("expected directive to be detected")
	}
	if Present([]byte("package x\n\nfunc f() {}\n")) {
		t.Error("expected no directive")
	}
}
