package rewrite

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"testx/internal/domain"
)

// TestFile_Golden exercises the rewrite end to end against archived
// fixtures. Each archive holds an input.go plus the expected rewritten
// file, the expected diagnostics, or both when good and broken
// declarations share a file.
func TestFile_Golden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden archives found")
	}

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			files := make(map[string][]byte)
			for _, f := range ar.Files {
				files[f.Name] = f.Data
			}
			input, ok := files["input.go"]
			if !ok {
				t.Fatal("archive has no input.go")
			}

			src, err := ParseBytes("input.go", input)
			if err != nil {
				t.Fatalf("failed to parse input: %v", err)
			}
			out, err := File(src)
			if err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}

			expectedCode, hasCode := files["expected.go"]
			expectedDiags := strings.TrimSpace(string(files["diagnostics"]))
			if !hasCode && expectedDiags == "" {
				t.Fatal("archive has neither expected.go nor diagnostics")
			}

			if expectedDiags == "" && out.Failed() {
				t.Fatalf("unexpected diagnostics: %v", out.Diagnostics)
			}
			var got []string
			for i := range out.Diagnostics {
				got = append(got, out.Diagnostics[i].Error())
			}
			if diff := cmp.Diff(expectedDiags, strings.Join(got, "\n")); diff != "" {
				t.Errorf("diagnostics mismatch (-expected +got):\n%s", diff)
			}

			if hasCode {
				if !out.Changed {
					t.Fatal("expected the file to change")
				}
				if diff := cmp.Diff(string(expectedCode), string(out.Code)); diff != "" {
					t.Errorf("rewritten code mismatch (-expected +got):\n%s", diff)
				}
				return
			}
			if out.Changed {
				t.Error("expected the file to stay unchanged")
			}
			if !bytes.Equal(out.Code, input) {
				t.Error("diagnostics must leave the source untouched")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	const src = `package demo

func setup() int { return 4711 }

func prepare() int { return 1 }

//testx:case
func Alpha(sr int) {}

//testx:case(setup = prepare)
func beta(sr int) {}

//testx:case(no_setup)
func Gamma() {}

func plain() {}
`
	s, err := ParseBytes("demo.go", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out := Inspect(s)
	if out.Failed() {
		t.Fatalf("unexpected diagnostics: %v", out.Diagnostics)
	}

	expected := []domain.TestCase{
		{Name: "Alpha", File: "demo.go", Line: 8, HasArg: true, Setup: domain.UseDefault()},
		{Name: "beta", File: "demo.go", Line: 11, HasArg: true, Setup: domain.UsePath("prepare")},
		{Name: "Gamma", File: "demo.go", Line: 14, HasArg: false, Setup: domain.NoSetup()},
	}
	if diff := cmp.Diff(expected, out.Cases); diff != "" {
		t.Errorf("case mismatch (-expected +got):\n%s", diff)
	}
}

func TestFile_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "generic function",
			src:  "package demo\n\n//testx:case\nfunc Sample[T any]() {}\n",
			want: "test cases cannot be generic",
		},
		{
			name: "missing body",
			src:  "package demo\n\n//testx:case\nfunc Sample()\n",
			want: "missing function body",
		},
		{
			name: "duplicate marker",
			src:  "package demo\n\n//testx:case\n//testx:case(no_setup)\nfunc Sample() {}\n",
			want: "duplicate testx:case directive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseBytes("demo.go", []byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			out, err := File(src)
			if err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}
			if !out.Failed() {
				t.Fatalf("expected a diagnostic containing %q", tt.want)
			}
			if out.Changed {
				t.Error("expected the file to stay unchanged")
			}
			found := false
			for _, d := range out.Diagnostics {
				if strings.Contains(d.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a diagnostic containing %q, got %v", tt.want, out.Diagnostics)
			}
		})
	}
}

func TestFile_NoDirectives(t *testing.T) {
	const src = "package demo\n\nfunc plain() {}\n"
	s, err := ParseBytes("demo.go", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := File(s)
	if err != nil {
		t.Fatal(err)
	}
	if out.Changed || out.Failed() || len(out.Cases) != 0 {
		t.Errorf("expected an untouched file, got changed=%v diagnostics=%v cases=%v",
			out.Changed, out.Diagnostics, out.Cases)
	}
	if !bytes.Equal(out.Code, []byte(src)) {
		t.Error("expected the source bytes to pass through")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		in    string
		inner string
		outer string
	}{
		{"Sample", "sample_inner", "TestSample"},
		{"sample", "sample_inner", "Test_sample"},
		{"X", "x_inner", "TestX"},
		{"HTTPServer", "hTTPServer_inner", "TestHTTPServer"},
		{"_private", "_private_inner", "Test__private"},
	}

	for _, tt := range tests {
		if got := innerName(tt.in); got != tt.inner {
			t.Errorf("innerName(%q): expected %q, got %q", tt.in, tt.inner, got)
		}
		if got := outerName(tt.in); got != tt.outer {
			t.Errorf("outerName(%q): expected %q, got %q", tt.in, tt.outer, got)
		}
	}
}
