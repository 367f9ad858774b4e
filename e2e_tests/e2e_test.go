package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drac/pkg/compiler"
	"drac/pkg/report"
)

const expectPrefix = "-- expect: "

// loadProgram reads a sample program and the outcome declared on its first
// line: "OK" or the exact fault message.
func loadProgram(t *testing.T, path string) (src, expect string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read source: %v", err)
	}
	src = string(data)
	first, _, _ := strings.Cut(src, "\n")
	if !strings.HasPrefix(first, expectPrefix) {
		t.Fatalf("%s: first line must start with %q", path, expectPrefix)
	}
	return src, strings.TrimSpace(strings.TrimPrefix(first, expectPrefix))
}

func samplePrograms(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "*.drac"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no sample programs found")
	}
	return paths
}

func TestSamplePrograms(t *testing.T) {
	for _, path := range samplePrograms(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, expect := loadProgram(t, path)

			root, err := compiler.Compile(src, compiler.Options{})
			if expect == "OK" {
				if err != nil {
					t.Fatalf("Compile failed: %v", err)
				}
				if root == nil || root.Kind != compiler.Program {
					t.Fatalf("unexpected root %v", root)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q, program was accepted", expect)
			}
			if err.Error() != expect {
				t.Errorf("got  %q\nwant %q", err.Error(), expect)
			}

			// every positioned fault renders with a caret line
			var buf bytes.Buffer
			if rerr := report.New(&buf, false).Diagnostic(path, src, err); rerr != nil {
				t.Fatal(rerr)
			}
			if _, _, ok := compiler.Position(err); ok && !strings.Contains(buf.String(), "^") {
				t.Errorf("diagnostic without caret:\n%s", buf.String())
			}
		})
	}
}

// Parsing a program twice yields the same tree, and the tree survives being
// rendered and lexed again from its own lexemes.
func TestSampleProgramsStable(t *testing.T) {
	for _, path := range samplePrograms(t) {
		src, _ := loadProgram(t, path)
		first, err1 := compiler.Parse(compiler.Lex(src))
		second, err2 := compiler.Parse(compiler.Lex(src))
		if (err1 == nil) != (err2 == nil) {
			t.Errorf("%s: parse outcome differs between runs", path)
			continue
		}
		if err1 != nil {
			continue
		}
		if !compiler.Equal(first, second) {
			t.Errorf("%s: trees differ between runs", path)
		}

		var lexemes []string
		for _, tok := range compiler.Lex(src) {
			lexemes = append(lexemes, tok.Lexeme)
		}
		third, err := compiler.Parse(compiler.Lex(strings.Join(lexemes, " ")))
		if err != nil {
			t.Errorf("%s: reparse of joined lexemes failed: %v", path, err)
			continue
		}
		if !compiler.Equal(first, third) {
			t.Errorf("%s: joined lexemes produce a different tree", path)
		}
	}
}
