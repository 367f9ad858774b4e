// Package report renders compiler results for the terminal: token listings,
// AST dumps as an indented tree or YAML, symbol tables, and diagnostics that
// point at the offending source position.
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"drac/pkg/compiler"
)

// Reporter writes rendered output to one writer.
type Reporter struct {
	out    io.Writer
	styles Styles
}

func New(w io.Writer, color bool) *Reporter {
	return &Reporter{out: w, styles: NewStyles(w, color)}
}

// Tokens writes one token per line.
func (r *Reporter) Tokens(tokens []compiler.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(r.out, tok); err != nil {
			return err
		}
	}
	return nil
}

// Tree writes the AST in the layout of Node.Tree with the kind names and
// anchors styled.
func (r *Reporter) Tree(root *compiler.Node) error {
	var sb strings.Builder
	root.Walk(func(n *compiler.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(r.styles.Kind.Render(n.Kind.String()))
		if n.Token != nil {
			sb.WriteString(" " + r.styles.Anchor.Render(n.Token.String()))
		}
		sb.WriteByte('\n')
		return true
	})
	_, err := io.WriteString(r.out, sb.String())
	return err
}

// YAML writes the AST as a YAML document.
func (r *Reporter) YAML(root *compiler.Node) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(exportNode(root)); err != nil {
		return fmt.Errorf("encoding AST: %w", err)
	}
	return enc.Close()
}

// Symbols writes the dump of the checker's tables.
func (r *Reporter) Symbols(syms *compiler.SymbolTable) error {
	_, err := io.WriteString(r.out, syms.String())
	return err
}

// OK reports an accepted program.
func (r *Reporter) OK(name string) error {
	_, err := fmt.Fprintf(r.out, "%s: %s\n", name, r.styles.OK.Render("OK"))
	return err
}

// gutterWidth is the width of the line number column in snippets.
const gutterWidth = 4

// Diagnostic writes err with a file:row:col prefix and, when the error
// carries a position, the source line with a caret under the column.
func (r *Reporter) Diagnostic(name, src string, err error) error {
	row, col, ok := compiler.Position(err)

	prefix := ""
	switch {
	case name != "" && ok:
		prefix = fmt.Sprintf("%s:%d:%d: ", name, row, col)
	case name != "":
		prefix = name + ": "
	}

	var sb strings.Builder
	sb.WriteString(r.styles.Error.Render(prefix+err.Error()) + "\n")
	if ok {
		if line, found := sourceLine(src, row); found {
			gutter := fmt.Sprintf("%*d | ", gutterWidth, row)
			blank := strings.Repeat(" ", gutterWidth) + " | "
			sb.WriteString(r.styles.Gutter.Render(gutter) + r.styles.Source.Render(line) + "\n")
			sb.WriteString(r.styles.Gutter.Render(blank) +
				strings.Repeat(" ", max(col-1, 0)) + r.styles.Caret.Render("^") + "\n")
		}
	}
	_, werr := io.WriteString(r.out, sb.String())
	return werr
}

// sourceLine returns the 1-based row of src with tabs flattened to single
// spaces, so that rune columns line up with the caret.
func sourceLine(src string, row int) (string, bool) {
	lines := strings.Split(src, "\n")
	if row < 1 || row > len(lines) {
		return "", false
	}
	line := strings.TrimSuffix(lines[row-1], "\r")
	return strings.ReplaceAll(line, "\t", " "), true
}
