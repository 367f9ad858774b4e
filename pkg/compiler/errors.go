package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax matches every *SyntaxError through errors.Is.
	ErrSyntax = errors.New("syntax error")
	// ErrSemantic matches every *SemanticError through errors.Is.
	ErrSemantic = errors.New("semantic error")
)

// SyntaxError is raised when the current token does not fit the grammar.
type SyntaxError struct {
	Expected []Category // one category, or the set acceptable at this point
	Found    Token
}

func (e *SyntaxError) Error() string {
	var want string
	if len(e.Expected) == 1 {
		want = e.Expected[0].String()
	} else {
		names := make([]string, len(e.Expected))
		for i, c := range e.Expected {
			names[i] = c.String()
		}
		want = "one of {" + strings.Join(names, ", ") + "}"
	}
	return fmt.Sprintf("Syntax Error: Expecting %s but found %s (%q) at row %d, column %d.",
		want, e.Found.Category, e.Found.Lexeme, e.Found.Row, e.Found.Column)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// SemanticError is raised by the checker. Token is nil only for faults that
// have no source location, such as a missing main function.
type SemanticError struct {
	Message string
	Token   *Token
}

func (e *SemanticError) Error() string {
	if e.Token == nil {
		return "Semantic Error: " + e.Message
	}
	return fmt.Sprintf("Semantic Error: %s at row %d, column %d.", e.Message, e.Token.Row, e.Token.Column)
}

func (e *SemanticError) Is(target error) bool { return target == ErrSemantic }

func semanticErrorf(tok *Token, format string, args ...any) error {
	return &SemanticError{Message: fmt.Sprintf(format, args...), Token: tok}
}

// Position extracts the source position carried by a pipeline fault.
func Position(err error) (row, column int, ok bool) {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return syn.Found.Row, syn.Found.Column, true
	}
	var sem *SemanticError
	if errors.As(err, &sem) && sem.Token != nil {
		return sem.Token.Row, sem.Token.Column, true
	}
	return 0, 0, false
}
