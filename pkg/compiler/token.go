package compiler

import "fmt"

// Category identifies the lexical class of a token.
type Category int

const (
	EOF Category = iota // sentinel: end of input

	// Discarded by the lexer; never handed to the parser.
	COMMENT           // -- to end of line
	MULTILINE_COMMENT // (* ... *)
	NEWLINE           // \n
	WHITE_SPACE       // space, tab, form feed ...
	CARRIAGE_RETURN   // \r
	TAB               // \t

	// Keywords
	VAR    // "var"
	BREAK  // "break"
	RETURN // "return"
	DEC    // "dec"
	DO     // "do"
	IF     // "if"
	ELIF   // "elif"
	ELSE   // "else"
	WHILE  // "while"
	FALSE  // "false"
	TRUE   // "true"
	INC    // "inc"
	NOT    // "not"
	OR     // "or"
	AND    // "and"

	// Comparison
	COMPARE  // ==
	DIFERENT // <>
	LESS_E   // <=
	MORE_E   // >=
	MORE_T   // >
	LESS_T   // <

	// Paired delimiters
	OPEN_SQUARE_BRACKET  // [
	CLOSE_SQUARE_BRACKET // ]
	OPEN_CURLY_BRACKET   // {
	CLOSE_CURLY_BRACKET  // }
	PAR_LEFT             // (
	PAR_RIGHT            // )

	// Punctuation
	COMA      // ,
	SEMICOLON // ;
	ASSIGN    // =

	// Arithmetic
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIV      // /
	MODULE   // %

	// Literals
	INT_LIT    // -?[0-9]+
	CHAR_LIT   // 'c'
	STRING_LIT // "..."
	IDENTIFIER // [a-zA-Z][a-zA-Z0-9_]*

	// Stray pieces of literals; the grammar never accepts them.
	SIMPLE    // a lone '
	DOUBLE    // a lone "
	BACKSLASH // a lone \
	UNICODE   // \uXXXXXX outside a literal

	ILLEGAL_CHAR // any rune no pattern matched
)

var categoryNames = [...]string{
	EOF:                  "EOF",
	COMMENT:              "COMMENT",
	MULTILINE_COMMENT:    "MULTILINE_COMMENT",
	NEWLINE:              "NEWLINE",
	WHITE_SPACE:          "WHITE_SPACE",
	CARRIAGE_RETURN:      "CARRIAGE_RETURN",
	TAB:                  "TAB",
	VAR:                  "VAR",
	BREAK:                "BREAK",
	RETURN:               "RETURN",
	DEC:                  "DEC",
	DO:                   "DO",
	IF:                   "IF",
	ELIF:                 "ELIF",
	ELSE:                 "ELSE",
	WHILE:                "WHILE",
	FALSE:                "FALSE",
	TRUE:                 "TRUE",
	INC:                  "INC",
	NOT:                  "NOT",
	OR:                   "OR",
	AND:                  "AND",
	COMPARE:              "COMPARE",
	DIFERENT:             "DIFERENT",
	LESS_E:               "LESS_E",
	MORE_E:               "MORE_E",
	MORE_T:               "MORE_T",
	LESS_T:               "LESS_T",
	OPEN_SQUARE_BRACKET:  "OPEN_SQUARE_BRACKET",
	CLOSE_SQUARE_BRACKET: "CLOSE_SQUARE_BRACKET",
	OPEN_CURLY_BRACKET:   "OPEN_CURLY_BRACKET",
	CLOSE_CURLY_BRACKET:  "CLOSE_CURLY_BRACKET",
	PAR_LEFT:             "PAR_LEFT",
	PAR_RIGHT:            "PAR_RIGHT",
	COMA:                 "COMA",
	SEMICOLON:            "SEMICOLON",
	ASSIGN:               "ASSIGN",
	PLUS:                 "PLUS",
	MINUS:                "MINUS",
	MULTIPLY:             "MULTIPLY",
	DIV:                  "DIV",
	MODULE:               "MODULE",
	INT_LIT:              "INT_LIT",
	CHAR_LIT:             "CHAR_LIT",
	STRING_LIT:           "STRING_LIT",
	IDENTIFIER:           "IDENTIFIER",
	SIMPLE:               "SIMPLE",
	DOUBLE:               "DOUBLE",
	BACKSLASH:            "BACKSLASH",
	UNICODE:              "UNICODE",
	ILLEGAL_CHAR:         "ILLEGAL_CHAR",
}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Token is a single lexical unit produced by the Lexer. Tokens are values;
// nodes that anchor one keep their own copy.
type Token struct {
	Category Category
	Lexeme   string // the exact source text that was matched; empty for EOF
	Row      int    // 1-based source line
	Column   int    // 1-based rune offset within the line
}

func (t Token) String() string {
	return fmt.Sprintf("{%s, \"%s\", @(%d, %d)}", t.Category, t.Lexeme, t.Row, t.Column)
}

// endsOperand reports whether a token of this category can be the last token
// of an operand, i.e. whether a following '-' must be a binary minus.
func (c Category) endsOperand() bool {
	switch c {
	case IDENTIFIER, INT_LIT, CHAR_LIT, STRING_LIT, TRUE, FALSE, PAR_RIGHT, CLOSE_SQUARE_BRACKET:
		return true
	}
	return false
}
