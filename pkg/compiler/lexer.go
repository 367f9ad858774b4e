package compiler

import (
	"fmt"
	"strings"
	"unicode"
)

// keywords maps reserved words to their category. Matching is case-sensitive
// and happens after a whole identifier has been scanned.
var keywords = map[string]Category{
	"var":    VAR,
	"break":  BREAK,
	"return": RETURN,
	"dec":    DEC,
	"do":     DO,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"while":  WHILE,
	"true":   TRUE,
	"false":  FALSE,
	"inc":    INC,
	"not":    NOT,
	"or":     OR,
	"and":    AND,
}

// SignedLiteralMode controls whether a '-' directly followed by digits is
// lexed as part of an integer literal.
type SignedLiteralMode int

const (
	// SignedContextual glues the minus to the digits only when the previous
	// token cannot end an operand, so "a-1" lexes as a MINUS 1.
	SignedContextual SignedLiteralMode = iota
	// SignedGreedy always glues the minus to the digits, so "a-1" lexes as
	// IDENTIFIER INT_LIT("-1").
	SignedGreedy
)

func (m SignedLiteralMode) String() string {
	switch m {
	case SignedContextual:
		return "contextual"
	case SignedGreedy:
		return "greedy"
	}
	return fmt.Sprintf("SignedLiteralMode(%d)", int(m))
}

// ParseSignedLiteralMode accepts the names printed by String.
func ParseSignedLiteralMode(s string) (SignedLiteralMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contextual":
		return SignedContextual, nil
	case "greedy":
		return SignedGreedy, nil
	}
	return 0, fmt.Errorf("unknown signed literal mode %q (want contextual or greedy)", s)
}

// LexOptions tunes the lexer. The zero value is the default behaviour.
type LexOptions struct {
	SignedLiterals SignedLiteralMode
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src       []rune
	pos       int // index of the next rune to consume
	row       int // current 1-based source line
	lineStart int // index of the first rune of the current line
	unclosed  int // no "*)" follows this index
	last      Category
	opts      LexOptions
}

func newLexer(src string, opts LexOptions) *Lexer {
	runes := []rune(src)
	return &Lexer{src: runes, row: 1, unclosed: len(runes) + 1, last: EOF, opts: opts}
}

// commentEnd returns the index of the first "*)" at or after from, or -1.
func (l *Lexer) commentEnd(from int) int {
	for i := from; i+1 < len(l.src); i++ {
		if l.src[i] == '*' && l.src[i+1] == ')' {
			return i
		}
	}
	return -1
}

// at returns the rune at offset from the current position, or 0 past the end.
func (l *Lexer) at(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) hasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if l.at(i) != r {
			return false
		}
		i++
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// unicodeEscapeAt reports whether a \u escape with exactly six hex digits
// starts at offset.
func (l *Lexer) unicodeEscapeAt(offset int) bool {
	if l.at(offset) != '\\' || l.at(offset+1) != 'u' {
		return false
	}
	for i := 2; i < 8; i++ {
		if !isHex(l.at(offset + i)) {
			return false
		}
	}
	return true
}

// emit builds a token for the n runes at the current position and consumes them.
func (l *Lexer) emit(cat Category, n int) Token {
	tok := Token{
		Category: cat,
		Lexeme:   string(l.src[l.pos : l.pos+n]),
		Row:      l.row,
		Column:   l.pos - l.lineStart + 1,
	}
	l.pos += n
	return tok
}

// skipTrivia discards one comment, newline or whitespace rune and returns its
// category, or EOF when the current position starts a significant token.
func (l *Lexer) skipTrivia() Category {
	switch {
	case l.hasPrefix("--"):
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return COMMENT

	case l.hasPrefix("(*"):
		if l.pos >= l.unclosed {
			// Unterminated: "(" and "*" are lexed as ordinary tokens.
			return EOF
		}
		end := l.commentEnd(l.pos + 2)
		if end < 0 {
			// No "*)" follows, so no later "(*" can close either.
			l.unclosed = l.pos
			return EOF
		}
		for i := l.pos + 2; i < end; i++ {
			if l.src[i] == '\n' {
				l.row++
				l.lineStart = i + 1
			}
		}
		l.pos = end + 2
		return MULTILINE_COMMENT

	case l.at(0) == '\n':
		l.pos++
		l.row++
		l.lineStart = l.pos
		return NEWLINE

	case l.pos < len(l.src) && unicode.IsSpace(l.at(0)):
		r := l.at(0)
		l.pos++
		switch r {
		case '\r':
			return CARRIAGE_RETURN
		case '\t':
			return TAB
		}
		return WHITE_SPACE
	}
	return EOF
}

// intLitLen returns the length of an integer literal at the current position,
// or 0 when there is none.
func (l *Lexer) intLitLen() int {
	n := 0
	if l.at(0) == '-' {
		if l.opts.SignedLiterals == SignedContextual && l.last.endsOperand() {
			return 0
		}
		n = 1
	}
	if !isDigit(l.at(n)) {
		return 0
	}
	for isDigit(l.at(n)) {
		n++
	}
	return n
}

// charLitLen returns the length of a character literal at the current
// position, or 0 when there is none. Alternatives are tried in order and the
// first one followed by a closing quote wins.
func (l *Lexer) charLitLen() int {
	if l.at(0) != '\'' {
		return 0
	}
	if l.at(1) == '\\' {
		switch l.at(2) {
		case 'n', 'r', 't', '\'', '\\', '"':
			if l.at(3) == '\'' {
				return 4
			}
		case 'u':
			if l.unicodeEscapeAt(1) && l.at(9) == '\'' {
				return 10
			}
		}
	}
	if r := l.at(1); r != 0 && r != '\n' && l.at(2) == '\'' {
		return 3
	}
	return 0
}

// stringLitLen returns the length of a string literal at the current position,
// or 0 when the literal is not closed on the same line. Escapes are only
// skipped here; the semantic checker validates them.
func (l *Lexer) stringLitLen() int {
	if l.at(0) != '"' {
		return 0
	}
	n := 1
	for {
		switch r := l.at(n); r {
		case 0, '\n':
			return 0
		case '"':
			return n + 1
		case '\\':
			if next := l.at(n + 1); next == 0 || next == '\n' {
				return 0
			}
			n += 2
		default:
			n++
		}
	}
}

// nextToken skips trivia and returns the next significant token.
func (l *Lexer) nextToken() Token {
	for l.pos < len(l.src) && l.skipTrivia() != EOF {
	}
	if l.pos >= len(l.src) {
		return Token{Category: EOF, Row: l.row, Column: len(l.src) - l.lineStart + 1}
	}

	switch {
	case l.at(0) == ',':
		return l.emit(COMA, 1)
	case l.hasPrefix("=="):
		return l.emit(COMPARE, 2)
	case l.hasPrefix("<>"):
		return l.emit(DIFERENT, 2)
	case l.at(0) == '/':
		return l.emit(DIV, 1)
	case l.hasPrefix("<="):
		return l.emit(LESS_E, 2)
	case l.hasPrefix(">="):
		return l.emit(MORE_E, 2)
	case l.at(0) == '<':
		return l.emit(LESS_T, 1)
	case l.at(0) == '>':
		return l.emit(MORE_T, 1)
	case l.at(0) == '[':
		return l.emit(OPEN_SQUARE_BRACKET, 1)
	case l.at(0) == ']':
		return l.emit(CLOSE_SQUARE_BRACKET, 1)
	case l.at(0) == '{':
		return l.emit(OPEN_CURLY_BRACKET, 1)
	case l.at(0) == '}':
		return l.emit(CLOSE_CURLY_BRACKET, 1)
	case l.at(0) == ';':
		return l.emit(SEMICOLON, 1)
	case l.at(0) == '=':
		return l.emit(ASSIGN, 1)
	}

	if n := l.intLitLen(); n > 0 {
		return l.emit(INT_LIT, n)
	}
	if n := l.charLitLen(); n > 0 {
		return l.emit(CHAR_LIT, n)
	}
	if n := l.stringLitLen(); n > 0 {
		return l.emit(STRING_LIT, n)
	}
	if l.unicodeEscapeAt(0) {
		return l.emit(UNICODE, 8)
	}

	switch l.at(0) {
	case '*':
		return l.emit(MULTIPLY, 1)
	case '\\':
		return l.emit(BACKSLASH, 1)
	case '(':
		return l.emit(PAR_LEFT, 1)
	case ')':
		return l.emit(PAR_RIGHT, 1)
	case '+':
		return l.emit(PLUS, 1)
	case '\'':
		return l.emit(SIMPLE, 1)
	case '"':
		return l.emit(DOUBLE, 1)
	case '%':
		return l.emit(MODULE, 1)
	case '-':
		return l.emit(MINUS, 1)
	}

	if isLetter(l.at(0)) {
		n := 1
		for r := l.at(n); isLetter(r) || isDigit(r) || r == '_'; r = l.at(n) {
			n++
		}
		tok := l.emit(IDENTIFIER, n)
		if kw, ok := keywords[tok.Lexeme]; ok {
			tok.Category = kw
		}
		return tok
	}

	return l.emit(ILLEGAL_CHAR, 1)
}

// Lex tokenises src with the default options. It never fails: runes that
// match no pattern become ILLEGAL_CHAR tokens, and the result always ends with
// exactly one EOF token.
func Lex(src string) []Token {
	return LexWith(src, LexOptions{})
}

// LexWith tokenises src with the given options.
func LexWith(src string, opts LexOptions) []Token {
	l := newLexer(src, opts)
	var tokens []Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Category == EOF {
			return tokens
		}
		l.last = tok.Category
	}
}
