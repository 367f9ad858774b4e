package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	errBadEscape    = errors.New("unknown escape sequence")
	errBadCodePoint = errors.New("code point out of range")
)

// decodeEscapes expands the escape sequences of a literal body:
// \n \r \t \' \" \\ and \uXXXXXX with exactly six hex digits.
func decodeEscapes(body string) ([]rune, error) {
	src := []rune(body)
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] != '\\' {
			out = append(out, src[i])
			continue
		}
		if i+1 >= len(src) {
			return nil, fmt.Errorf("%w: trailing backslash", errBadEscape)
		}
		i++
		switch src[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '\'', '"', '\\':
			out = append(out, src[i])
		case 'u':
			if i+6 >= len(src) {
				return nil, fmt.Errorf("%w: \\u needs six hex digits", errBadEscape)
			}
			hex := string(src[i+1 : i+7])
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: \\u%s", errBadEscape, hex)
			}
			if !utf8.ValidRune(rune(v)) {
				return nil, fmt.Errorf("%w: U+%06X", errBadCodePoint, v)
			}
			out = append(out, rune(v))
			i += 6
		default:
			return nil, fmt.Errorf("%w: \\%c", errBadEscape, src[i])
		}
	}
	return out, nil
}

// DecodeChar returns the code point denoted by a character literal lexeme,
// quotes included.
func DecodeChar(lexeme string) (rune, error) {
	if len(lexeme) < 3 || !strings.HasPrefix(lexeme, "'") || !strings.HasSuffix(lexeme, "'") {
		return 0, fmt.Errorf("malformed character literal %s", lexeme)
	}
	runes, err := decodeEscapes(lexeme[1 : len(lexeme)-1])
	if err != nil {
		return 0, err
	}
	if len(runes) != 1 {
		return 0, fmt.Errorf("character literal %s denotes %d characters", lexeme, len(runes))
	}
	return runes[0], nil
}

// DecodeString returns the text denoted by a string literal lexeme, quotes
// included.
func DecodeString(lexeme string) (string, error) {
	if len(lexeme) < 2 || !strings.HasPrefix(lexeme, `"`) || !strings.HasSuffix(lexeme, `"`) {
		return "", fmt.Errorf("malformed string literal %s", lexeme)
	}
	runes, err := decodeEscapes(lexeme[1 : len(lexeme)-1])
	if err != nil {
		return "", err
	}
	return string(runes), nil
}

// DecodeInt returns the value of an integer literal lexeme as a signed 32-bit
// integer.
func DecodeInt(lexeme string) (int32, error) {
	v, err := strconv.ParseInt(lexeme, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
