package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquoteString takes a Javascript string literal, including the surrounding
// quote characters, and returns the string value it represents.
func unquoteString(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("malformed string literal: %s", s)
	}
	var quote = s[0]
	if (quote != '\'' && quote != '"') || s[len(s)-1] != quote {
		return "", fmt.Errorf("malformed string literal: %s", s)
	}
	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var result = make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		var r, size = utf8.DecodeRuneInString(s[i:])
		if r != '\\' {
			result = append(result, s[i:i+size]...)
			i += size
			continue
		}
		i++
		if i == len(s) {
			return "", fmt.Errorf("truncated escape sequence in: %s", s)
		}
		switch s[i] {
		case 'n':
			result = append(result, '\n')
			i++
		case 'r':
			result = append(result, '\r')
			i++
		case 't':
			result = append(result, '\t')
			i++
		case 'b':
			result = append(result, '\b')
			i++
		case 'f':
			result = append(result, '\f')
			i++
		case 'v':
			result = append(result, '\v')
			i++
		case '0':
			result = append(result, 0)
			i++
		case '\\', '\'', '"', '/':
			result = append(result, s[i])
			i++
		case 'x':
			if i+3 > len(s) {
				return "", fmt.Errorf("truncated \\x escape in: %s", s)
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape in: %s", s)
			}
			// \xHH names a code point, not a byte
			result = append(result, string(rune(n))...)
			i += 3
		case 'u':
			if i+5 > len(s) {
				return "", fmt.Errorf("truncated \\u escape in: %s", s)
			}
			n, err := strconv.ParseUint(s[i+1:i+5], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid \\u escape in: %s", s)
			}
			result = append(result, string(rune(n))...)
			i += 5
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c in: %s", s[i], s)
		}
	}
	return string(result), nil
}
