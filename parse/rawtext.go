package parse

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// rawtext processes static template text for use in a TextNode:
//   - whitespace runs containing a newline are condensed to a single space
//   - HTML character entities are decoded
//   - the result is normalized to NFC
//
// Whitespace-only runs containing a newline never reach this function; the
// lexer drops them.
func rawtext(s string) string {
	var buf = make([]byte, 0, len(s))
	var spaceStart = -1
	var seenNewline = false
	for i := 0; i < len(s); {
		var r, size = utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			if spaceStart == -1 {
				spaceStart = i
			}
			if isEndOfLine(r) {
				seenNewline = true
			}
		default:
			if spaceStart != -1 {
				buf = appendSpaceRun(buf, s[spaceStart:i], seenNewline)
				spaceStart, seenNewline = -1, false
			}
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	if spaceStart != -1 {
		buf = appendSpaceRun(buf, s[spaceStart:], seenNewline)
	}
	return norm.NFC.String(html.UnescapeString(string(buf)))
}

// appendSpaceRun appends a run of whitespace, condensed to a single space if
// it contained a newline.
func appendSpaceRun(buf []byte, run string, seenNewline bool) []byte {
	if seenNewline {
		return append(buf, ' ')
	}
	return append(buf, run...)
}

// rawtextPreserve processes text inside a <pre> element, decoding entities
// but keeping all whitespace.
func rawtextPreserve(s string) string {
	return norm.NFC.String(html.UnescapeString(s))
}

// isPreserveWhitespaceTag returns true for elements whose text content must
// not be condensed.
func isPreserveWhitespaceTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "pre", "textarea":
		return true
	}
	return false
}
