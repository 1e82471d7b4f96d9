package ssr

import (
	"sort"
	"strings"
	"unicode"

	"github.com/vuet/vuet/data"
)

// normalizeClass renders a class binding value: strings pass through, lists
// concatenate, and object keys are included when their value is truthy.
// Object keys are emitted in sorted order, since data.Map does not preserve
// insertion order.
func normalizeClass(value data.Value) string {
	switch value := value.(type) {
	case data.String:
		return strings.TrimSpace(string(value))
	case data.List:
		var parts []string
		for _, item := range value {
			if c := normalizeClass(item); c != "" {
				parts = append(parts, c)
			}
		}
		return strings.Join(parts, " ")
	case data.Map:
		var parts []string
		for k, v := range value {
			if v.Truthy() {
				parts = append(parts, k)
			}
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	case data.Undefined, data.Null, data.Bool:
		return ""
	default:
		return value.String()
	}
}

// normalizeStyle renders a style binding value to inline CSS.  Object keys
// are hyphenated from camelCase and emitted in sorted order.
func normalizeStyle(value data.Value) string {
	switch value := value.(type) {
	case data.String:
		return canonStyle(string(value))
	case data.List:
		var b strings.Builder
		for _, item := range value {
			b.WriteString(normalizeStyle(item))
		}
		return b.String()
	case data.Map:
		var keys = make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			switch value[k].(type) {
			case data.Undefined, data.Null:
				continue
			}
			b.WriteString(hyphenate(k) + ":" + value[k].String() + ";")
		}
		return b.String()
	default:
		return ""
	}
}

// canonStyle trims an inline style string and guarantees it ends with a
// semicolon, so that further declarations can be appended.
func canonStyle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	return s
}

// hyphenate converts a camelCase property name to kebab-case.
func hyphenate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
