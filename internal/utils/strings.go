package utils

import (
	"strings"
)

// SplitList splits a comma/semicolon/newline separated value into trimmed,
// non-empty entries.
func SplitList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Dash returns "-" for blank values, the placeholder used in documents.
func Dash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}
