// Package testhelper holds helpers for writing program sources inline in tests.
package testhelper

import (
	"strings"
	"testing"
)

// TrimIndent strips the indentation of the first non-empty line from every
// line of a raw string literal, and drops the leading newline. Tabs left
// after stripping become four spaces so column positions stay readable.
//
//	src := TrimIndent(t, `
//		int a = 1;
//		return a;
//	`)
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(strings.TrimPrefix(src, "\n"), "\n")

	var indent string

	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			break
		}
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		rest := strings.TrimLeft(line, "\t")
		lines[i] = strings.Repeat("    ", len(line)-len(rest)) + rest
	}

	// the closing backtick usually sits on an indented line of its own
	if last := len(lines) - 1; last >= 0 && strings.TrimSpace(lines[last]) == "" {
		lines[last] = ""
	}

	return strings.Join(lines, "\n")
}
