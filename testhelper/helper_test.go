package testhelper

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name: "tabs",
			src: `
		int a = 1;
		return a;
		`,
			expected: "int a = 1;\nreturn a;\n",
		},
		{
			name: "nested",
			src: `
	while (a) {
		a = false;
	};
`,
			expected: "while (a) {\n    a = false;\n};\n",
		},
		{
			name:     "single line",
			src:      "return 1;",
			expected: "return 1;",
		},
		{
			name: "leading blank line kept",
			src: `

	return 1;`,
			expected: "\nreturn 1;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimIndent(t, tt.src))
		})
	}
}
