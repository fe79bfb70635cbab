package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestExamples runs every program under examples/ and compares its output
// with the .out file next to it.
func TestExamples(t *testing.T) {
	sources, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.pycs*"))
	assert.NoError(t, err)
	assert.NotZero(t, len(sources))

	for _, path := range sources {
		name := strings.TrimSuffix(strings.TrimSuffix(path, ".md"), ".pycs")

		t.Run(filepath.Base(name), func(t *testing.T) {
			expected, err := os.ReadFile(name + ".out")
			assert.NoError(t, err)

			ctx, stdout, console := newTestContext(t, "")

			cmd := &RunCmd{SourceFlags: SourceFlags{File: path}}
			assert.NoError(t, cmd.Run(ctx), console.String())
			assert.Equal(t, string(expected), stdout.String())
		})
	}
}
