package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/pycs"
)

// newTestContext returns a context writing to buffers, and the buffer that
// receives colored console output.
func newTestContext(t *testing.T, stdin string) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	noColor, output := color.NoColor, color.Output
	t.Cleanup(func() {
		color.NoColor = noColor
		color.Output = output
	})

	console := &bytes.Buffer{}
	color.NoColor = true
	color.Output = console

	stdout := &bytes.Buffer{}

	return &Context{
		Config: filepath.Join(t.TempDir(), "pycs.yaml"),
		Stdout: stdout,
		Stdin:  strings.NewReader(stdin),
	}, stdout, console
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRunCmd(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		stdin    string
		expected string
	}{
		{name: "result", code: "return 1 + 2;", expected: "3\n"},
		{name: "print", code: "print('hi');", expected: "hi\n"},
		{name: "no result", code: "int a = 1;", expected: ""},
		{name: "input", code: "return input('name?');", stdin: "pycs\n", expected: "name?\npycs\n"},
		{name: "list result", code: "return [1, 2];", expected: "[1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := newTestContext(t, tt.stdin)

			cmd := &RunCmd{SourceFlags: SourceFlags{Code: tt.code}}
			assert.NoError(t, cmd.Run(ctx))
			assert.Equal(t, tt.expected, stdout.String())
		})
	}
}

func TestRunCmdReportsErrors(t *testing.T) {
	ctx, _, console := newTestContext(t, "")

	cmd := &RunCmd{SourceFlags: SourceFlags{Code: "return 1 / 0;"}}
	err := cmd.Run(ctx)
	assert.IsError(t, err, ErrReported)

	assert.Contains(t, console.String(), "Error: ")
	assert.Contains(t, console.String(), "division by zero")
	assert.Contains(t, console.String(), pycs.DefaultRetryHint)
}

func TestRunCmdPrintsTree(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")

	cmd := &RunCmd{SourceFlags: SourceFlags{Code: "return 7;"}, Tree: true}
	assert.NoError(t, cmd.Run(ctx))

	expected := "Program\n" +
		"  [1:1]: Return Statement\n" +
		"    Returns Expression:\n" +
		"      [1:8]: Integer: 7\n" +
		"7\n"
	assert.Equal(t, expected, stdout.String())
}

func TestRunCmdWarnings(t *testing.T) {
	t.Run("printed", func(t *testing.T) {
		ctx, _, console := newTestContext(t, "")

		cmd := &RunCmd{SourceFlags: SourceFlags{Code: "return 1; @"}}
		assert.IsError(t, cmd.Run(ctx), ErrReported)
		assert.Contains(t, console.String(), `Warning: Bad token "@" at [1:11]`)
	})

	t.Run("quiet", func(t *testing.T) {
		ctx, _, console := newTestContext(t, "")
		ctx.Quiet = true

		cmd := &RunCmd{SourceFlags: SourceFlags{Code: "return 1; @"}}
		assert.IsError(t, cmd.Run(ctx), ErrReported)
		assert.NotContains(t, console.String(), "Warning")
	})
}

func TestRunCmdFiles(t *testing.T) {
	markdown := "---\ntitle: Greeting\ninput:\n  - Ada\n---\n\n# Greeting\n\n" +
		"```pycs\nstring name = input('who?');\n```\n\nThen:\n\n" +
		"```pycs\nprint('hello ' + name);\n```\n"

	tests := []struct {
		name     string
		file     string
		content  string
		expected string
	}{
		{name: "plain", file: "main.pycs", content: "return 2 * 21;\n", expected: "42\n"},
		{name: "markdown", file: "greet.pycs.md", content: markdown, expected: "who?\nhello Ada\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, _ := newTestContext(t, "")

			cmd := &RunCmd{SourceFlags: SourceFlags{File: writeFile(t, tt.file, tt.content)}}
			assert.NoError(t, cmd.Run(ctx))
			assert.Equal(t, tt.expected, stdout.String())
		})
	}
}

func TestRunCmdMarkdownErrorLine(t *testing.T) {
	ctx, _, console := newTestContext(t, "")

	content := "# Broken\n\nSome text.\n\n```pycs\nreturn x;\n```\n"
	cmd := &RunCmd{SourceFlags: SourceFlags{File: writeFile(t, "broken.pycs.md", content)}}

	assert.IsError(t, cmd.Run(ctx), ErrReported)
	assert.Contains(t, console.String(), "[6:8]")
}

func TestRunCmdInputFileFromConfig(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "ignored\n")

	answers := writeFile(t, "answers.txt", "from file\n")
	ctx.Config = writeFile(t, "pycs.yaml", "input:\n  file: "+answers+"\n")

	cmd := &RunCmd{SourceFlags: SourceFlags{Code: "return input('?');"}}
	assert.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "?\nfrom file\n", stdout.String())
}

func TestRunCmdCallDepthFromConfig(t *testing.T) {
	ctx, _, console := newTestContext(t, "")
	ctx.Config = writeFile(t, "pycs.yaml", "interpreter:\n  max_call_depth: 5\n")

	code := "def f(int n) -> int { return f(n + 1); }; return f(0);"
	cmd := &RunCmd{SourceFlags: SourceFlags{Code: code}}

	assert.IsError(t, cmd.Run(ctx), ErrReported)
	assert.Contains(t, console.String(), "call depth")
}

func TestSourceFlags(t *testing.T) {
	tests := []struct {
		name  string
		flags SourceFlags
		err   error
	}{
		{name: "none", flags: SourceFlags{}, err: pycs.ErrNoSource},
		{name: "both", flags: SourceFlags{Code: "return 1;", File: "a.pycs"}, err: pycs.ErrAmbiguousSource},
		{name: "wrong extension", flags: SourceFlags{File: "main.py"}, err: pycs.ErrInvalidFileType},
		{name: "plain markdown", flags: SourceFlags{File: "README.md"}, err: pycs.ErrInvalidFileType},
		{name: "missing file", flags: SourceFlags{File: "missing.pycs"}, err: ErrInputFileNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.load()
			assert.IsError(t, err, tt.err)
		})
	}
}

func TestTokensCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")

	cmd := &TokensCmd{SourceFlags: SourceFlags{Code: "int a = 5;"}}
	assert.NoError(t, cmd.Run(ctx))

	expected := "[1:1] INT \"int\"\n" +
		"[1:5] IDENTIFIER \"a\"\n" +
		"[1:7] ASSIGN\n" +
		"[1:9] INT_LITERAL 5\n" +
		"[1:10] SEMICOLON\n"
	assert.True(t, strings.HasPrefix(stdout.String(), expected), "got %q", stdout.String())
	assert.Contains(t, stdout.String(), "EOF")
}

func TestTreeCmd(t *testing.T) {
	tests := []struct {
		format   string
		contains string
	}{
		{format: "", contains: "[1:8]: Integer: 1"},
		{format: "XML", contains: `<integer line="1" column="8" detail="1"/>`},
		{format: "yaml", contains: "kind: integer"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx, stdout, _ := newTestContext(t, "")

			cmd := &TreeCmd{SourceFlags: SourceFlags{Code: "return 1;"}, Format: tt.format}
			assert.NoError(t, cmd.Run(ctx))
			assert.Contains(t, stdout.String(), tt.contains)
		})
	}
}

func TestCommandLineParsing(t *testing.T) {
	ctx, stdout, _ := newTestContext(t, "")

	var cli struct {
		Run  RunCmd  `cmd:""`
		Tree TreeCmd `cmd:""`
	}

	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	assert.NoError(t, err)

	kctx, err := parser.Parse([]string{"run", "--tree", "return 4;"})
	assert.NoError(t, err)
	assert.True(t, cli.Run.Tree)
	assert.Equal(t, "return 4;", cli.Run.Code)

	assert.NoError(t, kctx.Run(ctx))
	assert.True(t, strings.HasSuffix(stdout.String(), "4\n"))
}
