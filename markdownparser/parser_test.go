package markdownparser

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const fence = "```"

func TestParseBasic(t *testing.T) {
	input := `---
title: "Countdown"
description: "Counts down from a number"
input:
  - "5"
  - "done"
---

# Ignored Heading

Reads a number.

` + fence + `pycs
mut int n = 5;
` + fence + `

Some prose between blocks.

` + fence + `python
print("not pycs")
` + fence + `

` + fence + `pycs
while (n > 0) { n = n - 1; };
return n;
` + fence + `
`

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, "Countdown", doc.Title)
	assert.Equal(t, "Counts down from a number", doc.Description)
	assert.Equal(t, []string{"5", "done"}, doc.Input)
	assert.Equal(t, []CodeBlock{
		{Line: 14, Code: "mut int n = 5;\n"},
		{Line: 24, Code: "while (n > 0) { n = n - 1; };\nreturn n;\n"},
	}, doc.Blocks)
}

func TestCodeKeepsLineNumbers(t *testing.T) {
	input := "# Title\n\n" + fence + "pycs\nint a = 1;\n" + fence + "\n\ntext\n\n" + fence + "pycs\nreturn a;\n" + fence + "\n"

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	code := doc.Code()
	lines := strings.Split(code, "\n")

	assert.Equal(t, "int a = 1;", lines[3])
	assert.Equal(t, "return a;", lines[9])
	assert.Equal(t, "", lines[0])
}

func TestTitleFromHeading(t *testing.T) {
	input := "# Hello *World*\n\n" + fence + "pycs\nreturn 1;\n" + fence + "\n"

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, "Hello World", doc.Title)
	assert.Zero(t, doc.Input)
}

func TestLanguageMatching(t *testing.T) {
	tests := []struct {
		name  string
		info  string
		found bool
	}{
		{name: "lower", info: "pycs", found: true},
		{name: "upper", info: "PYCS", found: true},
		{name: "with attributes", info: "pycs title=main", found: true},
		{name: "other language", info: "go", found: false},
		{name: "prefix only", info: "pycsx", found: false},
		{name: "no info", info: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fence + tt.info + "\nreturn 1;\n" + fence + "\n"

			doc, err := Parse(strings.NewReader(input))
			if tt.found {
				assert.NoError(t, err)
				assert.Equal(t, 1, len(doc.Blocks))
			} else {
				assert.IsError(t, err, ErrNoCode)
			}
		})
	}
}

func TestCRLF(t *testing.T) {
	input := "---\r\ntitle: t\r\n---\r\n" + fence + "pycs\r\nreturn 1;\r\n" + fence + "\r\n"

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, "t", doc.Title)
	assert.Equal(t, []CodeBlock{{Line: 5, Code: "return 1;\n"}}, doc.Blocks)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{
			name:  "unterminated front matter",
			input: "---\ntitle: x\n" + fence + "pycs\nreturn 1;\n" + fence + "\n",
			err:   ErrInvalidFrontMatter,
		},
		{
			name:  "bad yaml",
			input: "---\ninput: [unclosed\n---\n" + fence + "pycs\nreturn 1;\n" + fence + "\n",
			err:   ErrInvalidFrontMatter,
		},
		{
			name:  "no code",
			input: "# Only prose\n\nNothing to run.\n",
			err:   ErrNoCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.IsError(t, err, tt.err)
		})
	}
}

func TestParseFrontMatterOffset(t *testing.T) {
	fm, body, lines, err := parseFrontMatter("---\ntitle: a\n---\nbody\n")
	assert.NoError(t, err)
	assert.Equal(t, "a", fm.Title)
	assert.Equal(t, "body\n", body)
	assert.Equal(t, 3, lines)

	fm, body, lines, err = parseFrontMatter("no header\n")
	assert.NoError(t, err)
	assert.Zero(t, fm)
	assert.Equal(t, "no header\n", body)
	assert.Equal(t, 0, lines)
}
