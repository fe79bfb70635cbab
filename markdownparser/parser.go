// Package markdownparser reads literate .pycs.md sources: markdown documents
// whose ```pycs fenced code blocks form the program.
package markdownparser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Sentinel errors
var (
	// ErrInvalidFrontMatter is returned when the YAML header cannot be parsed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	// ErrNoCode is returned when a document has no pycs code block.
	ErrNoCode = errors.New("no pycs code block")
)

// Language is the info string that marks a fenced block as program code.
const Language = "pycs"

// CodeBlock is one fenced block. Line is the 1-based line of its first code
// line in the original document.
type CodeBlock struct {
	Line int
	Code string
}

// Document is a parsed literate source.
type Document struct {
	Title       string
	Description string
	Input       []string
	Blocks      []CodeBlock
}

// Parse parses a literate source.
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")

	frontMatter, body, offset, err := parseFrontMatter(normalized)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	source := []byte(body)
	doc := md.Parser().Parse(text.NewReader(source))

	document := &Document{
		Title:       frontMatter.Title,
		Description: frontMatter.Description,
		Input:       frontMatter.Input,
	}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && document.Title == "" {
				document.Title = headingText(node, source)
			}
		case *ast.FencedCodeBlock:
			if isProgramBlock(node, source) {
				document.Blocks = append(document.Blocks, CodeBlock{
					Line: blockLine(node, source) + offset,
					Code: blockContent(node, source),
				})
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if len(document.Blocks) == 0 {
		return nil, ErrNoCode
	}

	return document, nil
}

// Code joins the program blocks into one source. Blank lines pad the gaps so
// every code line keeps its line number from the markdown document.
func (d *Document) Code() string {
	var result strings.Builder

	line := 1

	for _, block := range d.Blocks {
		for ; line < block.Line; line++ {
			result.WriteByte('\n')
		}

		result.WriteString(block.Code)
		line += strings.Count(block.Code, "\n")
	}

	return result.String()
}

func isProgramBlock(block *ast.FencedCodeBlock, source []byte) bool {
	info := strings.Fields(string(block.Language(source)))
	return len(info) > 0 && strings.EqualFold(info[0], Language)
}

func blockContent(block *ast.FencedCodeBlock, source []byte) string {
	var result strings.Builder

	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		result.Write(segment.Value(source))
	}

	return result.String()
}

// blockLine returns the line of the first code line. Empty blocks report the
// line after the opening fence.
func blockLine(block *ast.FencedCodeBlock, source []byte) int {
	if block.Lines().Len() > 0 {
		return bytes.Count(source[:block.Lines().At(0).Start], []byte("\n")) + 1
	}

	if block.Info != nil {
		return bytes.Count(source[:block.Info.Segment.Start], []byte("\n")) + 2
	}

	return 1
}

func headingText(heading *ast.Heading, source []byte) string {
	var result strings.Builder

	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			result.Write(node.Segment.Value(source))
		case *ast.String:
			result.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}
