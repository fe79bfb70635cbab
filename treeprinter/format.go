package treeprinter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shibukawa/pycs/ast"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown tree format")

// Output formats
const (
	FormatText = "text"
	FormatXML  = "xml"
	FormatYAML = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatText, FormatXML, FormatYAML}

// Write renders program in the named format.
func Write(w io.Writer, program *ast.Program, format string) error {
	switch format {
	case FormatText, "":
		return Text(w, program)
	case FormatXML:
		return XML(w, program)
	case FormatYAML:
		return YAML(w, program)
	}

	return fmt.Errorf("%w: %s (expected one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

// Text writes one line per node, indented two spaces per level:
//
//	[1:1]: Declaration: immutable 'x' of type int
//	  Assigned To:
//	    [1:9]: Integer: 1
func Text(w io.Writer, program *ast.Program) error {
	caser := cases.Title(language.English)
	root := Build(program)

	if _, err := fmt.Fprintln(w, caser.String(root.Kind)); err != nil {
		return err
	}

	for _, child := range root.Children {
		if err := writeText(w, caser, child, 1); err != nil {
			return err
		}
	}

	return nil
}

func writeText(w io.Writer, caser cases.Caser, n *Node, depth int) error {
	var line strings.Builder

	line.WriteString(strings.Repeat("  ", depth))

	if n.HasPosition() {
		fmt.Fprintf(&line, "[%d:%d]: ", n.Line, n.Column)
	}

	line.WriteString(caser.String(n.Kind))

	switch {
	case n.Detail != "":
		line.WriteString(": " + n.Detail)
	case !n.HasPosition():
		line.WriteString(":")
	}

	if _, err := fmt.Fprintln(w, line.String()); err != nil {
		return err
	}

	for _, child := range n.Children {
		if err := writeText(w, caser, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// XML writes the tree as an XML document. Kinds become kebab-case tags.
func XML(w io.Writer, program *ast.Program) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := Build(program)
	elem := doc.CreateElement(tagName(root.Kind))

	for _, child := range root.Children {
		appendXML(elem, child)
	}

	doc.Indent(2)

	_, err := doc.WriteTo(w)

	return err
}

func appendXML(parent *etree.Element, n *Node) {
	elem := parent.CreateElement(tagName(n.Kind))

	if n.HasPosition() {
		elem.CreateAttr("line", strconv.Itoa(n.Line))
		elem.CreateAttr("column", strconv.Itoa(n.Column))
	}

	if n.Detail != "" {
		elem.CreateAttr("detail", n.Detail)
	}

	for _, child := range n.Children {
		appendXML(elem, child)
	}
}

func tagName(kind string) string {
	return strings.ReplaceAll(kind, " ", "-")
}

// YAML writes the tree as a YAML mapping rooted at the program node.
func YAML(w io.Writer, program *ast.Program) error {
	data, err := yaml.Marshal(Build(program))
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	_, err = w.Write(data)

	return err
}
