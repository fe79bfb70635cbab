package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/pycs"
	"github.com/shibukawa/pycs/markdownparser"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/tokenizer"
)

// SourceFlags selects the program: inline code or a file.
type SourceFlags struct {
	Code string `arg:"" optional:"" help:"Inline source code"`
	File string `short:"f" help:"Source file (.pycs or .pycs.md)" type:"path"`
}

// program is a loaded source ready to parse.
type program struct {
	Name  string
	Code  string
	Title string
	Input []string // nil unless the source provides answers for input()
}

func (s SourceFlags) load() (*program, error) {
	switch {
	case s.Code != "" && s.File != "":
		return nil, pycs.ErrAmbiguousSource
	case s.Code != "":
		return &program{Name: "<inline>", Code: s.Code}, nil
	case s.File != "":
		return loadFile(s.File)
	}

	return nil, pycs.ErrNoSource
}

func isMarkdownSource(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".pycs.md")
}

func isPlainSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pycs")
}

func loadFile(path string) (*program, error) {
	if !isMarkdownSource(path) && !isPlainSource(path) {
		return nil, fmt.Errorf("%w: %s", pycs.ErrInvalidFileType, path)
	}

	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrInputFileNotExist, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	if isMarkdownSource(path) {
		doc, err := markdownparser.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		return &program{Name: path, Code: doc.Code(), Title: doc.Title, Input: doc.Input}, nil
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &program{Name: path, Code: string(content)}, nil
}

// inputReader picks the source of input() lines: front matter answers, then
// the configured input file, then stdin. The returned closer is never nil.
func inputReader(ctx *Context, config *pycs.Config, p *program) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	if p.Input != nil {
		return strings.NewReader(strings.Join(p.Input, "\n") + "\n"), noop, nil
	}

	if config.Input.File != "" {
		file, err := os.Open(config.Input.File)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open input file: %w", err)
		}

		return file, file.Close, nil
	}

	return ctx.Stdin, noop, nil
}

func tokenizerOptions(ctx *Context) tokenizer.Options {
	return tokenizer.Options{OnWarning: warningPrinter(ctx)}
}

func warningPrinter(ctx *Context) func(pos source.Position, message string) {
	return func(pos source.Position, message string) {
		if !ctx.Quiet {
			color.Yellow("Warning: %s at %s", message, pos)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
