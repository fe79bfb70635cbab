package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/pycs/parser"
	"github.com/shibukawa/pycs/treeprinter"
)

// TreeCmd represents the tree command
type TreeCmd struct {
	SourceFlags `embed:""`

	Format string `help:"Output format (text, xml, yaml); defaults to tree.format from the config"`
}

// Run executes the tree command
func (cmd *TreeCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := cmd.load()
	if err != nil {
		return err
	}

	tree, err := parser.Parse(strings.NewReader(p.Code), tokenizerOptions(ctx))
	if err != nil {
		return err
	}

	format := config.Tree.Format
	if cmd.Format != "" {
		format = strings.ToLower(cmd.Format)
	}

	return treeprinter.Write(ctx.Stdout, tree, format)
}
