package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/pycs"
	"github.com/shibukawa/pycs/interpreter"
	"github.com/shibukawa/pycs/parser"
	"github.com/shibukawa/pycs/treeprinter"
)

// RunCmd represents the run command
type RunCmd struct {
	SourceFlags `embed:""`

	Tree bool `help:"Print the syntax tree before running"`
}

// Run executes the run command
func (cmd *RunCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := cmd.load()
	if err != nil {
		return err
	}

	if ctx.Verbose {
		if p.Title != "" {
			color.Blue("Running %s (%s)", p.Name, p.Title)
		} else {
			color.Blue("Running %s", p.Name)
		}
	}

	input, closeInput, err := inputReader(ctx, config, p)
	if err != nil {
		return err
	}
	defer closeInput()

	err = cmd.execute(ctx, config, p, input)
	if err != nil {
		color.Red("Error: %v", err)
		color.Red("%s", config.Output.RetryHint)

		return ErrReported
	}

	return nil
}

func (cmd *RunCmd) execute(ctx *Context, config *pycs.Config, p *program, input io.Reader) error {
	tree, err := parser.Parse(strings.NewReader(p.Code), tokenizerOptions(ctx))
	if err != nil {
		return err
	}

	if cmd.Tree {
		if err := treeprinter.Write(ctx.Stdout, tree, config.Tree.Format); err != nil {
			return err
		}
	}

	interp := interpreter.New(
		interpreter.WithOutput(ctx.Stdout),
		interpreter.WithInput(input),
		interpreter.WithMaxCallDepth(config.CallDepthLimit()),
	)

	result, err := interp.Run(tree)
	if err != nil {
		return err
	}

	if result != nil {
		_, err = fmt.Fprintln(ctx.Stdout, result.Text())
	}

	return err
}
