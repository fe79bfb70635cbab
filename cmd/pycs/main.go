package main

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/shibukawa/pycs"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	NoColor bool

	Stdout io.Writer
	Stdin  io.Reader
}

// loadConfig loads the configuration and applies its console settings.
func (c *Context) loadConfig() (*pycs.Config, error) {
	config, err := pycs.LoadConfig(c.Config)
	if err != nil {
		return nil, err
	}

	if c.NoColor || !config.Output.ColorEnabled() {
		color.NoColor = true
	}

	return config, nil
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"pycs.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress warnings" short:"q"`
	NoColor bool       `help:"Disable colored output"`
	Run     RunCmd     `cmd:"" help:"Run a program"`
	Tokens  TokensCmd  `cmd:"" help:"Print the tokens of a program"`
	Tree    TreeCmd    `cmd:"" help:"Print the syntax tree of a program"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := io.WriteString(ctx.Stdout, "pycs v0.1.0\n")
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pycs"),
		kong.Description("Interpreter for the pycs expression language"),
	)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		NoColor: CLI.NoColor,
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,
	}

	if appCtx.NoColor {
		color.NoColor = true
	}

	err := ctx.Run(appCtx)
	if err != nil {
		if !errors.Is(err, ErrReported) {
			color.Red("Error: %v", err)
		}

		os.Exit(1)
	}
}
