package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/shibukawa/pycs/tokenizer"
)

// TokensCmd represents the tokens command
type TokensCmd struct {
	SourceFlags `embed:""`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	if _, err := ctx.loadConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, err := cmd.load()
	if err != nil {
		return err
	}

	faint := color.New(color.Faint).SprintFunc()

	for token, err := range tokenizer.NewFromString(p.Code, tokenizerOptions(ctx)).Tokens() {
		if err != nil {
			return err
		}

		line := fmt.Sprintf("%s %s", faint(token.Position), token.Type)
		if text := tokenValue(token); text != "" {
			line += " " + text
		}

		if _, err := fmt.Fprintln(ctx.Stdout, line); err != nil {
			return err
		}
	}

	return nil
}

func tokenValue(token tokenizer.Token) string {
	switch v := token.Value.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}

	return ""
}
