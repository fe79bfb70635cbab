// Package parser builds an ast.Program from source text using recursive
// descent with one token of lookahead. Any syntax error aborts parsing.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/tokenizer"
)

// Parse parses a whole program read from r.
func Parse(r io.Reader, options ...tokenizer.Options) (*ast.Program, error) {
	p := &parser{tokens: tokenizer.New(r, options...)}
	return p.parseProgram()
}

// ParseString parses a whole program held in a string.
func ParseString(src string, options ...tokenizer.Options) (*ast.Program, error) {
	return Parse(strings.NewReader(src), options...)
}

type parser struct {
	tokens  *tokenizer.Tokenizer
	current tokenizer.Token
}

// next advances to the next non-comment token.
func (p *parser) next() error {
	for {
		token, err := p.tokens.Next()
		if err != nil {
			return err
		}

		if token.Type != tokenizer.COMMENT {
			p.current = token
			return nil
		}
	}
}

func (p *parser) at(tt tokenizer.TokenType) bool {
	return p.current.Type == tt
}

func (p *parser) pos() source.Position {
	return p.current.Position
}

// expect checks the current token and advances past it.
func (p *parser) expect(tt tokenizer.TokenType, what string) error {
	if !p.at(tt) {
		return fmt.Errorf("%w: expected %s but found %s at %s", ErrMissingToken, what, p.current.Type, p.pos())
	}

	return p.next()
}

func (p *parser) parseProgram() (*ast.Program, error) {
	first, err := p.tokens.Current()
	if err != nil {
		return nil, err
	}

	p.current = first
	if first.Type == tokenizer.COMMENT {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	statements, err := p.parseStatements()
	if err != nil {
		return nil, err
	}

	if !p.at(tokenizer.EOF) {
		return nil, fmt.Errorf("%w: %s cannot start a statement at %s", ErrUnexpectedToken, p.current.Type, p.pos())
	}

	return &ast.Program{Statements: statements}, nil
}

func (p *parser) parseStatements() ([]ast.Stmt, error) {
	var statements []ast.Stmt

	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		if stmt == nil {
			return statements, nil
		}

		statements = append(statements, stmt)
	}
}

// parseStatement returns nil, nil when the current token cannot start a statement.
func (p *parser) parseStatement() (ast.Stmt, error) {
	switch p.current.Type {
	case tokenizer.DEF:
		return p.parseFunctionDefinition()
	case tokenizer.MUT, tokenizer.INT, tokenizer.FLOAT, tokenizer.BOOL, tokenizer.STRING,
		tokenizer.VOID, tokenizer.LIST, tokenizer.FUNCTION:
		return p.parseDeclaration()
	case tokenizer.IDENTIFIER:
		return p.parseAssignmentOrCall()
	case tokenizer.RETURN:
		return p.parseReturn()
	case tokenizer.IF:
		return p.parseConditional()
	case tokenizer.WHILE:
		return p.parseLoop()
	}

	return nil, nil
}

// def name ( params ) [-> type] block ;
func (p *parser) parseFunctionDefinition() (ast.Stmt, error) {
	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.at(tokenizer.IDENTIFIER) {
		return nil, fmt.Errorf("%w: expected function name at %s", ErrMissingToken, p.pos())
	}

	name := p.current.Text()
	if err := p.next(); err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	returnType := ast.VoidType
	if p.at(tokenizer.ARROW) {
		if err := p.next(); err != nil {
			return nil, err
		}

		t, err := p.requireType("after '->'")
		if err != nil {
			return nil, err
		}

		returnType = t
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.SEMICOLON, "';' after function definition"); err != nil {
		return nil, err
	}

	return &ast.FunctionDefinition{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Position:   pos,
	}, nil
}

// ( [mut] type name {[,] [mut] type name} )
func (p *parser) parseParams() ([]ast.Param, error) {
	if err := p.expect(tokenizer.OPENED_PARENS, "'(' before parameters"); err != nil {
		return nil, err
	}

	var params []ast.Param

	for !p.at(tokenizer.CLOSED_PARENS) {
		pos := p.pos()

		mutable, err := p.parseMutable()
		if err != nil {
			return nil, err
		}

		t, ok, err := p.parseType()
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("%w: expected parameter type or ')' at %s", ErrMissingType, p.pos())
		}

		if !p.at(tokenizer.IDENTIFIER) {
			return nil, fmt.Errorf("%w: expected parameter name at %s", ErrMissingToken, p.pos())
		}

		params = append(params, ast.Param{Name: p.current.Text(), Type: t, Mutable: mutable, Position: pos})

		if err := p.next(); err != nil {
			return nil, err
		}

		if p.at(tokenizer.COMMA) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}

	return params, p.next()
}

// { statement }
func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expect(tokenizer.OPENED_BRACE, "'{' at the start of a block"); err != nil {
		return nil, err
	}

	statements, err := p.parseStatements()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.CLOSED_BRACE, "'}' at the end of a block"); err != nil {
		return nil, err
	}

	return statements, nil
}

func (p *parser) parseMutable() (bool, error) {
	if !p.at(tokenizer.MUT) {
		return false, nil
	}

	return true, p.next()
}

func (p *parser) requireType(where string) (ast.Type, error) {
	t, ok, err := p.parseType()
	if err != nil {
		return ast.Type{}, err
	}

	if !ok {
		return ast.Type{}, fmt.Errorf("%w: %s at %s", ErrMissingType, where, p.pos())
	}

	return t, nil
}

// parseType reports ok=false without consuming anything when no type starts here.
func (p *parser) parseType() (ast.Type, bool, error) {
	var t ast.Type

	switch p.current.Type {
	case tokenizer.INT:
		t = ast.IntType
	case tokenizer.FLOAT:
		t = ast.FloatType
	case tokenizer.BOOL:
		t = ast.BoolType
	case tokenizer.STRING:
		t = ast.StringType
	case tokenizer.VOID:
		t = ast.VoidType
	case tokenizer.LIST:
		t, err := p.parseListType()
		return t, err == nil, err
	case tokenizer.FUNCTION:
		t, err := p.parseFunctionType()
		return t, err == nil, err
	default:
		return ast.Type{}, false, nil
	}

	return t, true, p.next()
}

// list < type >
func (p *parser) parseListType() (ast.Type, error) {
	if err := p.next(); err != nil {
		return ast.Type{}, err
	}

	if err := p.expect(tokenizer.LESS_THAN, "'<' after list"); err != nil {
		return ast.Type{}, err
	}

	elem, err := p.requireType("list element type")
	if err != nil {
		return ast.Type{}, err
	}

	if err := p.expect(tokenizer.GREATER_THAN, "'>' closing list type"); err != nil {
		return ast.Type{}, err
	}

	return ast.ListOf(elem), nil
}

// function < [type {[,] type}] > -> type
func (p *parser) parseFunctionType() (ast.Type, error) {
	if err := p.next(); err != nil {
		return ast.Type{}, err
	}

	if err := p.expect(tokenizer.LESS_THAN, "'<' after function"); err != nil {
		return ast.Type{}, err
	}

	params := []ast.Type{}

	for !p.at(tokenizer.GREATER_THAN) {
		t, err := p.requireType("function parameter type or '>'")
		if err != nil {
			return ast.Type{}, err
		}

		params = append(params, t)

		if p.at(tokenizer.COMMA) {
			if err := p.next(); err != nil {
				return ast.Type{}, err
			}
		}
	}

	if err := p.next(); err != nil {
		return ast.Type{}, err
	}

	if err := p.expect(tokenizer.ARROW, "'->' in function type"); err != nil {
		return ast.Type{}, err
	}

	ret, err := p.requireType("function return type")
	if err != nil {
		return ast.Type{}, err
	}

	return ast.FunctionOf(params, ret), nil
}

// [mut] type name [= expr] ;
func (p *parser) parseDeclaration() (ast.Stmt, error) {
	pos := p.pos()

	mutable, err := p.parseMutable()
	if err != nil {
		return nil, err
	}

	t, err := p.requireType("declaration type")
	if err != nil {
		return nil, err
	}

	if !p.at(tokenizer.IDENTIFIER) {
		return nil, fmt.Errorf("%w: expected variable name at %s", ErrMissingToken, p.pos())
	}

	decl := &ast.Declaration{Name: p.current.Text(), Type: t, Mutable: mutable, Position: pos}

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.at(tokenizer.ASSIGN) {
		if err := p.next(); err != nil {
			return nil, err
		}

		decl.Value, err = p.requireExpression("after '='")
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(tokenizer.SEMICOLON, "';' after declaration"); err != nil {
		return nil, err
	}

	return decl, nil
}

// name ( args ) ;  |  name {[ expr ]} = expr ;
func (p *parser) parseAssignmentOrCall() (ast.Stmt, error) {
	pos := p.pos()
	name := p.current.Text()

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.at(tokenizer.OPENED_PARENS) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}

		if err := p.expect(tokenizer.SEMICOLON, "';' after call"); err != nil {
			return nil, err
		}

		call := &ast.Call{Name: name, Args: args, Position: pos}

		return &ast.CallStatement{Call: call, Position: pos}, nil
	}

	indices, err := p.parseIndices()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.ASSIGN, "'=' in assignment"); err != nil {
		return nil, err
	}

	value, err := p.requireExpression("on the right side of '='")
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.SEMICOLON, "';' after assignment"); err != nil {
		return nil, err
	}

	return &ast.Assignment{Name: name, Indices: indices, Value: value, Position: pos}, nil
}

// { [ expr ] }
func (p *parser) parseIndices() ([]ast.Expr, error) {
	var indices []ast.Expr

	for p.at(tokenizer.OPENED_BRACKET) {
		if err := p.next(); err != nil {
			return nil, err
		}

		index, err := p.requireExpression("as list index")
		if err != nil {
			return nil, err
		}

		if err := p.expect(tokenizer.CLOSED_BRACKET, "']' after index"); err != nil {
			return nil, err
		}

		indices = append(indices, index)
	}

	return indices, nil
}

// return [expr] ;
func (p *parser) parseReturn() (ast.Stmt, error) {
	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.SEMICOLON, "';' after return"); err != nil {
		return nil, err
	}

	return &ast.Return{Value: value, Position: pos}, nil
}

// if ( expr ) block [ else ( conditional | block ) ]
func (p *parser) parseConditional() (ast.Stmt, error) {
	return p.parseIf()
}

func (p *parser) parseIf() (*ast.Conditional, error) {
	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	condition, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	conditional := &ast.Conditional{Condition: condition, Then: then, Position: pos}

	if !p.at(tokenizer.ELSE) {
		return conditional, nil
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.at(tokenizer.IF) {
		conditional.ElseIf, err = p.parseIf()
	} else {
		conditional.Else, err = p.parseBlock()
	}

	if err != nil {
		return nil, err
	}

	return conditional, nil
}

// while ( expr ) block ;
func (p *parser) parseLoop() (ast.Stmt, error) {
	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	condition, err := p.parseCondition("while")
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.SEMICOLON, "';' after while block"); err != nil {
		return nil, err
	}

	return &ast.Loop{Condition: condition, Body: body, Position: pos}, nil
}

// ( expr )
func (p *parser) parseCondition(keyword string) (ast.Expr, error) {
	if err := p.expect(tokenizer.OPENED_PARENS, "'(' after "+keyword); err != nil {
		return nil, err
	}

	condition, err := p.requireExpression("as " + keyword + " condition")
	if err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.CLOSED_PARENS, "')' after "+keyword+" condition"); err != nil {
		return nil, err
	}

	return condition, nil
}

// ( [expr {[,] expr}] )
func (p *parser) parseArguments() ([]ast.Expr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	args := []ast.Expr{}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if arg == nil {
			break
		}

		args = append(args, arg)

		if p.at(tokenizer.COMMA) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}

	if err := p.expect(tokenizer.CLOSED_PARENS, "')' after arguments"); err != nil {
		return nil, err
	}

	return args, nil
}
