package parser

import (
	"fmt"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/tokenizer"
)

var relationOperators = map[tokenizer.TokenType]ast.Operator{
	tokenizer.EQUAL:         ast.OpEqual,
	tokenizer.NOT_EQUAL:     ast.OpNotEqual,
	tokenizer.GREATER_THAN:  ast.OpGreater,
	tokenizer.GREATER_EQUAL: ast.OpGreaterEqual,
	tokenizer.LESS_THAN:     ast.OpLess,
	tokenizer.LESS_EQUAL:    ast.OpLessEqual,
}

var additiveOperators = map[tokenizer.TokenType]ast.Operator{
	tokenizer.PLUS:  ast.OpPlus,
	tokenizer.MINUS: ast.OpMinus,
}

var multiplicativeOperators = map[tokenizer.TokenType]ast.Operator{
	tokenizer.MULTIPLY:   ast.OpMultiply,
	tokenizer.DIVIDE:     ast.OpDivide,
	tokenizer.BIND_FRONT: ast.OpBindFront,
	tokenizer.PIPE:       ast.OpPipe,
}

var unaryOperators = map[tokenizer.TokenType]ast.Operator{
	tokenizer.MINUS: ast.OpMinus,
	tokenizer.PLUS:  ast.OpPlus,
	tokenizer.NOT:   ast.OpNegate,
}

func (p *parser) requireExpression(where string) (ast.Expr, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if expr == nil {
		return nil, fmt.Errorf("%w: %s, found %s at %s", ErrMissingExpression, where, p.current.Type, p.pos())
	}

	return expr, nil
}

// parseExpression returns nil, nil when no expression starts at the current token.
//
//	expr = conj { "or" conj }
func (p *parser) parseExpression() (ast.Expr, error) {
	pos := p.pos()

	left, err := p.parseConjunction()
	if err != nil || left == nil {
		return left, err
	}

	for p.at(tokenizer.OR) {
		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.requireOperand(p.parseConjunction, "or")
		if err != nil {
			return nil, err
		}

		left = &ast.Alternative{Left: left, Right: right, Position: pos}
	}

	return left, nil
}

// conj = relation { "and" relation }
func (p *parser) parseConjunction() (ast.Expr, error) {
	pos := p.pos()

	left, err := p.parseRelation()
	if err != nil || left == nil {
		return left, err
	}

	for p.at(tokenizer.AND) {
		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.requireOperand(p.parseRelation, "and")
		if err != nil {
			return nil, err
		}

		left = &ast.Conjunction{Left: left, Right: right, Position: pos}
	}

	return left, nil
}

// relation = additive [ relOp additive ]
func (p *parser) parseRelation() (ast.Expr, error) {
	pos := p.pos()

	left, err := p.parseAdditive()
	if err != nil || left == nil {
		return left, err
	}

	op, ok := relationOperators[p.current.Type]
	if !ok {
		return left, nil
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	right, err := p.requireOperand(p.parseAdditive, op.String())
	if err != nil {
		return nil, err
	}

	return &ast.Relation{Operator: op, Left: left, Right: right, Position: pos}, nil
}

// additive = mult { ("+"|"-") mult }
func (p *parser) parseAdditive() (ast.Expr, error) {
	pos := p.pos()

	left, err := p.parseMultiplicative()
	if err != nil || left == nil {
		return left, err
	}

	for {
		op, ok := additiveOperators[p.current.Type]
		if !ok {
			return left, nil
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.requireOperand(p.parseMultiplicative, op.String())
		if err != nil {
			return nil, err
		}

		left = &ast.Additive{Operator: op, Left: left, Right: right, Position: pos}
	}
}

// mult = unary { ("*"|"/"|"%"|"|>") unary }
func (p *parser) parseMultiplicative() (ast.Expr, error) {
	pos := p.pos()

	left, err := p.parseUnary()
	if err != nil || left == nil {
		return left, err
	}

	for {
		op, ok := multiplicativeOperators[p.current.Type]
		if !ok {
			return left, nil
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		right, err := p.requireOperand(p.parseUnary, op.String())
		if err != nil {
			return nil, err
		}

		left = &ast.Multiplicative{Operator: op, Left: left, Right: right, Position: pos}
	}
}

// unary = [ "-"|"!"|"+" ] indexed
func (p *parser) parseUnary() (ast.Expr, error) {
	op, ok := unaryOperators[p.current.Type]
	if !ok {
		return p.parseIndexed()
	}

	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	operand, err := p.requireOperand(p.parseIndexed, op.String())
	if err != nil {
		return nil, err
	}

	return &ast.Unary{Operator: op, Operand: operand, Position: pos}, nil
}

// indexed = factor { "[" expr "]" }
func (p *parser) parseIndexed() (ast.Expr, error) {
	pos := p.pos()

	factor, err := p.parseFactor()
	if err != nil || factor == nil {
		return factor, err
	}

	indices, err := p.parseIndices()
	if err != nil {
		return nil, err
	}

	if len(indices) == 0 {
		return factor, nil
	}

	return &ast.Indexed{Base: factor, Indices: indices, Position: pos}, nil
}

func (p *parser) requireOperand(parse func() (ast.Expr, error), operator string) (ast.Expr, error) {
	expr, err := parse()
	if err != nil {
		return nil, err
	}

	if expr == nil {
		return nil, fmt.Errorf("%w: after '%s', found %s at %s", ErrMissingExpression, operator, p.current.Type, p.pos())
	}

	return expr, nil
}

// factor = identifier[args] | float | string | bool | list | "|" id "|" | int | "(" expr ")"
func (p *parser) parseFactor() (ast.Expr, error) {
	token := p.current
	pos := token.Position

	switch token.Type {
	case tokenizer.IDENTIFIER:
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.at(tokenizer.OPENED_PARENS) {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}

			return &ast.Call{Name: token.Text(), Args: args, Position: pos}, nil
		}

		return &ast.Identifier{Name: token.Text(), Position: pos}, nil
	case tokenizer.FLOAT_LITERAL:
		return &ast.FloatLiteral{Value: token.Value.(float64), Position: pos}, p.next()
	case tokenizer.STRING_LITERAL:
		return &ast.StringLiteral{Value: token.Text(), Position: pos}, p.next()
	case tokenizer.TRUE, tokenizer.FALSE:
		return &ast.BoolLiteral{Value: token.Type == tokenizer.TRUE, Position: pos}, p.next()
	case tokenizer.OPENED_BRACKET:
		return p.parseListLiteral()
	case tokenizer.LIST_LENGTH:
		return p.parseListLength()
	case tokenizer.INT_LITERAL:
		return &ast.IntLiteral{Value: token.Value.(int64), Position: pos}, p.next()
	case tokenizer.OPENED_PARENS:
		if err := p.next(); err != nil {
			return nil, err
		}

		expr, err := p.requireExpression("inside parentheses")
		if err != nil {
			return nil, err
		}

		if err := p.expect(tokenizer.CLOSED_PARENS, "')' closing nested expression"); err != nil {
			return nil, err
		}

		return expr, nil
	}

	return nil, nil
}

// [ expr {, expr} ]
func (p *parser) parseListLiteral() (ast.Expr, error) {
	list := &ast.ListLiteral{Elements: []ast.Expr{}, Position: p.pos()}

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.at(tokenizer.CLOSED_BRACKET) {
		return list, p.next()
	}

	for {
		element, err := p.requireExpression("as list element")
		if err != nil {
			return nil, err
		}

		list.Elements = append(list.Elements, element)

		if p.at(tokenizer.CLOSED_BRACKET) {
			return list, p.next()
		}

		if err := p.expect(tokenizer.COMMA, "',' or ']' in list"); err != nil {
			return nil, err
		}
	}
}

// | name |
func (p *parser) parseListLength() (ast.Expr, error) {
	pos := p.pos()

	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.at(tokenizer.IDENTIFIER) {
		return nil, fmt.Errorf("%w: expected list name after '|' at %s", ErrMissingToken, p.pos())
	}

	name := p.current.Text()

	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.expect(tokenizer.LIST_LENGTH, "'|' closing list length"); err != nil {
		return nil, err
	}

	return &ast.ListLength{Name: name, Position: pos}, nil
}
