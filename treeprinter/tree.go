// Package treeprinter renders a parsed program as an indented listing, an XML
// document or YAML. It only reads the syntax tree.
package treeprinter

import (
	"fmt"
	"strconv"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
)

// Node is one printable element. Group labels such as "condition" carry no
// position.
type Node struct {
	Kind     string  `yaml:"kind"`
	Detail   string  `yaml:"detail,omitempty"`
	Line     int     `yaml:"line,omitempty"`
	Column   int     `yaml:"column,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// HasPosition reports whether the node stands for a syntax element rather
// than a group label.
func (n *Node) HasPosition() bool {
	return n.Line > 0
}

func node(pos source.Position, kind, detail string, children ...*Node) *Node {
	return &Node{Kind: kind, Detail: detail, Line: pos.Line, Column: pos.Column, Children: children}
}

func label(kind string, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func mutability(mutable bool) string {
	if mutable {
		return "mutable"
	}

	return "immutable"
}

// Build converts a program into a printable tree rooted at a "program" node.
func Build(program *ast.Program) *Node {
	return label("program", statements(program.Statements)...)
}

func statements(list []ast.Stmt) []*Node {
	nodes := make([]*Node, 0, len(list))
	for _, s := range list {
		nodes = append(nodes, statement(s))
	}

	return nodes
}

func expressions(list []ast.Expr) []*Node {
	nodes := make([]*Node, 0, len(list))
	for _, e := range list {
		nodes = append(nodes, expression(e))
	}

	return nodes
}

func statement(s ast.Stmt) *Node {
	switch x := s.(type) {
	case *ast.Declaration:
		n := node(x.Position, "declaration", fmt.Sprintf("%s '%s' of type %s", mutability(x.Mutable), x.Name, x.Type))
		if x.Value != nil {
			n.Children = append(n.Children, label("assigned to", expression(x.Value)))
		}

		return n
	case *ast.Assignment:
		n := node(x.Position, "assignment", fmt.Sprintf("'%s'", x.Name))
		if len(x.Indices) > 0 {
			n.Children = append(n.Children, label("index", expressions(x.Indices)...))
		}

		n.Children = append(n.Children, label("value", expression(x.Value)))

		return n
	case *ast.FunctionDefinition:
		n := node(x.Position, "function definition", fmt.Sprintf("'%s' returns type %s", x.Name, x.ReturnType))

		if len(x.Params) == 0 {
			n.Children = append(n.Children, label("no params"))
		} else {
			params := label("params")
			for _, p := range x.Params {
				params.Children = append(params.Children,
					node(p.Position, "param", fmt.Sprintf("%s '%s' of type %s", mutability(p.Mutable), p.Name, p.Type)))
			}

			n.Children = append(n.Children, params)
		}

		n.Children = append(n.Children, label("body", statements(x.Body)...))

		return n
	case *ast.CallStatement:
		return node(x.Position, "function call", fmt.Sprintf("'%s'", x.Call.Name), label("arguments", expressions(x.Call.Args)...))
	case *ast.Conditional:
		return conditional(x)
	case *ast.Loop:
		return node(x.Position, "loop statement", "",
			label("condition", expression(x.Condition)),
			label("block", statements(x.Body)...))
	case *ast.Return:
		n := node(x.Position, "return statement", "")
		if x.Value != nil {
			n.Children = append(n.Children, label("returns expression", expression(x.Value)))
		}

		return n
	}

	return node(s.Pos(), "unknown statement", fmt.Sprintf("%T", s))
}

func conditional(x *ast.Conditional) *Node {
	n := node(x.Position, "conditional statement", "",
		label("condition", expression(x.Condition)),
		label("if block", statements(x.Then)...))

	if x.ElseIf != nil {
		n.Children = append(n.Children, label("else if block", conditional(x.ElseIf)))
	}

	if x.Else != nil {
		n.Children = append(n.Children, label("else block", statements(x.Else)...))
	}

	return n
}

func expression(e ast.Expr) *Node {
	switch x := e.(type) {
	case *ast.Identifier:
		return node(x.Position, "identifier", x.Name)
	case *ast.IntLiteral:
		return node(x.Position, "integer", strconv.FormatInt(x.Value, 10))
	case *ast.FloatLiteral:
		return node(x.Position, "float", strconv.FormatFloat(x.Value, 'f', -1, 64))
	case *ast.StringLiteral:
		return node(x.Position, "string", "'"+x.Value+"'")
	case *ast.BoolLiteral:
		return node(x.Position, "boolean", strconv.FormatBool(x.Value))
	case *ast.ListLiteral:
		return node(x.Position, "list", "", expressions(x.Elements)...)
	case *ast.ListLength:
		return node(x.Position, "list length", fmt.Sprintf("length of '%s'", x.Name))
	case *ast.Indexed:
		return node(x.Position, "indexed", "", expression(x.Base), label("index", expressions(x.Indices)...))
	case *ast.Call:
		return node(x.Position, "function call expression", fmt.Sprintf("'%s'", x.Name), label("arguments", expressions(x.Args)...))
	case *ast.Unary:
		return node(x.Position, "unary", x.Operator.String(), expression(x.Operand))
	case *ast.Multiplicative:
		return node(x.Position, "multiplicative", x.Operator.String(), expression(x.Left), expression(x.Right))
	case *ast.Additive:
		return node(x.Position, "additive", x.Operator.String(), expression(x.Left), expression(x.Right))
	case *ast.Relation:
		return node(x.Position, "relation", x.Operator.String(), expression(x.Left), expression(x.Right))
	case *ast.Conjunction:
		return node(x.Position, "conjunction", "and", expression(x.Left), expression(x.Right))
	case *ast.Alternative:
		return node(x.Position, "alternative", "or", expression(x.Left), expression(x.Right))
	}

	return node(e.Pos(), "unknown expression", fmt.Sprintf("%T", e))
}
