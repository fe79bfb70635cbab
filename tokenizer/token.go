package tokenizer

import (
	"errors"

	"github.com/shibukawa/pycs/source"
)

// Sentinel errors
var (
	ErrLengthExceeded     = errors.New("literal length limit exceeded")
	ErrNumberOutOfRange   = errors.New("numeric literal out of range")
	ErrUnterminatedString = errors.New("unterminated string literal")
)

// Lexical limits
const (
	MaxCommentLength    = 256
	MaxIdentifierLength = 64
	MaxStringLength     = 512000
	MaxIntegerDigits    = 10
	MaxFractionDigits   = 32
	MaxNumber           = 1_000_000_000
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	BAD_TOKEN
	IDENTIFIER
	INT_LITERAL    // 42
	FLOAT_LITERAL  // 4.2, .5, 5.
	STRING_LITERAL // 'text'
	COMMENT        // # comment

	// Keywords
	BOOL
	INT
	FLOAT
	STRING
	FUNCTION
	LIST
	VOID
	MUT
	TRUE
	FALSE
	RETURN
	WHILE
	IF
	ELSE
	DEF
	OR
	AND

	// Arithmetic operators
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /
	ARROW    // ->

	// Comparison and assignment
	ASSIGN        // =
	EQUAL         // ==
	NOT_EQUAL     // !=
	NOT           // !
	GREATER_THAN  // >
	GREATER_EQUAL // >=
	LESS_THAN     // <
	LESS_EQUAL    // <=

	// Function operators
	BIND_FRONT  // %
	LIST_LENGTH // |
	PIPE        // |>

	// Punctuation
	SEMICOLON      // ;
	COMMA          // ,
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	OPENED_BRACE   // {
	CLOSED_BRACE   // }
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
)

var keywords = map[string]TokenType{
	"bool":     BOOL,
	"int":      INT,
	"float":    FLOAT,
	"string":   STRING,
	"function": FUNCTION,
	"list":     LIST,
	"void":     VOID,
	"mut":      MUT,
	"true":     TRUE,
	"false":    FALSE,
	"return":   RETURN,
	"while":    WHILE,
	"if":       IF,
	"else":     ELSE,
	"def":      DEF,
	"or":       OR,
	"and":      AND,
}

// LookupKeyword returns the keyword token type for name, if any.
func LookupKeyword(name string) (TokenType, bool) {
	tt, ok := keywords[name]
	return tt, ok
}

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case BAD_TOKEN:
		return "BAD_TOKEN"
	case IDENTIFIER:
		return "IDENTIFIER"
	case INT_LITERAL:
		return "INT_LITERAL"
	case FLOAT_LITERAL:
		return "FLOAT_LITERAL"
	case STRING_LITERAL:
		return "STRING_LITERAL"
	case COMMENT:
		return "COMMENT"
	case BOOL:
		return "BOOL"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case FUNCTION:
		return "FUNCTION"
	case LIST:
		return "LIST"
	case VOID:
		return "VOID"
	case MUT:
		return "MUT"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case RETURN:
		return "RETURN"
	case WHILE:
		return "WHILE"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case DEF:
		return "DEF"
	case OR:
		return "OR"
	case AND:
		return "AND"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case ARROW:
		return "ARROW"
	case ASSIGN:
		return "ASSIGN"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case NOT:
		return "NOT"
	case GREATER_THAN:
		return "GREATER_THAN"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case BIND_FRONT:
		return "BIND_FRONT"
	case LIST_LENGTH:
		return "LIST_LENGTH"
	case PIPE:
		return "PIPE"
	case SEMICOLON:
		return "SEMICOLON"
	case COMMA:
		return "COMMA"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case OPENED_BRACE:
		return "OPENED_BRACE"
	case CLOSED_BRACE:
		return "CLOSED_BRACE"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	default:
		return "UNKNOWN"
	}
}

// Token represents a token.
// Value holds int64 for INT_LITERAL, float64 for FLOAT_LITERAL, bool for
// TRUE/FALSE and string for identifiers, strings and comments.
type Token struct {
	Type     TokenType
	Value    any
	Position source.Position
}

// Text returns the string payload of the token, if any.
func (t Token) Text() string {
	s, _ := t.Value.(string)
	return s
}
