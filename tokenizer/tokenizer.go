package tokenizer

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"github.com/shibukawa/pycs/source"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Options are options for the tokenizer
type Options struct {
	// OnWarning receives non-fatal diagnostics such as bad tokens.
	OnWarning func(pos source.Position, message string)
}

// Tokenizer converts a character stream into tokens on demand.
type Tokenizer struct {
	reader  *source.Reader
	ch      rune
	token   Token
	started bool
	options Options
}

// New creates a Tokenizer reading from r
func New(r io.Reader, options ...Options) *Tokenizer {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}

	t := &Tokenizer{
		reader:  source.NewReader(r),
		options: opts,
	}
	t.readChar()

	return t
}

// NewFromString creates a Tokenizer over program text
func NewFromString(input string, options ...Options) *Tokenizer {
	return New(strings.NewReader(input), options...)
}

// Current returns the most recent token, reading the first one if needed.
func (t *Tokenizer) Current() (Token, error) {
	if !t.started {
		return t.Next()
	}

	return t.token, nil
}

// Next reads the next token. Once the input is exhausted it keeps returning EOF.
func (t *Tokenizer) Next() (Token, error) {
	t.started = true

	t.skipWhitespace()

	token, err := t.nextToken(t.reader.Position())
	if err != nil {
		return Token{}, err
	}

	t.token = token

	return token, nil
}

// Tokens returns an iterator of tokens. It stops after EOF or the first error.
func (t *Tokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		for {
			token, err := t.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if !yield(token, nil) {
				return
			}

			if token.Type == EOF {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice (for debugging)
func (t *Tokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

func (t *Tokenizer) readChar() {
	t.ch = t.reader.Advance()
}

func (t *Tokenizer) peekChar() rune {
	return t.reader.Peek()
}

func (t *Tokenizer) skipWhitespace() {
	for t.ch == ' ' || t.ch == '\t' || t.ch == '\n' {
		t.readChar()
	}
}

func (t *Tokenizer) nextToken(pos source.Position) (Token, error) {
	switch {
	case isDigit(t.ch) || t.ch == '.':
		return t.readNumber(pos)
	case unicode.IsLetter(t.ch):
		return t.readIdentifier(pos)
	case t.ch == '\'':
		return t.readString(pos)
	case t.ch == '#':
		return t.readComment(pos)
	}

	return t.readOperator(pos), nil
}

func (t *Tokenizer) readNumber(pos source.Position) (Token, error) {
	var integer int64

	digits := 0
	for isDigit(t.ch) {
		digits++
		if digits > MaxIntegerDigits {
			return Token{}, fmt.Errorf("%w: integer part longer than %d digits at %s", ErrLengthExceeded, MaxIntegerDigits, pos)
		}

		integer = integer*10 + int64(t.ch-'0')
		t.readChar()
	}

	if t.ch != '.' {
		if integer > MaxNumber {
			return Token{}, fmt.Errorf("%w: %d at %s", ErrNumberOutOfRange, integer, pos)
		}

		return Token{Type: INT_LITERAL, Value: integer, Position: pos}, nil
	}

	t.readChar()

	var fraction strings.Builder
	for isDigit(t.ch) {
		if fraction.Len() >= MaxFractionDigits {
			return Token{}, fmt.Errorf("%w: fractional part longer than %d digits at %s", ErrLengthExceeded, MaxFractionDigits, pos)
		}

		fraction.WriteRune(t.ch)
		t.readChar()
	}

	if fraction.Len() == 0 {
		fraction.WriteByte('0')
	}

	f, err := strconv.ParseFloat(strconv.FormatInt(integer, 10)+"."+fraction.String(), 64)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w at %s", ErrNumberOutOfRange, err, pos)
	}

	if f > MaxNumber {
		return Token{}, fmt.Errorf("%w: %g at %s", ErrNumberOutOfRange, f, pos)
	}

	return Token{Type: FLOAT_LITERAL, Value: f, Position: pos}, nil
}

func (t *Tokenizer) readIdentifier(pos source.Position) (Token, error) {
	var name strings.Builder

	length := 0
	for unicode.IsLetter(t.ch) || unicode.IsDigit(t.ch) || t.ch == '_' {
		length++
		if length > MaxIdentifierLength {
			return Token{}, fmt.Errorf("%w: identifier longer than %d characters at %s", ErrLengthExceeded, MaxIdentifierLength, pos)
		}

		name.WriteRune(t.ch)
		t.readChar()
	}

	text := name.String()

	keyword, ok := LookupKeyword(text)
	if !ok {
		return Token{Type: IDENTIFIER, Value: text, Position: pos}, nil
	}

	switch keyword {
	case TRUE:
		return Token{Type: TRUE, Value: true, Position: pos}, nil
	case FALSE:
		return Token{Type: FALSE, Value: false, Position: pos}, nil
	}

	return Token{Type: keyword, Value: text, Position: pos}, nil
}

func (t *Tokenizer) readString(pos source.Position) (Token, error) {
	t.readChar() // opening quote

	var value strings.Builder

	length := 0
	for {
		switch t.ch {
		case source.EOF:
			return Token{}, fmt.Errorf("%w at %s", ErrUnterminatedString, pos)
		case '\'':
			t.readChar()
			return Token{Type: STRING_LITERAL, Value: value.String(), Position: pos}, nil
		case '\\':
			if escaped, ok := escapes[t.peekChar()]; ok {
				t.readChar()
				value.WriteRune(escaped)
			} else {
				value.WriteRune('\\')
			}
		default:
			value.WriteRune(t.ch)
		}

		length++
		if length > MaxStringLength {
			return Token{}, fmt.Errorf("%w: string longer than %d characters at %s", ErrLengthExceeded, MaxStringLength, pos)
		}

		t.readChar()
	}
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
}

func (t *Tokenizer) readComment(pos source.Position) (Token, error) {
	t.readChar() // #

	var text strings.Builder

	length := 0
	for t.ch != '\n' && t.ch != source.EOF {
		length++
		if length > MaxCommentLength {
			return Token{}, fmt.Errorf("%w: comment longer than %d characters at %s", ErrLengthExceeded, MaxCommentLength, pos)
		}

		text.WriteRune(t.ch)
		t.readChar()
	}

	return Token{Type: COMMENT, Value: text.String(), Position: pos}, nil
}

// readOperator handles operators and punctuation, including the
// two-character forms ->, ==, >=, <=, != and |>.
func (t *Tokenizer) readOperator(pos source.Position) Token {
	single := func(tt TokenType) Token {
		t.readChar()
		return Token{Type: tt, Position: pos}
	}
	pair := func(next rune, double, otherwise TokenType) Token {
		if t.peekChar() == next {
			t.readChar()
			return single(double)
		}

		return single(otherwise)
	}

	switch t.ch {
	case source.EOF:
		return Token{Type: EOF, Position: pos}
	case '+':
		return single(PLUS)
	case '-':
		return pair('>', ARROW, MINUS)
	case '*':
		return single(MULTIPLY)
	case '/':
		return single(DIVIDE)
	case '=':
		return pair('=', EQUAL, ASSIGN)
	case '!':
		return pair('=', NOT_EQUAL, NOT)
	case '>':
		return pair('=', GREATER_EQUAL, GREATER_THAN)
	case '<':
		return pair('=', LESS_EQUAL, LESS_THAN)
	case '%':
		return single(BIND_FRONT)
	case '|':
		return pair('>', PIPE, LIST_LENGTH)
	case ';':
		return single(SEMICOLON)
	case ',':
		return single(COMMA)
	case '(':
		return single(OPENED_PARENS)
	case ')':
		return single(CLOSED_PARENS)
	case '{':
		return single(OPENED_BRACE)
	case '}':
		return single(CLOSED_BRACE)
	case '[':
		return single(OPENED_BRACKET)
	case ']':
		return single(CLOSED_BRACKET)
	}

	bad := string(t.ch)
	if t.options.OnWarning != nil {
		t.options.OnWarning(pos, fmt.Sprintf("Bad token %q", bad))
	}

	t.readChar()

	return Token{Type: BAD_TOKEN, Value: bad, Position: pos}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
