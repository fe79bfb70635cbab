// Package source provides a character cursor over program text that tracks
// line and column positions and normalizes every newline flavor to '\n'.
package source

import (
	"bufio"
	"fmt"
	"io"
)

// EOF is returned by Advance and Peek once the input is exhausted.
const EOF rune = 0

// Position is a line/column location in the source text.
// Line starts at 1. Column is 0 before the first character of a line is read.
type Position struct {
	Line   int
	Column int
}

// String renders the position as [line:column].
func (p Position) String() string {
	return fmt.Sprintf("[%d:%d]", p.Line, p.Column)
}

// Reader is a single-character stream cursor.
type Reader struct {
	in       *bufio.Reader
	line     int
	column   int
	peeked   rune
	hasPeek  bool
	finished bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		in:   bufio.NewReader(r),
		line: 1,
	}
}

// Advance consumes and returns the next character. \r\n, \n\r, \r and \n
// are all returned as a single '\n'. NUL is returned forever at the end.
func (r *Reader) Advance() rune {
	ch := r.next()

	switch ch {
	case EOF:
		r.column++
		return EOF
	case '\r':
		if r.raw() == '\n' {
			r.next()
		}

		r.newline()

		return '\n'
	case '\n':
		if r.raw() == '\r' {
			r.next()
		}

		r.newline()

		return '\n'
	}

	r.column++

	return ch
}

// Peek returns the next character without consuming it.
func (r *Reader) Peek() rune {
	ch := r.raw()
	if ch == '\r' {
		return '\n'
	}

	return ch
}

// Position returns the position of the most recently consumed character.
func (r *Reader) Position() Position {
	return Position{Line: r.line, Column: r.column}
}

func (r *Reader) newline() {
	r.line++
	r.column = 0
}

// raw peeks one undecoded character.
func (r *Reader) raw() rune {
	if !r.hasPeek {
		r.peeked = r.decode()
		r.hasPeek = true
	}

	return r.peeked
}

func (r *Reader) next() rune {
	ch := r.raw()
	r.hasPeek = false

	return ch
}

func (r *Reader) decode() rune {
	if r.finished {
		return EOF
	}

	// invalid UTF-8 comes back as utf8.RuneError
	ch, _, err := r.in.ReadRune()
	if err != nil {
		r.finished = true
		return EOF
	}

	return ch
}
