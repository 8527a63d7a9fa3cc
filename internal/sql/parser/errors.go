package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuannm99/novaparse/internal/sql/token"
)

// ErrorKind classifies parse failures.
type ErrorKind uint8

const (
	// SyntaxError: a token other than what the grammar requires.
	SyntaxError ErrorKind = iota
	// LexicalAnomaly: an unrecognized character or unterminated string.
	LexicalAnomaly
	// NumericOverflow: an integer literal beyond the uint64 range.
	NumericOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case LexicalAnomaly:
		return "lexical error"
	case NumericOverflow:
		return "numeric overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

var (
	ErrSyntax   = errors.New("syntax error")
	ErrLexical  = errors.New("lexical error")
	ErrOverflow = errors.New("numeric overflow")
)

// Error is returned for every failed parse.
type Error struct {
	Kind     ErrorKind
	Expected string
	Found    token.Token
}

func (e *Error) Error() string {
	at := ""
	if e.Found.Pos.Line > 0 {
		at = " at " + e.Found.Pos.String()
	}
	switch e.Kind {
	case LexicalAnomaly:
		return fmt.Sprintf("%s%s: %s, expected %s", e.Kind, at, e.Found, e.Expected)
	case NumericOverflow:
		return fmt.Sprintf("%s%s: %s exceeds %d", e.Kind, at, e.Found.Text, uint64(math.MaxUint64))
	default:
		return fmt.Sprintf("%s%s: expected %s, found %s", e.Kind, at, e.Expected, e.Found)
	}
}

// Is lets errors.Is match against ErrSyntax, ErrLexical and ErrOverflow.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == SyntaxError
	case ErrLexical:
		return e.Kind == LexicalAnomaly
	case ErrOverflow:
		return e.Kind == NumericOverflow
	}
	return false
}

// unexpected builds the error for finding tok where expected was required.
func unexpected(expected string, tok token.Token) *Error {
	kind := SyntaxError
	switch tok.Kind {
	case token.Invalid:
		kind = LexicalAnomaly
	case token.Overflow:
		kind = NumericOverflow
	}
	return &Error{Kind: kind, Expected: expected, Found: tok}
}
