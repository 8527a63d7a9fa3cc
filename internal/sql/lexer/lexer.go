// Package lexer turns SQL text into tokens.
//
// A Tokenizer is single-pass: to scan the same text again, construct a new
// one. Scanning never fails; characters the language does not know surface
// as token.Invalid and numbers that do not fit in a uint64 as token.Overflow,
// both left for the parser to reject.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/tuannm99/novaparse/internal/sql/token"
)

type Tokenizer struct {
	src  string
	off  int
	line int
	col  int
}

func New(text string) *Tokenizer {
	return &Tokenizer{src: text, line: 1, col: 1}
}

// Tokenize scans the whole text. The EOF sentinel is not included.
func Tokenize(text string) []token.Token {
	tz := New(text)
	var toks []token.Token
	for {
		tok, ok := tz.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token, or false once the input is exhausted.
func (tz *Tokenizer) Next() (token.Token, bool) {
	tok := tz.scan()
	return tok, tok.Kind != token.EOF
}

// peek returns the current character without consuming it; 0 at end of input.
func (tz *Tokenizer) peek() (rune, int) {
	if tz.off >= len(tz.src) {
		return 0, 0
	}
	c := tz.src[tz.off]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(tz.src[tz.off:])
}

func (tz *Tokenizer) advance() rune {
	r, size := tz.peek()
	if size == 0 {
		return 0
	}
	tz.off += size
	if r == '\n' {
		tz.line++
		tz.col = 1
	} else {
		tz.col++
	}
	return r
}

func (tz *Tokenizer) consumeIf(want rune) bool {
	if r, size := tz.peek(); size > 0 && r == want {
		tz.advance()
		return true
	}
	return false
}

func (tz *Tokenizer) pos() token.Pos {
	return token.Pos{Offset: tz.off, Line: tz.line, Column: tz.col}
}

func (tz *Tokenizer) scan() token.Token {
	for {
		r, size := tz.peek()
		if size == 0 {
			return token.Token{Kind: token.EOF, Pos: tz.pos()}
		}

		if isSpace(r) {
			tz.advance()
			continue
		}

		start := tz.pos()
		if k, ok := singles[r]; ok {
			tz.advance()
			return token.Token{Kind: k, Pos: start}
		}

		switch {
		case r == '>':
			tz.advance()
			if tz.consumeIf('=') {
				return token.Token{Kind: token.GreaterEqual, Pos: start}
			}
			return token.Token{Kind: token.Greater, Pos: start}
		case r == '<':
			tz.advance()
			if tz.consumeIf('=') {
				return token.Token{Kind: token.LessEqual, Pos: start}
			}
			if tz.consumeIf('>') {
				return token.Token{Kind: token.NotEqual, Pos: start}
			}
			return token.Token{Kind: token.Less, Pos: start}
		case r == '!':
			tz.advance()
			if tz.consumeIf('=') {
				return token.Token{Kind: token.NotEqual, Pos: start}
			}
			return token.Token{Kind: token.Invalid, Text: "!", Pos: start}
		case r == '"' || r == '\'':
			return tz.readString(start)
		case isDigit(r):
			return tz.readNumber(start)
		case isWordStart(r):
			return tz.readWord(start)
		default:
			tz.advance()
			return token.Token{Kind: token.Invalid, Text: string(r), Pos: start}
		}
	}
}

var singles = map[rune]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	';': token.Semicolon,
	'=': token.Equal,
}

// readString takes everything up to the matching quote verbatim.
func (tz *Tokenizer) readString(start token.Pos) token.Token {
	quote := tz.advance()
	from := tz.off
	for {
		r, size := tz.peek()
		if size == 0 {
			return token.Token{Kind: token.Invalid, Text: string(quote), Pos: start}
		}
		if r == quote {
			text := tz.src[from:tz.off]
			tz.advance()
			return token.Token{Kind: token.String, Text: text, Pos: start}
		}
		tz.advance()
	}
}

func (tz *Tokenizer) readNumber(start token.Pos) token.Token {
	from := tz.off
	for {
		r, size := tz.peek()
		if size == 0 || !isDigit(r) {
			break
		}
		tz.advance()
	}

	digits := tz.src[from:tz.off]
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return token.Token{Kind: token.Overflow, Text: digits, Pos: start}
	}
	return token.Token{Kind: token.Number, Num: n, Pos: start}
}

func (tz *Tokenizer) readWord(start token.Pos) token.Token {
	from := tz.off
	for {
		r, size := tz.peek()
		if size == 0 || !(isWordStart(r) || isDigit(r)) {
			break
		}
		tz.advance()
	}

	word := tz.src[from:tz.off]
	if kw, ok := token.LookupKeyword(word); ok {
		return token.Token{Kind: token.Keyword, Keyword: kw, Pos: start}
	}
	return token.Token{Kind: token.Ident, Text: word, Pos: start}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWordStart(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}
