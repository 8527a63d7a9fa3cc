package token

import (
	"fmt"
	"strings"
)

// Kind is the closed set of lexical categories.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Number
	String
	Keyword
	Plus
	Minus
	Star
	Slash
	LParen
	RParen
	Comma
	Semicolon
	Equal
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual
	// Invalid carries an unrecognized character or the opening quote of an
	// unterminated string literal.
	Invalid
	// Overflow carries a digit run that does not fit in a uint64.
	Overflow
)

var kindNames = [...]string{
	EOF:          "end of input",
	Ident:        "identifier",
	Number:       "number",
	String:       "string",
	Keyword:      "keyword",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	LParen:       "'('",
	RParen:       "')'",
	Comma:        "','",
	Semicolon:    "';'",
	Equal:        "'='",
	NotEqual:     "'!='",
	Less:         "'<'",
	Greater:      "'>'",
	LessEqual:    "'<='",
	GreaterEqual: "'>='",
	Invalid:      "invalid character",
	Overflow:     "number out of range",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pos is a location in the scanned text. Line and Column are 1-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is an immutable lexical unit.
type Token struct {
	Kind    Kind
	Keyword KeywordID // set when Kind == Keyword
	Text    string    // identifier, string contents, invalid char, overflowing digits
	Num     uint64    // set when Kind == Number
	Pos     Pos
}

// Is reports whether t is the keyword kw.
func (t Token) Is(kw KeywordID) bool {
	return t.Kind == Keyword && t.Keyword == kw
}

// Equal compares kind and payload, ignoring position.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Keyword == o.Keyword && t.Text == o.Text && t.Num == o.Num
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case Number:
		return fmt.Sprintf("number %d", t.Num)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Keyword:
		return "keyword " + t.Keyword.String()
	case Invalid:
		return fmt.Sprintf("invalid character %q", t.Text)
	case Overflow:
		return fmt.Sprintf("number %s out of range", t.Text)
	default:
		return t.Kind.String()
	}
}

// KeywordID enumerates reserved words.
type KeywordID uint8

const (
	NoKeyword KeywordID = iota
	SELECT
	FROM
	WHERE
	CREATE
	TABLE
	ORDER
	BY
	ASC
	DESC
	AND
	OR
	NOT
	TRUE
	FALSE
	PRIMARY
	KEY
	CHECK
	INT
	BOOL
	VARCHAR
	NULL
)

var keywordNames = [...]string{
	NoKeyword: "",
	SELECT:    "SELECT",
	FROM:      "FROM",
	WHERE:     "WHERE",
	CREATE:    "CREATE",
	TABLE:     "TABLE",
	ORDER:     "ORDER",
	BY:        "BY",
	ASC:       "ASC",
	DESC:      "DESC",
	AND:       "AND",
	OR:        "OR",
	NOT:       "NOT",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	PRIMARY:   "PRIMARY",
	KEY:       "KEY",
	CHECK:     "CHECK",
	INT:       "INT",
	BOOL:      "BOOL",
	VARCHAR:   "VARCHAR",
	NULL:      "NULL",
}

var keywords = func() map[string]KeywordID {
	m := make(map[string]KeywordID, len(keywordNames))
	for id, name := range keywordNames {
		if name != "" {
			m[name] = KeywordID(id)
		}
	}
	return m
}()

func (k KeywordID) String() string {
	if int(k) < len(keywordNames) && k != NoKeyword {
		return keywordNames[k]
	}
	return fmt.Sprintf("KeywordID(%d)", uint8(k))
}

// LookupKeyword matches word against the reserved words, ignoring ASCII case.
func LookupKeyword(word string) (KeywordID, bool) {
	kw, ok := keywords[strings.ToUpper(word)]
	return kw, ok
}
