package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKeyword_CaseInsensitive(t *testing.T) {
	for _, w := range []string{"select", "SELECT", "SeLeCt"} {
		kw, ok := LookupKeyword(w)
		require.True(t, ok, w)
		assert.Equal(t, SELECT, kw)
	}

	_, ok := LookupKeyword("users")
	assert.False(t, ok)
}

func TestLookupKeyword_AllReserved(t *testing.T) {
	for id := SELECT; id <= NULL; id++ {
		kw, ok := LookupKeyword(id.String())
		require.True(t, ok, id.String())
		assert.Equal(t, id, kw)
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, `identifier "a"`, Token{Kind: Ident, Text: "a"}.String())
	assert.Equal(t, "keyword FROM", Token{Kind: Keyword, Keyword: FROM}.String())
	assert.Equal(t, "';'", Token{Kind: Semicolon}.String())
	assert.Equal(t, "end of input", Token{Kind: EOF}.String())
	assert.Equal(t, `invalid character "!"`, Token{Kind: Invalid, Text: "!"}.String())
	assert.Equal(t, "number 42", Token{Kind: Number, Num: 42}.String())
}

func TestToken_EqualIgnoresPosition(t *testing.T) {
	a := Token{Kind: Ident, Text: "x", Pos: Pos{Offset: 0, Line: 1, Column: 1}}
	b := Token{Kind: Ident, Text: "x", Pos: Pos{Offset: 9, Line: 2, Column: 3}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Token{Kind: Ident, Text: "X"}))
}
