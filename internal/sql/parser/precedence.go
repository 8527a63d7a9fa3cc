package parser

import (
	"github.com/tuannm99/novaparse/internal/sql/ast"
	"github.com/tuannm99/novaparse/internal/sql/token"
)

// Binding powers; higher binds tighter. AND sits below OR.
const (
	powerNone       = 0
	powerPostfix    = 5  // ASC, DESC
	powerAnd        = 10 // AND
	powerOr         = 15 // OR
	powerComparison = 20 // = <> < > <= >=
	powerAdditive   = 25 // + -
	powerProduct    = 30 // * /
	powerPrefix     = 100
)

type infixOp struct {
	power   int
	binary  ast.BinaryOp
	unary   ast.UnaryOp
	postfix bool
}

var infixByKind = map[token.Kind]infixOp{
	token.Plus:         {power: powerAdditive, binary: ast.Add},
	token.Minus:        {power: powerAdditive, binary: ast.Sub},
	token.Star:         {power: powerProduct, binary: ast.Mul},
	token.Slash:        {power: powerProduct, binary: ast.Div},
	token.Equal:        {power: powerComparison, binary: ast.Eq},
	token.NotEqual:     {power: powerComparison, binary: ast.NotEq},
	token.Less:         {power: powerComparison, binary: ast.Lt},
	token.LessEqual:    {power: powerComparison, binary: ast.LtEq},
	token.Greater:      {power: powerComparison, binary: ast.Gt},
	token.GreaterEqual: {power: powerComparison, binary: ast.GtEq},
}

var infixByKeyword = map[token.KeywordID]infixOp{
	token.AND:  {power: powerAnd, binary: ast.And},
	token.OR:   {power: powerOr, binary: ast.Or},
	token.ASC:  {power: powerPostfix, unary: ast.Asc, postfix: true},
	token.DESC: {power: powerPostfix, unary: ast.Desc, postfix: true},
}

var prefixByKind = map[token.Kind]ast.UnaryOp{
	token.Minus: ast.UnaryMinus,
	token.Plus:  ast.UnaryPlus,
}

// infixFor looks up tok as an infix or postfix operator. Tokens that are
// neither report powerNone, which ends the expression.
func infixFor(tok token.Token) infixOp {
	if tok.Kind == token.Keyword {
		if op, ok := infixByKeyword[tok.Keyword]; ok {
			return op
		}
		return infixOp{power: powerNone}
	}
	if op, ok := infixByKind[tok.Kind]; ok {
		return op
	}
	return infixOp{power: powerNone}
}

// prefixFor reports whether tok starts a prefix unary operation.
func prefixFor(tok token.Token) (ast.UnaryOp, bool) {
	if tok.Is(token.NOT) {
		return ast.Not, true
	}
	op, ok := prefixByKind[tok.Kind]
	return op, ok
}
