package parser

import (
	"github.com/tuannm99/novaparse/internal/sql/ast"
	"github.com/tuannm99/novaparse/internal/sql/lexer"
	"github.com/tuannm99/novaparse/internal/sql/token"
)

// maxDepth bounds expression nesting so hostile input fails with an error
// instead of exhausting the stack.
const maxDepth = 1000

// Parser consumes one statement from a finite token sequence.
type Parser struct {
	tokens []token.Token
	pos    int
	depth  int
}

// New returns a parser over tokens. An EOF sentinel is appended when the
// sequence does not already end with one.
func New(tokens []token.Token) *Parser {
	toks := make([]token.Token, len(tokens), len(tokens)+1)
	copy(toks, tokens)
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}
	return &Parser{tokens: toks}
}

// Parse tokenizes sql and parses a single statement. The statement MUST end
// with ';'; anything after the terminator is ignored.
func Parse(sql string) (ast.Statement, error) {
	tz := lexer.New(sql)
	var toks []token.Token
	for {
		tok, ok := tz.Next()
		toks = append(toks, tok) // keeps the positioned EOF
		if !ok {
			break
		}
	}
	return New(toks).ParseStatement()
}

// ParseStatement parses tokens produced by lexer.Tokenize.
func ParseStatement(tokens []token.Token) (ast.Statement, error) {
	return New(tokens).ParseStatement()
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// next consumes the current token. The EOF sentinel is never passed.
func (p *Parser) next() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind token.Kind) error {
	if tok := p.peek(); tok.Kind != kind {
		return unexpected(kind.String(), tok)
	}
	p.next()
	return nil
}

func (p *Parser) expectKeyword(kw token.KeywordID) error {
	if tok := p.peek(); !tok.Is(kw) {
		return unexpected("keyword "+kw.String(), tok)
	}
	p.next()
	return nil
}

func (p *Parser) expectIdent(what string) (string, error) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return "", unexpected(what, tok)
	}
	p.next()
	return tok.Text, nil
}

// ParseStatement dispatches on the leading keyword and consumes tokens up to
// and including the terminating ';'.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	tok := p.peek()
	switch {
	case tok.Is(token.SELECT):
		p.next()
		return p.parseSelect()
	case tok.Is(token.CREATE):
		p.next()
		return p.parseCreateTable()
	default:
		return nil, unexpected("SELECT or CREATE", tok)
	}
}

// SELECT expr [, expr]* FROM ident [WHERE expr] [ORDER BY expr [, expr]*] ;
func (p *Parser) parseSelect() (ast.Statement, error) {
	cols, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword(token.FROM); err != nil {
		return nil, err
	}
	table, err := p.expectIdent("table name")
	if err != nil {
		return nil, err
	}

	stmt := &ast.SelectStmt{Columns: cols, From: table}

	if p.peek().Is(token.WHERE) {
		p.next()
		if stmt.Where, err = p.parseExpr(powerNone); err != nil {
			return nil, err
		}
	}

	if p.peek().Is(token.ORDER) {
		p.next()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		if stmt.OrderBy, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var list []ast.Expr
	for {
		e, err := p.parseExpr(powerNone)
		if err != nil {
			return nil, err
		}
		list = append(list, e)

		if p.peek().Kind != token.Comma {
			return list, nil
		}
		p.next()
	}
}

// CREATE TABLE ident ( [column [, column]*] ) ;
func (p *Parser) parseCreateTable() (ast.Statement, error) {
	if err := p.expectKeyword(token.TABLE); err != nil {
		return nil, err
	}
	table, err := p.expectIdent("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	stmt := &ast.CreateTableStmt{TableName: table}

	if p.peek().Kind == token.RParen {
		p.next()
	} else {
		for {
			col, err := p.parseColumn()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)

			tok := p.peek()
			if tok.Kind == token.Comma {
				p.next()
				continue
			}
			if tok.Kind == token.RParen {
				p.next()
				break
			}
			return nil, unexpected("',' or ')'", tok)
		}
	}

	if err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// column := ident type constraint*
func (p *Parser) parseColumn() (ast.TableColumn, error) {
	name, err := p.expectIdent("column name")
	if err != nil {
		return ast.TableColumn{}, err
	}

	typ, err := p.parseType()
	if err != nil {
		return ast.TableColumn{}, err
	}

	col := ast.TableColumn{Name: name, Type: typ}
	for {
		tok := p.peek()
		switch {
		case tok.Is(token.PRIMARY):
			p.next()
			if err := p.expectKeyword(token.KEY); err != nil {
				return ast.TableColumn{}, err
			}
			col.Constraints = append(col.Constraints, ast.PrimaryKey)
		case tok.Is(token.NOT):
			p.next()
			if err := p.expectKeyword(token.NULL); err != nil {
				return ast.TableColumn{}, err
			}
			col.Constraints = append(col.Constraints, ast.NotNull)
		case tok.Is(token.CHECK):
			p.next()
			if err := p.expect(token.LParen); err != nil {
				return ast.TableColumn{}, err
			}
			e, err := p.parseExpr(powerNone)
			if err != nil {
				return ast.TableColumn{}, err
			}
			if err := p.expect(token.RParen); err != nil {
				return ast.TableColumn{}, err
			}
			col.Constraints = append(col.Constraints, &ast.Check{Expr: e})
		default:
			return col, nil
		}
	}
}

func (p *Parser) parseType() (ast.DBType, error) {
	tok := p.peek()
	switch {
	case tok.Is(token.INT):
		p.next()
		return ast.Int, nil
	case tok.Is(token.BOOL):
		p.next()
		return ast.Bool, nil
	case tok.Is(token.VARCHAR):
		p.next()
		if err := p.expect(token.LParen); err != nil {
			return ast.DBType{}, err
		}
		n := p.peek()
		if n.Kind != token.Number {
			return ast.DBType{}, unexpected("VARCHAR length", n)
		}
		p.next()
		if err := p.expect(token.RParen); err != nil {
			return ast.DBType{}, err
		}
		return ast.Varchar(n.Num), nil
	default:
		return ast.DBType{}, unexpected("column type (INT, BOOL or VARCHAR)", tok)
	}
}

// parseExpr is a precedence climber: it keeps absorbing infix and postfix
// operators while they bind tighter than minPower.
func (p *Parser) parseExpr(minPower int) (ast.Expr, error) {
	if p.depth >= maxDepth {
		return nil, &Error{Kind: SyntaxError, Expected: "shallower expression nesting", Found: p.peek()}
	}
	p.depth++
	defer func() { p.depth-- }()

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		op := infixFor(p.peek())
		if op.power <= minPower {
			return left, nil
		}
		p.next()

		if op.postfix {
			left = &ast.UnaryExpr{Op: op.unary, Operand: left}
			continue
		}

		right, err := p.parseExpr(op.power)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op.binary, Left: left, Right: right}
	}
}

func (p *Parser) parsePrefix() (ast.Expr, error) {
	tok := p.peek()

	if op, ok := prefixFor(tok); ok {
		p.next()
		operand, err := p.parseExpr(powerPrefix)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil
	}

	switch {
	case tok.Kind == token.Number:
		p.next()
		return &ast.NumberLit{Value: tok.Num}, nil
	case tok.Kind == token.Ident:
		p.next()
		return &ast.Ident{Name: tok.Text}, nil
	case tok.Kind == token.String:
		p.next()
		return &ast.StringLit{Value: tok.Text}, nil
	case tok.Is(token.TRUE):
		p.next()
		return &ast.BoolLit{Value: true}, nil
	case tok.Is(token.FALSE):
		p.next()
		return &ast.BoolLit{Value: false}, nil
	case tok.Kind == token.LParen:
		p.next()
		e, err := p.parseExpr(powerNone)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, unexpected("expression", tok)
	}
}
