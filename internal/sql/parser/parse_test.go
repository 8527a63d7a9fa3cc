package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novaparse/internal/sql/ast"
	"github.com/tuannm99/novaparse/internal/sql/lexer"
	"github.com/tuannm99/novaparse/internal/sql/token"
)

func id(name string) ast.Expr { return &ast.Ident{Name: name} }
func num(n uint64) ast.Expr   { return &ast.NumberLit{Value: n} }
func str(s string) ast.Expr   { return &ast.StringLit{Value: s} }
func boolean(b bool) ast.Expr { return &ast.BoolLit{Value: b} }
func bin(op ast.BinaryOp, l, r ast.Expr) ast.Expr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}
func un(op ast.UnaryOp, e ast.Expr) ast.Expr {
	return &ast.UnaryExpr{Op: op, Operand: e}
}

func mustSelect(t *testing.T, sql string) *ast.SelectStmt {
	t.Helper()
	stmt, err := Parse(sql)
	require.NoError(t, err)
	s, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok, "want *SelectStmt, got %T", stmt)
	return s
}

func mustCreate(t *testing.T, sql string) *ast.CreateTableStmt {
	t.Helper()
	stmt, err := Parse(sql)
	require.NoError(t, err)
	s, ok := stmt.(*ast.CreateTableStmt)
	require.True(t, ok, "want *CreateTableStmt, got %T", stmt)
	return s
}

// whereOf parses "SELECT x FROM t WHERE <expr>;" and returns the predicate.
func whereOf(t *testing.T, expr string) ast.Expr {
	t.Helper()
	return mustSelect(t, "SELECT x FROM t WHERE "+expr+";").Where
}

func requireParseError(t *testing.T, sql string, kind ErrorKind) *Error {
	t.Helper()
	_, err := Parse(sql)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr), "want *Error, got %T", err)
	require.Equal(t, kind, perr.Kind, "error: %v", err)
	return perr
}

func TestParse_SelectColumns(t *testing.T) {
	s := mustSelect(t, "SELECT a, b FROM t;")
	assert.Equal(t, &ast.SelectStmt{
		Columns: []ast.Expr{id("a"), id("b")},
		From:    "t",
	}, s)
	assert.Nil(t, s.Where)
	assert.Empty(t, s.OrderBy)
}

func TestParse_SelectComputedColumns(t *testing.T) {
	s := mustSelect(t, "select price * 2, 'x', TRUE from Items;")
	assert.Equal(t, []ast.Expr{bin(ast.Mul, id("price"), num(2)), str("x"), boolean(true)}, s.Columns)
	assert.Equal(t, "Items", s.From)
}

func TestParse_SelectWhere(t *testing.T) {
	s := mustSelect(t, "SELECT x FROM t WHERE x > 5 AND x < 10;")
	assert.Equal(t,
		bin(ast.And, bin(ast.Gt, id("x"), num(5)), bin(ast.Lt, id("x"), num(10))),
		s.Where)
}

func TestParse_SelectOrderBy(t *testing.T) {
	s := mustSelect(t, "SELECT a FROM t WHERE a <> 1 ORDER BY a DESC, b ASC, c;")
	assert.Equal(t, bin(ast.NotEq, id("a"), num(1)), s.Where)
	assert.Equal(t, []ast.Expr{un(ast.Desc, id("a")), un(ast.Asc, id("b")), id("c")}, s.OrderBy)
}

func TestParse_SelectIgnoresTrailingTokens(t *testing.T) {
	s := mustSelect(t, "SELECT a FROM t; SELECT garbage")
	assert.Equal(t, "t", s.From)
}

func TestParse_Precedence(t *testing.T) {
	cases := []struct {
		expr string
		want ast.Expr
	}{
		{"1 + 2 * 3", bin(ast.Add, num(1), bin(ast.Mul, num(2), num(3)))},
		{"1 * 2 + 3", bin(ast.Add, bin(ast.Mul, num(1), num(2)), num(3))},
		{"a - b - c", bin(ast.Sub, bin(ast.Sub, id("a"), id("b")), id("c"))},
		{"a / b * c", bin(ast.Mul, bin(ast.Div, id("a"), id("b")), id("c"))},
		{"(1 + 2) * 3", bin(ast.Mul, bin(ast.Add, num(1), num(2)), num(3))},
		{"NOT a AND b", bin(ast.And, un(ast.Not, id("a")), id("b"))},
		{"a AND b OR c", bin(ast.And, id("a"), bin(ast.Or, id("b"), id("c")))},
		{"a OR b AND c", bin(ast.And, bin(ast.Or, id("a"), id("b")), id("c"))},
		{"-1 + 2", bin(ast.Add, un(ast.UnaryMinus, num(1)), num(2))},
		{"-(1 + 2)", un(ast.UnaryMinus, bin(ast.Add, num(1), num(2)))},
		{"+a", un(ast.UnaryPlus, id("a"))},
		{"NOT NOT a", un(ast.Not, un(ast.Not, id("a")))},
		{"a + 1 = b", bin(ast.Eq, bin(ast.Add, id("a"), num(1)), id("b"))},
		{"a >= 1 OR b <= 2", bin(ast.Or, bin(ast.GtEq, id("a"), num(1)), bin(ast.LtEq, id("b"), num(2)))},
		{"a != 'x'", bin(ast.NotEq, id("a"), str("x"))},
		{"a = FALSE", bin(ast.Eq, id("a"), boolean(false))},
		{"a + b ASC", un(ast.Asc, bin(ast.Add, id("a"), id("b")))},
		{"a ASC DESC", un(ast.Desc, un(ast.Asc, id("a")))},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			assert.Equal(t, tc.want, whereOf(t, tc.expr))
		})
	}
}

func TestParse_CreateTable(t *testing.T) {
	s := mustCreate(t, "CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(20) NOT NULL);")
	assert.Equal(t, &ast.CreateTableStmt{
		TableName: "t",
		Columns: []ast.TableColumn{
			{Name: "id", Type: ast.Int, Constraints: []ast.Constraint{ast.PrimaryKey}},
			{Name: "name", Type: ast.Varchar(20), Constraints: []ast.Constraint{ast.NotNull}},
		},
	}, s)
}

func TestParse_CreateTable_Empty(t *testing.T) {
	s := mustCreate(t, "CREATE TABLE t ();")
	assert.Equal(t, "t", s.TableName)
	assert.Empty(t, s.Columns)
}

func TestParse_CreateTable_ConstraintsKeepOrder(t *testing.T) {
	s := mustCreate(t, "create table users (age INT CHECK (age > 0) NOT NULL NOT NULL PRIMARY KEY, active BOOL);")
	require.Len(t, s.Columns, 2)

	assert.Equal(t, []ast.Constraint{
		&ast.Check{Expr: bin(ast.Gt, id("age"), num(0))},
		ast.NotNull,
		ast.NotNull,
		ast.PrimaryKey,
	}, s.Columns[0].Constraints)
	assert.Equal(t, ast.TableColumn{Name: "active", Type: ast.Bool}, s.Columns[1])
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name     string
		sql      string
		kind     ErrorKind
		expected string
		found    token.Kind
	}{
		{"empty", "", SyntaxError, "SELECT or CREATE", token.EOF},
		{"unsupported statement", "INSERT INTO t;", SyntaxError, "SELECT or CREATE", token.Ident},
		{"missing columns", "SELECT FROM t;", SyntaxError, "expression", token.Keyword},
		{"missing FROM", "SELECT a t;", SyntaxError, "keyword FROM", token.Ident},
		{"table name not ident", "SELECT a FROM 1;", SyntaxError, "table name", token.Number},
		{"missing terminator", "SELECT a FROM t", SyntaxError, "';'", token.EOF},
		{"ORDER without BY", "SELECT a FROM t ORDER a;", SyntaxError, "keyword BY", token.Ident},
		{"dangling operator", "SELECT a + FROM t;", SyntaxError, "expression", token.Keyword},
		{"unclosed paren", "SELECT (a FROM t;", SyntaxError, "')'", token.Keyword},
		{"bang", "SELECT a ! b FROM t;", LexicalAnomaly, "keyword FROM", token.Invalid},
		{"unterminated string", "SELECT 'abc FROM t;", LexicalAnomaly, "expression", token.Invalid},
		{"unknown char", "SELECT a FROM t WHERE a = #;", LexicalAnomaly, "expression", token.Invalid},
		{"overflow", "SELECT 18446744073709551616 FROM t;", NumericOverflow, "expression", token.Overflow},
		{"missing TABLE", "CREATE t (a INT);", SyntaxError, "keyword TABLE", token.Ident},
		{"missing lparen", "CREATE TABLE t a INT;", SyntaxError, "'('", token.Ident},
		{"missing type", "CREATE TABLE t (a);", SyntaxError, "column type (INT, BOOL or VARCHAR)", token.RParen},
		{"unknown type", "CREATE TABLE t (a TEXT);", SyntaxError, "column type (INT, BOOL or VARCHAR)", token.Ident},
		{"PRIMARY without KEY", "CREATE TABLE t (a INT PRIMARY);", SyntaxError, "keyword KEY", token.RParen},
		{"NOT without NULL", "CREATE TABLE t (a INT NOT);", SyntaxError, "keyword NULL", token.RParen},
		{"VARCHAR without length", "CREATE TABLE t (a VARCHAR);", SyntaxError, "'('", token.RParen},
		{"VARCHAR string length", "CREATE TABLE t (a VARCHAR('x'));", SyntaxError, "VARCHAR length", token.String},
		{"VARCHAR overflow", "CREATE TABLE t (a VARCHAR(99999999999999999999));", NumericOverflow, "VARCHAR length", token.Overflow},
		{"missing separator", "CREATE TABLE t (a INT b INT);", SyntaxError, "',' or ')'", token.Ident},
		{"trailing comma", "CREATE TABLE t (a INT,);", SyntaxError, "column name", token.RParen},
		{"unclosed column list", "CREATE TABLE t (a INT", SyntaxError, "',' or ')'", token.EOF},
		{"create missing terminator", "CREATE TABLE t ()", SyntaxError, "';'", token.EOF},
		{"CHECK without paren", "CREATE TABLE t (a INT CHECK a > 1);", SyntaxError, "'('", token.Ident},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perr := requireParseError(t, tc.sql, tc.kind)
			assert.Equal(t, tc.expected, perr.Expected)
			assert.Equal(t, tc.found, perr.Found.Kind)
		})
	}
}

func TestParse_ErrorMessage(t *testing.T) {
	_, err := Parse("SELECT a\nt;")
	require.Error(t, err)
	assert.Equal(t, `syntax error at 2:1: expected keyword FROM, found identifier "t"`, err.Error())

	_, err = Parse("SELECT 99999999999999999999 FROM t;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric overflow at 1:8: 99999999999999999999 exceeds 18446744073709551615")
}

func TestParse_ErrorsIs(t *testing.T) {
	_, err := Parse("SELECT a FROM t")
	assert.ErrorIs(t, err, ErrSyntax)
	assert.NotErrorIs(t, err, ErrLexical)

	_, err = Parse("SELECT @ FROM t;")
	assert.ErrorIs(t, err, ErrLexical)

	_, err = Parse("SELECT 99999999999999999999 FROM t;")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestParse_DeepNestingFails(t *testing.T) {
	sql := "SELECT " + strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000) + " FROM t;"
	requireParseError(t, sql, SyntaxError)

	sql = "SELECT " + strings.Repeat("-", 5000) + "1 FROM t;"
	requireParseError(t, sql, SyntaxError)
}

func TestParseStatement_TokensWithoutSentinel(t *testing.T) {
	toks := lexer.Tokenize("SELECT a FROM")
	_, err := ParseStatement(toks)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "table name", perr.Expected)
	assert.Equal(t, token.EOF, perr.Found.Kind)
}

func TestParseStatement_FromTokens(t *testing.T) {
	stmt, err := ParseStatement(lexer.Tokenize("SELECT a FROM t;"))
	require.NoError(t, err)
	assert.Equal(t, &ast.SelectStmt{Columns: []ast.Expr{id("a")}, From: "t"}, stmt)
}

func TestParser_EmptyTokenSequence(t *testing.T) {
	_, err := New(nil).ParseStatement()
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_RoundTrip(t *testing.T) {
	stmts := []string{
		"SELECT a, b FROM t;",
		"SELECT -a, +b, NOT c FROM t WHERE a AND b OR c ORDER BY a + 1 DESC, b;",
		"SELECT (1 + 2) * 3, 'its' FROM t WHERE x > 5 AND x < 10;",
		`SELECT "it's" FROM t WHERE -(a + b) >= 0 OR a ASC;`,
		"CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(20) NOT NULL CHECK (name != ''));",
		"CREATE TABLE t ();",
		"CREATE TABLE t (a BOOL CHECK (a = TRUE OR NOT a) NOT NULL);",
	}

	for _, sql := range stmts {
		t.Run(sql, func(t *testing.T) {
			first, err := Parse(sql)
			require.NoError(t, err)

			rendered := ast.SQL(first)
			second, err := Parse(rendered)
			require.NoError(t, err, "rendered: %s", rendered)

			assert.Equal(t, first, second)
			assert.Equal(t, rendered, ast.SQL(second))
		})
	}
}
