package ast

// Node is implemented by every statement and expression.
type Node interface {
	node()
}

// Statement is the root interface for all SQL statements.
type Statement interface {
	Node
	stmtNode()
}

// ----- SELECT -----
type SelectStmt struct {
	Columns []Expr
	From    string
	Where   Expr // nil when absent
	OrderBy []Expr
}

func (*SelectStmt) node()     {}
func (*SelectStmt) stmtNode() {}

// ----- CREATE TABLE -----
type CreateTableStmt struct {
	TableName string
	Columns   []TableColumn
}

func (*CreateTableStmt) node()     {}
func (*CreateTableStmt) stmtNode() {}

type TableColumn struct {
	Name        string
	Type        DBType
	Constraints []Constraint // source order, duplicates kept
}

type TypeKind uint8

const (
	TypeInt TypeKind = iota
	TypeBool
	TypeVarchar
)

// DBType is a column type. Length is only meaningful for VARCHAR.
type DBType struct {
	Kind   TypeKind
	Length uint64
}

var (
	Int  = DBType{Kind: TypeInt}
	Bool = DBType{Kind: TypeBool}
)

func Varchar(n uint64) DBType { return DBType{Kind: TypeVarchar, Length: n} }

// Constraint is one of PrimaryKey, NotNull or *Check.
type Constraint interface {
	constraint()
}

type primaryKey struct{}
type notNull struct{}

func (primaryKey) constraint() {}
func (notNull) constraint()    {}

var (
	PrimaryKey Constraint = primaryKey{}
	NotNull    Constraint = notNull{}
)

type Check struct {
	Expr Expr
}

func (*Check) constraint() {}

// ----- Expressions -----
type Expr interface {
	Node
	exprNode()
}

type NumberLit struct {
	Value uint64
}

type Ident struct {
	Name string
}

type StringLit struct {
	Value string
}

type BoolLit struct {
	Value bool
}

// UnaryExpr is a prefix (-, +, NOT) or postfix (ASC, DESC) operation.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*NumberLit) node()      {}
func (*Ident) node()          {}
func (*StringLit) node()      {}
func (*BoolLit) node()        {}
func (*UnaryExpr) node()      {}
func (*BinaryExpr) node()     {}
func (*NumberLit) exprNode()  {}
func (*Ident) exprNode()      {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}

type UnaryOp uint8

const (
	UnaryMinus UnaryOp = iota
	UnaryPlus
	Not
	Asc
	Desc
)

var unaryNames = [...]string{
	UnaryMinus: "-",
	UnaryPlus:  "+",
	Not:        "NOT",
	Asc:        "ASC",
	Desc:       "DESC",
}

func (op UnaryOp) String() string { return unaryNames[op] }

// Postfix reports whether op follows its operand.
func (op UnaryOp) Postfix() bool { return op == Asc || op == Desc }

type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	And
	Or
)

var binaryNames = [...]string{
	Add:   "+",
	Sub:   "-",
	Mul:   "*",
	Div:   "/",
	Eq:    "=",
	NotEq: "<>",
	Lt:    "<",
	LtEq:  "<=",
	Gt:    ">",
	GtEq:  ">=",
	And:   "AND",
	Or:    "OR",
}

func (op BinaryOp) String() string { return binaryNames[op] }
