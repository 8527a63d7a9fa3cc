package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SQL renders n as canonical SQL text. Nested operations are parenthesized,
// so parsing the output yields a tree equal to n.
func SQL(n Node) string {
	var b strings.Builder
	switch n := n.(type) {
	case *SelectStmt:
		writeSelect(&b, n)
	case *CreateTableStmt:
		writeCreateTable(&b, n)
	case Expr:
		writeExpr(&b, n, false)
	default:
		fmt.Fprintf(&b, "<%T>", n)
	}
	return b.String()
}

func writeSelect(b *strings.Builder, s *SelectStmt) {
	b.WriteString("SELECT ")
	writeExprList(b, s.Columns)
	b.WriteString(" FROM ")
	b.WriteString(s.From)
	if s.Where != nil {
		b.WriteString(" WHERE ")
		writeExpr(b, s.Where, false)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		writeExprList(b, s.OrderBy)
	}
	b.WriteByte(';')
}

func writeCreateTable(b *strings.Builder, s *CreateTableStmt) {
	b.WriteString("CREATE TABLE ")
	b.WriteString(s.TableName)
	b.WriteString(" (")
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.Name)
		b.WriteByte(' ')
		b.WriteString(col.Type.String())
		for _, c := range col.Constraints {
			b.WriteByte(' ')
			writeConstraint(b, c)
		}
	}
	b.WriteString(");")
}

func writeConstraint(b *strings.Builder, c Constraint) {
	switch c := c.(type) {
	case primaryKey:
		b.WriteString("PRIMARY KEY")
	case notNull:
		b.WriteString("NOT NULL")
	case *Check:
		b.WriteString("CHECK (")
		writeExpr(b, c.Expr, false)
		b.WriteByte(')')
	}
}

func writeExprList(b *strings.Builder, list []Expr) {
	for i, e := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e, false)
	}
}

// writeExpr parenthesizes compound expressions when nested is set. Prefix
// operators bind tighter than anything else and never need parentheses.
func writeExpr(b *strings.Builder, e Expr, nested bool) {
	switch e := e.(type) {
	case *NumberLit:
		b.WriteString(strconv.FormatUint(e.Value, 10))
	case *Ident:
		b.WriteString(e.Name)
	case *StringLit:
		b.WriteString(quote(e.Value))
	case *BoolLit:
		if e.Value {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
	case *UnaryExpr:
		if e.Op.Postfix() {
			if nested {
				b.WriteByte('(')
			}
			writeExpr(b, e.Operand, true)
			b.WriteByte(' ')
			b.WriteString(e.Op.String())
			if nested {
				b.WriteByte(')')
			}
			return
		}
		b.WriteString(e.Op.String())
		if e.Op == Not {
			b.WriteByte(' ')
		}
		writeExpr(b, e.Operand, true)
	case *BinaryExpr:
		if nested {
			b.WriteByte('(')
		}
		writeExpr(b, e.Left, true)
		b.WriteByte(' ')
		b.WriteString(e.Op.String())
		b.WriteByte(' ')
		writeExpr(b, e.Right, true)
		if nested {
			b.WriteByte(')')
		}
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}

// quote picks a delimiter not present in s; string literals have no escapes.
func quote(s string) string {
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}

func (t DBType) String() string {
	switch t.Kind {
	case TypeInt:
		return "INT"
	case TypeBool:
		return "BOOL"
	case TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Length)
	default:
		return fmt.Sprintf("TypeKind(%d)", t.Kind)
	}
}

// Dump renders n as an indented tree, one node per line.
func Dump(n Node) string {
	d := dumper{}
	d.node(n, 0)
	return d.b.String()
}

type dumper struct {
	b strings.Builder
}

func (d *dumper) line(depth int, format string, args ...any) {
	d.b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *dumper) node(n Node, depth int) {
	switch n := n.(type) {
	case *SelectStmt:
		d.line(depth, "Select")
		d.line(depth+1, "columns:")
		for _, e := range n.Columns {
			d.node(e, depth+2)
		}
		d.line(depth+1, "from: %s", n.From)
		if n.Where == nil {
			d.line(depth+1, "where: none")
		} else {
			d.line(depth+1, "where:")
			d.node(n.Where, depth+2)
		}
		d.line(depth+1, "orderby:")
		for _, e := range n.OrderBy {
			d.node(e, depth+2)
		}
	case *CreateTableStmt:
		d.line(depth, "CreateTable")
		d.line(depth+1, "table_name: %s", n.TableName)
		d.line(depth+1, "column_list:")
		for _, col := range n.Columns {
			d.line(depth+2, "Column %s %s", col.Name, col.Type)
			for _, c := range col.Constraints {
				switch c := c.(type) {
				case primaryKey:
					d.line(depth+3, "PrimaryKey")
				case notNull:
					d.line(depth+3, "NotNull")
				case *Check:
					d.line(depth+3, "Check")
					d.node(c.Expr, depth+4)
				}
			}
		}
	case *NumberLit:
		d.line(depth, "Number(%d)", n.Value)
	case *Ident:
		d.line(depth, "Identifier(%q)", n.Name)
	case *StringLit:
		d.line(depth, "String(%q)", n.Value)
	case *BoolLit:
		d.line(depth, "Bool(%t)", n.Value)
	case *UnaryExpr:
		d.line(depth, "Unary %s", n.Op)
		d.node(n.Operand, depth+1)
	case *BinaryExpr:
		d.line(depth, "Binary %s", n.Op)
		d.node(n.Left, depth+1)
		d.node(n.Right, depth+1)
	default:
		d.line(depth, "<%T>", n)
	}
}
