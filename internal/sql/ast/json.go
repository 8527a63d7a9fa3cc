package ast

import "encoding/json"

// JSON encoding adds a "type" discriminator to every node so a statement can
// be shipped over the wire and inspected without the Go types.

func (s *SelectStmt) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Columns []Expr `json:"columns"`
		From    string `json:"from"`
		Where   Expr   `json:"where"`
		OrderBy []Expr `json:"orderby"`
	}{"select", nonNil(s.Columns), s.From, s.Where, nonNil(s.OrderBy)})
}

func (s *CreateTableStmt) MarshalJSON() ([]byte, error) {
	cols := s.Columns
	if cols == nil {
		cols = []TableColumn{}
	}
	return json.Marshal(struct {
		Type      string        `json:"type"`
		TableName string        `json:"table_name"`
		Columns   []TableColumn `json:"column_list"`
	}{"create_table", s.TableName, cols})
}

func (c TableColumn) MarshalJSON() ([]byte, error) {
	cons := make([]any, 0, len(c.Constraints))
	for _, con := range c.Constraints {
		switch con := con.(type) {
		case primaryKey:
			cons = append(cons, map[string]string{"type": "primary_key"})
		case notNull:
			cons = append(cons, map[string]string{"type": "not_null"})
		case *Check:
			cons = append(cons, map[string]any{"type": "check", "expr": con.Expr})
		}
	}
	return json.Marshal(struct {
		Name        string `json:"column_name"`
		Type        string `json:"column_type"`
		Constraints []any  `json:"constraints"`
	}{c.Name, c.Type.String(), cons})
}

func (e *NumberLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value uint64 `json:"value"`
	}{"number", e.Value})
}

func (e *Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{"identifier", e.Name})
}

func (e *StringLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{"string", e.Value})
}

func (e *BoolLit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value bool   `json:"value"`
	}{"bool", e.Value})
}

func (e *UnaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Operand  Expr   `json:"operand"`
	}{"unary", e.Op.String(), e.Operand})
}

func (e *BinaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
	}{"binary", e.Op.String(), e.Left, e.Right})
}

func nonNil(list []Expr) []Expr {
	if list == nil {
		return []Expr{}
	}
	return list
}
