package sqlwire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tuannm99/novaparse/internal/sql/ast"
	"github.com/tuannm99/novaparse/internal/sql/parser"
)

// ParseRequest asks the server to parse one statement.
type ParseRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ParseResponse is the response for a request ID. Exactly one of Statement
// and Error is set.
type ParseResponse struct {
	ID        uint64          `json:"id"`
	Statement json.RawMessage `json:"statement,omitempty"`
	SQL       string          `json:"sql,omitempty"`
	Tree      string          `json:"tree,omitempty"`
	Error     *WireError      `json:"error,omitempty"`
}

// WireError carries a parse failure across the connection.
type WireError struct {
	Kind     string `json:"kind"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

func (e *WireError) Error() string {
	return e.Message
}

// NewWireError converts err, keeping the structure of a *parser.Error.
func NewWireError(err error) *WireError {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &WireError{
			Kind:     perr.Kind.String(),
			Expected: perr.Expected,
			Found:    perr.Found.String(),
			Line:     perr.Found.Pos.Line,
			Column:   perr.Found.Pos.Column,
			Message:  perr.Error(),
		}
	}
	return &WireError{Kind: "internal", Message: err.Error()}
}

// Handle parses req.SQL with a fresh parser.
func Handle(req ParseRequest) ParseResponse {
	stmt, err := parser.Parse(req.SQL)
	if err != nil {
		return ParseResponse{ID: req.ID, Error: NewWireError(err)}
	}

	b, err := json.Marshal(stmt)
	if err != nil {
		return ParseResponse{ID: req.ID, Error: NewWireError(fmt.Errorf("encode statement: %w", err))}
	}
	return ParseResponse{
		ID:        req.ID,
		Statement: b,
		SQL:       ast.SQL(stmt),
		Tree:      ast.Dump(stmt),
	}
}
