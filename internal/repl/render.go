package repl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tuannm99/novaparse/internal/sql/ast"
	"github.com/tuannm99/novaparse/internal/sql/parser"
)

type Format string

const (
	FormatTree Format = "tree"
	FormatSQL  Format = "sql"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTree, FormatSQL, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want tree, sql or json)", s)
	}
}

// Result is a parsed statement in every presentation the loop can print.
type Result struct {
	Tree string
	SQL  string
	JSON json.RawMessage
}

func NewResult(stmt ast.Statement) (*Result, error) {
	b, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("encode statement: %w", err)
	}
	return &Result{Tree: ast.Dump(stmt), SQL: ast.SQL(stmt), JSON: b}, nil
}

// Backend parses one complete statement.
type Backend interface {
	Parse(ctx context.Context, sql string) (*Result, error)
}

// LocalBackend parses in process.
type LocalBackend struct{}

func (LocalBackend) Parse(_ context.Context, sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	return NewResult(stmt)
}

func WriteResult(w io.Writer, f Format, res *Result) error {
	switch f {
	case FormatSQL:
		_, err := fmt.Fprintln(w, res.SQL)
		return err
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, res.JSON, "", "  "); err != nil {
			return fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	default:
		_, err := io.WriteString(w, res.Tree)
		return err
	}
}
