package parser

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/multierr"

	"github.com/tuannm99/novaparse/internal/sql/ast"
)

// Result is the outcome of parsing one statement text.
type Result struct {
	SQL  string
	Stmt ast.Statement
	Err  error
}

// ParseEach parses independent statement texts concurrently. Each text must
// hold exactly one statement. Results keep the input order.
func ParseEach(ctx context.Context, texts []string) []Result {
	return iter.Map(texts, func(sql *string) Result {
		if err := ctx.Err(); err != nil {
			return Result{SQL: *sql, Err: err}
		}
		stmt, err := Parse(*sql)
		return Result{SQL: *sql, Stmt: stmt, Err: err}
	})
}

// Errors combines the failures in results into one error, nil if none failed.
func Errors(results []Result) error {
	var err error
	for i, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, fmt.Errorf("statement %d: %w", i+1, r.Err))
		}
	}
	return err
}
