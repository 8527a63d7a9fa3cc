package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is the subset of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

type Session struct {
	In      LineReader
	Out     io.Writer
	Backend Backend
	History *History
	Format  Format

	Prompt         string
	ContinuePrompt string

	// OnSubmit, when set, is called with every complete statement (used to
	// feed readline's in-memory history).
	OnSubmit func(stmt string)

	buf Buffer
}

const helpText = `meta commands:
  \q | quit | exit       quit
  \history               print history
  \format tree|sql|json  switch output format
  \help                  show help

sql:
  end statement with ';'
  multiline is supported (the prompt changes until ';')
  an empty line with nothing buffered quits`

// Run reads statements until quit, end of input or a read failure. Parse
// errors are printed and never end the loop.
func (s *Session) Run(ctx context.Context) error {
	s.In.SetPrompt(s.Prompt)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.In.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C drops the pending statement
			if s.buf.Pending() {
				s.buf.Reset()
				s.In.SetPrompt(s.Prompt)
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if !s.buf.Pending() && isMetaCommand(line) {
			if quit := s.meta(strings.TrimSpace(line)); quit {
				return nil
			}
			continue
		}

		stmt, ready, quit := s.buf.Add(line)
		if quit {
			return nil
		}
		if !ready {
			s.In.SetPrompt(s.ContinuePrompt)
			continue
		}
		s.In.SetPrompt(s.Prompt)

		s.submit(ctx, stmt)
	}
}

func (s *Session) submit(ctx context.Context, stmt string) {
	if s.History != nil {
		if err := s.History.Append(stmt); err != nil {
			slog.Warn("repl: history append failed", "err", err)
		}
	}
	if s.OnSubmit != nil {
		s.OnSubmit(compactOneLine(stmt))
	}

	res, err := s.Backend.Parse(ctx, stmt)
	if err != nil {
		slog.Debug("repl: parse failed", "sql", compactOneLine(stmt), "err", err)
		fmt.Fprintf(s.Out, "error: %v\n", err)
		return
	}
	if err := WriteResult(s.Out, s.Format, res); err != nil {
		slog.Warn("repl: write result failed", "err", err)
	}
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

// meta runs a meta command and reports whether the loop should end.
func (s *Session) meta(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "\\q", "quit", "exit":
		return true
	case "\\help":
		fmt.Fprintln(s.Out, helpText)
	case "\\history":
		if s.History != nil {
			s.History.Print(s.Out, 50)
		}
	case "\\format":
		f, err := ParseFormat(strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintf(s.Out, "error: %v\n", err)
			break
		}
		s.Format = f
	default:
		fmt.Fprintf(s.Out, "unknown command: %s\n", line)
	}
	return false
}

// NewReadline opens a terminal line reader. History is managed by History,
// so readline's own history file is disabled.
func NewReadline(prompt string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}
