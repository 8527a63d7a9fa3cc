package repl

import "strings"

// Buffer accumulates input lines until they form a complete statement.
type Buffer struct {
	b strings.Builder
}

// Add appends line. It returns the statement once the buffered text ends
// with ';' outside a string literal. quit is set when an empty line arrives
// while nothing is buffered.
func (b *Buffer) Add(line string) (stmt string, ready bool, quit bool) {
	if strings.TrimSpace(line) == "" && !b.Pending() {
		return "", false, true
	}

	if b.b.Len() > 0 {
		b.b.WriteByte('\n')
	}
	b.b.WriteString(line)

	if !statementComplete(b.b.String()) {
		return "", false, false
	}

	stmt = strings.TrimSpace(b.b.String())
	b.Reset()
	return stmt, true, false
}

// Pending reports whether non-blank text is buffered.
func (b *Buffer) Pending() bool {
	return strings.TrimSpace(b.b.String()) != ""
}

func (b *Buffer) Reset() {
	b.b.Reset()
}

// statementComplete checks the trimmed text ends with a ';' that is not
// inside a quoted literal. Literals have no escapes, so a quote is closed by
// the next occurrence of the same character.
func statementComplete(buf string) bool {
	buf = strings.TrimRight(buf, " \t\r\n")
	if !strings.HasSuffix(buf, ";") {
		return false
	}

	var quote rune
	for _, r := range buf {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		}
	}
	return quote == 0
}

// compactOneLine collapses whitespace runs (including newlines) to single
// spaces so a statement fits on one history line.
func compactOneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitStatements cuts a script into statements using the same completion
// rule as the interactive loop. A trailing fragment without ';' is returned
// as the last element so the parser can report it.
func SplitStatements(script string) []string {
	var (
		out []string
		buf Buffer
	)
	for _, line := range strings.Split(script, "\n") {
		if strings.TrimSpace(line) == "" && !buf.Pending() {
			continue
		}
		if stmt, ready, _ := buf.Add(line); ready {
			out = append(out, stmt)
		}
	}
	if buf.Pending() {
		out = append(out, strings.TrimSpace(buf.b.String()))
	}
	return out
}
