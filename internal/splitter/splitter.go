// Package splitter scans raw DDL text and yields CREATE TABLE statement
// spans. It tracks parenthesis nesting and quoting so that a literal ')' or
// ';' inside a default value or enum list never terminates a span early.
// Statements of unsupported kinds (views, procedures, triggers, standalone
// index or alter statements) are skipped, not reported.
package splitter

import (
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// Scanner iterates over the table-defining statements of a DDL script.
// Usage follows bufio.Scanner: call Next until it returns false, reading
// Statement after each successful call, then check Issues. A Scanner is
// single-use; create a new one to restart.
type Scanner struct {
	src    string
	pos    int
	stmt   string
	issues []schema.Issue
}

// NewScanner returns a Scanner over the given DDL text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Statement returns the span found by the last successful call to Next.
func (s *Scanner) Statement() string {
	return s.stmt
}

// Issues returns the split problems collected so far. Unterminated spans are
// reported here; they never stop the scan.
func (s *Scanner) Issues() []schema.Issue {
	return s.issues
}

// Next advances to the next CREATE TABLE statement. It returns false when the
// input is exhausted.
func (s *Scanner) Next() bool {
	for {
		span, ok := s.scanStatement()
		if !ok {
			return false
		}
		if isCreateTable(span) {
			s.stmt = span
			return true
		}
	}
}

// scanStatement cuts the next statement span regardless of kind. It returns
// ok=false at end of input.
func (s *Scanner) scanStatement() (string, bool) {
	src := s.src
	n := len(src)

	// Skip leading whitespace.
	for s.pos < n && isSpace(src[s.pos]) {
		s.pos++
	}
	if s.pos >= n {
		return "", false
	}

	start := s.pos
	lineStart := start
	depth := 0
	var quote byte

	i := s.pos
	for i < n {
		c := src[i]

		if quote != 0 {
			switch {
			case c == '\\' && quote != '`' && i+1 < n:
				i += 2
				continue
			case c == quote && i+1 < n && src[i+1] == quote:
				i += 2
				continue
			case c == quote:
				quote = 0
			}
			i++
			continue
		}

		switch {
		case c == '\n':
			lineStart = i + 1
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '#':
			i = skipLine(src, i)
			continue
		case c == '-' && i+1 < n && src[i+1] == '-' && lineCommentAt(src, i):
			i = skipLine(src, i)
			continue
		case c == '/' && i+1 < n && src[i+1] == '*':
			i = skipBlockComment(src, i)
			continue
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == ';' && depth == 0:
			s.pos = i + 1
			return strings.TrimSpace(src[start:i]), true
		case depth > 0 && i > start && startsCreate(src, i, lineStart):
			// A fresh CREATE at the start of a line while parentheses are
			// still open means the previous statement never closed. Report
			// it and resynchronize here.
			span := strings.TrimSpace(src[start:i])
			s.issues = append(s.issues, schema.Issue{
				Kind:    schema.IssueSplit,
				Snippet: schema.Snip(span),
				Message: "unterminated statement: unbalanced parentheses",
			})
			s.pos = i
			return s.scanStatement()
		}
		i++
	}

	// End of input.
	s.pos = n
	span := strings.TrimSpace(src[start:])
	if span == "" {
		return "", false
	}
	if quote != 0 {
		s.issues = append(s.issues, schema.Issue{
			Kind:    schema.IssueSplit,
			Snippet: schema.Snip(span),
			Message: "unterminated statement: unclosed quote",
		})
		return "", false
	}
	if depth > 0 {
		s.issues = append(s.issues, schema.Issue{
			Kind:    schema.IssueSplit,
			Snippet: schema.Snip(span),
			Message: "unterminated statement: unbalanced parentheses",
		})
		return "", false
	}
	// A trailing statement without a semicolon is fine.
	return span, true
}

// Split collects every CREATE TABLE span in one call.
func Split(src string) ([]string, []schema.Issue) {
	sc := NewScanner(src)
	var spans []string
	for sc.Next() {
		spans = append(spans, sc.Statement())
	}
	return spans, sc.Issues()
}

// isCreateTable reports whether the span is a supported table-defining
// statement: CREATE [TEMPORARY] TABLE. Views, procedures, triggers, and
// everything else are skipped by the caller.
func isCreateTable(span string) bool {
	words := leadingWords(span, 3)
	if len(words) < 2 || !strings.EqualFold(words[0], "CREATE") {
		return false
	}
	if strings.EqualFold(words[1], "TABLE") {
		return true
	}
	return len(words) >= 3 &&
		strings.EqualFold(words[1], "TEMPORARY") &&
		strings.EqualFold(words[2], "TABLE")
}

// leadingWords extracts up to n leading bare words, skipping comments.
func leadingWords(s string, n int) []string {
	var words []string
	i := 0
	for i < len(s) && len(words) < n {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case c == '#':
			i = skipLine(s, i)
		case c == '-' && i+1 < len(s) && s[i+1] == '-' && lineCommentAt(s, i):
			i = skipLine(s, i)
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i = skipBlockComment(s, i)
		case isWordByte(c):
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			words = append(words, s[i:j])
			i = j
		default:
			return words
		}
	}
	return words
}

// startsCreate reports whether the word CREATE begins at i and only
// whitespace precedes it on its line.
func startsCreate(src string, i, lineStart int) bool {
	if i+6 > len(src) || !strings.EqualFold(src[i:i+6], "CREATE") {
		return false
	}
	if i+6 < len(src) && isWordByte(src[i+6]) {
		return false
	}
	for j := lineStart; j < i; j++ {
		if !isSpace(src[j]) {
			return false
		}
	}
	return true
}

// lineCommentAt reports whether "--" at i opens a line comment. MySQL
// requires whitespace (or end of line) after the dashes.
func lineCommentAt(src string, i int) bool {
	if i+2 >= len(src) {
		return true
	}
	c := src[i+2]
	return isSpace(c) || c == '-'
}

func skipLine(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(src string, i int) int {
	end := strings.Index(src[i+2:], "*/")
	if end < 0 {
		return len(src)
	}
	return i + 2 + end + 2
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
