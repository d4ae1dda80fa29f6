package schema

import "fmt"

// IssueKind classifies a parse or resolution problem.
type IssueKind int

const (
	// IssueSplit marks an unterminated statement: unbalanced parentheses or
	// an open quote at the point the statement was cut off.
	IssueSplit IssueKind = iota
	// IssueDeclaration marks a member declaration that could not be parsed;
	// the owning table is dropped from the result.
	IssueDeclaration
	// IssueDuplicateTable marks a table name collision; the first definition
	// wins and the later one is discarded.
	IssueDuplicateTable
	// IssueUnresolvedReference marks a foreign key whose target table is
	// absent from the full, unfiltered schema.
	IssueUnresolvedReference
)

// String returns the issue kind label used in messages.
func (k IssueKind) String() string {
	switch k {
	case IssueSplit:
		return "split"
	case IssueDeclaration:
		return "declaration"
	case IssueDuplicateTable:
		return "duplicate table"
	case IssueUnresolvedReference:
		return "unresolved reference"
	default:
		return "unknown"
	}
}

// Issue describes a problem found while parsing or resolving DDL. Issues are
// returned alongside the best-effort result; no problem aborts the run.
type Issue struct {
	Kind    IssueKind
	Table   string
	Snippet string
	Message string
}

// Error implements the error interface.
func (i Issue) Error() string {
	if i.Table != "" {
		return fmt.Sprintf("%s: table %s: %s", i.Kind, i.Table, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// snippetLimit keeps reported spans short enough for log lines.
const snippetLimit = 120

// Snip truncates a source span for inclusion in an Issue.
func Snip(s string) string {
	if len(s) <= snippetLimit {
		return s
	}
	return s[:snippetLimit] + "..."
}
