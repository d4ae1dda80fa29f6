package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// MinimalFormatter emits the smallest rendering, one line per table:
//
//	users(id*,username!) <- orders # user accounts
//
// where '*' marks a primary-key column, '!' a unique-key column, '>target' a
// foreign-key column, and '<-' lists the tables whose foreign keys point
// here, omitted when there are none.
type MinimalFormatter struct {
	writer io.Writer
}

// NewMinimalFormatter creates a new minimal notation formatter.
func NewMinimalFormatter(w io.Writer) *MinimalFormatter {
	return &MinimalFormatter{writer: w}
}

// Format writes the schema in minimal notation.
func (f *MinimalFormatter) Format(s *schema.Schema) error {
	for ti := range s.Tables {
		t := &s.Tables[ti]

		cols := make([]string, 0, len(t.Columns))
		for ci := range t.Columns {
			col := &t.Columns[ci]
			marked := col.Name
			if t.InPrimaryKey(col.Name) {
				marked += "*"
			} else if t.InUniqueKey(col.Name) {
				marked += "!"
			}
			if fk := t.ForeignKeyFor(col.Name); fk != nil {
				marked += ">" + fk.TargetTable
			}
			cols = append(cols, marked)
		}

		line := fmt.Sprintf("%s(%s)", t.Name, strings.Join(cols, ","))
		if refs := referencers(t); len(refs) > 0 {
			line += " <- " + strings.Join(refs, ",")
		}
		if t.Comment != "" {
			line += " # " + t.Comment
		}
		_, _ = fmt.Fprintln(f.writer, line)
	}
	return nil
}

// referencers lists the tables referencing this one, de-duplicated in
// first-seen order.
func referencers(t *schema.Table) []string {
	var out []string
	seen := make(map[string]bool)
	for i := range t.ReferencedBy {
		name := t.ReferencedBy[i].Table
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
