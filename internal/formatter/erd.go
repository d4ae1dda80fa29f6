package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// ERDFormatter emits an entity-relationship narrative: core entities with
// their primary key and salient columns, relations with cardinality, and an
// index-hint section. Cardinality is always stated as one-to-many from the
// foreign-key side toward the target.
type ERDFormatter struct {
	writer io.Writer
}

// NewERDFormatter creates a new ERD narrative formatter.
func NewERDFormatter(w io.Writer) *ERDFormatter {
	return &ERDFormatter{writer: w}
}

// Format writes the schema as an ERD narrative.
func (f *ERDFormatter) Format(s *schema.Schema) error {
	w := f.writer

	_, _ = fmt.Fprintln(w, "## Core Entities:")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		f.formatEntity(&s.Tables[ti])
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "## Relations:")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		t := &s.Tables[ti]
		for i := range t.ForeignKeys {
			fk := &t.ForeignKeys[i]
			_, _ = fmt.Fprintf(w, "- %s.%s -> %s.%s (1:N)\n",
				t.Name, fk.Columns[0],
				fk.TargetTable, fk.TargetColumns[0])
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "## Index Hints:")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		t := &s.Tables[ti]
		named := namedIndexes(t)
		if len(named) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s:\n", t.Name)
		for _, idx := range named {
			_, _ = fmt.Fprintf(w, "  - %s: (%s)\n", idx.Name, strings.Join(idx.Columns, ", "))
		}
	}
	return nil
}

// namedIndexes returns the table's plain indexes that carry a name. Unnamed
// inline KEY declarations have no hint value and are omitted.
func namedIndexes(t *schema.Table) []*schema.Index {
	var out []*schema.Index
	for i := range t.Indexes {
		if t.Indexes[i].Name != "" {
			out = append(out, &t.Indexes[i])
		}
	}
	return out
}

func (f *ERDFormatter) formatEntity(t *schema.Table) {
	var pk []string
	if t.PrimaryKey != nil {
		for _, name := range t.PrimaryKey.Columns {
			if col := t.Column(name); col != nil {
				pk = append(pk, name+":"+col.TypeString())
			} else {
				pk = append(pk, name)
			}
		}
	}

	line := fmt.Sprintf("- **%s**(%s) [%s]", t.Name, strings.Join(pk, ", "), strings.Join(salientColumns(t), ", "))
	if t.Comment != "" {
		line += " -- " + t.Comment
	}
	_, _ = fmt.Fprintln(f.writer, line)
}

// salientColumns lists the columns that are part of any key or index, in
// declaration order and de-duplicated. Primary key columns are already shown
// and not repeated.
func salientColumns(t *schema.Table) []string {
	var out []string
	for i := range t.Columns {
		col := &t.Columns[i]
		if t.InPrimaryKey(col.Name) {
			continue
		}
		if coreColumn(t, col) {
			out = append(out, col.Name)
		}
	}
	return out
}
