package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// TabularFormatter emits a markdown table with one row per (table, column)
// pair, followed by a relations section. The table name appears only on the
// first row of each table.
type TabularFormatter struct {
	writer io.Writer
}

// NewTabularFormatter creates a new tabular formatter.
func NewTabularFormatter(w io.Writer) *TabularFormatter {
	return &TabularFormatter{writer: w}
}

// Format writes the schema in tabular markup.
func (f *TabularFormatter) Format(s *schema.Schema) error {
	w := f.writer
	_, _ = fmt.Fprintln(w, "| Table | Column | Type | Constraints | Comment |")
	_, _ = fmt.Fprintln(w, "| --- | --- | --- | --- | --- |")

	for ti := range s.Tables {
		t := &s.Tables[ti]
		for ci := range t.Columns {
			col := &t.Columns[ci]
			cell := ""
			if ci == 0 {
				cell = t.Name
			}
			_, _ = fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				cell,
				col.Name,
				col.TypeString(),
				strings.Join(columnMarkers(t, col), ", "),
				col.Comment)
		}
	}

	if !hasForeignKeys(s) {
		return nil
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "## Relations")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		t := &s.Tables[ti]
		for i := range t.ForeignKeys {
			fk := &t.ForeignKeys[i]
			for j := range fk.Columns {
				_, _ = fmt.Fprintf(w, "- %s.%s -> %s.%s\n",
					t.Name, fk.Columns[j],
					fk.TargetTable, fk.TargetColumns[j])
			}
		}
	}
	return nil
}

func hasForeignKeys(s *schema.Schema) bool {
	for i := range s.Tables {
		if len(s.Tables[i].ForeignKeys) > 0 {
			return true
		}
	}
	return false
}
