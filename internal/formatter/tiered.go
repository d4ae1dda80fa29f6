package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// TieredFormatter emits three sections of increasing detail: a table-name
// overview, the core structure (only columns that are part of a key or
// index), and the foreign-key relations grouped by owning table.
type TieredFormatter struct {
	writer io.Writer
}

// NewTieredFormatter creates a new tiered formatter.
func NewTieredFormatter(w io.Writer) *TieredFormatter {
	return &TieredFormatter{writer: w}
}

// Format writes the schema in the three-tier layout.
func (f *TieredFormatter) Format(s *schema.Schema) error {
	w := f.writer

	_, _ = fmt.Fprintln(w, "=== Tier 1: Table Overview ===")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%d tables: %s\n", len(s.Tables), strings.Join(s.TableNames(), ", "))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "=== Tier 2: Core Structure ===")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		f.formatCore(&s.Tables[ti])
	}

	_, _ = fmt.Fprintln(w, "=== Tier 3: Relations ===")
	_, _ = fmt.Fprintln(w)
	for ti := range s.Tables {
		t := &s.Tables[ti]
		if len(t.ForeignKeys) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s:\n", t.Name)
		for i := range t.ForeignKeys {
			fk := &t.ForeignKeys[i]
			_, _ = fmt.Fprintf(w, "  -> %s (%s -> %s)\n",
				fk.TargetTable,
				strings.Join(fk.Columns, ", "),
				strings.Join(fk.TargetColumns, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}
	return nil
}

// formatCore writes one table block restricted to its key and index columns.
// Tables with no such columns are omitted entirely from this tier.
func (f *TieredFormatter) formatCore(t *schema.Table) {
	var core []*schema.Column
	for i := range t.Columns {
		if coreColumn(t, &t.Columns[i]) {
			core = append(core, &t.Columns[i])
		}
	}
	if len(core) == 0 {
		return
	}

	header := t.Name + " {"
	if t.Comment != "" {
		header += " -- " + t.Comment
	}
	_, _ = fmt.Fprintln(f.writer, header)
	for _, col := range core {
		line := "  " + col.Name + ": " + col.TypeString()
		if markers := columnMarkers(t, col); len(markers) > 0 {
			line += " " + strings.Join(markers, " ")
		}
		_, _ = fmt.Fprintln(f.writer, line)
	}
	_, _ = fmt.Fprintln(f.writer, "}")
	_, _ = fmt.Fprintln(f.writer)
}
