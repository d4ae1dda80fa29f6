package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// DenseFormatter emits one brace-delimited block per table:
//
//	users { -- user accounts
//	  id: bigint PK AI
//	  username: varchar(50) UK NN login name
//
//	  FK: user_id -> users(id)
//	}
type DenseFormatter struct {
	writer io.Writer
}

// NewDenseFormatter creates a new dense block formatter.
func NewDenseFormatter(w io.Writer) *DenseFormatter {
	return &DenseFormatter{writer: w}
}

// Format writes the schema in dense block notation.
func (f *DenseFormatter) Format(s *schema.Schema) error {
	for i := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		f.formatTable(&s.Tables[i])
	}
	return nil
}

func (f *DenseFormatter) formatTable(t *schema.Table) {
	header := t.Name + " {"
	if t.Comment != "" {
		header += " -- " + t.Comment
	}
	_, _ = fmt.Fprintln(f.writer, header)

	for i := range t.Columns {
		col := &t.Columns[i]
		line := "  " + col.Name + ": " + col.TypeString()
		if markers := columnMarkers(t, col); len(markers) > 0 {
			line += " " + strings.Join(markers, " ")
		}
		if col.Comment != "" {
			line += " " + col.Comment
		}
		_, _ = fmt.Fprintln(f.writer, line)
	}

	if len(t.ForeignKeys) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		for i := range t.ForeignKeys {
			fk := &t.ForeignKeys[i]
			_, _ = fmt.Fprintf(f.writer, "  FK: %s -> %s(%s)\n",
				strings.Join(fk.Columns, ", "),
				fk.TargetTable,
				strings.Join(fk.TargetColumns, ", "))
		}
	}

	_, _ = fmt.Fprintln(f.writer, "}")
}
