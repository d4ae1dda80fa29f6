package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// StructuredFormatter emits a hierarchical JSON structure keyed by table
// name. JSON is emitted by hand: declaration order of tables and columns is
// an invariant of every rendering, and encoding/json sorts map keys.
type StructuredFormatter struct {
	writer io.Writer
}

// NewStructuredFormatter creates a new structured formatter.
func NewStructuredFormatter(w io.Writer) *StructuredFormatter {
	return &StructuredFormatter{writer: w}
}

// Format writes the schema as a JSON document.
func (f *StructuredFormatter) Format(s *schema.Schema) error {
	w := f.writer
	_, _ = fmt.Fprintln(w, "{")
	for ti := range s.Tables {
		t := &s.Tables[ti]
		_, _ = fmt.Fprintf(w, "  %s: {\n", jstr(t.Name))
		_, _ = fmt.Fprintf(w, "    \"comment\": %s,\n", jstr(t.Comment))

		f.writeColumns(t)
		f.writeList("relations", relationTargets(t), true)
		f.writeList("referenced_by", referenceSources(t), false)

		comma := ","
		if ti == len(s.Tables)-1 {
			comma = ""
		}
		_, _ = fmt.Fprintf(w, "  }%s\n", comma)
	}
	_, _ = fmt.Fprintln(w, "}")
	return nil
}

func (f *StructuredFormatter) writeColumns(t *schema.Table) {
	w := f.writer
	if len(t.Columns) == 0 {
		_, _ = fmt.Fprintln(w, "    \"columns\": {},")
		return
	}
	_, _ = fmt.Fprintln(w, "    \"columns\": {")
	for ci := range t.Columns {
		col := &t.Columns[ci]
		value := strings.Join(columnMarkers(t, col), "/") + "/" + col.TypeString() + "/" + col.Comment
		comma := ","
		if ci == len(t.Columns)-1 {
			comma = ""
		}
		_, _ = fmt.Fprintf(w, "      %s: %s%s\n", jstr(col.Name), jstr(value), comma)
	}
	_, _ = fmt.Fprintln(w, "    },")
}

func (f *StructuredFormatter) writeList(key string, items []string, trailingComma bool) {
	w := f.writer
	comma := ""
	if trailingComma {
		comma = ","
	}
	if len(items) == 0 {
		_, _ = fmt.Fprintf(w, "    %s: []%s\n", jstr(key), comma)
		return
	}
	_, _ = fmt.Fprintf(w, "    %s: [\n", jstr(key))
	for i, item := range items {
		itemComma := ","
		if i == len(items)-1 {
			itemComma = ""
		}
		_, _ = fmt.Fprintf(w, "      %s%s\n", jstr(item), itemComma)
	}
	_, _ = fmt.Fprintf(w, "    ]%s\n", comma)
}

// relationTargets lists the outgoing relation endpoints, one per column pair.
func relationTargets(t *schema.Table) []string {
	var out []string
	for i := range t.ForeignKeys {
		fk := &t.ForeignKeys[i]
		for j := range fk.Columns {
			out = append(out, fk.TargetTable+"."+fk.TargetColumns[j])
		}
	}
	return out
}

// referenceSources lists the incoming reverse-reference endpoints.
func referenceSources(t *schema.Table) []string {
	var out []string
	for i := range t.ReferencedBy {
		ref := &t.ReferencedBy[i]
		for _, col := range ref.Columns {
			out = append(out, ref.Table+"."+col)
		}
	}
	return out
}

// jstr renders a string as a JSON literal with deterministic escaping.
// HTML escaping is off so FK>target markers stay verbatim.
func jstr(s string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
