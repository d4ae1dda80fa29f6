// Package formatter renders a resolved schema into one of six fixed textual
// formats optimized for LLM consumption. Every renderer is deterministic:
// byte-identical output for byte-identical input, with table order taken from
// the schema and column order from the declaration.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// Formatter writes a schema rendering to its output.
type Formatter interface {
	Format(s *schema.Schema) error
}

// Kind identifies one of the six output formats. The set is closed: format
// grammars are fixed and mutually exclusive, so there is no plugin surface.
type Kind string

const (
	KindDense      Kind = "dense"
	KindStructured Kind = "structured"
	KindTabular    Kind = "tabular"
	KindTiered     Kind = "tiered"
	KindERD        Kind = "erd"
	KindMinimal    Kind = "minimal"
)

type formatEntry struct {
	kind     Kind
	describe string
	build    func(io.Writer) Formatter
}

// formats is the immutable registry, in presentation order. It is never
// mutated after initialization.
var formats = []formatEntry{
	{KindDense, "dense block notation, one brace-delimited block per table", func(w io.Writer) Formatter { return NewDenseFormatter(w) }},
	{KindStructured, "hierarchical JSON structure keyed by table name", func(w io.Writer) Formatter { return NewStructuredFormatter(w) }},
	{KindTabular, "markdown table with one row per column plus a relations section", func(w io.Writer) Formatter { return NewTabularFormatter(w) }},
	{KindTiered, "three-tier overview, core structure, and relations layout", func(w io.Writer) Formatter { return NewTieredFormatter(w) }},
	{KindERD, "entity-relationship narrative with index hints", func(w io.Writer) Formatter { return NewERDFormatter(w) }},
	{KindMinimal, "single-line-per-table notation with the smallest token footprint", func(w io.Writer) Formatter { return NewMinimalFormatter(w) }},
}

// Kinds returns the supported format identifiers in presentation order.
func Kinds() []Kind {
	out := make([]Kind, len(formats))
	for i, f := range formats {
		out[i] = f.kind
	}
	return out
}

// ParseKind resolves a user-supplied format identifier.
func ParseKind(s string) (Kind, error) {
	for _, f := range formats {
		if string(f.kind) == s {
			return f.kind, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (available: %s)", s, joinKinds())
}

// Describe returns the one-line description of a format.
func Describe(k Kind) string {
	for _, f := range formats {
		if f.kind == k {
			return f.describe
		}
	}
	return ""
}

// New creates the formatter for the given kind writing to w.
func New(k Kind, w io.Writer) (Formatter, error) {
	for _, f := range formats {
		if f.kind == k {
			return f.build(w), nil
		}
	}
	return nil, fmt.Errorf("unknown format %q (available: %s)", k, joinKinds())
}

// Render formats the schema into a string.
func Render(s *schema.Schema, k Kind) (string, error) {
	var b strings.Builder
	f, err := New(k, &b)
	if err != nil {
		return "", err
	}
	if err := f.Format(s); err != nil {
		return "", err
	}
	return b.String(), nil
}

func joinKinds() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f.kind)
	}
	return strings.Join(names, ", ")
}
