// Package ddlmin parses MySQL-flavored DDL and renders the schema in compact
// textual formats optimized for LLM consumption.
//
// The pipeline is pure and synchronous: statement splitting, declaration
// parsing, cross-table resolution, and rendering all operate on text and
// values, with no I/O and no shared mutable state. Problems found along the
// way are returned as values next to the best-effort result, so one bad
// statement never aborts a run.
//
// # Quick Start
//
//	s, issues := ddlmin.Parse(ddlText)
//	for _, iss := range issues {
//		log.Println(iss)
//	}
//	out, err := ddlmin.Render(s, ddlmin.FormatMinimal)
//
// # Output Formats
//
// Six fixed formats are supported: dense, structured, tabular, tiered, erd,
// and minimal. Use Formats to enumerate them and DescribeFormat for a
// one-line description of each.
package ddlmin

import (
	"fmt"
	"os"

	"github.com/ddltools/ddlmin/internal/formatter"
	"github.com/ddltools/ddlmin/internal/parser"
	"github.com/ddltools/ddlmin/internal/resolver"
	"github.com/ddltools/ddlmin/internal/schema"
	"github.com/ddltools/ddlmin/internal/splitter"
)

// Re-exported model and result types. The pipeline packages are internal;
// these aliases are the public surface.
type (
	// Schema is the resolved schema model.
	Schema = schema.Schema
	// Table is one table of a Schema.
	Table = schema.Table
	// Issue is a parse or resolution problem returned next to the result.
	Issue = schema.Issue
	// Format identifies one of the six output formats.
	Format = formatter.Kind
	// Statistics summarizes a schema.
	Statistics = formatter.Statistics
	// Reduction compares token estimates of raw input and rendered output.
	Reduction = formatter.Reduction
)

// The closed set of output formats.
const (
	FormatDense      = formatter.KindDense
	FormatStructured = formatter.KindStructured
	FormatTabular    = formatter.KindTabular
	FormatTiered     = formatter.KindTiered
	FormatERD        = formatter.KindERD
	FormatMinimal    = formatter.KindMinimal
)

// Parse splits the given DDL text into statements, parses every CREATE TABLE
// declaration, and resolves cross-table references. It always returns a
// usable schema; tables that failed to parse are excluded and reported in
// the issue list.
func Parse(text string) (*Schema, []Issue) {
	var tables []schema.Table
	var issues []Issue

	sc := splitter.NewScanner(text)
	for sc.Next() {
		t, iss := parser.ParseStatement(sc.Statement())
		if iss != nil {
			issues = append(issues, *iss)
			continue
		}
		tables = append(tables, *t)
	}
	issues = append(issues, sc.Issues()...)

	s, resolveIssues := resolver.Resolve(tables)
	issues = append(issues, resolveIssues...)
	return s, issues
}

// ParseFile reads a DDL file and parses it. The error covers file access
// only; parse problems are reported through the issue list.
func ParseFile(path string) (*Schema, []Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read DDL file: %w", err)
	}
	s, issues := Parse(string(data))
	return s, issues, nil
}

// Render formats the schema in the requested format. Rendering is
// deterministic: the same schema and format always produce the same bytes.
func Render(s *Schema, f Format) (string, error) {
	return formatter.Render(s, f)
}

// ParseFormat resolves a user-supplied format identifier.
func ParseFormat(name string) (Format, error) {
	return formatter.ParseKind(name)
}

// Formats returns the supported format identifiers in presentation order.
func Formats() []Format {
	return formatter.Kinds()
}

// DescribeFormat returns a one-line description of a format.
func DescribeFormat(f Format) string {
	return formatter.Describe(f)
}

// Restrict returns a derived schema containing only the named tables.
// Relations whose other endpoint falls outside the retained set are kept
// and rendered as dangling references.
func Restrict(s *Schema, names []string) *Schema {
	return resolver.Restrict(s, names)
}

// Remove returns a derived schema without the named tables.
func Remove(s *Schema, names []string) *Schema {
	return resolver.Remove(s, names)
}

// Stats computes table, column, index, and foreign-key counts for a schema.
func Stats(s *Schema) Statistics {
	return formatter.Collect(s)
}

// EstimateReduction estimates the token saving of a rendered output against
// the raw input text. The estimate is a character-length heuristic, not a
// tokenizer count.
func EstimateReduction(raw, rendered string) Reduction {
	return formatter.EstimateReduction(raw, rendered)
}
