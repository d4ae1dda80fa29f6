// Package resolver assembles parsed tables into a schema and derives the
// reverse reference map. Relations stay name-keyed throughout, so
// self-referencing and mutually-referencing tables need no cycle handling.
package resolver

import (
	"fmt"

	"github.com/ddltools/ddlmin/internal/schema"
)

// Resolve builds a Schema from parsed tables in first-seen order. Duplicate
// table names are reported and the first definition wins. Every foreign key
// is looked up by target name: resolvable keys add a ReferencedBy entry to
// their target; unresolvable ones are flagged and reported as warnings, since
// in a full schema they indicate malformed source DDL.
func Resolve(tables []schema.Table) (*schema.Schema, []schema.Issue) {
	var issues []schema.Issue

	s := &schema.Schema{Tables: make([]schema.Table, 0, len(tables))}
	index := make(map[string]int, len(tables))
	for i := range tables {
		name := tables[i].Name
		if _, dup := index[name]; dup {
			issues = append(issues, schema.Issue{
				Kind:    schema.IssueDuplicateTable,
				Table:   name,
				Message: "duplicate table definition discarded, first definition wins",
			})
			continue
		}
		index[name] = len(s.Tables)
		s.Tables = append(s.Tables, tables[i])
	}

	for i := range s.Tables {
		src := &s.Tables[i]
		for j := range src.ForeignKeys {
			fk := &src.ForeignKeys[j]
			ti, ok := index[fk.TargetTable]
			if !ok {
				fk.Unresolved = true
				issues = append(issues, schema.Issue{
					Kind:    schema.IssueUnresolvedReference,
					Table:   src.Name,
					Message: fmt.Sprintf("foreign key targets unknown table %s", fk.TargetTable),
				})
				continue
			}
			target := &s.Tables[ti]
			target.ReferencedBy = append(target.ReferencedBy, schema.Reference{
				Table:   src.Name,
				Columns: fk.Columns,
			})
		}
	}

	return s, issues
}

// Restrict returns a derived schema containing only the named tables, in the
// original schema order. Foreign keys and ReferencedBy entries whose other
// endpoint falls outside the retained set are kept for display; renderers
// print the name without requiring it to resolve.
func Restrict(s *schema.Schema, names []string) *schema.Schema {
	keep := nameSet(names)
	return filter(s, func(name string) bool { return keep[name] })
}

// Remove returns a derived schema without the named tables.
func Remove(s *schema.Schema, names []string) *schema.Schema {
	drop := nameSet(names)
	return filter(s, func(name string) bool { return !drop[name] })
}

func filter(s *schema.Schema, keep func(string) bool) *schema.Schema {
	out := &schema.Schema{}
	for i := range s.Tables {
		if keep(s.Tables[i].Name) {
			out.Tables = append(out.Tables, s.Tables[i])
		}
	}
	return out
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
