package formatter

import "github.com/ddltools/ddlmin/internal/schema"

// columnMarkers computes the constraint markers for a column in the fixed
// precedence order shared by all formats: primary key, auto-increment,
// unique/index, not-null, foreign-key target. NN is implied by PK and
// suppressed on primary key columns.
func columnMarkers(t *schema.Table, c *schema.Column) []string {
	var m []string
	pk := t.InPrimaryKey(c.Name)
	if pk {
		m = append(m, "PK")
	}
	if c.AutoIncrement {
		m = append(m, "AI")
	}
	if t.InUniqueKey(c.Name) {
		m = append(m, "UK")
	} else if t.InPlainIndex(c.Name) {
		m = append(m, "IDX")
	}
	if !c.Nullable && !pk {
		m = append(m, "NN")
	}
	if fk := t.ForeignKeyFor(c.Name); fk != nil {
		m = append(m, "FK>"+fk.TargetTable)
	}
	return m
}

// coreColumn reports whether a column belongs in condensed views: a member
// of the primary key, any unique key or index, or any foreign key.
func coreColumn(t *schema.Table, c *schema.Column) bool {
	return t.InPrimaryKey(c.Name) ||
		t.InUniqueKey(c.Name) ||
		t.InPlainIndex(c.Name) ||
		t.ForeignKeyFor(c.Name) != nil
}
