package schema

// Schema represents a complete database schema. Table order matches the
// first-seen order in the source DDL and is preserved by every renderer.
type Schema struct {
	Tables []Table
}

// Table looks up a table by name. Returns nil if the table is not part of
// this schema view (foreign keys may still name such tables).
func (s *Schema) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// TableNames returns all table names in schema order.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i := range s.Tables {
		names[i] = s.Tables[i].Name
	}
	return names
}

// Table represents a single database table parsed from one CREATE TABLE
// statement. ReferencedBy is derived and only populated by the resolver once
// the whole schema is known, since forward references are legal.
type Table struct {
	Name         string
	Comment      string
	Columns      []Column
	PrimaryKey   *Index
	UniqueKeys   []Index
	Indexes      []Index
	ForeignKeys  []ForeignKey
	ReferencedBy []Reference
}

// Column looks up a column by name.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// InPrimaryKey reports whether the named column is part of the primary key.
func (t *Table) InPrimaryKey(col string) bool {
	return t.PrimaryKey != nil && t.PrimaryKey.Has(col)
}

// SolePrimaryKey reports whether the named column is the only member of the
// primary key. Such columns get the single-character marker in minimal output.
func (t *Table) SolePrimaryKey(col string) bool {
	return t.PrimaryKey != nil && len(t.PrimaryKey.Columns) == 1 && t.PrimaryKey.Columns[0] == col
}

// InUniqueKey reports whether the named column is part of any unique key.
func (t *Table) InUniqueKey(col string) bool {
	for i := range t.UniqueKeys {
		if t.UniqueKeys[i].Has(col) {
			return true
		}
	}
	return false
}

// InPlainIndex reports whether the named column is part of any plain index.
func (t *Table) InPlainIndex(col string) bool {
	for i := range t.Indexes {
		if t.Indexes[i].Has(col) {
			return true
		}
	}
	return false
}

// ForeignKeyFor returns the first foreign key containing the named column,
// or nil when the column is not part of any foreign key.
func (t *Table) ForeignKeyFor(col string) *ForeignKey {
	for i := range t.ForeignKeys {
		for _, c := range t.ForeignKeys[i].Columns {
			if c == col {
				return &t.ForeignKeys[i]
			}
		}
	}
	return nil
}

// Column represents a table column. Length holds the verbatim text between
// the type's parentheses (a length, precision/scale pair, or enum value list)
// and is never reformatted.
type Column struct {
	Name          string
	Type          string
	Length        string
	Nullable      bool
	AutoIncrement bool
	Default       *string
	Comment       string
}

// TypeString renders the type with its verbatim length, if any.
func (c *Column) TypeString() string {
	if c.Length != "" {
		return c.Type + "(" + c.Length + ")"
	}
	return c.Type
}

// Index represents a primary key, unique key, or plain index. Member column
// order is the declared composite order and must be preserved.
type Index struct {
	Name    string
	Columns []string
}

// Has reports whether the index contains the named column.
func (idx *Index) Has(col string) bool {
	for _, c := range idx.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// ForeignKey represents a foreign key constraint. Columns and TargetColumns
// correspond positionally. OnDelete/OnUpdate are empty when the clause was
// absent; renderers never synthesize a default action. Target tables are
// related by name only, so self- and mutually-referencing tables need no
// cycle handling.
type ForeignKey struct {
	Name          string
	Columns       []string
	TargetTable   string
	TargetColumns []string
	OnDelete      string
	OnUpdate      string

	// Unresolved is set by the resolver when the target table is absent from
	// the full schema. The key is still rendered as a dangling reference.
	Unresolved bool
}

// Reference records that another table's foreign key targets this table.
type Reference struct {
	Table   string
	Columns []string
}
