// Package parser turns one CREATE TABLE statement span into a schema.Table.
// It is a small recursive-descent parser over a token stream: member
// declarations are classified by leading keyword, and unrecognized trailing
// clauses are skipped rather than failing, since DDL dialects vary.
package parser

import (
	"strings"

	"github.com/ddltools/ddlmin/internal/schema"
)

// ParseStatement parses a single CREATE TABLE span. On failure it returns a
// declaration issue describing the offending span; the caller drops that
// table and continues with the rest of the input.
func ParseStatement(span string) (*schema.Table, *schema.Issue) {
	p := &parser{src: span, toks: lexAll(span)}
	t, iss := p.parseCreateTable()
	if iss != nil {
		if iss.Snippet == "" {
			iss.Snippet = schema.Snip(span)
		}
		return nil, iss
	}
	return t, nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) is(kind tokKind) bool { return p.peek().kind == kind }

// word reports whether the next token is the given bare keyword.
func (p *parser) word(s string) bool {
	t := p.peek()
	return t.kind == tokWord && strings.EqualFold(t.text, s)
}

// accept consumes the next token if it is the given keyword.
func (p *parser) accept(s string) bool {
	if p.word(s) {
		p.pos++
		return true
	}
	return false
}

// name consumes a bare or backtick-quoted identifier.
func (p *parser) name() (string, bool) {
	t := p.peek()
	if t.kind == tokWord || t.kind == tokIdent {
		p.pos++
		return t.text, true
	}
	return "", false
}

// qualifiedName consumes a possibly database-qualified identifier and
// returns its final component.
func (p *parser) qualifiedName() (string, bool) {
	name, ok := p.name()
	if !ok {
		return "", false
	}
	for p.peek().kind == tokSymbol && p.peek().text == "." {
		p.next()
		nxt, ok2 := p.name()
		if !ok2 {
			break
		}
		name = nxt
	}
	return unqualify(name), true
}

// atMemberEnd reports whether the current member declaration is exhausted.
func (p *parser) atMemberEnd() bool {
	k := p.peek().kind
	return k == tokComma || k == tokRParen || k == tokEOF
}

// skipBalanced consumes a parenthesized group and returns the verbatim inner
// text. The next token must be an opening parenthesis.
func (p *parser) skipBalanced() string {
	open := p.next()
	depth := 1
	inner := open.end
	for {
		t := p.next()
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return strings.TrimSpace(p.src[inner:t.pos])
			}
		case tokEOF:
			return strings.TrimSpace(p.src[inner:t.pos])
		}
	}
}

// skipToMemberEnd discards unrecognized trailing clauses of a member.
func (p *parser) skipToMemberEnd() {
	for !p.atMemberEnd() {
		if p.is(tokLParen) {
			p.skipBalanced()
			continue
		}
		p.next()
	}
}

func (p *parser) fail(msg string) *schema.Issue {
	return &schema.Issue{Kind: schema.IssueDeclaration, Message: msg}
}

func (p *parser) parseCreateTable() (*schema.Table, *schema.Issue) {
	if !p.accept("CREATE") {
		return nil, p.fail("not a CREATE statement")
	}
	p.accept("TEMPORARY")
	if !p.accept("TABLE") {
		return nil, p.fail("not a CREATE TABLE statement")
	}
	if p.accept("IF") {
		p.accept("NOT")
		p.accept("EXISTS")
	}

	name, ok := p.qualifiedName()
	if !ok {
		return nil, p.fail("missing table name")
	}
	t := &schema.Table{Name: name}

	if !p.is(tokLParen) {
		return nil, p.fail("missing member declaration list")
	}
	p.next()

	for {
		if p.is(tokRParen) {
			p.next()
			break
		}
		if p.is(tokEOF) {
			return nil, p.fail("unexpected end of statement in member list")
		}
		if iss := p.parseMember(t); iss != nil {
			iss.Table = t.Name
			return nil, iss
		}
		if p.is(tokComma) {
			p.next()
		}
	}

	p.parseTableOptions(t)

	if dup := duplicateColumn(t); dup != "" {
		return nil, &schema.Issue{
			Kind:    schema.IssueDeclaration,
			Table:   t.Name,
			Message: "duplicate column name " + dup,
		}
	}
	return t, nil
}

// parseMember classifies one member declaration by its leading keyword.
func (p *parser) parseMember(t *schema.Table) *schema.Issue {
	switch {
	case p.accept("PRIMARY"):
		return p.parsePrimaryKey(t)
	case p.accept("UNIQUE"):
		return p.parseUniqueKey(t)
	case p.word("KEY") || p.word("INDEX"):
		p.next()
		return p.parsePlainIndex(t)
	case p.word("FULLTEXT") || p.word("SPATIAL"):
		p.next()
		p.accept("KEY")
		p.accept("INDEX")
		return p.parsePlainIndex(t)
	case p.accept("CONSTRAINT"):
		return p.parseConstraint(t)
	case p.accept("FOREIGN"):
		return p.parseForeignKey(t, "")
	case p.accept("CHECK"):
		// Recognized but not modeled.
		p.skipToMemberEnd()
		return nil
	default:
		return p.parseColumn(t)
	}
}

func (p *parser) parsePrimaryKey(t *schema.Table) *schema.Issue {
	if !p.accept("KEY") {
		return p.fail("malformed primary key declaration")
	}
	cols, iss := p.columnList()
	if iss != nil {
		return iss
	}
	t.PrimaryKey = &schema.Index{Name: "PRIMARY", Columns: cols}
	p.skipToMemberEnd()
	return nil
}

func (p *parser) parseUniqueKey(t *schema.Table) *schema.Issue {
	p.accept("KEY")
	p.accept("INDEX")
	var name string
	if !p.is(tokLParen) {
		name, _ = p.name()
	}
	cols, iss := p.columnList()
	if iss != nil {
		return iss
	}
	t.UniqueKeys = append(t.UniqueKeys, schema.Index{Name: name, Columns: cols})
	p.skipToMemberEnd()
	return nil
}

func (p *parser) parsePlainIndex(t *schema.Table) *schema.Issue {
	var name string
	if !p.is(tokLParen) {
		name, _ = p.name()
	}
	cols, iss := p.columnList()
	if iss != nil {
		return iss
	}
	t.Indexes = append(t.Indexes, schema.Index{Name: name, Columns: cols})
	p.skipToMemberEnd()
	return nil
}

func (p *parser) parseConstraint(t *schema.Table) *schema.Issue {
	var name string
	if !p.word("FOREIGN") && !p.word("UNIQUE") && !p.word("PRIMARY") && !p.word("CHECK") {
		name, _ = p.name()
	}
	switch {
	case p.accept("FOREIGN"):
		return p.parseForeignKey(t, name)
	case p.accept("UNIQUE"):
		return p.parseUniqueKey(t)
	case p.accept("PRIMARY"):
		return p.parsePrimaryKey(t)
	case p.accept("CHECK"):
		p.skipToMemberEnd()
		return nil
	default:
		return p.fail("unrecognized constraint declaration")
	}
}

func (p *parser) parseForeignKey(t *schema.Table, name string) *schema.Issue {
	if !p.accept("KEY") {
		return p.fail("malformed foreign key declaration")
	}
	if !p.is(tokLParen) {
		// Optional index name before the column list.
		p.name()
	}
	cols, iss := p.columnList()
	if iss != nil {
		return iss
	}
	if !p.accept("REFERENCES") {
		return p.fail("foreign key missing REFERENCES clause")
	}
	target, ok := p.qualifiedName()
	if !ok {
		return p.fail("foreign key missing target table")
	}
	tcols, iss := p.columnList()
	if iss != nil {
		return iss
	}
	if len(cols) != len(tcols) {
		return p.fail("foreign key column count mismatch")
	}

	fk := schema.ForeignKey{
		Name:          name,
		Columns:       cols,
		TargetTable:   target,
		TargetColumns: tcols,
	}
	p.parseReferenceActions(&fk)
	t.ForeignKeys = append(t.ForeignKeys, fk)
	p.skipToMemberEnd()
	return nil
}

// parseReferenceActions consumes MATCH and ON DELETE/UPDATE clauses. Absent
// clauses leave the fields empty; formatting layers treat empty as "engine
// default" and never synthesize a value.
func (p *parser) parseReferenceActions(fk *schema.ForeignKey) {
	for {
		switch {
		case p.accept("MATCH"):
			p.name()
		case p.accept("ON"):
			isDelete := p.accept("DELETE")
			if !isDelete && !p.accept("UPDATE") {
				return
			}
			action := p.referenceAction()
			if action == "" {
				return
			}
			if isDelete {
				fk.OnDelete = action
			} else {
				fk.OnUpdate = action
			}
		default:
			return
		}
	}
}

func (p *parser) referenceAction() string {
	switch {
	case p.accept("RESTRICT"):
		return "RESTRICT"
	case p.accept("CASCADE"):
		return "CASCADE"
	case p.accept("NO"):
		p.accept("ACTION")
		return "NO ACTION"
	case p.accept("SET"):
		if p.accept("NULL") {
			return "SET NULL"
		}
		if p.accept("DEFAULT") {
			return "SET DEFAULT"
		}
		return ""
	default:
		return ""
	}
}

// columnList parses a parenthesized list of index member columns, dropping
// key-part lengths and ASC/DESC modifiers.
func (p *parser) columnList() ([]string, *schema.Issue) {
	if !p.is(tokLParen) {
		return nil, p.fail("missing column list")
	}
	p.next()

	var cols []string
	for {
		switch p.peek().kind {
		case tokRParen:
			p.next()
			if len(cols) == 0 {
				return nil, p.fail("empty column list")
			}
			return cols, nil
		case tokEOF:
			return nil, p.fail("unterminated column list")
		case tokComma:
			p.next()
		case tokWord, tokIdent:
			name, _ := p.name()
			cols = append(cols, name)
			if p.is(tokLParen) {
				p.skipBalanced() // key-part length
			}
			p.accept("ASC")
			p.accept("DESC")
		case tokLParen:
			p.skipBalanced()
		default:
			p.next()
		}
	}
}

func (p *parser) parseColumn(t *schema.Table) *schema.Issue {
	name, ok := p.name()
	if !ok {
		return p.fail("unrecognized member declaration")
	}
	typeTok := p.peek()
	if typeTok.kind != tokWord {
		return p.fail("column " + name + " has a malformed type")
	}
	p.next()

	col := schema.Column{Name: name, Type: typeTok.text, Nullable: true}
	if p.is(tokLParen) {
		col.Length = p.skipBalanced()
	}

	for !p.atMemberEnd() {
		switch {
		case p.accept("NOT"):
			if p.accept("NULL") {
				col.Nullable = false
			}
		case p.accept("NULL"):
			col.Nullable = true
		case p.accept("AUTO_INCREMENT"):
			col.AutoIncrement = true
		case p.accept("DEFAULT"):
			v := p.defaultValue()
			col.Default = &v
		case p.accept("ON"):
			if p.accept("UPDATE") {
				p.onUpdateDefault(&col)
			}
		case p.accept("COMMENT"):
			if p.is(tokString) {
				col.Comment = p.next().text
			}
		case p.accept("PRIMARY"):
			p.accept("KEY")
			t.PrimaryKey = &schema.Index{Name: "PRIMARY", Columns: []string{col.Name}}
		case p.accept("UNIQUE"):
			p.accept("KEY")
			t.UniqueKeys = append(t.UniqueKeys, schema.Index{Columns: []string{col.Name}})
		case p.accept("KEY"):
			t.Indexes = append(t.Indexes, schema.Index{Columns: []string{col.Name}})
		case p.accept("REFERENCES"):
			p.columnReference(t, col.Name)
		case p.accept("CHARACTER"):
			p.accept("SET")
			p.name() // charset override, intentionally discarded
		case p.accept("CHARSET"):
			p.name()
		case p.accept("COLLATE"):
			p.name()
		case p.is(tokLParen):
			p.skipBalanced()
		default:
			p.next()
		}
	}

	t.Columns = append(t.Columns, col)
	return nil
}

// defaultValue reads the expression after DEFAULT: a literal, NULL, a signed
// number, a dynamic timestamp (with optional precision), or a parenthesized
// expression kept verbatim.
func (p *parser) defaultValue() string {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.next()
		return t.text
	case tokLParen:
		return "(" + p.skipBalanced() + ")"
	case tokSymbol:
		if t.text == "-" {
			p.next()
			if p.peek().kind == tokWord {
				return "-" + p.next().text
			}
			return "-"
		}
	case tokWord:
		p.next()
		v := t.text
		if p.is(tokLParen) {
			v += "(" + p.skipBalanced() + ")"
		}
		return v
	}
	return ""
}

// onUpdateDefault records the ON UPDATE dynamic-timestamp form on the
// column's default expression.
func (p *parser) onUpdateDefault(col *schema.Column) {
	if p.peek().kind != tokWord {
		return
	}
	expr := p.next().text
	if p.is(tokLParen) {
		expr += "(" + p.skipBalanced() + ")"
	}
	if col.Default != nil {
		v := *col.Default + " ON UPDATE " + expr
		col.Default = &v
	} else {
		v := "ON UPDATE " + expr
		col.Default = &v
	}
}

// columnReference handles an inline REFERENCES clause on a column.
func (p *parser) columnReference(t *schema.Table, col string) {
	target, ok := p.qualifiedName()
	if !ok {
		return
	}
	tcols, iss := p.columnList()
	if iss != nil {
		return
	}
	fk := schema.ForeignKey{
		Columns:       []string{col},
		TargetTable:   target,
		TargetColumns: tcols,
	}
	p.parseReferenceActions(&fk)
	t.ForeignKeys = append(t.ForeignKeys, fk)
}

// parseTableOptions scans the trailing option clauses. Only COMMENT is kept;
// ENGINE, CHARSET, COLLATE, AUTO_INCREMENT and the rest are noise for the
// model's purpose.
func (p *parser) parseTableOptions(t *schema.Table) {
	for !p.is(tokEOF) {
		switch {
		case p.accept("COMMENT"):
			if p.peek().kind == tokSymbol && p.peek().text == "=" {
				p.next()
			}
			if p.is(tokString) {
				t.Comment = p.next().text
			}
		case p.is(tokLParen):
			p.skipBalanced()
		default:
			p.next()
		}
	}
}

func duplicateColumn(t *schema.Table) string {
	seen := make(map[string]bool, len(t.Columns))
	for i := range t.Columns {
		if seen[t.Columns[i].Name] {
			return t.Columns[i].Name
		}
		seen[t.Columns[i].Name] = true
	}
	return ""
}

// unqualify strips a database qualifier from a dotted name.
func unqualify(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
