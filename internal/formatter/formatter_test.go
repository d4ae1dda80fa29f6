package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddltools/ddlmin/internal/schema"
)

// testSchema returns a resolved two-table schema exercising every marker.
func testSchema() *schema.Schema {
	return &schema.Schema{Tables: []schema.Table{
		{
			Name:    "users",
			Comment: "user accounts",
			Columns: []schema.Column{
				{Name: "id", Type: "bigint", Nullable: true, AutoIncrement: true},
				{Name: "username", Type: "varchar", Length: "50"},
				{Name: "email", Type: "varchar", Length: "100", Nullable: true},
			},
			PrimaryKey:   &schema.Index{Name: "PRIMARY", Columns: []string{"id"}},
			UniqueKeys:   []schema.Index{{Name: "uk_username", Columns: []string{"username"}}},
			Indexes:      []schema.Index{{Name: "idx_email", Columns: []string{"email"}}},
			ReferencedBy: []schema.Reference{{Table: "orders", Columns: []string{"user_id"}}},
		},
		{
			Name: "orders",
			Columns: []schema.Column{
				{Name: "id", Type: "bigint", Nullable: true},
				{Name: "user_id", Type: "bigint"},
				{Name: "amount", Type: "decimal", Length: "10,2"},
			},
			PrimaryKey: &schema.Index{Name: "PRIMARY", Columns: []string{"id"}},
			Indexes:    []schema.Index{{Name: "idx_user", Columns: []string{"user_id"}}},
			ForeignKeys: []schema.ForeignKey{{
				Columns:       []string{"user_id"},
				TargetTable:   "users",
				TargetColumns: []string{"id"},
				OnDelete:      "CASCADE",
			}},
		},
	}}
}

func TestDenseFormat(t *testing.T) {
	want := `users { -- user accounts
  id: bigint PK AI
  username: varchar(50) UK NN
  email: varchar(100) IDX
}

orders {
  id: bigint PK
  user_id: bigint IDX NN FK>users
  amount: decimal(10,2) NN

  FK: user_id -> users(id)
}
`
	got, err := Render(testSchema(), KindDense)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStructuredFormat(t *testing.T) {
	want := `{
  "users": {
    "comment": "user accounts",
    "columns": {
      "id": "PK/AI/bigint/",
      "username": "UK/NN/varchar(50)/",
      "email": "IDX/varchar(100)/"
    },
    "relations": [],
    "referenced_by": [
      "orders.user_id"
    ]
  },
  "orders": {
    "comment": "",
    "columns": {
      "id": "PK/bigint/",
      "user_id": "IDX/NN/FK>users/bigint/",
      "amount": "NN/decimal(10,2)/"
    },
    "relations": [
      "users.id"
    ],
    "referenced_by": []
  }
}
`
	got, err := Render(testSchema(), KindStructured)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStructuredFormatKeepsMarkersVerbatim(t *testing.T) {
	s := testSchema()
	s.Tables[0].Comment = `says "hi" & <b>more</b>`

	got, err := Render(s, KindStructured)
	require.NoError(t, err)

	// Angle brackets and ampersands pass through unescaped; quotes and
	// control characters still get JSON escapes.
	assert.Contains(t, got, `"user_id": "IDX/NN/FK>users/bigint/"`)
	assert.Contains(t, got, `"comment": "says \"hi\" & <b>more</b>"`)
	assert.NotContains(t, got, "\\u003e")
	assert.NotContains(t, got, "\\u0026")
}

func TestTabularFormat(t *testing.T) {
	want := `| Table | Column | Type | Constraints | Comment |
| --- | --- | --- | --- | --- |
| users | id | bigint | PK, AI |  |
|  | username | varchar(50) | UK, NN |  |
|  | email | varchar(100) | IDX |  |
| orders | id | bigint | PK |  |
|  | user_id | bigint | IDX, NN, FK>users |  |
|  | amount | decimal(10,2) | NN |  |

## Relations

- orders.user_id -> users.id
`
	got, err := Render(testSchema(), KindTabular)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTieredFormat(t *testing.T) {
	want := `=== Tier 1: Table Overview ===

2 tables: users, orders

=== Tier 2: Core Structure ===

users { -- user accounts
  id: bigint PK AI
  username: varchar(50) UK NN
  email: varchar(100) IDX
}

orders {
  id: bigint PK
  user_id: bigint IDX NN FK>users
}

=== Tier 3: Relations ===

orders:
  -> users (user_id -> id)

`
	got, err := Render(testSchema(), KindTiered)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestERDFormat(t *testing.T) {
	want := `## Core Entities:

- **users**(id:bigint) [username, email] -- user accounts
- **orders**(id:bigint) [user_id]

## Relations:

- orders.user_id -> users.id (1:N)

## Index Hints:

users:
  - idx_email: (email)
orders:
  - idx_user: (user_id)
`
	got, err := Render(testSchema(), KindERD)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestERDIndexHintsSkipUnnamedIndexes(t *testing.T) {
	s := testSchema()
	// An inline KEY declaration produces an unnamed index.
	s.Tables[0].Indexes = []schema.Index{{Columns: []string{"email"}}}

	got, err := Render(s, KindERD)
	require.NoError(t, err)

	hints := got[strings.Index(got, "## Index Hints:"):]
	assert.NotContains(t, hints, "users:")
	assert.Contains(t, hints, "orders:")
	assert.Contains(t, hints, "  - idx_user: (user_id)")
}

func TestMinimalFormat(t *testing.T) {
	want := `users(id*,username!,email) <- orders # user accounts
orders(id*,user_id>users,amount)
`
	got, err := Render(testSchema(), KindMinimal)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRenderingIsIdempotent(t *testing.T) {
	s := testSchema()
	for _, kind := range Kinds() {
		first, err := Render(s, kind)
		require.NoError(t, err)
		second, err := Render(s, kind)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", kind)
	}
}

func TestOrderPreservation(t *testing.T) {
	s := testSchema()
	for _, kind := range Kinds() {
		out, err := Render(s, kind)
		require.NoError(t, err)
		assert.Less(t, strings.Index(out, "users"), strings.Index(out, "orders"), "format %s", kind)
		assert.Less(t, strings.Index(out, "username"), strings.Index(out, "email"), "format %s", kind)
	}
}

func TestDanglingForeignKeyStillRendered(t *testing.T) {
	s := testSchema()
	// A view restricted to orders only: users is gone but the key remains.
	restricted := &schema.Schema{Tables: []schema.Table{s.Tables[1]}}

	dense, err := Render(restricted, KindDense)
	require.NoError(t, err)
	assert.Contains(t, dense, "FK: user_id -> users(id)")

	minimal, err := Render(restricted, KindMinimal)
	require.NoError(t, err)
	assert.Contains(t, minimal, "user_id>users")
}

func TestMarkerPrecedenceConsistency(t *testing.T) {
	s := testSchema()

	dense, err := Render(s, KindDense)
	require.NoError(t, err)
	tabular, err := Render(s, KindTabular)
	require.NoError(t, err)
	minimal, err := Render(s, KindMinimal)
	require.NoError(t, err)

	// The primary-key column carries PK first in both marker lists and '*'
	// in minimal notation.
	assert.Contains(t, dense, "id: bigint PK AI")
	assert.Contains(t, tabular, "| users | id | bigint | PK, AI |")
	assert.Contains(t, minimal, "users(id*")
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "dense", want: KindDense},
		{input: "structured", want: KindStructured},
		{input: "minimal", want: KindMinimal},
		{input: "compact", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindsOrderAndDescriptions(t *testing.T) {
	want := []Kind{KindDense, KindStructured, KindTabular, KindTiered, KindERD, KindMinimal}
	assert.Equal(t, want, Kinds())
	for _, k := range Kinds() {
		assert.NotEmpty(t, Describe(k))
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("yaml"), nil)
	assert.Error(t, err)
}
