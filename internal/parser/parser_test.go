package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddltools/ddlmin/internal/schema"
)

func TestParseStatementBasicColumns(t *testing.T) {
	span := "CREATE TABLE users (" +
		"id bigint PRIMARY KEY AUTO_INCREMENT, " +
		"username varchar(50) NOT NULL UNIQUE)"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	assert.Equal(t, "users", tbl.Name)
	require.Len(t, tbl.Columns, 2)

	id := tbl.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "bigint", id.Type)
	assert.True(t, id.AutoIncrement)
	assert.True(t, tbl.SolePrimaryKey("id"))

	username := tbl.Columns[1]
	assert.Equal(t, "varchar", username.Type)
	assert.Equal(t, "50", username.Length)
	assert.False(t, username.Nullable)
	assert.True(t, tbl.InUniqueKey("username"))
}

func TestParseStatementFullTable(t *testing.T) {
	span := "CREATE TABLE IF NOT EXISTS `orders` (\n" +
		"  `id` bigint unsigned NOT NULL AUTO_INCREMENT COMMENT 'order id',\n" +
		"  `user_id` bigint NOT NULL,\n" +
		"  `status` enum('new','paid','shipped') NOT NULL DEFAULT 'new',\n" +
		"  `amount` decimal(10,2) NOT NULL DEFAULT 0.00,\n" +
		"  `created_at` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n" +
		"  PRIMARY KEY (`id`) USING BTREE,\n" +
		"  UNIQUE KEY `uk_user_status` (`user_id`,`status`),\n" +
		"  KEY `idx_created` (`created_at`(10) DESC) USING HASH,\n" +
		"  CONSTRAINT `fk_orders_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`) ON DELETE CASCADE ON UPDATE RESTRICT\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=100 DEFAULT CHARSET=utf8mb4 COMMENT='customer orders'"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	assert.Equal(t, "orders", tbl.Name)
	assert.Equal(t, "customer orders", tbl.Comment)
	require.Len(t, tbl.Columns, 5)

	assert.Equal(t, "order id", tbl.Columns[0].Comment)
	assert.True(t, tbl.Columns[0].AutoIncrement)

	status := tbl.Columns[2]
	assert.Equal(t, "enum", status.Type)
	assert.Equal(t, "'new','paid','shipped'", status.Length)
	require.NotNil(t, status.Default)
	assert.Equal(t, "new", *status.Default)

	amount := tbl.Columns[3]
	assert.Equal(t, "10,2", amount.Length)
	require.NotNil(t, amount.Default)
	assert.Equal(t, "0.00", *amount.Default)

	created := tbl.Columns[4]
	require.NotNil(t, created.Default)
	assert.Equal(t, "CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP", *created.Default)

	require.NotNil(t, tbl.PrimaryKey)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey.Columns)

	require.Len(t, tbl.UniqueKeys, 1)
	assert.Equal(t, "uk_user_status", tbl.UniqueKeys[0].Name)
	assert.Equal(t, []string{"user_id", "status"}, tbl.UniqueKeys[0].Columns)

	require.Len(t, tbl.Indexes, 1)
	assert.Equal(t, []string{"created_at"}, tbl.Indexes[0].Columns)

	require.Len(t, tbl.ForeignKeys, 1)
	fk := tbl.ForeignKeys[0]
	assert.Equal(t, "fk_orders_user", fk.Name)
	assert.Equal(t, []string{"user_id"}, fk.Columns)
	assert.Equal(t, "users", fk.TargetTable)
	assert.Equal(t, []string{"id"}, fk.TargetColumns)
	assert.Equal(t, "CASCADE", fk.OnDelete)
	assert.Equal(t, "RESTRICT", fk.OnUpdate)
}

func TestParseStatementAbsentActionsStayUnset(t *testing.T) {
	span := "CREATE TABLE t (a int, FOREIGN KEY (a) REFERENCES u (b))"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	require.Len(t, tbl.ForeignKeys, 1)
	assert.Empty(t, tbl.ForeignKeys[0].OnDelete)
	assert.Empty(t, tbl.ForeignKeys[0].OnUpdate)
}

func TestParseStatementNoiseClausesIgnored(t *testing.T) {
	span := "CREATE TABLE t (" +
		"name varchar(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci NOT NULL, " +
		"flags int UNSIGNED ZEROFILL DEFAULT 0, " +
		"body text, " +
		"CHECK (flags >= 0), " +
		"FULLTEXT KEY ft_body (body))"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	require.Len(t, tbl.Columns, 3)
	assert.False(t, tbl.Columns[0].Nullable)
	require.Len(t, tbl.Indexes, 1)
	assert.Equal(t, "ft_body", tbl.Indexes[0].Name)
}

func TestParseStatementCompositeForeignKey(t *testing.T) {
	span := "CREATE TABLE line_items (" +
		"order_id bigint, line_no int, " +
		"PRIMARY KEY (order_id, line_no), " +
		"FOREIGN KEY (order_id, line_no) REFERENCES order_lines (oid, lno) ON DELETE SET NULL)"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	require.Len(t, tbl.ForeignKeys, 1)
	fk := tbl.ForeignKeys[0]
	assert.Equal(t, []string{"order_id", "line_no"}, fk.Columns)
	assert.Equal(t, []string{"oid", "lno"}, fk.TargetColumns)
	assert.Equal(t, "SET NULL", fk.OnDelete)
	assert.Equal(t, []string{"order_id", "line_no"}, tbl.PrimaryKey.Columns)
}

func TestParseStatementForeignKeyCountMismatch(t *testing.T) {
	span := "CREATE TABLE t (a int, b int, FOREIGN KEY (a, b) REFERENCES u (x))"

	tbl, iss := ParseStatement(span)
	assert.Nil(t, tbl)
	require.NotNil(t, iss)
	assert.Equal(t, schema.IssueDeclaration, iss.Kind)
	assert.Equal(t, "t", iss.Table)
}

func TestParseStatementDuplicateColumn(t *testing.T) {
	span := "CREATE TABLE t (a int, a varchar(10))"

	tbl, iss := ParseStatement(span)
	assert.Nil(t, tbl)
	require.NotNil(t, iss)
	assert.Contains(t, iss.Message, "duplicate column")
}

func TestParseStatementQualifiedNames(t *testing.T) {
	span := "CREATE TABLE `shop`.`users` (id int, g int, " +
		"FOREIGN KEY (g) REFERENCES shop.groups (id))"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	assert.Equal(t, "users", tbl.Name)
	assert.Equal(t, "groups", tbl.ForeignKeys[0].TargetTable)
}

func TestParseStatementInlineReferences(t *testing.T) {
	span := "CREATE TABLE posts (author_id bigint REFERENCES users (id) ON DELETE CASCADE)"

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	require.Len(t, tbl.ForeignKeys, 1)
	assert.Equal(t, []string{"author_id"}, tbl.ForeignKeys[0].Columns)
	assert.Equal(t, "CASCADE", tbl.ForeignKeys[0].OnDelete)
}

func TestParseStatementNotATable(t *testing.T) {
	_, iss := ParseStatement("CREATE VIEW v AS SELECT 1")
	require.NotNil(t, iss)
	assert.Equal(t, schema.IssueDeclaration, iss.Kind)
}

func TestParseStatementEscapedDefaults(t *testing.T) {
	span := `CREATE TABLE t (note varchar(40) DEFAULT 'it''s ok' COMMENT 'free\'form')`

	tbl, iss := ParseStatement(span)
	require.Nil(t, iss)
	require.NotNil(t, tbl.Columns[0].Default)
	assert.Equal(t, "it's ok", *tbl.Columns[0].Default)
	assert.Equal(t, "free'form", tbl.Columns[0].Comment)
}
