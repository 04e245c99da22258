package sqlmap_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/sqlmap"
	"github.com/syssam/mapperkit/schema/field"
)

// userTable returns a table with an identity key, accumulable columns and a
// BLOB column.
func userTable() *gen.Table {
	id := gen.NewColumn("id", "id", field.NewTypeInfo(field.TypeInt64))
	id.PrimaryKey, id.Identity = true, true

	bio := gen.NewColumn("bio", "bio", &field.TypeInfo{Type: field.TypeString, JDBC: field.JDBCLongVarchar})
	bio.Nullable = true

	t := gen.NewTable("user", "User",
		id,
		gen.NewColumn("user_name", "userName", field.NewTypeInfo(field.TypeString)),
		gen.NewColumn("score", "score", field.NewTypeInfo(field.TypeInt32)),
		gen.NewColumn("balance", "balance", field.NewTypeInfo(field.TypeDecimal)),
		bio,
	)
	t.BeginDelimiter, t.EndDelimiter = "`", "`"
	return t
}

// tagTable returns a table without BLOB columns.
func tagTable() *gen.Table {
	id := gen.NewColumn("id", "id", field.NewTypeInfo(field.TypeInt32))
	id.PrimaryKey = true
	return gen.NewTable("tag", "Tag",
		id,
		gen.NewColumn("label", "label", field.NewTypeInfo(field.TypeString)),
	)
}

// logTable returns a table without primary key.
func logTable() *gen.Table {
	return gen.NewTable("audit_log", "AuditLog",
		gen.NewColumn("message", "message", field.NewTypeInfo(field.TypeString)),
		gen.NewColumn("hits", "hits", field.NewTypeInfo(field.TypeInt64)),
	)
}

// generator returns a generator running every built-in synthesizer.
func generator(t *testing.T, opts ...gen.Option) *gen.Generator {
	t.Helper()
	opts = append([]gen.Option{gen.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	g, err := gen.NewGenerator(c, sqlmap.All()...)
	require.NoError(t, err)
	return g
}

// unit synthesizes the unit of tbl.
func unit(t *testing.T, tbl *gen.Table, opts ...gen.Option) *gen.Unit {
	t.Helper()
	u, err := generator(t, opts...).Unit(tbl)
	require.NoError(t, err)
	return u
}

// statement returns the statement id of the unit, failing the test if it is
// missing.
func statement(t *testing.T, u *gen.Unit, id string) *gen.Statement {
	t.Helper()
	s, ok := u.Document.Statement(id)
	require.True(t, ok, "statement %s", id)
	return s
}

func multiQueries() gen.Option {
	return gen.WithProperty(gen.PropAllowMultiQueries, "true")
}
