package load_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/load"
	"github.com/syssam/mapperkit/dialect"
	"github.com/syssam/mapperkit/schema/field"
)

func loader(opts ...load.Option) *load.Loader {
	return load.New(append([]load.Option{load.WithLogger(slog.New(slog.DiscardHandler))}, opts...)...)
}

func column(t *testing.T, tbl *gen.Table, name string) *gen.Column {
	t.Helper()
	c, err := tbl.Column(name)
	require.NoError(t, err)
	return c
}

func TestYAML(t *testing.T) {
	tables, err := loader().Load(context.Background(), "testdata/user.yaml")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	t.Run("Table", func(t *testing.T) {
		u := tables[0]
		assert.Equal(t, "user_info", u.Name)
		assert.Equal(t, "UserInfo", u.Domain)
		assert.Equal(t, "u", u.Alias)
		assert.Equal(t, "userInfo", u.QueryID)
		assert.Equal(t, "com.example.user", u.Package)
		assert.Equal(t, "`", u.BeginDelimiter)
		assert.Equal(t, "`", u.EndDelimiter)
		assert.Len(t, u.Columns, 5)
	})

	t.Run("Columns", func(t *testing.T) {
		u := tables[0]
		id := column(t, u, "id")
		assert.True(t, id.PrimaryKey)
		assert.True(t, id.Identity)
		assert.Equal(t, field.TypeInt64, id.Type.Type)

		name := column(t, u, "user_name")
		assert.Equal(t, "userName", name.Property)
		assert.Equal(t, "login name", name.Comment)
		assert.Equal(t, field.JDBCVarchar, name.JDBCType())

		balance := column(t, u, "balance")
		assert.Equal(t, field.TypeDecimal, balance.Type.Type)
		assert.True(t, balance.Nullable)
		assert.True(t, balance.NumericAccumulable())

		bio := column(t, u, "bio")
		assert.True(t, bio.BLOB)

		created := column(t, u, "created_at")
		assert.Equal(t, "createdTime", created.Property)
		assert.True(t, created.GeneratedAlways)
		assert.Equal(t, "com.example.TimeHandler", created.TypeHandler)
	})

	t.Run("Overrides", func(t *testing.T) {
		tag := tables[1]
		assert.Equal(t, "Label", tag.Domain)
		assert.Equal(t, field.JDBCChar, column(t, tag, "label").JDBCType())
	})
}

func TestYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"UnknownKey", "tables:\n  - name: a\n    colums: []\n"},
		{"NoName", "tables:\n  - columns:\n      - name: id\n        type: int\n"},
		{"NoColumns", "tables:\n  - name: a\n"},
		{"BadType", "tables:\n  - name: a\n    columns:\n      - name: id\n        type: \"\"\n"},
		{"DuplicateColumn", "tables:\n  - name: a\n    columns:\n      - {name: id, type: int}\n      - {name: id, type: int}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader().YAML([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, gen.ErrInvalidSchema), err.Error())
		})
	}

	t.Run("Dialect", func(t *testing.T) {
		_, err := loader().YAML([]byte("dialect: oracle\ntables: []\n"))
		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})
}

func TestYAMLDefaults(t *testing.T) {
	doc := "tables:\n  - name: audit_log\n    columns:\n      - {name: hit_count, type: int}\n"
	tables, err := loader(load.WithPackage("model"), load.WithDialect("postgresql"), load.WithDelimited()).YAML([]byte(doc))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "AuditLog", tables[0].Domain)
	assert.Equal(t, "model", tables[0].Package)
	assert.Equal(t, `"`, tables[0].BeginDelimiter)
	assert.Equal(t, "hitCount", tables[0].Columns[0].Property)
	assert.Equal(t, field.TypeInt32, tables[0].Columns[0].Type.Type)
}

func TestTBLS(t *testing.T) {
	tables, err := loader(load.WithPackage("shop")).Load(context.Background(), "testdata/schema.json")
	require.NoError(t, err)
	require.Len(t, tables, 1, "views are skipped")

	item := tables[0]
	assert.Equal(t, "public.order_item", item.Name)
	assert.Equal(t, "OrderItem", item.Domain)
	assert.Equal(t, "shop", item.Package)
	assert.Empty(t, item.BeginDelimiter)

	id := column(t, item, "id")
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.Identity)
	assert.Equal(t, "orderId", column(t, item, "order_id").Property)
	assert.Equal(t, field.TypeInt32, column(t, item, "quantity").Type.Type)

	note := column(t, item, "note")
	assert.True(t, note.Nullable)
	assert.False(t, note.BLOB)
	assert.Equal(t, "free text", note.Comment)
}

func TestTBLSErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Malformed", `{"tables": [`},
		{"NoDriver", `{"tables": [{"name": "a"}]}`},
		{"NoTables", `{"driver": {"name": "mysql"}, "tables": []}`},
		{"BadType", `{"driver": {"name": "mysql"}, "tables": [{"name": "a", "type": "BASE TABLE", "columns": [{"name": "id", "type": ""}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader().TBLS([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("Duplicate", func(t *testing.T) {
		_, err := loader().Load(context.Background(), "testdata/user.yaml", "testdata/duplicate.yaml")
		require.Error(t, err)
		assert.True(t, gen.IsSchemaError(err))
		assert.Contains(t, err.Error(), "duplicate.yaml")
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := loader().Load(context.Background(), "testdata/missing.yaml")
		require.Error(t, err)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := loader().Load(ctx, "testdata/user.yaml")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Dialect", func(t *testing.T) {
		l := loader(load.WithDialect(dialect.SQLite))
		tables, err := l.YAML([]byte("tables:\n  - name: t\n    columns:\n      - {name: n, type: integer}\n"))
		require.NoError(t, err)
		assert.Equal(t, field.TypeInt64, tables[0].Columns[0].Type.Type)
	})
}
