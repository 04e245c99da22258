package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapperkit"
	"github.com/syssam/mapperkit/schema/field"
)

// =============================================================================
// Derived Views
// =============================================================================

func TestTable_Views(t *testing.T) {
	tbl := userTable()

	assert.Len(t, tbl.AllColumns(), 5)
	assert.Equal(t, []*Column{tbl.Columns[0]}, tbl.PrimaryKeys())
	assert.Equal(t, []*Column{tbl.Columns[4]}, tbl.BLOBColumns())
	assert.Len(t, tbl.BaseColumns(), 4)
	assert.True(t, tbl.HasBLOBs())
	assert.True(t, tbl.HasPrimaryKey())
	assert.Equal(t, "id", tbl.IdentityColumn().Name)

	plain := plainTable()
	assert.False(t, plain.HasBLOBs())
	assert.Nil(t, plain.IdentityColumn())
}

func TestTable_TypeNames(t *testing.T) {
	tbl := userTable()
	assert.Equal(t, "User", tbl.Record())
	assert.Equal(t, "UserWithBLOBs", tbl.RecordWithBLOBs())
	assert.Equal(t, "UserWithBLOBs", tbl.AllFields())
	assert.Equal(t, "UserExample", tbl.Example())
	assert.Equal(t, "User", tbl.Key())
	assert.Equal(t, "UserMapper", tbl.Mapper())
	assert.Equal(t, "UserMapper", tbl.Namespace())

	tbl.PrimaryKeyClass = true
	tbl.Package = "acme.mapper"
	assert.Equal(t, "UserKey", tbl.Key())
	assert.Equal(t, "acme.mapper.UserMapper", tbl.Namespace())
	assert.Equal(t, "record.", tbl.KeyPrefix())

	assert.Equal(t, "Tag", plainTable().AllFields())
}

func TestTable_Rename(t *testing.T) {
	tbl := userTable()
	require.NoError(t, tbl.Rename("  Member "))
	assert.Equal(t, "MemberExample", tbl.Example())
	assert.Equal(t, "MemberMapper", tbl.Mapper())

	err := tbl.Rename(" ")
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
	assert.Equal(t, "Member", tbl.Domain)
}

func TestTable_Clone(t *testing.T) {
	tbl := userTable()
	c := tbl.Clone()
	c.Columns[1].Name = "changed"
	c.Columns[1].Type.JDBC = field.JDBCChar
	c.Alias = "x"

	assert.Equal(t, "user_name", tbl.Columns[1].Name)
	assert.Equal(t, field.JDBCVarchar, tbl.Columns[1].JDBCType())
	assert.Empty(t, tbl.Alias)
}

// =============================================================================
// Column Lookup
// =============================================================================

func TestTable_SafeColumn(t *testing.T) {
	tbl := userTable()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", "user_name", "user_name"},
		{"delimited", "`user_name`", "user_name"},
		{"whitespace", "  `score` ", "score"},
		{"leading only", "`balance", "balance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tbl.SafeColumn(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := tbl.SafeColumn("`missing`")
		require.Error(t, err)
		assert.True(t, errors.Is(err, mapperkit.ErrNotFound))
		assert.Contains(t, err.Error(), "user.missing")
	})

	t.Run("regexp metacharacters in delimiters", func(t *testing.T) {
		p := plainTable()
		p.BeginDelimiter, p.EndDelimiter = "[", "]"
		c, err := p.SafeColumn("[label]")
		require.NoError(t, err)
		assert.Equal(t, "label", c.Name)
	})
}

// =============================================================================
// Classifier
// =============================================================================

func TestTable_Classify(t *testing.T) {
	tbl := userTable()
	tests := []struct {
		column      string
		escaped     string
		jdbc        string
		accumulable bool
	}{
		{"id", "`id`", field.JDBCBigInt, false},
		{"user_name", "`user_name`", field.JDBCVarchar, false},
		{"score", "`score`", field.JDBCInteger, true},
		{"balance", "`balance`", field.JDBCDecimal, true},
		{"bio", "`bio`", field.JDBCLongVarchar, false},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c, err := tbl.Column(tt.column)
			require.NoError(t, err)
			facts := tbl.Classify(c)
			assert.Equal(t, tt.escaped, facts.EscapedName)
			assert.Equal(t, tt.escaped, facts.AliasedEscapedName)
			assert.Equal(t, tt.jdbc, facts.JDBCType)
			assert.Equal(t, tt.accumulable, facts.NumericAccumulable)
		})
	}

	t.Run("alias", func(t *testing.T) {
		tbl.Alias = "u"
		facts := tbl.Classify(tbl.Columns[1])
		assert.Equal(t, "u.`user_name`", facts.AliasedEscapedName)
		assert.Equal(t, "user u", tbl.AliasedName())
	})

	t.Run("no delimiters", func(t *testing.T) {
		p := plainTable()
		assert.Equal(t, "label", p.EscapedName(p.Columns[1]))
		assert.Equal(t, "#{label,jdbcType=VARCHAR}", p.ParameterClause(p.Columns[1], ""))
	})

	t.Run("classification does not mutate", func(t *testing.T) {
		before := *tbl.Columns[2]
		_ = tbl.Classify(tbl.Columns[2])
		assert.Equal(t, before, *tbl.Columns[2])
	})
}

func TestColumnFilters(t *testing.T) {
	tbl := userTable()
	tbl.Columns[3].GeneratedAlways = true

	names := func(cols []*Column) []string {
		var out []string
		for _, c := range cols {
			out = append(out, c.Name)
		}
		return out
	}
	assert.Equal(t, []string{"id", "user_name", "score", "bio"}, names(WithoutGeneratedAlways(tbl.Columns)))
	assert.Equal(t, []string{"user_name", "score", "bio"}, names(WithoutIdentityAndGeneratedAlways(tbl.Columns)))
}
