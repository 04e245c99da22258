package emit_test

import (
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/emit"
	"github.com/syssam/mapperkit/compiler/gen/sqlmap"
	"github.com/syssam/mapperkit/schema/field"
)

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
	t.Package = "com.example.user"
	return t
}

func config(t *testing.T, opts ...gen.Option) *gen.Config {
	t.Helper()
	opts = append([]gen.Option{
		gen.WithPackage("model"),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
		gen.WithProperty(gen.PropAllowMultiQueries, "true"),
		gen.WithProperty(gen.PropUseGeneratedKeys, "true"),
		gen.WithFeatures(gen.AllFeatures...),
	}, opts...)
	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	return c
}

func unit(t *testing.T, c *gen.Config) *gen.Unit {
	t.Helper()
	g, err := gen.NewGenerator(c, sqlmap.All()...)
	require.NoError(t, err)
	u, err := g.Unit(userTable())
	require.NoError(t, err)
	return u
}

// ============================================================================
// XML
// ============================================================================

func TestMapperXML(t *testing.T) {
	u := unit(t, config(t))
	b, err := emit.MapperXML(u)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	root := doc.SelectElement("mapper")
	require.NotNil(t, root)
	assert.Equal(t, "com.example.user.UserMapper", root.SelectAttrValue("namespace", ""))

	t.Run("ResultMaps", func(t *testing.T) {
		maps := root.SelectElements("resultMap")
		require.Len(t, maps, 2)
		assert.Equal(t, gen.BaseResultMap, maps[0].SelectAttrValue("id", ""))
		require.NotNil(t, maps[0].SelectElement("id"))
		assert.Equal(t, "BIGINT", maps[0].SelectElement("id").SelectAttrValue("jdbcType", ""))
		assert.Len(t, maps[0].SelectElements("result"), 3)
		assert.Equal(t, gen.BaseResultMap, maps[1].SelectAttrValue("extends", ""))
		assert.Equal(t, "UserWithBLOBs", maps[1].SelectAttrValue("type", ""))
	})

	t.Run("Statements", func(t *testing.T) {
		var ids []string
		for _, el := range root.ChildElements() {
			switch el.Tag {
			case "select", "insert", "update", "delete":
				ids = append(ids, el.SelectAttrValue("id", ""))
			}
		}
		assert.Equal(t, u.Document.StatementIDs(), ids)
	})

	t.Run("GeneratedKeys", func(t *testing.T) {
		el := root.FindElement("insert[@id='insertBatch']")
		require.NotNil(t, el)
		assert.Equal(t, "true", el.SelectAttrValue("useGeneratedKeys", ""))
		assert.Equal(t, "id", el.SelectAttrValue("keyProperty", ""))
		assert.Equal(t, "list", el.SelectAttrValue("parameterType", ""))

		el = root.FindElement("insert[@id='upsertByExample']")
		require.NotNil(t, el)
		assert.Equal(t, "record.id", el.SelectAttrValue("keyProperty", ""))
	})

	t.Run("Set", func(t *testing.T) {
		el := root.FindElement("update[@id='updateByPrimaryKeySelectiveSync']")
		require.NotNil(t, el)
		set := el.SelectElement("set")
		require.NotNil(t, set)
		ifs := set.SelectElements("if")
		require.Len(t, ifs, 4)
		assert.Equal(t, "userName != null", ifs[0].SelectAttrValue("test", ""))
		assert.Equal(t, "`user_name` = #{userName,jdbcType=VARCHAR},", strings.TrimSpace(textOf(ifs[0])))
		assert.Contains(t, textOf(el), "where `id` = #{id,jdbcType=BIGINT}")
	})

	t.Run("Where", func(t *testing.T) {
		sql := root.FindElement("sql[@id='Example_Where_Clause']")
		require.NotNil(t, sql)
		where := sql.SelectElement("where")
		require.NotNil(t, where)
		outer := where.SelectElement("foreach")
		require.NotNil(t, outer)
		assert.Equal(t, "oredCriteria", outer.SelectAttrValue("collection", ""))
		assert.Equal(t, " or ", outer.SelectAttrValue("separator", ""))
		trim := outer.FindElement("if/trim")
		require.NotNil(t, trim)
		assert.Equal(t, "(", trim.SelectAttrValue("prefix", ""))
		assert.Equal(t, ")", trim.SelectAttrValue("suffix", ""))
	})

	t.Run("Trim", func(t *testing.T) {
		el := root.FindElement("insert[@id='upsertSelective']")
		require.NotNil(t, el)
		trims := el.SelectElements("trim")
		require.Len(t, trims, 3)
		assert.Equal(t, ",", trims[0].SelectAttrValue("suffixOverrides", ""))
		assert.Equal(t, "(", trims[0].SelectAttrValue("prefix", ""))
		assert.Empty(t, trims[2].SelectAttrValue("prefix", ""))
	})

	t.Run("SelectiveRow", func(t *testing.T) {
		el := root.FindElement("insert[@id='insertBatchSelective']")
		require.NotNil(t, el)
		row := el.FindElement("foreach/foreach")
		require.NotNil(t, row)
		assert.Equal(t, "showField", row.SelectAttrValue("collection", ""))
		tests := row.SelectElements("if")
		require.Len(t, tests, 5)
		assert.Equal(t, "'user_name' == column", tests[1].SelectAttrValue("test", ""))
	})
}

var blanks = regexp.MustCompile(`[ \t]+`)

// textOf concatenates the text of the direct character data of el.
func textOf(el *etree.Element) string {
	var b strings.Builder
	for _, c := range el.Child {
		if cd, ok := c.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}

// ============================================================================
// Go
// ============================================================================

func TestGoMapper(t *testing.T) {
	c := config(t, gen.WithHeader("source: user.yaml"))
	b, err := emit.GoMapper(c, unit(t, c))
	require.NoError(t, err)
	src := string(b)
	flat := blanks.ReplaceAllString(src, " ")

	assert.True(t, strings.HasPrefix(src, "// "+emit.Header))
	assert.Contains(t, src, "// source: user.yaml")
	assert.Contains(t, src, "package model")
	assert.Contains(t, src, `"github.com/syssam/mapperkit/criteria"`)
	assert.Contains(t, src, `"github.com/shopspring/decimal"`)

	for _, want := range []string{
		"type UserMapper interface {",
		"InsertBatch(ctx context.Context, list []*UserWithBLOBs) (int, error)",
		"SelectOneByExample(ctx context.Context, example *UserExample) (*User, error)",
		"SelectByExampleShowField(ctx context.Context, showField []string, example *UserExample) ([]*UserWithBLOBs, error)",
		`UserMapperInsertBatch = "com.example.user.UserMapper.insertBatch"`,
		"type UserWithBLOBs struct {",
		"Bio *string `db:\"bio\"`",
		"Balance decimal.Decimal `db:\"balance\"`",
		"UserFieldUserName = \"`user_name`\"",
		"func (e *UserExample) Or() *UserCriteria {",
		"func (e *UserExample) SetOrderByClauseIgnoreNull(orderByClause string) {",
		"func (c *UserCriteria) Example() *UserExample {",
		"func (c *UserCriteria) AndScoreBetween(value1 int32, value2 int32) *UserCriteria {",
		"c.AddCriterionBetween(\"`score` between\", value1, value2, \"score\")",
		"c.AddCriterionIgnoreNull(\"`user_name` =\", value, \"userName\")",
		"c.LikeInsensitive(\"upper(`user_name`) like\", value, \"userName\")",
		"c.AddCriterionNoValue(\"`bio` is null\")",
		"func (c *UserCriteria) AndIdIn(values []int64) *UserCriteria {",
	} {
		assert.Contains(t, flat, want)
	}
}

func TestGoMapper_KeywordParams(t *testing.T) {
	typ := gen.NewColumn("type", "type", field.NewTypeInfo(field.TypeString))
	typ.PrimaryKey = true
	rng := gen.NewColumn("range", "range", field.NewTypeInfo(field.TypeInt32))
	rng.PrimaryKey = true
	tbl := gen.NewTable("slot", "Slot", typ, rng,
		gen.NewColumn("ctx", "ctx", field.NewTypeInfo(field.TypeString)),
	)

	c := config(t)
	g, err := gen.NewGenerator(c, sqlmap.All()...)
	require.NoError(t, err)
	u, err := g.Unit(tbl)
	require.NoError(t, err)
	b, err := emit.GoMapper(c, u)
	require.NoError(t, err)
	flat := blanks.ReplaceAllString(string(b), " ")

	assert.Contains(t, flat, "SelectByPrimaryKeyShowField(ctx context.Context, showField []string, type_ string, range_ int32) (*Slot, error)")
	assert.Contains(t, flat, "func (c *SlotCriteria) AndCtxEqualTo(value string) *SlotCriteria {")
	assert.NotContains(t, flat, " type string")
	assert.NotContains(t, flat, " range int32")
}

func TestEmitters(t *testing.T) {
	c := config(t)
	u := unit(t, c)

	files, err := emit.XML().Emit(u)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "UserMapper.xml", files[0].Path)

	files, err = emit.Go(c).Emit(u)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "user_mapper.go", files[0].Path)
}
