package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Column {
	return []Column{
		{Name: "id", Property: "id", EscapedName: "`id`", AliasedEscapedName: "u.`id`", JDBCType: "BIGINT"},
		{Name: "name", Property: "name", EscapedName: "`name`", AliasedEscapedName: "u.`name`", JDBCType: "VARCHAR"},
		{Name: "score", Property: "score", EscapedName: "`score`", AliasedEscapedName: "u.`score`", JDBCType: "INTEGER", NumericAccumulable: true},
	}
}

// =============================================================================
// ParameterClause / Assignment Tests
// =============================================================================

func TestColumn_ParameterClause(t *testing.T) {
	c := testColumns()[1]
	assert.Equal(t, "#{name,jdbcType=VARCHAR}", c.ParameterClause(NoPrefix))
	assert.Equal(t, "#{record.name,jdbcType=VARCHAR}", c.ParameterClause(RecordPrefix))

	c.TypeHandler = "com.example.NameHandler"
	assert.Equal(t, "#{item.name,jdbcType=VARCHAR,typeHandler=com.example.NameHandler}", c.ParameterClause(ItemPrefix))
}

func TestAssignment(t *testing.T) {
	cols := testColumns()
	assert.Equal(t, "`name` = #{record.name,jdbcType=VARCHAR}", Assignment(cols[1], RecordPrefix))
	assert.Equal(t,
		"`score` = (case when `score` is null then #{score,jdbcType=INTEGER} else `score` + #{score,jdbcType=INTEGER} end)",
		Assignment(cols[2], NoPrefix))
}

func TestGuard(t *testing.T) {
	assert.Equal(t, "record.name != null", Guard(RecordPrefix, "name"))
	assert.Equal(t, "name != null", Guard(NoPrefix, "name"))
}

// =============================================================================
// Builder Tests
// =============================================================================

func TestSetClause(t *testing.T) {
	t.Run("guarded", func(t *testing.T) {
		set := SetClause(testColumns(), RecordPrefix, true)
		assert.Equal(t, "set ", set.Prefix)
		assert.Equal(t, ", ", set.Separator)
		require.Len(t, set.Items, 3)
		for i, item := range set.Items {
			cond, ok := item.(*If)
			require.True(t, ok, "item %d is guarded", i)
			assert.Equal(t, Guard(RecordPrefix, testColumns()[i].Property), cond.Test)
		}
		assert.True(t, Guarded(set))
	})

	t.Run("unguarded", func(t *testing.T) {
		set := Assignments(testColumns(), NoPrefix, false)
		assert.Empty(t, set.Prefix)
		for _, item := range set.Items {
			_, ok := item.(*Text)
			assert.True(t, ok)
		}
		assert.False(t, Guarded(set))
	})
}

func TestKeysAndValues(t *testing.T) {
	cols := testColumns()

	keys := Keys(cols)
	assert.Equal(t, "(", keys.Prefix)
	assert.Equal(t, ")", keys.Suffix)
	assert.Equal(t, "`id` `name` `score`", Texts(keys))

	values := Values(cols, ItemPrefix, true)
	assert.Len(t, values.Items, len(keys.Items), "keys and values stay positional")
	assert.Equal(t, "#{item.id,jdbcType=BIGINT} #{item.name,jdbcType=VARCHAR} #{item.score,jdbcType=INTEGER}", Texts(values))

	bare := Values(cols, RecordPrefix, false)
	assert.Empty(t, bare.Prefix)
	assert.Empty(t, bare.Suffix)

	sel := ValuesSelective(cols, RecordPrefix, true)
	require.Len(t, sel.Items, 3)
	assert.Equal(t, "record.id != null", sel.Items[0].(*If).Test)

	ks := KeysSelective(cols, NoPrefix)
	assert.Equal(t, "name != null", ks.Items[1].(*If).Test)
}

func TestPrimaryKeyWhere(t *testing.T) {
	cols := testColumns()[:2]
	where := PrimaryKeyWhere(cols, RecordPrefix)
	assert.Equal(t, "where ", where.Prefix)
	assert.Equal(t, " and ", where.Separator)
	assert.Equal(t, "u.`id` = #{record.id,jdbcType=BIGINT} u.`name` = #{record.name,jdbcType=VARCHAR}", Texts(where))
}

func TestExampleWhere(t *testing.T) {
	n := ExampleWhere(UpdateByExampleWhereClause)
	assert.Equal(t, "_parameter != null", n.Test)
	assert.Equal(t, []string{UpdateByExampleWhereClause}, Refs(n))
}

func TestCriteriaWhere(t *testing.T) {
	where := CriteriaWhere("example.oredCriteria")
	assert.Equal(t, "where ", where.Prefix)

	var (
		collections []string
		tests       []string
	)
	Walk(func(n Node) bool {
		switch n := n.(type) {
		case *ForEach:
			collections = append(collections, n.Collection)
		case *If:
			tests = append(tests, n.Test)
		}
		return true
	}, where)
	assert.Equal(t, []string{"example.oredCriteria", "criteria.criteria", "criterion.value"}, collections)
	assert.Equal(t, []string{"criteria.valid", "criterion.noValue", "criterion.singleValue", "criterion.betweenValue", "criterion.listValue"}, tests)
}

func TestRepeat(t *testing.T) {
	fe := Repeat("list", "item", Values(testColumns(), ItemPrefix, true))
	assert.Equal(t, "list", fe.Collection)
	assert.Equal(t, "item", fe.Item)
	assert.Equal(t, ",", fe.Separator)
	assert.True(t, Guarded(fe))
}

func TestRefs_Deduplicates(t *testing.T) {
	nodes := []Node{Ref("a"), When("x != null", Ref("b"), Ref("a")), T("select 1")}
	assert.Equal(t, []string{"a", "b"}, Refs(nodes...))
}
