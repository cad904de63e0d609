package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestParseRawSQLSelect(t *testing.T) {
	table, fields, op, ok := ParseRawSQL("SELECT id, name FROM users WHERE id = 1")
	require.True(t, ok)
	require.Equal(t, "users", table)
	require.Equal(t, []string{"id", "name"}, fields)
	require.Equal(t, types.OperationRead, op)
}

func TestParseRawSQLSelectStarHasNoFields(t *testing.T) {
	_, fields, _, ok := ParseRawSQL("SELECT * FROM users")
	require.True(t, ok)
	require.Empty(t, fields)
}

func TestParseRawSQLInsert(t *testing.T) {
	table, fields, op, ok := ParseRawSQL("INSERT INTO users (id, name) VALUES (1, 'a')")
	require.True(t, ok)
	require.Equal(t, "users", table)
	require.Equal(t, []string{"id", "name"}, fields)
	require.Equal(t, types.OperationWrite, op)
}

func TestParseRawSQLUpdate(t *testing.T) {
	table, fields, op, ok := ParseRawSQL("UPDATE users SET name = 'a', age = 2 WHERE id = 1")
	require.True(t, ok)
	require.Equal(t, "users", table)
	require.Equal(t, []string{"name", "age"}, fields)
	require.Equal(t, types.OperationWrite, op)
}

func TestParseRawSQLDelete(t *testing.T) {
	table, _, op, ok := ParseRawSQL("DELETE FROM users WHERE id = 1")
	require.True(t, ok)
	require.Equal(t, "users", table)
	require.Equal(t, types.OperationDelete, op)
}

func TestParseRawSQLRejectsNonSQLText(t *testing.T) {
	_, _, _, ok := ParseRawSQL("hello world, this is not sql")
	require.False(t, ok)
}

func TestRawSQLMatcherFindsLiteralSQLArgument(t *testing.T) {
	chain := types.UnifiedCallChain{
		Language: types.LanguageGo,
		Segments: []types.ChainSegment{
			{Name: "Query", IsCall: true, Args: []types.NormalizedArg{
				{Type: types.ArgString, StringValue: "SELECT id FROM users"},
			}},
		},
	}
	result := (&RawSQLMatcher{}).Match(chain)
	require.NotNil(t, result)
	require.True(t, result.IsRawSQL)
	require.Equal(t, "users", result.Table)
}

func TestRawSQLMatcherNoMatchWithoutSQLArg(t *testing.T) {
	chain := types.UnifiedCallChain{
		Segments: []types.ChainSegment{
			{Name: "DoSomething", Args: []types.NormalizedArg{{Type: types.ArgIdentifier, Value: "x"}}},
		},
	}
	result := (&RawSQLMatcher{}).Match(chain)
	require.Nil(t, result)
}
