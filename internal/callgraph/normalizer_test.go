package callgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruizrica/drift-sub012/internal/types"
)

func TestBuildChainsSingleCallIsItsOwnChain(t *testing.T) {
	pr := types.ParseResult{Calls: []types.CallSite{
		{CalleeName: "Println", Line: 10, Args: []types.CallArg{{Text: `"hello"`}}},
	}}
	chains := BuildChains("main.go", types.LanguageGo, pr)
	require.Len(t, chains, 1)
	require.Len(t, chains[0].Segments, 1)
	require.Equal(t, "Println", chains[0].Segments[0].Name)
}

func TestBuildChainsReassemblesMethodChain(t *testing.T) {
	pr := types.ParseResult{Calls: []types.CallSite{
		{CalleeName: "query", Line: 5, Receiver: ""},
		{CalleeName: "fetch_one", Line: 5, Receiver: `query("select 1")`},
	}}
	chains := BuildChains("db.rs", types.LanguageRust, pr)
	require.Len(t, chains, 1)
	require.Len(t, chains[0].Segments, 2)
	require.Equal(t, "query", chains[0].Segments[0].Name)
	require.Equal(t, "fetch_one", chains[0].Segments[1].Name)
}

func TestBuildChainsIndependentCallsOnSameLineStaySeparate(t *testing.T) {
	pr := types.ParseResult{Calls: []types.CallSite{
		{CalleeName: "foo", Line: 1},
		{CalleeName: "bar", Line: 1},
	}}
	chains := BuildChains("f.go", types.LanguageGo, pr)
	require.Len(t, chains, 2, "two calls with no receiver relationship must not be merged into one chain")
}

func TestBuildChainsOrdersByLine(t *testing.T) {
	pr := types.ParseResult{Calls: []types.CallSite{
		{CalleeName: "second", Line: 20},
		{CalleeName: "first", Line: 10},
	}}
	chains := BuildChains("f.go", types.LanguageGo, pr)
	require.Len(t, chains, 2)
	require.Equal(t, 10, chains[0].Line)
	require.Equal(t, 20, chains[1].Line)
}

func TestNormalizeArgString(t *testing.T) {
	arg := NormalizeArg(`"select * from users"`)
	require.Equal(t, types.ArgString, arg.Type)
	require.Equal(t, "select * from users", arg.StringValue)
}

func TestNormalizeArgNumber(t *testing.T) {
	arg := NormalizeArg("42")
	require.Equal(t, types.ArgNumber, arg.Type)
}

func TestNormalizeArgObjectAndArray(t *testing.T) {
	require.Equal(t, types.ArgObject, NormalizeArg("{id: 1}").Type)
	require.Equal(t, types.ArgArray, NormalizeArg("[1, 2, 3]").Type)
}

func TestNormalizeArgClosure(t *testing.T) {
	require.Equal(t, types.ArgClosure, NormalizeArg("(x) => x + 1").Type)
	require.Equal(t, types.ArgClosure, NormalizeArg("|x| x + 1").Type)
	require.Equal(t, types.ArgClosure, NormalizeArg("lambda x: x + 1").Type)
}

func TestNormalizeArgIdentifier(t *testing.T) {
	arg := NormalizeArg("userId")
	require.Equal(t, types.ArgIdentifier, arg.Type)
}

func TestNormalizeArgOtherFallback(t *testing.T) {
	arg := NormalizeArg("1 + 2")
	require.Equal(t, types.ArgOther, arg.Type)
}
