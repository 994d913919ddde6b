package convert

import (
	"testing"

	"github.com/shyptr/flowgen/extract"
	"github.com/shyptr/flowgen/finalize"
	"github.com/shyptr/flowgen/flowparser"
	"github.com/shyptr/flowgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFull(t *testing.T, source string, opType model.OperationType) *model.FullState {
	t.Helper()
	doc, err := flowparser.Parse(source)
	require.NoError(t, err)
	intermediate, err := extract.New(nil).Extract(doc, opType)
	require.NoError(t, err)
	full, err := finalize.FinalizeState(intermediate)
	require.NoError(t, err)
	return full
}

func TestBuildAssetSkipsPlainScalars(t *testing.T) {
	full := mustFull(t, `
export type FooQueryResponse = {| name: string |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	asset := BuildAsset(full, full.Response, Unwrap, SentinelUndefined)
	assert.Empty(t, asset.Instructions)
}

func TestBuildAssetEnumAndNullable(t *testing.T) {
	full := mustFull(t, `
export type Status = "ACTIVE" | "INACTIVE" | "%future added value";
export type FooQueryResponse = {| status: ?Status |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	asset := BuildAsset(full, full.Response, Unwrap, SentinelUndefined)
	require.Len(t, asset.Instructions, 1)
	nullable, ok := asset.Instructions[0].Instr.(NullableInstr)
	require.True(t, ok)
	enum, ok := nullable.Inner.(EnumInstr)
	require.True(t, ok)
	assert.Equal(t, "Status", enum.Name)
	assert.Equal(t, "status", asset.Instructions[0].JSONPath())
}

func TestBuildAssetNestedObjectAndArray(t *testing.T) {
	full := mustFull(t, `
export type FooQueryResponse = {| viewers: {| id: string |}[] |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	asset := BuildAsset(full, full.Response, Unwrap, SentinelUndefined)
	require.Len(t, asset.Instructions, 1)
	array, ok := asset.Instructions[0].Instr.(ArrayInstr)
	require.True(t, ok)
	obj, ok := array.Inner.(ObjectInstr)
	require.True(t, ok)
	assert.NotEmpty(t, obj.RecordName)
}

func TestBuildAssetUnion(t *testing.T) {
	full := mustFull(t, `
export type FooQueryResponse = {| node: {| __typename: "A", a: string |} | {| __typename: "B", b: number |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	asset := BuildAsset(full, full.Response, Unwrap, SentinelUndefined)
	require.Len(t, asset.Instructions, 1)
	union, ok := asset.Instructions[0].Instr.(UnionInstr)
	require.True(t, ok)
	assert.NotEmpty(t, union.LocalName)
}

func TestBuildAssetWrapVariables(t *testing.T) {
	full := mustFull(t, `
export type FooQueryVariables = {| id: string |};
export type FooQuery = {| variables: FooQueryVariables |};
`, model.Query("FooQuery"))

	asset := BuildAsset(full, full.Variables, Wrap, SentinelUndefined)
	assert.Equal(t, Wrap, asset.Direction)
	assert.Empty(t, asset.Instructions)
}
