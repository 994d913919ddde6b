package extract

import (
	"testing"

	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/flowparser"
	"github.com/shyptr/flowgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustExtract(t *testing.T, source string, opType model.OperationType) *model.IntermediateState {
	t.Helper()
	doc, err := flowparser.Parse(source)
	require.NoError(t, err)
	state, err := New(nil).Extract(doc, opType)
	require.NoError(t, err)
	return state
}

func TestExtractFragment(t *testing.T) {
	state := mustExtract(t, `export type Foo = {| +$refType: Foo$ref, id: string, +completed: ?boolean |};`, model.Fragment("Foo", false))
	require.NotNil(t, state.Fragment)
	assert.Equal(t, "Foo", state.Fragment.Name)
	assert.False(t, state.Fragment.Plural)
	require.Len(t, state.Fragment.Definition.Values, 2)
	assert.Equal(t, []string{model.AnchorFragment}, state.Fragment.Definition.AtPath)

	id := state.Fragment.Definition.Values[0].(model.Prop)
	assert.Equal(t, "id", id.Name)
	assert.False(t, id.Value.Nullable)

	completed := state.Fragment.Definition.Values[1].(model.Prop)
	assert.Equal(t, "completed", completed.Name)
	assert.True(t, completed.Value.Nullable)
}

func TestExtractPluralFragment(t *testing.T) {
	state := mustExtract(t,
		`export type Foo = $ReadOnlyArray<{| id: string |}>;`,
		model.Fragment("Foo", true))
	require.NotNil(t, state.Fragment)
	assert.True(t, state.Fragment.Plural)
	assert.Len(t, state.Fragment.Definition.Values, 1)
}

func TestExtractQueryVariablesAndResponse(t *testing.T) {
	state := mustExtract(t, `
export type FooQueryVariables = {| id: string |};
export type FooQueryResponse = {| +name: ?string |};
export type FooQuery = {| variables: FooQueryVariables, response: FooQueryResponse |};
`, model.Query("FooQuery"))
	require.NotNil(t, state.Variables)
	require.NotNil(t, state.Response)
	assert.Equal(t, []string{model.AnchorVariables}, state.Variables.AtPath)
	assert.Equal(t, []string{model.AnchorResponse}, state.Response.AtPath)
}

func TestExtractEnumOrderIndependence(t *testing.T) {
	forward := mustExtract(t, `
export type Status = "ACTIVE" | "INACTIVE" | "%future added value";
export type FooQueryResponse = {| status: Status |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	backward := mustExtract(t, `
export type FooQuery = {| response: FooQueryResponse |};
export type FooQueryResponse = {| status: Status |};
export type Status = "ACTIVE" | "INACTIVE" | "%future added value";
`, model.Query("FooQuery"))

	require.Len(t, forward.Enums, 1)
	require.Len(t, backward.Enums, 1)
	assert.Equal(t, forward.Enums[0].Name, backward.Enums[0].Name)
	assert.Equal(t, forward.Enums[0].Values, backward.Enums[0].Values)
	assert.Equal(t, []string{"ACTIVE", "INACTIVE"}, forward.Enums[0].Values)
}

func TestExtractInlineUnionDropsOther(t *testing.T) {
	state := mustExtract(t, `
export type FooQueryResponse = {| node: {| __typename: "A", a: string |} | {| __typename: "B", b: number |} | {| __typename: "%other" |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))
	require.NotNil(t, state.Response)
	node := state.Response.Values[0].(model.Prop)
	union := node.Value.Type.(model.UnionType).Union
	require.Len(t, union.Members, 2)
	assert.Equal(t, "A", union.Members[0].Name)
	assert.Equal(t, "B", union.Members[1].Name)
	assert.Equal(t, []string{"a", "node", model.AnchorResponse}, union.Members[0].Shape.AtPath)
}

func TestExtractMissingTypenameFails(t *testing.T) {
	doc, err := flowparser.Parse(`
export type FooQueryResponse = {| node: {| a: string |} | {| __typename: "B", b: number |} |};
export type FooQuery = {| response: FooQueryResponse |};
`)
	require.NoError(t, err)
	_, err = New(nil).Extract(doc, model.Query("FooQuery"))
	require.Error(t, err)
	fe, ok := err.(*ferrors.Error)
	require.True(t, ok)
	assert.Equal(t, ferrors.MissingTypenameOnUnion, fe.Kind)
}

func TestExtractFragmentRefs(t *testing.T) {
	state := mustExtract(t, `export type Foo = {| id: string, +$fragmentRefs: Bar$ref & Baz$ref |};`, model.Fragment("Foo", false))
	require.Len(t, state.Fragment.Definition.Values, 3)
	refA := state.Fragment.Definition.Values[1].(model.FragmentRef)
	refB := state.Fragment.Definition.Values[2].(model.FragmentRef)
	assert.Equal(t, "Bar", refA.FragmentName)
	assert.Equal(t, "Baz", refB.FragmentName)
}

func TestExtractAnonymousObjectsNotCollected(t *testing.T) {
	state := mustExtract(t, `
export type FooQueryResponse = {| viewer: {| id: string |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))
	require.Len(t, state.Objects, 0) // the viewer object is inline, discovered by the finalizer, not extract
}
