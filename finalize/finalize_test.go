package finalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shyptr/flowgen/extract"
	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/flowparser"
	"github.com/shyptr/flowgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFinalize(t *testing.T, source string, opType model.OperationType) *model.FullState {
	t.Helper()
	doc, err := flowparser.Parse(source)
	require.NoError(t, err)
	intermediate, err := extract.New(nil).Extract(doc, opType)
	require.NoError(t, err)
	full, err := FinalizeState(intermediate)
	require.NoError(t, err)
	return full
}

func TestFinalizeNamesAnonymousNestedObject(t *testing.T) {
	full := mustFinalize(t, `
export type FooQueryResponse = {| viewer: {| id: string |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	var viewer *model.FinalizedObj
	for _, obj := range full.Objects {
		if len(obj.AtPath) > 0 && obj.AtPath[0] == "viewer" {
			viewer = obj
		}
	}
	require.NotNil(t, viewer)
	assert.NotEmpty(t, viewer.RecordName)
	assert.True(t, viewer.Declarable())
	assert.Equal(t, []string{"viewer", model.AnchorResponse}, viewer.AtPath)
}

func TestFinalizeUnionMembersAreFoundInUnion(t *testing.T) {
	full := mustFinalize(t, `
export type FooQueryResponse = {| node: {| __typename: "A", a: string |} | {| __typename: "B", b: number |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	require.Len(t, full.Unions, 1)
	assert.NotEmpty(t, full.Unions[0].Name)

	var members int
	for _, obj := range full.Objects {
		if obj.FoundInUnion {
			members++
			assert.False(t, obj.Declarable())
		}
	}
	assert.Equal(t, 2, members)
}

func TestFinalizeDedupsEnumsByName(t *testing.T) {
	full := mustFinalize(t, `
export type Status = "ACTIVE" | "INACTIVE" | "%future added value";
export type FooQueryResponse = {| a: Status, b: Status |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	require.Len(t, full.Enums, 1)
	want := &model.FullEnum{Name: "Status", Values: []string{"ACTIVE", "INACTIVE"}}
	if diff := cmp.Diff(want, full.Enums[0]); diff != "" {
		t.Errorf("dedup'd enum mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalizeNamedObjectKeepsOriginalName(t *testing.T) {
	full := mustFinalize(t, `
export type Viewer = {| id: string |};
export type FooQueryResponse = {| viewer: Viewer |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"))

	var named *model.FinalizedObj
	for _, obj := range full.Objects {
		if obj.OriginalFlowTypeName == "Viewer" {
			named = obj
		}
	}
	require.NotNil(t, named)
	assert.Equal(t, "Viewer", named.RecordName)
	assert.Equal(t, []string{model.AnchorRoot}, named.AtPath)
}

func TestFindAppropriateObjNameEmptyPath(t *testing.T) {
	_, err := findAppropriateObjName(nil, map[string]bool{}, nil)
	require.Error(t, err)
	fe, ok := err.(*ferrors.Error)
	require.True(t, ok)
	assert.Equal(t, ferrors.ObjectPathEmpty, fe.Kind)
}

func TestFindAppropriateObjNameCollision(t *testing.T) {
	used := map[string]bool{"ResponseViewer": true}
	name, err := findAppropriateObjName(nil, used, []string{"viewer", "response"})
	require.NoError(t, err)
	assert.Equal(t, "ResponseViewer2", name)
}
