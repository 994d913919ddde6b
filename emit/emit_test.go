package emit

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shyptr/flowgen/extract"
	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/finalize"
	"github.com/shyptr/flowgen/flowparser"
	"github.com/shyptr/flowgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitEnumGolden(t *testing.T) {
	enum := &model.FullEnum{Name: "Status", Values: []string{"ACTIVE", "INACTIVE"}}
	p := &printer{}
	r := newRenderer(&model.FullState{})
	r.emitEnums(p, []*model.FullEnum{enum})

	g := goldie.New(t)
	g.Assert(t, "enum_status", []byte(p.buf.String()))
}

func mustPrint(t *testing.T, source string, opType model.OperationType, config model.PrintConfig) string {
	t.Helper()
	doc, err := flowparser.Parse(source)
	require.NoError(t, err)
	intermediate, err := extract.New(nil).Extract(doc, opType)
	require.NoError(t, err)
	full, err := finalize.FinalizeState(intermediate)
	require.NoError(t, err)
	out, err := Print(full, opType, config)
	require.NoError(t, err)
	return out
}

func TestPrintMinimalFragment(t *testing.T) {
	out := mustPrint(t, `export type Foo = {| +$refType: Foo$ref, id: string, +completed: ?boolean |};`,
		model.Fragment("Foo", false), model.PrintConfig{})

	assert.Contains(t, out, headerComment)
	assert.Contains(t, out, "module Types = {")
	assert.Contains(t, out, "type Foo = {")
	assert.Contains(t, out, "id: string,")
	assert.Contains(t, out, "completed: option(bool),")
	assert.NotContains(t, out, "$refType")
	assert.Contains(t, out, "fooFragmentTag")
	assert.Contains(t, out, "let operationType = (\"Fragment\", \"Foo\", false);")
}

func TestPrintQueryEnumAndRefetchVariables(t *testing.T) {
	out := mustPrint(t, `
export type Status = "ACTIVE" | "INACTIVE" | "%future added value";
export type FooQueryVariables = {| id: string, +limit: ?float |};
export type FooQueryResponse = {| status: Status |};
export type FooQuery = {| variables: FooQueryVariables, response: FooQueryResponse |};
`, model.Query("FooQuery"), model.PrintConfig{})

	assert.Contains(t, out, "type Status =")
	assert.Contains(t, out, "| `ACTIVE")
	assert.Contains(t, out, "type variables = Types.Variables;")
	assert.Contains(t, out, "type refetchVariables = {")
	assert.Contains(t, out, "limit: float,") // forced non-optional
	assert.Contains(t, out, "type response = Types.Response;")
}

func TestPrintMutationEmitsWrapResponse(t *testing.T) {
	out := mustPrint(t, `
export type FooMutationResponse = {| ok: boolean |};
export type FooMutation = {| response: FooMutationResponse |};
`, model.Mutation("FooMutation"), model.PrintConfig{})

	assert.Contains(t, out, "type mutationResponse = Types.Response;")
	assert.Contains(t, out, "let responseInstructions")
	assert.Contains(t, out, "let wrapResponseInstructions")
}

func TestPrintPluralFragmentWrapsArray(t *testing.T) {
	out := mustPrint(t, `export type Foo = $ReadOnlyArray<{| id: string |}>;`,
		model.Fragment("Foo", true), model.PrintConfig{})

	assert.Contains(t, out, "type fragment = array(Types.Foo);")
}

func TestPrintConnectionHelper(t *testing.T) {
	out := mustPrint(t, `
export type FooQueryResponse = {| todos: {| edges: {| id: string |} |} |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"), model.PrintConfig{
		Connection: &model.ConnectionConfig{AtObjectPath: []string{model.AnchorResponse, "todos"}, FieldName: "todos"},
	})

	assert.Contains(t, out, "getConnectionNodes")
	assert.Contains(t, out, "data.todos.edges")
}

func TestPrintConnectionHelperNoMatchIsSilent(t *testing.T) {
	out := mustPrint(t, `
export type FooQueryResponse = {| name: string |};
export type FooQuery = {| response: FooQueryResponse |};
`, model.Query("FooQuery"), model.PrintConfig{
		Connection: &model.ConnectionConfig{AtObjectPath: []string{"nope"}, FieldName: "nope"},
	})

	assert.NotContains(t, out, "getConnectionNodes")
}

func TestPrintNoExtractableOperationsFound(t *testing.T) {
	full := &model.FullState{}
	_, err := Print(full, model.Query("Foo"), model.PrintConfig{})
	require.Error(t, err)
	fe, ok := err.(*ferrors.Error)
	require.True(t, ok)
	assert.Equal(t, ferrors.NoExtractableOperationsFound, fe.Kind)
}
