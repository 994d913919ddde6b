// Package emit implements spec §4.5's getPrintedFullState: it renders a
// model.FullState to a single text blob in the target language, in the
// strict nine-section order the spec lays out.
//
// There is no teacher analogue for a source printer (schemabuilder never
// renders text, it builds a live *graphql.Object graph), so this package
// is new code. It borrows the teacher's determinism discipline instead:
// internal/lexer.go accumulates into one buffer and never touches global
// state, and schemabuilder/output.go sorts map keys before ranging over
// them so two runs over equal input produce byte-identical text. Here
// the "buffer" is a printer wrapping *strings.Builder, and the
// shape->record-name lookup a renderer needs is a field on a struct
// built fresh per Print call, never package-level state.
package emit

import (
	"fmt"
	"strings"

	"github.com/shyptr/flowgen/convert"
	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/model"
)

const headerComment = "/* @generated */"

// printer accumulates output text.
type printer struct {
	buf strings.Builder
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// renderer carries the lookup needed to turn a model.PropType into a
// type expression: an object field referencing a nested shape needs the
// record name the finalizer assigned that shape, not the shape itself. A
// union field needs no lookup, since the finalizer stores its name on
// the model.Union.
type renderer struct {
	objectNames map[*model.ObjectShape]string
}

func newRenderer(state *model.FullState) *renderer {
	r := &renderer{objectNames: make(map[*model.ObjectShape]string)}
	for _, obj := range state.Objects {
		r.objectNames[obj.Definition] = obj.RecordName
	}
	return r
}

// Print runs the full nine-section emission over state for one
// invocation of opType against config.
func Print(state *model.FullState, opType model.OperationType, config model.PrintConfig) (string, error) {
	if state.Variables == nil && state.Response == nil && state.Fragment == nil {
		return "", ferrors.New(ferrors.NoExtractableOperationsFound, "extraction produced no variables, response, or fragment root")
	}

	p := &printer{}
	r := newRenderer(state)

	p.line(headerComment)
	p.line("")

	r.emitEnums(p, state.Enums)
	r.emitUnions(p, state.Unions)
	r.emitTypes(p, state.Objects)
	r.emitRoots(p, state, opType)
	emitInternal(p, state, opType)
	emitFragmentRefAsset(p, state.Fragment)
	r.emitUtils(p, state, config)
	emitOperationDescriptor(p, opType)

	return p.buf.String(), nil
}

// --- 2. enums ---

func (r *renderer) emitEnums(p *printer, enums []*model.FullEnum) {
	for _, enum := range enums {
		p.line("type %s =", enum.Name)
		for _, v := range enum.Values {
			p.line("  | `%s", v)
		}
		p.line("  | `UnknownEnumValue;")
		p.line("")
		p.line("let %sFromString = (raw: string): %s =>", lowerFirst(enum.Name), enum.Name)
		p.line("  switch (raw) {")
		for _, v := range enum.Values {
			p.line("  | %q => `%s", v, v)
		}
		p.line("  | _ => `UnknownEnumValue")
		p.line("  };")
		p.line("")
		p.line("let %sToString = (value: %s): string =>", lowerFirst(enum.Name), enum.Name)
		p.line("  switch (value) {")
		for _, v := range enum.Values {
			p.line("  | `%s => %q", v, v)
		}
		p.line("  | `UnknownEnumValue => %q", "%future added value")
		p.line("  };")
		p.line("")
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}

// --- 3. Unions module ---

func (r *renderer) emitUnions(p *printer, unions []*model.Union) {
	if len(unions) == 0 {
		return
	}
	p.line("module Unions = {")
	for _, union := range unions {
		p.line("  type %s = [", variantTypeName(union))
		for _, m := range union.Members {
			p.line("    | `%s(%s.%s.%s.t)", m.Name, "Unions", union.Name, m.Name)
		}
		p.line("    | `Unselected")
		p.line("  ];")
		p.line("")
		p.line("  module %s = {", union.Name)
		for _, m := range union.Members {
			p.line("    module %s = {", m.Name)
			p.line("      type t = {")
			r.emitRecordFields(p, "        ", m.Shape)
			p.line("      };")
			p.line("    };")
		}
		p.line("  };")
		p.line("")
	}
	p.line("};")
	p.line("open Unions;")
	p.line("")
}

func variantTypeName(union *model.Union) string {
	return union.Name + "Variant"
}

// --- 4. Types module ---

func (r *renderer) emitTypes(p *printer, objects []*model.FinalizedObj) {
	var declarable []*model.FinalizedObj
	for _, obj := range objects {
		if obj.Declarable() {
			declarable = append(declarable, obj)
		}
	}
	if len(declarable) == 0 {
		return
	}
	p.line("module Types = {")
	for i := len(declarable) - 1; i >= 0; i-- {
		obj := declarable[i]
		p.line("  type %s = {", obj.RecordName)
		r.emitRecordFields(p, "    ", obj.Definition)
		p.line("  };")
		p.line("")
	}
	p.line("};")
	p.line("open Types;")
	p.line("")
}

func (r *renderer) emitRecordFields(p *printer, indent string, shape *model.ObjectShape) {
	for _, v := range shape.Values {
		prop, ok := v.(model.Prop)
		if !ok {
			continue
		}
		p.line("%s%s: %s,", indent, prop.Name, r.typeExprFor(prop.Value))
	}
}

func (r *renderer) typeExprFor(v model.PropValue) string {
	t := r.baseTypeExprFor(v.Type)
	if v.Nullable {
		return fmt.Sprintf("option(%s)", t)
	}
	return t
}

func (r *renderer) baseTypeExprFor(t model.PropType) string {
	switch n := t.(type) {
	case model.ScalarType:
		return scalarTypeExpr(n.Scalar)
	case model.EnumType:
		return n.Enum.Name
	case model.UnionType:
		return "Unions." + variantTypeName(n.Union)
	case model.ObjectType:
		name := r.objectNames[n.Shape]
		if name == "" {
			name = "Js.Json.t"
			return name
		}
		return "Types." + name
	case model.ArrayType:
		if n.Elem == nil {
			return "array(Js.Json.t)"
		}
		return fmt.Sprintf("array(%s)", r.typeExprFor(*n.Elem))
	case model.TypeReferenceType:
		return n.Name
	case model.FragmentRefValueType:
		return n.FragmentName + ".t"
	default:
		return "Js.Json.t"
	}
}

func scalarTypeExpr(s model.Scalar) string {
	switch s {
	case model.ScalarString:
		return "string"
	case model.ScalarFloat:
		return "float"
	case model.ScalarBoolean:
		return "bool"
	default:
		return "Js.Json.t"
	}
}

// --- 5. Root definitions ---

// responseName returns the spelling the printer uses for the response
// root, per operation kind (spec §4.5 step 5).
func responseName(kind model.OperationKind) string {
	switch kind {
	case model.KindFragment:
		return "fragmentResponse"
	case model.KindMutation:
		return "mutationResponse"
	case model.KindSubscription:
		return "subscriptionResponse"
	default:
		return "response"
	}
}

// emitRoots prints the operation roots as thin aliases onto the records
// the Types module already declared for them (finalize.registerRoot),
// except refetchVariables, a synthesized shape with no FinalizedObj of
// its own (spec §4.5 step 5).
func (r *renderer) emitRoots(p *printer, state *model.FullState, opType model.OperationType) {
	if state.Variables != nil {
		p.line("type variables = Types.Variables;")
		p.line("")

		if opType.Kind == model.KindQuery {
			p.line("type refetchVariables = {")
			r.emitRecordFields(p, "  ", forceNonOptional(state.Variables))
			p.line("};")
			p.line("")
		}
	}

	if state.Response != nil {
		p.line("type %s = Types.Response;", responseName(opType.Kind))
		p.line("")
	}

	if state.Fragment != nil {
		if state.Fragment.Plural {
			p.line("type fragment = array(Types.%s);", state.Fragment.Name)
		} else {
			p.line("type fragment = Types.%s;", state.Fragment.Name)
		}
		p.line("")
	}
}

// forceNonOptional builds a shallow copy of shape with every direct
// Prop's nullability cleared, for refetchVariables (spec §4.5 step 5:
// "derived from the same shape but with all fields forced
// non-optional"). Nested shapes are shared, not copied — only the top
// level of a GraphQL variables object is re-sent on refetch.
func forceNonOptional(shape *model.ObjectShape) *model.ObjectShape {
	out := &model.ObjectShape{AtPath: shape.AtPath}
	for _, v := range shape.Values {
		if prop, ok := v.(model.Prop); ok {
			prop.Value.Nullable = false
			out.Values = append(out.Values, prop)
			continue
		}
		out.Values = append(out.Values, v)
	}
	return out
}

// --- 6. Internal converter-assets module ---

func emitInternal(p *printer, state *model.FullState, opType model.OperationType) {
	p.line("module Internal = {")
	if state.Variables != nil {
		emitAsset(p, state, "variables", state.Variables, convert.Wrap, convert.SentinelUndefined)
	}
	if state.Response != nil {
		emitAsset(p, state, "response", state.Response, convert.Unwrap, convert.SentinelUndefined)
		if opType.Kind == model.KindMutation {
			emitAsset(p, state, "wrapResponse", state.Response, convert.Wrap, convert.SentinelNull)
		}
	}
	if state.Fragment != nil {
		emitAsset(p, state, "fragment", state.Fragment.Definition, convert.Unwrap, convert.SentinelUndefined)
	}
	p.line("};")
	p.line("")
}

func emitAsset(p *printer, state *model.FullState, name string, shape *model.ObjectShape, direction convert.Direction, sentinel convert.NullSentinel) {
	asset := convert.BuildAsset(state, shape, direction, sentinel)
	p.line("  let %sInstructions = [", name)
	for _, instr := range asset.Instructions {
		p.line("    (%q, %s),", instr.JSONPath(), describeInstruction(instr.Instr))
	}
	p.line("  ];")
	p.line("")
}

func describeInstruction(instr convert.Instruction) string {
	switch t := instr.(type) {
	case convert.Skip:
		return "`Skip"
	case convert.NullableInstr:
		return fmt.Sprintf("`Nullable(%s)", describeInstruction(t.Inner))
	case convert.EnumInstr:
		return fmt.Sprintf("`Enum(%q)", t.Name)
	case convert.UnionInstr:
		return fmt.Sprintf("`Union(%q)", t.LocalName)
	case convert.ArrayInstr:
		return fmt.Sprintf("`Array(%s)", describeInstruction(t.Inner))
	case convert.ObjectInstr:
		return fmt.Sprintf("`Object(%q)", t.RecordName)
	default:
		return "`Skip"
	}
}

// --- 7. Fragment-ref assets ---

func emitFragmentRefAsset(p *printer, fragment *model.FragmentRoot) {
	if fragment == nil {
		return
	}
	p.line("type t;")
	p.line("let %sFragmentTag: t = Obj.magic(%q);", lowerFirst(fragment.Name), fragment.Name)
	p.line("")
}

// --- 8. Utils module ---

func (r *renderer) emitUtils(p *printer, state *model.FullState, config model.PrintConfig) {
	p.line("module Utils = {")
	r.emitConnectionHelper(p, state, config)
	r.emitConstructors(p, state)
	p.line("};")
	p.line("")
}

func (r *renderer) emitConnectionHelper(p *printer, state *model.FullState, config model.PrintConfig) {
	if config.Connection == nil {
		return
	}
	shape := findObjectAtPath(state, config.Connection.AtObjectPath)
	if shape == nil {
		return
	}
	p.line("  let getConnectionNodes = (data) =>")
	p.line("    data.%s.edges->Belt.Array.map(edge => edge.node);", config.Connection.FieldName)
	p.line("")
}

// findObjectAtPath looks up the finalized object whose AtPath matches
// the root-first path supplied in config.Connection, falling back to
// the fragment definition when the path is exactly ["fragment"] (spec
// §4.5 step 8).
func findObjectAtPath(state *model.FullState, rootFirst []string) *model.ObjectShape {
	if len(rootFirst) == 1 && rootFirst[0] == model.AnchorFragment {
		if state.Fragment != nil {
			return state.Fragment.Definition
		}
		return nil
	}
	leafFirst := make([]string, len(rootFirst))
	for i, seg := range rootFirst {
		leafFirst[len(rootFirst)-1-i] = seg
	}
	for _, obj := range state.Objects {
		if pathEqual(obj.AtPath, leafFirst) {
			return obj.Definition
		}
	}
	return nil
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *renderer) emitConstructors(p *printer, state *model.FullState) {
	for _, obj := range state.Objects {
		if obj.OriginalFlowTypeName == "" {
			continue
		}
		if !hasNullableProp(obj.Definition) {
			continue
		}
		p.line("  let make_%s = (", obj.OriginalFlowTypeName)
		for _, v := range obj.Definition.Values {
			prop, ok := v.(model.Prop)
			if !ok {
				continue
			}
			if prop.Value.Nullable {
				p.line("    ~%s=?,", prop.Name)
			} else {
				p.line("    ~%s,", prop.Name)
			}
		}
		p.line("    (),")
		p.line("  ): Types.%s => {", obj.OriginalFlowTypeName)
		for _, v := range obj.Definition.Values {
			prop, ok := v.(model.Prop)
			if !ok {
				continue
			}
			p.line("    %s,", prop.Name)
		}
		p.line("  };")
		p.line("")
	}
}

func hasNullableProp(shape *model.ObjectShape) bool {
	for _, v := range shape.Values {
		if prop, ok := v.(model.Prop); ok && prop.Value.Nullable {
			return true
		}
	}
	return false
}

// --- 9. Operation-type descriptor ---

func emitOperationDescriptor(p *printer, opType model.OperationType) {
	var kind string
	switch opType.Kind {
	case model.KindFragment:
		kind = "Fragment"
	case model.KindQuery:
		kind = "Query"
	case model.KindMutation:
		kind = "Mutation"
	case model.KindSubscription:
		kind = "Subscription"
	}
	p.line("let operationType = (%q, %q, %v);", kind, opType.Name, opType.Plural)
}
