// Package convert builds the converter assets of spec §4.6: per root
// (variables, response, fragment, and a second response pass for
// mutations), a table describing, field by field, how to transform a
// value between its raw JSON-ish shape and its target-language shape.
//
// The table-plus-lookup shape mirrors the teacher's
// schemabuilder/resolve.go, which caches one conversion function per
// reflect.Type and looks it up by type identity on every field; here the
// table is keyed by JSON path instead of reflect.Type, and built once per
// root rather than memoized across calls, since a single flowgen
// invocation never repeats a shape.
package convert

import (
	"strings"

	"github.com/shyptr/flowgen/model"
)

// Direction selects which way a conversion runs: Unwrap turns raw JSON
// into the target-language value (fragment/response), Wrap turns a
// target-language value back into raw JSON (variables, mutation
// wrapResponse).
type Direction int

const (
	Unwrap Direction = iota
	Wrap
)

// NullSentinel selects the raw-side spelling of "absent" a Nullable
// instruction converts against.
type NullSentinel int

const (
	SentinelUndefined NullSentinel = iota
	SentinelNull
)

// Instruction is the tagged Skip | Nullable | Enum | Union | Array |
// Object variant of spec §4.6's per-field instruction.
type Instruction interface{ isInstruction() }

type Skip struct{}

func (Skip) isInstruction() {}

type NullableInstr struct{ Inner Instruction }

func (NullableInstr) isInstruction() {}

type EnumInstr struct{ Name string }

func (EnumInstr) isInstruction() {}

type UnionInstr struct{ LocalName string }

func (UnionInstr) isInstruction() {}

type ArrayInstr struct{ Inner Instruction }

func (ArrayInstr) isInstruction() {}

type ObjectInstr struct{ RecordName string }

func (ObjectInstr) isInstruction() {}

// FieldInstruction pairs one property's JSON path (root-first, unlike
// the leaf-first model.ObjectShape.AtPath convention) with the
// instruction needed to convert it.
type FieldInstruction struct {
	Path []string
	Instr Instruction
}

// Asset is one converter block: a direction, the raw-side null
// sentinel, and an instruction per field that needs conversion. Fields
// whose instruction is Skip carry no entry — the table only lists work
// the runtime actually has to do.
type Asset struct {
	Direction    Direction
	Sentinel     NullSentinel
	Instructions []FieldInstruction
}

// builder carries the lookups needed to resolve a nested object or
// union to the name the finalizer gave it.
type builder struct {
	objectNames map[*model.ObjectShape]string
	unionNames  map[*model.Union]string
}

func newBuilder(full *model.FullState) *builder {
	b := &builder{
		objectNames: make(map[*model.ObjectShape]string),
		unionNames:  make(map[*model.Union]string),
	}
	for _, obj := range full.Objects {
		b.objectNames[obj.Definition] = obj.RecordName
	}
	for _, union := range full.Unions {
		b.unionNames[union] = union.Name
	}
	return b
}

// BuildAsset walks shape and produces its converter Asset. direction and
// sentinel are caller-supplied per spec §4.6's table of roots:
// Unwrap/undefined for response and fragment, Wrap/undefined for
// variables, Wrap/null for a mutation's wrapResponse pass.
func BuildAsset(full *model.FullState, shape *model.ObjectShape, direction Direction, sentinel NullSentinel) *Asset {
	b := newBuilder(full)
	asset := &Asset{Direction: direction, Sentinel: sentinel}
	b.walk(shape, nil, asset)
	return asset
}

func (b *builder) walk(shape *model.ObjectShape, path []string, asset *Asset) {
	for _, v := range shape.Values {
		prop, ok := v.(model.Prop)
		if !ok {
			continue // FragmentRef values carry no converter instruction
		}
		fieldPath := append(append([]string(nil), path...), prop.Name)
		instr := b.instructionFor(prop.Value, fieldPath, asset)
		if _, skip := instr.(Skip); skip {
			continue
		}
		asset.Instructions = append(asset.Instructions, FieldInstruction{Path: fieldPath, Instr: instr})
	}
}

func (b *builder) instructionFor(value model.PropValue, path []string, asset *Asset) Instruction {
	base := b.baseInstructionFor(value.Type, path, asset)
	if value.Nullable {
		if _, skip := base.(Skip); skip {
			return Skip{}
		}
		return NullableInstr{Inner: base}
	}
	return base
}

func (b *builder) baseInstructionFor(t model.PropType, path []string, asset *Asset) Instruction {
	switch n := t.(type) {
	case model.ScalarType:
		return Skip{}
	case model.TypeReferenceType:
		return Skip{}
	case model.FragmentRefValueType:
		return Skip{}
	case model.EnumType:
		return EnumInstr{Name: n.Enum.Name}
	case model.UnionType:
		return UnionInstr{LocalName: b.unionNames[n.Union]}
	case model.ArrayType:
		if n.Elem == nil {
			return Skip{}
		}
		inner := b.instructionFor(*n.Elem, path, asset)
		if _, skip := inner.(Skip); skip {
			return Skip{}
		}
		return ArrayInstr{Inner: inner}
	case model.ObjectType:
		// An object field's own nested fields still need their own
		// entries in the converter table (a nested record is not
		// opaque to the runtime), so recurse before returning the
		// pointer-instruction for this field itself.
		b.walk(n.Shape, path, asset)
		return ObjectInstr{RecordName: b.objectNames[n.Shape]}
	default:
		return Skip{}
	}
}

// JSONPath renders a FieldInstruction's path the way the generated
// instruction table keys its entries: dot-joined, root first.
func (f FieldInstruction) JSONPath() string {
	return strings.Join(f.Path, ".")
}
