// Package model is the intermediate data model of spec §3: the compact,
// path-addressed representation the lowering phase (package extract)
// produces and the raising phase (packages finalize, convert, emit)
// consumes. Every type here mirrors the teacher's marker-interface
// convention in builder/types.go and internal/types.go (there: Type,
// IsType(); here: PropType/isPropType, PropValues/isPropValues) — a tagged
// union expressed as a Go interface with an unexported marker method, so
// only this package's own concrete types can implement it.
package model

// OperationKind distinguishes the four GraphQL operation shapes a single
// invocation targets.
type OperationKind int

const (
	KindFragment OperationKind = iota
	KindQuery
	KindMutation
	KindSubscription
)

// OperationType is the tagged Fragment(name, plural) | Query(name) |
// Mutation(name) | Subscription(name) variant of spec §3.
type OperationType struct {
	Kind   OperationKind
	Name   string
	Plural bool // only meaningful for KindFragment
}

func Fragment(name string, plural bool) OperationType {
	return OperationType{Kind: KindFragment, Name: name, Plural: plural}
}
func Query(name string) OperationType        { return OperationType{Kind: KindQuery, Name: name} }
func Mutation(name string) OperationType      { return OperationType{Kind: KindMutation, Name: name} }
func Subscription(name string) OperationType { return OperationType{Kind: KindSubscription, Name: name} }

// ConnectionConfig is the recognized `connection` option of PrintConfig.
// Struct tags are validated by the root package's NewValidate() (spec §5).
type ConnectionConfig struct {
	// AtObjectPath is root-first (reversed from the leaf-first convention
	// everywhere else in this model, per spec §3).
	AtObjectPath []string `validate:"required,min=1"`
	FieldName    string   `validate:"required"`
}

// PrintConfig is spec §3's PrintConfig: today only `connection` affects
// the core.
type PrintConfig struct {
	Connection *ConnectionConfig
}

// Scalar enumerates the four leaf scalar kinds the property mapper can
// produce. All numerics map to Float (spec §4.2); CouldNotMapNumber is
// reserved for the day Int/Float need to be told apart.
type Scalar int

const (
	ScalarString Scalar = iota
	ScalarFloat
	ScalarBoolean
	ScalarAny
)

func (s Scalar) String() string {
	switch s {
	case ScalarString:
		return "String"
	case ScalarFloat:
		return "Float"
	case ScalarBoolean:
		return "Boolean"
	default:
		return "Any"
	}
}

// PropType is the tagged Scalar | Enum | Union | Object | Array |
// TypeReference | FragmentRefValue variant of spec §3.
type PropType interface {
	isPropType()
}

type ScalarType struct{ Scalar Scalar }

func (ScalarType) isPropType() {}

type EnumType struct{ Enum *FullEnum }

func (EnumType) isPropType() {}

type UnionType struct{ Union *Union }

func (UnionType) isPropType() {}

type ObjectType struct{ Shape *ObjectShape }

func (ObjectType) isPropType() {}

type ArrayType struct{ Elem *PropValue }

func (ArrayType) isPropType() {}

// TypeReferenceType is an opaque nominal type name carried through to
// output verbatim (spec §3, §4.2, §9's unmask).
type TypeReferenceType struct{ Name string }

func (TypeReferenceType) isPropType() {}

// FragmentRefValueType is reserved per spec §3 — fragment refs are
// represented at the PropValues level (FragmentRef), never nested inside
// a PropType; this variant exists only so the tagged union is complete.
type FragmentRefValueType struct{ FragmentName string }

func (FragmentRefValueType) isPropType() {}

// PropValue is `{nullable, propType}` from spec §3.
type PropValue struct {
	Nullable bool
	Type     PropType
}

// PropValues is the tagged Prop(name, value) | FragmentRef(fragmentName)
// variant of spec §3.
type PropValues interface {
	isPropValues()
}

type Prop struct {
	Name  string
	Value PropValue
}

func (Prop) isPropValues() {}

type FragmentRef struct{ FragmentName string }

func (FragmentRef) isPropValues() {}

// ObjectShape is `{atPath (leaf-first), values (input order)}` from
// spec §3.
type ObjectShape struct {
	AtPath []string
	Values []PropValues
}

// FullEnum is `{name, values}` from spec §3. Two enums with the same
// name collapse at finalization; first occurrence wins.
type FullEnum struct {
	Name   string
	Values []string
}

// UnionMember is `{name (capitalized typename literal), shape}`.
type UnionMember struct {
	Name  string
	Shape *ObjectShape
}

// Union is `{members, atPath}`; members never contain "%other" (spec
// invariant, enforced by extract, not by this type). Name is the
// path-derived identifier of the nested module the emitter opens for
// this union's per-member record aliases (spec §4.5 step 3); it is
// assigned by the finalizer alongside FinalizedObj.RecordName.
type Union struct {
	Members []UnionMember
	AtPath  []string
	Name    string
}

// Obj is the extractor's raw form of a named or anonymous object, before
// finalization assigns it a record name.
type Obj struct {
	OriginalFlowTypeName string // "" means anonymous
	FoundInUnion         bool
	Definition           *ObjectShape
}

// FinalizedObj is Obj plus an assigned RecordName (spec §3); RecordName
// is "" until the finalizer names it, after which every FinalizedObj not
// marked FoundInUnion contributes exactly one emitted declaration.
type FinalizedObj struct {
	OriginalFlowTypeName string
	RecordName           string
	AtPath               []string
	Definition           *ObjectShape
	FoundInUnion         bool
}

// HasOriginalName reports whether this object was a named top-level type
// alias rather than an anonymous inline object — finalize lifts these
// into FullState.Objects before any anonymous one (spec §4.5's declaration-selection note: "predate anonymous
// ones").
func (f *FinalizedObj) HasOriginalName() bool { return f.OriginalFlowTypeName != "" }

// Declarable reports whether this object contributes a top-level
// declaration: not found inside a union, and named (spec §4.5).
func (f *FinalizedObj) Declarable() bool { return !f.FoundInUnion && f.RecordName != "" }

// IntermediateState is the extractor's output (spec §3): enums and
// anonymous/named objects gathered so far, plus at most one of each
// operation root.
type IntermediateState struct {
	Enums     []*FullEnum
	Objects   []*Obj
	Variables *ObjectShape
	Response  *ObjectShape
	Fragment  *FragmentRoot
}

// FragmentRoot is the fragment operation root carried in both
// IntermediateState and FullState.
type FragmentRoot struct {
	Name       string
	Plural     bool
	Definition *ObjectShape
}

// FullState is the finalizer's output (spec §3): enums unique by name,
// unions discovered while walking the roots, objects with assigned
// record names, and the same up-to-three operation roots.
type FullState struct {
	Enums     []*FullEnum
	Unions    []*Union
	Objects   []*FinalizedObj
	Variables *ObjectShape
	Response  *ObjectShape
	Fragment  *FragmentRoot
}

// Anchor path segments, shared by extract and finalize (spec §9: "callers
// rely on [\"variables\"], [\"response\"], [\"fragment\"], and [\"root\"]
// as anchor strings").
const (
	AnchorVariables = "variables"
	AnchorResponse  = "response"
	AnchorFragment  = "fragment"
	AnchorRoot      = "root"
	AnchorObjects   = "objects"
)
