// Package flowast defines the node vocabulary flowgen expects from an
// upstream parser front-end (see spec §6): a structurally-typed,
// JavaScript-dialect type system with literal, union, intersection,
// nullable, and generic forms.
package flowast

// Position is a line/column location within the parsed source, used only
// for diagnostics.
type Position struct {
	Line   int
	Column int
}

// Node is implemented by every flowast type.
type Node interface {
	Kind() string
	Pos() Position
}

// Type is a type-position node: everything that can appear on the
// right-hand side of a type alias, inside a property, or as a generic
// type argument.
type Type interface {
	Node
	isType()
}

// Document is the parsed form of one input file: every top-level exported
// type alias, in source order.
type Document struct {
	Aliases []*TypeAlias
}

// TypeAlias corresponds to ExportNamedDeclaration(TypeAlias{id, right}).
// Only exported aliases reach here; the parser discards unexported ones.
type TypeAlias struct {
	Name  string
	Right Type
	Loc   Position
}

func (t *TypeAlias) Kind() string  { return "TypeAlias" }
func (t *TypeAlias) Pos() Position { return t.Loc }

// Property is one member of an Object type: `key: Type` or `key?: Type`.
type Property struct {
	Key      string
	Value    Type
	Optional bool
	Loc      Position
}

func (p *Property) Kind() string  { return "Property" }
func (p *Property) Pos() Position { return p.Loc }

// String is the bare `string` keyword type.
type String struct{ Loc Position }

func (n *String) Kind() string  { return "String" }
func (n *String) Pos() Position { return n.Loc }
func (n *String) isType()       {}

// StringLiteral is a string literal type, e.g. `"ACTIVE"`.
type StringLiteral struct {
	Value string
	Loc   Position
}

func (n *StringLiteral) Kind() string  { return "StringLiteral" }
func (n *StringLiteral) Pos() Position { return n.Loc }
func (n *StringLiteral) isType()       {}

// Number is the bare `number` keyword type.
type Number struct{ Loc Position }

func (n *Number) Kind() string  { return "Number" }
func (n *Number) Pos() Position { return n.Loc }
func (n *Number) isType()       {}

// NumberLiteral is a number literal type, e.g. `42`.
type NumberLiteral struct {
	Value string
	Loc   Position
}

func (n *NumberLiteral) Kind() string  { return "NumberLiteral" }
func (n *NumberLiteral) Pos() Position { return n.Loc }
func (n *NumberLiteral) isType()       {}

// Boolean is the bare `boolean` keyword type.
type Boolean struct{ Loc Position }

func (n *Boolean) Kind() string  { return "Boolean" }
func (n *Boolean) Pos() Position { return n.Loc }
func (n *Boolean) isType()       {}

// BooleanLiteral is a boolean literal type, e.g. `true`.
type BooleanLiteral struct {
	Value bool
	Loc   Position
}

func (n *BooleanLiteral) Kind() string  { return "BooleanLiteral" }
func (n *BooleanLiteral) Pos() Position { return n.Loc }
func (n *BooleanLiteral) isType()       {}

// Nullable wraps an inner type with flow's `?T`. flowparser produces it
// only for the `?` sigil; `T | null` is parsed as a Union whose `null`
// member is a Generic named "null", not as a Nullable.
type Nullable struct {
	Type Type
	Loc  Position
}

func (n *Nullable) Kind() string  { return "Nullable" }
func (n *Nullable) Pos() Position { return n.Loc }
func (n *Nullable) isType()       {}

// Array is a homogeneous sequence type, `T[]`.
type Array struct {
	Type Type
	Loc  Position
}

func (n *Array) Kind() string  { return "Array" }
func (n *Array) Pos() Position { return n.Loc }
func (n *Array) isType()       {}

// Object is an object-literal type with a fixed property list.
type Object struct {
	Properties []*Property
	Loc        Position
}

func (n *Object) Kind() string  { return "Object" }
func (n *Object) Pos() Position { return n.Loc }
func (n *Object) isType()       {}

// Union is `T1 | T2 | ...`, two or more members.
type Union struct {
	Members []Type
	Loc     Position
}

func (n *Union) Kind() string  { return "Union" }
func (n *Union) Pos() Position { return n.Loc }
func (n *Union) isType()       {}

// Intersection is `T1 & T2 & ...`, used by the front-end for
// $fragmentRefs compositions.
type Intersection struct {
	Members []Type
	Loc     Position
}

func (n *Intersection) Kind() string  { return "Intersection" }
func (n *Intersection) Pos() Position { return n.Loc }
func (n *Intersection) isType()       {}

// Generic is a named reference, optionally parameterized, e.g.
// `Status`, `$ReadOnlyArray<Foo>`, `Foo$ref`. Unqualified(name) from the
// spec's grammar is the TypeArgs == nil case.
type Generic struct {
	Name     string
	TypeArgs []Type
	Loc      Position
}

func (n *Generic) Kind() string  { return "Generic" }
func (n *Generic) Pos() Position { return n.Loc }
func (n *Generic) isType()       {}

// ReadOnlyArrayGeneric is the well-known generic name the property mapper
// treats identically to Array.
const ReadOnlyArrayGeneric = "$ReadOnlyArray"
