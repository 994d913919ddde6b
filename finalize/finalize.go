// Package finalize implements the raising phase's first stage, spec
// §4.4: it turns a model.IntermediateState into a model.FullState by
// walking the operation roots to discover every nested enum, union, and
// anonymous object, then assigning each unnamed object a deterministic
// record name.
//
// The walk is grounded on the same recursive, cache-carrying traversal
// the teacher's schemabuilder/resolve.go uses to build its per-type
// conversion functions — here the "cache" is usedNames plus the
// enum/union registries, threaded through a finalizer struct rather than
// package-level state.
package finalize

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/model"
)

type finalizer struct {
	state     *model.FullState
	enumNames map[string]bool
	usedNames map[string]bool
}

// FinalizeState runs spec §4.4's intermediateToFull over one extractor
// result.
func FinalizeState(intermediate *model.IntermediateState) (*model.FullState, error) {
	f := &finalizer{
		state: &model.FullState{
			Enums:     append([]*model.FullEnum(nil), intermediate.Enums...),
			Variables: intermediate.Variables,
			Response:  intermediate.Response,
			Fragment:  intermediate.Fragment,
		},
		enumNames: make(map[string]bool),
		usedNames: make(map[string]bool),
	}
	for _, enum := range f.state.Enums {
		f.enumNames[enum.Name] = true
	}

	// Step 1: lift every pre-extracted object to a FinalizedObj rooted at
	// ["root"], keeping its original name (if any) as its record name.
	for _, obj := range intermediate.Objects {
		fo := &model.FinalizedObj{
			OriginalFlowTypeName: obj.OriginalFlowTypeName,
			RecordName:           obj.OriginalFlowTypeName,
			AtPath:               []string{model.AnchorRoot},
			Definition:           obj.Definition,
			FoundInUnion:         obj.FoundInUnion,
		}
		if fo.RecordName != "" {
			f.usedNames[fo.RecordName] = true
		}
		f.state.Objects = append(f.state.Objects, fo)
	}

	// The operation roots themselves are also declarable records (a
	// Query/Mutation/Subscription's variables and response, a
	// fragment's definition): each gets a fixed record name, marked as
	// used so no synthesized name takes it, so the Types module carries a single declaration
	// emit's root section can alias to, rather than duplicating field
	// lists (see DESIGN.md).
	if f.state.Variables != nil {
		f.registerRoot("Variables", f.state.Variables)
	}
	if f.state.Response != nil {
		f.registerRoot("Response", f.state.Response)
	}
	if f.state.Fragment != nil && f.state.Fragment.Definition != nil {
		f.registerRoot(f.state.Fragment.Name, f.state.Fragment.Definition)
	}

	// Step 2: traverse variables, response, and fragment.definition in
	// that order, registering every nested Enum/Union/Object encountered.
	if f.state.Variables != nil {
		if err := f.walkValues(f.state.Variables.Values, false); err != nil {
			return nil, err
		}
	}
	if f.state.Response != nil {
		if err := f.walkValues(f.state.Response.Values, false); err != nil {
			return nil, err
		}
	}
	if f.state.Fragment != nil && f.state.Fragment.Definition != nil {
		if err := f.walkValues(f.state.Fragment.Definition.Values, false); err != nil {
			return nil, err
		}
	}

	// Also walk each named top-level object's own definition: the literal
	// traversal order above establishes relative order among the three
	// roots, it does not exclude other already-known shapes. Without this,
	// an anonymous type nested inside a named top-level object would never
	// be registered (see DESIGN.md).
	for _, obj := range intermediate.Objects {
		if err := f.walkValues(obj.Definition.Values, obj.FoundInUnion); err != nil {
			return nil, err
		}
	}

	// Step 3: name every object still missing a record name, then every
	// union's nested per-member module (same synthesis, its own
	// namespace — a union module and a record never collide on name).
	for _, obj := range f.state.Objects {
		if obj.RecordName != "" {
			continue
		}
		name, err := findAppropriateObjName(nil, f.usedNames, obj.AtPath)
		if err != nil {
			return nil, err
		}
		obj.RecordName = name
		f.usedNames[name] = true
	}
	unionNames := make(map[string]bool)
	for _, union := range f.state.Unions {
		name, err := findAppropriateObjName(nil, unionNames, union.AtPath)
		if err != nil {
			return nil, err
		}
		union.Name = name
		unionNames[name] = true
	}

	// Step 4: dedup enums by name, first occurrence wins.
	dedup := make([]*model.FullEnum, 0, len(f.state.Enums))
	seen := make(map[string]bool, len(f.state.Enums))
	for _, enum := range f.state.Enums {
		if seen[enum.Name] {
			continue
		}
		seen[enum.Name] = true
		dedup = append(dedup, enum)
	}
	f.state.Enums = dedup

	return f.state, nil
}

// registerRoot declares an operation root (variables, response, or a
// fragment's definition) as a Types-module record without marking it an
// input object: OriginalFlowTypeName stays empty, so emit's
// make_<typename> constructor pass (reserved for genuine GraphQL input
// types) never fires for it.
func (f *finalizer) registerRoot(recordName string, shape *model.ObjectShape) {
	f.state.Objects = append(f.state.Objects, &model.FinalizedObj{
		RecordName: recordName,
		AtPath:     shape.AtPath,
		Definition: shape,
	})
	f.usedNames[recordName] = true
}

func (f *finalizer) walkValues(values []model.PropValues, foundInUnion bool) error {
	for _, v := range values {
		prop, ok := v.(model.Prop)
		if !ok {
			continue // FragmentRef carries no nested type to register
		}
		if err := f.walkPropValue(prop.Value, foundInUnion); err != nil {
			return err
		}
	}
	return nil
}

func (f *finalizer) walkPropValue(value model.PropValue, foundInUnion bool) error {
	switch t := value.Type.(type) {
	case model.EnumType:
		f.registerEnum(t.Enum)
	case model.UnionType:
		return f.registerUnion(t.Union, foundInUnion)
	case model.ArrayType:
		if t.Elem != nil {
			return f.walkPropValue(*t.Elem, foundInUnion)
		}
	case model.ObjectType:
		return f.registerObject(t.Shape, foundInUnion)
	}
	return nil
}

func (f *finalizer) registerEnum(enum *model.FullEnum) {
	if f.enumNames[enum.Name] {
		return
	}
	f.enumNames[enum.Name] = true
	f.state.Enums = append(f.state.Enums, enum)
}

func (f *finalizer) registerUnion(union *model.Union, foundInUnion bool) error {
	f.state.Unions = append(f.state.Unions, union)
	for _, member := range union.Members {
		fo := &model.FinalizedObj{
			AtPath:       member.Shape.AtPath,
			Definition:   member.Shape,
			FoundInUnion: true,
		}
		f.state.Objects = append(f.state.Objects, fo)
		if err := f.walkValues(member.Shape.Values, true); err != nil {
			return err
		}
	}
	_ = foundInUnion // a union nested inside another union's member is still foundInUnion via the member's own recursion
	return nil
}

func (f *finalizer) registerObject(shape *model.ObjectShape, foundInUnion bool) error {
	fo := &model.FinalizedObj{
		AtPath:       shape.AtPath,
		Definition:   shape,
		FoundInUnion: foundInUnion,
	}
	f.state.Objects = append(f.state.Objects, fo)
	return f.walkValues(shape.Values, foundInUnion)
}

// findAppropriateObjName synthesizes a PascalCase record name from a
// leaf-first path by reversing it to root-first order and title-casing
// each segment (spec §4.4 step 3). Collisions are resolved by appending
// a numeric suffix (2, 3, ...) until the name is unused; a non-nil prefix
// replaces the path-derived base name.
func findAppropriateObjName(prefix *string, used map[string]bool, path []string) (string, error) {
	if len(path) == 0 {
		return "", ferrors.New(ferrors.ObjectPathEmpty, "cannot synthesize a record name from an empty path")
	}
	var base string
	if prefix != nil {
		base = *prefix
	} else {
		var b strings.Builder
		for i := len(path) - 1; i >= 0; i-- {
			b.WriteString(strcase.ToCamel(path[i]))
		}
		base = b.String()
	}
	if !used[base] {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s%d", base, n)
		if !used[candidate] {
			return candidate, nil
		}
	}
}
