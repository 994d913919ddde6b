package extract

import (
	"strings"
	"unicode"

	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/flowast"
	"github.com/shyptr/flowgen/model"
)

// mapObjProp is spec §4.2's table, mapping one AST type node reached at
// path into a model.PropValue. The mutual recursion with makeObjShape and
// makeUnion mirrors the teacher's getType/buildStruct pair in
// schemabuilder/build.go, which walks a reflect.Type graph the same way
// this walks a flowast.Type graph.
func (e *Extractor) mapObjProp(optional bool, path []string, t flowast.Type) (model.PropValue, error) {
	switch n := t.(type) {
	case *flowast.String, *flowast.StringLiteral:
		return model.PropValue{Nullable: optional, Type: model.ScalarType{Scalar: model.ScalarString}}, nil
	case *flowast.Number, *flowast.NumberLiteral:
		return model.PropValue{Nullable: optional, Type: model.ScalarType{Scalar: model.ScalarFloat}}, nil
	case *flowast.Boolean, *flowast.BooleanLiteral:
		return model.PropValue{Nullable: optional, Type: model.ScalarType{Scalar: model.ScalarBoolean}}, nil

	case *flowast.Nullable:
		inner, err := e.mapObjProp(true, path, n.Type)
		if err != nil {
			return model.PropValue{}, err
		}
		inner.Nullable = true
		return inner, nil

	case *flowast.Array:
		elem, err := e.mapObjProp(false, path, n.Type)
		if err != nil {
			return model.PropValue{}, err
		}
		return model.PropValue{Nullable: optional, Type: model.ArrayType{Elem: &elem}}, nil

	case *flowast.Object:
		shape, err := e.makeObjShape(path, n.Properties)
		if err != nil {
			return model.PropValue{}, err
		}
		return model.PropValue{Nullable: optional, Type: model.ObjectType{Shape: shape}}, nil

	case *flowast.Union:
		union, err := e.makeUnion(path, n.Members)
		if err != nil {
			return model.PropValue{}, err
		}
		return model.PropValue{Nullable: optional, Type: model.UnionType{Union: union}}, nil

	case *flowast.Generic:
		if n.Name == flowast.ReadOnlyArrayGeneric && len(n.TypeArgs) == 1 {
			elem, err := e.mapObjProp(false, path, n.TypeArgs[0])
			if err != nil {
				return model.PropValue{}, err
			}
			return model.PropValue{Nullable: optional, Type: model.ArrayType{Elem: &elem}}, nil
		}
		if enum, ok := e.enums[n.Name]; ok {
			return model.PropValue{Nullable: optional, Type: model.EnumType{Enum: enum}}, nil
		}
		return model.PropValue{Nullable: optional, Type: model.TypeReferenceType{Name: unmask(n.Name)}}, nil

	default:
		return model.PropValue{Nullable: optional, Type: model.ScalarType{Scalar: model.ScalarAny}}, nil
	}
}

// unmask mirrors the received name verbatim. Re-implementers of the
// original relay-compiler printer strip an implementation-specific
// prefix here; no retrievable example forces that behavior, so this
// keeps names byte-for-byte (see DESIGN.md's Open Questions section).
func unmask(name string) string {
	return name
}

// fragmentRefSuffix is stripped from a fragment-ref generic's name to
// recover the fragment it references (spec §4.3).
const fragmentRefSuffix = "$ref"

// makeObjShape is spec §4.3: one pass over a property list, in order,
// producing an ObjectShape rooted at path.
func (e *Extractor) makeObjShape(path []string, properties []*flowast.Property) (*model.ObjectShape, error) {
	shape := &model.ObjectShape{AtPath: path}
	for _, prop := range properties {
		if prop.Key == "$fragmentRefs" {
			refs, err := fragmentRefs(prop.Value)
			if err != nil {
				return nil, err
			}
			for _, ref := range refs {
				shape.Values = append(shape.Values, model.FragmentRef{FragmentName: ref})
			}
			continue
		}
		if strings.HasPrefix(prop.Key, "$") {
			continue
		}
		childPath := append([]string{prop.Key}, path...)
		value, err := e.mapObjProp(prop.Optional, childPath, prop.Value)
		if err != nil {
			return nil, err
		}
		shape.Values = append(shape.Values, model.Prop{Name: prop.Key, Value: value})
	}
	return shape, nil
}

// fragmentRefs recognizes `Generic(name)` or an intersection of generics
// as the initializer of `$fragmentRefs`, returning one fragment name
// (suffix `$ref` stripped) per referenced generic.
func fragmentRefs(t flowast.Type) ([]string, error) {
	switch n := t.(type) {
	case *flowast.Generic:
		return []string{strings.TrimSuffix(n.Name, fragmentRefSuffix)}, nil
	case *flowast.Intersection:
		var names []string
		for _, member := range n.Members {
			generic, ok := member.(*flowast.Generic)
			if !ok {
				continue
			}
			names = append(names, strings.TrimSuffix(generic.Name, fragmentRefSuffix))
		}
		return names, nil
	default:
		return nil, nil
	}
}

// makeUnion is spec §4.2's union-construction rule: every member must be
// an object literal carrying a string-literal `__typename`, "%other"
// members are dropped, and each surviving member's object path prepends
// its own lowercased name onto the union's path.
func (e *Extractor) makeUnion(path []string, members []flowast.Type) (*model.Union, error) {
	union := &model.Union{AtPath: path}
	for _, m := range members {
		obj, ok := m.(*flowast.Object)
		if !ok {
			return nil, ferrors.New(ferrors.MissingTypenameOnUnion, "union member is not an object literal").WithPath(path)
		}
		name, rest, err := splitTypename(obj.Properties)
		if err != nil {
			if fe, ok := err.(*ferrors.Error); ok {
				return nil, fe.WithPath(path)
			}
			return nil, err
		}
		if name == otherMember {
			continue
		}
		memberName := capitalize(name)
		memberPath := append([]string{strings.ToLower(name)}, path...)
		shape, err := e.makeObjShape(memberPath, rest)
		if err != nil {
			return nil, err
		}
		union.Members = append(union.Members, model.UnionMember{Name: memberName, Shape: shape})
	}
	return union, nil
}

// splitTypename locates the `__typename: "X"` property among an object
// literal's properties, returning its string value and the remaining
// properties in their original order.
func splitTypename(properties []*flowast.Property) (string, []*flowast.Property, error) {
	rest := make([]*flowast.Property, 0, len(properties))
	var typename string
	found := false
	for _, prop := range properties {
		if prop.Key == "__typename" {
			lit, ok := prop.Value.(*flowast.StringLiteral)
			if !ok {
				continue
			}
			typename = lit.Value
			found = true
			continue
		}
		rest = append(rest, prop)
	}
	if !found {
		return "", nil, ferrors.New(ferrors.MissingTypenameOnUnion, "no __typename string literal found on union member")
	}
	return typename, rest, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
