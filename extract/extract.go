// Package extract implements the lowering phase of spec §4.1-§4.3: it
// walks the top-level type aliases an upstream parser produced and
// distills them into a model.IntermediateState, classifying each alias
// into a Variables/Response/Fragment root, an Enum, or a named top-level
// Object, then recursively maps every nested AST type node into the
// compact model.PropType vocabulary.
//
// The shape of this walk — a struct carrying mutable lookup maps,
// mutually-recursive methods, no package-level state — is the same
// discipline the teacher's schemabuilder/build.go uses to turn a
// reflect.Type graph into a builder.Type graph.
package extract

import (
	"strings"

	"github.com/shyptr/flowgen/ferrors"
	"github.com/shyptr/flowgen/flowast"
	"github.com/shyptr/flowgen/model"
	"go.uber.org/zap"
)

// futureAddedValue is the relay-compiler sentinel literal dropped from
// every enum (spec §4.1).
const futureAddedValue = "%future added value"

// otherMember is the discriminated-union catch-all member name dropped
// at union construction time (spec §3 invariant).
const otherMember = "%other"

// Extractor carries the state accumulated across one Extract call. It is
// never reused across invocations (spec §5: no persistent state).
type Extractor struct {
	enums  map[string]*model.FullEnum
	state  *model.IntermediateState
	logger *zap.Logger
}

// New builds an Extractor. A nil logger is replaced with a no-op one, so
// the core stays silent by default (spec §5: no I/O, no side effects the
// host didn't ask for).
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		enums:  make(map[string]*model.FullEnum),
		state:  &model.IntermediateState{},
		logger: logger,
	}
}

// Extract runs the extractor state machine of spec §4.7: it returns
// (intermediate, nil) on success, or (nil, *ferrors.Error{Kind: ParseError})
// only when called with a nil document (the parse-failure case is handled
// by the caller before Extract is ever invoked — see flowgen.go).
func (e *Extractor) Extract(doc *flowast.Document, opType model.OperationType) (*model.IntermediateState, error) {
	if doc == nil {
		return nil, ferrors.New(ferrors.ParseError, "no document to extract from")
	}

	// Enums are collected in a pass over all aliases first, so that the
	// property mapper can resolve a Generic(Unqualified(name)) reference
	// to an enum regardless of declaration order (spec §8: permuting
	// input alias order must not change the extracted enum set).
	for _, alias := range doc.Aliases {
		if enum, ok := asEnum(alias); ok {
			if _, seen := e.enums[enum.Name]; !seen {
				e.enums[enum.Name] = enum
				e.state.Enums = append(e.state.Enums, enum)
			}
		}
	}

	for _, alias := range doc.Aliases {
		if _, ok := asEnum(alias); ok {
			continue
		}
		var err error
		switch opType.Kind {
		case model.KindQuery, model.KindMutation, model.KindSubscription:
			err = e.extractOperationAlias(alias, opType)
		case model.KindFragment:
			err = e.extractFragmentAlias(alias, opType)
		}
		if err != nil {
			return nil, err
		}
	}

	return e.state, nil
}

// asEnum recognizes a string-literal union alias and builds its FullEnum,
// dropping the "%future added value" sentinel (spec §4.1).
func asEnum(alias *flowast.TypeAlias) (*model.FullEnum, bool) {
	union, ok := alias.Right.(*flowast.Union)
	if !ok {
		return nil, false
	}
	values := make([]string, 0, len(union.Members))
	for _, member := range union.Members {
		lit, ok := member.(*flowast.StringLiteral)
		if !ok {
			return nil, false
		}
		if lit.Value == futureAddedValue {
			continue
		}
		values = append(values, lit.Value)
	}
	return &model.FullEnum{Name: alias.Name, Values: values}, true
}

func isObjectLiteral(t flowast.Type) (*flowast.Object, bool) {
	obj, ok := t.(*flowast.Object)
	return obj, ok
}

func (e *Extractor) extractOperationAlias(alias *flowast.TypeAlias, opType model.OperationType) error {
	name := opType.Name
	switch {
	case alias.Name == name:
		if _, ok := isObjectLiteral(alias.Right); ok {
			return nil // the aggregate operation descriptor, not interesting
		}
		return nil
	case alias.Name == name+"Variables":
		obj, ok := isObjectLiteral(alias.Right)
		if !ok {
			return nil
		}
		shape, err := e.makeObjShape([]string{model.AnchorVariables}, obj.Properties)
		if err != nil {
			return err
		}
		e.state.Variables = shape
		return nil
	case alias.Name == name+"Response":
		obj, ok := isObjectLiteral(alias.Right)
		if !ok {
			return nil
		}
		shape, err := e.makeObjShape([]string{model.AnchorResponse}, obj.Properties)
		if err != nil {
			return err
		}
		e.state.Response = shape
		return nil
	default:
		obj, ok := isObjectLiteral(alias.Right)
		if !ok {
			e.logger.Debug("skipping alias with unrecognized body", zap.String("name", alias.Name))
			return nil
		}
		shape, err := e.makeObjShape([]string{model.AnchorObjects}, obj.Properties)
		if err != nil {
			return err
		}
		e.state.Objects = append(e.state.Objects, &model.Obj{
			OriginalFlowTypeName: alias.Name,
			Definition:           shape,
		})
		return nil
	}
}

func (e *Extractor) extractFragmentAlias(alias *flowast.TypeAlias, opType model.OperationType) error {
	name := opType.Name
	if alias.Name == name {
		if obj, ok := isObjectLiteral(alias.Right); ok {
			shape, err := e.makeObjShape([]string{model.AnchorFragment}, obj.Properties)
			if err != nil {
				return err
			}
			e.state.Fragment = &model.FragmentRoot{Name: name, Plural: opType.Plural, Definition: shape}
			return nil
		}
		if generic, ok := alias.Right.(*flowast.Generic); ok && generic.Name == flowast.ReadOnlyArrayGeneric && len(generic.TypeArgs) == 1 {
			if obj, ok := isObjectLiteral(generic.TypeArgs[0]); ok {
				shape, err := e.makeObjShape([]string{model.AnchorFragment}, obj.Properties)
				if err != nil {
					return err
				}
				e.state.Fragment = &model.FragmentRoot{Name: name, Plural: opType.Plural, Definition: shape}
				return nil
			}
		}
		return nil
	}
	if strings.Contains(alias.Name, "$") {
		return nil
	}
	obj, ok := isObjectLiteral(alias.Right)
	if !ok {
		return nil
	}
	shape, err := e.makeObjShape([]string{model.AnchorObjects}, obj.Properties)
	if err != nil {
		return err
	}
	e.state.Objects = append(e.state.Objects, &model.Obj{
		OriginalFlowTypeName: alias.Name,
		Definition:           shape,
	})
	return nil
}
