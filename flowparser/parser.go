// Package flowparser is the external-parser stand-in documented in spec §6:
// it turns the raw source text flowgen.PrintFromFlowTypes receives into the
// flowast vocabulary the core (extract/finalize/emit) consumes. It performs
// no GraphQL-semantic validation, consistent with the core's Non-goals.
package flowparser

import (
	"github.com/shyptr/flowgen/flowast"
	"github.com/shyptr/flowgen/flowparser/token"
)

// Parse turns source into a Document of every exported top-level type
// alias. A non-nil error means the front-end could not make sense of the
// input at all (the spec's ParseError kind); callers are expected to wrap
// it via ferrors.Wrap.
func Parse(source string) (doc *flowast.Document, err error) {
	l := newLexer(source)
	err = l.catchSyntaxError(func() {
		doc = parseDocument(l)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDocument(l *lexer) *flowast.Document {
	doc := &flowast.Document{}
	for l.peek() != token.EOF {
		exported, alias := parseTopLevelDecl(l)
		if exported {
			doc.Aliases = append(doc.Aliases, alias)
		}
	}
	return doc
}

// parseTopLevelDecl parses `[export] type Name = Type [;]`. Non-exported
// aliases are still parsed (to keep the token stream consistent) but
// discarded by the caller — only exported type aliases carry meaning in
// the extractor (spec §4.1).
func parseTopLevelDecl(l *lexer) (exported bool, alias *flowast.TypeAlias) {
	loc := l.location()
	if l.peek() == token.NAME && l.scan.TokenText() == token.EXPORT {
		exported = true
		l.advanceKeyword(token.EXPORT)
	}
	l.advanceKeyword(token.TYPE)
	name := l.scan.TokenText()
	l.advance(token.NAME)
	l.advance(token.EQUALS)
	right := parseType(l)
	if l.peek() == token.SEMI {
		l.advance(token.SEMI)
	}
	return exported, &flowast.TypeAlias{Name: name, Right: right, Loc: loc}
}

// parseType is the entry point, lowest precedence: union of intersections.
// A pipe followed by `}` is the closing half of a sealed object `{| ... |}`,
// not a union separator: it ends the type and leaves the `}` to
// parseObjectType.
func parseType(l *lexer) flowast.Type {
	loc := l.location()
	members := []flowast.Type{parseIntersectionType(l)}
	for l.peek() == token.PIPE {
		l.advance(token.PIPE)
		if l.peek() == token.BRACE_R {
			break
		}
		members = append(members, parseIntersectionType(l))
	}
	if len(members) == 1 {
		return members[0]
	}
	return &flowast.Union{Members: members, Loc: loc}
}

func parseIntersectionType(l *lexer) flowast.Type {
	loc := l.location()
	first := parsePrefixType(l)
	if l.peek() != token.AMP {
		return first
	}
	members := []flowast.Type{first}
	for l.peek() == token.AMP {
		l.advance(token.AMP)
		members = append(members, parsePrefixType(l))
	}
	return &flowast.Intersection{Members: members, Loc: loc}
}

// parsePrefixType handles the nullable `?T` sigil, then hands off to the
// postfix (array-suffix) level.
func parsePrefixType(l *lexer) flowast.Type {
	loc := l.location()
	if l.peek() == token.QUESTION {
		l.advance(token.QUESTION)
		return &flowast.Nullable{Type: parsePrefixType(l), Loc: loc}
	}
	return parsePostfixType(l)
}

// parsePostfixType handles the `T[]` array suffix.
func parsePostfixType(l *lexer) flowast.Type {
	loc := l.location()
	atom := parseAtomType(l)
	for l.peek() == token.BRACKET_L {
		l.advance(token.BRACKET_L)
		l.advance(token.BRACKET_R)
		atom = &flowast.Array{Type: atom, Loc: loc}
	}
	return atom
}

func parseAtomType(l *lexer) flowast.Type {
	loc := l.location()
	switch l.peek() {
	case token.STRING:
		value := l.tokenText()
		l.advance(token.STRING)
		return &flowast.StringLiteral{Value: value, Loc: loc}
	case token.INT, token.FLOAT:
		value := l.scan.TokenText()
		l.advance(l.peek())
		return &flowast.NumberLiteral{Value: value, Loc: loc}
	case token.PAREN_L:
		l.advance(token.PAREN_L)
		inner := parseType(l)
		l.advance(token.PAREN_R)
		return inner
	case token.BRACE_L:
		return parseObjectType(l)
	case token.NAME:
		return parseNameType(l)
	default:
		l.SyntaxError("unexpected token in type position")
		return nil
	}
}

func parseNameType(l *lexer) flowast.Type {
	loc := l.location()
	name := l.scan.TokenText()
	switch name {
	case token.STRINGK:
		l.advance(token.NAME)
		return &flowast.String{Loc: loc}
	case token.NUMBER:
		l.advance(token.NAME)
		return &flowast.Number{Loc: loc}
	case token.BOOLEAN:
		l.advance(token.NAME)
		return &flowast.Boolean{Loc: loc}
	case token.TRUE:
		l.advance(token.NAME)
		return &flowast.BooleanLiteral{Value: true, Loc: loc}
	case token.FALSE:
		l.advance(token.NAME)
		return &flowast.BooleanLiteral{Value: false, Loc: loc}
	}
	l.advance(token.NAME)
	generic := &flowast.Generic{Name: name, Loc: loc}
	if l.peek() == token.ANGLE_L {
		l.advance(token.ANGLE_L)
		for l.peek() != token.ANGLE_R {
			generic.TypeArgs = append(generic.TypeArgs, parseType(l))
			if l.peek() == token.COMMA {
				l.advance(token.COMMA)
			}
		}
		l.advance(token.ANGLE_R)
	}
	return generic
}

// parseObjectType parses `{ ... }` or the sealed-object `{| ... |}` form;
// the leading/trailing pipe is otherwise insignificant to flowgen, which
// never distinguishes exact from inexact objects.
func parseObjectType(l *lexer) *flowast.Object {
	loc := l.location()
	l.advance(token.BRACE_L)
	if l.peek() == token.PIPE {
		l.advance(token.PIPE)
	}
	obj := &flowast.Object{Loc: loc}
	for l.peek() != token.BRACE_R && l.peek() != token.PIPE {
		obj.Properties = append(obj.Properties, parseProperty(l))
		if l.peek() == token.COMMA {
			l.advance(token.COMMA)
		}
	}
	if l.peek() == token.PIPE {
		l.advance(token.PIPE)
	}
	l.advance(token.BRACE_R)
	return obj
}

// parseProperty parses `[+]key[?]: Type`. The covariance marker `+` is
// accepted and discarded; flowgen has no concept of field variance.
func parseProperty(l *lexer) *flowast.Property {
	loc := l.location()
	if l.peek() == token.PLUS {
		l.advance(token.PLUS)
	}
	key := l.tokenText()
	if l.peek() == token.STRING {
		l.advance(token.STRING)
	} else {
		l.advance(token.NAME)
	}
	optional := false
	if l.peek() == token.QUESTION {
		optional = true
		l.advance(token.QUESTION)
	}
	l.advance(token.COLON)
	value := parseType(l)
	return &flowast.Property{Key: key, Value: value, Optional: optional, Loc: loc}
}
