// Package token names the lexical tokens flowparser's lexer produces.
package token

import "text/scanner"

const (
	EOF       = scanner.EOF
	NAME      = scanner.Ident
	INT       = scanner.Int
	FLOAT     = scanner.Float
	STRING    = scanner.String
	BANG      = '!'
	QUESTION  = '?'
	PLUS      = '+'
	COLON     = ':'
	SEMI      = ';'
	COMMA     = ','
	EQUALS    = '='
	PIPE      = '|'
	AMP       = '&'
	PAREN_L   = '('
	PAREN_R   = ')'
	BRACKET_L = '['
	BRACKET_R = ']'
	BRACE_L   = '{'
	BRACE_R   = '}'
	ANGLE_L   = '<'
	ANGLE_R   = '>'
)

// Keywords recognized at the top level and in type position.
const (
	EXPORT  = "export"
	TYPE    = "type"
	STRINGK = "string"
	NUMBER  = "number"
	BOOLEAN = "boolean"
	TRUE    = "true"
	FALSE   = "false"
	NULL    = "null"
)
