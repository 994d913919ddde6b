package flowparser

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/shyptr/flowgen/flowast"
	"github.com/shyptr/flowgen/flowparser/token"
)

type syntaxError string

// lexer wraps text/scanner the way the teacher's internal/lexer.go does:
// one rune of lookahead in `next`, whitespace/comment skipping folded into
// advance, syntax errors raised by panic and caught at the top of Parse.
type lexer struct {
	scan *scanner.Scanner
	next rune
}

func newLexer(source string) *lexer {
	scan := &scanner.Scanner{
		Mode: scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings,
	}
	scan.Init(strings.NewReader(source))
	// Flow/relay-compiler type names use `$` freely (`$ReadOnlyArray`,
	// `Foo$ref`, `$fragmentRefs`); text/scanner's default ident rune set
	// does not include it.
	scan.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || ch == '$' || unicode.IsLetter(ch) || (i > 0 && unicode.IsDigit(ch))
	}
	l := &lexer{scan: scan}
	l.skipWhitespace()
	return l
}

func (l *lexer) catchSyntaxError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(syntaxError); ok {
				err = &locatedError{msg: string(se), loc: l.location()}
				return
			}
			panic(r)
		}
	}()
	fn()
	return
}

type locatedError struct {
	msg string
	loc flowast.Position
}

func (e *locatedError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.msg, e.loc.Line, e.loc.Column)
}

func (l *lexer) peek() rune {
	return l.next
}

func (l *lexer) location() flowast.Position {
	return flowast.Position{Line: l.scan.Line, Column: l.scan.Column}
}

// skipWhitespace skips whitespace and `//`/`/* */` comments. Commas are
// returned as tokens; the parser consumes them as separators.
func (l *lexer) skipWhitespace() {
	for {
		l.next = l.scan.Scan()
		if l.next == '/' && l.scan.Peek() == '/' {
			l.skipLineComment()
			continue
		}
		if l.next == '/' && l.scan.Peek() == '*' {
			l.skipBlockComment()
			continue
		}
		break
	}
}

func (l *lexer) skipLineComment() {
	for {
		next := l.scan.Next()
		if next == '\r' || next == '\n' || next == scanner.EOF {
			break
		}
	}
}

func (l *lexer) skipBlockComment() {
	l.scan.Next() // consume the '*'
	for {
		next := l.scan.Next()
		if next == scanner.EOF {
			break
		}
		if next == '*' && l.scan.Peek() == '/' {
			l.scan.Next()
			break
		}
	}
}

// advance checks the current token matches expected, then advances.
func (l *lexer) advance(expected rune) {
	if l.next != expected {
		l.SyntaxError("expected " + scanner.TokenString(expected) + ", found " + l.tokenText())
	}
	l.skipWhitespace()
}

func (l *lexer) advanceKeyword(keyword string) {
	if l.next != token.NAME || l.scan.TokenText() != keyword {
		l.SyntaxError("expected keyword " + keyword + ", found " + l.tokenText())
	}
	l.skipWhitespace()
}

func (l *lexer) tokenText() string {
	return strings.Trim(l.scan.TokenText(), `"`)
}

func (l *lexer) SyntaxError(message string) {
	panic(syntaxError(message))
}
