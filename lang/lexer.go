package lang

import (
	"fmt"
	"strings"
)

// lexer turns source text into a flat token stream. Numeric literals are
// scanned as a single maximal run (digits, optional dual '/',  optional
// adjoining unit letters or ':ss'/'%' suffix) and handed to the parser as
// tokNumber; the parser classifies the raw text against whichever shape
// (quantity or load) it is expecting at that point in the grammar, the
// same division of labor the Lark grammar in the original implementation
// draws between terminal regexes and transformer methods.
type lexer struct {
	src  []rune
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) at(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// "cal" is deliberately absent: the grammar always separates it from
// the number with a space ("12 cal", "15/12 cal"), so it arrives as
// its own identifier token and the parser glues it back on.
var numberUnits = []string{"km", "kg", "lb", "cm", "in", "s", "m"}

func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isIdentTail(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// tokenize consumes the whole source and returns its token stream, or a
// parse error for the few failures the lexer itself can detect (an
// unterminated string literal, an unexpected character).
func (l *lexer) tokenize() ([]token, error) {
	var toks []token
	for {
		l.skipSpacesAndComments()
		if l.pos >= len(l.src) {
			toks = append(toks, token{kind: tokEOF, line: l.line})
			return toks, nil
		}
		r := l.peekRune()
		switch {
		case r == '\n':
			toks = append(toks, token{kind: tokNewline, text: "\n", line: l.line})
			l.pos++
			l.line++
		case r == '"':
			s, err := l.scanString()
			if err != nil {
				return nil, err
			}
			toks = append(toks, s)
		case isDigit(r):
			toks = append(toks, l.scanNumber())
		case isLetter(r):
			toks = append(toks, l.scanIdent())
		case strings.ContainsRune("{}[](),:;@/-=", r):
			toks = append(toks, token{kind: tokSymbol, text: string(r), line: l.line})
			l.pos++
		default:
			return nil, fmt.Errorf("line %d: unexpected character %q", l.line, r)
		}
	}
}

// skipSpacesAndComments advances past horizontal whitespace and '#'
// line comments. Newlines are significant (statement terminators) and
// are emitted as tokens rather than skipped here.
func (l *lexer) skipSpacesAndComments() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			l.pos++
		case r == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) scanString() (token, error) {
	start := l.line
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("line %d: unterminated string literal", start)
		}
		r := l.src[l.pos]
		if r == '"' {
			l.pos++
			return token{kind: tokString, text: b.String(), line: start}, nil
		}
		if r == '\n' {
			return token{}, fmt.Errorf("line %d: unterminated string literal", start)
		}
		b.WriteRune(r)
		l.pos++
	}
}

func (l *lexer) scanIdent() token {
	start := l.pos
	line := l.line
	for l.pos < len(l.src) && isIdentTail(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos]), line: line}
}

// scanNumber consumes the maximal literal run starting at a digit:
// digits, an optional fractional part, an optional '/digits[.digits]'
// dual half, then at most one of: a recognized unit suffix glued on
// with no intervening space, a ':ss' time tail, or a '%' sign. The
// caller (parser) decides what the resulting shape means.
func (l *lexer) scanNumber() token {
	line := l.line
	start := l.pos
	l.scanDigits()
	hadFrac := l.maybeScanFrac()
	if l.peekRune() == '/' && isDigit(l.at(1)) {
		l.pos++ // '/'
		l.scanDigits()
		l.maybeScanFrac()
	}
	if !hadFrac && l.peekRune() == ':' && isDigit(l.at(1)) && isDigit(l.at(2)) && !isDigit(l.at(3)) {
		l.pos++ // ':'
		l.scanDigits()
	} else if unit := l.matchUnit(); unit != "" {
		l.pos += len([]rune(unit))
	} else if l.peekRune() == '%' {
		l.pos++
	}
	return token{kind: tokNumber, text: string(l.src[start:l.pos]), line: line}
}

func (l *lexer) scanDigits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) maybeScanFrac() bool {
	if l.peekRune() == '.' && isDigit(l.at(1)) {
		l.pos++
		l.scanDigits()
		return true
	}
	return false
}

// matchUnit returns the longest unit suffix (from numberUnits) glued
// onto the run at the current position with no space, or "" if none
// matches. "km" is checked before "m" so the longer form wins.
func (l *lexer) matchUnit() string {
	rest := l.src[l.pos:]
	for _, u := range numberUnits {
		ur := []rune(u)
		if len(rest) < len(ur) {
			continue
		}
		if string(rest[:len(ur)]) != u {
			continue
		}
		// don't swallow into a following identifier character, e.g. "10mm"
		if len(rest) > len(ur) && isIdentTail(rest[len(ur)]) {
			continue
		}
		return u
	}
	return ""
}
