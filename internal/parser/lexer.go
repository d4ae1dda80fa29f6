package parser

import "strings"

type tokKind int

const (
	tokEOF tokKind = iota
	// tokWord is a bare identifier, keyword, or number.
	tokWord
	// tokIdent is a backtick-quoted identifier, unescaped.
	tokIdent
	// tokString is a single- or double-quoted literal, unescaped.
	tokString
	tokLParen
	tokRParen
	tokComma
	// tokSymbol is any other punctuation character.
	tokSymbol
)

// token carries its byte span in the statement source so parsers can slice
// out verbatim text (type lengths, enum value lists).
type token struct {
	kind tokKind
	text string
	pos  int
	end  int
}

// lexAll tokenizes one statement span. Comments are dropped. Statement spans
// are small, so tokenizing eagerly keeps lookahead trivial.
func lexAll(src string) []token {
	var toks []token
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == '#':
			i = skipLine(src, i)
		case c == '-' && i+1 < n && src[i+1] == '-' && lineCommentAt(src, i):
			i = skipLine(src, i)
		case c == '/' && i+1 < n && src[i+1] == '*':
			i = skipBlockComment(src, i)
		case c == '`':
			text, end := lexQuoted(src, i, '`')
			toks = append(toks, token{kind: tokIdent, text: text, pos: i, end: end})
			i = end
		case c == '\'' || c == '"':
			text, end := lexQuoted(src, i, c)
			toks = append(toks, token{kind: tokString, text: text, pos: i, end: end})
			i = end
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i, end: i + 1})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i, end: i + 1})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i, end: i + 1})
			i++
		case isWordStart(c):
			j := i
			for j < n && isWordPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: src[i:j], pos: i, end: j})
			i = j
		default:
			toks = append(toks, token{kind: tokSymbol, text: string(c), pos: i, end: i + 1})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: n, end: n})
	return toks
}

// lexQuoted consumes a quoted segment starting at i. Backslash escapes apply
// inside string quotes; a doubled quote character escapes itself in all three
// quote styles. Returns the unescaped text and the index past the closing
// quote.
func lexQuoted(src string, i int, quote byte) (string, int) {
	var b strings.Builder
	j := i + 1
	n := len(src)
	for j < n {
		c := src[j]
		switch {
		case c == '\\' && quote != '`' && j+1 < n:
			b.WriteByte(src[j+1])
			j += 2
		case c == quote && j+1 < n && src[j+1] == quote:
			b.WriteByte(quote)
			j += 2
		case c == quote:
			return b.String(), j + 1
		default:
			b.WriteByte(c)
			j++
		}
	}
	// Unterminated quote; the splitter reports these, but stay tolerant.
	return b.String(), n
}

func lineCommentAt(src string, i int) bool {
	if i+2 >= len(src) {
		return true
	}
	c := src[i+2]
	return isSpace(c) || c == '-'
}

func skipLine(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(src string, i int) int {
	end := strings.Index(src[i+2:], "*/")
	if end < 0 {
		return len(src)
	}
	return i + 2 + end + 2
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '$' || c >= 0x80
}

func isWordPart(c byte) bool {
	return isWordStart(c) || c == '.'
}
