/**
 * Copyright (c) 2020, The NodeQL Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package lexer tokenizes a query source into a stream of tokens.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cclow/nodeql/token"
)

// Lexer is a stateful stream generator over a Source: every Advance yields the next token, and
// once the source is exhausted the same EOF token is yielded forever. Scanned tokens are linked
// into a list, so Lookahead never scans the same region twice.
type Lexer struct {
	source *token.Source
	body   token.SourceBody

	// The currently focused token
	token *token.Token

	// Byte offset where the next scan starts
	pos uint
}

// New initializes a Lexer for the given Source.
func New(source *token.Source) *Lexer {
	l := &Lexer{
		source: source,
		body:   source.Body(),
		token:  token.NewSOFToken(source),
	}
	// A UTF-8 byte order mark before the first token is ignored.
	if l.body.Size() >= 3 && l.body[0] == 0xEF && l.body[1] == 0xBB && l.body[2] == 0xBF {
		l.pos = 3
	}
	return l
}

// Source returns the source being lexed.
func (l *Lexer) Source() *token.Source {
	return l.source
}

// Token returns the current token.
func (l *Lexer) Token() *token.Token {
	return l.token
}

// Advance moves the stream to the next token and returns it.
func (l *Lexer) Advance() (*token.Token, error) {
	next, err := l.Lookahead()
	if err != nil {
		return nil, err
	}
	l.token = next
	return next, nil
}

// Lookahead returns the token following the current one without moving the stream. The result is
// linked behind the current token, so a later Advance picks it up without rescanning.
func (l *Lexer) Lookahead() (*token.Token, error) {
	cur := l.token
	if cur.Kind == token.KindEOF {
		return cur, nil
	}
	if cur.Next == nil {
		next, err := l.scan()
		if err != nil {
			return nil, err
		}
		next.Prev = cur
		cur.Next = next
	}
	return cur.Next, nil
}

// isSeparator reports whether b separates tokens. Commas count as whitespace in this language.
func isSeparator(b byte) bool {
	return b == ' ' || b == '\t' || b == ',' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameChar(b byte) bool {
	return isNameStart(b) || isDigit(b)
}

// punctuators maps the single-byte tokens of the grammar to their kinds.
var punctuators = map[byte]token.Kind{
	'$': token.KindDollar,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	'.': token.KindDot,
	':': token.KindColon,
	'{': token.KindLeftBrace,
	'}': token.KindRightBrace,
}

// scan reads the next token starting at l.pos, skipping separators first.
func (l *Lexer) scan() (*token.Token, error) {
	size := l.body.Size()
	for l.pos < size && isSeparator(l.body[l.pos]) {
		l.pos++
	}

	if l.pos >= size {
		return &token.Token{
			Kind:     token.KindEOF,
			Location: l.source.LocationFromPos(l.pos),
		}, nil
	}

	b := l.body[l.pos]
	switch {
	case punctuators[b] != 0:
		l.pos++
		return l.emit(punctuators[b], l.pos-1, ""), nil

	case isNameStart(b):
		return l.scanName(), nil

	case b == '-' || isDigit(b):
		return l.scanNumber()

	case b == '"':
		return l.scanString()
	}

	return nil, l.errUnexpectedByte(l.pos)
}

// emit builds a token covering [start, l.pos) in the source.
func (l *Lexer) emit(kind token.Kind, start uint, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: l.source.LocationFromPos(start),
		Length:   l.pos - start,
		Value:    value,
	}
}

// scanName reads a name token: /[_A-Za-z][_0-9A-Za-z]*/.
func (l *Lexer) scanName() *token.Token {
	start := l.pos
	for l.pos < l.body.Size() && isNameChar(l.body[l.pos]) {
		l.pos++
	}
	return l.emit(token.KindName, start, l.body.SubStr(start, l.pos))
}

// scanNumber reads an integer literal: an optional minus sign followed by either a single zero or
// a nonzero digit and any further digits.
func (l *Lexer) scanNumber() (*token.Token, error) {
	start := l.pos

	if l.body[l.pos] == '-' {
		l.pos++
		if l.pos >= l.body.Size() || !isDigit(l.body[l.pos]) {
			return nil, l.errAt(l.pos,
				"invalid number, expected digit after '-' but got: %s", l.printable(l.pos))
		}
	}

	digits := l.pos
	for l.pos < l.body.Size() && isDigit(l.body[l.pos]) {
		l.pos++
	}
	if l.body[digits] == '0' && l.pos-digits > 1 {
		return nil, l.errAt(digits+1,
			"invalid number, unexpected digit after 0: %s", l.printable(digits+1))
	}

	return l.emit(token.KindInt, start, l.body.SubStr(start, l.pos)), nil
}

// scanString reads a single-line, double-quoted string literal, interpreting its escapes. The
// token value holds the interpreted string.
func (l *Lexer) scanString() (*token.Token, error) {
	start := l.pos
	// Step over the opening quote.
	l.pos++

	var value strings.Builder
	for l.pos < l.body.Size() {
		b := l.body[l.pos]
		switch {
		case b == '"':
			l.pos++
			return l.emit(token.KindString, start, value.String()), nil

		case b == '\n' || b == '\r':
			// A line terminator before the closing quote ends the literal early.
			return nil, l.errAt(l.pos, "unterminated string")

		case b == '\\':
			if err := l.scanEscape(&value); err != nil {
				return nil, err
			}

		case b < 0x20 && b != '\t':
			return nil, l.errAt(l.pos, "invalid character within string: %s", l.printable(l.pos))

		default:
			value.WriteByte(b)
			l.pos++
		}
	}

	return nil, l.errAt(l.pos, "unterminated string")
}

// escapeValues maps single-character escape markers to their interpreted bytes.
var escapeValues = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// scanEscape interprets one escape sequence; l.pos is on the backslash when called.
func (l *Lexer) scanEscape(value *strings.Builder) error {
	backslash := l.pos
	l.pos++
	if l.pos >= l.body.Size() {
		return l.errAt(backslash, "invalid character escape sequence: \\<EOF>")
	}

	marker := l.body[l.pos]
	l.pos++

	if b, ok := escapeValues[marker]; ok {
		value.WriteByte(b)
		return nil
	}

	if marker == 'u' {
		end := l.pos + 4
		if end <= l.body.Size() {
			if code, err := strconv.ParseUint(l.body.SubStr(l.pos, end), 16, 32); err == nil {
				value.WriteRune(rune(code))
				l.pos = end
				return nil
			}
		}
		if end > l.body.Size() {
			end = l.body.Size()
		}
		return l.errAt(backslash,
			"invalid character escape sequence: \\u%s", l.body.SubStr(l.pos, end))
	}

	return l.errAt(backslash, "invalid character escape sequence: \\%c", marker)
}

// errUnexpectedByte reports a byte that cannot begin any token.
func (l *Lexer) errUnexpectedByte(pos uint) error {
	b := l.body.At(pos)
	switch {
	case b == '\'':
		return l.errAt(pos,
			"unexpected single quote character ('), did you mean to use a double quote (\")?")
	case b < 0x20 && b != '\t' && b != '\n' && b != '\r':
		return l.errAt(pos, "cannot contain the invalid character %s", l.printable(pos))
	}
	return l.errAt(pos, "cannot parse the unexpected character %s", l.printable(pos))
}

// errAt builds a syntax error pointing at pos.
func (l *Lexer) errAt(pos uint, format string, args ...interface{}) error {
	return token.NewSyntaxError(
		l.source, l.source.LocationFromPos(pos), fmt.Sprintf(format, args...))
}

// printable renders the rune at pos for an error message, quoting printable ASCII directly and
// escaping everything else.
func (l *Lexer) printable(pos uint) string {
	r, n := l.body.RuneAt(pos)
	if n == 0 {
		return "<EOF>"
	}
	if r < 0x20 || r >= 0x7F {
		return fmt.Sprintf(`"\u%04X"`, r)
	}
	return `"` + string(r) + `"`
}
