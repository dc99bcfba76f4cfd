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

package token

import (
	"fmt"
)

// Kind describes the different kinds of tokens that the lexer emits.
type Kind int

// Enumeration of Kind
const (
	// <SOF>
	KindSOF Kind = iota + 1
	// <EOF>
	KindEOF
	// $
	KindDollar
	// (
	KindLeftParen
	// )
	KindRightParen
	// .
	KindDot
	// :
	KindColon
	// {
	KindLeftBrace
	// }
	KindRightBrace
	// /[_A-Za-z][_0-9A-Za-z]*/
	KindName
	// /-?(0|[1-9][0-9]*)/
	KindInt
	// Double-quoted string literal
	KindString
)

var _ fmt.Stringer = Kind(0)

func (kind Kind) String() string {
	switch kind {
	case KindSOF:
		return "<SOF>"
	case KindEOF:
		return "<EOF>"
	case KindDollar:
		return "$"
	case KindLeftParen:
		return "("
	case KindRightParen:
		return ")"
	case KindDot:
		return "."
	case KindColon:
		return ":"
	case KindLeftBrace:
		return "{"
	case KindRightBrace:
		return "}"
	case KindName:
		return "Name"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	}
	panic("unsupported token kind")
}

// Token represents a range of characters represented by a lexical token within a Source.
//
// All tokens of a source form a doubly linked list headed by the SOF token (see NewSOFToken),
// which is the one place the Source reference is stored. AST nodes therefore hold nothing but a
// token and can still report where in which source they appeared.
type Token struct {
	// The kind of Token.
	Kind Kind

	// The position at which this Token begins in the source
	Location SourceLocation

	// The length of the token in the source
	Length uint

	// For punctuation tokens, this is empty. For other kinds of token, this represents the
	// interpreted value of the token.
	Value string

	// Neighbors in the token list; Prev is nil only on the SOF token.
	Prev *Token
	Next *Token

	// The source this token list was lexed from; set only on the SOF token.
	source *Source
}

// NewSOFToken creates the head of a new token list for the given source. Every token linked
// behind it can recover the Source by walking back to this head.
func NewSOFToken(source *Source) *Token {
	return &Token{
		Kind:   KindSOF,
		source: source,
	}
}

// Source returns the Source this token was lexed from.
func (token *Token) Source() *Source {
	head := token
	for head.Prev != nil {
		head = head.Prev
	}
	return head.source
}

// EndLocation returns the location one past the last byte of the token.
func (token *Token) EndLocation() SourceLocation {
	return token.Location.WithOffset(int(token.Length))
}

// Description renders the token for use in diagnostics, quoting the value when one is present.
func (token *Token) Description() string {
	if len(token.Value) == 0 {
		return token.Kind.String()
	}
	return token.Kind.String() + ` "` + token.Value + `"`
}

// LocationInfo returns the line and column number at which the token begins in the source.
func (token *Token) LocationInfo() SourceLocationInfo {
	return token.Source().LocationInfoOf(token.Location)
}
