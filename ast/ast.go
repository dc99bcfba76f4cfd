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

// Package ast defines the abstract syntax tree produced by parsing a query document.
package ast

import (
	"github.com/cclow/nodeql/token"
)

// Name represents an identifier backed by a lexer token.
type Name struct {
	// Token is the lexical token that contains the name and indicates the location in the source;
	// its kind must be token.KindName.
	Token *token.Token
}

// Value returns the name in string.
func (node Name) Value() string {
	if node.Token == nil {
		return ""
	}
	return node.Token.Value
}

// IsNil returns true for a Name that was not present in the source (e.g., an omitted alias).
func (node Name) IsNil() bool {
	return node.Token == nil
}

//===----------------------------------------------------------------------------------------===//
// Argument literals
//===----------------------------------------------------------------------------------------===//

// Value is an argument literal given to a call. It is either an IntValue or a StringValue.
type Value interface {
	// Interface returns the literal as a Go value (int or string).
	Interface() interface{}

	// graphNode restricts implementations to this package.
	graphNode()
}

// IntValue represents an integer literal.
type IntValue struct {
	// Token indicates the location of the literal; its kind must be token.KindInt.
	Token *token.Token

	// The parsed integer value
	Value int
}

var _ Value = IntValue{}

// Interface implements Value.
func (node IntValue) Interface() interface{} {
	return node.Value
}

func (IntValue) graphNode() {}

// StringValue represents a quoted string literal.
type StringValue struct {
	// Token indicates the location of the literal; its kind must be token.KindString. The token's
	// Value holds the interpreted (unescaped) string.
	Token *token.Token
}

var _ Value = StringValue{}

// Value returns the interpreted string value.
func (node StringValue) Value() string {
	return node.Token.Value
}

// Interface implements Value.
func (node StringValue) Interface() interface{} {
	return node.Token.Value
}

func (StringValue) graphNode() {}

//===----------------------------------------------------------------------------------------===//
// Calls and selections
//===----------------------------------------------------------------------------------------===//

// Call is an identifier with optional arguments and an optional chained call, e.g. the
// "letters.from(3).for(2)" chain is three linked Calls.
type Call struct {
	// Name of the call
	Name Name

	// Arguments given to the call in source order; nil when the call has no parentheses.
	Arguments []Value

	// Next is the call chained with "." after this one, if any.
	Next *Call
}

// ArgumentValues returns the call's argument literals as Go values.
func (node *Call) ArgumentValues() []interface{} {
	if len(node.Arguments) == 0 {
		return nil
	}
	values := make([]interface{}, len(node.Arguments))
	for i, arg := range node.Arguments {
		values[i] = arg.Interface()
	}
	return values
}

// Selection is an entry in a selection set: either a FieldSelection or a FragmentSpread.
type Selection interface {
	graphSelection()
}

// SelectionSet is an ordered list of selections.
type SelectionSet []Selection

// FieldSelection selects a field (possibly a call chain) with an optional alias and optional
// sub-selections, e.g. `title as headline` or `comments.first(1) { ... }`.
type FieldSelection struct {
	// Call is the first call in the chain; never nil.
	Call *Call

	// Alias set by an "as" clause; IsNil when absent.
	Alias Name

	// SelectionSet nested under the field; nil for a leaf selection.
	SelectionSet SelectionSet
}

var _ Selection = (*FieldSelection)(nil)

func (*FieldSelection) graphSelection() {}

// Key returns the key under which the selection's result is recorded: the alias if present,
// otherwise the name of the first call in the chain.
func (node *FieldSelection) Key() string {
	if !node.Alias.IsNil() {
		return node.Alias.Value()
	}
	return node.Call.Name.Value()
}

// FragmentSpread references a fragment defined in the same document, e.g. `$postFields`.
type FragmentSpread struct {
	// Name of the referenced fragment, without the leading sigil.
	Name Name
}

var _ Selection = (*FragmentSpread)(nil)

func (*FragmentSpread) graphSelection() {}

//===----------------------------------------------------------------------------------------===//
// Fragments and the document
//===----------------------------------------------------------------------------------------===//

// FragmentDefinition is a named, reusable selection set defined alongside the query body, e.g.
// `$postFields: { title, content }`.
type FragmentDefinition struct {
	// Name of the fragment, without the leading sigil.
	Name Name

	// SelectionSet spliced in wherever the fragment is referenced.
	SelectionSet SelectionSet
}

// QueryDocument is a parsed query: the root selections followed by any fragment definitions.
type QueryDocument struct {
	// Selections lists the root calls in source order.
	Selections SelectionSet

	// Fragments lists fragment definitions in source order. Identifiers are unique within a
	// document; the parser rejects duplicates.
	Fragments []*FragmentDefinition
}
