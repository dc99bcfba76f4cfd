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

package nodeql

import (
	"github.com/cclow/nodeql/ast"
	"github.com/cclow/nodeql/parser"
	"github.com/cclow/nodeql/token"

	"github.com/dolmen-go/jsonmap"
	jsoniter "github.com/json-iterator/go"
)

// Query is a parsed query bound to a schema and an opaque context, ready to execute.
type Query struct {
	schema    *Schema
	doc       *ast.QueryDocument
	fragments map[string]*ast.FragmentDefinition
	context   interface{}
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithContext supplies the opaque context handle threaded through every resolution of the query.
// The engine never inspects it.
func WithContext(ctx interface{}) QueryOption {
	return func(query *Query) {
		query.context = ctx
	}
}

// Query parses the given source text into a Query. It does not execute; call Result on the
// returned Query to run it. A malformed source yields a syntax error pointing at the first
// offending character.
func (schema *Schema) Query(text string, opts ...QueryOption) (*Query, error) {
	const op Op = "nodeql.Query"

	doc, err := parser.Parse(token.NewSource(text))
	if err != nil {
		if syntaxErr, ok := err.(*token.SyntaxError); ok {
			info := syntaxErr.LocationInfo()
			return nil, NewError(syntaxErr.Error(), op, ErrKindSyntax, ErrorLocation{
				Line:   info.Line,
				Column: info.Column,
			})
		}
		return nil, NewError("cannot parse query", op, ErrKindSyntax, err)
	}

	query := &Query{
		schema: schema,
		doc:    doc,
	}
	for _, opt := range opts {
		opt(query)
	}

	// Fragment identifiers are unique within a query; the parser enforces that, so building the
	// lookup table cannot clobber.
	query.fragments = make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, fragment := range doc.Fragments {
		query.fragments[fragment.Name.Value()] = fragment
	}

	return query, nil
}

// MustQuery is a convenience function equivalent to Query but panics on failure instead of
// returning an error.
func (schema *Schema) MustQuery(text string, opts ...QueryOption) *Query {
	query, err := schema.Query(text, opts...)
	if err != nil {
		panic(err)
	}
	return query
}

// Context returns the opaque context handle the query was constructed with.
func (query *Query) Context() interface{} {
	return query.context
}

// Document returns the parsed query AST.
func (query *Query) Document() *ast.QueryDocument {
	return query.doc
}

// Result executes the query and returns the nested result mapping. Keys within every mapping
// follow selection order in the query text. No partial result is returned on error.
func (query *Query) Result() (*jsonmap.Ordered, error) {
	return execute(query.schema, query.doc, query.fragments, query.context)
}

// ResultJSON executes the query and serializes the result mapping to JSON.
func (query *Query) ResultJSON() ([]byte, error) {
	result, err := query.Result()
	if err != nil {
		return nil, err
	}
	return jsoniter.Marshal(result)
}

// FragmentInfo describes a fragment defined in a query document.
type FragmentInfo struct {
	// Identifier of the fragment, without the leading sigil
	Identifier string

	// FieldCount is the number of selections the fragment defines.
	FieldCount int

	// Selections defined by the fragment
	Selections ast.SelectionSet
}

// Fragments returns the fragments defined in the query, keyed by identifier.
func (query *Query) Fragments() map[string]FragmentInfo {
	fragments := make(map[string]FragmentInfo, len(query.fragments))
	for name, fragment := range query.fragments {
		fragments[name] = FragmentInfo{
			Identifier: name,
			FieldCount: len(fragment.SelectionSet),
			Selections: fragment.SelectionSet,
		}
	}
	return fragments
}
