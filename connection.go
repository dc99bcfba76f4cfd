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
	"fmt"
)

// Names of the conventional fields every connection type exposes.
const (
	connectionCountField = "count"
	connectionAnyField   = "any"
	connectionEdgesField = "edges"
	connectionFirstField = "first"
	connectionAfterField = "after"

	edgeCursorField = "cursor"
	edgeNodeField   = "node"
)

// EdgeTypeName returns the name under which a connection type's edge type is registered.
func EdgeTypeName(connectionName string) string {
	return connectionName + "_edge"
}

// synthesizeConnectionFields attaches the conventional collection fields to a connection type and
// builds its edge type. Fields the author declared explicitly (e.g. an aggregate overriding
// "count") are left untouched.
func synthesizeConnectionFields(t *NodeType) (*NodeType, error) {
	edgeName := EdgeTypeName(t.name)

	t.addField(&FieldDef{
		name:     connectionCountField,
		typeName: ScalarNumber,
		resolver: collectionResolver(connectionCountField,
			func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
				return len(elements), nil
			}),
	})

	t.addField(&FieldDef{
		name:     connectionAnyField,
		typeName: ScalarBoolean,
		resolver: collectionResolver(connectionAnyField,
			func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
				return len(elements) > 0, nil
			}),
	})

	t.addField(&FieldDef{
		name:     connectionEdgesField,
		typeName: edgeName,
		resolver: collectionResolver(connectionEdgesField,
			func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
				return elements, nil
			}),
	})

	// first(n) narrows the collection to its first n elements; the result is a collection of the
	// same type, so further collection fields and calls chain off it.
	t.addField(&FieldDef{
		name:     connectionFirstField,
		typeName: t.name,
		resolver: collectionResolver(connectionFirstField,
			func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
				n, err := intArgument(connectionFirstField, args, 0)
				if err != nil {
					return nil, err
				}
				if n < 0 {
					n = 0
				}
				if n > len(elements) {
					n = len(elements)
				}
				return elements[:n], nil
			}),
	})

	// after(cursor) narrows the collection to the elements following the one whose cursor matches.
	elementTypeName := t.connectionFor
	t.addField(&FieldDef{
		name:     connectionAfterField,
		typeName: t.name,
		resolver: collectionResolver(connectionAfterField,
			func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
				cursor, err := stringArgument(connectionAfterField, args, 0)
				if err != nil {
					return nil, err
				}
				elementType, err := info.Schema.Type(elementTypeName)
				if err != nil {
					return nil, err
				}
				for i, element := range elements {
					id, err := elementType.Identify(element)
					if err != nil {
						return nil, err
					}
					if id == cursor {
						return elements[i+1:], nil
					}
				}
				return []interface{}{}, nil
			}),
	})

	return newEdgeType(edgeName, elementTypeName)
}

// newEdgeType builds the edge type paired with a connection: each edge exposes the element's
// cursor and the element itself.
func newEdgeType(edgeName string, elementTypeName string) (*NodeType, error) {
	return newNodeType(NodeTypeConfig{
		Name: edgeName,
		Fields: Fields{
			Field(ScalarString, edgeCursorField, WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					elementType, err := info.Schema.Type(elementTypeName)
					if err != nil {
						return nil, err
					}
					return elementType.Identify(target)
				})),
			Field(elementTypeName, edgeNodeField, WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target, nil
				})),
		},
	})
}

// collectionResolver adapts an operation on a normalized collection into a FieldResolver.
func collectionResolver(
	fieldName string,
	op func(elements []interface{}, args []interface{}, info ResolveInfo) (interface{}, error)) FieldResolver {
	return FieldResolverFunc(func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
		elements, ok := target.([]interface{})
		if !ok {
			return nil, NewError(
				fmt.Sprintf("%s requires a collection but the node wraps %T", fieldName, target),
				ErrKindExecution)
		}
		return op(elements, args, info)
	})
}
