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
	"sort"

	"github.com/cclow/nodeql/internal/util"
)

// contextRootCallName is the distinguished root call that returns the query context itself,
// wrapped in the node type registered under the same name.
const contextRootCallName = "context"

// Schema is the registry of node types and root calls a query executes against. Register
// everything before running the first query: the registry is read-only during execution and
// concurrent registration is undefined.
type Schema struct {
	types     map[string]*NodeType
	rootCalls map[string]*RootCall
}

// NewSchema creates a Schema with the built-in scalar node types and the introspection surface
// registered.
func NewSchema() *Schema {
	schema := &Schema{
		types:     map[string]*NodeType{},
		rootCalls: map[string]*RootCall{},
	}

	for _, scalarType := range builtinScalarTypes() {
		schema.types[scalarType.Name()] = scalarType
	}

	registerIntrospection(schema)

	return schema
}

// RegisterType adds a node type to the schema keyed by its name. Registering a connection type
// also registers its edge type. It fails when the name is already taken.
func (schema *Schema) RegisterType(config NodeTypeConfig) (*NodeType, error) {
	const op Op = "nodeql.RegisterType"

	nodeType, err := newNodeType(config)
	if err != nil {
		return nil, NewError("cannot build node type", op, err)
	}

	if _, exists := schema.types[nodeType.Name()]; exists {
		return nil, NewError(
			fmt.Sprintf("type %q is already registered", nodeType.Name()), op)
	}

	if nodeType.IsConnection() {
		edgeType, err := synthesizeConnectionFields(nodeType)
		if err != nil {
			return nil, NewError("cannot build edge type", op, err)
		}
		if _, exists := schema.types[edgeType.Name()]; exists {
			return nil, NewError(
				fmt.Sprintf("type %q is already registered", edgeType.Name()), op)
		}
		schema.types[edgeType.Name()] = edgeType
	}

	schema.types[nodeType.Name()] = nodeType
	return nodeType, nil
}

// MustRegisterType is a convenience function equivalent to RegisterType but panics on failure
// instead of returning an error.
func (schema *Schema) MustRegisterType(config NodeTypeConfig) *NodeType {
	nodeType, err := schema.RegisterType(config)
	if err != nil {
		panic(err)
	}
	return nodeType
}

// Type retrieves a node type by name.
func (schema *Schema) Type(name string) (*NodeType, error) {
	nodeType, ok := schema.types[name]
	if !ok {
		return nil, NewError(
			fmt.Sprintf("unknown type %q.%s", name,
				didYouMean(name, schema.TypeNames())),
			ErrKindTypeNotFound)
	}
	return nodeType, nil
}

// TypeNames returns the names of all registered node types, sorted.
func (schema *Schema) TypeNames() []string {
	names := make([]string, 0, len(schema.types))
	for name := range schema.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterRootCall adds a root call to the schema keyed by its name.
func (schema *Schema) RegisterRootCall(config RootCallConfig) (*RootCall, error) {
	const op Op = "nodeql.RegisterRootCall"

	rootCall, err := newRootCall(config)
	if err != nil {
		return nil, NewError("cannot build root call", op, err)
	}

	if _, exists := schema.rootCalls[rootCall.Name()]; exists {
		return nil, NewError(
			fmt.Sprintf("root call %q is already registered", rootCall.Name()), op)
	}

	schema.rootCalls[rootCall.Name()] = rootCall
	return rootCall, nil
}

// MustRegisterRootCall is a convenience function equivalent to RegisterRootCall but panics on
// failure instead of returning an error.
func (schema *Schema) MustRegisterRootCall(config RootCallConfig) *RootCall {
	rootCall, err := schema.RegisterRootCall(config)
	if err != nil {
		panic(err)
	}
	return rootCall
}

// RootCall retrieves a root call by name. The distinguished "context" root call is available
// without registration; registering one explicitly overrides the built-in.
func (schema *Schema) RootCall(name string) (*RootCall, error) {
	rootCall, ok := schema.rootCalls[name]
	if ok {
		return rootCall, nil
	}

	if name == contextRootCallName {
		return builtinContextRootCall, nil
	}

	return nil, NewError(
		fmt.Sprintf("unknown root call %q.%s", name,
			didYouMean(name, schema.RootCallNames())),
		ErrKindRootCallNotFound)
}

// RootCallNames returns the names of all registered root calls, sorted.
func (schema *Schema) RootCallNames() []string {
	names := make([]string, 0, len(schema.rootCalls)+1)
	for name := range schema.rootCalls {
		names = append(names, name)
	}
	if _, registered := schema.rootCalls[contextRootCallName]; !registered {
		names = append(names, contextRootCallName)
	}
	sort.Strings(names)
	return names
}

// FieldOn resolves a field name against a node type: its own fields are searched first, then the
// parent chain is walked. The first match wins, so a child overrides a parent field by declaring
// the same name.
func (schema *Schema) FieldOn(nodeType *NodeType, name string) (*FieldDef, error) {
	visited := map[string]bool{}
	current := nodeType
	for {
		if field, ok := current.OwnField(name); ok {
			return field, nil
		}

		parentName := current.ParentName()
		if len(parentName) == 0 {
			break
		}
		if visited[current.Name()] {
			return nil, NewError(
				fmt.Sprintf("type %q has a cyclic parent chain", nodeType.Name()),
				ErrKindInternal)
		}
		visited[current.Name()] = true

		parent, err := schema.Type(parentName)
		if err != nil {
			return nil, WrapErrorf(err, "type %q names unknown parent", current.Name())
		}
		current = parent
	}

	return nil, NewError(
		fmt.Sprintf("cannot query field %q on type %q.%s", name, nodeType.Name(),
			didYouMean(name, schema.visibleFieldNames(nodeType))),
		ErrKindFieldNotDefined)
}

// visibleFieldNames collects the field names reachable from a node type through its parent chain,
// for use in suggestions.
func (schema *Schema) visibleFieldNames(nodeType *NodeType) []string {
	var (
		names   []string
		seen    = map[string]bool{}
		visited = map[string]bool{}
		current = nodeType
	)
	for current != nil && !visited[current.Name()] {
		visited[current.Name()] = true
		for _, name := range current.FieldNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}

		parentName := current.ParentName()
		if len(parentName) == 0 {
			break
		}
		parent, ok := schema.types[parentName]
		if !ok {
			break
		}
		current = parent
	}
	sort.Strings(names)
	return names
}

// builtinContextRootCall returns the opaque query context wrapped in the node type named
// "context".
var builtinContextRootCall = &RootCall{
	name: contextRootCallName,
	returns: []Return{
		{key: contextRootCallName, typeName: contextRootCallName},
	},
	resolver: RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
		return ctx, nil
	}),
}

// didYouMean formats a " Did you mean ...?" suffix from options similar to the input, or returns
// "" when nothing is close enough.
func didYouMean(input string, options []string) string {
	suggestions := util.SuggestionList(input, options)
	if len(suggestions) == 0 {
		return ""
	}

	var b util.StringBuilder
	b.WriteString(" Did you mean ")
	util.OrList(&b, suggestions, 5, true)
	b.WriteString("?")
	return b.String()
}
