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

// Names of the introspection node types and root calls registered with every schema.
const (
	introspectionSchemaType   = "__schema__"
	introspectionType         = "__type__"
	introspectionFieldType    = "__field__"
	introspectionRootCallType = "__root_call__"
	introspectionArgumentType = "__argument__"
)

// registerIntrospection registers the node types and root calls that expose the schema to
// queries. Their resolvers read the registry like any other resolver reads its target.
func registerIntrospection(schema *Schema) {
	schema.MustRegisterType(NodeTypeConfig{
		Name:        introspectionSchemaType,
		Description: "The schema a query executes against.",
		Fields: Fields{
			Field(introspectionType, "types", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					s := target.(*Schema)
					types := make([]interface{}, 0, len(s.types))
					for _, name := range s.TypeNames() {
						types = append(types, s.types[name])
					}
					return types, nil
				})),
			Field(introspectionRootCallType, "root_calls", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					s := target.(*Schema)
					calls := make([]interface{}, 0, len(s.rootCalls))
					for _, name := range s.RootCallNames() {
						call, err := s.RootCall(name)
						if err != nil {
							return nil, err
						}
						calls = append(calls, call)
					}
					return calls, nil
				})),
		},
		Identify: func(target interface{}) (string, error) {
			return "schema", nil
		},
	})

	schema.MustRegisterType(NodeTypeConfig{
		Name:        introspectionType,
		Description: "A node type registered in the schema.",
		Fields: Fields{
			Field(ScalarString, "name", WithResolver(introspectTypeField(
				func(t *NodeType) interface{} { return t.Name() }))),
			Field(ScalarString, "description", WithResolver(introspectTypeField(
				func(t *NodeType) interface{} { return t.Description() }))),
			Field(ScalarString, "parent", WithResolver(introspectTypeField(
				func(t *NodeType) interface{} { return t.ParentName() }))),
			Field(ScalarString, "connection_for", WithResolver(introspectTypeField(
				func(t *NodeType) interface{} { return t.ConnectionFor() }))),
			Field(introspectionFieldType, "fields", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					t := target.(*NodeType)
					fields := make([]interface{}, 0, len(t.fieldOrder))
					for _, name := range t.fieldOrder {
						fields = append(fields, t.fields[name])
					}
					return fields, nil
				})),
		},
		Identify: func(target interface{}) (string, error) {
			return target.(*NodeType).Name(), nil
		},
	})

	schema.MustRegisterType(NodeTypeConfig{
		Name:        introspectionFieldType,
		Description: "A field declared on a node type.",
		Fields: Fields{
			Field(ScalarString, "name", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*FieldDef).Name(), nil
				})),
			Field(ScalarString, "type", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*FieldDef).TypeName(), nil
				})),
			Field(ScalarString, "description", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*FieldDef).Description(), nil
				})),
		},
		Identify: func(target interface{}) (string, error) {
			return target.(*FieldDef).Name(), nil
		},
	})

	schema.MustRegisterType(NodeTypeConfig{
		Name:        introspectionRootCallType,
		Description: "A root call registered in the schema.",
		Fields: Fields{
			Field(ScalarString, "name", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*RootCall).Name(), nil
				})),
			Field(ScalarString, "description", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*RootCall).Description(), nil
				})),
			Field(ScalarString, "returns", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(*RootCall).ReturnTypeName(), nil
				})),
			Field(introspectionArgumentType, "arguments", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					declared := target.(*RootCall).Arguments()
					arguments := make([]interface{}, len(declared))
					for i, argument := range declared {
						arguments[i] = argument
					}
					return arguments, nil
				})),
		},
		Identify: func(target interface{}) (string, error) {
			return target.(*RootCall).Name(), nil
		},
	})

	schema.MustRegisterType(NodeTypeConfig{
		Name:        introspectionArgumentType,
		Description: "An argument declared by a root call.",
		Fields: Fields{
			Field(ScalarString, "name", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(Argument).Name(), nil
				})),
			Field(ScalarString, "type", WithResolverFunc(
				func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
					return target.(Argument).TypeName(), nil
				})),
		},
		Identify: func(target interface{}) (string, error) {
			return target.(Argument).Name(), nil
		},
	})

	schema.MustRegisterRootCall(RootCallConfig{
		Name:        "schema",
		Description: "Returns the schema this query executes against.",
		Returns: []ReturnConfig{
			{Key: "schema", Type: introspectionSchemaType},
		},
		Resolver: RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
			return schema, nil
		}),
	})

	schema.MustRegisterRootCall(RootCallConfig{
		Name:        "type",
		Description: "Returns the node type registered under the given name.",
		Arguments: []ArgumentConfig{
			{Name: "name", Type: ScalarString},
		},
		Returns: []ReturnConfig{
			{Key: "type", Type: introspectionType},
		},
		Resolver: RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
			name, err := stringArgument("type", args, 0)
			if err != nil {
				return nil, err
			}
			return schema.Type(name)
		}),
	})
}

// introspectTypeField adapts a read off a *NodeType into a FieldResolver.
func introspectTypeField(read func(t *NodeType) interface{}) FieldResolver {
	return FieldResolverFunc(func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
		t, ok := target.(*NodeType)
		if !ok {
			return nil, NewError(
				fmt.Sprintf("expected a node type but got %T", target),
				ErrKindInternal)
		}
		return read(t), nil
	})
}
