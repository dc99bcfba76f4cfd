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
	"reflect"
)

// IdentifyFunc projects a wrapped target to its identity string. Root-call results are keyed and
// edge cursors are produced with it.
type IdentifyFunc func(target interface{}) (string, error)

// NodeTypeConfig provides the specification to define a node type.
type NodeTypeConfig struct {
	// Name under which the type is registered in the schema
	Name string

	// Description for the node type
	Description string

	// Parent optionally names another node type whose fields this type inherits. The reference is
	// by name and resolved during execution, so a parent may be registered after its children.
	Parent string

	// ConnectionFor marks this type as a collection wrapper and names the element node type. The
	// conventional connection fields (count, any, edges, first, after) are synthesized on
	// registration, and an edge type named "<Name>_edge" is registered alongside.
	ConnectionFor string

	// Fields declared on the type, in declaration order
	Fields Fields

	// Identify overrides the identity projection. When nil, the target's ID method or struct
	// field is used.
	Identify IdentifyFunc
}

// NodeType describes a kind of node that can appear in query results: its schema name, its
// declared fields, an optional parent for field inheritance and an optional connection pairing.
type NodeType struct {
	name          string
	description   string
	parentName    string
	connectionFor string
	fields        map[string]*FieldDef
	fieldOrder    []string
	identify      IdentifyFunc

	// scalar is true for the built-in scalar types whose values are emitted as leaves when no
	// sub-selection or chained call is present.
	scalar bool
}

// newNodeType builds a NodeType from its config.
func newNodeType(config NodeTypeConfig) (*NodeType, error) {
	if len(config.Name) == 0 {
		return nil, NewError("must provide name for node type")
	}

	fields, order, err := buildFieldDefs(config.Fields)
	if err != nil {
		return nil, WrapErrorf(err, "invalid field declaration on type %q", config.Name)
	}
	if fields == nil {
		fields = map[string]*FieldDef{}
	}

	return &NodeType{
		name:          config.Name,
		description:   config.Description,
		parentName:    config.Parent,
		connectionFor: config.ConnectionFor,
		fields:        fields,
		fieldOrder:    order,
		identify:      config.Identify,
	}, nil
}

// Name returns the schema name of the type.
func (t *NodeType) Name() string {
	return t.name
}

// Description of the node type
func (t *NodeType) Description() string {
	return t.description
}

// ParentName returns the name of the parent type whose fields this type inherits, or "".
func (t *NodeType) ParentName() string {
	return t.parentName
}

// ConnectionFor returns the name of the element type when this type is a collection wrapper, or
// "".
func (t *NodeType) ConnectionFor() string {
	return t.connectionFor
}

// IsConnection returns true when the type represents a collection wrapper.
func (t *NodeType) IsConnection() bool {
	return len(t.connectionFor) > 0
}

// IsScalar returns true for the built-in scalar types.
func (t *NodeType) IsScalar() bool {
	return t.scalar
}

// OwnField returns the field declared directly on this type, without consulting parents.
func (t *NodeType) OwnField(name string) (*FieldDef, bool) {
	field, ok := t.fields[name]
	return field, ok
}

// FieldNames returns the names of the fields declared directly on this type, in declaration
// order.
func (t *NodeType) FieldNames() []string {
	return t.fieldOrder
}

// String implements fmt.Stringer.
func (t *NodeType) String() string {
	return t.name
}

// Identify projects the given target to its identity string using the type's identity projection.
func (t *NodeType) Identify(target interface{}) (string, error) {
	if t.identify != nil {
		return t.identify(target)
	}
	return defaultIdentify(target)
}

// addField attaches a synthesized field unless a same-named one was declared. Used for the
// conventional connection fields.
func (t *NodeType) addField(field *FieldDef) {
	if _, exists := t.fields[field.name]; exists {
		return
	}
	t.fields[field.name] = field
	t.fieldOrder = append(t.fieldOrder, field.name)
}

// defaultIdentify reads the identity off the target's ID (or Id) method or struct field and
// stringifies it.
func defaultIdentify(target interface{}) (string, error) {
	if target == nil {
		return "", NewError("cannot identify nil target", ErrKindExecution)
	}

	v := reflect.ValueOf(target)
	for _, name := range [...]string{"ID", "Id"} {
		if method := v.MethodByName(name); method.IsValid() && method.Type().NumIn() == 0 {
			out := method.Call(nil)
			return fmt.Sprintf("%v", out[0].Interface()), nil
		}
	}

	elem := v
	for elem.Kind() == reflect.Ptr {
		if elem.IsNil() {
			return "", NewError("cannot identify nil target", ErrKindExecution)
		}
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		for _, name := range [...]string{"ID", "Id"} {
			if field := elem.FieldByName(name); field.IsValid() && field.CanInterface() {
				return fmt.Sprintf("%v", field.Interface()), nil
			}
		}
	}

	return "", NewError(
		fmt.Sprintf("value of type %T provides no identity; declare Identify on its node type", target),
		ErrKindExecution)
}
