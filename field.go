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

	"github.com/cclow/nodeql/internal/util"
)

// ResolveInfo carries information about the current execution state into a resolver.
type ResolveInfo struct {
	// Schema being executed against
	Schema *Schema

	// Field being resolved
	Field *FieldDef

	// Context is the opaque caller-supplied query context. The engine never inspects it.
	Context interface{}
}

// FieldResolver resolves a field value during execution.
type FieldResolver interface {
	// Resolve computes the field value from the wrapped target and the call's argument literals.
	Resolve(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(target, args, info).
func (f FieldResolverFunc) Resolve(
	target interface{},
	args []interface{},
	info ResolveInfo) (interface{}, error) {
	return f(target, args, info)
}

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = FieldResolverFunc(nil)

// FieldConfig provides the declaration of a single field when defining a node type. Use Field to
// construct one.
type FieldConfig struct {
	// Type is the declared type of the field: a scalar tag ("string", "number", "boolean", "date")
	// or the schema name of a node type. The reference is resolved by name during execution, so
	// mutually recursive node types need no special treatment.
	Type string

	// Name of the defining field
	Name string

	// Description of the defining field
	Description string

	// Resolver for resolving the field value during execution; when nil, a default resolver is
	// synthesized that invokes the same-named method (or reads the same-named struct field) on the
	// wrapped target.
	Resolver FieldResolver
}

// Fields is the ordered list of field declarations of a node type. Declaration order only decides
// the order in which introspection lists the fields; field names must be unique within a type.
type Fields []FieldConfig

// FieldOption configures a field declaration.
type FieldOption func(*FieldConfig)

// Description attaches a description to a field declaration.
func Description(text string) FieldOption {
	return func(config *FieldConfig) {
		config.Description = text
	}
}

// WithResolver overrides the default resolver of a field declaration.
func WithResolver(resolver FieldResolver) FieldOption {
	return func(config *FieldConfig) {
		config.Resolver = resolver
	}
}

// WithResolverFunc is a convenience variant of WithResolver taking a plain function.
func WithResolverFunc(f func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error)) FieldOption {
	return WithResolver(FieldResolverFunc(f))
}

// Field declares a field of the given declared type and name. This is the field-declaration DSL
// used by node type authors:
//
//	nodeql.Fields{
//		nodeql.Field("string", "title"),
//		nodeql.Field("comments", "comments", nodeql.Description("comments on the post")),
//	}
func Field(typeTag string, name string, opts ...FieldOption) FieldConfig {
	config := FieldConfig{
		Type: typeTag,
		Name: name,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}

// FieldDef is a field declared on a NodeType. It yields a value of the declared type when
// resolved against a wrapped target.
type FieldDef struct {
	name        string
	description string
	typeName    string
	resolver    FieldResolver
}

// Name of the field
func (f *FieldDef) Name() string {
	return f.name
}

// Description of the field
func (f *FieldDef) Description() string {
	return f.description
}

// TypeName returns the name of the field's declared type: a scalar tag or a node type name.
func (f *FieldDef) TypeName() string {
	return f.typeName
}

// Resolver determines the result value for the field from the value wrapped by the enclosing
// node.
func (f *FieldDef) Resolver() FieldResolver {
	return f.resolver
}

// buildFieldDefs builds the name-keyed field map (plus the declaration order for introspection)
// from an ordered field declaration list.
func buildFieldDefs(configs Fields) (map[string]*FieldDef, []string, error) {
	numFields := len(configs)
	if numFields == 0 {
		return nil, nil, nil
	}

	fields := make(map[string]*FieldDef, numFields)
	order := make([]string, 0, numFields)
	for _, config := range configs {
		if len(config.Name) == 0 {
			return nil, nil, NewError("must provide name for field")
		}
		if len(config.Type) == 0 {
			return nil, nil, NewError(fmt.Sprintf("must provide declared type for field %q", config.Name))
		}
		if _, exists := fields[config.Name]; exists {
			return nil, nil, NewError(fmt.Sprintf("duplicate field %q", config.Name))
		}

		resolver := config.Resolver
		if resolver == nil {
			resolver = defaultFieldResolver(config.Name)
		}

		fields[config.Name] = &FieldDef{
			name:        config.Name,
			description: config.Description,
			typeName:    config.Type,
			resolver:    resolver,
		}
		order = append(order, config.Name)
	}

	return fields, order, nil
}

//===----------------------------------------------------------------------------------------===//
// Default resolver
//===----------------------------------------------------------------------------------------===//

// errorType is the reflect.Type of the error interface, used to classify method return values.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// defaultFieldResolver synthesizes a resolver that invokes the method named after the field on
// the wrapped target (snake_case field names map to CamelCase method names), falling back to
// reading the same-named exported struct field when the target has no such method.
func defaultFieldResolver(fieldName string) FieldResolver {
	memberName := util.CamelCase(fieldName)
	return FieldResolverFunc(func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
		if target == nil {
			return nil, NewError(
				fmt.Sprintf("cannot resolve field %q on nil target", fieldName),
				ErrKindExecution)
		}

		v := reflect.ValueOf(target)
		if method := v.MethodByName(memberName); method.IsValid() {
			return callResolverMethod(fieldName, method, args)
		}

		// Fall back to a struct field of the same name.
		elem := v
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				return nil, NewError(
					fmt.Sprintf("cannot resolve field %q on nil target", fieldName),
					ErrKindExecution)
			}
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Struct {
			if field := elem.FieldByName(memberName); field.IsValid() && field.CanInterface() {
				if len(args) > 0 {
					return nil, NewError(
						fmt.Sprintf("field %q on %T takes no arguments", fieldName, target),
						ErrKindExecution)
				}
				return field.Interface(), nil
			}
		}

		return nil, NewError(
			fmt.Sprintf("value of type %T provides neither method nor field %q", target, memberName),
			ErrKindExecution)
	})
}

// callResolverMethod invokes a target method with the call's argument literals, converting each
// literal to the method's parameter type.
func callResolverMethod(fieldName string, method reflect.Value, args []interface{}) (interface{}, error) {
	methodType := method.Type()
	if methodType.NumIn() != len(args) {
		return nil, NewError(
			fmt.Sprintf("field %q expects %d arguments but the query supplied %d",
				fieldName, methodType.NumIn(), len(args)),
			ErrKindExecution)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		converted, err := convertArgument(arg, methodType.In(i))
		if err != nil {
			return nil, NewError(
				fmt.Sprintf("argument %d of field %q: %s", i+1, fieldName, err.Error()),
				ErrKindExecution)
		}
		in[i] = converted
	}

	switch methodType.NumOut() {
	case 1:
		out := method.Call(in)
		return out[0].Interface(), nil
	case 2:
		if methodType.Out(1).Implements(errorType) {
			out := method.Call(in)
			if !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			return out[0].Interface(), nil
		}
	}

	return nil, NewError(
		fmt.Sprintf("method for field %q must return a value or a value and an error", fieldName),
		ErrKindExecution)
}

// convertArgument converts a query argument literal (int or string) to the given parameter type.
func convertArgument(arg interface{}, paramType reflect.Type) (reflect.Value, error) {
	value := reflect.ValueOf(arg)
	valueType := value.Type()

	if valueType.AssignableTo(paramType) {
		return value, nil
	}

	// Allow conversion between any numeric kinds, narrowing included; never convert across kind
	// families (an int literal silently becoming a string would hide query mistakes).
	if isNumericKind(valueType.Kind()) && isNumericKind(paramType.Kind()) {
		return value.Convert(paramType), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, paramType)
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
