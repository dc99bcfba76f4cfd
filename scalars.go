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
	"strings"
	"time"
)

// Names of the built-in scalar node types. Fields declare scalar results with these tags; chained
// calls on scalar values resolve against the same-named node types.
const (
	ScalarString  = "string"
	ScalarNumber  = "number"
	ScalarBoolean = "boolean"
	ScalarDate    = "date"
)

// newScalarNodeType builds one of the built-in scalar node types. Its fields are the chainable
// operations of the scalar.
func newScalarNodeType(name string, fields Fields) *NodeType {
	t, err := newNodeType(NodeTypeConfig{
		Name:   name,
		Fields: fields,
	})
	if err != nil {
		panic(err)
	}
	t.scalar = true
	return t
}

// builtinScalarTypes returns the scalar node types registered with every schema.
func builtinScalarTypes() []*NodeType {
	return []*NodeType{
		newScalarNodeType(ScalarString, Fields{
			Field(ScalarNumber, "length", WithResolver(stringResolver(
				func(s string, args []interface{}) (interface{}, error) {
					return len([]rune(s)), nil
				}))),
			Field(ScalarString, "upcase", WithResolver(stringResolver(
				func(s string, args []interface{}) (interface{}, error) {
					return strings.ToUpper(s), nil
				}))),
			Field(ScalarString, "downcase", WithResolver(stringResolver(
				func(s string, args []interface{}) (interface{}, error) {
					return strings.ToLower(s), nil
				}))),
			// from(i) keeps the characters from the zero-based position i onward.
			Field(ScalarString, "from", WithResolver(stringResolver(
				func(s string, args []interface{}) (interface{}, error) {
					i, err := intArgument("from", args, 0)
					if err != nil {
						return nil, err
					}
					runes := []rune(s)
					if i < 0 {
						i = 0
					}
					if i > len(runes) {
						i = len(runes)
					}
					return string(runes[i:]), nil
				}))),
			// for(n) keeps the first n characters.
			Field(ScalarString, "for", WithResolver(stringResolver(
				func(s string, args []interface{}) (interface{}, error) {
					n, err := intArgument("for", args, 0)
					if err != nil {
						return nil, err
					}
					runes := []rune(s)
					if n < 0 {
						n = 0
					}
					if n > len(runes) {
						n = len(runes)
					}
					return string(runes[:n]), nil
				}))),
		}),

		newScalarNodeType(ScalarDate, Fields{
			Field(ScalarNumber, "year", WithResolver(dateResolver(
				func(t time.Time, args []interface{}) (interface{}, error) {
					return t.Year(), nil
				}))),
			Field(ScalarNumber, "month", WithResolver(dateResolver(
				func(t time.Time, args []interface{}) (interface{}, error) {
					return int(t.Month()), nil
				}))),
			Field(ScalarNumber, "day", WithResolver(dateResolver(
				func(t time.Time, args []interface{}) (interface{}, error) {
					return t.Day(), nil
				}))),
			Field(ScalarDate, "minus_days", WithResolver(dateResolver(
				func(t time.Time, args []interface{}) (interface{}, error) {
					n, err := intArgument("minus_days", args, 0)
					if err != nil {
						return nil, err
					}
					return t.AddDate(0, 0, -n), nil
				}))),
			Field(ScalarDate, "plus_days", WithResolver(dateResolver(
				func(t time.Time, args []interface{}) (interface{}, error) {
					n, err := intArgument("plus_days", args, 0)
					if err != nil {
						return nil, err
					}
					return t.AddDate(0, 0, n), nil
				}))),
		}),

		newScalarNodeType(ScalarNumber, nil),
		newScalarNodeType(ScalarBoolean, nil),
	}
}

// stringResolver adapts an operation on a string leaf value into a FieldResolver.
func stringResolver(op func(s string, args []interface{}) (interface{}, error)) FieldResolver {
	return FieldResolverFunc(func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
		s, ok := target.(string)
		if !ok {
			return nil, NewError(
				fmt.Sprintf("expected a string value but got %T", target),
				ErrKindExecution)
		}
		return op(s, args)
	})
}

// dateResolver adapts an operation on a date leaf value into a FieldResolver.
func dateResolver(op func(t time.Time, args []interface{}) (interface{}, error)) FieldResolver {
	return FieldResolverFunc(func(target interface{}, args []interface{}, info ResolveInfo) (interface{}, error) {
		switch t := target.(type) {
		case time.Time:
			return op(t, args)
		case *time.Time:
			if t != nil {
				return op(*t, args)
			}
		}
		return nil, NewError(
			fmt.Sprintf("expected a date value but got %T", target),
			ErrKindExecution)
	})
}

// intArgument reads the i-th argument of a call as an int.
func intArgument(fieldName string, args []interface{}, i int) (int, error) {
	if i >= len(args) {
		return 0, NewError(
			fmt.Sprintf("%s requires an integer argument", fieldName),
			ErrKindExecution)
	}
	n, ok := args[i].(int)
	if !ok {
		return 0, NewError(
			fmt.Sprintf("%s requires an integer argument but got %T", fieldName, args[i]),
			ErrKindExecution)
	}
	return n, nil
}

// stringArgument reads the i-th argument of a call as a string.
func stringArgument(fieldName string, args []interface{}, i int) (string, error) {
	if i >= len(args) {
		return "", NewError(
			fmt.Sprintf("%s requires a string argument", fieldName),
			ErrKindExecution)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", NewError(
			fmt.Sprintf("%s requires a string argument but got %T", fieldName, args[i]),
			ErrKindExecution)
	}
	return s, nil
}
