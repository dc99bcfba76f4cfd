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

	"github.com/cclow/nodeql/ast"

	"github.com/dolmen-go/jsonmap"
)

// executor walks a parsed query against a schema and assembles the result tree. Execution is
// synchronous and single-threaded within a query; the only blocking is whatever the resolvers
// perform.
type executor struct {
	schema    *Schema
	fragments map[string]*ast.FragmentDefinition
	ctx       interface{}
}

// execute runs the query document and returns the result mapping. Result keys follow selection
// order; no partial result is ever returned on error.
func execute(
	schema *Schema,
	doc *ast.QueryDocument,
	fragments map[string]*ast.FragmentDefinition,
	ctx interface{}) (*jsonmap.Ordered, error) {

	e := &executor{
		schema:    schema,
		fragments: fragments,
		ctx:       ctx,
	}

	result := newOrderedResult()
	if err := e.executeRootSelections(doc.Selections, result); err != nil {
		return nil, err
	}
	return result, nil
}

// executeRootSelections dispatches each root selection in order. A fragment reference at the root
// splices the fragment's selections inline as further root calls.
func (e *executor) executeRootSelections(selections ast.SelectionSet, out *jsonmap.Ordered) error {
	for _, selection := range selections {
		switch selection := selection.(type) {
		case *ast.FieldSelection:
			if err := e.executeRootSelection(selection, out); err != nil {
				return err
			}

		case *ast.FragmentSpread:
			fragment, err := e.fragment(selection.Name)
			if err != nil {
				return err
			}
			if err := e.executeRootSelections(fragment.SelectionSet, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeRootSelection resolves one root call and records its result(s) keyed by the identity
// projection of each returned target (or the literal call name for argument-less calls).
func (e *executor) executeRootSelection(sel *ast.FieldSelection, out *jsonmap.Ordered) error {
	call := sel.Call

	rootCall, err := e.schema.RootCall(call.Name.Value())
	if err != nil {
		return withLocation(err, call.Name)
	}

	args := call.ArgumentValues()
	resolved, err := rootCall.Resolver().Resolve(args, e.ctx)
	if err != nil {
		return e.resolverError(err, call.Name)
	}

	returnType, err := e.schema.Type(rootCall.ReturnTypeName())
	if err != nil {
		return withLocation(err, call.Name)
	}

	// A root call that enumerates entities yields one result entry per target, keyed by identity
	// and ordered as the resolver returned them.
	if list, ok := normalizeCollection(resolved); ok && !returnType.IsConnection() {
		for _, target := range list {
			if err := e.emitRootTarget(sel, returnType, target, true, out); err != nil {
				return err
			}
		}
		return nil
	}

	return e.emitRootTarget(sel, returnType, resolved, len(args) > 0, out)
}

// emitRootTarget evaluates the selection against one root target and records it in the result.
func (e *executor) emitRootTarget(
	sel *ast.FieldSelection,
	returnType *NodeType,
	target interface{},
	keyByIdentity bool,
	out *jsonmap.Ordered) error {

	call := sel.Call

	var key string
	if keyByIdentity {
		id, err := returnType.Identify(target)
		if err != nil {
			return withLocation(err, call.Name)
		}
		key = id
	} else {
		key = call.Name.Value()
	}

	var value interface{}
	if call.Next != nil {
		node, err := e.wrap(returnType, target, call.Name)
		if err != nil {
			return err
		}
		chained, chainedType, err := e.resolveChain(node, call.Next)
		if err != nil {
			return err
		}
		if value, err = e.completeValue(chainedType, chained, sel.SelectionSet, call.Name); err != nil {
			return err
		}
	} else {
		var err error
		if value, err = e.completeValue(returnType, target, sel.SelectionSet, call.Name); err != nil {
			return err
		}
	}

	setResultEntry(out, key, value)
	return nil
}

// evaluateSelections produces the ordered mapping for a selection set evaluated against a node.
func (e *executor) evaluateSelections(node *Node, selections ast.SelectionSet) (*jsonmap.Ordered, error) {
	result := newOrderedResult()
	if err := e.collectSelections(node, selections, result); err != nil {
		return nil, err
	}
	return result, nil
}

// collectSelections evaluates each selection against the node, splicing fragment references
// inline at their position.
func (e *executor) collectSelections(node *Node, selections ast.SelectionSet, out *jsonmap.Ordered) error {
	for _, selection := range selections {
		switch selection := selection.(type) {
		case *ast.FieldSelection:
			value, err := e.evaluateField(node, selection)
			if err != nil {
				return err
			}
			setResultEntry(out, selection.Key(), value)

		case *ast.FragmentSpread:
			fragment, err := e.fragment(selection.Name)
			if err != nil {
				return err
			}
			if err := e.collectSelections(node, fragment.SelectionSet, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// evaluateField resolves a field selection (including any chained calls) against the node and
// completes the resolved value with the field's sub-selections.
func (e *executor) evaluateField(node *Node, sel *ast.FieldSelection) (interface{}, error) {
	value, valueType, err := e.resolveChain(node, sel.Call)
	if err != nil {
		return nil, err
	}
	return e.completeValue(valueType, value, sel.SelectionSet, sel.Call.Name)
}

// resolveChain resolves a call against the node and applies the chained calls left to right, each
// re-wrapping the intermediate value in a node of the declared type. It returns the final value
// and its declared type.
func (e *executor) resolveChain(node *Node, call *ast.Call) (interface{}, *NodeType, error) {
	fieldDef, err := e.schema.FieldOn(node.nodeType, call.Name.Value())
	if err != nil {
		return nil, nil, withLocation(err, call.Name)
	}

	info := ResolveInfo{
		Schema:  e.schema,
		Field:   fieldDef,
		Context: e.ctx,
	}
	value, err := fieldDef.Resolver().Resolve(node.target, call.ArgumentValues(), info)
	if err != nil {
		return nil, nil, e.resolverError(err, call.Name)
	}
	// A typed nil pointer counts as nothing, so wrap and completeValue report it like a plain nil.
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr && v.IsNil() {
		value = nil
	}

	valueType, err := e.schema.Type(fieldDef.TypeName())
	if err != nil {
		return nil, nil, withLocation(err, call.Name)
	}

	if call.Next == nil {
		return value, valueType, nil
	}

	next, err := e.wrap(valueType, value, call.Name)
	if err != nil {
		return nil, nil, err
	}
	return e.resolveChain(next, call.Next)
}

// completeValue turns a resolved value of the given declared type into a result tree value:
// scalars become leaves, collections materialize element-wise, and everything else is evaluated
// against the sub-selections.
func (e *executor) completeValue(
	valueType *NodeType,
	value interface{},
	selections ast.SelectionSet,
	at ast.Name) (interface{}, error) {

	if value == nil {
		return nil, withLocation(NewError(
			fmt.Sprintf("field %q resolved to nothing", at.Value()),
			ErrKindExecution), at)
	}

	// A connection value is the collection itself; evaluate the selections against the collection
	// node, not against the elements.
	if valueType.IsConnection() {
		node, err := e.wrap(valueType, value, at)
		if err != nil {
			return nil, err
		}
		if len(selections) == 0 {
			return nil, e.selectionRequiredError(valueType, at)
		}
		return e.evaluateSelections(node, selections)
	}

	if list, ok := normalizeCollection(value); ok && !valueType.IsScalar() {
		results := make([]interface{}, len(list))
		for i, element := range list {
			result, err := e.completeValue(valueType, element, selections, at)
			if err != nil {
				return nil, err
			}
			results[i] = result
		}
		return results, nil
	}

	if len(selections) == 0 {
		if valueType.IsScalar() {
			return value, nil
		}
		return nil, e.selectionRequiredError(valueType, at)
	}

	node := &Node{
		target:   value,
		nodeType: valueType,
		context:  e.ctx,
	}
	return e.evaluateSelections(node, selections)
}

// wrap binds a resolved value to a node of the given type. Connection values are normalized to an
// element list.
func (e *executor) wrap(nodeType *NodeType, value interface{}, at ast.Name) (*Node, error) {
	if value == nil {
		return nil, withLocation(NewError(
			fmt.Sprintf("field %q resolved to nothing", at.Value()),
			ErrKindExecution), at)
	}

	target := value
	if nodeType.IsConnection() {
		list, ok := normalizeCollection(value)
		if !ok {
			return nil, withLocation(NewError(
				fmt.Sprintf("connection type %q requires a collection but the resolver returned %T",
					nodeType.Name(), value),
				ErrKindExecution), at)
		}
		target = list
	}

	return &Node{
		target:   target,
		nodeType: nodeType,
		context:  e.ctx,
	}, nil
}

// fragment looks up a fragment referenced in the query.
func (e *executor) fragment(name ast.Name) (*ast.FragmentDefinition, error) {
	fragment, ok := e.fragments[name.Value()]
	if !ok {
		return nil, withLocation(NewError(
			fmt.Sprintf("fragment $%s is not defined in the query", name.Value()),
			ErrKindFragmentNotDefined), name)
	}
	return fragment, nil
}

// resolverError classifies an error raised by a user-supplied resolver. Errors from the target
// layer propagate unmodified in content; bare errors are wrapped with the execution kind.
func (e *executor) resolverError(err error, at ast.Name) error {
	if _, ok := err.(*Error); ok {
		return withLocation(err, at)
	}
	return withLocation(NewError(
		fmt.Sprintf("resolving %q failed", at.Value()),
		ErrKindExecution, err), at)
}

func (e *executor) selectionRequiredError(valueType *NodeType, at ast.Name) error {
	return withLocation(NewError(
		fmt.Sprintf("field %q of type %q must have a selection set", at.Value(), valueType.Name()),
		ErrKindExecution), at)
}

// withLocation attaches the source location of the given name to the error when it doesn't carry
// one yet.
func withLocation(err error, name ast.Name) error {
	if name.Token == nil {
		return err
	}
	if e, ok := err.(*Error); ok && len(e.Locations) == 0 {
		info := name.Token.LocationInfo()
		e.Locations = []ErrorLocation{{Line: info.Line, Column: info.Column}}
	}
	return err
}

// newOrderedResult creates an empty result mapping that remembers insertion order.
func newOrderedResult() *jsonmap.Ordered {
	return &jsonmap.Ordered{
		Data: map[string]interface{}{},
	}
}

// setResultEntry records a value under the key, keeping the first-insertion order stable when a
// key is written twice.
func setResultEntry(result *jsonmap.Ordered, key string, value interface{}) {
	if _, exists := result.Data[key]; !exists {
		result.Order = append(result.Order, key)
	}
	result.Data[key] = value
}
