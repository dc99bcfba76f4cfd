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

// RootCallResolver produces the target entity (or a sequence of target entities) for a root call.
type RootCallResolver interface {
	// Resolve receives the call's argument literals in source order and the opaque query context.
	Resolve(args []interface{}, ctx interface{}) (interface{}, error)
}

// RootCallResolverFunc is an adapter to allow the use of ordinary functions as RootCallResolver.
type RootCallResolverFunc func(args []interface{}, ctx interface{}) (interface{}, error)

// Resolve calls f(args, ctx).
func (f RootCallResolverFunc) Resolve(args []interface{}, ctx interface{}) (interface{}, error) {
	return f(args, ctx)
}

// RootCallResolverFunc implements RootCallResolver.
var _ RootCallResolver = RootCallResolverFunc(nil)

// ArgumentConfig declares a root call argument: its name and the scalar tag of the value it
// accepts.
type ArgumentConfig struct {
	Name string
	Type string
}

// ReturnConfig declares a root call return entry: the key it is published under and the node type
// of the returned entities.
type ReturnConfig struct {
	Key  string
	Type string
}

// RootCallConfig provides the specification to define a root call.
type RootCallConfig struct {
	// Name under which the call is dispatched
	Name string

	// Description for the root call
	Description string

	// Arguments declared by the call, in order. A call may be invoked with more values than
	// declared arguments when it enumerates entities by id (e.g. comment(444, 445)).
	Arguments []ArgumentConfig

	// Returns declares the result entries. The first entry's type is the node type that wraps the
	// resolved targets.
	Returns []ReturnConfig

	// Resolver produces the target entity or entities
	Resolver RootCallResolver
}

// Argument is a declared root call argument.
type Argument struct {
	name     string
	typeName string
}

// Name of the argument
func (arg Argument) Name() string {
	return arg.name
}

// TypeName returns the scalar tag of the value the argument accepts.
func (arg Argument) TypeName() string {
	return arg.typeName
}

// Return is a declared root call return entry.
type Return struct {
	key      string
	typeName string
}

// Key under which the return entry is published
func (ret Return) Key() string {
	return ret.key
}

// TypeName returns the node type name of the returned entities.
func (ret Return) TypeName() string {
	return ret.typeName
}

// RootCall is a top-level entry point in a query.
type RootCall struct {
	name        string
	description string
	arguments   []Argument
	returns     []Return
	resolver    RootCallResolver
}

// newRootCall builds a RootCall from its config.
func newRootCall(config RootCallConfig) (*RootCall, error) {
	if len(config.Name) == 0 {
		return nil, NewError("must provide name for root call")
	}
	if config.Resolver == nil {
		return nil, NewError("must provide resolver for root call " + config.Name)
	}
	if len(config.Returns) == 0 {
		return nil, NewError("must provide return declaration for root call " + config.Name)
	}

	arguments := make([]Argument, len(config.Arguments))
	for i, argConfig := range config.Arguments {
		arguments[i] = Argument{
			name:     argConfig.Name,
			typeName: argConfig.Type,
		}
	}

	returns := make([]Return, len(config.Returns))
	for i, retConfig := range config.Returns {
		returns[i] = Return{
			key:      retConfig.Key,
			typeName: retConfig.Type,
		}
	}

	return &RootCall{
		name:        config.Name,
		description: config.Description,
		arguments:   arguments,
		returns:     returns,
		resolver:    config.Resolver,
	}, nil
}

// Name returns the schema name of the root call.
func (call *RootCall) Name() string {
	return call.name
}

// Description of the root call
func (call *RootCall) Description() string {
	return call.description
}

// Arguments returns the declared arguments in order.
func (call *RootCall) Arguments() []Argument {
	return call.arguments
}

// Returns returns the declared return entries.
func (call *RootCall) Returns() []Return {
	return call.returns
}

// ReturnTypeName returns the node type name that wraps the resolved targets.
func (call *RootCall) ReturnTypeName() string {
	return call.returns[0].typeName
}

// Resolver returns the call's resolver.
func (call *RootCall) Resolver() RootCallResolver {
	return call.resolver
}
