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
	"reflect"
)

// Node binds a target entity to a node type and the opaque query context. It is the resolution
// frame of the executor: created at the beginning of a resolution step and discarded when its
// sub-selection completes, never cached across a query.
type Node struct {
	target   interface{}
	nodeType *NodeType
	context  interface{}
}

// Target returns the wrapped entity. For connection nodes this is the normalized element list.
func (node *Node) Target() interface{} {
	return node.target
}

// NodeType returns the node type the target is bound to.
func (node *Node) NodeType() *NodeType {
	return node.nodeType
}

// Context returns the opaque query context.
func (node *Node) Context() interface{} {
	return node.context
}

// normalizeCollection converts any slice or array value into []interface{}. It reports false for
// non-collection values.
func normalizeCollection(value interface{}) ([]interface{}, bool) {
	if value == nil {
		return nil, false
	}
	if list, ok := value.([]interface{}); ok {
		return list, true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]interface{}, v.Len())
		for i := range list {
			list[i] = v.Index(i).Interface()
		}
		return list, true
	}
	return nil, false
}
