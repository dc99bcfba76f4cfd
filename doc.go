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

// Package nodeql is an in-process engine for a compact, nested field-selection query language.
//
// A query names root calls and selects fields off the returned entities, with aliases, chained
// field-level calls and reusable fragments:
//
//	post(123) {
//		title as headline,
//		published_at.minus_days(200) { year },
//		comments.first(1) { edges { cursor, node { content } } },
//	}
//
// Applications register node types (wrapping their own entity types) and root calls on a Schema,
// parse query text with Schema.Query, and execute with Query.Result. The result is a nested
// mapping whose key order follows selection order, ready for JSON serialization.
//
// Registration must complete before the first query runs; afterwards the schema is read-only and
// any number of queries may execute against it concurrently. Execution of a single query is
// synchronous and single-threaded.
package nodeql
