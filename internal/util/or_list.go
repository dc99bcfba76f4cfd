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

package util

// OrList writes items to out as an English alternation: `a`, `a or b`, `a, b, or c`. At most
// limit items are written; quoted wraps each item in double quotes.
func OrList(out StringWriter, items []string, limit uint, quoted bool) {
	if int(limit) < len(items) {
		items = items[:limit]
	}

	last := len(items) - 1
	for i, item := range items {
		switch {
		case i == 0:
			// No separator before the first item.
		case last == 1:
			out.WriteString(" ")
		default:
			out.WriteString(", ")
		}
		if i == last && i > 0 {
			out.WriteString("or ")
		}

		if quoted {
			out.WriteString(`"` + item + `"`)
		} else {
			out.WriteString(item)
		}
	}
}
