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

import (
	"sort"
	"strings"
)

// SuggestionList filters options down to those lexically close to the (presumably misspelled)
// input and orders them nearest first. An option qualifies when its edit distance from the input
// stays within half the length of the longer spelling, but at least one edit is always allowed.
func SuggestionList(input string, options []string) []string {
	type scored struct {
		option   string
		distance int
	}

	var ranked []scored
	for _, option := range options {
		longer := len(input)
		if len(option) > longer {
			longer = len(option)
		}
		threshold := longer / 2
		if threshold < 1 {
			threshold = 1
		}

		if d := editDistance(input, option); d <= threshold {
			ranked = append(ranked, scored{option: option, distance: d})
		}
	}
	if len(ranked) == 0 {
		return nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	suggestions := make([]string, len(ranked))
	for i, s := range ranked {
		suggestions[i] = s.option
	}
	return suggestions
}

// editDistance computes a Damerau-Levenshtein distance between a and b: the minimum number of
// single-character insertions, deletions, substitutions and adjacent swaps turning one into the
// other. Comparison is case-insensitive, with a pure case change costing a single edit.
func editDistance(a string, b string) int {
	if a == b {
		return 0
	}
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	// Rolling rows of the distance matrix: the row two back (needed for swaps), the previous row,
	// and the row being filled.
	width := len(b) + 1
	prev2 := make([]int, width)
	prev := make([]int, width)
	cur := make([]int, width)
	for j := 0; j < width; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			best := prev[j] + 1 // deletion
			if ins := cur[j-1] + 1; ins < best {
				best = ins // insertion
			}
			if sub := prev[j-1] + cost; sub < best {
				best = sub // substitution
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if swap := prev2[j-2] + cost; swap < best {
					best = swap // adjacent swap
				}
			}

			cur[j] = best
		}
		prev2, prev, cur = prev, cur, prev2
	}

	// The final rotation leaves the last filled row in prev.
	return prev[len(b)]
}
