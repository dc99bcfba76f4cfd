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

package util_test

import (
	"github.com/cclow/nodeql/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("CamelCase", func() {
	It("converts snake_case names", func() {
		Expect(util.CamelCase("published_at")).Should(Equal("PublishedAt"))
		Expect(util.CamelCase("average_rating")).Should(Equal("AverageRating"))
		Expect(util.CamelCase("title")).Should(Equal("Title"))
		Expect(util.CamelCase("a")).Should(Equal("A"))
		Expect(util.CamelCase("")).Should(Equal(""))
	})

	It("collapses consecutive underscores", func() {
		Expect(util.CamelCase("a__b")).Should(Equal("AB"))
		Expect(util.CamelCase("_private")).Should(Equal("Private"))
	})
})

var _ = Describe("SuggestionList", func() {
	It("ranks options by lexical distance", func() {
		options := []string{"title", "content", "published_at"}
		Expect(util.SuggestionList("titel", options)).Should(Equal([]string{"title"}))
	})

	It("returns nothing when no option is close", func() {
		options := []string{"title", "content"}
		Expect(util.SuggestionList("zzzzzzzz", options)).Should(BeEmpty())
	})

	It("treats a case change as a single edit", func() {
		Expect(util.SuggestionList("Title", []string{"title"})).Should(Equal([]string{"title"}))
	})
})

var _ = Describe("OrList", func() {
	quoted := func(items ...string) string {
		var b util.StringBuilder
		util.OrList(&b, items, 5, true)
		return b.String()
	}

	It("formats one, two and three items", func() {
		Expect(quoted("a")).Should(Equal(`"a"`))
		Expect(quoted("a", "b")).Should(Equal(`"a" or "b"`))
		Expect(quoted("a", "b", "c")).Should(Equal(`"a", "b", or "c"`))
	})

	It("bounds the number of items", func() {
		var b util.StringBuilder
		util.OrList(&b, []string{"a", "b", "c", "d"}, 2, false)
		Expect(b.String()).Should(Equal("a or b"))
	})
})
