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

package nodeql_test

import (
	"github.com/cclow/nodeql"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Query", func() {
	var schema *nodeql.Schema

	BeforeEach(func() {
		schema = newBlogSchema(newBlogStore())
	})

	It("parses without executing", func() {
		calls := 0
		s := nodeql.NewSchema()
		s.MustRegisterType(nodeql.NodeTypeConfig{
			Name: "thing",
			Fields: nodeql.Fields{
				nodeql.Field("string", "name"),
			},
		})
		s.MustRegisterRootCall(nodeql.RootCallConfig{
			Name: "thing",
			Returns: []nodeql.ReturnConfig{
				{Key: "thing", Type: "thing"},
			},
			Resolver: nodeql.RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
				calls++
				return struct{ Name string }{"widget"}, nil
			}),
		})

		query, err := s.Query(`thing() { name }`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(calls).Should(Equal(0))

		_, err = query.Result()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(calls).Should(Equal(1))
	})

	It("carries the opaque context without inspecting it", func() {
		ctx := &viewerContext{Viewer: "eileen"}
		query := executeQuery(schema, `post(123) { title }`, nodeql.WithContext(ctx))
		Expect(query.Context()).Should(BeIdenticalTo(ctx))
	})

	Describe("Fragments", func() {
		It("exposes fragment metadata keyed by identifier", func() {
			query := executeQuery(schema, `
				post(123) { $basics }
				$basics: { title, content, published_at { year } }
			`)

			fragments := query.Fragments()
			Expect(fragments).Should(HaveLen(1))
			Expect(fragments).Should(HaveKey("basics"))
			Expect(fragments["basics"].Identifier).Should(Equal("basics"))
			Expect(fragments["basics"].FieldCount).Should(Equal(3))
			Expect(fragments["basics"].Selections).Should(HaveLen(3))
		})

		It("exposes multiple fragments", func() {
			query := executeQuery(schema, `
				post(123) { $a, $b }
				$a: { title }
				$b: { content, published_at { year } }
			`)

			fragments := query.Fragments()
			Expect(fragments).Should(HaveLen(2))
			Expect(fragments["a"].FieldCount).Should(Equal(1))
			Expect(fragments["b"].FieldCount).Should(Equal(2))
		})
	})

	Describe("syntax errors", func() {
		It("reports the position and an excerpt of the offending line", func() {
			_, err := schema.Query("\n\n<< bogus >>")
			Expect(err).Should(HaveOccurred())
			Expect(nodeql.IsSyntaxError(err)).Should(BeTrue())
			Expect(err.Error()).Should(ContainSubstring("1, 1"))
			Expect(err.Error()).Should(ContainSubstring("<< bogus >>"))
		})

		It("rejects a duplicate fragment identifier", func() {
			_, err := schema.Query(`
				post(123) { $a }
				$a: { title }
				$a: { content }
			`)
			Expect(nodeql.IsSyntaxError(err)).Should(BeTrue())
			Expect(err.Error()).Should(ContainSubstring("duplicate fragment $a"))
		})

		It("rejects an empty query", func() {
			_, err := schema.Query("   ")
			Expect(nodeql.IsSyntaxError(err)).Should(BeTrue())
		})

		It("hints when a single quote starts a string", func() {
			_, err := schema.Query(`post('123') { title }`)
			Expect(nodeql.IsSyntaxError(err)).Should(BeTrue())
			Expect(err.Error()).Should(ContainSubstring("single quote"))
		})
	})
})
