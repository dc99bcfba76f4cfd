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

type animal struct {
	ID   int
	Name string
	Legs int
}

func (a *animal) Sound() string { return "..." }

type dog struct {
	animal
}

func (d *dog) Sound() string { return "woof" }

var _ = Describe("Schema", func() {
	var schema *nodeql.Schema

	BeforeEach(func() {
		schema = nodeql.NewSchema()
	})

	It("registers and looks up node types by name", func() {
		registered := schema.MustRegisterType(nodeql.NodeTypeConfig{
			Name: "animal",
			Fields: nodeql.Fields{
				nodeql.Field("string", "name"),
			},
		})

		found, err := schema.Type("animal")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(found).Should(BeIdenticalTo(registered))
	})

	It("rejects a duplicate type name", func() {
		schema.MustRegisterType(nodeql.NodeTypeConfig{Name: "animal"})

		_, err := schema.RegisterType(nodeql.NodeTypeConfig{Name: "animal"})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`"animal" is already registered`))
	})

	It("rejects duplicate field declarations within a type", func() {
		_, err := schema.RegisterType(nodeql.NodeTypeConfig{
			Name: "animal",
			Fields: nodeql.Fields{
				nodeql.Field("string", "name"),
				nodeql.Field("string", "name"),
			},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`duplicate field "name"`))
	})

	It("fails a lookup of an unknown type with a typed error", func() {
		_, err := schema.Type("animol")
		Expect(nodeql.IsTypeNotFound(err)).Should(BeTrue())
	})

	It("registers the built-in scalar types with every schema", func() {
		for _, name := range []string{"string", "number", "boolean", "date"} {
			_, err := schema.Type(name)
			Expect(err).ShouldNot(HaveOccurred(), "missing scalar type %q", name)
		}
	})

	It("registers an edge type alongside a connection type", func() {
		schema.MustRegisterType(nodeql.NodeTypeConfig{Name: "animal"})
		schema.MustRegisterType(nodeql.NodeTypeConfig{
			Name:          "animals",
			ConnectionFor: "animal",
		})

		edge, err := schema.Type("animals_edge")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(edge.FieldNames()).Should(Equal([]string{"cursor", "node"}))

		animals, err := schema.Type("animals")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(animals.IsConnection()).Should(BeTrue())
		Expect(animals.FieldNames()).Should(
			Equal([]string{"count", "any", "edges", "first", "after"}))
	})

	Describe("field inheritance", func() {
		var seen *dog

		BeforeEach(func() {
			seen = &dog{animal{ID: 7, Name: "rex", Legs: 4}}

			schema.MustRegisterType(nodeql.NodeTypeConfig{
				Name: "animal",
				Fields: nodeql.Fields{
					nodeql.Field("string", "name"),
					nodeql.Field("number", "legs"),
					nodeql.Field("string", "sound"),
				},
			})
			schema.MustRegisterType(nodeql.NodeTypeConfig{
				Name:   "dog",
				Parent: "animal",
				Fields: nodeql.Fields{
					// Overrides the parent's declaration with a constant resolver.
					nodeql.Field("string", "sound", nodeql.WithResolverFunc(
						func(target interface{}, args []interface{}, info nodeql.ResolveInfo) (interface{}, error) {
							return "WOOF", nil
						})),
					nodeql.Field("boolean", "good_boy", nodeql.WithResolverFunc(
						func(target interface{}, args []interface{}, info nodeql.ResolveInfo) (interface{}, error) {
							return true, nil
						})),
				},
			})
			schema.MustRegisterRootCall(nodeql.RootCallConfig{
				Name: "dog",
				Returns: []nodeql.ReturnConfig{
					{Key: "dog", Type: "dog"},
				},
				Resolver: nodeql.RootCallResolverFunc(func(args []interface{}, ctx interface{}) (interface{}, error) {
					return seen, nil
				}),
			})
		})

		It("resolves inherited fields through the parent chain", func() {
			Expect(executeQuery(schema, `dog() { name, legs, good_boy }`)).Should(
				MatchResultInJSON(`{
					"dog": { "name": "rex", "legs": 4, "good_boy": true }
				}`))
		})

		It("lets a child override a parent field, first match winning", func() {
			Expect(executeQuery(schema, `dog() { sound }`)).Should(
				MatchResultInJSON(`{
					"dog": { "sound": "WOOF" }
				}`))
		})

		It("includes inherited fields in unknown-field suggestions", func() {
			query := executeQuery(schema, `dog() { lgs }`)
			_, err := query.Result()
			Expect(nodeql.IsFieldNotDefined(err)).Should(BeTrue())
			Expect(err.Error()).Should(ContainSubstring(`Did you mean "legs"?`))
		})
	})
})
