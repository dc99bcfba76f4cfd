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

package parser_test

import (
	"github.com/cclow/nodeql/ast"
	"github.com/cclow/nodeql/parser"
	"github.com/cclow/nodeql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func parse(source string) (*ast.QueryDocument, error) {
	return parser.Parse(token.NewSource(source))
}

func mustParse(source string) *ast.QueryDocument {
	doc, err := parse(source)
	Expect(err).ShouldNot(HaveOccurred())
	return doc
}

func fieldAt(selections ast.SelectionSet, i int) *ast.FieldSelection {
	Expect(len(selections)).Should(BeNumerically(">", i))
	field, ok := selections[i].(*ast.FieldSelection)
	Expect(ok).Should(BeTrue())
	return field
}

var _ = Describe("Parser", func() {
	It("parses root calls with arguments and selections in source order", func() {
		doc := mustParse(`post(123) { title, content }`)

		Expect(doc.Selections).Should(HaveLen(1))
		root := fieldAt(doc.Selections, 0)
		Expect(root.Call.Name.Value()).Should(Equal("post"))
		Expect(root.Call.ArgumentValues()).Should(Equal([]interface{}{123}))

		Expect(root.SelectionSet).Should(HaveLen(2))
		Expect(fieldAt(root.SelectionSet, 0).Call.Name.Value()).Should(Equal("title"))
		Expect(fieldAt(root.SelectionSet, 1).Call.Name.Value()).Should(Equal("content"))
	})

	It("parses multiple root calls in source order", func() {
		doc := mustParse(`post(123) { title } comment(444, 445) { content }`)

		Expect(doc.Selections).Should(HaveLen(2))
		Expect(fieldAt(doc.Selections, 0).Call.Name.Value()).Should(Equal("post"))

		comment := fieldAt(doc.Selections, 1)
		Expect(comment.Call.Name.Value()).Should(Equal("comment"))
		Expect(comment.Call.ArgumentValues()).Should(Equal([]interface{}{444, 445}))
	})

	It("parses string and integer literals", func() {
		doc := mustParse(`search("great", -2) { title }`)

		root := fieldAt(doc.Selections, 0)
		Expect(root.Call.ArgumentValues()).Should(Equal([]interface{}{"great", -2}))
	})

	It("parses dotted call chains left to right", func() {
		doc := mustParse(`comment(444) { letters.from(3).for(2) }`)

		letters := fieldAt(fieldAt(doc.Selections, 0).SelectionSet, 0)
		Expect(letters.Call.Name.Value()).Should(Equal("letters"))
		Expect(letters.Call.Arguments).Should(BeEmpty())

		from := letters.Call.Next
		Expect(from).ShouldNot(BeNil())
		Expect(from.Name.Value()).Should(Equal("from"))
		Expect(from.ArgumentValues()).Should(Equal([]interface{}{3}))

		forCall := from.Next
		Expect(forCall).ShouldNot(BeNil())
		Expect(forCall.Name.Value()).Should(Equal("for"))
		Expect(forCall.ArgumentValues()).Should(Equal([]interface{}{2}))
		Expect(forCall.Next).Should(BeNil())
	})

	It("attaches an alias to the immediately preceding field", func() {
		doc := mustParse(`post(123) { title as headline, content }`)

		title := fieldAt(fieldAt(doc.Selections, 0).SelectionSet, 0)
		Expect(title.Alias.Value()).Should(Equal("headline"))
		Expect(title.Key()).Should(Equal("headline"))

		content := fieldAt(fieldAt(doc.Selections, 0).SelectionSet, 1)
		Expect(content.Alias.IsNil()).Should(BeTrue())
		Expect(content.Key()).Should(Equal("content"))
	})

	It("parses an alias followed by a selection set", func() {
		doc := mustParse(`post(123) { published_at.minus_days(1) as earlier { year } }`)

		earlier := fieldAt(fieldAt(doc.Selections, 0).SelectionSet, 0)
		Expect(earlier.Alias.Value()).Should(Equal("earlier"))
		Expect(earlier.SelectionSet).Should(HaveLen(1))
	})

	It("permits trailing commas in selection lists and argument lists", func() {
		doc := mustParse(`comment(444, 445,) { content, rating, }`)

		root := fieldAt(doc.Selections, 0)
		Expect(root.Call.ArgumentValues()).Should(Equal([]interface{}{444, 445}))
		Expect(root.SelectionSet).Should(HaveLen(2))
	})

	It("stores fragment definitions alongside the body", func() {
		doc := mustParse(`
			post(123) { $basics, comments { count } }
			$basics: { title, content }
		`)

		Expect(doc.Fragments).Should(HaveLen(1))
		fragment := doc.Fragments[0]
		Expect(fragment.Name.Value()).Should(Equal("basics"))
		Expect(fragment.SelectionSet).Should(HaveLen(2))

		root := fieldAt(doc.Selections, 0)
		spread, ok := root.SelectionSet[0].(*ast.FragmentSpread)
		Expect(ok).Should(BeTrue())
		Expect(spread.Name.Value()).Should(Equal("basics"))
	})

	It("keeps fragment references out of the definitions", func() {
		doc := mustParse(`
			post(1) { $a, $b }
			$a: { title }
			$b: { content }
		`)

		Expect(doc.Fragments).Should(HaveLen(2))
		Expect(doc.Fragments[0].Name.Value()).Should(Equal("a"))
		Expect(doc.Fragments[1].Name.Value()).Should(Equal("b"))
	})

	Describe("errors", func() {
		It("rejects an empty source", func() {
			_, err := parse("")
			Expect(err).Should(HaveOccurred())
		})

		It("rejects a missing closing brace", func() {
			_, err := parse(`post(123) { title`)
			Expect(err).Should(HaveOccurred())
		})

		It("rejects a name as an argument literal", func() {
			_, err := parse(`post(id) { title }`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("expected argument literal"))
		})

		It("rejects a duplicate fragment identifier", func() {
			_, err := parse(`
				post(1) { $a }
				$a: { title }
				$a: { content }
			`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("duplicate fragment $a"))
		})

		It("rejects a root call after the fragment definitions begin", func() {
			_, err := parse(`
				post(1) { title }
				$a: { title }
				comment(2) { content }
			`)
			Expect(err).Should(HaveOccurred())
		})

		It("reports the position of the first offending character relative to the content", func() {
			_, err := parse("\n\n<< bogus >>")
			Expect(err).Should(HaveOccurred())

			syntaxErr, ok := err.(*token.SyntaxError)
			Expect(ok).Should(BeTrue())
			Expect(syntaxErr.LocationInfo().Line).Should(Equal(uint(1)))
			Expect(syntaxErr.LocationInfo().Column).Should(Equal(uint(1)))
			Expect(syntaxErr.Error()).Should(ContainSubstring("1, 1"))
			Expect(syntaxErr.Error()).Should(ContainSubstring("<< bogus >>"))
		})
	})
})
