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

package lexer_test

import (
	"github.com/cclow/nodeql/lexer"
	"github.com/cclow/nodeql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// lexAll advances the lexer to EOF and returns every token kind/value pair seen on the way.
func lexAll(source string) ([]*token.Token, error) {
	l := lexer.New(token.NewSource(source))
	var tokens []*token.Token
	for {
		tok, err := l.Advance()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KindEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func kindsOf(tokens []*token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

var _ = Describe("Lexer", func() {
	It("lexes a field selection with arguments", func() {
		tokens, err := lexAll(`post(123) { title }`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(kindsOf(tokens)).Should(Equal([]token.Kind{
			token.KindName,
			token.KindLeftParen,
			token.KindInt,
			token.KindRightParen,
			token.KindLeftBrace,
			token.KindName,
			token.KindRightBrace,
		}))
		Expect(tokens[0].Value).Should(Equal("post"))
		Expect(tokens[2].Value).Should(Equal("123"))
		Expect(tokens[5].Value).Should(Equal("title"))
	})

	It("treats commas and whitespace as separators", func() {
		withCommas, err := lexAll("a, b,\tc,\n")
		Expect(err).ShouldNot(HaveOccurred())
		withoutCommas, err := lexAll("a b c")
		Expect(err).ShouldNot(HaveOccurred())

		Expect(kindsOf(withCommas)).Should(Equal(kindsOf(withoutCommas)))
	})

	It("lexes dotted call chains and fragment sigils", func() {
		tokens, err := lexAll(`letters.from(3) $frag :`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(kindsOf(tokens)).Should(Equal([]token.Kind{
			token.KindName,
			token.KindDot,
			token.KindName,
			token.KindLeftParen,
			token.KindInt,
			token.KindRightParen,
			token.KindDollar,
			token.KindName,
			token.KindColon,
		}))
	})

	It("interprets string escapes", func() {
		tokens, err := lexAll(`describe("say \"hi\"\nA")`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tokens[2].Kind).Should(Equal(token.KindString))
		Expect(tokens[2].Value).Should(Equal("say \"hi\"\nA"))
	})

	It("lexes negative integers", func() {
		tokens, err := lexAll(`shift(-42)`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tokens[2].Kind).Should(Equal(token.KindInt))
		Expect(tokens[2].Value).Should(Equal("-42"))
	})

	It("skips a leading byte order mark", func() {
		tokens, err := lexAll("\xEF\xBB\xBFpost")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tokens).Should(HaveLen(1))
		Expect(tokens[0].Value).Should(Equal("post"))
	})

	It("repeats the EOF token once the source is exhausted", func() {
		l := lexer.New(token.NewSource("a"))
		_, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())

		eof, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(eof.Kind).Should(Equal(token.KindEOF))

		again, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(again).Should(BeIdenticalTo(eof))
	})

	It("recovers the source from any token", func() {
		source := token.NewSource(`post(123)`)
		l := lexer.New(source)
		tok, err := l.Advance()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Source()).Should(BeIdenticalTo(source))
	})

	Describe("errors", func() {
		It("rejects an unexpected character", func() {
			_, err := lexAll(`<<`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring(`cannot parse the unexpected character "<"`))
		})

		It("hints about single quotes", func() {
			_, err := lexAll(`'hello'`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("single quote"))
		})

		It("rejects an unterminated string", func() {
			_, err := lexAll(`"hello`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("unterminated string"))
		})

		It("rejects a string broken by a newline", func() {
			_, err := lexAll("\"hello\nworld\"")
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("unterminated string"))
		})

		It("rejects a bare minus", func() {
			_, err := lexAll(`(-)`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("expected digit after '-'"))
		})

		It("rejects leading zeros", func() {
			_, err := lexAll(`(0123)`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("unexpected digit after 0"))
		})

		It("rejects a bad escape sequence", func() {
			_, err := lexAll(`"\x"`)
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring(`invalid character escape sequence: \x`))
		})
	})
})
