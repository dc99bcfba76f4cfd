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

// Package parser builds a query AST from source text.
//
// The grammar, informally:
//
//	query         := selection_list fragment_defs?
//	fragment_def  := "$" ident ":" "{" selection_list "}"
//	selection     := fragment_ref | field
//	fragment_ref  := "$" ident
//	field         := call ("as" ident)? ( "{" selection_list "}" )?
//	call          := ident ( "(" arglist? ")" )? ( "." call )?
//	arglist       := literal ("," literal)*
//	literal       := integer | quoted_string
//
// Whitespace and commas are separators; trailing commas are permitted inside selection lists and
// argument lists.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cclow/nodeql/ast"
	"github.com/cclow/nodeql/lexer"
	"github.com/cclow/nodeql/token"
)

// aliasKeyword attaches an alias to the immediately preceding field.
const aliasKeyword = "as"

// Parse parses the given source into a query document. On failure it returns a
// *token.SyntaxError pointing at the first offending character.
func Parse(source *token.Source) (*ast.QueryDocument, error) {
	if source == nil {
		return nil, fmt.Errorf("parser: must provide source")
	}
	p := &parser{
		lexer: lexer.New(source),
	}
	return p.parseDocument()
}

// parser holds internal state during parsing.
type parser struct {
	// The lexer for tokenization
	lexer *lexer.Lexer
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(tokenKind token.Kind) (bool, error) {
	if p.lexer.Token().Kind == tokenKind {
		if _, err := p.lexer.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and throw an error.
func (p *parser) expect(tokenKind token.Kind) (*token.Token, error) {
	tok := p.lexer.Token()
	if tok.Kind == tokenKind {
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return tok, nil
	}
	return nil, token.NewSyntaxError(
		p.lexer.Source(),
		tok.Location,
		fmt.Sprintf("expected %v, found %s", tokenKind, tok.Description()))
}

// If the next token is a keyword with the given value, return true after advancing the lexer.
// Otherwise, do not change the parser state and return false.
func (p *parser) skipKeyword(keyword string) (bool, error) {
	if tok := p.peek(); tok.Kind == token.KindName && tok.Value == keyword {
		if _, err := p.lexer.Advance(); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// peek returns the current token without consuming it.
func (p *parser) peek() *token.Token {
	return p.lexer.Token()
}

// Helper function for creating an error when an unexpected lexed token is encountered.
func (p *parser) unexpected() error {
	tok := p.lexer.Token()
	return token.NewSyntaxError(
		p.lexer.Source(), tok.Location, fmt.Sprintf("unexpected %s", tok.Description()))
}

// Converts a name lex token into a Name parse node.
func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{
		Token: tok,
	}, nil
}

// query ::
//
//	selection_list fragment_defs?
func (p *parser) parseDocument() (*ast.QueryDocument, error) {
	// Expect SOF.
	if _, err := p.expect(token.KindSOF); err != nil {
		return nil, err
	}

	var (
		doc           ast.QueryDocument
		fragmentNames = make(map[string]bool)
	)

	for {
		stop, err := p.skip(token.KindEOF)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}

		tok := p.peek()
		switch tok.Kind {
		case token.KindDollar:
			// A "$" at this position begins either a fragment definition ("$name: {...}") or, in
			// the root selection list, a fragment reference. A colon after the name decides.
			if _, err := p.lexer.Advance(); err != nil {
				return nil, err
			}
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}

			isDefinition, err := p.skip(token.KindColon)
			if err != nil {
				return nil, err
			}
			if isDefinition {
				fragment, err := p.parseFragmentDefinition(name)
				if err != nil {
					return nil, err
				}
				if fragmentNames[name.Value()] {
					return nil, token.NewSyntaxError(
						p.lexer.Source(),
						name.Token.Location,
						fmt.Sprintf("duplicate fragment $%s", name.Value()))
				}
				fragmentNames[name.Value()] = true
				doc.Fragments = append(doc.Fragments, fragment)
			} else {
				if len(doc.Fragments) > 0 {
					// Only fragment definitions may follow the first fragment definition.
					return nil, token.NewSyntaxError(
						p.lexer.Source(),
						p.peek().Location,
						fmt.Sprintf("expected : after fragment $%s, found %s",
							name.Value(), p.peek().Description()))
				}
				doc.Selections = append(doc.Selections, &ast.FragmentSpread{Name: name})
			}

		case token.KindName:
			if len(doc.Fragments) > 0 {
				return nil, p.unexpected()
			}
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			doc.Selections = append(doc.Selections, field)

		default:
			return nil, p.unexpected()
		}
	}

	if len(doc.Selections) == 0 {
		return nil, token.NewSyntaxError(
			p.lexer.Source(),
			p.peek().Location,
			"query must contain at least one selection")
	}

	return &doc, nil
}

//	fragment_def ::
//		"$" ident ":" "{" selection_list "}"
//
// The leading "$ ident :" has already been consumed by the caller.
func (p *parser) parseFragmentDefinition(name ast.Name) (*ast.FragmentDefinition, error) {
	selections, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.FragmentDefinition{
		Name:         name,
		SelectionSet: selections,
	}, nil
}

//	selection_list ::
//		selection ("," selection)*
//
// enclosed in braces. Commas are consumed as whitespace by the lexer.
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	selections := make(ast.SelectionSet, 0, 1)
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}

	return selections, nil
}

// selection ::
//
//	fragment_ref | field
func (p *parser) parseSelection() (ast.Selection, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindDollar:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{Name: name}, nil

	case token.KindName:
		return p.parseField()
	}

	return nil, p.unexpected()
}

// field ::
//
//	call ("as" ident)? ( "{" selection_list "}" )?
func (p *parser) parseField() (*ast.FieldSelection, error) {
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}

	var alias ast.Name
	hasAlias, err := p.skipKeyword(aliasKeyword)
	if err != nil {
		return nil, err
	}
	if hasAlias {
		if alias, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	var selections ast.SelectionSet
	if p.peek().Kind == token.KindLeftBrace {
		if selections, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return &ast.FieldSelection{
		Call:         call,
		Alias:        alias,
		SelectionSet: selections,
	}, nil
}

// call ::
//
//	ident ( "(" arglist? ")" )? ( "." call )?
func (p *parser) parseCall() (*ast.Call, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	call := &ast.Call{
		Name: name,
	}

	hasArgs, err := p.skip(token.KindLeftParen)
	if err != nil {
		return nil, err
	}
	if hasArgs {
		for {
			stop, err := p.skip(token.KindRightParen)
			if err != nil {
				return nil, err
			}
			if stop {
				break
			}

			argument, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			call.Arguments = append(call.Arguments, argument)
		}
	}

	chained, err := p.skip(token.KindDot)
	if err != nil {
		return nil, err
	}
	if chained {
		if call.Next, err = p.parseCall(); err != nil {
			return nil, err
		}
	}

	return call, nil
}

// literal ::
//
//	integer | quoted_string
func (p *parser) parseLiteral() (ast.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindInt:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		value, err := strconv.Atoi(tok.Value)
		if err != nil {
			return nil, token.NewSyntaxError(
				p.lexer.Source(),
				tok.Location,
				fmt.Sprintf("integer value %s is out of range", tok.Value))
		}
		return ast.IntValue{
			Token: tok,
			Value: value,
		}, nil

	case token.KindString:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return ast.StringValue{
			Token: tok,
		}, nil
	}

	return nil, token.NewSyntaxError(
		p.lexer.Source(),
		tok.Location,
		fmt.Sprintf("expected argument literal, found %s", tok.Description()))
}
