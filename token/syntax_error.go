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

package token

import (
	"fmt"
)

// maxExcerptWidth bounds the width of the source excerpt included in a syntax error message.
const maxExcerptWidth = 60

// SyntaxError describes a failure to tokenize or parse a query source. It points at the first
// offending character and carries a verbatim excerpt of the offending line.
//
// The reported line number counts only non-blank lines (see Source.ContentLocationInfoOf); the
// column is the 1-based position within the offending physical line.
type SyntaxError struct {
	Source      *Source
	Location    SourceLocation
	Description string
}

var _ error = (*SyntaxError)(nil)

// NewSyntaxError produces an error representing a syntax error, containing useful descriptive
// information about the syntax error's position in the source.
func NewSyntaxError(source *Source, location SourceLocation, description string) *SyntaxError {
	return &SyntaxError{
		Source:      source,
		Location:    location,
		Description: description,
	}
}

// LocationInfo returns the content-relative line and the physical column of the error.
func (e *SyntaxError) LocationInfo() SourceLocationInfo {
	return e.Source.ContentLocationInfoOf(e.Location)
}

// Excerpt returns the offending line trimmed to a bounded width. The offending characters appear
// verbatim in the excerpt.
func (e *SyntaxError) Excerpt() string {
	return e.Source.LineAround(e.Location, maxExcerptWidth)
}

// Error implements Go's error interface.
func (e *SyntaxError) Error() string {
	info := e.LocationInfo()
	excerpt := e.Excerpt()
	if len(excerpt) == 0 {
		return fmt.Sprintf("syntax error at %d, %d: %s", info.Line, info.Column, e.Description)
	}
	return fmt.Sprintf("syntax error at %d, %d: %s near %q",
		info.Line, info.Column, e.Description, excerpt)
}
