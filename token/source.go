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
	"unicode/utf8"

	"github.com/cclow/nodeql/internal/unsafe"
)

// SourceBody contains contents of a query document in a byte sequence.
type SourceBody []byte

// RuneAt decodes a rune at given pos. It also returns the number of bytes occupied by the rune.
func (body SourceBody) RuneAt(pos uint) (rune, uint) {
	if uint(len(body)) <= pos {
		// Return -1 to indicate an <EOF>.
		return -1, 0
	}

	// Fast path: characters below RuneSelf are represented as themselves in a single byte.
	c := body[pos]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}

	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body size in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// SubStr returns a string that comprises bytes between [start, end) in body.
func (body SourceBody) SubStr(start uint, end uint) string {
	return unsafe.String(body[start:end])
}

// SourceLocationInfo describes a source location with source name, line and column number.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// Source represents a query source text.
type Source struct {
	body SourceBody
	name string
}

// SourceOption configures a Source instance.
type SourceOption func(*Source)

// SourceName specifies name of a Source to be shown in printing a source location.
func SourceName(name string) SourceOption {
	return func(source *Source) {
		source.name = name
	}
}

// NewSource initializes a Source instance from given string and options.
func NewSource(s string, opts ...SourceOption) *Source {
	// Take the internal buffer that backs the string. This avoids a copy and is safe because
	// SourceBody is read-only.
	return NewSourceFromBytes(unsafe.Bytes(s), opts...)
}

// NewSourceFromBytes initializes a Source instance from given byte slice and options.
func NewSourceFromBytes(b []byte, opts ...SourceOption) *Source {
	source := &Source{
		body: SourceBody(b),
		name: "query",
	}

	for _, opt := range opts {
		opt(source)
	}

	return source
}

// Body returns the source contents.
func (source *Source) Body() SourceBody {
	return source.body
}

// Name returns the source name.
func (source *Source) Name() string {
	return source.name
}

// LocationFromPos returns a SourceLocation that represents the location for given position in the
// body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.Body().Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// PosFromLocation is the reverse operation of LocationFromPos. It converts the given
// SourceLocation to the byte position in the source which is a 0-based offset relative to the
// beginning of the source body.
func (source *Source) PosFromLocation(location SourceLocation) uint {
	if !location.IsValid() || uint(location) > (source.Body().Size()+1) {
		panic("illegal location value")
	}
	return uint(location) - 1
}

// LocationInfoOf computes and returns a SourceLocationInfo for a given SourceLocation. Line and
// column are both 1-based and count physical lines.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.Name(),
		}
	}

	var (
		line     uint = 1
		column   uint = 1
		position      = uint(loc) - 1
	)

	body := source.Body()
	bodySize := body.Size()
	if position >= bodySize {
		position = bodySize
	}

	var i uint
	for i < position {
		switch body[i] {
		case '\r':
			if (i+1) < bodySize && body[i+1] == '\n' {
				i++
				if i == position {
					line++
					column = 0
				}
			} else {
				line++
				column = 1
				i++
			}

		case '\n':
			line++
			column = 1
			i++

		default:
			column++
			i++
		}
	}

	return SourceLocationInfo{
		Name:   source.Name(),
		Line:   line,
		Column: column,
	}
}

// ContentLocationInfoOf is like LocationInfoOf except the reported line counts only non-blank
// lines: a line containing nothing but spaces and tabs does not advance the line number. Parse
// errors report positions with this convention, so an error on the first line of actual content is
// always at line 1 regardless of leading blank lines.
func (source *Source) ContentLocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.Name(),
		}
	}

	var (
		line      uint
		position  = uint(loc) - 1
		lineStart uint
		blank     = true
	)

	body := source.Body()
	bodySize := body.Size()
	if position >= bodySize {
		position = bodySize
	}

	var i uint
	for i < position {
		switch body[i] {
		case '\n':
			if !blank {
				line++
			}
			blank = true
			lineStart = i + 1

		case ' ', '\t', '\r':
			// Stay blank.

		default:
			blank = false
		}
		i++
	}

	return SourceLocationInfo{
		Name:   source.Name(),
		Line:   line + 1,
		Column: position - lineStart + 1,
	}
}

// LineAround returns the full physical line containing the given location, trimmed to at most
// maxWidth bytes around the location.
func (source *Source) LineAround(loc SourceLocation, maxWidth uint) string {
	if !loc.IsValid() {
		return ""
	}

	body := source.Body()
	bodySize := body.Size()
	position := uint(loc) - 1
	if position > bodySize {
		position = bodySize
	}

	// Scan backwards for the beginning of the line.
	start := position
	for start > 0 && body[start-1] != '\n' && body[start-1] != '\r' {
		start--
	}

	// Scan forwards for the end of the line.
	end := position
	for end < bodySize && body[end] != '\n' && body[end] != '\r' {
		end++
	}

	if end-start > maxWidth {
		// Keep the window anchored at the offending position.
		if position+maxWidth <= end {
			end = position + maxWidth
		}
		if end-start > maxWidth {
			start = end - maxWidth
		}
	}

	return body.SubStr(start, end)
}
