// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/eaburns/cob/loc"
)

// A StringSegment is one piece of a string literal.
// A backslash immediately followed by a newline splits a literal
// into segments; the spaces after the newline are counted as
// LeadingSpaces and are not part of the content.
type StringSegment struct {
	LeadingSpaces int
	// Raw is the segment's source bytes, escapes included.
	Raw string
	// Decoded is the segment's content with escapes decoded.
	Decoded string
}

// A String is a double-quoted string literal.
type String struct {
	Fill     Fill
	Segments []StringSegment
	// flattened caches the joined content of a multi-segment literal.
	flattened string
}

// NewString returns a single-segment literal with s as its content.
// The raw form is re-escaped from the content, so the exact escapes
// of a parsed literal are not preserved through a String round trip.
func NewString(s string) *String {
	return &String{Segments: []StringSegment{{Raw: escapeString(s), Decoded: s}}}
}

// AsString returns the full decoded content.
func (s *String) AsString() string {
	if len(s.Segments) == 1 {
		return s.Segments[0].Decoded
	}
	if s.flattened == "" {
		var b strings.Builder
		for _, seg := range s.Segments {
			b.WriteString(seg.Decoded)
		}
		s.flattened = b.String()
	}
	return s.flattened
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r > 0x7e {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func parseString(fill Fill, s loc.Span) (*String, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '"' {
		return nil, fill, s, nil
	}
	str := &String{Fill: fill}
	var decoded strings.Builder
	segStart, leading := 1, 0
	i := 1
	for {
		if i >= len(frag) {
			return nil, fill, s, newError(s, "unterminated string")
		}
		switch frag[i] {
		case '"':
			str.Segments = append(str.Segments, StringSegment{
				LeadingSpaces: leading,
				Raw:           frag[segStart:i],
				Decoded:       decoded.String(),
			})
			next, r, err := parseFill(s.Advance(i + 1))
			if err != nil {
				return nil, fill, s, err
			}
			if len(str.Segments) > 1 {
				str.AsString()
			}
			return str, next, r, nil
		case '\n':
			return nil, fill, s, newError(s.Advance(i), "unescaped newline in string")
		case '\\':
			if i+1 >= len(frag) {
				return nil, fill, s, newError(s.Advance(i), "unterminated escape sequence")
			}
			switch frag[i+1] {
			case 'n':
				decoded.WriteByte('\n')
				i += 2
			case 'r':
				decoded.WriteByte('\r')
				i += 2
			case 't':
				decoded.WriteByte('\t')
				i += 2
			case 'b':
				decoded.WriteByte('\b')
				i += 2
			case 'f':
				decoded.WriteByte('\f')
				i += 2
			case '\\':
				decoded.WriteByte('\\')
				i += 2
			case '"':
				decoded.WriteByte('"')
				i += 2
			case 'u':
				j := i + 2
				if j >= len(frag) || frag[j] != '{' {
					return nil, fill, s, newError(s.Advance(i), "invalid unicode escape")
				}
				j++
				k := j
				for k < len(frag) && k-j < 6 && isHexDigit(frag[k]) {
					k++
				}
				if k == j || k >= len(frag) || frag[k] != '}' {
					return nil, fill, s, newError(s.Advance(i), "invalid unicode escape")
				}
				var r rune
				for _, d := range []byte(frag[j:k]) {
					r = r<<4 | rune(hexVal(d))
				}
				if !utf8.ValidRune(r) {
					return nil, fill, s, newError(s.Advance(i), "invalid unicode escape")
				}
				decoded.WriteRune(r)
				i = k + 1
			case '\n':
				// Segment break: the backslash and newline are dropped
				// and the following spaces become the next segment's
				// leading spaces.
				str.Segments = append(str.Segments, StringSegment{
					LeadingSpaces: leading,
					Raw:           frag[segStart:i],
					Decoded:       decoded.String(),
				})
				decoded.Reset()
				i += 2
				leading = 0
				for i < len(frag) && frag[i] == ' ' {
					leading++
					i++
				}
				segStart = i
			default:
				return nil, fill, s, newError(s.Advance(i), "invalid escape sequence")
			}
		default:
			_, size := utf8.DecodeRuneInString(frag[i:])
			decoded.WriteString(frag[i : i+size])
			i += size
		}
	}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func hexVal(b byte) int {
	switch {
	case isDigit(b):
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

func (s *String) Clone() Value {
	c := *s
	c.Segments = append([]StringSegment(nil), s.Segments...)
	return &c
}

func (s *String) writeTo(w *writer, space string) {
	s.Fill.writeToOrElse(w, space)
	w.str(`"`)
	for i, seg := range s.Segments {
		if i > 0 {
			w.str("\\\n")
			w.str(strings.Repeat(" ", seg.LeadingSpaces))
		}
		w.str(seg.Raw)
	}
	w.str(`"`)
}

func (s *String) recoverFill(other Value) {
	if o, ok := other.(*String); ok {
		s.Fill.Recover(o.Fill)
	}
}

func (s *String) resolve(*ConstantsResolver) (Value, error) { return s, nil }

func (s *String) setFill(f Fill) { s.Fill = f }

func (*String) isValue() {}
