// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eaburns/cob/loc"
)

// A Fill is the run of whitespace and comments preceding a syntax node.
// Fill is preserved verbatim so that writing a parsed document
// reproduces its input byte-for-byte.
type Fill struct {
	// Text is the fill text.
	// It can differ from the consumed source text,
	// because invalid characters are discarded with a warning.
	Text string
	// span is where the fill began in the source.
	// It is the zero Span for fill built programmatically.
	span loc.Span
}

func isFillByte(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == ',' || b == ';'
}

// bannedRune reports whether r can never appear in a document
// outside of a string literal.
func bannedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	switch r {
	case ' ', '\n', '\r', ',', ';':
		return false
	case '"', ':', '#', '@', '+', '-', '=', '$', '?',
		'{', '}', '(', ')', '[', ']', '<', '>',
		'.', '\'', '\\', '_', '^', '!', '/', '*':
		return false
	}
	return true
}

func bannedIndex(s string) int {
	for i, r := range s {
		if bannedRune(r) {
			return i
		}
	}
	return -1
}

// parseFill consumes the longest run of whitespace, comments,
// and discarded invalid characters at the head of s.
func parseFill(s loc.Span) (Fill, loc.Span, error) {
	start := s
	var text strings.Builder
	frag := s.Fragment()
	i := 0
loop:
	for i < len(frag) {
		switch {
		case isFillByte(frag[i]):
			j := i
			for j < len(frag) && isFillByte(frag[j]) {
				j++
			}
			text.WriteString(frag[i:j])
			i = j
		case strings.HasPrefix(frag[i:], "//"):
			comment := frag[i:]
			if j := strings.IndexByte(comment, '\n'); j >= 0 {
				comment = comment[:j]
			}
			if k := bannedIndex(comment); k >= 0 {
				r, _ := utf8.DecodeRuneInString(comment[k:])
				return Fill{}, start, newError(s.Advance(i+k), "invalid character %q in comment", r)
			}
			text.WriteString(comment)
			i += len(comment)
		case strings.HasPrefix(frag[i:], "/*"):
			end := strings.Index(frag[i+2:], "*/")
			if end < 0 {
				return Fill{}, start, newError(s.Advance(i), "unterminated block comment")
			}
			comment := frag[i : i+2+end+2]
			if k := bannedIndex(comment); k >= 0 {
				r, _ := utf8.DecodeRuneInString(comment[k:])
				return Fill{}, start, newError(s.Advance(i+k), "invalid character %q in comment", r)
			}
			text.WriteString(comment)
			i += len(comment)
		default:
			r, size := utf8.DecodeRuneInString(frag[i:])
			if !bannedRune(r) {
				break loop
			}
			j := i
			for j < len(frag) {
				r, size = utf8.DecodeRuneInString(frag[j:])
				if !bannedRune(r) {
					break
				}
				j += size
			}
			Warnf("%s: ignoring invalid characters %q", s.Advance(i).Loc(), frag[i:j])
			i = j
		}
	}
	return Fill{Text: text.String(), span: start}, s.Advance(i), nil
}

// NewFill returns a Fill with the given text,
// for building documents programmatically.
func NewFill(text string) Fill { return Fill{Text: text} }

func (f Fill) Empty() bool { return len(f.Text) == 0 }

func (f Fill) String() string { return f.Text }

// EndsWithNewline reports whether the fill ends with a newline.
func (f Fill) EndsWithNewline() bool {
	return strings.HasSuffix(f.Text, "\n")
}

// EndsNewlineThenSpaces reports whether the fill ends with
// a newline followed only by spaces, and if so how many spaces.
// This is the sole indentation signal in the format.
func (f Fill) EndsNewlineThenSpaces() (int, bool) {
	trimmed := strings.TrimRight(f.Text, " ")
	if !strings.HasSuffix(trimmed, "\n") {
		return 0, false
	}
	return len(f.Text) - len(trimmed), true
}

// atFileStart reports whether the fill began at the start of the source.
func (f Fill) atFileStart() bool {
	return f.span.Src != nil && f.span.Off == 0
}

func (f Fill) writeTo(w *writer) { w.str(f.Text) }

// writeToOrElse writes the fill text, or fallback when the fill is empty.
// Fallbacks keep programmatically built documents well formed
// where the grammar requires separation.
func (f Fill) writeToOrElse(w *writer, fallback string) {
	if f.Empty() {
		w.str(fallback)
	} else {
		w.str(f.Text)
	}
}

// Recover adopts other when f is empty.
// It is used after editing or rebuilding part of a document
// to carry formatting over from the previous version of a node.
func (f *Fill) Recover(other Fill) {
	if f.Empty() {
		*f = other
	}
}
