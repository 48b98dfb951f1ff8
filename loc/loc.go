// Copyright © 2026 The Cob Authors under an MIT-style license.

// Package loc has routines for tracking source file locations.
package loc

import (
	"fmt"
	"sort"
)

// A Loc describes a file location.
type Loc struct {
	Path string
	Line int
	Col  int
}

func (l Loc) String() string {
	return fmt.Sprintf("%s:%d.%d", l.Path, l.Line, l.Col)
}

// A Source is a named text to be parsed.
type Source struct {
	Path string
	Text string
	// newLines contains the byte offset of each \n in Text.
	newLines []int
}

// NewSource returns a new Source for the given path and text.
func NewSource(path, text string) *Source {
	var newLines []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			newLines = append(newLines, i)
		}
	}
	return &Source{Path: path, Text: text, newLines: newLines}
}

// Loc returns the 1-based line and column of the byte offset off.
func (s *Source) Loc(off int) Loc {
	i := sort.SearchInts(s.newLines, off)
	line, col := i+1, off+1
	if i > 0 {
		col = off - s.newLines[i-1]
	}
	return Loc{Path: s.Path, Line: line, Col: col}
}

// A Span is the suffix of a source's text beginning at byte offset Off.
type Span struct {
	Src *Source
	Off int
}

// NewSpan returns a Span covering all of src.
func NewSpan(src *Source) Span { return Span{Src: src} }

// Fragment returns the unconsumed text.
func (s Span) Fragment() string { return s.Src.Text[s.Off:] }

// Len returns the number of unconsumed bytes.
func (s Span) Len() int { return len(s.Src.Text) - s.Off }

// Advance returns a Span n bytes further into the source.
func (s Span) Advance(n int) Span { return Span{Src: s.Src, Off: s.Off + n} }

// Loc returns the location of the start of the span,
// or the zero Loc for the zero Span.
func (s Span) Loc() Loc {
	if s.Src == nil {
		return Loc{}
	}
	return s.Src.Loc(s.Off)
}

func (s Span) String() string { return s.Loc().String() }
