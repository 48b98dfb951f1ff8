// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"io"
	"strings"

	"github.com/eaburns/cob/loc"
)

// A Section is one top-level section of a document:
// *Manifest, *Import, *Using, *Defs, *Commands, or *Scenes.
type Section interface {
	writeTo(w *writer, space string)
	isSection()
}

// A Cob is a parsed document.
type Cob struct {
	// Src is the source the document was parsed from,
	// or nil for documents built programmatically.
	Src      *loc.Source
	Sections []Section
	// EndFill is the trailing fill after the last section.
	EndFill Fill
}

// HasExtension reports whether path has a recognized document
// extension.
func HasExtension(path string) bool {
	return strings.HasSuffix(path, ".cob") || strings.HasSuffix(path, ".cobweb")
}

// Parse parses a whole document. The source path must end in .cob
// or .cobweb. Any content that cannot be consumed is an error.
func Parse(src *loc.Source) (*Cob, error) {
	if !HasExtension(src.Path) {
		return nil, fmt.Errorf("%s: cob files must have extension .cob or .cobweb", src.Path)
	}
	p := &parser{}
	c := &Cob{Src: src}
	fill, r, err := parseFill(loc.NewSpan(src))
	if err != nil {
		return nil, err
	}
sections:
	for {
		for _, parse := range sectionParsers {
			sec, nf, rr, err := parse(p, fill, r)
			if err != nil {
				return nil, err
			}
			if sec != nil {
				c.Sections = append(c.Sections, sec)
				fill, r = nf, rr
				continue sections
			}
		}
		if r.Len() > 0 {
			return nil, newError(r, "incomplete parsing")
		}
		c.EndFill = fill
		break
	}
	if p.depth != 0 {
		return nil, fmt.Errorf("%s: internal error: unbalanced recursion count %d", src.Path, p.depth)
	}
	return c, nil
}

var sectionParsers = []func(*parser, Fill, loc.Span) (Section, Fill, loc.Span, error){
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		m, nf, r, err := parseManifest(p, f, s)
		return retSection(m != nil, m, err), nf, r, err
	},
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		i, nf, r, err := parseImport(p, f, s)
		return retSection(i != nil, i, err), nf, r, err
	},
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		u, nf, r, err := parseUsing(p, f, s)
		return retSection(u != nil, u, err), nf, r, err
	},
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		d, nf, r, err := parseDefs(p, f, s)
		return retSection(d != nil, d, err), nf, r, err
	},
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		c, nf, r, err := parseCommands(p, f, s)
		return retSection(c != nil, c, err), nf, r, err
	},
	func(p *parser, f Fill, s loc.Span) (Section, Fill, loc.Span, error) {
		sc, nf, r, err := parseScenes(p, f, s)
		return retSection(sc != nil, sc, err), nf, r, err
	},
}

func retSection(ok bool, s Section, err error) Section {
	if !ok || err != nil {
		return nil
	}
	return s
}

// WriteTo writes the document. A document that was parsed writes
// back its input byte-for-byte; sections added programmatically are
// separated by blank lines.
func (c *Cob) WriteTo(out io.Writer) error {
	w := &writer{w: out}
	for i, sec := range c.Sections {
		if i == 0 {
			sec.writeTo(w, "")
		} else {
			sec.writeTo(w, "\n\n")
		}
	}
	c.EndFill.writeTo(w)
	return w.err
}

func (c *Cob) String() string {
	var b strings.Builder
	c.WriteTo(&b)
	return b.String()
}

// Manifest returns the document's #manifest section, or nil.
func (c *Cob) Manifest() *Manifest {
	for _, s := range c.Sections {
		if m, ok := s.(*Manifest); ok {
			return m
		}
	}
	return nil
}

// Import returns the document's #import section, or nil.
func (c *Cob) Import() *Import {
	for _, s := range c.Sections {
		if i, ok := s.(*Import); ok {
			return i
		}
	}
	return nil
}

// Using returns the document's #using section, or nil.
func (c *Cob) Using() *Using {
	for _, s := range c.Sections {
		if u, ok := s.(*Using); ok {
			return u
		}
	}
	return nil
}

// Defs returns the document's #defs section, or nil.
func (c *Cob) Defs() *Defs {
	for _, s := range c.Sections {
		if d, ok := s.(*Defs); ok {
			return d
		}
	}
	return nil
}

// Commands returns the document's #commands section, or nil.
func (c *Cob) Commands() *Commands {
	for _, s := range c.Sections {
		if cs, ok := s.(*Commands); ok {
			return cs
		}
	}
	return nil
}

// Scenes returns the document's #scenes section, or nil.
func (c *Cob) Scenes() *Scenes {
	for _, s := range c.Sections {
		if sc, ok := s.(*Scenes); ok {
			return sc
		}
	}
	return nil
}
