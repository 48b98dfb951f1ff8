// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// A UsingEntry aliases a fully qualified loadable type:
// path::to::Type<G> as Alias.
type UsingEntry struct {
	Fill Fill
	// Path is the lowercase module path before the type name;
	// it may be empty.
	Path string
	// Id is the aliased type with its generics.
	Id         Identifier
	PreAsFill  Fill
	PostAsFill Fill
	Alias      string
}

// A Using is a #using section.
type Using struct {
	Fill    Fill
	Entries []UsingEntry
}

func parseUsing(p *parser, fill Fill, s loc.Span) (*Using, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#using") {
		return nil, fill, s, nil
	}
	u := &Using{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#using")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		e, nf, rr, err := parseUsingEntry(itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			break
		}
		u.Entries = append(u.Entries, *e)
		itemFill, r = nf, rr
	}
	return u, itemFill, r, nil
}

func parseUsingEntry(fill Fill, s loc.Span) (*UsingEntry, Fill, loc.Span, error) {
	frag := s.Fragment()
	i := 0
	for {
		seg := snakeIdent(frag[i:])
		if seg == "" || !strings.HasPrefix(frag[i+len(seg):], "::") {
			break
		}
		i += len(seg) + 2
	}
	if camelIdent(frag[i:]) == "" {
		if i == 0 {
			return nil, fill, s, nil
		}
		return nil, fill, s, newError(s.Advance(i), "expected type name in using entry")
	}
	if !entryStart(fill) {
		return nil, fill, s, newError(s, "using entries must start on their own line")
	}
	e := &UsingEntry{Fill: fill}
	if i > 0 {
		e.Path = frag[:i-2]
	}
	id, r, err := parseIdentifier(Fill{}, s.Advance(i))
	if err != nil {
		return nil, fill, s, err
	}
	e.Id = *id
	preAs, r, err := parseFill(r)
	if err != nil {
		return nil, fill, s, err
	}
	postAs, r, err := parseAs(preAs, r, "using entry")
	if err != nil {
		return nil, fill, s, err
	}
	e.PreAsFill, e.PostAsFill = preAs, postAs
	alias := camelIdent(r.Fragment())
	if alias == "" {
		return nil, fill, s, newError(r, "expected alias type name after as")
	}
	e.Alias = alias
	next, r, err := parseFill(r.Advance(len(alias)))
	if err != nil {
		return nil, fill, s, err
	}
	return e, next, r, nil
}

func (u *Using) writeTo(w *writer, space string) {
	u.Fill.writeToOrElse(w, space)
	w.str("#using")
	for _, e := range u.Entries {
		e.Fill.writeToOrElse(w, "\n")
		if e.Path != "" {
			w.str(e.Path)
			w.str("::")
		}
		w.str(e.Id.Name)
		if e.Id.Generics != nil {
			e.Id.Generics.writeTo(w)
		}
		e.PreAsFill.writeToOrElse(w, " ")
		w.str("as")
		e.PostAsFill.writeToOrElse(w, " ")
		w.str(e.Alias)
	}
}

func (*Using) isSection() {}
