// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A DefEntry is one definition in a #defs section.
// Exactly one field is set.
type DefEntry struct {
	Constant   *ConstantDef
	SceneMacro *SceneMacroDef
}

// A Defs is a #defs section of constant and scene macro
// definitions.
type Defs struct {
	Fill    Fill
	Entries []DefEntry
}

func parseDefs(p *parser, fill Fill, s loc.Span) (*Defs, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#defs") {
		return nil, fill, s, nil
	}
	d := &Defs{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#defs")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		frag := r.Fragment()
		if len(frag) == 0 || frag[0] != '$' && frag[0] != '+' {
			break
		}
		if !entryStart(itemFill) {
			return nil, fill, s, newError(r, "definitions must start on their own line")
		}
		cd, nf, rr, err := parseConstantDef(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if cd != nil {
			d.Entries = append(d.Entries, DefEntry{Constant: cd})
			itemFill, r = nf, rr
			continue
		}
		md, nf, rr, err := parseSceneMacroDef(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if md == nil {
			return nil, fill, s, newError(r, "failed to parse definition")
		}
		d.Entries = append(d.Entries, DefEntry{SceneMacro: md})
		itemFill, r = nf, rr
	}
	return d, itemFill, r, nil
}

func (d *Defs) writeTo(w *writer, space string) {
	d.Fill.writeToOrElse(w, space)
	w.str("#defs")
	for _, e := range d.Entries {
		switch {
		case e.Constant != nil:
			if e.Constant.Fill.Empty() {
				w.str("\n")
			}
			e.Constant.writeTo(w, "")
		case e.SceneMacro != nil:
			if e.SceneMacro.Fill.Empty() {
				w.str("\n")
			}
			e.SceneMacro.writeTo(w, "")
		}
	}
}

func (*Defs) isSection() {}
