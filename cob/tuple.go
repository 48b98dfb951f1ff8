// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A Tuple is a sequence of values written (a b c).
type Tuple struct {
	Fill    Fill
	Entries []Value
	// EndFill is the fill before the closing paren.
	EndFill Fill
}

func NewTuple(vs ...Value) *Tuple { return &Tuple{Entries: vs} }

func parseTuple(p *parser, fill Fill, s loc.Span) (*Tuple, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '(' {
		return nil, fill, s, nil
	}
	t := &Tuple{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		v, nf, rr, err := parseValue(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if v == nil {
			break
		}
		if len(t.Entries) > 0 && itemFill.Empty() {
			return nil, fill, s, newError(r, "value is not separated from the previous one")
		}
		t.Entries = append(t.Entries, v)
		itemFill, r = nf, rr
	}
	if r.Len() == 0 || r.Fragment()[0] != ')' {
		return nil, fill, s, newError(r, "expected ) to close tuple")
	}
	t.EndFill = itemFill
	next, r, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return t, next, r, nil
}

func (t *Tuple) Clone() Value {
	c := &Tuple{Fill: t.Fill, EndFill: t.EndFill}
	for _, v := range t.Entries {
		c.Entries = append(c.Entries, v.Clone())
	}
	return c
}

func (t *Tuple) writeTo(w *writer, space string) {
	t.Fill.writeToOrElse(w, space)
	w.str("(")
	for i, v := range t.Entries {
		if i == 0 {
			v.writeTo(w, "")
		} else {
			v.writeTo(w, " ")
		}
	}
	t.EndFill.writeTo(w)
	w.str(")")
}

func (t *Tuple) recoverFill(other Value) {
	o, ok := other.(*Tuple)
	if !ok {
		return
	}
	t.Fill.Recover(o.Fill)
	t.EndFill.Recover(o.EndFill)
	for i := range t.Entries {
		if i >= len(o.Entries) {
			break
		}
		t.Entries[i].recoverFill(o.Entries[i])
	}
}

func (t *Tuple) resolve(c *ConstantsResolver) (Value, error) {
	entries, err := resolveValues(t.Entries, c)
	if err != nil {
		return nil, err
	}
	t.Entries = entries
	return t, nil
}

func (t *Tuple) setFill(f Fill) { t.Fill = f }

func (*Tuple) isValue() {}
