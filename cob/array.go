// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// An Array is a sequence of values written [a b c].
type Array struct {
	Fill    Fill
	Entries []Value
	// EndFill is the fill before the closing bracket.
	EndFill Fill
}

func NewArray(vs ...Value) *Array { return &Array{Entries: vs} }

func parseArray(p *parser, fill Fill, s loc.Span) (*Array, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '[' {
		return nil, fill, s, nil
	}
	a := &Array{Fill: fill}
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
		if len(a.Entries) > 0 && itemFill.Empty() {
			return nil, fill, s, newError(r, "value is not separated from the previous one")
		}
		a.Entries = append(a.Entries, v)
		itemFill, r = nf, rr
	}
	if r.Len() == 0 || r.Fragment()[0] != ']' {
		return nil, fill, s, newError(r, "expected ] to close array")
	}
	a.EndFill = itemFill
	next, r, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return a, next, r, nil
}

func (a *Array) Clone() Value {
	c := &Array{Fill: a.Fill, EndFill: a.EndFill}
	for _, v := range a.Entries {
		c.Entries = append(c.Entries, v.Clone())
	}
	return c
}

func (a *Array) writeTo(w *writer, space string) {
	a.Fill.writeToOrElse(w, space)
	w.str("[")
	for i, v := range a.Entries {
		if i == 0 {
			v.writeTo(w, "")
		} else {
			v.writeTo(w, " ")
		}
	}
	a.EndFill.writeTo(w)
	w.str("]")
}

func (a *Array) recoverFill(other Value) {
	o, ok := other.(*Array)
	if !ok {
		return
	}
	a.Fill.Recover(o.Fill)
	a.EndFill.Recover(o.EndFill)
	for i := range a.Entries {
		if i >= len(o.Entries) {
			break
		}
		a.Entries[i].recoverFill(o.Entries[i])
	}
}

func (a *Array) resolve(c *ConstantsResolver) (Value, error) {
	entries, err := resolveValues(a.Entries, c)
	if err != nil {
		return nil, err
	}
	a.Entries = entries
	return a, nil
}

func (a *Array) setFill(f Fill) { a.Fill = f }

func (*Array) isValue() {}

// resolveValues resolves a value sequence, splicing value groups
// referenced by constants. Key-value group entries cannot appear
// in a sequence.
func resolveValues(entries []Value, c *ConstantsResolver) ([]Value, error) {
	out := make([]Value, 0, len(entries))
	for _, v := range entries {
		ref, ok := v.(*ConstantRef)
		if !ok {
			rv, err := v.resolve(c)
			if err != nil {
				return nil, err
			}
			out = append(out, rv)
			continue
		}
		cv, ok := c.Get(ref.Path)
		if !ok {
			return nil, ref.unknownErr()
		}
		if cv.Group == nil {
			nv := cv.Value.Clone()
			nv.setFill(ref.Fill)
			out = append(out, nv)
			continue
		}
		for i, ge := range cv.Group.Entries {
			if ge.KeyValue != nil {
				return nil, ref.resolveErr("value group with key-value entries cannot be spliced into a sequence")
			}
			nv := ge.Value.Clone()
			if i == 0 {
				nv.setFill(ref.Fill)
			}
			out = append(out, nv)
		}
	}
	return out, nil
}
