// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// An Enum is a variant name with an optional payload:
// Unit, Tuple(1 2), Map{a: 1}, or the array shorthand Arr[1 2],
// which means the same as Arr([1 2]).
type Enum struct {
	Fill Fill
	Name string
	// Payload is nil for a unit variant,
	// otherwise *Tuple, *Array, or *Map.
	Payload Value
}

func NewEnum(name string, payload Value) *Enum {
	return &Enum{Name: name, Payload: payload}
}

func parseEnum(p *parser, fill Fill, s loc.Span) (*Enum, Fill, loc.Span, error) {
	name := camelIdent(s.Fragment())
	if name == "" {
		return nil, fill, s, nil
	}
	e := &Enum{Fill: fill, Name: name}
	payload, next, r, err := parseEnumPayload(p, s.Advance(len(name)))
	if err != nil {
		return nil, fill, s, err
	}
	e.Payload = payload
	return e, next, r, nil
}

// parseEnumPayload parses the payload immediately following a
// variant name; no fill is allowed in between. No payload means
// a unit variant.
func parseEnumPayload(p *parser, s loc.Span) (Value, Fill, loc.Span, error) {
	if t, f, r, err := parseTuple(p, Fill{}, s); t != nil || err != nil {
		return retVal(t, err), f, r, err
	}
	if a, f, r, err := parseArray(p, Fill{}, s); a != nil || err != nil {
		return retVal(a, err), f, r, err
	}
	if m, f, r, err := parseMap(p, Fill{}, s); m != nil || err != nil {
		return retVal(m, err), f, r, err
	}
	next, r, err := parseFill(s)
	if err != nil {
		return nil, Fill{}, s, err
	}
	return nil, next, r, nil
}

func (e *Enum) Clone() Value {
	c := &Enum{Fill: e.Fill, Name: e.Name}
	if e.Payload != nil {
		c.Payload = e.Payload.Clone()
	}
	return c
}

func (e *Enum) writeTo(w *writer, space string) {
	e.Fill.writeToOrElse(w, space)
	w.str(e.Name)
	if e.Payload != nil {
		e.Payload.writeTo(w, "")
	}
}

func (e *Enum) recoverFill(other Value) {
	o, ok := other.(*Enum)
	if !ok {
		return
	}
	e.Fill.Recover(o.Fill)
	if e.Payload != nil && o.Payload != nil {
		e.Payload.recoverFill(o.Payload)
	}
}

func (e *Enum) resolve(c *ConstantsResolver) (Value, error) {
	if e.Payload != nil {
		p, err := e.Payload.resolve(c)
		if err != nil {
			return nil, err
		}
		e.Payload = p
	}
	return e, nil
}

func (e *Enum) setFill(f Fill) { e.Fill = f }

func (*Enum) isValue() {}
