// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// A ConstantRef is a reference to a constant, written $name or
// $path::to::name. References are replaced by their definitions
// during resolution.
type ConstantRef struct {
	Fill Fill
	// Path is the full reference path without the leading $.
	Path string
}

func NewConstantRef(path string) *ConstantRef { return &ConstantRef{Path: path} }

func parseConstantRef(fill Fill, s loc.Span) (*ConstantRef, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '$' {
		return nil, fill, s, nil
	}
	i := 1
	for {
		seg := snakeIdent(frag[i:])
		if seg != "" && strings.HasPrefix(frag[i+len(seg):], "::") {
			i += len(seg) + 2
			continue
		}
		name := anythingIdent(frag[i:])
		if name == "" {
			return nil, fill, s, newError(s, "expected constant name after $")
		}
		i += len(name)
		break
	}
	ref := &ConstantRef{Fill: fill, Path: frag[1:i]}
	next, r, err := parseFill(s.Advance(i))
	if err != nil {
		return nil, fill, s, err
	}
	return ref, next, r, nil
}

func (r *ConstantRef) Clone() Value { c := *r; return &c }

func (r *ConstantRef) writeTo(w *writer, space string) {
	r.Fill.writeToOrElse(w, space)
	w.str("$")
	w.str(r.Path)
}

func (r *ConstantRef) recoverFill(other Value) {
	if o, ok := other.(*ConstantRef); ok {
		r.Fill.Recover(o.Fill)
	}
}

// resolve replaces the reference in a position where only a plain
// value can go. Sequence and map positions splice groups instead;
// see resolveValues and Map.resolve.
func (r *ConstantRef) resolve(c *ConstantsResolver) (Value, error) {
	cv, ok := c.Get(r.Path)
	if !ok {
		return nil, r.unknownErr()
	}
	if cv.Group != nil {
		return nil, r.resolveErr("a value group cannot be used as a plain value")
	}
	v := cv.Value.Clone()
	v.setFill(r.Fill)
	return v, nil
}

func (r *ConstantRef) setFill(f Fill) { r.Fill = f }

func (*ConstantRef) isValue() {}

func (r *ConstantRef) unknownErr() error {
	return &Error{Loc: r.Fill.span.Loc(), Msg: "unknown constant $" + r.Path}
}

func (r *ConstantRef) resolveErr(msg string) error {
	return &Error{Loc: r.Fill.span.Loc(), Msg: "resolving $" + r.Path + ": " + msg}
}

// A GroupEntry is one entry of a value group:
// a key-value pair or a plain value. Exactly one field is set.
type GroupEntry struct {
	KeyValue *MapKeyValue
	Value    Value
}

// A ValueGroup is a sequence of values or key-value pairs written
// \ ... \. Groups appear only as constant definition values; a
// reference to a group splices the group's entries into the
// surrounding composite.
type ValueGroup struct {
	Fill    Fill
	Entries []GroupEntry
	// EndFill is the fill before the closing backslash.
	EndFill Fill
}

func parseValueGroup(p *parser, fill Fill, s loc.Span) (*ValueGroup, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '\\' {
		return nil, fill, s, nil
	}
	g := &ValueGroup{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		e, nf, rr, err := parseGroupEntry(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			break
		}
		if len(g.Entries) > 0 && itemFill.Empty() {
			return nil, fill, s, newError(r, "group entry is not separated from the previous one")
		}
		g.Entries = append(g.Entries, *e)
		itemFill, r = nf, rr
	}
	if r.Len() == 0 || r.Fragment()[0] != '\\' {
		return nil, fill, s, newError(r, "expected \\ to close value group")
	}
	g.EndFill = itemFill
	next, r, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return g, next, r, nil
}

func parseGroupEntry(p *parser, fill Fill, s loc.Span) (*GroupEntry, Fill, loc.Span, error) {
	kv, nf, r, err := parseMapKeyValue(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if kv != nil {
		return &GroupEntry{KeyValue: kv}, nf, r, nil
	}
	v, nf, r, err := parseValue(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if v != nil {
		return &GroupEntry{Value: v}, nf, r, nil
	}
	if id := snakeIdent(s.Fragment()); id != "" {
		return nil, fill, s, newError(s, "field name %s has no value", id)
	}
	return nil, fill, s, nil
}

func (g *ValueGroup) clone() *ValueGroup {
	c := &ValueGroup{Fill: g.Fill, EndFill: g.EndFill}
	for _, e := range g.Entries {
		switch {
		case e.KeyValue != nil:
			c.Entries = append(c.Entries, GroupEntry{KeyValue: e.KeyValue.clone()})
		default:
			c.Entries = append(c.Entries, GroupEntry{Value: e.Value.Clone()})
		}
	}
	return c
}

func (g *ValueGroup) writeTo(w *writer, space string) {
	g.Fill.writeToOrElse(w, space)
	w.str("\\")
	for _, e := range g.Entries {
		switch {
		case e.KeyValue != nil:
			e.KeyValue.writeTo(w, " ")
		default:
			e.Value.writeTo(w, " ")
		}
	}
	g.EndFill.writeToOrElse(w, " ")
	w.str("\\")
}

// resolve resolves the group's own entries against previously
// defined constants, splicing nested group references.
func (g *ValueGroup) resolve(c *ConstantsResolver) error {
	out := make([]GroupEntry, 0, len(g.Entries))
	for _, e := range g.Entries {
		if e.KeyValue != nil {
			if err := e.KeyValue.resolve(c); err != nil {
				return err
			}
			out = append(out, e)
			continue
		}
		if ref, ok := e.Value.(*ConstantRef); ok {
			cv, ok := c.Get(ref.Path)
			if !ok {
				return ref.unknownErr()
			}
			if cv.Group != nil {
				for i, ge := range cv.Group.Entries {
					nge := ge
					switch {
					case ge.KeyValue != nil:
						nge.KeyValue = ge.KeyValue.clone()
						if i == 0 {
							if nge.KeyValue.Key.Value != nil {
								nge.KeyValue.Key.Value.setFill(ref.Fill)
							} else {
								nge.KeyValue.Key.Fill = ref.Fill
							}
						}
					default:
						nge.Value = ge.Value.Clone()
						if i == 0 {
							nge.Value.setFill(ref.Fill)
						}
					}
					out = append(out, nge)
				}
				continue
			}
			nv := cv.Value.Clone()
			nv.setFill(ref.Fill)
			out = append(out, GroupEntry{Value: nv})
			continue
		}
		v, err := e.Value.resolve(c)
		if err != nil {
			return err
		}
		out = append(out, GroupEntry{Value: v})
	}
	g.Entries = out
	return nil
}

// A ConstantValue is a constant definition's body:
// a plain value or a value group. Exactly one field is set.
type ConstantValue struct {
	Value Value
	Group *ValueGroup
}

func (cv ConstantValue) clone() ConstantValue {
	if cv.Group != nil {
		return ConstantValue{Group: cv.Group.clone()}
	}
	return ConstantValue{Value: cv.Value.Clone()}
}

// A ConstantDef is a constant definition in a #defs section,
// written $name = value.
type ConstantDef struct {
	// Fill precedes the $.
	Fill Fill
	Name string
	// PreEqFill is the fill before the =.
	PreEqFill Fill
	Value     ConstantValue
}

// parseConstantDef parses $name = value inside #defs.
// Definition names are single identifiers with no path segments.
func parseConstantDef(p *parser, fill Fill, s loc.Span) (*ConstantDef, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '$' {
		return nil, fill, s, nil
	}
	name := anythingIdent(frag[1:])
	if name == "" {
		return nil, fill, s, nil
	}
	d := &ConstantDef{Fill: fill, Name: name}
	preEq, r, err := parseFill(s.Advance(1 + len(name)))
	if err != nil {
		return nil, fill, s, err
	}
	if r.Len() == 0 || r.Fragment()[0] != '=' {
		return nil, fill, s, newError(r, "expected = after constant name $%s", name)
	}
	d.PreEqFill = preEq
	valFill, vr, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	if g, nf, rr, err := parseValueGroup(p, valFill, vr); g != nil || err != nil {
		if err != nil {
			return nil, fill, s, err
		}
		d.Value = ConstantValue{Group: g}
		return d, nf, rr, nil
	}
	v, nf, rr, err := parseValue(p, valFill, vr)
	if err != nil {
		return nil, fill, s, err
	}
	if v == nil {
		return nil, fill, s, newError(vr, "expected a value for constant $%s", name)
	}
	d.Value = ConstantValue{Value: v}
	return d, nf, rr, nil
}

func (d *ConstantDef) writeTo(w *writer, space string) {
	d.Fill.writeToOrElse(w, space)
	w.str("$")
	w.str(d.Name)
	d.PreEqFill.writeToOrElse(w, " ")
	w.str("=")
	if d.Value.Group != nil {
		d.Value.Group.writeTo(w, " ")
	} else {
		d.Value.Value.writeTo(w, " ")
	}
}
