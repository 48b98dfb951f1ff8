// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A MapKey is either an arbitrary value or a bare field name.
// Exactly one of Value and Field is set.
type MapKey struct {
	Value Value
	// Fill and Field describe a field-name key.
	Fill  Fill
	Field string
}

func FieldKey(name string) MapKey { return MapKey{Field: name} }

func ValueKey(v Value) MapKey { return MapKey{Value: v} }

// A MapKeyValue is a key, a colon, and a value.
type MapKeyValue struct {
	Key MapKey
	// MidFill is the fill before the colon.
	MidFill Fill
	Value   Value
}

// A MapEntry is one entry of a map: a key-value pair or a constant
// reference that resolves to spliced key-value pairs.
// Exactly one field is set.
type MapEntry struct {
	KeyValue *MapKeyValue
	Constant *ConstantRef
}

// A Map is a set of key-value entries written {a: 1 b: 2}.
type Map struct {
	Fill    Fill
	Entries []MapEntry
	// EndFill is the fill before the closing brace.
	EndFill Fill
}

func NewMap(entries ...MapEntry) *Map { return &Map{Entries: entries} }

// KeyValueEntry returns a map entry pairing key with value.
func KeyValueEntry(key MapKey, value Value) MapEntry {
	return MapEntry{KeyValue: &MapKeyValue{Key: key, Value: value}}
}

func parseMap(p *parser, fill Fill, s loc.Span) (*Map, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '{' {
		return nil, fill, s, nil
	}
	m := &Map{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		e, nf, rr, err := parseMapEntry(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			break
		}
		if len(m.Entries) > 0 && itemFill.Empty() {
			return nil, fill, s, newError(r, "map entry is not separated from the previous one")
		}
		m.Entries = append(m.Entries, *e)
		itemFill, r = nf, rr
	}
	if r.Len() == 0 || r.Fragment()[0] != '}' {
		return nil, fill, s, newError(r, "expected } to close map")
	}
	m.EndFill = itemFill
	next, r, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return m, next, r, nil
}

func parseMapEntry(p *parser, fill Fill, s loc.Span) (*MapEntry, Fill, loc.Span, error) {
	kv, nf, r, err := parseMapKeyValue(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if kv != nil {
		return &MapEntry{KeyValue: kv}, nf, r, nil
	}
	ref, nf, r, err := parseConstantRef(fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if ref != nil {
		return &MapEntry{Constant: ref}, nf, r, nil
	}
	return nil, fill, s, nil
}

// parseMapKeyValue parses key : value.
// A key that is not followed by a colon is not a match;
// the whole attempt backtracks so the closing brace can be found.
func parseMapKeyValue(p *parser, fill Fill, s loc.Span) (*MapKeyValue, Fill, loc.Span, error) {
	var key MapKey
	v, midFill, r, err := parseValue(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if v != nil {
		key = MapKey{Value: v}
	} else {
		id := snakeIdent(s.Fragment())
		if id == "" {
			return nil, fill, s, nil
		}
		key = MapKey{Fill: fill, Field: id}
		midFill, r, err = parseFill(s.Advance(len(id)))
		if err != nil {
			return nil, fill, s, err
		}
	}
	if r.Len() == 0 || r.Fragment()[0] != ':' {
		return nil, fill, s, nil
	}
	valFill, vr, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	val, nf, vr, err := parseValue(p, valFill, vr)
	if err != nil {
		return nil, fill, s, err
	}
	if val == nil {
		return nil, fill, s, newError(vr, "expected value after :")
	}
	return &MapKeyValue{Key: key, MidFill: midFill, Value: val}, nf, vr, nil
}

func (m *Map) Clone() Value {
	c := &Map{Fill: m.Fill, EndFill: m.EndFill}
	for _, e := range m.Entries {
		c.Entries = append(c.Entries, e.clone())
	}
	return c
}

func (e MapEntry) clone() MapEntry {
	switch {
	case e.KeyValue != nil:
		return MapEntry{KeyValue: e.KeyValue.clone()}
	case e.Constant != nil:
		c := *e.Constant
		return MapEntry{Constant: &c}
	}
	return MapEntry{}
}

func (kv *MapKeyValue) clone() *MapKeyValue {
	c := &MapKeyValue{Key: kv.Key, MidFill: kv.MidFill, Value: kv.Value.Clone()}
	if kv.Key.Value != nil {
		c.Key.Value = kv.Key.Value.Clone()
	}
	return c
}

func (m *Map) writeTo(w *writer, space string) {
	m.Fill.writeToOrElse(w, space)
	w.str("{")
	for i, e := range m.Entries {
		if i == 0 {
			e.writeTo(w, "")
		} else {
			e.writeTo(w, " ")
		}
	}
	m.EndFill.writeTo(w)
	w.str("}")
}

func (e MapEntry) writeTo(w *writer, space string) {
	switch {
	case e.KeyValue != nil:
		e.KeyValue.writeTo(w, space)
	case e.Constant != nil:
		e.Constant.writeTo(w, space)
	}
}

func (kv *MapKeyValue) writeTo(w *writer, space string) {
	if kv.Key.Value != nil {
		kv.Key.Value.writeTo(w, space)
	} else {
		kv.Key.Fill.writeToOrElse(w, space)
		w.str(kv.Key.Field)
	}
	kv.MidFill.writeTo(w)
	w.str(":")
	kv.Value.writeTo(w, " ")
}

func (m *Map) recoverFill(other Value) {
	o, ok := other.(*Map)
	if !ok {
		return
	}
	m.Fill.Recover(o.Fill)
	m.EndFill.Recover(o.EndFill)
	for i := range m.Entries {
		if i >= len(o.Entries) {
			break
		}
		m.Entries[i].recoverFill(o.Entries[i])
	}
}

func (e MapEntry) recoverFill(other MapEntry) {
	switch {
	case e.KeyValue != nil && other.KeyValue != nil:
		kv, okv := e.KeyValue, other.KeyValue
		if kv.Key.Value != nil && okv.Key.Value != nil {
			kv.Key.Value.recoverFill(okv.Key.Value)
		} else if kv.Key.Value == nil && okv.Key.Value == nil {
			kv.Key.Fill.Recover(okv.Key.Fill)
		}
		kv.MidFill.Recover(okv.MidFill)
		kv.Value.recoverFill(okv.Value)
	case e.Constant != nil && other.Constant != nil:
		e.Constant.Fill.Recover(other.Constant.Fill)
	}
}

func (m *Map) resolve(c *ConstantsResolver) (Value, error) {
	out := make([]MapEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.KeyValue != nil {
			if err := e.KeyValue.resolve(c); err != nil {
				return nil, err
			}
			out = append(out, e)
			continue
		}
		ref := e.Constant
		cv, ok := c.Get(ref.Path)
		if !ok {
			return nil, ref.unknownErr()
		}
		if cv.Group == nil {
			return nil, ref.resolveErr("a map entry constant must be a value group of key-value pairs")
		}
		for i, ge := range cv.Group.Entries {
			if ge.KeyValue == nil {
				return nil, ref.resolveErr("value group with plain values cannot be spliced into a map")
			}
			kv := ge.KeyValue.clone()
			if i == 0 {
				if kv.Key.Value != nil {
					kv.Key.Value.setFill(ref.Fill)
				} else {
					kv.Key.Fill = ref.Fill
				}
			}
			out = append(out, MapEntry{KeyValue: kv})
		}
	}
	m.Entries = out
	return m, nil
}

// resolve resolves the key and value of a single entry.
// Neither position can take a value group.
func (kv *MapKeyValue) resolve(c *ConstantsResolver) error {
	if kv.Key.Value != nil {
		v, err := kv.Key.Value.resolve(c)
		if err != nil {
			return err
		}
		kv.Key.Value = v
	}
	v, err := kv.Value.resolve(c)
	if err != nil {
		return err
	}
	kv.Value = v
	return nil
}

func (m *Map) setFill(f Fill) { m.Fill = f }

func (*Map) isValue() {}
