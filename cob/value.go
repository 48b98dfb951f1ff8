// Copyright © 2026 The Cob Authors under an MIT-style license.

// Package cob parses, writes, and resolves COB asset files.
//
// A parsed document preserves every byte of its input, including
// whitespace and comments, so that writing it out again reproduces
// the original file exactly. Documents can also be built and edited
// programmatically and then written with reasonable formatting.
package cob

import (
	"github.com/eaburns/cob/loc"
)

// maxRecursion bounds the nesting depth of a document.
const maxRecursion = 250

// parser carries per-parse state.
// Nested productions increment depth on entry and decrement on exit;
// exceeding maxRecursion aborts the whole parse.
type parser struct {
	depth int
}

func (p *parser) enter(s loc.Span) error {
	p.depth++
	if p.depth > maxRecursion {
		return newError(s, "nesting deeper than %d levels", maxRecursion)
	}
	return nil
}

func (p *parser) exit() { p.depth-- }

// A Value is a node of the data tree carried by loadables,
// constants, and scene entries.
//
// Value is implemented by *Enum, *Color, *Val, *Array, *Tuple, *Map,
// *Number, *Bool, *None, *String, and *ConstantRef.
type Value interface {
	// Clone returns a deep copy.
	Clone() Value
	// writeTo writes the node, using space for its leading fill
	// when that fill is empty.
	writeTo(w *writer, space string)
	// recoverFill adopts fill from other when the two nodes have
	// the same shape and this node's fill is empty.
	recoverFill(other Value)
	// resolve replaces constant references in a scalar position.
	// Containers splice value groups themselves.
	resolve(c *ConstantsResolver) (Value, error)
	// setFill replaces the node's leading fill.
	setFill(f Fill)
	isValue()
}

// parseValue parses a single value. The alternatives are tried in a
// fixed order; each reports no match by returning its input unchanged.
func parseValue(p *parser, fill Fill, s loc.Span) (Value, Fill, loc.Span, error) {
	if err := p.enter(s); err != nil {
		return nil, fill, s, err
	}
	defer p.exit()

	if v, f, r, err := parseEnum(p, fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseColor(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseVal(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseArray(p, fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseTuple(p, fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseMap(p, fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseNumber(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseBool(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseNone(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseString(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	if v, f, r, err := parseConstantRef(fill, s); v != nil || err != nil {
		return retVal(v, err), f, r, err
	}
	return nil, fill, s, nil
}

// RecoverFill copies formatting onto v from a structurally matching
// prior value, walking the two trees in lock step. Fills already set
// on v and positions where the shapes diverge are left alone, so a
// reparsed or rebuilt value keeps the old value's layout wherever the
// semantic content still lines up.
func RecoverFill(v, other Value) { v.recoverFill(other) }

// retVal converts a typed node pointer to a Value,
// avoiding a non-nil interface around a nil pointer.
func retVal(v Value, err error) Value {
	if err != nil {
		return nil
	}
	return v
}

// Bool is true or false.
type Bool struct {
	Fill  Fill
	Value bool
}

// NewBool returns a Bool with no fill.
func NewBool(v bool) *Bool { return &Bool{Value: v} }

func parseBool(fill Fill, s loc.Span) (*Bool, Fill, loc.Span, error) {
	frag := s.Fragment()
	var b Bool
	var n int
	switch {
	case keywordAt(frag, "true"):
		b, n = Bool{Fill: fill, Value: true}, 4
	case keywordAt(frag, "false"):
		b, n = Bool{Fill: fill, Value: false}, 5
	default:
		return nil, fill, s, nil
	}
	next, r, err := parseFill(s.Advance(n))
	if err != nil {
		return nil, fill, s, err
	}
	return &b, next, r, nil
}

func (b *Bool) Clone() Value { c := *b; return &c }

func (b *Bool) writeTo(w *writer, space string) {
	b.Fill.writeToOrElse(w, space)
	if b.Value {
		w.str("true")
	} else {
		w.str("false")
	}
}

func (b *Bool) recoverFill(other Value) {
	if o, ok := other.(*Bool); ok {
		b.Fill.Recover(o.Fill)
	}
}

func (b *Bool) resolve(*ConstantsResolver) (Value, error) { return b, nil }

func (b *Bool) setFill(f Fill) { b.Fill = f }

func (*Bool) isValue() {}

// None is the unit "no value" marker, written none.
type None struct {
	Fill Fill
}

// NewNone returns a None with no fill.
func NewNone() *None { return &None{} }

func parseNone(fill Fill, s loc.Span) (*None, Fill, loc.Span, error) {
	if !keywordAt(s.Fragment(), "none") {
		return nil, fill, s, nil
	}
	next, r, err := parseFill(s.Advance(4))
	if err != nil {
		return nil, fill, s, err
	}
	return &None{Fill: fill}, next, r, nil
}

func (n *None) Clone() Value { c := *n; return &c }

func (n *None) writeTo(w *writer, space string) {
	n.Fill.writeToOrElse(w, space)
	w.str("none")
}

func (n *None) recoverFill(other Value) {
	if o, ok := other.(*None); ok {
		n.Fill.Recover(o.Fill)
	}
}

func (n *None) resolve(*ConstantsResolver) (Value, error) { return n, nil }

func (n *None) setFill(f Fill) { n.Fill = f }

func (*None) isValue() {}
