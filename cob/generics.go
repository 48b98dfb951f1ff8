// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// rustPrimitives are the primitive type names accepted inside
// generics, matching the type language of the asset consumers.
var rustPrimitives = []string{
	"bool", "char",
	"f32", "f64",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
}

// A GenericItem is one item of a generics list: a struct id with
// optional nested generics, a tuple of items, or a primitive type
// name. Exactly one of Name, Tuple, and Primitive is set.
type GenericItem struct {
	Fill     Fill
	Name     string
	Generics *Generics
	// Tuple items are written (A B); TupleEndFill precedes the ).
	Tuple        []GenericItem
	TupleEndFill Fill
	Primitive    string
}

// Generics is the <...> suffix of a type identifier.
type Generics struct {
	Items []GenericItem
	// CloseFill is the fill before the closing angle bracket.
	CloseFill Fill
}

// parseGenerics parses a <...> list immediately at the head of s.
func parseGenerics(s loc.Span) (*Generics, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '<' {
		return nil, s, nil
	}
	g := &Generics{}
	itemFill, r, err := parseFill(s.Advance(1))
	if err != nil {
		return nil, s, err
	}
	items, endFill, r, err := parseGenericItems(itemFill, r)
	if err != nil {
		return nil, s, err
	}
	g.Items, g.CloseFill = items, endFill
	if r.Len() == 0 || r.Fragment()[0] != '>' {
		return nil, s, newError(r, "expected > to close generics")
	}
	return g, r.Advance(1), nil
}

func parseGenericItems(itemFill Fill, r loc.Span) ([]GenericItem, Fill, loc.Span, error) {
	var items []GenericItem
	for {
		it, nf, rr, err := parseGenericItem(itemFill, r)
		if err != nil {
			return nil, Fill{}, r, err
		}
		if it == nil {
			break
		}
		if len(items) > 0 && itemFill.Empty() {
			return nil, Fill{}, r, newError(r, "generic value is not separated from the previous one")
		}
		items = append(items, *it)
		itemFill, r = nf, rr
	}
	return items, itemFill, r, nil
}

func parseGenericItem(fill Fill, s loc.Span) (*GenericItem, Fill, loc.Span, error) {
	frag := s.Fragment()
	if name := camelIdent(frag); name != "" {
		it := &GenericItem{Fill: fill, Name: name}
		g, r, err := parseGenerics(s.Advance(len(name)))
		if err != nil {
			return nil, fill, s, err
		}
		it.Generics = g
		next, r, err := parseFill(r)
		if err != nil {
			return nil, fill, s, err
		}
		return it, next, r, nil
	}
	if len(frag) > 0 && frag[0] == '(' {
		it := &GenericItem{Fill: fill}
		itemFill, r, err := parseFill(s.Advance(1))
		if err != nil {
			return nil, fill, s, err
		}
		items, endFill, r, err := parseGenericItems(itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if r.Len() == 0 || r.Fragment()[0] != ')' {
			return nil, fill, s, newError(r, "expected ) to close generic tuple")
		}
		if items == nil {
			items = []GenericItem{}
		}
		it.Tuple, it.TupleEndFill = items, endFill
		next, r, err := parseFill(r.Advance(1))
		if err != nil {
			return nil, fill, s, err
		}
		return it, next, r, nil
	}
	for _, p := range rustPrimitives {
		if keywordAt(frag, p) {
			it := &GenericItem{Fill: fill, Primitive: p}
			next, r, err := parseFill(s.Advance(len(p)))
			if err != nil {
				return nil, fill, s, err
			}
			return it, next, r, nil
		}
	}
	return nil, fill, s, nil
}

func (g *Generics) clone() *Generics {
	if g == nil {
		return nil
	}
	c := &Generics{CloseFill: g.CloseFill}
	for _, it := range g.Items {
		c.Items = append(c.Items, it.clone())
	}
	return c
}

func (it GenericItem) clone() GenericItem {
	c := it
	c.Generics = it.Generics.clone()
	c.Tuple = nil
	for _, t := range it.Tuple {
		c.Tuple = append(c.Tuple, t.clone())
	}
	return c
}

func (g *Generics) writeTo(w *writer) {
	w.str("<")
	for i, it := range g.Items {
		if i == 0 {
			it.writeTo(w, "")
		} else {
			it.writeTo(w, " ")
		}
	}
	g.CloseFill.writeTo(w)
	w.str(">")
}

func (it GenericItem) writeTo(w *writer, space string) {
	it.Fill.writeToOrElse(w, space)
	switch {
	case it.Name != "":
		w.str(it.Name)
		if it.Generics != nil {
			it.Generics.writeTo(w)
		}
	case it.Tuple != nil:
		w.str("(")
		for i, t := range it.Tuple {
			if i == 0 {
				t.writeTo(w, "")
			} else {
				t.writeTo(w, " ")
			}
		}
		it.TupleEndFill.writeTo(w)
		w.str(")")
	default:
		w.str(it.Primitive)
	}
}

// canonical appends the whitespace-free canonical form used for
// registry lookups, such as <u32, (bool, f32)>.
func (g *Generics) canonical(b *strings.Builder) {
	b.WriteString("<")
	for i, it := range g.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		it.canonical(b)
	}
	b.WriteString(">")
}

func (it GenericItem) canonical(b *strings.Builder) {
	switch {
	case it.Name != "":
		b.WriteString(it.Name)
		if it.Generics != nil {
			it.Generics.canonical(b)
		}
	case it.Tuple != nil:
		b.WriteString("(")
		for i, t := range it.Tuple {
			if i > 0 {
				b.WriteString(", ")
			}
			t.canonical(b)
		}
		b.WriteString(")")
	default:
		b.WriteString(it.Primitive)
	}
}

func (g *Generics) recoverFill(other *Generics) {
	if g == nil || other == nil {
		return
	}
	g.CloseFill.Recover(other.CloseFill)
	for i := range g.Items {
		if i >= len(other.Items) {
			break
		}
		g.Items[i].Fill.Recover(other.Items[i].Fill)
		g.Items[i].Generics.recoverFill(other.Items[i].Generics)
	}
}
