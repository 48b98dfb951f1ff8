// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// An Identifier is a loadable type id: a camel-case name with
// optional generics, such as Border or Animated<Opacity>.
type Identifier struct {
	Fill     Fill
	Name     string
	Generics *Generics
}

// Canonical returns the whitespace-free form used for registry
// lookups, with generics folded into the name.
func (id Identifier) Canonical() string {
	if id.Generics == nil {
		return id.Name
	}
	var b strings.Builder
	b.WriteString(id.Name)
	id.Generics.canonical(&b)
	return b.String()
}

func parseIdentifier(fill Fill, s loc.Span) (*Identifier, loc.Span, error) {
	name := camelIdent(s.Fragment())
	if name == "" {
		return nil, s, nil
	}
	id := &Identifier{Fill: fill, Name: name}
	g, r, err := parseGenerics(s.Advance(len(name)))
	if err != nil {
		return nil, s, err
	}
	id.Generics = g
	return id, r, nil
}

// A Loadable is a named value applied to a scene node or command:
// an identifier with a unit, tuple, array, map, or enum payload.
// The array form Name[..] is shorthand for Name([..]).
type Loadable struct {
	Id Identifier
	// Payload is nil for the unit form, otherwise
	// *Tuple, *Array, *Map, or *Enum for Name::Variant payloads.
	Payload Value
}

func NewLoadable(name string, payload Value) *Loadable {
	return &Loadable{Id: Identifier{Name: name}, Payload: payload}
}

func parseLoadable(p *parser, fill Fill, s loc.Span) (*Loadable, Fill, loc.Span, error) {
	id, r, err := parseIdentifier(fill, s)
	if err != nil || id == nil {
		return nil, fill, s, err
	}
	l := &Loadable{Id: *id}
	if strings.HasPrefix(r.Fragment(), "::") {
		// Failing to parse a variant after :: is a hard error:
		// the identifier committed us to an enum payload.
		e, nf, rr, err := parseEnum(p, Fill{}, r.Advance(2))
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			return nil, fill, s, newError(r, "expected enum variant after %s::", id.Name)
		}
		l.Payload = e
		return l, nf, rr, nil
	}
	payload, nf, rr, err := parseEnumPayload(p, r)
	if err != nil {
		return nil, fill, s, err
	}
	l.Payload = payload
	return l, nf, rr, nil
}

func (l *Loadable) clone() *Loadable {
	c := &Loadable{Id: l.Id}
	c.Id.Generics = l.Id.Generics.clone()
	if l.Payload != nil {
		c.Payload = l.Payload.Clone()
	}
	return c
}

func (l *Loadable) writeTo(w *writer, space string) {
	l.Id.Fill.writeToOrElse(w, space)
	w.str(l.Id.Name)
	if l.Id.Generics != nil {
		l.Id.Generics.writeTo(w)
	}
	if e, ok := l.Payload.(*Enum); ok {
		w.str("::")
		e.writeTo(w, "")
		return
	}
	if l.Payload != nil {
		l.Payload.writeTo(w, "")
	}
}

// RecoverFill copies formatting from a structurally matching prior
// loadable, used when replacing a loadable in an already parsed
// document so only semantic content changes.
func (l *Loadable) RecoverFill(other *Loadable) { l.recoverFill(other) }

func (l *Loadable) recoverFill(other *Loadable) {
	l.Id.Fill.Recover(other.Id.Fill)
	l.Id.Generics.recoverFill(other.Id.Generics)
	if l.Payload != nil && other.Payload != nil {
		l.Payload.recoverFill(other.Payload)
	}
}

// canonicalize folds generics into the loadable's name so that
// overwrite-by-id comparisons are textual.
func (l *Loadable) canonicalize() {
	if l.Id.Generics != nil {
		l.Id.Name = l.Id.Canonical()
		l.Id.Generics = nil
	}
}

func (l *Loadable) resolve(c *ConstantsResolver) error {
	if l.Payload == nil {
		return nil
	}
	p, err := l.Payload.resolve(c)
	if err != nil {
		return err
	}
	l.Payload = p
	return nil
}
