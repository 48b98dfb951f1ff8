// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// A SceneGroup is a sequence of scene entries bracketed by
// backslashes; it is the body of a scene macro definition.
type SceneGroup struct {
	// Fill precedes the opening backslash.
	Fill    Fill
	Entries []SceneEntry
	// EndFill precedes the closing backslash.
	EndFill Fill
}

func parseSceneGroup(p *parser, fill Fill, s loc.Span) (*SceneGroup, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '\\' {
		return nil, fill, s, nil
	}
	g := &SceneGroup{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	entries, nf, rr, err := parseSceneEntries(p, 0, itemFill, r, '\\')
	if err != nil {
		return nil, fill, s, err
	}
	g.Entries = entries
	if rr.Len() == 0 || rr.Fragment()[0] != '\\' {
		return nil, fill, s, newError(rr, "expected \\ to close scene macro body")
	}
	g.EndFill = nf
	next, rr, err := parseFill(rr.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return g, next, rr, nil
}

func (g *SceneGroup) clone() *SceneGroup {
	c := &SceneGroup{Fill: g.Fill, EndFill: g.EndFill}
	for _, e := range g.Entries {
		c.Entries = append(c.Entries, e.clone())
	}
	return c
}

func (g *SceneGroup) writeTo(w *writer, space string) {
	g.Fill.writeToOrElse(w, space)
	w.str("\\")
	for _, e := range g.Entries {
		e.writeTo(w, "\n")
	}
	g.EndFill.writeToOrElse(w, "\n")
	w.str("\\")
}

// A SceneMacroDef is a scene macro definition in #defs,
// written +name = \ entries \.
type SceneMacroDef struct {
	// Fill precedes the +.
	Fill Fill
	Name string
	// PreEqFill precedes the =.
	PreEqFill Fill
	Group     SceneGroup
}

func parseSceneMacroDef(p *parser, fill Fill, s loc.Span) (*SceneMacroDef, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '+' {
		return nil, fill, s, nil
	}
	name := anythingIdent(frag[1:])
	if name == "" {
		return nil, fill, s, nil
	}
	d := &SceneMacroDef{Fill: fill, Name: name}
	preEq, r, err := parseFill(s.Advance(1 + len(name)))
	if err != nil {
		return nil, fill, s, err
	}
	if r.Len() == 0 || r.Fragment()[0] != '=' {
		return nil, fill, s, newError(r, "expected = after scene macro name +%s", name)
	}
	d.PreEqFill = preEq
	groupFill, gr, err := parseFill(r.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	g, nf, rr, err := parseSceneGroup(p, groupFill, gr)
	if err != nil {
		return nil, fill, s, err
	}
	if g == nil {
		return nil, fill, s, newError(gr, "expected \\ body for scene macro +%s", name)
	}
	d.Group = *g
	return d, nf, rr, nil
}

func (d *SceneMacroDef) writeTo(w *writer, space string) {
	d.Fill.writeToOrElse(w, space)
	w.str("+")
	w.str(d.Name)
	d.PreEqFill.writeToOrElse(w, " ")
	w.str("=")
	d.Group.writeTo(w, " ")
}

// A SceneMacroCall invokes a scene macro, written +path{ entries }.
// The body overrides and extends the macro's definition.
type SceneMacroCall struct {
	// Fill precedes the +.
	Fill Fill
	// Path is the macro path without the leading +.
	Path    string
	Entries []SceneEntry
	// EndFill precedes the closing brace.
	EndFill Fill
}

func parseSceneMacroCall(p *parser, fill Fill, s loc.Span) (*SceneMacroCall, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '+' {
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
			return nil, fill, s, newError(s, "expected scene macro name after +")
		}
		i += len(name)
		break
	}
	call := &SceneMacroCall{Fill: fill, Path: frag[1:i]}
	if i >= len(frag) || frag[i] != '{' {
		return nil, fill, s, newError(s.Advance(i), "expected { after scene macro +%s", call.Path)
	}
	itemFill, r, err := parseFill(s.Advance(i + 1))
	if err != nil {
		return nil, fill, s, err
	}
	entries, nf, rr, err := parseSceneEntries(p, 0, itemFill, r, '}')
	if err != nil {
		return nil, fill, s, err
	}
	call.Entries = entries
	if rr.Len() == 0 || rr.Fragment()[0] != '}' {
		return nil, fill, s, newError(rr, "expected } to close scene macro call +%s", call.Path)
	}
	call.EndFill = nf
	next, rr, err := parseFill(rr.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	return call, next, rr, nil
}

func (c *SceneMacroCall) clone() *SceneMacroCall {
	d := &SceneMacroCall{Fill: c.Fill, Path: c.Path, EndFill: c.EndFill}
	for _, e := range c.Entries {
		d.Entries = append(d.Entries, e.clone())
	}
	return d
}

func (c *SceneMacroCall) writeTo(w *writer, space string) {
	c.Fill.writeToOrElse(w, space)
	w.str("+")
	w.str(c.Path)
	w.str("{")
	for _, e := range c.Entries {
		e.writeTo(w, "\n")
	}
	c.EndFill.writeTo(w)
	w.str("}")
}

// A MacroCommandKind says what a scene macro command does to the
// loadable it names.
type MacroCommandKind int

const (
	// RemoveLoadable deletes the loadable, written -Id.
	RemoveLoadable MacroCommandKind = iota
	// MoveToTop moves the loadable first, written ^Id.
	MoveToTop
	// MoveToBottom moves the loadable last, written !Id.
	MoveToBottom
)

// A SceneMacroCommand edits an inherited loadable inside a scene
// macro call body. Commands are consumed during macro expansion and
// may not survive into a resolved scene.
type SceneMacroCommand struct {
	Fill Fill
	Kind MacroCommandKind
	Id   Identifier
}

func parseSceneMacroCommand(fill Fill, s loc.Span) (*SceneMacroCommand, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 {
		return nil, fill, s, nil
	}
	var kind MacroCommandKind
	switch frag[0] {
	case '-':
		kind = RemoveLoadable
	case '^':
		kind = MoveToTop
	case '!':
		kind = MoveToBottom
	default:
		return nil, fill, s, nil
	}
	id, r, err := parseIdentifier(Fill{}, s.Advance(1))
	if err != nil {
		return nil, fill, s, err
	}
	if id == nil {
		return nil, fill, s, nil
	}
	cmd := &SceneMacroCommand{Fill: fill, Kind: kind, Id: *id}
	next, rr, err := parseFill(r)
	if err != nil {
		return nil, fill, s, err
	}
	return cmd, next, rr, nil
}

func (c *SceneMacroCommand) writeTo(w *writer, space string) {
	c.Fill.writeToOrElse(w, space)
	switch c.Kind {
	case RemoveLoadable:
		w.str("-")
	case MoveToTop:
		w.str("^")
	case MoveToBottom:
		w.str("!")
	}
	w.str(c.Id.Name)
	if c.Id.Generics != nil {
		c.Id.Generics.writeTo(w)
	}
}

// A SceneMacroParam marks an insertion point in a scene macro
// definition: ..'name' for a single named slot or ..* for the rest.
type SceneMacroParam struct {
	Fill Fill
	// Name is empty for the ..* form.
	Name string
}

func parseSceneMacroParam(fill Fill, s loc.Span) (*SceneMacroParam, Fill, loc.Span, error) {
	frag := s.Fragment()
	if !strings.HasPrefix(frag, "..") {
		return nil, fill, s, nil
	}
	rest := frag[2:]
	var n int
	param := &SceneMacroParam{Fill: fill}
	switch {
	case strings.HasPrefix(rest, "*"):
		n = 3
	case strings.HasPrefix(rest, "'"):
		name := numericalSnakeIdent(rest[1:])
		if name == "" || len(rest) < 2+len(name) || rest[1+len(name)] != '\'' {
			return nil, fill, s, newError(s, "expected ..'name' or ..*")
		}
		param.Name = name
		n = 2 + 2 + len(name)
	default:
		return nil, fill, s, newError(s, "expected ..'name' or ..*")
	}
	next, r, err := parseFill(s.Advance(n))
	if err != nil {
		return nil, fill, s, err
	}
	return param, next, r, nil
}

func (p *SceneMacroParam) writeTo(w *writer, space string) {
	p.Fill.writeToOrElse(w, space)
	if p.Name == "" {
		w.str("..*")
	} else {
		w.str("..'")
		w.str(p.Name)
		w.str("'")
	}
}
