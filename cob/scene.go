// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A SceneEntry is one entry of a scene layer, a scene macro body,
// or a scene macro call. Exactly one field is set.
type SceneEntry struct {
	Loadable     *Loadable
	Layer        *SceneLayer
	MacroCall    *SceneMacroCall
	MacroCommand *SceneMacroCommand
	MacroParam   *SceneMacroParam
}

// A SceneLayer is a scene node: a quoted name followed by entries
// indented one step beyond the name.
type SceneLayer struct {
	// NameFill precedes the opening quote.
	NameFill Fill
	// Name may be empty; otherwise lowercase letters, digits,
	// and underscores.
	Name    string
	Entries []SceneEntry
}

// parseSceneLayer parses a layer whose quoted name sits at the
// given indentation.
func parseSceneLayer(p *parser, indent int, fill Fill, s loc.Span) (*SceneLayer, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '"' {
		return nil, fill, s, nil
	}
	name := numericalSnakeIdent(frag[1:])
	if len(frag) < 2+len(name) || frag[1+len(name)] != '"' {
		return nil, fill, s, nil
	}
	if err := p.enter(s); err != nil {
		return nil, fill, s, err
	}
	defer p.exit()
	layer := &SceneLayer{NameFill: fill, Name: name}
	itemFill, r, err := parseFill(s.Advance(2 + len(name)))
	if err != nil {
		return nil, fill, s, err
	}
	entries, nf, rr, err := parseSceneEntries(p, indent, itemFill, r, 0)
	if err != nil {
		return nil, fill, s, err
	}
	layer.Entries = entries
	return layer, nf, rr, nil
}

// parseSceneEntries parses the entries of a layer or group whose
// header sits at layerIndent. The first entry fixes the expected
// content indentation; entries at other indentations deeper than
// layerIndent are accepted with a warning. stopAt, when nonzero, is
// a closing delimiter that may end the entries in place of EOF.
func parseSceneEntries(p *parser, layerIndent int, itemFill Fill, r loc.Span, stopAt byte) ([]SceneEntry, Fill, loc.Span, error) {
	var entries []SceneEntry
	contentIndent := -1
	for {
		n, ok := itemFill.EndsNewlineThenSpaces()
		if !ok {
			if r.Len() == 0 || stopAt != 0 && r.Fragment()[0] == stopAt {
				break
			}
			return nil, itemFill, r, newError(r, "scene entries must start on their own line")
		}
		// The closing delimiter is not an entry, whatever its indent.
		if stopAt != 0 && r.Len() > 0 && r.Fragment()[0] == stopAt {
			break
		}
		if n <= layerIndent {
			break
		}
		if contentIndent < 0 {
			contentIndent = n
		} else if n != contentIndent {
			Warnf("%s: scene entry indented %d spaces, expected %d", r.Loc(), n, contentIndent)
		}
		e, nf, rr, err := parseSceneEntry(p, n, itemFill, r)
		if err != nil {
			return nil, itemFill, r, err
		}
		if e == nil {
			return nil, itemFill, r, newError(r, "failed to parse scene entry")
		}
		entries = append(entries, *e)
		itemFill, r = nf, rr
	}
	return entries, itemFill, r, nil
}

func parseSceneEntry(p *parser, indent int, fill Fill, s loc.Span) (*SceneEntry, Fill, loc.Span, error) {
	l, nf, r, err := parseLoadable(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if l != nil {
		return &SceneEntry{Loadable: l}, nf, r, nil
	}
	call, nf, r, err := parseSceneMacroCall(p, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if call != nil {
		return &SceneEntry{MacroCall: call}, nf, r, nil
	}
	cmd, nf, r, err := parseSceneMacroCommand(fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if cmd != nil {
		return &SceneEntry{MacroCommand: cmd}, nf, r, nil
	}
	param, nf, r, err := parseSceneMacroParam(fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if param != nil {
		return &SceneEntry{MacroParam: param}, nf, r, nil
	}
	layer, nf, r, err := parseSceneLayer(p, indent, fill, s)
	if err != nil {
		return nil, fill, s, err
	}
	if layer != nil {
		return &SceneEntry{Layer: layer}, nf, r, nil
	}
	return nil, fill, s, nil
}

func (e SceneEntry) clone() SceneEntry {
	switch {
	case e.Loadable != nil:
		return SceneEntry{Loadable: e.Loadable.clone()}
	case e.Layer != nil:
		return SceneEntry{Layer: e.Layer.clone()}
	case e.MacroCall != nil:
		return SceneEntry{MacroCall: e.MacroCall.clone()}
	case e.MacroCommand != nil:
		c := *e.MacroCommand
		c.Id.Generics = e.MacroCommand.Id.Generics.clone()
		return SceneEntry{MacroCommand: &c}
	case e.MacroParam != nil:
		c := *e.MacroParam
		return SceneEntry{MacroParam: &c}
	}
	return SceneEntry{}
}

func (l *SceneLayer) clone() *SceneLayer {
	c := &SceneLayer{NameFill: l.NameFill, Name: l.Name}
	for _, e := range l.Entries {
		c.Entries = append(c.Entries, e.clone())
	}
	return c
}

func (e SceneEntry) writeTo(w *writer, space string) {
	switch {
	case e.Loadable != nil:
		e.Loadable.writeTo(w, space)
	case e.Layer != nil:
		e.Layer.writeTo(w, space)
	case e.MacroCall != nil:
		e.MacroCall.writeTo(w, space)
	case e.MacroCommand != nil:
		e.MacroCommand.writeTo(w, space)
	case e.MacroParam != nil:
		e.MacroParam.writeTo(w, space)
	}
}

func (l *SceneLayer) writeTo(w *writer, space string) {
	l.NameFill.writeToOrElse(w, space)
	w.str(`"`)
	w.str(l.Name)
	w.str(`"`)
	for _, e := range l.Entries {
		e.writeTo(w, "\n")
	}
}

// Layer returns the nested layer reached by following the named
// path, or nil if any step is missing.
func (l *SceneLayer) Layer(path ...string) *SceneLayer {
	cur := l
	for _, name := range path {
		var next *SceneLayer
		for _, e := range cur.Entries {
			if e.Layer != nil && e.Layer.Name == name {
				next = e.Layer
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Loadable returns the layer's loadable with the given canonical
// id, or nil.
func (l *SceneLayer) Loadable(canonical string) *Loadable {
	for _, e := range l.Entries {
		if e.Loadable != nil && e.Loadable.Id.Canonical() == canonical {
			return e.Loadable
		}
	}
	return nil
}
