// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A Scenes is a #scenes section. Its entries are root scene layers
// and scene macro calls, each at the very start of a line.
type Scenes struct {
	Fill    Fill
	Entries []SceneEntry
}

func parseScenes(p *parser, fill Fill, s loc.Span) (*Scenes, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#scenes") {
		return nil, fill, s, nil
	}
	sc := &Scenes{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#scenes")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		frag := r.Fragment()
		if len(frag) == 0 || frag[0] != '"' && frag[0] != '+' {
			break
		}
		if n, ok := itemFill.EndsNewlineThenSpaces(); !ok {
			return nil, fill, s, newError(r, "scenes must start on their own line")
		} else if n != 0 {
			return nil, fill, s, newError(r, "scenes must start at the beginning of the line")
		}
		if frag[0] == '+' {
			call, nf, rr, err := parseSceneMacroCall(p, itemFill, r)
			if err != nil {
				return nil, fill, s, err
			}
			sc.Entries = append(sc.Entries, SceneEntry{MacroCall: call})
			itemFill, r = nf, rr
			continue
		}
		layer, nf, rr, err := parseSceneLayer(p, 0, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if layer == nil {
			return nil, fill, s, newError(r, "failed to parse scene")
		}
		sc.Entries = append(sc.Entries, SceneEntry{Layer: layer})
		itemFill, r = nf, rr
	}
	return sc, itemFill, r, nil
}

func (sc *Scenes) writeTo(w *writer, space string) {
	sc.Fill.writeToOrElse(w, space)
	w.str("#scenes")
	for _, e := range sc.Entries {
		e.writeTo(w, "\n")
	}
}

// Layer returns the root layer with the given name and then walks
// the remaining path, or nil if any step is missing.
func (sc *Scenes) Layer(path ...string) *SceneLayer {
	if len(path) == 0 {
		return nil
	}
	for _, e := range sc.Entries {
		if e.Layer != nil && e.Layer.Name == path[0] {
			return e.Layer.Layer(path[1:]...)
		}
	}
	return nil
}

func (*Scenes) isSection() {}
