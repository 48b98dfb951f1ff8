// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// A Commands is a #commands section: loadables applied globally,
// one per line at the start of the line.
type Commands struct {
	Fill    Fill
	Entries []*Loadable
}

func parseCommands(p *parser, fill Fill, s loc.Span) (*Commands, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#commands") {
		return nil, fill, s, nil
	}
	c := &Commands{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#commands")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		frag := r.Fragment()
		if len(frag) == 0 || camelIdent(frag) == "" {
			break
		}
		if n, ok := itemFill.EndsNewlineThenSpaces(); !ok {
			return nil, fill, s, newError(r, "commands must start on their own line")
		} else if n != 0 {
			return nil, fill, s, newError(r, "commands must start at the beginning of the line")
		}
		l, nf, rr, err := parseLoadable(p, itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if l == nil {
			return nil, fill, s, newError(r, "failed to parse command")
		}
		c.Entries = append(c.Entries, l)
		itemFill, r = nf, rr
	}
	return c, itemFill, r, nil
}

func (c *Commands) writeTo(w *writer, space string) {
	c.Fill.writeToOrElse(w, space)
	w.str("#commands")
	for _, l := range c.Entries {
		l.writeTo(w, "\n")
	}
}

// Loadable returns the command with the given canonical id, or nil.
func (c *Commands) Loadable(canonical string) *Loadable {
	for _, l := range c.Entries {
		if l.Id.Canonical() == canonical {
			return l
		}
	}
	return nil
}

// resolve replaces constant references in all command loadables.
func (c *Commands) resolve(res *ConstantsResolver) error {
	for _, l := range c.Entries {
		if err := l.resolve(res); err != nil {
			return err
		}
	}
	return nil
}

func (*Commands) isSection() {}
