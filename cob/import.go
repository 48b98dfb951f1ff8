// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"github.com/eaburns/cob/loc"
)

// An ImportEntry pulls another file's definitions into scope under
// an alias: manifest.key as alias. The alias _ imports without a
// prefix.
type ImportEntry struct {
	Fill Fill
	// Key is the manifest key of the imported file.
	Key        string
	PreAsFill  Fill
	PostAsFill Fill
	// Alias is a :: separated lowercase path, or _ for no prefix.
	Alias string
}

// An Import is an #import section.
type Import struct {
	Fill    Fill
	Entries []ImportEntry
}

func parseImport(p *parser, fill Fill, s loc.Span) (*Import, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#import") {
		return nil, fill, s, nil
	}
	imp := &Import{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#import")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		e, nf, rr, err := parseImportEntry(itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			break
		}
		imp.Entries = append(imp.Entries, *e)
		itemFill, r = nf, rr
	}
	return imp, itemFill, r, nil
}

func parseImportEntry(fill Fill, s loc.Span) (*ImportEntry, Fill, loc.Span, error) {
	key := manifestKey(s.Fragment())
	if key == "" {
		return nil, fill, s, nil
	}
	if !entryStart(fill) {
		return nil, fill, s, newError(s, "import entries must start on their own line")
	}
	e := &ImportEntry{Fill: fill, Key: key}
	preAs, r, err := parseFill(s.Advance(len(key)))
	if err != nil {
		return nil, fill, s, err
	}
	postAs, r, err := parseAs(preAs, r, "import entry")
	if err != nil {
		return nil, fill, s, err
	}
	e.PreAsFill, e.PostAsFill = preAs, postAs
	alias := importAlias(r.Fragment())
	if alias == "" {
		return nil, fill, s, newError(r, "expected import alias after as")
	}
	e.Alias = alias
	next, r, err := parseFill(r.Advance(len(alias)))
	if err != nil {
		return nil, fill, s, err
	}
	return e, next, r, nil
}

// importAlias matches a :: separated lowercase path or _.
func importAlias(frag string) string {
	if len(frag) > 0 && frag[0] == '_' && (len(frag) == 1 || !isIdentByte(frag[1])) {
		return "_"
	}
	i := 0
	for {
		seg := snakeIdent(frag[i:])
		if seg == "" {
			if i == 0 {
				return ""
			}
			return frag[:i-2]
		}
		i += len(seg)
		if i+1 >= len(frag) || frag[i] != ':' || frag[i+1] != ':' {
			return frag[:i]
		}
		i += 2
	}
}

func (imp *Import) writeTo(w *writer, space string) {
	imp.Fill.writeToOrElse(w, space)
	w.str("#import")
	for _, e := range imp.Entries {
		e.Fill.writeToOrElse(w, "\n")
		w.str(e.Key)
		e.PreAsFill.writeToOrElse(w, " ")
		w.str("as")
		e.PostAsFill.writeToOrElse(w, " ")
		w.str(e.Alias)
	}
}

func (*Import) isSection() {}
