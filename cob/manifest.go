// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"

	"github.com/eaburns/cob/loc"
)

// sectionStart reports whether a section keyword can begin here:
// at column zero, on its own line or at the start of the file.
func sectionStart(fill Fill, s loc.Span, keyword string) bool {
	if !keywordAt(s.Fragment(), keyword) {
		return false
	}
	if n, ok := fill.EndsNewlineThenSpaces(); ok {
		return n == 0
	}
	return fill.Empty() && fill.atFileStart()
}

// entryStart reports whether a section entry can begin here.
// Entries must start on their own line.
func entryStart(fill Fill) bool {
	return fill.EndsWithNewline()
}

// A ManifestEntry associates a file, or the current file, with a
// manifest key: "file.cob" as key.name or self as key.name.
type ManifestEntry struct {
	Fill Fill
	// Self is set for the self form; otherwise File is the quoted
	// path.
	Self bool
	File string
	// PreAsFill and PostAsFill surround the as keyword.
	PreAsFill  Fill
	PostAsFill Fill
	// Key is a dotted lowercase path naming the manifest entry.
	Key string
}

// A Manifest is a #manifest section.
type Manifest struct {
	// Fill precedes the #manifest keyword.
	Fill    Fill
	Entries []ManifestEntry
}

func parseManifest(p *parser, fill Fill, s loc.Span) (*Manifest, Fill, loc.Span, error) {
	if !sectionStart(fill, s, "#manifest") {
		return nil, fill, s, nil
	}
	m := &Manifest{Fill: fill}
	itemFill, r, err := parseFill(s.Advance(len("#manifest")))
	if err != nil {
		return nil, fill, s, err
	}
	for {
		e, nf, rr, err := parseManifestEntry(itemFill, r)
		if err != nil {
			return nil, fill, s, err
		}
		if e == nil {
			break
		}
		m.Entries = append(m.Entries, *e)
		itemFill, r = nf, rr
	}
	return m, itemFill, r, nil
}

func parseManifestEntry(fill Fill, s loc.Span) (*ManifestEntry, Fill, loc.Span, error) {
	frag := s.Fragment()
	e := &ManifestEntry{Fill: fill}
	var n int
	switch {
	case keywordAt(frag, "self"):
		e.Self = true
		n = 4
	case strings.HasPrefix(frag, "\""):
		end := strings.IndexByte(frag[1:], '"')
		if end < 0 {
			return nil, fill, s, newError(s, "unterminated manifest file name")
		}
		e.File = frag[1 : 1+end]
		n = end + 2
	default:
		return nil, fill, s, nil
	}
	if !entryStart(fill) {
		return nil, fill, s, newError(s, "manifest entries must start on their own line")
	}
	preAs, r, err := parseFill(s.Advance(n))
	if err != nil {
		return nil, fill, s, err
	}
	postAs, r, err := parseAs(preAs, r, "manifest entry")
	if err != nil {
		return nil, fill, s, err
	}
	e.PreAsFill = preAs
	key := manifestKey(r.Fragment())
	if key == "" {
		return nil, fill, s, newError(r, "expected manifest key after as")
	}
	e.PostAsFill, e.Key = postAs, key
	next, r, err := parseFill(r.Advance(len(key)))
	if err != nil {
		return nil, fill, s, err
	}
	return e, next, r, nil
}

// parseAs consumes the as keyword between two fills, both of which
// must be nonempty.
func parseAs(preAs Fill, r loc.Span, what string) (Fill, loc.Span, error) {
	if preAs.Empty() {
		return Fill{}, r, newError(r, "expected spacing before as in %s", what)
	}
	if !keywordAt(r.Fragment(), "as") {
		return Fill{}, r, newError(r, "expected as in %s", what)
	}
	postAs, rr, err := parseFill(r.Advance(2))
	if err != nil {
		return Fill{}, r, err
	}
	if postAs.Empty() {
		return Fill{}, r, newError(rr, "expected spacing after as in %s", what)
	}
	return postAs, rr, nil
}

// manifestKey matches a dotted lowercase path such as ui.widgets.
func manifestKey(frag string) string {
	i := 0
	for {
		seg := snakeIdent(frag[i:])
		if seg == "" {
			if i == 0 {
				return ""
			}
			return frag[:i-1]
		}
		i += len(seg)
		if i >= len(frag) || frag[i] != '.' {
			return frag[:i]
		}
		i++
	}
}

func (m *Manifest) writeTo(w *writer, space string) {
	m.Fill.writeToOrElse(w, space)
	w.str("#manifest")
	for _, e := range m.Entries {
		e.Fill.writeToOrElse(w, "\n")
		if e.Self {
			w.str("self")
		} else {
			w.str("\"")
			w.str(e.File)
			w.str("\"")
		}
		e.PreAsFill.writeToOrElse(w, " ")
		w.str("as")
		e.PostAsFill.writeToOrElse(w, " ")
		w.str(e.Key)
	}
}

func (*Manifest) isSection() {}
