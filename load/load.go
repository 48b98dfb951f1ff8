// Copyright © 2026 The Cob Authors under an MIT-style license.

// Package load reads cob documents from disk, follows their
// manifest sections to the rest of the file set, and resolves each
// file against the files it imports.
package load

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/eaburns/cob/cob"
	"github.com/eaburns/cob/loc"
)

// A File is one loaded and resolved document.
type File struct {
	// Path is the file path relative to the set's root directory.
	Path string
	// Key is the manifest key the file was registered under,
	// or empty for the root file when its manifest has no self entry.
	Key string
	Doc *cob.Cob

	imports  []importRef
	resolver *cob.Resolver
	state    resolveState
}

type importRef struct {
	key   string
	alias string
}

type resolveState int

const (
	unresolved resolveState = iota
	resolving
	resolved
)

// A Set is a root document plus the transitive closure of files
// named by manifest sections.
type Set struct {
	dir   string
	root  *File
	files map[string]*File
	byKey map[string]*File
}

// Load reads the document at path, loads every file its manifest
// closure names, and resolves them all, imports first.
func Load(path string) (*Set, error) {
	s := &Set{
		dir:   filepath.Dir(path),
		files: make(map[string]*File),
		byKey: make(map[string]*File),
	}
	root, err := s.read(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	s.root = root
	if err := s.resolve(root); err != nil {
		return nil, err
	}
	// Files reachable only through manifests, not imports,
	// still need resolving.
	for _, p := range s.paths() {
		if err := s.resolve(s.files[p]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Root returns the file Load was given.
func (s *Set) Root() *File { return s.root }

// File returns the file at a path relative to the root directory,
// or nil.
func (s *Set) File(path string) *File { return s.files[path] }

// ByKey returns the file registered under a manifest key, or nil.
func (s *Set) ByKey(key string) *File { return s.byKey[key] }

// Files returns every loaded file in path order.
func (s *Set) Files() []*File {
	files := make([]*File, 0, len(s.files))
	for _, p := range s.paths() {
		files = append(files, s.files[p])
	}
	return files
}

func (s *Set) paths() []string {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// read parses the file at a root-relative path and walks its
// manifest, reading every file the manifest names.
func (s *Set) read(path string) (*File, error) {
	if f, ok := s.files[path]; ok {
		return f, nil
	}
	text, err := ioutil.ReadFile(filepath.Join(s.dir, path))
	if err != nil {
		return nil, err
	}
	doc, err := cob.Parse(loc.NewSource(path, string(text)))
	if err != nil {
		return nil, err
	}
	f := &File{Path: path, Doc: doc}
	s.files[path] = f
	if m := doc.Manifest(); m != nil {
		for _, e := range m.Entries {
			if e.Self {
				if err := s.register(e.Key, f); err != nil {
					return nil, err
				}
				continue
			}
			d, err := s.read(e.File)
			if err != nil {
				return nil, err
			}
			if err := s.register(e.Key, d); err != nil {
				return nil, err
			}
		}
	}
	if imp := doc.Import(); imp != nil {
		for _, e := range imp.Entries {
			f.imports = append(f.imports, importRef{key: e.Key, alias: e.Alias})
		}
	}
	return f, nil
}

func (s *Set) register(key string, f *File) error {
	if old, ok := s.byKey[key]; ok && old != f {
		return fmt.Errorf("manifest key %s names both %s and %s", key, old.Path, f.Path)
	}
	s.byKey[key] = f
	if f.Key == "" {
		f.Key = key
	}
	return nil
}

// resolve resolves a file's imports, then the file itself.
func (s *Set) resolve(f *File) error {
	switch f.state {
	case resolved:
		return nil
	case resolving:
		return fmt.Errorf("%s: import cycle", f.Path)
	}
	f.state = resolving
	r := &cob.Resolver{}
	r.StartNewFile()
	for _, imp := range f.imports {
		d := s.byKey[imp.key]
		if d == nil {
			return fmt.Errorf("%s: import of unknown manifest key %s", f.Path, imp.key)
		}
		if err := s.resolve(d); err != nil {
			return err
		}
		r.Append(imp.alias, d.resolver)
	}
	if err := f.Doc.Resolve(r); err != nil {
		return fmt.Errorf("%s: %v", f.Path, err)
	}
	f.resolver = r
	f.state = resolved
	return nil
}
