// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"strings"
)

// A ConstantsResolver maps constant names to their definitions.
// Imported files contribute frames under alias prefixes; the file
// being resolved writes into a separate new-file map that is pushed
// onto the stack when the file ends.
type ConstantsResolver struct {
	stack   []constantsEntry
	newFile map[string]ConstantValue
}

type constantsEntry struct {
	prefix string
	frame  *constantsFrame
}

type constantsFrame struct {
	constants map[string]ConstantValue
}

// StartNewFile begins collecting a file's definitions.
func (c *ConstantsResolver) StartNewFile() {
	c.newFile = make(map[string]ConstantValue)
}

// EndNewFile pushes the collected definitions onto the stack so
// importers can see them.
func (c *ConstantsResolver) EndNewFile() {
	c.stack = append(c.stack, constantsEntry{frame: &constantsFrame{constants: c.newFile}})
	c.newFile = nil
}

// Insert records a definition for the current file.
// Redefining a name warns and overwrites.
func (c *ConstantsResolver) Insert(name string, v ConstantValue) {
	if c.newFile == nil {
		c.newFile = make(map[string]ConstantValue)
	}
	if _, ok := c.newFile[name]; ok {
		Warnf("constant $%s overwrites an earlier definition", name)
	}
	c.newFile[name] = v
}

// Get looks up a constant: the current file's definitions first,
// then imported frames newest to oldest, stripping alias prefixes.
func (c *ConstantsResolver) Get(path string) (ConstantValue, bool) {
	if v, ok := c.newFile[path]; ok {
		return v, true
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		e := c.stack[i]
		name := path
		if e.prefix != "" {
			if !strings.HasPrefix(path, e.prefix+"::") {
				continue
			}
			name = path[len(e.prefix)+2:]
		}
		if v, ok := e.frame.constants[name]; ok {
			return v, true
		}
	}
	return ConstantValue{}, false
}

// Append imports another resolver's frames under an alias.
// The alias _ imports without a prefix. Frames already present are
// skipped, so diamond imports contribute once.
func (c *ConstantsResolver) Append(alias string, other *ConstantsResolver) {
	for _, e := range other.stack {
		if c.hasFrame(e.frame) {
			continue
		}
		c.stack = append(c.stack, constantsEntry{prefix: composePrefix(alias, e.prefix), frame: e.frame})
	}
}

func (c *ConstantsResolver) hasFrame(f *constantsFrame) bool {
	for _, e := range c.stack {
		if e.frame == f {
			return true
		}
	}
	return false
}

func composePrefix(alias, prefix string) string {
	if alias == "_" || alias == "" {
		return prefix
	}
	if prefix == "" {
		return alias
	}
	return alias + "::" + prefix
}

// A SceneMacrosResolver maps scene macro names to their canonical
// definition bodies. It has the same frame structure as
// ConstantsResolver.
type SceneMacrosResolver struct {
	stack   []sceneMacrosEntry
	newFile map[string][]SceneEntry
}

type sceneMacrosEntry struct {
	prefix string
	frame  *sceneMacrosFrame
}

type sceneMacrosFrame struct {
	macros map[string][]SceneEntry
}

func (m *SceneMacrosResolver) StartNewFile() {
	m.newFile = make(map[string][]SceneEntry)
}

func (m *SceneMacrosResolver) EndNewFile() {
	m.stack = append(m.stack, sceneMacrosEntry{frame: &sceneMacrosFrame{macros: m.newFile}})
	m.newFile = nil
}

func (m *SceneMacrosResolver) insert(name string, entries []SceneEntry) {
	if m.newFile == nil {
		m.newFile = make(map[string][]SceneEntry)
	}
	if _, ok := m.newFile[name]; ok {
		Warnf("scene macro +%s overwrites an earlier definition", name)
	}
	m.newFile[name] = entries
}

func (m *SceneMacrosResolver) Get(path string) ([]SceneEntry, bool) {
	if v, ok := m.newFile[path]; ok {
		return v, true
	}
	for i := len(m.stack) - 1; i >= 0; i-- {
		e := m.stack[i]
		name := path
		if e.prefix != "" {
			if !strings.HasPrefix(path, e.prefix+"::") {
				continue
			}
			name = path[len(e.prefix)+2:]
		}
		if v, ok := e.frame.macros[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (m *SceneMacrosResolver) Append(alias string, other *SceneMacrosResolver) {
	for _, e := range other.stack {
		if m.hasFrame(e.frame) {
			continue
		}
		m.stack = append(m.stack, sceneMacrosEntry{prefix: composePrefix(alias, e.prefix), frame: e.frame})
	}
}

func (m *SceneMacrosResolver) hasFrame(f *sceneMacrosFrame) bool {
	for _, e := range m.stack {
		if e.frame == f {
			return true
		}
	}
	return false
}

// A Resolver resolves a document's constants and scene macros.
// A single Resolver is shared across a file and its importers.
type Resolver struct {
	Constants   ConstantsResolver
	SceneMacros SceneMacrosResolver
}

// StartNewFile begins resolution of a new file.
func (r *Resolver) StartNewFile() {
	r.Constants.StartNewFile()
	r.SceneMacros.StartNewFile()
}

// EndNewFile finishes resolution of the current file.
func (r *Resolver) EndNewFile() {
	r.Constants.EndNewFile()
	r.SceneMacros.EndNewFile()
}

// Append imports another resolver under an alias.
func (r *Resolver) Append(alias string, other *Resolver) {
	r.Constants.Append(alias, &other.Constants)
	r.SceneMacros.Append(alias, &other.SceneMacros)
}

// A SceneResolveMode says how deeply scene entries are resolved.
type SceneResolveMode int

const (
	// OneLayerSceneOnly expands macro calls at the current level
	// without descending into nested layers or touching values.
	OneLayerSceneOnly SceneResolveMode = iota
	// SceneOnly resolves scene structure at every depth but leaves
	// loadable values alone.
	SceneOnly
	// Full resolves structure and loadable values.
	Full
)

// Resolve resolves the whole document in place: definitions are
// recorded in the resolver, and constant references and scene macro
// calls in #commands and #scenes are replaced by their meanings.
// Resolving an already resolved document changes nothing.
func (c *Cob) Resolve(res *Resolver) error {
	if res.Constants.newFile == nil {
		res.StartNewFile()
	}
	if d := c.Defs(); d != nil {
		for _, e := range d.Entries {
			switch {
			case e.Constant != nil:
				cv := e.Constant.Value.clone()
				if cv.Group != nil {
					if err := cv.Group.resolve(&res.Constants); err != nil {
						return err
					}
				} else {
					v, err := resolveConstantBody(cv.Value, &res.Constants)
					if err != nil {
						return err
					}
					cv.Value = v
				}
				res.Constants.Insert(e.Constant.Name, cv)
			case e.SceneMacro != nil:
				entries, err := prepareMacroDef(res, e.SceneMacro.Group.Entries)
				if err != nil {
					return fmt.Errorf("scene macro +%s: %v", e.SceneMacro.Name, err)
				}
				res.SceneMacros.insert(e.SceneMacro.Name, entries)
			}
		}
	}
	if cmds := c.Commands(); cmds != nil {
		if err := cmds.resolve(&res.Constants); err != nil {
			return err
		}
	}
	if sc := c.Scenes(); sc != nil {
		if err := sc.Resolve(res, Full); err != nil {
			return err
		}
	}
	res.EndNewFile()
	return nil
}

// resolveConstantBody resolves a constant definition's plain value
// against earlier definitions, so stored constants are self
// contained.
func resolveConstantBody(v Value, c *ConstantsResolver) (Value, error) {
	return v.resolve(c)
}

// prepareMacroDef canonicalizes and fully resolves a macro
// definition body so that Get returns ready-to-merge entries.
func prepareMacroDef(res *Resolver, entries []SceneEntry) ([]SceneEntry, error) {
	out := make([]SceneEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.clone())
	}
	canonicalizeEntries(out)
	return resolveSceneEntries(out, res, Full, true, 0)
}

func canonicalizeEntries(entries []SceneEntry) {
	for _, e := range entries {
		switch {
		case e.Loadable != nil:
			e.Loadable.canonicalize()
		case e.Layer != nil:
			canonicalizeEntries(e.Layer.Entries)
		case e.MacroCommand != nil:
			if e.MacroCommand.Id.Generics != nil {
				e.MacroCommand.Id.Name = e.MacroCommand.Id.Canonical()
				e.MacroCommand.Id.Generics = nil
			}
		}
	}
}

// Resolve resolves the section's entries with the given mode.
func (sc *Scenes) Resolve(res *Resolver, mode SceneResolveMode) error {
	entries, err := resolveSceneEntries(sc.Entries, res, mode, false, 0)
	if err != nil {
		return err
	}
	sc.Entries = entries
	return nil
}

// resolveSceneEntries resolves one entry list. inMacroCall permits
// macro commands and parameters, which only mean something inside a
// macro call body.
func resolveSceneEntries(entries []SceneEntry, res *Resolver, mode SceneResolveMode, inMacroCall bool, depth int) ([]SceneEntry, error) {
	if depth > maxRecursion {
		return nil, fmt.Errorf("scene macro expansion nested deeper than %d levels", maxRecursion)
	}
	out := make([]SceneEntry, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Loadable != nil:
			if mode == Full {
				if err := e.Loadable.resolve(&res.Constants); err != nil {
					return nil, err
				}
			}
			out = append(out, e)
		case e.Layer != nil:
			if mode != OneLayerSceneOnly {
				sub, err := resolveSceneEntries(e.Layer.Entries, res, mode, inMacroCall, depth+1)
				if err != nil {
					return nil, err
				}
				e.Layer.Entries = sub
			}
			out = append(out, e)
		case e.MacroCall != nil:
			expanded, err := expandMacroCall(res, e.MacroCall, mode, depth+1)
			if err != nil {
				return nil, err
			}
			// Splice the expansion in place of the call. The first
			// expanded entry takes the call's leading fill so line
			// structure is kept.
			if len(expanded) > 0 {
				recoverEntryFill(&expanded[0], e.MacroCall.Fill)
			}
			out = append(out, expanded...)
		case e.MacroCommand != nil:
			if !inMacroCall {
				return nil, fmt.Errorf("unexpected scene macro command %s", e.MacroCommand.Id.Name)
			}
			out = append(out, e)
		case e.MacroParam != nil:
			if !inMacroCall {
				return nil, fmt.Errorf("scene macro parameter unexpectedly not resolved")
			}
			out = append(out, e)
		}
	}
	if !inMacroCall {
		if err := checkMacroFree(out, mode != OneLayerSceneOnly); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// checkMacroFree rejects macro syntax that survived expansion.
// Commands and calls can reach here from a macro definition body,
// where nothing consumes them. descend also checks layers, which may
// hold entries merged from an expansion; it is off when nested layers
// were deliberately left unresolved.
func checkMacroFree(entries []SceneEntry, descend bool) error {
	for _, e := range entries {
		switch {
		case e.MacroCall != nil:
			return fmt.Errorf("scene macro call +%s unexpectedly not resolved", e.MacroCall.Path)
		case e.MacroCommand != nil:
			return fmt.Errorf("unexpected scene macro command %s", e.MacroCommand.Id.Name)
		case e.Layer != nil:
			if !descend {
				continue
			}
			if err := checkMacroFree(e.Layer.Entries, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandMacroCall clones the named macro's body and merges the call
// body into it.
func expandMacroCall(res *Resolver, call *SceneMacroCall, mode SceneResolveMode, depth int) ([]SceneEntry, error) {
	def, ok := res.SceneMacros.Get(call.Path)
	if !ok {
		return nil, fmt.Errorf("unknown scene macro +%s", call.Path)
	}
	result := make([]SceneEntry, 0, len(def))
	for _, e := range def {
		result = append(result, e.clone())
	}
	// A call resolved one layer deep still resolves its own body's
	// structure fully.
	bodyMode := mode
	if bodyMode == OneLayerSceneOnly {
		bodyMode = SceneOnly
	}
	body := make([]SceneEntry, 0, len(call.Entries))
	for _, e := range call.Entries {
		body = append(body, e.clone())
	}
	canonicalizeEntries(body)
	body, err := resolveSceneEntries(body, res, bodyMode, true, depth)
	if err != nil {
		return nil, err
	}
	result, err = mergeSceneEntries(result, body)
	if err != nil {
		return nil, fmt.Errorf("expanding +%s: %v", call.Path, err)
	}
	return dropParams(result), nil
}

// mergeSceneEntries applies a macro call body to a cloned macro
// definition: loadables overwrite by canonical id or append,
// commands move or remove their target, and layers merge by name
// and are relocated into call order.
func mergeSceneEntries(result, body []SceneEntry) ([]SceneEntry, error) {
	for _, e := range body {
		switch {
		case e.Loadable != nil:
			if i := findLoadable(result, e.Loadable.Id.Canonical()); i >= 0 {
				e.Loadable.recoverFill(result[i].Loadable)
				result[i].Loadable = e.Loadable
			} else {
				result = append(result, e)
			}
		case e.MacroCommand != nil:
			i := findLoadable(result, e.MacroCommand.Id.Canonical())
			if i < 0 {
				return nil, fmt.Errorf("no loadable %s for scene macro command", e.MacroCommand.Id.Canonical())
			}
			target := result[i]
			result = append(result[:i], result[i+1:]...)
			switch e.MacroCommand.Kind {
			case MoveToTop:
				result = append([]SceneEntry{target}, result...)
			case MoveToBottom:
				result = append(result, target)
			}
		case e.Layer != nil:
			i := findLayer(result, e.Layer.Name)
			if i < 0 {
				result = append(result, e)
				break
			}
			merged, err := mergeSceneEntries(result[i].Layer.Entries, e.Layer.Entries)
			if err != nil {
				return nil, err
			}
			target := result[i]
			target.Layer.Entries = merged
			// Relocate so sibling layers end up in call order.
			result = append(result[:i], result[i+1:]...)
			result = append(result, target)
		case e.MacroParam != nil:
			return nil, fmt.Errorf("scene macro parameter in a call body")
		}
	}
	return result, nil
}

func dropParams(entries []SceneEntry) []SceneEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.MacroParam != nil {
			continue
		}
		if e.Layer != nil {
			e.Layer.Entries = dropParams(e.Layer.Entries)
		}
		out = append(out, e)
	}
	return out
}

func findLoadable(entries []SceneEntry, canonical string) int {
	for i, e := range entries {
		if e.Loadable != nil && e.Loadable.Id.Canonical() == canonical {
			return i
		}
	}
	return -1
}

func findLayer(entries []SceneEntry, name string) int {
	for i, e := range entries {
		if e.Layer != nil && e.Layer.Name == name {
			return i
		}
	}
	return -1
}

func recoverEntryFill(e *SceneEntry, fill Fill) {
	switch {
	case e.Loadable != nil:
		e.Loadable.Id.Fill = fill
	case e.Layer != nil:
		e.Layer.NameFill = fill
	case e.MacroCommand != nil:
		e.MacroCommand.Fill = fill
	case e.MacroParam != nil:
		e.MacroParam.Fill = fill
	}
}
