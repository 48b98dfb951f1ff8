// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"
	"testing"
)

func TestSceneIndentation(t *testing.T) {
	text := "#scenes\n" +
		"\"root\"\n" +
		"    A(1)\n" +
		"    \"a\"\n" +
		"        B(2)\n" +
		"    C(3)\n" +
		"\"other\"\n" +
		"    D(4)\n"
	c, err := parseDoc(t, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sc := c.Scenes()
	if len(sc.Entries) != 2 {
		t.Fatalf("len(Entries)=%d, want 2 root layers", len(sc.Entries))
	}
	root := sc.Layer("root")
	if len(root.Entries) != 3 {
		t.Fatalf("len(root.Entries)=%d, want 3", len(root.Entries))
	}
	// C dedents back out of "a", so it belongs to root.
	if root.Entries[2].Loadable == nil || root.Entries[2].Loadable.Id.Name != "C" {
		t.Errorf("root.Entries[2]=%+v, want C", root.Entries[2])
	}
	a := sc.Layer("root", "a")
	if a == nil || len(a.Entries) != 1 || a.Entries[0].Loadable.Id.Name != "B" {
		t.Errorf("layer a=%+v, want just B", a)
	}
	if got := c.String(); got != text {
		t.Errorf("written:\n%q\nwant the input back:\n%q", got, text)
	}
}

func TestSceneMisalignedEntryWarns(t *testing.T) {
	defer swapWarnf()()
	text := "#scenes\n" +
		"\"root\"\n" +
		"    A(1)\n" +
		"      B(2)\n" +
		"   C(3)\n"
	c, err := parseDoc(t, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root := c.Scenes().Layer("root")
	if len(root.Entries) != 3 {
		t.Fatalf("len(root.Entries)=%d, want 3", len(root.Entries))
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings=%v, want 2 indentation warnings", warnings)
	}
	for _, w := range warnings {
		if !strings.Contains(w, "expected 4") {
			t.Errorf("warning %q, want mention of the expected indentation", w)
		}
	}
	if got := c.String(); got != text {
		t.Errorf("written:\n%q\nwant the input back:\n%q", got, text)
	}
}

func TestMacroCallCloseIsNotMisaligned(t *testing.T) {
	// The closing brace of a multi-line macro call sits shallower
	// than the call's entries; that is not an indentation mismatch.
	defer swapWarnf()()
	text := "#scenes\n" +
		"\"s\"\n" +
		"    +m{\n" +
		"        A(1)\n" +
		"        B(2)\n" +
		"    }\n"
	c, err := parseDoc(t, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings=%v, want none", warnings)
	}
	if got := c.String(); got != text {
		t.Errorf("written:\n%q\nwant the input back:\n%q", got, text)
	}
}

func TestSceneEntryOnSameLine(t *testing.T) {
	_, err := parseDoc(t, "#scenes\n\"root\" A(1)\n")
	if err == nil || !strings.Contains(err.Error(), "own line") {
		t.Errorf("err=%v, want an own-line error", err)
	}
}

func TestEmptyLayerName(t *testing.T) {
	text := "#scenes\n\"\"\n    A(1)\n"
	c, err := parseDoc(t, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	l := c.Scenes().Layer("")
	if l == nil || len(l.Entries) != 1 {
		t.Fatalf("Layer(\"\")=%+v, want one entry", l)
	}
	if got := c.String(); got != text {
		t.Errorf("written %q, want the input back", got)
	}
}

func TestDeepSceneNesting(t *testing.T) {
	// Layers nested past the recursion limit must error, not crash.
	var b strings.Builder
	b.WriteString("#scenes\n")
	for i := 0; i < maxRecursion+1; i++ {
		b.WriteString(strings.Repeat(" ", i))
		b.WriteString("\"a\"\n")
	}
	_, err := parseDoc(t, b.String())
	if err == nil || !strings.Contains(err.Error(), "nesting") {
		t.Errorf("err=%v, want a nesting depth error", err)
	}
}

func TestSceneLoadableForms(t *testing.T) {
	text := "#scenes\n" +
		"\"root\"\n" +
		"    Plain\n" +
		"    WithTuple(1 2)\n" +
		"    WithArray[1 2]\n" +
		"    WithMap{a: 1}\n" +
		"    WithEnum::Variant(3)\n" +
		"    Generic<u32, (bool, f32)>{x: 1}\n"
	c, err := parseDoc(t, text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	root := c.Scenes().Layer("root")
	if len(root.Entries) != 6 {
		t.Fatalf("len(root.Entries)=%d, want 6", len(root.Entries))
	}
	if l := root.Loadable("Generic<u32, (bool, f32)>"); l == nil {
		t.Errorf("Loadable(Generic<u32, (bool, f32)>)=nil, want the generic loadable")
	}
	enum := root.Loadable("WithEnum")
	if enum == nil {
		t.Fatalf("Loadable(WithEnum)=nil, want the enum loadable")
	}
	if _, ok := enum.Payload.(*Enum); !ok {
		t.Errorf("WithEnum payload is %T, want *Enum", enum.Payload)
	}
	if got := c.String(); got != text {
		t.Errorf("written:\n%q\nwant the input back:\n%q", got, text)
	}
}
