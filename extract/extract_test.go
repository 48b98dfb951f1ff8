// Copyright © 2026 The Cob Authors under an MIT-style license.

package extract

import (
	"strings"
	"testing"

	"github.com/eaburns/cob/cob"
	"github.com/eaburns/cob/loc"
	"github.com/google/go-cmp/cmp"
)

type button struct {
	Text     string
	Width    *float32
	Disabled bool
}

type margin struct {
	Top    float32
	Bottom float32
}

type flags struct {
	Bits []uint8
}

func parseValue(t *testing.T, text string) cob.Value {
	t.Helper()
	// A value is parsed by wrapping it in a throwaway command payload.
	src := loc.NewSource("test.cob", "#commands\nX("+text+")\n")
	c, err := cob.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tuple := c.Commands().Entries[0].Payload.(*cob.Tuple)
	return tuple.Entries[0]
}

func TestUnmarshalStruct(t *testing.T) {
	v := parseValue(t, `{text: "go" width: 5 disabled: true}`)
	var b button
	if err := Unmarshal(v, &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if b.Text != "go" || b.Width == nil || *b.Width != 5 || !b.Disabled {
		t.Errorf("got %+v, want text go, width 5, disabled", b)
	}
}

func TestUnmarshalNonePointer(t *testing.T) {
	v := parseValue(t, `{text: "go" width: none}`)
	var b button
	b.Width = new(float32)
	if err := Unmarshal(v, &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if b.Width != nil {
		t.Errorf("Width=%v, want nil for none", *b.Width)
	}
}

func TestUnmarshalExactNumbers(t *testing.T) {
	var u uint8
	if err := Unmarshal(parseValue(t, "255"), &u); err != nil || u != 255 {
		t.Errorf("Unmarshal(255)=%v,%v, want 255", u, err)
	}
	if err := Unmarshal(parseValue(t, "256"), &u); err == nil {
		t.Errorf("Unmarshal(256) into a uint8 succeeded, wanted an error")
	}
	var f32 float32
	if err := Unmarshal(parseValue(t, "0.1"), &f32); err == nil {
		t.Errorf("Unmarshal(0.1) into a float32 succeeded, wanted an error")
	}
	var f64 float64
	if err := Unmarshal(parseValue(t, "0.1"), &f64); err != nil || f64 != 0.1 {
		t.Errorf("Unmarshal(0.1)=%v,%v, want 0.1", f64, err)
	}
	var i int
	if err := Unmarshal(parseValue(t, "-7"), &i); err != nil || i != -7 {
		t.Errorf("Unmarshal(-7)=%v,%v, want -7", i, err)
	}
}

func TestUnmarshalCollections(t *testing.T) {
	var s []uint32
	if err := Unmarshal(parseValue(t, "[1 2 3]"), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff([]uint32{1, 2, 3}, s); diff != "" {
		t.Errorf("slice mismatch (-want +got):\n%s", diff)
	}
	var a [2]bool
	if err := Unmarshal(parseValue(t, "[true false]"), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !a[0] || a[1] {
		t.Errorf("array=%v, want [true false]", a)
	}
	if err := Unmarshal(parseValue(t, "[true]"), &a); err == nil {
		t.Errorf("Unmarshal of 1 entry into [2]bool succeeded, wanted an error")
	}
	var m map[string]uint
	if err := Unmarshal(parseValue(t, "{a: 1 b: 2}"), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(map[string]uint{"a": 1, "b": 2}, m); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalTupleStruct(t *testing.T) {
	var m margin
	if err := Unmarshal(parseValue(t, "(1 2)"), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if m.Top != 1 || m.Bottom != 2 {
		t.Errorf("got %+v, want top 1 bottom 2", m)
	}
}

func TestUnmarshalSnakeNames(t *testing.T) {
	var s struct{ MaxWidth uint }
	if err := Unmarshal(parseValue(t, "{max_width: 9}"), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.MaxWidth != 9 {
		t.Errorf("MaxWidth=%d, want 9", s.MaxWidth)
	}
	if err := Unmarshal(parseValue(t, "{nope: 1}"), &s); err == nil ||
		!strings.Contains(err.Error(), "no field") {
		t.Errorf("err=%v, want a no-field error", err)
	}
}

func TestUnmarshalUnitEnum(t *testing.T) {
	var s string
	if err := Unmarshal(parseValue(t, "Red"), &s); err != nil || s != "Red" {
		t.Errorf("Unmarshal(Red)=%q,%v, want Red", s, err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	w := float32(5)
	in := button{Text: "go", Width: &w, Disabled: true}
	v, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out button
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalNilPointer(t *testing.T) {
	v, err := Marshal(button{Text: "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	m := v.(*cob.Map)
	if len(m.Entries) != 3 {
		t.Fatalf("len(Entries)=%d, want 3", len(m.Entries))
	}
	if _, ok := m.Entries[1].KeyValue.Value.(*cob.None); !ok {
		t.Errorf("width entry is %T, want *cob.None", m.Entries[1].KeyValue.Value)
	}
}

func TestRegistry(t *testing.T) {
	var reg Registry
	reg.Register("Button", button{})
	reg.RegisterTuple("Margin", margin{})

	src := loc.NewSource("test.cob", "#scenes\n\"s\"\n    Button{text: \"go\"}\n    Margin(1 2)\n")
	c, err := cob.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s := c.Scenes().Layer("s")

	x, err := reg.Extract(s.Loadable("Button"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	b, ok := x.(*button)
	if !ok || b.Text != "go" {
		t.Errorf("Extract gave %#v, want a *button with text go", x)
	}

	y, err := reg.Extract(s.Loadable("Margin"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	mg, ok := y.(*margin)
	if !ok || mg.Top != 1 || mg.Bottom != 2 {
		t.Errorf("Extract gave %#v, want a *margin 1,2", y)
	}

	if _, err := reg.Extract(cob.NewLoadable("Nope", nil)); err == nil {
		t.Errorf("Extract of an unregistered loadable succeeded, wanted an error")
	}
}

func TestRegistryApply(t *testing.T) {
	var reg Registry
	reg.Register("Button", button{})
	l := cob.NewLoadable("Button", cob.NewMap(
		cob.KeyValueEntry(cob.FieldKey("text"), cob.NewString("hi")),
	))
	var b button
	if err := reg.Apply(l, &b); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if b.Text != "hi" {
		t.Errorf("Text=%q, want hi", b.Text)
	}
	var m margin
	if err := reg.Apply(l, &m); err == nil {
		t.Errorf("Apply to the wrong type succeeded, wanted an error")
	}
}

func TestRegistryMake(t *testing.T) {
	var reg Registry
	reg.Register("Button", button{})
	reg.RegisterTuple("Margin", margin{})
	reg.Register("Flags", flags{})

	l, err := reg.Make(button{Text: "go"})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if got := loadableString(l); got != `Button{text: "go" width: none disabled: false}` {
		t.Errorf("Make gave %q", got)
	}

	l, err = reg.Make(margin{Top: 1, Bottom: 2})
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if got := loadableString(l); got != "Margin(1 2)" {
		t.Errorf("Make gave %q, want Margin(1 2)", got)
	}

	if _, err := reg.Make("not registered"); err == nil {
		t.Errorf("Make of an unregistered type succeeded, wanted an error")
	}
}

// loadableString renders a loadable by writing it as the only
// command of a document.
func loadableString(l *cob.Loadable) string {
	c := &cob.Cob{Sections: []cob.Section{
		&cob.Commands{Entries: []*cob.Loadable{l}},
	}}
	return strings.TrimPrefix(c.String(), "#commands\n")
}
