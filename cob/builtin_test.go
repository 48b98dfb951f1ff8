// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"
	"testing"

	"github.com/eaburns/cob/loc"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		text       string
		r, g, b, a float32
	}{
		{text: "#FF0000", r: 1, g: 0, b: 0, a: 1},
		{text: "#000000", r: 0, g: 0, b: 0, a: 1},
		{text: "#FFFFFF", r: 1, g: 1, b: 1, a: 1},
		// The first pair of an 8-digit color is alpha.
		{text: "#80FF0000", r: 1, g: 0, b: 0, a: 128.0 / 255},
		{text: "#00112233", r: 17.0 / 255, g: 34.0 / 255, b: 51.0 / 255, a: 0},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			src := loc.NewSource("test.cob", test.text)
			c, _, r, err := parseColor(Fill{}, loc.NewSpan(src))
			if err != nil {
				t.Fatalf("parseColor(%q) failed: %v", test.text, err)
			}
			if c == nil {
				t.Fatalf("parseColor(%q) did not match", test.text)
			}
			if r.Len() != 0 {
				t.Fatalf("parseColor(%q) left %q", test.text, r.Fragment())
			}
			if c.R != test.r || c.G != test.g || c.B != test.b || c.A != test.a {
				t.Errorf("got %v,%v,%v,%v want %v,%v,%v,%v",
					c.R, c.G, c.B, c.A, test.r, test.g, test.b, test.a)
			}
			if got := writeValue(c); got != test.text {
				t.Errorf("written %q, want the input back", got)
			}
		})
	}
}

func TestWriteColorDropsFullAlpha(t *testing.T) {
	src := loc.NewSource("test.cob", "#FFABCDEF")
	c, _, _, err := parseColor(Fill{}, loc.NewSpan(src))
	if err != nil || c == nil {
		t.Fatalf("parseColor failed: %v", err)
	}
	if got := writeValue(c); got != "#ABCDEF" {
		t.Errorf("written %q, want #ABCDEF", got)
	}
}

func TestParseColorErrors(t *testing.T) {
	tests := []string{"#FFF", "#12345", "#1234567", "#GGGGGG", "#"}
	for _, text := range tests {
		src := loc.NewSource("test.cob", text)
		_, _, _, err := parseColor(Fill{}, loc.NewSpan(src))
		if err == nil {
			t.Errorf("parseColor(%q) succeeded, wanted an error", text)
		}
	}
}

func TestParseVal(t *testing.T) {
	tests := []struct {
		text string
		unit ValUnit
		num  float32
	}{
		{text: "auto", unit: Auto},
		{text: "5px", unit: Px, num: 5},
		{text: "-2px", unit: Px, num: -2},
		{text: "10.5%", unit: Percent, num: 10.5},
		{text: "3vw", unit: Vw, num: 3},
		{text: "4vh", unit: Vh, num: 4},
		{text: "1vmin", unit: VMin, num: 1},
		{text: "2vmax", unit: VMax, num: 2},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			src := loc.NewSource("test.cob", test.text)
			v, _, r, err := parseVal(Fill{}, loc.NewSpan(src))
			if err != nil {
				t.Fatalf("parseVal(%q) failed: %v", test.text, err)
			}
			if v == nil {
				t.Fatalf("parseVal(%q) did not match", test.text)
			}
			if r.Len() != 0 {
				t.Fatalf("parseVal(%q) left %q", test.text, r.Fragment())
			}
			if v.Unit != test.unit || v.Num != test.num {
				t.Errorf("got unit %v num %v, want unit %v num %v",
					v.Unit, v.Num, test.unit, test.num)
			}
			if got := writeValue(v); got != test.text {
				t.Errorf("written %q, want the input back", got)
			}
		})
	}
}

func TestParseValNoMatch(t *testing.T) {
	// A bare number or unknown suffix is not a dimension value.
	tests := []string{"5", "5q", "px", "autos"}
	for _, text := range tests {
		src := loc.NewSource("test.cob", text)
		v, _, _, err := parseVal(Fill{}, loc.NewSpan(src))
		if v != nil || err != nil {
			t.Errorf("parseVal(%q)=%v,%v, want no match", text, v, err)
		}
	}
}

func writeValue(v Value) string {
	var b strings.Builder
	w := &writer{w: &b}
	v.writeTo(w, "")
	return b.String()
}
