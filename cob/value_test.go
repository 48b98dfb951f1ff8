// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"strings"
	"testing"

	"github.com/eaburns/cob/loc"
)

func parseValueString(t *testing.T, text string) (Value, loc.Span, error) {
	t.Helper()
	src := loc.NewSource("test.cob", text)
	p := &parser{}
	v, _, r, err := parseValue(p, Fill{}, loc.NewSpan(src))
	return v, r, err
}

func TestParseValueKinds(t *testing.T) {
	tests := []struct {
		text string
		want interface{}
	}{
		{text: "true", want: &Bool{}},
		{text: "false", want: &Bool{}},
		{text: "none", want: &None{}},
		{text: "42", want: &Number{}},
		{text: "-1.5", want: &Number{}},
		{text: `"hi"`, want: &String{}},
		{text: "#FFAA00", want: &Color{}},
		{text: "5px", want: &Val{}},
		{text: "auto", want: &Val{}},
		{text: "[1 2 3]", want: &Array{}},
		{text: "(1 2)", want: &Tuple{}},
		{text: "{a: 1}", want: &Map{}},
		{text: "Red", want: &Enum{}},
		{text: "Size(5px auto)", want: &Enum{}},
		{text: "$my_const", want: &ConstantRef{}},
		{text: "$path::to::const", want: &ConstantRef{}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			v, r, err := parseValueString(t, test.text)
			if err != nil {
				t.Fatalf("parseValue(%q) failed: %v", test.text, err)
			}
			if v == nil {
				t.Fatalf("parseValue(%q) did not match", test.text)
			}
			if r.Len() != 0 {
				t.Fatalf("parseValue(%q) left %q", test.text, r.Fragment())
			}
			if fmt.Sprintf("%T", v) != fmt.Sprintf("%T", test.want) {
				t.Errorf("got a %T, want a %T", v, test.want)
			}
			if got := writeValue(v); got != test.text {
				t.Errorf("written %q, want the input back", got)
			}
		})
	}
}

func TestParseValueRoundTrip(t *testing.T) {
	// Inputs with fill in awkward places must write back byte for byte.
	tests := []string{
		"[1 2 3]",
		"[ 1  2  3 ]",
		"[1, 2, 3]",
		"[/*a*/1 /*b*/2/*c*/ ]",
		"( 1 \"two\" [3] )",
		"{a: 1 b: {c: 2}}",
		"{ a : 1 }",
		"{\"key\": 1 2: 3}",
		"Size( 5px , auto )",
		"Outer(Inner(1) [2 3])",
		"[none true false]",
	}
	for _, text := range tests {
		text := text
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			v, r, err := parseValueString(t, text)
			if err != nil {
				t.Fatalf("parseValue(%q) failed: %v", text, err)
			}
			if v == nil || r.Len() != 0 {
				t.Fatalf("parseValue(%q) did not consume the input", text)
			}
			if got := writeValue(v); got != text {
				t.Errorf("written %q, want the input back", got)
			}
			c := v.Clone()
			if got := writeValue(c); got != text {
				t.Errorf("clone written %q, want the input back", got)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		text string
		err  string
	}{
		{text: "[1 2", err: "expected ] to close array"},
		{text: "(1", err: "expected ) to close tuple"},
		{text: "{a: 1", err: "expected } to close map"},
		{text: "{a:}", err: "expected value after :"},
		{text: "[1[2]]", err: "not separated"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseValueString(t, test.text)
			if err == nil {
				t.Fatalf("parseValue(%q) succeeded, wanted %s", test.text, test.err)
			}
			if !strings.Contains(err.Error(), test.err) {
				t.Errorf("err=%v, want %s", err, test.err)
			}
		})
	}
}

func TestKeywordPrefixIdents(t *testing.T) {
	// Identifiers beginning with value keywords are not keywords.
	v, _, err := parseValueString(t, "$none_border")
	if err != nil || v == nil {
		t.Fatalf("parseValue($none_border)=%v,%v, wanted a constant reference", v, err)
	}
	ref, ok := v.(*ConstantRef)
	if !ok || ref.Path != "none_border" {
		t.Errorf("got %v, want $none_border", v)
	}
}

func TestRecursionGuard(t *testing.T) {
	for _, depth := range []int{maxRecursion + 1, 10 * maxRecursion} {
		deep := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		_, _, err := parseValueString(t, deep)
		if err == nil {
			t.Fatalf("parseValue of depth %d succeeded, wanted an error", depth)
		}
		if !strings.Contains(err.Error(), "nesting") {
			t.Errorf("depth %d: err=%v, want a nesting depth error", depth, err)
		}
	}
	// One level under the limit parses fine.
	ok := strings.Repeat("[", maxRecursion-1) + strings.Repeat("]", maxRecursion-1)
	if _, _, err := parseValueString(t, ok); err != nil {
		t.Errorf("parseValue just under the limit failed: %v", err)
	}
}
