// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		text string
		want interface{}
	}{
		{text: "none", want: nil},
		{text: "true", want: true},
		{text: "42", want: 42.0},
		{text: "-1.5", want: -1.5},
		{text: `"hi"`, want: "hi"},
		{text: "#FF0000", want: "#FF0000"},
		{text: "#80FF0000", want: "#80FF0000"},
		{text: "5px", want: "5px"},
		{text: "auto", want: "auto"},
		{text: "[1 2]", want: []interface{}{1.0, 2.0}},
		{text: "(1 true)", want: []interface{}{1.0, true}},
		{text: "{a: 1}", want: map[string]interface{}{"a": 1.0}},
		{text: `{"k": 1}`, want: map[string]interface{}{"k": 1.0}},
		{text: "Red", want: "Red"},
		// A single-entry tuple payload unwraps.
		{text: "Size(5px)", want: map[string]interface{}{"Size": "5px"}},
		{text: "Pair(1 2)", want: map[string]interface{}{"Pair": []interface{}{1.0, 2.0}}},
		{text: "Opts{a: 1}", want: map[string]interface{}{"Opts": map[string]interface{}{"a": 1.0}}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			v, _, err := parseValueString(t, test.text)
			if err != nil || v == nil {
				t.Fatalf("parseValue(%q)=%v,%v", test.text, v, err)
			}
			got, err := ToJSON(v)
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ToJSON(%q) mismatch (-want +got):\n%s", test.text, diff)
			}
		})
	}
}

func TestToJSONErrors(t *testing.T) {
	for _, text := range []string{"$ref", "[1 $ref]", "nan", "inf"} {
		v, _, err := parseValueString(t, text)
		if err != nil || v == nil {
			t.Fatalf("parseValue(%q)=%v,%v", text, v, err)
		}
		if _, err := ToJSON(v); err == nil {
			t.Errorf("ToJSON(%q) succeeded, wanted an error", text)
		}
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		j    interface{}
		want string
	}{
		{name: "null", j: nil, want: "none"},
		{name: "bool", j: true, want: "true"},
		{name: "integral float", j: 42.0, want: "42"},
		{name: "negative integral", j: -3.0, want: "-3"},
		{name: "fraction", j: 1.5, want: "1.5"},
		{name: "string", j: "hi", want: `"hi"`},
		{name: "array", j: []interface{}{1.0, true}, want: "[1 true]"},
		{name: "object", j: map[string]interface{}{"a": 1.0}, want: "{a: 1}"},
		{
			name: "non-identifier key",
			j:    map[string]interface{}{"Not Snake": 1.0},
			want: `{"Not Snake": 1}`,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			v, err := FromJSON(test.j)
			if err != nil {
				t.Fatalf("FromJSON failed: %v", err)
			}
			if got := writeValue(v); got != test.want {
				t.Errorf("FromJSON=%q, want %q", got, test.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	// Plain data survives a trip through the JSON tree, though
	// formatting and special literal forms do not.
	texts := []string{"[1 2 3]", "{a: [true false]}", `"hi"`}
	for _, text := range texts {
		v, _, err := parseValueString(t, text)
		if err != nil || v == nil {
			t.Fatalf("parseValue(%q)=%v,%v", text, v, err)
		}
		j, err := ToJSON(v)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		back, err := FromJSON(j)
		if err != nil {
			t.Fatalf("FromJSON failed: %v", err)
		}
		if got := writeValue(back); got != text {
			t.Errorf("round trip of %q gave %q", text, got)
		}
	}
}
