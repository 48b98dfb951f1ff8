// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"math"
	"testing"

	"github.com/eaburns/cob/loc"
)

func parseNumberString(t *testing.T, text string) (*Number, loc.Span, error) {
	t.Helper()
	src := loc.NewSource("test.cob", text)
	n, _, r, err := parseNumber(Fill{}, loc.NewSpan(src))
	return n, r, err
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text  string
		uint  *uint64
		int   *int64
		float *float64
	}{
		{text: "0", uint: u(0)},
		{text: "42", uint: u(42)},
		{text: "18446744073709551615", uint: u(math.MaxUint64)},
		{text: "-1", int: i(-1)},
		{text: "-9223372036854775808", int: i(math.MinInt64)},
		{text: "0x10", uint: u(16)},
		{text: "0xdeadBEEF", uint: u(0xdeadbeef)},
		{text: "-0x10", int: i(-16)},
		{text: "0b101", uint: u(5)},
		{text: "1.5", float: f(1.5)},
		{text: "-0.25", float: f(-0.25)},
		{text: "1e5", float: f(100000)},
		{text: "2.5e-3", float: f(0.0025)},
		{text: "1E2", float: f(100)},
		{text: "inf", float: f(math.Inf(1))},
		{text: "-inf", float: f(math.Inf(-1))},
	}
	for _, test := range tests {
		test := test
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()
			n, r, err := parseNumberString(t, test.text)
			if err != nil {
				t.Fatalf("parseNumber(%q) failed: %v", test.text, err)
			}
			if n == nil {
				t.Fatalf("parseNumber(%q) did not match", test.text)
			}
			if r.Len() != 0 {
				t.Fatalf("parseNumber(%q) left %q", test.text, r.Fragment())
			}
			if n.Text != test.text {
				t.Errorf("Text=%q, want the input preserved", n.Text)
			}
			switch {
			case test.uint != nil:
				if got, ok := n.Value.AsUint(); !ok || got != *test.uint {
					t.Errorf("AsUint()=%v,%v, want %v,true", got, ok, *test.uint)
				}
			case test.int != nil:
				if got, ok := n.Value.AsInt(); !ok || got != *test.int {
					t.Errorf("AsInt()=%v,%v, want %v,true", got, ok, *test.int)
				}
			case test.float != nil:
				if got, ok := n.Value.AsFloat64(); !ok || got != *test.float {
					t.Errorf("AsFloat64()=%v,%v, want %v,true", got, ok, *test.float)
				}
				if !n.Value.IsFloat() {
					t.Errorf("IsFloat()=false, want true")
				}
			}
		})
	}
}

func TestParseNumberNaN(t *testing.T) {
	n, _, err := parseNumberString(t, "nan")
	if err != nil || n == nil {
		t.Fatalf("parseNumber(nan)=%v,%v, wanted a match", n, err)
	}
	if got, ok := n.Value.AsFloat64(); !ok || !math.IsNaN(got) {
		t.Errorf("AsFloat64()=%v,%v, want NaN,true", got, ok)
	}
}

func TestParseNumberNoMatch(t *testing.T) {
	tests := []string{"abc", "-", "0xzz", "12abc", "nanx", "infinity"}
	for _, text := range tests {
		n, _, err := parseNumberString(t, text)
		if n != nil || err != nil {
			t.Errorf("parseNumber(%q)=%v,%v, want no match", text, n, err)
		}
	}
}

func TestParseNumberOutOfRange(t *testing.T) {
	tests := []string{"18446744073709551616", "-9223372036854775809"}
	for _, text := range tests {
		_, _, err := parseNumberString(t, text)
		if err == nil {
			t.Errorf("parseNumber(%q) succeeded, wanted out of range", text)
		}
	}
}

func TestExactConversions(t *testing.T) {
	if _, ok := Int64Value(-1).AsUint(); ok {
		t.Errorf("AsUint(-1) succeeded, want failure")
	}
	if _, ok := Uint64Value(math.MaxUint64).AsInt(); ok {
		t.Errorf("AsInt(MaxUint64) succeeded, want failure")
	}
	if got, ok := Uint64Value(7).AsInt(); !ok || got != 7 {
		t.Errorf("AsInt(7)=%v,%v, want 7,true", got, ok)
	}
	if got, ok := Float64Value(3).AsUint(); !ok || got != 3 {
		t.Errorf("AsUint(3.0)=%v,%v, want 3,true", got, ok)
	}
	if _, ok := Float64Value(3.5).AsUint(); ok {
		t.Errorf("AsUint(3.5) succeeded, want failure")
	}
	// 2^53+1 is the first integer a float64 cannot hold.
	if _, ok := Uint64Value(1<<53 + 1).AsFloat64(); ok {
		t.Errorf("AsFloat64(2^53+1) succeeded, want failure")
	}
	if _, ok := Float64Value(0.1).AsFloat32(); ok {
		t.Errorf("AsFloat32(0.1) succeeded, want failure")
	}
	if got, ok := Float64Value(0.5).AsFloat32(); !ok || got != 0.5 {
		t.Errorf("AsFloat32(0.5)=%v,%v, want 0.5,true", got, ok)
	}
}

func TestCanonicalLiterals(t *testing.T) {
	tests := []struct {
		n    *Number
		want string
	}{
		{n: NewUint(42), want: "42"},
		{n: NewInt(-7), want: "-7"},
		{n: NewFloat64(1), want: "1"},
		{n: NewFloat64(1.5), want: "1.5"},
		{n: NewFloat64(100000), want: "100000"},
		{n: NewFloat64(1e17), want: "1e+17"},
		{n: NewFloat64(math.NaN()), want: "nan"},
		{n: NewFloat64(math.Inf(1)), want: "inf"},
		{n: NewFloat64(math.Inf(-1)), want: "-inf"},
		{n: NewFloat32(2.5), want: "2.5"},
	}
	for _, test := range tests {
		if test.n.Text != test.want {
			t.Errorf("Text=%q, want %q", test.n.Text, test.want)
		}
	}
}

func u(v uint64) *uint64    { return &v }
func i(v int64) *int64      { return &v }
func f(v float64) *float64  { return &v }
