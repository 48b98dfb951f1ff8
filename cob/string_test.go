// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"strings"
	"testing"

	"github.com/eaburns/cob/loc"
)

func parseStringLit(t *testing.T, text string) (*String, loc.Span, error) {
	t.Helper()
	src := loc.NewSource("test.cob", text)
	str, _, r, err := parseString(Fill{}, loc.NewSpan(src))
	return str, r, err
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: `""`, want: ""},
		{name: "plain", text: `"hello"`, want: "hello"},
		{name: "unicode text", text: `"héllo✓"`, want: "héllo✓"},
		{name: "escapes", text: `"a\nb\tc\\d\"e\rf\bg\fh"`, want: "a\nb\tc\\d\"e\rf\bg\fh"},
		{name: "unicode escape", text: `"\u{df}"`, want: "ß"},
		{name: "long unicode escape", text: `"\u{1F600}"`, want: "\U0001F600"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			str, r, err := parseStringLit(t, test.text)
			if err != nil {
				t.Fatalf("parseString(%q) failed: %v", test.text, err)
			}
			if str == nil {
				t.Fatalf("parseString(%q) did not match", test.text)
			}
			if r.Len() != 0 {
				t.Fatalf("parseString(%q) left %q", test.text, r.Fragment())
			}
			if got := str.AsString(); got != test.want {
				t.Errorf("AsString()=%q, want %q", got, test.want)
			}
			if got := writeString(str); got != test.text {
				t.Errorf("written %q, want the input back", got)
			}
		})
	}
}

func TestParseStringSegments(t *testing.T) {
	text := "\"one \\\n   two \\\nthree\""
	str, _, err := parseStringLit(t, text)
	if err != nil {
		t.Fatalf("parseString failed: %v", err)
	}
	if len(str.Segments) != 3 {
		t.Fatalf("len(Segments)=%d, want 3", len(str.Segments))
	}
	if str.Segments[1].LeadingSpaces != 3 {
		t.Errorf("Segments[1].LeadingSpaces=%d, want 3", str.Segments[1].LeadingSpaces)
	}
	if str.Segments[2].LeadingSpaces != 0 {
		t.Errorf("Segments[2].LeadingSpaces=%d, want 0", str.Segments[2].LeadingSpaces)
	}
	if got := str.AsString(); got != "one two three" {
		t.Errorf("AsString()=%q, want %q", got, "one two three")
	}
	if got := writeString(str); got != text {
		t.Errorf("written %q, want the input back", got)
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  string
	}{
		{name: "unterminated", text: `"abc`, err: "unterminated string"},
		{name: "unescaped newline", text: "\"a\nb\"", err: "unescaped newline"},
		{name: "bad escape", text: `"\q"`, err: "invalid escape"},
		{name: "empty unicode escape", text: `"\u{}"`, err: "invalid unicode escape"},
		{name: "unclosed unicode escape", text: `"\u{41"`, err: "invalid unicode escape"},
		{name: "surrogate", text: `"\u{d800}"`, err: "invalid unicode escape"},
		{name: "trailing backslash", text: `"a\`, err: "unterminated escape"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseStringLit(t, test.text)
			if err == nil {
				t.Fatalf("parseString(%q) succeeded, wanted %s", test.text, test.err)
			}
			if !strings.Contains(err.Error(), test.err) {
				t.Errorf("err=%v, want %s", err, test.err)
			}
		})
	}
}

func TestNewStringEscapes(t *testing.T) {
	tests := []struct {
		content string
		raw     string
	}{
		{content: "hello", raw: "hello"},
		{content: "a\"b", raw: `a\"b`},
		{content: "a\nb", raw: `a\nb`},
		{content: "ß", raw: `\u{df}`},
		{content: "\x01", raw: `\u{1}`},
	}
	for _, test := range tests {
		s := NewString(test.content)
		if s.Segments[0].Raw != test.raw {
			t.Errorf("NewString(%q).Raw=%q, want %q", test.content, s.Segments[0].Raw, test.raw)
		}
		if got := s.AsString(); got != test.content {
			t.Errorf("AsString()=%q, want %q", got, test.content)
		}
	}
}

func writeString(s *String) string {
	var b strings.Builder
	w := &writer{w: &b}
	s.writeTo(w, "")
	return b.String()
}
