// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eaburns/cob/loc"
)

type numberKind int

const (
	uintNumber numberKind = iota
	intNumber
	float64Number
	float32Number
)

// A NumberValue is the parsed value of a numeric literal:
// an unsigned integer, a negative integer, or a float.
// Conversions succeed only when they are exact.
type NumberValue struct {
	kind numberKind
	u    uint64
	i    int64
	f    float64
}

func Uint64Value(u uint64) NumberValue { return NumberValue{kind: uintNumber, u: u} }

func Int64Value(i int64) NumberValue {
	if i >= 0 {
		return NumberValue{kind: uintNumber, u: uint64(i)}
	}
	return NumberValue{kind: intNumber, i: i}
}

func Float64Value(f float64) NumberValue { return NumberValue{kind: float64Number, f: f} }

func Float32Value(f float32) NumberValue {
	return NumberValue{kind: float32Number, f: float64(f)}
}

// AsUint returns the value as a uint64 if the conversion is exact.
func (n NumberValue) AsUint() (uint64, bool) {
	switch n.kind {
	case uintNumber:
		return n.u, true
	case intNumber:
		return 0, false
	default:
		f := n.f
		if f < 0 || f != math.Trunc(f) || f >= 1<<63*2.0 {
			return 0, false
		}
		return uint64(f), true
	}
}

// AsInt returns the value as an int64 if the conversion is exact.
func (n NumberValue) AsInt() (int64, bool) {
	switch n.kind {
	case uintNumber:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	case intNumber:
		return n.i, true
	default:
		f := n.f
		if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
			return 0, false
		}
		return int64(f), true
	}
}

// AsFloat64 returns the value as a float64 if the conversion is exact.
func (n NumberValue) AsFloat64() (float64, bool) {
	switch n.kind {
	case uintNumber:
		f := float64(n.u)
		if f >= 1<<63*2.0 || uint64(f) != n.u {
			return 0, false
		}
		return f, true
	case intNumber:
		f := float64(n.i)
		if int64(f) != n.i {
			return 0, false
		}
		return f, true
	default:
		return n.f, true
	}
}

// AsFloat32 returns the value as a float32 if the conversion is exact.
func (n NumberValue) AsFloat32() (float32, bool) {
	if n.kind == float32Number {
		return float32(n.f), true
	}
	f, ok := n.AsFloat64()
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) {
		return float32(f), true
	}
	f32 := float32(f)
	if float64(f32) != f {
		return 0, false
	}
	return f32, true
}

// IsFloat reports whether the value came from a float literal.
func (n NumberValue) IsFloat() bool {
	return n.kind == float64Number || n.kind == float32Number
}

// A Number is a numeric literal. The original literal text is kept
// and written back verbatim; numbers built programmatically get a
// canonical literal from their constructor.
type Number struct {
	Fill  Fill
	Text  string
	Value NumberValue
}

func NewUint(u uint64) *Number {
	return &Number{Text: uintLiteral(u), Value: Uint64Value(u)}
}

func NewInt(i int64) *Number {
	return &Number{Text: intLiteral(i), Value: Int64Value(i)}
}

// NewFloat64 returns a float Number with a canonical literal:
// integral values below 1e16 in magnitude are written in integer
// form, and non-finite values as nan, inf, or -inf.
func NewFloat64(f float64) *Number {
	return &Number{Text: floatLiteral(f), Value: Float64Value(f)}
}

func NewFloat32(f float32) *Number {
	return &Number{Text: float32Literal(f), Value: Float32Value(f)}
}

// scanNumber returns the numeric literal at the head of frag
// and whether it is a float, or "" when there is none.
func scanNumber(frag string) (lit string, isFloat bool) {
	switch {
	case keywordAt(frag, "nan"):
		return "nan", true
	case keywordAt(frag, "inf"):
		return "inf", true
	case keywordAt(frag, "-inf"):
		return "-inf", true
	}
	i := 0
	if i < len(frag) && frag[i] == '-' {
		i++
	}
	if strings.HasPrefix(frag[i:], "0x") || strings.HasPrefix(frag[i:], "0b") {
		hex := frag[i+1] == 'x'
		j := i + 2
		for j < len(frag) && (isDigit(frag[j]) ||
			hex && ('a' <= frag[j] && frag[j] <= 'f' || 'A' <= frag[j] && frag[j] <= 'F')) {
			j++
		}
		if j == i+2 {
			return "", false
		}
		return frag[:j], false
	}
	start := i
	for i < len(frag) && isDigit(frag[i]) {
		i++
	}
	if i == start {
		return "", false
	}
	if i < len(frag) && frag[i] == '.' {
		j := i + 1
		for j < len(frag) && isDigit(frag[j]) {
			j++
		}
		if j > i+1 {
			i, isFloat = j, true
		}
	}
	if i < len(frag) && (frag[i] == 'e' || frag[i] == 'E') {
		j := i + 1
		if j < len(frag) && (frag[j] == '+' || frag[j] == '-') {
			j++
		}
		k := j
		for k < len(frag) && isDigit(frag[k]) {
			k++
		}
		if k > j {
			i, isFloat = k, true
		}
	}
	return frag[:i], isFloat
}

// numberLit converts a scanned literal to its value.
func numberLit(lit string, isFloat bool) (NumberValue, error) {
	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return NumberValue{}, fmt.Errorf("invalid number %s", lit)
		}
		return Float64Value(f), nil
	}
	neg := strings.HasPrefix(lit, "-")
	digits := strings.TrimPrefix(lit, "-")
	base := 10
	if strings.HasPrefix(digits, "0x") {
		base, digits = 16, digits[2:]
	} else if strings.HasPrefix(digits, "0b") {
		base, digits = 2, digits[2:]
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil || neg && u > 1<<63 {
		return NumberValue{}, fmt.Errorf("number %s out of range", lit)
	}
	if neg {
		return Int64Value(-int64(u)), nil
	}
	return Uint64Value(u), nil
}

func parseNumber(fill Fill, s loc.Span) (*Number, Fill, loc.Span, error) {
	frag := s.Fragment()
	lit, isFloat := scanNumber(frag)
	if lit == "" || len(lit) < len(frag) && isIdentByte(frag[len(lit)]) {
		return nil, fill, s, nil
	}
	value, err := numberLit(lit, isFloat)
	if err != nil {
		return nil, fill, s, newError(s, "%v", err)
	}
	next, r, err := parseFill(s.Advance(len(lit)))
	if err != nil {
		return nil, fill, s, err
	}
	return &Number{Fill: fill, Text: lit, Value: value}, next, r, nil
}

func (n *Number) Clone() Value { c := *n; return &c }

func (n *Number) writeTo(w *writer, space string) {
	n.Fill.writeToOrElse(w, space)
	w.str(n.Text)
}

func (n *Number) recoverFill(other Value) {
	if o, ok := other.(*Number); ok {
		n.Fill.Recover(o.Fill)
	}
}

func (n *Number) resolve(*ConstantsResolver) (Value, error) { return n, nil }

func (n *Number) setFill(f Fill) { n.Fill = f }

func (*Number) isValue() {}
