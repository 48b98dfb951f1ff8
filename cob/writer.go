// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"io"
	"math"
	"strconv"
)

// writer wraps an io.Writer with a sticky error
// so write methods can be chained without checking each one.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) str(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// uintLiteral returns the canonical literal for a programmatically
// built unsigned integer.
func uintLiteral(u uint64) string { return strconv.FormatUint(u, 10) }

// intLiteral returns the canonical literal for a programmatically
// built signed integer.
func intLiteral(i int64) string { return strconv.FormatInt(i, 10) }

// floatLiteral returns the canonical literal for a programmatically
// built float. Floats that are integral, below 1e16 in magnitude,
// and exact as integers are written in integer form.
// Non-finite values are written as nan, inf, and -inf.
func floatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e16:
		return strconv.FormatInt(int64(f), 10)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func float32Literal(f float32) string {
	f64 := float64(f)
	switch {
	case math.IsNaN(f64):
		return "nan"
	case math.IsInf(f64, 1):
		return "inf"
	case math.IsInf(f64, -1):
		return "-inf"
	case f64 == math.Trunc(f64) && math.Abs(f64) < 1e16:
		return strconv.FormatInt(int64(f64), 10)
	default:
		return strconv.FormatFloat(f64, 'g', -1, 32)
	}
}
