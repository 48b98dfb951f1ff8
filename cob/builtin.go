// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"strings"

	"github.com/eaburns/cob/loc"
)

// A Color is an sRGBA color written in hex: #RRGGBB or #AARRGGBB.
// Channels are stored as floats in [0, 1].
type Color struct {
	Fill       Fill
	R, G, B, A float32
}

// NewColor returns an opaque color.
func NewColor(r, g, b float32) *Color { return &Color{R: r, G: g, B: b, A: 1} }

func parseColor(fill Fill, s loc.Span) (*Color, Fill, loc.Span, error) {
	frag := s.Fragment()
	if len(frag) == 0 || frag[0] != '#' {
		return nil, fill, s, nil
	}
	i := 1
	for i < len(frag) && isHexDigit(frag[i]) {
		i++
	}
	digits := frag[1:i]
	c := &Color{Fill: fill, A: 1}
	switch len(digits) {
	case 6:
		c.R = hexChannel(digits[0:2])
		c.G = hexChannel(digits[2:4])
		c.B = hexChannel(digits[4:6])
	case 8:
		// Alpha comes first in the 8-digit form.
		c.A = hexChannel(digits[0:2])
		c.R = hexChannel(digits[2:4])
		c.G = hexChannel(digits[4:6])
		c.B = hexChannel(digits[6:8])
	default:
		return nil, fill, s, newError(s, "hex color must have 6 or 8 digits, not %d", len(digits))
	}
	next, r, err := parseFill(s.Advance(i))
	if err != nil {
		return nil, fill, s, err
	}
	return c, next, r, nil
}

func hexChannel(s string) float32 {
	return float32(hexVal(s[0])<<4|hexVal(s[1])) / 255
}

func (c *Color) Clone() Value { d := *c; return &d }

// writeTo writes the color in uppercase hex,
// omitting the alpha pair when alpha is exactly 1.
// The written form also parses, so writing is idempotent
// even though a redundant FF alpha pair is dropped.
func (c *Color) writeTo(w *writer, space string) {
	c.Fill.writeToOrElse(w, space)
	if c.A == 1 {
		w.str(fmt.Sprintf("#%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B)))
	} else {
		w.str(fmt.Sprintf("#%02X%02X%02X%02X", channelByte(c.A), channelByte(c.R), channelByte(c.G), channelByte(c.B)))
	}
}

func channelByte(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

func (c *Color) recoverFill(other Value) {
	if o, ok := other.(*Color); ok {
		c.Fill.Recover(o.Fill)
	}
}

func (c *Color) resolve(*ConstantsResolver) (Value, error) { return c, nil }

func (c *Color) setFill(f Fill) { c.Fill = f }

func (*Color) isValue() {}

// A ValUnit is the unit of a UI dimension value.
type ValUnit int

const (
	// Auto lets the layout system pick the value.
	Auto ValUnit = iota
	// Px is logical pixels.
	Px
	// Percent is percent of the parent's size.
	Percent
	// Vw and Vh are percent of the window's width and height.
	Vw
	Vh
	// VMin and VMax are percent of the window's smaller and
	// larger dimension.
	VMin
	VMax
)

var valUnits = []struct {
	suffix string
	unit   ValUnit
}{
	// Longest suffixes first so vmin is not read as a number and junk.
	{"vmin", VMin},
	{"vmax", VMax},
	{"vw", Vw},
	{"vh", Vh},
	{"px", Px},
	{"%", Percent},
}

// A Val is a UI dimension: auto, or a number with a unit suffix
// such as 5px or 10.5%. The numeric literal is kept for round trips.
type Val struct {
	Fill Fill
	Unit ValUnit
	Num  float32
	// Text is the numeric literal as written; empty for Auto.
	Text string
}

// NewVal returns a Val with a canonical numeric literal.
func NewVal(unit ValUnit, num float32) *Val {
	if unit == Auto {
		return &Val{Unit: Auto}
	}
	return &Val{Unit: unit, Num: num, Text: float32Literal(num)}
}

func parseVal(fill Fill, s loc.Span) (*Val, Fill, loc.Span, error) {
	frag := s.Fragment()
	if keywordAt(frag, "auto") {
		next, r, err := parseFill(s.Advance(4))
		if err != nil {
			return nil, fill, s, err
		}
		return &Val{Fill: fill, Unit: Auto}, next, r, nil
	}
	lit, isFloat := scanNumber(frag)
	if lit == "" {
		return nil, fill, s, nil
	}
	rest := frag[len(lit):]
	for _, u := range valUnits {
		if u.suffix == "%" {
			if !strings.HasPrefix(rest, "%") {
				continue
			}
		} else if !keywordAt(rest, u.suffix) {
			continue
		}
		value, err := numberLit(lit, isFloat)
		if err != nil {
			return nil, fill, s, newError(s, "%v", err)
		}
		f32, ok := value.AsFloat32()
		if !ok {
			return nil, fill, s, newError(s, "%s%s does not fit in a 32-bit float", lit, u.suffix)
		}
		next, r, err := parseFill(s.Advance(len(lit) + len(u.suffix)))
		if err != nil {
			return nil, fill, s, err
		}
		return &Val{Fill: fill, Unit: u.unit, Num: f32, Text: lit}, next, r, nil
	}
	return nil, fill, s, nil
}

func (v *Val) Clone() Value { c := *v; return &c }

func (v *Val) writeTo(w *writer, space string) {
	v.Fill.writeToOrElse(w, space)
	if v.Unit == Auto {
		w.str("auto")
		return
	}
	w.str(v.Text)
	for _, u := range valUnits {
		if u.unit == v.Unit {
			w.str(u.suffix)
			return
		}
	}
}

func (v *Val) recoverFill(other Value) {
	if o, ok := other.(*Val); ok {
		v.Fill.Recover(o.Fill)
	}
}

func (v *Val) resolve(*ConstantsResolver) (Value, error) { return v, nil }

func (v *Val) setFill(f Fill) { v.Fill = f }

func (*Val) isValue() {}
