// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"fmt"
	"log"

	"github.com/eaburns/cob/loc"
)

// An Error is a parse or resolution failure at a source location.
type Error struct {
	Loc loc.Loc
	Msg string
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.Msg
}

func newError(s loc.Span, f string, vs ...interface{}) *Error {
	return &Error{Loc: s.Loc(), Msg: fmt.Sprintf(f, vs...)}
}

// Warnf is called with lenient conditions that do not stop parsing
// or resolution, such as discarded characters and misaligned scene
// entries. It defaults to log.Printf.
var Warnf func(f string, vs ...interface{}) = log.Printf
