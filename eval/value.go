package eval

import (
	"strconv"
)

//go:generate stringer -type=ValueType -linecomment

type ValueType uint8

const (
	_      = ValueType(iota)
	NUMBER // num
	COLOR  // color
)

// Value is a runtime value. A Value is always exactly one of Number or
// Color.
type Value interface {
	Type() ValueType
	String() string
}

type Number float64

// Color is an opaque colour name. It is never validated or normalised:
// "red" and "Red" are different colours.
type Color string

func (v Number) Type() ValueType { return NUMBER }
func (v Color) Type() ValueType  { return COLOR }

func (v Number) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Color) String() string  { return string(v) }
