package asm

import (
	"fmt"
	"strconv"
)

// Immediate is an instruction's immediate constant: either a literal value
// held in a fixed-width field or a symbolic reference to be resolved later.
//
// Literal values are truncated to the field width at construction time and
// read back sign-extended, so the stored value always matches what the
// hardware field can represent.
type Immediate struct {
	symbol   string
	bits     uint64
	width    int
	hasValue bool
}

// NewImmediate builds a literal immediate of the given field width.
func NewImmediate(width int, value int64) Immediate {
	mask := uint64(1)<<uint(width) - 1
	return Immediate{
		bits:     uint64(value) & mask,
		width:    width,
		hasValue: true,
	}
}

// NewSymbolicImmediate builds an immediate referring to a symbol.
func NewSymbolicImmediate(width int, symbol string) (Immediate, error) {
	if symbol == "" {
		return Immediate{}, fmt.Errorf("immediate must be symbolic or have a value")
	}
	return Immediate{symbol: symbol, width: width}, nil
}

// Width returns the size in bits of the containing immediate field.
func (im Immediate) Width() int { return im.width }

// Symbolic reports whether the immediate is an unresolved symbol.
func (im Immediate) Symbolic() bool { return !im.hasValue }

// Symbol returns the symbolic identifier, empty for literal immediates.
func (im Immediate) Symbol() string { return im.symbol }

// Int returns the literal value, sign-extended from the field width.
func (im Immediate) Int() int64 {
	signBit := uint64(1) << uint(im.width-1)
	if im.bits&signBit != 0 {
		// Negative in two's complement at this width.
		return int64(im.bits) - int64(1)<<uint(im.width)
	}
	return int64(im.bits)
}

func (im Immediate) String() string {
	if im.Symbolic() {
		return im.symbol
	}
	return strconv.FormatInt(im.Int(), 10)
}
