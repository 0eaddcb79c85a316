// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"errors"
	"strconv"
)

// ErrInvalidArgument is matched by every construction error returned by
// this package.
var ErrInvalidArgument = errors.New("geom: invalid argument")

// Violation identifies the precondition a constructor argument broke.
type Violation uint8

const (
	// NegativeX rejects an x coordinate below 0 or NaN.
	NegativeX Violation = iota + 1
	// NegativeY rejects a y coordinate below 0 or NaN.
	NegativeY
	// WidthNotPositive rejects an upper right corner not right of the
	// lower left corner.
	WidthNotPositive
	// HeightNotPositive rejects an upper right corner not above the lower
	// left corner.
	HeightNotPositive
	// InfiniteX rejects an infinite x coordinate.
	InfiniteX
	// InfiniteY rejects an infinite y coordinate.
	InfiniteY
)

// ArgumentError describes a rejected Point or Rectangle construction.
type ArgumentError struct {
	Kind Violation
	// Value is the offending coordinate for NegativeX and NegativeY, and
	// the computed width or height otherwise.
	Value float64
}

func (e *ArgumentError) Error() string {
	return e.Kind.String()
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (v Violation) String() string {
	switch v {
	case NegativeX:
		return "x must be greater than or equal to 0"
	case NegativeY:
		return "y must be greater than or equal to 0"
	case WidthNotPositive:
		return "upperRight.x must be greater than lowerLeft.x"
	case HeightNotPositive:
		return "upperRight.y must be greater than lowerLeft.y"
	case InfiniteX:
		return "x must be finite"
	case InfiniteY:
		return "y must be finite"
	default:
		return "invalid violation " + strconv.Itoa(int(v))
	}
}
