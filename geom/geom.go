// SPDX-License-Identifier: Unlicense OR MIT

/*
Package geom implements float64 axis-aligned rectangles and the
relationships between pairs of them: overlap, boundary intersection,
containment and adjacency.

The coordinate space has the origin in the lower left corner with the
axes extending right and up. Coordinates are never negative.

Points and Rectangles are immutable values and every function in the
package is a pure function of its arguments, so all of them are safe
for concurrent use by multiple goroutines without further
synchronization.

Comparisons are exact; no tolerance is applied to coordinates.
*/
package geom

import (
	"math"
	"strconv"
)

// A Point is a two dimensional point with non-negative coordinates.
// The zero Point is the origin.
type Point struct {
	x, y float64
}

// A Rectangle is the region between its lower left and upper right
// corners. Valid Rectangles have strictly positive width and height and
// are only produced by the constructors in this package; the zero
// Rectangle is not valid.
type Rectangle struct {
	min, max Point
}

// NewPoint returns the point (x, y), or an error if either coordinate
// is negative, NaN or infinite.
func NewPoint(x, y float64) (Point, error) {
	// Written as !(v >= 0) to reject NaN as well.
	if !(x >= 0) {
		return Point{}, &ArgumentError{Kind: NegativeX, Value: x}
	}
	if math.IsInf(x, 1) {
		return Point{}, &ArgumentError{Kind: InfiniteX, Value: x}
	}
	if !(y >= 0) {
		return Point{}, &ArgumentError{Kind: NegativeY, Value: y}
	}
	if math.IsInf(y, 1) {
		return Point{}, &ArgumentError{Kind: InfiniteY, Value: y}
	}
	return Point{x: x, y: y}, nil
}

// MustPoint is like NewPoint but panics on invalid coordinates.
func MustPoint(x, y float64) Point {
	p, err := NewPoint(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// X returns the horizontal coordinate of p.
func (p Point) X() float64 { return p.x }

// Y returns the vertical coordinate of p.
func (p Point) Y() float64 { return p.y }

func (p Point) String() string {
	return "(" + formatFloat(p.x) + "," + formatFloat(p.y) + ")"
}

// NewRectangle returns the rectangle with the given lower left and upper
// right corners. The upper right corner must lie strictly to the right of
// and strictly above the lower left corner.
func NewRectangle(lowerLeft, upperRight Point) (Rectangle, error) {
	if !(upperRight.x > lowerLeft.x) {
		return Rectangle{}, &ArgumentError{Kind: WidthNotPositive, Value: upperRight.x - lowerLeft.x}
	}
	if !(upperRight.y > lowerLeft.y) {
		return Rectangle{}, &ArgumentError{Kind: HeightNotPositive, Value: upperRight.y - lowerLeft.y}
	}
	return Rectangle{min: lowerLeft, max: upperRight}, nil
}

// MustRectangle is like NewRectangle but panics on invalid corners.
func MustRectangle(lowerLeft, upperRight Point) Rectangle {
	r, err := NewRectangle(lowerLeft, upperRight)
	if err != nil {
		panic(err)
	}
	return r
}

// Rect is shorthand for the rectangle with corners (x0, y0) and (x1, y1),
// lower left first.
func Rect(x0, y0, x1, y1 float64) (Rectangle, error) {
	ll, err := NewPoint(x0, y0)
	if err != nil {
		return Rectangle{}, err
	}
	ur, err := NewPoint(x1, y1)
	if err != nil {
		return Rectangle{}, err
	}
	return NewRectangle(ll, ur)
}

// FromCorners returns the rectangle spanned by two opposite corners given
// in any order.
func FromCorners(p, q Point) (Rectangle, error) {
	if q.x < p.x {
		p.x, q.x = q.x, p.x
	}
	if q.y < p.y {
		p.y, q.y = q.y, p.y
	}
	return NewRectangle(p, q)
}

// LowerLeft returns the corner closest to the origin.
func (r Rectangle) LowerLeft() Point { return r.min }

// UpperLeft returns the upper left corner.
func (r Rectangle) UpperLeft() Point { return Point{x: r.min.x, y: r.max.y} }

// UpperRight returns the corner farthest from the origin.
func (r Rectangle) UpperRight() Point { return r.max }

// LowerRight returns the lower right corner.
func (r Rectangle) LowerRight() Point { return Point{x: r.max.x, y: r.min.y} }

// Corners returns the four corners counter-clockwise, starting with the
// lower left.
func (r Rectangle) Corners() [4]Point {
	return [4]Point{r.LowerLeft(), r.UpperLeft(), r.UpperRight(), r.LowerRight()}
}

// Width returns r's width.
func (r Rectangle) Width() float64 {
	return r.max.x - r.min.x
}

// Height returns r's height.
func (r Rectangle) Height() float64 {
	return r.max.y - r.min.y
}

// Size returns r's width and height.
func (r Rectangle) Size() (w, h float64) {
	return r.Width(), r.Height()
}

// Area returns r's width times its height.
func (r Rectangle) Area() float64 {
	return r.Width() * r.Height()
}

// LeftX returns the x coordinate of the left edge.
func (r Rectangle) LeftX() float64 { return r.min.x }

// RightX returns the x coordinate of the right edge.
func (r Rectangle) RightX() float64 { return r.max.x }

// BottomY returns the y coordinate of the bottom edge.
func (r Rectangle) BottomY() float64 { return r.min.y }

// TopY returns the y coordinate of the top edge.
func (r Rectangle) TopY() float64 { return r.max.y }

// Union returns the smallest rectangle covering both r and s.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.min.x > s.min.x {
		r.min.x = s.min.x
	}
	if r.min.y > s.min.y {
		r.min.y = s.min.y
	}
	if r.max.x < s.max.x {
		r.max.x = s.max.x
	}
	if r.max.y < s.max.y {
		r.max.y = s.max.y
	}
	return r
}

func (r Rectangle) String() string {
	return "[" + r.min.String() + " " + r.max.String() + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
