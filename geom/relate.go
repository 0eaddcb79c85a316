// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"golang.org/x/exp/slices"
)

// Containment reports which of two rectangles, if any, strictly contains
// the other.
type Containment uint8

const (
	// NoContainment means neither argument contains the other.
	NoContainment Containment = iota
	// FirstContains means the first argument contains the second.
	FirstContains
	// SecondContains means the second argument contains the first.
	SecondContains
)

// Relation holds every relationship between an ordered pair of
// rectangles.
type Relation struct {
	// Overlap is the shared region; valid only if Overlaps is set.
	Overlap       Rectangle
	Overlaps      bool
	Intersections []Point
	Containment   Containment
	Adjacent      bool
}

// Overlap returns the region shared by a and b. The boolean is false if
// the rectangles share no area, including when they only touch along an
// edge or at a corner.
func Overlap(a, b Rectangle) (Rectangle, bool) {
	if a == b {
		return a, true
	}
	ll := Point{x: max(a.min.x, b.min.x), y: max(a.min.y, b.min.y)}
	ur := Point{x: min(a.max.x, b.max.x), y: min(a.max.y, b.max.y)}
	r, err := NewRectangle(ll, ur)
	if err != nil {
		return Rectangle{}, false
	}
	return r, true
}

// Intersections returns the points where the edges of a and b cross.
// These are the corners of the overlap region that lie on an edge line
// of both rectangles, in the overlap's corner order. The result is never
// nil and holds 0, 2 or 4 points for rectangles in general position.
func Intersections(a, b Rectangle) []Point {
	pts := make([]Point, 0, 4)
	o, ok := Overlap(a, b)
	if !ok {
		return pts
	}
	for _, c := range o.Corners() {
		if !onEdge(c, a) || !onEdge(c, b) {
			continue
		}
		if !slices.Contains(pts, c) {
			pts = append(pts, c)
		}
	}
	return pts
}

// onEdge reports whether p lies on one of the infinite lines through
// r's edges.
func onEdge(p Point, r Rectangle) bool {
	return p.x == r.min.x || p.x == r.max.x || p.y == r.min.y || p.y == r.max.y
}

// WhoContains reports whether a strictly contains b or b strictly
// contains a. A shared edge line disqualifies containment, so equal
// rectangles never contain each other.
func WhoContains(a, b Rectangle) Containment {
	switch {
	case strictlyInside(b, a):
		return FirstContains
	case strictlyInside(a, b):
		return SecondContains
	default:
		return NoContainment
	}
}

// strictlyInside reports whether inner lies within outer without
// touching any of its edges.
func strictlyInside(inner, outer Rectangle) bool {
	// inner's left edge is bounded on both sides.
	return outer.min.x < inner.min.x && inner.min.x < outer.max.x &&
		outer.max.x > inner.max.x &&
		outer.min.y < inner.min.y &&
		outer.max.y > inner.max.y
}

// Container returns whichever of a and b strictly contains the other.
func Container(a, b Rectangle) (Rectangle, bool) {
	switch WhoContains(a, b) {
	case FirstContains:
		return a, true
	case SecondContains:
		return b, true
	default:
		return Rectangle{}, false
	}
}

// Adjacent reports whether a and b share a segment of an edge with
// positive length without overlapping. A rectangle is not adjacent to
// itself, and rectangles touching only at a corner are not adjacent.
func Adjacent(a, b Rectangle) bool {
	if a == b {
		return false
	}
	switch {
	case a.max.y == b.min.y || a.min.y == b.max.y:
		return spanOverlap(a.min.x, a.max.x, b.min.x, b.max.x) > 0
	case a.min.x == b.max.x || a.max.x == b.min.x:
		return spanOverlap(a.min.y, a.max.y, b.min.y, b.max.y) > 0
	default:
		return false
	}
}

// spanOverlap returns the length shared by the intervals [a0, a1] and
// [b0, b1], or zero.
func spanOverlap(a0, a1, b0, b1 float64) float64 {
	start := max(a0, b0)
	end := min(a1, b1)
	// Intervals sharing only an endpoint yield zero, so corner contact is
	// not adjacency.
	if end <= start {
		return 0
	}
	return end - start
}

// Relate computes every relationship between a and b.
func Relate(a, b Rectangle) Relation {
	o, ok := Overlap(a, b)
	return Relation{
		Overlap:       o,
		Overlaps:      ok,
		Intersections: Intersections(a, b),
		Containment:   WhoContains(a, b),
		Adjacent:      Adjacent(a, b),
	}
}

// Overlap is shorthand for Overlap(r, s).
func (r Rectangle) Overlap(s Rectangle) (Rectangle, bool) {
	return Overlap(r, s)
}

// Intersections is shorthand for Intersections(r, s).
func (r Rectangle) Intersections(s Rectangle) []Point {
	return Intersections(r, s)
}

// Contains reports whether r strictly contains s.
func (r Rectangle) Contains(s Rectangle) bool {
	return WhoContains(r, s) == FirstContains
}

// ContainedBy reports whether s strictly contains r.
func (r Rectangle) ContainedBy(s Rectangle) bool {
	return WhoContains(r, s) == SecondContains
}

// HasContainment reports whether either of r and s strictly contains
// the other.
func (r Rectangle) HasContainment(s Rectangle) bool {
	return WhoContains(r, s) != NoContainment
}

// AdjacentTo is shorthand for Adjacent(r, s).
func (r Rectangle) AdjacentTo(s Rectangle) bool {
	return Adjacent(r, s)
}

func (c Containment) String() string {
	switch c {
	case NoContainment:
		return "none"
	case FirstContains:
		return "first"
	case SecondContains:
		return "second"
	default:
		return "unknown"
	}
}
