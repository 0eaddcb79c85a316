// SPDX-License-Identifier: Unlicense OR MIT

// Package scenario loads batches of rectangle pairs with their expected
// relationships and checks them against package geom.
package scenario

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"loverde.org/rectangles/geom"
)

// A Case is a named pair of rectangles and what is expected of them.
type Case struct {
	Name   string
	A, B   geom.Rectangle
	Expect Expect
}

// Expect lists the expected relationships of a Case. Nil fields are not
// checked.
type Expect struct {
	// Overlap points to the expected overlap region, or to nil if no
	// overlap is expected.
	Overlap       **geom.Rectangle
	Intersections *[]geom.Point
	Containment   *geom.Containment
	Adjacent      *bool
}

// Result is the outcome of evaluating a Case.
type Result struct {
	Case       Case
	Relation   geom.Relation
	Mismatches []string
}

// OK reports whether every expectation held.
func (r Result) OK() bool {
	return len(r.Mismatches) == 0
}

type fileYAML struct {
	Cases []caseYAML `yaml:"cases"`
}

type caseYAML struct {
	Name   string     `yaml:"name"`
	A      []float64  `yaml:"a"`
	B      []float64  `yaml:"b"`
	Expect expectYAML `yaml:"expect"`
}

type expectYAML struct {
	// A node so that an explicit null can be told apart from a missing
	// key.
	Overlap       yaml.Node    `yaml:"overlap"`
	Intersections *[][]float64 `yaml:"intersections"`
	Containment   *string      `yaml:"containment"`
	Adjacent      *bool        `yaml:"adjacent"`
}

// Load reads the cases of the scenario file at path.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// Parse decodes a scenario document.
func Parse(data []byte) ([]Case, error) {
	var f fileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	cases := make([]Case, 0, len(f.Cases))
	seen := make(map[string]struct{}, len(f.Cases))
	for i, cy := range f.Cases {
		name := strings.TrimSpace(cy.Name)
		if name == "" {
			name = fmt.Sprintf("case %d", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("scenario: duplicate case %q", name)
		}
		seen[name] = struct{}{}
		c, err := cy.build(name)
		if err != nil {
			return nil, fmt.Errorf("scenario: case %q: %w", name, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (cy caseYAML) build(name string) (Case, error) {
	c := Case{Name: name}
	var err error
	if c.A, err = rectangle(cy.A); err != nil {
		return Case{}, fmt.Errorf("a: %w", err)
	}
	if c.B, err = rectangle(cy.B); err != nil {
		return Case{}, fmt.Errorf("b: %w", err)
	}
	ey := cy.Expect
	if ey.Overlap.Kind != 0 {
		var o *geom.Rectangle
		if ey.Overlap.ShortTag() != "!!null" {
			var coords []float64
			if err := ey.Overlap.Decode(&coords); err != nil {
				return Case{}, fmt.Errorf("overlap: %w", err)
			}
			r, err := rectangle(coords)
			if err != nil {
				return Case{}, fmt.Errorf("overlap: %w", err)
			}
			o = &r
		}
		c.Expect.Overlap = &o
	}
	if ey.Intersections != nil {
		pts := make([]geom.Point, 0, len(*ey.Intersections))
		for _, xy := range *ey.Intersections {
			if len(xy) != 2 {
				return Case{}, fmt.Errorf("intersections: point %v: want 2 coordinates", xy)
			}
			p, err := geom.NewPoint(xy[0], xy[1])
			if err != nil {
				return Case{}, fmt.Errorf("intersections: %w", err)
			}
			pts = append(pts, p)
		}
		c.Expect.Intersections = &pts
	}
	if ey.Containment != nil {
		cont, err := ParseContainment(*ey.Containment)
		if err != nil {
			return Case{}, err
		}
		c.Expect.Containment = &cont
	}
	c.Expect.Adjacent = ey.Adjacent
	return c, nil
}

func rectangle(coords []float64) (geom.Rectangle, error) {
	if len(coords) != 4 {
		return geom.Rectangle{}, fmt.Errorf("want 4 coordinates, got %d", len(coords))
	}
	return geom.Rect(coords[0], coords[1], coords[2], coords[3])
}

// ParseContainment parses the names printed by geom.Containment.String.
func ParseContainment(s string) (geom.Containment, error) {
	for _, c := range []geom.Containment{geom.NoContainment, geom.FirstContains, geom.SecondContains} {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("containment: unknown value %q", s)
}

// Evaluate relates the rectangles of c and compares the outcome with its
// expectations.
func (c Case) Evaluate() Result {
	rel := geom.Relate(c.A, c.B)
	res := Result{Case: c, Relation: rel}
	miss := func(format string, args ...any) {
		res.Mismatches = append(res.Mismatches, fmt.Sprintf(format, args...))
	}
	e := c.Expect
	if e.Overlap != nil {
		switch want := *e.Overlap; {
		case want == nil && rel.Overlaps:
			miss("overlap: have %v, want none", rel.Overlap)
		case want != nil && !rel.Overlaps:
			miss("overlap: have none, want %v", *want)
		case want != nil && *want != rel.Overlap:
			miss("overlap: have %v, want %v", rel.Overlap, *want)
		}
	}
	if e.Intersections != nil && !samePoints(rel.Intersections, *e.Intersections) {
		miss("intersections: have %v, want %v", sortedPoints(rel.Intersections), sortedPoints(*e.Intersections))
	}
	if e.Containment != nil && *e.Containment != rel.Containment {
		miss("containment: have %v, want %v", rel.Containment, *e.Containment)
	}
	if e.Adjacent != nil && *e.Adjacent != rel.Adjacent {
		miss("adjacent: have %v, want %v", rel.Adjacent, *e.Adjacent)
	}
	return res
}

// Run evaluates cases on up to workers goroutines and returns the results
// in the order of cases.
func Run(ctx context.Context, cases []Case, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = cases[i].Evaluate()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed returns the results with mismatches, ordered by case name.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	slices.SortFunc(failed, func(a, b Result) int {
		return cmp.Compare(a.Case.Name, b.Case.Name)
	})
	return failed
}

func samePoints(have, want []geom.Point) bool {
	have, want = sortedPoints(have), sortedPoints(want)
	want = slices.Compact(want)
	return slices.Equal(have, want)
}

func sortedPoints(pts []geom.Point) []geom.Point {
	pts = slices.Clone(pts)
	slices.SortFunc(pts, func(a, b geom.Point) int {
		if c := cmp.Compare(a.X(), b.X()); c != 0 {
			return c
		}
		return cmp.Compare(a.Y(), b.Y())
	})
	return pts
}
