// SPDX-License-Identifier: Unlicense OR MIT

package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"loverde.org/rectangles/geom"
)

func TestLoadDiagrams(t *testing.T) {
	cases, err := Load(filepath.Join("testdata", "diagrams.yaml"))
	require.NoError(t, err)
	require.Len(t, cases, 7)

	first := cases[0]
	require.Equal(t, "intersect upper left", first.Name)
	a, err := geom.Rect(4, 2, 17, 14)
	require.NoError(t, err)
	require.Equal(t, a, first.A)
	require.NotNil(t, first.Expect.Overlap)
	require.NotNil(t, *first.Expect.Overlap)
	require.NotNil(t, first.Expect.Intersections)
	require.Len(t, *first.Expect.Intersections, 2)

	touching := cases[2]
	require.NotNil(t, touching.Expect.Overlap, "explicit null must be checked")
	require.Nil(t, *touching.Expect.Overlap)
	require.NotNil(t, touching.Expect.Intersections)
	require.Empty(t, *touching.Expect.Intersections)
	require.Nil(t, touching.Expect.Containment)

	band := cases[1]
	require.Nil(t, band.Expect.Adjacent)
	require.Nil(t, band.Expect.Containment)

	require.NotNil(t, cases[6].Expect.Overlap)
	require.Nil(t, *cases[6].Expect.Overlap)

	for _, c := range cases {
		res := c.Evaluate()
		require.True(t, res.OK(), "%s: %v", c.Name, res.Mismatches)
	}
}

func TestEvaluateMismatches(t *testing.T) {
	cases, err := Parse([]byte(`
cases:
  - name: wrong
    a: [4, 2, 17, 14]
    b: [1, 11, 7, 17]
    expect:
      overlap: null
      intersections: [[4, 11]]
      containment: second
      adjacent: true
`))
	require.NoError(t, err)
	res := cases[0].Evaluate()
	require.False(t, res.OK())
	require.Len(t, res.Mismatches, 4)
	require.Equal(t, "overlap: have [(4,11) (7,14)], want none", res.Mismatches[0])
	require.Equal(t, "intersections: have [(4,11) (7,14)], want [(4,11)]", res.Mismatches[1])
	require.Equal(t, "containment: have none, want second", res.Mismatches[2])
	require.Equal(t, "adjacent: have false, want true", res.Mismatches[3])
}

func TestEvaluateOverlapMismatch(t *testing.T) {
	cases, err := Parse([]byte(`
cases:
  - a: [4, 2, 17, 14]
    b: [1, 11, 7, 17]
    expect:
      overlap: [4, 11, 7, 15]
  - a: [5, 1, 8, 2]
    b: [4, 2, 17, 14]
    expect:
      overlap: [5, 1, 8, 2]
`))
	require.NoError(t, err)
	require.Equal(t, "case 1", cases[0].Name)
	require.Equal(t, []string{"overlap: have [(4,11) (7,14)], want [(4,11) (7,15)]"}, cases[0].Evaluate().Mismatches)
	require.Equal(t, []string{"overlap: have none, want [(5,1) (8,2)]"}, cases[1].Evaluate().Mismatches)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"short rectangle", "cases: [{name: x, a: [1, 2, 3], b: [0, 0, 1, 1]}]", nil},
		{"zero width", "cases: [{name: x, a: [1, 2, 1, 3], b: [0, 0, 1, 1]}]", geom.ErrInvalidArgument},
		{"negative", "cases: [{name: x, a: [0, 0, 1, 1], b: [-1, 0, 1, 1]}]", geom.ErrInvalidArgument},
		{"bad point", "cases: [{name: x, a: [0, 0, 1, 1], b: [0, 0, 1, 1], expect: {intersections: [[1]]}}]", nil},
		{"bad containment", "cases: [{name: x, a: [0, 0, 1, 1], b: [0, 0, 1, 1], expect: {containment: both}}]", nil},
		{"duplicate", "cases: [{name: x, a: [0, 0, 1, 1], b: [0, 0, 1, 1]}, {name: x, a: [0, 0, 1, 1], b: [0, 0, 1, 1]}]", nil},
		{"not yaml", "cases: [", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.doc))
			require.Error(t, err)
			if test.is != nil {
				require.ErrorIs(t, err, test.is)
			}
		})
	}
}

func TestParseContainment(t *testing.T) {
	for s, want := range map[string]geom.Containment{
		"none":     geom.NoContainment,
		"First":    geom.FirstContains,
		" second ": geom.SecondContains,
	} {
		have, err := ParseContainment(s)
		require.NoError(t, err)
		require.Equal(t, want, have)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	cases, err := Load(filepath.Join("testdata", "diagrams.yaml"))
	require.NoError(t, err)
	results, err := Run(context.Background(), cases, 3)
	require.NoError(t, err)
	require.Len(t, results, len(cases))
	for i, r := range results {
		require.Equal(t, cases[i].Name, r.Case.Name)
		require.True(t, r.OK())
	}
	require.Empty(t, Failed(results))
}

func TestRunCanceled(t *testing.T) {
	cases, err := Load(filepath.Join("testdata", "diagrams.yaml"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, cases, 2)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestFailedOrder(t *testing.T) {
	results := []Result{
		{Case: Case{Name: "b"}, Mismatches: []string{"x"}},
		{Case: Case{Name: "c"}},
		{Case: Case{Name: "a"}, Mismatches: []string{"y"}},
	}
	failed := Failed(results)
	require.Len(t, failed, 2)
	require.Equal(t, "a", failed[0].Case.Name)
	require.Equal(t, "b", failed[1].Case.Name)
}
