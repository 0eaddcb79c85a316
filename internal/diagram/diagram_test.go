// SPDX-License-Identifier: Unlicense OR MIT

package diagram

import (
	"bytes"
	"flag"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"loverde.org/rectangles/geom"
)

var dumpImages = flag.Bool("saveimages", false, "save test images")

func mustRect(t *testing.T, x0, y0, x1, y1 float64) geom.Rectangle {
	t.Helper()
	r, err := geom.Rect(x0, y0, x1, y1)
	require.NoError(t, err)
	return r
}

func saveImage(t *testing.T, img image.Image) {
	if !*dumpImages {
		return
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	require.NoError(t, os.WriteFile(t.Name()+".png", buf.Bytes(), 0o644))
}

func TestForRelation(t *testing.T) {
	a, b := mustRect(t, 4, 2, 17, 14), mustRect(t, 1, 11, 7, 17)
	s := ForRelation(a, b)
	require.Len(t, s.Shapes, 3)
	require.True(t, s.Shapes[0].Fill)
	require.Equal(t, mustRect(t, 4, 11, 7, 14), s.Shapes[0].Rect)
	require.Equal(t, "A", s.Shapes[1].Label)
	require.Equal(t, "B", s.Shapes[2].Label)
	require.Len(t, s.Points, 2)

	s = ForRelation(mustRect(t, 5, 1, 8, 2), a)
	require.Len(t, s.Shapes, 2)
	require.Empty(t, s.Points)
}

func TestRender(t *testing.T) {
	a, b := mustRect(t, 4, 2, 17, 14), mustRect(t, 1, 11, 7, 17)
	img, err := Render(ForRelation(a, b), Options{Scale: 10, Margin: 1})
	require.NoError(t, err)
	saveImage(t, img)

	// World bounds are [(1,2) (17,17)] plus one unit on each side.
	require.Equal(t, image.Rect(0, 0, 180, 170), img.Bounds())

	bg := img.RGBAAt(0, 0)
	require.Equal(t, uint8(0xff), bg.R)
	require.Equal(t, uint8(0xff), bg.G)
	require.Equal(t, uint8(0xff), bg.B)

	// Inside the overlap region.
	c := img.RGBAAt(55, 55)
	require.Greater(t, c.R, uint8(0xf0))
	require.Less(t, c.B, uint8(0xc0), "overlap not filled: %v", c)

	// Left edge of A, below the overlap.
	c = img.RGBAAt(40, 90)
	require.Less(t, c.R, uint8(50), "edge not outlined: %v", c)
	require.Less(t, c.G, uint8(50), "edge not outlined: %v", c)

	// Intersection point (4,11).
	c = img.RGBAAt(40, 70)
	require.Greater(t, c.R, uint8(200), "point not marked: %v", c)
	require.Less(t, c.G, uint8(50), "point not marked: %v", c)
}

func TestRenderDefaults(t *testing.T) {
	img, err := Render(Scene{Shapes: []Shape{{Rect: mustRect(t, 0, 0, 2, 1)}}}, Options{})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 80, 60), img.Bounds())

	// A zero margin selects the default margin too.
	img, err = Render(Scene{Shapes: []Shape{{Rect: mustRect(t, 0, 0, 2, 1)}}}, Options{Scale: 20, Margin: 0})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 80, 60), img.Bounds())
}

func TestRenderEmpty(t *testing.T) {
	img, err := Render(Scene{}, Options{Scale: 4, Margin: 2})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 17, 17), img.Bounds())
}

func TestEncode(t *testing.T) {
	img, err := Render(ForRelation(mustRect(t, 2, 17, 10, 22), mustRect(t, 3, 18, 9, 21)), Options{Scale: 5})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestRenderTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		opt   Options
	}{
		{"wide pair", ForRelation(mustRect(t, 0, 0, 1e6, 1e6), mustRect(t, 1, 1, 2, 2)), Options{}},
		{"huge coordinates", ForRelation(mustRect(t, 0, 0, 1e308, 1), mustRect(t, 1, 0, 2, 1)), Options{}},
		{"tall", Scene{Shapes: []Shape{{Rect: mustRect(t, 0, 0, 1, 1000)}}}, Options{Scale: 20}},
		{"margin", Scene{}, Options{Scale: 1 << 20, Margin: 1 << 20}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			img, err := Render(test.scene, test.opt)
			require.ErrorIs(t, err, ErrTooLarge)
			require.Nil(t, img)
		})
	}
}

func TestRenderMaxSide(t *testing.T) {
	// The widest scene at the default scale that stays within MaxSide.
	w := float64(MaxSide/20 - 2)
	img, err := Render(Scene{Shapes: []Shape{{Rect: mustRect(t, 0, 0, w, 1)}}}, Options{})
	require.NoError(t, err)
	require.Equal(t, MaxSide-MaxSide%20, img.Bounds().Dx())
}
