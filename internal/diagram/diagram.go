// SPDX-License-Identifier: Unlicense OR MIT

/*
Package diagram draws rectangles, their overlap and their intersection
points into images, in the style of the diagrams that accompany the
relationship test cases.

World coordinates have their origin in the lower left corner; the image
is flipped so that it reads the same way.
*/
package diagram

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"loverde.org/rectangles/geom"
)

const (
	defaultScale  = 20
	defaultMargin = 1

	strokeWidth = 1
	markerSize  = 3

	// MaxSide is the largest width or height of a rendered image, in
	// pixels.
	MaxSide = 1 << 14
)

// ErrTooLarge is matched by the error Render returns for scenes that do
// not fit in MaxSide pixels.
var ErrTooLarge = errors.New("diagram: image too large")

// A Shape is a rectangle to draw.
type Shape struct {
	Rect  geom.Rectangle
	Label string
	// Fill paints the interior translucently instead of outlining it.
	Fill bool
}

// A Scene is everything drawn into a single image.
type Scene struct {
	Shapes []Shape
	Points []geom.Point
}

// Options control the mapping from world units to pixels.
type Options struct {
	// Scale is the number of pixels per world unit. Zero or negative
	// values select 20.
	Scale int
	// Margin is the border around the scene, in world units. Zero or
	// negative values select 1; a scene is never drawn flush with the
	// image border, where outlines would be clipped.
	Margin int
}

var (
	outlines = []color.RGBA{colornames.Black, colornames.Crimson, colornames.Royalblue, colornames.Darkgreen}
	fill     = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0x80}
	marker   = colornames.Red
)

// ForRelation returns the scene of a, b, their overlap region and their
// intersection points.
func ForRelation(a, b geom.Rectangle) Scene {
	s := Scene{
		Shapes: []Shape{{Rect: a, Label: "A"}, {Rect: b, Label: "B"}},
		Points: geom.Intersections(a, b),
	}
	if o, ok := geom.Overlap(a, b); ok {
		// Painted first so the outlines stay visible.
		s.Shapes = append([]Shape{{Rect: o, Fill: true}}, s.Shapes...)
	}
	return s
}

// Render draws s onto a white image sized to fit every shape. It fails
// with ErrTooLarge if either side would exceed MaxSide pixels.
func Render(s Scene, opt Options) (*image.RGBA, error) {
	if opt.Scale <= 0 {
		opt.Scale = defaultScale
	}
	if opt.Margin <= 0 {
		opt.Margin = defaultMargin
	}
	scale := float64(opt.Scale)
	margin := float64(opt.Margin) * scale

	var (
		world geom.Rectangle
		have  bool
	)
	for _, sh := range s.Shapes {
		if !have {
			world, have = sh.Rect, true
			continue
		}
		world = world.Union(sh.Rect)
	}
	fw, fh := 2*margin+1, 2*margin+1
	if have {
		fw = math.Ceil(world.Width()*scale + 2*margin)
		fh = math.Ceil(world.Height()*scale + 2*margin)
	}
	// Written as !(v <= MaxSide) to reject NaN as well.
	if !(fw <= MaxSide) || !(fh <= MaxSide) {
		return nil, fmt.Errorf("%w: %gx%g pixels, limit %d per side", ErrTooLarge, fw, fh, MaxSide)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(fw), int(fh)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if !have {
		return img, nil
	}

	c := canvas{img: img, scale: scale, margin: margin, origin: world.LowerLeft()}
	outline := 0
	for _, sh := range s.Shapes {
		if sh.Fill {
			c.fillRect(sh.Rect, fill)
			continue
		}
		col := outlines[outline%len(outlines)]
		outline++
		c.strokeRect(sh.Rect, col)
		if sh.Label != "" {
			c.label(sh.Rect.UpperLeft(), sh.Label, col)
		}
	}
	for _, p := range s.Points {
		c.mark(p, marker)
	}
	return img, nil
}

// Encode writes img to w in PNG format.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type canvas struct {
	img    *image.RGBA
	scale  float64
	margin float64
	origin geom.Point
}

// pt maps p to image coordinates.
func (c canvas) pt(p geom.Point) (float32, float32) {
	x := (p.X()-c.origin.X())*c.scale + c.margin
	y := float64(c.img.Bounds().Dy()) - ((p.Y()-c.origin.Y())*c.scale + c.margin)
	return float32(x), float32(y)
}

func (c canvas) fillRect(r geom.Rectangle, col color.Color) {
	x0, y1 := c.pt(r.LowerLeft())
	x1, y0 := c.pt(r.UpperRight())
	vr := c.rasterizer()
	box(vr, x0, y0, x1, y1)
	c.paint(vr, col)
}

func (c canvas) strokeRect(r geom.Rectangle, col color.Color) {
	x0, y1 := c.pt(r.LowerLeft())
	x1, y0 := c.pt(r.UpperRight())
	const d = strokeWidth
	vr := c.rasterizer()
	box(vr, x0-d, y0-d, x1+d, y0+d)
	box(vr, x0-d, y1-d, x1+d, y1+d)
	box(vr, x0-d, y0-d, x0+d, y1+d)
	box(vr, x1-d, y0-d, x1+d, y1+d)
	c.paint(vr, col)
}

func (c canvas) mark(p geom.Point, col color.Color) {
	x, y := c.pt(p)
	const d = markerSize
	vr := c.rasterizer()
	box(vr, x-d, y-d, x+d, y+d)
	c.paint(vr, col)
}

func (c canvas) label(at geom.Point, text string, col color.Color) {
	x, y := c.pt(at)
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(int(x)+2*strokeWidth+1, int(y)+face.Metrics().Ascent.Ceil()+2*strokeWidth),
	}
	d.DrawString(text)
}

func (c canvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	vr := vector.NewRasterizer(b.Dx(), b.Dy())
	vr.DrawOp = draw.Over
	return vr
}

func (c canvas) paint(vr *vector.Rasterizer, col color.Color) {
	vr.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func box(vr *vector.Rasterizer, x0, y0, x1, y1 float32) {
	vr.MoveTo(x0, y0)
	vr.LineTo(x1, y0)
	vr.LineTo(x1, y1)
	vr.LineTo(x0, y1)
	vr.ClosePath()
}
