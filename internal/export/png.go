/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	xvector "golang.org/x/image/vector"

	"workfloweditor/internal/render"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/vector"
)

// PNGOptions controls raster output.
//   - Scale multiplies canvas units into pixels (1 when zero).
//   - Text measures and draws labels; the embedded Go font when nil.
type PNGOptions struct {
	Scale float64
	Text  textlayout.Provider
}

// ovalSegments approximates ellipses; enough for a smooth outline at the
// sizes the editor uses.
const ovalSegments = 72

// WritePNG rasterizes the frame and encodes it as PNG.
func WritePNG(w io.Writer, f Frame, opt PNGOptions) error {
	img := Rasterize(f, opt)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize paints the frame into a new RGBA image with anti-aliasing.
func Rasterize(f Frame, opt PNGOptions) *image.RGBA {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	if opt.Text == nil {
		opt.Text = textlayout.LabelProvider()
	}
	pw := max(1, int(math.Ceil(float64(f.Bounds.W)*scale)))
	ph := max(1, int(math.Ceil(float64(f.Bounds.H)*scale)))
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(render.Background)), image.Point{}, draw.Src)

	r := &raster{img: img, z: xvector.NewRasterizer(pw, ph), scale: float32(scale), origin: f.Bounds.Min(), text: opt.Text}
	for _, op := range f.Ops {
		r.op(op)
	}
	return img
}

type raster struct {
	img    *image.RGBA
	z      *xvector.Rasterizer
	scale  float32
	origin vector.Pt
	text   textlayout.Provider
}

// px maps a canvas point to image space.
func (r *raster) px(p vector.Pt) (float32, float32) {
	return (p.X - r.origin.X) * r.scale, (p.Y - r.origin.Y) * r.scale
}

func (r *raster) op(op render.Op) {
	switch op.Kind {
	case render.KindRect:
		pts := []vector.Pt{op.Rect.Min(), vector.P(op.Rect.X+op.Rect.W, op.Rect.Y), op.Rect.Max(), vector.P(op.Rect.X, op.Rect.Y+op.Rect.H)}
		r.shape(pts, true, op.Fill, op.Stroke)
	case render.KindOval:
		r.shape(ellipse(op.Rect, ovalSegments), true, op.Fill, op.Stroke)
	case render.KindPolygon:
		r.shape(op.Points, true, op.Fill, op.Stroke)
	case render.KindLine:
		r.shape(op.Points, false, vector.Fill{}, op.Stroke)
	case render.KindText:
		r.label(op)
	}
}

func (r *raster) shape(pts []vector.Pt, closed bool, fill vector.Fill, stroke vector.Stroke) {
	if len(pts) < 2 {
		return
	}
	if fill.Enabled && closed {
		r.begin()
		r.path(pts)
		r.paint(fill.Color)
	}
	if stroke.Enabled && stroke.Width > 0 {
		r.begin()
		half := stroke.Width * r.scale / 2
		n := len(pts)
		segs := n - 1
		if closed {
			segs = n
		}
		for i := 0; i < segs; i++ {
			r.segment(pts[i], pts[(i+1)%n], half)
		}
		// round joins and caps
		for _, p := range pts {
			r.disc(p, half)
		}
		r.paint(stroke.Color)
	}
}

func (r *raster) begin() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *raster) paint(c vector.Color) {
	r.z.Draw(r.img, r.img.Bounds(), image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}), image.Point{})
}

func (r *raster) path(pts []vector.Pt) {
	x, y := r.px(pts[0])
	r.z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = r.px(p)
		r.z.LineTo(x, y)
	}
	r.z.ClosePath()
}

// segment adds the quad covering a stroke of half-width half from a to b.
func (r *raster) segment(a, b vector.Pt, half float32) {
	ax, ay := r.px(a)
	bx, by := r.px(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	r.z.MoveTo(ax+nx, ay+ny)
	r.z.LineTo(bx+nx, by+ny)
	r.z.LineTo(bx-nx, by-ny)
	r.z.LineTo(ax-nx, ay-ny)
	r.z.ClosePath()
}

func (r *raster) disc(p vector.Pt, radius float32) {
	if radius < 0.75 {
		return
	}
	x, y := r.px(p)
	const n = 16
	// same winding as segment so overlaps add up instead of cancelling
	r.z.MoveTo(x+radius, y)
	for i := 1; i < n; i++ {
		a := -2 * math.Pi * float64(i) / n
		r.z.LineTo(x+radius*float32(math.Cos(a)), y+radius*float32(math.Sin(a)))
	}
	r.z.ClosePath()
}

func (r *raster) label(op render.Op) {
	if len(op.Points) == 0 || op.Text == "" {
		return
	}
	face, _ := r.text.Resolve(textlayout.FontSpec{Family: textlayout.DefaultFamily, SizePt: op.FontSize * r.scale, Weight: 400})
	x, y := r.px(op.Points[0])
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(toRGBA(op.Fill.Color)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(op.Text)
}

// ellipse returns n points on the ellipse inscribed in b, clockwise in
// screen space starting at the right.
func ellipse(b vector.Rect, n int) []vector.Pt {
	c := b.Center()
	rx, ry := float64(b.W)/2, float64(b.H)/2
	pts := make([]vector.Pt, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vector.P(c.X+float32(rx*math.Cos(a)), c.Y+float32(ry*math.Sin(a)))
	}
	return pts
}

func toRGBA(c vector.Color) color.RGBA {
	// premultiplied
	a := uint32(c.A)
	return color.RGBA{R: uint8(uint32(c.R) * a / 255), G: uint8(uint32(c.G) * a / 255), B: uint8(uint32(c.B) * a / 255), A: c.A}
}
