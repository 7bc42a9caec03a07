/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render compiles the editor state into a flat list of draw
// operations in painter's order (back to front). Backends (the canvas widget,
// SVG, PNG and PDF writers) only interpret the list; none of them looks at the
// scene directly.
package render

import (
	"fmt"

	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/vector"
)

// Kind selects how an Op is interpreted.
type Kind uint8

const (
	KindRect    Kind = iota // Rect, filled and/or stroked
	KindOval                // ellipse inscribed in Rect
	KindLine                // open polyline through Points
	KindPolygon             // closed polygon through Points
	KindText                // Text with its baseline origin at Points[0]
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindOval:
		return "oval"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Layer tags an Op with the pass that produced it.
type Layer uint8

const (
	LayerShapes Layer = iota
	LayerHighlights
	LayerLinks
	LayerLabels
	LayerHandles
	LayerPreview
	LayerMarquee
)

// Interactive reports whether the layer only exists as editing feedback.
func (l Layer) Interactive() bool {
	switch l {
	case LayerHighlights, LayerHandles, LayerPreview, LayerMarquee:
		return true
	}
	return false
}

// Op is one drawing operation.
type Op struct {
	Kind     Kind
	Layer    Layer
	Rect     vector.Rect
	Points   []vector.Pt
	Fill     vector.Fill
	Stroke   vector.Stroke
	Text     string
	FontSize float32
	// Owner correlates the op with a shape, when there is one.
	Owner    diagram.ShapeID
}

// Bounds is the area the op may paint, including half the stroke width.
func (o Op) Bounds() vector.Rect {
	var r vector.Rect
	switch o.Kind {
	case KindRect, KindOval:
		r = o.Rect
	case KindLine, KindPolygon:
		r = pointsBounds(o.Points)
	case KindText:
		if len(o.Points) == 0 {
			return vector.Rect{}
		}
		// rough: full font size above the baseline, a third below
		r = vector.R(o.Points[0].X, o.Points[0].Y-o.FontSize, o.Rect.W, o.FontSize*4/3)
	}
	if o.Stroke.Enabled {
		r = r.Inset(-o.Stroke.Width/2, -o.Stroke.Width/2)
	}
	return r
}

func pointsBounds(pts []vector.Pt) vector.Rect {
	if len(pts) == 0 {
		return vector.Rect{}
	}
	r := vector.R(pts[0].X, pts[0].Y, 0, 0)
	for _, p := range pts[1:] {
		r = r.Union(vector.R(p.X, p.Y, 0, 0))
	}
	return r
}

// Bounds is the union of all op bounds.
func Bounds(ops []Op) vector.Rect {
	rs := make([]vector.Rect, 0, len(ops))
	for _, o := range ops {
		rs = append(rs, o.Bounds())
	}
	return vector.UnionAll(rs...)
}

// Document drops the editing feedback from ops, leaving what an exported
// diagram shows. Link endpoint markers stay.
func Document(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, o := range ops {
		if !o.Layer.Interactive() {
			out = append(out, o)
		}
	}
	return out
}

// Palette of the editor surface.
var (
	ShapeFill      = vector.RGB(200, 200, 200)
	SelectionColor = vector.Blue
	MarqueeFill    = vector.Blue.WithAlpha(50)
	HandleFill     = vector.Black.WithAlpha(150)
	LinkColor      = vector.Black
	LabelTextColor = vector.Black
	Background     = vector.White
	HandleSize     = float32(10)
	LinkWidth      = float32(2)
	HighlightGrow  = float32(2)
)

// Source is what Compile reads. *editor.Editor satisfies it.
type Source interface {
	Scene() editor.SceneView
	Drag() editor.DragState
}

// Options tune compilation.
type Options struct {
	// Text measures label text; the embedded Go font when nil.
	Text textlayout.Provider
}

// Compile emits the frame for the current state: shapes, selection
// highlights, links with endpoint handles, labels, control points of the
// selection, the link preview and the marquee.
func Compile(src Source, opt Options) []Op {
	if opt.Text == nil {
		opt.Text = textlayout.LabelProvider()
	}
	c := compiler{scene: src.Scene(), text: opt.Text}
	for _, id := range c.scene.TopLevel() {
		c.shape(id)
	}
	for _, id := range c.scene.Selection() {
		c.highlight(id)
	}
	for _, l := range c.scene.Links() {
		c.link(l)
	}
	for _, id := range c.scene.TopLevel() {
		c.labels(id)
	}
	for _, p := range c.scene.SelectionControlPoints() {
		c.handle(p, "", LayerHandles)
	}
	switch d := src.Drag().(type) {
	case editor.DraggingLink:
		c.preview(d)
	case editor.DraggingMarquee:
		c.marquee(d.Rect())
	case editor.Idle, editor.DraggingObject:
	default:
		panic(fmt.Sprintf("render: unknown drag state %T", d))
	}
	return c.ops
}

type compiler struct {
	scene editor.SceneView
	text  textlayout.Provider
	ops   []Op
}

func (c *compiler) emit(o Op) { c.ops = append(c.ops, o) }

// walk calls fn for every primitive below id, in child order.
func (c *compiler) walk(id diagram.ShapeID, fn func(*diagram.Primitive)) {
	sh, ok := c.scene.Shape(id)
	if !ok {
		return
	}
	switch v := sh.(type) {
	case *diagram.Primitive:
		fn(v)
	case *diagram.Composite:
		for _, ch := range v.Children() {
			c.walk(ch, fn)
		}
	default:
		panic(fmt.Sprintf("render: unknown shape type %T", sh))
	}
}

func outlineKind(o vector.Outline) Kind {
	switch o {
	case vector.OutlineRect:
		return KindRect
	case vector.OutlineOval:
		return KindOval
	default:
		panic(fmt.Sprintf("render: unknown outline %v", o))
	}
}

func (c *compiler) shape(id diagram.ShapeID) {
	c.walk(id, func(p *diagram.Primitive) {
		c.emit(Op{Kind: outlineKind(p.Outline()), Layer: LayerShapes, Rect: p.Bounds(), Fill: vector.Solid(ShapeFill), Owner: p.ID()})
	})
}

func (c *compiler) highlight(id diagram.ShapeID) {
	c.walk(id, func(p *diagram.Primitive) {
		c.emit(Op{
			Kind:   outlineKind(p.Outline()),
			Layer:  LayerHighlights,
			Rect:   p.Bounds().Inset(-HighlightGrow, -HighlightGrow),
			Stroke: vector.Line(SelectionColor, 1),
			Owner:  p.ID(),
		})
	})
}

func (c *compiler) link(l diagram.Link) {
	c.emit(Op{Kind: KindLine, Layer: LayerLinks, Points: []vector.Pt{l.SourceAnchor, l.TargetAnchor}, Stroke: vector.Line(LinkColor, LinkWidth)})
	c.arrow(l.Kind, l.SourceAnchor, l.TargetAnchor, LayerLinks, LinkWidth)
	c.handle(l.SourceAnchor, l.Source, LayerLinks)
	c.handle(l.TargetAnchor, l.Target, LayerLinks)
}

// arrow emits the head decoration of kind at `to`.
func (c *compiler) arrow(kind diagram.LinkKind, from, to vector.Pt, layer Layer, width float32) {
	switch kind {
	case diagram.Association:
		l, r := vector.OpenArrow(from, to)
		c.emit(Op{Kind: KindLine, Layer: layer, Points: []vector.Pt{l, to, r}, Stroke: vector.Line(LinkColor, width)})
	case diagram.Generalization:
		c.emit(Op{Kind: KindPolygon, Layer: layer, Points: vector.Triangle(from, to), Fill: vector.Solid(vector.White), Stroke: vector.Line(LinkColor, width)})
	case diagram.Composition:
		c.emit(Op{Kind: KindPolygon, Layer: layer, Points: vector.Diamond(from, to), Fill: vector.Solid(LinkColor)})
	default:
		panic(fmt.Sprintf("render: unknown link kind %v", kind))
	}
}

func (c *compiler) handle(p vector.Pt, owner diagram.ShapeID, layer Layer) {
	c.emit(Op{
		Kind:  KindRect,
		Layer: layer,
		Rect:  vector.R(p.X-HandleSize/2, p.Y-HandleSize/2, HandleSize, HandleSize),
		Fill:  vector.Solid(HandleFill),
		Owner: owner,
	})
}

func (c *compiler) labels(id diagram.ShapeID) {
	c.walk(id, func(p *diagram.Primitive) {
		l, ok := p.Label()
		if !ok {
			return
		}
		box := diagram.LabelBox(p.Bounds())
		c.emit(Op{Kind: outlineKind(l.Shape), Layer: LayerLabels, Rect: box, Fill: vector.Solid(l.Color), Owner: p.ID()})
		for _, ln := range textlayout.PlaceLabel(c.text, l.Text, float32(l.FontSize), box) {
			c.emit(Op{
				Kind:     KindText,
				Layer:    LayerLabels,
				Points:   []vector.Pt{ln.Origin},
				Rect:     vector.R(ln.Origin.X, ln.Origin.Y, ln.Width, 0),
				Text:     ln.Text,
				FontSize: float32(l.FontSize),
				Fill:     vector.Solid(LabelTextColor),
				Owner:    p.ID(),
			})
		}
	})
}

func (c *compiler) preview(d editor.DraggingLink) {
	c.emit(Op{Kind: KindLine, Layer: LayerPreview, Points: []vector.Pt{d.Anchor, d.Pointer}, Stroke: vector.Line(LinkColor, 1)})
	if d.Anchor != d.Pointer {
		c.arrow(d.Kind, d.Anchor, d.Pointer, LayerPreview, 1)
	}
}

func (c *compiler) marquee(r vector.Rect) {
	c.emit(Op{Kind: KindRect, Layer: LayerMarquee, Rect: r, Fill: vector.Solid(MarqueeFill), Stroke: vector.Line(SelectionColor, 1)})
}
