/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diagram

import (
	"fmt"

	"go.jetify.com/typeid/v2"

	"workfloweditor/internal/vector"
)

// ShapeID is the stable handle of a shape inside a Scene arena.
// Links and the selection refer to shapes only through handles.
type ShapeID string

const shapePrefix = "shape"

func newShapeID() ShapeID {
	return ShapeID(typeid.MustGenerate(shapePrefix).String())
}

// Shape is the closed variant over *Primitive and *Composite.
// Values are owned by a Scene and are read-only for callers; all mutation goes
// through Scene methods.
type Shape interface {
	ID() ShapeID
	Bounds() vector.Rect
	isShape()
}

// Primitive is a leaf Rect or Oval node that may carry a label.
type Primitive struct {
	id      ShapeID
	outline vector.Outline
	bounds  vector.Rect
	label   *Label
}

func (p *Primitive) ID() ShapeID             { return p.id }
func (p *Primitive) Bounds() vector.Rect     { return p.bounds }
func (p *Primitive) Outline() vector.Outline { return p.outline }
func (*Primitive) isShape()                  {}

// Label returns the attached label, if any.
func (p *Primitive) Label() (Label, bool) {
	if p.label == nil {
		return Label{}, false
	}
	return *p.label, true
}

// ControlPoints are the primitive's connection candidates at its current bounds.
func (p *Primitive) ControlPoints() []vector.Pt { return vector.ControlPoints(p.bounds, p.outline) }

// Composite is a group node. It exclusively owns its children, which keep
// absolute coordinates. Its bounds are fixed at grouping time and only move
// with the composite.
type Composite struct {
	id       ShapeID
	bounds   vector.Rect
	children []ShapeID
}

func (c *Composite) ID() ShapeID         { return c.id }
func (c *Composite) Bounds() vector.Rect { return c.bounds }
func (*Composite) isShape()              {}

// Children returns the child handles in stored order.
func (c *Composite) Children() []ShapeID { return append([]ShapeID(nil), c.children...) }

// Label decorates a primitive.
type Label struct {
	Text     string
	Shape    vector.Outline // background silhouette
	Color    vector.Color
	FontSize int
}

// LinkKind is the relationship drawn by a link.
type LinkKind uint8

const (
	Association LinkKind = iota
	Generalization
	Composition
)

func (k LinkKind) String() string {
	switch k {
	case Association:
		return "association"
	case Generalization:
		return "generalization"
	case Composition:
		return "composition"
	default:
		return fmt.Sprintf("link(%d)", uint8(k))
	}
}

// Link connects two distinct shapes. Anchors are absolute coordinates snapped
// to a control point of the respective shape.
type Link struct {
	Kind         LinkKind
	Source       ShapeID
	Target       ShapeID
	SourceAnchor vector.Pt
	TargetAnchor vector.Pt
}

func mustPrimitive(s Shape) *Primitive {
	switch v := s.(type) {
	case *Primitive:
		return v
	case *Composite:
		panic(fmt.Sprintf("diagram: composite %s has no control points of its own", v.id))
	default:
		panic(fmt.Sprintf("diagram: unknown shape type %T", s))
	}
}
