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
	"slices"

	"workfloweditor/internal/vector"
)

// ControlPointHit is a matched control point together with the primitive
// that owns it.
type ControlPointHit struct {
	Point vector.Pt
	Owner ShapeID
}

// Contains is the point-in-shape test. Composites hit when any descendant
// hits.
func (s *Scene) Contains(id ShapeID, p vector.Pt) bool {
	switch v := s.arena[id].(type) {
	case *Primitive:
		return v.outline.Contains(v.bounds, p)
	case *Composite:
		for _, c := range v.children {
			if s.Contains(c, p) {
				return true
			}
		}
		return false
	case nil:
		return false
	default:
		panic(fmt.Sprintf("diagram: unknown shape type %T", v))
	}
}

// TopmostShapeAt returns the highest z-order top-level shape under p.
func (s *Scene) TopmostShapeAt(p vector.Pt) (ShapeID, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if s.Contains(s.order[i], p) {
			return s.order[i], true
		}
	}
	return "", false
}

// IsCovered reports whether the bounding box of a top-level shape overlaps
// the box of any shape above it. A nested shape is covered when its top-level
// ancestor is. Unknown and topmost shapes are never covered.
func (s *Scene) IsCovered(id ShapeID) bool {
	i := s.Index(id)
	if i < 0 {
		top, ok := s.TopLevelOf(id)
		if !ok {
			return false
		}
		id, i = top, s.Index(top)
	}
	if i == len(s.order)-1 {
		return false
	}
	b := s.arena[id].Bounds()
	for _, above := range s.order[i+1:] {
		if b.Intersects(s.arena[above].Bounds()) {
			return true
		}
	}
	return false
}

// controlPointIn searches the control points of one shape, recursing into
// composite children depth-first.
func (s *Scene) controlPointIn(id ShapeID, p vector.Pt) (ControlPointHit, bool) {
	switch v := s.arena[id].(type) {
	case *Primitive:
		if cp, ok := vector.ControlPointNear(v.ControlPoints(), p); ok {
			return ControlPointHit{Point: cp, Owner: id}, true
		}
	case *Composite:
		for _, c := range v.children {
			if hit, ok := s.controlPointIn(c, p); ok {
				return hit, true
			}
		}
	case nil:
	default:
		panic(fmt.Sprintf("diagram: unknown shape type %T", v))
	}
	return ControlPointHit{}, false
}

// ControlPointIn reports the control point of id (or one of its descendants)
// within the hit radius of p.
func (s *Scene) ControlPointIn(id ShapeID, p vector.Pt) (ControlPointHit, bool) {
	return s.controlPointIn(id, p)
}

// ControlPointAt resolves the control point under p. Selected, uncovered
// shapes are searched first in selection order; then every other uncovered
// top-level shape from top to bottom.
func (s *Scene) ControlPointAt(p vector.Pt) (ControlPointHit, bool) {
	for _, id := range s.selection {
		if s.IsCovered(id) {
			continue
		}
		if hit, ok := s.controlPointIn(id, p); ok {
			return hit, true
		}
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if slices.Contains(s.selection, id) || s.IsCovered(id) {
			continue
		}
		if hit, ok := s.controlPointIn(id, p); ok {
			return hit, true
		}
	}
	return ControlPointHit{}, false
}

// ShapeOwningControlPointAt scans uncovered top-level shapes from top to
// bottom and returns the primitive owning the first control point within the
// hit radius of p. Composites are searched through their descendants, so the
// result is always a primitive.
func (s *Scene) ShapeOwningControlPointAt(p vector.Pt) (ShapeID, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		id := s.order[i]
		if s.IsCovered(id) {
			continue
		}
		if hit, ok := s.controlPointIn(id, p); ok {
			return hit.Owner, true
		}
	}
	return "", false
}

// ShapesInside returns the uncovered top-level shapes whose bounds lie fully
// inside r, bottom to top.
func (s *Scene) ShapesInside(r vector.Rect) []ShapeID {
	var out []ShapeID
	for _, id := range s.order {
		if r.ContainsRect(s.arena[id].Bounds()) && !s.IsCovered(id) {
			out = append(out, id)
		}
	}
	return out
}

// TopLevelOf maps any shape to the top-level shape containing it.
func (s *Scene) TopLevelOf(id ShapeID) (ShapeID, bool) {
	for _, top := range s.order {
		if slices.Contains(s.Descendants(top), id) {
			return top, true
		}
	}
	return "", false
}

// SelectionControlPoints lists the control points a renderer shows: those of
// every selected, uncovered shape, with composites expanded to their children.
func (s *Scene) SelectionControlPoints() []vector.Pt {
	var out []vector.Pt
	var collect func(ShapeID)
	collect = func(id ShapeID) {
		if s.IsCovered(id) {
			return
		}
		switch v := s.arena[id].(type) {
		case *Primitive:
			out = append(out, v.ControlPoints()...)
		case *Composite:
			for _, c := range v.children {
				collect(c)
			}
		}
	}
	for _, id := range s.selection {
		collect(id)
	}
	return out
}
