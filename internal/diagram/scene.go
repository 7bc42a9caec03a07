/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package diagram is the scene model of the workflow editor: an arena of
// shapes addressed by ShapeID, the z-ordered top-level sequence, links and the
// selection. It also answers the occlusion and hit-testing queries the
// interaction layer relies on.
//
// A Scene is not safe for concurrent use; the editor serializes all access.
package diagram

import (
	"fmt"
	"slices"

	"workfloweditor/internal/vector"
)

// Scene owns every shape. The top-level order is the z-order: index 0 is the
// bottom, the last element is topmost. Nested shapes live in the arena too but
// are reachable only through their composite.
type Scene struct {
	arena     map[ShapeID]Shape
	order     []ShapeID
	links     []Link
	selection []ShapeID
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{arena: make(map[ShapeID]Shape)}
}

// AddPrimitive appends a new leaf shape on top of the z-order.
func (s *Scene) AddPrimitive(o vector.Outline, bounds vector.Rect) ShapeID {
	if bounds.W <= 0 || bounds.H <= 0 {
		panic(fmt.Sprintf("diagram: shape bounds must be positive, got %+v", bounds))
	}
	p := &Primitive{id: newShapeID(), outline: o, bounds: bounds}
	s.arena[p.id] = p
	s.order = append(s.order, p.id)
	return p.id
}

// Shape looks up any shape in the arena, nested or top-level.
func (s *Scene) Shape(id ShapeID) (Shape, bool) {
	sh, ok := s.arena[id]
	return sh, ok
}

// TopLevel returns the top-level handles bottom to top.
func (s *Scene) TopLevel() []ShapeID { return slices.Clone(s.order) }

// Len is the number of top-level shapes.
func (s *Scene) Len() int { return len(s.order) }

// Index returns the z-order of a top-level shape, or -1.
func (s *Scene) Index(id ShapeID) int { return slices.Index(s.order, id) }

// Links returns a copy of the link set in creation order.
func (s *Scene) Links() []Link { return slices.Clone(s.links) }

// Selection returns the selected handles in selection order.
func (s *Scene) Selection() []ShapeID { return slices.Clone(s.selection) }

// IsSelected reports whether id is part of the selection.
func (s *Scene) IsSelected(id ShapeID) bool { return slices.Contains(s.selection, id) }

// Select replaces the selection. Unknown and non top-level handles are
// dropped, as are duplicates.
func (s *Scene) Select(ids ...ShapeID) {
	sel := make([]ShapeID, 0, len(ids))
	for _, id := range ids {
		if s.Index(id) < 0 || slices.Contains(sel, id) {
			continue
		}
		sel = append(sel, id)
	}
	s.selection = sel
}

// Raise moves a top-level shape to the top of the z-order.
func (s *Scene) Raise(id ShapeID) {
	i := s.Index(id)
	if i < 0 || i == len(s.order)-1 {
		return
	}
	s.order = append(slices.Delete(s.order, i, i+1), id)
}

// Descendants returns id followed by every shape nested below it, depth-first
// in child order.
func (s *Scene) Descendants(id ShapeID) []ShapeID {
	var out []ShapeID
	var walk func(ShapeID)
	walk = func(cur ShapeID) {
		sh, ok := s.arena[cur]
		if !ok {
			return
		}
		out = append(out, cur)
		switch v := sh.(type) {
		case *Primitive:
		case *Composite:
			for _, c := range v.children {
				walk(c)
			}
		default:
			panic(fmt.Sprintf("diagram: unknown shape type %T", sh))
		}
	}
	walk(id)
	return out
}

// Move translates a shape and all its descendants by (dx, dy) and re-snaps the
// anchors of every link attached to any of them.
func (s *Scene) Move(id ShapeID, dx, dy float32) {
	moved := s.Descendants(id)
	for _, m := range moved {
		switch v := s.arena[m].(type) {
		case *Primitive:
			v.bounds = v.bounds.Translate(dx, dy)
		case *Composite:
			v.bounds = v.bounds.Translate(dx, dy)
		}
	}
	for i := range s.links {
		l := &s.links[i]
		if slices.Contains(moved, l.Source) {
			l.SourceAnchor = s.resnap(l.Source, l.SourceAnchor)
		}
		if slices.Contains(moved, l.Target) {
			l.TargetAnchor = s.resnap(l.Target, l.TargetAnchor)
		}
	}
}

func (s *Scene) resnap(id ShapeID, prev vector.Pt) vector.Pt {
	p := mustPrimitive(s.arena[id])
	return vector.NearestControlPoint(p.ControlPoints(), prev)
}

// AddLink records a new link. It refuses self links and links whose
// endpoints are not primitives of this scene.
func (s *Scene) AddLink(l Link) bool {
	if l.Source == l.Target {
		return false
	}
	for _, id := range []ShapeID{l.Source, l.Target} {
		if _, ok := s.arena[id].(*Primitive); !ok {
			return false
		}
	}
	s.links = append(s.links, l)
	return true
}

// dropLinksTo removes links that reference id.
func (s *Scene) dropLinksTo(id ShapeID) {
	s.links = slices.DeleteFunc(s.links, func(l Link) bool { return l.Source == id || l.Target == id })
}

// Bounds returns the bounding box of any shape in the arena.
func (s *Scene) Bounds(id ShapeID) (vector.Rect, bool) {
	sh, ok := s.arena[id]
	if !ok {
		return vector.Rect{}, false
	}
	return sh.Bounds(), true
}
