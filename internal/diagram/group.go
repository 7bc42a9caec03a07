/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diagram

import (
	"slices"

	"workfloweditor/internal/vector"
)

// Group wraps the current selection into a new composite placed on top of the
// z-order and selects it. Fewer than two selected shapes is a no-op.
func (s *Scene) Group() (ShapeID, bool) {
	if len(s.selection) < 2 {
		return "", false
	}
	boxes := make([]vector.Rect, 0, len(s.selection))
	for _, id := range s.selection {
		boxes = append(boxes, s.arena[id].Bounds())
	}
	c := &Composite{
		id:       newShapeID(),
		bounds:   vector.UnionAll(boxes...),
		children: slices.Clone(s.selection),
	}
	s.order = slices.DeleteFunc(s.order, func(id ShapeID) bool { return slices.Contains(c.children, id) })
	s.arena[c.id] = c
	s.order = append(s.order, c.id)
	s.selection = []ShapeID{c.id}
	return c.id, true
}

// Ungroup dissolves a lone selected composite. Its children return to the top
// of the z-order in stored order, keeping their absolute coordinates, and
// become the selection.
func (s *Scene) Ungroup() ([]ShapeID, bool) {
	if len(s.selection) != 1 {
		return nil, false
	}
	c, ok := s.arena[s.selection[0]].(*Composite)
	if !ok {
		return nil, false
	}
	s.order = slices.DeleteFunc(s.order, func(id ShapeID) bool { return id == c.id })
	delete(s.arena, c.id)
	s.dropLinksTo(c.id)
	s.order = append(s.order, c.children...)
	s.selection = slices.Clone(c.children)
	return slices.Clone(c.children), true
}
