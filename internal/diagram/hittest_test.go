/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workfloweditor/internal/vector"
)

func TestContains_PrimitivesAndNestedComposite(t *testing.T) {
	s := NewScene()
	r := rect(s, 0, 0, 100, 50)
	o := s.AddPrimitive(vector.OutlineOval, vector.R(200, 0, 100, 50))

	assert.True(t, s.Contains(r, vector.P(0, 0)))
	assert.True(t, s.Contains(r, vector.P(100, 50)))
	assert.False(t, s.Contains(r, vector.P(101, 0)))
	assert.True(t, s.Contains(o, vector.P(250, 25)))
	assert.False(t, s.Contains(o, vector.P(200, 0)))

	s.Select(r, o)
	g, _ := s.Group()
	assert.True(t, s.Contains(g, vector.P(250, 25)))
	// inside the composite box but between the children
	assert.False(t, s.Contains(g, vector.P(150, 25)))
	assert.False(t, s.Contains("missing", vector.P(0, 0)))
}

func TestTopmostShapeAt_PicksHighestZ(t *testing.T) {
	s := NewScene()
	rect(s, 0, 0, 100, 100)
	rect(s, 10, 10, 100, 100)
	c := rect(s, 20, 20, 100, 100)

	got, ok := s.TopmostShapeAt(vector.P(50, 50))
	require.True(t, ok)
	assert.Equal(t, c, got)

	_, ok = s.TopmostShapeAt(vector.P(500, 500))
	assert.False(t, ok)
}

func TestIsCovered_BoxOverlapWithHigherZ(t *testing.T) {
	s := NewScene()
	a := rect(s, 0, 0, 100, 100)
	b := rect(s, 10, 10, 50, 50)
	assert.True(t, s.IsCovered(a))
	assert.False(t, s.IsCovered(b))
	assert.False(t, s.IsCovered("missing"))

	// an oval's box corner overlapping counts even if pixels would not
	s2 := NewScene()
	low := rect(s2, 0, 0, 50, 50)
	s2.AddPrimitive(vector.OutlineOval, vector.R(45, 45, 50, 50))
	assert.True(t, s2.IsCovered(low))

	// touching edges are not an overlap
	s3 := NewScene()
	left := rect(s3, 0, 0, 50, 50)
	rect(s3, 50, 0, 50, 50)
	assert.False(t, s3.IsCovered(left))
}

func TestControlPointAt_SelectedShapesWin(t *testing.T) {
	s := NewScene()
	a := rect(s, 0, 0, 100, 100)
	b := rect(s, 105, 0, 100, 100)
	p := vector.P(102, 0)

	hit, ok := s.ControlPointAt(p)
	require.True(t, ok)
	assert.Equal(t, b, hit.Owner, "without selection the upper shape wins")
	assert.Equal(t, vector.P(105, 0), hit.Point)

	s.Select(a)
	hit, ok = s.ControlPointAt(p)
	require.True(t, ok)
	assert.Equal(t, a, hit.Owner)
	assert.Equal(t, vector.P(100, 0), hit.Point)
}

func TestControlPointAt_SkipsCoveredShapes(t *testing.T) {
	s := NewScene()
	low := rect(s, 0, 0, 100, 100)
	rect(s, 50, 50, 100, 100)
	s.Select(low)

	_, ok := s.ControlPointAt(vector.P(0, 0))
	assert.False(t, ok, "covered shape offers no control points even when selected")

	hit, ok := s.ControlPointAt(vector.P(150, 150))
	require.True(t, ok)
	assert.Equal(t, vector.P(150, 150), hit.Point)
}

func TestShapeOwningControlPointAt_ResolvesDescendant(t *testing.T) {
	s := NewScene()
	a := rect(s, 10, 10, 20, 20)
	b := rect(s, 50, 10, 20, 20)
	s.Select(a, b)
	_, ok := s.Group()
	require.True(t, ok)

	owner, ok := s.ShapeOwningControlPointAt(vector.P(70, 30))
	require.True(t, ok)
	assert.Equal(t, b, owner)

	_, ok = s.ShapeOwningControlPointAt(vector.P(40, 60))
	assert.False(t, ok)
}

func TestShapeOwningControlPointAt_TopmostUncoveredFirst(t *testing.T) {
	s := NewScene()
	a := rect(s, 0, 0, 100, 100)
	b := rect(s, 105, 0, 100, 100)
	owner, ok := s.ShapeOwningControlPointAt(vector.P(102, 0))
	require.True(t, ok)
	assert.Equal(t, b, owner)

	s.Raise(a)
	owner, _ = s.ShapeOwningControlPointAt(vector.P(102, 0))
	assert.Equal(t, a, owner)
}

func TestShapesInside_FullyContainedAndUncovered(t *testing.T) {
	s := NewScene()
	s1 := rect(s, 10, 10, 20, 20)
	rect(s, 190, 190, 30, 30)
	assert.Equal(t, []ShapeID{s1}, s.ShapesInside(vector.R(0, 0, 200, 200)))

	s2 := NewScene()
	under := rect(s2, 10, 10, 20, 20)
	over := rect(s2, 15, 15, 20, 20)
	assert.Equal(t, []ShapeID{over}, s2.ShapesInside(vector.R(0, 0, 100, 100)))
	assert.NotContains(t, s2.ShapesInside(vector.R(0, 0, 100, 100)), under)
}

func TestSelectionControlPoints_ExpandsComposites(t *testing.T) {
	s := NewScene()
	a := rect(s, 10, 10, 20, 20)
	b := s.AddPrimitive(vector.OutlineOval, vector.R(50, 10, 20, 20))
	s.Select(a, b)
	assert.Len(t, s.SelectionControlPoints(), 12)

	s.Group()
	assert.Len(t, s.SelectionControlPoints(), 12)

	rect(s, 0, 0, 200, 200)
	assert.Empty(t, s.SelectionControlPoints(), "a covered composite shows nothing")
}

func TestIsCovered_NestedFollowsTopLevelAncestor(t *testing.T) {
	s := NewScene()
	a := rect(s, 10, 10, 20, 20)
	b := rect(s, 50, 10, 20, 20)
	s.Select(a, b)
	g, ok := s.Group()
	require.True(t, ok)
	assert.False(t, s.IsCovered(a))

	rect(s, 60, 0, 40, 40)
	assert.True(t, s.IsCovered(g))
	assert.True(t, s.IsCovered(a), "a child shares the occlusion of its group")
	assert.True(t, s.IsCovered(b))
}
