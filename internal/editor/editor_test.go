/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workfloweditor/internal/diagram"
	applog "workfloweditor/internal/log"
	"workfloweditor/internal/vector"
)

// place drops a rect with the default size at (x, y) and returns its handle.
func place(t *testing.T, e *Editor, m Mode, x, y float32) diagram.ShapeID {
	t.Helper()
	e.SetMode(m)
	e.PointerDown(x, y)
	e.PointerUp(x, y)
	top := e.Scene().TopLevel()
	require.NotEmpty(t, top)
	return top[len(top)-1]
}

func click(e *Editor, x, y float32) {
	e.PointerDown(x, y)
	e.PointerUp(x, y)
}

func drag(e *Editor, x0, y0, x1, y1 float32) {
	e.PointerDown(x0, y0)
	e.PointerMove(x1, y1)
	e.PointerUp(x1, y1)
}

func TestNew_StartsIdleInSelectMode(t *testing.T) {
	e := New()
	assert.Equal(t, ModeSelect, e.Mode())
	assert.Equal(t, Idle{}, e.Drag())
	assert.Zero(t, e.Scene().Len())
}

func TestPointerDown_CreatesDefaultShapes(t *testing.T) {
	e := New()
	r := place(t, e, ModeRect, 10, 20)
	o := place(t, e, ModeOval, 300, 20)

	rb, _ := e.Scene().Bounds(r)
	ob, _ := e.Scene().Bounds(o)
	assert.Equal(t, vector.R(10, 20, 90, 120), rb)
	assert.Equal(t, vector.R(300, 20, 120, 80), ob)

	sh, _ := e.Scene().Shape(o)
	assert.Equal(t, vector.OutlineOval, sh.(*diagram.Primitive).Outline())
	assert.Equal(t, []diagram.ShapeID{r, o}, e.Scene().TopLevel())
	assert.Empty(t, e.Scene().Selection(), "creation does not select")
}

func TestSelect_PicksRaisesAndDrags(t *testing.T) {
	e := New()
	a := place(t, e, ModeRect, 0, 0)
	b := place(t, e, ModeRect, 200, 0)
	e.SetMode(ModeSelect)

	e.PointerDown(45, 60)
	require.Equal(t, DraggingObject{Target: a, Last: vector.P(45, 60)}, e.Drag())
	assert.Equal(t, []diagram.ShapeID{a}, e.Scene().Selection())
	assert.Equal(t, []diagram.ShapeID{b, a}, e.Scene().TopLevel(), "picked shape is raised")

	e.PointerMove(50, 70)
	e.PointerMove(60, 80)
	ab, _ := e.Scene().Bounds(a)
	assert.Equal(t, vector.R(15, 20, 90, 120), ab)

	e.PointerUp(60, 80)
	assert.Equal(t, Idle{}, e.Drag())
}

func TestSelect_CoveredShapeStartsMarquee(t *testing.T) {
	e := New()
	place(t, e, ModeRect, 0, 0)
	place(t, e, ModeRect, 50, 50)
	e.SetMode(ModeSelect)

	e.PointerDown(10, 10)
	_, ok := e.Drag().(DraggingMarquee)
	assert.True(t, ok, "covered shape cannot be picked, got %s", e.Drag().Name())
	assert.Empty(t, e.Scene().Selection())
}

func TestMarquee_SelectsFullyContainedShapes(t *testing.T) {
	e := New()
	s1 := place(t, e, ModeRect, 10, 10)
	s2 := place(t, e, ModeRect, 190, 190)
	e.SetMode(ModeSelect)

	e.PointerDown(0, 0)
	e.PointerMove(100, 100)
	assert.Equal(t, vector.R(0, 0, 100, 100), e.Drag().(DraggingMarquee).Rect())
	e.PointerUp(200, 200)

	assert.Equal(t, []diagram.ShapeID{s1}, e.Scene().Selection())
	assert.NotContains(t, e.Scene().Selection(), s2)
	assert.Equal(t, Idle{}, e.Drag())
}

func TestMarquee_ReversedDragIsNormalized(t *testing.T) {
	e := New()
	s1 := place(t, e, ModeRect, 10, 10)
	e.SetMode(ModeSelect)
	drag(e, 300, 300, 0, 0)
	assert.Equal(t, []diagram.ShapeID{s1}, e.Scene().Selection())
}

func TestMarquee_EmptyOrTinyKeepsSelection(t *testing.T) {
	e := New()
	s1 := place(t, e, ModeRect, 10, 10)
	e.SetMode(ModeSelect)
	click(e, 50, 50)
	require.Equal(t, []diagram.ShapeID{s1}, e.Scene().Selection())

	drag(e, 400, 400, 600, 600)
	assert.Equal(t, []diagram.ShapeID{s1}, e.Scene().Selection(), "empty result keeps selection")

	// exactly 5 wide does not exceed the minimum extent
	drag(e, 0, 0, 5, 300)
	assert.Equal(t, []diagram.ShapeID{s1}, e.Scene().Selection())
}

// linkPair places A at (0,0) and B at (200,0), selects A and switches to m.
func linkPair(t *testing.T, m Mode) (*Editor, diagram.ShapeID, diagram.ShapeID) {
	t.Helper()
	e := New()
	a := place(t, e, ModeRect, 0, 0)
	b := place(t, e, ModeRect, 200, 0)
	e.SetMode(ModeSelect)
	click(e, 45, 60)
	require.Equal(t, []diagram.ShapeID{a}, e.Scene().Selection())
	e.SetMode(m)
	return e, a, b
}

func TestLinkDrag_CreatesTypedLink(t *testing.T) {
	e, a, b := linkPair(t, ModeGeneralization)

	e.PointerDown(92, 58)
	require.Equal(t, DraggingLink{Kind: diagram.Generalization, Source: a, Anchor: vector.P(90, 60), Pointer: vector.P(92, 58)}, e.Drag())
	e.PointerMove(150, 60)
	assert.Equal(t, vector.P(150, 60), e.Drag().(DraggingLink).Pointer)
	e.PointerUp(203, 63)

	require.Len(t, e.Scene().Links(), 1)
	assert.Equal(t, diagram.Link{Kind: diagram.Generalization, Source: a, Target: b,
		SourceAnchor: vector.P(90, 60), TargetAnchor: vector.P(200, 60)}, e.Scene().Links()[0])
	assert.Equal(t, Idle{}, e.Drag())
}

func TestLinkDrag_RejectsSelfLoop(t *testing.T) {
	e, _, _ := linkPair(t, ModeAssociation)
	drag(e, 90, 60, 90, 0)
	assert.Empty(t, e.Scene().Links())
	assert.Equal(t, Idle{}, e.Drag())
}

func TestLinkDrag_ReleaseAwayFromControlPointIsNoop(t *testing.T) {
	e, _, _ := linkPair(t, ModeComposition)
	drag(e, 90, 60, 245, 60)
	assert.Empty(t, e.Scene().Links())
	assert.Equal(t, Idle{}, e.Drag())
}

func TestLinkDown_NeedsSelectedControlPoint(t *testing.T) {
	e := New()
	place(t, e, ModeRect, 0, 0)
	e.SetMode(ModeAssociation)

	e.PointerDown(90, 60)
	assert.Equal(t, Idle{}, e.Drag(), "unselected shapes cannot start a link")

	e, _, _ = linkPair(t, ModeAssociation)
	e.PointerDown(45, 60)
	assert.Equal(t, Idle{}, e.Drag(), "pointer must be on a control point")
}

func TestLinkDrag_TargetCoveredShapeIsRejected(t *testing.T) {
	e, _, b := linkPair(t, ModeAssociation)
	// cover B's box from above
	place(t, e, ModeOval, 250, 100)
	e.SetMode(ModeAssociation)
	require.True(t, e.Scene().IsCovered(b))

	drag(e, 90, 60, 200, 60)
	assert.Empty(t, e.Scene().Links())
}

func TestObjectDrag_ReanchorsLinks(t *testing.T) {
	e, a, b := linkPair(t, ModeAssociation)
	drag(e, 90, 60, 200, 60)
	require.Len(t, e.Scene().Links(), 1)

	e.SetMode(ModeSelect)
	drag(e, 245, 60, 255, 65)
	bb, _ := e.Scene().Bounds(b)
	require.Equal(t, vector.R(210, 5, 90, 120), bb)

	l := e.Scene().Links()[0]
	want := vector.NearestControlPoint(vector.ControlPoints(bb, vector.OutlineRect), vector.P(200, 60))
	assert.Equal(t, want, l.TargetAnchor)
	assert.Equal(t, vector.P(90, 60), l.SourceAnchor)
	assert.Equal(t, a, l.Source)
}

func TestLinkDrag_TerminatesOnCompositeDescendant(t *testing.T) {
	e := New()
	a := place(t, e, ModeRect, 0, 0)
	b := place(t, e, ModeRect, 100, 0)
	src := place(t, e, ModeOval, 0, 300)
	e.SetMode(ModeSelect)
	drag(e, -10, -10, 250, 150)
	require.Equal(t, []diagram.ShapeID{a, b}, e.Scene().Selection())
	require.True(t, e.GroupSelection())

	click(e, 60, 340)
	require.Equal(t, []diagram.ShapeID{src}, e.Scene().Selection())
	e.SetMode(ModeAssociation)
	// top of the oval to the bottom-middle of b
	drag(e, 60, 300, 145, 120)

	require.Len(t, e.Scene().Links(), 1)
	l := e.Scene().Links()[0]
	assert.Equal(t, b, l.Target)
	assert.Equal(t, vector.P(145, 120), l.TargetAnchor)
}

func TestSetMode_CancelsGesture(t *testing.T) {
	e := New()
	place(t, e, ModeRect, 0, 0)
	e.SetMode(ModeSelect)
	e.PointerDown(500, 500)
	require.IsType(t, DraggingMarquee{}, e.Drag())

	e.SetMode(ModeOval)
	assert.Equal(t, Idle{}, e.Drag())
	e.PointerUp(0, 0)
	assert.Empty(t, e.Scene().Selection(), "cancelled marquee has no effect")
	assert.Equal(t, 1, e.Scene().Len())
}

func TestSetMode_InvalidPanics(t *testing.T) {
	assert.Panics(t, func() { New().SetMode(modeCount) })
}

func TestGroupAndUngroupSelection(t *testing.T) {
	e := New()
	a := place(t, e, ModeRect, 0, 0)
	b := place(t, e, ModeRect, 100, 0)
	e.SetMode(ModeSelect)
	assert.False(t, e.GroupSelection())

	drag(e, -5, -5, 300, 300)
	require.True(t, e.GroupSelection())
	require.Len(t, e.Scene().TopLevel(), 1)

	// dragging the composite moves both children
	drag(e, 45, 60, 55, 60)
	ab, _ := e.Scene().Bounds(a)
	assert.Equal(t, vector.R(10, 0, 90, 120), ab)

	require.True(t, e.UngroupSelection())
	assert.Equal(t, []diagram.ShapeID{a, b}, e.Scene().Selection())
	assert.False(t, e.UngroupSelection())
}

func TestSetLabelOnSelection(t *testing.T) {
	e := New()
	assert.False(t, e.SetLabelOnSelection("Hi", vector.OutlineOval, diagram.LabelColor("yellow"), 12))

	a := place(t, e, ModeRect, 0, 0)
	e.SetMode(ModeSelect)
	click(e, 10, 10)
	require.True(t, e.SetLabelOnSelection("Start", vector.OutlineRect, diagram.LabelColor("green"), 14))

	p, ok := e.LabelTarget()
	require.True(t, ok)
	assert.Equal(t, a, p.ID())
	l, ok := p.Label()
	require.True(t, ok)
	assert.Equal(t, diagram.Label{Text: "Start", Shape: vector.OutlineRect, Color: vector.RGB(200, 255, 200), FontSize: 14}, l)
}

func TestOnChangeAndSummary(t *testing.T) {
	e := New()
	n := 0
	e.OnChange(func() { n++ })
	e.SetMode(ModeRect)
	e.PointerDown(0, 0)
	e.PointerHover(5, 5)
	assert.Equal(t, 3, n)
	assert.Equal(t, vector.P(5, 5), e.Pointer())
	assert.Equal(t, "mode=rect drag=idle shapes=1 links=0 selected=0", e.Summary())
}

func TestSetModeName(t *testing.T) {
	e := New()
	require.NoError(t, e.SetModeName("Composition"))
	assert.Equal(t, ModeComposition, e.Mode())

	e.SetMode(ModeSelect)
	e.PointerDown(10, 10)
	err := e.SetModeName("lasso")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, ModeSelect, e.Mode())
	assert.IsType(t, DraggingMarquee{}, e.Drag(), "a rejected name leaves the gesture alone")
}

func TestLogRecordsCarryInteractionState(t *testing.T) {
	var buf strings.Builder
	applog.Init(applog.Options{Level: "debug", Format: "json", Writer: &buf})
	t.Cleanup(func() { applog.Init(applog.Options{Level: "error", Writer: io.Discard}) })

	e, _, _ := linkPair(t, ModeGeneralization)
	drag(e, 92, 58, 203, 63)
	require.Len(t, e.Scene().Links(), 1)

	var added map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["msg"] == "link added" {
			added = m
		}
	}
	require.NotNil(t, added, "no link record in %s", buf.String())
	assert.Equal(t, "editor", added["component"])
	assert.Equal(t, "complete-link", added["op"])
	assert.Equal(t, "generalization", added["mode"])
	assert.Equal(t, "dragging-link", added["drag"])
}
