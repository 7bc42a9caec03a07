/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"testing"

	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/textlayout"
	"workfloweditor/internal/vector"
)

// linked builds two rects joined by a link of the given mode, with the first
// one selected and labeled.
func linked(t *testing.T, m editor.Mode) *editor.Editor {
	t.Helper()
	e := editor.New()
	e.SetMode(editor.ModeRect)
	e.PointerDown(0, 0)
	e.PointerDown(200, 0)
	e.SetMode(editor.ModeSelect)
	e.PointerDown(45, 60)
	e.PointerUp(45, 60)
	e.SetLabelOnSelection("Hi", vector.OutlineOval, diagram.LabelColor("yellow"), 12)
	e.SetMode(m)
	e.PointerDown(90, 60)
	e.PointerUp(200, 60)
	if len(e.Scene().Links()) != 1 {
		t.Fatalf("setup: expected one link, got %d", len(e.Scene().Links()))
	}
	return e
}

func countLayer(ops []Op, l Layer) int {
	n := 0
	for _, o := range ops {
		if o.Layer == l {
			n++
		}
	}
	return n
}

func TestCompile_PainterOrder(t *testing.T) {
	e := linked(t, editor.ModeGeneralization)
	ops := Compile(e, Options{Text: textlayout.BasicProvider{}})
	for i := 1; i < len(ops); i++ {
		if ops[i].Layer < ops[i-1].Layer {
			t.Fatalf("op %d (%v) drawn after higher layer %v", i, ops[i].Layer, ops[i-1].Layer)
		}
	}
	if n := countLayer(ops, LayerShapes); n != 2 {
		t.Fatalf("expected 2 shape ops, got %d", n)
	}
	if n := countLayer(ops, LayerHighlights); n != 1 {
		t.Fatalf("expected 1 highlight, got %d", n)
	}
	// line, triangle and two endpoint handles
	if n := countLayer(ops, LayerLinks); n != 4 {
		t.Fatalf("expected 4 link ops, got %d", n)
	}
	// the 8 control points of the selected rect
	if n := countLayer(ops, LayerHandles); n != 8 {
		t.Fatalf("expected 8 handles, got %d", n)
	}
}

func TestCompile_HighlightInflatesBounds(t *testing.T) {
	e := linked(t, editor.ModeAssociation)
	for _, o := range Compile(e, Options{Text: textlayout.BasicProvider{}}) {
		if o.Layer == LayerHighlights {
			if o.Rect != vector.R(-2, -2, 94, 124) || o.Fill.Enabled {
				t.Fatalf("unexpected highlight %+v", o)
			}
			return
		}
	}
	t.Fatalf("no highlight emitted")
}

func TestCompile_LabelBoxAndText(t *testing.T) {
	e := linked(t, editor.ModeComposition)
	var box, text *Op
	ops := Compile(e, Options{Text: textlayout.BasicProvider{}})
	for i := range ops {
		if ops[i].Layer != LayerLabels {
			continue
		}
		switch ops[i].Kind {
		case KindOval:
			box = &ops[i]
		case KindText:
			text = &ops[i]
		}
	}
	if box == nil || text == nil {
		t.Fatalf("label ops missing: %+v", ops)
	}
	if box.Rect != vector.R(5, 30, 80, 60) || box.Fill.Color != vector.RGB(255, 255, 200) {
		t.Fatalf("unexpected label box %+v", box)
	}
	if text.Text != "Hi" || text.FontSize != 12 || !box.Rect.Contains(text.Points[0]) {
		t.Fatalf("unexpected label text %+v", text)
	}
}

func TestCompile_ArrowPerLinkKind(t *testing.T) {
	cases := []struct {
		mode   editor.Mode
		kind   Kind
		points int
		filled bool
	}{
		{editor.ModeAssociation, KindLine, 3, false},
		{editor.ModeGeneralization, KindPolygon, 3, true},
		{editor.ModeComposition, KindPolygon, 4, true},
	}
	for _, c := range cases {
		ops := Compile(linked(t, c.mode), Options{Text: textlayout.BasicProvider{}})
		var head *Op
		for i := range ops {
			if ops[i].Layer == LayerLinks && i > 0 && ops[i-1].Layer == LayerLinks && ops[i-1].Kind == KindLine && len(ops[i-1].Points) == 2 {
				head = &ops[i]
				break
			}
		}
		if head == nil {
			t.Fatalf("%v: no arrow head", c.mode)
		}
		if head.Kind != c.kind || len(head.Points) != c.points || head.Fill.Enabled != c.filled {
			t.Fatalf("%v: unexpected head %+v", c.mode, head)
		}
		if head.Points[0] != vector.P(200, 60) && head.Points[1] != vector.P(200, 60) {
			t.Fatalf("%v: head must touch the target anchor: %+v", c.mode, head.Points)
		}
	}
}

func TestCompile_PreviewAndMarquee(t *testing.T) {
	e := linked(t, editor.ModeAssociation)
	e.PointerDown(90, 0)
	e.PointerMove(150, 40)
	ops := Compile(e, Options{Text: textlayout.BasicProvider{}})
	if n := countLayer(ops, LayerPreview); n != 2 {
		t.Fatalf("expected preview line and head, got %d", n)
	}
	e.SetMode(editor.ModeSelect)
	e.PointerDown(400, 400)
	e.PointerMove(300, 350)
	ops = Compile(e, Options{Text: textlayout.BasicProvider{}})
	last := ops[len(ops)-1]
	if last.Layer != LayerMarquee || last.Rect != vector.R(300, 350, 100, 50) {
		t.Fatalf("unexpected marquee %+v", last)
	}
	if countLayer(ops, LayerPreview) != 0 {
		t.Fatalf("preview must vanish after mode change")
	}
}

func TestCompile_CompositeDrawsChildren(t *testing.T) {
	e := editor.New()
	e.SetMode(editor.ModeOval)
	e.PointerDown(0, 0)
	e.PointerDown(200, 0)
	e.SetMode(editor.ModeSelect)
	e.PointerDown(-5, -5)
	e.PointerUp(400, 200)
	if !e.GroupSelection() {
		t.Fatalf("group failed")
	}
	ops := Compile(e, Options{Text: textlayout.BasicProvider{}})
	if n := countLayer(ops, LayerShapes); n != 2 {
		t.Fatalf("expected both children drawn, got %d", n)
	}
	if n := countLayer(ops, LayerHighlights); n != 2 {
		t.Fatalf("expected a highlight per child, got %d", n)
	}
	if n := countLayer(ops, LayerHandles); n != 8 {
		t.Fatalf("expected 4 handles per oval, got %d", n)
	}
	b := Bounds(ops)
	if !b.ContainsRect(vector.R(0, 0, 320, 80)) {
		t.Fatalf("bounds %+v do not cover the shapes", b)
	}
}

func TestDocument_DropsEditingFeedback(t *testing.T) {
	ops := Compile(linked(t, editor.ModeAssociation), Options{Text: textlayout.BasicProvider{}})
	doc := Document(ops)
	for _, o := range doc {
		if o.Layer.Interactive() {
			t.Fatalf("interactive op kept: %+v", o)
		}
	}
	if countLayer(doc, LayerShapes) != 2 || countLayer(doc, LayerLinks) != countLayer(ops, LayerLinks) {
		t.Fatalf("document lost shapes or links")
	}
	if len(doc) >= len(ops) {
		t.Fatalf("expected highlights and handles to be dropped")
	}
}
