/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sample builds a small publishing workflow by driving an editor with
// the same pointer events and commands a user would issue.
package sample

import (
	"fmt"

	"workfloweditor/internal/diagram"
	"workfloweditor/internal/editor"
	"workfloweditor/internal/vector"
)

type node struct {
	mode  editor.Mode
	at    vector.Pt
	label diagram.Label
}

// The three stages sit in a row; the two outcomes sit below in ovals.
var nodes = []node{
	{editor.ModeRect, vector.P(40, 40), diagram.Label{Text: "Draft", Shape: vector.OutlineRect, Color: diagram.LabelColor("green"), FontSize: 14}},
	{editor.ModeRect, vector.P(240, 40), diagram.Label{Text: "Review", Shape: vector.OutlineOval, Color: diagram.LabelColor("yellow"), FontSize: 14}},
	{editor.ModeRect, vector.P(440, 40), diagram.Label{Text: "Publish", Shape: vector.OutlineRect, Color: diagram.LabelColor("blue"), FontSize: 14}},
	{editor.ModeOval, vector.P(225, 260), diagram.Label{Text: "Archive", Shape: vector.OutlineOval, Color: diagram.LabelColor("red"), FontSize: 12}},
	{editor.ModeOval, vector.P(425, 260), diagram.Label{Text: "Notify readers", Shape: vector.OutlineRect, Color: diagram.LabelColor("yellow"), FontSize: 10}},
}

// A link is drawn by selecting the shape under sel, then dragging from one of
// its control points to a control point of the target.
var links = []struct {
	mode     editor.Mode
	sel      vector.Pt
	from, to vector.Pt
}{
	{editor.ModeAssociation, vector.P(85, 100), vector.P(130, 100), vector.P(240, 100)},
	{editor.ModeAssociation, vector.P(285, 100), vector.P(330, 100), vector.P(440, 100)},
	{editor.ModeComposition, vector.P(285, 100), vector.P(285, 160), vector.P(285, 260)},
	{editor.ModeGeneralization, vector.P(485, 300), vector.P(485, 260), vector.P(485, 160)},
}

// Build returns an editor holding the sample workflow: five labeled shapes,
// four links and the two outcome ovals grouped.
func Build() *editor.Editor {
	e := editor.New()

	for _, n := range nodes {
		e.SetMode(n.mode)
		e.PointerDown(n.at.X, n.at.Y)
		e.PointerUp(n.at.X, n.at.Y)
	}

	e.SetMode(editor.ModeSelect)
	for i, n := range nodes {
		w, h := float32(editor.RectWidth), float32(editor.RectHeight)
		if n.mode == editor.ModeOval {
			w, h = editor.OvalWidth, editor.OvalHeight
		}
		click(e, n.at.X+w/2, n.at.Y+h/2)
		if !e.SetLabelOnSelection(n.label.Text, n.label.Shape, n.label.Color, n.label.FontSize) {
			panic(fmt.Sprintf("sample: label %q not applied to node %d", n.label.Text, i))
		}
	}

	for _, l := range links {
		e.SetMode(editor.ModeSelect)
		click(e, l.sel.X, l.sel.Y)
		e.SetMode(l.mode)
		e.PointerDown(l.from.X, l.from.Y)
		e.PointerMove((l.from.X+l.to.X)/2, (l.from.Y+l.to.Y)/2)
		e.PointerUp(l.to.X, l.to.Y)
	}

	// marquee around both ovals
	e.SetMode(editor.ModeSelect)
	e.PointerDown(215, 250)
	e.PointerMove(400, 300)
	e.PointerUp(555, 350)
	e.GroupSelection()
	return e
}

func click(e *editor.Editor, x, y float32) {
	e.PointerDown(x, y)
	e.PointerUp(x, y)
}
