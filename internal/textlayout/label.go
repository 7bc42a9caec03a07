/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"

	"golang.org/x/image/font"

	"workfloweditor/internal/vector"
)

// LabelPadding is kept free on the left and right of a label box when
// wrapping.
const LabelPadding = 4

// PlacedLine is one line of label text with its baseline origin.
type PlacedLine struct {
	Text   string
	Origin vector.Pt
	Width  float32
}

// PlaceLabel lays text out inside box: lines are wrapped to the box width,
// each centered horizontally, and the block is centered vertically. A single
// line sits on the baseline box.Y + (box.H + ascent - descent) / 2.
func PlaceLabel(p Provider, text string, sizePt float32, box vector.Rect) []PlacedLine {
	if p == nil {
		p = BasicProvider{}
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	spec := FontSpec{Family: DefaultFamily, SizePt: sizePt, Weight: 400}
	tb, _ := NewWordWrap(p).Layout([]Span{{Text: text, Font: spec}}, box.W-2*LabelPadding)

	face, met := p.Resolve(spec)
	d := &font.Drawer{Face: face}
	n := float32(len(tb.Lines))
	total := n*(met.Ascent+met.Descent) + (n-1)*met.LineGap
	baseline := box.Y + (box.H-total)/2 + met.Ascent

	out := make([]PlacedLine, 0, len(tb.Lines))
	for _, ln := range tb.Lines {
		var b strings.Builder
		for _, sp := range ln.Spans {
			b.WriteString(sp.Text)
		}
		s := strings.TrimRight(b.String(), " ")
		w := advance(d, s)
		out = append(out, PlacedLine{Text: s, Origin: vector.P(box.X+(box.W-w)/2, baseline), Width: w})
		baseline += met.Ascent + met.Descent + met.LineGap
	}
	return out
}
