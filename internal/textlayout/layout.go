/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Text measurement and line breaking for shape labels, behind interfaces
// that can be backed by the embedded Go font or by basicfont in tests.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// Span is a run of text with the same font/style.
type Span struct {
	Text string
	Font FontSpec
}

// Line is a single laid out line with width and ascent/descent.
type Line struct {
	Spans   []Span
	Width   float32
	Ascent  float32
	Descent float32
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// Layouter performs line-breaking and measurement.
type Layouter interface {
	Layout(spans []Span, maxWidth float32) (TextBox, error)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	return basicfont.Face7x13, metricsOf(basicfont.Face7x13)
}

// WordWrapLayouter is a simple layouter that breaks on spaces and newlines; it
// does not perform shaping or hyphenation. All spans are measured with the
// font of the first one.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

func (l *WordWrapLayouter) Layout(spans []Span, maxWidth float32) (TextBox, error) {
	if l.Provider == nil {
		l.Provider = BasicProvider{}
	}
	var spec FontSpec
	if len(spans) > 0 {
		spec = spans[0].Font
	}
	face, met := l.Provider.Resolve(spec)
	drawer := &font.Drawer{Face: face}
	cur := Line{Ascent: met.Ascent, Descent: met.Descent}
	box := TextBox{Metrics: met}
	addLine := func() {
		box.Lines = append(box.Lines, cur)
		if cur.Width > box.Width {
			box.Width = cur.Width
		}
		box.Height += met.Ascent + met.Descent + met.LineGap
		cur = Line{Ascent: met.Ascent, Descent: met.Descent}
	}
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		start := 0
		for i := 0; i <= len(sp.Text); i++ {
			if i == len(sp.Text) || sp.Text[i] == ' ' || sp.Text[i] == '\n' {
				word := sp.Text[start:i]
				space := byte(0)
				if i < len(sp.Text) {
					space = sp.Text[i]
				}
				w := advance(drawer, word)
				// a word wider than maxWidth still gets a line of its own
				if cur.Width > 0 && cur.Width+w > maxWidth && maxWidth > 0 {
					addLine()
				}
				if word != "" {
					cur.Spans = append(cur.Spans, Span{Text: word, Font: sp.Font})
					cur.Width += w
				}
				if space == ' ' {
					ws := advance(drawer, " ")
					cur.Spans = append(cur.Spans, Span{Text: " ", Font: sp.Font})
					cur.Width += ws
				} else if space == '\n' {
					addLine()
				}
				start = i + 1
			}
		}
	}
	if len(cur.Spans) > 0 || len(box.Lines) == 0 {
		addLine()
	}
	return box, nil
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Measure provides a quick way to measure text width/height without line-breaks.
// The height is that of the tallest span.
func Measure(provider Provider, spans []Span) (w, h float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	for _, sp := range spans {
		face, met := provider.Resolve(sp.Font)
		w += advance(&font.Drawer{Face: face}, sp.Text)
		h = max(h, met.Ascent+met.Descent)
	}
	return w, h
}
