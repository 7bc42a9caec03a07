/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diagram

import (
	"strings"

	"workfloweditor/internal/vector"
)

// SetLabel overwrites the label of the first selected shape. It does nothing
// when the selection is empty or starts with a composite.
func (s *Scene) SetLabel(l Label) bool {
	if len(s.selection) == 0 {
		return false
	}
	p, ok := s.arena[s.selection[0]].(*Primitive)
	if !ok {
		return false
	}
	p.label = &l
	return true
}

// Label box size, centered on the labeled shape.
const (
	LabelBoxWidth  = 80
	LabelBoxHeight = 60
)

// LabelBox is where a label background is drawn for a shape with bounds b.
func LabelBox(b vector.Rect) vector.Rect {
	return vector.R(b.X+(b.W-LabelBoxWidth)/2, b.Y+(b.H-LabelBoxHeight)/2, LabelBoxWidth, LabelBoxHeight)
}

// Named label colors offered by the label dialog.
var labelPalette = []struct {
	name  string
	color vector.Color
}{
	{"red", vector.RGB(255, 200, 200)},
	{"yellow", vector.RGB(255, 255, 200)},
	{"blue", vector.RGB(200, 200, 255)},
	{"green", vector.RGB(200, 255, 200)},
}

// DefaultLabelColor is used for unknown color names.
const DefaultLabelColor = "yellow"

// LabelColorNames lists the palette in display order.
func LabelColorNames() []string {
	out := make([]string, len(labelPalette))
	for i, e := range labelPalette {
		out[i] = e.name
	}
	return out
}

// LabelColor resolves a palette name, case-insensitively. Unknown names map to
// the default color.
func LabelColor(name string) vector.Color {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, e := range labelPalette {
		if e.name == n {
			return e.color
		}
	}
	return LabelColor(DefaultLabelColor)
}

// LabelColorName is the reverse lookup by RGB; alpha is ignored.
func LabelColorName(c vector.Color) (string, bool) {
	for _, e := range labelPalette {
		if e.color.R == c.R && e.color.G == c.G && e.color.B == c.B {
			return e.name, true
		}
	}
	return "", false
}

// LabelFontSizes are the sizes the label dialog offers.
var LabelFontSizes = []int{10, 12, 14, 16, 18}
