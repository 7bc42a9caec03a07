/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Blue        = Color{0, 0, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

type Fill struct {
	Color   Color
	Enabled bool
}

type Stroke struct {
	Color   Color
	Width   float32
	Enabled bool
}

// Solid is an enabled fill of c.
func Solid(c Color) Fill { return Fill{Color: c, Enabled: true} }

// Line is an enabled stroke of c and width w.
func Line(c Color, w float32) Stroke { return Stroke{Color: c, Width: w, Enabled: true} }
