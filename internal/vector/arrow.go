/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// ArrowSize is the length of an arrowhead wing.
const ArrowSize = 14

// back returns the point at distance size behind tip along angle+spread.
func back(tip Pt, angle, spread, size float64) Pt {
	return Pt{
		X: tip.X - float32(size*math.Cos(angle+spread)),
		Y: tip.Y - float32(size*math.Sin(angle+spread)),
	}
}

// OpenArrow returns the two wing endpoints of an open arrow at `to`.
// Each wing is drawn as a segment from `to`.
func OpenArrow(from, to Pt) (Pt, Pt) {
	a := Angle(from, to)
	return back(to, a, -math.Pi/6, ArrowSize), back(to, a, math.Pi/6, ArrowSize)
}

// Triangle returns the closed outline of a triangular head with its tip at `to`.
func Triangle(from, to Pt) []Pt {
	l, r := OpenArrow(from, to)
	return []Pt{to, l, r}
}

// Diamond returns a four-point rhombus whose front tip sits on `to`.
func Diamond(from, to Pt) []Pt {
	a := Angle(from, to)
	return []Pt{
		to,
		back(to, a, -math.Pi/4, ArrowSize),
		back(to, a, 0, ArrowSize*math.Sqrt2),
		back(to, a, math.Pi/4, ArrowSize),
	}
}
