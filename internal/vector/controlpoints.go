/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "fmt"

// HitRadius is the inclusive pick distance around a control point.
const HitRadius = 10

// Outline is the silhouette of a leaf shape.
type Outline uint8

const (
	OutlineRect Outline = iota
	OutlineOval
)

func (o Outline) String() string {
	switch o {
	case OutlineRect:
		return "rect"
	case OutlineOval:
		return "oval"
	default:
		return fmt.Sprintf("outline(%d)", uint8(o))
	}
}

// Contains dispatches the point-in-outline test for r.
func (o Outline) Contains(r Rect, p Pt) bool {
	switch o {
	case OutlineRect:
		return r.Contains(p)
	case OutlineOval:
		return OvalContains(r, p)
	default:
		panic(fmt.Sprintf("vector: no hit test for %s", o))
	}
}

// ControlPoints enumerates the connection candidates of a leaf shape in a
// fixed order. Ovals yield top, bottom, left, right midpoints. Rects yield the
// four corners (TL, TR, BL, BR) followed by the same four edge midpoints.
func ControlPoints(r Rect, o Outline) []Pt {
	top := Pt{r.X + r.W/2, r.Y}
	bottom := Pt{r.X + r.W/2, r.Y + r.H}
	left := Pt{r.X, r.Y + r.H/2}
	right := Pt{r.X + r.W, r.Y + r.H/2}
	switch o {
	case OutlineOval:
		return []Pt{top, bottom, left, right}
	case OutlineRect:
		return []Pt{
			{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H},
			top, bottom, left, right,
		}
	default:
		panic(fmt.Sprintf("vector: no control points for %s", o))
	}
}

// WithinHitRadius reports whether p is close enough to cp to pick it.
func WithinHitRadius(cp, p Pt) bool { return Distance(cp, p) <= HitRadius }

// ControlPointNear returns the first point of pts within the hit radius of p.
func ControlPointNear(pts []Pt, p Pt) (Pt, bool) {
	for _, cp := range pts {
		if WithinHitRadius(cp, p) {
			return cp, true
		}
	}
	return Pt{}, false
}

// NearestControlPoint picks the point of pts closest to target. Ties go to the
// earliest point. pts must not be empty.
func NearestControlPoint(pts []Pt, target Pt) Pt {
	if len(pts) == 0 {
		panic("vector: NearestControlPoint on empty set")
	}
	best := pts[0]
	bestD := Distance(best, target)
	for _, cp := range pts[1:] {
		if d := Distance(cp, target); d < bestD {
			best, bestD = cp, d
		}
	}
	return best
}
