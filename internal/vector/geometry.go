/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package vector holds the pure 2D geometry used by the diagram scene:
// points, axis-aligned rectangles, point-in-outline tests, control points
// and arrowhead construction. Nothing in here keeps state.
//
// Float values use float32 to align with the UI toolkit coordinates.
package vector

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// P is a short constructor for Pt.
func P(x, y float32) Pt { return Pt{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Pt) Add(dx, dy float32) Pt { return Pt{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the component-wise difference p - q.
func (p Pt) Sub(q Pt) Pt { return Pt{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFromCorners normalizes two arbitrary corners into a Rect.
func RectFromCorners(a, b Pt) Rect {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

// Contains is an inclusive test: points on the edges are inside.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// ContainsRect reports whether o lies entirely within r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersects reports whether the interiors of r and o overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Translate moves the rectangle without changing its size.
func (r Rect) Translate(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.W, o.X+o.W)
	maxY := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// UnionAll folds Union over rs. It returns the zero Rect for empty input.
func UnionAll(rs ...Rect) Rect {
	if len(rs) == 0 {
		return Rect{}
	}
	u := rs[0]
	for _, r := range rs[1:] {
		u = u.Union(r)
	}
	return u
}

// OvalContains tests p against the ellipse inscribed in r:
// ((x-cx)/a)^2 + ((y-cy)/b)^2 <= 1.
func OvalContains(r Rect, p Pt) bool {
	a := float64(r.W) / 2
	b := float64(r.H) / 2
	if a == 0 || b == 0 {
		return false
	}
	c := r.Center()
	nx := (float64(p.X) - float64(c.X)) / a
	ny := (float64(p.Y) - float64(c.Y)) / b
	return nx*nx+ny*ny <= 1
}

// Distance is the Euclidean distance between p and q, computed in float64.
func Distance(p, q Pt) float64 {
	return math.Hypot(float64(p.X)-float64(q.X), float64(p.Y)-float64(q.Y))
}

// Angle returns the direction of the segment from -> to in radians.
func Angle(from, to Pt) float64 {
	return math.Atan2(float64(to.Y)-float64(from.Y), float64(to.X)-float64(from.X))
}
