/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// 2D geometry for the slide canvas. Coordinates are slide points.
// Float values use float32 to align with the UI toolkit.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

func (r Rect) Union(o Rect) Rect {
	x1 := minf(r.X, o.X)
	y1 := minf(r.Y, o.Y)
	x2 := maxf(r.X+r.W, o.X+o.W)
	y2 := maxf(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Center() Pt { return Pt{r.X + r.W/2, r.Y + r.H/2} }

// Affine2D is a 2x3 transform matrix in row-major order:
//
//	| A B E |
//	| C D F |
type Affine2D struct{ A, B, C, D, E, F float32 }

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.A*n.E + m.B*n.F + m.E,
		F: m.C*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{X: m.A*p.X + m.B*p.Y + m.E, Y: m.C*p.X + m.D*p.Y + m.F}
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }

func Rotate(rad float32) Affine2D {
	c := float32(math.Cos(float64(rad)))
	s := float32(math.Sin(float64(rad)))
	return Affine2D{A: c, B: -s, C: s, D: c}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// FloatRound rounds v to the given number of decimal places.
func FloatRound(v float32, places int) float32 {
	p := math.Pow(10, float64(places))
	return float32(math.Round(float64(v)*p) / p)
}
