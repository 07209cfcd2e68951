/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Alignment guides and snapping for dragging slide elements. The helpers are
// UI-agnostic and deterministic to enable unit testing.

import "math"

// SnapOptions controls which guide candidates are considered and the threshold.
type SnapOptions struct {
	// Threshold is the maximum distance in slide points at which snapping
	// occurs. Typical UI values are 6-8 points.
	Threshold float32
	// Snap to edges (left, right, top, bottom)
	SnapToEdges bool
	// Snap to centers (cx, cy)
	SnapToCenters bool
}

// Anchor is a static reference rect: another element's bounds or the page
// itself. Weight biases selection when distances tie (higher = preferred);
// the page is usually weighted above sibling elements.
type Anchor struct {
	Rect   Rect
	Weight float32
}

// GuideLine describes a visual guide generated during a snap alignment.
// Orientation is "vertical" or "horizontal". Kind indicates which features
// aligned: "edge" or "center". From and To denote the guide extents for
// rendering. Positions are rounded to 3 decimal places for determinism.
type GuideLine struct {
	Orientation string
	Kind        string
	Position    float32
	From        Pt
	To          Pt
}

// SnapToGuides computes snapping adjustments for a moving rectangle against
// a set of anchors. It returns the snapped rectangle and any guide lines to
// render for visual feedback. Snapping happens independently in X and Y.
func SnapToGuides(moving Rect, anchors []Anchor, opts SnapOptions) (Rect, []GuideLine) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var guides []GuideLine

	bestDX, bestDXDist, bestDXGuide := float32(0), float32(+1e9), (GuideLine{})
	bestDY, bestDYDist, bestDYGuide := float32(0), float32(+1e9), (GuideLine{})

	mL, mR, mT, mB := moving.X, moving.X+moving.W, moving.Y, moving.Y+moving.H
	mCX, mCY := moving.X+moving.W/2, moving.Y+moving.H/2

	for _, a := range anchors {
		aL, aR, aT, aB := a.Rect.X, a.Rect.X+a.Rect.W, a.Rect.Y, a.Rect.Y+a.Rect.H
		aCX, aCY := a.Rect.X+a.Rect.W/2, a.Rect.Y+a.Rect.H/2

		if opts.SnapToEdges {
			for _, c := range []struct {
				d float32
				x float32
			}{{mL - aL, aL}, {mR - aR, aR}, {mL - aR, aR}, {mR - aL, aL}} {
				considerAxis(&bestDX, &bestDXDist, &bestDXGuide, c.d, opts.Threshold, a.Weight, verticalGuide(c.x, moving, a.Rect, "edge"))
			}
			for _, c := range []struct {
				d float32
				y float32
			}{{mT - aT, aT}, {mB - aB, aB}, {mT - aB, aB}, {mB - aT, aT}} {
				considerAxis(&bestDY, &bestDYDist, &bestDYGuide, c.d, opts.Threshold, a.Weight, horizontalGuide(c.y, moving, a.Rect, "edge"))
			}
		}
		if opts.SnapToCenters {
			considerAxis(&bestDX, &bestDXDist, &bestDXGuide, mCX-aCX, opts.Threshold, a.Weight, verticalGuide(aCX, moving, a.Rect, "center"))
			considerAxis(&bestDY, &bestDYDist, &bestDYGuide, mCY-aCY, opts.Threshold, a.Weight, horizontalGuide(aCY, moving, a.Rect, "center"))
		}
	}

	snapped := moving
	if bestDXDist <= opts.Threshold {
		snapped.X = FloatRound(moving.X-bestDX, 3)
		guides = append(guides, bestDXGuide)
	}
	if bestDYDist <= opts.Threshold {
		snapped.Y = FloatRound(moving.Y-bestDY, 3)
		guides = append(guides, bestDYGuide)
	}
	return snapped, guides
}

func considerAxis(bestDelta *float32, bestD *float32, bestGuide *GuideLine, delta float32, threshold float32, weight float32, g GuideLine) {
	dist := float32(math.Abs(float64(delta)))
	if dist > threshold {
		return
	}
	score := dist / maxf(1, weight)
	if score < *bestD {
		*bestD = dist
		*bestDelta = delta
		*bestGuide = g
	}
}

func verticalGuide(x float32, a Rect, b Rect, kind string) GuideLine {
	minY := minf(a.Y, b.Y)
	maxY := maxf(a.Y+a.H, b.Y+b.H)
	x = FloatRound(x, 3)
	return GuideLine{Orientation: "vertical", Kind: kind, Position: x, From: Pt{x, minY}, To: Pt{x, maxY}}
}

func horizontalGuide(y float32, a Rect, b Rect, kind string) GuideLine {
	minX := minf(a.X, b.X)
	maxX := maxf(a.X+a.W, b.X+b.W)
	y = FloatRound(y, 3)
	return GuideLine{Orientation: "horizontal", Kind: kind, Position: y, From: Pt{minX, y}, To: Pt{maxX, y}}
}
