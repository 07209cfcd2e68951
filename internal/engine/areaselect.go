/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package engine

import "goslidewriter/internal/domain"

// Image area selection: a per-slide drag rectangle marking where a
// to-be-placed image should go. The machine goes Idle -> Selecting -> Idle.
// Coordinates stay exactly as dragged; consumers normalize. This state is
// interaction-transient and deliberately outside the undo history. A global
// mode flag gates whether mouse events are routed here at all.

// SetAreaSelectionMode turns area-selection mode on or off. Turning it off
// leaves any finished rectangles in place.
func (e *Engine) SetAreaSelectionMode(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.areaMode = on
}

// AreaSelectionMode reports whether mouse events should be routed into the
// area-selection machine.
func (e *Engine) AreaSelectionMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.areaMode
}

// StartAreaSelection begins a drag on the slide at (x, y).
func (e *Engine) StartAreaSelection(slide int, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.area[slide] = domain.AreaSelection{Selecting: true, StartX: x, StartY: y, EndX: x, EndY: y}
}

// UpdateAreaSelection moves the drag end point. Valid only while a drag is
// in progress on the slide; otherwise a no-op.
func (e *Engine) UpdateAreaSelection(slide int, x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.area[slide]
	if !ok || !a.Selecting {
		return
	}
	a.EndX = x
	a.EndY = y
	e.area[slide] = a
}

// FinishAreaSelection ends the drag, retaining the rectangle. A no-op when
// no drag is in progress on the slide.
func (e *Engine) FinishAreaSelection(slide int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.area[slide]
	if !ok || !a.Selecting {
		return
	}
	a.Selecting = false
	e.area[slide] = a
}

// ClearAreaSelection removes the slide's rectangle entirely, from either
// state.
func (e *Engine) ClearAreaSelection(slide int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.area, slide)
}

// AreaSelection returns the slide's rectangle; ok is false when none exists.
func (e *Engine) AreaSelection(slide int) (domain.AreaSelection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.area[slide]
	return a, ok
}
