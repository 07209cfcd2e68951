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

import "testing"

func TestAreaSelectionDragCycle(t *testing.T) {
	e := newTestEngine()
	e.StartAreaSelection(1, 50, 80)
	area, ok := e.AreaSelection(1)
	if !ok || !area.Selecting {
		t.Fatalf("start did not enter selecting state: %+v", area)
	}
	if area.StartX != 50 || area.StartY != 80 || area.EndX != 50 || area.EndY != 80 {
		t.Fatalf("start rect should collapse to the anchor: %+v", area)
	}

	e.UpdateAreaSelection(1, 10, 10)
	e.FinishAreaSelection(1)
	area, _ = e.AreaSelection(1)
	if area.Selecting {
		t.Fatalf("finish left the slide in selecting state")
	}
	// raw coords are kept as dragged; normalization is a read-side concern
	if area.StartX != 50 || area.EndX != 10 {
		t.Fatalf("finish normalized the stored coords: %+v", area)
	}
	if area.Width() != 40 || area.Height() != 70 {
		t.Fatalf("rect = %gx%g, want 40x70", area.Width(), area.Height())
	}
	if o := area.Origin(); o.X != 10 || o.Y != 10 {
		t.Fatalf("origin = (%g, %g), want (10, 10)", o.X, o.Y)
	}
}

func TestAreaSelectionUpdateRequiresStart(t *testing.T) {
	e := newTestEngine()
	e.UpdateAreaSelection(1, 5, 5)
	if _, ok := e.AreaSelection(1); ok {
		t.Fatalf("update without start created a rect")
	}
	e.FinishAreaSelection(1) // also a no-op
	if _, ok := e.AreaSelection(1); ok {
		t.Fatalf("finish without start created a rect")
	}
}

func TestAreaSelectionUpdateAfterFinishIgnored(t *testing.T) {
	e := newTestEngine()
	e.StartAreaSelection(2, 0, 0)
	e.UpdateAreaSelection(2, 20, 20)
	e.FinishAreaSelection(2)
	e.UpdateAreaSelection(2, 99, 99)
	area, _ := e.AreaSelection(2)
	if area.EndX != 20 || area.EndY != 20 {
		t.Fatalf("update after finish moved the rect: %+v", area)
	}
}

func TestAreaSelectionPerSlideIsolation(t *testing.T) {
	e := newTestEngine()
	e.StartAreaSelection(1, 0, 0)
	e.UpdateAreaSelection(1, 5, 5)
	e.StartAreaSelection(2, 100, 100)

	a1, _ := e.AreaSelection(1)
	a2, _ := e.AreaSelection(2)
	if a1.EndX != 5 || a2.StartX != 100 {
		t.Fatalf("slides share rect state: %+v / %+v", a1, a2)
	}

	e.ClearAreaSelection(1)
	if _, ok := e.AreaSelection(1); ok {
		t.Fatalf("clear failed")
	}
	if _, ok := e.AreaSelection(2); !ok {
		t.Fatalf("clear leaked to another slide")
	}
}

func TestAreaSelectionStaysOutOfHistory(t *testing.T) {
	e := newTestEngine()
	e.SetAreaSelectionMode(true)
	if !e.AreaSelectionMode() {
		t.Fatalf("mode flag not set")
	}
	e.StartAreaSelection(1, 0, 0)
	e.UpdateAreaSelection(1, 10, 10)
	e.FinishAreaSelection(1)
	e.ClearAreaSelection(1)
	e.SetAreaSelectionMode(false)
	if _, _, _, _, depth := e.Stats(); depth != 0 {
		t.Fatalf("area selection pushed %d history entries", depth)
	}
	if e.CanUndo() {
		t.Fatalf("area selection made undo available")
	}
}

func TestRestartOverwritesPreviousRect(t *testing.T) {
	e := newTestEngine()
	e.StartAreaSelection(1, 0, 0)
	e.UpdateAreaSelection(1, 30, 30)
	e.FinishAreaSelection(1)
	e.StartAreaSelection(1, 7, 8)
	area, _ := e.AreaSelection(1)
	if !area.Selecting || area.StartX != 7 || area.StartY != 8 || area.EndX != 7 {
		t.Fatalf("restart did not reset the rect: %+v", area)
	}
}
