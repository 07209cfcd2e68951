/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestTextStylePatchApply(t *testing.T) {
	s := DefaultTextStyle()
	size := 24.0
	bold := "bold"
	x := 120.0
	p := TextStylePatch{FontSize: &size, FontWeight: &bold, X: &x}
	p.Apply(&s)
	if s.FontSize != 24 || s.FontWeight != "bold" || s.X != 120 {
		t.Fatalf("patch not applied: %+v", s)
	}
	// untouched fields keep defaults
	if s.TextAlign != AlignLeft || s.Color != "#181818" || s.Y != 0 {
		t.Fatalf("patch touched unrelated fields: %+v", s)
	}
}

func TestTableDataCloneIsDeep(t *testing.T) {
	d := TableData{Rows: [][]TableCell{{{Content: "a"}, {Content: "b"}}}}
	c := d.Clone()
	c.Rows[0][0].Content = "z"
	if d.Rows[0][0].Content != "a" {
		t.Fatalf("clone shares row storage")
	}
}

func TestAreaSelectionNormalization(t *testing.T) {
	a := AreaSelection{StartX: 50, StartY: 80, EndX: 10, EndY: 10}
	if a.Width() != 40 || a.Height() != 70 {
		t.Fatalf("got %vx%v, want 40x70", a.Width(), a.Height())
	}
	o := a.Origin()
	if o.X != 10 || o.Y != 10 {
		t.Fatalf("origin %+v, want (10,10)", o)
	}
}

func TestDefaultTextStyle(t *testing.T) {
	s := DefaultTextStyle()
	if s.FontSize != 14 || s.TextAlign != "left" || s.Color != "#181818" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.FontWeight != "normal" || s.FontStyle != "normal" || s.TextDecoration != "none" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.X != 0 || s.Y != 0 || s.Rotation != 0 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}
