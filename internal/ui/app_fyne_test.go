//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"testing"

	"goslidewriter/internal/domain"
	"goslidewriter/internal/engine"
)

func TestSlideCanvasDefaults(t *testing.T) {
	sc := NewSlideCanvas(engine.New(engine.Options{}))
	if sc.Slide() != 1 {
		t.Fatalf("initial slide = %d, want 1", sc.Slide())
	}
	if sc.pageW != 960 || sc.pageH != 540 {
		t.Fatalf("page geometry = %gx%g, want 960x540", sc.pageW, sc.pageH)
	}
	sc.SetSlide(0)
	if sc.Slide() != 1 {
		t.Fatalf("SetSlide(0) should clamp to 1, got %d", sc.Slide())
	}
}

func TestHitTestPrefersTopText(t *testing.T) {
	eng := engine.New(engine.Options{})
	sc := NewSlideCanvas(eng)

	a := eng.AddText(1, "bottom")
	b := eng.AddText(1, "top")
	// Both default to the same position; the later text is higher in the
	// layer order and must win the hit test.
	_ = a
	st := eng.TextStyle(b)
	hit, ok := sc.hitTest(st.X+1, st.Y+1)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.kind != engine.KindText || hit.id != b {
		t.Fatalf("hit = %v %q, want text %q", hit.kind, hit.id, b)
	}
}

func TestHitTestImage(t *testing.T) {
	eng := engine.New(engine.Options{})
	sc := NewSlideCanvas(eng)
	id := eng.AddImage(1, domain.Position{X: 500, Y: 300}, domain.Size{Width: 100, Height: 80})

	hit, ok := sc.hitTest(550, 340)
	if !ok || hit.kind != engine.KindImage || hit.id != id {
		t.Fatalf("hit = %v %v, want image %q", hit, ok, id)
	}
	if _, ok := sc.hitTest(700, 500); ok {
		t.Fatal("expected a miss outside every element")
	}
}

func TestTextBounds(t *testing.T) {
	el := domain.TextElement{Content: "ab\nlonger line", Style: domain.DefaultTextStyle()}
	el.Style.X = 10
	el.Style.Y = 20
	x, y, w, h := textBounds(el)
	if x != 10 || y != 20 {
		t.Fatalf("origin = %g,%g", x, y)
	}
	if w <= 0 || h <= 0 {
		t.Fatalf("degenerate bounds %gx%g", w, h)
	}
	if h < 2*el.Style.FontSize {
		t.Fatalf("two lines should span at least two font sizes, got %g", h)
	}
}

func TestTableBounds(t *testing.T) {
	el := domain.TableElement{Data: domain.TableData{Rows: [][]domain.TableCell{
		{{Content: "a"}, {Content: "b"}, {Content: "c"}},
		{{Content: "d"}},
	}}}
	w, h := tableBounds(el)
	if w != 360 || h != 56 {
		t.Fatalf("bounds = %gx%g, want 360x56", w, h)
	}
}

func TestParseColor(t *testing.T) {
	c := parseColor("#ff0080")
	r, g, b, _ := c.RGBA()
	if r>>8 != 0xff || g>>8 != 0x00 || b>>8 != 0x80 {
		t.Fatalf("parsed %v", c)
	}
	if parseColor("nope") != (color.RGBA{R: 24, G: 24, B: 24, A: 255}) {
		t.Fatal("malformed color should fall back to near-black")
	}
}

func TestCommitMoveUpdatesImage(t *testing.T) {
	eng := engine.New(engine.Options{})
	sc := NewSlideCanvas(eng)
	id := eng.AddImage(1, domain.Position{X: 100, Y: 100}, domain.Size{Width: 50, Height: 50})

	sc.moveHit = elementHit{kind: engine.KindImage, id: id}
	sc.moveRect = sc.elementRect(sc.moveHit)
	sc.moveRect.X = 200
	sc.moveRect.Y = 150
	sc.commitMove()

	el, ok := eng.Image(1, id)
	if !ok || el.Position.X != 200 || el.Position.Y != 150 {
		t.Fatalf("image after move = %+v %v", el, ok)
	}
	if !eng.Undo() {
		t.Fatal("move should be undoable")
	}
	el, _ = eng.Image(1, id)
	if el.Position.X != 100 {
		t.Fatalf("undo should restore position, got %+v", el.Position)
	}
}

func TestSnapAnchorsIncludePage(t *testing.T) {
	eng := engine.New(engine.Options{})
	sc := NewSlideCanvas(eng)
	idA := eng.AddImage(1, domain.Position{X: 10, Y: 10}, domain.Size{Width: 20, Height: 20})
	eng.AddImage(1, domain.Position{X: 50, Y: 50}, domain.Size{Width: 20, Height: 20})

	anchors := sc.snapAnchors(elementHit{kind: engine.KindImage, id: idA})
	// Page plus the one sibling; the moving element itself is excluded.
	if len(anchors) != 2 {
		t.Fatalf("anchors = %d, want 2", len(anchors))
	}
	if anchors[0].Rect.W != 960 || anchors[0].Weight <= anchors[1].Weight {
		t.Fatalf("page anchor should come first with higher weight: %+v", anchors[:2])
	}
}

func TestCopyAndDeleteSelected(t *testing.T) {
	eng := engine.New(engine.Options{})
	if copySelected(eng, 1) {
		t.Fatal("copy with empty selection should report false")
	}
	id := eng.AddText(1, "hello")
	eng.SelectText(id)
	if !copySelected(eng, 1) {
		t.Fatal("copy with a selected text should report true")
	}
	if !deleteSelected(eng, 1) {
		t.Fatal("delete with a selected text should report true")
	}
	if _, ok := eng.Text(id); ok {
		t.Fatal("text should be gone after deleteSelected")
	}
}
