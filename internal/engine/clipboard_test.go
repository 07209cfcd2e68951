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

import (
	"testing"

	"goslidewriter/internal/domain"
)

func TestPasteOnEmptyClipboard(t *testing.T) {
	e := newTestEngine()
	if id, ok := e.Paste(1); ok || id != "" {
		t.Fatalf("paste on empty clipboard returned (%q, %v)", id, ok)
	}
	if _, _, ok := e.Clipboard(); ok {
		t.Fatalf("empty clipboard reports content")
	}
}

func TestClipboardHoldsCopyNotReference(t *testing.T) {
	e := newTestEngine()
	id := e.AddText(1, "original")
	e.CopyToClipboard(KindText, 1, id)
	e.SetTextContent(1, id, "mutated after copy")

	pasted, ok := e.Paste(2)
	if !ok {
		t.Fatalf("paste failed")
	}
	el, _ := e.Text(pasted)
	if el.Content != "original" {
		t.Fatalf("paste produced %q, want the content at copy time", el.Content)
	}
	if el.SlideNumber != 2 {
		t.Fatalf("paste target slide = %d, want 2", el.SlideNumber)
	}
	if pasted == id {
		t.Fatalf("paste reused the source id")
	}
}

func TestClipboardSurvivesSourceDeletion(t *testing.T) {
	e := newTestEngine()
	data := domain.TableData{Rows: [][]domain.TableCell{{{Content: "only"}}}}
	id := e.AddTable(3, domain.Position{X: 1, Y: 1}, data)
	e.CopyToClipboard(KindTable, 3, id)
	e.DeleteTable(3, id)

	pasted, ok := e.Paste(3)
	if !ok {
		t.Fatalf("paste after source deletion failed")
	}
	tbl, found := e.Table(3, pasted)
	if !found || tbl.Data.Rows[0][0].Content != "only" {
		t.Fatalf("pasted table wrong: %+v", tbl)
	}
}

func TestSingleSlotOverwrite(t *testing.T) {
	e := newTestEngine()
	txt := e.AddText(1, "t")
	img := e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	e.CopyToClipboard(KindText, 1, txt)
	e.CopyToClipboard(KindImage, 1, img)
	kind, src, ok := e.Clipboard()
	if !ok || kind != KindImage || src != img {
		t.Fatalf("slot = (%v, %q, %v), want the later image copy", kind, src, ok)
	}
}

func TestCopyUnknownIDLeavesSlotUntouched(t *testing.T) {
	e := newTestEngine()
	txt := e.AddText(1, "t")
	e.CopyToClipboard(KindText, 1, txt)
	e.CopyToClipboard(KindImage, 1, "ghost")
	kind, src, ok := e.Clipboard()
	if !ok || kind != KindText || src != txt {
		t.Fatalf("failed copy clobbered the slot: (%v, %q, %v)", kind, src, ok)
	}
}

func TestRepeatedPasteYieldsDistinctElements(t *testing.T) {
	e := newTestEngine()
	ig := e.AddInfographic(1, domain.Position{}, domain.Size{Width: 50, Height: 50}, domain.InfographicData{
		Kind:  "timeline",
		Items: []domain.InfographicItem{{Label: "kickoff", Value: 1}},
	})
	e.CopyToClipboard(KindInfographic, 1, ig)
	p1, _ := e.Paste(1)
	p2, _ := e.Paste(1)
	if p1 == p2 || p1 == ig || p2 == ig {
		t.Fatalf("pastes must mint fresh ids: %q %q %q", ig, p1, p2)
	}
	if _, _, _, infos, _ := e.Stats(); infos != 3 {
		t.Fatalf("infographic count = %d, want 3", infos)
	}
}

func TestCopyIsNotUndoableButPasteIs(t *testing.T) {
	e := newTestEngine()
	id := e.AddText(1, "x")
	_, _, _, _, before := e.Stats()
	e.CopyToClipboard(KindText, 1, id)
	if _, _, _, _, after := e.Stats(); after != before {
		t.Fatalf("clipboard copy grew the history")
	}

	pasted, _ := e.Paste(1)
	e.Undo()
	if _, ok := e.Text(pasted); ok {
		t.Fatalf("undo did not remove the pasted element")
	}
	// the slot is untouched by undo
	if _, _, ok := e.Clipboard(); !ok {
		t.Fatalf("undo cleared the clipboard")
	}
	if again, ok := e.Paste(1); !ok || again == "" {
		t.Fatalf("paste after undo failed")
	}
}

func TestClearClipboard(t *testing.T) {
	e := newTestEngine()
	id := e.AddText(1, "x")
	e.CopyToClipboard(KindText, 1, id)
	e.ClearClipboard()
	if _, _, ok := e.Clipboard(); ok {
		t.Fatalf("slot not cleared")
	}
}

func TestPastedImageStacksOnTop(t *testing.T) {
	e := newTestEngine()
	a := e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	e.CopyToClipboard(KindImage, 1, a)
	pasted, _ := e.Paste(1)
	got, _ := e.Image(1, pasted)
	if got.ZIndex != 3 {
		t.Fatalf("pasted zIndex = %d, want 3", got.ZIndex)
	}
}
