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

func TestSelectionMutualExclusion(t *testing.T) {
	e := newTestEngine()
	txt := e.AddText(1, "t")
	img := e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	tbl := e.AddTable(1, domain.Position{}, domain.TableData{Rows: [][]domain.TableCell{{{Content: "x"}}}})
	ig := e.AddInfographic(1, domain.Position{}, domain.Size{Width: 10, Height: 10}, domain.InfographicData{Kind: "bar"})

	e.SelectText(txt)
	e.SelectImage(img)
	if e.SelectedText() != "" || len(e.SelectedTexts()) != 0 {
		t.Fatalf("image select left text selection behind")
	}
	if e.SelectedImage() != img {
		t.Fatalf("image not selected")
	}

	e.SelectTable(tbl)
	if e.SelectedImage() != "" || e.SelectedTable() != tbl {
		t.Fatalf("table select did not displace image selection")
	}

	e.SelectInfographic(ig)
	if e.SelectedTable() != "" || e.SelectedInfographic() != ig {
		t.Fatalf("infographic select did not displace table selection")
	}

	e.SelectText(txt)
	if e.SelectedInfographic() != "" || e.SelectedText() != txt {
		t.Fatalf("text select did not displace infographic selection")
	}
}

func TestSelectUnknownIDIsIgnored(t *testing.T) {
	e := newTestEngine()
	txt := e.AddText(1, "t")
	e.SelectText(txt)
	e.SelectImage("ghost")
	if e.SelectedText() != txt {
		t.Fatalf("selecting an unknown image dropped the text selection")
	}
	e.SelectText("ghost")
	if e.SelectedText() != txt {
		t.Fatalf("selecting an unknown text changed the selection")
	}
}

func TestMultiTextSelection(t *testing.T) {
	e := newTestEngine()
	a := e.AddText(1, "a")
	b := e.AddText(1, "b")
	c := e.AddText(1, "c")

	e.SelectText(a)
	e.AddTextToSelection(b)
	e.AddTextToSelection(c)
	if got := e.SelectedTexts(); len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("multi-selection order wrong: %v", got)
	}
	if e.SelectedText() != a {
		t.Fatalf("primary member should stay the first selected, got %q", e.SelectedText())
	}

	e.AddTextToSelection(b) // duplicate: no-op
	if got := e.SelectedTexts(); len(got) != 3 {
		t.Fatalf("duplicate add grew the selection: %v", got)
	}
	e.AddTextToSelection("ghost")
	if got := e.SelectedTexts(); len(got) != 3 {
		t.Fatalf("unknown id grew the selection: %v", got)
	}

	// add without a prior select: becomes the primary
	e.ClearTextSelection()
	e.AddTextToSelection(b)
	if e.SelectedText() != b {
		t.Fatalf("lone added member should become primary, got %q", e.SelectedText())
	}
}

func TestDeleteClearsSelectionPerKind(t *testing.T) {
	e := newTestEngine()
	img := e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	e.SelectImage(img)
	e.DeleteImage(1, img)
	if e.SelectedImage() != "" {
		t.Fatalf("image selection survived delete")
	}

	tbl := e.AddTable(1, domain.Position{}, domain.TableData{Rows: [][]domain.TableCell{{{Content: "x"}}}})
	e.SelectTable(tbl)
	e.DeleteTable(1, tbl)
	if e.SelectedTable() != "" {
		t.Fatalf("table selection survived delete")
	}

	ig := e.AddInfographic(1, domain.Position{}, domain.Size{Width: 10, Height: 10}, domain.InfographicData{Kind: "ring"})
	e.SelectInfographic(ig)
	e.DeleteInfographic(1, ig)
	if e.SelectedInfographic() != "" {
		t.Fatalf("infographic selection survived delete")
	}
}

func TestDeleteOneOfMultiSelection(t *testing.T) {
	e := newTestEngine()
	a := e.AddText(1, "a")
	b := e.AddText(1, "b")
	e.SelectText(a)
	e.AddTextToSelection(b)
	e.DeleteText(a)
	got := e.SelectedTexts()
	if len(got) != 1 || got[0] != b {
		t.Fatalf("remaining selection = %v, want [%s]", got, b)
	}
	if e.SelectedText() != b {
		t.Fatalf("primary should fall through to the survivor, got %q", e.SelectedText())
	}
}

func TestSelectTextEmptyIDClearsOnlyText(t *testing.T) {
	e := newTestEngine()
	img := e.AddImage(1, domain.Position{}, domain.Size{Width: 10, Height: 10})
	e.SelectImage(img)
	e.SelectText("")
	if e.SelectedImage() != img {
		t.Fatalf("empty-id text select dropped the image selection")
	}

	a := e.AddText(1, "a")
	b := e.AddText(1, "b")
	e.SelectText(a)
	e.AddTextToSelection(b)
	e.SelectText("")
	if e.SelectedText() != "" || len(e.SelectedTexts()) != 0 {
		t.Fatalf("empty-id text select left text selection behind")
	}
}

func TestClearSelection(t *testing.T) {
	e := newTestEngine()
	txt := e.AddText(1, "t")
	e.SelectText(txt)
	e.ClearSelection()
	if e.SelectedText() != "" || len(e.SelectedTexts()) != 0 {
		t.Fatalf("clear left a selection")
	}
	// clearing an empty selection is idle: no history entry
	_, _, _, _, before := e.Stats()
	e.ClearSelection()
	if _, _, _, _, after := e.Stats(); after != before {
		t.Fatalf("idle clear pushed history")
	}
}
