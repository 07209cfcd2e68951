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

func buildSampleDeck(t *testing.T) (*Engine, domain.Presentation) {
	t.Helper()
	e := newTestEngine()
	t1 := e.AddText(1, "Quarterly Review")
	e.AddText(1, "subtitle")
	e.MoveTextUp(t1)
	e.AddImage(1, domain.Position{X: 10, Y: 10}, domain.Size{Width: 200, Height: 100})
	e.AddTable(2, domain.Position{X: 0, Y: 0}, domain.TableData{Rows: [][]domain.TableCell{
		{{Content: "region"}, {Content: "revenue"}},
		{{Content: "emea"}, {Content: "1.2M"}},
	}})
	e.AddInfographic(2, domain.Position{X: 5, Y: 5}, domain.Size{Width: 300, Height: 150}, domain.InfographicData{
		Kind:  "bar",
		Title: "by region",
		Items: []domain.InfographicItem{{Label: "emea", Value: 1.2}},
	})
	snap := e.Snapshot()
	snap.Name = "review"
	snap.Metadata = domain.Metadata{Author: "pat", Audience: "board"}
	return e, snap
}

func TestHydrateSnapshotRoundTrip(t *testing.T) {
	_, deck := buildSampleDeck(t)

	e2 := newTestEngine()
	e2.Hydrate(deck)
	again := e2.Snapshot()
	again.Name = deck.Name
	again.Metadata = deck.Metadata

	if len(again.Slides) != len(deck.Slides) {
		t.Fatalf("slide count %d, want %d", len(again.Slides), len(deck.Slides))
	}
	for i := range deck.Slides {
		a, b := deck.Slides[i], again.Slides[i]
		if a.Number != b.Number {
			t.Fatalf("slide order differs: %d vs %d", a.Number, b.Number)
		}
		if len(a.Texts) != len(b.Texts) || len(a.Images) != len(b.Images) ||
			len(a.Tables) != len(b.Tables) || len(a.Infographics) != len(b.Infographics) {
			t.Fatalf("slide %d element counts differ", a.Number)
		}
		for j := range a.TextOrder {
			if a.TextOrder[j] != b.TextOrder[j] {
				t.Fatalf("slide %d layer order differs: %v vs %v", a.Number, a.TextOrder, b.TextOrder)
			}
		}
	}
}

func TestHydratePreservesStoredIDs(t *testing.T) {
	_, deck := buildSampleDeck(t)
	e := newTestEngine()
	e.Hydrate(deck)
	for _, id := range deck.Slides[0].TextOrder {
		if _, ok := e.Text(id); !ok {
			t.Fatalf("stored id %q not loadable after hydrate", id)
		}
	}
}

func TestHydrateClearsHistoryAndSession(t *testing.T) {
	e, deck := buildSampleDeck(t)
	e.SelectText(deck.Slides[0].TextOrder[0])
	e.CopyToClipboard(KindText, 1, deck.Slides[0].TextOrder[0])
	e.StartAreaSelection(1, 0, 0)

	e.Hydrate(deck)
	if e.CanUndo() || e.CanRedo() {
		t.Fatalf("hydrate must not be undoable and must drop prior history")
	}
	if e.SelectedText() != "" {
		t.Fatalf("hydrate kept a stale selection")
	}
	if _, _, ok := e.Clipboard(); ok {
		t.Fatalf("hydrate kept the clipboard slot")
	}
	if _, ok := e.AreaSelection(1); ok {
		t.Fatalf("hydrate kept an area-selection rect")
	}
}

func TestSnapshotIsDetachedFromLiveState(t *testing.T) {
	e := newTestEngine()
	id := e.AddTable(1, domain.Position{}, domain.TableData{Rows: [][]domain.TableCell{{{Content: "v1"}}}})
	snap := e.Snapshot()
	e.SetTableCell(1, id, 0, 0, domain.TableCell{Content: "v2"})
	if snap.Slides[0].Tables[0].Data.Rows[0][0].Content != "v1" {
		t.Fatalf("snapshot shares table storage with the engine")
	}
}

func TestSnapshotOrdering(t *testing.T) {
	e := newTestEngine()
	e.AddText(3, "later slide first")
	e.AddText(1, "first slide")
	b := e.AddImage(1, domain.Position{}, domain.Size{Width: 1, Height: 1})
	a := e.AddImage(1, domain.Position{}, domain.Size{Width: 1, Height: 1})
	snap := e.Snapshot()
	if len(snap.Slides) != 2 || snap.Slides[0].Number != 1 || snap.Slides[1].Number != 3 {
		t.Fatalf("slides not ascending: %+v", snap.Slides)
	}
	imgs := snap.Slides[0].Images
	if len(imgs) != 2 || imgs[0].ID != b || imgs[1].ID != a {
		t.Fatalf("images not z-ordered: %v then %v", imgs[0].ID, imgs[1].ID)
	}
}
