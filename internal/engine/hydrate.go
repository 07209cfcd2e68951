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
	"sort"

	"goslidewriter/internal/domain"
)

// Hydrate replaces the engine state with the contents of a loaded deck by
// writing the element stores directly; the undo/redo machinery is never
// involved. Element ids from the manifest are preserved; the slide's stored
// layer order wins, with any unlisted text ids appended in manifest order.
// History, selection, clipboard and area selections are cleared, so the
// first undo after opening a deck is a no-op.
func (e *Engine) Hydrate(p domain.Presentation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()

	for _, s := range p.Slides {
		for _, el := range s.Texts {
			el.SlideNumber = s.Number
			e.texts[el.ID] = el
		}
		// layer order: stored order first, then stragglers
		order := make([]string, 0, len(s.Texts))
		for _, id := range s.TextOrder {
			if _, ok := e.texts[id]; ok && indexOf(order, id) < 0 {
				order = append(order, id)
			}
		}
		for _, el := range s.Texts {
			if indexOf(order, el.ID) < 0 {
				order = append(order, el.ID)
			}
		}
		if len(order) > 0 {
			e.textOrder[s.Number] = order
		}
		for _, el := range s.Images {
			el.SlideNumber = s.Number
			e.slideImages(s.Number)[el.ID] = el
		}
		for _, el := range s.Tables {
			el.SlideNumber = s.Number
			el.Data = el.Data.Clone()
			e.slideTables(s.Number)[el.ID] = el
		}
		for _, el := range s.Infographics {
			el.SlideNumber = s.Number
			el.Data = el.Data.Clone()
			e.slideInfos(s.Number)[el.ID] = el
		}
	}
}

// Snapshot serializes the current stores back into a presentation document.
// Slides appear in ascending number order; texts follow the layer order,
// images their z-order. Metadata and deck name are owned by the storage
// layer, not the engine, and are left zero.
func (e *Engine) Snapshot() domain.Presentation {
	e.mu.Lock()
	defer e.mu.Unlock()

	nums := map[int]bool{}
	for _, el := range e.texts {
		nums[el.SlideNumber] = true
	}
	for n, m := range e.images {
		if len(m) > 0 {
			nums[n] = true
		}
	}
	for n, m := range e.tables {
		if len(m) > 0 {
			nums[n] = true
		}
	}
	for n, m := range e.infos {
		if len(m) > 0 {
			nums[n] = true
		}
	}
	order := make([]int, 0, len(nums))
	for n := range nums {
		order = append(order, n)
	}
	sort.Ints(order)

	var p domain.Presentation
	for _, n := range order {
		s := domain.Slide{Number: n}
		for _, id := range e.textOrder[n] {
			if el, ok := e.texts[id]; ok {
				s.Texts = append(s.Texts, el)
				s.TextOrder = append(s.TextOrder, id)
			}
		}
		// texts on this slide that are missing from the order list
		var loose []string
		for id, el := range e.texts {
			if el.SlideNumber == n && indexOf(s.TextOrder, id) < 0 {
				loose = append(loose, id)
			}
		}
		sort.Strings(loose)
		for _, id := range loose {
			s.Texts = append(s.Texts, e.texts[id])
			s.TextOrder = append(s.TextOrder, id)
		}
		for _, el := range imagesByZ(e.images[n]) {
			s.Images = append(s.Images, el)
		}
		for _, id := range sortedKeys(e.tables[n]) {
			el := e.tables[n][id]
			el.Data = el.Data.Clone()
			s.Tables = append(s.Tables, el)
		}
		for _, id := range sortedKeys(e.infos[n]) {
			el := e.infos[n][id]
			el.Data = el.Data.Clone()
			s.Infographics = append(s.Infographics, el)
		}
		p.Slides = append(p.Slides, s)
	}
	return p
}

func imagesByZ(m map[string]domain.ImageElement) []domain.ImageElement {
	out := make([]domain.ImageElement, 0, len(m))
	for _, el := range m {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
