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

// Infographic element store, keyed slide -> id. The payload is opaque to the
// engine; it is cloned on every boundary crossing.

// AddInfographic creates an infographic on the slide and returns its id.
func (e *Engine) AddInfographic(slide int, pos domain.Position, size domain.Size, data domain.InfographicData) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	el := domain.InfographicElement{
		ID:          newInfographicID(),
		SlideNumber: slide,
		Position:    pos,
		Size:        size,
		Data:        data.Clone(),
	}
	e.commit(command{
		op:     "infographic_add",
		apply:  func(en *Engine) { en.slideInfos(slide)[el.ID] = el },
		invert: func(en *Engine) { delete(en.slideInfos(slide), el.ID) },
	})
	return el.ID
}

// UpdateInfographic merges the patch into an existing infographic. Unknown
// ids are a no-op.
func (e *Engine) UpdateInfographic(slide int, id string, patch domain.InfographicPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.infos[slide][id]
	if !ok {
		return
	}
	next := prev
	next.Data = prev.Data.Clone()
	patch.Apply(&next)
	e.commit(command{
		op:     "infographic_update",
		apply:  func(en *Engine) { en.slideInfos(slide)[id] = next },
		invert: func(en *Engine) { en.slideInfos(slide)[id] = prev },
	})
}

// DeleteInfographic removes the infographic and clears it from the
// selection. Unknown ids are a no-op.
func (e *Engine) DeleteInfographic(slide int, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.infos[slide][id]
	if !ok {
		return
	}
	prevSel := e.sel.clone()
	nextSel := prevSel.clone()
	if nextSel.Infographic == id {
		nextSel.Infographic = ""
	}
	e.commit(command{
		op: "infographic_delete",
		apply: func(en *Engine) {
			delete(en.slideInfos(slide), id)
			en.sel = nextSel.clone()
		},
		invert: func(en *Engine) {
			en.slideInfos(slide)[id] = prev
			en.sel = prevSel.clone()
		},
	})
}

// CopyInfographic deep-clones the infographic onto the same slide under a
// fresh id and returns the new id. Unknown ids return the same id unchanged.
func (e *Engine) CopyInfographic(slide int, id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.infos[slide][id]
	if !ok {
		return id
	}
	cp := src
	cp.ID = newInfographicID()
	cp.Data = src.Data.Clone()
	e.commit(command{
		op:     "infographic_copy",
		apply:  func(en *Engine) { en.slideInfos(slide)[cp.ID] = cp },
		invert: func(en *Engine) { delete(en.slideInfos(slide), cp.ID) },
	})
	return cp.ID
}

// Infographic returns the record for id on the slide.
func (e *Engine) Infographic(slide int, id string) (domain.InfographicElement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.infos[slide][id]
	return el, ok
}

// Infographics returns the slide's infographics in stable id order.
func (e *Engine) Infographics(slide int) []domain.InfographicElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.InfographicElement, 0, len(e.infos[slide]))
	for _, el := range e.infos[slide] {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
