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

// Image element store, keyed slide -> id. New images start as placeholders
// stacked above everything already on the slide.

// AddImage creates a placeholder image on the slide and returns its id.
// ZIndex is one above the current maximum on that slide.
func (e *Engine) AddImage(slide int, pos domain.Position, size domain.Size) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	el := domain.ImageElement{
		ID:          newImageID(),
		SlideNumber: slide,
		Position:    pos,
		Size:        size,
		Placeholder: true,
		ZIndex:      e.nextImageZ(slide),
	}
	e.commit(command{
		op:     "image_add",
		apply:  func(en *Engine) { en.slideImages(slide)[el.ID] = el },
		invert: func(en *Engine) { delete(en.slideImages(slide), el.ID) },
	})
	return el.ID
}

func (e *Engine) nextImageZ(slide int) int {
	max := 0
	for _, el := range e.images[slide] {
		if el.ZIndex > max {
			max = el.ZIndex
		}
	}
	return max + 1
}

// UpdateImage merges the patch into an existing image. Unknown ids are a
// no-op.
func (e *Engine) UpdateImage(slide int, id string, patch domain.ImagePatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.images[slide][id]
	if !ok {
		return
	}
	next := prev
	patch.Apply(&next)
	e.commit(command{
		op:     "image_update",
		apply:  func(en *Engine) { en.slideImages(slide)[id] = next },
		invert: func(en *Engine) { en.slideImages(slide)[id] = prev },
	})
}

// DeleteImage removes the image and clears it from the selection. The
// clipboard keeps data copied from it. Unknown ids are a no-op.
func (e *Engine) DeleteImage(slide int, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.images[slide][id]
	if !ok {
		return
	}
	prevSel := e.sel.clone()
	nextSel := prevSel.clone()
	if nextSel.Image == id {
		nextSel.Image = ""
	}
	e.commit(command{
		op: "image_delete",
		apply: func(en *Engine) {
			delete(en.slideImages(slide), id)
			en.sel = nextSel.clone()
		},
		invert: func(en *Engine) {
			en.slideImages(slide)[id] = prev
			en.sel = prevSel.clone()
		},
	})
}

// CopyImage deep-clones the image onto the same slide under a fresh id above
// the current stack and returns the new id. Unknown ids return the same id
// unchanged.
func (e *Engine) CopyImage(slide int, id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.images[slide][id]
	if !ok {
		return id
	}
	cp := src
	cp.ID = newImageID()
	cp.ZIndex = e.nextImageZ(slide)
	e.commit(command{
		op:     "image_copy",
		apply:  func(en *Engine) { en.slideImages(slide)[cp.ID] = cp },
		invert: func(en *Engine) { delete(en.slideImages(slide), cp.ID) },
	})
	return cp.ID
}

// Image returns the record for id on the slide.
func (e *Engine) Image(slide int, id string) (domain.ImageElement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.images[slide][id]
	return el, ok
}

// Images returns the slide's images ordered by ZIndex, bottom to top.
func (e *Engine) Images(slide int) []domain.ImageElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.ImageElement, 0, len(e.images[slide]))
	for _, el := range e.images[slide] {
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
