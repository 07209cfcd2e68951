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

// Clipboard: a single slot holding a deep copy of one element, overwritten
// on every copy and retained across pastes. The slot itself is not part of
// the undo history; pasting is, as an ordinary element insertion. Deleting
// the source element leaves the slot intact — it holds data, not a live
// reference.

// CopyToClipboard captures the element (kind, id) from the given slide into
// the clipboard slot. Unknown ids leave the slot untouched.
func (e *Engine) CopyToClipboard(kind ElementKind, slide int, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry := clipboardEntry{kind: kind, sourceID: id}
	switch kind {
	case KindText:
		el, ok := e.texts[id]
		if !ok {
			return
		}
		entry.text = el
	case KindImage:
		el, ok := e.images[slide][id]
		if !ok {
			return
		}
		entry.image = el
	case KindTable:
		el, ok := e.tables[slide][id]
		if !ok {
			return
		}
		el.Data = el.Data.Clone()
		entry.table = el
	case KindInfographic:
		el, ok := e.infos[slide][id]
		if !ok {
			return
		}
		el.Data = el.Data.Clone()
		entry.info = el
	default:
		return
	}
	e.clip = &entry
}

// Paste inserts a copy of the clipboard element onto the given slide under a
// fresh id and returns that id. It reports false, with no effect, when the
// clipboard is empty. The slot is retained, so repeated paste works.
func (e *Engine) Paste(slide int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clip == nil {
		return "", false
	}
	switch e.clip.kind {
	case KindText:
		el := e.clip.text
		el.ID = newTextID()
		el.SlideNumber = slide
		e.commit(e.insertTextCmd("paste_text", el))
		return el.ID, true
	case KindImage:
		el := e.clip.image
		el.ID = newImageID()
		el.SlideNumber = slide
		el.ZIndex = e.nextImageZ(slide)
		e.commit(command{
			op:     "paste_image",
			apply:  func(en *Engine) { en.slideImages(slide)[el.ID] = el },
			invert: func(en *Engine) { delete(en.slideImages(slide), el.ID) },
		})
		return el.ID, true
	case KindTable:
		el := e.clip.table
		el.ID = newTableID()
		el.SlideNumber = slide
		el.Data = e.clip.table.Data.Clone()
		e.commit(command{
			op:     "paste_table",
			apply:  func(en *Engine) { en.slideTables(slide)[el.ID] = el },
			invert: func(en *Engine) { delete(en.slideTables(slide), el.ID) },
		})
		return el.ID, true
	case KindInfographic:
		el := e.clip.info
		el.ID = newInfographicID()
		el.SlideNumber = slide
		el.Data = e.clip.info.Data.Clone()
		e.commit(command{
			op:     "paste_infographic",
			apply:  func(en *Engine) { en.slideInfos(slide)[el.ID] = el },
			invert: func(en *Engine) { delete(en.slideInfos(slide), el.ID) },
		})
		return el.ID, true
	}
	return "", false
}

// Clipboard reports the kind and source element id of the current clipboard
// entry. ok is false when the slot is empty.
func (e *Engine) Clipboard() (kind ElementKind, sourceID string, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clip == nil {
		return "", "", false
	}
	return e.clip.kind, e.clip.sourceID, true
}

// ClearClipboard empties the slot.
func (e *Engine) ClearClipboard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clip = nil
}

// ClipboardText returns the captured text payload when the slot holds text.
func (e *Engine) ClipboardText() (domain.TextElement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.clip == nil || e.clip.kind != KindText {
		return domain.TextElement{}, false
	}
	return e.clip.text, true
}
