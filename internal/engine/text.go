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

// Text element store. Records are globally keyed by id and carry an explicit
// slide number; each slide keeps an ordered layer list (bottom to top) of its
// text ids. Content and style records are lazily created: writing to an
// unknown id creates a default record on the given slide.

// AddText creates a text element on the given slide with an engine-generated
// id and default style, appends it to the top of the slide's layer order, and
// returns the new id.
func (e *Engine) AddText(slide int, content string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := newTextID()
	el := domain.TextElement{ID: id, SlideNumber: slide, Content: content, Style: domain.DefaultTextStyle()}
	e.commit(e.insertTextCmd("text_add", el))
	return id
}

// SetTextContent sets the content of a text element, creating a default
// record on the given slide when the id is unknown.
func (e *Engine) SetTextContent(slide int, id, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.texts[id]
	if !ok {
		el := domain.TextElement{ID: id, SlideNumber: slide, Content: content, Style: domain.DefaultTextStyle()}
		e.commit(e.insertTextCmd("text_set_content", el))
		return
	}
	next := prev
	next.Content = content
	e.commit(command{
		op:     "text_set_content",
		apply:  func(en *Engine) { en.texts[id] = next },
		invert: func(en *Engine) { en.texts[id] = prev },
	})
}

// UpdateTextStyle merges the patch into the element's style, creating a
// default record on the given slide when the id is unknown.
func (e *Engine) UpdateTextStyle(slide int, id string, patch domain.TextStylePatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.texts[id]
	if !ok {
		el := domain.TextElement{ID: id, SlideNumber: slide, Style: domain.DefaultTextStyle()}
		patch.Apply(&el.Style)
		e.commit(e.insertTextCmd("text_update_style", el))
		return
	}
	next := prev
	patch.Apply(&next.Style)
	e.commit(command{
		op:     "text_update_style",
		apply:  func(en *Engine) { en.texts[id] = next },
		invert: func(en *Engine) { en.texts[id] = prev },
	})
}

// DeleteText removes a text element and detaches it from the slide layer
// order and from every selection field referencing it. Unknown ids are a
// no-op.
func (e *Engine) DeleteText(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.texts[id]
	if !ok {
		return
	}
	slide := prev.SlideNumber
	prevOrder := append([]string(nil), e.textOrder[slide]...)
	prevSel := e.sel.clone()
	nextSel := prevSel.clone()
	nextSel.Texts = removeString(nextSel.Texts, id)
	if nextSel.Text == id {
		nextSel.Text = ""
		if len(nextSel.Texts) > 0 {
			nextSel.Text = nextSel.Texts[0]
		}
	}
	e.commit(command{
		op: "text_delete",
		apply: func(en *Engine) {
			delete(en.texts, id)
			en.textOrder[slide] = removeString(append([]string(nil), prevOrder...), id)
			en.sel = nextSel.clone()
		},
		invert: func(en *Engine) {
			en.texts[id] = prev
			en.textOrder[slide] = append([]string(nil), prevOrder...)
			en.sel = prevSel.clone()
		},
	})
}

// CopyText deep-clones a text element onto the same slide under a fresh id
// and returns the new id. When the source id is unknown the same id is
// returned unchanged, signalling a no-op to the caller.
func (e *Engine) CopyText(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.texts[id]
	if !ok {
		return id
	}
	cp := src
	cp.ID = newTextID()
	e.commit(e.insertTextCmd("text_copy", cp))
	return cp.ID
}

// insertTextCmd builds the command that inserts el and appends it to the top
// of its slide's layer order.
func (e *Engine) insertTextCmd(op string, el domain.TextElement) command {
	slide := el.SlideNumber
	prevOrder := append([]string(nil), e.textOrder[slide]...)
	return command{
		op: op,
		apply: func(en *Engine) {
			en.texts[el.ID] = el
			en.textOrder[slide] = append(append([]string(nil), prevOrder...), el.ID)
		},
		invert: func(en *Engine) {
			delete(en.texts, el.ID)
			en.textOrder[slide] = append([]string(nil), prevOrder...)
		},
	}
}

// MoveTextUp swaps the element one step toward the top of its slide's layer
// order. A no-op at the top boundary or for unknown ids.
func (e *Engine) MoveTextUp(id string) { e.moveText(id, +1) }

// MoveTextDown swaps the element one step toward the bottom of its slide's
// layer order. A no-op at the bottom boundary or for unknown ids.
func (e *Engine) MoveTextDown(id string) { e.moveText(id, -1) }

func (e *Engine) moveText(id string, dir int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.texts[id]
	if !ok {
		return
	}
	slide := el.SlideNumber
	order := e.textOrder[slide]
	idx := indexOf(order, id)
	j := idx + dir
	if idx < 0 || j < 0 || j >= len(order) {
		return
	}
	op := "text_move_up"
	if dir < 0 {
		op = "text_move_down"
	}
	swap := func(en *Engine) {
		o := en.textOrder[slide]
		o[idx], o[j] = o[j], o[idx]
	}
	e.commit(command{op: op, apply: swap, invert: swap})
}

// Text returns the full record for id.
func (e *Engine) Text(id string) (domain.TextElement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.texts[id]
	return el, ok
}

// TextContent returns the element content, or "" for unknown ids.
func (e *Engine) TextContent(id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.texts[id].Content
}

// TextStyle returns the element style. Unknown ids yield the default style
// without creating a record.
func (e *Engine) TextStyle(id string) domain.TextStyle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if el, ok := e.texts[id]; ok {
		return el.Style
	}
	return domain.DefaultTextStyle()
}

// TextIDs returns the slide's text ids in layer order, bottom to top.
func (e *Engine) TextIDs(slide int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.textOrder[slide]...)
}

// Texts returns the slide's text elements in layer order, bottom to top.
func (e *Engine) Texts(slide int) []domain.TextElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.TextElement, 0, len(e.textOrder[slide]))
	for _, id := range e.textOrder[slide] {
		if el, ok := e.texts[id]; ok {
			out = append(out, el)
		}
	}
	return out
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
