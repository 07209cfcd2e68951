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

// Selection manager. Selecting an element of one kind clears the other three
// kinds; this mutual exclusion is enforced here, never left to callers. An
// empty id clears the respective kind. Selecting an id that is not in its
// store is a silent no-op, which keeps the invariant that selected ids
// always exist.

// SelectText makes id the primary (and only) text selection, clearing the
// other kinds. An empty id behaves like ClearTextSelection: only the text
// fields are dropped, any image/table/infographic selection stays.
func (e *Engine) SelectText(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" {
		next := e.sel.clone()
		next.Text = ""
		next.Texts = nil
		e.commitSelection("select_text", next)
		return
	}
	if _, ok := e.texts[id]; !ok {
		return
	}
	e.commitSelection("select_text", selection{Text: id, Texts: []string{id}})
}

// AddTextToSelection appends id to the ordered text multi-selection, keeping
// the current primary. With no prior text selection it behaves like
// SelectText. Duplicate or unknown ids are a no-op.
func (e *Engine) AddTextToSelection(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.texts[id]; !ok {
		return
	}
	if indexOf(e.sel.Texts, id) >= 0 {
		return
	}
	next := selection{Text: e.sel.Text, Texts: append(append([]string(nil), e.sel.Texts...), id)}
	if next.Text == "" {
		next.Text = id
	}
	e.commitSelection("select_text_add", next)
}

// SelectImage makes id the active image selection, clearing the other kinds.
func (e *Engine) SelectImage(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id != "" && !e.imageExists(id) {
		return
	}
	e.commitSelection("select_image", selection{Image: id})
}

// SelectTable makes id the active table selection, clearing the other kinds.
func (e *Engine) SelectTable(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id != "" && !e.tableExists(id) {
		return
	}
	e.commitSelection("select_table", selection{Table: id})
}

// SelectInfographic makes id the active infographic selection, clearing the
// other kinds.
func (e *Engine) SelectInfographic(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id != "" && !e.infographicExists(id) {
		return
	}
	e.commitSelection("select_infographic", selection{Infographic: id})
}

// ClearTextSelection drops the primary text selection and the multi-list.
func (e *Engine) ClearTextSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.sel.clone()
	next.Text = ""
	next.Texts = nil
	e.commitSelection("clear_text_selection", next)
}

// ClearSelection drops the selection of every kind.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commitSelection("clear_selection", selection{})
}

// commitSelection records and applies a selection transition. Callers hold
// e.mu. Identical states are a no-op so idle clicks do not grow the history.
func (e *Engine) commitSelection(op string, next selection) {
	if selectionEqual(e.sel, next) {
		return
	}
	prev := e.sel.clone()
	n := next.clone()
	e.commit(command{
		op:     op,
		apply:  func(en *Engine) { en.sel = n.clone() },
		invert: func(en *Engine) { en.sel = prev.clone() },
	})
}

func selectionEqual(a, b selection) bool {
	if a.Text != b.Text || a.Image != b.Image || a.Table != b.Table || a.Infographic != b.Infographic {
		return false
	}
	if len(a.Texts) != len(b.Texts) {
		return false
	}
	for i := range a.Texts {
		if a.Texts[i] != b.Texts[i] {
			return false
		}
	}
	return true
}

func (e *Engine) imageExists(id string) bool {
	for _, m := range e.images {
		if _, ok := m[id]; ok {
			return true
		}
	}
	return false
}

func (e *Engine) tableExists(id string) bool {
	for _, m := range e.tables {
		if _, ok := m[id]; ok {
			return true
		}
	}
	return false
}

func (e *Engine) infographicExists(id string) bool {
	for _, m := range e.infos {
		if _, ok := m[id]; ok {
			return true
		}
	}
	return false
}

// SelectedText returns the primary selected text id, or "".
func (e *Engine) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Text
}

// SelectedTexts returns a copy of the ordered text multi-selection.
func (e *Engine) SelectedTexts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.sel.Texts...)
}

// SelectedImage returns the selected image id, or "".
func (e *Engine) SelectedImage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Image
}

// SelectedTable returns the selected table id, or "".
func (e *Engine) SelectedTable() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Table
}

// SelectedInfographic returns the selected infographic id, or "".
func (e *Engine) SelectedInfographic() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Infographic
}
