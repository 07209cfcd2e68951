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

// Table element store, keyed slide -> id.

// AddTable creates a table on the slide from a deep copy of data and returns
// its id.
func (e *Engine) AddTable(slide int, pos domain.Position, data domain.TableData) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	el := domain.TableElement{
		ID:          newTableID(),
		SlideNumber: slide,
		Position:    pos,
		Data:        data.Clone(),
	}
	e.commit(command{
		op:     "table_add",
		apply:  func(en *Engine) { en.slideTables(slide)[el.ID] = el },
		invert: func(en *Engine) { delete(en.slideTables(slide), el.ID) },
	})
	return el.ID
}

// UpdateTable merges the patch into an existing table. Unknown ids are a
// no-op.
func (e *Engine) UpdateTable(slide int, id string, patch domain.TablePatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.tables[slide][id]
	if !ok {
		return
	}
	next := prev
	next.Data = prev.Data.Clone()
	patch.Apply(&next)
	e.commit(command{
		op:     "table_update",
		apply:  func(en *Engine) { en.slideTables(slide)[id] = next },
		invert: func(en *Engine) { en.slideTables(slide)[id] = prev },
	})
}

// SetTableCell replaces one cell of the grid. Out-of-range coordinates and
// unknown ids are a no-op.
func (e *Engine) SetTableCell(slide int, id string, row, col int, cell domain.TableCell) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.tables[slide][id]
	if !ok {
		return
	}
	if row < 0 || row >= len(prev.Data.Rows) || col < 0 || col >= len(prev.Data.Rows[row]) {
		return
	}
	next := prev
	next.Data = prev.Data.Clone()
	next.Data.Rows[row][col] = cell
	e.commit(command{
		op:     "table_set_cell",
		apply:  func(en *Engine) { en.slideTables(slide)[id] = next },
		invert: func(en *Engine) { en.slideTables(slide)[id] = prev },
	})
}

// DeleteTable removes the table and clears it from the selection. Unknown
// ids are a no-op.
func (e *Engine) DeleteTable(slide int, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev, ok := e.tables[slide][id]
	if !ok {
		return
	}
	prevSel := e.sel.clone()
	nextSel := prevSel.clone()
	if nextSel.Table == id {
		nextSel.Table = ""
	}
	e.commit(command{
		op: "table_delete",
		apply: func(en *Engine) {
			delete(en.slideTables(slide), id)
			en.sel = nextSel.clone()
		},
		invert: func(en *Engine) {
			en.slideTables(slide)[id] = prev
			en.sel = prevSel.clone()
		},
	})
}

// CopyTable deep-clones the table onto the same slide under a fresh id and
// returns the new id. Unknown ids return the same id unchanged.
func (e *Engine) CopyTable(slide int, id string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.tables[slide][id]
	if !ok {
		return id
	}
	cp := src
	cp.ID = newTableID()
	cp.Data = src.Data.Clone()
	e.commit(command{
		op:     "table_copy",
		apply:  func(en *Engine) { en.slideTables(slide)[cp.ID] = cp },
		invert: func(en *Engine) { delete(en.slideTables(slide), cp.ID) },
	})
	return cp.ID
}

// Table returns the record for id on the slide.
func (e *Engine) Table(slide int, id string) (domain.TableElement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.tables[slide][id]
	return el, ok
}

// Tables returns the slide's tables in stable id order.
func (e *Engine) Tables(slide int) []domain.TableElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.TableElement, 0, len(e.tables[slide]))
	for _, el := range e.tables[slide] {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
