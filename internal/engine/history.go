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

import "log/slog"

// command is one invertible mutation of the element stores and selection.
// apply and invert are closures over values captured at build time, so they
// can be replayed any number of times; they must not read live engine state.
// Clipboard and area-selection state is never recorded.
type command struct {
	op     string
	apply  func(*Engine)
	invert func(*Engine)
}

// commit records cmd on the undo stack, clears the redo stack and applies the
// mutation. Callers must hold e.mu and must have returned early for
// documented no-op cases so those never reach the history. Hydrate populates
// the stores directly and never goes through here.
func (e *Engine) commit(cmd command) {
	e.undoStack = append(e.undoStack, cmd)
	if len(e.undoStack) > e.maxHistory {
		// evict oldest entries, same policy as depth caps elsewhere
		drop := len(e.undoStack) - e.maxHistory
		e.undoStack = append([]command(nil), e.undoStack[drop:]...)
	}
	e.redoStack = nil
	cmd.apply(e)
	e.log.Debug("op applied", slog.String("op", cmd.op), slog.Int("undo_depth", len(e.undoStack)))
}

// Undo reverts the most recent mutation. It reports false, with no effect,
// when the undo stack is empty.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.undoStack)
	if n == 0 {
		return false
	}
	cmd := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]
	cmd.invert(e)
	e.redoStack = append(e.redoStack, cmd)
	e.log.Debug("undo", slog.String("op", cmd.op), slog.Int("undo_depth", len(e.undoStack)))
	return true
}

// Redo re-applies the most recently undone mutation. It reports false, with
// no effect, when the redo stack is empty.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.redoStack)
	if n == 0 {
		return false
	}
	cmd := e.redoStack[n-1]
	e.redoStack = e.redoStack[:n-1]
	cmd.apply(e)
	e.undoStack = append(e.undoStack, cmd)
	e.log.Debug("redo", slog.String("op", cmd.op), slog.Int("undo_depth", len(e.undoStack)))
	return true
}

// CanUndo reports whether an undo entry is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undoStack) > 0
}

// CanRedo reports whether a redo entry is available.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.redoStack) > 0
}
