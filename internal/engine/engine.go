/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package engine implements the shared editing state of a slide deck: the
// four element stores (text, image, table, infographic), the active
// selection, the single clipboard slot, the undo/redo history and the
// transient image area selection.
//
// The engine is the only writer of this state. UI surfaces call the
// documented operations and re-read state afterwards; there is no lower-level
// field access. Unknown ids resolve to silent no-ops or documented defaults,
// never to errors. Every instance is independent, so tests and multiple
// editor windows do not collide.
package engine

import (
	"log/slog"
	"sync"

	"goslidewriter/internal/domain"
	applog "goslidewriter/internal/log"
)

// ElementKind names one of the four element stores.
type ElementKind string

const (
	KindText        ElementKind = "text"
	KindImage       ElementKind = "image"
	KindTable       ElementKind = "table"
	KindInfographic ElementKind = "infographic"
)

// Options controls engine limits and logging.
type Options struct {
	// MaxHistory caps the undo stack depth; oldest entries are evicted when
	// exceeded. Zero selects the default.
	MaxHistory int
	// Logger receives debug records for every applied operation. Nil selects
	// the application logger.
	Logger *slog.Logger
}

const defaultMaxHistory = 200

// selection tracks the active element across the four kinds. At most one of
// Text/Image/Table/Infographic is non-empty at a time. Texts is the ordered
// multi-selection; when non-empty, Text is its primary member.
type selection struct {
	Text        string
	Texts       []string
	Image       string
	Table       string
	Infographic string
}

func (s selection) clone() selection {
	c := s
	c.Texts = append([]string(nil), s.Texts...)
	return c
}

// clipboardEntry is the single clipboard slot. Payload fields hold deep
// copies taken at copy time, never live references.
type clipboardEntry struct {
	kind     ElementKind
	sourceID string
	text     domain.TextElement
	image    domain.ImageElement
	table    domain.TableElement
	info     domain.InfographicElement
}

// Engine owns all editing state for one open deck. It is safe for concurrent
// use, though in practice all operations arrive from a single UI event loop.
type Engine struct {
	mu  sync.Mutex
	log *slog.Logger

	texts     map[string]domain.TextElement
	textOrder map[int][]string // per-slide layer order, bottom to top
	images    map[int]map[string]domain.ImageElement
	tables    map[int]map[string]domain.TableElement
	infos     map[int]map[string]domain.InfographicElement

	sel  selection
	clip *clipboardEntry

	area     map[int]domain.AreaSelection
	areaMode bool

	undoStack  []command
	redoStack  []command
	maxHistory int
}

// New creates an empty engine.
func New(opts Options) *Engine {
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = defaultMaxHistory
	}
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("engine")
	}
	return &Engine{
		log:        l,
		texts:      make(map[string]domain.TextElement),
		textOrder:  make(map[int][]string),
		images:     make(map[int]map[string]domain.ImageElement),
		tables:     make(map[int]map[string]domain.TableElement),
		infos:      make(map[int]map[string]domain.InfographicElement),
		area:       make(map[int]domain.AreaSelection),
		maxHistory: opts.MaxHistory,
	}
}

// Reset drops all document state, selection, clipboard, history and area
// selections, returning the engine to its initial empty state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.texts = make(map[string]domain.TextElement)
	e.textOrder = make(map[int][]string)
	e.images = make(map[int]map[string]domain.ImageElement)
	e.tables = make(map[int]map[string]domain.TableElement)
	e.infos = make(map[int]map[string]domain.InfographicElement)
	e.sel = selection{}
	e.clip = nil
	e.area = make(map[int]domain.AreaSelection)
	e.areaMode = false
	e.undoStack = nil
	e.redoStack = nil
}

// Stats reports store sizes for diagnostics.
func (e *Engine) Stats() (texts, images, tables, infographics, undoDepth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range e.images {
		images += len(m)
	}
	for _, m := range e.tables {
		tables += len(m)
	}
	for _, m := range e.infos {
		infographics += len(m)
	}
	return len(e.texts), images, tables, infographics, len(e.undoStack)
}

// slideImages returns the image map for a slide, creating it on demand.
func (e *Engine) slideImages(slide int) map[string]domain.ImageElement {
	m := e.images[slide]
	if m == nil {
		m = make(map[string]domain.ImageElement)
		e.images[slide] = m
	}
	return m
}

func (e *Engine) slideTables(slide int) map[string]domain.TableElement {
	m := e.tables[slide]
	if m == nil {
		m = make(map[string]domain.TableElement)
		e.tables[slide] = m
	}
	return m
}

func (e *Engine) slideInfos(slide int) map[string]domain.InfographicElement {
	m := e.infos[slide]
	if m == nil {
		m = make(map[string]domain.InfographicElement)
		e.infos[slide] = m
	}
	return m
}
