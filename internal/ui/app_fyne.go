//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"goslidewriter/internal/config"
	"goslidewriter/internal/crash"
	"goslidewriter/internal/domain"
	"goslidewriter/internal/engine"
	"goslidewriter/internal/export"
	"goslidewriter/internal/geom"
	applog "goslidewriter/internal/log"
	"goslidewriter/internal/storage"
	"goslidewriter/internal/version"
)

// Run starts the Fyne-based desktop editor. An optional deck directory is
// opened immediately.
func Run(deckDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, cfgPath, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	} else if cfgPath != "" {
		l.Debug("config loaded", slog.String("path", cfgPath))
	}

	var dh *storage.DeckHandle
	defer func() { crash.Recover(dh) }()

	fyneApp := app.NewWithID("goslidewriter")
	w := fyneApp.NewWindow("Go Slide Writer")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	eng := engine.New(engine.Options{MaxHistory: cfg.Editor.MaxHistory, Logger: l})
	status := widget.NewLabel("Ready")
	sc := NewSlideCanvas(eng)

	// Periodic autosave of per-slide engine snapshots into the deck index,
	// the recovery source next to the manifest backups.
	go func() {
		iv := cfg.Editor.AutosaveSec
		if iv <= 0 {
			iv = 120
		}
		tick := time.NewTicker(time.Duration(iv) * time.Second)
		defer tick.Stop()
		for range tick.C {
			h := dh
			if h == nil {
				continue
			}
			snap := eng.Snapshot()
			for _, sl := range snap.Slides {
				b, err := json.Marshal(sl)
				if err != nil {
					continue
				}
				if err := storage.SaveSnapshot(context.Background(), h, sl.Number, b, time.Now()); err != nil {
					l.Warn("autosave snapshot failed", slog.Int("slide", sl.Number), slog.Any("err", err))
					break
				}
			}
		}
	}()

	setStatus := func(msg string) {
		status.SetText(msg)
	}

	refreshTitle := func() {
		if dh == nil {
			w.SetTitle("Go Slide Writer")
			return
		}
		w.SetTitle(fmt.Sprintf("Go Slide Writer — %s (slide %d/%d)", dh.Deck.Name, sc.Slide(), len(dh.Deck.Slides)))
	}

	doOpen := func(dir string) {
		if err := openDeck(dir, &dh, eng, sc, l); err != nil {
			dialog.ShowError(err, w)
			return
		}
		addRecentDeck(prefs, dir)
		refreshTitle()
		setStatus(fmt.Sprintf("Opened %s", dir))
	}

	doSave := func() {
		if dh == nil {
			setStatus("No deck open")
			return
		}
		mergeSnapshot(dh, eng.Snapshot())
		if err := storage.SaveKeeping(dh, cfg.Editor.BackupsToKeep); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := storage.UpdateIndex(context.Background(), dh.Root, dh.Deck); err != nil {
			l.Warn("index update failed", slog.Any("err", err))
		}
		for _, sl := range dh.Deck.Slides {
			png, err := export.RenderSlidePNG(sl, export.PNGOptions{DPI: 36})
			if err != nil {
				continue
			}
			if err := storage.SaveThumbnail(context.Background(), dh, sl.Number, png); err != nil {
				l.Warn("thumbnail cache failed", slog.Int("slide", sl.Number), slog.Any("err", err))
				break
			}
		}
		setStatus("Saved")
	}

	// Menu actions
	openItem := fyne.NewMenuItem("Open Deck…", func() {
		dialog.ShowFolderOpen(func(u fyne.ListableURI, err error) {
			if err != nil || u == nil {
				return
			}
			doOpen(u.Path())
		}, w)
	})
	saveItem := fyne.NewMenuItem("Save", doSave)
	exportPDFItem := fyne.NewMenuItem("Export PDF…", func() {
		if dh == nil {
			setStatus("No deck open")
			return
		}
		mergeSnapshot(dh, eng.Snapshot())
		if err := export.ExportDeckPDF(dh, "deck.pdf", export.PDFOptions{}); err != nil {
			dialog.ShowError(err, w)
			return
		}
		setStatus("PDF written to exports/deck.pdf")
	})
	exportPNGItem := fyne.NewMenuItem("Export PNG slides…", func() {
		if dh == nil {
			setStatus("No deck open")
			return
		}
		mergeSnapshot(dh, eng.Snapshot())
		if err := export.ExportDeckPNGSlides(dh, "png", export.PNGOptions{DPI: 96}); err != nil {
			dialog.ShowError(err, w)
			return
		}
		setStatus("PNG slides written to exports/png/")
	})

	undoItem := fyne.NewMenuItem("Undo", func() {
		if eng.Undo() {
			sc.Refresh()
			setStatus("Undo")
		}
	})
	redoItem := fyne.NewMenuItem("Redo", func() {
		if eng.Redo() {
			sc.Refresh()
			setStatus("Redo")
		}
	})
	copyItem := fyne.NewMenuItem("Copy Element", func() {
		if copySelected(eng, sc.Slide()) {
			setStatus("Copied")
		}
	})
	pasteItem := fyne.NewMenuItem("Paste Element", func() {
		if id, ok := eng.Paste(sc.Slide()); ok {
			sc.Refresh()
			setStatus("Pasted " + id)
		}
	})
	deleteItem := fyne.NewMenuItem("Delete Selection", func() {
		if deleteSelected(eng, sc.Slide()) {
			sc.Refresh()
			setStatus("Deleted")
		}
	})
	areaItem := fyne.NewMenuItem("Mark Image Area", func() {
		eng.SetAreaSelectionMode(!eng.AreaSelectionMode())
		if eng.AreaSelectionMode() {
			setStatus("Area selection: drag on the slide to mark the image region")
		} else {
			setStatus("Area selection off")
		}
	})

	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}

	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("Go Slide Writer", version.String(), w)
	})
	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", openItem, saveItem, fyne.NewMenuItemSeparator(), exportPDFItem, exportPNGItem),
		fyne.NewMenu("Edit", undoItem, redoItem, fyne.NewMenuItemSeparator(), copyItem, pasteItem, deleteItem, fyne.NewMenuItemSeparator(), areaItem),
		fyne.NewMenu("Help", aboutItem),
	))

	// Keyboard shortcuts on the window canvas
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if eng.Undo() {
			sc.Refresh()
			setStatus("Undo")
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		if eng.Redo() {
			sc.Refresh()
			setStatus("Redo")
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyC, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if copySelected(eng, sc.Slide()) {
			setStatus("Copied")
		}
	})
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyV, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if id, ok := eng.Paste(sc.Slide()); ok {
			sc.Refresh()
			setStatus("Pasted " + id)
		}
	})
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			if deleteSelected(eng, sc.Slide()) {
				sc.Refresh()
				setStatus("Deleted")
			}
		case fyne.KeyEscape:
			if eng.AreaSelectionMode() {
				eng.SetAreaSelectionMode(false)
				eng.ClearAreaSelection(sc.Slide())
				setStatus("Area selection off")
			} else {
				eng.ClearSelection()
			}
			sc.Refresh()
		}
	})

	// Slide navigation
	prevBtn := widget.NewButton("◀", func() {
		if sc.Slide() > 1 {
			sc.SetSlide(sc.Slide() - 1)
			refreshTitle()
		}
	})
	nextBtn := widget.NewButton("▶", func() {
		max := 1
		if dh != nil {
			max = len(dh.Deck.Slides)
		}
		if sc.Slide() < max {
			sc.SetSlide(sc.Slide() + 1)
			refreshTitle()
		}
	})
	addTextBtn := widget.NewButton("Add Text", func() {
		id := eng.AddText(sc.Slide(), "New text")
		eng.SelectText(id)
		sc.Refresh()
		setStatus("Added " + id)
	})
	toolbar := container.NewHBox(prevBtn, nextBtn, widget.NewSeparator(), addTextBtn)

	w.SetContent(container.NewBorder(toolbar, status, nil, nil, sc))

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if strings.TrimSpace(deckDir) != "" {
		doOpen(deckDir)
	} else if recent := loadRecentDecks(prefs); len(recent) > 0 {
		setStatus("Recent: " + recent[0])
	}

	w.ShowAndRun()
	return nil
}

func openDeck(dir string, dh **storage.DeckHandle, eng *engine.Engine, sc *SlideCanvas, l *slog.Logger) error {
	h, err := storage.Open(dir)
	if err != nil {
		return err
	}
	*dh = h
	eng.Hydrate(h.Deck)
	sc.SetSlide(1)
	if _, err := storage.DetectAndRebuildIndex(context.Background(), h.Root, h.Deck); err != nil {
		l.Warn("index check failed", slog.Any("err", err))
	}
	l.Info("deck opened", slog.String("root", dir), slog.Int("slides", len(h.Deck.Slides)))
	return nil
}

// mergeSnapshot folds the engine's element state back into the manifest,
// keeping slide titles and speaker notes, which the engine does not track.
func mergeSnapshot(dh *storage.DeckHandle, snap domain.Presentation) {
	meta := map[int]domain.Slide{}
	for _, sl := range dh.Deck.Slides {
		meta[sl.Number] = sl
	}
	for i := range snap.Slides {
		if old, ok := meta[snap.Slides[i].Number]; ok {
			snap.Slides[i].Title = old.Title
			snap.Slides[i].Notes = old.Notes
		}
	}
	snap.Name = dh.Deck.Name
	snap.Metadata = dh.Deck.Metadata
	dh.Deck = snap
}

// copySelected puts the current selection's primary element on the engine
// clipboard. Reports whether anything was copied.
func copySelected(eng *engine.Engine, slide int) bool {
	if id := eng.SelectedText(); id != "" {
		eng.CopyToClipboard(engine.KindText, slide, id)
		return true
	}
	if id := eng.SelectedImage(); id != "" {
		eng.CopyToClipboard(engine.KindImage, slide, id)
		return true
	}
	if id := eng.SelectedTable(); id != "" {
		eng.CopyToClipboard(engine.KindTable, slide, id)
		return true
	}
	if id := eng.SelectedInfographic(); id != "" {
		eng.CopyToClipboard(engine.KindInfographic, slide, id)
		return true
	}
	return false
}

// deleteSelected removes every selected element. Reports whether anything
// was deleted.
func deleteSelected(eng *engine.Engine, slide int) bool {
	deleted := false
	for _, id := range eng.SelectedTexts() {
		eng.DeleteText(id)
		deleted = true
	}
	if id := eng.SelectedImage(); id != "" {
		eng.DeleteImage(slide, id)
		deleted = true
	}
	if id := eng.SelectedTable(); id != "" {
		eng.DeleteTable(slide, id)
		deleted = true
	}
	if id := eng.SelectedInfographic(); id != "" {
		eng.DeleteInfographic(slide, id)
		deleted = true
	}
	return deleted
}

// SlideCanvas renders one slide of the engine state and translates pointer
// interaction into engine operations.
type SlideCanvas struct {
	widget.BaseWidget
	eng *engine.Engine

	zoom    float32
	offsetX float32
	offsetY float32
	slide   int

	// Geometry in points; the editor's native page.
	pageW float32
	pageH float32

	dragging bool

	// Move-drag state. moveRaw tracks the unsnapped rect so snapping does
	// not accumulate across drag events.
	moving   bool
	moveHit  elementHit
	moveRaw  geom.Rect
	moveRect geom.Rect
	guides   []geom.GuideLine
}

func NewSlideCanvas(eng *engine.Engine) *SlideCanvas {
	sc := &SlideCanvas{
		eng:   eng,
		zoom:  0.75,
		slide: 1,
		pageW: 960,
		pageH: 540,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

// Slide returns the 1-based slide currently shown.
func (sc *SlideCanvas) Slide() int { return sc.slide }

// SetSlide switches the canvas to the given slide number.
func (sc *SlideCanvas) SetSlide(n int) {
	if n < 1 {
		n = 1
	}
	sc.slide = n
	sc.Refresh()
}

func (sc *SlideCanvas) PreferredSize() fyne.Size { return fyne.NewSize(800, 600) }

func (sc *SlideCanvas) pageOriginAndScale() (cx, cy, scale float32) {
	size := sc.Size()
	scale = sc.zoom
	cx = (size.Width-sc.pageW*scale)/2 + sc.offsetX
	cy = (size.Height-sc.pageH*scale)/2 + sc.offsetY
	return cx, cy, scale
}

// toSlide converts a widget position to slide coordinates in points.
func (sc *SlideCanvas) toSlide(pos fyne.Position) (float64, float64) {
	cx, cy, scale := sc.pageOriginAndScale()
	return float64((pos.X - cx) / scale), float64((pos.Y - cy) / scale)
}

func (sc *SlideCanvas) toScreen(x, y float64) fyne.Position {
	cx, cy, scale := sc.pageOriginAndScale()
	return fyne.NewPos(cx+float32(x)*scale, cy+float32(y)*scale)
}

type elementHit struct {
	kind engine.ElementKind
	id   string
}

// hitTest returns the topmost element at slide coordinates, testing texts
// in reverse layer order first, then infographics, tables and images.
func (sc *SlideCanvas) hitTest(x, y float64) (elementHit, bool) {
	texts := sc.eng.Texts(sc.slide)
	for i := len(texts) - 1; i >= 0; i-- {
		el := texts[i]
		bx, by, bw, bh := textBounds(el)
		if x >= bx && x <= bx+bw && y >= by && y <= by+bh {
			return elementHit{kind: engine.KindText, id: el.ID}, true
		}
	}
	infos := sc.eng.Infographics(sc.slide)
	for i := len(infos) - 1; i >= 0; i-- {
		el := infos[i]
		if x >= el.Position.X && x <= el.Position.X+el.Size.Width && y >= el.Position.Y && y <= el.Position.Y+el.Size.Height {
			return elementHit{kind: engine.KindInfographic, id: el.ID}, true
		}
	}
	tables := sc.eng.Tables(sc.slide)
	for i := len(tables) - 1; i >= 0; i-- {
		el := tables[i]
		w, h := tableBounds(el)
		if x >= el.Position.X && x <= el.Position.X+w && y >= el.Position.Y && y <= el.Position.Y+h {
			return elementHit{kind: engine.KindTable, id: el.ID}, true
		}
	}
	images := sc.eng.Images(sc.slide)
	for i := len(images) - 1; i >= 0; i-- {
		el := images[i]
		if x >= el.Position.X && x <= el.Position.X+el.Size.Width && y >= el.Position.Y && y <= el.Position.Y+el.Size.Height {
			return elementHit{kind: engine.KindImage, id: el.ID}, true
		}
	}
	return elementHit{}, false
}

// textBounds approximates the on-slide box of a text element from its style.
// Exact wrap metrics live in textlayout; this is only for hit testing.
func textBounds(el domain.TextElement) (x, y, w, h float64) {
	st := el.Style
	size := st.FontSize
	if size <= 0 {
		size = domain.DefaultTextStyle().FontSize
	}
	lines := strings.Split(el.Content, "\n")
	longest := 0
	for _, ln := range lines {
		if len(ln) > longest {
			longest = len(ln)
		}
	}
	w = float64(longest) * size * 0.6
	if w < size {
		w = size
	}
	h = float64(len(lines)) * size * 1.3
	return st.X, st.Y, w, h
}

func tableBounds(el domain.TableElement) (w, h float64) {
	rows := len(el.Data.Rows)
	cols := 0
	for _, r := range el.Data.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return float64(cols) * 120, float64(rows) * 28
}

// Tapped resolves the element under the cursor and updates the selection.
// Ctrl-click extension is handled by the shortcut layer; a plain tap selects
// exclusively, and a miss clears the selection.
func (sc *SlideCanvas) Tapped(e *fyne.PointEvent) {
	x, y := sc.toSlide(e.Position)
	hit, ok := sc.hitTest(x, y)
	if !ok {
		sc.eng.ClearSelection()
		sc.Refresh()
		return
	}
	sc.selectHit(hit)
	sc.Refresh()
}

// TappedSecondary adds a text element to the multi-selection, mirroring
// ctrl-click in editors without reliable modifier reporting.
func (sc *SlideCanvas) TappedSecondary(e *fyne.PointEvent) {
	x, y := sc.toSlide(e.Position)
	if hit, ok := sc.hitTest(x, y); ok && hit.kind == engine.KindText {
		sc.eng.AddTextToSelection(hit.id)
		sc.Refresh()
	}
}

// Dragged marks the image area when area-selection mode is active. A drag
// that starts on an element moves that element with alignment snapping;
// anywhere else it pans the slide.
func (sc *SlideCanvas) Dragged(e *fyne.DragEvent) {
	if sc.eng.AreaSelectionMode() {
		x, y := sc.toSlide(e.Position)
		if !sc.dragging {
			sc.dragging = true
			sc.eng.StartAreaSelection(sc.slide, x, y)
		} else {
			sc.eng.UpdateAreaSelection(sc.slide, x, y)
		}
		sc.Refresh()
		return
	}
	if !sc.dragging && !sc.moving {
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		sx, sy := sc.toSlide(start)
		if hit, ok := sc.hitTest(sx, sy); ok {
			sc.moving = true
			sc.moveHit = hit
			sc.moveRaw = sc.elementRect(hit)
			sc.moveRect = sc.moveRaw
			sc.selectHit(hit)
		} else {
			sc.dragging = true
		}
	}
	if sc.moving {
		_, _, scale := sc.pageOriginAndScale()
		sc.moveRaw.X += float32(e.Dragged.DX) / scale
		sc.moveRaw.Y += float32(e.Dragged.DY) / scale
		sc.moveRect, sc.guides = geom.SnapToGuides(sc.moveRaw, sc.snapAnchors(sc.moveHit), geom.SnapOptions{
			Threshold:     6,
			SnapToEdges:   true,
			SnapToCenters: true,
		})
		sc.Refresh()
		return
	}
	sc.offsetX += float32(e.Dragged.DX)
	sc.offsetY += float32(e.Dragged.DY)
	sc.Refresh()
}

func (sc *SlideCanvas) DragEnd() {
	if sc.eng.AreaSelectionMode() && sc.dragging {
		sc.dragging = false
		sc.eng.FinishAreaSelection(sc.slide)
		sc.Refresh()
		return
	}
	if sc.moving {
		sc.commitMove()
		sc.moving = false
		sc.guides = nil
		sc.Refresh()
	}
	sc.dragging = false
}

func (sc *SlideCanvas) selectHit(hit elementHit) {
	switch hit.kind {
	case engine.KindText:
		sc.eng.SelectText(hit.id)
	case engine.KindImage:
		sc.eng.SelectImage(hit.id)
	case engine.KindTable:
		sc.eng.SelectTable(hit.id)
	case engine.KindInfographic:
		sc.eng.SelectInfographic(hit.id)
	}
}

// elementRect returns the element's bounding box in slide points.
func (sc *SlideCanvas) elementRect(hit elementHit) geom.Rect {
	switch hit.kind {
	case engine.KindText:
		if el, ok := sc.eng.Text(hit.id); ok {
			x, y, w, h := textBounds(el)
			return geom.R(float32(x), float32(y), float32(w), float32(h))
		}
	case engine.KindImage:
		if el, ok := sc.eng.Image(sc.slide, hit.id); ok {
			return geom.R(float32(el.Position.X), float32(el.Position.Y), float32(el.Size.Width), float32(el.Size.Height))
		}
	case engine.KindTable:
		if el, ok := sc.eng.Table(sc.slide, hit.id); ok {
			w, h := tableBounds(el)
			return geom.R(float32(el.Position.X), float32(el.Position.Y), float32(w), float32(h))
		}
	case engine.KindInfographic:
		if el, ok := sc.eng.Infographic(sc.slide, hit.id); ok {
			return geom.R(float32(el.Position.X), float32(el.Position.Y), float32(el.Size.Width), float32(el.Size.Height))
		}
	}
	return geom.Rect{}
}

// snapAnchors collects the page and every sibling element as snap targets.
// The page carries extra weight so page-center alignment wins ties.
func (sc *SlideCanvas) snapAnchors(exclude elementHit) []geom.Anchor {
	anchors := []geom.Anchor{{Rect: geom.R(0, 0, sc.pageW, sc.pageH), Weight: 4}}
	for _, el := range sc.eng.Texts(sc.slide) {
		if exclude.kind == engine.KindText && exclude.id == el.ID {
			continue
		}
		x, y, w, h := textBounds(el)
		anchors = append(anchors, geom.Anchor{Rect: geom.R(float32(x), float32(y), float32(w), float32(h)), Weight: 1})
	}
	for _, el := range sc.eng.Images(sc.slide) {
		if exclude.kind == engine.KindImage && exclude.id == el.ID {
			continue
		}
		anchors = append(anchors, geom.Anchor{Rect: geom.R(float32(el.Position.X), float32(el.Position.Y), float32(el.Size.Width), float32(el.Size.Height)), Weight: 1})
	}
	for _, el := range sc.eng.Tables(sc.slide) {
		if exclude.kind == engine.KindTable && exclude.id == el.ID {
			continue
		}
		w, h := tableBounds(el)
		anchors = append(anchors, geom.Anchor{Rect: geom.R(float32(el.Position.X), float32(el.Position.Y), float32(w), float32(h)), Weight: 1})
	}
	for _, el := range sc.eng.Infographics(sc.slide) {
		if exclude.kind == engine.KindInfographic && exclude.id == el.ID {
			continue
		}
		anchors = append(anchors, geom.Anchor{Rect: geom.R(float32(el.Position.X), float32(el.Position.Y), float32(el.Size.Width), float32(el.Size.Height)), Weight: 1})
	}
	return anchors
}

// displayXY substitutes the in-flight drag position for the element being
// moved so the canvas shows the move before it is committed.
func (sc *SlideCanvas) displayXY(kind engine.ElementKind, id string, x, y float64) (float64, float64) {
	if sc.moving && sc.moveHit.kind == kind && sc.moveHit.id == id {
		return float64(sc.moveRect.X), float64(sc.moveRect.Y)
	}
	return x, y
}

// commitMove applies the finished move as a single undoable operation.
func (sc *SlideCanvas) commitMove() {
	nx := float64(sc.moveRect.X)
	ny := float64(sc.moveRect.Y)
	switch sc.moveHit.kind {
	case engine.KindText:
		sc.eng.UpdateTextStyle(sc.slide, sc.moveHit.id, domain.TextStylePatch{X: &nx, Y: &ny})
	case engine.KindImage:
		sc.eng.UpdateImage(sc.slide, sc.moveHit.id, domain.ImagePatch{Position: &domain.Position{X: nx, Y: ny}})
	case engine.KindTable:
		sc.eng.UpdateTable(sc.slide, sc.moveHit.id, domain.TablePatch{Position: &domain.Position{X: nx, Y: ny}})
	case engine.KindInfographic:
		sc.eng.UpdateInfographic(sc.slide, sc.moveHit.id, domain.InfographicPatch{Position: &domain.Position{X: nx, Y: ny}})
	}
}

// Scrolled zooms the slide.
func (sc *SlideCanvas) Scrolled(e *fyne.ScrollEvent) {
	step := float32(e.Scrolled.DY) * 0.05
	sc.zoom += step
	if sc.zoom < 0.1 {
		sc.zoom = 0.1
	}
	if sc.zoom > 4.0 {
		sc.zoom = 4.0
	}
	sc.Refresh()
}

func (sc *SlideCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 34, A: 255})
	page := canvas.NewRectangle(color.White)
	page.StrokeColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	page.StrokeWidth = 2
	return &slideCanvasRenderer{sc: sc, bg: bg, page: page}
}

type slideCanvasRenderer struct {
	sc      *SlideCanvas
	objects []fyne.CanvasObject
	bg      *canvas.Rectangle
	page    *canvas.Rectangle
}

func (r *slideCanvasRenderer) Destroy()                     {}
func (r *slideCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *slideCanvasRenderer) MinSize() fyne.Size           { return r.sc.PreferredSize() }
func (r *slideCanvasRenderer) Refresh() {
	r.Layout(r.sc.Size())
	canvas.Refresh(r.sc)
}

// Layout rebuilds the scene for the current slide. Objects are regenerated
// per refresh because the element set changes with every engine operation.
func (r *slideCanvasRenderer) Layout(size fyne.Size) {
	sc := r.sc
	cx, cy, scale := sc.pageOriginAndScale()

	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(size)
	r.page.Move(fyne.NewPos(cx, cy))
	r.page.Resize(fyne.NewSize(sc.pageW*scale, sc.pageH*scale))

	objs := []fyne.CanvasObject{r.bg, r.page}

	selImage := sc.eng.SelectedImage()
	selTable := sc.eng.SelectedTable()
	selInfo := sc.eng.SelectedInfographic()
	selTexts := map[string]bool{}
	for _, id := range sc.eng.SelectedTexts() {
		selTexts[id] = true
	}

	for _, el := range sc.eng.Images(sc.slide) {
		ex, ey := sc.displayXY(engine.KindImage, el.ID, el.Position.X, el.Position.Y)
		rect := canvas.NewRectangle(color.RGBA{R: 238, G: 238, B: 238, A: 255})
		rect.StrokeColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		rect.StrokeWidth = 1
		if el.ID == selImage {
			rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
			rect.StrokeWidth = 2
		}
		rect.Move(sc.toScreen(ex, ey))
		rect.Resize(fyne.NewSize(float32(el.Size.Width)*scale, float32(el.Size.Height)*scale))
		objs = append(objs, rect)
		if el.Alt != "" {
			alt := canvas.NewText(el.Alt, color.RGBA{R: 120, G: 120, B: 120, A: 255})
			alt.TextSize = 10 * scale
			alt.Move(sc.toScreen(ex+4, ey+4))
			objs = append(objs, alt)
		}
	}

	for _, el := range sc.eng.Tables(sc.slide) {
		w, h := tableBounds(el)
		rect := canvas.NewRectangle(color.RGBA{R: 250, G: 250, B: 250, A: 255})
		rect.StrokeColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
		rect.StrokeWidth = 1
		if el.ID == selTable {
			rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
			rect.StrokeWidth = 2
		}
		ex, ey := sc.displayXY(engine.KindTable, el.ID, el.Position.X, el.Position.Y)
		rect.Move(sc.toScreen(ex, ey))
		rect.Resize(fyne.NewSize(float32(w)*scale, float32(h)*scale))
		objs = append(objs, rect)
		for ri, row := range el.Data.Rows {
			for ci, cell := range row {
				txt := canvas.NewText(cell.Content, parseColor(cell.Style.Color))
				txt.TextSize = 11 * scale
				if cell.Style.Bold {
					txt.TextStyle = fyne.TextStyle{Bold: true}
				}
				txt.Move(sc.toScreen(ex+float64(ci)*120+6, ey+float64(ri)*28+6))
				objs = append(objs, txt)
			}
		}
	}

	for _, el := range sc.eng.Infographics(sc.slide) {
		rect := canvas.NewRectangle(color.RGBA{R: 245, G: 248, B: 252, A: 255})
		rect.StrokeColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		rect.StrokeWidth = 1
		if el.ID == selInfo {
			rect.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
			rect.StrokeWidth = 2
		}
		ex, ey := sc.displayXY(engine.KindInfographic, el.ID, el.Position.X, el.Position.Y)
		rect.Move(sc.toScreen(ex, ey))
		rect.Resize(fyne.NewSize(float32(el.Size.Width)*scale, float32(el.Size.Height)*scale))
		objs = append(objs, rect)
		if el.Data.Title != "" {
			title := canvas.NewText(el.Data.Title, color.RGBA{R: 24, G: 24, B: 24, A: 255})
			title.TextSize = 12 * scale
			title.TextStyle = fyne.TextStyle{Bold: true}
			title.Move(sc.toScreen(ex+4, ey+4))
			objs = append(objs, title)
		}
	}

	for _, el := range sc.eng.Texts(sc.slide) {
		st := el.Style
		size := st.FontSize
		if size <= 0 {
			size = domain.DefaultTextStyle().FontSize
		}
		ex, ey := sc.displayXY(engine.KindText, el.ID, st.X, st.Y)
		for li, line := range strings.Split(el.Content, "\n") {
			txt := canvas.NewText(line, parseColor(st.Color))
			txt.TextSize = float32(size) * scale
			txt.TextStyle = fyne.TextStyle{Bold: st.FontWeight == "bold", Italic: st.FontStyle == "italic"}
			txt.Move(sc.toScreen(ex, ey+float64(li)*size*1.3))
			objs = append(objs, txt)
		}
		if selTexts[el.ID] {
			_, _, bw, bh := textBounds(el)
			box := canvas.NewRectangle(color.RGBA{A: 0})
			box.StrokeColor = color.RGBA{R: 0, G: 170, B: 255, A: 255}
			box.StrokeWidth = 1
			box.Move(sc.toScreen(ex, ey))
			box.Resize(fyne.NewSize(float32(bw)*scale, float32(bh)*scale))
			objs = append(objs, box)
		}
	}

	for _, g := range sc.guides {
		ln := canvas.NewLine(color.RGBA{R: 255, G: 64, B: 160, A: 220})
		ln.StrokeWidth = 1
		ln.Position1 = sc.toScreen(float64(g.From.X), float64(g.From.Y))
		ln.Position2 = sc.toScreen(float64(g.To.X), float64(g.To.Y))
		objs = append(objs, ln)
	}

	if area, ok := sc.eng.AreaSelection(sc.slide); ok && (area.Selecting || area.Width() > 0 || area.Height() > 0) {
		o := area.Origin()
		box := canvas.NewRectangle(color.RGBA{R: 0, G: 120, B: 255, A: 40})
		box.StrokeColor = color.RGBA{R: 0, G: 120, B: 255, A: 200}
		box.StrokeWidth = 1
		box.Move(sc.toScreen(o.X, o.Y))
		box.Resize(fyne.NewSize(float32(area.Width())*scale, float32(area.Height())*scale))
		objs = append(objs, box)
	}

	r.objects = objs
}

func parseColor(hex string) color.Color {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{R: 24, G: 24, B: 24, A: 255}
	}
	val := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	return color.RGBA{
		R: val(hex[1])<<4 | val(hex[2]),
		G: val(hex[3])<<4 | val(hex[4]),
		B: val(hex[5])<<4 | val(hex[6]),
		A: 255,
	}
}

// Recent decks are tracked in Fyne preferences, newest first.
func loadRecentDecks(p fyne.Preferences) []string {
	raw := p.String("recent.decks")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, "\n") {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func saveRecentDecks(p fyne.Preferences, items []string) {
	if len(items) > 8 {
		items = items[:8]
	}
	p.SetString("recent.decks", strings.Join(items, "\n"))
}

func addRecentDeck(p fyne.Preferences, path string) {
	items := loadRecentDecks(p)
	out := []string{path}
	for _, it := range items {
		if it != path {
			out = append(out, it)
		}
	}
	saveRecentDecks(p, out)
}
