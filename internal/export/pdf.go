/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"goslidewriter/internal/domain"
	"goslidewriter/internal/storage"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt). Vector text relies on built-in Helvetica for
// portability; font embedding can be added later with TTFs.
//
// Coordinates: page origin is top-left, element positions are page
// coordinates, one PDF page per slide at the preset page size.
type PDFOptions struct {
	Preset      Preset
	DrawFrames  bool  // hairline frames around images and infographics
	SlideNumber []int // if empty, export all slides (1-based)
}

// ExportDeckPDF exports the deck to a single multi-page PDF placed at
// outPath. A relative outPath is resolved under the deck's exports folder.
func ExportDeckPDF(dh *storage.DeckHandle, outPath string, opt PDFOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	preset := opt.Preset
	if preset.PageW <= 0 || preset.PageH <= 0 {
		preset = PresetWide
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: preset.PageW, Ht: preset.PageH},
	})
	pdf.SetTitle(dh.Deck.Name, false)
	pdf.SetAuthor(dh.Deck.Metadata.Author, false)
	pdf.SetFont("Helvetica", "", 12)

	for _, sl := range selectSlides(dh.Deck.Slides, opt.SlideNumber) {
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: preset.PageW, Ht: preset.PageH})
		renderSlidePDF(pdf, dh.Root, sl, preset, opt.DrawFrames)
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dh.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func renderSlidePDF(pdf *gofpdf.Fpdf, root string, sl domain.Slide, preset Preset, frames bool) {
	// Images first, in z order, so text stacks above them.
	for _, img := range imagesByZ(sl.Images) {
		drawImagePDF(pdf, root, img, frames)
	}
	for _, tbl := range sl.Tables {
		drawTablePDF(pdf, tbl)
	}
	for _, ig := range sl.Infographics {
		drawInfographicPDF(pdf, ig, frames)
	}
	for _, el := range textsInLayerOrder(sl) {
		drawTextPDF(pdf, preset, el)
	}
}

func drawTextPDF(pdf *gofpdf.Fpdf, preset Preset, el domain.TextElement) {
	st := el.Style
	size := st.FontSize
	if size <= 0 {
		size = domain.DefaultTextStyle().FontSize
	}
	styleStr := ""
	if st.FontWeight == "bold" {
		styleStr += "B"
	}
	if st.FontStyle == "italic" {
		styleStr += "I"
	}
	if st.TextDecoration == "underline" {
		styleStr += "U"
	}
	pdf.SetFont("Helvetica", styleStr, size)
	r, g, b := parseHexColor(st.Color)
	pdf.SetTextColor(r, g, b)

	if st.Rotation != 0 {
		pdf.TransformBegin()
		pdf.TransformRotate(-st.Rotation, st.X, st.Y)
		defer pdf.TransformEnd()
	}
	y := st.Y + size // first baseline below the anchor
	for _, line := range wrappedLines(el, preset) {
		x := st.X
		switch st.TextAlign {
		case domain.AlignCenter:
			x = st.X + (preset.PageW-2*st.X)/2 - pdf.GetStringWidth(line)/2
		case domain.AlignRight:
			x = preset.PageW - st.X - pdf.GetStringWidth(line)
		}
		pdf.Text(x, y, line)
		y += size * 1.3
	}
}

func drawImagePDF(pdf *gofpdf.Fpdf, root string, img domain.ImageElement, frames bool) {
	src := resolveAsset(root, img.Src)
	if !img.Placeholder && src != "" {
		pdf.ImageOptions(src, img.Position.X, img.Position.Y, img.Size.Width, img.Size.Height,
			false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		if frames {
			pdf.SetDrawColor(120, 120, 120)
			pdf.SetLineWidth(0.5)
			pdf.Rect(img.Position.X, img.Position.Y, img.Size.Width, img.Size.Height, "D")
		}
		return
	}
	// Placeholder: light fill with a diagonal cross.
	pdf.SetFillColor(238, 238, 238)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.7)
	pdf.Rect(img.Position.X, img.Position.Y, img.Size.Width, img.Size.Height, "FD")
	pdf.Line(img.Position.X, img.Position.Y, img.Position.X+img.Size.Width, img.Position.Y+img.Size.Height)
	pdf.Line(img.Position.X+img.Size.Width, img.Position.Y, img.Position.X, img.Position.Y+img.Size.Height)
	if img.Alt != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(120, 120, 120)
		pdf.Text(img.Position.X+6, img.Position.Y+img.Size.Height-8, img.Alt)
	}
}

func drawTablePDF(pdf *gofpdf.Fpdf, tbl domain.TableElement) {
	const (
		cellW = 120.0
		cellH = 28.0
		pad   = 6.0
	)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	for ri, row := range tbl.Data.Rows {
		for ci, cell := range row {
			x := tbl.Position.X + float64(ci)*cellW
			y := tbl.Position.Y + float64(ri)*cellH
			pdf.Rect(x, y, cellW, cellH, "D")
			styleStr := ""
			if cell.Style.Bold {
				styleStr = "B"
			}
			size := cell.Style.FontSize
			if size <= 0 {
				size = 11
			}
			pdf.SetFont("Helvetica", styleStr, size)
			r, g, b := parseHexColor(cell.Style.Color)
			pdf.SetTextColor(r, g, b)
			pdf.Text(x+pad, y+cellH-2*pad+size/2, cell.Content)
		}
	}
}

// drawInfographicPDF renders the data payload as horizontal bars, which
// covers the bar kind and degrades gracefully for the others.
func drawInfographicPDF(pdf *gofpdf.Fpdf, ig domain.InfographicElement, frames bool) {
	x, y := ig.Position.X, ig.Position.Y
	w, h := ig.Size.Width, ig.Size.Height
	if frames {
		pdf.SetDrawColor(160, 160, 160)
		pdf.SetLineWidth(0.5)
		pdf.Rect(x, y, w, h, "D")
	}
	if ig.Data.Title != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(24, 24, 24)
		pdf.Text(x+4, y+14, ig.Data.Title)
		y += 22
		h -= 22
	}
	items := ig.Data.Items
	if len(items) == 0 || h <= 0 {
		return
	}
	maxVal := 0.0
	for _, it := range items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}
	if maxVal <= 0 {
		return
	}
	const labelW = 90.0
	rowH := h / float64(len(items))
	barH := rowH * 0.6
	for i, it := range items {
		ry := y + float64(i)*rowH + (rowH-barH)/2
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(24, 24, 24)
		pdf.Text(x+2, ry+barH-2, it.Label)
		r, g, b := parseHexColor(it.Color)
		if it.Color == "" {
			r, g, b = 70, 130, 180
		}
		pdf.SetFillColor(r, g, b)
		bw := (w - labelW - 4) * (it.Value / maxVal)
		pdf.Rect(x+labelW, ry, bw, barH, "F")
	}
}
