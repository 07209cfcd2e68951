/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"goslidewriter/internal/domain"
	"goslidewriter/internal/storage"
)

// PNGOptions controls PNG export behavior.
// - DPI: output resolution; <= 0 means 72 (1 pixel per point)
// - DrawFrames: hairline frames around images and infographics
// - SlideNumber: if empty, export all slides (1-based)
type PNGOptions struct {
	Preset      Preset
	DPI         int
	DrawFrames  bool
	SlideNumber []int
}

// ExportDeckPNGSlides exports each slide as a separate PNG file named
// slide-<number>.png. A relative outDir is resolved under the deck's exports
// folder. Raster text uses a fixed bitmap face, so PNG output is a proofing
// rendition rather than a typographic one.
func ExportDeckPNGSlides(dh *storage.DeckHandle, outDir string, opt PNGOptions) error {
	if dh == nil {
		return fmt.Errorf("deck handle is nil")
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(dh.Root, "exports", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	for _, sl := range selectSlides(dh.Deck.Slides, opt.SlideNumber) {
		img := renderSlidePNG(sl, opt)
		name := filepath.Join(outDir, fmt.Sprintf("slide-%d.png", sl.Number))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

// RenderSlidePNG rasterizes one slide and returns the encoded PNG bytes.
// Used for the thumbnail cache.
func RenderSlidePNG(sl domain.Slide, opt PNGOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, renderSlidePNG(sl, opt)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSlidePNG(sl domain.Slide, opt PNGOptions) *image.RGBA {
	preset := opt.Preset
	if preset.PageW <= 0 || preset.PageH <= 0 {
		preset = PresetWide
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = 72
	}
	scale := float64(dpi) / 72.0
	pixW := int(math.Round(preset.PageW * scale))
	pixH := int(math.Round(preset.PageH * scale))

	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	for _, el := range imagesByZ(sl.Images) {
		drawImagePNG(img, el, scale, opt.DrawFrames)
	}
	for _, tbl := range sl.Tables {
		drawTablePNG(img, tbl, scale)
	}
	for _, ig := range sl.Infographics {
		drawInfographicPNG(img, ig, scale, opt.DrawFrames)
	}
	for _, el := range textsInLayerOrder(sl) {
		drawTextPNG(img, el, scale, preset)
	}
	return img
}

func drawTextPNG(img *image.RGBA, el domain.TextElement, scale float64, preset Preset) {
	st := el.Style
	size := st.FontSize
	if size <= 0 {
		size = domain.DefaultTextStyle().FontSize
	}
	r, g, b := parseHexColor(st.Color)
	col := color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	x := int(math.Round(st.X * scale))
	y := int(math.Round((st.Y + size) * scale))
	pitch := int(math.Round(size * 1.3 * scale))
	if pitch < 13 {
		pitch = 13
	}
	for _, line := range wrappedLines(el, preset) {
		lx := x
		w := d.MeasureString(line).Round()
		switch st.TextAlign {
		case domain.AlignCenter:
			lx = (img.Bounds().Dx() - w) / 2
		case domain.AlignRight:
			lx = img.Bounds().Dx() - x - w
		}
		d.Dot = fixed.P(lx, y)
		d.DrawString(line)
		y += pitch
	}
}

func drawImagePNG(img *image.RGBA, el domain.ImageElement, scale float64, frames bool) {
	x0 := int(math.Round(el.Position.X * scale))
	y0 := int(math.Round(el.Position.Y * scale))
	x1 := x0 + int(math.Round(el.Size.Width*scale)) - 1
	y1 := y0 + int(math.Round(el.Size.Height*scale)) - 1
	if el.Placeholder || el.Src == "" {
		fillRect(img, x0, y0, x1, y1, color.RGBA{238, 238, 238, 255})
		strokeRect(img, x0, y0, x1, y1, color.RGBA{160, 160, 160, 255})
		return
	}
	// Real sources are drawn as a solid stand-in; the PDF path embeds the
	// actual pixels.
	fillRect(img, x0, y0, x1, y1, color.RGBA{210, 220, 232, 255})
	if frames {
		strokeRect(img, x0, y0, x1, y1, color.RGBA{120, 120, 120, 255})
	}
}

func drawTablePNG(img *image.RGBA, tbl domain.TableElement, scale float64) {
	cellW := int(math.Round(120 * scale))
	cellH := int(math.Round(28 * scale))
	grid := color.RGBA{60, 60, 60, 255}
	x0 := int(math.Round(tbl.Position.X * scale))
	y0 := int(math.Round(tbl.Position.Y * scale))
	for ri, row := range tbl.Data.Rows {
		for ci, cell := range row {
			cx := x0 + ci*cellW
			cy := y0 + ri*cellH
			strokeRect(img, cx, cy, cx+cellW-1, cy+cellH-1, grid)
			r, g, b := parseHexColor(cell.Style.Color)
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(cx+4, cy+cellH/2+5),
			}
			d.DrawString(cell.Content)
		}
	}
}

func drawInfographicPNG(img *image.RGBA, ig domain.InfographicElement, scale float64, frames bool) {
	x0 := int(math.Round(ig.Position.X * scale))
	y0 := int(math.Round(ig.Position.Y * scale))
	w := int(math.Round(ig.Size.Width * scale))
	h := int(math.Round(ig.Size.Height * scale))
	if frames {
		strokeRect(img, x0, y0, x0+w-1, y0+h-1, color.RGBA{160, 160, 160, 255})
	}
	if ig.Data.Title != "" {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{24, 24, 24, 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x0+4, y0+14),
		}
		d.DrawString(ig.Data.Title)
		y0 += int(math.Round(22 * scale))
		h -= int(math.Round(22 * scale))
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
	labelW := int(math.Round(90 * scale))
	rowH := h / len(items)
	barH := rowH * 6 / 10
	if barH < 2 {
		barH = 2
	}
	for i, it := range items {
		ry := y0 + i*rowH + (rowH-barH)/2
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.RGBA{24, 24, 24, 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x0+2, ry+barH-2),
		}
		d.DrawString(it.Label)
		r, g, b := parseHexColor(it.Color)
		if it.Color == "" {
			r, g, b = 70, 130, 180
		}
		bw := int(float64(w-labelW-4) * (it.Value / maxVal))
		fillRect(img, x0+labelW, ry, x0+labelW+bw-1, ry+barH-1, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
	}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
