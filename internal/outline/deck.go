/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

import (
	"strings"

	"github.com/google/uuid"

	"goslidewriter/internal/domain"
)

// Default 16:9 slide geometry in points.
const (
	SlideWidth  = 960.0
	SlideHeight = 540.0

	marginX      = 60.0
	titleY       = 40.0
	titleSize    = 28.0
	bodyTop      = 120.0
	bodySize     = 18.0
	bulletPitch  = 48.0
	imageWidth   = 360.0
	imageHeight  = 240.0
	tableRowH    = 32.0
	elementGapY  = 24.0
)

// BuildDeck converts a parsed outline into a deck manifest. Each section
// becomes one slide: the title as a bold text element, bullets stacked below
// it, IMAGE markers as placeholder images on the right half, and TABLE
// blocks as table elements. Notes are joined into the slide's speaker notes.
func BuildDeck(name string, o Outline) domain.Presentation {
	deck := domain.Presentation{Name: name}
	for i, sec := range o.Sections {
		deck.Slides = append(deck.Slides, buildSlide(i+1, sec))
	}
	return deck
}

func buildSlide(number int, sec Section) domain.Slide {
	sl := domain.Slide{Number: number, Title: sec.Title}
	y := bodyTop
	var notes []string

	if strings.TrimSpace(sec.Title) != "" {
		style := domain.DefaultTextStyle()
		style.FontSize = titleSize
		style.FontWeight = "bold"
		style.X = marginX
		style.Y = titleY
		el := domain.TextElement{
			ID:          "text-" + uuid.NewString(),
			SlideNumber: number,
			Content:     sec.Title,
			Style:       style,
		}
		sl.Texts = append(sl.Texts, el)
		sl.TextOrder = append(sl.TextOrder, el.ID)
	}

	for _, item := range sec.Items {
		switch item.Type {
		case ItemBullet, ItemUnknown:
			style := domain.DefaultTextStyle()
			style.FontSize = bodySize
			style.X = marginX
			style.Y = y
			if len(item.Styles) > 0 {
				style.NarrativeStyle = item.Styles[0]
			}
			el := domain.TextElement{
				ID:          "text-" + uuid.NewString(),
				SlideNumber: number,
				Content:     item.Text,
				Style:       style,
			}
			sl.Texts = append(sl.Texts, el)
			sl.TextOrder = append(sl.TextOrder, el.ID)
			y += bulletPitch * float64(1+strings.Count(item.Text, "\n"))
		case ItemNote:
			notes = append(notes, item.Text)
		case ItemImage:
			sl.Images = append(sl.Images, domain.ImageElement{
				ID:          "img-" + uuid.NewString(),
				SlideNumber: number,
				Position:    domain.Position{X: SlideWidth - marginX - imageWidth, Y: bodyTop},
				Size:        domain.Size{Width: imageWidth, Height: imageHeight},
				Alt:         item.Text,
				Placeholder: true,
				ZIndex:      len(sl.Images) + 1,
			})
		case ItemTable:
			data := tableData(item.Rows)
			if len(data.Rows) == 0 {
				continue
			}
			sl.Tables = append(sl.Tables, domain.TableElement{
				ID:          "tbl-" + uuid.NewString(),
				SlideNumber: number,
				Position:    domain.Position{X: marginX, Y: y},
				Data:        data,
			})
			y += tableRowH*float64(len(data.Rows)) + elementGapY
		}
	}
	sl.Notes = strings.Join(notes, "\n")
	return sl
}

// tableData converts raw outline rows into a rectangular cell grid, padding
// short rows to the widest one. The first row is styled as a header.
func tableData(rows [][]string) domain.TableData {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		return domain.TableData{}
	}
	var data domain.TableData
	for ri, r := range rows {
		row := make([]domain.TableCell, width)
		for ci := range row {
			var content string
			if ci < len(r) {
				content = r[ci]
			}
			cell := domain.TableCell{Content: content}
			if ri == 0 {
				cell.Style.Bold = true
			}
			row[ci] = cell
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
