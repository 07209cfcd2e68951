/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for Go Slide Writer: a presentation
// document made of slides, each carrying text, image, table and infographic
// elements. It serializes to a human-readable JSON manifest.

// Presentation represents a slide deck and its metadata.
type Presentation struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Slides   []Slide  `json:"slides"`
}

// Metadata contains optional descriptive metadata for a deck.
type Metadata struct {
	Author   string `json:"author,omitempty"`
	Audience string `json:"audience,omitempty"`
	Brief    string `json:"brief,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Slide holds all elements placed on one slide. Numbers are 1-based and
// unique within a deck. TextOrder is the bottom-to-top layer order of the
// slide's text elements, referencing ids in Texts.
type Slide struct {
	Number       int                  `json:"number"`
	Title        string               `json:"title,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	Texts        []TextElement        `json:"texts,omitempty"`
	TextOrder    []string             `json:"textOrder,omitempty"`
	Images       []ImageElement       `json:"images,omitempty"`
	Tables       []TableElement       `json:"tables,omitempty"`
	Infographics []InfographicElement `json:"infographics,omitempty"`
}

// TextAlign values accepted by TextStyle.TextAlign.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// TextStyle carries typography and placement for a text element.
// X and Y are the element position on the slide and are the single source of
// truth for text placement; there is no separate positions table.
type TextStyle struct {
	FontSize       float64 `json:"fontSize"`
	TextAlign      string  `json:"textAlign"`      // left, center, right
	Color          string  `json:"color"`          // #rrggbb
	FontWeight     string  `json:"fontWeight"`     // normal, bold
	FontStyle      string  `json:"fontStyle"`      // normal, italic
	TextDecoration string  `json:"textDecoration"` // none, underline
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Rotation       float64 `json:"rotation"`
	NarrativeStyle string  `json:"narrativeStyle,omitempty"`
}

// DefaultTextStyle is the style reported for a text element that has no
// persisted record yet.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize:       14,
		TextAlign:      AlignLeft,
		Color:          "#181818",
		FontWeight:     "normal",
		FontStyle:      "normal",
		TextDecoration: "none",
	}
}

// TextElement is a positioned run of styled text. SlideNumber is explicit;
// slide membership is never derived from the id string.
type TextElement struct {
	ID          string    `json:"id"`
	SlideNumber int       `json:"slideNumber"`
	Content     string    `json:"content"`
	Style       TextStyle `json:"style"`
}

// TextStylePatch is a partial update to a TextStyle. Nil fields leave the
// existing value unchanged.
type TextStylePatch struct {
	FontSize       *float64 `json:"fontSize,omitempty"`
	TextAlign      *string  `json:"textAlign,omitempty"`
	Color          *string  `json:"color,omitempty"`
	FontWeight     *string  `json:"fontWeight,omitempty"`
	FontStyle      *string  `json:"fontStyle,omitempty"`
	TextDecoration *string  `json:"textDecoration,omitempty"`
	X              *float64 `json:"x,omitempty"`
	Y              *float64 `json:"y,omitempty"`
	Rotation       *float64 `json:"rotation,omitempty"`
	NarrativeStyle *string  `json:"narrativeStyle,omitempty"`
}

// Apply merges the patch into s.
func (p TextStylePatch) Apply(s *TextStyle) {
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.TextAlign != nil {
		s.TextAlign = *p.TextAlign
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.FontWeight != nil {
		s.FontWeight = *p.FontWeight
	}
	if p.FontStyle != nil {
		s.FontStyle = *p.FontStyle
	}
	if p.TextDecoration != nil {
		s.TextDecoration = *p.TextDecoration
	}
	if p.X != nil {
		s.X = *p.X
	}
	if p.Y != nil {
		s.Y = *p.Y
	}
	if p.Rotation != nil {
		s.Rotation = *p.Rotation
	}
	if p.NarrativeStyle != nil {
		s.NarrativeStyle = *p.NarrativeStyle
	}
}

// Position is a point on the slide in slide units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in slide units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageElement is a placed image. An empty Src with Placeholder true marks a
// reserved region whose final image is not known yet.
type ImageElement struct {
	ID          string   `json:"id"`
	SlideNumber int      `json:"slideNumber"`
	Position    Position `json:"position"`
	Size        Size     `json:"size"`
	Src         string   `json:"src"`
	Alt         string   `json:"alt,omitempty"`
	Placeholder bool     `json:"placeholder"`
	ZIndex      int      `json:"zIndex"`
}

// ImagePatch is a partial update to an ImageElement.
type ImagePatch struct {
	Position    *Position `json:"position,omitempty"`
	Size        *Size     `json:"size,omitempty"`
	Src         *string   `json:"src,omitempty"`
	Alt         *string   `json:"alt,omitempty"`
	Placeholder *bool     `json:"placeholder,omitempty"`
	ZIndex      *int      `json:"zIndex,omitempty"`
}

// Apply merges the patch into e.
func (p ImagePatch) Apply(e *ImageElement) {
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.Src != nil {
		e.Src = *p.Src
	}
	if p.Alt != nil {
		e.Alt = *p.Alt
	}
	if p.Placeholder != nil {
		e.Placeholder = *p.Placeholder
	}
	if p.ZIndex != nil {
		e.ZIndex = *p.ZIndex
	}
}

// CellStyle carries per-cell table styling.
type CellStyle struct {
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Align    string  `json:"align,omitempty"`
}

// TableCell is one cell of a table grid.
type TableCell struct {
	Content string    `json:"content"`
	Style   CellStyle `json:"style,omitempty"`
}

// TableData is a rectangular 2-D grid of cells.
type TableData struct {
	Rows [][]TableCell `json:"rows"`
}

// Clone returns a deep copy of the grid.
func (d TableData) Clone() TableData {
	out := TableData{Rows: make([][]TableCell, len(d.Rows))}
	for i, row := range d.Rows {
		out.Rows[i] = append([]TableCell(nil), row...)
	}
	return out
}

// TableElement is a placed table. Stacking among tables is implicit from
// insertion order.
type TableElement struct {
	ID          string    `json:"id"`
	SlideNumber int       `json:"slideNumber"`
	Position    Position  `json:"position"`
	Data        TableData `json:"tableData"`
}

// TablePatch is a partial update to a TableElement.
type TablePatch struct {
	Position *Position  `json:"position,omitempty"`
	Data     *TableData `json:"tableData,omitempty"`
}

// Apply merges the patch into e. A non-nil Data replaces the whole grid.
func (p TablePatch) Apply(e *TableElement) {
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Data != nil {
		e.Data = p.Data.Clone()
	}
}

// InfographicItem is one datum of an infographic.
type InfographicItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// InfographicData is the structured payload of an infographic element. Kind
// selects the visual (bar, ring, timeline, ...); the engine treats the
// payload as opaque.
type InfographicData struct {
	Kind  string            `json:"kind"`
	Title string            `json:"title,omitempty"`
	Items []InfographicItem `json:"items,omitempty"`
}

// Clone returns a deep copy of the payload.
func (d InfographicData) Clone() InfographicData {
	out := d
	out.Items = append([]InfographicItem(nil), d.Items...)
	return out
}

// InfographicElement is a placed infographic.
type InfographicElement struct {
	ID          string          `json:"id"`
	SlideNumber int             `json:"slideNumber"`
	Position    Position        `json:"position"`
	Size        Size            `json:"size"`
	Data        InfographicData `json:"infographicData"`
}

// InfographicPatch is a partial update to an InfographicElement.
type InfographicPatch struct {
	Position *Position        `json:"position,omitempty"`
	Size     *Size            `json:"size,omitempty"`
	Data     *InfographicData `json:"infographicData,omitempty"`
}

// Apply merges the patch into e. A non-nil Data replaces the whole payload.
func (p InfographicPatch) Apply(e *InfographicElement) {
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.Data != nil {
		e.Data = p.Data.Clone()
	}
}

// AreaSelection is the transient drag rectangle used to mark where a
// to-be-placed image should go. Coordinates are kept exactly as dragged;
// consumers normalize via Width/Height.
type AreaSelection struct {
	Selecting bool    `json:"isSelecting"`
	StartX    float64 `json:"startX"`
	StartY    float64 `json:"startY"`
	EndX      float64 `json:"endX"`
	EndY      float64 `json:"endY"`
}

// Width returns the normalized rectangle width.
func (a AreaSelection) Width() float64 {
	if a.EndX >= a.StartX {
		return a.EndX - a.StartX
	}
	return a.StartX - a.EndX
}

// Height returns the normalized rectangle height.
func (a AreaSelection) Height() float64 {
	if a.EndY >= a.StartY {
		return a.EndY - a.StartY
	}
	return a.StartY - a.EndY
}

// Origin returns the top-left corner of the normalized rectangle.
func (a AreaSelection) Origin() Position {
	p := Position{X: a.StartX, Y: a.StartY}
	if a.EndX < a.StartX {
		p.X = a.EndX
	}
	if a.EndY < a.StartY {
		p.Y = a.EndY
	}
	return p
}
