/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

// Outline represents a parsed deck outline with one section per slide.
// Conventions are Markdown-like: headings open slides, dashes are bullets,
// IMAGE/TABLE markers reserve element slots.

type Outline struct {
	Sections []Section
}

type Section struct {
	Title string
	Items []Item
}

// ItemType indicates the kind of an outline item.
// Bullet: "- text" or "* text", becomes a text element
// Note:   lines starting with ";" are speaker notes
// Image:  "IMAGE: alt text" reserves an image placeholder
// Table:  "TABLE:" followed by indented pipe-separated rows

type ItemType int

const (
	ItemUnknown ItemType = iota
	ItemBullet
	ItemNote
	ItemImage
	ItemTable
)

// Item captures a single logical outline entry (possibly with continuation
// lines). For tables, Rows holds the parsed cell grid and Text the raw
// marker remainder. Styles carries @style-name hints found in the text.
type Item struct {
	Type   ItemType
	Text   string
	Rows   [][]string
	Styles []string
	LineNo int // 1-based starting line number in the source
}

// Error represents a parse error with position context.
type Error struct {
	Line    int
	Column  int
	Message string
}
