/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"

	"goslidewriter/internal/domain"
)

// SpecFromStyle maps a slide text style to a font request. Weight maps
// normal/bold onto the 100..900 scale; unknown values default to 400.
func SpecFromStyle(st domain.TextStyle) FontSpec {
	size := st.FontSize
	if size <= 0 {
		size = domain.DefaultTextStyle().FontSize
	}
	weight := 400
	if st.FontWeight == "bold" {
		weight = 700
	}
	return FontSpec{
		Family: st.NarrativeStyle,
		SizePt: float32(size),
		Weight: weight,
		Italic: st.FontStyle == "italic",
	}
}

// LayoutElement wraps a text element's content into lines no wider than
// maxWidth. Explicit newlines in the content are hard breaks.
func LayoutElement(el domain.TextElement, maxWidth float32, p Provider) (TextBox, error) {
	spec := SpecFromStyle(el.Style)
	l := NewWordWrap(p)
	return l.Layout([]Span{{Text: el.Content, Font: spec}}, maxWidth)
}

// ElementLines returns the wrapped plain-text lines of an element, which the
// raster exporter and canvas use directly.
func ElementLines(el domain.TextElement, maxWidth float32, p Provider) []string {
	box, err := LayoutElement(el, maxWidth, p)
	if err != nil {
		return strings.Split(el.Content, "\n")
	}
	out := make([]string, 0, len(box.Lines))
	for _, ln := range box.Lines {
		var b strings.Builder
		for _, sp := range ln.Spans {
			b.WriteString(sp.Text)
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}
