/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package outline

import (
	"bufio"
	"regexp"
	"sort"
	"strings"
)

// Parse parses an outline text into a structured Outline.
// Supported syntax (minimal):
// - Slide headings:
//   - Lines starting with "#" or "Slide:" open a new slide. The rest of the
//     line is the title.
//
// - Bullets: "- text" or "* text" become text elements.
//   - Continuation lines indented by 2+ spaces are appended to the previous
//     bullet or note.
//
// - Notes: lines starting with ';' become speaker notes.
// - Images: "IMAGE: alt text" reserves an image placeholder.
// - Tables: "TABLE:" opens a table; following indented lines with '|'
//   separators are its rows.
// Style hints like @quote or @headline may appear in bullet text.
func Parse(input string) (Outline, []Error) {
	o := Outline{Sections: []Section{}}
	var errs []Error

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	current := Section{}
	var lastItem *Item

	reHeading := regexp.MustCompile(`^(#+)\s*(.*)$`)
	reHeadingAlt := regexp.MustCompile(`^(?i)\s*Slide:\s*(.+)$`)
	reBullet := regexp.MustCompile(`^[-*]\s+(.*)$`)
	reImage := regexp.MustCompile(`^(?i)IMAGE:\s*(.*)$`)
	reTable := regexp.MustCompile(`^(?i)TABLE:\s*(.*)$`)
	reStyle := regexp.MustCompile(`(?i)@([a-z0-9_\-]+)`)

	extractStyles := func(s string) []string {
		found := reStyle.FindAllStringSubmatch(s, -1)
		if len(found) == 0 {
			return nil
		}
		m := map[string]struct{}{}
		for _, f := range found {
			if len(f) > 1 {
				t := strings.ToLower(strings.TrimSpace(f[1]))
				if t != "" {
					m[t] = struct{}{}
				}
			}
		}
		if len(m) == 0 {
			return nil
		}
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}

	flushSection := func() {
		if strings.TrimSpace(current.Title) != "" || len(current.Items) > 0 {
			o.Sections = append(o.Sections, current)
		}
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")

		// Indented continuation: table rows, or text appended to the last
		// bullet/note.
		if strings.HasPrefix(line, "  ") && lastItem != nil {
			cont := strings.TrimSpace(line)
			if cont == "" {
				continue
			}
			switch lastItem.Type {
			case ItemTable:
				if strings.Contains(cont, "|") {
					cells := strings.Split(cont, "|")
					row := make([]string, 0, len(cells))
					for _, c := range cells {
						row = append(row, strings.TrimSpace(c))
					}
					lastItem.Rows = append(lastItem.Rows, row)
					continue
				}
				errs = append(errs, Error{Line: lineNo, Column: 1, Message: "table row without '|' separator"})
				continue
			case ItemBullet, ItemNote:
				lastItem.Text += "\n" + cont
				if styles := extractStyles(cont); len(styles) > 0 {
					lastItem.Styles = mergeStrings(lastItem.Styles, styles)
				}
				continue
			}
		}

		trim := strings.TrimSpace(line)
		if trim == "" {
			lastItem = nil
			continue
		}

		if m := reHeading.FindStringSubmatch(trim); m != nil {
			flushSection()
			current = Section{Title: strings.TrimSpace(m[2])}
			lastItem = nil
			continue
		}
		if m := reHeadingAlt.FindStringSubmatch(trim); m != nil {
			flushSection()
			current = Section{Title: strings.TrimSpace(m[1])}
			lastItem = nil
			continue
		}

		if strings.HasPrefix(trim, ";") {
			current.Items = append(current.Items, Item{Type: ItemNote, Text: strings.TrimSpace(strings.TrimPrefix(trim, ";")), LineNo: lineNo})
			lastItem = &current.Items[len(current.Items)-1]
			continue
		}

		if m := reImage.FindStringSubmatch(trim); m != nil {
			current.Items = append(current.Items, Item{Type: ItemImage, Text: strings.TrimSpace(m[1]), LineNo: lineNo})
			lastItem = nil
			continue
		}

		if m := reTable.FindStringSubmatch(trim); m != nil {
			current.Items = append(current.Items, Item{Type: ItemTable, Text: strings.TrimSpace(m[1]), LineNo: lineNo})
			lastItem = &current.Items[len(current.Items)-1]
			continue
		}

		if m := reBullet.FindStringSubmatch(trim); m != nil {
			text := strings.TrimSpace(m[1])
			item := Item{Type: ItemBullet, Text: text, Styles: extractStyles(text), LineNo: lineNo}
			current.Items = append(current.Items, item)
			lastItem = &current.Items[len(current.Items)-1]
			continue
		}

		// Loose text before any heading starts an implicit slide.
		if len(o.Sections) == 0 && strings.TrimSpace(current.Title) == "" && len(current.Items) == 0 {
			current.Title = trim
			lastItem = nil
			continue
		}
		// Keep unknown lines to avoid data loss.
		current.Items = append(current.Items, Item{Type: ItemUnknown, Text: trim, LineNo: lineNo})
		lastItem = &current.Items[len(current.Items)-1]
	}
	flushSection()

	if err := scanner.Err(); err != nil {
		errs = append(errs, Error{Line: lineNo, Column: 1, Message: err.Error()})
	}
	return o, errs
}

func mergeStrings(a, b []string) []string {
	m := map[string]struct{}{}
	for _, s := range a {
		m[s] = struct{}{}
	}
	for _, s := range b {
		m[s] = struct{}{}
	}
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
