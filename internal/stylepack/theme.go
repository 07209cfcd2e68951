/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"goslidewriter/internal/domain"
)

// ThemeFileName is the theme file inside a deck's styles directory.
const ThemeFileName = "theme.yaml"

// StyleDef is one named narrative style in a theme. Zero-valued fields leave
// the element's existing value untouched when the style is applied.
type StyleDef struct {
	FontSize       float64 `yaml:"fontSize,omitempty"`
	TextAlign      string  `yaml:"textAlign,omitempty"`
	Color          string  `yaml:"color,omitempty"`
	FontWeight     string  `yaml:"fontWeight,omitempty"`
	FontStyle      string  `yaml:"fontStyle,omitempty"`
	TextDecoration string  `yaml:"textDecoration,omitempty"`
}

// Theme maps narrative style names to style definitions. Deck themes layer
// over the builtin styles; resolution precedence is deck > builtin.
type Theme struct {
	Name   string              `yaml:"name,omitempty"`
	Styles map[string]StyleDef `yaml:"styles"`
}

var builtinTheme = map[string]StyleDef{
	"headline": {FontSize: 28, FontWeight: "bold", Color: "#181818"},
	"body":     {FontSize: 18, Color: "#333333"},
	"caption":  {FontSize: 12, FontStyle: "italic", Color: "#666666"},
	"emphasis": {FontSize: 18, FontWeight: "bold", Color: "#8a1f1f"},
}

// BuiltinStyleNames lists the builtin narrative styles in stable order.
func BuiltinStyleNames() []string {
	return []string{"headline", "body", "caption", "emphasis"}
}

// Resolve returns the effective StyleDef by name. The second return value is
// false if the name is unknown at every level.
func (t *Theme) Resolve(name string) (StyleDef, bool) {
	if t != nil {
		if d, ok := t.Styles[name]; ok {
			return d, true
		}
	}
	d, ok := builtinTheme[name]
	return d, ok
}

// Names returns all known style names: builtin order first, then theme-only
// names sorted lexicographically.
func (t *Theme) Names() []string {
	out := BuiltinStyleNames()
	seen := map[string]bool{}
	for _, n := range out {
		seen[n] = true
	}
	if t != nil {
		var extra []string
		for n := range t.Styles {
			if !seen[n] {
				extra = append(extra, n)
			}
		}
		sort.Strings(extra)
		out = append(out, extra...)
	}
	return out
}

// LoadTheme reads <deckRoot>/styles/theme.yaml. A missing file yields an
// empty theme, not an error, so decks without a theme resolve builtins only.
func LoadTheme(deckRoot string) (*Theme, error) {
	path := filepath.Join(deckRoot, "styles", ThemeFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Theme{Styles: map[string]StyleDef{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if t.Styles == nil {
		t.Styles = map[string]StyleDef{}
	}
	return &t, nil
}

// SaveTheme writes the theme to <deckRoot>/styles/theme.yaml.
func SaveTheme(deckRoot string, t *Theme) error {
	dir := filepath.Join(deckRoot, "styles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure styles dir: %w", err)
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ThemeFileName), data, 0o644); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// ApplyTheme restyles every text element whose NarrativeStyle resolves in
// the theme. Position, rotation and content are never touched. Returns the
// number of elements restyled.
func ApplyTheme(deck *domain.Presentation, t *Theme) int {
	if deck == nil {
		return 0
	}
	applied := 0
	for si := range deck.Slides {
		sl := &deck.Slides[si]
		for ti := range sl.Texts {
			el := &sl.Texts[ti]
			d, ok := t.Resolve(el.Style.NarrativeStyle)
			if !ok {
				continue
			}
			applyDef(&el.Style, d)
			applied++
		}
	}
	return applied
}

func applyDef(st *domain.TextStyle, d StyleDef) {
	if d.FontSize > 0 {
		st.FontSize = d.FontSize
	}
	if d.TextAlign != "" {
		st.TextAlign = d.TextAlign
	}
	if d.Color != "" {
		st.Color = d.Color
	}
	if d.FontWeight != "" {
		st.FontWeight = d.FontWeight
	}
	if d.FontStyle != "" {
		st.FontStyle = d.FontStyle
	}
	if d.TextDecoration != "" {
		st.TextDecoration = d.TextDecoration
	}
}
