/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package export

import (
	"path/filepath"
	"sort"
	"strings"

	"goslidewriter/internal/domain"
	"goslidewriter/internal/textlayout"
)

// Preset describes a slide page geometry in points.
type Preset struct {
	Name  string
	PageW float64
	PageH float64
}

// Built-in page presets. PresetWide matches the editor's native 16:9
// geometry; exports default to it.
var (
	PresetWide     = Preset{Name: "wide", PageW: 960, PageH: 540}
	PresetStandard = Preset{Name: "standard", PageW: 960, PageH: 720}
	PresetA4       = Preset{Name: "a4", PageW: 842, PageH: 595} // landscape
)

var presets = map[string]Preset{
	PresetWide.Name:     PresetWide,
	PresetStandard.Name: PresetStandard,
	PresetA4.Name:       PresetA4,
}

// PresetByName resolves a named preset; unknown names fall back to wide.
func PresetByName(name string) Preset {
	if p, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return PresetWide
}

// PresetNames lists the available preset names, sorted.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// selectSlides returns the slides to export: all of them when numbers is
// empty, otherwise those whose Number appears in numbers, in deck order.
func selectSlides(slides []domain.Slide, numbers []int) []domain.Slide {
	if len(numbers) == 0 {
		return slides
	}
	want := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	var out []domain.Slide
	for _, sl := range slides {
		if want[sl.Number] {
			out = append(out, sl)
		}
	}
	return out
}

// textsInLayerOrder returns the slide's text elements bottom to top,
// appending any element missing from TextOrder at the end.
func textsInLayerOrder(sl domain.Slide) []domain.TextElement {
	byID := make(map[string]domain.TextElement, len(sl.Texts))
	for _, t := range sl.Texts {
		byID[t.ID] = t
	}
	out := make([]domain.TextElement, 0, len(sl.Texts))
	seen := make(map[string]bool, len(sl.Texts))
	for _, id := range sl.TextOrder {
		if t, ok := byID[id]; ok {
			out = append(out, t)
			seen[id] = true
		}
	}
	for _, t := range sl.Texts {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// imagesByZ returns images sorted ascending by ZIndex, then ID.
func imagesByZ(images []domain.ImageElement) []domain.ImageElement {
	out := append([]domain.ImageElement(nil), images...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// parseHexColor parses #rrggbb into components; malformed input yields the
// default near-black text color.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return 0x18, 0x18, 0x18
	}
	hex := func(c byte) (int, bool) {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0'), true
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10, true
		}
		return 0, false
	}
	vals := make([]int, 6)
	for i := 0; i < 6; i++ {
		v, ok := hex(s[i+1])
		if !ok {
			return 0x18, 0x18, 0x18
		}
		vals[i] = v
	}
	return vals[0]<<4 | vals[1], vals[2]<<4 | vals[3], vals[4]<<4 | vals[5]
}

// splitLines splits content on newlines, always yielding at least one line.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// wrappedLines wraps an element's content to the width remaining between its
// anchor and the right page edge. Elements close to the edge fall back to
// hard breaks only.
func wrappedLines(el domain.TextElement, preset Preset) []string {
	maxW := preset.PageW - el.Style.X - 24
	if maxW < 72 {
		return splitLines(el.Content)
	}
	return textlayout.ElementLines(el, float32(maxW), nil)
}

// resolveAsset resolves an element src against the deck's assets folder.
// Absolute paths are used as-is; empty src stays empty.
func resolveAsset(root, src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(root, "assets", filepath.FromSlash(src))
}
