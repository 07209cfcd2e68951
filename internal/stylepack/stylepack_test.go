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
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"goslidewriter/internal/domain"
)

func writeStyleFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, "styles", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestExportDeckStylesAndInstall(t *testing.T) {
	src := t.TempDir()
	writeStyleFile(t, src, "theme.yaml", "name: corporate\nstyles:\n  headline:\n    color: \"#002244\"\n")
	writeStyleFile(t, src, "fonts/readme.txt", "drop TTFs here\n")

	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := ExportDeckStyles(src, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	_ = r.Close()
	if !names["stylepack.manifest.txt"] {
		t.Fatalf("manifest missing from archive: %v", names)
	}
	if !names["styles/theme.yaml"] || !names["styles/fonts/readme.txt"] {
		t.Fatalf("style files missing from archive: %v", names)
	}

	dst := t.TempDir()
	n, err := InstallPack(dst, zipPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 installed files, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dst, "styles", "theme.yaml")); err != nil {
		t.Fatalf("installed theme missing: %v", err)
	}

	// Second install skips everything already present.
	n, err = InstallPack(dst, zipPath)
	if err != nil {
		t.Fatalf("reinstall: %v", err)
	}
	if n != 0 {
		t.Fatalf("reinstall should skip existing files, got %d", n)
	}
}

func TestExportEmptyStylesDir(t *testing.T) {
	root := t.TempDir()
	zipPath := filepath.Join(root, "exports", "empty.zip")
	if err := ExportDeckStyles(root, zipPath); err != nil {
		t.Fatalf("export: %v", err)
	}
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer func() { _ = r.Close() }()
	if len(r.File) != 1 || r.File[0].Name != "stylepack.manifest.txt" {
		t.Fatalf("want manifest-only archive, got %d entries", len(r.File))
	}
}

func TestThemeRoundTripAndResolve(t *testing.T) {
	root := t.TempDir()

	th, err := LoadTheme(root)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if _, ok := th.Resolve("headline"); !ok {
		t.Fatalf("builtin headline should resolve")
	}
	if _, ok := th.Resolve("nonsense"); ok {
		t.Fatalf("unknown style should not resolve")
	}

	th.Name = "corporate"
	th.Styles["headline"] = StyleDef{FontSize: 32, Color: "#002244"}
	th.Styles["quote"] = StyleDef{FontStyle: "italic"}
	if err := SaveTheme(root, th); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadTheme(root)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "corporate" {
		t.Fatalf("name lost: %q", got.Name)
	}
	d, ok := got.Resolve("headline")
	if !ok || d.FontSize != 32 || d.Color != "#002244" {
		t.Fatalf("deck override should win over builtin: %+v", d)
	}
	d, ok = got.Resolve("body")
	if !ok || d.FontSize != 18 {
		t.Fatalf("builtin fallback broken: %+v", d)
	}

	names := got.Names()
	if names[0] != "headline" || names[len(names)-1] != "quote" {
		t.Fatalf("unexpected names order: %v", names)
	}
}

func TestApplyTheme(t *testing.T) {
	deck := domain.Presentation{
		Name: "Themed",
		Slides: []domain.Slide{{
			Number: 1,
			Texts: []domain.TextElement{
				{ID: "t1", SlideNumber: 1, Content: "Title", Style: domain.TextStyle{
					FontSize: 14, Color: "#181818", NarrativeStyle: "headline", X: 60, Y: 40,
				}},
				{ID: "t2", SlideNumber: 1, Content: "Plain", Style: domain.TextStyle{
					FontSize: 14, X: 60, Y: 120,
				}},
			},
			TextOrder: []string{"t1", "t2"},
		}},
	}
	th := &Theme{Styles: map[string]StyleDef{
		"headline": {FontSize: 30, Color: "#002244"},
	}}
	n := ApplyTheme(&deck, th)
	if n != 1 {
		t.Fatalf("want 1 restyled element, got %d", n)
	}
	st := deck.Slides[0].Texts[0].Style
	if st.FontSize != 30 || st.Color != "#002244" {
		t.Fatalf("style not applied: %+v", st)
	}
	if st.X != 60 || st.Y != 40 {
		t.Fatalf("placement must be untouched: %+v", st)
	}
	if deck.Slides[0].Texts[1].Style.FontSize != 14 {
		t.Fatalf("unstyled element must be untouched")
	}
}
