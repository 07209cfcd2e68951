/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"goslidewriter/internal/backend"
	"goslidewriter/internal/config"
	"goslidewriter/internal/crash"
	"goslidewriter/internal/domain"
	"goslidewriter/internal/export"
	applog "goslidewriter/internal/log"
	"goslidewriter/internal/outline"
	"goslidewriter/internal/storage"
	"goslidewriter/internal/stylepack"
	"goslidewriter/internal/telemetry"
	"goslidewriter/internal/ui"
	"goslidewriter/internal/version"
)

func usage() {
	fmt.Println("Go Slide Writer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  goslidewriter version|-v|--version           Show version")
	fmt.Println("  goslidewriter init <dir> <name>              Create a new deck at <dir> with name <name>")
	fmt.Println("  goslidewriter open <dir>                     Open deck at <dir> and print summary")
	fmt.Println("  goslidewriter save <dir>                     Save deck at <dir> (creates backup)")
	fmt.Println("  goslidewriter outline <dir> <name> <file>    Build a new deck from a plain-text outline")
	fmt.Println("  goslidewriter export-pdf <dir> [out.pdf]     Export the deck as a multi-page PDF")
	fmt.Println("  goslidewriter export-png <dir> [outDir]      Export each slide as a PNG file")
	fmt.Println("  goslidewriter search <dir> <query>           Full-text search over the deck index")
	fmt.Println("  goslidewriter theme <dir>                    Re-apply the deck theme to all text styles")
	fmt.Println("  goslidewriter stylepack export <dir> <zip>   Export the deck's styles as a pack")
	fmt.Println("  goslidewriter stylepack install <dir> <zip>  Install a style pack into the deck")
	fmt.Println("  goslidewriter publish <dir>                  Upload the deck snapshot to the sharing backend")
	fmt.Println("  goslidewriter serve                          Run the sharing backend (Postgres)")
	fmt.Println("  goslidewriter ui [<dir>]                     Launch desktop UI (build with -tags fyne for full UI)")
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	telemetry.NewDefault(telemetry.FromEnv())
	var dh *storage.DeckHandle
	defer func() { crash.Recover(dh) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Slide Writer")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			name := args[3]
			l.Info("init deck", slog.String("root", abs), slog.String("name", name))
			p := domain.Presentation{Name: name, Slides: []domain.Slide{{Number: 1, Title: name}}}
			h, err := storage.InitDeck(abs, p)
			if err != nil {
				fail(l, "init failed", err)
			}
			dh = h
			fmt.Println("Created deck at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open deck", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open failed", err)
			}
			dh = h
			fmt.Printf("Opened deck: %s\n", h.Deck.Name)
			fmt.Printf("Slides: %d\n", len(h.Deck.Slides))
			fmt.Println("Root:", h.Root)
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("save deck", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open before save failed", err)
			}
			dh = h
			if err := storage.Save(h); err != nil {
				fail(l, "save failed", err)
			}
			if err := storage.UpdateIndex(context.Background(), h.Root, h.Deck); err != nil {
				l.Warn("index update failed", slog.Any("err", err))
			}
			fmt.Println("Saved deck and created a backup of the previous manifest (if any).")
			return
		case "outline":
			if len(args) < 5 {
				fmt.Println("outline requires <dir>, <name> and <file>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			name := args[3]
			raw, err := os.ReadFile(args[4])
			if err != nil {
				fail(l, "read outline failed", err)
			}
			o, errs := outline.Parse(string(raw))
			for _, e := range errs {
				fmt.Printf("outline:%d: %s\n", e.Line, e.Message)
			}
			deck := outline.BuildDeck(name, o)
			h, err := storage.InitDeck(abs, deck)
			if err != nil {
				fail(l, "init from outline failed", err)
			}
			dh = h
			fmt.Printf("Created deck %q with %d slides at %s\n", name, len(deck.Slides), abs)
			return
		case "export-pdf":
			if len(args) < 3 {
				fmt.Println("export-pdf requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			out := "deck.pdf"
			if len(args) >= 4 {
				out = args[3]
			}
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open failed", err)
			}
			dh = h
			if err := export.ExportDeckPDF(h, out, export.PDFOptions{}); err != nil {
				fail(l, "pdf export failed", err)
			}
			fmt.Println("Exported PDF:", out)
			return
		case "export-png":
			if len(args) < 3 {
				fmt.Println("export-png requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			out := "png"
			if len(args) >= 4 {
				out = args[3]
			}
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open failed", err)
			}
			dh = h
			if err := export.ExportDeckPNGSlides(h, out, export.PNGOptions{DPI: 96}); err != nil {
				fail(l, "png export failed", err)
			}
			fmt.Println("Exported PNG slides to", out)
			return
		case "search":
			if len(args) < 4 {
				fmt.Println("search requires <dir> and <query>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			q := strings.Join(args[3:], " ")
			res, err := storage.Search(context.Background(), abs, storage.SearchQuery{Text: q, Limit: 50})
			if err != nil {
				fail(l, "search failed", err)
			}
			for _, r := range res {
				if r.Slide > 0 {
					fmt.Printf("slide %d  %-12s %s\n", r.Slide, r.Kind, r.Snippet)
				} else {
					fmt.Printf("deck     %-12s %s\n", r.Kind, r.Snippet)
				}
			}
			fmt.Printf("%d match(es)\n", len(res))
			return
		case "theme":
			if len(args) < 3 {
				fmt.Println("theme requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open failed", err)
			}
			dh = h
			t, err := stylepack.LoadTheme(abs)
			if err != nil {
				fail(l, "load theme failed", err)
			}
			n := stylepack.ApplyTheme(&h.Deck, t)
			if err := storage.Save(h); err != nil {
				fail(l, "save after theme failed", err)
			}
			fmt.Printf("Restyled %d text element(s).\n", n)
			return
		case "stylepack":
			if len(args) < 5 {
				fmt.Println("stylepack requires export|install, <dir> and <zip>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[3])
			zipPath := args[4]
			switch args[2] {
			case "export":
				if err := stylepack.ExportDeckStyles(abs, zipPath); err != nil {
					fail(l, "stylepack export failed", err)
				}
				fmt.Println("Exported style pack:", zipPath)
			case "install":
				n, err := stylepack.InstallPack(abs, zipPath)
				if err != nil {
					fail(l, "stylepack install failed", err)
				}
				fmt.Printf("Installed %d file(s) from %s\n", n, zipPath)
			default:
				usage()
				os.Exit(2)
			}
			return
		case "publish":
			if len(args) < 3 {
				fmt.Println("publish requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				fail(l, "open failed", err)
			}
			dh = h
			cfg, _, err := config.Load()
			if err != nil {
				fail(l, "config load failed", err)
			}
			tok, err := config.Token()
			if err != nil {
				l.Warn("no backend token in keyring", slog.Any("err", err))
			}
			snap, err := json.Marshal(h.Deck)
			if err != nil {
				fail(l, "marshal deck failed", err)
			}
			cl := backend.NewClient(cfg.Backend.BaseURL, tok)
			d, err := cl.PublishDeck(context.Background(), h.Deck.Name, snap)
			if err != nil {
				fail(l, "publish failed", err)
			}
			fmt.Printf("Published %q as deck %d (version %d)\n", d.Name, d.ID, d.Version)
			return
		case "serve":
			l.Info("starting sharing backend")
			if err := backend.Start(); err != nil {
				fail(l, "backend failed", err)
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
