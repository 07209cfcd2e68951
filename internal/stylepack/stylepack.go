/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "goslidewriter/internal/log"
)

// ExportDeckStyles zips the deck's styles directory (<deck>/styles) into a
// single .zip file. The archive preserves the directory structure and adds a
// small manifest file at the root named stylepack.manifest.txt for quick
// human inspection. If the styles directory does not exist or is empty, the
// archive is still created with only the manifest.
func ExportDeckStyles(deckRoot string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export").With(slog.String("deck", deckRoot))
	if strings.TrimSpace(deckRoot) == "" {
		return errors.New("deckRoot is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	stylesDir := filepath.Join(deckRoot, "styles")
	if _, err := os.Stat(stylesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(stylesDir, 0o755); err != nil {
			return fmt.Errorf("ensure styles dir: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("Go Slide Writer Style Pack\nCreated: %s\nDeck: %s\n\nContents mirror the deck's /styles directory.\n",
		time.Now().Format(time.RFC3339), deckRoot)
	w, err := zw.Create("stylepack.manifest.txt")
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	err = filepath.Walk(stylesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(deckRoot, path)
		if err != nil {
			return err
		}
		// Forward slashes inside the zip
		fw, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// InstallPack extracts the given .zip pack into the deck's styles directory.
// Existing files are not overwritten; if a file already exists, it is skipped.
// Returns the count of files installed (skipped files are not counted).
func InstallPack(deckRoot string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install").With(slog.String("deck", deckRoot))
	if strings.TrimSpace(deckRoot) == "" {
		return 0, errors.New("deckRoot is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	stylesDir := filepath.Join(deckRoot, "styles")
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure styles dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := f.Name
		if name == "stylepack.manifest.txt" {
			continue
		}
		// Entries not already under styles/ get reparented there, so packs
		// built from arbitrary folders still land in the right place.
		targetRel := name
		if !strings.HasPrefix(targetRel, "styles/") {
			targetRel = filepath.ToSlash(filepath.Join("styles", targetRel))
		}
		targetPath := filepath.Join(deckRoot, filepath.FromSlash(targetRel))
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return installed, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("style pack installed", slog.Int("files", installed))
	return installed, nil
}
