/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitOrOpenIndexCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()
	if _, err := os.Stat(IndexPath(root)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("version row: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestUpdateIndexAndSearch(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := UpdateIndex(ctx, root, sampleDeck()); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}

	res, err := Search(ctx, root, SearchQuery{Text: "emea"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res) != 1 || res[0].Kind != "table" || res[0].Slide != 2 {
		t.Fatalf("unexpected results: %+v", res)
	}
	if res[0].ElementID != "tbl-1" {
		t.Fatalf("element id = %q", res[0].ElementID)
	}
}

func TestSearchFilters(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	if err := UpdateIndex(ctx, root, sampleDeck()); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}

	// kind filter without FTS text
	res, err := Search(ctx, root, SearchQuery{Kinds: []string{"slide_title"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res) != 1 || res[0].Path != "slide:1/title" {
		t.Fatalf("kind filter results: %+v", res)
	}

	// slide range excludes slide 2
	res, err = Search(ctx, root, SearchQuery{Text: "revenue", SlideFrom: 1, SlideTo: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range res {
		if r.Slide == 2 {
			t.Fatalf("slide filter leaked: %+v", r)
		}
	}
}

func TestUpdateIndexReplacesContent(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	deck := sampleDeck()
	if err := UpdateIndex(ctx, root, deck); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	deck.Slides[0].Texts[0].Content = "Annual Review"
	if err := UpdateIndex(ctx, root, deck); err != nil {
		t.Fatalf("second UpdateIndex: %v", err)
	}
	res, err := Search(ctx, root, SearchQuery{Text: "Quarterly"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range res {
		if r.Kind == "text" {
			t.Fatalf("stale text row after reindex: %+v", r)
		}
	}
	res, err = Search(ctx, root, SearchQuery{Text: "Annual"})
	if err != nil || len(res) == 0 {
		t.Fatalf("new content not indexed: %v %+v", err, res)
	}
}

func TestDetectAndRebuildIndexOnCorruption(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()
	if err := UpdateIndex(ctx, root, sampleDeck()); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	if err := os.WriteFile(IndexPath(root), []byte("garbage, not sqlite"), 0o644); err != nil {
		t.Fatalf("corrupt index: %v", err)
	}
	rebuilt, err := DetectAndRebuildIndex(ctx, root, sampleDeck())
	if err != nil {
		t.Fatalf("DetectAndRebuildIndex: %v", err)
	}
	if !rebuilt {
		t.Fatalf("corruption not detected")
	}
	if res, err := Search(ctx, root, SearchQuery{Text: "emea"}); err != nil || len(res) != 1 {
		t.Fatalf("search after rebuild: %v %+v", err, res)
	}
	// a backup of the broken file is kept under .gsw/backups
	ents, _ := os.ReadDir(filepath.Join(root, IndexDirName, "backups"))
	if len(ents) == 0 {
		t.Fatalf("no index backup written")
	}
}
