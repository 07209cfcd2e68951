/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func testHandle(t *testing.T) *DeckHandle {
	t.Helper()
	dh, err := InitDeck(filepath.Join(t.TempDir(), "deck"), sampleDeck())
	if err != nil {
		t.Fatalf("InitDeck: %v", err)
	}
	return dh
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	dh := testHandle(t)
	ctx := context.Background()
	t0 := time.Now().Add(-time.Minute)
	if err := SaveSnapshot(ctx, dh, 1, []byte("old"), t0); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := SaveSnapshot(ctx, dh, 1, []byte("new"), t0.Add(30*time.Second)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	blob, ts, err := GetLatestSnapshot(ctx, dh, 1)
	if err != nil {
		t.Fatalf("GetLatestSnapshot: %v", err)
	}
	if string(blob) != "new" {
		t.Fatalf("latest blob = %q", blob)
	}
	if ts.IsZero() {
		t.Fatalf("timestamp not restored")
	}
}

func TestLatestSnapshotEmpty(t *testing.T) {
	dh := testHandle(t)
	blob, _, err := GetLatestSnapshot(context.Background(), dh, 7)
	if err != nil {
		t.Fatalf("GetLatestSnapshot: %v", err)
	}
	if blob != nil {
		t.Fatalf("expected nil blob for slide without snapshots")
	}
}

func TestListAndPruneSnapshots(t *testing.T) {
	dh := testHandle(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if err := SaveSnapshot(ctx, dh, 2, []byte(fmt.Sprintf("v%d", i)), base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("SaveSnapshot #%d: %v", i, err)
		}
	}
	list, err := ListSnapshots(ctx, dh, 2, 3)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 3 || string(list[0].Blob) != "v4" {
		t.Fatalf("list wrong: %d entries, newest %q", len(list), list[0].Blob)
	}

	removed, err := PruneOldSnapshots(ctx, dh, 2, 2)
	if err != nil {
		t.Fatalf("PruneOldSnapshots: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	list, _ = ListSnapshots(ctx, dh, 2, 10)
	if len(list) != 2 {
		t.Fatalf("%d snapshots survive prune, want 2", len(list))
	}
}

func TestThumbnailCache(t *testing.T) {
	dh := testHandle(t)
	ctx := context.Background()
	if err := SaveThumbnail(ctx, dh, 1, []byte("png-bytes-v1")); err != nil {
		t.Fatalf("SaveThumbnail: %v", err)
	}
	if err := SaveThumbnail(ctx, dh, 1, []byte("png-bytes-v2")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	blob, ts, err := GetThumbnail(ctx, dh, 1)
	if err != nil {
		t.Fatalf("GetThumbnail: %v", err)
	}
	if string(blob) != "png-bytes-v2" || ts.IsZero() {
		t.Fatalf("thumbnail = %q at %v", blob, ts)
	}

	if err := DropThumbnail(ctx, dh, 1); err != nil {
		t.Fatalf("DropThumbnail: %v", err)
	}
	blob, _, err = GetThumbnail(ctx, dh, 1)
	if err != nil || blob != nil {
		t.Fatalf("thumbnail survives drop: %q %v", blob, err)
	}
}
