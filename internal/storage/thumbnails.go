/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Slide thumbnail cache. Thumbnails are rendered by the export layer and
// cached in the embedded index so the slide sorter does not re-render on
// every open. The cache is disposable with the rest of .gsw.

// language=SQL
// dialect=SQLite
const upsertThumbnailSQL = `INSERT INTO thumbnails(slide, png_blob, updated_at) VALUES(?,?,?)
	ON CONFLICT(slide) DO UPDATE SET png_blob=excluded.png_blob, updated_at=excluded.updated_at`

// language=SQL
// dialect=SQLite
const selectThumbnailSQL = `SELECT png_blob, updated_at FROM thumbnails WHERE slide = ?`

// SaveThumbnail stores the PNG-encoded preview of a slide.
func SaveThumbnail(ctx context.Context, dh *DeckHandle, slideNumber int, png []byte) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, upsertThumbnailSQL, slideNumber, png, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// GetThumbnail returns the cached PNG preview of a slide, or nil when none
// is cached.
func GetThumbnail(ctx context.Context, dh *DeckHandle, slideNumber int) ([]byte, time.Time, error) {
	if dh == nil {
		return nil, time.Time{}, errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var blob []byte
	var tsStr string
	err = db.QueryRowContext(ctx, selectThumbnailSQL, slideNumber).Scan(&blob, &tsStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	ts, _ := time.Parse(time.RFC3339Nano, tsStr)
	return blob, ts, nil
}

// DropThumbnail removes a cached preview, forcing a re-render.
func DropThumbnail(ctx context.Context, dh *DeckHandle, slideNumber int) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, `DELETE FROM thumbnails WHERE slide = ?`, slideNumber)
	return err
}
