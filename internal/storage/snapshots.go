/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const insertSnapshotSQL = `INSERT INTO snapshots(slide, ts, state_blob) VALUES (?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSnapshotSQL = `SELECT ts, state_blob FROM snapshots WHERE slide = ? ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listSnapshotsSQL = `SELECT ts, state_blob FROM snapshots WHERE slide = ? ORDER BY ts DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneOldSnapshotsSQL = `DELETE FROM snapshots WHERE slide = ? AND id NOT IN (
	SELECT id FROM snapshots WHERE slide = ? ORDER BY ts DESC LIMIT ?
)`

// Snapshot is one autosaved slide state.
type Snapshot struct {
	TS   time.Time
	Blob []byte
}

// SaveSnapshot persists a slide state blob with a timestamp into the deck's
// embedded index.
func SaveSnapshot(ctx context.Context, dh *DeckHandle, slideNumber int, state []byte, ts time.Time) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertSnapshotSQL, slideNumber, ts.UTC().Format(time.RFC3339Nano), state)
	return err
}

// GetLatestSnapshot returns the latest snapshot blob for a slide, or nil when
// none exists.
func GetLatestSnapshot(ctx context.Context, dh *DeckHandle, slideNumber int) ([]byte, time.Time, error) {
	if dh == nil {
		return nil, time.Time{}, errors.New("nil DeckHandle")
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr string
	var blob []byte
	err = db.QueryRowContext(ctx, selectLatestSnapshotSQL, slideNumber).Scan(&tsStr, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return blob, time.Time{}, nil
	}
	return blob, ts, nil
}

// ListSnapshots returns up to limit most recent snapshots for a slide.
func ListSnapshots(ctx context.Context, dh *DeckHandle, slideNumber, limit int) ([]Snapshot, error) {
	if dh == nil {
		return nil, errors.New("nil DeckHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listSnapshotsSQL, slideNumber, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Snapshot
	for rows.Next() {
		var tsStr string
		var blob []byte
		if err := rows.Scan(&tsStr, &blob); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, Snapshot{TS: ts, Blob: blob})
	}
	return out, rows.Err()
}

// PruneOldSnapshots keeps at most keepLast snapshots for the slide.
func PruneOldSnapshots(ctx context.Context, dh *DeckHandle, slideNumber, keepLast int) (int64, error) {
	if dh == nil {
		return 0, errors.New("nil DeckHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(dh.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneOldSnapshotsSQL, slideNumber, slideNumber, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
