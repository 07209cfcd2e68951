/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goslidewriter/internal/domain"
	applog "goslidewriter/internal/log"
	"goslidewriter/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-deck ephemeral/index data under the deck root.
	IndexDirName  = ".gsw"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump on breaking schema changes and add a migration step.
	schemaVersion = 1
)

// IndexPath returns the full path to the deck's embedded index database file.
func IndexPath(deckRoot string) string {
	return filepath.Join(deckRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures the per-deck SQLite index exists at
// .gsw/index.sqlite, opens the database, enables WAL mode, and ensures the
// meta/version tables and index schema exist.
func InitOrOpenIndex(deckRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", deckRoot),
	)
	if strings.TrimSpace(deckRoot) == "" {
		return nil, errors.New("deck root is required")
	}
	if err := os.MkdirAll(filepath.Join(deckRoot, IndexDirName), 0o755); err != nil {
		l.Error("create .gsw dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .gsw dir: %w", err)
	}

	path := IndexPath(deckRoot)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure index schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Debug("index ready", slog.String("path", path))
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// ensureIndexSchema creates index tables and FTS structures if they do not
// exist. documents holds the searchable text of the deck: slide titles, text
// element content, table cells, infographic labels, and speaker notes.
func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			doc_id     INTEGER PRIMARY KEY,
			kind       TEXT    NOT NULL,
			path       TEXT    NOT NULL,
			slide      INTEGER,
			element_id TEXT,
			text       TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_slide ON documents(slide);`,

		// Contentless FTS5 index fed from documents via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_documents USING fts5(
			text,
			content='',
			tokenize = 'unicode61'
		);`,

		// Slide snapshots (autosave history of slide JSON blobs)
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY,
			slide      INTEGER NOT NULL,
			ts         TEXT    NOT NULL,
			state_blob BLOB    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_slide_ts ON snapshots(slide, ts);`,

		// Thumbnail cache (slide previews rendered by the export layer)
		`CREATE TABLE IF NOT EXISTS thumbnails (
			slide      INTEGER PRIMARY KEY,
			png_blob   BLOB    NOT NULL,
			updated_at TEXT    NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
			INSERT INTO fts_documents(rowid, text) VALUES (new.doc_id, new.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
			INSERT INTO fts_documents(fts_documents, rowid, text) VALUES ('delete', old.doc_id, old.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE OF text ON documents BEGIN
			INSERT INTO fts_documents(fts_documents, rowid, text) VALUES ('delete', old.doc_id, old.text);
			INSERT INTO fts_documents(rowid, text) VALUES (new.doc_id, new.text);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// UpdateIndex replaces the indexed document content from the deck manifest.
func UpdateIndex(ctx context.Context, deckRoot string, deck domain.Presentation) error {
	db, err := InitOrOpenIndex(deckRoot)
	if err != nil {
		return err
	}
	defer db.Close()
	return rebuildDocumentsFromDeck(ctx, db, deck)
}

// DetectAndRebuildIndex checks for corruption or missing schema and rebuilds
// the index if needed. It returns true when a rebuild was performed.
func DetectAndRebuildIndex(ctx context.Context, deckRoot string, deck domain.Presentation) (bool, error) {
	path := IndexPath(deckRoot)
	db, err := InitOrOpenIndex(deckRoot)
	if err != nil {
		backupIndexFile(path)
		_ = os.Remove(path)
		if rbErr := UpdateIndex(ctx, deckRoot, deck); rbErr != nil {
			return false, fmt.Errorf("rebuild after open failure: %w (open err: %v)", rbErr, err)
		}
		return true, nil
	}
	defer db.Close()
	needs := false
	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		needs = true
	}
	if !needs {
		if _, err := db.ExecContext(ctx, `SELECT 1 FROM documents LIMIT 1;`); err != nil {
			needs = true
		}
	}
	if !needs {
		return false, nil
	}
	backupIndexFile(path)
	_ = os.Remove(path)
	if err := UpdateIndex(ctx, deckRoot, deck); err != nil {
		return false, err
	}
	return true, nil
}

// backupIndexFile copies the current index file into a timestamped backup in
// .gsw/backups.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}

// rebuildDocumentsFromDeck replaces the documents table content from the
// given deck manifest.
func rebuildDocumentsFromDeck(ctx context.Context, db *sql.DB, deck domain.Presentation) error {
	type row struct {
		kind      string
		path      string
		slide     sql.NullInt64
		elementID sql.NullString
		text      string
	}
	rows := make([]row, 0, 128)
	add := func(kind, path string, slide int, elementID, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		r := row{kind: kind, path: path, text: text}
		if slide > 0 {
			r.slide = sql.NullInt64{Int64: int64(slide), Valid: true}
		}
		if elementID != "" {
			r.elementID = sql.NullString{String: elementID, Valid: true}
		}
		rows = append(rows, r)
	}

	add("deck_name", "deck:name", 0, "", deck.Name)
	add("deck_brief", "deck:brief", 0, "", deck.Metadata.Brief)
	add("deck_notes", "deck:notes", 0, "", deck.Metadata.Notes)

	for _, sl := range deck.Slides {
		add("slide_title", fmt.Sprintf("slide:%d/title", sl.Number), sl.Number, "", sl.Title)
		add("slide_notes", fmt.Sprintf("slide:%d/notes", sl.Number), sl.Number, "", sl.Notes)
		for _, t := range sl.Texts {
			add("text", fmt.Sprintf("slide:%d/text:%s", sl.Number, t.ID), sl.Number, t.ID, t.Content)
		}
		for _, img := range sl.Images {
			add("image_alt", fmt.Sprintf("slide:%d/image:%s", sl.Number, img.ID), sl.Number, img.ID, img.Alt)
		}
		for _, tbl := range sl.Tables {
			var buf strings.Builder
			for _, r := range tbl.Data.Rows {
				for _, c := range r {
					if s := strings.TrimSpace(c.Content); s != "" {
						if buf.Len() > 0 {
							buf.WriteByte(' ')
						}
						buf.WriteString(s)
					}
				}
			}
			add("table", fmt.Sprintf("slide:%d/table:%s", sl.Number, tbl.ID), sl.Number, tbl.ID, buf.String())
		}
		for _, ig := range sl.Infographics {
			var buf strings.Builder
			buf.WriteString(ig.Data.Title)
			for _, it := range ig.Data.Items {
				if s := strings.TrimSpace(it.Label); s != "" {
					if buf.Len() > 0 {
						buf.WriteByte(' ')
					}
					buf.WriteString(s)
				}
			}
			add("infographic", fmt.Sprintf("slide:%d/infographic:%s", sl.Number, ig.ID), sl.Number, ig.ID, buf.String())
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents;"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear documents: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, "INSERT INTO documents(kind, path, slide, element_id, text) VALUES(?,?,?,?,?);")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()
	for _, r := range rows {
		if _, err := ins.ExecContext(ctx, r.kind, r.path, r.slide, r.elementID, r.text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert document: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
