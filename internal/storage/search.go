/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes the in-app search request.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// Kinds can restrict to document kinds: slide_title, text, table,
// infographic, image_alt, deck_name, deck_brief, deck_notes.
// SlideFrom/To are inclusive; 0 means unset. Limit/Offset paginate.
type SearchQuery struct {
	Text      string
	Kinds     []string
	SlideFrom int
	SlideTo   int
	Limit     int
	Offset    int
}

// SearchResult is a single match row. Snippet is a highlighted excerpt using
// [ ] markers when FTS text is used; Slide is 0 for deck-level matches.
type SearchResult struct {
	DocID     int64
	Kind      string
	Path      string
	Slide     int
	ElementID string
	Snippet   string
}

// Search performs full-text search with optional filters over the embedded
// index. When q.Text is empty, it falls back to a filtered scan.
func Search(ctx context.Context, deckRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(deckRoot) == "" {
		return nil, errors.New("deck root is required")
	}
	db, err := InitOrOpenIndex(deckRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT d.doc_id, d.kind, d.path, COALESCE(d.slide,0), COALESCE(d.element_id,''), snippet(fts_documents, 0, '[', ']', '...', 10)\n")
		sb.WriteString("FROM fts_documents JOIN documents d ON fts_documents.rowid = d.doc_id\n")
		sb.WriteString("WHERE fts_documents MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT d.doc_id, d.kind, d.path, COALESCE(d.slide,0), COALESCE(d.element_id,''), ''\n")
		sb.WriteString("FROM documents d\nWHERE 1=1\n")
	}
	if len(q.Kinds) > 0 {
		sb.WriteString(" AND d.kind IN (" + placeholders(len(q.Kinds)) + ")\n")
		for _, k := range q.Kinds {
			args = append(args, k)
		}
	}
	if q.SlideFrom > 0 && q.SlideTo > 0 && q.SlideTo >= q.SlideFrom {
		sb.WriteString(" AND d.slide BETWEEN ? AND ?\n")
		args = append(args, q.SlideFrom, q.SlideTo)
	} else if q.SlideFrom > 0 {
		sb.WriteString(" AND d.slide >= ?\n")
		args = append(args, q.SlideFrom)
	} else if q.SlideTo > 0 {
		sb.WriteString(" AND d.slide <= ?\n")
		args = append(args, q.SlideTo)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString("ORDER BY d.slide NULLS LAST, d.doc_id\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var slide sql.NullInt64
		var snippet sql.NullString
		if err := rows.Scan(&r.DocID, &r.Kind, &r.Path, &slide, &r.ElementID, &snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if slide.Valid {
			r.Slide = int(slide.Int64)
		}
		if snippet.Valid {
			r.Snippet = snippet.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
	}
	return b.String()
}
