/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientListDecks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/decks" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]Deck{{ID: 7, Name: "quarterly", Version: 3, UpdatedAt: time.Now()}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok123")
	decks, err := c.ListDecks(context.Background())
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(decks) != 1 || decks[0].ID != 7 || decks[0].Name != "quarterly" {
		t.Fatalf("decks = %+v", decks)
	}
}

func TestClientPublishDeck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/decks" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req PublishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Name != "launch" {
			t.Errorf("name = %q", req.Name)
		}
		_ = json.NewEncoder(w).Encode(Deck{ID: 12, Name: req.Name, Version: 2})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	d, err := c.PublishDeck(context.Background(), "launch", []byte(`{"slides":[]}`))
	if err != nil {
		t.Fatalf("PublishDeck: %v", err)
	}
	if d.ID != 12 || d.Version != 2 {
		t.Fatalf("deck = %+v", d)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	if _, err := c.ListDecks(context.Background()); err == nil {
		t.Fatal("expected error on 401")
	}
}
