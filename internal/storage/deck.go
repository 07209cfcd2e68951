/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"goslidewriter/internal/domain"
)

const (
	ManifestFileName = "deck.json"
	BackupsDirName   = "backups"
)

// Standard subfolders scaffolded in every deck directory.
var standardSubDirs = []string{
	"outline",
	"assets",
	"styles",
	"exports",
	BackupsDirName,
}

// DeckHandle keeps track of the deck state loaded/saved from disk.
// Root is the deck directory containing deck.json and subfolders; Deck holds
// the in-memory manifest.
type DeckHandle struct {
	Root         string
	ManifestPath string
	Deck         domain.Presentation
}

// InitDeck creates a new deck directory at root (creating it if it doesn't
// exist), scaffolds the standard subfolders, and writes the manifest
// transactionally.
func InitDeck(root string, deck domain.Presentation) (*DeckHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create deck root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	dh := &DeckHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Deck:         deck,
	}
	if err := Save(dh); err != nil {
		return nil, err
	}
	return dh, nil
}

// Open loads an existing deck from the given root directory. A manifest that
// cannot be read, parsed, or validated falls back to the latest backup.
func Open(root string) (*DeckHandle, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		deck, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &DeckHandle{Root: root, ManifestPath: mpath, Deck: *deck}, nil
	}
	deck, err := decodeManifest(b)
	if err != nil {
		bdeck, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("%w; backup attempt: %v", err, berr)
		}
		return &DeckHandle{Root: root, ManifestPath: mpath, Deck: *bdeck}, nil
	}
	return &DeckHandle{Root: root, ManifestPath: mpath, Deck: *deck}, nil
}

// decodeManifest validates the raw manifest against the embedded schema and
// unmarshals it.
func decodeManifest(b []byte) (*domain.Presentation, error) {
	if err := ValidateManifest(b); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	var p domain.Presentation
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &p, nil
}

// Save writes the current DeckHandle.Deck to disk with transactional
// semantics and a timestamped backup of the previous manifest (if present).
func Save(dh *DeckHandle) error { return SaveKeeping(dh, 0) }

// SaveKeeping is Save with backup pruning: when keepBackups > 0, only that
// many newest manifest backups are retained afterwards.
func SaveKeeping(dh *DeckHandle, keepBackups int) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	if dh.Root == "" || dh.ManifestPath == "" {
		return errors.New("invalid DeckHandle: missing paths")
	}
	data, err := json.MarshalIndent(dh.Deck, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(dh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// Copy the current manifest to a timestamped backup before replacing.
	if _, statErr := os.Stat(dh.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bpath := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp))
		if cerr := copyFile(dh.ManifestPath, bpath); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	// Transactional write: temp file in the same directory, then rename.
	dir := filepath.Dir(dh.ManifestPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", ManifestFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp manifest: %w", werr)
	}
	// On Windows, rename cannot replace an existing file.
	if _, err := os.Stat(dh.ManifestPath); err == nil {
		_ = os.Remove(dh.ManifestPath)
	}
	if rerr := os.Rename(temp, dh.ManifestPath); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace manifest: %w", rerr)
	}
	if keepBackups > 0 {
		pruneBackups(bdir, keepBackups)
	}
	return nil
}

// SaveAs writes the manifest to a new root folder, scaffolding structure if
// needed, and updates the handle.
func SaveAs(dh *DeckHandle, newRoot string) error {
	if dh == nil {
		return errors.New("nil DeckHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	dh.Root = newRoot
	dh.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(dh)
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

// copyFile copies src to dst, overwriting dst if it exists.
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	return df.Sync()
}

func listBackups(bdir string) []string {
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	sort.Strings(out) // timestamp in name yields chronological order
	return out
}

// pruneBackups removes all but the newest keep manifest backups.
func pruneBackups(bdir string, keep int) {
	backups := listBackups(bdir)
	for i := 0; i < len(backups)-keep; i++ {
		_ = os.Remove(backups[i])
	}
}

// AutosaveCrashSnapshot writes the in-memory deck to a timestamped file in
// the backups folder without touching deck.json. Used from panic recovery,
// where the live manifest may be mid-edit.
func AutosaveCrashSnapshot(dh *DeckHandle) (string, error) {
	if dh == nil {
		return "", errors.New("nil DeckHandle")
	}
	if dh.Root == "" {
		return "", errors.New("invalid DeckHandle: missing root")
	}
	data, err := json.MarshalIndent(dh.Deck, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	bdir := filepath.Join(dh.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("crash-autosave-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash autosave: %w", err)
	}
	return path, nil
}

// openFromLatestBackup tries to open the newest timestamped backup.
func openFromLatestBackup(root string) (*domain.Presentation, error) {
	backups := listBackups(filepath.Join(root, BackupsDirName))
	if len(backups) == 0 {
		return nil, errors.New("no backups found")
	}
	latest := backups[len(backups)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	deck, err := decodeManifest(b)
	if err != nil {
		return nil, fmt.Errorf("latest backup: %w", err)
	}
	return deck, nil
}
