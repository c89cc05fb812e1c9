package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"keylink/internal/domain"
)

const (
	entriesFile       = "entries.json"
	sealedEntriesFile = "entries.sealed"
)

// EntryFileStore keeps the development daemon's entries on disk, either as
// plain JSON or sealed under a passphrase.
type EntryFileStore struct {
	mu         sync.RWMutex
	path       string
	passphrase string
}

// NewEntryFileStore stores entries under dir/entries.json.
func NewEntryFileStore(dir string) *EntryFileStore {
	return &EntryFileStore{path: filepath.Join(dir, entriesFile)}
}

// NewSealedEntryFileStore stores entries under dir/entries.sealed, encrypted
// with a key derived from passphrase.
func NewSealedEntryFileStore(dir, passphrase string) *EntryFileStore {
	return &EntryFileStore{
		path:       filepath.Join(dir, sealedEntriesFile),
		passphrase: passphrase,
	}
}

// Path returns the backing file.
func (s *EntryFileStore) Path() string { return s.path }

// Entries returns all stored entries; a missing file yields none.
func (s *EntryFileStore) Entries() ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Entry
	if s.passphrase == "" {
		if err := readJSON(s.path, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(b) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	raw, err := unseal(s.passphrase, b)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored entries.
func (s *EntryFileStore) Save(entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if s.passphrase == "" {
		return writeJSON(s.path, entries, 0o600)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	b, err := seal(s.passphrase, raw)
	if err != nil {
		return err
	}
	return writeFile(s.path, b, 0o600)
}

// SeedIfEmpty writes entries when the store holds nothing yet.
func (s *EntryFileStore) SeedIfEmpty(entries []domain.Entry) (bool, error) {
	cur, err := s.Entries()
	if err != nil {
		return false, err
	}
	if len(cur) > 0 {
		return false, nil
	}
	return true, s.Save(entries)
}

// Memory is a fixed, in-memory entry list.
type Memory []domain.Entry

// Entries returns a copy of the list.
func (m Memory) Entries() ([]domain.Entry, error) {
	return append([]domain.Entry(nil), m...), nil
}
