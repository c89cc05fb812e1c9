package store_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylink/internal/domain"
	"keylink/internal/store"
)

func TestEntryFileStore_MissingFileIsEmpty(t *testing.T) {
	s := store.NewEntryFileStore(t.TempDir())
	got, err := s.Entries()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntryFileStore_SaveLoad(t *testing.T) {
	s := store.NewEntryFileStore(t.TempDir())
	want := []domain.Entry{
		{Name: "mail", User: "me", Pass: "hunter2"},
		{Name: "bank", User: "acct", Pass: "s3cret", URL: "https://bank.example"},
	}
	require.NoError(t, s.Save(want))

	got, err := s.Entries()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	fi, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestEntryFileStore_SeedIfEmpty(t *testing.T) {
	s := store.NewEntryFileStore(t.TempDir())
	seeded, err := s.SeedIfEmpty([]domain.Entry{{Name: "a"}})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.SeedIfEmpty([]domain.Entry{{Name: "b"}})
	require.NoError(t, err)
	assert.False(t, seeded)

	got, _ := s.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestEntryFileStore_Corrupt(t *testing.T) {
	s := store.NewEntryFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))
	_, err := s.Entries()
	assert.Error(t, err)
}

func TestSealedEntryFileStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSealedEntryFileStore(dir, "master")
	want := []domain.Entry{{Name: "mail", User: "me", Pass: "hunter2"}}
	require.NoError(t, s.Save(want))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")

	got, err := store.NewSealedEntryFileStore(dir, "master").Entries()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSealedEntryFileStore_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, store.NewSealedEntryFileStore(dir, "master").Save([]domain.Entry{{Name: "a"}}))

	_, err := store.NewSealedEntryFileStore(dir, "guess").Entries()
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
}

func TestSealedEntryFileStore_Missing(t *testing.T) {
	got, err := store.NewSealedEntryFileStore(t.TempDir(), "master").Entries()
	require.NoError(t, err)
	assert.Empty(t, got)
}
