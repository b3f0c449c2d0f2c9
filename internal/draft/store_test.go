package draft

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelialabs/faro/internal/state"
)

func TestPutListRoundtrip(t *testing.T) {
	s := Open(t.TempDir(), nil)

	require.NoError(t, s.Put(state.Entity{ID: "draft-b", Name: "Beta Co"}))
	require.NoError(t, s.Put(state.Entity{ID: "draft-a", Name: "Alpha Co"}))

	drafts := s.List()
	require.Len(t, drafts, 2)
	assert.Equal(t, "draft-a", drafts[0].ID)
	assert.Equal(t, "Alpha Co", drafts[0].Name)
	assert.False(t, drafts[0].Synced)
}

func TestPutRequiresID(t *testing.T) {
	s := Open(t.TempDir(), nil)
	assert.Error(t, s.Put(state.Entity{Name: "No ID"}))
}

func TestListForcesUnsynced(t *testing.T) {
	s := Open(t.TempDir(), nil)
	require.NoError(t, s.Put(state.Entity{ID: "draft-1", Synced: true}))

	drafts := s.List()
	require.Len(t, drafts, 1)
	assert.False(t, drafts[0].Synced)
}

func TestRemove(t *testing.T) {
	s := Open(t.TempDir(), nil)
	require.NoError(t, s.Put(state.Entity{ID: "draft-1", Name: "Gone Co"}))

	require.NoError(t, s.Remove("draft-1"))
	assert.Empty(t, s.List())

	// removing twice is fine
	require.NoError(t, s.Remove("draft-1"))
}

func TestListSkipsCorruptRecords(t *testing.T) {
	dir := t.TempDir()
	var logged bytes.Buffer
	s := Open(dir, slog.New(slog.NewTextHandler(&logged, nil)))
	require.NoError(t, s.Put(state.Entity{ID: "draft-ok", Name: "Fine Co"}))

	err := os.WriteFile(filepath.Join(dir, "draft-bad"), []byte("{not json"), 0644)
	require.NoError(t, err)

	drafts := s.List()
	require.Len(t, drafts, 1)
	assert.Equal(t, "draft-ok", drafts[0].ID)

	// the skip is reported to the logger, never to stderr
	assert.Contains(t, logged.String(), "draft-bad")
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Open(dir, nil).Put(state.Entity{ID: "draft-1", Name: "Sticky Co"}))

	drafts := Open(dir, nil).List()
	require.Len(t, drafts, 1)
	assert.Equal(t, "Sticky Co", drafts[0].Name)
}
