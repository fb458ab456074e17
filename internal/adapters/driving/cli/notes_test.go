package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

func TestNotesTakeCmd_PrintsNotes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"notes", "take", "module-1", "https://www.youtube.com/watch?v=abc123"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "- Tune the guitar before practising")

	notes := noteService.(*stubNoteService)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=abc123"}, notes.taken)
}

func TestNotesTakeCmd_NoTranscript(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	noteService = &stubNoteService{err: domain.ErrNoTranscript}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"notes", "take", "module-1", "https://www.youtube.com/watch?v=abc123"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err, "missing transcripts are reported, not fatal")
	assert.Contains(t, buf.String(), "no transcript")
}

func TestNotesListCmd_ShowsStoredNotes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	noteService = &stubNoteService{notes: []domain.Note{
		{
			ID:        "note-1",
			ModuleID:  "module-1",
			VideoLink: "https://www.youtube.com/watch?v=abc123",
			Content:   "- Practise chord changes daily",
			CreatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"notes", "list", "module-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Notes: https://www.youtube.com/watch?v=abc123")
	assert.Contains(t, buf.String(), "- Practise chord changes daily")
	assert.Contains(t, buf.String(), "2026-03-02")
}

func TestNotesListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"notes", "list", "module-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No notes for this module yet.")
}

func TestNotesCmd_ServiceNotConfigured(t *testing.T) {
	oldService := noteService
	noteService = nil
	defer func() {
		noteService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"notes", "list", "module-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "note service not configured")
}
