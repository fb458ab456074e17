package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

func TestNoteTaker_WithoutTranscriptService(t *testing.T) {
	plans := newMemPlanStore()
	taker := NewNoteTaker(plans, newMemFeedbackStore(plans), nil, &countingJudge{})

	_, err := taker.TakeNotes(context.Background(), "module-1", "https://youtu.be/abc")

	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestNoteTaker_UnknownModule(t *testing.T) {
	plans := newMemPlanStore()
	taker := NewNoteTaker(plans, newMemFeedbackStore(plans), &stubTranscript{text: "hello"}, &countingJudge{})

	_, err := taker.TakeNotes(context.Background(), "missing", "https://youtu.be/abc")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteTaker_StoresGeneratedNotes(t *testing.T) {
	plans := newMemPlanStore()
	feedback := newMemFeedbackStore(plans)
	judge := &countingJudge{responses: []string{"## Key points\n- Tune the guitar first."}}
	taker := NewNoteTaker(plans, feedback, &stubTranscript{text: "today we tune the guitar"}, judge)
	_, moduleID := seedPlanWithModule(t, plans, "Guitar Basics")

	note, err := taker.TakeNotes(context.Background(), moduleID, "https://youtu.be/abc")

	require.NoError(t, err)
	assert.Equal(t, moduleID, note.ModuleID)
	assert.Equal(t, "https://youtu.be/abc", note.VideoLink)
	assert.Equal(t, "## Key points\n- Tune the guitar first.", note.Content)

	require.Len(t, judge.prompts, 1)
	assert.Contains(t, judge.prompts[0], "today we tune the guitar")
	assert.Contains(t, judge.prompts[0], "Step one", "prompt names the module being studied")

	stored, err := taker.ListNotes(context.Background(), moduleID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, note.ID, stored[0].ID)
}

func TestNoteTaker_TranscriptFetchFailure(t *testing.T) {
	plans := newMemPlanStore()
	taker := NewNoteTaker(plans, newMemFeedbackStore(plans), &stubTranscript{err: errors.New("no captions")}, &countingJudge{})
	_, moduleID := seedPlanWithModule(t, plans, "Guitar Basics")

	_, err := taker.TakeNotes(context.Background(), moduleID, "https://youtu.be/abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no captions")
}

func TestNoteTaker_EmptyJudgeOutput(t *testing.T) {
	plans := newMemPlanStore()
	taker := NewNoteTaker(plans, newMemFeedbackStore(plans), &stubTranscript{text: "hello"}, &countingJudge{responses: []string{"  \n"}})
	_, moduleID := seedPlanWithModule(t, plans, "Guitar Basics")

	_, err := taker.TakeNotes(context.Background(), moduleID, "https://youtu.be/abc")

	assert.ErrorIs(t, err, domain.ErrMalformedJudgeOutput)
}

func TestNoteTaker_TruncatesLongTranscripts(t *testing.T) {
	plans := newMemPlanStore()
	judge := &countingJudge{responses: []string{"notes"}}
	transcript := &stubTranscript{text: strings.Repeat("a", transcriptLimit) + "OVERFLOW"}
	taker := NewNoteTaker(plans, newMemFeedbackStore(plans), transcript, judge)
	_, moduleID := seedPlanWithModule(t, plans, "Guitar Basics")

	_, err := taker.TakeNotes(context.Background(), moduleID, "https://youtu.be/abc")

	require.NoError(t, err)
	require.Len(t, judge.prompts, 1)
	assert.NotContains(t, judge.prompts[0], "OVERFLOW")
}
