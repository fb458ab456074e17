package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_SortedModules(t *testing.T) {
	plan := &Plan{
		Modules: []Module{
			{ID: "c", StepNumber: 3},
			{ID: "a", StepNumber: 1},
			{ID: "b", StepNumber: 2},
		},
	}

	sorted := plan.SortedModules()

	require.Len(t, sorted, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{sorted[0].StepNumber, sorted[1].StepNumber, sorted[2].StepNumber})
	// Original slice untouched
	assert.Equal(t, 3, plan.Modules[0].StepNumber)
}

func TestPlan_NextModule(t *testing.T) {
	plan := &Plan{
		Modules: []Module{
			{ID: "b", StepNumber: 2},
			{ID: "a", StepNumber: 1, IsComplete: true},
			{ID: "c", StepNumber: 3},
		},
	}

	next := plan.NextModule()

	require.NotNil(t, next)
	assert.Equal(t, "b", next.ID)
}

func TestPlan_NextModule_AllComplete(t *testing.T) {
	plan := &Plan{
		Modules: []Module{
			{ID: "a", StepNumber: 1, IsComplete: true},
			{ID: "b", StepNumber: 2, IsComplete: true},
		},
	}

	assert.Nil(t, plan.NextModule())
}

func TestNoResultsSentinel(t *testing.T) {
	web := NoResultsSentinel(ResultKindWeb)
	assert.Equal(t, "N/A", web.Title)
	assert.Equal(t, "N/A", web.Link)
	assert.Equal(t, "No web results found.", web.Reason)

	video := NoResultsSentinel(ResultKindVideo)
	assert.Equal(t, "No video results found.", video.Reason)
}

func TestCuratedResource_IsSentinel(t *testing.T) {
	assert.True(t, NoResultsSentinel(ResultKindWeb).IsSentinel())
	assert.True(t, AnalysisErrorSentinel().IsSentinel())
	assert.True(t, RateLimitSentinel().IsSentinel())

	genuine := CuratedResource{Title: "Go by Example", Link: "https://gobyexample.com", Reason: "Beginner friendly."}
	assert.False(t, genuine.IsSentinel())
}

func TestSentinels_AlwaysStructurallyValid(t *testing.T) {
	for _, r := range []CuratedResource{
		NoResultsSentinel(ResultKindWeb),
		NoResultsSentinel(ResultKindVideo),
		AnalysisErrorSentinel(),
		RateLimitSentinel(),
	} {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Link)
		assert.NotEmpty(t, r.Reason)
	}
}
