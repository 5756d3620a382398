package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMockID(t *testing.T) {
	assert.True(t, IsMockID("mock-happy-1"))
	assert.True(t, IsMockID("mock-neutral-5"))
	assert.False(t, IsMockID("4kflIGfjdZJW4ot2ioixTB"))
	assert.False(t, IsMockID(""))
}

func TestMockBanksAreComplete(t *testing.T) {
	for bank, tracks := range mockTracksByBank {
		require.Len(t, tracks, 5, "bank %q", bank)
		for _, tr := range tracks {
			assert.True(t, IsMockID(tr.ID), "bank %q track %q", bank, tr.Name)
			assert.NotEmpty(t, tr.Name)
			assert.NotEmpty(t, tr.Artist)
			assert.NotEmpty(t, tr.ExternalURL)
		}
	}
}

func TestMockTracksForAliases(t *testing.T) {
	tests := []struct {
		emotion string
		wantID  string
	}{
		{emotion: "happy", wantID: "mock-happy-1"},
		{emotion: "excited", wantID: "mock-happy-1"},
		{emotion: "CHEERFUL", wantID: "mock-happy-1"},
		{emotion: "melancholic", wantID: "mock-sad-1"},
		{emotion: "frustrated", wantID: "mock-angry-1"},
		{emotion: "serene", wantID: "mock-calm-1"},
		{emotion: "vigorous", wantID: "mock-energetic-1"},
		{emotion: "indifferent", wantID: "mock-neutral-1"},
		{emotion: "romantic", wantID: "mock-neutral-1"}, // unmapped
	}

	for _, tt := range tests {
		t.Run(tt.emotion, func(t *testing.T) {
			tracks := MockTracksFor(tt.emotion)
			require.NotEmpty(t, tracks)
			assert.Equal(t, tt.wantID, tracks[0].ID)
		})
	}
}

func TestMockTracksForReturnsCopy(t *testing.T) {
	first := MockTracksFor("happy")
	first[0].Name = "mutated"

	again := MockTracksFor("happy")
	assert.Equal(t, "Happy", again[0].Name)
}

func TestFallbackRecommendation(t *testing.T) {
	rec := FallbackRecommendation("Joy!", 7)

	require.Len(t, rec.Tracks, 7)
	assert.True(t, rec.Degraded)
	assert.NotEmpty(t, rec.Reason)
	// "joy" aliases to happy through the emotion tables.
	assert.Equal(t, "mock-happy-1", rec.Tracks[0].ID)
	// Sixth entry wraps around to the start of the bank.
	assert.Equal(t, "mock-happy-1", rec.Tracks[5].ID)
}

func TestFallbackRecommendationDefaultLimit(t *testing.T) {
	rec := FallbackRecommendation("sad", 0)
	assert.Len(t, rec.Tracks, defaultSearchLimit)
}
