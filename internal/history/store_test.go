package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnguyen/codeassist/internal/history"
	"github.com/hnguyen/codeassist/tests/testutil"
)

func sampleEntry(fileName string) history.Entry {
	return history.Entry{
		FileName:    fileName,
		Language:    "html",
		Intention:   "fix",
		Prompt:      "fix the broken tag",
		Suggestion:  "<a-box></a-box>",
		Explanation: "closed the tag",
		Confidence:  0.9,
	}
}

func TestSaveEntryGeneratesID(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := store.SaveEntry(ctx, sampleEntry("scene.html"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := store.ListEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "scene.html", got.FileName)
	assert.Equal(t, "fix", got.Intention)
	assert.Equal(t, 0.9, got.Confidence)
	assert.False(t, got.Applied)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestListEntriesNewestFirst(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	older := sampleEntry("first.html")
	older.CreatedAt = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := sampleEntry("second.html")
	newer.CreatedAt = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	_, err := store.SaveEntry(ctx, older)
	require.NoError(t, err)
	_, err = store.SaveEntry(ctx, newer)
	require.NoError(t, err)

	entries, err := store.ListEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second.html", entries[0].FileName)
	assert.Equal(t, "first.html", entries[1].FileName)
}

func TestListEntriesRespectsLimit(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.SaveEntry(ctx, sampleEntry("scene.html"))
		require.NoError(t, err)
	}

	entries, err := store.ListEntries(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestMarkApplied(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := store.SaveEntry(ctx, sampleEntry("scene.html"))
	require.NoError(t, err)

	require.NoError(t, store.MarkApplied(ctx, id))

	entries, err := store.ListEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Applied)
}

func TestMarkAppliedUnknownID(t *testing.T) {
	store := testutil.NewTestStore(t)

	err := store.MarkApplied(context.Background(), "no-such-id")
	assert.Error(t, err)
}
