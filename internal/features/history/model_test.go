package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_FirstRowPerUserWins(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now()

	// Ordered newest first, as ViewersForContent queries them.
	entries := []Entry{
		{UserID: alice, AccessedAt: now},
		{UserID: bob, AccessedAt: now.Add(-1 * time.Minute)},
		{UserID: alice, AccessedAt: now.Add(-2 * time.Minute)},
		{UserID: alice, AccessedAt: now.Add(-3 * time.Minute)},
		{UserID: bob, AccessedAt: now.Add(-4 * time.Minute)},
	}

	viewers := Dedup(entries)
	require.Len(t, viewers, 2)

	assert.Equal(t, alice, viewers[0].UserID)
	assert.Equal(t, now, viewers[0].AccessedAt)
	assert.Equal(t, bob, viewers[1].UserID)
	assert.Equal(t, now.Add(-1*time.Minute), viewers[1].AccessedAt)
}

func TestDedup_DistinctUsersAllKept(t *testing.T) {
	entries := make([]Entry, 0, 10)
	now := time.Now()
	for i := 0; i < 10; i++ {
		entries = append(entries, Entry{UserID: uuid.New(), AccessedAt: now.Add(-time.Duration(i) * time.Second)})
	}

	viewers := Dedup(entries)
	assert.Len(t, viewers, 10)
}

func TestDedup_Empty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
	assert.Empty(t, Dedup([]Entry{}))
}
