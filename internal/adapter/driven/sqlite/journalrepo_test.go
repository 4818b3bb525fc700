package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

func makeStatusRecord(prID int, builder, description string) model.StatusRecord {
	return model.StatusRecord{
		Topic:         "buildbot",
		Repo:          "dolphin-emu/dolphin",
		PullRequestID: prID,
		Builder:       builder,
		HeadRev:       "0f1e2d3c4b5a69788766",
		Success:       true,
		Pending:       false,
		URL:           "https://buildbot.example.org/builders/" + builder,
		Description:   description,
	}
}

func TestJournalRepo_RecordAndQuery(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, makeStatusRecord(1234, "pr-linux", "Build succeeded on builder pr-linux")))
	require.NoError(t, repo.Record(ctx, makeStatusRecord(1234, "pr-win", "Build failed on builder pr-win")))
	require.NoError(t, repo.Record(ctx, makeStatusRecord(99, "pr-linux", "Auto build pending")))

	got, err := repo.RecentForPullRequest(ctx, "dolphin-emu/dolphin", 1234, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Most recent first.
	assert.Equal(t, "pr-win", got[0].Builder)
	assert.Equal(t, "Build failed on builder pr-win", got[0].Description)
	assert.Equal(t, "pr-linux", got[1].Builder)

	assert.Equal(t, "buildbot", got[0].Topic)
	assert.Equal(t, "dolphin-emu/dolphin", got[0].Repo)
	assert.Equal(t, 1234, got[0].PullRequestID)
	assert.Equal(t, "0f1e2d3c4b5a69788766", got[0].HeadRev)
	assert.True(t, got[0].Success)
	assert.False(t, got[0].Pending)
	assert.Equal(t, "https://buildbot.example.org/builders/pr-win", got[0].URL)
}

func TestJournalRepo_RecordStampsTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, makeStatusRecord(1234, "pr-linux", "Auto build pending")))

	got, err := repo.RecentForPullRequest(ctx, "dolphin-emu/dolphin", 1234, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.WithinDuration(t, time.Now(), got[0].CreatedAt, 10*time.Second)
}

func TestJournalRepo_RecentLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, makeStatusRecord(1234, "pr-linux", "Auto build pending")))
	}

	got, err := repo.RecentForPullRequest(ctx, "dolphin-emu/dolphin", 1234, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestJournalRepo_RecentForUnknownPR(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)

	got, err := repo.RecentForPullRequest(context.Background(), "dolphin-emu/dolphin", 404, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJournalRepo_Prune(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()

	old := makeStatusRecord(1234, "pr-linux", "Build succeeded on builder pr-linux")
	old.CreatedAt = now.Add(-48 * time.Hour)
	require.NoError(t, repo.Record(ctx, old))

	older := makeStatusRecord(1234, "pr-win", "Build failed on builder pr-win")
	older.CreatedAt = now.Add(-72 * time.Hour)
	require.NoError(t, repo.Record(ctx, older))

	fresh := makeStatusRecord(1234, "pr-android", "Auto build pending")
	fresh.CreatedAt = now.Add(-1 * time.Hour)
	require.NoError(t, repo.Record(ctx, fresh))

	pruned, err := repo.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	got, err := repo.RecentForPullRequest(ctx, "dolphin-emu/dolphin", 1234, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pr-android", got[0].Builder)
}

func TestJournalRepo_PruneNothing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, makeStatusRecord(1234, "pr-linux", "Auto build pending")))

	pruned, err := repo.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
