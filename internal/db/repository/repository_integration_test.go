//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/db/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoLinkRepository_Integration(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	links := NewVideoLinkRepository(td.Pool)
	summaries := NewSummaryRepository(td.Pool)
	relations := NewVideoLinkSummaryRepository(td.Pool)
	ctx := context.Background()

	t.Run("upsert then lookup then increment", func(t *testing.T) {
		td.TruncateTables(t)

		link := models.NewVideoLink("user-1", "https://youtu.be/abc123", 3723)
		inserted, err := links.UpsertForSubmission(ctx, link)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, 1, link.Count)

		found, err := links.GetByUserAndURL(ctx, "user-1", "https://youtu.be/abc123")
		require.NoError(t, err)
		assert.Equal(t, link.ID, found.ID)

		count, err := links.IncrementCount(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		_, err = links.GetByUserAndURL(ctx, "user-2", "https://youtu.be/abc123")
		assert.True(t, db.IsNotFound(err))
	})

	t.Run("second upsert of the same url is not an insert", func(t *testing.T) {
		td.TruncateTables(t)

		first := models.NewVideoLink("user-1", "https://youtu.be/dup", 10)
		_, err := links.UpsertForSubmission(ctx, first)
		require.NoError(t, err)

		second := models.NewVideoLink("user-1", "https://youtu.be/dup", 10)
		inserted, err := links.UpsertForSubmission(ctx, second)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, second.Count)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		td.TruncateTables(t)

		link := models.NewVideoLink("user-1", "https://youtu.be/race", 0)
		_, err := links.UpsertForSubmission(ctx, link)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := links.IncrementCount(ctx, link.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		found, err := links.GetByUserAndURL(ctx, "user-1", "https://youtu.be/race")
		require.NoError(t, err)
		assert.Equal(t, 11, found.Count)
	})

	t.Run("history and favorite compare-and-swap", func(t *testing.T) {
		td.TruncateTables(t)

		long := models.NewVideoLink("user-1", "https://youtu.be/long", 600)
		short := models.NewVideoLink("user-1", "https://youtu.be/short", 30)
		for _, l := range []*models.VideoLink{long, short} {
			_, err := links.UpsertForSubmission(ctx, l)
			require.NoError(t, err)
		}

		s := models.NewSummary("user-1", "About a long video.")
		require.NoError(t, summaries.Create(ctx, s))
		require.NoError(t, relations.Create(ctx, models.NewVideoLinkSummary(long.ID, s.ID)))

		stored, err := summaries.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "About a long video.", stored.Text)

		history, err := links.ListHistory(ctx, "user-1", false)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, long.ID, history[0].Link.ID)
		assert.True(t, history[0].HasSummary())
		assert.False(t, history[1].HasSummary())

		asc, err := links.ListHistory(ctx, "user-1", true)
		require.NoError(t, err)
		assert.Equal(t, short.ID, asc[0].Link.ID)

		changed, err := relations.SetFavoriteIfCurrent(ctx, "user-1", long.ID, s.ID, false)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = relations.SetFavoriteIfCurrent(ctx, "user-1", long.ID, s.ID, false)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = relations.SetFavoriteIfCurrent(ctx, "someone-else", long.ID, s.ID, true)
		require.NoError(t, err)
		assert.False(t, changed)

		rels, err := relations.ListByURL(ctx, long.ID)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.True(t, rels[0].IsFavorite)
	})

	t.Run("summaries are immutable", func(t *testing.T) {
		td.TruncateTables(t)

		s := models.NewSummary("user-1", "original")
		require.NoError(t, summaries.Create(ctx, s))

		_, err := td.Pool.Exec(ctx, `UPDATE summary_records SET summary = 'changed' WHERE id = $1`, s.ID)
		assert.True(t, db.IsImmutableRecord(db.WrapError(err, "update summary")))
	})
}

func TestQuotaRepository_Integration(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	repo := NewQuotaRepository(td.Pool)
	ctx := context.Background()
	td.TruncateTables(t)

	usage, err := repo.GetTodaysQuota(ctx)
	require.NoError(t, err)
	assert.Zero(t, usage.QuotaUsed)

	require.NoError(t, repo.IncrementQuota(ctx, 1, models.QuotaOpVideosList, 10000))
	require.NoError(t, repo.IncrementQuota(ctx, 1, models.QuotaOpOther, 10000))

	usage, err = repo.GetTodaysQuota(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, usage.QuotaUsed)
	assert.Equal(t, 1, usage.VideosListCalls)
	assert.Equal(t, 1, usage.OtherCalls)

	history, err := repo.GetQuotaHistory(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
