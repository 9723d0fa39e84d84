package mysql

import (
	"context"
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxListPendingOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := &OutboxRepository{DB: db}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreate(t, db, &model.EngagementOutbox{
			EventType: model.EventVoteApplied, ActorID: uint64(i + 1), Payload: "{}",
		})
	}

	rows, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, uint64(1), rows[0].ActorID)

	require.NoError(t, repo.MarkSent(ctx, rows[0].ID))
	rows, err = repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint64(2), rows[0].ActorID)
}

func TestOutboxRetryEscalatesToFailed(t *testing.T) {
	db := newTestDB(t)
	repo := &OutboxRepository{DB: db}
	ctx := context.Background()

	ob := &model.EngagementOutbox{EventType: model.EventVoteApplied, ActorID: 1, Payload: "{}"}
	mustCreate(t, db, ob)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.MarkRetry(ctx, ob.ID))
		var cur model.EngagementOutbox
		require.NoError(t, db.First(&cur, ob.ID).Error)
		assert.Equal(t, int8(0), cur.Status, "still pending while under the retry cap")
	}

	require.NoError(t, repo.MarkRetry(ctx, ob.ID))
	var cur model.EngagementOutbox
	require.NoError(t, db.First(&cur, ob.ID).Error)
	assert.Equal(t, int8(2), cur.Status)
	assert.Equal(t, 6, cur.Retry)

	rows, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows, "failed rows leave the drain queue")
}
