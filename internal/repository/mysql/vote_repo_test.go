package mysql

import (
	"context"
	"sync"
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voteFixture(t *testing.T) (*VoteRepository, *model.Post) {
	t.Helper()
	db := newTestDB(t)
	org := seedOrgWithMember(t, db, "chess-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	p := seedPost(t, db, th.ID, 1, "Hello", "hello", model.VisibilityPublic)
	return &VoteRepository{DB: db}, p
}

func TestVoteApplyFirstVote(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	res, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Upvotes)
	assert.Equal(t, int64(0), res.Downvotes)
	assert.Equal(t, int64(1), res.Score)

	prev, err := repo.Previous(ctx, 2, model.TargetPost, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VoteUp, prev)
}

func TestVoteApplyToggleOff(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	_, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	res, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Upvotes)
	assert.Equal(t, int64(0), res.Score)

	prev, err := repo.Previous(ctx, 2, model.TargetPost, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, prev)
}

// Switching direction moves the counters by two in one step and never
// leaves an intermediate state behind.
func TestVoteApplySwitchDirection(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	_, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	res, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionDown)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Upvotes)
	assert.Equal(t, int64(1), res.Downvotes)
	assert.Equal(t, int64(-1), res.Score)

	var n int64
	require.NoError(t, repo.DB.Model(&model.Vote{}).
		Where("user_id = ? AND target_id = ?", 2, p.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "one ledger row per voter and target")
}

func TestVoteApplyFullScenario(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	// up, down, clear leaves everything where it started
	_, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	_, err = repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionDown)
	require.NoError(t, err)
	res, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionClear)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Upvotes)
	assert.Equal(t, int64(0), res.Downvotes)

	prev, err := repo.Previous(ctx, 2, model.TargetPost, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, prev)
}

func TestVoteApplyClearWithoutVote(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	res, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionClear)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Upvotes)
	assert.Equal(t, int64(0), res.Downvotes)
}

// Repeated clears never drive a counter negative, even when the stored
// counter was already behind the ledger.
func TestVoteApplyCounterFloor(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	// ledger row without a matching counter increment
	mustCreate(t, repo.DB, &model.Vote{
		UserID: 3, TargetKind: model.TargetPost, TargetID: p.ID, Value: model.VoteUp,
	})

	res, err := repo.Apply(ctx, 3, model.TargetPost, p.ID, model.ActionClear)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Upvotes, "clamped at zero")
	assert.Equal(t, int64(0), res.Downvotes)
}

func TestVoteApplyCommentTarget(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()
	c := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "first"}
	mustCreate(t, repo.DB, c)

	res, err := repo.Apply(ctx, 2, model.TargetComment, c.ID, model.ActionDown)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Downvotes)

	// the same voter's post and comment votes are independent rows
	_, err = repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)
	prev, err := repo.Previous(ctx, 2, model.TargetComment, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VoteDown, prev)
}

func TestVoteApplyRejectsBadInput(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	_, err := repo.Apply(ctx, 2, "thread", p.ID, model.ActionUp)
	assert.ErrorIs(t, err, ErrBadTargetKind)

	_, err = repo.Apply(ctx, 2, model.TargetPost, p.ID, "sideways")
	assert.ErrorIs(t, err, ErrBadVoteAction)

	_, err = repo.Apply(ctx, 2, model.TargetPost, 99999, model.ActionUp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoteApplyConcurrentVoters(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Apply(ctx, uint64(10+i), model.TargetPost, p.ID, model.ActionUp)
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	res, err := repo.Counters(ctx, model.TargetPost, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Upvotes, "no lost update")
	assert.Equal(t, int64(0), res.Downvotes)
}

func TestVoteApplyWritesOutbox(t *testing.T) {
	repo, p := voteFixture(t)
	ctx := context.Background()

	_, err := repo.Apply(ctx, 2, model.TargetPost, p.ID, model.ActionUp)
	require.NoError(t, err)

	var rows []model.EngagementOutbox
	require.NoError(t, repo.DB.Where("event_type = ?", model.EventVoteApplied).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(2), rows[0].ActorID)

	// a no-op clear adds nothing
	_, err = repo.Apply(ctx, 4, model.TargetPost, p.ID, model.ActionClear)
	require.NoError(t, err)
	var n int64
	require.NoError(t, repo.DB.Model(&model.EngagementOutbox{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
