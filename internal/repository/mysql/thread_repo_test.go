package mysql

import (
	"context"
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadCreateAssignsSlug(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	ctx := context.Background()

	a := &model.Thread{OrganizationID: org.ID, CreatorID: 1, Title: "Weekly Games", ThreadType: model.ThreadTypeDiscussion}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, "weekly-games", a.Slug)

	b := &model.Thread{OrganizationID: org.ID, CreatorID: 1, Title: "Weekly Games", ThreadType: model.ThreadTypeDiscussion}
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, "weekly-games-1", b.Slug)
}

// The creator's membership commits with the thread row, so no thread can
// exist whose creator is not an active member.
func TestThreadCreateSeedsCreatorMembership(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadRepository{DB: db}
	memberRepo := &ThreadMemberRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	ctx := context.Background()

	th := &model.Thread{OrganizationID: org.ID, CreatorID: 1, Title: "Openings", ThreadType: model.ThreadTypeDiscussion}
	require.NoError(t, repo.Create(ctx, th))

	active, err := memberRepo.IsActiveMember(ctx, th.ID, 1)
	require.NoError(t, err)
	assert.True(t, active)

	m, err := memberRepo.Get(ctx, th.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, m.Role)
}

func TestThreadUpdateTitleKeepsSlug(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	ctx := context.Background()

	th := &model.Thread{OrganizationID: org.ID, CreatorID: 1, Title: "Weekly Games", ThreadType: model.ThreadTypeDiscussion}
	require.NoError(t, repo.Create(ctx, th))

	require.NoError(t, repo.UpdateTitle(ctx, th.ID, "Monthly Games"))
	got, err := repo.FindByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly Games", got.Title)
	assert.Equal(t, "weekly-games", got.Slug, "rename does not move the permalink")
}

func TestThreadListByOrgPinnedFirst(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	ctx := context.Background()

	plain := seedThread(t, db, org.ID, 1, "Plain", "plain")
	pinned := seedThread(t, db, org.ID, 1, "Rules", "rules")
	require.NoError(t, repo.SetPinned(ctx, pinned.ID, true))

	list, err := repo.ListByOrg(ctx, org.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, pinned.ID, list[0].ID)
	assert.Equal(t, plain.ID, list[1].ID)
}

func TestThreadMembershipJoinLeave(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadMemberRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	ctx := context.Background()

	status, changed, err := repo.Join(ctx, th.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, status, "thread joins skip approval")
	assert.True(t, changed)

	status, changed, err = repo.Join(ctx, th.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, status)
	assert.False(t, changed)

	changed, err = repo.Leave(ctx, th.ID, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	active, err := repo.IsActiveMember(ctx, th.ID, 2)
	require.NoError(t, err)
	assert.False(t, active)

	// rejoin reactivates the same row
	status, changed, err = repo.Join(ctx, th.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, status)
	assert.True(t, changed)

	var n int64
	require.NoError(t, db.Model(&model.ThreadMembership{}).
		Where("thread_id = ? AND user_id = ?", th.ID, 2).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestThreadMembershipBanned(t *testing.T) {
	db := newTestDB(t)
	repo := &ThreadMemberRepository{DB: db}
	org := seedOrgWithMember(t, db, "chess-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	ctx := context.Background()

	mustCreate(t, db, &model.ThreadMembership{
		ThreadID: th.ID, UserID: 2,
		Role: model.RoleMember, Status: model.StatusBanned,
	})
	_, _, err := repo.Join(ctx, th.ID, 2)
	assert.ErrorIs(t, err, ErrBannedMember)
}
