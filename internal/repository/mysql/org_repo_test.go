package mysql

import (
	"context"
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgCreateSeedsPresident(t *testing.T) {
	db := newTestDB(t)
	repo := &OrgRepository{DB: db}
	ctx := context.Background()

	org := &model.Organization{Name: "Robotics Club", CreatorID: 5, OrgType: model.OrgTypeClub, IsActive: true}
	require.NoError(t, repo.Create(ctx, org))
	assert.Equal(t, "robotics-club", org.Slug)

	memberRepo := &OrgMemberRepository{DB: db}
	m, err := memberRepo.Get(ctx, org.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, model.RolePresident, m.Role)
	assert.Equal(t, model.StatusActive, m.Status)

	got, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.MemberCount)
}

func TestOrgCreateDuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := &OrgRepository{DB: db}
	ctx := context.Background()

	first := &model.Organization{Name: "Robotics Club", CreatorID: 5, OrgType: model.OrgTypeClub, IsActive: true}
	require.NoError(t, repo.Create(ctx, first))

	// the name column is unique; the slug probe alone cannot save this,
	// and the error names the real collision
	dup := &model.Organization{Name: "Robotics Club", CreatorID: 6, OrgType: model.OrgTypeClub, IsActive: true}
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestOrgListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := &OrgRepository{DB: db}
	ctx := context.Background()

	club := &model.Organization{Name: "Chess Club", CreatorID: 1, OrgType: model.OrgTypeClub, IsActive: true}
	require.NoError(t, repo.Create(ctx, club))
	dept := &model.Organization{Name: "Physics Department", CreatorID: 1, OrgType: model.OrgTypeDepartment, IsActive: true}
	require.NoError(t, repo.Create(ctx, dept))
	hidden := &model.Organization{Name: "Archived Society", CreatorID: 1, OrgType: model.OrgTypeClub, IsActive: true}
	require.NoError(t, repo.Create(ctx, hidden))
	require.NoError(t, repo.SetActive(ctx, hidden.ID, false))

	list, err := repo.List(ctx, "", 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 2, "inactive orgs are hidden")

	list, err = repo.List(ctx, model.OrgTypeDepartment, 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, dept.ID, list[0].ID)
}

func TestSavedPostToggle(t *testing.T) {
	db := newTestDB(t)
	repo := &SavedPostRepository{DB: db}
	org := seedOrgWithMember(t, db, "book-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	p := seedPost(t, db, th.ID, 1, "Reading list", "reading-list", model.VisibilityPublic)
	ctx := context.Background()

	saved, err := repo.Toggle(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	is, err := repo.IsSaved(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.True(t, is)

	saved, err = repo.Toggle(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	list, err := repo.ListPosts(ctx, 2, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSavedPostListSkipsDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := &SavedPostRepository{DB: db}
	postRepo := &PostRepository{DB: db}
	org := seedOrgWithMember(t, db, "book-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	p := seedPost(t, db, th.ID, 1, "Reading list", "reading-list", model.VisibilityPublic)
	ctx := context.Background()

	_, err := repo.Toggle(ctx, 2, p.ID)
	require.NoError(t, err)
	require.NoError(t, postRepo.SoftDelete(ctx, p.ID))

	list, err := repo.ListPosts(ctx, 2, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, list, "bookmark survives but the post stays hidden")
}
