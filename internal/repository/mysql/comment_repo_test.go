package mysql

import (
	"context"
	"strings"
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentFixture(t *testing.T) (*CommentRepository, *model.Post) {
	t.Helper()
	db := newTestDB(t)
	org := seedOrgWithMember(t, db, "book-club", 1)
	th := seedThread(t, db, org.ID, 1, "General", "general")
	p := seedPost(t, db, th.ID, 1, "Discussion", "discussion", model.VisibilityPublic)
	return &CommentRepository{DB: db}, p
}

func TestCommentCreateDerivesLevelAndPath(t *testing.T) {
	repo, p := commentFixture(t)
	ctx := context.Background()

	root := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "root"}
	require.NoError(t, repo.Create(ctx, root))
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, "", root.Path)

	reply := &model.Comment{PostID: p.ID, AuthorID: 2, ParentID: &root.ID, Content: "reply"}
	// caller-supplied values are ignored
	reply.Level, reply.Path = 42, "bogus"
	require.NoError(t, repo.Create(ctx, reply))
	assert.Equal(t, 1, reply.Level)
	assert.Equal(t, childPath("", root.ID), reply.Path)

	deep := &model.Comment{PostID: p.ID, AuthorID: 1, ParentID: &reply.ID, Content: "deeper"}
	require.NoError(t, repo.Create(ctx, deep))
	assert.Equal(t, 2, deep.Level)
	assert.Equal(t, childPath(reply.Path, reply.ID), deep.Path)
}

func TestCommentCreateRejectsCrossPostParent(t *testing.T) {
	repo, p := commentFixture(t)
	ctx := context.Background()
	org := seedOrgWithMember(t, repo.DB, "other-club", 1)
	th2 := seedThread(t, repo.DB, org.ID, 1, "Other", "other")
	p2 := seedPost(t, repo.DB, th2.ID, 1, "Elsewhere", "elsewhere", model.VisibilityPublic)

	root := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "root"}
	require.NoError(t, repo.Create(ctx, root))

	bad := &model.Comment{PostID: p2.ID, AuthorID: 1, ParentID: &root.ID, Content: "stray"}
	err := repo.Create(ctx, bad)
	assert.Error(t, err)
}

func TestCommentListTreeOrder(t *testing.T) {
	repo, p := commentFixture(t)
	ctx := context.Background()

	first := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "first root"}
	require.NoError(t, repo.Create(ctx, first))
	second := &model.Comment{PostID: p.ID, AuthorID: 2, Content: "second root"}
	require.NoError(t, repo.Create(ctx, second))
	replyFirst := &model.Comment{PostID: p.ID, AuthorID: 2, ParentID: &first.ID, Content: "reply to first"}
	require.NoError(t, repo.Create(ctx, replyFirst))

	list, err := repo.ListByPost(ctx, p.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// roots sort together on the empty path, replies group after by
	// ancestor chain
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, replyFirst.ID, list[2].ID)
}

func TestCommentSoftDeleteRecounts(t *testing.T) {
	repo, p := commentFixture(t)
	ctx := context.Background()

	c1 := &model.Comment{PostID: p.ID, AuthorID: 1, Content: "one"}
	require.NoError(t, repo.Create(ctx, c1))
	c2 := &model.Comment{PostID: p.ID, AuthorID: 2, Content: "two"}
	require.NoError(t, repo.Create(ctx, c2))

	var cur model.Post
	require.NoError(t, repo.DB.First(&cur, p.ID).Error)
	assert.Equal(t, int64(2), cur.CommentCount)

	require.NoError(t, repo.SoftDelete(ctx, c1.ID))
	require.NoError(t, repo.DB.First(&cur, p.ID).Error)
	assert.Equal(t, int64(1), cur.CommentCount)

	list, err := repo.ListByPost(ctx, p.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c2.ID, list[0].ID)
}

func TestChildPathKeepsTail(t *testing.T) {
	assert.Equal(t, "7", childPath("", 7))
	assert.Equal(t, "7/9", childPath("7", 9))

	// a chain at the limit drops leading ancestors, never the tail
	long := strings.TrimPrefix(strings.Repeat("/1234567890", 25), "/")
	got := childPath(long, 42)
	assert.LessOrEqual(t, len(got), model.MaxCommentPathLen)
	assert.True(t, strings.HasSuffix(got, "/42"))

	// one oversized ancestor segment is dropped entirely rather than split
	huge := strings.Repeat("9", 300)
	assert.Equal(t, "7", childPath(huge, 7))
}
