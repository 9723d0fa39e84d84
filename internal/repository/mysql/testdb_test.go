package mysql

import (
	"testing"

	"CampusConnect/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single pooled
// connection keeps every statement on the same in-memory instance and
// serializes concurrent transactions.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.OrganizationMembership{},
		&model.Thread{},
		&model.ThreadMembership{},
		&model.Post{},
		&model.SavedPost{},
		&model.Comment{},
		&model.Vote{},
		&model.EngagementOutbox{},
	))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	require.NoError(t, db.Create(v).Error)
}

// seedOrgWithMember sets up an organization with one active member and
// returns both. The member doubles as the creator.
func seedOrgWithMember(t *testing.T, db *gorm.DB, name string, userID uint64) *model.Organization {
	t.Helper()
	org := &model.Organization{Name: name, Slug: name, CreatorID: userID, OrgType: model.OrgTypeClub, IsActive: true}
	mustCreate(t, db, org)
	mustCreate(t, db, &model.OrganizationMembership{
		OrganizationID: org.ID, UserID: userID,
		Role: model.RolePresident, Status: model.StatusActive,
	})
	return org
}

func seedThread(t *testing.T, db *gorm.DB, orgID, creatorID uint64, title, slug string) *model.Thread {
	t.Helper()
	th := &model.Thread{
		OrganizationID: orgID, CreatorID: creatorID,
		Title: title, Slug: slug, ThreadType: model.ThreadTypeDiscussion,
	}
	mustCreate(t, db, th)
	mustCreate(t, db, &model.ThreadMembership{
		ThreadID: th.ID, UserID: creatorID,
		Role: model.RoleMember, Status: model.StatusActive,
	})
	return th
}

func seedPost(t *testing.T, db *gorm.DB, threadID, authorID uint64, title, slug, visibility string) *model.Post {
	t.Helper()
	p := &model.Post{
		ThreadID: threadID, AuthorID: authorID,
		Title: title, Slug: slug,
		PostType: model.PostTypeText, Visibility: visibility, IsApproved: true,
	}
	mustCreate(t, db, p)
	return p
}
