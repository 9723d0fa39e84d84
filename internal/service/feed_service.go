package service

import (
	"context"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
)

// FeedService composes the visibility-scoped post query with an ordering
// mode. viewerID 0 is the anonymous viewer.
type FeedService struct {
	repo          *mysql.PostRepository
	orgMemberRepo *mysql.OrgMemberRepository
}

func NewFeedService() *FeedService {
	return &FeedService{
		repo:          &mysql.PostRepository{DB: mysql.DB},
		orgMemberRepo: &mysql.OrgMemberRepository{DB: mysql.DB},
	}
}

func normalizeFeed(mode string, page, size int) (string, int, int) {
	if mode != mysql.FeedLatest {
		mode = mysql.FeedPopular
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return mode, (page - 1) * size, size
}

func (s *FeedService) Home(ctx context.Context, viewerID uint64, mode string, page, size int) ([]model.Post, error) {
	mode, offset, limit := normalizeFeed(mode, page, size)
	return s.repo.ListVisible(ctx, viewerID, mode, offset, limit)
}

func (s *FeedService) Thread(ctx context.Context, viewerID, threadID uint64, mode string, page, size int) ([]model.Post, error) {
	mode, offset, limit := normalizeFeed(mode, page, size)
	return s.repo.ListVisibleByThread(ctx, viewerID, threadID, mode, offset, limit)
}

// OrgPosts is the privileged staff listing: every live post under the org,
// all visibility tiers.
func (s *FeedService) OrgPosts(ctx context.Context, actorID, orgID uint64, page, size int) ([]model.Post, error) {
	staff, err := s.orgMemberRepo.IsStaff(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, ErrForbidden
	}
	_, offset, limit := normalizeFeed("", page, size)
	return s.repo.ListByOrg(ctx, orgID, offset, limit)
}
