package service

import (
	"context"
	"errors"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
	"CampusConnect/internal/repository/redis"
)

type PostService struct {
	repo             *mysql.PostRepository
	threadRepo       *mysql.ThreadRepository
	orgMemberRepo    *mysql.OrgMemberRepository
	threadMemberRepo *mysql.ThreadMemberRepository
	savedRepo        *mysql.SavedPostRepository
	cache            *redis.EngagementCache
}

func NewPostService() *PostService {
	return &PostService{
		repo:             &mysql.PostRepository{DB: mysql.DB},
		threadRepo:       &mysql.ThreadRepository{DB: mysql.DB},
		orgMemberRepo:    &mysql.OrgMemberRepository{DB: mysql.DB},
		threadMemberRepo: &mysql.ThreadMemberRepository{DB: mysql.DB},
		savedRepo:        &mysql.SavedPostRepository{DB: mysql.DB},
		cache:            redis.NewEngagementCache(),
	}
}

var postTypes = map[string]bool{
	model.PostTypeText:  true,
	model.PostTypeImage: true,
	model.PostTypeVideo: true,
	model.PostTypeLink:  true,
	model.PostTypePoll:  true,
	model.PostTypeEvent: true,
}

var visibilityTiers = map[string]bool{
	model.VisibilityThread:       true,
	model.VisibilityOrganization: true,
	model.VisibilityPublic:       true,
}

// Create requires active memberships in both the thread and its parent
// organization, and rejects locked threads.
func (s *PostService) Create(ctx context.Context, userID, threadID uint64, title, content, postType, visibility string) (*model.Post, error) {
	if title == "" {
		return nil, errors.New("title required")
	}
	if postType == "" {
		postType = model.PostTypeText
	}
	if !postTypes[postType] {
		return nil, errors.New("unknown post type")
	}
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	if !visibilityTiers[visibility] {
		return nil, errors.New("unknown visibility tier")
	}

	t, err := s.threadRepo.FindByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked {
		return nil, ErrLocked
	}
	inThread, err := s.threadMemberRepo.IsActiveMember(ctx, threadID, userID)
	if err != nil {
		return nil, err
	}
	inOrg, err := s.orgMemberRepo.IsActiveMember(ctx, t.OrganizationID, userID)
	if err != nil {
		return nil, err
	}
	if !inThread || !inOrg {
		return nil, ErrForbidden
	}

	p := &model.Post{
		ThreadID:   threadID,
		AuthorID:   userID,
		Title:      title,
		Content:    content,
		PostType:   postType,
		Visibility: visibility,
		IsApproved: true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Detail fetches a post, enforces visibility, and buffers one view.
func (s *PostService) Detail(ctx context.Context, viewerID uint64, slug string) (*model.Post, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.CanView(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	_ = s.cache.IncrView(ctx, p.ID)
	return p, nil
}

// Edit is author-only. The slug is re-validated, never regenerated.
func (s *PostService) Edit(ctx context.Context, userID, postID uint64, title, content string) error {
	if title == "" {
		return errors.New("title required")
	}
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != userID {
		return ErrForbidden
	}
	if p.IsLocked {
		return ErrLocked
	}
	return s.repo.Update(ctx, postID, title, content)
}

// Delete soft-deletes; allowed for the author or staff of the owning org.
func (s *PostService) Delete(ctx context.Context, userID, postID uint64) error {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			// already deleted or never existed: idempotent
			return nil
		}
		return err
	}
	if p.AuthorID != userID {
		t, err := s.threadRepo.FindByID(ctx, p.ThreadID)
		if err != nil {
			return err
		}
		staff, err := s.orgMemberRepo.IsStaff(ctx, t.OrganizationID, userID)
		if err != nil {
			return err
		}
		if !staff {
			return ErrForbidden
		}
	}
	return s.repo.SoftDelete(ctx, postID)
}

func (s *PostService) ToggleSave(ctx context.Context, userID, postID uint64) (bool, error) {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		return false, err
	}
	return s.savedRepo.Toggle(ctx, userID, postID)
}

func (s *PostService) SavedList(ctx context.Context, userID uint64, page, size int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.savedRepo.ListPosts(ctx, userID, (page-1)*size, size)
}
