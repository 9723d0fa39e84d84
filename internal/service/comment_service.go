package service

import (
	"context"
	"errors"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
)

type CommentService struct {
	repo          *mysql.CommentRepository
	postRepo      *mysql.PostRepository
	threadRepo    *mysql.ThreadRepository
	orgMemberRepo *mysql.OrgMemberRepository
}

func NewCommentService() *CommentService {
	return &CommentService{
		repo:          &mysql.CommentRepository{DB: mysql.DB},
		postRepo:      &mysql.PostRepository{DB: mysql.DB},
		threadRepo:    &mysql.ThreadRepository{DB: mysql.DB},
		orgMemberRepo: &mysql.OrgMemberRepository{DB: mysql.DB},
	}
}

// Create requires the commenter to be able to view the post, and rejects
// locked posts. Level/path are derived in the repository.
func (s *CommentService) Create(ctx context.Context, userID, postID uint64, parentID *uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, errors.New("content required")
	}
	p, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.IsLocked {
		return nil, ErrLocked
	}
	ok, err := s.postRepo.CanView(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	c := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByPost enforces the same visibility as the post itself.
func (s *CommentService) ListByPost(ctx context.Context, viewerID, postID uint64, page, size int) ([]model.Comment, error) {
	p, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.postRepo.CanView(ctx, viewerID, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	return s.repo.ListByPost(ctx, postID, (page-1)*size, size)
}

// Delete soft-deletes; author or org staff only.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint64) error {
	c, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != userID {
		p, err := s.postRepo.FindByID(ctx, c.PostID)
		if err != nil {
			return err
		}
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
	return s.repo.SoftDelete(ctx, commentID)
}
