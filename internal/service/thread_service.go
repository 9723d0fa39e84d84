package service

import (
	"context"
	"errors"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
)

type ThreadService struct {
	repo          *mysql.ThreadRepository
	orgMemberRepo *mysql.OrgMemberRepository
	memberRepo    *mysql.ThreadMemberRepository
}

func NewThreadService() *ThreadService {
	return &ThreadService{
		repo:          &mysql.ThreadRepository{DB: mysql.DB},
		orgMemberRepo: &mysql.OrgMemberRepository{DB: mysql.DB},
		memberRepo:    &mysql.ThreadMemberRepository{DB: mysql.DB},
	}
}

var threadTypes = map[string]bool{
	model.ThreadTypeDiscussion:   true,
	model.ThreadTypeAnnouncement: true,
	model.ThreadTypeQuestion:     true,
}

// Create requires an approved organization membership. The repository
// activates the creator's thread membership in the insert transaction.
func (s *ThreadService) Create(ctx context.Context, userID, orgID uint64, title, description, threadType string) (*model.Thread, error) {
	if title == "" {
		return nil, errors.New("title required")
	}
	if threadType == "" {
		threadType = model.ThreadTypeDiscussion
	}
	if !threadTypes[threadType] {
		return nil, errors.New("unknown thread type")
	}

	ok, err := s.orgMemberRepo.IsActiveMember(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	t := &model.Thread{
		OrganizationID: orgID,
		CreatorID:      userID,
		Title:          title,
		Description:    description,
		ThreadType:     threadType,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ThreadService) GetBySlug(ctx context.Context, slug string) (*model.Thread, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *ThreadService) ListByOrg(ctx context.Context, orgID uint64, page, size int) ([]model.Thread, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListByOrg(ctx, orgID, (page-1)*size, size)
}

// Join enforces the parent-org invariant at join time: only users with an
// active organization membership may join one of its threads. A later org
// revocation does not cascade here.
func (s *ThreadService) Join(ctx context.Context, userID, threadID uint64) (string, bool, error) {
	t, err := s.repo.FindByID(ctx, threadID)
	if err != nil {
		return "", false, err
	}
	ok, err := s.orgMemberRepo.IsActiveMember(ctx, t.OrganizationID, userID)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, ErrForbidden
	}
	return s.memberRepo.Join(ctx, threadID, userID)
}

func (s *ThreadService) Leave(ctx context.Context, userID, threadID uint64) (bool, error) {
	return s.memberRepo.Leave(ctx, threadID, userID)
}

// UpdateTitle edits the title; the slug is re-validated, not regenerated.
// Creator or org staff only.
func (s *ThreadService) UpdateTitle(ctx context.Context, userID, threadID uint64, title string) error {
	if title == "" {
		return errors.New("title required")
	}
	if err := s.requireStaffOrCreator(ctx, userID, threadID); err != nil {
		return err
	}
	return s.repo.UpdateTitle(ctx, threadID, title)
}

func (s *ThreadService) SetPinned(ctx context.Context, userID, threadID uint64, pinned bool) error {
	if err := s.requireStaff(ctx, userID, threadID); err != nil {
		return err
	}
	return s.repo.SetPinned(ctx, threadID, pinned)
}

func (s *ThreadService) SetLocked(ctx context.Context, userID, threadID uint64, locked bool) error {
	if err := s.requireStaff(ctx, userID, threadID); err != nil {
		return err
	}
	return s.repo.SetLocked(ctx, threadID, locked)
}

func (s *ThreadService) requireStaff(ctx context.Context, userID, threadID uint64) error {
	t, err := s.repo.FindByID(ctx, threadID)
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
	return nil
}

func (s *ThreadService) requireStaffOrCreator(ctx context.Context, userID, threadID uint64) error {
	t, err := s.repo.FindByID(ctx, threadID)
	if err != nil {
		return err
	}
	if t.CreatorID == userID {
		return nil
	}
	staff, err := s.orgMemberRepo.IsStaff(ctx, t.OrganizationID, userID)
	if err != nil {
		return err
	}
	if !staff {
		return ErrForbidden
	}
	return nil
}
