package service

import (
	"context"
	"errors"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
)

type OrgService struct {
	repo       *mysql.OrgRepository
	memberRepo *mysql.OrgMemberRepository
	userRepo   *mysql.UserRepository
	emailSvc   *EmailService
}

func NewOrgService(emailSvc *EmailService) *OrgService {
	return &OrgService{
		repo:       &mysql.OrgRepository{DB: mysql.DB},
		memberRepo: &mysql.OrgMemberRepository{DB: mysql.DB},
		userRepo:   &mysql.UserRepository{DB: mysql.DB},
		emailSvc:   emailSvc,
	}
}

var orgTypes = map[string]bool{
	model.OrgTypeClub:        true,
	model.OrgTypeSociety:     true,
	model.OrgTypeAssociation: true,
	model.OrgTypeCommittee:   true,
	model.OrgTypeDepartment:  true,
}

func (s *OrgService) Create(ctx context.Context, userID uint64, name, description, orgType string) (*model.Organization, error) {
	if name == "" {
		return nil, errors.New("organization name required")
	}
	if orgType == "" {
		orgType = model.OrgTypeClub
	}
	if !orgTypes[orgType] {
		return nil, errors.New("unknown organization type")
	}
	org := &model.Organization{
		Name:        name,
		Description: description,
		CreatorID:   userID,
		OrgType:     orgType,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrgService) List(ctx context.Context, orgType string, page, size int) ([]model.Organization, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.List(ctx, orgType, (page-1)*size, size)
}

func (s *OrgService) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// Join runs the membership request state machine; the returned status is
// what the caller should display ("pending", "active", ...).
func (s *OrgService) Join(ctx context.Context, userID, orgID uint64) (string, bool, error) {
	if userID == 0 || orgID == 0 {
		return "", false, ErrInvalidInput
	}
	return s.memberRepo.RequestJoin(ctx, orgID, userID)
}

func (s *OrgService) Leave(ctx context.Context, userID, orgID uint64) (bool, error) {
	return s.memberRepo.Leave(ctx, orgID, userID)
}

// Members lists all memberships of an org; staff only.
func (s *OrgService) Members(ctx context.Context, actorID, orgID uint64, page, size int) ([]model.OrganizationMembership, error) {
	staff, err := s.memberRepo.IsStaff(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, ErrForbidden
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 25
	}
	return s.memberRepo.ListByOrg(ctx, orgID, (page-1)*size, size)
}

// Approve flips a pending request to active. Staff only; the member count
// recompute commits with the flip. The notification email is best effort.
func (s *OrgService) Approve(ctx context.Context, actorID, membershipID uint64) error {
	m, err := s.memberRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	staff, err := s.memberRepo.IsStaff(ctx, m.OrganizationID, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return ErrForbidden
	}
	approved, err := s.memberRepo.Approve(ctx, membershipID, actorID)
	if err != nil {
		return err
	}
	if user, err := s.userRepo.FindByID(ctx, approved.UserID); err == nil {
		if org, err := s.repo.FindByID(ctx, approved.OrganizationID); err == nil {
			_ = s.emailSvc.NotifyApproved(user.Email, org.Name)
		}
	}
	return nil
}

func (s *OrgService) Reject(ctx context.Context, actorID, membershipID uint64) error {
	m, err := s.memberRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	staff, err := s.memberRepo.IsStaff(ctx, m.OrganizationID, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return ErrForbidden
	}
	return s.memberRepo.Reject(ctx, membershipID, actorID)
}

var memberRoles = map[string]bool{
	model.RoleMember:        true,
	model.RoleModerator:     true,
	model.RoleAdmin:         true,
	model.RolePresident:     true,
	model.RoleVicePresident: true,
	model.RoleSecretary:     true,
	model.RoleTreasurer:     true,
}

func (s *OrgService) SetRole(ctx context.Context, actorID, membershipID uint64, role string) error {
	if !memberRoles[role] {
		return errors.New("unknown role")
	}
	m, err := s.memberRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	staff, err := s.memberRepo.IsStaff(ctx, m.OrganizationID, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return ErrForbidden
	}
	return s.memberRepo.SetRole(ctx, membershipID, role)
}
