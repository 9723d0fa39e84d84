package mysql

import (
	"context"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type OrgRepository struct {
	DB *gorm.DB
}

// Create inserts the organization and makes the creator an active president
// in the same transaction.
func (r *OrgRepository) Create(ctx context.Context, org *model.Organization) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := OrgSlugs(tx).Assign(ctx, org.Name, org.Slug, true, 0)
		if err != nil {
			return err
		}
		org.Slug = slug

		if err := tx.Create(org).Error; err != nil {
			if isDuplicate(err) {
				// name and slug are both uniquely indexed; report the one
				// that actually collided
				var n int64
				if cErr := tx.Model(&model.Organization{}).
					Where("name = ?", org.Name).Count(&n).Error; cErr == nil && n > 0 {
					return ErrNameTaken
				}
				return ErrSlugConflict
			}
			return err
		}

		m := &model.OrganizationMembership{
			OrganizationID: org.ID,
			UserID:         org.CreatorID,
			Role:           model.RolePresident,
			Status:         model.StatusActive,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		memberRepo := &OrgMemberRepository{DB: tx}
		return memberRepo.recountMembers(tx, org.ID)
	})
}

func (r *OrgRepository) FindByID(ctx context.Context, id uint64) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.WithContext(ctx).First(&org, id).Error
	return &org, err
}

func (r *OrgRepository) FindBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	return &org, err
}

func (r *OrgRepository) List(ctx context.Context, orgType string, offset, limit int) ([]model.Organization, error) {
	var list []model.Organization
	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if orgType != "" {
		q = q.Where("org_type = ?", orgType)
	}
	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *OrgRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.DB.WithContext(ctx).Model(&model.Organization{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
