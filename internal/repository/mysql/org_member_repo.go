package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type OrgMemberRepository struct {
	DB *gorm.DB
}

func (r *OrgMemberRepository) Get(ctx context.Context, orgID, userID uint64) (*model.OrganizationMembership, error) {
	var m model.OrganizationMembership
	err := r.DB.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&m).Error
	return &m, err
}

func (r *OrgMemberRepository) GetByID(ctx context.Context, membershipID uint64) (*model.OrganizationMembership, error) {
	var m model.OrganizationMembership
	err := r.DB.WithContext(ctx).First(&m, membershipID).Error
	return &m, err
}

// RequestJoin runs the join state machine and reports the resulting status.
// changed=false means the request was an idempotent no-op (already active or
// already pending). Banned users are rejected with ErrBannedMember and no
// state change.
func (r *OrgMemberRepository) RequestJoin(ctx context.Context, orgID, userID uint64) (status string, changed bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var org model.Organization
		if err := tx.First(&org, orgID).Error; err != nil {
			return err
		}

		var m model.OrganizationMembership
		err := tx.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = model.OrganizationMembership{
				OrganizationID: orgID,
				UserID:         userID,
				Role:           model.RoleMember,
				Status:         model.StatusPending,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			status, changed = model.StatusPending, true
			return nil
		}
		if err != nil {
			return err
		}

		switch m.Status {
		case model.StatusBanned:
			return ErrBannedMember
		case model.StatusActive, model.StatusPending:
			// idempotent: report current state back
			status, changed = m.Status, false
			return nil
		case model.StatusInactive:
			if err := tx.Model(&m).Update("status", model.StatusPending).Error; err != nil {
				return err
			}
			status, changed = model.StatusPending, true
			return nil
		}
		return errors.New("unknown membership status")
	})
	return status, changed, err
}

// Approve flips pending -> active and recomputes the organization's member
// count in the same transaction, so a crash between the two is never
// observable.
func (r *OrgMemberRepository) Approve(ctx context.Context, membershipID, actorID uint64) (*model.OrganizationMembership, error) {
	var m model.OrganizationMembership
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, membershipID).Error; err != nil {
			return err
		}
		if m.Status != model.StatusPending {
			return ErrNotPending
		}
		res := tx.Model(&model.OrganizationMembership{}).
			Where("id = ? AND status = ?", m.ID, model.StatusPending).
			Update("status", model.StatusActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}
		m.Status = model.StatusActive
		if err := r.recountMembers(tx, m.OrganizationID); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventMembershipApproved, actorID, map[string]any{
			"membership_id": m.ID,
			"organization":  m.OrganizationID,
			"user":          m.UserID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Reject deletes a pending request outright.
func (r *OrgMemberRepository) Reject(ctx context.Context, membershipID, actorID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.OrganizationMembership
		if err := tx.First(&m, membershipID).Error; err != nil {
			return err
		}
		if m.Status != model.StatusPending {
			return ErrNotPending
		}
		if err := tx.Delete(&m).Error; err != nil {
			return err
		}
		if err := r.recountMembers(tx, m.OrganizationID); err != nil {
			return err
		}
		return insertOutbox(tx, model.EventMembershipRejected, actorID, map[string]any{
			"membership_id": m.ID,
			"organization":  m.OrganizationID,
			"user":          m.UserID,
		})
	})
}

// Leave flips active -> inactive. Leaving when not active is a no-op.
func (r *OrgMemberRepository) Leave(ctx context.Context, orgID, userID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.OrganizationMembership{}).
			Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, model.StatusActive).
			Update("status", model.StatusInactive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return r.recountMembers(tx, orgID)
	})
	return changed, err
}

// SetRole changes an active member's role. Counts are unaffected.
func (r *OrgMemberRepository) SetRole(ctx context.Context, membershipID uint64, role string) error {
	res := r.DB.WithContext(ctx).Model(&model.OrganizationMembership{}).
		Where("id = ?", membershipID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OrgMemberRepository) IsActiveMember(ctx context.Context, orgID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.OrganizationMembership{}).
		Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, model.StatusActive).
		Count(&n).Error
	return n > 0, err
}

func (r *OrgMemberRepository) IsStaff(ctx context.Context, orgID, userID uint64) (bool, error) {
	return r.HasAnyRole(ctx, orgID, userID, model.StaffRoles)
}

func (r *OrgMemberRepository) HasAnyRole(ctx context.Context, orgID, userID uint64, roles []string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.OrganizationMembership{}).
		Where("organization_id = ? AND user_id = ? AND status = ? AND role IN ?",
			orgID, userID, model.StatusActive, roles).
		Count(&n).Error
	return n > 0, err
}

func (r *OrgMemberRepository) ListByOrg(ctx context.Context, orgID uint64, offset, limit int) ([]model.OrganizationMembership, error) {
	var list []model.OrganizationMembership
	err := r.DB.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// recountMembers rewrites member_count from an exact count of active rows.
// Recompute, never increment: the counter self-heals against any write that
// bypassed the join/approve path.
func (r *OrgMemberRepository) recountMembers(tx *gorm.DB, orgID uint64) error {
	var n int64
	if err := tx.Model(&model.OrganizationMembership{}).
		Where("organization_id = ? AND status = ?", orgID, model.StatusActive).
		Count(&n).Error; err != nil {
		return err
	}
	return tx.Model(&model.Organization{}).
		Where("id = ?", orgID).
		UpdateColumn("member_count", n).Error
}

func insertOutbox(tx *gorm.DB, eventType string, actorID uint64, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&model.EngagementOutbox{
		EventType: eventType,
		ActorID:   actorID,
		Payload:   string(raw),
	}).Error
}
