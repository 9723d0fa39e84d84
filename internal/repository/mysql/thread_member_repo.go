package mysql

import (
	"context"
	"errors"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type ThreadMemberRepository struct {
	DB *gorm.DB
}

func (r *ThreadMemberRepository) Get(ctx context.Context, threadID, userID uint64) (*model.ThreadMembership, error) {
	var m model.ThreadMembership
	err := r.DB.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		First(&m).Error
	return &m, err
}

// Join activates a thread membership directly; the caller has already
// checked the parent organization membership. Same machine as the org side,
// except no approval step and no cached count to maintain.
func (r *ThreadMemberRepository) Join(ctx context.Context, threadID, userID uint64) (status string, changed bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ThreadMembership
		err := tx.Where("thread_id = ? AND user_id = ?", threadID, userID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = model.ThreadMembership{
				ThreadID: threadID,
				UserID:   userID,
				Role:     model.RoleMember,
				Status:   model.StatusActive,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			status, changed = model.StatusActive, true
			return nil
		}
		if err != nil {
			return err
		}

		switch m.Status {
		case model.StatusBanned:
			return ErrBannedMember
		case model.StatusActive:
			status, changed = m.Status, false
			return nil
		case model.StatusPending, model.StatusInactive:
			if err := tx.Model(&m).Update("status", model.StatusActive).Error; err != nil {
				return err
			}
			status, changed = model.StatusActive, true
			return nil
		}
		return errors.New("unknown membership status")
	})
	return status, changed, err
}

func (r *ThreadMemberRepository) Leave(ctx context.Context, threadID, userID uint64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.ThreadMembership{}).
		Where("thread_id = ? AND user_id = ? AND status = ?", threadID, userID, model.StatusActive).
		Update("status", model.StatusInactive)
	return res.RowsAffected > 0, res.Error
}

func (r *ThreadMemberRepository) IsActiveMember(ctx context.Context, threadID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.ThreadMembership{}).
		Where("thread_id = ? AND user_id = ? AND status = ?", threadID, userID, model.StatusActive).
		Count(&n).Error
	return n > 0, err
}
