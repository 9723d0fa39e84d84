package mysql

import (
	"context"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

// slugRetries bounds retries when an insert loses a slug race to a
// concurrent creation with a colliding title.
const slugRetries = 3

type ThreadRepository struct {
	DB *gorm.DB
}

// Create assigns a unique slug, inserts the thread, and activates the
// creator's membership, all in one transaction so a thread can never exist
// without its creator as a member. Losing the probe-then-insert race
// surfaces as a unique violation; the whole assign+insert is retried with a
// fresh probe a bounded number of times.
func (r *ThreadRepository) Create(ctx context.Context, t *model.Thread) error {
	var err error
	for i := 0; i < slugRetries; i++ {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			slug, err := ThreadSlugs(tx).Assign(ctx, t.Title, "", true, 0)
			if err != nil {
				return err
			}
			t.Slug = slug
			if err := tx.Create(t).Error; err != nil {
				if isDuplicate(err) {
					return ErrSlugConflict
				}
				return err
			}
			return tx.Create(&model.ThreadMembership{
				ThreadID: t.ID,
				UserID:   t.CreatorID,
				Role:     model.RoleMember,
				Status:   model.StatusActive,
			}).Error
		})
		if err != ErrSlugConflict {
			return err
		}
		t.ID = 0 // reset for the retry insert
	}
	return err
}

func (r *ThreadRepository) FindByID(ctx context.Context, id uint64) (*model.Thread, error) {
	var t model.Thread
	err := r.DB.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *ThreadRepository) FindBySlug(ctx context.Context, slug string) (*model.Thread, error) {
	var t model.Thread
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	return &t, err
}

func (r *ThreadRepository) ListByOrg(ctx context.Context, orgID uint64, offset, limit int) ([]model.Thread, error) {
	var list []model.Thread
	err := r.DB.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("is_pinned DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// UpdateTitle re-validates the slug against other rows but keeps it unless
// it now collides (or was blank).
func (r *ThreadRepository) UpdateTitle(ctx context.Context, id uint64, title string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Thread
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		slug, err := ThreadSlugs(tx).Assign(ctx, title, t.Slug, false, t.ID)
		if err != nil {
			return err
		}
		updates := map[string]any{"title": title, "slug": slug}
		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				return ErrSlugConflict
			}
			return err
		}
		return nil
	})
}

func (r *ThreadRepository) SetPinned(ctx context.Context, id uint64, pinned bool) error {
	return r.DB.WithContext(ctx).Model(&model.Thread{}).
		Where("id = ?", id).Update("is_pinned", pinned).Error
}

func (r *ThreadRepository) SetLocked(ctx context.Context, id uint64, locked bool) error {
	return r.DB.WithContext(ctx).Model(&model.Thread{}).
		Where("id = ?", id).Update("is_locked", locked).Error
}

// recountPosts rewrites post_count from an exact count of live posts.
func recountPosts(tx *gorm.DB, threadID uint64) error {
	var n int64
	if err := tx.Model(&model.Post{}).
		Where("thread_id = ? AND is_deleted = ?", threadID, false).
		Count(&n).Error; err != nil {
		return err
	}
	return tx.Model(&model.Thread{}).
		Where("id = ?", threadID).
		UpdateColumn("post_count", n).Error
}
