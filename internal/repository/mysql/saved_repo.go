package mysql

import (
	"context"
	"errors"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type SavedPostRepository struct {
	DB *gorm.DB
}

// Toggle flips the bookmark: delete the row if present, create it if not.
// Returns whether the post is saved after the call.
func (r *SavedPostRepository) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	var saved bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp model.SavedPost
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&sp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&model.SavedPost{UserID: userID, PostID: postID}).Error; err != nil {
				// concurrent toggle hit the unique pair first
				if isDuplicate(err) {
					saved = true
					return nil
				}
				return err
			}
			saved = true
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&sp).Error; err != nil {
			return err
		}
		saved = false
		return nil
	})
	return saved, err
}

func (r *SavedPostRepository) IsSaved(ctx context.Context, userID, postID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

// ListPosts returns the viewer's saved posts, newest bookmark first.
func (r *SavedPostRepository) ListPosts(ctx context.Context, userID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ? AND posts.is_deleted = ?", userID, false).
		Order("saved_posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}
