package mysql

import (
	"context"
	"fmt"
	"strings"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

// Create inserts a comment, deriving level and path from the parent, and
// recomputes the post's comment count in the same transaction. Level and
// path supplied by the caller are ignored.
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Where("is_deleted = ?", false).First(&post, c.PostID).Error; err != nil {
			return err
		}

		c.Level, c.Path = 0, ""
		if c.ParentID != nil {
			var parent model.Comment
			if err := tx.First(&parent, *c.ParentID).Error; err != nil {
				return err
			}
			if parent.PostID != c.PostID {
				return fmt.Errorf("parent comment belongs to another post")
			}
			c.Level = parent.Level + 1
			c.Path = childPath(parent.Path, parent.ID)
		}

		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return recountComments(tx, c.PostID)
	})
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.WithContext(ctx).First(&c, id).Error
	return &c, err
}

// ListByPost returns live comments in tree order: path groups siblings under
// their ancestors, id breaks ties among roots and siblings.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("path ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// SoftDelete hides the comment and recomputes the post's comment count.
func (r *CommentRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Comment
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if c.IsDeleted {
			return nil
		}
		if err := tx.Model(&c).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return recountComments(tx, c.PostID)
	})
}

// childPath extends the parent's ancestor chain with the parent's own id.
// When the chain outgrows the column, leading ancestors are dropped until
// the tail fits: recent ancestry is worth more than the root.
func childPath(parentPath string, parentID uint64) string {
	path := fmt.Sprintf("%d", parentID)
	if parentPath != "" {
		path = parentPath + "/" + path
	}
	for len(path) > model.MaxCommentPathLen {
		i := strings.IndexByte(path, '/')
		if i < 0 {
			// single oversized segment, keep it whole
			break
		}
		path = path[i+1:]
	}
	return path
}

func recountComments(tx *gorm.DB, postID uint64) error {
	var n int64
	if err := tx.Model(&model.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&n).Error; err != nil {
		return err
	}
	return tx.Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", n).Error
}
