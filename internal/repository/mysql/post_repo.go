package mysql

import (
	"context"
	"errors"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

// Feed ordering modes.
const (
	FeedLatest  = "latest"
	FeedPopular = "popular"
)

type PostRepository struct {
	DB *gorm.DB
}

// Create assigns a unique slug and inserts, retrying the whole probe+insert
// on a lost slug race, then recomputes the thread's post count.
func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	var err error
	for i := 0; i < slugRetries; i++ {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			slug, err := PostSlugs(tx).Assign(ctx, p.Title, "", true, 0)
			if err != nil {
				return err
			}
			p.Slug = slug
			if err := tx.Create(p).Error; err != nil {
				if isDuplicate(err) {
					return ErrSlugConflict
				}
				return err
			}
			return recountPosts(tx, p.ThreadID)
		})
		if err != ErrSlugConflict {
			return err
		}
		p.ID = 0
	}
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var p model.Post
	err := r.DB.WithContext(ctx).Where("is_deleted = ?", false).First(&p, id).Error
	return &p, err
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var p model.Post
	err := r.DB.WithContext(ctx).Where("slug = ? AND is_deleted = ?", slug, false).First(&p).Error
	return &p, err
}

// Update edits title/content. The slug is re-validated against other rows
// but kept unless it now collides; it is never regenerated from the new
// title.
func (r *PostRepository) Update(ctx context.Context, id uint64, title, content string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Post
		if err := tx.Where("is_deleted = ?", false).First(&p, id).Error; err != nil {
			return err
		}
		slug, err := PostSlugs(tx).Assign(ctx, title, p.Slug, false, p.ID)
		if err != nil {
			return err
		}
		err = tx.Model(&p).Updates(map[string]any{
			"title":   title,
			"content": content,
			"slug":    slug,
		}).Error
		if isDuplicate(err) {
			return ErrSlugConflict
		}
		return err
	})
}

// SoftDelete marks the post deleted; rows are never hard-removed here.
func (r *PostRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Post
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if p.IsDeleted {
			return nil
		}
		if err := tx.Model(&p).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return recountPosts(tx, p.ThreadID)
	})
}

func (r *PostRepository) SetPinned(ctx context.Context, id uint64, pinned bool) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).Update("is_pinned", pinned).Error
}

func (r *PostRepository) SetLocked(ctx context.Context, id uint64, locked bool) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).Update("is_locked", locked).Error
}

// IncViews applies a batched view-count delta flushed from the cache.
func (r *PostRepository) IncViews(ctx context.Context, id uint64, n int64) error {
	if n <= 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", n)).Error
}

// visibleQuery builds the visibility-scoped post query for a viewer.
// viewerID 0 means anonymous: public, non-deleted posts only. Authenticated
// viewers additionally see organization-tier posts of orgs they are active
// in and thread-tier posts of threads they are active in.
func (r *PostRepository) visibleQuery(viewerID uint64) *gorm.DB {
	q := r.DB.Model(&model.Post{}).
		Joins("JOIN threads ON threads.id = posts.thread_id").
		Where("posts.is_deleted = ?", false)

	if viewerID == 0 {
		return q.Where("posts.visibility = ?", model.VisibilityPublic)
	}

	activeOrgs := r.DB.Model(&model.OrganizationMembership{}).
		Select("organization_id").
		Where("user_id = ? AND status = ?", viewerID, model.StatusActive)
	activeThreads := r.DB.Model(&model.ThreadMembership{}).
		Select("thread_id").
		Where("user_id = ? AND status = ?", viewerID, model.StatusActive)

	return q.Where(
		r.DB.Where("posts.visibility = ?", model.VisibilityPublic).
			Or(r.DB.Where("posts.visibility = ?", model.VisibilityOrganization).
				Where("threads.organization_id IN (?)", activeOrgs)).
			Or(r.DB.Where("posts.visibility = ?", model.VisibilityThread).
				Where("posts.thread_id IN (?)", activeThreads)),
	)
}

func feedOrder(q *gorm.DB, mode string) *gorm.DB {
	switch mode {
	case FeedLatest:
		return q.Order("posts.is_pinned DESC, posts.created_at DESC")
	default:
		// popular: fixed five-key composite sort, creation time as the
		// final tiebreak for a deterministic total order
		return q.Order("posts.upvotes DESC, posts.downvotes ASC, posts.view_count DESC, posts.comment_count DESC, posts.created_at DESC")
	}
}

func (r *PostRepository) ListVisible(ctx context.Context, viewerID uint64, mode string, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	q := feedOrder(r.visibleQuery(viewerID), mode)
	err := q.WithContext(ctx).Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *PostRepository) ListVisibleByThread(ctx context.Context, viewerID, threadID uint64, mode string, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	q := feedOrder(r.visibleQuery(viewerID).Where("posts.thread_id = ?", threadID), mode)
	err := q.WithContext(ctx).Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// ListByOrg is the privileged staff listing: every live post under the
// organization's threads regardless of visibility tier.
func (r *PostRepository) ListByOrg(ctx context.Context, orgID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN threads ON threads.id = posts.thread_id").
		Where("threads.organization_id = ? AND posts.is_deleted = ?", orgID, false).
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// CanView is the single-post equivalent of visibleQuery membership.
func (r *PostRepository) CanView(ctx context.Context, viewerID uint64, p *model.Post) (bool, error) {
	if p.IsDeleted {
		return false, nil
	}
	switch p.Visibility {
	case model.VisibilityPublic:
		return true, nil
	case model.VisibilityOrganization:
		if viewerID == 0 {
			return false, nil
		}
		var t model.Thread
		err := r.DB.WithContext(ctx).First(&t, p.ThreadID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// orphaned thread: integrity guard, nobody sees the post
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if t.OrganizationID == 0 {
			return false, nil
		}
		mr := &OrgMemberRepository{DB: r.DB}
		return mr.IsActiveMember(ctx, t.OrganizationID, viewerID)
	case model.VisibilityThread:
		if viewerID == 0 {
			return false, nil
		}
		tr := &ThreadMemberRepository{DB: r.DB}
		return tr.IsActiveMember(ctx, p.ThreadID, viewerID)
	}
	return false, nil
}
