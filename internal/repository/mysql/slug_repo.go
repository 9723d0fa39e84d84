package mysql

import (
	"context"
	"fmt"

	"CampusConnect/internal/pkg"

	"gorm.io/gorm"
)

// maxSlugProbes bounds the deterministic collision probe before falling back
// to a random hex suffix.
const maxSlugProbes = 100

// SlugAssigner picks a unique slug for one table. The unique index on the
// slug column stays the final backstop: if the probed candidate loses a race
// the insert fails with ErrSlugConflict and the caller retries.
type SlugAssigner struct {
	DB       *gorm.DB
	Table    string
	MaxBase  int    // room left for "-N" suffixes inside the column limit
	Fallback string // used when the title slugifies to nothing
}

// Assign returns a slug unique among rows of the table at the instant of the
// check, excluding excludeID (the entity's own row on edits).
//
// For an existing entity whose current slug does not collide, the current
// slug is returned unchanged; assignment is idempotent unless the row is
// being renamed onto a taken slug.
func (a *SlugAssigner) Assign(ctx context.Context, title, existing string, isNew bool, excludeID uint64) (string, error) {
	base := existing
	if base == "" {
		base = pkg.Slugify(title)
	}
	if base == "" {
		base = a.Fallback
	}
	base = pkg.TruncateSlug(base, a.MaxBase)

	candidate := base
	if !isNew && existing != "" {
		taken, err := a.taken(ctx, existing, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return existing, nil
		}
	}

	for i := 0; i < maxSlugProbes; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := a.taken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Probe exhausted. A random suffix is collision-free in practice and is
	// deliberately not re-verified.
	hex, err := pkg.RandHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", base, hex), nil
}

func (a *SlugAssigner) taken(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var n int64
	q := a.DB.WithContext(ctx).Table(a.Table).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Slug assigners per entity type. Base lengths leave room for suffixes
// inside the column limits.
func PostSlugs(db *gorm.DB) *SlugAssigner {
	return &SlugAssigner{DB: db, Table: "posts", MaxBase: 240, Fallback: "post"}
}

func ThreadSlugs(db *gorm.DB) *SlugAssigner {
	return &SlugAssigner{DB: db, Table: "threads", MaxBase: 230, Fallback: "thread"}
}

func OrgSlugs(db *gorm.DB) *SlugAssigner {
	return &SlugAssigner{DB: db, Table: "organizations", MaxBase: 240, Fallback: "org"}
}
