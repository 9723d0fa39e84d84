package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
	PostTypeLink  = "link"
	PostTypePoll  = "poll"
	PostTypeEvent = "event"
)

// Visibility tiers, narrowest first.
const (
	VisibilityThread       = "thread"
	VisibilityOrganization = "organization"
	VisibilityPublic       = "public"
)

type Post struct {
	ID       uint64 `gorm:"primaryKey"`
	UUID     string `gorm:"size:36;uniqueIndex;not null"`
	ThreadID uint64 `gorm:"not null;index:idx_post_thread_time"`
	AuthorID uint64 `gorm:"not null;index"`
	Title    string `gorm:"size:300;not null"`
	Slug     string `gorm:"uniqueIndex;size:350;not null"`
	Content  string `gorm:"type:text"`
	PostType string `gorm:"size:10;not null;default:'text'"`

	Visibility string `gorm:"size:12;not null;default:'public';index"`

	// Engagement counters. Score = Upvotes - Downvotes, derived, never stored.
	Upvotes      int64 `gorm:"not null;default:0"`
	Downvotes    int64 `gorm:"not null;default:0"`
	CommentCount int64 `gorm:"not null;default:0"`
	ViewCount    int64 `gorm:"not null;default:0"`

	IsPinned   bool `gorm:"not null;default:false"`
	IsLocked   bool `gorm:"not null;default:false"`
	IsDeleted  bool `gorm:"not null;default:false;index"`
	IsApproved bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"index:idx_post_thread_time"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}

func (p *Post) Score() int64 {
	return p.Upvotes - p.Downvotes
}

// SavedPost is a pure presence toggle, one row at most per (user, post).
type SavedPost struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_saved_user_post"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_saved_user_post"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SavedPost) TableName() string { return "saved_posts" }
