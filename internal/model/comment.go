package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCommentPathLen bounds the materialized ancestor path. When a reply chain
// outgrows it, leading ancestors are dropped and the tail is kept.
const MaxCommentPathLen = 255

type Comment struct {
	ID       uint64  `gorm:"primaryKey"`
	UUID     string  `gorm:"size:36;uniqueIndex;not null"`
	PostID   uint64  `gorm:"not null;index:idx_comment_post_path"`
	AuthorID uint64  `gorm:"not null;index"`
	ParentID *uint64 `gorm:"index"`
	Content  string  `gorm:"type:text;not null"`

	Upvotes   int64 `gorm:"not null;default:0"`
	Downvotes int64 `gorm:"not null;default:0"`

	// Level and Path are derived from the parent on every save and are never
	// accepted from callers. Path is the slash-joined ancestor id chain.
	Level int    `gorm:"not null;default:0"`
	Path  string `gorm:"size:255;not null;default:'';index:idx_comment_post_path"`

	IsDeleted bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

func (c *Comment) Score() int64 {
	return c.Upvotes - c.Downvotes
}
