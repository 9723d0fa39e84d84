package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ThreadTypeDiscussion   = "discussion"
	ThreadTypeAnnouncement = "announcement"
	ThreadTypeQuestion     = "question"
)

type Thread struct {
	ID             uint64 `gorm:"primaryKey"`
	UUID           string `gorm:"size:36;uniqueIndex;not null"`
	OrganizationID uint64 `gorm:"not null;index"`
	CreatorID      uint64 `gorm:"not null;index"`
	Title          string `gorm:"size:200;not null"`
	Slug           string `gorm:"uniqueIndex;size:250;not null"`
	Description    string `gorm:"type:text"`
	ThreadType     string `gorm:"size:20;not null;default:'discussion'"`
	IsPinned       bool   `gorm:"not null;default:false"`
	IsLocked       bool   `gorm:"not null;default:false"`
	// PostCount caches non-deleted posts, recomputed on post writes.
	PostCount int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Thread) TableName() string { return "threads" }

func (t *Thread) BeforeCreate(*gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.NewString()
	}
	return nil
}

// ThreadMembership mirrors OrganizationMembership but is tracked
// independently: revoking an org membership does not cascade here.
type ThreadMembership struct {
	ID        uint64 `gorm:"primaryKey"`
	UUID      string `gorm:"size:36;uniqueIndex;not null"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_thread_user"`
	ThreadID  uint64 `gorm:"not null;index;uniqueIndex:uk_thread_user"`
	Role      string `gorm:"size:20;not null;default:'member'"`
	Status    string `gorm:"size:10;not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ThreadMembership) TableName() string { return "thread_memberships" }

func (m *ThreadMembership) BeforeCreate(*gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.NewString()
	}
	return nil
}
