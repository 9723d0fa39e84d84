package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uint64 `gorm:"primaryKey"`
	UUID       string `gorm:"size:36;uniqueIndex;not null"`
	Username   string `gorm:"uniqueIndex;size:32;not null"`
	Password   string `gorm:"size:255;not null"`
	Email      string `gorm:"uniqueIndex;size:64;not null"`
	Role       int    `gorm:"default:0"`
	IsVerified bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}
