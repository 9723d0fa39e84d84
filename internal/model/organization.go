package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrgTypeClub        = "club"
	OrgTypeSociety     = "society"
	OrgTypeAssociation = "association"
	OrgTypeCommittee   = "committee"
	OrgTypeDepartment  = "department"
)

// Membership roles shared by organizations and threads.
const (
	RoleMember        = "member"
	RoleModerator     = "moderator"
	RoleAdmin         = "admin"
	RolePresident     = "president"
	RoleVicePresident = "vice_president"
	RoleSecretary     = "secretary"
	RoleTreasurer     = "treasurer"
)

// Membership status lifecycle: pending -> active -> inactive -> pending again.
// banned is terminal.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)

// StaffRoles are the roles allowed to manage an organization.
var StaffRoles = []string{RoleAdmin, RolePresident, RoleVicePresident, RoleSecretary, RoleModerator}

type Organization struct {
	ID          uint64 `gorm:"primaryKey"`
	UUID        string `gorm:"size:36;uniqueIndex;not null"`
	Name        string `gorm:"uniqueIndex;size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:250;not null"`
	Description string `gorm:"type:text"`
	CreatorID   uint64 `gorm:"not null;index"`
	OrgType     string `gorm:"size:20;not null;default:'club';index:idx_org_type_active"`
	IsActive    bool   `gorm:"not null;default:true;index:idx_org_type_active"`
	// MemberCount caches the number of active memberships. It is recomputed
	// from a count query on every status transition, never incremented.
	MemberCount int64 `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Organization) TableName() string { return "organizations" }

func (o *Organization) BeforeCreate(*gorm.DB) error {
	if o.UUID == "" {
		o.UUID = uuid.NewString()
	}
	return nil
}

type OrganizationMembership struct {
	ID             uint64 `gorm:"primaryKey"`
	UUID           string `gorm:"size:36;uniqueIndex;not null"`
	UserID         uint64 `gorm:"not null;index;uniqueIndex:uk_org_user"`
	OrganizationID uint64 `gorm:"not null;index;uniqueIndex:uk_org_user"`
	Role           string `gorm:"size:20;not null;default:'member'"`
	Status         string `gorm:"size:10;not null;default:'pending';index:idx_org_member_status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (OrganizationMembership) TableName() string { return "organization_memberships" }

func (m *OrganizationMembership) BeforeCreate(*gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.NewString()
	}
	return nil
}
