package model

import "time"

// Engagement event types written to the outbox.
const (
	EventVoteApplied        = "vote_applied"
	EventMembershipApproved = "membership_approved"
	EventMembershipRejected = "membership_rejected"
)

// EngagementOutbox rows are inserted in the same transaction as the write
// that produced them and drained to Kafka by the relayer.
type EngagementOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	ActorID   uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EngagementOutbox) TableName() string { return "engagement_outbox" }
