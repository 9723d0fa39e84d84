package model

import "time"

// Allow-listed vote targets. Anything else is rejected before the ledger is
// touched.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote actions as sent by clients.
const (
	ActionUp    = "up"
	ActionDown  = "down"
	ActionClear = "clear"
)

// Vote is the engagement ledger entry: at most one row per
// (user, target_kind, target_id). The sign records direction; absence of a
// row records "no vote".
type Vote struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"not null;index;uniqueIndex:uk_vote_user_target"`
	TargetKind string `gorm:"size:10;not null;uniqueIndex:uk_vote_user_target;index:idx_vote_target"`
	TargetID   uint64 `gorm:"not null;uniqueIndex:uk_vote_user_target;index:idx_vote_target"`
	Value      int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Vote) TableName() string { return "votes" }

// VoteResult reports the counters read back from the persisted target after
// the ledger transaction commits.
type VoteResult struct {
	TargetKind string `json:"target_kind"`
	TargetID   uint64 `json:"target_id"`
	Upvotes    int64  `json:"upvotes"`
	Downvotes  int64  `json:"downvotes"`
	Score      int64  `json:"score"`
}
