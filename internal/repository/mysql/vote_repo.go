package mysql

import (
	"context"
	"errors"

	"CampusConnect/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

// counterTable maps an allow-listed target kind to the table carrying the
// denormalized counters.
func counterTable(kind string) (string, error) {
	switch kind {
	case model.TargetPost:
		return "posts", nil
	case model.TargetComment:
		return "comments", nil
	}
	return "", ErrBadTargetKind
}

type counters struct {
	Upvotes   int64
	Downvotes int64
}

// Apply runs one vote action through the ledger in a single transaction:
// read the voter's previous row, mutate the ledger, apply the counter delta
// as one relative UPDATE (clamped at zero), and read the persisted counters
// back for the reply.
//
// Transition table (previous row -> action):
//
//	none  up    -> +1 row,   upvotes+1
//	none  down  -> -1 row,   downvotes+1
//	none  clear -> no-op
//	+1    up    -> deleted,  upvotes-1   (toggle off)
//	+1    down  -> -1 row,   upvotes-1 downvotes+1 (switch)
//	+1    clear -> deleted,  upvotes-1
//	-1    down  -> deleted,  downvotes-1 (toggle off)
//	-1    up    -> +1 row,   downvotes-1 upvotes+1 (switch)
//	-1    clear -> deleted,  downvotes-1
func (r *VoteRepository) Apply(ctx context.Context, voterID uint64, kind string, targetID uint64, action string) (*model.VoteResult, error) {
	table, err := counterTable(kind)
	if err != nil {
		return nil, err
	}
	switch action {
	case model.ActionUp, model.ActionDown, model.ActionClear:
	default:
		return nil, ErrBadVoteAction
	}

	var result model.VoteResult
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Table(table).Where("id = ?", targetID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}

		var prev model.Vote
		hasPrev := true
		err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?",
			voterID, kind, targetID).First(&prev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hasPrev = false
		} else if err != nil {
			return err
		}

		var du, dd int64
		mutated := true

		switch action {
		case model.ActionClear:
			if !hasPrev {
				mutated = false
				break
			}
			res := tx.Where("id = ? AND value = ?", prev.ID, prev.Value).Delete(&model.Vote{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				mutated = false
				break
			}
			if prev.Value == model.VoteUp {
				du = -1
			} else {
				dd = -1
			}

		default:
			value := model.VoteUp
			if action == model.ActionDown {
				value = model.VoteDown
			}
			switch {
			case !hasPrev:
				v := model.Vote{UserID: voterID, TargetKind: kind, TargetID: targetID, Value: value}
				if err := tx.Create(&v).Error; err != nil {
					return err
				}
				if value == model.VoteUp {
					du = +1
				} else {
					dd = +1
				}
			case prev.Value == value:
				// toggle off
				res := tx.Where("id = ? AND value = ?", prev.ID, prev.Value).Delete(&model.Vote{})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					mutated = false
					break
				}
				if value == model.VoteUp {
					du = -1
				} else {
					dd = -1
				}
			default:
				// switch direction in one logical step
				res := tx.Model(&model.Vote{}).
					Where("id = ? AND value = ?", prev.ID, prev.Value).
					Update("value", value)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					mutated = false
					break
				}
				if value == model.VoteUp {
					du, dd = +1, -1
				} else {
					du, dd = -1, +1
				}
			}
		}

		if mutated && (du != 0 || dd != 0) {
			// relative update, clamped at zero; never read-modify-write
			err := tx.Table(table).Where("id = ?", targetID).UpdateColumns(map[string]any{
				"upvotes":   gorm.Expr("CASE WHEN upvotes + ? < 0 THEN 0 ELSE upvotes + ? END", du, du),
				"downvotes": gorm.Expr("CASE WHEN downvotes + ? < 0 THEN 0 ELSE downvotes + ? END", dd, dd),
			}).Error
			if err != nil {
				return err
			}
			if err := insertOutbox(tx, model.EventVoteApplied, voterID, map[string]any{
				"target_kind": kind,
				"target_id":   targetID,
				"action":      action,
			}); err != nil {
				return err
			}
		}

		// report what the store actually holds, not the ledger delta
		var c counters
		if err := tx.Table(table).Select("upvotes, downvotes").
			Where("id = ?", targetID).Take(&c).Error; err != nil {
			return err
		}
		result = model.VoteResult{
			TargetKind: kind,
			TargetID:   targetID,
			Upvotes:    c.Upvotes,
			Downvotes:  c.Downvotes,
			Score:      c.Upvotes - c.Downvotes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Counters reads the persisted counters for a target without touching the
// ledger.
func (r *VoteRepository) Counters(ctx context.Context, kind string, targetID uint64) (*model.VoteResult, error) {
	table, err := counterTable(kind)
	if err != nil {
		return nil, err
	}
	var c counters
	err = r.DB.WithContext(ctx).Table(table).
		Select("upvotes, downvotes").
		Where("id = ?", targetID).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &model.VoteResult{
		TargetKind: kind,
		TargetID:   targetID,
		Upvotes:    c.Upvotes,
		Downvotes:  c.Downvotes,
		Score:      c.Upvotes - c.Downvotes,
	}, nil
}

// Previous returns the viewer's current vote value for a target, 0 if none.
func (r *VoteRepository) Previous(ctx context.Context, voterID uint64, kind string, targetID uint64) (int, error) {
	var v model.Vote
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", voterID, kind, targetID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return v.Value, nil
}
