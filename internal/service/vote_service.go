package service

import (
	"context"
	"fmt"
	"time"

	"CampusConnect/internal/model"
	"CampusConnect/internal/repository/mysql"
	"CampusConnect/internal/repository/redis"
)

type VoteService struct {
	repo  *mysql.VoteRepository
	cache *redis.EngagementCache
	lock  *redis.DistLock
}

func NewVoteService() *VoteService {
	return &VoteService{
		repo:  &mysql.VoteRepository{DB: mysql.DB},
		cache: redis.NewEngagementCache(),
		lock:  &redis.DistLock{},
	}
}

// Apply writes the vote through the ledger, then refreshes the counter
// cache: take the short lock and overwrite with the committed counters, or
// drop the key and let the next reader rebuild it.
func (s *VoteService) Apply(ctx context.Context, voterID uint64, kind string, targetID uint64, action string) (*model.VoteResult, error) {
	if voterID == 0 || targetID == 0 {
		return nil, ErrInvalidInput
	}
	res, err := s.repo.Apply(ctx, voterID, kind, targetID, action)
	if err != nil {
		return nil, err
	}

	token := fmt.Sprintf("%d-%d-%d", voterID, targetID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, kind, targetID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, kind, targetID, token) }()
		if err := s.cache.SetCounters(ctx, kind, targetID, res.Upvotes, res.Downvotes); err != nil {
			_ = s.cache.DeleteCounters(ctx, kind, targetID)
		}
	} else {
		// contended: drop the key instead of racing another writer
		_ = s.cache.DeleteCounters(ctx, kind, targetID)
	}
	return res, nil
}

// Counters serves the read path cache-first with a single-flight rebuild.
func (s *VoteService) Counters(ctx context.Context, kind string, targetID uint64) (*model.VoteResult, error) {
	if up, down, ok, err := s.cache.GetCounters(ctx, kind, targetID); err == nil && ok {
		return &model.VoteResult{
			TargetKind: kind, TargetID: targetID,
			Upvotes: up, Downvotes: down, Score: up - down,
		}, nil
	}

	token := fmt.Sprintf("cnt-%d-%d", targetID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, kind, targetID, token)
	if got {
		defer func() { _ = s.lock.Release(ctx, kind, targetID, token) }()
		// double check under the lock
		if up, down, ok, err := s.cache.GetCounters(ctx, kind, targetID); err == nil && ok {
			return &model.VoteResult{
				TargetKind: kind, TargetID: targetID,
				Upvotes: up, Downvotes: down, Score: up - down,
			}, nil
		}
		res, err := s.repo.Counters(ctx, kind, targetID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetCounters(ctx, kind, targetID, res.Upvotes, res.Downvotes)
		return res, nil
	}

	// lost the rebuild lock: back off briefly, retry the cache, then fall
	// through to the store without repopulating
	time.Sleep(50 * time.Millisecond)
	if up, down, ok, err := s.cache.GetCounters(ctx, kind, targetID); err == nil && ok {
		return &model.VoteResult{
			TargetKind: kind, TargetID: targetID,
			Upvotes: up, Downvotes: down, Score: up - down,
		}, nil
	}
	return s.repo.Counters(ctx, kind, targetID)
}

// ViewerVote reports the viewer's current vote value, 0 if none.
func (s *VoteService) ViewerVote(ctx context.Context, voterID uint64, kind string, targetID uint64) (int, error) {
	if voterID == 0 {
		return 0, nil
	}
	return s.repo.Previous(ctx, voterID, kind, targetID)
}
