package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CountersTTL      = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	CountersPrefix   = "engage:cnt"  // cached "up:down" counters per target
	ViewBatchPrefix  = "views:post"  // pending view-count deltas per post
	LockKeyPrefix    = "lock:engage" // rebuild lock
	ViewBatchPattern = ViewBatchPrefix + ":*"
)

// EngagementCache holds the read-side counter cache. Writers update it best
// effort after the DB commit; on any doubt the key is deleted and the next
// reader rebuilds it from the store.
type EngagementCache struct {
	ttl time.Duration
}

func NewEngagementCache() *EngagementCache {
	return &EngagementCache{ttl: CountersTTL}
}

func (r *EngagementCache) countersKey(kind string, id uint64) string {
	return fmt.Sprintf("%s:%s:%d", CountersPrefix, kind, id)
}

// SetCounters overwrites the cached counters after a successful DB write.
func (r *EngagementCache) SetCounters(ctx context.Context, kind string, id uint64, up, down int64) error {
	k := r.countersKey(kind, id)
	if err := Client.Set(ctx, k, fmt.Sprintf("%d:%d", up, down), r.ttl).Err(); err != nil {
		return err
	}
	return nil
}

// GetCounters returns (up, down, ok). ok=false means cache miss.
func (r *EngagementCache) GetCounters(ctx context.Context, kind string, id uint64) (int64, int64, bool, error) {
	val, err := Client.Get(ctx, r.countersKey(kind, id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	var up, down int64
	if _, err := fmt.Sscanf(val, "%d:%d", &up, &down); err != nil {
		return 0, 0, false, nil
	}
	return up, down, true, nil
}

// DeleteCounters drops the key so the read side rebuilds it lazily.
func (r *EngagementCache) DeleteCounters(ctx context.Context, kind string, id uint64) error {
	return Client.Del(ctx, r.countersKey(kind, id)).Err()
}

// IncrView buffers one view; deltas are flushed to MySQL by the view syncer.
func (r *EngagementCache) IncrView(ctx context.Context, postID uint64) error {
	k := fmt.Sprintf("%s:%d", ViewBatchPrefix, postID)
	if err := Client.Incr(ctx, k).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, CountersTTL).Err()
	return nil
}

// DrainViews scans pending view keys and hands each (postID, delta) to apply.
// A key is deleted before apply; a failed apply loses at most that batch,
// which the product tolerates for view counts.
func (r *EngagementCache) DrainViews(ctx context.Context, apply func(postID uint64, n int64) error) error {
	iter := Client.Scan(ctx, 0, ViewBatchPattern, 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		var postID uint64
		if _, err := fmt.Sscanf(key, ViewBatchPrefix+":%d", &postID); err != nil {
			continue
		}
		n, err := Client.GetDel(ctx, key).Int64()
		if err != nil || n <= 0 {
			continue
		}
		if err := apply(postID, n); err != nil {
			return err
		}
	}
	return iter.Err()
}

// DistLock is a minimal set-NX lock used to keep cache rebuilds single
// flight. Release is token-checked so a stale holder cannot free a lock it
// no longer owns.
type DistLock struct{}

func (l *DistLock) key(kind string, id uint64) string {
	return fmt.Sprintf("%s:%s:%d", LockKeyPrefix, kind, id)
}

func (l *DistLock) Acquire(ctx context.Context, kind string, id uint64, token string) (bool, error) {
	return Client.SetNX(ctx, l.key(kind, id), token, LockTTL).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *DistLock) Release(ctx context.Context, kind string, id uint64, token string) error {
	return releaseScript.Run(ctx, Client, []string{l.key(kind, id)}, token).Err()
}
