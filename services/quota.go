package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DailyQuestionLimit caps question submissions per identity per calendar day.
const DailyQuestionLimit = 5

// QuotaService counts question submissions per identity per calendar day.
// With Redis configured the counter survives restarts and is shared across
// replicas; without it a per-process map is used, reset at day rollover.
type QuotaService struct {
	rdb   *redis.Client
	limit int

	mu     sync.Mutex
	day    string
	counts map[string]int
}

func NewQuotaService(rdb *redis.Client, limit int) *QuotaService {
	if limit <= 0 {
		limit = DailyQuestionLimit
	}
	return &QuotaService{
		rdb:    rdb,
		limit:  limit,
		counts: make(map[string]int),
	}
}

// Allow reports whether the identity may submit another question today. The
// counter is incremented as part of the check, so callers must only invoke it
// when a submission is actually being attempted.
func (q *QuotaService) Allow(ctx context.Context, identityKey string) (bool, error) {
	now := time.Now()
	if q.rdb != nil {
		return q.allowRedis(ctx, identityKey, now)
	}
	return q.allowMemory(identityKey, now), nil
}

func (q *QuotaService) allowRedis(ctx context.Context, identityKey string, now time.Time) (bool, error) {
	key := fmt.Sprintf("question_quota:%s:%s", now.Format("2006-01-02"), identityKey)

	n, err := q.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down should not take question submission with it.
		log.Printf("quota: redis incr failed, falling back to memory: %v", err)
		return q.allowMemory(identityKey, now), nil
	}
	if n == 1 {
		// First submission today: expire the key at next midnight.
		midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		if err := q.rdb.ExpireAt(ctx, key, midnight).Err(); err != nil {
			log.Printf("quota: redis expire failed for %s: %v", key, err)
		}
	}
	return n <= int64(q.limit), nil
}

func (q *QuotaService) allowMemory(identityKey string, now time.Time) bool {
	day := now.Format("2006-01-02")

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.day != day {
		q.day = day
		q.counts = make(map[string]int)
	}
	q.counts[identityKey]++
	return q.counts[identityKey] <= q.limit
}
