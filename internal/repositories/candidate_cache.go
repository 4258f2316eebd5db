package repositories

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"acheiBack/internal/match"
)

// CandidateCache keeps candidate item id sets in Redis so repeated match jobs over
// the same attribute bucket skip the SQL scan. Entries expire quickly; staleness is
// tolerated because the pipeline re-reads items and version-checks the job anyway.
type CandidateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCandidateCache(rdb *redis.Client, ttl time.Duration) *CandidateCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CandidateCache{rdb: rdb, ttl: ttl}
}

func cacheKey(f match.CandidateFilter) string {
	cat, loc := "any", "any"
	if f.CategoryID != nil {
		cat = strconv.Itoa(*f.CategoryID)
	}
	if f.LocationID != nil {
		loc = strconv.Itoa(*f.LocationID)
	}
	return fmt.Sprintf("candidates:%s:%s:%s", f.Status, cat, loc)
}

func (c *CandidateCache) Get(ctx context.Context, f match.CandidateFilter) ([]int, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	members, err := c.rdb.SMembers(ctx, cacheKey(f)).Result()
	if err != nil || len(members) == 0 {
		if err != nil && err != redis.Nil {
			log.Printf("candidate cache read failed: %v", err)
		}
		return nil, false
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			log.Printf("candidate cache: invalid member %q", m)
			continue
		}
		ids = append(ids, id)
	}
	if f.Limit > 0 && len(ids) > f.Limit {
		ids = ids[:f.Limit]
	}
	return ids, true
}

func (c *CandidateCache) Set(ctx context.Context, f match.CandidateFilter, ids []int) {
	if c == nil || c.rdb == nil || len(ids) == 0 {
		return
	}
	key := cacheKey(f)
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = strconv.Itoa(id)
	}

	pipe := c.rdb.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("candidate cache write failed: %v", err)
	}
}

// Invalidate drops the buckets an item belongs to, called after create/update so a
// fresh item becomes visible to the next job without waiting for the TTL.
func (c *CandidateCache) Invalidate(ctx context.Context, status string, categoryID, locationID *int) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := []string{
		cacheKey(match.CandidateFilter{Status: status}),
		cacheKey(match.CandidateFilter{Status: status, CategoryID: categoryID}),
		cacheKey(match.CandidateFilter{Status: status, CategoryID: categoryID, LocationID: locationID}),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("candidate cache invalidate failed: %v", err)
	}
}
