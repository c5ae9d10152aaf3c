package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/Collinul/home-task-management-sub001/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyTaskList  = "task:list:"       // task:list:<userID>:<filterKey>
	keyDashboard = "dashboard:stats:" // dashboard:stats:<userID>
)

// TaskCache caches per-user task pages and dashboard stats in Redis.
// Every task mutation by a user invalidates that user's keys.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns a cached task page or nil if miss.
func (c *TaskCache) GetList(ctx context.Context, userID int64, filterKey string) (*dom.TaskPage, error) {
	b, err := c.rdb.Get(ctx, listKey(userID, filterKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var page dom.TaskPage
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetList stores a task page.
func (c *TaskCache) SetList(ctx context.Context, userID int64, filterKey string, page dom.TaskPage) error {
	b, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID, filterKey), b, c.ttl).Err()
}

// GetStats returns cached dashboard stats or nil if miss.
func (c *TaskCache) GetStats(ctx context.Context, userID int64) (*dom.DashboardStats, error) {
	b, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats dom.DashboardStats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores dashboard stats.
func (c *TaskCache) SetStats(ctx context.Context, userID int64, stats dom.DashboardStats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(userID), b, c.ttl).Err()
}

// InvalidateUser removes the user's cached pages and stats.
func (c *TaskCache) InvalidateUser(ctx context.Context, userID int64) error {
	if err := c.rdb.Del(ctx, statsKey(userID)).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, listKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func listKey(userID int64, filterKey string) string {
	return keyTaskList + strconv.FormatInt(userID, 10) + ":" + filterKey
}

func statsKey(userID int64) string {
	return keyDashboard + strconv.FormatInt(userID, 10)
}
