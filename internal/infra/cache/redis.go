package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const (
	enrollmentsByClassKey = "report:enrollments:by-class"
	generationKey         = "report:enrollments:generation"
)

// RedisReportCache keys the rollup by generation. Invalidation only bumps
// the generation counter; rows filed under an old generation are never read
// again and expire with the ttl.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) GetEnrollmentsByClass(ctx context.Context) ([]queries.ClassEnrollmentView, int64, bool, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, rowsKey(generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, false, nil
		}
		return nil, 0, false, err
	}
	var rows []queries.ClassEnrollmentView
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, false, err
	}
	return rows, generation, true, nil
}

func (c *RedisReportCache) SetEnrollmentsByClass(ctx context.Context, generation int64, rows []queries.ClassEnrollmentView) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rowsKey(generation), payload, c.ttl).Err()
}

func (c *RedisReportCache) InvalidateEnrollmentReports(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func rowsKey(generation int64) string {
	return enrollmentsByClassKey + ":" + strconv.FormatInt(generation, 10)
}
