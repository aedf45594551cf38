package cache

import (
	"context"
	"sync"
	"time"

	"course-enrollment/internal/usecase/queries"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LocalReportCache is the single-process fallback when no redis is
// configured. Stored slices are copied on the way in and out.
type LocalReportCache struct {
	mu         sync.Mutex
	generation int64
	lru        *expirable.LRU[string, []queries.ClassEnrollmentView]
}

func NewLocalReportCache(size int, ttl time.Duration) *LocalReportCache {
	if size <= 0 {
		size = 1
	}
	return &LocalReportCache{lru: expirable.NewLRU[string, []queries.ClassEnrollmentView](size, nil, ttl)}
}

func (c *LocalReportCache) GetEnrollmentsByClass(_ context.Context) ([]queries.ClassEnrollmentView, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.lru.Get(enrollmentsByClassKey)
	if !ok {
		return nil, c.generation, false, nil
	}
	return clone(rows), c.generation, true, nil
}

// SetEnrollmentsByClass drops rows read in an older generation.
func (c *LocalReportCache) SetEnrollmentsByClass(_ context.Context, generation int64, rows []queries.ClassEnrollmentView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return nil
	}
	c.lru.Add(enrollmentsByClassKey, clone(rows))
	return nil
}

func (c *LocalReportCache) InvalidateEnrollmentReports(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lru.Remove(enrollmentsByClassKey)
	return nil
}

func clone(rows []queries.ClassEnrollmentView) []queries.ClassEnrollmentView {
	out := make([]queries.ClassEnrollmentView, len(rows))
	copy(out, rows)
	return out
}
