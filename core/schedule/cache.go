package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value      interface{}
	expiration time.Time
}

// cachedRepository serves the course collections of a Repository from a TTL cache.
// Student collections always go to the wrapped repository.
type cachedRepository struct {
	Repository

	ttl     time.Duration
	timeout time.Duration // bounds shared fetches; 0 means none
	now     func() time.Time
	group   singleflight.Group

	mu      sync.Mutex
	entries map[string]cacheEntry
}

var _ Repository = (*cachedRepository)(nil)

func newCachedRepository(repo Repository, ttl, timeout time.Duration) *cachedRepository {
	return &cachedRepository{
		Repository: repo,
		ttl:        ttl,
		timeout:    timeout,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
}

func (c *cachedRepository) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiration) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *cachedRepository) add(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiration: c.now().Add(c.ttl)}
}

// load returns the cached value for key, fetching it once across concurrent callers on a miss.
// The shared fetch runs detached from any single caller, bounded by the fetch timeout, so one
// caller giving up never fails the others. Failed fetches are not cached.
func (c *cachedRepository) load(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if val, ok := c.get(key); ok {
		return val, nil
	}
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if val, ok := c.get(key); ok {
			return val, nil
		}

		fetchCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.timeout)
			defer cancel()
		}

		val, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.add(key, val)
		return val, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Flush drops every cached entry.
func (c *cachedRepository) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// cached slices are shared; callers get their own copies, and BuildTimeline never hands out
// pointers into them

func (c *cachedRepository) ListActiveCourseTasks(ctx context.Context, courseID int) ([]CourseTask, error) {
	val, err := c.load(ctx, fmt.Sprintf("tasks:%d", courseID), func(ctx context.Context) (interface{}, error) {
		return c.Repository.ListActiveCourseTasks(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return append([]CourseTask(nil), val.([]CourseTask)...), nil
}

func (c *cachedRepository) ListCourseEvents(ctx context.Context, courseID int) ([]CourseEvent, error) {
	val, err := c.load(ctx, fmt.Sprintf("events:%d", courseID), func(ctx context.Context) (interface{}, error) {
		return c.Repository.ListCourseEvents(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return append([]CourseEvent(nil), val.([]CourseEvent)...), nil
}

func (c *cachedRepository) ListTeamDistributions(ctx context.Context, courseID int) ([]TeamDistribution, error) {
	val, err := c.load(ctx, fmt.Sprintf("distributions:%d", courseID), func(ctx context.Context) (interface{}, error) {
		return c.Repository.ListTeamDistributions(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return append([]TeamDistribution(nil), val.([]TeamDistribution)...), nil
}
