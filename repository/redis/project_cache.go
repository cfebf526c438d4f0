package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskdeck/backend/repository"
)

type projectNameCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewProjectNameCache memoizes project display names in Redis. Lookups are
// best effort: any Redis failure reads as a miss so a degraded cache never
// blocks a view from rendering.
func NewProjectNameCache(client *redislib.Client, ttl time.Duration) repository.ProjectNameCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &projectNameCache{
		client: client,
		prefix: "taskdeck:project:name:",
		ttl:    ttl,
	}
}

func (c *projectNameCache) Get(ctx context.Context, projectID string) (string, bool) {
	name, err := c.client.Get(ctx, c.prefix+projectID).Result()
	if err != nil {
		return "", false
	}
	return name, true
}

func (c *projectNameCache) Set(ctx context.Context, projectID, name string) error {
	return c.client.Set(ctx, c.prefix+projectID, name, c.ttl).Err()
}
