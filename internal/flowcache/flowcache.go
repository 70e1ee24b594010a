package flowcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrFlowNotFound is returned when no pending flow exists for a state
	// value, either because it expired or because it was already consumed.
	ErrFlowNotFound = errors.New("login flow not found")

	// ErrCacheUnavailable is returned when the service started without a
	// reachable Redis, which disables the login flow entirely.
	ErrCacheUnavailable = errors.New("flow cache unavailable")
)

const keyPrefix = "auth_flow:"

// Flow is the short-lived state of one authorization-code login attempt.
type Flow struct {
	State        string    `json:"state"`
	FrontendHost string    `json:"frontend_host"`
	CreatedAt    time.Time `json:"created_at"`
}

// FlowCache stores pending login flows in Redis with a bounded TTL. This is
// the only cache usage in the service; no RBAC state lives here.
type FlowCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *FlowCache {
	return &FlowCache{rdb: rdb, ttl: ttl}
}

func (c *FlowCache) Save(ctx context.Context, flow *Flow) error {
	if c.rdb == nil {
		return ErrCacheUnavailable
	}
	payload, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+flow.State, payload, c.ttl).Err()
}

// Take fetches and deletes the flow for a state value. A state is single-use:
// the second Take for the same state fails.
func (c *FlowCache) Take(ctx context.Context, state string) (*Flow, error) {
	if c.rdb == nil {
		return nil, ErrCacheUnavailable
	}
	payload, err := c.rdb.GetDel(ctx, keyPrefix+state).Result()
	if err == redis.Nil {
		return nil, ErrFlowNotFound
	}
	if err != nil {
		return nil, err
	}

	var flow Flow
	if err := json.Unmarshal([]byte(payload), &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}
