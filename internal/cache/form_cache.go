package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"preorder/internal/pricing"
)

// FormCache handles Redis operations for loaded form bundles
type FormCache interface {
	SetBundle(ctx context.Context, formID string, bundle *pricing.Bundle) error
	GetBundle(ctx context.Context, formID string) (*pricing.Bundle, error)
	Invalidate(ctx context.Context, formID string) error
}

type formCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFormCache creates a new form cache
func NewFormCache(client *redis.Client) FormCache {
	return &formCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *formCache) bundleKey(formID string) string {
	return fmt.Sprintf("form:%s:bundle", formID)
}

func (c *formCache) SetBundle(ctx context.Context, formID string, bundle *pricing.Bundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.bundleKey(formID), data, c.ttl).Err()
}

func (c *formCache) GetBundle(ctx context.Context, formID string) (*pricing.Bundle, error) {
	data, err := c.client.Get(ctx, c.bundleKey(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bundle pricing.Bundle
	if err := json.Unmarshal([]byte(data), &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *formCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.bundleKey(formID)).Err()
}
