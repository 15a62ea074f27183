package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tabletap/tabletap-backend/internal/cart"
	"github.com/tabletap/tabletap-backend/pkg/logger"
)

// CartRepository persists cart sessions as JSON blobs in Redis. A
// malformed blob is treated as an empty cart; individually malformed
// lines are dropped by Cart.Sanitize. Corrupt storage never fails a
// request.
type CartRepository interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (r *cartRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return &cart.Cart{}, nil
	}
	if err != nil {
		logger.Error("Failed to load cart from Redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		logger.Warn("Discarding malformed cart blob", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return &cart.Cart{}, nil
	}

	c.Sanitize()
	return &c, nil
}

func (r *cartRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to save cart to Redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		logger.Error("Failed to delete cart from Redis", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
