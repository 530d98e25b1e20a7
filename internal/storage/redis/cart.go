package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// CartStore keeps per-user carts in Redis hashes keyed by cart:<userID>.
// Hash fields are product ids, values are quantities.
type CartStore struct {
	client *goredis.Client
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr string, logger *slog.Logger) (*CartStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &CartStore{client: client, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (s *CartStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Items returns the cart contents ordered by product id.
func (s *CartStore) Items(ctx context.Context, userID string) ([]model.OrderItem, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	items := make([]model.OrderItem, 0, len(fields))
	for productID, raw := range fields {
		qty, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.logger.Warn("skipping malformed cart entry",
				slog.String("user_id", userID),
				slog.String("product_id", productID))
			continue
		}
		items = append(items, model.OrderItem{ProductID: productID, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

// SetItem stores a quantity for a product; a non-positive quantity removes the
// product from the cart.
func (s *CartStore) SetItem(ctx context.Context, userID, productID string, quantity int64) error {
	key := cartKey(userID)
	if quantity <= 0 {
		if err := s.client.HDel(ctx, key, productID).Err(); err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
		return nil
	}
	if err := s.client.HSet(ctx, key, productID, quantity).Err(); err != nil {
		return fmt.Errorf("store cart item: %w", err)
	}
	return nil
}

// Clear drops the whole cart.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
