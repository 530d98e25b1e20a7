package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
	"github.com/polkiloo/checkout/internal/domain/repository"
)

// DB is the pool surface the storage relies on; satisfied by *pgxpool.Pool and
// by pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

// newPgxPool is an indirection point so tests can substitute a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DB, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type orderRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// Catalog returns the product catalog repository backed by this storage.
func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            price BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            items JSONB NOT NULL,
            amount BIGINT NOT NULL,
            address_id TEXT NOT NULL,
            status TEXT NOT NULL,
            event_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	id := uuid.NewString()
	const query = `INSERT INTO orders (id, user_id, items, amount, address_id, status, event_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING created_at, updated_at`
	if err := r.storage.pool.QueryRow(ctx, query,
		id, order.UserID, items, order.Amount, order.AddressID, order.Status, order.EventID,
	).Scan(&order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	order.ID = id
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT id, user_id, items, amount, address_id, status, event_id, created_at, updated_at
                   FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT id, user_id, items, amount, address_id, status, event_id, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// SelectFailedForRepublish picks up orders stuck after a failed publish. Rows
// are locked and touched inside one transaction so concurrent pollers skip each
// other's batches and recently attempted orders go to the back of the queue.
func (r *orderRepository) SelectFailedForRepublish(ctx context.Context, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT id, user_id, items, amount, address_id, status, event_id, created_at, updated_at
                         FROM orders
                         WHERE status=$1
                         ORDER BY updated_at
                         LIMIT $2
                         FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.OrderStatusFailedToPublish, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		orders, err = collectOrders(rows)
		if err != nil {
			return err
		}

		for _, o := range orders {
			if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, o.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var items []byte
	if err := row.Scan(&o.ID, &o.UserID, &items, &o.Amount, &o.AddressID, &o.Status, &o.EventID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) UnitPrice(ctx context.Context, productID string) (int64, error) {
	const query = `SELECT price FROM products WHERE id=$1`
	var price int64
	err := r.storage.pool.QueryRow(ctx, query, productID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return price, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
