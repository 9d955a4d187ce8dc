package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kurier-app/kurier/internal/platform/db"
	"github.com/kurier-app/kurier/internal/shared"
)

// Repository defines persistence for the promotion ledger. It deliberately
// includes the promotion columns of the restaurants table: this module is
// their only writer, and activation needs both writes in one transaction.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	GetPromotionTarget(ctx context.Context, restaurantID int64) (*PromotionTarget, error)
	SetPromotion(ctx context.Context, restaurantID int64, until time.Time) error
	ClearPromotion(ctx context.Context, restaurantID int64) error
	ListExpired(ctx context.Context, now time.Time) ([]int64, error)
	Insert(ctx context.Context, payment Payment) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]Payment, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) GetPromotionTarget(ctx context.Context, restaurantID int64) (*PromotionTarget, error) {
	const query = `
		SELECT id, owner_id, is_promoted, promoted_until
		FROM restaurants
		WHERE id = $1`

	var target PromotionTarget
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(
		&target.ID,
		&target.OwnerID,
		&target.IsPromoted,
		&target.PromotedUntil,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("payments: promotion target: %w", err)
	}
	return &target, nil
}

func (r *repository) SetPromotion(ctx context.Context, restaurantID int64, until time.Time) error {
	const query = `
		UPDATE restaurants
		SET is_promoted = TRUE, promoted_until = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, restaurantID, until)
	if err != nil {
		return fmt.Errorf("payments: set promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearPromotion reverts one row. Flag and timestamp change in a single
// statement so no row is ever half-reverted.
func (r *repository) ClearPromotion(ctx context.Context, restaurantID int64) error {
	const query = `
		UPDATE restaurants
		SET is_promoted = FALSE, promoted_until = NULL, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, restaurantID); err != nil {
		return fmt.Errorf("payments: clear promotion: %w", err)
	}
	return nil
}

func (r *repository) ListExpired(ctx context.Context, now time.Time) ([]int64, error) {
	const query = `
		SELECT id FROM restaurants
		WHERE is_promoted = TRUE AND promoted_until < $1`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("payments: list expired: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("payments: scan expired: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payments: expired rows: %w", err)
	}
	return ids, nil
}

func (r *repository) Insert(ctx context.Context, payment Payment) (int64, error) {
	const query = `
		INSERT INTO payments (reference, transaction_id, user_id, restaurant_id, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		payment.Reference,
		payment.TransactionID,
		payment.UserID,
		payment.RestaurantID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("payments: insert: %w", err)
	}
	return id, nil
}

// ListByUser returns the caller's payments in storage order. No ORDER BY:
// the backing store's order is part of the listing contract.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Payment, error) {
	const query = `
		SELECT id, reference, transaction_id, user_id, restaurant_id, created_at
		FROM payments
		WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("payments: list by user: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.TransactionID, &p.UserID, &p.RestaurantID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("payments: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payments: rows: %w", err)
	}
	return out, nil
}

var _ Repository = (*repository)(nil)
