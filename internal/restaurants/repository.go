package restaurants

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kurier-app/kurier/internal/shared"
)

// Repository defines persistence operations for the restaurants module.
type Repository interface {
	Create(ctx context.Context, restaurant Restaurant) (int64, error)
	Get(ctx context.Context, id int64) (*Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]Restaurant, int, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const restaurantColumns = `id, name, address, category_name, cover_img, owner_id, is_promoted, promoted_until, created_at, updated_at`

func (r *repository) Create(ctx context.Context, restaurant Restaurant) (int64, error) {
	const query = `
		INSERT INTO restaurants (name, address, category_name, cover_img, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Address,
		restaurant.CategoryName,
		restaurant.CoverImg,
		restaurant.OwnerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("restaurants: create: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Restaurant, error) {
	query := fmt.Sprintf(`SELECT %s FROM restaurants WHERE id = $1`, restaurantColumns)

	var rest Restaurant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rest.ID,
		&rest.Name,
		&rest.Address,
		&rest.CategoryName,
		&rest.CoverImg,
		&rest.OwnerID,
		&rest.IsPromoted,
		&rest.PromotedUntil,
		&rest.CreatedAt,
		&rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("restaurants: get: %w", err)
	}
	return &rest, nil
}

// List returns restaurants with promoted listings first, newest after that.
func (r *repository) List(ctx context.Context, limit, offset int) ([]Restaurant, int, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM restaurants
		ORDER BY is_promoted DESC, created_at DESC
		LIMIT $1 OFFSET $2`, restaurantColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("restaurants: list: %w", err)
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(
			&rest.ID,
			&rest.Name,
			&rest.Address,
			&rest.CategoryName,
			&rest.CoverImg,
			&rest.OwnerID,
			&rest.IsPromoted,
			&rest.PromotedUntil,
			&rest.CreatedAt,
			&rest.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("restaurants: scan: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("restaurants: rows: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM restaurants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("restaurants: count: %w", err)
	}
	return out, total, nil
}

var _ Repository = (*repository)(nil)
