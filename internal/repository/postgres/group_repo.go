package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zetedec/lanchat/internal/domain"
)

type GroupRepo struct {
	pool *pgxpool.Pool
}

func NewGroupRepo(pool *pgxpool.Pool) *GroupRepo {
	return &GroupRepo{pool: pool}
}

func (r *GroupRepo) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (name, description, admin_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		group.Name, group.Description, group.AdminID, group.CreatedAt,
	).Scan(&group.ID)
}

func (r *GroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	query := `SELECT id, name, description, admin_id, created_at FROM groups WHERE id = $1`

	var g domain.Group
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Description, &g.AdminID, &g.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, admin_id, created_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.AdminID, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
