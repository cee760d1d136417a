package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zetedec/lanchat/internal/domain"
)

const userColumns = "id, username, password_hash, ip_address, role, profile_pic, bio, created_at, last_seen"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, ip_address, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.IPAddress, user.Role, user.CreatedAt,
	).Scan(&user.ID)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) GetByIP(ctx context.Context, ip string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE ip_address = $1", ip)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUserRow(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, profilePic, bio *string) error {
	query := `
		UPDATE users
		SET profile_pic = COALESCE($1, profile_pic), bio = COALESCE($2, bio)
		WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, profilePic, bio, id)
	return err
}

func (r *UserRepo) TouchLastSeen(ctx context.Context, id int64, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_seen = $1 WHERE id = $2`, seenAt, id)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := scanUserRow(r.pool.QueryRow(ctx, query, arg), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserRow(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.IPAddress, &u.Role,
		&u.ProfilePic, &u.Bio, &u.CreatedAt, &u.LastSeen,
	)
}
