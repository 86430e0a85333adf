package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Default column list deliberately excludes password_hash; callers that need
// it for verification must use the WithPassword variants.
const userColumns = `id, name, email, role, is_active, password_changed_at, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, name, email, password_hash, role, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	)
	return err
}

func (r *UserRepository) scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.PasswordChangedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) scanUserWithPassword(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.PasswordChangedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) FindByEmailWithPassword(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, is_active, password_changed_at, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`
	return r.scanUserWithPassword(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByIDWithPassword(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, is_active, password_changed_at, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.scanUserWithPassword(r.pool.QueryRow(ctx, query, id))
}

// UpdatePassword replaces the hash, stamps password_changed_at slightly in
// the past to tolerate clock races with token issue times, and clears any
// pending reset token.
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `
		UPDATE users
		SET password_hash = $2,
		    password_changed_at = NOW() - INTERVAL '1 second',
		    password_reset_token = NULL,
		    password_reset_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id string, tokenDigest string, expiresAt time.Time) error {
	const query = `
		UPDATE users
		SET password_reset_token = $2,
		    password_reset_expiry = $3,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, tokenDigest, expiresAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByResetToken matches the stored digest and only returns a user whose
// reset token has not expired.
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenDigest string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE password_reset_token = $1 AND password_reset_expiry > NOW()
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, tokenDigest))
}

// ClearExpiredResetTokens drops reset tokens past their expiry. Run from the
// cleanup job.
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	const query = `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expiry = NULL
		WHERE password_reset_expiry IS NOT NULL AND password_reset_expiry <= NOW()
	`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"email":     "email",
	"role":      "role",
}

type UserFilter struct {
	Role     *models.Role
	IsActive *bool
}

func (r *UserRepository) List(ctx context.Context, params pagination.Params, filter UserFilter) ([]models.User, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		where += " AND role = $" + itoa(len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += " AND is_active = $" + itoa(len(args))
	}
	if clause, arg := pagination.SearchClause(params.Search, []string{"name", "email"}, len(args)+1); clause != "" {
		args = append(args, arg)
		where += " AND " + clause
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := pagination.OrderBy(params.Sort, userSortColumns, "created_at DESC")
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.IsActive,
			&user.PasswordChangedAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}
