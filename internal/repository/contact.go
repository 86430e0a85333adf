package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
)

var ErrContactNotFound = errors.New("contact message not found")

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `id, name, email, subject, message, status, created_at, updated_at`

func (r *ContactRepository) Create(ctx context.Context, contact models.Contact) error {
	const query = `
		INSERT INTO contacts (id, name, email, subject, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.Status,
	)
	return err
}

func (r *ContactRepository) scanContact(row pgx.Row) (models.Contact, error) {
	var contact models.Contact
	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Subject,
		&contact.Message,
		&contact.Status,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Contact{}, ErrContactNotFound
		}
		return models.Contact{}, err
	}
	return contact, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (models.Contact, error) {
	const query = `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return r.scanContact(r.pool.QueryRow(ctx, query, id))
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	const query = `UPDATE contacts SET status = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contacts WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

type ContactFilter struct {
	Status *models.ContactStatus
}

var contactSortColumns = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
}

func (r *ContactRepository) List(ctx context.Context, params pagination.Params, filter ContactFilter) ([]models.Contact, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += " AND status = $" + itoa(len(args))
	}
	if clause, arg := pagination.SearchClause(params.Search, []string{"name", "email", "subject", "message"}, len(args)+1); clause != "" {
		args = append(args, arg)
		where += " AND " + clause
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := pagination.OrderBy(params.Sort, contactSortColumns, "created_at DESC")
	query := `SELECT ` + contactColumns + ` FROM contacts` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.Contact
	for rows.Next() {
		contact, err := r.scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, contact)
	}
	return items, total, rows.Err()
}
