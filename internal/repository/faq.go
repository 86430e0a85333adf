package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
)

var ErrFAQNotFound = errors.New("faq not found")

type FAQRepository struct {
	pool *pgxpool.Pool
}

func NewFAQRepository(pool *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{pool: pool}
}

const faqColumns = `id, question, answer, category, position, is_published, translations, created_at, updated_at`

func (r *FAQRepository) Create(ctx context.Context, faq models.FAQ) error {
	const query = `
		INSERT INTO faqs (id, question, answer, category, position, is_published, translations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		faq.ID,
		faq.Question,
		faq.Answer,
		faq.Category,
		faq.Position,
		faq.IsPublished,
		faq.Translations,
	)
	return err
}

func (r *FAQRepository) scanFAQ(row pgx.Row) (models.FAQ, error) {
	var faq models.FAQ
	if err := row.Scan(
		&faq.ID,
		&faq.Question,
		&faq.Answer,
		&faq.Category,
		&faq.Position,
		&faq.IsPublished,
		&faq.Translations,
		&faq.CreatedAt,
		&faq.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FAQ{}, ErrFAQNotFound
		}
		return models.FAQ{}, err
	}
	return faq, nil
}

func (r *FAQRepository) GetByID(ctx context.Context, id string) (models.FAQ, error) {
	const query = `SELECT ` + faqColumns + ` FROM faqs WHERE id = $1`
	return r.scanFAQ(r.pool.QueryRow(ctx, query, id))
}

func (r *FAQRepository) Update(ctx context.Context, faq models.FAQ) error {
	const query = `
		UPDATE faqs
		SET question = $2, answer = $3, category = $4, position = $5,
		    is_published = $6, translations = $7, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		faq.ID,
		faq.Question,
		faq.Answer,
		faq.Category,
		faq.Position,
		faq.IsPublished,
		faq.Translations,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}

func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM faqs WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}

type FAQFilter struct {
	Category    *string
	IsPublished *bool
}

var faqSortColumns = map[string]string{
	"position":  "position",
	"createdAt": "created_at",
}

var faqSearchColumns = []string{
	"question",
	"answer",
	"translations->'ar'->>'title'",
	"translations->'en'->>'title'",
	"translations->'tr'->>'title'",
}

func (r *FAQRepository) List(ctx context.Context, params pagination.Params, filter FAQFilter) ([]models.FAQ, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += " AND category = $" + itoa(len(args))
	}
	if filter.IsPublished != nil {
		args = append(args, *filter.IsPublished)
		where += " AND is_published = $" + itoa(len(args))
	}
	if clause, arg := pagination.SearchClause(params.Search, faqSearchColumns, len(args)+1); clause != "" {
		args = append(args, arg)
		where += " AND " + clause
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := pagination.OrderBy(params.Sort, faqSortColumns, "position ASC")
	query := `SELECT ` + faqColumns + ` FROM faqs` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.FAQ
	for rows.Next() {
		faq, err := r.scanFAQ(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, faq)
	}
	return items, total, rows.Err()
}
