package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
)

var ErrNewsNotFound = errors.New("news article not found")

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

const newsColumns = `
	n.id, n.title, n.slug, n.content, n.summary, n.cover_image, n.author_id, u.name,
	n.category, n.tags, n.is_published, n.is_featured, n.views, n.published_at,
	n.translations, n.created_at, n.updated_at
`

func (r *NewsRepository) Create(ctx context.Context, news models.News) error {
	const query = `
		INSERT INTO news (
			id, title, slug, content, summary, cover_image, author_id, category, tags,
			is_published, is_featured, published_at, translations, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Slug,
		news.Content,
		news.Summary,
		news.CoverImage,
		news.AuthorID,
		news.Category,
		news.Tags,
		news.IsPublished,
		news.IsFeatured,
		news.PublishedAt,
		news.Translations,
	)
	return err
}

func (r *NewsRepository) scanNews(row pgx.Row) (models.News, error) {
	var news models.News
	if err := row.Scan(
		&news.ID,
		&news.Title,
		&news.Slug,
		&news.Content,
		&news.Summary,
		&news.CoverImage,
		&news.AuthorID,
		&news.AuthorName,
		&news.Category,
		&news.Tags,
		&news.IsPublished,
		&news.IsFeatured,
		&news.Views,
		&news.PublishedAt,
		&news.Translations,
		&news.CreatedAt,
		&news.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.News{}, ErrNewsNotFound
		}
		return models.News{}, err
	}
	return news, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (models.News, error) {
	const query = `
		SELECT ` + newsColumns + `
		FROM news n JOIN users u ON u.id = n.author_id
		WHERE n.id = $1
	`
	return r.scanNews(r.pool.QueryRow(ctx, query, id))
}

// GetPublishedBySlug fetches a published article and bumps its view counter.
func (r *NewsRepository) GetPublishedBySlug(ctx context.Context, slug string) (models.News, error) {
	const query = `
		UPDATE news SET views = views + 1
		WHERE slug = $1 AND is_published = TRUE
		RETURNING id
	`
	var id string
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.News{}, ErrNewsNotFound
		}
		return models.News{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *NewsRepository) Update(ctx context.Context, news models.News) error {
	const query = `
		UPDATE news
		SET title = $2, slug = $3, content = $4, summary = $5, cover_image = $6,
		    category = $7, tags = $8, is_published = $9, is_featured = $10,
		    published_at = $11, translations = $12, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		news.ID,
		news.Title,
		news.Slug,
		news.Content,
		news.Summary,
		news.CoverImage,
		news.Category,
		news.Tags,
		news.IsPublished,
		news.IsFeatured,
		news.PublishedAt,
		news.Translations,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM news WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNewsNotFound
	}
	return nil
}

type NewsFilter struct {
	Category    *string
	Tag         *string
	IsPublished *bool
	IsFeatured  *bool
}

var newsSortColumns = map[string]string{
	"createdAt":   "n.created_at",
	"publishedAt": "n.published_at",
	"title":       "n.title",
	"views":       "n.views",
}

var newsSearchColumns = []string{
	"n.title",
	"n.content",
	"n.translations->'ar'->>'title'",
	"n.translations->'en'->>'title'",
	"n.translations->'tr'->>'title'",
}

func (r *NewsRepository) List(ctx context.Context, params pagination.Params, filter NewsFilter) ([]models.News, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += " AND n.category = $" + itoa(len(args))
	}
	if filter.Tag != nil {
		args = append(args, *filter.Tag)
		where += " AND $" + itoa(len(args)) + " = ANY(n.tags)"
	}
	if filter.IsPublished != nil {
		args = append(args, *filter.IsPublished)
		where += " AND n.is_published = $" + itoa(len(args))
	}
	if filter.IsFeatured != nil {
		args = append(args, *filter.IsFeatured)
		where += " AND n.is_featured = $" + itoa(len(args))
	}
	if clause, arg := pagination.SearchClause(params.Search, newsSearchColumns, len(args)+1); clause != "" {
		args = append(args, arg)
		where += " AND " + clause
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news n`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := pagination.OrderBy(params.Sort, newsSortColumns, "n.created_at DESC")
	query := `SELECT ` + newsColumns + ` FROM news n JOIN users u ON u.id = n.author_id` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		news, err := r.scanNews(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, news)
	}
	return items, total, rows.Err()
}
