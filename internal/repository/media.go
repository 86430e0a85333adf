package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
)

var ErrMediaNotFound = errors.New("media not found")

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

const mediaColumns = `id, uploader_id, bucket, object_key, file_name, content_type, size_bytes, created_at`

func (r *MediaRepository) Create(ctx context.Context, media models.Media) error {
	const query = `
		INSERT INTO media (id, uploader_id, bucket, object_key, file_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		media.ID,
		media.UploaderID,
		media.Bucket,
		media.ObjectKey,
		media.FileName,
		media.ContentType,
		media.SizeBytes,
	)
	return err
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (models.Media, error) {
	const query = `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	var media models.Media
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&media.ID,
		&media.UploaderID,
		&media.Bucket,
		&media.ObjectKey,
		&media.FileName,
		&media.ContentType,
		&media.SizeBytes,
		&media.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, ErrMediaNotFound
		}
		return models.Media{}, err
	}
	return media, nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM media WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMediaNotFound
	}
	return nil
}

var mediaSortColumns = map[string]string{
	"createdAt": "created_at",
	"fileName":  "file_name",
	"size":      "size_bytes",
}

func (r *MediaRepository) List(ctx context.Context, params pagination.Params, uploaderID *string) ([]models.Media, int64, error) {
	where := " WHERE 1=1"
	args := []any{}

	if uploaderID != nil {
		args = append(args, *uploaderID)
		where += " AND uploader_id = $" + itoa(len(args))
	}
	if clause, arg := pagination.SearchClause(params.Search, []string{"file_name"}, len(args)+1); clause != "" {
		args = append(args, arg)
		where += " AND " + clause
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM media`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := pagination.OrderBy(params.Sort, mediaSortColumns, "created_at DESC")
	query := `SELECT ` + mediaColumns + ` FROM media` + where +
		` ORDER BY ` + orderBy +
		` LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		var media models.Media
		if err := rows.Scan(
			&media.ID,
			&media.UploaderID,
			&media.Bucket,
			&media.ObjectKey,
			&media.FileName,
			&media.ContentType,
			&media.SizeBytes,
			&media.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, media)
	}
	return items, total, rows.Err()
}
