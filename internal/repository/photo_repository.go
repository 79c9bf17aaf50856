package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroworks/issue-service/internal/domain"
)

// PhotoRepository persists photo metadata rows.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.IssuePhoto) error
	ListByIssue(ctx context.Context, issueID string) ([]domain.IssuePhoto, error)
}

type photoRepository struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository constructs repository.
func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &photoRepository{pool: pool}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.IssuePhoto) error {
	const query = `
        INSERT INTO issue_photos (issue_id, url, caption)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		photo.IssueID,
		photo.URL,
		photo.Caption,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) ListByIssue(ctx context.Context, issueID string) ([]domain.IssuePhoto, error) {
	const query = `
        SELECT id, issue_id, url, caption, created_at
        FROM issue_photos WHERE issue_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IssuePhoto
	for rows.Next() {
		var photo domain.IssuePhoto
		if err := rows.Scan(
			&photo.ID,
			&photo.IssueID,
			&photo.URL,
			&photo.Caption,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, photo)
	}
	return result, rows.Err()
}
