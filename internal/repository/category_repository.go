package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroworks/issue-service/internal/domain"
)

// CategoryRepository defines read access to static reference categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.IssueCategory, error)
	List(ctx context.Context) ([]domain.IssueCategory, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.IssueCategory, error) {
	const query = `
        SELECT id, name, color, description, created_at
        FROM issue_categories WHERE id=$1`
	var category domain.IssueCategory
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Description,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.IssueCategory, error) {
	const query = `
        SELECT id, name, color, description, created_at
        FROM issue_categories ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IssueCategory
	for rows.Next() {
		var category domain.IssueCategory
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Color,
			&category.Description,
			&category.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}
