package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroworks/issue-service/internal/domain"
)

// UpdateRepository persists the append-only audit trail. Rows are never
// mutated or deleted.
type UpdateRepository interface {
	Create(ctx context.Context, update *domain.IssueUpdate) error
	ListByIssue(ctx context.Context, issueID string) ([]domain.IssueUpdate, error)
}

type updateRepository struct {
	pool *pgxpool.Pool
}

// NewUpdateRepository constructs repository.
func NewUpdateRepository(pool *pgxpool.Pool) UpdateRepository {
	return &updateRepository{pool: pool}
}

func (r *updateRepository) Create(ctx context.Context, update *domain.IssueUpdate) error {
	const query = `
        INSERT INTO issue_updates (issue_id, message, old_status, new_status, updated_by_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		update.IssueID,
		update.Message,
		update.OldStatus,
		update.NewStatus,
		update.UpdatedByID,
	).Scan(&update.ID, &update.CreatedAt)
}

// ListByIssue returns the trail newest first with the authoring user joined.
func (r *updateRepository) ListByIssue(ctx context.Context, issueID string) ([]domain.IssueUpdate, error) {
	const query = `
        SELECT u.id, u.issue_id, u.message, u.old_status, u.new_status, u.updated_by_id, u.created_at,
               a.id, a.name, a.email, a.role, a.department
        FROM issue_updates u
        JOIN users a ON a.id = u.updated_by_id
        WHERE u.issue_id=$1 ORDER BY u.created_at DESC`
	rows, err := r.pool.Query(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IssueUpdate
	for rows.Next() {
		var (
			update domain.IssueUpdate
			author domain.UserProfile
		)
		if err := rows.Scan(
			&update.ID,
			&update.IssueID,
			&update.Message,
			&update.OldStatus,
			&update.NewStatus,
			&update.UpdatedByID,
			&update.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Role,
			&author.Department,
		); err != nil {
			return nil, err
		}
		update.UpdatedBy = &author
		result = append(result, update)
	}
	return result, rows.Err()
}
