package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroworks/issue-service/internal/domain"
)

// IssueFilter captures optional list predicates. Zero-value fields are not
// applied, so an empty filter returns every issue.
type IssueFilter struct {
	Status     *domain.IssueStatus
	CategoryID *string
	AssignedTo *string
	Unassigned bool
}

// IssueRepository encapsulates issue persistence. Reads return issues with
// their category and reporter/assignee projections populated.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Update(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (title, description, latitude, longitude, address, priority, status, category_id, reported_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, reported_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		issue.Title,
		issue.Description,
		issue.Latitude,
		issue.Longitude,
		issue.Address,
		issue.Priority,
		issue.Status,
		issue.CategoryID,
		issue.ReportedByID,
	).Scan(&issue.ID, &issue.ReportedAt, &issue.UpdatedAt)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET status=$1, priority=$2, assigned_to_id=$3, assigned_at=$4,
            resolved_at=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		issue.Status,
		issue.Priority,
		issue.AssignedToID,
		issue.AssignedAt,
		issue.ResolvedAt,
		issue.ID,
	).Scan(&issue.UpdatedAt)
}

const issueSelect = `
        SELECT i.id, i.title, i.description, i.latitude, i.longitude, i.address,
               i.priority, i.status, i.category_id, i.reported_by_id, i.assigned_to_id,
               i.assigned_at, i.resolved_at, i.reported_at, i.updated_at,
               c.id, c.name, c.color, c.description, c.created_at,
               r.id, r.name, r.email, r.role, r.department,
               a.id, a.name, a.email, a.role, a.department
        FROM issues i
        JOIN issue_categories c ON c.id = i.category_id
        JOIN users r ON r.id = i.reported_by_id
        LEFT JOIN users a ON a.id = i.assigned_to_id`

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	row := r.pool.QueryRow(ctx, issueSelect+` WHERE i.id=$1`, id)
	return scanIssue(row)
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("i.status=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("i.category_id=$%d", len(args)))
	}
	if filter.Unassigned {
		clauses = append(clauses, "i.assigned_to_id IS NULL")
	} else if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("i.assigned_to_id=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY i.reported_at DESC",
		issueSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *issue)
	}
	return result, rows.Err()
}

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var (
		issue    domain.Issue
		category domain.IssueCategory
		reporter domain.UserProfile
		aID      *string
		aName    *string
		aEmail   *string
		aRole    *string
		aDept    *string
	)
	if err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Latitude,
		&issue.Longitude,
		&issue.Address,
		&issue.Priority,
		&issue.Status,
		&issue.CategoryID,
		&issue.ReportedByID,
		&issue.AssignedToID,
		&issue.AssignedAt,
		&issue.ResolvedAt,
		&issue.ReportedAt,
		&issue.UpdatedAt,
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Description,
		&category.CreatedAt,
		&reporter.ID,
		&reporter.Name,
		&reporter.Email,
		&reporter.Role,
		&reporter.Department,
		&aID,
		&aName,
		&aEmail,
		&aRole,
		&aDept,
	); err != nil {
		return nil, err
	}
	issue.Category = &category
	issue.ReportedBy = &reporter
	if aID != nil {
		issue.AssignedTo = &domain.UserProfile{
			ID:         *aID,
			Name:       derefString(aName),
			Email:      derefString(aEmail),
			Role:       domain.UserRole(derefString(aRole)),
			Department: aDept,
		}
	}
	return &issue, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
