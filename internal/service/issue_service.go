package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/metroworks/issue-service/internal/domain"
	"github.com/metroworks/issue-service/internal/events"
	"github.com/metroworks/issue-service/internal/repository"
	apperrors "github.com/metroworks/issue-service/pkg/util"
)

// IssueService owns the issue lifecycle: creation, status transitions, worker
// assignment, and the audit trail.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	updates    repository.UpdateRepository
	photos     repository.PhotoRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles repositories for the issue service.
type IssueDependencies struct {
	IssueRepo    repository.IssueRepository
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	UpdateRepo   repository.UpdateRepository
	PhotoRepo    repository.PhotoRepository
	Dispatcher   events.Dispatcher
}

// IssueCreateInput describes issue creation payload. Coordinates arrive
// already parsed; the HTTP layer rejects non-numeric input.
type IssueCreateInput struct {
	Title        string
	Description  string
	Latitude     float64
	Longitude    float64
	Address      *string
	Priority     domain.IssuePriority
	CategoryID   string
	ReportedByID string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		users:      deps.UserRepo,
		categories: deps.CategoryRepo,
		updates:    deps.UpdateRepo,
		photos:     deps.PhotoRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateIssue validates and persists a new report. The report itself is the
// origin event; no audit row is written.
func (s *IssueService) CreateIssue(ctx context.Context, input IssueCreateInput) (*domain.Issue, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.CategoryID == "" || input.ReportedByID == "" {
		return nil, apperrors.NewValidationError("title, categoryId and reportedById are required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.IssuePriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority")
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, apperrors.MapError(err)
	}
	reporter, err := s.users.GetByID(ctx, input.ReportedByID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	issue := &domain.Issue{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Address:      input.Address,
		Priority:     priority,
		Status:       domain.IssueStatusReported,
		CategoryID:   category.ID,
		ReportedByID: reporter.ID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	issue.Category = category
	issue.ReportedBy = reporter.Profile()

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		ActorID: reporter.ID,
		Payload: events.IssueCreatedPayload{
			CategoryID: issue.CategoryID,
			Priority:   issue.Priority,
			Title:      issue.Title,
		},
	})
	return issue, nil
}

// SetStatus writes a new status directly. Transitions are deliberately
// permissive: any of the three values is accepted regardless of the current
// status, and only the value itself is validated.
func (s *IssueService) SetStatus(ctx context.Context, issueID string, newStatus domain.IssueStatus, actorID string) (*domain.Issue, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status")
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := issue.Status
	issue.Status = newStatus
	if newStatus == domain.IssueStatusResolved {
		now := time.Now()
		issue.ResolvedAt = &now
	} else {
		// Re-opening clears the resolution timestamp.
		issue.ResolvedAt = nil
	}
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}

	if oldStatus != newStatus {
		entry := &domain.IssueUpdate{
			IssueID:     issue.ID,
			Message:     "Status changed from " + humanStatus(oldStatus) + " to " + humanStatus(newStatus),
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
			UpdatedByID: s.resolveActor(actorID, issue),
		}
		if err := s.updates.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		ActorID: s.resolveActor(actorID, issue),
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return issue, nil
}

// Assign links the issue to a worker, or unassigns it when assignedToID is
// nil. Assigning forces status IN_PROGRESS and unassigning forces REPORTED,
// overriding whatever status previously held; an assigned issue is never shown
// as unstarted, at the cost of silently reopening a resolved one.
func (s *IssueService) Assign(ctx context.Context, issueID string, assignedToID *string, actorID string) (*domain.Issue, error) {
	// Clients unassign by sending an empty id as well as by omitting it.
	if assignedToID != nil && *assignedToID == "" {
		assignedToID = nil
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, apperrors.MapError(err)
	}

	var newAssignee *domain.UserProfile
	if assignedToID != nil {
		worker, err := s.users.GetByID(ctx, *assignedToID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user")
			}
			return nil, apperrors.MapError(err)
		}
		newAssignee = worker.Profile()
	}

	oldStatus := issue.Status
	oldName := assigneeName(issue.AssignedTo)

	if newAssignee != nil {
		now := time.Now()
		issue.AssignedToID = &newAssignee.ID
		issue.AssignedAt = &now
		issue.Status = domain.IssueStatusInProgress
	} else {
		issue.AssignedToID = nil
		issue.AssignedAt = nil
		issue.Status = domain.IssueStatusReported
	}
	// The forced status is never RESOLVED, so the resolution timestamp is
	// cleared to keep it in lockstep with the status.
	issue.ResolvedAt = nil
	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	issue.AssignedTo = newAssignee

	if newName := assigneeName(newAssignee); oldName != newName {
		entry := &domain.IssueUpdate{
			IssueID:     issue.ID,
			Message:     "Assignment changed from " + oldName + " to " + newName,
			OldStatus:   oldStatus,
			NewStatus:   issue.Status,
			UpdatedByID: s.resolveActor(actorID, issue),
		}
		if err := s.updates.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueAssigned,
		IssueID: issue.ID,
		ActorID: s.resolveActor(actorID, issue),
		Payload: events.IssueAssignedPayload{
			AssignedToID: issue.AssignedToID,
			NewStatus:    issue.Status,
		},
	})
	return issue, nil
}

// AddComment appends a free-text audit entry. Both status snapshots equal the
// current status, which distinguishes pure comments from transitions.
func (s *IssueService) AddComment(ctx context.Context, issueID, message, updatedByID string) (*domain.IssueUpdate, error) {
	message = strings.TrimSpace(message)
	if message == "" || updatedByID == "" {
		return nil, apperrors.NewValidationError("message and updatedById are required")
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, apperrors.MapError(err)
	}
	author, err := s.users.GetByID(ctx, updatedByID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}

	entry := &domain.IssueUpdate{
		IssueID:     issue.ID,
		Message:     message,
		OldStatus:   issue.Status,
		NewStatus:   issue.Status,
		UpdatedByID: author.ID,
	}
	if err := s.updates.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	entry.UpdatedBy = author.Profile()

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCommentAdded,
		IssueID: issue.ID,
		ActorID: author.ID,
		Payload: events.IssueCommentAddedPayload{
			UpdateID:       entry.ID,
			MessagePreview: messagePreview(message, 120),
		},
	})
	return entry, nil
}

// ListIssues returns issues with their relations, newest report first.
func (s *IssueService) ListIssues(ctx context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return issues, nil
}

// GetIssue returns one issue with category, reporter, assignee, photos
// (oldest first) and updates (most recent activity first).
func (s *IssueService) GetIssue(ctx context.Context, issueID string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, apperrors.MapError(err)
	}
	photos, err := s.photos.ListByIssue(ctx, issue.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	updates, err := s.updates.ListByIssue(ctx, issue.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	issue.Photos = photos
	issue.Updates = updates
	return issue, nil
}

// ListUsers returns all accounts ordered by role then name.
func (s *IssueService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUserByEmail returns the matching account.
func (s *IssueService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListCategories returns all categories ordered by name.
func (s *IssueService) ListCategories(ctx context.Context) ([]domain.IssueCategory, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// resolveActor falls back to the original reporter when no acting user was
// identified, which keeps unauthenticated demo clients working.
func (s *IssueService) resolveActor(actorID string, issue *domain.Issue) string {
	if actorID != "" {
		return actorID
	}
	return issue.ReportedByID
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return apperrors.NewValidationError("latitude and longitude must be numeric")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return apperrors.NewValidationError("latitude or longitude out of range")
	}
	return nil
}

func humanStatus(status domain.IssueStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

func assigneeName(profile *domain.UserProfile) string {
	if profile == nil {
		return "Unassigned"
	}
	return profile.Name
}

func messagePreview(message string, max int) string {
	if len(message) <= max {
		return message
	}
	if max <= 3 {
		return message[:max]
	}
	return message[:max-3] + "..."
}
