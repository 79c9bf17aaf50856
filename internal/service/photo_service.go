package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/metroworks/issue-service/internal/domain"
	"github.com/metroworks/issue-service/internal/events"
	"github.com/metroworks/issue-service/internal/repository"
	"github.com/metroworks/issue-service/internal/storage"
	apperrors "github.com/metroworks/issue-service/pkg/util"
)

const (
	maxPhotoSlots = 5
	maxPhotoBytes = 5 * 1024 * 1024
)

// PhotoService validates and persists uploaded images tied to an issue.
type PhotoService struct {
	issues     repository.IssueRepository
	photos     repository.PhotoRepository
	store      storage.PhotoStore
	dispatcher events.Dispatcher
	now        func() time.Time
}

// PhotoDependencies bundles collaborators for the photo service.
type PhotoDependencies struct {
	IssueRepo  repository.IssueRepository
	PhotoRepo  repository.PhotoRepository
	Store      storage.PhotoStore
	Dispatcher events.Dispatcher
}

// PhotoInput describes one submitted file slot.
type PhotoInput struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadResult reports the accepted photos; skipped files are only visible to
// the caller through the count.
type UploadResult struct {
	UploadedPhotos []string
	Count          int
}

// NewPhotoService constructs the service.
func NewPhotoService(deps PhotoDependencies) *PhotoService {
	return &PhotoService{
		issues:     deps.IssueRepo,
		photos:     deps.PhotoRepo,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// AttachPhotos processes up to five file slots for an issue. Non-image files
// and files over 5 MiB are skipped, not rejected. Accepted files are written
// to the store under a timestamp-keyed name and recorded with an
// auto-generated caption.
func (s *PhotoService) AttachPhotos(ctx context.Context, issueID string, files []*PhotoInput) (*UploadResult, error) {
	if issueID == "" {
		return nil, apperrors.NewValidationError("issueId is required")
	}
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, apperrors.MapError(err)
	}

	result := &UploadResult{UploadedPhotos: []string{}}
	for slot := 0; slot < maxPhotoSlots && slot < len(files); slot++ {
		file := files[slot]
		if file == nil {
			continue
		}
		if !strings.HasPrefix(file.ContentType, "image/") {
			continue
		}
		if file.Size > maxPhotoBytes {
			continue
		}

		content, err := file.Open()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		name := fmt.Sprintf("%s_%d_%d%s", issue.ID, s.now().UnixMilli(), slot, filepath.Ext(file.Filename))
		url, err := s.store.Save(ctx, name, content)
		content.Close()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}

		caption := fmt.Sprintf("Photo %d for issue %s", slot+1, issue.Title)
		photo := &domain.IssuePhoto{
			IssueID: issue.ID,
			URL:     url,
			Caption: &caption,
		}
		if err := s.photos.Create(ctx, photo); err != nil {
			return nil, apperrors.MapError(err)
		}
		result.UploadedPhotos = append(result.UploadedPhotos, url)
	}
	result.Count = len(result.UploadedPhotos)

	if s.dispatcher != nil && result.Count > 0 {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventIssuePhotosUploaded,
			IssueID:   issue.ID,
			ActorID:   issue.ReportedByID,
			Timestamp: s.now(),
			Payload: events.IssuePhotosUploadedPayload{
				Count: result.Count,
				URLs:  result.UploadedPhotos,
			},
		})
	}
	return result, nil
}

// ListPhotos returns an issue's photos oldest first.
func (s *PhotoService) ListPhotos(ctx context.Context, issueID string) ([]domain.IssuePhoto, error) {
	if issueID == "" {
		return nil, apperrors.NewValidationError("issueId is required")
	}
	photos, err := s.photos.ListByIssue(ctx, issueID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return photos, nil
}
