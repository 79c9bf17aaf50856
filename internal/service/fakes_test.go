package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/metroworks/issue-service/internal/domain"
	"github.com/metroworks/issue-service/internal/events"
	"github.com/metroworks/issue-service/internal/repository"
)

// In-memory repository fakes mirroring the Postgres implementations: missing
// rows surface as pgx.ErrNoRows and list orderings match the SQL ORDER BY
// clauses.

type fakeIssueRepo struct {
	mu         sync.Mutex
	seq        int
	issues     map[string]domain.Issue
	users      *fakeUserRepo
	categories *fakeCategoryRepo
}

func newFakeIssueRepo(users *fakeUserRepo, categories *fakeCategoryRepo) *fakeIssueRepo {
	return &fakeIssueRepo{
		issues:     make(map[string]domain.Issue),
		users:      users,
		categories: categories,
	}
}

// attach mirrors the SQL joins: category, reporter and assignee come back
// populated on every read.
func (r *fakeIssueRepo) attach(issue domain.Issue) domain.Issue {
	if r.categories != nil {
		if category, ok := r.categories.categories[issue.CategoryID]; ok {
			copied := category
			issue.Category = &copied
		}
	}
	if r.users != nil {
		if user, ok := r.users.users[issue.ReportedByID]; ok {
			issue.ReportedBy = user.Profile()
		}
		issue.AssignedTo = nil
		if issue.AssignedToID != nil {
			if user, ok := r.users.users[*issue.AssignedToID]; ok {
				issue.AssignedTo = user.Profile()
			}
		}
	}
	return issue
}

func (r *fakeIssueRepo) Create(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	issue.ID = fmt.Sprintf("issue-%d", r.seq)
	issue.ReportedAt = time.Unix(0, int64(r.seq)*int64(time.Millisecond))
	issue.UpdatedAt = issue.ReportedAt
	r.issues[issue.ID] = *issue
	return nil
}

func (r *fakeIssueRepo) Update(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[issue.ID]; !ok {
		return pgx.ErrNoRows
	}
	issue.UpdatedAt = time.Now()
	r.issues[issue.ID] = *issue
	return nil
}

func (r *fakeIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := r.attach(issue)
	return &copied, nil
}

func (r *fakeIssueRepo) List(ctx context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Issue
	for _, issue := range r.issues {
		if filter.Status != nil && issue.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && issue.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Unassigned && issue.AssignedToID != nil {
			continue
		}
		if !filter.Unassigned && filter.AssignedTo != nil {
			if issue.AssignedToID == nil || *issue.AssignedToID != *filter.AssignedTo {
				continue
			}
		}
		result = append(result, r.attach(issue))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ReportedAt.After(result[j].ReportedAt)
	})
	return result, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

type fakeCategoryRepo struct {
	categories map[string]domain.IssueCategory
}

func newFakeCategoryRepo(categories ...domain.IssueCategory) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[string]domain.IssueCategory)}
	for _, category := range categories {
		repo.categories[category.ID] = category
	}
	return repo
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.IssueCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.IssueCategory, error) {
	result := make([]domain.IssueCategory, 0, len(r.categories))
	for _, category := range r.categories {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

type fakeUpdateRepo struct {
	mu      sync.Mutex
	seq     int
	entries []domain.IssueUpdate
	users   *fakeUserRepo
}

func newFakeUpdateRepo(users *fakeUserRepo) *fakeUpdateRepo {
	return &fakeUpdateRepo{users: users}
}

func (r *fakeUpdateRepo) Create(ctx context.Context, update *domain.IssueUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	update.ID = fmt.Sprintf("update-%d", r.seq)
	update.CreatedAt = time.Unix(0, int64(r.seq)*int64(time.Millisecond))
	r.entries = append(r.entries, *update)
	return nil
}

func (r *fakeUpdateRepo) ListByIssue(ctx context.Context, issueID string) ([]domain.IssueUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.IssueUpdate
	for _, entry := range r.entries {
		if entry.IssueID != issueID {
			continue
		}
		if r.users != nil {
			if user, ok := r.users.users[entry.UpdatedByID]; ok {
				entry.UpdatedBy = user.Profile()
			}
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeUpdateRepo) byIssue(issueID string) []domain.IssueUpdate {
	entries, _ := r.ListByIssue(context.Background(), issueID)
	return entries
}

type fakePhotoRepo struct {
	mu     sync.Mutex
	seq    int
	photos []domain.IssuePhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{}
}

func (r *fakePhotoRepo) Create(ctx context.Context, photo *domain.IssuePhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	photo.ID = fmt.Sprintf("photo-%d", r.seq)
	photo.CreatedAt = time.Unix(0, int64(r.seq)*int64(time.Millisecond))
	r.photos = append(r.photos, *photo)
	return nil
}

func (r *fakePhotoRepo) ListByIssue(ctx context.Context, issueID string) ([]domain.IssuePhoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.IssuePhoto
	for _, photo := range r.photos {
		if photo.IssueID == issueID {
			result = append(result, photo)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// memStore keeps uploaded bytes in a map.
type memStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{saved: make(map[string][]byte)}
}

func (s *memStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[name] = buf.Bytes()
	return "/uploads/issues/" + name, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
