package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/metroworks/issue-service/internal/events"
)

// NotificationService logs domain events as they occur. State changes are
// observed by clients via re-fetch; this is purely an operational trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIssueCreated, n.handle("IssueCreated"))
	n.dispatcher.Subscribe(events.EventIssueStatusChanged, n.handle("IssueStatusChanged"))
	n.dispatcher.Subscribe(events.EventIssueAssigned, n.handle("IssueAssigned"))
	n.dispatcher.Subscribe(events.EventIssueCommentAdded, n.handle("IssueCommentAdded"))
	n.dispatcher.Subscribe(events.EventIssuePhotosUploaded, n.handle("IssuePhotosUploaded"))
}

func (n *NotificationService) handle(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("issue_id", event.IssueID),
			zap.String("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
		return nil
	}
}
