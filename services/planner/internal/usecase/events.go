package usecase

import (
	"context"

	"some-planner/pkg/logger"
)

// EventPublisher delivers domain events to whoever listens. A nil
// publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

const (
	EventPostCreated   = "post.created"
	EventPostUpdated   = "post.updated"
	EventPostDeleted   = "post.deleted"
	EventMediaUploaded = "media.uploaded"
	EventMediaDeleted  = "media.deleted"
)

type notifier struct {
	publisher EventPublisher
	logger    *logger.Logger
}

// notify never fails the caller; the change it reports is already committed.
func (n notifier) notify(ctx context.Context, eventType string, payload interface{}) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, eventType, payload); err != nil {
		n.logger.Warn("Failed to publish %s: %v", eventType, err)
	}
}
