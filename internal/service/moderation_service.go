package service

import (
	"context"
	"log/slog"

	"estately/internal/cache"
	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/notifications"
	"estately/internal/observability"
	"estately/internal/repository"
)

// ModerationService moves listings between moderation states.
// Any state may transition to APPROVED or REJECTED; there are no timers.
type ModerationService struct {
	properties repository.PropertyRepository
	cache      *cache.Store
	notifier   OwnerNotifier
}

// NewModerationService returns a new ModerationService.
func NewModerationService(properties repository.PropertyRepository, store *cache.Store) *ModerationService {
	return &ModerationService{properties: properties, cache: store}
}

// SetNotifier attaches owner notifications for moderation decisions.
func (s *ModerationService) SetNotifier(n OwnerNotifier) {
	s.notifier = n
}

// Approve makes a listing publicly searchable.
func (s *ModerationService) Approve(ctx context.Context, actor Actor, propertyID uint) (*models.Property, error) {
	return s.decide(ctx, actor, propertyID, models.PropertyStatusApproved)
}

// Reject hides a listing from public search.
func (s *ModerationService) Reject(ctx context.Context, actor Actor, propertyID uint) (*models.Property, error) {
	return s.decide(ctx, actor, propertyID, models.PropertyStatusRejected)
}

func (s *ModerationService) decide(ctx context.Context, actor Actor, propertyID uint, status models.PropertyStatus) (*models.Property, error) {
	if !actor.Role.IsAdmin() {
		return nil, models.NewForbiddenError("Admin access required")
	}

	ctx, span := observability.StartSpan(ctx, "ModerationService", string(status))
	p, err := s.transition(ctx, propertyID, status)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	observability.ModerationDecisions.WithLabelValues(string(status)).Inc()
	s.cache.BumpSearchGeneration(ctx)
	notifyOwner(ctx, s.notifier, p.OwnerID, notifications.Event{
		Type:       notifications.EventPropertyModerated,
		PropertyID: p.ID,
		Status:     string(status),
	})

	middleware.Logger.InfoContext(ctx, "property moderated",
		slog.Uint64("property_id", uint64(propertyID)),
		slog.String("status", string(status)),
		slog.Uint64("admin_id", uint64(actor.ID)),
	)
	return p, nil
}

func (s *ModerationService) transition(ctx context.Context, propertyID uint, status models.PropertyStatus) (*models.Property, error) {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	if err := s.properties.UpdateStatus(ctx, propertyID, status); err != nil {
		return nil, err
	}
	return s.properties.GetByID(ctx, propertyID)
}

// ListPending returns listings awaiting a decision, newest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.Property, error) {
	status := models.PropertyStatusPending
	return s.properties.ListByStatus(ctx, &status)
}

// ListAll returns every listing regardless of status, newest first.
func (s *ModerationService) ListAll(ctx context.Context) ([]models.Property, error) {
	return s.properties.ListByStatus(ctx, nil)
}

// PendingCount reports the moderation backlog.
func (s *ModerationService) PendingCount(ctx context.Context) (int64, error) {
	return s.properties.CountByStatus(ctx, models.PropertyStatusPending)
}
