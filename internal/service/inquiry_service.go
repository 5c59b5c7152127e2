package service

import (
	"context"
	"log/slog"
	"strings"

	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/notifications"
	"estately/internal/repository"
)

const maxInquiryLen = 2000

// InquiryService routes messages from users to listing owners.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	properties repository.PropertyRepository
	notifier   OwnerNotifier
}

func NewInquiryService(inquiries repository.InquiryRepository, properties repository.PropertyRepository) *InquiryService {
	return &InquiryService{inquiries: inquiries, properties: properties}
}

// SetNotifier attaches owner notifications for new inquiries.
func (s *InquiryService) SetNotifier(n OwnerNotifier) {
	s.notifier = n
}

// Create sends an inquiry about an approved listing.
func (s *InquiryService) Create(ctx context.Context, actor Actor, propertyID uint, message string) (*models.Inquiry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(message) > maxInquiryLen {
		return nil, models.NewValidationError("Message too long (max 2000 characters)")
	}

	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic() {
		return nil, models.NewNotFoundError("Property")
	}

	inq := &models.Inquiry{
		Message:    message,
		PropertyID: propertyID,
		UserID:     actor.ID,
		Status:     models.InquiryStatusPending,
	}
	if err := s.inquiries.Create(ctx, inq); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "inquiry sent",
		slog.Uint64("inquiry_id", uint64(inq.ID)),
		slog.Uint64("property_id", uint64(propertyID)),
	)
	notifyOwner(ctx, s.notifier, p.OwnerID, notifications.Event{
		Type:       notifications.EventInquiryReceived,
		PropertyID: propertyID,
		InquiryID:  inq.ID,
	})
	return s.inquiries.GetByID(ctx, inq.ID)
}

// ListForOwner returns inquiries on the actor's own listings, newest first.
func (s *InquiryService) ListForOwner(ctx context.Context, actor Actor) ([]models.Inquiry, error) {
	return s.inquiries.ListForOwner(ctx, actor.ID)
}

// UpdateStatus is allowed for the owner of the inquired listing or an admin.
func (s *InquiryService) UpdateStatus(ctx context.Context, actor Actor, id uint, status string) (*models.Inquiry, error) {
	st, err := models.ParseInquiryStatus(status)
	if err != nil {
		return nil, models.NewValidationError("Status must be PENDING, RESPONDED or CLOSED")
	}

	inq, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inq.Property == nil {
		return nil, models.NewNotFoundError("Property")
	}
	if err := authorizeOwnership(actor, inq.Property.OwnerID, "update this inquiry"); err != nil {
		return nil, err
	}

	if err := s.inquiries.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	return s.inquiries.GetByID(ctx, id)
}
