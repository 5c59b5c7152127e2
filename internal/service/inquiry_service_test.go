package service

import (
	"context"
	"strings"
	"testing"

	"estately/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc := NewInquiryService(noopInquiryRepo(), noopPropertyRepo())
	buyer := Actor{ID: 3, Role: models.RoleUser}

	_, err := svc.Create(context.Background(), buyer, 1, "   ")
	assertValidationError(t, err)

	_, err = svc.Create(context.Background(), buyer, 1, strings.Repeat("x", 2001))
	assertValidationError(t, err)
}

func TestInquiryService_CreateRequiresApprovedListing(t *testing.T) {
	t.Parallel()

	properties := noopPropertyRepo()
	properties.getByIDFn = func(_ context.Context, id uint) (*models.Property, error) {
		return &models.Property{ID: id, Status: models.PropertyStatusPending}, nil
	}
	inquiries := noopInquiryRepo()
	inquiries.createFn = func(_ context.Context, _ *models.Inquiry) error {
		t.Fatal("create must not be called")
		return nil
	}

	_, err := NewInquiryService(inquiries, properties).Create(context.Background(), Actor{ID: 3, Role: models.RoleUser}, 1, "Hello")
	assertNotFoundError(t, err)
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	t.Parallel()

	inquiries := noopInquiryRepo()
	inquiries.getByIDFn = func(_ context.Context, id uint) (*models.Inquiry, error) {
		if id != 1 {
			return nil, models.NewNotFoundError("Inquiry")
		}
		return &models.Inquiry{ID: 1, Property: &models.PropertySummary{ID: 5, OwnerID: 7}}, nil
	}
	var saved models.InquiryStatus
	inquiries.updateStatusFn = func(_ context.Context, _ uint, st models.InquiryStatus) error {
		saved = st
		return nil
	}
	svc := NewInquiryService(inquiries, noopPropertyRepo())
	ctx := context.Background()
	owner := Actor{ID: 7, Role: models.RoleOwner}

	_, err := svc.UpdateStatus(ctx, owner, 1, "ARCHIVED")
	assertValidationError(t, err)

	_, err = svc.UpdateStatus(ctx, owner, 2, "CLOSED")
	assertNotFoundError(t, err)

	_, err = svc.UpdateStatus(ctx, Actor{ID: 8, Role: models.RoleOwner}, 1, "CLOSED")
	assertForbiddenError(t, err)
	assert.Empty(t, saved)

	_, err = svc.UpdateStatus(ctx, owner, 1, "responded")
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusResponded, saved)

	_, err = svc.UpdateStatus(ctx, Actor{ID: 1, Role: models.RoleAdmin}, 1, "CLOSED")
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusClosed, saved)
}

func TestInquiryService_OwnerInbox(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.actor(t, "owner", models.RoleOwner)
	other := env.actor(t, "other", models.RoleOwner)
	admin := env.actor(t, "admin", models.RoleAdmin)
	buyer := env.actor(t, "buyer", models.RoleUser)

	p := env.listing(t, owner, func(in *CreatePropertyInput) { in.City = "Bengaluru" })
	_, err := env.moderation.Approve(t.Context(), admin, p.ID)
	require.NoError(t, err)

	inq, err := env.inquiries.Create(t.Context(), buyer, p.ID, " Is parking included? ")
	require.NoError(t, err)
	assert.Equal(t, "Is parking included?", inq.Message)
	assert.Equal(t, models.InquiryStatusPending, inq.Status)
	require.NotNil(t, inq.User)
	assert.Equal(t, "buyer@example.com", inq.User.Email)
	require.NotNil(t, inq.Property)
	assert.Equal(t, "Bengaluru", inq.Property.City)

	inbox, err := env.inquiries.ListForOwner(t.Context(), owner)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	inbox, err = env.inquiries.ListForOwner(t.Context(), other)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}
