package service

import (
	"context"
	"testing"

	"estately/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerationService_RequiresAdmin(t *testing.T) {
	t.Parallel()

	repo := noopPropertyRepo()
	repo.updateStatusFn = func(_ context.Context, _ uint, _ models.PropertyStatus) error {
		t.Fatal("status must not change")
		return nil
	}
	svc := NewModerationService(repo, nil)

	for _, role := range []models.Role{models.RoleUser, models.RoleOwner} {
		_, err := svc.Approve(context.Background(), Actor{ID: 2, Role: role}, 1)
		assertForbiddenError(t, err)
		_, err = svc.Reject(context.Background(), Actor{ID: 2, Role: role}, 1)
		assertForbiddenError(t, err)
	}
}

func TestModerationService_MissingProperty(t *testing.T) {
	t.Parallel()

	repo := noopPropertyRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Property, error) {
		return nil, models.NewNotFoundError("Property")
	}
	svc := NewModerationService(repo, nil)

	_, err := svc.Approve(context.Background(), Actor{ID: 1, Role: models.RoleAdmin}, 404)
	assertNotFoundError(t, err)
}

func TestModerationService_AnyStateTransitions(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.actor(t, "owner", models.RoleOwner)
	admin := env.actor(t, "admin", models.RoleAdmin)
	p := env.listing(t, owner, nil)

	steps := []struct {
		decide func(context.Context, Actor, uint) (*models.Property, error)
		want   models.PropertyStatus
	}{
		{env.moderation.Reject, models.PropertyStatusRejected},
		{env.moderation.Approve, models.PropertyStatusApproved},
		{env.moderation.Approve, models.PropertyStatusApproved},
		{env.moderation.Reject, models.PropertyStatusRejected},
	}
	for _, step := range steps {
		got, err := step.decide(t.Context(), admin, p.ID)
		require.NoError(t, err)
		assert.Equal(t, step.want, got.Status)
		require.NotNil(t, got.Owner)
	}
}

func TestModerationService_Listings(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.actor(t, "owner", models.RoleOwner)
	admin := env.actor(t, "admin", models.RoleAdmin)

	a := env.listing(t, owner, nil)
	env.listing(t, owner, nil)
	_, err := env.moderation.Approve(t.Context(), admin, a.ID)
	require.NoError(t, err)

	pending, err := env.moderation.ListPending(t.Context())
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := env.moderation.ListAll(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := env.moderation.PendingCount(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
