package service

import (
	"context"
	"errors"
	"testing"

	"estately/internal/models"
	"estately/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// propertyRepoStub is a stub for repository.PropertyRepository.
type propertyRepoStub struct {
	createFn        func(context.Context, *models.Property) error
	getByIDFn       func(context.Context, uint) (*models.Property, error)
	searchFn        func(context.Context, repository.PropertyQuery) (*models.PropertyPage, error)
	listByOwnerFn   func(context.Context, uint) ([]models.Property, error)
	listByStatusFn  func(context.Context, *models.PropertyStatus) ([]models.Property, error)
	countByStatusFn func(context.Context, models.PropertyStatus) (int64, error)
	updateFn        func(context.Context, uint, map[string]any) error
	updateStatusFn  func(context.Context, uint, models.PropertyStatus) error
	deleteCascadeFn func(context.Context, uint) error
}

func (s *propertyRepoStub) Create(ctx context.Context, p *models.Property) error {
	return s.createFn(ctx, p)
}
func (s *propertyRepoStub) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	return s.getByIDFn(ctx, id)
}
func (s *propertyRepoStub) Search(ctx context.Context, q repository.PropertyQuery) (*models.PropertyPage, error) {
	return s.searchFn(ctx, q)
}
func (s *propertyRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *propertyRepoStub) ListByStatus(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error) {
	return s.listByStatusFn(ctx, status)
}
func (s *propertyRepoStub) CountByStatus(ctx context.Context, status models.PropertyStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}
func (s *propertyRepoStub) Update(ctx context.Context, id uint, changes map[string]any) error {
	return s.updateFn(ctx, id, changes)
}
func (s *propertyRepoStub) UpdateStatus(ctx context.Context, id uint, status models.PropertyStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *propertyRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopPropertyRepo() *propertyRepoStub {
	return &propertyRepoStub{
		createFn: func(_ context.Context, p *models.Property) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Property, error) {
			return &models.Property{ID: id, Status: models.PropertyStatusApproved}, nil
		},
		searchFn: func(_ context.Context, q repository.PropertyQuery) (*models.PropertyPage, error) {
			return &models.PropertyPage{Page: q.Page, Limit: q.Limit, Properties: []models.Property{}}, nil
		},
		listByOwnerFn:   func(_ context.Context, _ uint) ([]models.Property, error) { return nil, nil },
		listByStatusFn:  func(_ context.Context, _ *models.PropertyStatus) ([]models.Property, error) { return nil, nil },
		countByStatusFn: func(_ context.Context, _ models.PropertyStatus) (int64, error) { return 0, nil },
		updateFn:        func(_ context.Context, _ uint, _ map[string]any) error { return nil },
		updateStatusFn:  func(_ context.Context, _ uint, _ models.PropertyStatus) error { return nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateRoleFn func(context.Context, uint, models.Role) error
	listFn       func(context.Context) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		},
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateRoleFn: func(_ context.Context, _ uint, _ models.Role) error { return nil },
		listFn:       func(_ context.Context) ([]models.User, error) { return nil, nil },
	}
}

// inquiryRepoStub is a stub for repository.InquiryRepository.
type inquiryRepoStub struct {
	createFn       func(context.Context, *models.Inquiry) error
	getByIDFn      func(context.Context, uint) (*models.Inquiry, error)
	listForOwnerFn func(context.Context, uint) ([]models.Inquiry, error)
	updateStatusFn func(context.Context, uint, models.InquiryStatus) error
}

func (s *inquiryRepoStub) Create(ctx context.Context, inq *models.Inquiry) error {
	return s.createFn(ctx, inq)
}
func (s *inquiryRepoStub) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	return s.getByIDFn(ctx, id)
}
func (s *inquiryRepoStub) ListForOwner(ctx context.Context, ownerID uint) ([]models.Inquiry, error) {
	return s.listForOwnerFn(ctx, ownerID)
}
func (s *inquiryRepoStub) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func noopInquiryRepo() *inquiryRepoStub {
	return &inquiryRepoStub{
		createFn: func(_ context.Context, inq *models.Inquiry) error {
			inq.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Inquiry, error) {
			return &models.Inquiry{ID: id}, nil
		},
		listForOwnerFn: func(_ context.Context, _ uint) ([]models.Inquiry, error) { return nil, nil },
		updateStatusFn: func(_ context.Context, _ uint, _ models.InquiryStatus) error { return nil },
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}
