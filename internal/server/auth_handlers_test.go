package server

import (
	"context"
	"net/http"
	"testing"

	"estately/internal/models"
	"estately/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func newMockAuthServer(repo *MockUserRepository) (*Server, *fiber.App) {
	s := &Server{
		config:      testConfig(),
		userRepo:    repo,
		userService: service.NewUserService(repo),
	}
	app := fiber.New()
	app.Post("/register", s.Register)
	app.Post("/login", s.Login)
	return s, app
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			body: map[string]string{"name": "Asha", "email": "asha@example.com", "password": "password123", "role": "OWNER"},
			mockSetup: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "asha@example.com" && u.Role == models.RoleOwner
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 1
				}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate User",
			body: map[string]string{"name": "Asha", "email": "exists@example.com", "password": "password123"},
			mockSetup: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(models.NewValidationError("User already exists"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "User already exists",
		},
		{
			name:           "Admin Role Rejected",
			body:           map[string]string{"name": "Asha", "email": "asha@example.com", "password": "password123", "role": "ADMIN"},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "role must be USER or OWNER",
		},
		{
			name:           "Invalid Email",
			body:           map[string]string{"name": "Asha", "email": "not-an-email", "password": "password123"},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "email must be a valid email address",
		},
		{
			name:           "Weak Password",
			body:           map[string]string{"name": "Asha", "email": "asha@example.com", "password": "onlyletters"},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "password must contain at least one digit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.mockSetup(repo)
			_, app := newMockAuthServer(repo)
			ts := &testServer{app: app}

			status, raw := ts.do(t, http.MethodPost, "/register", "", tt.body)
			assert.Equal(t, tt.expectedStatus, status, string(raw))
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, errorMessage(t, raw))
			} else {
				resp := decode[AuthResponse](t, raw)
				assert.NotEmpty(t, resp.Token)
				assert.NotContains(t, string(raw), "password")
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, models.NewNotFoundError("User"))
	_, app := newMockAuthServer(repo)
	ts := &testServer{app: app}

	status, raw := ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials", errorMessage(t, raw))
	repo.AssertExpectations(t)
}

func TestAuthFlow_RegisterLoginMeLogout(t *testing.T) {
	ts := newTestServer(t, true)

	status, raw := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Kiran", "email": "Kiran@Example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	registered := decode[AuthResponse](t, raw)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.Equal(t, "kiran@example.com", registered.User.Email)

	status, raw = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "kiran@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	token := decode[AuthResponse](t, raw).Token

	status, raw = ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Kiran", decode[models.User](t, raw).Name)

	status, _ = ts.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, raw = ts.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", errorMessage(t, raw))

	// Other sessions are unaffected.
	status, _ = ts.do(t, http.MethodGet, "/api/auth/me", registered.Token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthFlow_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t, false)
	body := map[string]string{"name": "Kiran", "email": "kiran@example.com", "password": "password123"}

	status, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status)

	status, raw := ts.do(t, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", errorMessage(t, raw))
}
