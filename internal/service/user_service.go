package service

import (
	"context"
	"log/slog"
	"strings"

	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/repository"
	"estately/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid credentials"

type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Only USER and OWNER can be self-assigned.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email and password are required")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	role, err := models.ParseRole(in.Role)
	if err != nil || !role.In(models.RoleUser, models.RoleOwner) {
		return nil, models.NewValidationError("Role must be USER or OWNER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewValidationError(msgInvalidCredentials)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
