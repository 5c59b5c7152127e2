package server

import (
	"time"

	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create a USER or OWNER account and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(AuthResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), c.Locals("userID").(uint))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// Logout handles POST /api/auth/logout by revoking the token's ID until it expires.
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("tokenClaims").(*middleware.TokenClaims)
	if ok && claims.JTI != "" {
		ttl := time.Until(claims.ExpiresAt)
		if err := s.cache.RevokeToken(c.UserContext(), claims.JTI, ttl); err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (s *Server) issueToken(userID uint) (string, error) {
	return middleware.IssueToken(s.config.JWTSecret, userID, time.Duration(s.config.JWTTTLHours)*time.Hour)
}
