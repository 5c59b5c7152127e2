package server

import (
	"context"
	"errors"

	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired verifies the bearer token, rejects revoked tokens and stores
// the caller's ID in c.Locals("userID").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, middleware.ErrMissingToken) {
				msg = "Authorization required"
			}
			return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(msg))
		}

		claims, err := middleware.VerifyToken(s.config.JWTSecret, tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		if claims.JTI != "" && s.cache.IsTokenRevoked(c.UserContext(), claims.JTI) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Token has been revoked"))
		}

		s.setCaller(c, claims)
		return c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Next()
		}
		claims, err := middleware.VerifyToken(s.config.JWTSecret, tokenString)
		if err != nil || (claims.JTI != "" && s.cache.IsTokenRevoked(c.UserContext(), claims.JTI)) {
			return c.Next()
		}
		s.setCaller(c, claims)
		return c.Next()
	}
}

func (s *Server) setCaller(c *fiber.Ctx, claims *middleware.TokenClaims) {
	c.Locals("userID", claims.UserID)
	c.Locals("tokenClaims", claims)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, claims.UserID)
	c.SetUserContext(ctx)
}

// RequireRoles admits callers whose current role is in roles.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := s.callerRole(c)
		if err != nil {
			if models.IsCode(err, models.CodeNotFound) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("User no longer exists"))
			}
			return models.RespondWithAppError(c, err)
		}
		if !role.In(roles...) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Access denied"))
		}
		return c.Next()
	}
}

// callerRole loads the caller's role once per request. Roles are read from
// the user record, not the token, so role changes apply immediately.
func (s *Server) callerRole(c *fiber.Ctx) (models.Role, error) {
	if role, ok := c.Locals("userRole").(models.Role); ok {
		return role, nil
	}
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return "", models.NewUnauthorizedError("Authorization required")
	}
	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return "", err
	}
	c.Locals("userRole", user.Role)
	return user.Role, nil
}

// actor returns the authenticated caller. Only valid behind AuthRequired.
func (s *Server) actor(c *fiber.Ctx) (service.Actor, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return service.Actor{}, models.NewUnauthorizedError("Authorization required")
	}
	role, err := s.callerRole(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: userID, Role: role}, nil
}

// optionalActor returns the caller if one was identified, or nil.
func (s *Server) optionalActor(c *fiber.Ctx) *service.Actor {
	if _, ok := c.Locals("userID").(uint); !ok {
		return nil
	}
	a, err := s.actor(c)
	if err != nil {
		return nil
	}
	return &a
}
