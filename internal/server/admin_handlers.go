package server

import (
	"time"

	"estately/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminUser is the admin view of an account.
type AdminUser struct {
	models.UserSummary
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// GetAllUsers handles GET /api/admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdminUser
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUser{UserSummary: u.Summary(), Role: u.Role, CreatedAt: u.CreatedAt})
	}
	return c.JSON(out)
}

// GetPendingProperties handles GET /api/admin/properties/pending
// @Summary Moderation queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Property
// @Router /admin/properties/pending [get]
func (s *Server) GetPendingProperties(c *fiber.Ctx) error {
	props, err := s.moderation.ListPending(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(props)
}

// GetAllProperties handles GET /api/admin/properties/all
// @Summary All listings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Property
// @Router /admin/properties/all [get]
func (s *Server) GetAllProperties(c *fiber.Ctx) error {
	props, err := s.moderation.ListAll(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(props)
}

// ApproveProperty handles PUT /api/admin/properties/:id/approve
// @Summary Approve listing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} object{message=string,property=models.Property}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/properties/{id}/approve [put]
func (s *Server) ApproveProperty(c *fiber.Ctx) error {
	return s.moderate(c, true)
}

// RejectProperty handles PUT /api/admin/properties/:id/reject
// @Summary Reject listing
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} object{message=string,property=models.Property}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/properties/{id}/reject [put]
func (s *Server) RejectProperty(c *fiber.Ctx) error {
	return s.moderate(c, false)
}

func (s *Server) moderate(c *fiber.Ctx, approve bool) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	decide, msg := s.moderation.Reject, "Property rejected"
	if approve {
		decide, msg = s.moderation.Approve, "Property approved"
	}
	p, err := decide(c.UserContext(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  msg,
		"property": p,
	})
}
