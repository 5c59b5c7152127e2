package server

import (
	"estately/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createInquiryRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type updateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,inquiry_status"`
}

// CreateInquiry handles POST /api/inquiries/:propertyId
// @Summary Send inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param propertyId path int true "Property ID"
// @Param request body createInquiryRequest true "Inquiry"
// @Success 201 {object} object{message=string,inquiry=models.Inquiry}
// @Failure 404 {object} models.ErrorResponse
// @Router /inquiries/{propertyId} [post]
func (s *Server) CreateInquiry(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "propertyId")
	if err != nil {
		return nil
	}
	var req createInquiryRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	inq, err := s.inquiryService.Create(c.UserContext(), actor, propertyID, req.Message)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Inquiry sent",
		"inquiry": inq,
	})
}

// GetOwnerInquiries handles GET /api/inquiries/owner/all
// @Summary Inquiries on my listings
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Inquiry
// @Router /inquiries/owner/all [get]
func (s *Server) GetOwnerInquiries(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	items, err := s.inquiryService.ListForOwner(c.UserContext(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}

// UpdateInquiryStatus handles PUT /api/inquiries/:id/status
// @Summary Update inquiry status
// @Tags inquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Inquiry ID"
// @Param request body updateInquiryStatusRequest true "Status"
// @Success 200 {object} object{message=string,inquiry=models.Inquiry}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /inquiries/{id}/status [put]
func (s *Server) UpdateInquiryStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateInquiryStatusRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	inq, err := s.inquiryService.UpdateStatus(c.UserContext(), actor, id, req.Status)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Inquiry updated",
		"inquiry": inq,
	})
}
