package server

import (
	"estately/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetWishlist handles GET /api/wishlist
// @Summary My wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Wishlist
// @Router /wishlist [get]
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	items, err := s.wishlistService.List(c.UserContext(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(items)
}

// AddToWishlist handles POST /api/wishlist/:propertyId
// @Summary Save listing
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param propertyId path int true "Property ID"
// @Success 201 {object} object{message=string,wishlist=models.Wishlist}
// @Failure 400 {object} models.ErrorResponse "Already in wishlist"
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/{propertyId} [post]
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "propertyId")
	if err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	item, err := s.wishlistService.Add(c.UserContext(), actor, propertyID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Added to wishlist",
		"wishlist": item,
	})
}

// RemoveFromWishlist handles DELETE /api/wishlist/:propertyId
// @Summary Unsave listing
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param propertyId path int true "Property ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/{propertyId} [delete]
func (s *Server) RemoveFromWishlist(c *fiber.Ctx) error {
	propertyID, err := s.parseID(c, "propertyId")
	if err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.wishlistService.Remove(c.UserContext(), actor, propertyID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
