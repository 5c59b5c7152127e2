package server

import (
	"estately/internal/models"
	"estately/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPropertyRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price" validate:"gt=0"`
	City        string   `json:"city" validate:"required,max=120"`
	Address     string   `json:"address" validate:"max=255"`
	Area        float64  `json:"area" validate:"gte=0"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0"`
	Furnished   bool     `json:"furnished"`
	Type        string   `json:"type" validate:"max=40"`
	ListingType string   `json:"listingType" validate:"listing_type"`
	Images      []string `json:"images" validate:"max=20,dive,url"`
}

type updatePropertyRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	City        *string   `json:"city" validate:"omitempty,min=1,max=120"`
	Address     *string   `json:"address" validate:"omitempty,max=255"`
	Area        *float64  `json:"area" validate:"omitempty,gte=0"`
	Bedrooms    *int      `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int      `json:"bathrooms" validate:"omitempty,gte=0"`
	Furnished   *bool     `json:"furnished"`
	Type        *string   `json:"type" validate:"omitempty,max=40"`
	ListingType *string   `json:"listingType" validate:"omitempty,listing_type"`
	Images      *[]string `json:"images" validate:"omitempty,max=20,dive,url"`
}

// SearchProperties handles GET /api/properties
// @Summary Search listings
// @Description Public search over approved listings. Malformed numeric filters are ignored.
// @Tags properties
// @Produce json
// @Param search query string false "Matches title, city or address"
// @Param city query string false "City (contains, case-insensitive)"
// @Param listingType query string false "RENT or SELL"
// @Param type query string false "Property type"
// @Param minPrice query number false "Inclusive lower bound"
// @Param maxPrice query number false "Inclusive upper bound"
// @Param bedrooms query int false "Exact bedroom count"
// @Param furnished query string false "true or false"
// @Param sort query string false "priceAsc, priceDesc or newest"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} models.PropertyPage
// @Router /properties [get]
func (s *Server) SearchProperties(c *fiber.Ctx) error {
	page, err := s.propertyService.Search(c.UserContext(), service.PropertySearchParams{
		Search:      c.Query("search"),
		City:        c.Query("city"),
		ListingType: c.Query("listingType"),
		Type:        c.Query("type"),
		MinPrice:    c.Query("minPrice"),
		MaxPrice:    c.Query("maxPrice"),
		Bedrooms:    c.Query("bedrooms"),
		Furnished:   c.Query("furnished"),
		Sort:        c.Query("sort"),
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetProperty handles GET /api/properties/:id
// @Summary Get listing
// @Description Approved listings are public; others are visible to their owner and admins only.
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [get]
func (s *Server) GetProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p, err := s.propertyService.Get(c.UserContext(), s.optionalActor(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(p)
}

// GetMyProperties handles GET /api/properties/owner/my
// @Summary My listings
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Property
// @Router /properties/owner/my [get]
func (s *Server) GetMyProperties(c *fiber.Ctx) error {
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	props, err := s.propertyService.ListMine(c.UserContext(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(props)
}

// CreateProperty handles POST /api/properties
// @Summary Create listing
// @Description New listings start PENDING until an admin approves them.
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPropertyRequest true "Listing"
// @Success 201 {object} object{message=string,property=models.Property}
// @Failure 400 {object} models.ErrorResponse
// @Router /properties [post]
func (s *Server) CreateProperty(c *fiber.Ctx) error {
	var req createPropertyRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	p, err := s.propertyService.Create(c.UserContext(), service.CreatePropertyInput{
		OwnerID:     c.Locals("userID").(uint),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		Address:     req.Address,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Furnished:   req.Furnished,
		Type:        req.Type,
		ListingType: req.ListingType,
		Images:      req.Images,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Property created",
		"property": p,
	})
}

// UpdateProperty handles PUT /api/properties/:id
// @Summary Update listing
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body updatePropertyRequest true "Fields to change"
// @Success 200 {object} object{message=string,property=models.Property}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [put]
func (s *Server) UpdateProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updatePropertyRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	p, err := s.propertyService.Update(c.UserContext(), actor, id, service.UpdatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		Address:     req.Address,
		Area:        req.Area,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Furnished:   req.Furnished,
		Type:        req.Type,
		ListingType: req.ListingType,
		Images:      req.Images,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Property updated",
		"property": p,
	})
}

// DeleteProperty handles DELETE /api/properties/:id
// @Summary Delete listing
// @Description Removes the listing with its wishlist entries and inquiries.
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [delete]
func (s *Server) DeleteProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.actor(c)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.propertyService.Delete(c.UserContext(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Property deleted"})
}
