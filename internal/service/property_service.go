package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"estately/internal/cache"
	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/observability"
	"estately/internal/repository"

	"github.com/gosimple/slug"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxImages         = 20

	// DefaultSearchTTL applies when no positive TTL is configured.
	DefaultSearchTTL = 30 * time.Second
)

// PropertyService implements listing CRUD and public search.
type PropertyService struct {
	properties repository.PropertyRepository
	cache      *cache.Store
	searchTTL  time.Duration
}

// CreatePropertyInput is a new listing. Status is not accepted; listings always start PENDING.
type CreatePropertyInput struct {
	OwnerID     uint
	Title       string
	Description string
	Price       float64
	City        string
	Address     string
	Area        float64
	Bedrooms    int
	Bathrooms   int
	Furnished   bool
	Type        string
	ListingType string
	Images      []string
}

// UpdatePropertyInput carries only the fields to change.
type UpdatePropertyInput struct {
	Title       *string
	Description *string
	Price       *float64
	City        *string
	Address     *string
	Area        *float64
	Bedrooms    *int
	Bathrooms   *int
	Furnished   *bool
	Type        *string
	ListingType *string
	Images      *[]string
}

// NewPropertyService returns a PropertyService. store may be nil.
func NewPropertyService(properties repository.PropertyRepository, store *cache.Store, searchTTL time.Duration) *PropertyService {
	if searchTTL <= 0 {
		searchTTL = DefaultSearchTTL
	}
	return &PropertyService{
		properties: properties,
		cache:      store,
		searchTTL:  searchTTL,
	}
}

// Search runs a public listing search, served from the search cache when possible.
func (s *PropertyService) Search(ctx context.Context, params PropertySearchParams) (*models.PropertyPage, error) {
	q := BuildPropertyQuery(params)

	ctx, span := observability.StartSpan(ctx, "PropertyService", "Search",
		attribute.Int("search.page", q.Page),
		attribute.Int("search.limit", q.Limit),
		attribute.String("search.sort", q.Sort.String()),
	)

	var page models.PropertyPage
	key := cache.SearchKey(s.cache.SearchGeneration(ctx), q.Fingerprint())
	hit, err := s.cache.Aside(ctx, key, &page, s.searchTTL, func() error {
		result, err := s.properties.Search(ctx, q)
		if err != nil {
			return err
		}
		page = *result
		return nil
	})
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	if s.cache.Enabled() {
		result := "miss"
		if hit {
			result = "hit"
		}
		observability.SearchCacheLookups.WithLabelValues(result).Inc()
	}
	if page.Properties == nil {
		page.Properties = []models.Property{}
	}
	return &page, nil
}

// Get returns a listing. Unapproved listings are reported as missing to
// everyone but their owner and admins.
func (s *PropertyService) Get(ctx context.Context, viewer *Actor, id uint) (*models.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(viewer, p) {
		return nil, models.NewNotFoundError("Property")
	}
	return p, nil
}

// ListMine returns every listing the actor owns, in any status, newest first.
func (s *PropertyService) ListMine(ctx context.Context, actor Actor) ([]models.Property, error) {
	return s.properties.ListByOwner(ctx, actor.ID)
}

func (s *PropertyService) Create(ctx context.Context, in CreatePropertyInput) (*models.Property, error) {
	listingType, err := normalizeListingType(in.ListingType)
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		City:        strings.TrimSpace(in.City),
		Address:     strings.TrimSpace(in.Address),
		Area:        in.Area,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Furnished:   in.Furnished,
		Type:        normalizePropertyType(in.Type),
		ListingType: listingType,
		Images:      in.Images,
		Status:      models.PropertyStatusPending,
		OwnerID:     in.OwnerID,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := validateProperty(p); err != nil {
		return nil, err
	}
	p.Slug = slug.Make(p.Title + " " + p.City)

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "property created",
		slog.Uint64("property_id", uint64(p.ID)),
		slog.Uint64("owner_id", uint64(p.OwnerID)),
	)
	return s.properties.GetByID(ctx, p.ID)
}

func (s *PropertyService) Update(ctx context.Context, actor Actor, id uint, in UpdatePropertyInput) (*models.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwnership(actor, p.OwnerID, "update this property"); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
		changes["title"] = p.Title
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
		changes["description"] = p.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
		changes["price"] = p.Price
	}
	if in.City != nil {
		p.City = strings.TrimSpace(*in.City)
		changes["city"] = p.City
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
		changes["address"] = p.Address
	}
	if in.Area != nil {
		p.Area = *in.Area
		changes["area"] = p.Area
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
		changes["bedrooms"] = p.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
		changes["bathrooms"] = p.Bathrooms
	}
	if in.Furnished != nil {
		p.Furnished = *in.Furnished
		changes["furnished"] = p.Furnished
	}
	if in.Type != nil {
		p.Type = normalizePropertyType(*in.Type)
		changes["type"] = p.Type
	}
	if in.ListingType != nil {
		lt, err := normalizeListingType(*in.ListingType)
		if err != nil {
			return nil, err
		}
		p.ListingType = lt
		changes["listing_type"] = p.ListingType
	}
	if in.Images != nil {
		images := *in.Images
		if images == nil {
			images = []string{}
		}
		p.Images = images
		changes["images"] = p.Images
	}

	if err := validateProperty(p); err != nil {
		return nil, err
	}
	if in.Title != nil || in.City != nil {
		p.Slug = slug.Make(p.Title + " " + p.City)
		changes["slug"] = p.Slug
	}

	if err := s.properties.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	if p.IsPublic() {
		s.cache.BumpSearchGeneration(ctx)
	}
	return s.properties.GetByID(ctx, id)
}

// Delete removes the listing together with its wishlists and inquiries.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id uint) error {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwnership(actor, p.OwnerID, "delete this property"); err != nil {
		return err
	}
	if err := s.properties.DeleteCascade(ctx, id); err != nil {
		return err
	}
	if p.IsPublic() {
		s.cache.BumpSearchGeneration(ctx)
	}

	middleware.Logger.InfoContext(ctx, "property deleted",
		slog.Uint64("property_id", uint64(id)),
		slog.Uint64("actor_id", uint64(actor.ID)),
	)
	return nil
}

func normalizeListingType(s string) (models.ListingType, error) {
	lt := models.ListingType(strings.ToUpper(strings.TrimSpace(s)))
	switch lt {
	case "":
		return models.ListingTypeRent, nil
	case models.ListingTypeRent, models.ListingTypeSell:
		return lt, nil
	}
	return "", models.NewValidationError("listingType must be RENT or SELL")
}

func normalizePropertyType(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return models.DefaultPropertyType
	}
	return s
}

func validateProperty(p *models.Property) error {
	switch {
	case p.Title == "":
		return models.NewValidationError("Title is required")
	case len(p.Title) > maxTitleLen:
		return models.NewValidationError("Title too long (max 200 characters)")
	case len(p.Description) > maxDescriptionLen:
		return models.NewValidationError("Description too long (max 5000 characters)")
	case p.City == "":
		return models.NewValidationError("City is required")
	case p.Price <= 0:
		return models.NewValidationError("Price must be greater than 0")
	case p.Area < 0:
		return models.NewValidationError("Area cannot be negative")
	case p.Bedrooms < 0 || p.Bathrooms < 0:
		return models.NewValidationError("Bedrooms and bathrooms cannot be negative")
	case len(p.Images) > maxImages:
		return models.NewValidationError("Too many images (max 20)")
	}
	for _, img := range p.Images {
		u, err := url.ParseRequestURI(img)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return models.NewValidationError("Images must be http(s) URLs")
		}
	}
	return nil
}
