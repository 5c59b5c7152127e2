package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"estately/internal/models"

	"gorm.io/gorm"
)

// PropertySort selects the result ordering of a property search.
type PropertySort int

const (
	// SortNewest orders by creation time, newest first.
	SortNewest PropertySort = iota
	SortPriceAsc
	SortPriceDesc
)

func (s PropertySort) String() string {
	switch s {
	case SortPriceAsc:
		return "priceAsc"
	case SortPriceDesc:
		return "priceDesc"
	default:
		return "newest"
	}
}

// PropertyQuery is a fully normalized property search.
// Nil pointers and empty strings mean "no filter".
type PropertyQuery struct {
	Status      *models.PropertyStatus
	OwnerID     *uint
	Search      string
	City        string
	ListingType string
	Type        string
	Bedrooms    *int
	Furnished   *bool
	MinPrice    *float64
	MaxPrice    *float64
	Sort        PropertySort
	Page        int
	Limit       int
}

// Offset is the number of rows skipped before the current page.
func (q PropertyQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Fingerprint renders q canonically; equal queries yield equal fingerprints.
func (q PropertyQuery) Fingerprint() string {
	var b strings.Builder
	if q.Status != nil {
		fmt.Fprintf(&b, "status=%s|", *q.Status)
	}
	if q.OwnerID != nil {
		fmt.Fprintf(&b, "owner=%d|", *q.OwnerID)
	}
	fmt.Fprintf(&b, "search=%q|city=%q|listing=%q|type=%q|", q.Search, q.City, q.ListingType, q.Type)
	if q.Bedrooms != nil {
		fmt.Fprintf(&b, "bedrooms=%d|", *q.Bedrooms)
	}
	if q.Furnished != nil {
		fmt.Fprintf(&b, "furnished=%t|", *q.Furnished)
	}
	if q.MinPrice != nil {
		fmt.Fprintf(&b, "min=%g|", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&b, "max=%g|", *q.MaxPrice)
	}
	fmt.Fprintf(&b, "sort=%s|page=%d|limit=%d", q.Sort, q.Page, q.Limit)
	return b.String()
}

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uint) (*models.Property, error)
	Search(ctx context.Context, q PropertyQuery) (*models.PropertyPage, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error)
	ListByStatus(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error)
	CountByStatus(ctx context.Context, status models.PropertyStatus) (int64, error)
	Update(ctx context.Context, id uint, changes map[string]any) error
	UpdateStatus(ctx context.Context, id uint, status models.PropertyStatus) error
	DeleteCascade(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository returns a new PropertyRepository implementation.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(p).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := r.db.WithContext(ctx).Preload("Owner").First(&p, id).Error; err != nil {
		return nil, lookupError(err, "Property")
	}
	return &p, nil
}

func applyPropertyFilters(db *gorm.DB, q PropertyQuery) *gorm.DB {
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.OwnerID)
	}
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		db = db.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(city) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if q.City != "" {
		db = db.Where(`LOWER(city) LIKE ? ESCAPE '\'`, containsPattern(q.City))
	}
	if q.ListingType != "" {
		db = db.Where("listing_type = ?", q.ListingType)
	}
	if q.Type != "" {
		db = db.Where("type = ?", q.Type)
	}
	if q.Bedrooms != nil {
		db = db.Where("bedrooms = ?", *q.Bedrooms)
	}
	if q.Furnished != nil {
		db = db.Where("furnished = ?", *q.Furnished)
	}
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	return db
}

func propertyOrder(s PropertySort) string {
	switch s {
	case SortPriceAsc:
		return "price ASC, id ASC"
	case SortPriceDesc:
		return "price DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// Search counts every match, then loads one page with owners attached.
func (r *propertyRepository) Search(ctx context.Context, q PropertyQuery) (*models.PropertyPage, error) {
	page := &models.PropertyPage{
		Page:       q.Page,
		Limit:      q.Limit,
		Properties: []models.Property{},
	}

	base := applyPropertyFilters(r.db.WithContext(ctx).Model(&models.Property{}), q)
	if err := base.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if page.Total == 0 {
		return page, nil
	}

	err := applyPropertyFilters(r.db.WithContext(ctx), q).
		Preload("Owner").
		Order(propertyOrder(q.Sort)).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&page.Properties).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	properties := []models.Property{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(propertyOrder(SortNewest)).
		Find(&properties).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return properties, nil
}

// ListByStatus returns listings in status, or every listing when status is nil.
func (r *propertyRepository) ListByStatus(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error) {
	properties := []models.Property{}
	db := r.db.WithContext(ctx).Preload("Owner")
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	if err := db.Order(propertyOrder(SortNewest)).Find(&properties).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return properties, nil
}

func (r *propertyRepository) CountByStatus(ctx context.Context, status models.PropertyStatus) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).Where("status = ?", status).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// Update writes changes, keyed by column name, to the listing.
func (r *propertyRepository) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Property")
	}
	return nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id uint, status models.PropertyStatus) error {
	return r.Update(ctx, id, map[string]any{"status": status})
}

// DeleteCascade removes wishlists, then inquiries, then the listing, atomically.
// A missing listing rolls the whole transaction back.
func (r *propertyRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.Wishlist{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Inquiry{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Property{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Property")
		}
		return nil
	})
}
