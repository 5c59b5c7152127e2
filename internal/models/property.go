package models

import (
	"time"

	"gorm.io/datatypes"
)

// PropertyStatus is the moderation state of a listing.
type PropertyStatus string

const (
	// PropertyStatusPending is the state every new listing starts in.
	PropertyStatusPending PropertyStatus = "PENDING"
	// PropertyStatusApproved listings are publicly searchable.
	PropertyStatusApproved PropertyStatus = "APPROVED"
	// PropertyStatusRejected listings are visible to their owner and admins only.
	PropertyStatusRejected PropertyStatus = "REJECTED"
)

// ListingType distinguishes rentals from sales.
type ListingType string

const (
	ListingTypeRent ListingType = "RENT"
	ListingTypeSell ListingType = "SELL"
)

// DefaultPropertyType is applied when a listing is created without a type.
const DefaultPropertyType = "APARTMENT"

// Property is a listing owned by exactly one user.
type Property struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Slug        string                      `gorm:"size:255;index" json:"slug"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       float64                     `gorm:"not null;index" json:"price"`
	City        string                      `gorm:"size:120;not null;index" json:"city"`
	Address     string                      `gorm:"size:255" json:"address"`
	Area        float64                     `json:"area"`
	Bedrooms    int                         `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms   int                         `gorm:"not null;default:0" json:"bathrooms"`
	Furnished   bool                        `gorm:"not null;default:false" json:"furnished"`
	Type        string                      `gorm:"size:40;not null;default:'APARTMENT'" json:"type"`
	ListingType ListingType                 `gorm:"type:varchar(10);not null;default:'RENT'" json:"listingType"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Status      PropertyStatus              `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	OwnerID     uint                        `gorm:"not null;index" json:"ownerId"`
	Owner       *UserSummary                `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// PropertySummary is the short listing view attached to inquiries.
type PropertySummary struct {
	ID      uint    `json:"id"`
	Title   string  `json:"title"`
	City    string  `json:"city"`
	Price   float64 `json:"price"`
	OwnerID uint    `json:"ownerId"`
}

// TableName maps PropertySummary onto the properties table.
func (PropertySummary) TableName() string {
	return "properties"
}

// IsPublic reports whether the listing appears in public search.
func (p *Property) IsPublic() bool {
	return p.Status == PropertyStatusApproved
}

// PropertyPage is a paginated search result.
type PropertyPage struct {
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Properties []Property `json:"properties"`
}
