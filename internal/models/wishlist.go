package models

import "time"

// Wishlist is a saved listing.
// The combination of UserID and PropertyID must be unique.
type Wishlist struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_property" json:"userId"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_property;index" json:"propertyId"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
