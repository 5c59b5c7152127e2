package repository

import (
	"context"

	"estately/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MsgAlreadyInWishlist is the validation message for a duplicate save.
const MsgAlreadyInWishlist = "Already in wishlist"

// WishlistRepository defines persistence operations for saved listings.
type WishlistRepository interface {
	Add(ctx context.Context, userID, propertyID uint) (*models.Wishlist, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Wishlist, error)
	Remove(ctx context.Context, userID, propertyID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository returns a new WishlistRepository implementation.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add inserts the pair. The unique index on (user_id, property_id) decides
// duplicates, so concurrent adds cannot both succeed.
func (r *wishlistRepository) Add(ctx context.Context, userID, propertyID uint) (*models.Wishlist, error) {
	item := &models.Wishlist{UserID: userID, PropertyID: propertyID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Property").
		Create(item)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return nil, models.NewValidationError(MsgAlreadyInWishlist)
		}
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewValidationError(MsgAlreadyInWishlist)
	}
	return item, nil
}

// ListByUser returns the user's saved listings with owners attached, newest first.
func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	items := []models.Wishlist{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Property").
		Preload("Property.Owner").
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, propertyID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Wishlist item")
	}
	return nil
}
