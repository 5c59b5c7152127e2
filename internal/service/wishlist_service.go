package service

import (
	"context"

	"estately/internal/models"
	"estately/internal/repository"
)

// WishlistService manages a user's saved listings.
type WishlistService struct {
	wishlists  repository.WishlistRepository
	properties repository.PropertyRepository
}

func NewWishlistService(wishlists repository.WishlistRepository, properties repository.PropertyRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, properties: properties}
}

// Add saves a listing the actor can see. Saving the same listing twice is a validation error.
func (s *WishlistService) Add(ctx context.Context, actor Actor, propertyID uint) (*models.Wishlist, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !canView(&actor, p) {
		return nil, models.NewNotFoundError("Property")
	}
	return s.wishlists.Add(ctx, actor.ID, propertyID)
}

func (s *WishlistService) List(ctx context.Context, actor Actor) ([]models.Wishlist, error) {
	return s.wishlists.ListByUser(ctx, actor.ID)
}

func (s *WishlistService) Remove(ctx context.Context, actor Actor, propertyID uint) error {
	return s.wishlists.Remove(ctx, actor.ID, propertyID)
}
