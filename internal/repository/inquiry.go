package repository

import (
	"context"

	"estately/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository defines persistence operations for inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	ListForOwner(ctx context.Context, ownerID uint) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository returns a new InquiryRepository implementation.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if err := r.db.WithContext(ctx).Omit("Property", "User").Create(inquiry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads the inquiry with its sender and the listing summary, which
// carries the owner ID needed for authorization.
func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("User").
		First(&inquiry, id).Error
	if err != nil {
		return nil, lookupError(err, "Inquiry")
	}
	return &inquiry, nil
}

// ListForOwner returns inquiries on listings owned by ownerID, newest first.
func (r *inquiryRepository) ListForOwner(ctx context.Context, ownerID uint) ([]models.Inquiry, error) {
	inquiries := []models.Inquiry{}
	err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.owner_id = ?", ownerID).
		Preload("Property").
		Preload("User").
		Order("inquiries.created_at DESC").
		Order("inquiries.id DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uint, status models.InquiryStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Inquiry")
	}
	return nil
}
