package validation

import (
	"estately/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"role":           validateSignupRole,
		"listing_type":   validateListingType,
		"inquiry_status": validateInquiryStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Self-service signup may pick USER or OWNER. ADMIN is never self-assigned.
func validateSignupRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	role, err := models.ParseRole(value)
	if err != nil {
		return false
	}
	return role.In(models.RoleUser, models.RoleOwner)
}

func validateListingType(fl validator.FieldLevel) bool {
	switch models.ListingType(fl.Field().String()) {
	case "", models.ListingTypeRent, models.ListingTypeSell:
		return true
	}
	return false
}

func validateInquiryStatus(fl validator.FieldLevel) bool {
	_, err := models.ParseInquiryStatus(fl.Field().String())
	return err == nil
}
