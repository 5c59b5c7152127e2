package service

import (
	"fmt"

	"estately/internal/models"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uint
	Role models.Role
}

// authorizeOwnership allows the resource owner or an admin.
// Callers load the resource first so that a missing resource reports NotFound, not Forbidden.
func authorizeOwnership(actor Actor, ownerID uint, action string) error {
	if actor.ID == ownerID || actor.Role.IsAdmin() {
		return nil
	}
	return models.NewForbiddenError(fmt.Sprintf("Not authorized to %s", action))
}

// canView reports whether viewer may see p. Approved listings are public.
func canView(viewer *Actor, p *models.Property) bool {
	if p.IsPublic() {
		return true
	}
	return viewer != nil && authorizeOwnership(*viewer, p.OwnerID, "view") == nil
}
