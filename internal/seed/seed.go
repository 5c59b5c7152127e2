package seed

import (
	"fmt"
	"log"

	"estately/internal/models"

	"gorm.io/gorm"
)

// Demo account emails. Both use DemoPassword.
const (
	DemoOwnerEmail = "owner@example.com"
	DemoAdminEmail = "admin@example.com"
)

// Options configuration for the seeder
type Options struct {
	NumProperties int
	NumOwners     int
	ShouldClean   bool
	DryRun        bool
	MaxDays       int
	BatchSize     int
	// HashCost overrides bcrypt.DefaultCost; tests use bcrypt.MinCost.
	HashCost int
	RandSeed int64
}

// Result summarizes a seeding run.
type Result struct {
	Owners     int
	Properties int
	Approved   int
	Pending    int
}

// Seed populates the database with demo accounts and listings.
func Seed(db *gorm.DB, opts Options) (*Result, error) {
	log.Printf("Starting database seeding with %d properties...", opts.NumProperties)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearListings(db); err != nil {
			return nil, fmt.Errorf("failed to clear listings: %w", err)
		}
	}

	f := NewFactory(db, opts)

	owner, err := f.EnsureUser("Demo Owner", DemoOwnerEmail, models.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo owner: %w", err)
	}
	if _, err := f.EnsureUser("Admin User", DemoAdminEmail, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	owners := []*models.User{owner}
	for range opts.NumOwners {
		u, err := f.CreateUser(models.RoleOwner)
		if err != nil {
			return nil, fmt.Errorf("failed to create owner: %w", err)
		}
		owners = append(owners, u)
	}

	res := &Result{Owners: len(owners)}
	props := make([]*models.Property, 0, opts.NumProperties)
	for i := range opts.NumProperties {
		p := f.BuildProperty(owners[i%len(owners)])
		props = append(props, p)
		if p.IsPublic() {
			res.Approved++
		} else {
			res.Pending++
		}
	}

	if err := f.CreatePropertiesBatch(props); err != nil {
		return nil, fmt.Errorf("failed to create properties: %w", err)
	}
	res.Properties = len(props)

	log.Printf("Seeded %d properties (%d approved, %d pending) for %d owners",
		res.Properties, res.Approved, res.Pending, res.Owners)
	return res, nil
}

// clearListings removes every listing along with the rows that reference them.
func clearListings(db *gorm.DB) error {
	log.Println("Clearing existing listings...")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Wishlist{}, &models.Inquiry{}, &models.Property{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
