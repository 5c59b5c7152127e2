package repository

import (
	"testing"

	"estately/internal/database"
	"estately/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns a migrated in-memory database pinned to one connection.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "hash", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createProperty(t *testing.T, db *gorm.DB, ownerID uint, mutate func(*models.Property)) *models.Property {
	t.Helper()
	p := &models.Property{
		Title:       "2BHK Apartment",
		Price:       25000,
		City:        "Pune",
		Address:     "Baner Road",
		Bedrooms:    2,
		Bathrooms:   1,
		Type:        models.DefaultPropertyType,
		ListingType: models.ListingTypeRent,
		Status:      models.PropertyStatusApproved,
		OwnerID:     ownerID,
		Images:      []string{},
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
