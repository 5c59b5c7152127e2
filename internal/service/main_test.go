package service

import (
	"testing"

	"estately/internal/cache"
	"estately/internal/database"
	"estately/internal/models"
	"estately/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires real repositories over an in-memory database.
type testEnv struct {
	db         *gorm.DB
	store      *cache.Store
	users      *UserService
	properties *PropertyService
	moderation *ModerationService
	inquiries  *InquiryService
	wishlists  *WishlistService
}

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

// newTestEnv builds services over sqlite. withRedis attaches a miniredis-backed cache.
func newTestEnv(t *testing.T, withRedis bool) *testEnv {
	t.Helper()
	db := setupSQLiteDB(t)

	var store *cache.Store
	if withRedis {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		store = cache.NewStore(rdb)
	}

	userRepo := repository.NewUserRepository(db, store)
	propertyRepo := repository.NewPropertyRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	users := NewUserService(userRepo)
	users.hashCost = bcrypt.MinCost

	return &testEnv{
		db:         db,
		store:      store,
		users:      users,
		properties: NewPropertyService(propertyRepo, store, DefaultSearchTTL),
		moderation: NewModerationService(propertyRepo, store),
		inquiries:  NewInquiryService(inquiryRepo, propertyRepo),
		wishlists:  NewWishlistService(wishlistRepo, propertyRepo),
	}
}

func (e *testEnv) actor(t *testing.T, name string, role models.Role) Actor {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "hash", Role: role}
	require.NoError(t, e.db.Create(u).Error)
	return Actor{ID: u.ID, Role: u.Role}
}

func (e *testEnv) listing(t *testing.T, owner Actor, mutate func(*CreatePropertyInput)) *models.Property {
	t.Helper()
	in := CreatePropertyInput{
		OwnerID:  owner.ID,
		Title:    "2BHK Apartment",
		Price:    25000,
		City:     "Mumbai",
		Address:  "Andheri West",
		Bedrooms: 2,
	}
	if mutate != nil {
		mutate(&in)
	}
	p, err := e.properties.Create(t.Context(), in)
	require.NoError(t, err)
	return p
}
