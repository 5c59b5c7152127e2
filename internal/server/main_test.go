package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"estately/internal/config"
	"estately/internal/database"
	"estately/internal/middleware"
	"estately/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type testServer struct {
	*Server
	app *fiber.App
	db  *gorm.DB
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                  "0",
		Env:                   "test",
		JWTSecret:             testSecret,
		JWTTTLHours:           1,
		AllowedOrigins:        "http://localhost:5173",
		SearchCacheTTLSeconds: 30,
	}
}

// newTestServer builds the full app over in-memory sqlite, optionally with miniredis.
func newTestServer(t *testing.T, withRedis bool) *testServer {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	var rdb *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
	}

	s, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return &testServer{Server: s, app: s.NewApp(), db: db}
}

// user inserts an account with password "password123" and returns it with a bearer token.
func (ts *testServer) user(t *testing.T, name string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Name: name, Email: name + "@example.com", Password: string(hash), Role: role}
	require.NoError(t, ts.db.Create(u).Error)

	token, err := middleware.IssueToken(testSecret, u.ID, time.Hour)
	require.NoError(t, err)
	return u, token
}

func (ts *testServer) property(t *testing.T, ownerID uint, status models.PropertyStatus, mutate func(*models.Property)) *models.Property {
	t.Helper()
	p := &models.Property{
		Title:       "2BHK Apartment",
		Price:       25000,
		City:        "Pune",
		Address:     "Kothrud",
		Bedrooms:    2,
		Type:        models.DefaultPropertyType,
		ListingType: models.ListingTypeRent,
		Status:      status,
		OwnerID:     ownerID,
		Images:      []string{},
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, ts.db.Create(p).Error)
	return p
}

// do sends a request with an optional JSON body and bearer token and returns status and raw body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[models.ErrorResponse](t, raw).Message
}
