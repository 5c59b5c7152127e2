// Package bootstrap wires the runtime dependencies shared by the server and CLI tools.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"estately/internal/cache"
	"estately/internal/config"
	"estately/internal/database"
	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo loads the demo accounts and listings after connecting.
	SeedDemo          bool
	SeedNumProperties int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.InitRedis(cfg.RedisURL)

	rootID, err := ensureDevRootAdmin(cfg, db, bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}
	if rootID != 0 {
		// The role cache may still hold the account's previous role.
		cache.NewStore(rdb).InvalidateUser(context.Background(), rootID)
	}

	if opts.SeedDemo {
		if _, err := seed.Seed(db, seed.Options{NumProperties: opts.SeedNumProperties}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, rdb, nil
}

// ensureDevRootAdmin returns the root account's ID, or 0 when bootstrapping is off.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB, cost int) (uint, error) {
	if cfg == nil || db == nil {
		return 0, nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return 0, nil
	}

	name := strings.TrimSpace(cfg.DevRootName)
	if name == "" {
		name = "Estately Root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@estately.local"
	}
	password := cfg.DevRootPassword
	if password == "" {
		return 0, errors.New("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, fmt.Errorf("hash root password: %w", err)
	}

	var rootID uint
	if err := db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.Where("email = ?", email).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Name:     name,
				Email:    email,
				Password: string(hashedPassword),
				Role:     models.RoleAdmin,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			// Configured credentials are authoritative for an existing account.
			updates := map[string]any{"role": models.RoleAdmin, "password": string(hashedPassword)}
			if err := tx.Model(&root).Updates(updates).Error; err != nil {
				return err
			}
		}
		rootID = root.ID
		return nil
	}); err != nil {
		return 0, err
	}

	middleware.Logger.Info("development root admin ensured",
		slog.Uint64("user_id", uint64(rootID)),
		slog.String("email", email),
	)
	return rootID, nil
}
