// Command seed creates the first administrator account.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/persona/persona-api/internal/config"
	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/database"
	"github.com/persona/persona-api/internal/pkg/logger"
	"github.com/persona/persona-api/internal/pkg/password"
	"github.com/persona/persona-api/internal/pkg/validator"
)

// userStore is the part of the user repository the seeder needs
type userStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	created, err := seedAdmin(ctx, user.NewRepository(db), cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed administrator")
	}
	if created {
		log.Info().Str("email", cfg.SeedAdminEmail).Msg("Administrator created")
		return
	}
	log.Info().Str("email", cfg.SeedAdminEmail).Msg("Administrator already exists, nothing to do")
}

// seedAdmin creates an active ADMIN account unless the email is taken
func seedAdmin(ctx context.Context, users userStore, email, plain, name string) (bool, error) {
	email = user.NormalizeEmail(email)
	if err := validator.ValidateVar(email, "required,email"); err != nil {
		return false, errors.New("SEED_ADMIN_EMAIL must be a valid email")
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return false, fmt.Errorf("SEED_ADMIN_PASSWORD: %w", err)
	}

	now := time.Now()
	err = users.Create(ctx, &user.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
