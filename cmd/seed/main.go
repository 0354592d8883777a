// Command seed loads the event catalog, contingent keys and staff accounts into MongoDB.
// It is safe to run repeatedly: live slot counters and registrations are never overwritten.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"invento/config"
	"invento/internal/adapters/auth"
	"invento/internal/catalog"
	"invento/internal/domain"
	"invento/internal/repository/mongodb"
	"invento/internal/services"
)

type options struct {
	keysFile          string
	volunteerEmail    string
	volunteerName     string
	volunteerPassword string
	skipEvents        bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{}
	flag.StringVar(&opts.keysFile, "keys", cfg.ContingentKeysFile, "contingent keys YAML file (default CONTINGENT_KEYS_FILE)")
	flag.StringVar(&opts.volunteerEmail, "volunteer-email", "", "also create a volunteer account with this email")
	flag.StringVar(&opts.volunteerName, "volunteer-name", "Volunteer", "volunteer display name")
	flag.StringVar(&opts.volunteerPassword, "volunteer-password", "", "volunteer password")
	flag.BoolVar(&opts.skipEvents, "skip-events", false, "do not touch the events collection")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := config.NewLogger(cfg)
	if err := run(ctx, cfg, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) error {
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	if !opts.skipEvents {
		cat, err := catalog.LoadEmbedded()
		if err != nil {
			return err
		}
		events := mongodb.NewEventRepository(db)
		now := time.Now().UTC()
		for _, entry := range cat.All() {
			if err := events.Seed(ctx, catalog.NewEvent(entry, now)); err != nil {
				return fmt.Errorf("seed event %s: %w", entry.Slug, err)
			}
		}
		logger.Info("events seeded", "count", len(cat.All()))
	}

	if opts.keysFile != "" {
		keys, err := catalog.LoadContingentKeys(opts.keysFile)
		if err != nil {
			return err
		}
		repo := mongodb.NewContingentKeyRepository(db)
		for _, k := range keys {
			if err := repo.Upsert(ctx, k); err != nil {
				return fmt.Errorf("upsert contingent key for %s: %w", k.ClgName, err)
			}
		}
		logger.Info("contingent keys upserted", "count", len(keys), "file", opts.keysFile)
	} else {
		logger.Warn("no contingent keys file given, official registration will reject every key")
	}

	authService := services.NewAdminAuthService(mongodb.NewAdminRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWT(cfg.JWTSecret), cfg.JWTExpiry, logger)
	if cfg.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, "Admin", cfg.AdminPassword, domain.RoleAdmin); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}
	if opts.volunteerEmail != "" {
		if err := authService.EnsureAdmin(ctx, opts.volunteerEmail, opts.volunteerName, opts.volunteerPassword, domain.RoleVolunteer); err != nil {
			return fmt.Errorf("ensure volunteer: %w", err)
		}
	}
	return nil
}
