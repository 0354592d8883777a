package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/crypto/bcrypt"

	"invento/config"
	_ "invento/docs"
	"invento/internal/adapters/auth"
	"invento/internal/adapters/email"
	"invento/internal/adapters/rabbitmq"
	"invento/internal/adapters/razorpay"
	"invento/internal/catalog"
	httpdelivery "invento/internal/delivery/http"
	"invento/internal/delivery/http/controllers"
	"invento/internal/delivery/http/helpers"
	"invento/internal/delivery/http/middleware"
	"invento/internal/domain"
	"invento/internal/repository/mongodb"
	"invento/internal/services"
)

const shutdownTimeout = 20 * time.Second

// @title INVENTO 2026 API
// @version 1.0
// @description Event registration, payments and staff operations for INVENTO 2026.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := config.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	client, err := mongodb.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect", "err", err)
		}
	}()
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailUser,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPassword,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	var publisher domain.Publisher = rabbitmq.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, logger)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Info("RABBITMQ_URL not set, registration messages are not published")
	}

	events := mongodb.NewEventRepository(db)
	users := mongodb.NewUserRepository(db)
	tx := mongodb.NewTransactor(client)
	jwt := auth.NewJWT(cfg.JWTSecret)

	registrationService := services.NewRegistrationService(services.RegistrationDeps{
		Catalog:        cat,
		Events:         events,
		Users:          users,
		Payments:       mongodb.NewPaymentRepository(db),
		ContingentKeys: mongodb.NewContingentKeyRepository(db),
		Gateway:        razorpay.NewGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Transactor:     tx,
		Email:          emailService,
		Publisher:      publisher,
		Logger:         logger,
	})
	adminService := services.NewRegistrationAdminService(events, tx, publisher, logger)
	userService := services.NewUserService(users, emailService, logger)
	authService := services.NewAdminAuthService(mongodb.NewAdminRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost), jwt, cfg.JWTExpiry, logger)

	errs := helpers.NewErrorWriter(logger, cfg.IsProduction())
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events: controllers.NewEventController(errs, registrationService),
		Admin:  controllers.NewAdminController(errs, adminService),
		Users:  controllers.NewUserController(errs, userService),
		Auth:   controllers.NewAuthController(errs, authService),
		Health: &controllers.HealthController{Check: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}},
	}, httpdelivery.RouterConfig{
		Verifier: jwt,
		Logger:   logger,
		Limiter:  middleware.NewRateLimiter(cfg.RegisterRateLimit, cfg.RegisterRateBurst).TrustProxyHops(cfg.TrustedProxyHops),
	})

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpdelivery.NewHandler(mux, httpdelivery.HandlerConfig{
			Logger:         logger,
			AllowedOrigins: cfg.AllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "events", len(cat.All()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
