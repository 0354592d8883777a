package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"invento/internal/delivery/http/controllers"
	"invento/internal/delivery/http/middleware"
	"invento/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events *controllers.EventController
	Admin  *controllers.AdminController
	Users  *controllers.UserController
	Auth   *controllers.AuthController
	Health *controllers.HealthController
}

// RouterConfig carries the per-route middleware dependencies.
type RouterConfig struct {
	Verifier domain.TokenVerifier
	Logger   *slog.Logger
	// Limiter throttles the registration, order and login routes. Nil disables throttling.
	Limiter *middleware.RateLimiter
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	adminOnly := middleware.RequireAuth(cfg.Verifier, cfg.Logger, domain.RoleAdmin)
	staff := middleware.RequireAuth(cfg.Verifier, cfg.Logger, domain.RoleAdmin, domain.RoleVolunteer)
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		if cfg.Limiter == nil {
			return h
		}
		return cfg.Limiter.Wrap(h)
	}

	mux.HandleFunc("GET /health", c.Health.Health)

	// Events
	mux.HandleFunc("GET /api/events", c.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{id}", c.Events.GetEvent)
	mux.HandleFunc("POST /api/events/create-order", limited(c.Events.CreateOrder))
	mux.HandleFunc("POST /api/events/register/{id}", limited(c.Events.Register))
	mux.HandleFunc("POST /api/events/validate-key", limited(c.Events.ValidateKey))

	// Staff
	mux.HandleFunc("PATCH /api/events/{id}/participants/{inventoId}/status", adminOnly(c.Admin.SetParticipantStatus))
	mux.HandleFunc("PATCH /api/events/{id}/teams/{leaderId}/status", adminOnly(c.Admin.SetTeamStatus))
	mux.HandleFunc("PATCH /api/events/{id}/participants/{inventoId}/attendance", staff(c.Admin.MarkParticipantAttendance))
	mux.HandleFunc("PATCH /api/events/{id}/teams/{leaderId}/members/{inventoId}/attendance", staff(c.Admin.MarkTeamMemberAttendance))
	mux.HandleFunc("PATCH /api/events/{id}/registration", adminOnly(c.Admin.SetRegistrationWindow))
	mux.HandleFunc("GET /api/events/{id}/registrations", adminOnly(c.Admin.ListRegistrations))

	// Users
	mux.HandleFunc("POST /api/users", c.Users.Onboard)
	mux.HandleFunc("GET /api/users/{id}", c.Users.GetUser)

	// Auth
	mux.HandleFunc("POST /api/admin/login", limited(c.Auth.Login))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// HandlerConfig configures the middleware wrapped around the whole router.
type HandlerConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewHandler wraps mux with request logging, panic recovery, CORS and the request deadline,
// outermost first.
func NewHandler(mux http.Handler, cfg HandlerConfig) http.Handler {
	var h http.Handler = mux
	h = middleware.Timeout(cfg.RequestTimeout, h)
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.Recoverer(cfg.Logger, h)
	return middleware.LoggingMiddleware(cfg.Logger, h)
}
