package controllers

import (
	"context"
	"net/http"

	"invento/internal/delivery/http/helpers"
	"invento/internal/domain"
)

// LoginRequest is the request body for POST /api/admin/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse is the response body for POST /api/admin/login.
type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
}

// AuthController handles staff login.
type AuthController struct {
	Errors  *helpers.ErrorWriter
	Service domain.AdminAuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(errs *helpers.ErrorWriter, svc domain.AdminAuthService) *AuthController {
	return &AuthController{Errors: errs, Service: svc}
}

// Login godoc
// @Summary Staff login
// @Description Authenticate an admin or volunteer. Returns a JWT carrying the staff role.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginResponse
// @Failure 400 {object} helpers.ErrorResponse "ValidationError"
// @Failure 401 {object} helpers.ErrorResponse "UnauthorizedError"
// @Router /api/admin/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, admin, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", Name: admin.Name, Role: admin.Role})
}

// HealthController reports liveness together with database reachability.
type HealthController struct {
	Check func(ctx context.Context) error
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.Check != nil {
		if err := c.Check(r.Context()); err != nil {
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
