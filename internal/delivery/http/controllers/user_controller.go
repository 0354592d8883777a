package controllers

import (
	"net/http"

	"invento/internal/delivery/http/helpers"
	"invento/internal/domain"
)

// OnboardRequest is the request body for POST /api/users.
type OnboardRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required,min=10,max=15"`
	ClgName string `json:"clgName" validate:"required,max=200"`
	Gender  string `json:"gender" validate:"max=20"`
}

// OnboardResponse is the body of POST /api/users. Created is false when the email was
// already registered and the existing profile is returned.
type OnboardResponse struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// UserController serves attendee onboarding and profile lookups.
type UserController struct {
	Errors  *helpers.ErrorWriter
	Service domain.UserService
}

// NewUserController creates a UserController.
func NewUserController(errs *helpers.ErrorWriter, svc domain.UserService) *UserController {
	return &UserController{Errors: errs, Service: svc}
}

// Onboard godoc
// @Summary Onboard an attendee
// @Description Creates a user with the next inventoId (inv00001, ...). An existing email returns that user with 200.
// @Tags users
// @Accept json
// @Produce json
// @Param body body OnboardRequest true "Profile"
// @Success 201 {object} controllers.OnboardResponse "new user"
// @Success 200 {object} controllers.OnboardResponse "existing user"
// @Failure 400 {object} helpers.ErrorResponse "ValidationError"
// @Router /api/users [post]
func (c *UserController) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, created, err := c.Service.Onboard(r.Context(), &domain.OnboardRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		ClgName: req.ClgName,
		Gender:  req.Gender,
	})
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSON(w, status, OnboardResponse{User: user, Created: created})
}

// GetUser godoc
// @Summary Get an attendee profile
// @Tags users
// @Produce json
// @Param id path string true "inventoId"
// @Success 200 {object} domain.User
// @Failure 404 {object} helpers.ErrorResponse "UserNotFoundError"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}
