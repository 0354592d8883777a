package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"invento/internal/delivery/http/helpers"
	"invento/internal/domain"
)

// CreateOrderRequest is the request body for POST /api/events/create-order.
type CreateOrderRequest struct {
	EventID EventRef `json:"eventId" validate:"required"`
	// Members sizes the order for per-person team pricing; ignored otherwise.
	Members int `json:"members" validate:"gte=0,lte=50"`
}

// RegisterRequest is the request body for POST /api/events/register/{id}.
// SOLO events need inventoId. TEAM events need teamName, members and the leader's id, sent as
// leaderId or inventoId.
type RegisterRequest struct {
	InventoID     string     `json:"inventoId" validate:"max=32"`
	LeaderID      string     `json:"leaderId" validate:"max=32"`
	TeamName      string     `json:"teamName" validate:"max=80"`
	Members       MemberList `json:"members" validate:"max=20,dive,max=32"`
	OrderID       string     `json:"razorpay_order_id" validate:"required_with=PaymentID Signature"`
	PaymentID     string     `json:"razorpay_payment_id" validate:"required_with=OrderID Signature"`
	Signature     string     `json:"razorpay_signature" validate:"required_with=OrderID PaymentID"`
	IsOfficial    bool       `json:"isOfficial"`
	ContingentKey string     `json:"contingentKey" validate:"required_if=IsOfficial true,max=128"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	if strings.TrimSpace(r.InventoID) == "" && strings.TrimSpace(r.LeaderID) == "" {
		return []string{"inventoId is required"}
	}
	return nil
}

func (r RegisterRequest) requester() string {
	if id := strings.TrimSpace(r.LeaderID); id != "" {
		return id
	}
	return strings.TrimSpace(r.InventoID)
}

// RegisterResponse is the success body of POST /api/events/register/{id}.
type RegisterResponse struct {
	Message      string           `json:"message"`
	EventID      string           `json:"eventId"`
	WhatsAppLink string           `json:"whatsappLink"`
	Type         domain.EventType `json:"type"`
}

// ValidateKeyRequest is the request body for POST /api/events/validate-key.
type ValidateKeyRequest struct {
	Key string `json:"key" validate:"required,max=128"`
}

// ValidateKeyResponse is the success body of POST /api/events/validate-key.
type ValidateKeyResponse struct {
	Success bool   `json:"success"`
	ClgName string `json:"clgName"`
}

// EventController serves the attendee-facing event and registration endpoints.
type EventController struct {
	Errors  *helpers.ErrorWriter
	Service domain.RegistrationService
}

// NewEventController creates an EventController.
func NewEventController(errs *helpers.ErrorWriter, svc domain.RegistrationService) *EventController {
	return &EventController{Errors: errs, Service: svc}
}

// ListEvents godoc
// @Summary List events
// @Description Every catalog event merged with its live slot counters and registration window.
// @Tags events
// @Produce json
// @Success 200 {array} domain.EventView
// @Failure 500 {object} helpers.ErrorResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, views)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path string true "Event slug or numeric id"
// @Success 200 {object} domain.EventView
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	view, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, view)
}

// CreateOrder godoc
// @Summary Create a payment order
// @Description Free events answer {free: true} without contacting the gateway. Paid events get an INR order for the fee in paise, multiplied by members for per-person pricing.
// @Tags events
// @Accept json
// @Produce json
// @Param body body CreateOrderRequest true "Event and team size"
// @Success 200 {object} domain.CreateOrderResult
// @Failure 400 {object} helpers.ErrorResponse "ValidationError or TeamSizeError"
// @Failure 403 {object} helpers.ErrorResponse "RegistrationClosedError"
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError"
// @Failure 429 {object} helpers.ErrorResponse "RateLimitError"
// @Router /api/events/create-order [post]
func (c *EventController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !helpers.DecodeAndValidateLenient(w, r, &req) {
		return
	}
	res, err := c.Service.CreateOrder(r.Context(), string(req.EventID), req.Members)
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Register godoc
// @Summary Register for an event
// @Description Registers a participant (SOLO) or a team (TEAM). Official registrations need a contingent key; paid events need the Razorpay order, payment and signature. Fields outside RegisterRequest are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event slug or numeric id"
// @Param body body RegisterRequest true "Registration"
// @Success 201 {object} controllers.RegisterResponse
// @Failure 400 {object} helpers.ErrorResponse "ValidationError, TeamSizeError, InvalidGenderError, InvalidContingentKeyError, PaymentReplayError"
// @Failure 403 {object} helpers.ErrorResponse "RegistrationClosedError"
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError or UserNotFoundError"
// @Failure 409 {object} helpers.ErrorResponse "SlotFullError or DuplicateRegistrationError"
// @Failure 429 {object} helpers.ErrorResponse "ContingentLimitError or RateLimitError"
// @Router /api/events/register/{id} [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidateLenient(w, r, &req) {
		return
	}
	res, err := c.Service.Register(r.Context(), &domain.RegisterRequest{
		EventID:       r.PathValue("id"),
		RequesterID:   req.requester(),
		TeamName:      req.TeamName,
		Members:       req.Members,
		OrderID:       strings.TrimSpace(req.OrderID),
		PaymentID:     strings.TrimSpace(req.PaymentID),
		Signature:     strings.TrimSpace(req.Signature),
		IsOfficial:    req.IsOfficial,
		ContingentKey: req.ContingentKey,
	})
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}

	msg := fmt.Sprintf("Successfully registered for %s", res.EventName)
	if res.Team != nil {
		msg = fmt.Sprintf("Team %s successfully registered for %s", res.Team.TeamName, res.EventName)
	}
	helpers.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message:      msg,
		EventID:      res.EventID,
		WhatsAppLink: res.WhatsAppLink,
		Type:         res.Type,
	})
}

// ValidateKey godoc
// @Summary Validate a contingent key
// @Tags events
// @Accept json
// @Produce json
// @Param body body ValidateKeyRequest true "Contingent key"
// @Success 200 {object} controllers.ValidateKeyResponse
// @Failure 400 {object} helpers.ErrorResponse "InvalidContingentKeyError"
// @Router /api/events/validate-key [post]
func (c *EventController) ValidateKey(w http.ResponseWriter, r *http.Request) {
	var req ValidateKeyRequest
	if !helpers.DecodeAndValidateLenient(w, r, &req) {
		return
	}
	ck, err := c.Service.ValidateContingentKey(r.Context(), req.Key)
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ValidateKeyResponse{Success: true, ClgName: ck.ClgName})
}
