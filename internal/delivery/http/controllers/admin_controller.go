package controllers

import (
	"net/http"

	"invento/internal/delivery/http/helpers"
	"invento/internal/delivery/http/middleware"
	"invento/internal/domain"
)

// StatusRequest is the request body of the status endpoints.
type StatusRequest struct {
	Status domain.RegistrationStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED WAITLIST CANCELLED DISQUALIFIED"`
}

// AttendanceRequest is the request body of the attendance endpoints.
type AttendanceRequest struct {
	IsPresent *bool `json:"isPresent" validate:"required"`
}

// RegistrationWindowRequest is the request body for PATCH /api/events/{id}/registration.
type RegistrationWindowRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}

// RegistrationsResponse is one page of an event's registrations. Only the array matching the
// event type is populated.
type RegistrationsResponse struct {
	EventID      string                 `json:"eventId"`
	EventName    string                 `json:"eventName"`
	EventType    domain.EventType       `json:"eventType"`
	Slots        domain.Slots           `json:"slots"`
	Participants []domain.Participant   `json:"participants"`
	Teams        []domain.Team          `json:"teams"`
	Pagination   helpers.PaginationMeta `json:"pagination"`
}

// AdminController serves the staff endpoints: status changes, attendance and the registration window.
type AdminController struct {
	Errors  *helpers.ErrorWriter
	Service domain.RegistrationAdminService
}

// NewAdminController creates an AdminController.
func NewAdminController(errs *helpers.ErrorWriter, svc domain.RegistrationAdminService) *AdminController {
	return &AdminController{Errors: errs, Service: svc}
}

func (c *AdminController) audit(r *http.Request, msg string, args ...any) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		args = append(args, "staff", claims.Subject, "role", claims.Role)
	}
	c.Errors.Logger.InfoContext(r.Context(), msg, args...)
}

// SetParticipantStatus godoc
// @Summary Change a participant's status
// @Description Moving between active (PENDING, CONFIRMED) and inactive statuses adjusts the slot counter of the participant's pool.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param inventoId path string true "Participant inventoId"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError or RegistrationNotFoundError"
// @Failure 409 {object} helpers.ErrorResponse "SlotFullError"
// @Router /api/events/{id}/participants/{inventoId}/status [patch]
func (c *AdminController) SetParticipantStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID, inventoID := r.PathValue("id"), r.PathValue("inventoId")
	if err := c.Service.SetParticipantStatus(r.Context(), eventID, inventoID, req.Status); err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	c.audit(r, "participant status set", "event_id", eventID, "invento_id", inventoID, "status", req.Status)
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "status updated to " + string(req.Status)})
}

// SetTeamStatus godoc
// @Summary Change a team's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param leaderId path string true "Team leader inventoId"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError or RegistrationNotFoundError"
// @Failure 409 {object} helpers.ErrorResponse "SlotFullError"
// @Router /api/events/{id}/teams/{leaderId}/status [patch]
func (c *AdminController) SetTeamStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID, leaderID := r.PathValue("id"), r.PathValue("leaderId")
	if err := c.Service.SetTeamStatus(r.Context(), eventID, leaderID, req.Status); err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	c.audit(r, "team status set", "event_id", eventID, "leader_id", leaderID, "status", req.Status)
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "status updated to " + string(req.Status)})
}

// MarkParticipantAttendance godoc
// @Summary Mark a participant present or absent
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param inventoId path string true "Participant inventoId"
// @Param body body AttendanceRequest true "Attendance"
// @Success 200 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "RegistrationNotFoundError"
// @Router /api/events/{id}/participants/{inventoId}/attendance [patch]
func (c *AdminController) MarkParticipantAttendance(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID, inventoID := r.PathValue("id"), r.PathValue("inventoId")
	if err := c.Service.MarkParticipantAttendance(r.Context(), eventID, inventoID, *req.IsPresent); err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	c.audit(r, "participant attendance marked", "event_id", eventID, "invento_id", inventoID, "present", *req.IsPresent)
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: attendanceMessage(*req.IsPresent)})
}

// MarkTeamMemberAttendance godoc
// @Summary Mark a team member present or absent
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param leaderId path string true "Team leader inventoId"
// @Param inventoId path string true "Member inventoId"
// @Param body body AttendanceRequest true "Attendance"
// @Success 200 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "RegistrationNotFoundError"
// @Router /api/events/{id}/teams/{leaderId}/members/{inventoId}/attendance [patch]
func (c *AdminController) MarkTeamMemberAttendance(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID, leaderID, inventoID := r.PathValue("id"), r.PathValue("leaderId"), r.PathValue("inventoId")
	if err := c.Service.MarkTeamMemberAttendance(r.Context(), eventID, leaderID, inventoID, *req.IsPresent); err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	c.audit(r, "team member attendance marked", "event_id", eventID, "leader_id", leaderID, "invento_id", inventoID, "present", *req.IsPresent)
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: attendanceMessage(*req.IsPresent)})
}

func attendanceMessage(present bool) string {
	if present {
		return "marked present"
	}
	return "marked absent"
}

// SetRegistrationWindow godoc
// @Summary Open or close registration for an event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param body body RegistrationWindowRequest true "Registration window"
// @Success 200 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError"
// @Router /api/events/{id}/registration [patch]
func (c *AdminController) SetRegistrationWindow(w http.ResponseWriter, r *http.Request) {
	var req RegistrationWindowRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID := r.PathValue("id")
	if err := c.Service.SetRegistrationOpen(r.Context(), eventID, *req.IsOpen); err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	c.audit(r, "registration window set", "event_id", eventID, "open", *req.IsOpen)
	msg := "registration closed"
	if *req.IsOpen {
		msg = "registration opened"
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: msg})
}

// ListRegistrations godoc
// @Summary List an event's registrations
// @Description Paginated with page and page_size over the participants (SOLO) or teams (TEAM).
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event slug or numeric id"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 50, max 500)"
// @Success 200 {object} controllers.RegistrationsResponse
// @Failure 404 {object} helpers.ErrorResponse "EventNotFoundError"
// @Router /api/events/{id}/registrations [get]
func (c *AdminController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	ev, err := c.Service.ListRegistrations(r.Context(), r.PathValue("id"))
	if err != nil {
		c.Errors.Write(w, r, err)
		return
	}
	page := helpers.ParsePagination(r)
	resp := RegistrationsResponse{
		EventID:      ev.ID,
		EventName:    ev.Name,
		EventType:    ev.EventType,
		Slots:        ev.Slots,
		Participants: []domain.Participant{},
		Teams:        []domain.Team{},
	}
	total := 0
	switch ev.EventType {
	case domain.EventTypeTeam:
		total = len(ev.Registrations.Teams)
		resp.Teams = helpers.Paginate(ev.Registrations.Teams, page)
	default:
		total = len(ev.Registrations.Participants)
		resp.Participants = helpers.Paginate(ev.Registrations.Participants, page)
	}
	resp.Pagination = helpers.NewPaginationMeta(page, total)
	helpers.WriteJSON(w, http.StatusOK, resp)
}
