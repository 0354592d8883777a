package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invento/internal/domain"
)

func TestEventController_ListAndGet(t *testing.T) {
	view := &domain.EventView{
		CatalogEntry: &domain.CatalogEntry{ID: 1, Slug: "solo-demo", Name: "Solo Demo"},
		Registration: domain.RegistrationWindow{IsOpen: true},
	}
	svc := &fakeRegistrationService{views: []*domain.EventView{view}}
	ctrl := NewEventController(testErrors(), svc)

	w := httptest.NewRecorder()
	ctrl.ListEvents(w, newRequest(t, http.MethodGet, "/api/events", nil, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "solo-demo", list[0]["slug"])

	w = httptest.NewRecorder()
	ctrl.GetEvent(w, newRequest(t, http.MethodGet, "/api/events/1", nil, map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", svc.gotID)
}

func TestEventController_GetEvent_NotFound(t *testing.T) {
	ctrl := NewEventController(testErrors(), &fakeRegistrationService{err: domain.ErrEventNotFound})

	w := httptest.NewRecorder()
	ctrl.GetEvent(w, newRequest(t, http.MethodGet, "/api/events/nope", nil, map[string]string{"id": "nope"}))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EventNotFoundError", decodeError(t, w).Error)
}

func TestEventController_CreateOrder(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantID      string
		wantMembers int
	}{
		{name: "slug", body: `{"eventId":"solo-demo"}`, wantStatus: http.StatusOK, wantID: "solo-demo"},
		{name: "numeric id", body: `{"eventId":4,"members":3}`, wantStatus: http.StatusOK, wantID: "4", wantMembers: 3},
		{name: "missing event", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "fractional id", body: `{"eventId":1.5}`, wantStatus: http.StatusBadRequest},
		{name: "negative members", body: `{"eventId":"x","members":-1}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRegistrationService{order: &domain.CreateOrderResult{Free: true}}
			ctrl := NewEventController(testErrors(), svc)

			w := httptest.NewRecorder()
			ctrl.CreateOrder(w, newRequest(t, http.MethodPost, "/api/events/create-order", tt.body, nil))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "ValidationError", decodeError(t, w).Error)
				return
			}
			assert.Equal(t, tt.wantID, svc.gotID)
			assert.Equal(t, tt.wantMembers, svc.members)
			assert.JSONEq(t, `{"free":true}`, w.Body.String())
		})
	}
}

func TestEventController_Register_Solo(t *testing.T) {
	svc := &fakeRegistrationService{result: &domain.RegisterResult{
		Type:         domain.EventTypeSolo,
		EventID:      "solo-demo",
		EventName:    "Solo Demo",
		WhatsAppLink: "https://chat.whatsapp.com/solo",
	}}
	ctrl := NewEventController(testErrors(), svc)

	w := httptest.NewRecorder()
	ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/solo-demo",
		`{"inventoId":" inv00001 "}`, map[string]string{"id": "solo-demo"}))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully registered for Solo Demo", resp.Message)
	assert.Equal(t, "solo-demo", resp.EventID)
	assert.Equal(t, "https://chat.whatsapp.com/solo", resp.WhatsAppLink)
	assert.Equal(t, domain.EventTypeSolo, resp.Type)

	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "solo-demo", svc.gotReq.EventID)
	assert.Equal(t, "inv00001", svc.gotReq.RequesterID)
}

func TestEventController_Register_TeamMemberFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "array", body: `{"leaderId":"inv00001","teamName":"Rockets","members":["inv00001","inv00002"]}`},
		{name: "json string", body: `{"inventoId":"inv00001","teamName":"Rockets","members":"[\"inv00001\",\"inv00002\"]"}`},
		{name: "comma separated", body: `{"inventoId":"inv00001","teamName":"Rockets","members":"inv00001, inv00002,"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRegistrationService{result: &domain.RegisterResult{
				Type:      domain.EventTypeTeam,
				EventID:   "team-demo",
				EventName: "Team Demo",
				Team:      &domain.Team{TeamName: "Rockets", LeaderID: "inv00001"},
			}}
			ctrl := NewEventController(testErrors(), svc)

			w := httptest.NewRecorder()
			ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/team-demo", tt.body, map[string]string{"id": "team-demo"}))

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, []string{"inv00001", "inv00002"}, svc.gotReq.Members)
			assert.Equal(t, "inv00001", svc.gotReq.RequesterID)
			assert.Contains(t, w.Body.String(), "Team Rockets successfully registered for Team Demo")
		})
	}
}

func TestEventController_Register_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{name: "no requester", body: `{"teamName":"x"}`, wantMessage: "inventoId is required"},
		{name: "partial payment", body: `{"inventoId":"inv00001","razorpay_order_id":"order_1"}`, wantMessage: "is required"},
		{name: "official without key", body: `{"inventoId":"inv00001","isOfficial":true}`, wantMessage: "contingentKey is required"},
		{name: "members wrong type", body: `{"inventoId":"inv00001","members":7}`, wantMessage: "members"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRegistrationService{}
			ctrl := NewEventController(testErrors(), svc)

			w := httptest.NewRecorder()
			ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/solo-demo", tt.body, map[string]string{"id": "solo-demo"}))

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "ValidationError", resp.Error)
			assert.Contains(t, resp.Message, tt.wantMessage)
			assert.Nil(t, svc.gotReq, "service must not be called")
		})
	}
}

func TestEventController_Register_IgnoresExtraFormFields(t *testing.T) {
	svc := &fakeRegistrationService{result: &domain.RegisterResult{Type: domain.EventTypeSolo, EventID: "solo-demo", EventName: "Solo Demo"}}
	ctrl := NewEventController(testErrors(), svc)

	body := `{"inventoId":"inv00001","eventId":"solo-demo","name":"Asha","email":"asha@example.com"}`
	w := httptest.NewRecorder()
	ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/solo-demo", body, map[string]string{"id": "solo-demo"}))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "inv00001", svc.gotReq.RequesterID)
}

func TestEventController_Register_DomainErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrSlotFull, http.StatusConflict},
		{domain.ErrDuplicateRegistration, http.StatusConflict},
		{domain.ErrRegistrationClosed, http.StatusForbidden},
		{domain.ErrContingentLimit, http.StatusTooManyRequests},
		{domain.ErrTeamSize.WithMessage("team must have 4 members"), http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrPaymentAlreadyConsumed, http.StatusBadRequest},
	}
	for _, tt := range tests {
		derr := tt.err.(*domain.Error)
		t.Run(derr.Name, func(t *testing.T) {
			ctrl := NewEventController(testErrors(), &fakeRegistrationService{err: tt.err})

			w := httptest.NewRecorder()
			ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/x", `{"inventoId":"inv00001"}`, map[string]string{"id": "x"}))

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, derr.Name, resp.Error)
			assert.Equal(t, derr.Message, resp.Message)
		})
	}
}

func TestEventController_Register_InternalErrorHidesDetail(t *testing.T) {
	ctrl := NewEventController(testErrors(), &fakeRegistrationService{err: errors.New("mongo: connection refused")})

	w := httptest.NewRecorder()
	ctrl.Register(w, newRequest(t, http.MethodPost, "/api/events/register/x", `{"inventoId":"inv00001"}`, map[string]string{"id": "x"}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "InternalError", resp.Error)
	assert.Empty(t, resp.Detail)
	assert.NotContains(t, w.Body.String(), "mongo")
}

func TestEventController_ValidateKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctrl := NewEventController(testErrors(), &fakeRegistrationService{key: &domain.ContingentKey{ClgName: "GEC", Key: "GEC-KEY"}})

		w := httptest.NewRecorder()
		ctrl.ValidateKey(w, newRequest(t, http.MethodPost, "/api/events/validate-key", `{"key":"GEC-KEY"}`, nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"clgName":"GEC"}`, w.Body.String())
	})

	t.Run("invalid", func(t *testing.T) {
		ctrl := NewEventController(testErrors(), &fakeRegistrationService{err: domain.ErrInvalidContingentKey})

		w := httptest.NewRecorder()
		ctrl.ValidateKey(w, newRequest(t, http.MethodPost, "/api/events/validate-key", `{"key":"nope"}`, nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "InvalidContingentKeyError", decodeError(t, w).Error)
	})

	t.Run("missing key", func(t *testing.T) {
		ctrl := NewEventController(testErrors(), &fakeRegistrationService{})

		w := httptest.NewRecorder()
		ctrl.ValidateKey(w, newRequest(t, http.MethodPost, "/api/events/validate-key", `{}`, nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "key is required", decodeError(t, w).Message)
	})
}
