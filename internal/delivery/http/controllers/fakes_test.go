package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"invento/internal/delivery/http/helpers"
	"invento/internal/domain"
)

func testErrors() *helpers.ErrorWriter {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return helpers.NewErrorWriter(logger, true)
}

// newRequest builds a request with an optional JSON body and path values.
func newRequest(t *testing.T, method, target string, body any, pathValues map[string]string) *http.Request {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) helpers.ErrorResponse {
	t.Helper()
	var resp helpers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

type fakeRegistrationService struct {
	views   []*domain.EventView
	order   *domain.CreateOrderResult
	key     *domain.ContingentKey
	result  *domain.RegisterResult
	err     error
	gotReq  *domain.RegisterRequest
	gotID   string
	members int
}

func (f *fakeRegistrationService) ListEvents(ctx context.Context) ([]*domain.EventView, error) {
	return f.views, f.err
}

func (f *fakeRegistrationService) GetEvent(ctx context.Context, idOrSlug string) (*domain.EventView, error) {
	f.gotID = idOrSlug
	if f.err != nil {
		return nil, f.err
	}
	return f.views[0], nil
}

func (f *fakeRegistrationService) CreateOrder(ctx context.Context, eventID string, members int) (*domain.CreateOrderResult, error) {
	f.gotID, f.members = eventID, members
	return f.order, f.err
}

func (f *fakeRegistrationService) ValidateContingentKey(ctx context.Context, key string) (*domain.ContingentKey, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.key, nil
}

func (f *fakeRegistrationService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResult, error) {
	f.gotReq = req
	return f.result, f.err
}

type adminCall struct {
	op      string
	eventID string
	subject string
	member  string
	status  domain.RegistrationStatus
	flag    bool
}

type fakeAdminService struct {
	calls []adminCall
	event *domain.Event
	err   error
}

func (f *fakeAdminService) SetParticipantStatus(ctx context.Context, eventID, inventoID string, status domain.RegistrationStatus) error {
	f.calls = append(f.calls, adminCall{op: "participant-status", eventID: eventID, subject: inventoID, status: status})
	return f.err
}

func (f *fakeAdminService) SetTeamStatus(ctx context.Context, eventID, leaderID string, status domain.RegistrationStatus) error {
	f.calls = append(f.calls, adminCall{op: "team-status", eventID: eventID, subject: leaderID, status: status})
	return f.err
}

func (f *fakeAdminService) MarkParticipantAttendance(ctx context.Context, eventID, inventoID string, present bool) error {
	f.calls = append(f.calls, adminCall{op: "participant-attendance", eventID: eventID, subject: inventoID, flag: present})
	return f.err
}

func (f *fakeAdminService) MarkTeamMemberAttendance(ctx context.Context, eventID, leaderID, inventoID string, present bool) error {
	f.calls = append(f.calls, adminCall{op: "member-attendance", eventID: eventID, subject: leaderID, member: inventoID, flag: present})
	return f.err
}

func (f *fakeAdminService) SetRegistrationOpen(ctx context.Context, eventID string, open bool) error {
	f.calls = append(f.calls, adminCall{op: "window", eventID: eventID, flag: open})
	return f.err
}

func (f *fakeAdminService) ListRegistrations(ctx context.Context, eventID string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

type fakeUserService struct {
	user    *domain.User
	created bool
	err     error
	got     *domain.OnboardRequest
}

func (f *fakeUserService) Onboard(ctx context.Context, req *domain.OnboardRequest) (*domain.User, bool, error) {
	f.got = req
	if f.err != nil {
		return nil, false, f.err
	}
	return f.user, f.created, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeAuthService struct {
	token string
	admin *domain.Admin
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.admin, nil
}

func (f *fakeAuthService) EnsureAdmin(ctx context.Context, email, name, password string, role domain.Role) error {
	return nil
}
