package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"invento/internal/domain"
)

var testNow = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory database shared by the fake repositories. Every method takes the
// lock, so each call behaves like a single atomic document update.
type memStore struct {
	mu       sync.Mutex
	events   map[string]*domain.Event
	users    map[string]*domain.User
	payments map[string]*domain.PaymentRecord
	keys     map[string]*domain.ContingentKey
	userSeq  int
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[string]*domain.Event),
		users:    make(map[string]*domain.User),
		payments: make(map[string]*domain.PaymentRecord),
		keys:     make(map[string]*domain.ContingentKey),
	}
}

func clone[T any](t *T) *T {
	b, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

type memSnapshot struct {
	events   map[string]*domain.Event
	users    map[string]*domain.User
	payments map[string]*domain.PaymentRecord
	userSeq  int
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		events:   make(map[string]*domain.Event, len(s.events)),
		users:    make(map[string]*domain.User, len(s.users)),
		payments: make(map[string]*domain.PaymentRecord, len(s.payments)),
		userSeq:  s.userSeq,
	}
	for k, v := range s.events {
		snap.events[k] = clone(v)
	}
	for k, v := range s.users {
		snap.users[k] = clone(v)
	}
	for k, v := range s.payments {
		snap.payments[k] = clone(v)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events, s.users, s.payments, s.userSeq = snap.events, snap.users, snap.payments, snap.userSeq
}

// event returns a copy of the stored event for assertions.
func (s *memStore) event(t *testing.T, id string) *domain.Event {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		t.Fatalf("event %s not stored", id)
	}
	return clone(e)
}

func (s *memStore) user(t *testing.T, id string) *domain.User {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		t.Fatalf("user %s not stored", id)
	}
	return clone(u)
}

// serialTransactor runs one transaction at a time and rolls the store back on error.
type serialTransactor struct {
	mu    sync.Mutex
	store *memStore
	calls int
}

func (tx *serialTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.calls++
	snap := tx.store.snapshot()
	if err := fn(ctx); err != nil {
		tx.store.restore(snap)
		return err
	}
	return nil
}

// passthroughTransactor lets callers interleave, leaving isolation to the conditional updates.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeEventRepo honours the same guards as the MongoDB repository.
type fakeEventRepo struct {
	store *memStore
	// beforeWrite, when set, runs before a guarded append takes the store lock.
	beforeWrite func()
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(e), nil
}

func (r *fakeEventRepo) GetByNumericID(_ context.Context, numericID int) (*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.events {
		if e.NumericID == numericID {
			return clone(e), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.store.events {
		c := clone(e)
		c.Registrations = domain.Registrations{}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *domain.Event) int { return a.NumericID - b.NumericID })
	return out, nil
}

func (r *fakeEventRepo) Seed(_ context.Context, e *domain.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[e.ID]; !ok {
		r.store.events[e.ID] = clone(e)
	}
	return nil
}

func counterRef(e *domain.Event, c domain.SlotCounter) (available *int, total int) {
	pool := &e.Slots.Open
	if c.Pool == domain.PoolOfficial {
		pool = &e.Slots.Official
	}
	if c.Gender == "" {
		return pool.Available, pool.Total
	}
	if pool.Gender == nil {
		return nil, 0
	}
	if c.Gender == domain.GenderMale {
		return &pool.Gender.Male.Available, pool.Gender.Male.Total
	}
	return &pool.Gender.Female.Available, pool.Gender.Female.Total
}

func (r *fakeEventRepo) AppendParticipant(_ context.Context, eventID string, c domain.SlotCounter, p *domain.Participant) (bool, error) {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok || e.EventType != domain.EventTypeSolo {
		return false, nil
	}
	avail, _ := counterRef(e, c)
	if avail == nil || *avail <= 0 {
		return false, nil
	}
	if _, dup := e.FindParticipant(p.InventoID); dup {
		return false, nil
	}
	*avail--
	e.Registrations.Participants = append(e.Registrations.Participants, *clone(p))
	return true, nil
}

func (r *fakeEventRepo) AppendTeam(_ context.Context, eventID string, c domain.SlotCounter, t *domain.Team) (bool, error) {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok || e.EventType != domain.EventTypeTeam {
		return false, nil
	}
	avail, _ := counterRef(e, c)
	if avail == nil || *avail <= 0 {
		return false, nil
	}
	if len(e.TeamMemberConflicts(t.MemberIDs())) > 0 {
		return false, nil
	}
	*avail--
	e.Registrations.Teams = append(e.Registrations.Teams, *clone(t))
	return true, nil
}

func guardHolds(e *domain.Event, c domain.SlotCounter, delta int) bool {
	avail, total := counterRef(e, c)
	switch {
	case delta == 0:
		return true
	case avail == nil:
		return false
	case delta < 0:
		return *avail > 0
	default:
		return *avail < total
	}
}

func (r *fakeEventRepo) SetParticipantStatus(_ context.Context, eventID, inventoID string, status domain.RegistrationStatus, c domain.SlotCounter, delta int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return false, nil
	}
	p, ok := e.FindParticipant(inventoID)
	if !ok || !guardHolds(e, c, delta) {
		return false, nil
	}
	p.Status = status
	if delta != 0 {
		avail, _ := counterRef(e, c)
		*avail += delta
	}
	return true, nil
}

func (r *fakeEventRepo) SetTeamStatus(_ context.Context, eventID, leaderID string, status domain.RegistrationStatus, c domain.SlotCounter, delta int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return false, nil
	}
	t, ok := e.FindTeam(leaderID)
	if !ok || !guardHolds(e, c, delta) {
		return false, nil
	}
	t.Status = status
	if delta != 0 {
		avail, _ := counterRef(e, c)
		*avail += delta
	}
	return true, nil
}

func (r *fakeEventRepo) SetParticipantPresence(_ context.Context, eventID, inventoID string, present bool) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return false, nil
	}
	p, ok := e.FindParticipant(inventoID)
	if !ok {
		return false, nil
	}
	p.IsPresent = present
	return true, nil
}

func (r *fakeEventRepo) SetTeamMemberPresence(_ context.Context, eventID, leaderID, inventoID string, present bool) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return false, nil
	}
	t, ok := e.FindTeam(leaderID)
	if !ok {
		return false, nil
	}
	for i := range t.Members {
		if t.Members[i].InventoID == inventoID {
			t.Members[i].IsPresent = present
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) SetRegistrationOpen(_ context.Context, eventID string, open bool) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.events[eventID]
	if !ok {
		return false, nil
	}
	e.Registration.IsOpen = open
	return true, nil
}

type fakeUserRepo struct {
	store     *memStore
	createErr error
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return domain.ErrAlreadyExists
		}
	}
	r.store.userSeq++
	u.ID = fmt.Sprintf("inv%05d", r.store.userSeq)
	r.store.users[u.ID] = clone(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok {
			out = append(out, clone(u))
		}
	}
	return out, nil
}

func (r *fakeUserRepo) RecordRegistration(_ context.Context, ids []string, update domain.UserRegistrationUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		u, ok := r.store.users[id]
		if !ok {
			continue
		}
		if !slices.Contains(u.RegisteredEvents, update.EventName) {
			u.RegisteredEvents = append(u.RegisteredEvents, update.EventName)
		}
		if update.Paid {
			u.Payment = true
		}
		switch {
		case update.Official:
			u.PassType = domain.PassOfficial
		case u.PassType == domain.PassNone || u.PassType == "":
			u.PassType = domain.PassGeneral
		}
	}
	return nil
}

type fakePaymentRepo struct {
	store     *memStore
	createErr error
}

func (r *fakePaymentRepo) Exists(_ context.Context, paymentID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.payments[paymentID]
	return ok, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, rec *domain.PaymentRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.payments[rec.PaymentID]; ok {
		return domain.ErrPaymentAlreadyConsumed
	}
	r.store.payments[rec.PaymentID] = clone(rec)
	return nil
}

type fakeContingentKeyRepo struct {
	store *memStore
}

func (r *fakeContingentKeyRepo) GetByKey(_ context.Context, key string) (*domain.ContingentKey, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ck, ok := r.store.keys[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ck
	return &cp, nil
}

func (r *fakeContingentKeyRepo) Upsert(_ context.Context, ck *domain.ContingentKey) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *ck
	r.store.keys[ck.Key] = &cp
	return nil
}

// fakeGateway accepts signatures of the form "sig:<orderID>|<paymentID>".
type fakeGateway struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	created []*domain.Order
	seq     int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: make(map[string]*domain.Order)}
}

func signature(orderID, paymentID string) string {
	return "sig:" + orderID + "|" + paymentID
}

func (g *fakeGateway) addPaidOrder(id string, amount int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders[id] = &domain.Order{ID: id, Amount: amount, Currency: "INR", Status: domain.OrderStatusPaid}
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, receipt string, notes map[string]string) (*domain.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	o := &domain.Order{ID: fmt.Sprintf("order_%d", g.seq), Amount: amount, Currency: "INR", Receipt: receipt, Status: "created", Notes: notes}
	g.orders[o.ID] = o
	g.created = append(g.created, o)
	return o, nil
}

func (g *fakeGateway) FetchOrder(_ context.Context, orderID string) (*domain.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: BAD_REQUEST_ERROR", orderID)
	}
	cp := *o
	return &cp, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, sig string) error {
	if sig != signature(orderID, paymentID) {
		return domain.Validationf("payment signature verification failed")
	}
	return nil
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeEmailService struct {
	mu            sync.Mutex
	welcome       []*domain.WelcomeMessageEmailData
	confirmations []*domain.RegistrationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendRegistrationConfirmation(_ context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, data)
	return f.err
}

type published struct {
	routingKey string
	msg        domain.RegistrationMessage
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, _ := payload.(domain.RegistrationMessage)
	f.messages = append(f.messages, published{routingKey: routingKey, msg: msg})
	return f.err
}

type fakeCatalog struct {
	entries []*domain.CatalogEntry
}

func (c *fakeCatalog) Lookup(idOrSlug string) (*domain.CatalogEntry, bool) {
	for _, e := range c.entries {
		if e.Slug == strings.ToLower(idOrSlug) || fmt.Sprint(e.ID) == idOrSlug {
			return e, true
		}
	}
	return nil, false
}

func (c *fakeCatalog) All() []*domain.CatalogEntry { return c.entries }

func intPtr(n int) *int { return &n }

// fixture builds a live event from a catalog entry with the given pools.
func fixture(entry *domain.CatalogEntry, open, official domain.SlotPool) *domain.Event {
	return &domain.Event{
		ID:               entry.Slug,
		NumericID:        entry.ID,
		Name:             entry.Name,
		EventType:        entry.EventType,
		Price:            entry.Fee,
		IsGenderSpecific: entry.IsGenderSpecific,
		IsPricePerPerson: entry.IsPricePerPerson,
		Slots:            domain.Slots{Open: open, Official: official},
		Registration: domain.RegistrationWindow{
			IsOpen:                  true,
			OfficialTeamsPerCollege: entry.OfficialTeamsPerCollege,
		},
		Registrations: domain.Registrations{Participants: []domain.Participant{}, Teams: []domain.Team{}},
		CreatedAt:     testNow,
	}
}

func pool(total, available int) domain.SlotPool {
	return domain.SlotPool{Total: total, Available: intPtr(available)}
}
