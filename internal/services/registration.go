package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"invento/internal/domain"
)

// RegistrationDeps groups the ports used by the registration services.
type RegistrationDeps struct {
	Catalog        domain.Catalog
	Events         domain.EventRepository
	Users          domain.UserRepository
	Payments       domain.PaymentRepository
	ContingentKeys domain.ContingentKeyRepository
	Gateway        domain.PaymentGateway
	Transactor     domain.Transactor
	Email          domain.EmailService
	Publisher      domain.Publisher
	Logger         *slog.Logger
}

type registrationService struct {
	RegistrationDeps
	now func() time.Time
}

// NewRegistrationService creates the attendee-facing registration workflow.
func NewRegistrationService(deps RegistrationDeps) domain.RegistrationService {
	return &registrationService{RegistrationDeps: deps, now: time.Now}
}

func (s *registrationService) ListEvents(ctx context.Context) ([]*domain.EventView, error) {
	live, err := s.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	byID := make(map[string]*domain.Event, len(live))
	for _, e := range live {
		byID[e.ID] = e
	}
	entries := s.Catalog.All()
	views := make([]*domain.EventView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newEventView(entry, byID[entry.Slug]))
	}
	return views, nil
}

func (s *registrationService) GetEvent(ctx context.Context, idOrSlug string) (*domain.EventView, error) {
	entry, ok := s.Catalog.Lookup(idOrSlug)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	ev, err := s.Events.GetByID(ctx, entry.Slug)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return newEventView(entry, ev), nil
}

// newEventView merges catalog data with live state. An event that has not been seeded yet
// is shown closed with empty pools.
func newEventView(entry *domain.CatalogEntry, ev *domain.Event) *domain.EventView {
	v := &domain.EventView{CatalogEntry: entry, Price: entry.Fee}
	if ev != nil {
		v.Price = ev.Price
		v.Slots = ev.Slots
		v.Registration = ev.Registration
	}
	return v
}

func (s *registrationService) CreateOrder(ctx context.Context, eventID string, members int) (*domain.CreateOrderResult, error) {
	ev, entry, err := s.resolve(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.Registration.IsOpen {
		return nil, domain.ErrRegistrationClosed
	}
	if ev.Price == 0 {
		return &domain.CreateOrderResult{Free: true}, nil
	}
	if members < 1 {
		members = 1
	}
	if ev.IsPricePerPerson && (members < entry.MinTeamSize || members > entry.MaxTeamSize) {
		return nil, teamSizeError(entry, members)
	}

	amount := ev.AmountDue(members)
	order, err := s.Gateway.CreateOrder(ctx, amount, uuid.NewString(), map[string]string{
		domain.OrderNoteEventID: ev.ID,
		"members":               strconv.Itoa(members),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.Logger.Info("payment order created", "event_id", ev.ID, "order_id", order.ID, "amount", amount)
	return &domain.CreateOrderResult{Order: order, KeyID: s.Gateway.KeyID()}, nil
}

func (s *registrationService) ValidateContingentKey(ctx context.Context, key string) (*domain.ContingentKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrInvalidContingentKey
	}
	ck, err := s.ContingentKeys.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidContingentKey
		}
		return nil, fmt.Errorf("get contingent key: %w", err)
	}
	return ck, nil
}

// eligibility is the outcome of the official/paid/free check.
type eligibility struct {
	official bool
	key      string
	paid     bool
	order    *domain.Order
}

func (s *registrationService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResult, error) {
	req.RequesterID = strings.TrimSpace(req.RequesterID)
	if req.RequesterID == "" {
		return nil, domain.Validationf("inventoId is required")
	}

	var (
		result *domain.RegisterResult
		elig   eligibility
	)
	err := s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		ev, entry, err := s.resolve(ctx, req.EventID)
		if err != nil {
			return err
		}
		if !ev.Registration.IsOpen {
			return domain.ErrRegistrationClosed
		}
		if err := ev.CheckShape(); err != nil {
			return err
		}

		members, dup := normalizeMembers(req.Members)
		elig, err = s.checkEligibility(ctx, ev, req, len(members))
		if err != nil {
			return err
		}

		switch ev.EventType {
		case domain.EventTypeSolo:
			result, err = s.registerSolo(ctx, ev, req.RequesterID, elig)
		default:
			if dup != "" {
				return domain.Validationf("member %s is listed more than once", dup)
			}
			result, err = s.registerTeam(ctx, ev, entry, req, members, elig)
		}
		if err != nil {
			return err
		}

		if elig.paid {
			if err := s.Payments.Create(ctx, &domain.PaymentRecord{
				PaymentID: req.PaymentID,
				OrderID:   req.OrderID,
				EventID:   ev.ID,
				Amount:    elig.order.Amount,
				CreatedAt: s.now(),
			}); err != nil {
				return err
			}
		}
		result.EventID = ev.ID
		result.EventName = ev.Name
		result.WhatsAppLink = entry.WhatsAppLink
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("registration created",
		"event_id", result.EventID,
		"type", result.Type,
		"invento_id", req.RequesterID,
		"official", elig.official,
		"paid", elig.paid,
	)
	s.afterCommit(ctx, result, elig)
	return result, nil
}

// checkEligibility decides between the official, paid and free paths.
func (s *registrationService) checkEligibility(ctx context.Context, ev *domain.Event, req *domain.RegisterRequest, members int) (eligibility, error) {
	if req.IsOfficial {
		ck, err := s.ValidateContingentKey(ctx, req.ContingentKey)
		if err != nil {
			return eligibility{}, err
		}
		if ev.ActiveOfficialCount(ck.Key) >= ev.Registration.OfficialTeamsPerCollege {
			return eligibility{}, domain.ErrContingentLimit.WithMessage(
				"%s has reached its limit of %d official registrations for this event",
				ck.ClgName, ev.Registration.OfficialTeamsPerCollege)
		}
		return eligibility{official: true, key: ck.Key}, nil
	}
	if ev.Price == 0 {
		return eligibility{}, nil
	}

	if err := s.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		return eligibility{}, err
	}
	used, err := s.Payments.Exists(ctx, req.PaymentID)
	if err != nil {
		return eligibility{}, fmt.Errorf("check payment: %w", err)
	}
	if used {
		return eligibility{}, domain.ErrPaymentAlreadyConsumed
	}
	order, err := s.Gateway.FetchOrder(ctx, req.OrderID)
	if err != nil {
		return eligibility{}, fmt.Errorf("fetch order: %w", err)
	}
	if id, ok := order.Notes[domain.OrderNoteEventID]; ok && id != ev.ID {
		return eligibility{}, domain.Validationf("order %s was created for a different event", order.ID)
	}
	if order.Status != domain.OrderStatusPaid {
		return eligibility{}, domain.Validationf("order %s is not paid (status %q)", order.ID, order.Status)
	}
	if want := ev.AmountDue(members); order.Amount != want {
		return eligibility{}, domain.Validationf("payment amount %d does not match the fee %d", order.Amount, want)
	}
	return eligibility{paid: true, order: order}, nil
}

func (s *registrationService) registerSolo(ctx context.Context, ev *domain.Event, inventoID string, elig eligibility) (*domain.RegisterResult, error) {
	user, err := s.getUser(ctx, inventoID)
	if err != nil {
		return nil, err
	}
	if _, ok := ev.FindParticipant(user.ID); ok {
		return nil, domain.ErrDuplicateRegistration
	}

	p := user.AsParticipant()
	if g, ok := domain.ParseGender(user.Gender); ok {
		p.Gender = g
	} else if ev.IsGenderSpecific {
		return nil, domain.ErrInvalidGender
	}
	p.Paid = elig.paid
	p.IsOfficial = elig.official
	p.ContingentKey = elig.key
	p.Status = domain.StatusConfirmed
	p.RegisteredAt = s.now()

	counter := p.Counter(ev.IsGenderSpecific)
	if ev.Available(counter) <= 0 {
		return nil, slotFullError(counter)
	}
	ok, err := s.Events.AppendParticipant(ctx, ev.ID, counter, &p)
	if err != nil {
		return nil, fmt.Errorf("append participant: %w", err)
	}
	if !ok {
		return nil, slotFullError(counter)
	}

	if err := s.Users.RecordRegistration(ctx, []string{user.ID}, domain.UserRegistrationUpdate{
		EventName: ev.Name, Official: elig.official, Paid: elig.paid,
	}); err != nil {
		return nil, fmt.Errorf("record registration: %w", err)
	}
	return &domain.RegisterResult{Type: domain.EventTypeSolo, User: user, Recipients: []*domain.User{user}}, nil
}

func (s *registrationService) registerTeam(ctx context.Context, ev *domain.Event, entry *domain.CatalogEntry, req *domain.RegisterRequest, members []string, elig eligibility) (*domain.RegisterResult, error) {
	teamName := strings.TrimSpace(req.TeamName)
	if teamName == "" {
		return nil, domain.Validationf("teamName is required")
	}
	if len(members) < entry.MinTeamSize || len(members) > entry.MaxTeamSize {
		return nil, teamSizeError(entry, len(members))
	}
	if !slices.Contains(members, req.RequesterID) {
		return nil, domain.Validationf("team leader %s must be one of the members", req.RequesterID)
	}

	users, err := s.Users.GetByIDs(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	var missing []string
	for _, id := range members {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, domain.Validationf("unknown members: %s", strings.Join(missing, ", "))
	}
	if taken := ev.TeamMemberConflicts(members); len(taken) > 0 {
		return nil, domain.ErrDuplicateRegistration.WithMessage(
			"already registered in another team for this event: %s", strings.Join(taken, ", "))
	}

	team := &domain.Team{
		TeamName:      teamName,
		LeaderID:      req.RequesterID,
		Paid:          elig.paid,
		Status:        domain.StatusConfirmed,
		IsOfficial:    elig.official,
		ContingentKey: elig.key,
		Members:       make([]domain.TeamMember, 0, len(members)),
		RegisteredAt:  s.now(),
	}
	recipients := make([]*domain.User, 0, len(members))
	for _, id := range members {
		team.Members = append(team.Members, byID[id].AsTeamMember())
		recipients = append(recipients, byID[id])
	}

	counter := team.Counter()
	if ev.Available(counter) <= 0 {
		return nil, slotFullError(counter)
	}
	ok, err := s.Events.AppendTeam(ctx, ev.ID, counter, team)
	if err != nil {
		return nil, fmt.Errorf("append team: %w", err)
	}
	if !ok {
		return nil, slotFullError(counter)
	}

	if err := s.Users.RecordRegistration(ctx, members, domain.UserRegistrationUpdate{
		EventName: ev.Name, Official: elig.official, Paid: elig.paid,
	}); err != nil {
		return nil, fmt.Errorf("record registration: %w", err)
	}
	return &domain.RegisterResult{
		Type:       domain.EventTypeTeam,
		Leader:     byID[req.RequesterID],
		Team:       team,
		Recipients: recipients,
	}, nil
}

// afterCommit sends confirmations and publishes the registration. Failures are logged only:
// the registration itself has already committed.
func (s *registrationService) afterCommit(ctx context.Context, result *domain.RegisterResult, elig eligibility) {
	ctx = context.WithoutCancel(ctx)
	teamName := ""
	if result.Team != nil {
		teamName = result.Team.TeamName
	}
	ids := make([]string, 0, len(result.Recipients))
	for _, u := range result.Recipients {
		ids = append(ids, u.ID)
		if err := s.Email.SendRegistrationConfirmation(ctx, &domain.RegistrationEmailData{
			Email:        u.Email,
			Name:         u.Name,
			InventoID:    u.ID,
			EventName:    result.EventName,
			TeamName:     teamName,
			IsOfficial:   elig.official,
			WhatsAppLink: result.WhatsAppLink,
		}); err != nil {
			s.Logger.Error("send registration confirmation", "error", err, "event_id", result.EventID, "invento_id", u.ID)
		}
	}
	if err := s.Publisher.Publish(ctx, domain.RoutingRegistrationCreated, domain.RegistrationMessage{
		EventID:    result.EventID,
		EventName:  result.EventName,
		Type:       result.Type,
		InventoIDs: ids,
		TeamName:   teamName,
		Status:     domain.StatusConfirmed,
		IsOfficial: elig.official,
		Paid:       elig.paid,
	}); err != nil {
		s.Logger.Error("publish registration", "error", err, "event_id", result.EventID)
	}
}

func (s *registrationService) resolve(ctx context.Context, eventID string) (*domain.Event, *domain.CatalogEntry, error) {
	ev, err := resolveEvent(ctx, s.Events, eventID)
	if err != nil {
		return nil, nil, err
	}
	entry, ok := s.Catalog.Lookup(ev.ID)
	if !ok {
		return nil, nil, domain.ErrEventNotFound.WithMessage("event %s is not in the catalog", ev.ID)
	}
	return ev, entry, nil
}

func (s *registrationService) getUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound.WithMessage("user %s not found", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// resolveEvent finds an event by slug, or by numeric id when eventID is an integer.
func resolveEvent(ctx context.Context, events domain.EventRepository, eventID string) (*domain.Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.ErrEventNotFound
	}
	var (
		ev  *domain.Event
		err error
	)
	if n, convErr := strconv.Atoi(eventID); convErr == nil {
		ev, err = events.GetByNumericID(ctx, n)
	} else {
		ev, err = events.GetByID(ctx, strings.ToLower(eventID))
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// normalizeMembers trims ids and drops blanks, returning the first duplicate if any.
func normalizeMembers(raw []string) (ids []string, duplicate string) {
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			if duplicate == "" {
				duplicate = id
			}
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, duplicate
}

func teamSizeError(entry *domain.CatalogEntry, got int) error {
	return domain.ErrTeamSize.WithMessage("team must have between %d and %d members, got %d",
		entry.MinTeamSize, entry.MaxTeamSize, got)
}

func slotFullError(c domain.SlotCounter) error {
	if c.Gender != "" {
		return domain.ErrSlotFull.WithMessage("no %s %s slots available for this event", c.Pool, c.Gender)
	}
	return domain.ErrSlotFull.WithMessage("no %s slots available for this event", c.Pool)
}
