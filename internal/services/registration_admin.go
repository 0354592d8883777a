package services

import (
	"context"
	"fmt"
	"log/slog"

	"invento/internal/domain"
)

type registrationAdminService struct {
	events    domain.EventRepository
	tx        domain.Transactor
	publisher domain.Publisher
	logger    *slog.Logger
}

// NewRegistrationAdminService creates the status, attendance and registration window operations.
func NewRegistrationAdminService(events domain.EventRepository, tx domain.Transactor, publisher domain.Publisher, logger *slog.Logger) domain.RegistrationAdminService {
	return &registrationAdminService{events: events, tx: tx, publisher: publisher, logger: logger}
}

// statusChange captures a committed status transition for publishing.
type statusChange struct {
	event      *domain.Event
	ids        []string
	teamName   string
	from       domain.RegistrationStatus
	isOfficial bool
	paid       bool
}

func (s *registrationAdminService) SetParticipantStatus(ctx context.Context, eventID, inventoID string, status domain.RegistrationStatus) error {
	if !status.Valid() {
		return domain.Validationf("unknown status %q", status)
	}
	var change statusChange
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ev, err := resolveEvent(ctx, s.events, eventID)
		if err != nil {
			return err
		}
		p, ok := ev.FindParticipant(inventoID)
		if !ok {
			return domain.ErrRegistrationNotFound.WithMessage("participant %s is not registered for %s", inventoID, ev.ID)
		}
		if ev.IsGenderSpecific && p.Gender == "" {
			return domain.ErrInvalidGender.WithMessage("participant %s has no recorded gender", inventoID)
		}
		counter := p.Counter(ev.IsGenderSpecific)
		delta := domain.SlotDelta(p.Status, status)
		if delta < 0 && ev.Available(counter) <= 0 {
			return slotFullError(counter)
		}
		ok, err = s.events.SetParticipantStatus(ctx, ev.ID, inventoID, status, counter, delta)
		if err != nil {
			return fmt.Errorf("set participant status: %w", err)
		}
		if !ok {
			return guardFailure(counter, delta)
		}
		change = statusChange{event: ev, ids: []string{inventoID}, from: p.Status, isOfficial: p.IsOfficial, paid: p.Paid}
		return nil
	})
	if err != nil {
		return err
	}
	s.statusChanged(ctx, domain.EventTypeSolo, change, status)
	return nil
}

func (s *registrationAdminService) SetTeamStatus(ctx context.Context, eventID, leaderID string, status domain.RegistrationStatus) error {
	if !status.Valid() {
		return domain.Validationf("unknown status %q", status)
	}
	var change statusChange
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ev, err := resolveEvent(ctx, s.events, eventID)
		if err != nil {
			return err
		}
		t, ok := ev.FindTeam(leaderID)
		if !ok {
			return domain.ErrRegistrationNotFound.WithMessage("no team led by %s in %s", leaderID, ev.ID)
		}
		counter := t.Counter()
		delta := domain.SlotDelta(t.Status, status)
		if delta < 0 && ev.Available(counter) <= 0 {
			return slotFullError(counter)
		}
		ok, err = s.events.SetTeamStatus(ctx, ev.ID, leaderID, status, counter, delta)
		if err != nil {
			return fmt.Errorf("set team status: %w", err)
		}
		if !ok {
			return guardFailure(counter, delta)
		}
		change = statusChange{event: ev, ids: t.MemberIDs(), teamName: t.TeamName, from: t.Status, isOfficial: t.IsOfficial, paid: t.Paid}
		return nil
	})
	if err != nil {
		return err
	}
	s.statusChanged(ctx, domain.EventTypeTeam, change, status)
	return nil
}

// guardFailure explains why a status update matched nothing after the pre-checks passed.
func guardFailure(counter domain.SlotCounter, delta int) error {
	switch {
	case delta < 0:
		return slotFullError(counter)
	case delta > 0:
		return fmt.Errorf("slot counter %s already at its total", counter.AvailablePath())
	}
	return domain.ErrRegistrationNotFound
}

func (s *registrationAdminService) statusChanged(ctx context.Context, typ domain.EventType, c statusChange, to domain.RegistrationStatus) {
	s.logger.Info("registration status changed",
		"event_id", c.event.ID,
		"ids", c.ids,
		"from", c.from,
		"to", to,
	)
	if c.from == to {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), domain.RoutingRegistrationStatus, domain.RegistrationMessage{
		EventID:    c.event.ID,
		EventName:  c.event.Name,
		Type:       typ,
		InventoIDs: c.ids,
		TeamName:   c.teamName,
		Status:     to,
		IsOfficial: c.isOfficial,
		Paid:       c.paid,
	}); err != nil {
		s.logger.Error("publish status change", "error", err, "event_id", c.event.ID)
	}
}

func (s *registrationAdminService) MarkParticipantAttendance(ctx context.Context, eventID, inventoID string, present bool) error {
	ev, err := resolveEvent(ctx, s.events, eventID)
	if err != nil {
		return err
	}
	ok, err := s.events.SetParticipantPresence(ctx, ev.ID, inventoID, present)
	if err != nil {
		return fmt.Errorf("set participant presence: %w", err)
	}
	if !ok {
		return domain.ErrRegistrationNotFound.WithMessage("participant %s is not registered for %s", inventoID, ev.ID)
	}
	return nil
}

func (s *registrationAdminService) MarkTeamMemberAttendance(ctx context.Context, eventID, leaderID, inventoID string, present bool) error {
	ev, err := resolveEvent(ctx, s.events, eventID)
	if err != nil {
		return err
	}
	ok, err := s.events.SetTeamMemberPresence(ctx, ev.ID, leaderID, inventoID, present)
	if err != nil {
		return fmt.Errorf("set team member presence: %w", err)
	}
	if !ok {
		return domain.ErrRegistrationNotFound.WithMessage("%s is not a member of the team led by %s in %s", inventoID, leaderID, ev.ID)
	}
	return nil
}

func (s *registrationAdminService) SetRegistrationOpen(ctx context.Context, eventID string, open bool) error {
	ev, err := resolveEvent(ctx, s.events, eventID)
	if err != nil {
		return err
	}
	if _, err := s.events.SetRegistrationOpen(ctx, ev.ID, open); err != nil {
		return fmt.Errorf("set registration open: %w", err)
	}
	s.logger.Info("registration window changed", "event_id", ev.ID, "open", open)
	return nil
}

func (s *registrationAdminService) ListRegistrations(ctx context.Context, eventID string) (*domain.Event, error) {
	return resolveEvent(ctx, s.events, eventID)
}
