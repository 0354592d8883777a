package domain

import (
	"context"
	"strings"
	"time"
)

// EventType fixes whether an event takes individual participants or teams.
type EventType string

const (
	EventTypeSolo EventType = "SOLO"
	EventTypeTeam EventType = "TEAM"
)

// Gender keys the gendered slot sub-pools.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender maps a free-form profile value onto a slot key.
// Anything other than male/female (or their initials) is rejected.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	}
	return "", false
}

// Pool selects between the open (free/paid) and official (contingent) slot pools.
type Pool string

const (
	PoolOpen     Pool = "open"
	PoolOfficial Pool = "official"
)

// PoolFor returns the pool a registration consumes.
func PoolFor(official bool) Pool {
	if official {
		return PoolOfficial
	}
	return PoolOpen
}

// RegistrationStatus is the lifecycle state of a participant or team.
type RegistrationStatus string

const (
	StatusPending      RegistrationStatus = "PENDING"
	StatusConfirmed    RegistrationStatus = "CONFIRMED"
	StatusWaitlist     RegistrationStatus = "WAITLIST"
	StatusCancelled    RegistrationStatus = "CANCELLED"
	StatusDisqualified RegistrationStatus = "DISQUALIFIED"
)

// IsActive reports whether a registration in this status occupies a slot.
func (s RegistrationStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusPending
}

// Valid reports whether s is a known status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusWaitlist, StatusCancelled, StatusDisqualified:
		return true
	}
	return false
}

// SlotDelta returns the change to apply to a slot counter when moving from one status to another:
// -1 when a slot is taken, +1 when it is released, 0 otherwise.
func SlotDelta(from, to RegistrationStatus) int {
	switch {
	case !from.IsActive() && to.IsActive():
		return -1
	case from.IsActive() && !to.IsActive():
		return 1
	}
	return 0
}

// SlotCount is a total/available pair.
type SlotCount struct {
	Total     int `bson:"total" json:"total"`
	Available int `bson:"available" json:"available"`
}

// GenderSlots splits a pool between male and female registrations.
type GenderSlots struct {
	Male   SlotCount `bson:"male" json:"male"`
	Female SlotCount `bson:"female" json:"female"`
}

// SlotPool bounds active registrations. Available is nil for gender-specific events,
// where Gender holds the authoritative counters.
type SlotPool struct {
	Total     int          `bson:"total" json:"total"`
	Available *int         `bson:"available" json:"available"`
	Gender    *GenderSlots `bson:"gender,omitempty" json:"gender,omitempty"`
}

// Slots holds both pools of an event.
type Slots struct {
	Open     SlotPool `bson:"open" json:"open"`
	Official SlotPool `bson:"official" json:"official"`
}

// SlotCounter identifies one counter inside Slots: a pool and, for gendered events, a sub-pool.
type SlotCounter struct {
	Pool   Pool
	Gender Gender
}

func (c SlotCounter) prefix() string {
	if c.Gender == "" {
		return "slots." + string(c.Pool)
	}
	return "slots." + string(c.Pool) + ".gender." + string(c.Gender)
}

// AvailablePath is the document path of the counter's available field.
func (c SlotCounter) AvailablePath() string { return c.prefix() + ".available" }

// TotalPath is the document path of the counter's total field.
func (c SlotCounter) TotalPath() string { return c.prefix() + ".total" }

// RegistrationWindow controls whether new registrations are accepted.
type RegistrationWindow struct {
	IsOpen                  bool `bson:"isOpen" json:"isOpen"`
	OfficialTeamsPerCollege int  `bson:"officialTeamsPerCollege" json:"officialTeamsPerCollege"`
}

// Participant is a SOLO registration.
type Participant struct {
	InventoID     string             `bson:"inventoId" json:"inventoId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	ClgName       string             `bson:"clgName" json:"clgName"`
	Gender        Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	Paid          bool               `bson:"paid" json:"paid"`
	Status        RegistrationStatus `bson:"status" json:"status"`
	IsOfficial    bool               `bson:"isOfficial" json:"isOfficial"`
	ContingentKey string             `bson:"contingentKey,omitempty" json:"contingentKey,omitempty"`
	IsPresent     bool               `bson:"isPresent" json:"isPresent"`
	RegisteredAt  time.Time          `bson:"registeredAt" json:"registeredAt"`
}

// Counter returns the slot counter this participant occupies.
func (p *Participant) Counter(genderSpecific bool) SlotCounter {
	c := SlotCounter{Pool: PoolFor(p.IsOfficial)}
	if genderSpecific {
		c.Gender = p.Gender
	}
	return c
}

// TeamMember is one member of a TEAM registration.
type TeamMember struct {
	InventoID string `bson:"inventoId" json:"inventoId"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
	ClgName   string `bson:"clgName" json:"clgName"`
	IsPresent bool   `bson:"isPresent" json:"isPresent"`
}

// Team is a TEAM registration, keyed within its event by LeaderID.
type Team struct {
	TeamName      string             `bson:"teamName" json:"teamName"`
	LeaderID      string             `bson:"leaderId" json:"leaderId"`
	Paid          bool               `bson:"paid" json:"paid"`
	Status        RegistrationStatus `bson:"status" json:"status"`
	IsOfficial    bool               `bson:"isOfficial" json:"isOfficial"`
	ContingentKey string             `bson:"contingentKey,omitempty" json:"contingentKey,omitempty"`
	Members       []TeamMember       `bson:"members" json:"members"`
	RegisteredAt  time.Time          `bson:"registeredAt" json:"registeredAt"`
}

// Counter returns the slot counter this team occupies. Teams always use the general counter.
func (t *Team) Counter() SlotCounter {
	return SlotCounter{Pool: PoolFor(t.IsOfficial)}
}

// MemberIDs lists the team's member inventoIds.
func (t *Team) MemberIDs() []string {
	ids := make([]string, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.InventoID
	}
	return ids
}

// Registrations holds the registration records of an event. Only the array matching the
// event's type is ever written.
type Registrations struct {
	Participants []Participant `bson:"participants" json:"participants"`
	Teams        []Team        `bson:"teams" json:"teams"`
}

// Event is the live, mutable state of a festival event.
type Event struct {
	ID               string             `bson:"_id" json:"id"`
	NumericID        int                `bson:"numericId" json:"numericId"`
	Name             string             `bson:"name" json:"name"`
	Club             string             `bson:"club" json:"club"`
	EventType        EventType          `bson:"eventType" json:"eventType"`
	Price            int                `bson:"price" json:"price"`
	IsGenderSpecific bool               `bson:"isGenderSpecific" json:"isGenderSpecific"`
	IsPricePerPerson bool               `bson:"isPricePerPerson" json:"isPricePerPerson"`
	Slots            Slots              `bson:"slots" json:"slots"`
	Registration     RegistrationWindow `bson:"registration" json:"registration"`
	Registrations    Registrations      `bson:"registrations" json:"registrations"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CheckShape rejects documents holding registrations of the wrong kind.
func (e *Event) CheckShape() error {
	switch e.EventType {
	case EventTypeSolo:
		if len(e.Registrations.Teams) > 0 {
			return Validationf("event %s is SOLO but has team registrations", e.ID)
		}
	case EventTypeTeam:
		if len(e.Registrations.Participants) > 0 {
			return Validationf("event %s is TEAM but has individual registrations", e.ID)
		}
	default:
		return Validationf("event %s has unknown type %q", e.ID, e.EventType)
	}
	return nil
}

// Available returns the current value of a slot counter.
func (e *Event) Available(c SlotCounter) int {
	pool := &e.Slots.Open
	if c.Pool == PoolOfficial {
		pool = &e.Slots.Official
	}
	if c.Gender != "" {
		if pool.Gender == nil {
			return 0
		}
		if c.Gender == GenderMale {
			return pool.Gender.Male.Available
		}
		return pool.Gender.Female.Available
	}
	if pool.Available == nil {
		return 0
	}
	return *pool.Available
}

// FindParticipant returns the participant with the given inventoId.
func (e *Event) FindParticipant(inventoID string) (*Participant, bool) {
	for i := range e.Registrations.Participants {
		if e.Registrations.Participants[i].InventoID == inventoID {
			return &e.Registrations.Participants[i], true
		}
	}
	return nil, false
}

// FindTeam returns the team led by leaderID.
func (e *Event) FindTeam(leaderID string) (*Team, bool) {
	for i := range e.Registrations.Teams {
		if e.Registrations.Teams[i].LeaderID == leaderID {
			return &e.Registrations.Teams[i], true
		}
	}
	return nil, false
}

// TeamMemberConflicts returns the ids among ids that already belong to a team of this event.
func (e *Event) TeamMemberConflicts(ids []string) []string {
	taken := make(map[string]struct{})
	for _, t := range e.Registrations.Teams {
		for _, m := range t.Members {
			taken[m.InventoID] = struct{}{}
		}
	}
	var out []string
	for _, id := range ids {
		if _, ok := taken[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ActiveOfficialCount counts active official registrations made with the given contingent key.
func (e *Event) ActiveOfficialCount(key string) int {
	n := 0
	for _, p := range e.Registrations.Participants {
		if p.IsOfficial && p.ContingentKey == key && p.Status.IsActive() {
			n++
		}
	}
	for _, t := range e.Registrations.Teams {
		if t.IsOfficial && t.ContingentKey == key && t.Status.IsActive() {
			n++
		}
	}
	return n
}

// AmountDue returns the fee in minor currency units (paise) for a registration of the given size.
func (e *Event) AmountDue(members int) int64 {
	amount := int64(e.Price) * 100
	if e.IsPricePerPerson && members > 1 {
		amount *= int64(members)
	}
	return amount
}

// EventRepository defines storage operations for live event documents.
// Mutating methods return false when their guard did not match any document.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByNumericID(ctx context.Context, numericID int) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// Seed inserts the event if missing and refreshes its static fields otherwise.
	// Slot counters and registrations of an existing event are left untouched.
	Seed(ctx context.Context, event *Event) error
	// AppendParticipant decrements counter and pushes p only if the counter is positive,
	// the event is SOLO, and p.InventoID is not already registered.
	AppendParticipant(ctx context.Context, eventID string, counter SlotCounter, p *Participant) (bool, error)
	// AppendTeam decrements counter and pushes t only if the counter is positive, the event
	// is TEAM, and none of t's members belongs to an existing team.
	AppendTeam(ctx context.Context, eventID string, counter SlotCounter, t *Team) (bool, error)
	// SetParticipantStatus sets the status and moves counter by delta (-1, 0, +1). A -1
	// requires available > 0, a +1 requires available < total.
	SetParticipantStatus(ctx context.Context, eventID, inventoID string, status RegistrationStatus, counter SlotCounter, delta int) (bool, error)
	SetTeamStatus(ctx context.Context, eventID, leaderID string, status RegistrationStatus, counter SlotCounter, delta int) (bool, error)
	SetParticipantPresence(ctx context.Context, eventID, inventoID string, present bool) (bool, error)
	SetTeamMemberPresence(ctx context.Context, eventID, leaderID, inventoID string, present bool) (bool, error)
	SetRegistrationOpen(ctx context.Context, eventID string, open bool) (bool, error)
}
