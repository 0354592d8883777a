package domain

import "context"

// RegisterRequest is a registration attempt for one event.
// For SOLO events RequesterID is the participant; for TEAM events it is the leader and must
// appear in Members.
type RegisterRequest struct {
	EventID       string
	RequesterID   string
	TeamName      string
	Members       []string
	OrderID       string
	PaymentID     string
	Signature     string
	IsOfficial    bool
	ContingentKey string
}

// RegisterResult describes a committed registration.
type RegisterResult struct {
	Type         EventType `json:"type"`
	EventID      string    `json:"eventId"`
	EventName    string    `json:"eventName"`
	WhatsAppLink string    `json:"whatsappLink"`
	User         *User     `json:"user,omitempty"`
	Leader       *User     `json:"leader,omitempty"`
	Team         *Team     `json:"team,omitempty"`
	// Recipients are the users to notify once the registration has committed.
	Recipients []*User `json:"-"`
}

// EventView is the public view of an event: catalog data plus live slot state.
type EventView struct {
	*CatalogEntry
	Price        int                `json:"price"`
	Slots        Slots              `json:"slots"`
	Registration RegistrationWindow `json:"registration"`
}

// RegistrationService is the attendee-facing registration workflow.
type RegistrationService interface {
	ListEvents(ctx context.Context) ([]*EventView, error)
	GetEvent(ctx context.Context, idOrSlug string) (*EventView, error)
	CreateOrder(ctx context.Context, eventID string, members int) (*CreateOrderResult, error)
	ValidateContingentKey(ctx context.Context, key string) (*ContingentKey, error)
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error)
}

// RegistrationAdminService holds the admin and volunteer operations on registrations.
type RegistrationAdminService interface {
	SetParticipantStatus(ctx context.Context, eventID, inventoID string, status RegistrationStatus) error
	SetTeamStatus(ctx context.Context, eventID, leaderID string, status RegistrationStatus) error
	MarkParticipantAttendance(ctx context.Context, eventID, inventoID string, present bool) error
	MarkTeamMemberAttendance(ctx context.Context, eventID, leaderID, inventoID string, present bool) error
	SetRegistrationOpen(ctx context.Context, eventID string, open bool) error
	ListRegistrations(ctx context.Context, eventID string) (*Event, error)
}

// Transactor runs fn inside a database transaction. Repository calls made with the ctx
// passed to fn take part in the transaction; returning an error aborts it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Routing keys for registration messages.
const (
	RoutingRegistrationCreated = "registration.created"
	RoutingRegistrationStatus  = "registration.status"
)

// RegistrationMessage is published after a registration change commits.
type RegistrationMessage struct {
	EventID    string             `json:"eventId"`
	EventName  string             `json:"eventName"`
	Type       EventType          `json:"type"`
	InventoIDs []string           `json:"inventoIds"`
	TeamName   string             `json:"teamName,omitempty"`
	Status     RegistrationStatus `json:"status"`
	IsOfficial bool               `json:"isOfficial"`
	Paid       bool               `json:"paid"`
}

// Publisher publishes registration messages to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
