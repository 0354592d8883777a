package domain

import (
	"context"
	"time"
)

// PassType records the kind of festival pass a user holds.
type PassType string

const (
	PassNone     PassType = "NONE"
	PassGeneral  PassType = "GENERAL"
	PassOfficial PassType = "OFFICIAL"
)

// User is a festival attendee.
// swagger:model User
type User struct {
	ID               string    `bson:"_id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Phone            string    `bson:"phone" json:"phone"`
	ClgName          string    `bson:"clgName" json:"clgName"`
	Gender           string    `bson:"gender" json:"gender"`
	RegisteredEvents []string  `bson:"registeredEvents" json:"registeredEvents"`
	PassType         PassType  `bson:"passType" json:"passType"`
	Payment          bool      `bson:"payment" json:"payment"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email, phone, clgName, gender string, createdAt, updatedAt time.Time) *User {
	return &User{
		Name:             name,
		Email:            email,
		Phone:            phone,
		ClgName:          clgName,
		Gender:           gender,
		RegisteredEvents: []string{},
		PassType:         PassNone,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// AsParticipant copies the user's identity into a participant record.
func (u *User) AsParticipant() Participant {
	return Participant{
		InventoID: u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		ClgName:   u.ClgName,
	}
}

// AsTeamMember copies the user's identity into a team member record.
func (u *User) AsTeamMember() TeamMember {
	return TeamMember{
		InventoID: u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		ClgName:   u.ClgName,
	}
}

// UserRegistrationUpdate is applied to every user taking part in a successful registration.
type UserRegistrationUpdate struct {
	EventName string
	Official  bool
	Paid      bool
}

// UserRepository defines storage for attendees.
type UserRepository interface {
	// Create allocates the next sequential id (inv00001, ...) and inserts the user.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	// RecordRegistration adds the event name to each user's registeredEvents (once),
	// upgrades passType and sets the payment flag when paid.
	RecordRegistration(ctx context.Context, ids []string, update UserRegistrationUpdate) error
}

// OnboardRequest carries the profile of a new attendee.
type OnboardRequest struct {
	Name    string
	Email   string
	Phone   string
	ClgName string
	Gender  string
}

// UserService defines onboarding and profile lookups.
type UserService interface {
	// Onboard creates a user, or returns the existing one for the same email (created=false).
	Onboard(ctx context.Context, req *OnboardRequest) (user *User, created bool, err error)
	GetByID(ctx context.Context, id string) (*User, error)
}
