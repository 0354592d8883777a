// Package catalog loads the static event catalog shipped with the binary.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"invento/internal/domain"
)

//go:embed events.yaml
var embeddedEvents []byte

type file struct {
	Events []*domain.CatalogEntry `yaml:"events"`
}

// Catalog is an immutable, indexed set of catalog entries.
type Catalog struct {
	entries []*domain.CatalogEntry
	bySlug  map[string]*domain.CatalogEntry
	byID    map[int]*domain.CatalogEntry
}

// LoadEmbedded parses the catalog compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Parse(embeddedEvents)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := &Catalog{
		bySlug: make(map[string]*domain.CatalogEntry, len(f.Events)),
		byID:   make(map[int]*domain.CatalogEntry, len(f.Events)),
	}
	var errs []error
	for _, e := range f.Events {
		normalize(e)
		if err := validate(e); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := c.bySlug[e.Slug]; ok {
			errs = append(errs, fmt.Errorf("duplicate slug %q", e.Slug))
			continue
		}
		if _, ok := c.byID[e.ID]; ok {
			errs = append(errs, fmt.Errorf("duplicate id %d", e.ID))
			continue
		}
		c.bySlug[e.Slug] = e
		c.byID[e.ID] = e
		c.entries = append(c.entries, e)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].ID < c.entries[j].ID })
	return c, nil
}

func normalize(e *domain.CatalogEntry) {
	e.Slug = strings.ToLower(strings.TrimSpace(e.Slug))
	e.EventType = domain.EventType(strings.ToUpper(string(e.EventType)))
	if e.EventType == domain.EventTypeSolo {
		e.MinTeamSize, e.MaxTeamSize = 1, 1
	}
}

func validate(e *domain.CatalogEntry) error {
	switch {
	case e.ID <= 0:
		return fmt.Errorf("event %q: id must be positive", e.Slug)
	case e.Slug == "":
		return fmt.Errorf("event %d: slug is required", e.ID)
	case e.Name == "":
		return fmt.Errorf("event %q: name is required", e.Slug)
	case e.EventType != domain.EventTypeSolo && e.EventType != domain.EventTypeTeam:
		return fmt.Errorf("event %q: eventType must be SOLO or TEAM", e.Slug)
	case e.Fee < 0:
		return fmt.Errorf("event %q: fee must not be negative", e.Slug)
	case e.MinTeamSize < 1 || e.MaxTeamSize < e.MinTeamSize:
		return fmt.Errorf("event %q: invalid team size bounds [%d,%d]", e.Slug, e.MinTeamSize, e.MaxTeamSize)
	case e.IsGenderSpecific && e.EventType != domain.EventTypeSolo:
		return fmt.Errorf("event %q: gender-specific events must be SOLO", e.Slug)
	case e.IsPricePerPerson && e.EventType != domain.EventTypeTeam:
		return fmt.Errorf("event %q: per-person pricing only applies to TEAM events", e.Slug)
	}
	return nil
}

// Lookup finds an entry by slug or numeric id.
func (c *Catalog) Lookup(idOrSlug string) (*domain.CatalogEntry, bool) {
	key := strings.ToLower(strings.TrimSpace(idOrSlug))
	if n, err := strconv.Atoi(key); err == nil {
		e, ok := c.byID[n]
		return e, ok
	}
	e, ok := c.bySlug[key]
	return e, ok
}

// All returns the entries ordered by id.
func (c *Catalog) All() []*domain.CatalogEntry {
	out := make([]*domain.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// NewEvent builds the initial live state of an event from its catalog entry:
// every pool full, registration open, no registrations.
func NewEvent(e *domain.CatalogEntry, now time.Time) *domain.Event {
	ev := &domain.Event{
		ID:               e.Slug,
		NumericID:        e.ID,
		Name:             e.Name,
		Club:             e.Club,
		EventType:        e.EventType,
		Price:            e.Fee,
		IsGenderSpecific: e.IsGenderSpecific,
		IsPricePerPerson: e.IsPricePerPerson,
		Registration: domain.RegistrationWindow{
			IsOpen:                  true,
			OfficialTeamsPerCollege: e.OfficialTeamsPerCollege,
		},
		Registrations: domain.Registrations{
			Participants: []domain.Participant{},
			Teams:        []domain.Team{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.IsGenderSpecific {
		ev.Slots.Open = genderPool(e.Slots.OpenMale, e.Slots.OpenFemale)
		ev.Slots.Official = genderPool(e.Slots.OfficialMale, e.Slots.OfficialFemale)
	} else {
		ev.Slots.Open = generalPool(e.Slots.Open)
		ev.Slots.Official = generalPool(e.Slots.Official)
	}
	return ev
}

func generalPool(total int) domain.SlotPool {
	available := total
	return domain.SlotPool{Total: total, Available: &available}
}

func genderPool(male, female int) domain.SlotPool {
	return domain.SlotPool{
		Total: male + female,
		Gender: &domain.GenderSlots{
			Male:   domain.SlotCount{Total: male, Available: male},
			Female: domain.SlotCount{Total: female, Available: female},
		},
	}
}
