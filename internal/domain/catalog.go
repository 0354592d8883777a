package domain

// Contact is an event coordinator listed in the catalog.
type Contact struct {
	Name  string `yaml:"name" json:"name"`
	Phone string `yaml:"phone" json:"phone"`
}

// CatalogSlots is the initial slot allocation of an event.
type CatalogSlots struct {
	Open           int `yaml:"open" json:"open"`
	Official       int `yaml:"official" json:"official"`
	OpenMale       int `yaml:"openMale" json:"openMale,omitempty"`
	OpenFemale     int `yaml:"openFemale" json:"openFemale,omitempty"`
	OfficialMale   int `yaml:"officialMale" json:"officialMale,omitempty"`
	OfficialFemale int `yaml:"officialFemale" json:"officialFemale,omitempty"`
}

// CatalogEntry is the static, read-only description of an event.
type CatalogEntry struct {
	ID                      int          `yaml:"id" json:"id"`
	Slug                    string       `yaml:"slug" json:"slug"`
	Name                    string       `yaml:"name" json:"name"`
	Club                    string       `yaml:"club" json:"club"`
	Description             string       `yaml:"description" json:"description"`
	EventType               EventType    `yaml:"eventType" json:"eventType"`
	Fee                     int          `yaml:"fee" json:"fee"`
	IsPricePerPerson        bool         `yaml:"isPricePerPerson" json:"isPricePerPerson"`
	IsGenderSpecific        bool         `yaml:"isGenderSpecific" json:"isGenderSpecific"`
	MinTeamSize             int          `yaml:"minTeamSize" json:"minTeamSize"`
	MaxTeamSize             int          `yaml:"maxTeamSize" json:"maxTeamSize"`
	OfficialTeamsPerCollege int          `yaml:"officialTeamsPerCollege" json:"officialTeamsPerCollege"`
	Slots                   CatalogSlots `yaml:"slots" json:"-"`
	Rounds                  []string     `yaml:"rounds" json:"rounds"`
	Rules                   []string     `yaml:"rules" json:"rules"`
	Contacts                []Contact    `yaml:"contacts" json:"contacts"`
	WhatsAppLink            string       `yaml:"whatsappLink" json:"whatsappLink"`
}

// Catalog is the read-only event reference data loaded at startup.
type Catalog interface {
	// Lookup finds an entry by slug or by its numeric id in string form.
	Lookup(idOrSlug string) (*CatalogEntry, bool)
	All() []*CatalogEntry
}
