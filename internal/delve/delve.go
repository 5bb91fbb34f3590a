// Package delve defines the Delve Map domain model: landmarks, delves,
// monsters, placed cards, typed connections, and the reusable library.
package delve

import "time"

// Domain tags a landmark or delve with one of the eight fixed themes.
type Domain string

const (
	DomainCursed     Domain = "Cursed"
	DomainDesolate   Domain = "Desolate"
	DomainHaven      Domain = "Haven"
	DomainOccult     Domain = "Occult"
	DomainReligion   Domain = "Religion"
	DomainTechnology Domain = "Technology"
	DomainWarren     Domain = "Warren"
	DomainWild       Domain = "Wild"
)

// AllDomains lists every recognised domain tag.
var AllDomains = []Domain{
	DomainCursed, DomainDesolate, DomainHaven, DomainOccult,
	DomainReligion, DomainTechnology, DomainWarren, DomainWild,
}

// IsValid reports whether d is a recognised domain tag.
func (d Domain) IsValid() bool {
	switch d {
	case DomainCursed, DomainDesolate, DomainHaven, DomainOccult,
		DomainReligion, DomainTechnology, DomainWarren, DomainWild:
		return true
	}
	return false
}

// StressDie is the die size rolled when a landmark's stress triggers.
type StressDie string

const (
	StressD4  StressDie = "d4"
	StressD6  StressDie = "d6"
	StressD8  StressDie = "d8"
	StressD10 StressDie = "d10"
	StressD12 StressDie = "d12"
)

// IsValid reports whether s is a recognised stress die.
func (s StressDie) IsValid() bool {
	switch s {
	case StressD4, StressD6, StressD8, StressD10, StressD12:
		return true
	}
	return false
}

// Landmark is a surface location on the map.
type Landmark struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Domains       []Domain  `json:"domains"`
	DefaultStress StressDie `json:"defaultStress"`
	Haunts        []string  `json:"haunts"`
	Bonds         []string  `json:"bonds"`
}

// Monster lives inside exactly one delve; it is embedded, never shared.
type Monster struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Resistance int      `json:"resistance"` // 1–20
	Protection int      `json:"protection"` // 1–12
	Attacks    []string `json:"attacks"`
	Resources  []string `json:"resources"`
	Notes      string   `json:"notes"`
}

// Delve is an underground site with its own events, resources, and monsters.
type Delve struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Resistance int       `json:"resistance"` // 1–50
	Domains    []Domain  `json:"domains"`
	Events     []string  `json:"events"`
	Resources  []string  `json:"resources"`
	Monsters   []Monster `json:"monsters"`
}

// CardType distinguishes the two placeable entity kinds.
type CardType string

const (
	CardLandmark CardType = "landmark"
	CardDelve    CardType = "delve"
)

// ConnectionType is derived from the entity types of a connection's two
// endpoints.
type ConnectionType string

const (
	LandmarkToDelve    ConnectionType = "landmark-to-delve"
	DelveToDelve       ConnectionType = "delve-to-delve"
	LandmarkToLandmark ConnectionType = "landmark-to-landmark"
)

// Connection links two placed cards. FromID and ToID are weak references
// resolved against the map's entity collections; no canonical ordering is
// enforced, so (A,B) and (B,A) are distinct records.
type Connection struct {
	ID     string         `json:"id"`
	FromID string         `json:"fromId"`
	ToID   string         `json:"toId"`
	Type   ConnectionType `json:"type"`
}

// Matches reports whether the connection joins the pair (a, b) in either
// direction.
func (c Connection) Matches(a, b string) bool {
	return (c.FromID == a && c.ToID == b) || (c.FromID == b && c.ToID == a)
}

// PlacedCard associates a landmark or delve id with a position on the map
// canvas. At most one PlacedCard exists per id.
type PlacedCard struct {
	ID       string       `json:"id"`
	Type     CardType     `json:"type"`
	Position CardPosition `json:"position"`
}

// DelveMap is the aggregate root: the entity collections, their spatial
// placement, and the connections between them.
type DelveMap struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Landmarks   []Landmark   `json:"landmarks"`
	Delves      []Delve      `json:"delves"`
	PlacedCards []PlacedCard `json:"placedCards"`
	Connections []Connection `json:"connections"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Library is a save-for-reuse catalog independent of any map. Items are
// copied into it, not referenced.
type Library struct {
	Monsters  []Monster  `json:"monsters"`
	Landmarks []Landmark `json:"landmarks"`
	Delves    []Delve    `json:"delves"`
}
