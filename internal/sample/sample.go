// Package sample generates a starter delve map for an empty first run.
// Placement is driven by simplex noise over the hex grid so the layout looks
// hand-scattered rather than gridded, and is deterministic per seed.
package sample

import (
	"sort"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/delvemap/internal/delve"
	"github.com/talgya/delvemap/internal/hexgrid"
)

// scatterRadius bounds the hex area the starter content is placed into.
const scatterRadius = 4

var landmarkSeeds = []struct {
	name    string
	domains []delve.Domain
	stress  delve.StressDie
}{
	{"The Crimson Market", []delve.Domain{delve.DomainCursed, delve.DomainWarren}, delve.StressD6},
	{"Chapel of the Drowned Bell", []delve.Domain{delve.DomainReligion, delve.DomainDesolate}, delve.StressD8},
	{"Lanternwick Commons", []delve.Domain{delve.DomainHaven}, delve.StressD4},
}

var delveSeeds = []struct {
	name       string
	resistance int
	domains    []delve.Domain
	monster    delve.Monster
}{
	{
		"The Sunken Stacks", 14,
		[]delve.Domain{delve.DomainOccult},
		delve.Monster{Name: "Shelf Haunt", Resistance: 6, Protection: 4,
			Attacks: []string{"smothering folios"}},
	},
	{
		"Rustchoir Engineworks", 22,
		[]delve.Domain{delve.DomainTechnology, delve.DomainWarren},
		delve.Monster{Name: "Coil Warden", Resistance: 9, Protection: 6,
			Attacks: []string{"arc discharge", "grinding embrace"}},
	},
}

// Map builds the starter map. The same seed always yields the same layout.
func Map(seed int64, now func() time.Time) delve.DelveMap {
	if now == nil {
		now = time.Now
	}
	created := now()

	m := delve.DelveMap{
		ID:        delve.NewMapID(now),
		Name:      "The Wandering Reach",
		CreatedAt: created,
		UpdatedAt: created,
	}

	cells := scatter(seed, len(landmarkSeeds)+len(delveSeeds))

	for i, ls := range landmarkSeeds {
		l := delve.Landmark{
			ID:            delve.NewID(),
			Name:          ls.name,
			Domains:       ls.domains,
			DefaultStress: ls.stress,
		}
		m.Landmarks = append(m.Landmarks, l)
		m.PlacedCards = append(m.PlacedCards, delve.PlacedCard{
			ID: l.ID, Type: delve.CardLandmark, Position: delve.AtHex(cells[i]),
		})
	}
	for i, ds := range delveSeeds {
		mon := ds.monster
		mon.ID = delve.NewID()
		d := delve.Delve{
			ID:         delve.NewID(),
			Name:       ds.name,
			Resistance: ds.resistance,
			Domains:    ds.domains,
			Monsters:   []delve.Monster{mon},
		}
		m.Delves = append(m.Delves, d)
		m.PlacedCards = append(m.PlacedCards, delve.PlacedCard{
			ID: d.ID, Type: delve.CardDelve, Position: delve.AtHex(cells[len(landmarkSeeds)+i]),
		})
	}

	// Tie the first landmark to each delve so the starter map demonstrates
	// connections.
	for _, d := range m.Delves {
		m.Connections = append(m.Connections, delve.Connection{
			ID:     delve.NewID(),
			FromID: m.Landmarks[0].ID,
			ToID:   d.ID,
			Type:   delve.LandmarkToDelve,
		})
	}

	return m
}

// scatter picks n distinct cells within scatterRadius of the origin, ranked
// by noise value so the picks cluster organically.
func scatter(seed int64, n int) []hexgrid.HexCoord {
	noise := opensimplex.NewNormalized(seed)

	candidates := hexgrid.HexesInRadius(hexgrid.HexCoord{}, scatterRadius)
	sort.Slice(candidates, func(i, j int) bool {
		return noiseAt(noise, candidates[i]) > noiseAt(noise, candidates[j])
	})

	occupied := make(map[hexgrid.HexCoord]bool, n)
	cells := make([]hexgrid.HexCoord, 0, n)
	for _, c := range candidates {
		if len(cells) == n {
			break
		}
		// Keep a one-cell gap between cards where possible.
		crowded := false
		for _, nb := range c.Neighbors() {
			if occupied[nb] {
				crowded = true
				break
			}
		}
		if crowded {
			continue
		}
		occupied[c] = true
		cells = append(cells, c)
	}
	// Fall back to dense packing when the gap rule runs out of room.
	for _, c := range candidates {
		if len(cells) == n {
			break
		}
		if !occupied[c] {
			occupied[c] = true
			cells = append(cells, c)
		}
	}
	return cells
}

func noiseAt(noise opensimplex.Noise, h hexgrid.HexCoord) float64 {
	return noise.Eval2(float64(h.Q)*0.35, float64(h.R)*0.35)
}
