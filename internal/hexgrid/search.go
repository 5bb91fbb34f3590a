package hexgrid

// MaxSearchRadius caps the ring expansion in NearestFreePosition.
const MaxSearchRadius = 10

// HexesInRadius returns every hex within the given distance of center,
// including center itself. The result size for radius N is 3N²+3N+1.
func HexesInRadius(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	hexes := make([]HexCoord, 0, 3*radius*radius+3*radius+1)
	for dq := -radius; dq <= radius; dq++ {
		lo := max(-radius, -dq-radius)
		hi := min(radius, -dq+radius)
		for dr := lo; dr <= hi; dr++ {
			hexes = append(hexes, HexCoord{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return hexes
}

// Ring returns the hexes at exactly the given distance from center, walked
// counterclockwise from the cell radius steps in direction 4.
func Ring(center HexCoord, radius int) []HexCoord {
	if radius <= 0 {
		return []HexCoord{center}
	}
	ring := make([]HexCoord, 0, 6*radius)
	h := center.Add(HexCoord{
		Q: NeighborDirections[4].Q * radius,
		R: NeighborDirections[4].R * radius,
	})
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			ring = append(ring, h)
			h = h.Add(NeighborDirections[side])
		}
	}
	return ring
}

// NearestFreePosition finds the closest hex to target that is not in
// occupied, expanding ring by ring up to MaxSearchRadius. The target itself
// is returned when free. If every cell within the cap is occupied the target
// is returned unchanged; callers that must not double-occupy a cell should
// re-check occupancy on the result.
func NearestFreePosition(target HexCoord, occupied map[HexCoord]bool) HexCoord {
	if !occupied[target] {
		return target
	}
	for radius := 1; radius <= MaxSearchRadius; radius++ {
		for _, candidate := range Ring(target, radius) {
			if !occupied[candidate] {
				return candidate
			}
		}
	}
	return target
}
