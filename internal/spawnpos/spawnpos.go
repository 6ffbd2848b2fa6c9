// Package spawnpos picks a spawn position for a newly registered player
// (§4.9): a bounded rejection-sampling search over coastal beach tiles,
// grounded in the teacher's handlers.go "Goldilocks Search" (bounded
// random-sample loop with a deterministic fallback on exhaustion) and in
// original_source/lib.rs's register_player, which performs the same
// southern-beach-adjacent-to-sea search before falling back to the last
// sample rather than failing registration.
package spawnpos

import (
	"math/rand"

	"github.com/vitadek/survival/internal/model"
)

const maxRejectionAttempts = 50

// relaxedRadiusFactor shrinks the normal collision radius for spawn
// placement so the search concentrates players on the coast instead of
// failing outright when the shoreline is crowded (§4.9's own rationale).
const relaxedRadiusFactor = 0.8

// Occupant is a minimal point used for the collision check: living
// players, trees/stones, campfires, storage boxes.
type Occupant struct {
	X, Y   float64
}

// beachTile is a beach tile adjacent (8-neighborhood) to a sea tile, in
// the southern half of the world.
type beachTile struct {
	worldX, worldY int
}

// CandidateBeachTiles filters tiles to the southern-half beach-adjacent-
// to-sea set §4.9 requires, from the full generated terrain.
func CandidateBeachTiles(tiles []model.WorldTile) []model.WorldTile {
	bySea := make(map[[2]int]bool, len(tiles))
	for _, t := range tiles {
		if t.TileType == model.TileSea {
			bySea[[2]int{t.WorldX, t.WorldY}] = true
		}
	}
	southernBoundary := model.WorldHeight / 2

	var out []model.WorldTile
	for _, t := range tiles {
		if t.TileType != model.TileBeach || t.WorldY < southernBoundary {
			continue
		}
		if adjacentToSea(t.WorldX, t.WorldY, bySea) {
			out = append(out, t)
		}
	}
	return out
}

func adjacentToSea(x, y int, bySea map[[2]int]bool) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if bySea[[2]int{x + dx, y + dy}] {
				return true
			}
		}
	}
	return false
}

func pixelCenter(t model.WorldTile) (float64, float64) {
	return float64(t.WorldX)*model.TileSizePx + model.TileSizePx/2, float64(t.WorldY)*model.TileSizePx + model.TileSizePx/2
}

// Pick samples beach tiles uniformly, rejecting any within the relaxed
// collision radius of an occupant returned by nearby(x, y) — callers
// pass a spatial-grid neighborhood query so each sample is checked
// against only the entities actually close to it — for up to
// maxRejectionAttempts tries; it force-spawns at the last sample if
// every attempt is rejected (§4.9: "no land fallback").
func Pick(beaches []model.WorldTile, nearby func(x, y float64) []Occupant, rng *rand.Rand) (x, y float64, forced bool) {
	if len(beaches) == 0 {
		return 0, 0, true
	}
	relaxedRadiusSq := (model.PlayerRadius * relaxedRadiusFactor) * (model.PlayerRadius * relaxedRadiusFactor)

	var lastX, lastY float64
	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		tile := beaches[rng.Intn(len(beaches))]
		lastX, lastY = pixelCenter(tile)

		if !collides(lastX, lastY, nearby(lastX, lastY), relaxedRadiusSq) {
			return lastX, lastY, false
		}
	}
	return lastX, lastY, true
}

func collides(x, y float64, occupants []Occupant, radiusSq float64) bool {
	for _, o := range occupants {
		dx, dy := x-o.X, y-o.Y
		if dx*dx+dy*dy < radiusSq {
			return true
		}
	}
	return false
}
